// Package pool provides a warm object pool. Items are created up front,
// parked in a deactivated state, and handed out through leases so ownership
// of every live item is explicit.
package pool

import (
	"errors"
	"sync"
)

var (
	// ErrInvalidSize is returned when the warm size is not positive.
	ErrInvalidSize = errors.New("pool: initial size must be greater than zero")
	// ErrNilFactory is returned when no factory is supplied.
	ErrNilFactory = errors.New("pool: factory must not be nil")
	// ErrExhausted is returned by Acquire when every item is leased out.
	ErrExhausted = errors.New("pool: no free item available")
	// ErrReleased is returned when a lease is released twice.
	ErrReleased = errors.New("pool: lease already released")
)

// Activatable items are switched live when leased and dormant when parked.
type Activatable interface {
	Activate()
	Deactivate()
}

// Resettable items clear transient state when they return to the pool.
type Resettable interface {
	Reset()
}

type item[T any] struct {
	value T
	inUse bool
}

// Pool holds a fixed set of pre-built items. Acquire hands out the first
// free one; items never grow past the warm size, callers see ErrExhausted
// instead. Safe for concurrent use.
type Pool[T any] struct {
	mu    sync.Mutex
	items []item[T]
}

// New builds the pool and warm-fills it with size items from the factory.
// Items implementing Activatable are parked deactivated.
func New[T any](size int, factory func() T) (*Pool[T], error) {
	if size <= 0 {
		return nil, ErrInvalidSize
	}
	if factory == nil {
		return nil, ErrNilFactory
	}

	p := &Pool[T]{items: make([]item[T], 0, size)}
	for i := 0; i < size; i++ {
		value := factory()
		deactivate(value)
		p.items = append(p.items, item[T]{value: value})
	}
	return p, nil
}

// Acquire leases the first free item, activating it if it supports
// activation. The returned lease is the only way to hand the item back.
func (p *Pool[T]) Acquire() (*Lease[T], error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i := range p.items {
		if p.items[i].inUse {
			continue
		}
		p.items[i].inUse = true
		activate(p.items[i].value)
		return &Lease[T]{pool: p, index: i}, nil
	}
	return nil, ErrExhausted
}

// Size returns the warm size of the pool.
func (p *Pool[T]) Size() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.items)
}

// InUse returns the number of items currently leased.
func (p *Pool[T]) InUse() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	count := 0
	for i := range p.items {
		if p.items[i].inUse {
			count++
		}
	}
	return count
}

// Available returns the number of items ready to lease.
func (p *Pool[T]) Available() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	count := 0
	for i := range p.items {
		if !p.items[i].inUse {
			count++
		}
	}
	return count
}

// Lease is the ownership record of one acquired item. Exactly one holder
// may use the item until Release parks it again.
type Lease[T any] struct {
	pool     *Pool[T]
	index    int
	released bool
}

// Value returns the leased item.
func (l *Lease[T]) Value() T {
	return l.pool.items[l.index].value
}

// Release resets and deactivates the item, then marks it free. Releasing
// twice returns ErrReleased and leaves the pool untouched.
func (l *Lease[T]) Release() error {
	l.pool.mu.Lock()
	defer l.pool.mu.Unlock()

	if l.released {
		return ErrReleased
	}
	l.released = true

	value := l.pool.items[l.index].value
	if r, ok := any(value).(Resettable); ok {
		r.Reset()
	}
	deactivate(value)
	l.pool.items[l.index].inUse = false
	return nil
}

func activate(value any) {
	if a, ok := value.(Activatable); ok {
		a.Activate()
	}
}

func deactivate(value any) {
	if a, ok := value.(Activatable); ok {
		a.Deactivate()
	}
}
