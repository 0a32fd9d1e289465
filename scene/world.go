package scene

import (
	"errors"
	"fmt"
	"sort"

	"github.com/o0olele/gridnav-go/geometry"
	"github.com/o0olele/gridnav-go/math32"
	"github.com/o0olele/gridnav-go/pool"
)

// DefaultMaxObstacles is the warm size of the obstacle pool when the caller
// does not choose one.
const DefaultMaxObstacles = 64

var (
	// ErrObstacleNotFound is returned for operations on unknown obstacle ids.
	ErrObstacleNotFound = errors.New("scene: obstacle not found")
	// ErrInvalidObstacle is returned when obstacle dimensions are unusable.
	ErrInvalidObstacle = errors.New("scene: obstacle radius must be positive and half height non-negative")
)

// StaticEntry is one piece of immovable geometry with its filter category.
type StaticEntry struct {
	Geometry geometry.Geometry `json:"geometry"`
	Category Category          `json:"category"`
}

// Obstacle is a live upright-capsule blocker. Records are pooled, a removed
// obstacle's storage is recycled for later adds.
type Obstacle struct {
	ID         uint64         `json:"id"`
	Kind       string         `json:"kind"`
	Category   Category       `json:"category"`
	Position   math32.Vector3 `json:"position"`
	Radius     float32        `json:"radius"`
	HalfHeight float32        `json:"half_height"`
}

// Reset clears the record for reuse.
func (o *Obstacle) Reset() {
	*o = Obstacle{}
}

// Capsule returns the obstacle's world-space collision capsule.
func (o *Obstacle) Capsule() geometry.Capsule {
	return geometry.NewUprightCapsule(o.Position, o.Radius, o.HalfHeight)
}

// World aggregates static geometry and live obstacles and answers the two
// overlap queries the pathfinding volume consumes. It carries no internal
// locking, callers serialize rebuilds against queries.
type World struct {
	statics   []StaticEntry
	obstacles map[uint64]*pool.Lease[*Obstacle]
	records   *pool.Pool[*Obstacle]
	nextID    uint64
}

// NewWorld creates an empty world. maxObstacles caps live obstacles, values
// below one fall back to DefaultMaxObstacles.
func NewWorld(maxObstacles int) *World {
	if maxObstacles < 1 {
		maxObstacles = DefaultMaxObstacles
	}
	records, _ := pool.New(maxObstacles, func() *Obstacle { return &Obstacle{} })
	return &World{
		obstacles: make(map[uint64]*pool.Lease[*Obstacle]),
		records:   records,
	}
}

// AddStatic registers immovable geometry under a filter category.
func (w *World) AddStatic(geom geometry.Geometry, category Category) {
	w.statics = append(w.statics, StaticEntry{Geometry: geom, Category: category})
}

// Statics returns the registered static entries.
func (w *World) Statics() []StaticEntry {
	return w.statics
}

// ClearStatics drops all static geometry.
func (w *World) ClearStatics() {
	w.statics = nil
}

// StaticOverlap reports whether any static geometry matching the mask
// intersects the box.
func (w *World) StaticOverlap(bounds geometry.AABB, mask Category) bool {
	for i := range w.statics {
		if !w.statics[i].Category.Matches(mask) {
			continue
		}
		if w.statics[i].Geometry.IntersectsAABB(bounds) {
			return true
		}
	}
	return false
}

// AddObstacle registers a live capsule obstacle and returns its record.
// Fails when the obstacle pool is exhausted.
func (w *World) AddObstacle(kind string, category Category, position math32.Vector3, radius, halfHeight float32) (*Obstacle, error) {
	if radius <= 0 || halfHeight < 0 {
		return nil, ErrInvalidObstacle
	}

	lease, err := w.records.Acquire()
	if err != nil {
		return nil, fmt.Errorf("scene: obstacle capacity reached: %w", err)
	}

	w.nextID++
	obstacle := lease.Value()
	obstacle.ID = w.nextID
	obstacle.Kind = kind
	obstacle.Category = category
	obstacle.Position = position
	obstacle.Radius = radius
	obstacle.HalfHeight = halfHeight

	w.obstacles[obstacle.ID] = lease
	return obstacle, nil
}

// MoveObstacle updates an obstacle's position.
func (w *World) MoveObstacle(id uint64, position math32.Vector3) error {
	lease, ok := w.obstacles[id]
	if !ok {
		return fmt.Errorf("%w: id %d", ErrObstacleNotFound, id)
	}
	lease.Value().Position = position
	return nil
}

// RemoveObstacle drops an obstacle and recycles its record.
func (w *World) RemoveObstacle(id uint64) error {
	lease, ok := w.obstacles[id]
	if !ok {
		return fmt.Errorf("%w: id %d", ErrObstacleNotFound, id)
	}
	delete(w.obstacles, id)
	return lease.Release()
}

// Obstacle looks up a live obstacle by id.
func (w *World) Obstacle(id uint64) (*Obstacle, bool) {
	lease, ok := w.obstacles[id]
	if !ok {
		return nil, false
	}
	return lease.Value(), true
}

// Obstacles returns the live obstacles ordered by id.
func (w *World) Obstacles() []*Obstacle {
	list := make([]*Obstacle, 0, len(w.obstacles))
	for _, lease := range w.obstacles {
		list = append(list, lease.Value())
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list
}

// ObstacleCount returns the number of live obstacles.
func (w *World) ObstacleCount() int {
	return len(w.obstacles)
}

// ObstacleCapacity returns the warm size of the obstacle pool.
func (w *World) ObstacleCapacity() int {
	return w.records.Size()
}

// DynamicOverlap reports whether an upright probe capsule at the position
// intersects any live obstacle. ignoreID exempts one obstacle (0 exempts
// none), mask filters by category and kind, when non-empty, restricts the
// match to obstacles of that kind.
func (w *World) DynamicOverlap(position math32.Vector3, radius, halfHeight float32, ignoreID uint64, mask Category, kind string) bool {
	probe := geometry.NewUprightCapsule(position, radius, halfHeight)
	for _, lease := range w.obstacles {
		obstacle := lease.Value()
		if obstacle.ID == ignoreID {
			continue
		}
		if !obstacle.Category.Matches(mask) {
			continue
		}
		if kind != "" && obstacle.Kind != kind {
			continue
		}
		if probe.OverlapsCapsule(obstacle.Capsule()) {
			return true
		}
	}
	return false
}
