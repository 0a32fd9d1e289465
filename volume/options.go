package volume

import "github.com/o0olele/gridnav-go/scene"

// Default agent capsule dimensions for dynamic occupancy probes.
const (
	DefaultProbeRadius     float32 = 34
	DefaultProbeHalfHeight float32 = 44
)

// ProbeOptions configure the dynamic occupancy probe a query issues at each
// candidate cell.
type ProbeOptions struct {
	Radius     float32        `json:"radius" yaml:"radius"`
	HalfHeight float32        `json:"half_height" yaml:"half_height"`
	Ignore     uint64         `json:"ignore" yaml:"ignore"` // obstacle id exempt from matching, 0 for none
	Filter     scene.Category `json:"filter" yaml:"filter"` // category mask an obstacle must match
	Kind       string         `json:"kind" yaml:"kind"`     // restrict matches to one obstacle kind, "" for any
}

// DefaultProbeOptions returns the standard agent probe matching every
// obstacle category.
func DefaultProbeOptions() ProbeOptions {
	return ProbeOptions{
		Radius:     DefaultProbeRadius,
		HalfHeight: DefaultProbeHalfHeight,
		Filter:     scene.MaskAll,
	}
}

// withDefaults fills zero-valued dimensions and filters so a partially
// specified probe still behaves like the standard agent.
func (p ProbeOptions) withDefaults() ProbeOptions {
	if p.Radius <= 0 {
		p.Radius = DefaultProbeRadius
	}
	if p.HalfHeight <= 0 {
		p.HalfHeight = DefaultProbeHalfHeight
	}
	if p.Filter == 0 {
		p.Filter = scene.MaskAll
	}
	return p
}
