// Package builder bakes navigation volumes into a compact binary form and
// loads them back without re-running static collision analysis.
package builder

import (
	"errors"
	"fmt"

	"github.com/o0olele/gridnav-go/octree"
	"github.com/o0olele/gridnav-go/scene"
	"github.com/o0olele/gridnav-go/volume"
)

const (
	// FileMagic marks baked navigation files, "NAVG" in little-endian order.
	FileMagic = 0x4756414E
	// FileVersion is the current layout version.
	FileVersion = 1
)

var (
	ErrBadMagic   = errors.New("builder: not a navigation file")
	ErrBadVersion = errors.New("builder: unsupported file version")
)

// FileHeader opens every baked navigation file.
type FileHeader struct {
	Magic   uint32
	Version uint32
}

// VolumeData is the baked form of a navigation volume: the configuration,
// the static scene records and the octree occupancy arena. The node graph
// holds no collision results and is rebuilt from the configuration on load,
// the statics travel along so a restored scene can be re-analyzed later.
type VolumeData struct {
	Config      volume.Config       `json:"config"`
	MinCellSize float32             `json:"min_cell_size"`
	DepthLimit  int32               `json:"depth_limit"`
	Statics     []scene.StaticEntry `json:"statics,omitempty"`
	Nodes       []octree.Node       `json:"nodes"`
}

// NodeCount returns the number of octree nodes in the baked arena.
func (d *VolumeData) NodeCount() int {
	return len(d.Nodes)
}

// StaticCount returns the number of baked static scene records.
func (d *VolumeData) StaticCount() int {
	return len(d.Statics)
}

// Validate checks the baked data for internal consistency before it is
// written out or restored into a live volume.
func (d *VolumeData) Validate() error {
	if _, err := d.Config.Validate(); err != nil {
		return err
	}
	if d.DepthLimit < octree.MinDepthLimit || d.DepthLimit > octree.MaxDepthLimit {
		return fmt.Errorf("depth limit %d out of range", d.DepthLimit)
	}
	if d.MinCellSize <= 0 {
		return fmt.Errorf("min cell size %f must be positive", d.MinCellSize)
	}
	for i, static := range d.Statics {
		if static.Geometry == nil {
			return fmt.Errorf("static %d has no geometry", i)
		}
	}

	count := int32(len(d.Nodes))
	for i, node := range d.Nodes {
		if node.IsLeaf() {
			continue
		}
		if node.ChildBase < 0 || node.ChildBase+8 > count {
			return fmt.Errorf("node %d has child block %d outside arena of %d", i, node.ChildBase, count)
		}
	}
	return nil
}
