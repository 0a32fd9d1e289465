// Package octree implements the static occupancy index of a navigation
// volume. The volume box subdivides until cells reach a minimum size or a
// depth limit, and each resulting leaf records whether static geometry
// overlaps it. Lookups descend from the root in O(depth limit).
package octree

import (
	"github.com/o0olele/gridnav-go/geometry"
	"github.com/o0olele/gridnav-go/math32"
)

// sizeTolerance pads the min-cell comparison so boxes within float error of
// the minimum still count as leaves.
const sizeTolerance = 1e-4

const (
	// MinDepthLimit and MaxDepthLimit bound the configurable depth limit.
	MinDepthLimit int32 = 1
	MaxDepthLimit int32 = 10
)

// BlockedFunc reports whether any static geometry overlaps a box. Build
// issues it exactly once per leaf.
type BlockedFunc func(bounds geometry.AABB) bool

// Octree is an arena-backed occupancy tree. Nodes are stored in a flat
// slice with the root at index 0 and children referenced by index, so
// teardown is a single arena release. The zero value is an unbuilt tree.
type Octree struct {
	nodes       []Node
	minCellSize float32
	depthLimit  int32
}

// Build constructs the tree over bounds, splitting every box whose largest
// side still exceeds minCellSize until maxDepth levels below the root.
// maxDepth clamps to [MinDepthLimit, MaxDepthLimit]. A nil blocked
// predicate marks every leaf free. Building an already built tree discards
// the previous arena first.
func (o *Octree) Build(bounds geometry.AABB, minCellSize float32, maxDepth int32, blocked BlockedFunc) {
	o.Destroy()
	if blocked == nil {
		blocked = func(geometry.AABB) bool { return false }
	}
	o.minCellSize = minCellSize
	o.depthLimit = math32.Clamp(maxDepth, MinDepthLimit, MaxDepthLimit)
	o.nodes = append(o.nodes, Node{Bounds: bounds, ChildBase: NoChild})
	o.build(0, 0, blocked)
}

func (o *Octree) build(index, depth int32, blocked BlockedFunc) {
	bounds := o.nodes[index].Bounds
	if bounds.MaxSide() <= o.minCellSize+sizeTolerance || depth >= o.depthLimit {
		o.nodes[index].SetLeaf(true)
		o.nodes[index].SetBlocked(blocked(bounds))
		return
	}

	// Children go in one contiguous block so a single base index reaches
	// all eight. Appending may move the arena, so nodes are re-indexed
	// instead of held by pointer across the appends.
	base := int32(len(o.nodes))
	o.nodes[index].ChildBase = base
	for i := 0; i < 8; i++ {
		o.nodes = append(o.nodes, Node{
			Bounds:    bounds.Octant(i),
			ChildBase: NoChild,
			Depth:     uint8(depth + 1),
		})
	}
	for i := int32(0); i < 8; i++ {
		o.build(base+i, depth+1, blocked)
	}
}

// QueryPointBlocked reports whether the leaf containing the point is
// blocked. An unbuilt tree reports false, blockage analysis that has not
// run yet never bars movement.
func (o *Octree) QueryPointBlocked(point math32.Vector3) bool {
	if len(o.nodes) == 0 {
		return false
	}
	node := &o.nodes[0]
	for !node.IsLeaf() {
		center := node.Bounds.Center()
		var octant int32
		if point.X >= center.X {
			octant |= 1
		}
		if point.Y >= center.Y {
			octant |= 2
		}
		if point.Z >= center.Z {
			octant |= 4
		}
		node = &o.nodes[node.ChildBase+octant]
	}
	return node.IsBlocked()
}

// Destroy releases the arena. Safe to call on an unbuilt tree.
func (o *Octree) Destroy() {
	o.nodes = nil
}

// Built reports whether the tree holds nodes.
func (o *Octree) Built() bool {
	return len(o.nodes) > 0
}

// Nodes exposes the arena for serialization and debug payloads. Callers
// must not mutate it.
func (o *Octree) Nodes() []Node {
	return o.nodes
}

// MinCellSize returns the size threshold the tree was built with.
func (o *Octree) MinCellSize() float32 {
	return o.minCellSize
}

// DepthLimit returns the clamped depth limit the tree was built with.
func (o *Octree) DepthLimit() int32 {
	return o.depthLimit
}

// Restore replaces the tree contents with a previously captured arena.
func (o *Octree) Restore(nodes []Node, minCellSize float32, depthLimit int32) {
	o.nodes = nodes
	o.minCellSize = minCellSize
	o.depthLimit = depthLimit
}

// NodeCount returns the total number of nodes.
func (o *Octree) NodeCount() int {
	return len(o.nodes)
}

// LeafCount returns the number of leaves.
func (o *Octree) LeafCount() int {
	count := 0
	for i := range o.nodes {
		if o.nodes[i].IsLeaf() {
			count++
		}
	}
	return count
}

// BlockedLeafCount returns the number of blocked leaves.
func (o *Octree) BlockedLeafCount() int {
	count := 0
	for i := range o.nodes {
		if o.nodes[i].IsLeaf() && o.nodes[i].IsBlocked() {
			count++
		}
	}
	return count
}

// MaxDepthUsed returns the deepest level present in the tree, 0 for a tree
// of a single root leaf.
func (o *Octree) MaxDepthUsed() int32 {
	var deepest uint8
	for i := range o.nodes {
		if o.nodes[i].Depth > deepest {
			deepest = o.nodes[i].Depth
		}
	}
	return int32(deepest)
}

// LeafBounds collects leaf boxes for debug rendering, all leaves or only
// the blocked ones.
func (o *Octree) LeafBounds(onlyBlocked bool) []geometry.AABB {
	boxes := make([]geometry.AABB, 0)
	for i := range o.nodes {
		if !o.nodes[i].IsLeaf() {
			continue
		}
		if onlyBlocked && !o.nodes[i].IsBlocked() {
			continue
		}
		boxes = append(boxes, o.nodes[i].Bounds)
	}
	return boxes
}
