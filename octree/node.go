package octree

import "github.com/o0olele/gridnav-go/geometry"

const (
	// 1bit isLeaf 1bit isBlocked
	FlagsLeaf    uint8 = 0b10
	FlagsBlocked uint8 = 0b01
)

// NoChild marks a node without children.
const NoChild int32 = -1

// Node is a single box of the occupancy octree. Nodes live in the arena
// owned by Octree; an internal node's eight children are the consecutive
// arena entries starting at ChildBase, ordered by octant index (bit0 high X,
// bit1 high Y, bit2 high Z).
type Node struct {
	Bounds    geometry.AABB `json:"bounds"`
	ChildBase int32         `json:"child_base"`
	Depth     uint8         `json:"depth"`
	Flags     uint8         `json:"flags"` // 1bit isLeaf 1bit isBlocked
}

func (node *Node) SetBlocked(blocked bool) {
	if blocked {
		node.Flags |= FlagsBlocked
	} else {
		node.Flags &= 0b11111110
	}
}

func (node *Node) SetLeaf(isLeaf bool) {
	if isLeaf {
		node.Flags |= FlagsLeaf
	} else {
		node.Flags &= 0b11111101
	}
}

func (node *Node) IsLeaf() bool {
	return node.Flags&FlagsLeaf == FlagsLeaf
}

func (node *Node) IsBlocked() bool {
	return node.Flags&FlagsBlocked == FlagsBlocked
}
