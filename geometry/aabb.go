package geometry

import "github.com/o0olele/gridnav-go/math32"

// AABB is axis-aligned bounding box
type AABB struct {
	Min math32.Vector3 `json:"min"`
	Max math32.Vector3 `json:"max"`
}

// NewAABB builds an AABB from an origin corner and a size.
func NewAABB(origin, size math32.Vector3) AABB {
	return AABB{Min: origin, Max: origin.Add(size)}
}

// Contains checks if the point is inside the AABB
func (aabb *AABB) Contains(point math32.Vector3) bool {
	return point.X >= aabb.Min.X && point.X <= aabb.Max.X &&
		point.Y >= aabb.Min.Y && point.Y <= aabb.Max.Y &&
		point.Z >= aabb.Min.Z && point.Z <= aabb.Max.Z
}

// Center returns the center of the AABB
func (aabb *AABB) Center() math32.Vector3 {
	return math32.Vector3{
		X: (aabb.Min.X + aabb.Max.X) / 2,
		Y: (aabb.Min.Y + aabb.Max.Y) / 2,
		Z: (aabb.Min.Z + aabb.Max.Z) / 2,
	}
}

// Size returns the size of the AABB
func (aabb *AABB) Size() math32.Vector3 {
	return aabb.Max.Sub(aabb.Min)
}

// MaxSide returns the length of the longest axis of the AABB.
func (aabb *AABB) MaxSide() float32 {
	size := aabb.Size()
	return math32.Max(size.X, math32.Max(size.Y, size.Z))
}

// Intersects checks if the AABB intersects with another AABB
func (aabb *AABB) Intersects(other AABB) bool {
	return aabb.Min.X <= other.Max.X && aabb.Max.X >= other.Min.X &&
		aabb.Min.Y <= other.Max.Y && aabb.Max.Y >= other.Min.Y &&
		aabb.Min.Z <= other.Max.Z && aabb.Max.Z >= other.Min.Z
}

// IsEmpty checks if the AABB is empty (invalid)
func (aabb *AABB) IsEmpty() bool {
	return aabb.Min.X >= aabb.Max.X || aabb.Min.Y >= aabb.Max.Y || aabb.Min.Z >= aabb.Max.Z
}

// Octant returns the child box produced by bisecting the AABB at its center.
// Bit 0 of index selects the high X half, bit 1 the high Y half, bit 2 the
// high Z half.
func (aabb *AABB) Octant(index int) AABB {
	center := aabb.Center()
	child := AABB{Min: aabb.Min, Max: center}
	if index&1 != 0 {
		child.Min.X = center.X
		child.Max.X = aabb.Max.X
	}
	if index&2 != 0 {
		child.Min.Y = center.Y
		child.Max.Y = aabb.Max.Y
	}
	if index&4 != 0 {
		child.Min.Z = center.Z
		child.Max.Z = aabb.Max.Z
	}
	return child
}

// GetCapsuleAABB returns the AABB of an upright capsule centered at position,
// with halfHeight the segment half length along Y excluding the end caps.
func GetCapsuleAABB(position math32.Vector3, radius float32, halfHeight float32) AABB {
	return AABB{
		Min: math32.Vector3{
			X: position.X - radius,
			Y: position.Y - halfHeight - radius,
			Z: position.Z - radius,
		},
		Max: math32.Vector3{
			X: position.X + radius,
			Y: position.Y + halfHeight + radius,
			Z: position.Z + radius,
		},
	}
}
