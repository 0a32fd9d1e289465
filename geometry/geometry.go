package geometry

import (
	"github.com/o0olele/gridnav-go/math32"
)

// Shape identifies a concrete geometry type on the wire.
type Shape uint8

const (
	ShapeBox Shape = iota + 1
	ShapeCapsule
	ShapeTriangle
	ShapeConvexMesh
)

// String returns the lowercase name used in JSON payloads and scene files.
func (s Shape) String() string {
	switch s {
	case ShapeBox:
		return "box"
	case ShapeCapsule:
		return "capsule"
	case ShapeTriangle:
		return "triangle"
	case ShapeConvexMesh:
		return "convex_mesh"
	}
	return "unknown"
}

// Geometry is the interface implemented by every static shape.
type Geometry interface {
	GetBounds() AABB
	IntersectsAABB(aabb AABB) bool
	ContainsPoint(point math32.Vector3) bool
	Shape() Shape
}
