package geometry

import (
	"github.com/o0olele/gridnav-go/math32"
)

// Capsule is a capsule geometry
type Capsule struct {
	Start  math32.Vector3 `json:"start"`
	End    math32.Vector3 `json:"end"`
	Radius float32        `json:"radius"`
}

// NewUprightCapsule builds a Y-up capsule centered at position. halfHeight is
// half the length of the cylindrical segment, excluding the hemisphere caps.
func NewUprightCapsule(position math32.Vector3, radius, halfHeight float32) Capsule {
	return Capsule{
		Start:  math32.Vector3{X: position.X, Y: position.Y - halfHeight, Z: position.Z},
		End:    math32.Vector3{X: position.X, Y: position.Y + halfHeight, Z: position.Z},
		Radius: radius,
	}
}

// GetBounds returns the bounding box of the capsule
func (c *Capsule) GetBounds() AABB {
	minX := math32.Min(c.Start.X, c.End.X) - c.Radius
	maxX := math32.Max(c.Start.X, c.End.X) + c.Radius
	minY := math32.Min(c.Start.Y, c.End.Y) - c.Radius
	maxY := math32.Max(c.Start.Y, c.End.Y) + c.Radius
	minZ := math32.Min(c.Start.Z, c.End.Z) - c.Radius
	maxZ := math32.Max(c.Start.Z, c.End.Z) + c.Radius
	return AABB{
		Min: math32.Vector3{X: minX, Y: minY, Z: minZ},
		Max: math32.Vector3{X: maxX, Y: maxY, Z: maxZ},
	}
}

// IntersectsAABB checks if the capsule intersects with an AABB. The test is
// conservative: it may report an overlap for a near miss around the capsule
// caps, never the other way around.
func (c *Capsule) IntersectsAABB(aabb AABB) bool {
	bounds := c.GetBounds()
	return bounds.Intersects(aabb)
}

// ContainsPoint checks if the point is inside the capsule
func (c *Capsule) ContainsPoint(point math32.Vector3) bool {
	return PointToSegmentDistance(point, c.Start, c.End) <= c.Radius
}

// OverlapsCapsule checks if two capsules overlap.
func (c *Capsule) OverlapsCapsule(other Capsule) bool {
	dist := SegmentSegmentDistance(c.Start, c.End, other.Start, other.End)
	return dist <= c.Radius+other.Radius
}

// Shape returns the wire tag for capsules.
func (c *Capsule) Shape() Shape {
	return ShapeCapsule
}
