package volume

import (
	"github.com/o0olele/gridnav-go/geometry"
	"github.com/o0olele/gridnav-go/math32"
)

// LineSegment is one debug wireframe line in world space.
type LineSegment struct {
	Start math32.Vector3 `json:"start"`
	End   math32.Vector3 `json:"end"`
}

// GridLines returns the lattice wireframe as three line families: lines
// running the full Y extent on every XZ lattice corner, the full X extent
// on every YZ corner, and the full Z extent on every XY corner. Pure,
// usable before Build.
func (v *Volume) GridLines() []LineSegment {
	lat := v.config.Lattice()
	size := lat.CellSize
	origin := lat.Origin
	div := lat.Divisions
	bound := div.ToVector3().Mul(size)

	count := int(div.X+1)*int(div.Z+1) +
		int(div.Y+1)*int(div.Z+1) +
		int(div.X+1)*int(div.Y+1)
	lines := make([]LineSegment, 0, count)

	// Full-Y lines on every XZ corner.
	for z := int32(0); z <= div.Z; z++ {
		for x := int32(0); x <= div.X; x++ {
			start := origin.Add(math32.Vector3{X: float32(x) * size, Z: float32(z) * size})
			end := start
			end.Y += bound.Y
			lines = append(lines, LineSegment{Start: start, End: end})
		}
	}

	// Full-X lines on every YZ corner.
	for z := int32(0); z <= div.Z; z++ {
		for y := int32(0); y <= div.Y; y++ {
			start := origin.Add(math32.Vector3{Y: float32(y) * size, Z: float32(z) * size})
			end := start
			end.X += bound.X
			lines = append(lines, LineSegment{Start: start, End: end})
		}
	}

	// Full-Z lines on every XY corner.
	for x := int32(0); x <= div.X; x++ {
		for y := int32(0); y <= div.Y; y++ {
			start := origin.Add(math32.Vector3{X: float32(x) * size, Y: float32(y) * size})
			end := start
			end.Z += bound.Z
			lines = append(lines, LineSegment{Start: start, End: end})
		}
	}

	return lines
}

// LeafBoxes returns the octree leaf bounds for debug rendering, optionally
// only the blocked leaves. Empty until the volume is built.
func (v *Volume) LeafBoxes(onlyBlocked bool) []geometry.AABB {
	return v.tree.LeafBounds(onlyBlocked)
}
