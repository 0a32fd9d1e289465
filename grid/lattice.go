// Package grid provides the regular lattice a navigable volume is divided
// into and the navigation graph linking its cells.
package grid

import (
	"errors"

	"github.com/o0olele/gridnav-go/geometry"
	"github.com/o0olele/gridnav-go/math32"
)

var (
	// ErrInvalidDivisions is returned when a lattice axis has no cells.
	ErrInvalidDivisions = errors.New("grid: divisions must be positive on every axis")
	// ErrInvalidCellSize is returned when the cell size is not positive.
	ErrInvalidCellSize = errors.New("grid: cell size must be positive")
)

// Lattice maps between world space and integer cell coordinates. The world
// box spans [Origin, Origin + Divisions*CellSize] and is always axis-aligned.
type Lattice struct {
	Divisions math32.Vector3i `json:"divisions"`
	CellSize  float32         `json:"cell_size"`
	Origin    math32.Vector3  `json:"origin"`
}

// Validate reports whether the lattice dimensions can index a node array.
func (l Lattice) Validate() error {
	if l.Divisions.X <= 0 || l.Divisions.Y <= 0 || l.Divisions.Z <= 0 {
		return ErrInvalidDivisions
	}
	if l.CellSize <= 0 {
		return ErrInvalidCellSize
	}
	return nil
}

// Bounds returns the world-space box covered by the lattice.
func (l Lattice) Bounds() geometry.AABB {
	size := l.Divisions.ToVector3().Mul(l.CellSize)
	return geometry.NewAABB(l.Origin, size)
}

// NodeCount returns the number of cells in the lattice.
func (l Lattice) NodeCount() int {
	return int(l.Divisions.X) * int(l.Divisions.Y) * int(l.Divisions.Z)
}

// Clamp limits a cell coordinate to the valid range on each axis.
func (l Lattice) Clamp(c math32.Vector3i) math32.Vector3i {
	return c.Clamp(math32.Vector3i{}, math32.Vector3i{
		X: l.Divisions.X - 1,
		Y: l.Divisions.Y - 1,
		Z: l.Divisions.Z - 1,
	})
}

// Contains reports whether a cell coordinate lies inside the lattice.
func (l Lattice) Contains(c math32.Vector3i) bool {
	return c.X >= 0 && c.X < l.Divisions.X &&
		c.Y >= 0 && c.Y < l.Divisions.Y &&
		c.Z >= 0 && c.Z < l.Divisions.Z
}

// Index returns the flat node index of a cell coordinate. The coordinate must
// be inside the lattice.
func (l Lattice) Index(c math32.Vector3i) int32 {
	return c.Z*(l.Divisions.X*l.Divisions.Y) + c.Y*l.Divisions.X + c.X
}

// Coord is the inverse of Index.
func (l Lattice) Coord(index int32) math32.Vector3i {
	plane := l.Divisions.X * l.Divisions.Y
	z := index / plane
	rem := index % plane
	return math32.Vector3i{X: rem % l.Divisions.X, Y: rem / l.Divisions.X, Z: z}
}

// WorldToGrid converts a world position to the cell containing it.
// Out-of-volume positions clamp to the nearest boundary cell, so the result
// is always a valid coordinate.
func (l Lattice) WorldToGrid(world math32.Vector3) math32.Vector3i {
	rel := world.Sub(l.Origin).Mul(1 / l.CellSize)
	return math32.Vector3i{
		X: clampCellAxis(rel.X, l.Divisions.X),
		Y: clampCellAxis(rel.Y, l.Divisions.Y),
		Z: clampCellAxis(rel.Z, l.Divisions.Z),
	}
}

// clampCellAxis floors a cell-space offset to an index in [0, divisions).
// The range check happens before the integer conversion, conversion of an
// out-of-range float is implementation dependent.
func clampCellAxis(v float32, divisions int32) int32 {
	if v <= 0 {
		return 0
	}
	if v >= float32(divisions) {
		return divisions - 1
	}
	return int32(v)
}

// GridToWorld converts a cell coordinate to the world position of the cell
// center. Out-of-range coordinates clamp first, so the result is always a
// valid world point.
func (l Lattice) GridToWorld(c math32.Vector3i) math32.Vector3 {
	c = l.Clamp(c)
	half := l.CellSize / 2
	return math32.Vector3{
		X: l.Origin.X + float32(c.X)*l.CellSize + half,
		Y: l.Origin.Y + float32(c.Y)*l.CellSize + half,
		Z: l.Origin.Z + float32(c.Z)*l.CellSize + half,
	}
}
