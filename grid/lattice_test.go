package grid

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/o0olele/gridnav-go/math32"
)

func TestLatticeValidate(t *testing.T) {
	tests := []struct {
		name    string
		lattice Lattice
		wantErr error
	}{
		{
			name:    "valid",
			lattice: Lattice{Divisions: math32.Vector3i{X: 10, Y: 10, Z: 10}, CellSize: 100},
			wantErr: nil,
		},
		{
			name:    "zero divisions",
			lattice: Lattice{Divisions: math32.Vector3i{X: 10, Y: 0, Z: 10}, CellSize: 100},
			wantErr: ErrInvalidDivisions,
		},
		{
			name:    "negative divisions",
			lattice: Lattice{Divisions: math32.Vector3i{X: -1, Y: 10, Z: 10}, CellSize: 100},
			wantErr: ErrInvalidDivisions,
		},
		{
			name:    "zero cell size",
			lattice: Lattice{Divisions: math32.Vector3i{X: 10, Y: 10, Z: 10}, CellSize: 0},
			wantErr: ErrInvalidCellSize,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.lattice.Validate()
			if tt.wantErr == nil {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestLatticeBounds(t *testing.T) {
	lat := Lattice{
		Divisions: math32.Vector3i{X: 4, Y: 3, Z: 5},
		CellSize:  10,
		Origin:    math32.Vector3{X: -50, Y: 0, Z: 25},
	}

	bounds := lat.Bounds()
	require.Equal(t, math32.Vector3{X: -50, Y: 0, Z: 25}, bounds.Min)
	require.Equal(t, math32.Vector3{X: -10, Y: 30, Z: 75}, bounds.Max)
	require.Equal(t, 60, lat.NodeCount())
}

func TestLatticeIndexRoundTrip(t *testing.T) {
	lat := Lattice{Divisions: math32.Vector3i{X: 4, Y: 3, Z: 5}, CellSize: 10}

	seen := make(map[int32]bool)
	for z := int32(0); z < lat.Divisions.Z; z++ {
		for y := int32(0); y < lat.Divisions.Y; y++ {
			for x := int32(0); x < lat.Divisions.X; x++ {
				coord := math32.Vector3i{X: x, Y: y, Z: z}
				index := lat.Index(coord)
				require.False(t, seen[index], "index %d assigned twice", index)
				seen[index] = true
				require.Equal(t, coord, lat.Coord(index))
			}
		}
	}
	require.Len(t, seen, lat.NodeCount())
}

func TestLatticeWorldRoundTrip(t *testing.T) {
	lat := Lattice{
		Divisions: math32.Vector3i{X: 4, Y: 3, Z: 5},
		CellSize:  10,
		Origin:    math32.Vector3{X: -50, Y: 0, Z: 25},
	}

	for z := int32(0); z < lat.Divisions.Z; z++ {
		for y := int32(0); y < lat.Divisions.Y; y++ {
			for x := int32(0); x < lat.Divisions.X; x++ {
				coord := math32.Vector3i{X: x, Y: y, Z: z}
				world := lat.GridToWorld(coord)
				bounds := lat.Bounds()
				require.True(t, bounds.Contains(world))
				require.Equal(t, coord, lat.WorldToGrid(world))
			}
		}
	}
}

func TestLatticeWorldToGridClamps(t *testing.T) {
	lat := Lattice{
		Divisions: math32.Vector3i{X: 4, Y: 3, Z: 5},
		CellSize:  10,
		Origin:    math32.Vector3{X: 0, Y: 0, Z: 0},
	}

	tests := []struct {
		name  string
		world math32.Vector3
		want  math32.Vector3i
	}{
		{"far below origin", math32.Vector3{X: -1000, Y: -1000, Z: -1000}, math32.Vector3i{}},
		{"far past max", math32.Vector3{X: 1000, Y: 1000, Z: 1000}, math32.Vector3i{X: 3, Y: 2, Z: 4}},
		{"exact max corner", math32.Vector3{X: 40, Y: 30, Z: 50}, math32.Vector3i{X: 3, Y: 2, Z: 4}},
		{"cell boundary maps up", math32.Vector3{X: 10, Y: 0, Z: 0}, math32.Vector3i{X: 1}},
		{"mixed in and out", math32.Vector3{X: 15, Y: 99, Z: -5}, math32.Vector3i{X: 1, Y: 2, Z: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, lat.WorldToGrid(tt.world))
		})
	}
}

func TestLatticeGridToWorldClamps(t *testing.T) {
	lat := Lattice{
		Divisions: math32.Vector3i{X: 4, Y: 3, Z: 5},
		CellSize:  10,
		Origin:    math32.Vector3{X: 0, Y: 0, Z: 0},
	}

	require.Equal(t, lat.GridToWorld(math32.Vector3i{}), lat.GridToWorld(math32.Vector3i{X: -7, Y: -1, Z: -99}))
	require.Equal(t,
		lat.GridToWorld(math32.Vector3i{X: 3, Y: 2, Z: 4}),
		lat.GridToWorld(math32.Vector3i{X: 100, Y: 100, Z: 100}))
	require.Equal(t, math32.Vector3{X: 5, Y: 5, Z: 5}, lat.GridToWorld(math32.Vector3i{}))
}
