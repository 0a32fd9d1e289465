package geometry

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/o0olele/gridnav-go/math32"
)

func TestAABBContains(t *testing.T) {
	box := AABB{Min: math32.Vector3{X: 0, Y: 0, Z: 0}, Max: math32.Vector3{X: 10, Y: 10, Z: 10}}

	require.True(t, box.Contains(math32.Vector3{X: 5, Y: 5, Z: 5}))
	require.True(t, box.Contains(math32.Vector3{X: 0, Y: 0, Z: 0}))
	require.True(t, box.Contains(math32.Vector3{X: 10, Y: 10, Z: 10}))
	require.False(t, box.Contains(math32.Vector3{X: -0.1, Y: 5, Z: 5}))
	require.False(t, box.Contains(math32.Vector3{X: 5, Y: 10.1, Z: 5}))
}

func TestAABBIntersects(t *testing.T) {
	a := AABB{Min: math32.Vector3{X: 0, Y: 0, Z: 0}, Max: math32.Vector3{X: 10, Y: 10, Z: 10}}

	tests := []struct {
		name string
		b    AABB
		want bool
	}{
		{"overlap", AABB{math32.Vector3{X: 5, Y: 5, Z: 5}, math32.Vector3{X: 15, Y: 15, Z: 15}}, true},
		{"touching face", AABB{math32.Vector3{X: 10, Y: 0, Z: 0}, math32.Vector3{X: 20, Y: 10, Z: 10}}, true},
		{"contained", AABB{math32.Vector3{X: 2, Y: 2, Z: 2}, math32.Vector3{X: 4, Y: 4, Z: 4}}, true},
		{"separate", AABB{math32.Vector3{X: 20, Y: 20, Z: 20}, math32.Vector3{X: 30, Y: 30, Z: 30}}, false},
		{"separate one axis", AABB{math32.Vector3{X: 0, Y: 11, Z: 0}, math32.Vector3{X: 10, Y: 20, Z: 10}}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, a.Intersects(tc.b))
		})
	}
}

func TestAABBOctant(t *testing.T) {
	box := AABB{Min: math32.Vector3{X: 0, Y: 0, Z: 0}, Max: math32.Vector3{X: 8, Y: 8, Z: 8}}

	low := box.Octant(0)
	require.Equal(t, math32.Vector3{X: 0, Y: 0, Z: 0}, low.Min)
	require.Equal(t, math32.Vector3{X: 4, Y: 4, Z: 4}, low.Max)

	high := box.Octant(7)
	require.Equal(t, math32.Vector3{X: 4, Y: 4, Z: 4}, high.Min)
	require.Equal(t, math32.Vector3{X: 8, Y: 8, Z: 8}, high.Max)

	xHigh := box.Octant(1)
	require.Equal(t, math32.Vector3{X: 4, Y: 0, Z: 0}, xHigh.Min)
	require.Equal(t, math32.Vector3{X: 8, Y: 4, Z: 4}, xHigh.Max)

	zHigh := box.Octant(4)
	require.Equal(t, math32.Vector3{X: 0, Y: 0, Z: 4}, zHigh.Min)
	require.Equal(t, math32.Vector3{X: 4, Y: 4, Z: 8}, zHigh.Max)

	// The 8 octants exactly tile the parent.
	var volume float32
	for i := 0; i < 8; i++ {
		child := box.Octant(i)
		size := child.Size()
		volume += size.X * size.Y * size.Z
	}
	parent := box.Size()
	require.InDelta(t, parent.X*parent.Y*parent.Z, volume, 1e-3)
}

func TestAABBMaxSide(t *testing.T) {
	box := AABB{Min: math32.Vector3{X: 0, Y: 0, Z: 0}, Max: math32.Vector3{X: 2, Y: 7, Z: 4}}
	require.InDelta(t, 7.0, box.MaxSide(), 1e-6)
}

func TestBoxGeometry(t *testing.T) {
	b := &Box{Center: math32.Vector3{X: 5, Y: 5, Z: 5}, Size: math32.Vector3{X: 2, Y: 2, Z: 2}}

	bounds := b.GetBounds()
	require.Equal(t, math32.Vector3{X: 4, Y: 4, Z: 4}, bounds.Min)
	require.Equal(t, math32.Vector3{X: 6, Y: 6, Z: 6}, bounds.Max)

	require.True(t, b.ContainsPoint(math32.Vector3{X: 5, Y: 5, Z: 5}))
	require.False(t, b.ContainsPoint(math32.Vector3{X: 7, Y: 5, Z: 5}))
	require.True(t, b.IntersectsAABB(AABB{math32.Vector3{X: 5.5, Y: 5.5, Z: 5.5}, math32.Vector3{X: 9, Y: 9, Z: 9}}))
	require.False(t, b.IntersectsAABB(AABB{math32.Vector3{X: 7, Y: 7, Z: 7}, math32.Vector3{X: 9, Y: 9, Z: 9}}))
	require.Equal(t, ShapeBox, b.Shape())
}

func TestCapsuleGeometry(t *testing.T) {
	c := NewUprightCapsule(math32.Vector3{X: 0, Y: 0, Z: 0}, 1, 2)

	require.Equal(t, math32.Vector3{X: 0, Y: -2, Z: 0}, c.Start)
	require.Equal(t, math32.Vector3{X: 0, Y: 2, Z: 0}, c.End)

	bounds := c.GetBounds()
	require.Equal(t, math32.Vector3{X: -1, Y: -3, Z: -1}, bounds.Min)
	require.Equal(t, math32.Vector3{X: 1, Y: 3, Z: 1}, bounds.Max)

	require.True(t, c.ContainsPoint(math32.Vector3{X: 0, Y: 0, Z: 0.5}))
	require.True(t, c.ContainsPoint(math32.Vector3{X: 0, Y: 2.9, Z: 0}))
	require.False(t, c.ContainsPoint(math32.Vector3{X: 0, Y: 3.2, Z: 0}))
	require.Equal(t, ShapeCapsule, c.Shape())
}

func TestCapsuleOverlapsCapsule(t *testing.T) {
	a := NewUprightCapsule(math32.Vector3{X: 0, Y: 0, Z: 0}, 1, 2)

	tests := []struct {
		name string
		b    Capsule
		want bool
	}{
		{"same spot", NewUprightCapsule(math32.Vector3{X: 0, Y: 0, Z: 0}, 1, 2), true},
		{"side by side touching", NewUprightCapsule(math32.Vector3{X: 2, Y: 0, Z: 0}, 1, 2), true},
		{"side by side apart", NewUprightCapsule(math32.Vector3{X: 2.5, Y: 0, Z: 0}, 1, 2), false},
		{"stacked overlapping", NewUprightCapsule(math32.Vector3{X: 0, Y: 4, Z: 0}, 1, 2), true},
		{"stacked apart", NewUprightCapsule(math32.Vector3{X: 0, Y: 6.5, Z: 0}, 1, 2), false},
		{"diagonal near", NewUprightCapsule(math32.Vector3{X: 1, Y: 3, Z: 1}, 1, 2), true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, a.OverlapsCapsule(tc.b))
			require.Equal(t, tc.want, tc.b.OverlapsCapsule(a))
		})
	}
}

func TestTriangleIntersectsAABB(t *testing.T) {
	tri := &Triangle{
		A: math32.Vector3{X: 0, Y: 0, Z: 0},
		B: math32.Vector3{X: 4, Y: 0, Z: 0},
		C: math32.Vector3{X: 0, Y: 4, Z: 0},
	}

	tests := []struct {
		name string
		box  AABB
		want bool
	}{
		{"through the middle", AABB{math32.Vector3{X: 1, Y: 1, Z: -1}, math32.Vector3{X: 2, Y: 2, Z: 1}}, true},
		{"triangle inside box", AABB{math32.Vector3{X: -1, Y: -1, Z: -1}, math32.Vector3{X: 5, Y: 5, Z: 1}}, true},
		{"above the plane", AABB{math32.Vector3{X: 0, Y: 0, Z: 1}, math32.Vector3{X: 2, Y: 2, Z: 3}}, false},
		{"beyond the hypotenuse", AABB{math32.Vector3{X: 3, Y: 3, Z: -1}, math32.Vector3{X: 5, Y: 5, Z: 1}}, false},
		{"far away", AABB{math32.Vector3{X: 10, Y: 10, Z: 10}, math32.Vector3{X: 12, Y: 12, Z: 12}}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, tri.IntersectsAABB(tc.box))
		})
	}
}

func TestTriangleNormal(t *testing.T) {
	tri := &Triangle{
		A: math32.Vector3{X: 0, Y: 0, Z: 0},
		B: math32.Vector3{X: 1, Y: 0, Z: 0},
		C: math32.Vector3{X: 0, Y: 1, Z: 0},
	}
	require.Equal(t, math32.Vector3{X: 0, Y: 0, Z: 1}, tri.GetNormal())
}

func TestConvexMeshContainsPoint(t *testing.T) {
	// Unit cube as a convex hull with outward faces.
	cm := &ConvexMesh{
		Vertices: []math32.Vector3{
			{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 1, Y: 1, Z: 0}, {X: 0, Y: 1, Z: 0},
			{X: 0, Y: 0, Z: 1}, {X: 1, Y: 0, Z: 1}, {X: 1, Y: 1, Z: 1}, {X: 0, Y: 1, Z: 1},
		},
		Faces: [][]int32{
			{0, 2, 1}, {0, 3, 2}, // bottom (z=0), outward -z
			{4, 5, 6}, {4, 6, 7}, // top (z=1), outward +z
			{0, 1, 5}, {0, 5, 4}, // front (y=0)
			{2, 3, 7}, {2, 7, 6}, // back (y=1)
			{1, 2, 6}, {1, 6, 5}, // right (x=1)
			{3, 0, 4}, {3, 4, 7}, // left (x=0)
		},
	}

	require.True(t, cm.ContainsPoint(math32.Vector3{X: 0.5, Y: 0.5, Z: 0.5}))
	require.False(t, cm.ContainsPoint(math32.Vector3{X: 1.5, Y: 0.5, Z: 0.5}))
	require.False(t, cm.ContainsPoint(math32.Vector3{X: 0.5, Y: 0.5, Z: -0.5}))

	bounds := cm.GetBounds()
	require.Equal(t, math32.Vector3{X: 0, Y: 0, Z: 0}, bounds.Min)
	require.Equal(t, math32.Vector3{X: 1, Y: 1, Z: 1}, bounds.Max)
}

func TestSegmentSegmentDistance(t *testing.T) {
	tests := []struct {
		name           string
		p1, q1, p2, q2 math32.Vector3
		want           float32
	}{
		{
			"crossing at right angles",
			math32.Vector3{X: -1, Y: 0, Z: 0}, math32.Vector3{X: 1, Y: 0, Z: 0},
			math32.Vector3{X: 0, Y: -1, Z: 1}, math32.Vector3{X: 0, Y: 1, Z: 1},
			1,
		},
		{
			"parallel",
			math32.Vector3{X: 0, Y: 0, Z: 0}, math32.Vector3{X: 4, Y: 0, Z: 0},
			math32.Vector3{X: 0, Y: 3, Z: 0}, math32.Vector3{X: 4, Y: 3, Z: 0},
			3,
		},
		{
			"endpoint to endpoint",
			math32.Vector3{X: 0, Y: 0, Z: 0}, math32.Vector3{X: 1, Y: 0, Z: 0},
			math32.Vector3{X: 4, Y: 4, Z: 0}, math32.Vector3{X: 4, Y: 8, Z: 0},
			5,
		},
		{
			"degenerate points",
			math32.Vector3{X: 0, Y: 0, Z: 0}, math32.Vector3{X: 0, Y: 0, Z: 0},
			math32.Vector3{X: 0, Y: 0, Z: 7}, math32.Vector3{X: 0, Y: 0, Z: 7},
			7,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.InDelta(t, tc.want, SegmentSegmentDistance(tc.p1, tc.q1, tc.p2, tc.q2), 1e-4)
		})
	}
}

func TestGetCapsuleAABB(t *testing.T) {
	bounds := GetCapsuleAABB(math32.Vector3{X: 10, Y: 10, Z: 10}, 2, 3)
	require.Equal(t, math32.Vector3{X: 8, Y: 5, Z: 8}, bounds.Min)
	require.Equal(t, math32.Vector3{X: 12, Y: 15, Z: 12}, bounds.Max)
}
