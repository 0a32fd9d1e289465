package volume

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/o0olele/gridnav-go/geometry"
	"github.com/o0olele/gridnav-go/math32"
	"github.com/o0olele/gridnav-go/scene"
)

// blockEverything covers the whole volume with a single static box.
func blockEverything(w *scene.World, cfg Config) {
	b := cfg.Lattice().Bounds()
	w.AddStatic(&geometry.Box{Center: b.Center(), Size: b.Size()}, scene.WorldStatic)
}

// walledConfig is a 5x5x5 volume split by a wall of blocked cells at x=2,
// with a single free cell left at the given coordinate.
func walledConfig() Config {
	cfg := DefaultConfig()
	cfg.Divisions = math32.Vector3i{X: 5, Y: 5, Z: 5}
	return cfg
}

func wallWithGap(cfg Config, gap math32.Vector3i) *scene.World {
	world := scene.NewWorld(0)
	for y := int32(0); y < cfg.Divisions.Y; y++ {
		for z := int32(0); z < cfg.Divisions.Z; z++ {
			cell := math32.Vector3i{X: 2, Y: y, Z: z}
			if cell == gap {
				continue
			}
			blockCell(world, cfg, cell)
		}
	}
	return world
}

func chebyshev(a, b math32.Vector3i) int32 {
	d := a.Sub(b)
	if d.X < 0 {
		d.X = -d.X
	}
	if d.Y < 0 {
		d.Y = -d.Y
	}
	if d.Z < 0 {
		d.Z = -d.Z
	}
	m := d.X
	if d.Y > m {
		m = d.Y
	}
	if d.Z > m {
		m = d.Z
	}
	return m
}

// pathCost sums the grid-space lengths of the edges along a waypoint list.
func pathCost(v *Volume, waypoints []math32.Vector3) float32 {
	var total float32
	for i := 1; i < len(waypoints); i++ {
		total += v.WorldToGrid(waypoints[i-1]).Distance(v.WorldToGrid(waypoints[i]))
	}
	return total
}

// dijkstraCost computes the optimal cost between two cells with a plain
// O(n^2) scan over static-free cells, as ground truth for the heap search.
func dijkstraCost(v *Volume, start, goal math32.Vector3i) float32 {
	n := v.graph.NodeCount()
	dist := make([]float32, n)
	done := make([]bool, n)
	for i := range dist {
		dist[i] = unreachedCost
	}
	goalID := v.graph.Index(goal)
	dist[v.graph.Index(start)] = 0

	for {
		u := int32(-1)
		best := unreachedCost
		for i, d := range dist {
			if !done[i] && d < best {
				best = d
				u = int32(i)
			}
		}
		if u < 0 {
			return unreachedCost
		}
		if u == goalID {
			return dist[u]
		}
		done[u] = true

		node := v.graph.NodeAt(u)
		for _, nb := range node.Neighbors {
			coord := v.graph.Coord(nb)
			if v.tree.QueryPointBlocked(v.GridToWorld(coord)) {
				continue
			}
			if alt := dist[u] + node.Coord.Distance(coord); alt < dist[nb] {
				dist[nb] = alt
			}
		}
	}
}

func TestFindPathStraightLine(t *testing.T) {
	v := buildVolume(t, smallConfig(), nil)

	start := math32.Vector3{X: 50, Y: 50, Z: 50}
	goal := math32.Vector3{X: 250, Y: 250, Z: 250}
	path, err := v.FindPath(start, goal, DefaultProbeOptions())
	require.NoError(t, err)

	// The space diagonal is the unique optimal route.
	require.Len(t, path, 3)
	require.Equal(t, start, path[0])
	require.Equal(t, math32.Vector3{X: 150, Y: 150, Z: 150}, path[1])
	require.Equal(t, goal, path[2])

	for i := 1; i < len(path); i++ {
		hop := chebyshev(v.WorldToGrid(path[i-1]), v.WorldToGrid(path[i]))
		require.Equal(t, int32(1), hop)
	}
}

func TestFindPathStartEqualsGoal(t *testing.T) {
	v := buildVolume(t, smallConfig(), nil)

	path, err := v.FindPath(math32.Vector3{X: 40, Y: 60, Z: 50}, math32.Vector3{X: 55, Y: 45, Z: 60}, DefaultProbeOptions())
	require.NoError(t, err)
	require.Equal(t, []math32.Vector3{{X: 50, Y: 50, Z: 50}}, path)
}

func TestFindPathSnapsToCellCenters(t *testing.T) {
	v := buildVolume(t, smallConfig(), nil)

	path, err := v.FindPath(math32.Vector3{X: 71, Y: 33, Z: 52}, math32.Vector3{X: 248, Y: 251, Z: 239}, DefaultProbeOptions())
	require.NoError(t, err)
	require.Equal(t, math32.Vector3{X: 50, Y: 50, Z: 50}, path[0])
	require.Equal(t, math32.Vector3{X: 250, Y: 250, Z: 250}, path[len(path)-1])
}

func TestFindPathBlockedStartStillExpands(t *testing.T) {
	cfg := smallConfig()
	world := scene.NewWorld(0)
	blockCell(world, cfg, math32.Vector3i{})

	v := buildVolume(t, cfg, world)
	require.True(t, v.QueryPointBlocked(math32.Vector3{X: 50, Y: 50, Z: 50}))

	// A blocked start is searched from as-is, only the goal relocates.
	path, err := v.FindPath(math32.Vector3{X: 50, Y: 50, Z: 50}, math32.Vector3{X: 250, Y: 250, Z: 250}, DefaultProbeOptions())
	require.NoError(t, err)
	require.Equal(t, math32.Vector3{X: 50, Y: 50, Z: 50}, path[0])
	require.Equal(t, math32.Vector3{X: 250, Y: 250, Z: 250}, path[len(path)-1])
}

func TestFindPathRelocatesBlockedGoal(t *testing.T) {
	cfg := smallConfig()
	world := scene.NewWorld(0)
	goal := math32.Vector3i{X: 2, Y: 2, Z: 2}
	blockCell(world, cfg, goal)

	v := buildVolume(t, cfg, world)

	path, err := v.FindPath(math32.Vector3{X: 50, Y: 50, Z: 50}, v.GridToWorld(goal), DefaultProbeOptions())
	require.NoError(t, err)

	end := v.WorldToGrid(path[len(path)-1])
	require.NotEqual(t, goal, end)
	require.Equal(t, int32(1), chebyshev(goal, end))
	require.False(t, v.QueryPointBlocked(path[len(path)-1]))
}

func TestFindPathEnclosedGoalFails(t *testing.T) {
	cfg := smallConfig()
	world := scene.NewWorld(0)
	blockEverything(world, cfg)

	v := buildVolume(t, cfg, world)

	_, err := v.FindPath(math32.Vector3{X: 50, Y: 50, Z: 50}, math32.Vector3{X: 250, Y: 250, Z: 250}, DefaultProbeOptions())
	require.ErrorIs(t, err, ErrNoFreeGoal)
}

func TestFindPathDisconnectedRegions(t *testing.T) {
	cfg := smallConfig()
	cfg.MinSharedAxes = 2 // face connectivity only, diagonals cannot leak past the wall
	world := scene.NewWorld(0)
	for y := int32(0); y < 3; y++ {
		for z := int32(0); z < 3; z++ {
			blockCell(world, cfg, math32.Vector3i{X: 1, Y: y, Z: z})
		}
	}

	v := buildVolume(t, cfg, world)

	_, err := v.FindPath(math32.Vector3{X: 50, Y: 150, Z: 150}, math32.Vector3{X: 250, Y: 150, Z: 150}, DefaultProbeOptions())
	require.ErrorIs(t, err, ErrNoPath)
}

func TestFindPathRoutesThroughGap(t *testing.T) {
	cfg := walledConfig()
	gap := math32.Vector3i{X: 2, Y: 4, Z: 4}
	v := buildVolume(t, cfg, wallWithGap(cfg, gap))

	start := math32.Vector3i{X: 0, Y: 0, Z: 0}
	goal := math32.Vector3i{X: 4, Y: 0, Z: 0}
	path, err := v.FindPath(v.GridToWorld(start), v.GridToWorld(goal), DefaultProbeOptions())
	require.NoError(t, err)

	// Unit steps cannot jump the wall plane, so the only crossing is the gap.
	require.Contains(t, path, v.GridToWorld(gap))

	want := dijkstraCost(v, start, goal)
	require.Less(t, want, unreachedCost)
	require.InDelta(t, want, pathCost(v, path), 1e-3)
	require.Greater(t, pathCost(v, path), float32(4)) // longer than the unwalled straight line
}

func TestFindPathMatchesExhaustiveSearch(t *testing.T) {
	cfg := walledConfig()
	v := buildVolume(t, cfg, wallWithGap(cfg, math32.Vector3i{X: 2, Y: 2, Z: 0}))

	pairs := []struct {
		start, goal math32.Vector3i
	}{
		{math32.Vector3i{X: 0, Y: 0, Z: 0}, math32.Vector3i{X: 4, Y: 4, Z: 4}},
		{math32.Vector3i{X: 0, Y: 4, Z: 0}, math32.Vector3i{X: 4, Y: 0, Z: 4}},
		{math32.Vector3i{X: 1, Y: 2, Z: 3}, math32.Vector3i{X: 3, Y: 2, Z: 1}},
		{math32.Vector3i{X: 0, Y: 2, Z: 2}, math32.Vector3i{X: 1, Y: 2, Z: 2}},
	}
	for _, pair := range pairs {
		path, err := v.FindPath(v.GridToWorld(pair.start), v.GridToWorld(pair.goal), DefaultProbeOptions())
		require.NoError(t, err)
		require.InDelta(t, dijkstraCost(v, pair.start, pair.goal), pathCost(v, path), 1e-3,
			"suboptimal path %v -> %v", pair.start, pair.goal)
	}
}

func TestFindPathDeterministic(t *testing.T) {
	cfg := walledConfig()
	v := buildVolume(t, cfg, wallWithGap(cfg, math32.Vector3i{X: 2, Y: 2, Z: 2}))

	start := math32.Vector3{X: 50, Y: 50, Z: 50}
	goal := math32.Vector3{X: 450, Y: 450, Z: 450}
	first, err := v.FindPath(start, goal, DefaultProbeOptions())
	require.NoError(t, err)
	second, err := v.FindPath(start, goal, DefaultProbeOptions())
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestFindPathAvoidsDynamicObstacle(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Divisions = math32.Vector3i{X: 5, Y: 3, Z: 1}
	world := scene.NewWorld(0)
	blocker, err := world.AddObstacle("crate", scene.WorldDynamic, math32.Vector3{X: 250, Y: 50, Z: 50}, 30, 50)
	require.NoError(t, err)

	v := buildVolume(t, cfg, world)

	start := math32.Vector3{X: 50, Y: 50, Z: 50}
	goal := math32.Vector3{X: 450, Y: 50, Z: 50}

	path, err := v.FindPath(start, goal, DefaultProbeOptions())
	require.NoError(t, err)
	require.Greater(t, pathCost(v, path), float32(4), "path should detour around the obstacle")
	require.NotContains(t, path, math32.Vector3{X: 250, Y: 50, Z: 50})

	// Ignoring the blocker restores the straight route.
	opts := DefaultProbeOptions()
	opts.Ignore = blocker.ID
	direct, err := v.FindPath(start, goal, opts)
	require.NoError(t, err)
	require.InDelta(t, float32(4), pathCost(v, direct), 1e-3)

	// A category mask that skips dynamics does the same.
	opts = DefaultProbeOptions()
	opts.Filter = scene.Pawn
	direct, err = v.FindPath(start, goal, opts)
	require.NoError(t, err)
	require.InDelta(t, float32(4), pathCost(v, direct), 1e-3)

	// As does a kind filter naming a different archetype.
	opts = DefaultProbeOptions()
	opts.Kind = "barrel"
	direct, err = v.FindPath(start, goal, opts)
	require.NoError(t, err)
	require.InDelta(t, float32(4), pathCost(v, direct), 1e-3)
}

func TestFindPathRelocatesDynamicallyOccupiedGoal(t *testing.T) {
	cfg := smallConfig()
	world := scene.NewWorld(0)
	goal := math32.Vector3i{X: 2, Y: 2, Z: 2}
	blocker, err := world.AddObstacle("crate", scene.WorldDynamic, cfg.Lattice().GridToWorld(goal), 30, 50)
	require.NoError(t, err)

	v := buildVolume(t, cfg, world)

	path, err := v.FindPath(math32.Vector3{X: 50, Y: 50, Z: 50}, v.GridToWorld(goal), DefaultProbeOptions())
	require.NoError(t, err)
	end := v.WorldToGrid(path[len(path)-1])
	require.NotEqual(t, goal, end)
	require.Equal(t, int32(1), chebyshev(goal, end))

	// The parked obstacle stops mattering once the probe ignores it.
	opts := DefaultProbeOptions()
	opts.Ignore = blocker.ID
	path, err = v.FindPath(math32.Vector3{X: 50, Y: 50, Z: 50}, v.GridToWorld(goal), opts)
	require.NoError(t, err)
	require.Equal(t, v.GridToWorld(goal), path[len(path)-1])
}
