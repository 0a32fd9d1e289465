// Package volume ties the lattice graph, the occupancy octree and the
// overlap queries together into the pathfinding facade: build a volume over
// a region, then ask it for paths between world positions.
package volume

import (
	"errors"
	"time"

	"github.com/o0olele/gridnav-go/geometry"
	"github.com/o0olele/gridnav-go/grid"
	"github.com/o0olele/gridnav-go/math32"
	"github.com/o0olele/gridnav-go/octree"
	"github.com/o0olele/gridnav-go/scene"
)

var (
	// ErrAlreadyBuilt is returned when Build runs twice without a teardown.
	ErrAlreadyBuilt = errors.New("volume: already built, teardown first")
	// ErrNotBuilt is returned by queries on a volume without a graph.
	ErrNotBuilt = errors.New("volume: not built")
	// ErrNoFreeGoal is returned when no free cell is reachable from a
	// blocked goal.
	ErrNoFreeGoal = errors.New("volume: no free goal node near destination")
	// ErrNoFreeNode is returned when a nearest-free search exhausts.
	ErrNoFreeNode = errors.New("volume: no free node reachable")
	// ErrNoPath is returned when the search exhausts without reaching the
	// goal.
	ErrNoPath = errors.New("volume: no path between start and goal")
)

// OverlapSource supplies the two blockage layers a volume consults: static
// geometry analysis at build time and live obstacle probes at query time.
// Implementations must be safe for the volume's callers, the volume itself
// adds no locking.
type OverlapSource interface {
	StaticOverlap(bounds geometry.AABB, mask scene.Category) bool
	DynamicOverlap(position math32.Vector3, radius, halfHeight float32, ignoreID uint64, mask scene.Category, kind string) bool
}

// Config describes a navigation volume. Rotation and Scale exist because
// placements carry them, both are tolerated and ignored, Validate reports
// them as warnings.
type Config struct {
	Divisions         math32.Vector3i `json:"divisions" yaml:"divisions"`
	CellSize          float32         `json:"cell_size" yaml:"cell_size"`
	Origin            math32.Vector3  `json:"origin" yaml:"origin"`
	Rotation          math32.Vector3  `json:"rotation" yaml:"rotation"`
	Scale             math32.Vector3  `json:"scale" yaml:"scale"`
	MinSharedAxes     int32           `json:"min_shared_axes" yaml:"min_shared_axes"`
	OctreeMinCellSize float32         `json:"octree_min_cell_size" yaml:"octree_min_cell_size"`
	OctreeMaxDepth    int32           `json:"octree_max_depth" yaml:"octree_max_depth"`
	StaticFilter      scene.Category  `json:"static_filter" yaml:"static_filter"`
}

// DefaultConfig mirrors the stock volume: 10x10x10 cells of 100 units,
// full 26-connectivity, octree leaves at cell size with depth limit 5,
// blockage analysis against world-static geometry.
func DefaultConfig() Config {
	return Config{
		Divisions:         math32.Vector3i{X: 10, Y: 10, Z: 10},
		CellSize:          100,
		Scale:             math32.Vector3{X: 1, Y: 1, Z: 1},
		OctreeMinCellSize: 100,
		OctreeMaxDepth:    5,
		StaticFilter:      scene.WorldStatic,
	}
}

// Lattice returns the coordinate mapping the config describes.
func (c Config) Lattice() grid.Lattice {
	return grid.Lattice{
		Divisions: c.Divisions,
		CellSize:  c.CellSize,
		Origin:    c.Origin,
	}
}

// Validate checks the configuration. Dimensions the index arithmetic cannot
// take are hard errors. Placement settings the volume tolerates but ignores
// come back as warnings.
func (c Config) Validate() ([]string, error) {
	if err := c.Lattice().Validate(); err != nil {
		return nil, err
	}

	var warnings []string
	if c.Rotation != (math32.Vector3{}) {
		warnings = append(warnings, "rotation is ignored, keep the volume unrotated")
	}
	if !isUnitScale(c.Scale) {
		warnings = append(warnings, "scale is ignored, keep scale at (1,1,1)")
	}
	return warnings, nil
}

// isUnitScale tolerates the zero value, an unset scale means unscaled.
func isUnitScale(s math32.Vector3) bool {
	if s == (math32.Vector3{}) {
		return true
	}
	const tolerance = 1e-4
	return math32.Abs(s.X-1) <= tolerance &&
		math32.Abs(s.Y-1) <= tolerance &&
		math32.Abs(s.Z-1) <= tolerance
}

// BuildStats summarize one build pass.
type BuildStats struct {
	NodeCount        int     `json:"node_count"`
	LinkCount        int     `json:"link_count"`
	OctreeNodeCount  int     `json:"octree_node_count"`
	OctreeLeafCount  int     `json:"octree_leaf_count"`
	BlockedLeafCount int     `json:"blocked_leaf_count"`
	OctreeDepth      int32   `json:"octree_depth"`
	BuildMillis      float64 `json:"build_ms"`
}

// Volume is a navigable region: a lattice of cells linked into a graph,
// overlaid with a static occupancy octree, queried through FindPath. The
// graph and octree are shared read-only state, callers must not overlap a
// rebuild with queries.
type Volume struct {
	config   Config
	source   OverlapSource
	graph    *grid.Graph
	tree     octree.Octree
	warnings []string
	stats    BuildStats
	built    bool
}

// New validates the config and prepares an unbuilt volume over the given
// overlap source. A nil source means no static geometry and no dynamic
// obstacles.
func New(config Config, source OverlapSource) (*Volume, error) {
	warnings, err := config.Validate()
	if err != nil {
		return nil, err
	}
	return &Volume{
		config:   config,
		source:   source,
		warnings: warnings,
	}, nil
}

// Build populates the navigation graph, then constructs the occupancy
// octree over the same bounds. Building an already built volume fails,
// teardown first.
func (v *Volume) Build() (BuildStats, error) {
	if v.built {
		return BuildStats{}, ErrAlreadyBuilt
	}

	started := time.Now()

	graph, err := grid.NewGraph(v.config.Lattice(), v.config.MinSharedAxes)
	if err != nil {
		return BuildStats{}, err
	}
	graph.Populate()

	minCell := math32.Max(v.config.OctreeMinCellSize, v.config.CellSize)
	v.tree.Build(graph.Bounds(), minCell, v.config.OctreeMaxDepth, v.staticBlocked)

	v.graph = graph
	v.built = true
	v.stats = v.collectStats(started)
	return v.stats, nil
}

// RestoreBuild populates the graph and adopts a previously serialized
// octree arena instead of re-running blockage analysis.
func (v *Volume) RestoreBuild(nodes []octree.Node, minCellSize float32, depthLimit int32) (BuildStats, error) {
	if v.built {
		return BuildStats{}, ErrAlreadyBuilt
	}

	started := time.Now()

	graph, err := grid.NewGraph(v.config.Lattice(), v.config.MinSharedAxes)
	if err != nil {
		return BuildStats{}, err
	}
	graph.Populate()

	v.tree.Restore(nodes, minCellSize, depthLimit)
	v.graph = graph
	v.built = true
	v.stats = v.collectStats(started)
	return v.stats, nil
}

func (v *Volume) collectStats(started time.Time) BuildStats {
	return BuildStats{
		NodeCount:        v.graph.NodeCount(),
		LinkCount:        v.graph.LinkCount(),
		OctreeNodeCount:  v.tree.NodeCount(),
		OctreeLeafCount:  v.tree.LeafCount(),
		BlockedLeafCount: v.tree.BlockedLeafCount(),
		OctreeDepth:      v.tree.MaxDepthUsed(),
		BuildMillis:      float64(time.Since(started).Microseconds()) / 1000,
	}
}

func (v *Volume) staticBlocked(bounds geometry.AABB) bool {
	if v.source == nil {
		return false
	}
	return v.source.StaticOverlap(bounds, v.config.StaticFilter)
}

func (v *Volume) dynamicOccupied(position math32.Vector3, opts ProbeOptions) bool {
	if v.source == nil {
		return false
	}
	return v.source.DynamicOverlap(position, opts.Radius, opts.HalfHeight, opts.Ignore, opts.Filter, opts.Kind)
}

// Teardown releases the graph and the octree. Safe to call repeatedly and
// on a never-built volume.
func (v *Volume) Teardown() {
	if v.graph != nil {
		v.graph.Release()
		v.graph = nil
	}
	v.tree.Destroy()
	v.built = false
	v.stats = BuildStats{}
}

// Built reports whether the volume currently holds a graph and octree.
func (v *Volume) Built() bool {
	return v.built
}

// Config returns the volume configuration.
func (v *Volume) Config() Config {
	return v.config
}

// Warnings returns the non-fatal diagnostics Validate produced.
func (v *Volume) Warnings() []string {
	return v.warnings
}

// Stats returns the stats of the last build, zero when torn down.
func (v *Volume) Stats() BuildStats {
	return v.stats
}

// Bounds returns the world box the volume covers.
func (v *Volume) Bounds() geometry.AABB {
	return v.config.Lattice().Bounds()
}

// Octree exposes the occupancy tree for persistence and debug payloads.
func (v *Volume) Octree() *octree.Octree {
	return &v.tree
}

// WorldToGrid converts a world position to the containing cell, clamping
// out-of-volume positions to the boundary. Pure, usable before Build.
func (v *Volume) WorldToGrid(world math32.Vector3) math32.Vector3i {
	return v.config.Lattice().WorldToGrid(world)
}

// GridToWorld converts a cell coordinate to its center in world space,
// clamping out-of-range coordinates. Pure, usable before Build.
func (v *Volume) GridToWorld(coord math32.Vector3i) math32.Vector3 {
	return v.config.Lattice().GridToWorld(coord)
}

// QueryPointBlocked reports whether static analysis marked the cell under
// the world point blocked. Unbuilt volumes report free.
func (v *Volume) QueryPointBlocked(world math32.Vector3) bool {
	return v.tree.QueryPointBlocked(world)
}
