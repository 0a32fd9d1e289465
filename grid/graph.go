package grid

import (
	"github.com/o0olele/gridnav-go/math32"
)

// NavNode is a navigable cell of the lattice. Neighbors holds the flat
// indices of every linked node. Traversal state (costs, parents) lives in
// per-query buffers, not on the node.
type NavNode struct {
	Coord     math32.Vector3i `json:"coord"`
	Neighbors []int32         `json:"neighbors"`
}

// neighborOffset pairs one of the 26 unit cube offsets with the number of
// axes it leaves unchanged. Face neighbors share two axes, edge neighbors
// one, corner neighbors none.
type neighborOffset struct {
	delta      math32.Vector3i
	sharedAxes int32
}

var neighborOffsets = makeNeighborOffsets()

func makeNeighborOffsets() []neighborOffset {
	offsets := make([]neighborOffset, 0, 26)
	for dz := int32(-1); dz <= 1; dz++ {
		for dy := int32(-1); dy <= 1; dy++ {
			for dx := int32(-1); dx <= 1; dx++ {
				if dx == 0 && dy == 0 && dz == 0 {
					continue
				}
				var shared int32
				if dx == 0 {
					shared++
				}
				if dy == 0 {
					shared++
				}
				if dz == 0 {
					shared++
				}
				offsets = append(offsets, neighborOffset{
					delta:      math32.Vector3i{X: dx, Y: dy, Z: dz},
					sharedAxes: shared,
				})
			}
		}
	}
	return offsets
}

// Graph is the navigation graph over a lattice. Nodes are stored in a flat
// slice ordered by Lattice.Index and reference each other by index.
type Graph struct {
	Lattice
	MinSharedAxes int32
	Nodes         []NavNode
}

// NewGraph creates an unpopulated graph over the given lattice.
// minSharedAxes selects the connectivity pattern: 0 links all 26 neighbors,
// 1 drops corners (18), 2 keeps faces only (6). Values outside [0,2] clamp.
func NewGraph(lat Lattice, minSharedAxes int32) (*Graph, error) {
	if err := lat.Validate(); err != nil {
		return nil, err
	}
	return &Graph{
		Lattice:       lat,
		MinSharedAxes: math32.Clamp(minSharedAxes, 0, 2),
	}, nil
}

// Populate allocates the node array and links every pair of adjacent cells
// that shares at least MinSharedAxes axes. Calling it again rebuilds the
// graph from scratch.
func (g *Graph) Populate() {
	g.Nodes = make([]NavNode, g.NodeCount())
	for i := range g.Nodes {
		coord := g.Coord(int32(i))
		g.Nodes[i].Coord = coord
		for _, offset := range neighborOffsets {
			if offset.sharedAxes < g.MinSharedAxes {
				continue
			}
			neighbor := coord.Add(offset.delta)
			if !g.Contains(neighbor) {
				continue
			}
			g.Nodes[i].Neighbors = append(g.Nodes[i].Neighbors, g.Index(neighbor))
		}
	}
}

// Populated reports whether the node array is allocated.
func (g *Graph) Populated() bool {
	return g.Nodes != nil
}

// GetNode returns the node at a cell coordinate, clamping out-of-range
// coordinates to the nearest valid cell. It returns nil only when the graph
// has not been populated.
func (g *Graph) GetNode(c math32.Vector3i) *NavNode {
	if !g.Populated() {
		return nil
	}
	return &g.Nodes[g.Index(g.Lattice.Clamp(c))]
}

// NodeAt returns the node at a flat index, or nil when the index is out of
// range or the graph has not been populated.
func (g *Graph) NodeAt(index int32) *NavNode {
	if index < 0 || int(index) >= len(g.Nodes) {
		return nil
	}
	return &g.Nodes[index]
}

// Release drops the node array. Safe to call on an unpopulated graph.
func (g *Graph) Release() {
	g.Nodes = nil
}

// LinkCount returns the total number of directed neighbor links.
func (g *Graph) LinkCount() int {
	total := 0
	for i := range g.Nodes {
		total += len(g.Nodes[i].Neighbors)
	}
	return total
}
