package volume

import "github.com/o0olele/gridnav-go/math32"

// FindNearestFree returns the closest cell to from that is neither
// statically blocked nor dynamically occupied, nearest by hop count over
// the graph links. The from cell itself is a candidate. Statically blocked
// cells still expand, the search walks through them to reach free space on
// the far side.
func (v *Volume) FindNearestFree(from math32.Vector3i, opts ProbeOptions) (math32.Vector3i, error) {
	if !v.built || v.graph == nil {
		return math32.Vector3i{}, ErrNotBuilt
	}

	opts = opts.withDefaults()
	id, ok := v.findNearestFree(v.graph.Index(v.graph.Clamp(from)), opts)
	if !ok {
		return math32.Vector3i{}, ErrNoFreeNode
	}
	return v.graph.NodeAt(id).Coord, nil
}

// findNearestFree is the breadth-first core shared with goal relocation.
// First hit wins, ties resolve by enqueue order, which the fixed
// neighbor-list order keeps deterministic.
func (v *Volume) findNearestFree(from int32, opts ProbeOptions) (int32, bool) {
	var visited math32.Bitmap
	queue := make([]int32, 0, 64)
	queue = append(queue, from)
	visited.Set(uint32(from))

	for head := 0; head < len(queue); head++ {
		id := queue[head]
		node := v.graph.NodeAt(id)
		world := v.graph.GridToWorld(node.Coord)

		if !v.tree.QueryPointBlocked(world) && !v.dynamicOccupied(world, opts) {
			return id, true
		}

		for _, neighbor := range node.Neighbors {
			if visited.Contains(uint32(neighbor)) {
				continue
			}
			visited.Set(uint32(neighbor))
			queue = append(queue, neighbor)
		}
	}
	return 0, false
}
