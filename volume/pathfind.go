package volume

import (
	"container/heap"
	"math"

	"github.com/o0olele/gridnav-go/math32"
)

// unreachedCost marks cells the search has not costed yet.
const unreachedCost float32 = math.MaxFloat32

// FindPath searches a shortest free-cell path between two world positions
// and returns the cell-center waypoints from the start cell to the goal
// cell inclusive.
//
// A statically blocked goal relocates to the nearest free cell first, and a
// goal that is merely occupied by a live obstacle relocates the same way.
// The start is taken as-is, a blocked start cell can still open into free
// neighbors. Failures are ErrNotBuilt, ErrNoFreeGoal and ErrNoPath.
func (v *Volume) FindPath(start, goal math32.Vector3, opts ProbeOptions) ([]math32.Vector3, error) {
	if !v.built || v.graph == nil || !v.graph.Populated() {
		return nil, ErrNotBuilt
	}
	opts = opts.withDefaults()

	startID := v.graph.Index(v.graph.WorldToGrid(start))
	goalID := v.graph.Index(v.graph.WorldToGrid(goal))

	// Endpoint recovery applies to the goal only. A relocated goal is free
	// on both layers already, the dynamic branch runs only when static
	// analysis left the goal in place.
	goalFinalized := false
	if v.tree.QueryPointBlocked(v.graph.GridToWorld(v.graph.NodeAt(goalID).Coord)) {
		relocated, ok := v.findNearestFree(goalID, opts)
		if !ok {
			return nil, ErrNoFreeGoal
		}
		goalID = relocated
		goalFinalized = true
	}
	if !goalFinalized && v.dynamicOccupied(v.graph.GridToWorld(v.graph.NodeAt(goalID).Coord), opts) {
		relocated, ok := v.findNearestFree(goalID, opts)
		if !ok {
			return nil, ErrNoFreeGoal
		}
		goalID = relocated
	}

	query := newPathQuery(v, opts)
	defer query.release()
	return query.run(startID, goalID)
}

// pathQuery is the transient state of one A* search. Costs and predecessors
// live in dense per-query slices indexed like the node array, nothing
// persists across calls.
type pathQuery struct {
	volume   *Volume
	opts     ProbeOptions
	gScore   []float32
	cameFrom []int32
	visited  math32.Bitmap
	open     openHeap
	seq      uint64
}

func newPathQuery(v *Volume, opts ProbeOptions) *pathQuery {
	count := v.graph.NodeCount()
	gScore := make([]float32, count)
	cameFrom := make([]int32, count)
	for i := 0; i < count; i++ {
		gScore[i] = unreachedCost
		cameFrom[i] = -1
	}
	return &pathQuery{
		volume:   v,
		opts:     opts,
		gScore:   gScore,
		cameFrom: cameFrom,
		open:     make(openHeap, 0, 64),
	}
}

func (q *pathQuery) release() {
	q.open.Clear()
}

func (q *pathQuery) push(nodeID int32, fScore float32) {
	q.seq++
	heap.Push(&q.open, newHeapNode(nodeID, fScore, q.seq))
}

// run drives the A* loop. Edge costs and the heuristic are both Euclidean
// distances in grid-coordinate space, which keeps the heuristic admissible
// and consistent, diagonal links carry their true cost.
func (q *pathQuery) run(startID, goalID int32) ([]math32.Vector3, error) {
	graph := q.volume.graph
	goalCoord := graph.NodeAt(goalID).Coord

	q.gScore[startID] = 0
	q.push(startID, graph.NodeAt(startID).Coord.Distance(goalCoord))

	for q.open.Len() > 0 {
		top := heap.Pop(&q.open).(*heapNode)
		currentID := top.nodeID
		heapNodePool.Put(top)

		// Entries landing in the heap before a cheaper route finalized the
		// node are stale, drop them here instead of re-expanding.
		if q.visited.Contains(uint32(currentID)) {
			continue
		}
		q.visited.Set(uint32(currentID))

		if currentID == goalID {
			return q.reconstruct(startID, goalID), nil
		}

		current := graph.NodeAt(currentID)
		currentG := q.gScore[currentID]

		for _, neighborID := range current.Neighbors {
			neighbor := graph.NodeAt(neighborID)
			world := graph.GridToWorld(neighbor.Coord)

			if q.volume.tree.QueryPointBlocked(world) {
				continue
			}

			tentative := currentG + current.Coord.Distance(neighbor.Coord)
			if tentative >= q.gScore[neighborID] {
				continue
			}

			// The dynamic probe is the expensive filter, it runs only for
			// edges that would actually improve the neighbor. An occupied
			// neighbor keeps its previous cost and predecessor.
			if q.volume.dynamicOccupied(world, q.opts) {
				continue
			}

			q.gScore[neighborID] = tentative
			q.cameFrom[neighborID] = currentID
			if !q.visited.Contains(uint32(neighborID)) {
				q.push(neighborID, tentative+neighbor.Coord.Distance(goalCoord))
			}
		}
	}

	return nil, ErrNoPath
}

// reconstruct walks the predecessor chain from the goal back to the start
// and returns the world-space cell centers in travel order.
func (q *pathQuery) reconstruct(startID, goalID int32) []math32.Vector3 {
	graph := q.volume.graph

	ids := make([]int32, 0, 16)
	for id := goalID; ; id = q.cameFrom[id] {
		ids = append(ids, id)
		if id == startID || q.cameFrom[id] < 0 {
			break
		}
	}

	path := make([]math32.Vector3, len(ids))
	for i, id := range ids {
		path[len(ids)-1-i] = graph.GridToWorld(graph.NodeAt(id).Coord)
	}
	return path
}
