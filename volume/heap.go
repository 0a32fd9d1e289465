package volume

import "sync"

// heapNode is one open-set entry of the A* search.
type heapNode struct {
	nodeID int32
	fScore float32
	seq    uint64
	index  int
}

// openHeap orders open-set entries by ascending f-score. Equal scores fall
// back to insertion sequence, so pop order is reproducible run to run.
type openHeap []*heapNode

func (h openHeap) Len() int { return len(h) }
func (h openHeap) Less(i, j int) bool {
	if h[i].fScore != h[j].fScore {
		return h[i].fScore < h[j].fScore
	}
	return h[i].seq < h[j].seq
}
func (h openHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

// Push pushes a new node to the heap
func (h *openHeap) Push(x interface{}) {
	n := len(*h)
	item := x.(*heapNode)
	item.index = n
	*h = append(*h, item)
}

// Pop pops a node from the heap
func (h *openHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*h = old[0 : n-1]
	return item
}

// Clear returns every remaining entry to the pool.
func (h *openHeap) Clear() {
	for _, node := range *h {
		heapNodePool.Put(node)
	}
	*h = (*h)[:0]
}

// heapNodePool recycles open-set entries across queries.
var heapNodePool = sync.Pool{
	New: func() interface{} {
		return &heapNode{index: -1}
	},
}

// newHeapNode creates a new heap node
func newHeapNode(nodeID int32, fScore float32, seq uint64) *heapNode {
	node := heapNodePool.Get().(*heapNode)
	node.nodeID = nodeID
	node.fScore = fScore
	node.seq = seq
	node.index = -1
	return node
}
