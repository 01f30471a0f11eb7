package triage

// queueItem wraps a patient with its score for heap operations
type queueItem struct {
	id    string
	score int    // Higher = more urgent (pop first)
	seq   uint64 // Arrival sequence, breaks score ties FIFO
	index int    // Index in heap, maintained by heap.Interface
}

// patientHeap implements heap.Interface as a max-heap on score with
// earlier arrivals winning ties
type patientHeap []*queueItem

func (h patientHeap) Len() int { return len(h) }

func (h patientHeap) Less(i, j int) bool {
	if h[i].score != h[j].score {
		// Higher score = higher priority (pop first)
		return h[i].score > h[j].score
	}
	// Equal scores: earlier arrival pops first
	return h[i].seq < h[j].seq
}

func (h patientHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *patientHeap) Push(x interface{}) {
	n := len(*h)
	item, _ := x.(*queueItem)
	item.index = n
	*h = append(*h, item)
}

func (h *patientHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil  // Avoid memory leak
	item.index = -1 // For safety
	*h = old[0 : n-1]
	return item
}

// rankedBefore reports whether a ranks strictly ahead of b under the
// ordering invariant.
func rankedBefore(a, b *queueItem) bool {
	if a.score != b.score {
		return a.score > b.score
	}
	return a.seq < b.seq
}
