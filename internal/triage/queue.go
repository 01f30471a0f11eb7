package triage

import (
	"container/heap"
	"sort"
	"sync"
)

// Queue is the ranked collection of patients awaiting care, ordered by
// priority score (higher first) with FIFO tie-breaking on arrival.
//
// The queue pairs an array-backed max-heap with an id index so that
// update and remove run in O(log n) instead of a linear scan. Every
// mutation either fully succeeds or fails without touching the queue.
//
// A Queue is an explicitly owned instance: construct it with NewQueue and
// inject it where needed. Methods are safe for one writer at a time with
// concurrent readers; the internal lock serializes access.
type Queue struct {
	mu      sync.RWMutex
	heap    patientHeap
	items   map[string]*queueItem // patient id -> heap item
	nextSeq uint64
}

// NewQueue creates an empty patient queue.
func NewQueue() *Queue {
	return &Queue{
		items: make(map[string]*queueItem),
	}
}

// Insert adds a patient with the given score, assigning the next arrival
// sequence number. Returns ErrDuplicatePatient if the id is already
// queued; the existing entry is left untouched.
func (q *Queue) Insert(id string, score int) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if _, ok := q.items[id]; ok {
		return ErrDuplicatePatient
	}

	item := &queueItem{id: id, score: score, seq: q.nextSeq}
	q.nextSeq++
	heap.Push(&q.heap, item)
	q.items[id] = item
	return nil
}

// PopHighest removes and returns the highest-ranked patient. Returns
// ErrEmptyQueue if no patients remain.
func (q *Queue) PopHighest() (Entry, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.heap.Len() == 0 {
		return Entry{}, ErrEmptyQueue
	}

	item, _ := heap.Pop(&q.heap).(*queueItem)
	delete(q.items, item.id)
	return Entry{PatientID: item.id, Score: item.score, Seq: item.seq}, nil
}

// PeekHighest returns the highest-ranked patient without removing it.
func (q *Queue) PeekHighest() (Entry, error) {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.heap.Len() == 0 {
		return Entry{}, ErrEmptyQueue
	}

	item := q.heap[0]
	return Entry{PatientID: item.id, Score: item.score, Seq: item.seq}, nil
}

// UpdatePriority replaces a patient's score and re-establishes the
// ordering. The arrival sequence number is preserved, so a re-ranked
// patient keeps their original tie-break position against entries with
// the same new score. Returns ErrNotFound if the id is absent.
func (q *Queue) UpdatePriority(id string, newScore int) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	item, ok := q.items[id]
	if !ok {
		return ErrNotFound
	}

	item.score = newScore
	heap.Fix(&q.heap, item.index)
	return nil
}

// Remove deletes a patient from the queue regardless of rank. Returns
// ErrNotFound if the id is absent. Re-adding the same id later creates a
// fresh entry with a new arrival sequence number.
func (q *Queue) Remove(id string) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	item, ok := q.items[id]
	if !ok {
		return ErrNotFound
	}

	heap.Remove(&q.heap, item.index)
	delete(q.items, id)
	return nil
}

// PositionOf returns the 1-based rank of a patient (1 = next to be
// served). Returns ErrNotFound if the id is absent.
func (q *Queue) PositionOf(id string) (int, error) {
	q.mu.RLock()
	defer q.mu.RUnlock()

	item, ok := q.items[id]
	if !ok {
		return 0, ErrNotFound
	}

	// Rank = entries strictly ahead, plus one
	pos := 1
	for _, other := range q.heap {
		if rankedBefore(other, item) {
			pos++
		}
	}
	return pos, nil
}

// Snapshot returns the full queue in rank order. It is read-only: scores
// and arrival sequence numbers are not touched.
func (q *Queue) Snapshot() []RankedEntry {
	return q.PeekQueue(0)
}

// PeekQueue returns the top limit patients in rank order without
// removing them. A limit of 0 or less returns the whole queue.
func (q *Queue) PeekQueue(limit int) []RankedEntry {
	q.mu.RLock()
	defer q.mu.RUnlock()

	sorted := make([]*queueItem, len(q.heap))
	copy(sorted, q.heap)
	sort.Slice(sorted, func(i, j int) bool {
		return rankedBefore(sorted[i], sorted[j])
	})

	if limit <= 0 || limit > len(sorted) {
		limit = len(sorted)
	}

	entries := make([]RankedEntry, 0, limit)
	for i := 0; i < limit; i++ {
		entries = append(entries, RankedEntry{
			PatientID: sorted[i].id,
			Score:     sorted[i].score,
			Rank:      i + 1,
		})
	}
	return entries
}

// Len returns the number of patients in the queue.
func (q *Queue) Len() int {
	q.mu.RLock()
	defer q.mu.RUnlock()

	return len(q.items)
}

// Contains checks if a patient is in the queue.
func (q *Queue) Contains(id string) bool {
	q.mu.RLock()
	defer q.mu.RUnlock()

	_, ok := q.items[id]
	return ok
}

// ImmediateCount returns the number of patients at or above the
// immediate-attention threshold.
func (q *Queue) ImmediateCount() int {
	q.mu.RLock()
	defer q.mu.RUnlock()

	count := 0
	for _, item := range q.heap {
		if item.score >= ImmediateThreshold {
			count++
		}
	}
	return count
}

// Clear empties the queue and resets the arrival counter.
func (q *Queue) Clear() {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.heap = nil
	q.items = make(map[string]*queueItem)
	q.nextSeq = 0
}

// Dump exports every entry, including arrival sequence numbers, in no
// particular order. Used by the state layer to persist the queue.
func (q *Queue) Dump() []Entry {
	q.mu.RLock()
	defer q.mu.RUnlock()

	entries := make([]Entry, 0, len(q.heap))
	for _, item := range q.heap {
		entries = append(entries, Entry{PatientID: item.id, Score: item.score, Seq: item.seq})
	}
	return entries
}

// Restore replaces the queue contents with previously dumped entries,
// preserving their arrival sequence numbers. The arrival counter resumes
// past the highest restored sequence. Returns ErrDuplicatePatient if two
// entries share an id; the queue is left empty in that case.
func (q *Queue) Restore(entries []Entry) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.heap = make(patientHeap, 0, len(entries))
	q.items = make(map[string]*queueItem, len(entries))
	q.nextSeq = 0

	for _, e := range entries {
		if _, ok := q.items[e.PatientID]; ok {
			q.heap = nil
			q.items = make(map[string]*queueItem)
			return ErrDuplicatePatient
		}
		item := &queueItem{id: e.PatientID, score: e.Score, seq: e.Seq, index: len(q.heap)}
		q.heap = append(q.heap, item)
		q.items[e.PatientID] = item
		if e.Seq >= q.nextSeq {
			q.nextSeq = e.Seq + 1
		}
	}

	heap.Init(&q.heap)
	return nil
}
