package triage

import (
	"errors"
	"reflect"
	"testing"
)

func TestQueue_InsertAndSnapshot(t *testing.T) {
	q := NewQueue()

	mustInsert(t, q, "A", 40)
	mustInsert(t, q, "B", 100)
	mustInsert(t, q, "C", 70)

	want := []RankedEntry{
		{PatientID: "B", Score: 100, Rank: 1},
		{PatientID: "C", Score: 70, Rank: 2},
		{PatientID: "A", Score: 40, Rank: 3},
	}
	if got := q.Snapshot(); !reflect.DeepEqual(got, want) {
		t.Errorf("Snapshot() = %v, want %v", got, want)
	}

	// Pop the highest and re-check ranks
	entry, err := q.PopHighest()
	if err != nil {
		t.Fatalf("PopHighest() error: %v", err)
	}
	if entry.PatientID != "B" || entry.Score != 100 {
		t.Errorf("PopHighest() = (%s, %d), want (B, 100)", entry.PatientID, entry.Score)
	}

	want = []RankedEntry{
		{PatientID: "C", Score: 70, Rank: 1},
		{PatientID: "A", Score: 40, Rank: 2},
	}
	if got := q.Snapshot(); !reflect.DeepEqual(got, want) {
		t.Errorf("Snapshot() after pop = %v, want %v", got, want)
	}
}

func TestQueue_PopOrderNonIncreasing(t *testing.T) {
	q := NewQueue()

	scores := map[string]int{
		"P1": 55, "P2": 90, "P3": 10, "P4": 100, "P5": 70, "P6": 40, "P7": 70,
	}
	for id, score := range scores {
		mustInsert(t, q, id, score)
	}

	prev := 101
	for q.Len() > 0 {
		entry, err := q.PopHighest()
		if err != nil {
			t.Fatalf("PopHighest() error: %v", err)
		}
		if entry.Score > prev {
			t.Errorf("pop order violated: score %d after %d", entry.Score, prev)
		}
		prev = entry.Score
	}
}

func TestQueue_FIFOTieBreak(t *testing.T) {
	q := NewQueue()

	mustInsert(t, q, "first", 40)
	mustInsert(t, q, "second", 40)
	mustInsert(t, q, "third", 40)

	want := []string{"first", "second", "third"}
	for i, id := range want {
		entry, err := q.PopHighest()
		if err != nil {
			t.Fatalf("PopHighest() error: %v", err)
		}
		if entry.PatientID != id {
			t.Errorf("pop %d = %s, want %s", i, entry.PatientID, id)
		}
	}
}

func TestQueue_DuplicateInsert(t *testing.T) {
	q := NewQueue()
	mustInsert(t, q, "P1", 60)

	err := q.Insert("P1", 95)
	if !errors.Is(err, ErrDuplicatePatient) {
		t.Fatalf("Insert() duplicate error = %v, want ErrDuplicatePatient", err)
	}

	// The existing entry must be completely untouched
	entry, err := q.PeekHighest()
	if err != nil {
		t.Fatalf("PeekHighest() error: %v", err)
	}
	if entry.Score != 60 {
		t.Errorf("score after failed insert = %d, want 60", entry.Score)
	}
	if q.Len() != 1 {
		t.Errorf("Len() after failed insert = %d, want 1", q.Len())
	}
}

func TestQueue_InsertRemoveRoundTrip(t *testing.T) {
	q := NewQueue()
	mustInsert(t, q, "P1", 80)
	mustInsert(t, q, "P2", 50)

	before := q.Snapshot()

	mustInsert(t, q, "P3", 65)
	if err := q.Remove("P3"); err != nil {
		t.Fatalf("Remove() error: %v", err)
	}

	if got := q.Snapshot(); !reflect.DeepEqual(got, before) {
		t.Errorf("Snapshot() after insert+remove = %v, want %v", got, before)
	}
}

func TestQueue_UpdatePriority(t *testing.T) {
	q := NewQueue()
	mustInsert(t, q, "P1", 30)
	mustInsert(t, q, "P2", 60)
	mustInsert(t, q, "P3", 90)

	if err := q.UpdatePriority("P1", 95); err != nil {
		t.Fatalf("UpdatePriority() error: %v", err)
	}

	pos, err := q.PositionOf("P1")
	if err != nil {
		t.Fatalf("PositionOf() error: %v", err)
	}
	if pos != 1 {
		t.Errorf("PositionOf(P1) after update = %d, want 1", pos)
	}

	entry, err := q.PeekHighest()
	if err != nil {
		t.Fatalf("PeekHighest() error: %v", err)
	}
	if entry.PatientID != "P1" || entry.Score != 95 {
		t.Errorf("PeekHighest() = (%s, %d), want (P1, 95)", entry.PatientID, entry.Score)
	}
}

func TestQueue_UpdatePreservesArrivalOrder(t *testing.T) {
	q := NewQueue()
	mustInsert(t, q, "early", 40)
	mustInsert(t, q, "late", 70)

	// Raising early to tie with late must still rank early first: the
	// arrival sequence number survives the update.
	if err := q.UpdatePriority("early", 70); err != nil {
		t.Fatalf("UpdatePriority() error: %v", err)
	}

	entry, err := q.PopHighest()
	if err != nil {
		t.Fatalf("PopHighest() error: %v", err)
	}
	if entry.PatientID != "early" {
		t.Errorf("PopHighest() after tying update = %s, want early", entry.PatientID)
	}
}

func TestQueue_UpdateMissing(t *testing.T) {
	q := NewQueue()
	mustInsert(t, q, "P1", 50)

	before := q.Snapshot()

	err := q.UpdatePriority("ghost", 99)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("UpdatePriority() missing error = %v, want ErrNotFound", err)
	}

	if got := q.Snapshot(); !reflect.DeepEqual(got, before) {
		t.Errorf("Snapshot() after failed update = %v, want %v", got, before)
	}
}

func TestQueue_RemoveMissing(t *testing.T) {
	q := NewQueue()

	if err := q.Remove("ghost"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Remove() missing error = %v, want ErrNotFound", err)
	}
	if _, err := q.PositionOf("ghost"); !errors.Is(err, ErrNotFound) {
		t.Errorf("PositionOf() missing error = %v, want ErrNotFound", err)
	}
}

func TestQueue_Empty(t *testing.T) {
	q := NewQueue()

	if _, err := q.PopHighest(); !errors.Is(err, ErrEmptyQueue) {
		t.Errorf("PopHighest() on empty = %v, want ErrEmptyQueue", err)
	}
	if _, err := q.PeekHighest(); !errors.Is(err, ErrEmptyQueue) {
		t.Errorf("PeekHighest() on empty = %v, want ErrEmptyQueue", err)
	}
	if got := q.Snapshot(); len(got) != 0 {
		t.Errorf("Snapshot() on empty has %d entries, want 0", len(got))
	}
}

func TestQueue_PositionOf(t *testing.T) {
	q := NewQueue()
	mustInsert(t, q, "A", 40)
	mustInsert(t, q, "B", 100)
	mustInsert(t, q, "C", 70)
	mustInsert(t, q, "D", 70) // ties with C, arrived later

	tests := []struct {
		id   string
		want int
	}{
		{"B", 1},
		{"C", 2},
		{"D", 3},
		{"A", 4},
	}

	for _, tt := range tests {
		pos, err := q.PositionOf(tt.id)
		if err != nil {
			t.Fatalf("PositionOf(%s) error: %v", tt.id, err)
		}
		if pos != tt.want {
			t.Errorf("PositionOf(%s) = %d, want %d", tt.id, pos, tt.want)
		}
	}
}

func TestQueue_ReAddAfterRemoval(t *testing.T) {
	q := NewQueue()
	mustInsert(t, q, "P1", 50)
	mustInsert(t, q, "P2", 50)

	if err := q.Remove("P1"); err != nil {
		t.Fatalf("Remove() error: %v", err)
	}

	// Re-added patient is a fresh arrival and now loses the tie
	mustInsert(t, q, "P1", 50)

	entry, err := q.PopHighest()
	if err != nil {
		t.Fatalf("PopHighest() error: %v", err)
	}
	if entry.PatientID != "P2" {
		t.Errorf("PopHighest() = %s, want P2 (P1 re-arrived later)", entry.PatientID)
	}
}

func TestQueue_PeekQueueLimit(t *testing.T) {
	q := NewQueue()
	for _, e := range []struct {
		id    string
		score int
	}{{"A", 10}, {"B", 90}, {"C", 50}, {"D", 70}} {
		mustInsert(t, q, e.id, e.score)
	}

	top := q.PeekQueue(2)
	if len(top) != 2 {
		t.Fatalf("PeekQueue(2) returned %d entries, want 2", len(top))
	}
	if top[0].PatientID != "B" || top[1].PatientID != "D" {
		t.Errorf("PeekQueue(2) = [%s, %s], want [B, D]", top[0].PatientID, top[1].PatientID)
	}

	// Peek must not consume anything
	if q.Len() != 4 {
		t.Errorf("Len() after PeekQueue = %d, want 4", q.Len())
	}
}

func TestQueue_ImmediateCount(t *testing.T) {
	q := NewQueue()
	mustInsert(t, q, "P1", 95)
	mustInsert(t, q, "P2", 90)
	mustInsert(t, q, "P3", 89)

	if got := q.ImmediateCount(); got != 2 {
		t.Errorf("ImmediateCount() = %d, want 2", got)
	}
}

func TestQueue_Clear(t *testing.T) {
	q := NewQueue()
	mustInsert(t, q, "P1", 80)
	q.Clear()

	if q.Len() != 0 {
		t.Errorf("Len() after Clear = %d, want 0", q.Len())
	}

	// Arrival counter resets with the queue
	mustInsert(t, q, "P2", 10)
	entries := q.Dump()
	if len(entries) != 1 || entries[0].Seq != 0 {
		t.Errorf("Dump() after Clear = %v, want single entry with seq 0", entries)
	}
}

func TestQueue_DumpRestore(t *testing.T) {
	q := NewQueue()
	mustInsert(t, q, "early", 70)
	mustInsert(t, q, "late", 70)
	mustInsert(t, q, "top", 90)

	restored := NewQueue()
	if err := restored.Restore(q.Dump()); err != nil {
		t.Fatalf("Restore() error: %v", err)
	}

	if got, want := restored.Snapshot(), q.Snapshot(); !reflect.DeepEqual(got, want) {
		t.Errorf("Snapshot() after restore = %v, want %v", got, want)
	}

	// Tie-break ordering survives the round trip
	_, _ = restored.PopHighest() // top
	entry, err := restored.PopHighest()
	if err != nil {
		t.Fatalf("PopHighest() error: %v", err)
	}
	if entry.PatientID != "early" {
		t.Errorf("PopHighest() after restore = %s, want early", entry.PatientID)
	}

	// New arrivals continue past the restored sequence numbers
	mustInsert(t, restored, "newest", 70)
	for _, e := range restored.Dump() {
		if e.PatientID == "newest" && e.Seq < 3 {
			t.Errorf("restored queue assigned seq %d to new arrival, want >= 3", e.Seq)
		}
	}
}

func TestQueue_RestoreDuplicate(t *testing.T) {
	q := NewQueue()
	err := q.Restore([]Entry{
		{PatientID: "P1", Score: 50, Seq: 0},
		{PatientID: "P1", Score: 70, Seq: 1},
	})
	if !errors.Is(err, ErrDuplicatePatient) {
		t.Fatalf("Restore() duplicate error = %v, want ErrDuplicatePatient", err)
	}
	if q.Len() != 0 {
		t.Errorf("Len() after failed restore = %d, want 0", q.Len())
	}
}

func mustInsert(t *testing.T, q *Queue, id string, score int) {
	t.Helper()
	if err := q.Insert(id, score); err != nil {
		t.Fatalf("Insert(%s, %d) error: %v", id, score, err)
	}
}
