package cli

import (
	"testing"

	"github.com/openclinic/triageq/internal/config"
	"github.com/openclinic/triageq/internal/triage"
)

func TestWaitEstimate(t *testing.T) {
	ws := &workspace{cfg: config.DefaultConfig()}

	tests := []struct {
		position int
		want     int
	}{
		{1, 15},
		{2, 30},
		{5, 75},
	}

	for _, tt := range tests {
		if got := ws.waitEstimate(tt.position); got != tt.want {
			t.Errorf("waitEstimate(%d) = %d, want %d", tt.position, got, tt.want)
		}
	}
}

func TestColorScore_NonTerminal(t *testing.T) {
	// Test output is not a TTY, so scores must pass through uncolored
	if got := colorScore(95); got != "95" {
		t.Errorf("colorScore(95) = %q, want plain \"95\"", got)
	}
	if got := colorScore(40); got != "40" {
		t.Errorf("colorScore(40) = %q, want plain \"40\"", got)
	}
}

func TestQueueProvider_Ranked(t *testing.T) {
	q := triage.NewQueue()
	for _, e := range []struct {
		id    string
		score int
	}{{"PT-1", 95}, {"PT-2", 40}} {
		if err := q.Insert(e.id, e.score); err != nil {
			t.Fatalf("Insert(%s) error: %v", e.id, err)
		}
	}

	p := &queueProvider{ws: &workspace{cfg: config.DefaultConfig(), queue: q}}

	rows, err := p.Ranked()
	if err != nil {
		t.Fatalf("Ranked() error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("Ranked() has %d rows, want 2", len(rows))
	}

	if rows[0].PatientID != "PT-1" || !rows[0].Immediate {
		t.Errorf("rows[0] = %+v, want PT-1 flagged immediate", rows[0])
	}
	if rows[1].PatientID != "PT-2" || rows[1].Immediate {
		t.Errorf("rows[1] = %+v, want PT-2 not immediate", rows[1])
	}
	if rows[1].WaitMinutes != 30 {
		t.Errorf("rows[1].WaitMinutes = %d, want 30", rows[1].WaitMinutes)
	}
}
