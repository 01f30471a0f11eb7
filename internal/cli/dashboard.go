package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openclinic/triageq/internal/state"
	"github.com/openclinic/triageq/internal/triage"
	"github.com/openclinic/triageq/internal/tui"
)

var dashboardCmd = &cobra.Command{
	Use:     "dashboard",
	Aliases: []string{"dash"},
	Short:   "Open the interactive queue dashboard",
	Long: `Open a terminal dashboard showing the waiting room in rank order.
Patients can be served or removed directly from the dashboard.`,
	Args: cobra.NoArgs,
	RunE: runDashboard,
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}

func runDashboard(_ *cobra.Command, _ []string) error {
	ws, err := openWorkspace()
	if err != nil {
		return err
	}

	return tui.Run(&queueProvider{ws: ws})
}

// queueProvider adapts the workspace to the dashboard's QueueProvider.
type queueProvider struct {
	ws *workspace
}

func (p *queueProvider) Ranked() ([]tui.Row, error) {
	entries := p.ws.queue.Snapshot()
	rows := make([]tui.Row, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, tui.Row{
			Rank:        e.Rank,
			PatientID:   e.PatientID,
			Score:       e.Score,
			Immediate:   e.Score >= triage.ImmediateThreshold,
			WaitMinutes: p.ws.waitEstimate(e.Rank),
		})
	}
	return rows, nil
}

func (p *queueProvider) ServeNext() (*tui.Row, error) {
	entry, err := p.ws.queue.PopHighest()
	if err != nil {
		if errors.Is(err, triage.ErrEmptyQueue) {
			return nil, fmt.Errorf("the waiting room is empty")
		}
		return nil, err
	}

	p.ws.states.AppendAudit(state.AuditEntry{
		PatientID: entry.PatientID,
		Action:    "served",
		Score:     entry.Score,
	})

	if err := p.ws.save(); err != nil {
		return nil, err
	}

	return &tui.Row{PatientID: entry.PatientID, Score: entry.Score}, nil
}

func (p *queueProvider) Remove(patientID string) error {
	if err := p.ws.queue.Remove(patientID); err != nil {
		return err
	}

	p.ws.states.AppendAudit(state.AuditEntry{
		PatientID: patientID,
		Action:    "removed",
	})

	return p.ws.save()
}
