package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openclinic/triageq/internal/intake"
	"github.com/openclinic/triageq/internal/state"
	"github.com/openclinic/triageq/internal/triage"
)

var updateFile string

var updateCmd = &cobra.Command{
	Use:   "update <patient-id> --file <intake-file>",
	Short: "Re-score a patient from fresh vitals",
	Long: `Recompute a patient's priority score from a fresh intake file and
re-rank them in the queue. The patient keeps their original arrival
position for tie-breaking; only the score changes.

Examples:
  triageq update PT-1042 --file intake/pt-1042-recheck.md`,
	Args: cobra.ExactArgs(1),
	RunE: runUpdate,
}

func init() {
	updateCmd.Flags().StringVarP(&updateFile, "file", "f", "", "Intake file with the new vitals (required)")
	_ = updateCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(updateCmd)
}

func runUpdate(cmd *cobra.Command, args []string) error {
	ws, err := openWorkspace()
	if err != nil {
		return err
	}

	id := args[0]

	rec, err := intake.ParseFile(updateFile)
	if err != nil {
		return fmt.Errorf("%s: %w", updateFile, err)
	}
	if rec.PatientID != id {
		return fmt.Errorf("intake file is for %q, not %q", rec.PatientID, id)
	}

	if rec.RiskLevel == "" {
		risk, _, err := ws.classifier.Classify(cmd.Context(), rec)
		if err != nil {
			return fmt.Errorf("classify: %w", err)
		}
		rec.RiskLevel = risk
	}

	breakdown := ws.scorer.Breakdown(rec)

	if err := ws.queue.UpdatePriority(id, breakdown.Total); err != nil {
		if errors.Is(err, triage.ErrNotFound) {
			return fmt.Errorf("patient %q is not in the queue", id)
		}
		return err
	}

	ws.states.AppendAudit(state.AuditEntry{
		PatientID: id,
		Action:    "rescored",
		RiskLevel: string(rec.RiskLevel),
		Score:     breakdown.Total,
		Factors:   breakdown.Factors,
	})

	if err := ws.save(); err != nil {
		return err
	}

	position, err := ws.queue.PositionOf(id)
	if err != nil {
		return err
	}

	fmt.Printf("Re-scored %s\n", id)
	fmt.Printf("  score:    %s\n", colorScore(breakdown.Total))
	fmt.Printf("  position: %d of %d\n", position, ws.queue.Len())
	fmt.Printf("  est wait: %d min\n", ws.waitEstimate(position))
	return nil
}
