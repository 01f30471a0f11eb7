package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openclinic/triageq/internal/intake"
	"github.com/openclinic/triageq/internal/state"
	"github.com/openclinic/triageq/internal/triage"
)

var addCmd = &cobra.Command{
	Use:   "add <intake-file>...",
	Short: "Add patients to the queue from intake files",
	Long: `Parse one or more patient intake files, classify and score each
patient, and insert them into the queue.

An intake file has YAML front matter (id, age, vitals, symptoms) followed
by free-text clinical notes. If the front matter carries an explicit
risk_level it is used as-is; otherwise the classifier assigns one from
the symptoms and notes.

Examples:
  triageq add intake/pt-1042.md
  triageq add intake/*.md`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	ws, err := openWorkspace()
	if err != nil {
		return err
	}

	for _, path := range args {
		rec, err := intake.ParseFile(path)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}

		if rec.RiskLevel == "" {
			risk, confidence, err := ws.classifier.Classify(cmd.Context(), rec)
			if err != nil {
				return fmt.Errorf("%s: classify: %w", path, err)
			}
			rec.RiskLevel = risk
			if confidence < 0.5 {
				fmt.Printf("Note: low-confidence classification for %s (%s)\n", rec.PatientID, risk)
			}
		}

		breakdown := ws.scorer.Breakdown(rec)

		if err := ws.queue.Insert(rec.PatientID, breakdown.Total); err != nil {
			if errors.Is(err, triage.ErrDuplicatePatient) {
				return fmt.Errorf("%s is already queued (use 'triageq update %s' to re-score)", rec.PatientID, rec.PatientID)
			}
			return err
		}

		ws.states.AppendAudit(state.AuditEntry{
			PatientID: rec.PatientID,
			Action:    "added",
			RiskLevel: string(rec.RiskLevel),
			Score:     breakdown.Total,
			Factors:   breakdown.Factors,
		})

		printAdded(ws, rec, breakdown)
	}

	return ws.save()
}

func printAdded(ws *workspace, rec *triage.Record, breakdown triage.Breakdown) {
	position, err := ws.queue.PositionOf(rec.PatientID)
	if err != nil {
		position = ws.queue.Len()
	}

	fmt.Printf("Added %s\n", rec.PatientID)
	fmt.Printf("  risk:     %s\n", rec.RiskLevel)
	fmt.Printf("  score:    %s (base %d", colorScore(breakdown.Total), breakdown.Base)
	for _, f := range breakdown.Factors {
		fmt.Printf(", %s +%d", f.Name, f.Points)
	}
	fmt.Printf(")\n")
	fmt.Printf("  position: %d of %d\n", position, ws.queue.Len())
	fmt.Printf("  est wait: %d min\n", ws.waitEstimate(position))
}
