package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openclinic/triageq/internal/state"
	"github.com/openclinic/triageq/internal/triage"
)

var nextPeek bool

var nextCmd = &cobra.Command{
	Use:   "next",
	Short: "Serve the highest-priority patient",
	Long: `Remove and print the highest-ranked patient in the queue.

With --peek, print the patient without removing them.`,
	Args: cobra.NoArgs,
	RunE: runNext,
}

func init() {
	nextCmd.Flags().BoolVar(&nextPeek, "peek", false, "Show the next patient without serving them")
	rootCmd.AddCommand(nextCmd)
}

func runNext(_ *cobra.Command, _ []string) error {
	ws, err := openWorkspace()
	if err != nil {
		return err
	}

	if nextPeek {
		entry, err := ws.queue.PeekHighest()
		if err != nil {
			if errors.Is(err, triage.ErrEmptyQueue) {
				fmt.Println("The waiting room is empty.")
				return nil
			}
			return err
		}
		fmt.Printf("Next up: %s (score %s)\n", entry.PatientID, colorScore(entry.Score))
		return nil
	}

	entry, err := ws.queue.PopHighest()
	if err != nil {
		if errors.Is(err, triage.ErrEmptyQueue) {
			fmt.Println("The waiting room is empty.")
			return nil
		}
		return err
	}

	ws.states.AppendAudit(state.AuditEntry{
		PatientID: entry.PatientID,
		Action:    "served",
		Score:     entry.Score,
	})

	if err := ws.save(); err != nil {
		return err
	}

	fmt.Printf("Now serving %s (score %s)\n", entry.PatientID, colorScore(entry.Score))
	fmt.Printf("  %d patients remain in the queue\n", ws.queue.Len())
	return nil
}
