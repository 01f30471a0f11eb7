package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openclinic/triageq/internal/state"
	"github.com/openclinic/triageq/internal/triage"
)

var removeForce bool

var removeCmd = &cobra.Command{
	Use:     "remove <patient-id>",
	Aliases: []string{"rm"},
	Short:   "Remove a patient from the queue",
	Long: `Remove a patient from the queue regardless of rank, e.g. when they
leave without being seen or are transferred.

Examples:
  triageq remove PT-1042
  triageq remove PT-1042 --force`,
	Args: cobra.ExactArgs(1),
	RunE: runRemove,
}

func init() {
	removeCmd.Flags().BoolVar(&removeForce, "force", false, "Skip confirmation")
	rootCmd.AddCommand(removeCmd)
}

func runRemove(_ *cobra.Command, args []string) error {
	ws, err := openWorkspace()
	if err != nil {
		return err
	}

	id := args[0]

	if !ws.queue.Contains(id) {
		return fmt.Errorf("patient %q is not in the queue", id)
	}

	if !removeForce {
		if !confirm(fmt.Sprintf("Remove patient %q from the queue?", id)) {
			return nil
		}
	}

	if err := ws.queue.Remove(id); err != nil {
		if errors.Is(err, triage.ErrNotFound) {
			return fmt.Errorf("patient %q is not in the queue", id)
		}
		return err
	}

	ws.states.AppendAudit(state.AuditEntry{
		PatientID: id,
		Action:    "removed",
	})

	if err := ws.save(); err != nil {
		return err
	}

	fmt.Printf("Removed %s\n", id)
	return nil
}
