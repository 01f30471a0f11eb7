package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openclinic/triageq/internal/triage"
)

var positionCmd = &cobra.Command{
	Use:   "position <patient-id>",
	Short: "Show a patient's place in the queue",
	Args:  cobra.ExactArgs(1),
	RunE:  runPosition,
}

func init() {
	rootCmd.AddCommand(positionCmd)
}

func runPosition(_ *cobra.Command, args []string) error {
	ws, err := openWorkspace()
	if err != nil {
		return err
	}

	id := args[0]
	position, err := ws.queue.PositionOf(id)
	if err != nil {
		if errors.Is(err, triage.ErrNotFound) {
			return fmt.Errorf("patient %q is not in the queue", id)
		}
		return err
	}

	fmt.Printf("%s is number %d of %d\n", id, position, ws.queue.Len())
	fmt.Printf("  est wait: %d min\n", ws.waitEstimate(position))
	return nil
}
