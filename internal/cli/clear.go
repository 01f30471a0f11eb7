package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var clearForce bool

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Empty the queue",
	Long:  `Remove every patient from the queue. This action cannot be undone.`,
	Args:  cobra.NoArgs,
	RunE:  runClear,
}

func init() {
	clearCmd.Flags().BoolVar(&clearForce, "force", false, "Skip confirmation")
	rootCmd.AddCommand(clearCmd)
}

func runClear(_ *cobra.Command, _ []string) error {
	ws, err := openWorkspace()
	if err != nil {
		return err
	}

	count := ws.queue.Len()
	if count == 0 {
		fmt.Println("The waiting room is already empty.")
		return nil
	}

	if !clearForce {
		if !confirm(fmt.Sprintf("Remove ALL %d patients from the queue? This cannot be undone.", count)) {
			return nil
		}
	}

	ws.queue.Clear()
	if err := ws.save(); err != nil {
		return err
	}

	fmt.Printf("Cleared %d patients from the queue\n", count)
	return nil
}
