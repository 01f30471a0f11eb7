package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/openclinic/triageq/internal/triage"
)

var (
	listOutput string
	listLimit  int
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List the queue in rank order",
	Long:    `List all queued patients in rank order, with scores and estimated waits.`,
	Args:    cobra.NoArgs,
	RunE:    runList,
}

func init() {
	listCmd.Flags().StringVarP(&listOutput, "output", "o", "table", "Output format (table, json)")
	listCmd.Flags().IntVarP(&listLimit, "limit", "n", 0, "Show only the top N patients (0 = config default)")
	rootCmd.AddCommand(listCmd)
}

func runList(_ *cobra.Command, _ []string) error {
	ws, err := openWorkspace()
	if err != nil {
		return err
	}

	limit := listLimit
	if limit <= 0 {
		limit = ws.cfg.Queue.DisplayLimit
	}

	entries := ws.queue.PeekQueue(limit)

	if len(entries) == 0 {
		fmt.Println("The waiting room is empty.")
		fmt.Println("\nAdd a patient with:")
		fmt.Println("  triageq add <intake-file>")
		return nil
	}

	switch listOutput {
	case "json":
		return printJSON(entries)
	default:
		return printTable(ws, entries)
	}
}

func printTable(ws *workspace, entries []triage.RankedEntry) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RANK\tPATIENT\tSCORE\tEST WAIT")
	fmt.Fprintln(w, "----\t-------\t-----\t--------")

	for _, e := range entries {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d min\n",
			e.Rank,
			e.PatientID,
			colorScore(e.Score),
			ws.waitEstimate(e.Rank),
		)
	}

	if err := w.Flush(); err != nil {
		return err
	}

	if immediate := ws.queue.ImmediateCount(); immediate > 0 {
		fmt.Printf("\n%d patient(s) need immediate attention\n", immediate)
	}
	return nil
}

func printJSON(entries []triage.RankedEntry) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(entries)
}
