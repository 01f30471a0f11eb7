package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var auditCmd = &cobra.Command{
	Use:   "audit <patient-id>",
	Short: "Show the scoring history for a patient",
	Long: `Print the audit trail for a patient: every add, re-score, serve,
and remove action, with the score and the factors that produced it.`,
	Args: cobra.ExactArgs(1),
	RunE: runAudit,
}

func init() {
	rootCmd.AddCommand(auditCmd)
}

func runAudit(_ *cobra.Command, args []string) error {
	ws, err := openWorkspace()
	if err != nil {
		return err
	}

	id := args[0]
	trail := ws.states.AuditFor(id)
	if len(trail) == 0 {
		fmt.Printf("No audit history for %s\n", id)
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tACTION\tRISK\tSCORE\tFACTORS")
	fmt.Fprintln(w, "----\t------\t----\t-----\t-------")

	for _, e := range trail {
		factors := ""
		for i, f := range e.Factors {
			if i > 0 {
				factors += ", "
			}
			factors += fmt.Sprintf("%s +%d", f.Name, f.Points)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
			e.Timestamp.Format("2006-01-02 15:04"),
			e.Action,
			e.RiskLevel,
			e.Score,
			factors,
		)
	}

	return w.Flush()
}
