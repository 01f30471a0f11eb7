package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version information - set at build time via ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "triageq",
	Short: "Priority scoring and ranking for emergency triage",
	Long: `Triageq scores incoming patients by clinical urgency and keeps
the waiting room ordered by that score.

Patients arrive as intake files (YAML front matter plus clinical notes),
get a risk level from the classifier, a priority score from the vitals,
age, and symptoms, and a rank in the queue. When a patient's condition
changes the score is recomputed and the queue re-ranks them in place.`,
	SilenceUsage: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("triageq %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", date)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersionInfo sets version information from build flags
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}

// GetRootCmd returns the root command for testing and subcommand registration
func GetRootCmd() *cobra.Command {
	return rootCmd
}
