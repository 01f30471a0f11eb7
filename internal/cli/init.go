package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/openclinic/triageq/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize triageq in the current directory",
	Long: `Write a default triageq.yaml and create the intake directory.

Fails if a config file already exists.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(_ *cobra.Command, _ []string) error {
	if existing := config.FindProjectConfig(); existing != "" {
		return fmt.Errorf("config already exists at %s", existing)
	}

	if err := config.WriteDefault("triageq.yaml"); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	cfg := config.DefaultConfig()
	if err := os.MkdirAll(cfg.IntakeDir, 0750); err != nil {
		return fmt.Errorf("failed to create intake directory: %w", err)
	}

	fmt.Println("Initialized triageq")
	fmt.Println("  config: triageq.yaml")
	fmt.Printf("  intake: %s/\n", cfg.IntakeDir)
	fmt.Println("\nAdd your first patient with:")
	fmt.Println("  triageq add <intake-file>")
	return nil
}
