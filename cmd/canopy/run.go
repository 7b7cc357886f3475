package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/canopy/internal/cli"
)

// runCmd drives one request through the pipeline.
var runCmd = &cobra.Command{
	Use:   "run [request]",
	Short: "Run one request through the generation pipeline",
	Long: `Runs a single natural-language request through the guard, design,
generation and validation stages and prints the final state.

With ANTHROPIC_API_KEY set, generation calls the Claude API; without it the
deterministic offline fallback is used.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		jsonOut, _ := cmd.Flags().GetBool("json")
		retries, _ := cmd.Flags().GetInt("retries")

		cfg, err := cli.LoadConfig(configPath)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("retries") {
			if retries < 0 {
				return fmt.Errorf("--retries must not be negative")
			}
			cfg.MaxRetries = retries
		}

		request := strings.Join(args, " ")
		if err := cli.RunOnce(cmd.Context(), cfg, request, jsonOut); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().Bool("json", false, "Print the final state as JSON")
	runCmd.Flags().Int("retries", 0, "Override the regeneration ceiling")
}
