package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "canopy",
	Short: "Canopy turns UI requests into validated markup",
	Long: `Canopy is a guarded generation pipeline: it screens a natural-language
UI request against a safety denylist, derives a design spec, generates markup
through a text-generation service (or a deterministic offline fallback), and
validates the result with a bounded retry loop.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file")
}
