// Package main provides the entry point for the workstat CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for workstat.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "workstat",
		Short: "Summary statistics and reports for employee datasets",
		Long: `Workstat analyzes employee datasets (CSV or JSON) and renders reports.

It computes headcounts, average age and salary, distinct departments and
cities, and per-department averages. Analysis results can be saved to a
local history database and compared across runs.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewAnalyzeCmd())
	cmd.AddCommand(NewCompareCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
