// Package commands wires the weft CLI together.
package commands

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	// Version information - set at build time
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// NewRootCommand creates the root command
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "weft",
		Short: "Template-driven code scaffolding for existing projects",
		Long: color.CyanString(`Weft - scaffolding for data-driven applications

Weft inspects an existing project, builds a symbol-resolvable model of it,
and generates CRUD data-access code in the namespace-correct location.

Features:
  • Existing data contexts are extended, new ones are created
  • Model shapes read from source or reverse-engineered from a database
  • Namespace-aware file placement`),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(NewVersionCommand())
	rootCmd.AddCommand(NewScaffoldCommand())

	return rootCmd
}
