// Package cli implements the taskboard command line.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCommand builds the command tree. Output goes to the writers set
// with SetOut/SetErr, so tests can capture it.
func NewRootCommand() *cobra.Command {
	a := newApp()

	rootCmd := &cobra.Command{
		Use:   "taskboard",
		Short: "Personal task and project tracker",
		Long: `taskboard keeps projects and tasks in a local store, filters and sorts
them, and raises alerts for new, completed and due tasks.

Configuration sources (in order of precedence):
1. Command line flags
2. Environment variables (TASKBOARD_*)
3. The config file (--config, default $XDG_CONFIG_HOME/taskboard/config.toml)`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.close()
		},
	}

	a.addGlobalFlags(rootCmd)

	rootCmd.AddCommand(newServeCmd(a))
	rootCmd.AddCommand(newProjectsCmd(a))
	rootCmd.AddCommand(newTasksCmd(a))
	rootCmd.AddCommand(newFiltersCmd(a))
	rootCmd.AddCommand(newSweepCmd(a))
	rootCmd.AddCommand(newExportCmd(a))
	rootCmd.AddCommand(newImportCmd(a))
	rootCmd.AddCommand(newResetCmd(a))

	return rootCmd
}

// Execute runs the root command against os.Args.
func Execute(version string) error {
	rootCmd := NewRootCommand()
	rootCmd.Version = version
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

func out(cmd *cobra.Command) io.Writer {
	return cmd.OutOrStdout()
}
