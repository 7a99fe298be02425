package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"taskboard/internal/models"
	"taskboard/internal/notify"
	"taskboard/internal/store"
)

func newExportCmd(a *app) *cobra.Command {
	var (
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the full snapshot as JSON or YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.openTracker(cmd.Context(), notify.NewTerminalPresenter(cmd.ErrOrStderr()))
			if err != nil {
				return err
			}

			var data []byte
			switch strings.ToLower(format) {
			case "json":
				data, err = store.EncodeJSON(t.Snapshot())
			case "yaml", "yml":
				data, err = store.EncodeYAML(t.Snapshot())
			default:
				return fmt.Errorf("unsupported format %q (use json or yaml)", format)
			}
			if err != nil {
				return err
			}

			if output == "" {
				_, err = out(cmd).Write(append(data, '\n'))
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("failed to write export: %w", err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Exported to %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "Output format (json|yaml)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to a file instead of stdout")
	return cmd
}

func newImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the stored snapshot with an exported file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read import: %w", err)
			}

			var snapshot *models.Snapshot
			switch strings.ToLower(filepath.Ext(args[0])) {
			case ".yaml", ".yml":
				snapshot, err = store.DecodeYAML(data)
			default:
				snapshot, err = store.DecodeJSON(data)
			}
			if err != nil {
				return err
			}
			if err := snapshot.Validate(); err != nil {
				return fmt.Errorf("invalid import: %w", err)
			}

			repo, err := a.openRepository()
			if err != nil {
				return err
			}
			if err := repo.Save(cmd.Context(), snapshot); err != nil {
				return err
			}
			fmt.Fprintf(out(cmd), "Imported %d projects and %d tasks\n", len(snapshot.Projects), len(snapshot.Tasks))
			return nil
		},
	}
}

func newResetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Delete all stored data; the next command starts from the sample data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := a.openRepository()
			if err != nil {
				return err
			}
			if err := repo.Delete(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(out(cmd), "Storage cleared.")
			return nil
		},
	}
}
