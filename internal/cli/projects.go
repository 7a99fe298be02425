package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"taskboard/internal/notify"
)

func newProjectsCmd(a *app) *cobra.Command {
	projectsCmd := &cobra.Command{
		Use:     "projects",
		Aliases: []string{"project", "p"},
		Short:   "Manage projects",
	}

	projectsCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.openTracker(cmd.Context(), notify.NewTerminalPresenter(out(cmd)))
			if err != nil {
				return err
			}

			projects := t.Projects()
			if len(projects) == 0 {
				fmt.Fprintln(out(cmd), "No projects yet.")
				return nil
			}

			snapshot := t.Snapshot()
			rows := make([][]string, 0, len(projects))
			for _, p := range projects {
				total, pending := 0, 0
				for i := range snapshot.Tasks {
					if snapshot.Tasks[i].ProjectID != p.ID {
						continue
					}
					total++
					if snapshot.Tasks[i].IsPending() {
						pending++
					}
				}
				rows = append(rows, []string{p.ID, p.Name, strconv.Itoa(pending), strconv.Itoa(total)})
			}
			renderTable(out(cmd), []string{"ID", "NAME", "PENDING", "TOTAL"}, rows)
			return nil
		},
	})

	projectsCmd.AddCommand(&cobra.Command{
		Use:   "add <name>",
		Short: "Create a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.openTracker(cmd.Context(), notify.NewTerminalPresenter(out(cmd)))
			if err != nil {
				return err
			}

			project, err := t.AddProject(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(out(cmd), "Created project %s (%s)\n", project.Name, project.ID)
			return nil
		},
	})

	projectsCmd.AddCommand(&cobra.Command{
		Use:   "rename <id> <name>",
		Short: "Rename a project",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.openTracker(cmd.Context(), notify.NewTerminalPresenter(out(cmd)))
			if err != nil {
				return err
			}

			if _, ok := t.ProjectByID(args[0]); !ok {
				return fmt.Errorf("project %s not found", args[0])
			}
			if err := t.UpdateProject(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(out(cmd), "Renamed project %s\n", args[0])
			return nil
		},
	})

	projectsCmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a project and all of its tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.openTracker(cmd.Context(), notify.NewTerminalPresenter(out(cmd)))
			if err != nil {
				return err
			}

			if _, ok := t.ProjectByID(args[0]); !ok {
				return fmt.Errorf("project %s not found", args[0])
			}
			if err := t.DeleteProject(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(out(cmd), "Deleted project %s\n", args[0])
			return nil
		},
	})

	return projectsCmd
}
