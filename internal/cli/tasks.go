package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"taskboard/internal/models"
	"taskboard/internal/notify"
)

func newTasksCmd(a *app) *cobra.Command {
	tasksCmd := &cobra.Command{
		Use:     "tasks",
		Aliases: []string{"task", "t"},
		Short:   "Manage tasks",
	}

	tasksCmd.AddCommand(newTasksListCmd(a))
	tasksCmd.AddCommand(newTasksAddCmd(a))
	tasksCmd.AddCommand(newTasksUpdateCmd(a))
	tasksCmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.openTracker(cmd.Context(), notify.NewTerminalPresenter(out(cmd)))
			if err != nil {
				return err
			}
			if _, ok := t.TaskByID(args[0]); !ok {
				return fmt.Errorf("task %s not found", args[0])
			}
			if err := t.DeleteTask(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(out(cmd), "Deleted task %s\n", args[0])
			return nil
		},
	})
	tasksCmd.AddCommand(&cobra.Command{
		Use:   "toggle <id>",
		Short: "Flip a task between pending and completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.openTracker(cmd.Context(), notify.NewTerminalPresenter(out(cmd)))
			if err != nil {
				return err
			}
			if _, ok := t.TaskByID(args[0]); !ok {
				return fmt.Errorf("task %s not found", args[0])
			}
			if err := t.ToggleTaskStatus(cmd.Context(), args[0]); err != nil {
				return err
			}
			task, _ := t.TaskByID(args[0])
			fmt.Fprintf(out(cmd), "Task %s is now %s\n", task.ID, task.Status)
			return nil
		},
	})
	tasksCmd.AddCommand(&cobra.Command{
		Use:   "show <id>",
		Short: "Show a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.openTracker(cmd.Context(), notify.NewTerminalPresenter(out(cmd)))
			if err != nil {
				return err
			}
			task, ok := t.TaskByID(args[0])
			if !ok {
				return fmt.Errorf("task %s not found", args[0])
			}

			enc := yaml.NewEncoder(out(cmd))
			enc.SetIndent(2)
			if err := enc.Encode(task); err != nil {
				return err
			}
			return enc.Close()
		},
	})

	return tasksCmd
}

func newTasksListCmd(a *app) *cobra.Command {
	var projectID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks under the current filters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.openTracker(cmd.Context(), notify.NewTerminalPresenter(out(cmd)))
			if err != nil {
				return err
			}

			tasks := t.AllTasks()
			if projectID != "" {
				if _, ok := t.ProjectByID(projectID); !ok {
					return fmt.Errorf("project %s not found", projectID)
				}
				tasks = t.TasksByProject(projectID)
			}
			renderTasks(out(cmd), tasks, t.Projects(), t.Today())
			return nil
		},
	}

	cmd.Flags().StringVarP(&projectID, "project", "p", "", "Only list tasks of this project")
	return cmd
}

func newTasksAddCmd(a *app) *cobra.Command {
	var (
		description string
		due         string
		priority    string
		status      string
	)

	cmd := &cobra.Command{
		Use:   "add <project-id> <title>",
		Short: "Create a task",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := models.NewTask{
				ProjectID:   args[0],
				Title:       args[1],
				Description: description,
				Priority:    models.Priority(priority),
			}
			if due != "" {
				d, err := models.ParseDate(due)
				if err != nil {
					return err
				}
				in.DueDate = &d
			}
			if status != "" {
				s := models.Status(status)
				in.Status = &s
			}

			t, err := a.openTracker(cmd.Context(), notify.NewTerminalPresenter(out(cmd)))
			if err != nil {
				return err
			}
			task, err := t.AddTask(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(out(cmd), "Created task %s\n", task.ID)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&description, "description", "", "Task description")
	flags.StringVar(&due, "due", "", "Due date (YYYY-MM-DD)")
	flags.StringVar(&priority, "priority", "", "Priority (high|medium|low), default medium")
	flags.StringVar(&status, "status", "", "Initial status (pending|completed)")
	return cmd
}

func newTasksUpdateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change task fields; only the flags given are applied",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			patch, err := taskPatchFromFlags(cmd)
			if err != nil {
				return err
			}
			if patch.IsEmpty() {
				return errors.New("nothing to update")
			}

			t, err := a.openTracker(cmd.Context(), notify.NewTerminalPresenter(out(cmd)))
			if err != nil {
				return err
			}
			if _, ok := t.TaskByID(args[0]); !ok {
				return fmt.Errorf("task %s not found", args[0])
			}
			if err := t.UpdateTask(cmd.Context(), args[0], patch); err != nil {
				return err
			}
			fmt.Fprintf(out(cmd), "Updated task %s\n", args[0])
			return nil
		},
	}

	flags := cmd.Flags()
	flags.String("project", "", "Move the task to another project")
	flags.String("title", "", "New title")
	flags.String("description", "", "New description")
	flags.String("due", "", "New due date (YYYY-MM-DD)")
	flags.Bool("clear-due", false, "Remove the due date")
	flags.String("priority", "", "New priority (high|medium|low)")
	flags.String("status", "", "New status (pending|completed)")
	cmd.MarkFlagsMutuallyExclusive("due", "clear-due")
	return cmd
}

// taskPatchFromFlags builds a patch from the flags the user actually set.
func taskPatchFromFlags(cmd *cobra.Command) (models.TaskPatch, error) {
	var patch models.TaskPatch
	flags := cmd.Flags()

	str := func(name string) *string {
		if !flags.Changed(name) {
			return nil
		}
		v, _ := flags.GetString(name)
		return &v
	}

	patch.ProjectID = str("project")
	patch.Title = str("title")
	patch.Description = str("description")
	if v := str("priority"); v != nil {
		p := models.Priority(*v)
		patch.Priority = &p
	}
	if v := str("status"); v != nil {
		s := models.Status(*v)
		patch.Status = &s
	}
	if v := str("due"); v != nil {
		d, err := models.ParseDate(*v)
		if err != nil {
			return patch, err
		}
		patch.DueDate = &d
	}
	patch.ClearDueDate, _ = flags.GetBool("clear-due")
	return patch, nil
}
