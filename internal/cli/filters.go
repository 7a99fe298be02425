package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"taskboard/internal/models"
	"taskboard/internal/notify"
)

func newFiltersCmd(a *app) *cobra.Command {
	filtersCmd := &cobra.Command{
		Use:   "filters",
		Short: "Show or change the task filters",
	}

	filtersCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the active filters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.openTracker(cmd.Context(), notify.NewTerminalPresenter(out(cmd)))
			if err != nil {
				return err
			}
			printFilters(cmd, t.Filters())
			return nil
		},
	})

	setCmd := &cobra.Command{
		Use:   "set",
		Short: "Change one or more filters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch models.FilterPatch
			flags := cmd.Flags()
			if flags.Changed("status") {
				v, _ := flags.GetString("status")
				s := models.StatusFilter(v)
				patch.Status = &s
			}
			if flags.Changed("priority") {
				v, _ := flags.GetString("priority")
				p := models.PriorityFilter(v)
				patch.Priority = &p
			}
			if flags.Changed("sort") {
				v, _ := flags.GetString("sort")
				k := models.SortKey(v)
				patch.SortBy = &k
			}

			t, err := a.openTracker(cmd.Context(), notify.NewTerminalPresenter(out(cmd)))
			if err != nil {
				return err
			}
			if err := t.SetFilters(cmd.Context(), patch); err != nil {
				return err
			}
			printFilters(cmd, t.Filters())
			return nil
		},
	}
	setCmd.Flags().String("status", "", "all|pending|completed")
	setCmd.Flags().String("priority", "", "all|high|medium|low")
	setCmd.Flags().String("sort", "", "dueDate|priority|title")
	filtersCmd.AddCommand(setCmd)

	return filtersCmd
}

func printFilters(cmd *cobra.Command, f models.FilterConfig) {
	fmt.Fprintf(out(cmd), "status:   %s\npriority: %s\nsortBy:   %s\n", f.Status, f.Priority, f.SortBy)
}
