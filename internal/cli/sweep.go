package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"taskboard/internal/notify"
)

func newSweepCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Check pending tasks for due dates and print alerts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var count int
			counter := notify.PresenterFunc(func(notify.Level, string, notify.Options) { count++ })
			presenter := notify.Multi{notify.NewTerminalPresenter(out(cmd)), counter}

			t, err := a.openTracker(cmd.Context(), presenter)
			if err != nil {
				return err
			}

			t.SweepDue(cmd.Context())
			if count == 0 {
				fmt.Fprintln(out(cmd), "No tasks need attention.")
			}
			return nil
		},
	}
}
