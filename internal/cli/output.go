package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"taskboard/internal/models"
)

func renderTable(w io.Writer, headers []string, rows [][]string) {
	r := lipgloss.NewRenderer(w)
	headerStyle := r.NewStyle().Bold(true).Padding(0, 1)
	cellStyle := r.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(r.NewStyle().Foreground(lipgloss.Color("8"))).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	fmt.Fprintln(w, t.Render())
}

func renderTasks(w io.Writer, tasks []models.Task, projects []models.Project, today models.Date) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, "No tasks match the current filters.")
		return
	}

	names := make(map[string]string, len(projects))
	for _, p := range projects {
		names[p.ID] = p.Name
	}

	rows := make([][]string, 0, len(tasks))
	for i := range tasks {
		task := &tasks[i]
		rows = append(rows, []string{
			task.ID,
			task.Title,
			names[task.ProjectID],
			string(task.Priority),
			string(task.Status),
			formatDue(task, today),
		})
	}
	renderTable(w, []string{"ID", "TITLE", "PROJECT", "PRIORITY", "STATUS", "DUE"}, rows)
}

func formatDue(task *models.Task, today models.Date) string {
	if task.DueDate == nil {
		return "-"
	}
	if task.IsOverdue(today) {
		return task.DueDate.String() + " (overdue)"
	}
	return task.DueDate.String()
}
