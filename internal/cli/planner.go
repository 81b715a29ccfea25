package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/Testeur1337/myPomodoro/internal/model"
)

var plannerCmd = &cobra.Command{
	Use:     "planner [date]",
	Aliases: []string{"day"},
	Short:   "Show the planner for a day",
	Long: `Show the tasks planned for a date, recurring instances included.

Examples:
  pomodoro planner
  pomodoro planner 2024-02-01`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app) error {
			date := a.svc.Today()
			if len(args) == 1 {
				d, err := model.ParseDate(args[0])
				if err != nil {
					return err
				}
				date = d
			}
			day, err := a.svc.GetDay(cmd.Context(), date)
			if err != nil {
				return err
			}
			fmt.Println(renderDay(day))
			return nil
		})
	},
}

func renderDay(day model.PlannerDay) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Planner " + day.Date))
	b.WriteString("\n")
	b.WriteString(ruleStyle.Render(strings.Repeat("─", 40)))
	b.WriteString("\n")
	if len(day.Tasks) == 0 {
		b.WriteString(mutedStyle.Render("Nothing planned."))
		return boxStyle.Render(b.String())
	}
	for i, t := range day.Tasks {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(renderTask(t))
	}
	return boxStyle.Render(b.String())
}

func renderTask(t model.PlannerTask) string {
	check := "[ ]"
	title := t.Title
	if t.Completed {
		check = successStyle.Render("[✓]")
		title = doneStyle.Render(title)
	}
	slot := "     -     "
	if t.StartMin != nil && t.EndMin != nil {
		slot = clock(*t.StartMin) + " - " + clock(*t.EndMin)
	}
	prio := lipgloss.NewStyle().Foreground(priorityColor(t.Priority)).Render(string(t.Priority))
	line := fmt.Sprintf("%s %s %-4s %s", check, mutedStyle.Render(slot), prio, title)
	if t.SourceRecurringID != "" {
		line += " " + mutedStyle.Render("↻")
	}
	return line
}

func priorityColor(p model.Priority) lipgloss.Color {
	switch p {
	case model.PriorityHigh:
		return PriorityHigh
	case model.PriorityLow:
		return PriorityLow
	default:
		return PriorityMedium
	}
}

// clock formats minutes since midnight as hh:mm.
func clock(min int) string {
	return fmt.Sprintf("%02d:%02d", min/60, min%60)
}
