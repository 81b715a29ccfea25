package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/Testeur1337/myPomodoro/internal/model"
	"github.com/Testeur1337/myPomodoro/internal/service"
)

var recurringCmd = &cobra.Command{
	Use:     "recurring",
	Aliases: []string{"rec"},
	Short:   "List recurring tasks by their next due date",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app) error {
			up, err := a.svc.UpcomingRecurring(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Println(renderUpcoming(up))
			return nil
		})
	},
}

func renderUpcoming(up []service.Upcoming) string {
	if len(up) == 0 {
		return mutedStyle.Render("No recurring tasks.")
	}
	out := headerStyle.Render("Recurring tasks")
	for _, u := range up {
		next := u.NextDue
		if next == "" {
			next = "never"
		}
		prio := lipgloss.NewStyle().Foreground(priorityColor(u.Task.Priority)).Render(string(u.Task.Priority))
		out += fmt.Sprintf("\n%s  %-4s %s %s", mutedStyle.Render(next), prio, u.Task.Title, mutedStyle.Render(describeRule(u.Task.Recurrence)))
	}
	return out
}

func describeRule(r model.RecurrenceRule) string {
	unit := "day"
	if r.Type == model.RecurWeekly {
		unit = "week"
	}
	s := "every " + unit
	if r.Interval > 1 {
		s = fmt.Sprintf("every %d %ss", r.Interval, unit)
	}
	if r.Type == model.RecurWeekly && len(r.Weekdays) > 0 {
		names := []string{"", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}
		s += " on"
		for i, wd := range r.Weekdays {
			if wd < 1 || wd > 7 {
				continue
			}
			if i > 0 {
				s += ","
			}
			s += " " + names[wd]
		}
	}
	return "(" + s + ")"
}
