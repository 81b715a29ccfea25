package cli

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Testeur1337/myPomodoro/internal/config"
	"github.com/Testeur1337/myPomodoro/internal/model"
	"github.com/Testeur1337/myPomodoro/internal/service"
)

func TestClock(t *testing.T) {
	cases := map[int]string{0: "00:00", 90: "01:30", 1439: "23:59", 1440: "24:00"}
	for min, want := range cases {
		if got := clock(min); got != want {
			t.Errorf("clock(%d) = %q, want %q", min, got, want)
		}
	}
}

func TestRenderDay(t *testing.T) {
	empty := renderDay(model.PlannerDay{Date: "2024-02-01"})
	if !strings.Contains(empty, "2024-02-01") || !strings.Contains(empty, "Nothing planned.") {
		t.Fatalf("unexpected empty render:\n%s", empty)
	}

	day := model.PlannerDay{Date: "2024-02-01", Tasks: []model.PlannerTask{
		{ID: "a", Title: "Write report", Priority: model.PriorityHigh, StartMin: model.Ptr(540), EndMin: model.Ptr(600)},
		{ID: "b", Title: "Review", Priority: model.PriorityMedium, SourceRecurringID: "r1", Virtual: true},
	}}
	out := renderDay(day)
	for _, want := range []string{"Write report", "09:00 - 10:00", "Review", "↻"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q:\n%s", want, out)
		}
	}
}

func TestRenderTree(t *testing.T) {
	if out := renderTree(nil); !strings.Contains(out, "pomodoro repair") {
		t.Fatalf("expected hint for empty tree, got %q", out)
	}
	out := renderTree([]service.GoalNode{{
		Goal: model.UnassignedGoal(model.NewDate(2024, 1, 1).Time()),
		Projects: []service.ProjectNode{{
			Project: model.Project{ID: "p1", Name: "Go", Color: model.DefaultColor},
			Topics:  []model.Topic{{ID: "t1", Name: "Generics", Archived: true}},
		}},
	}})
	for _, want := range []string{model.UnassignedName, "Go", "Generics", "(archived)"} {
		if !strings.Contains(out, want) {
			t.Errorf("tree missing %q:\n%s", want, out)
		}
	}
}

func TestOpenApp(t *testing.T) {
	c := config.DefaultConfig()
	c.Data.DSN = filepath.Join(t.TempDir(), "pomodoro.db")
	c.Planner.Timezone = "UTC"

	a, err := openApp(c)
	if err != nil {
		t.Fatalf("open app: %v", err)
	}
	rep, err := a.svc.Repair(context.Background())
	if err != nil {
		t.Fatalf("repair: %v", err)
	}
	if !rep.Changed() {
		t.Fatalf("expected first repair to create placeholders")
	}
	a.Close()

	a, err = openApp(c)
	if err != nil {
		t.Fatalf("reopen app: %v", err)
	}
	defer a.Close()
	rep, err = a.svc.Repair(context.Background())
	if err != nil {
		t.Fatalf("repair: %v", err)
	}
	if rep.Changed() {
		t.Fatalf("expected repaired data to persist, got %+v", rep)
	}
}

func TestOpenAppRejectsUnknownDriver(t *testing.T) {
	c := config.DefaultConfig()
	c.Data.Driver = "mysql"
	if _, err := openApp(c); err == nil {
		t.Fatalf("expected error for unknown driver")
	}
}

func TestCommandsRegistered(t *testing.T) {
	for _, name := range []string{"serve", "repair", "export", "import", "backup", "planner", "recurring", "tree", "session", "config"} {
		if cmd, _, err := rootCmd.Find([]string{name}); err != nil || cmd.Name() != name {
			t.Errorf("command %q not registered", name)
		}
	}
}

func TestDescribeRule(t *testing.T) {
	cases := []struct {
		rule model.RecurrenceRule
		want string
	}{
		{model.RecurrenceRule{Type: model.RecurDaily, Interval: 1}, "(every day)"},
		{model.RecurrenceRule{Type: model.RecurDaily, Interval: 3}, "(every 3 days)"},
		{model.RecurrenceRule{Type: model.RecurWeekly, Interval: 2, Weekdays: []int{1, 4}}, "(every 2 weeks on Mon, Thu)"},
	}
	for _, tc := range cases {
		if got := describeRule(tc.rule); got != tc.want {
			t.Errorf("describeRule(%+v) = %q, want %q", tc.rule, got, tc.want)
		}
	}
}

func TestRenderUpcoming(t *testing.T) {
	out := renderUpcoming([]service.Upcoming{
		{Task: model.RecurringTask{Title: "Review", Priority: model.PriorityHigh, Recurrence: model.RecurrenceRule{Type: model.RecurDaily, Interval: 1}}, NextDue: "2024-02-02"},
		{Task: model.RecurringTask{Title: "Broken", Priority: model.PriorityLow}},
	})
	for _, want := range []string{"Review", "2024-02-02", "Broken", "never"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q:\n%s", want, out)
		}
	}
}
