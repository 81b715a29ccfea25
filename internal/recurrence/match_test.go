package recurrence

import (
	"testing"
	"time"

	"github.com/Testeur1337/myPomodoro/internal/model"
)

func mustDate(t *testing.T, s string) model.Date {
	t.Helper()
	d, err := model.ParseDate(s)
	if err != nil {
		t.Fatalf("parse %s: %v", s, err)
	}
	return d
}

func TestMatchesWeekly(t *testing.T) {
	created := time.Date(2024, 1, 1, 10, 30, 0, 0, time.UTC) // Monday
	rule := model.RecurrenceRule{Type: model.RecurWeekly, Interval: 1, Weekdays: []int{1}}

	tests := []struct {
		date string
		want bool
	}{
		{"2024-01-01", true},
		{"2024-01-08", true},
		{"2024-01-09", false},
		{"2023-12-25", false},
	}
	for _, tt := range tests {
		if got := Matches(rule, created, mustDate(t, tt.date)); got != tt.want {
			t.Errorf("Matches(%s) = %v, want %v", tt.date, got, tt.want)
		}
	}
}

func TestMatchesWeeklyInterval(t *testing.T) {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) // Monday
	rule := model.RecurrenceRule{Type: model.RecurWeekly, Interval: 2, Weekdays: []int{1, 3}}

	tests := []struct {
		date string
		want bool
	}{
		{"2024-01-03", true},  // week 0, Wednesday
		{"2024-01-08", false}, // week 1
		{"2024-01-10", false}, // week 1
		{"2024-01-15", true},  // week 2
		{"2024-01-17", true},
		{"2024-01-16", false}, // Tuesday
	}
	for _, tt := range tests {
		if got := Matches(rule, created, mustDate(t, tt.date)); got != tt.want {
			t.Errorf("Matches(%s) = %v, want %v", tt.date, got, tt.want)
		}
	}
}

func TestMatchesDaily(t *testing.T) {
	created := time.Date(2024, 1, 1, 23, 59, 0, 0, time.UTC)
	every3 := model.RecurrenceRule{Type: model.RecurDaily, Interval: 3}

	tests := []struct {
		date string
		want bool
	}{
		{"2024-01-01", true},
		{"2024-01-02", false},
		{"2024-01-04", true},
		{"2024-01-07", true},
		{"2023-12-29", false},
	}
	for _, tt := range tests {
		if got := Matches(every3, created, mustDate(t, tt.date)); got != tt.want {
			t.Errorf("Matches(%s) = %v, want %v", tt.date, got, tt.want)
		}
	}
}

func TestDailyIntervalOneMatchesEveryDayFromCreation(t *testing.T) {
	created := time.Date(2024, 2, 27, 18, 0, 0, 0, time.UTC)
	rule := model.RecurrenceRule{Type: model.RecurDaily, Interval: 1}
	start := model.UTCDate(created)
	for i := 0; i < 400; i++ {
		d := start.AddDays(i)
		if !Matches(rule, created, d) {
			t.Fatalf("expected daily rule to match %s", d)
		}
		if Matches(rule, created, d) != Matches(rule, created, d) {
			t.Fatalf("expected deterministic result for %s", d)
		}
	}
	if Matches(rule, created, start.AddDays(-1)) {
		t.Fatalf("expected no match the day before creation")
	}
}

func TestMatchesTruncatesCreatedAtToUTCDate(t *testing.T) {
	// 2024-01-01 20:00 at UTC-5 is already 2024-01-02 in UTC.
	created := time.Date(2024, 1, 1, 20, 0, 0, 0, time.FixedZone("EST", -5*3600))
	rule := model.RecurrenceRule{Type: model.RecurDaily, Interval: 2}

	if Matches(rule, created, mustDate(t, "2024-01-01")) {
		t.Fatalf("expected 2024-01-01 to precede the UTC anchor")
	}
	if !Matches(rule, created, mustDate(t, "2024-01-02")) {
		t.Fatalf("expected the UTC anchor date to match")
	}
	if !Matches(rule, created, mustDate(t, "2024-01-04")) {
		t.Fatalf("expected anchor+2 to match")
	}
}

func TestMatchesRejectsBadRules(t *testing.T) {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	date := mustDate(t, "2024-01-01")
	for _, rule := range []model.RecurrenceRule{
		{Type: model.RecurDaily, Interval: 0},
		{Type: model.RecurDaily, Interval: 31},
		{Type: "monthly", Interval: 1},
		{Type: model.RecurWeekly, Interval: 1},
	} {
		if Matches(rule, created, date) {
			t.Errorf("expected rule %+v never to match", rule)
		}
	}
}

func TestDueSkipsArchived(t *testing.T) {
	task := model.RecurringTask{
		ID:         "r1",
		Recurrence: model.RecurrenceRule{Type: model.RecurDaily, Interval: 1},
		CreatedAt:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	date := mustDate(t, "2024-01-05")
	if !Due(task, date) {
		t.Fatalf("expected active task to be due")
	}
	task.Archived = true
	if Due(task, date) {
		t.Fatalf("expected archived task not to be due")
	}
}

func TestNext(t *testing.T) {
	task := model.RecurringTask{
		ID:         "r1",
		Recurrence: model.RecurrenceRule{Type: model.RecurWeekly, Interval: 1, Weekdays: []int{5}},
		CreatedAt:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	got, ok := Next(task, mustDate(t, "2024-01-06"), 14)
	if !ok || got.String() != "2024-01-12" {
		t.Fatalf("expected next Friday 2024-01-12, got %s (%v)", got, ok)
	}
	if _, ok := Next(task, mustDate(t, "2024-01-06"), 3); ok {
		t.Fatalf("expected no match within 3 days")
	}
}
