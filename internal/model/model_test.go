package model

import (
	"errors"
	"testing"
	"time"
)

func TestValidMinutes(t *testing.T) {
	tests := []struct {
		start, end int
		want       bool
	}{
		{0, 1, true},
		{0, 1440, true},
		{1439, 1440, true},
		{540, 600, true},
		{600, 600, false},
		{600, 540, false},
		{-1, 10, false},
		{1440, 1441, false},
		{0, 0, false},
	}
	for _, tt := range tests {
		if got := ValidMinutes(tt.start, tt.end); got != tt.want {
			t.Errorf("ValidMinutes(%d, %d) = %v, want %v", tt.start, tt.end, got, tt.want)
		}
	}
}

func TestSessionValidate(t *testing.T) {
	start := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	valid := Session{
		ID:              "s1",
		Type:            SessionFocus,
		StartTime:       start,
		EndTime:         start.Add(25 * time.Minute),
		DurationSeconds: 1500,
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid session, got %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Session)
		field  string
	}{
		{"bad type", func(s *Session) { s.Type = "nap" }, "type"},
		{"zero duration", func(s *Session) { s.DurationSeconds = 0 }, "durationSeconds"},
		{"rating too high", func(s *Session) { s.Rating = Ptr(6) }, "rating"},
		{"rating too low", func(s *Session) { s.Rating = Ptr(0) }, "rating"},
		{"end before start", func(s *Session) { s.EndTime = start.Add(-time.Minute) }, "endTime"},
		{"missing id", func(s *Session) { s.ID = " " }, "id"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid
			tt.mutate(&s)
			err := s.Validate()
			var se *SchemaError
			if !errors.As(err, &se) {
				t.Fatalf("expected SchemaError, got %v", err)
			}
			if se.Field != tt.field {
				t.Fatalf("expected field %q, got %q", tt.field, se.Field)
			}
		})
	}
}

func TestRecurringTaskValidate(t *testing.T) {
	base := RecurringTask{
		ID:         "r1",
		Title:      "Stretch",
		Priority:   PriorityMedium,
		Recurrence: RecurrenceRule{Type: RecurDaily, Interval: 1},
		CreatedAt:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := base.Validate(); err != nil {
		t.Fatalf("expected valid task, got %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*RecurringTask)
	}{
		{"weekly without weekdays", func(r *RecurringTask) { r.Recurrence = RecurrenceRule{Type: RecurWeekly, Interval: 1} }},
		{"weekday out of range", func(r *RecurringTask) {
			r.Recurrence = RecurrenceRule{Type: RecurWeekly, Interval: 1, Weekdays: []int{0}}
		}},
		{"interval zero", func(r *RecurringTask) { r.Recurrence.Interval = 0 }},
		{"interval too big", func(r *RecurringTask) { r.Recurrence.Interval = 31 }},
		{"unknown type", func(r *RecurringTask) { r.Recurrence.Type = "monthly" }},
		{"bad priority", func(r *RecurringTask) { r.Priority = "urgent" }},
		{"empty schedule", func(r *RecurringTask) { r.DefaultSchedule = &Schedule{StartMin: 600, EndMin: 600} }},
		{"no createdAt", func(r *RecurringTask) { r.CreatedAt = time.Time{} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := base
			tt.mutate(&r)
			if err := r.Validate(); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}

func TestPlannerTaskRequiresBothMinutes(t *testing.T) {
	task := PlannerTask{ID: "t1", Title: "Read", Priority: PriorityLow, StartMin: Ptr(60)}
	if err := task.Validate(); err == nil {
		t.Fatalf("expected error when only startMin is set")
	}
	task.EndMin = Ptr(90)
	if err := task.Validate(); err != nil {
		t.Fatalf("expected valid task, got %v", err)
	}
}

func TestDatasetValidateRejectsDuplicateIDs(t *testing.T) {
	d := NewDataset()
	d.Goals = []Goal{{ID: "g1", Name: "A"}, {ID: "g1", Name: "B"}}
	err := d.Validate()
	var se *SchemaError
	if !errors.As(err, &se) {
		t.Fatalf("expected SchemaError, got %v", err)
	}
	if se.Field != "id" {
		t.Fatalf("expected id error, got %q", se.Field)
	}
}

func TestDatasetValidatePlannerKey(t *testing.T) {
	d := NewDataset()
	d.Planner["2024-02-01"] = PlannerDay{Date: "2024-02-02"}
	if err := d.Validate(); err == nil {
		t.Fatalf("expected mismatched planner key to fail")
	}
	d.Planner = map[string]PlannerDay{"2024-02-01": {Date: "2024-02-01"}}
	if err := d.Validate(); err != nil {
		t.Fatalf("expected valid planner, got %v", err)
	}
}

func TestDate(t *testing.T) {
	d, err := ParseDate("2024-01-01")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if d.ISOWeekday() != 1 {
		t.Fatalf("expected Monday, got %d", d.ISOWeekday())
	}
	if got := d.AddDays(6).ISOWeekday(); got != 7 {
		t.Fatalf("expected Sunday, got %d", got)
	}
	next, _ := ParseDate("2024-03-01")
	if got := next.DaysSince(d); got != 60 {
		t.Fatalf("expected 60 days across leap February, got %d", got)
	}
	if _, err := ParseDate("2024-13-01"); err == nil {
		t.Fatalf("expected invalid month to fail")
	}

	late := time.Date(2024, 1, 1, 23, 30, 0, 0, time.FixedZone("UTC-5", -5*3600))
	if got := UTCDate(late).String(); got != "2024-01-02" {
		t.Fatalf("expected UTC date 2024-01-02, got %s", got)
	}
	if got := DateIn(late, late.Location()).String(); got != "2024-01-01" {
		t.Fatalf("expected local date 2024-01-01, got %s", got)
	}
}

func TestHierarchyValidateAllowsDanglingParents(t *testing.T) {
	if err := (Project{ID: "p", Name: "Legacy"}).Validate(); err != nil {
		t.Fatalf("project without goal should validate: %v", err)
	}
	if err := (Topic{ID: "t", Name: "Legacy"}).Validate(); err != nil {
		t.Fatalf("topic without project should validate: %v", err)
	}
	if err := (Project{ID: "p", GoalID: "g"}).Validate(); err == nil {
		t.Fatalf("expected error for blank project name")
	}
}
