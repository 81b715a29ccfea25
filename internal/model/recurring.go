package model

import "time"

// Priority of planner and recurring tasks.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "med"
	PriorityHigh   Priority = "high"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// RecurrenceType is the period a recurrence rule counts in.
type RecurrenceType string

const (
	RecurDaily  RecurrenceType = "daily"
	RecurWeekly RecurrenceType = "weekly"
)

// MaxRecurrenceInterval bounds "every N days/weeks".
const MaxRecurrenceInterval = 30

// RecurrenceRule describes when a recurring task is due. Weekdays use ISO
// numbering, 1=Monday through 7=Sunday, and only apply to weekly rules.
type RecurrenceRule struct {
	Type     RecurrenceType `json:"type"`
	Interval int            `json:"interval"`
	Weekdays []int          `json:"weekdays,omitempty"`
}

func (r RecurrenceRule) validate(id string) error {
	if r.Type != RecurDaily && r.Type != RecurWeekly {
		return schemaErr("recurring task", id, "recurrence.type", "must be daily or weekly")
	}
	if r.Interval < 1 || r.Interval > MaxRecurrenceInterval {
		return schemaErr("recurring task", id, "recurrence.interval", "must be between 1 and 30")
	}
	if r.Type == RecurWeekly {
		if len(r.Weekdays) == 0 {
			return schemaErr("recurring task", id, "recurrence.weekdays", "must not be empty for weekly rules")
		}
		for _, wd := range r.Weekdays {
			if wd < 1 || wd > 7 {
				return schemaErr("recurring task", id, "recurrence.weekdays", "must be between 1 and 7")
			}
		}
	}
	return nil
}

// Schedule is a span of a day in minutes since midnight.
type Schedule struct {
	StartMin int `json:"startMin"`
	EndMin   int `json:"endMin"`
}

// RecurringTask is a template for a task that recurs on a daily or weekly rule.
type RecurringTask struct {
	ID              string         `json:"id"`
	Title           string         `json:"title"`
	Priority        Priority       `json:"priority"`
	Note            string         `json:"note"`
	Recurrence      RecurrenceRule `json:"recurrence"`
	DefaultSchedule *Schedule      `json:"defaultSchedule"`
	CreatedAt       time.Time      `json:"createdAt"`
	Archived        bool           `json:"archived"`
}

func (r RecurringTask) Validate() error {
	if err := requireID("recurring task", r.ID); err != nil {
		return err
	}
	if !nonEmpty(r.Title) {
		return schemaErr("recurring task", r.ID, "title", "must not be empty")
	}
	if !r.Priority.Valid() {
		return schemaErr("recurring task", r.ID, "priority", "must be low, med or high")
	}
	if err := r.Recurrence.validate(r.ID); err != nil {
		return err
	}
	// createdAt anchors the recurrence, so it cannot be left out.
	if err := requireTime("recurring task", r.ID, "createdAt", r.CreatedAt); err != nil {
		return err
	}
	if s := r.DefaultSchedule; s != nil && !ValidMinutes(s.StartMin, s.EndMin) {
		return schemaErr("recurring task", r.ID, "defaultSchedule", "must satisfy 0 <= startMin < endMin <= 1440")
	}
	return nil
}
