package model

import "time"

// PlannerTask is one task on a planner day. Instances materialized from a
// recurring definition carry SourceRecurringID; Deleted marks a tombstone.
type PlannerTask struct {
	ID                string   `json:"id"`
	Title             string   `json:"title"`
	Priority          Priority `json:"priority"`
	Note              string   `json:"note"`
	Completed         bool     `json:"completed"`
	StartMin          *int     `json:"startMin"`
	EndMin            *int     `json:"endMin"`
	SourceRecurringID string   `json:"sourceRecurringId,omitempty"`
	Deleted           bool     `json:"deleted,omitempty"`

	// Virtual is set only on instances synthesized by the expander.
	// It is cleared before a day is persisted.
	Virtual bool `json:"virtual,omitempty"`
}

func (t PlannerTask) Validate() error {
	if err := requireID("planner task", t.ID); err != nil {
		return err
	}
	if !nonEmpty(t.Title) {
		return schemaErr("planner task", t.ID, "title", "must not be empty")
	}
	if !t.Priority.Valid() {
		return schemaErr("planner task", t.ID, "priority", "must be low, med or high")
	}
	if (t.StartMin == nil) != (t.EndMin == nil) {
		return schemaErr("planner task", t.ID, "startMin", "and endMin must be set together")
	}
	if t.StartMin != nil && !ValidMinutes(*t.StartMin, *t.EndMin) {
		return schemaErr("planner task", t.ID, "endMin", "must satisfy 0 <= startMin < endMin <= 1440")
	}
	return nil
}

// PlannerDay is the persisted task list of one calendar date.
type PlannerDay struct {
	Date                   string        `json:"date"`
	Tasks                  []PlannerTask `json:"tasks"`
	GeneratedFromRecurring bool          `json:"generatedFromRecurring"`
}

func (d PlannerDay) Validate() error {
	if _, err := ParseDate(d.Date); err != nil {
		return schemaErr("planner day", d.Date, "date", "must be yyyy-mm-dd")
	}
	seen := make(map[string]struct{}, len(d.Tasks))
	for _, t := range d.Tasks {
		if err := t.Validate(); err != nil {
			return err
		}
		if _, dup := seen[t.ID]; dup {
			return schemaErr("planner day", d.Date, "tasks", "contains duplicate id "+t.ID)
		}
		seen[t.ID] = struct{}{}
	}
	return nil
}

// TemplateBlock is one scheduled slot of a time-blocking template.
type TemplateBlock struct {
	Title    string   `json:"title"`
	StartMin int      `json:"startMin"`
	EndMin   int      `json:"endMin"`
	Priority Priority `json:"priority"`
}

// TimeBlockingTemplate is a reusable shape for populating a day.
type TimeBlockingTemplate struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Blocks    []TemplateBlock `json:"blocks"`
	CreatedAt time.Time       `json:"createdAt"`
}

func (t TimeBlockingTemplate) Validate() error {
	if err := requireID("template", t.ID); err != nil {
		return err
	}
	if !nonEmpty(t.Name) {
		return schemaErr("template", t.ID, "name", "must not be empty")
	}
	for _, b := range t.Blocks {
		if !nonEmpty(b.Title) {
			return schemaErr("template", t.ID, "blocks.title", "must not be empty")
		}
		if !b.Priority.Valid() {
			return schemaErr("template", t.ID, "blocks.priority", "must be low, med or high")
		}
		if !ValidMinutes(b.StartMin, b.EndMin) {
			return schemaErr("template", t.ID, "blocks.endMin", "must satisfy 0 <= startMin < endMin <= 1440")
		}
	}
	return nil
}
