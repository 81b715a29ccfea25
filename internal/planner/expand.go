// Package planner computes the effective task list of a planner day and
// folds user edits back into the persisted form.
package planner

import (
	"strconv"

	"github.com/Testeur1337/myPomodoro/internal/model"
	"github.com/Testeur1337/myPomodoro/internal/recurrence"
)

// VirtualID is the id given to the instance of a recurring task on date.
// The same pair always yields the same id, unless a persisted task on that
// date already holds it (see Expand).
func VirtualID(recurringID string, date model.Date) string {
	return "rec-" + recurringID + "-" + date.String()
}

// Expand merges the persisted tasks of day with an instance of every active
// recurring task due on date that the day does not already account for.
// A recurring task is accounted for when a persisted task names it as its
// source, whether that task is live or a tombstone.
//
// Tombstones are not part of the result. Each task id and each recurring id
// appears at most once. Expand never modifies day.
func Expand(date model.Date, day model.PlannerDay, recurring []model.RecurringTask) model.PlannerDay {
	present := make(map[string]struct{})
	suppressed := make(map[string]struct{})
	for _, t := range day.Tasks {
		if t.SourceRecurringID == "" {
			continue
		}
		if t.Deleted {
			suppressed[t.SourceRecurringID] = struct{}{}
		} else {
			present[t.SourceRecurringID] = struct{}{}
		}
	}

	out := model.PlannerDay{
		Date:                   date.String(),
		Tasks:                  make([]model.PlannerTask, 0, len(day.Tasks)),
		GeneratedFromRecurring: day.GeneratedFromRecurring,
	}
	ids := make(map[string]struct{}, len(day.Tasks))
	sources := make(map[string]struct{})
	// taken holds every persisted id, tombstones included, so a synthesized
	// instance never reuses one.
	taken := make(map[string]struct{}, len(day.Tasks))
	for _, t := range day.Tasks {
		taken[t.ID] = struct{}{}
	}

	for _, t := range day.Tasks {
		if t.Deleted {
			continue
		}
		if _, dup := ids[t.ID]; dup {
			continue
		}
		if t.SourceRecurringID != "" {
			if _, dup := sources[t.SourceRecurringID]; dup {
				continue
			}
			sources[t.SourceRecurringID] = struct{}{}
		}
		ids[t.ID] = struct{}{}
		t.Virtual = false
		out.Tasks = append(out.Tasks, t)
	}

	for _, r := range recurring {
		if !recurrence.Due(r, date) {
			continue
		}
		if _, ok := present[r.ID]; ok {
			continue
		}
		if _, ok := suppressed[r.ID]; ok {
			continue
		}
		if _, ok := sources[r.ID]; ok {
			continue
		}
		v := instance(r, date)
		v.ID = freeID(v.ID, taken)
		taken[v.ID] = struct{}{}
		ids[v.ID] = struct{}{}
		sources[r.ID] = struct{}{}
		out.Tasks = append(out.Tasks, v)
		out.GeneratedFromRecurring = true
	}
	return out
}

// freeID returns id, or id with a "-v<n>" suffix when a persisted task
// already holds it.
func freeID(id string, taken map[string]struct{}) string {
	candidate := id
	for n := 1; ; n++ {
		if _, dup := taken[candidate]; !dup {
			return candidate
		}
		candidate = id + "-v" + strconv.Itoa(n)
	}
}

func instance(r model.RecurringTask, date model.Date) model.PlannerTask {
	t := model.PlannerTask{
		ID:                VirtualID(r.ID, date),
		Title:             r.Title,
		Priority:          r.Priority,
		Note:              r.Note,
		SourceRecurringID: r.ID,
		Virtual:           true,
	}
	if s := r.DefaultSchedule; s != nil {
		t.StartMin = model.Ptr(s.StartMin)
		t.EndMin = model.Ptr(s.EndMin)
	}
	return t
}

// Find returns the task with id from day.
func Find(day model.PlannerDay, id string) (model.PlannerTask, bool) {
	for _, t := range day.Tasks {
		if t.ID == id {
			return t, true
		}
	}
	return model.PlannerTask{}, false
}
