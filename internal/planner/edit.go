package planner

import "github.com/Testeur1337/myPomodoro/internal/model"

// Promote builds the day to persist when a user saves tasks for date.
// The saved tasks are kept as given, minus the virtual marker, so an edited
// instance keeps its source and is seen as present by later expansions.
// Tombstones already on the persisted day survive unless tasks carries a
// task from the same recurring source.
func Promote(date model.Date, persisted model.PlannerDay, tasks []model.PlannerTask) model.PlannerDay {
	out := model.PlannerDay{
		Date:                   date.String(),
		Tasks:                  make([]model.PlannerTask, 0, len(tasks)),
		GeneratedFromRecurring: persisted.GeneratedFromRecurring,
	}
	sources := make(map[string]struct{})
	ids := make(map[string]struct{}, len(tasks))
	for _, t := range tasks {
		t.Virtual = false
		if t.SourceRecurringID != "" {
			sources[t.SourceRecurringID] = struct{}{}
			out.GeneratedFromRecurring = true
		}
		ids[t.ID] = struct{}{}
		out.Tasks = append(out.Tasks, t)
	}
	for _, t := range persisted.Tasks {
		if !t.Deleted || t.SourceRecurringID == "" {
			continue
		}
		if _, ok := sources[t.SourceRecurringID]; ok {
			continue
		}
		if _, ok := ids[t.ID]; ok {
			continue
		}
		sources[t.SourceRecurringID] = struct{}{}
		out.Tasks = append(out.Tasks, t)
	}
	return out
}

// Tombstone returns the persisted marker that stops the instance t from
// being generated again on its date.
func Tombstone(t model.PlannerTask) model.PlannerTask {
	t.Deleted = true
	t.Virtual = false
	return t
}

// ApplyTemplate adds one task per template block to day. With replace set,
// concrete tasks not tied to a recurring definition are dropped first.
// newID is called once per block.
func ApplyTemplate(day model.PlannerDay, tpl model.TimeBlockingTemplate, replace bool, newID func() string) model.PlannerDay {
	out := model.PlannerDay{
		Date:                   day.Date,
		Tasks:                  make([]model.PlannerTask, 0, len(day.Tasks)+len(tpl.Blocks)),
		GeneratedFromRecurring: day.GeneratedFromRecurring,
	}
	for _, t := range day.Tasks {
		if replace && t.SourceRecurringID == "" {
			continue
		}
		out.Tasks = append(out.Tasks, t)
	}
	for _, b := range tpl.Blocks {
		out.Tasks = append(out.Tasks, model.PlannerTask{
			ID:       newID(),
			Title:    b.Title,
			Priority: b.Priority,
			StartMin: model.Ptr(b.StartMin),
			EndMin:   model.Ptr(b.EndMin),
		})
	}
	return out
}

// Move takes task off src and puts a copy with newID on dst. A recurring
// instance leaves a tombstone behind on src and arrives on dst as a plain
// task, so neither date's own recurrence is disturbed.
func Move(src, dst model.PlannerDay, task model.PlannerTask, newID string) (model.PlannerDay, model.PlannerDay) {
	from := model.PlannerDay{
		Date:                   src.Date,
		Tasks:                  make([]model.PlannerTask, 0, len(src.Tasks)+1),
		GeneratedFromRecurring: src.GeneratedFromRecurring,
	}
	for _, t := range src.Tasks {
		if t.ID == task.ID {
			continue
		}
		from.Tasks = append(from.Tasks, t)
	}
	if task.SourceRecurringID != "" {
		from.Tasks = append(from.Tasks, Tombstone(task))
	}

	moved := task
	moved.ID = newID
	moved.SourceRecurringID = ""
	moved.Virtual = false
	moved.Deleted = false

	to := model.PlannerDay{
		Date:                   dst.Date,
		Tasks:                  append(append([]model.PlannerTask(nil), dst.Tasks...), moved),
		GeneratedFromRecurring: dst.GeneratedFromRecurring,
	}
	return from, to
}
