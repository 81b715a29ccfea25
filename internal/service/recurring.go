package service

import (
	"context"
	"slices"
	"strings"

	"github.com/Testeur1337/myPomodoro/internal/logger"
	"github.com/Testeur1337/myPomodoro/internal/model"
	"github.com/Testeur1337/myPomodoro/internal/recurrence"
)

type RecurringInput struct {
	Title           string               `json:"title"`
	Priority        model.Priority       `json:"priority"`
	Note            string               `json:"note"`
	Recurrence      model.RecurrenceRule `json:"recurrence"`
	DefaultSchedule *model.Schedule      `json:"defaultSchedule"`
}

func (in RecurringInput) apply(r *model.RecurringTask) {
	r.Title = in.Title
	r.Priority = in.Priority
	if r.Priority == "" {
		r.Priority = model.PriorityMedium
	}
	r.Note = in.Note
	r.Recurrence = in.Recurrence
	r.Recurrence.Weekdays = slices.Clone(in.Recurrence.Weekdays)
	slices.Sort(r.Recurrence.Weekdays)
	r.Recurrence.Weekdays = slices.Compact(r.Recurrence.Weekdays)
	r.DefaultSchedule = in.DefaultSchedule
}

func (s *Service) ListRecurring(ctx context.Context, archived bool) ([]model.RecurringTask, error) {
	ds, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.RecurringTask, 0, len(ds.RecurringTasks))
	for _, r := range ds.RecurringTasks {
		if r.Archived && !archived {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

// upcomingHorizon bounds the search for the next due date. Every valid rule
// anchored in the past matches within this many days.
const upcomingHorizon = 7 * (model.MaxRecurrenceInterval + 1)

// Upcoming is a live recurring definition with the next date it is due,
// counting from today. NextDue is empty when the rule cannot match.
type Upcoming struct {
	Task    model.RecurringTask `json:"task"`
	NextDue string              `json:"nextDue,omitempty"`
}

// UpcomingRecurring lists live definitions by their next due date, soonest
// first. Definitions that never match come last.
func (s *Service) UpcomingRecurring(ctx context.Context) ([]Upcoming, error) {
	tasks, err := s.ListRecurring(ctx, false)
	if err != nil {
		return nil, err
	}
	today := s.Today()
	out := make([]Upcoming, 0, len(tasks))
	for _, r := range tasks {
		u := Upcoming{Task: r}
		if d, ok := recurrence.Next(r, today, upcomingHorizon); ok {
			u.NextDue = d.String()
		}
		out = append(out, u)
	}
	slices.SortStableFunc(out, func(a, b Upcoming) int {
		switch {
		case a.NextDue == b.NextDue:
			return 0
		case a.NextDue == "":
			return 1
		case b.NextDue == "":
			return -1
		}
		return strings.Compare(a.NextDue, b.NextDue)
	})
	return out, nil
}

// CreateRecurring stores a new definition. Its creation time anchors the
// recurrence from now on.
func (s *Service) CreateRecurring(ctx context.Context, in RecurringInput) (model.RecurringTask, error) {
	r := model.RecurringTask{ID: s.newID(), CreatedAt: s.now().UTC()}
	in.apply(&r)
	if err := r.Validate(); err != nil {
		return model.RecurringTask{}, err
	}
	err := s.mutate(ctx, "create recurring task", func(ds *model.Dataset) error {
		ds.RecurringTasks = append(ds.RecurringTasks, r)
		return nil
	})
	if err != nil {
		return model.RecurringTask{}, err
	}
	logger.Info("recurring task created", logger.F("id", r.ID), logger.F("rule", r.Recurrence.Type))
	return r, nil
}

// UpdateRecurring edits a definition. Instances already saved on planner
// days keep their own copy of the fields.
func (s *Service) UpdateRecurring(ctx context.Context, id string, in RecurringInput) (model.RecurringTask, error) {
	var out model.RecurringTask
	err := s.mutate(ctx, "update recurring task", func(ds *model.Dataset) error {
		i := indexOf(ds.RecurringTasks, id, recurringKey)
		if i < 0 {
			return notFound("recurring task", id)
		}
		r := ds.RecurringTasks[i]
		in.apply(&r)
		if err := r.Validate(); err != nil {
			return err
		}
		ds.RecurringTasks[i] = r
		out = r
		return nil
	})
	return out, err
}

// SetRecurringArchived stops or resumes future instances. Saved instances
// stay on their days.
func (s *Service) SetRecurringArchived(ctx context.Context, id string, archived bool) (model.RecurringTask, error) {
	var out model.RecurringTask
	err := s.mutate(ctx, "archive recurring task", func(ds *model.Dataset) error {
		i := indexOf(ds.RecurringTasks, id, recurringKey)
		if i < 0 {
			return notFound("recurring task", id)
		}
		ds.RecurringTasks[i].Archived = archived
		out = ds.RecurringTasks[i]
		return nil
	})
	if err == nil {
		logger.Info("recurring task archived flag changed", logger.F("id", id), logger.F("archived", archived))
	}
	return out, err
}

type TemplateInput struct {
	Name   string                `json:"name"`
	Blocks []model.TemplateBlock `json:"blocks"`
}

func (in TemplateInput) blocks() []model.TemplateBlock {
	out := slices.Clone(in.Blocks)
	if out == nil {
		out = []model.TemplateBlock{}
	}
	for i := range out {
		if out[i].Priority == "" {
			out[i].Priority = model.PriorityMedium
		}
	}
	slices.SortStableFunc(out, func(a, b model.TemplateBlock) int {
		return a.StartMin - b.StartMin
	})
	return out
}

func (s *Service) ListTemplates(ctx context.Context) ([]model.TimeBlockingTemplate, error) {
	ds, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return ds.Templates, nil
}

func (s *Service) CreateTemplate(ctx context.Context, in TemplateInput) (model.TimeBlockingTemplate, error) {
	t := model.TimeBlockingTemplate{
		ID:        s.newID(),
		Name:      in.Name,
		Blocks:    in.blocks(),
		CreatedAt: s.now().UTC(),
	}
	if err := t.Validate(); err != nil {
		return model.TimeBlockingTemplate{}, err
	}
	err := s.mutate(ctx, "create template", func(ds *model.Dataset) error {
		ds.Templates = append(ds.Templates, t)
		return nil
	})
	if err != nil {
		return model.TimeBlockingTemplate{}, err
	}
	logger.Info("template created", logger.F("id", t.ID), logger.F("blocks", len(t.Blocks)))
	return t, nil
}

func (s *Service) UpdateTemplate(ctx context.Context, id string, in TemplateInput) (model.TimeBlockingTemplate, error) {
	var out model.TimeBlockingTemplate
	err := s.mutate(ctx, "update template", func(ds *model.Dataset) error {
		i := indexOf(ds.Templates, id, templateKey)
		if i < 0 {
			return notFound("template", id)
		}
		t := ds.Templates[i]
		t.Name = in.Name
		t.Blocks = in.blocks()
		if err := t.Validate(); err != nil {
			return err
		}
		ds.Templates[i] = t
		out = t
		return nil
	})
	return out, err
}

func (s *Service) DeleteTemplate(ctx context.Context, id string) error {
	return s.mutate(ctx, "delete template", func(ds *model.Dataset) error {
		i := indexOf(ds.Templates, id, templateKey)
		if i < 0 {
			return notFound("template", id)
		}
		ds.Templates = slices.Delete(ds.Templates, i, i+1)
		return nil
	})
}
