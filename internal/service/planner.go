package service

import (
	"context"

	"github.com/Testeur1337/myPomodoro/internal/logger"
	"github.com/Testeur1337/myPomodoro/internal/model"
	"github.com/Testeur1337/myPomodoro/internal/planner"
)

// GetDay returns the effective task list of date: saved tasks plus the
// instances of recurring tasks due that day.
func (s *Service) GetDay(ctx context.Context, date model.Date) (model.PlannerDay, error) {
	ds, err := s.snapshot(ctx)
	if err != nil {
		return model.PlannerDay{}, err
	}
	return planner.Expand(date, ds.Planner[date.String()], ds.RecurringTasks), nil
}

// SaveDay persists exactly the given tasks for date. Tasks without an id get
// one. Instances of recurring tasks keep their source so they are not
// generated a second time; an instance sent with deleted set stops that
// date's instance for good.
func (s *Service) SaveDay(ctx context.Context, date model.Date, tasks []model.PlannerTask) (model.PlannerDay, error) {
	tasks = append([]model.PlannerTask(nil), tasks...)
	for i := range tasks {
		if tasks[i].ID == "" {
			tasks[i].ID = s.newID()
		}
		if tasks[i].Priority == "" {
			tasks[i].Priority = model.PriorityMedium
		}
	}

	var out model.PlannerDay
	err := s.mutate(ctx, "save planner day", func(ds *model.Dataset) error {
		key := date.String()
		day := planner.Promote(date, ds.Planner[key], tasks)
		if err := day.Validate(); err != nil {
			return err
		}
		putDay(ds, day)
		out = planner.Expand(date, day, ds.RecurringTasks)
		return nil
	})
	if err == nil {
		logger.Info("planner day saved", logger.F("date", date.String()), logger.F("tasks", len(tasks)))
	}
	return out, err
}

// ApplyTemplate adds the blocks of a template to date. With replace set,
// the day's plain tasks are dropped first.
func (s *Service) ApplyTemplate(ctx context.Context, date model.Date, templateID string, replace bool) (model.PlannerDay, error) {
	var out model.PlannerDay
	err := s.mutate(ctx, "apply template", func(ds *model.Dataset) error {
		i := indexOf(ds.Templates, templateID, templateKey)
		if i < 0 {
			return notFound("template", templateID)
		}
		key := date.String()
		day := ds.Planner[key]
		day.Date = key
		day = planner.ApplyTemplate(day, ds.Templates[i], replace, s.newID)
		if err := day.Validate(); err != nil {
			return err
		}
		putDay(ds, day)
		out = planner.Expand(date, day, ds.RecurringTasks)
		return nil
	})
	if err == nil {
		logger.Info("template applied", logger.F("date", date.String()), logger.F("template", templateID))
	}
	return out, err
}

// MoveTask reschedules a task, saved or generated, from one date to another
// and returns both days as they now read.
func (s *Service) MoveTask(ctx context.Context, from, to model.Date, taskID string) (model.PlannerDay, model.PlannerDay, error) {
	if from.String() == to.String() {
		return model.PlannerDay{}, model.PlannerDay{}, invalid(MsgSameDate)
	}
	newID := s.newID()
	var src, dst model.PlannerDay
	err := s.mutate(ctx, "move planner task", func(ds *model.Dataset) error {
		fromDay := ds.Planner[from.String()]
		fromDay.Date = from.String()
		toDay := ds.Planner[to.String()]
		toDay.Date = to.String()

		task, ok := planner.Find(planner.Expand(from, fromDay, ds.RecurringTasks), taskID)
		if !ok {
			return notFound("planner task", taskID)
		}
		fromDay, toDay = planner.Move(fromDay, toDay, task, newID)
		if err := fromDay.Validate(); err != nil {
			return err
		}
		if err := toDay.Validate(); err != nil {
			return err
		}
		putDay(ds, fromDay)
		putDay(ds, toDay)
		src = planner.Expand(from, fromDay, ds.RecurringTasks)
		dst = planner.Expand(to, toDay, ds.RecurringTasks)
		return nil
	})
	if err == nil {
		logger.Info("planner task moved",
			logger.F("task", taskID),
			logger.F("from", from.String()),
			logger.F("to", to.String()))
	}
	return src, dst, err
}

// putDay stores day under its date, dropping days with nothing left in them.
func putDay(ds *model.Dataset, day model.PlannerDay) {
	if len(day.Tasks) == 0 && !day.GeneratedFromRecurring {
		delete(ds.Planner, day.Date)
		return
	}
	ds.Planner[day.Date] = day
}
