package service

import (
	"context"
	"fmt"

	"github.com/Testeur1337/myPomodoro/internal/hierarchy"
	"github.com/Testeur1337/myPomodoro/internal/logger"
	"github.com/Testeur1337/myPomodoro/internal/model"
)

// Repair runs the hierarchy migrator over the stored data set and saves the
// result when anything changed.
func (s *Service) Repair(ctx context.Context) (hierarchy.Report, error) {
	var rep hierarchy.Report
	err := s.queue.Submit(ctx, "repair", func(ctx context.Context) error {
		ds, _, err := s.store.Load(ctx)
		if err != nil {
			return fmt.Errorf("failed to load data: %w", err)
		}
		rep = hierarchy.MigrateDataset(ds, s.now().UTC())
		if !rep.Changed() {
			return nil
		}
		if _, err := s.store.Save(ctx, ds); err != nil {
			return fmt.Errorf("failed to save data: %w", err)
		}
		return nil
	})
	if err != nil {
		return hierarchy.Report{}, err
	}
	logReport("repair finished", rep)
	return rep, nil
}

// Export returns a snapshot of the whole data set.
func (s *Service) Export(ctx context.Context) (*model.Dataset, error) {
	return s.snapshot(ctx)
}

// Import replaces the whole data set with ds after checking its shape and
// repairing its hierarchy, the same way startup repair does.
func (s *Service) Import(ctx context.Context, ds *model.Dataset) (hierarchy.Report, error) {
	ds.Normalize()
	if err := ds.Validate(); err != nil {
		return hierarchy.Report{}, err
	}
	rep := hierarchy.MigrateDataset(ds, s.now().UTC())
	err := s.queue.Submit(ctx, "import", func(ctx context.Context) error {
		if _, err := s.store.Save(ctx, ds); err != nil {
			return fmt.Errorf("failed to save data: %w", err)
		}
		return nil
	})
	if err != nil {
		return hierarchy.Report{}, err
	}
	logReport("import finished", rep,
		logger.F("goals", len(ds.Goals)),
		logger.F("sessions", len(ds.Sessions)))
	return rep, nil
}

func logReport(msg string, rep hierarchy.Report, extra ...logger.Field) {
	fields := append([]logger.Field{
		logger.F("created", len(rep.Created)),
		logger.F("adopted", len(rep.Adopted)),
		logger.F("restored", len(rep.Restored)),
		logger.F("rebound_projects", rep.ReboundProjects),
		logger.F("rebound_topics", rep.ReboundTopics),
		logger.F("rebound_sessions", rep.ReboundSessions),
		logger.F("rewritten_sessions", rep.RewrittenSessions),
	}, extra...)
	if rep.Changed() {
		logger.Info(msg, fields...)
		return
	}
	logger.Debug(msg, fields...)
}
