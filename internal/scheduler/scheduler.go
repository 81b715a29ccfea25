// Package scheduler runs periodic maintenance on cron schedules.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/Testeur1337/myPomodoro/internal/logger"
)

// Scheduler wraps cron-based jobs.
type Scheduler struct {
	cron    *cron.Cron
	timeout time.Duration
}

// New creates a scheduler evaluating standard five-field specs in loc.
// A run that is still going when its next tick arrives makes that tick skip.
func New(loc *time.Location) *Scheduler {
	if loc == nil {
		loc = time.Local
	}
	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithLogger(cronLogger{}),
			cron.WithChain(cron.Recover(cronLogger{}), cron.SkipIfStillRunning(cronLogger{})),
		),
		timeout: 5 * time.Minute,
	}
}

// Schedule registers job under spec. An empty spec disables the job and
// returns a zero id.
func (s *Scheduler) Schedule(name, spec string, job func(ctx context.Context) error) (cron.EntryID, error) {
	if spec == "" {
		logger.Debug("scheduled job disabled", logger.F("job", name))
		return 0, nil
	}
	id, err := s.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()
		start := time.Now()
		if err := job(ctx); err != nil {
			logger.Error("scheduled job failed", logger.F("job", name), logger.F("error", err))
			return
		}
		logger.Info("scheduled job finished", logger.F("job", name), logger.F("duration", time.Since(start).String()))
	})
	if err != nil {
		return 0, err
	}
	logger.Info("scheduled job registered", logger.F("job", name), logger.F("spec", spec))
	return id, nil
}

// Next returns the next activation of a registered job.
func (s *Scheduler) Next(id cron.EntryID) time.Time {
	return s.cron.Entry(id).Next
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop stops the scheduler and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// cronLogger routes cron's own messages, such as skipped ticks and
// recovered panics, through the application logger.
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	logger.Debug("cron: "+msg, cronFields(keysAndValues)...)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	logger.Error("cron: "+msg, append(cronFields(keysAndValues), logger.F("error", err))...)
}

func cronFields(kv []interface{}) []logger.Field {
	fields := make([]logger.Field, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			key = fmt.Sprint(kv[i])
		}
		fields = append(fields, logger.F(key, kv[i+1]))
	}
	return fields
}
