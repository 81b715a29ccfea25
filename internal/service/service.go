// Package service runs the read-modify-write operations of the tracker
// over the document store. Reads work on a fresh snapshot; every write goes
// through a single FIFO queue so at most one write is in flight.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Testeur1337/myPomodoro/internal/hierarchy"
	"github.com/Testeur1337/myPomodoro/internal/logger"
	"github.com/Testeur1337/myPomodoro/internal/model"
	"github.com/Testeur1337/myPomodoro/internal/writequeue"
)

// ErrNotFound is wrapped by every lookup failure.
var ErrNotFound = errors.New("not found")

func notFound(kind, id string) error {
	return fmt.Errorf("%s %q: %w", kind, id, ErrNotFound)
}

func invalid(msg string) error {
	return &hierarchy.ValidationError{Message: msg}
}

// Messages for write paths outside the resolver.
const (
	MsgPlaceholderArchive = "unassigned placeholders cannot be archived"
	MsgPlaceholderMove    = "unassigned placeholders cannot be moved"
	MsgSameDate           = "task is already on that date"
)

// Store loads and replaces the whole data set.
type Store interface {
	Load(ctx context.Context) (*model.Dataset, int64, error)
	Save(ctx context.Context, ds *model.Dataset) (int64, error)
}

// Options tune a Service. Zero values fall back to defaults.
type Options struct {
	Policy    hierarchy.Policy
	Clock     func() time.Time
	Location  *time.Location // decides which date is today
	NewID     func() string
	QueueSize int
}

type Service struct {
	store    Store
	queue    *writequeue.Queue
	resolver hierarchy.Resolver
	now      func() time.Time
	loc      *time.Location
	newID    func() string
}

func New(store Store, opts Options) *Service {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	if opts.QueueSize <= 0 {
		opts.QueueSize = 64
	}
	return &Service{
		store:    store,
		queue:    writequeue.New(opts.QueueSize),
		resolver: hierarchy.Resolver{Policy: opts.Policy},
		now:      opts.Clock,
		loc:      opts.Location,
		newID:    opts.NewID,
	}
}

// Close waits for queued writes and stops the write queue.
func (s *Service) Close() {
	s.queue.Close()
}

// Today is the current calendar date in the configured time zone.
func (s *Service) Today() model.Date {
	return model.DateIn(s.now(), s.loc)
}

func (s *Service) snapshot(ctx context.Context) (*model.Dataset, error) {
	ds, _, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load data: %w", err)
	}
	return ds, nil
}

// mutate loads the data set, applies fn and saves the result, all as one
// queued job. Nothing is saved when fn fails.
func (s *Service) mutate(ctx context.Context, name string, fn func(ds *model.Dataset) error) error {
	return s.queue.Submit(ctx, name, func(ctx context.Context) error {
		ds, _, err := s.store.Load(ctx)
		if err != nil {
			return fmt.Errorf("failed to load data: %w", err)
		}
		if err := fn(ds); err != nil {
			return err
		}
		rev, err := s.store.Save(ctx, ds)
		if err != nil {
			return fmt.Errorf("failed to save data: %w", err)
		}
		logger.Debug("dataset saved", logger.F("op", name), logger.F("revision", rev))
		return nil
	})
}

func indexOf[T any](items []T, id string, key func(T) string) int {
	for i, it := range items {
		if key(it) == id {
			return i
		}
	}
	return -1
}

func goalKey(g model.Goal) string { return g.ID }
func projectKey(p model.Project) string { return p.ID }
func topicKey(t model.Topic) string { return t.ID }
func sessionKey(s model.Session) string { return s.ID }
func recurringKey(r model.RecurringTask) string { return r.ID }
func templateKey(t model.TimeBlockingTemplate) string { return t.ID }
