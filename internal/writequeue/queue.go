// Package writequeue serializes writes to the document store.
package writequeue

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/Testeur1337/myPomodoro/internal/logger"
)

// ErrClosed is returned by Submit after Close has been called.
var ErrClosed = errors.New("write queue closed")

// Job is one unit of work. It runs on the queue's worker goroutine.
type Job func(ctx context.Context) error

type request struct {
	ctx    context.Context
	name   string
	job    Job
	result chan error
}

// Queue runs submitted jobs one at a time in submission order. A failing
// job does not stop the jobs queued behind it.
type Queue struct {
	jobs   chan request
	mu     sync.RWMutex
	closed bool
	done   chan struct{}
}

// New starts a queue whose backlog holds up to size pending jobs before
// Submit blocks.
func New(size int) *Queue {
	if size < 0 {
		size = 0
	}
	q := &Queue{
		jobs: make(chan request, size),
		done: make(chan struct{}),
	}
	go q.loop()
	return q
}

func (q *Queue) loop() {
	defer close(q.done)
	for req := range q.jobs {
		err := run(req)
		if err != nil {
			logger.Warn("write failed", logger.F("job", req.name), logger.F("error", err))
		}
		req.result <- err
	}
}

func run(req request) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("write %s panicked: %v", req.name, r)
		}
	}()
	return req.job(req.ctx)
}

// Submit enqueues job and waits for its result. If ctx ends first, Submit
// returns ctx.Err(); a job that was already queued still runs in its turn,
// with a context that is no longer cancelled by ctx.
func (q *Queue) Submit(ctx context.Context, name string, job Job) error {
	req := request{
		ctx:    context.WithoutCancel(ctx),
		name:   name,
		job:    job,
		result: make(chan error, 1),
	}

	q.mu.RLock()
	if q.closed {
		q.mu.RUnlock()
		return ErrClosed
	}
	select {
	case q.jobs <- req:
		q.mu.RUnlock()
	case <-ctx.Done():
		q.mu.RUnlock()
		return ctx.Err()
	}

	select {
	case err := <-req.result:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops accepting jobs, waits for the queued ones to finish and
// stops the worker. It is safe to call more than once.
func (q *Queue) Close() {
	q.mu.Lock()
	if !q.closed {
		q.closed = true
		close(q.jobs)
	}
	q.mu.Unlock()
	<-q.done
}
