// Package writequeue serializes index mutations behind a single writer
// goroutine: every insert and delete is handed to the queue as a job and
// applied in FIFO order, one at a time, so the indices never need
// fine-grained internal locking against concurrent writers.
package writequeue

import (
	"context"
	"log/slog"
)

// Job is one unit of writer-lane work. Apply performs the actual index
// mutation and is only ever called from the single writer goroutine.
type Job struct {
	Apply func() error
	done  chan error
}

// Queue is a bounded FIFO drained by exactly one goroutine. Insert
// acceptance order is writer application order.
type Queue struct {
	jobs   chan Job
	logger *slog.Logger
}

// New returns a Queue with the given capacity and starts its writer
// goroutine. The writer runs until ctx is canceled.
func New(ctx context.Context, capacity int, logger *slog.Logger) *Queue {
	if capacity <= 0 {
		capacity = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	q := &Queue{
		jobs:   make(chan Job, capacity),
		logger: logger.With("component", "writequeue"),
	}
	go q.drain(ctx)
	return q
}

// Submit enqueues fn and blocks until the writer has applied it (or ctx is
// canceled first), returning whatever error fn produced.
func (q *Queue) Submit(ctx context.Context, fn func() error) error {
	job := Job{Apply: fn, done: make(chan error, 1)}
	select {
	case q.jobs <- job:
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-job.done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Depth returns the number of jobs currently queued but not yet picked up
// by the writer, for health/metrics reporting.
func (q *Queue) Depth() int {
	return len(q.jobs)
}

func (q *Queue) drain(ctx context.Context) {
	for {
		select {
		case job := <-q.jobs:
			err := job.Apply()
			if err != nil {
				q.logger.Error("write job failed", "error", err)
			}
			job.done <- err
		case <-ctx.Done():
			q.logger.Info("writer lane stopped", "reason", ctx.Err())
			return
		}
	}
}
