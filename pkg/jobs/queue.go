package jobs

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Job carries one unit of background work.
type Job struct {
	ID       string
	Type     string
	Payload  interface{}
	Enqueued time.Time
}

// Handler processes a job. A non-nil error triggers a retry.
type Handler func(context.Context, Job) error

// Options tunes queue behaviour. Zero values fall back to sane defaults.
type Options struct {
	Workers int
	Buffer  int
	Retries int
	Backoff time.Duration
	Logger  *zap.Logger
}

// Queue dispatches jobs to a fixed pool of workers over a buffered channel.
// Enqueue never blocks: when the buffer is full the job is rejected, so
// callers on the request path stay fast and treat the queue as best effort.
type Queue struct {
	name    string
	handler Handler
	workers int
	retries int
	backoff time.Duration
	logger  *zap.SugaredLogger

	jobs chan Job
	quit chan struct{}

	startOnce sync.Once
	stopOnce  sync.Once
	wg        sync.WaitGroup
}

// NewQueue builds a queue around the given handler. Call Start before Enqueue.
func NewQueue(name string, handler Handler, opts Options) *Queue {
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	if opts.Buffer <= 0 {
		opts.Buffer = opts.Workers * 16
	}
	if opts.Retries <= 0 {
		opts.Retries = 3
	}
	if opts.Backoff <= 0 {
		opts.Backoff = time.Second
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Queue{
		name:    name,
		handler: handler,
		workers: opts.Workers,
		retries: opts.Retries,
		backoff: opts.Backoff,
		logger:  opts.Logger.Sugar(),
		jobs:    make(chan Job, opts.Buffer),
		quit:    make(chan struct{}),
	}
}

// Start launches the worker pool. Subsequent calls are no-ops.
func (q *Queue) Start(ctx context.Context) {
	q.startOnce.Do(func() {
		for i := 0; i < q.workers; i++ {
			q.wg.Add(1)
			go q.run(ctx)
		}
		q.logger.Infow("queue started", "queue", q.name, "workers", q.workers)
	})
}

// Stop drains buffered jobs and waits for the workers to exit.
func (q *Queue) Stop() {
	q.stopOnce.Do(func() {
		close(q.quit)
		q.wg.Wait()
		q.logger.Infow("queue stopped", "queue", q.name)
	})
}

// Enqueue offers a job to the pool without blocking.
func (q *Queue) Enqueue(job Job) error {
	if job.Enqueued.IsZero() {
		job.Enqueued = time.Now().UTC()
	}
	select {
	case <-q.quit:
		return fmt.Errorf("%s queue is shut down", q.name)
	case q.jobs <- job:
		return nil
	default:
		return fmt.Errorf("%s queue is full", q.name)
	}
}

func (q *Queue) run(ctx context.Context) {
	defer q.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case <-q.quit:
			q.drain(ctx)
			return
		case job := <-q.jobs:
			q.process(ctx, job)
		}
	}
}

// drain finishes whatever was already buffered at shutdown.
func (q *Queue) drain(ctx context.Context) {
	for {
		select {
		case job := <-q.jobs:
			q.process(ctx, job)
		default:
			return
		}
	}
}

func (q *Queue) process(ctx context.Context, job Job) {
	delay := q.backoff
	for attempt := 1; ; attempt++ {
		err := q.handler(ctx, job)
		if err == nil {
			return
		}
		if attempt > q.retries {
			q.logger.Errorw("giving up on job",
				"queue", q.name, "job_id", job.ID, "type", job.Type, "attempts", attempt, "error", err)
			return
		}
		q.logger.Warnw("job failed, retrying",
			"queue", q.name, "job_id", job.ID, "type", job.Type, "attempt", attempt, "error", err)
		select {
		case <-ctx.Done():
			return
		case <-time.After(delay):
		}
		delay *= 2
	}
}
