// Package jobs serializes print jobs onto a single worker per device
// connection. The transport and the device receive buffer have no queuing
// of their own, so concurrent writers would interleave stripes from
// different jobs; one worker per printer is the whole concurrency model.
package jobs

import (
	"errors"
	"log/slog"

	"github.com/grodrigues/termprint/internal/escpos"
)

// ErrCanceled is delivered to jobs dropped from the queue by Cancel.
var ErrCanceled = errors.New("print job canceled")

// A Job runs against the device printer on the queue's worker goroutine.
// The worker owns the printer for the duration of the job.
type Job func(p *escpos.Printer) error

type queued struct {
	job    Job
	result chan error
}

// A Queue runs jobs in submission order on one worker. Blocking transport
// writes happen only on the worker goroutine, never on the caller's.
type Queue struct {
	printer *escpos.Printer
	jobs    chan queued
	done    chan struct{}
}

// NewQueue starts a worker for the given printer.
func NewQueue(p *escpos.Printer) *Queue {
	q := &Queue{
		printer: p,
		jobs:    make(chan queued, 16),
		done:    make(chan struct{}),
	}
	go q.run()
	return q
}

func (q *Queue) run() {
	defer close(q.done)
	for item := range q.jobs {
		err := item.job(q.printer)
		if err != nil {
			slog.Error("print job failed",
				"err", err,
				"session", q.printer.State(),
			)
		}
		item.result <- err
	}
}

// Submit enqueues a job and returns a channel that receives its error.
// Jobs complete in submission order.
func (q *Queue) Submit(job Job) <-chan error {
	result := make(chan error, 1)
	q.jobs <- queued{job: job, result: result}
	return result
}

// Print runs a job and waits for it.
func (q *Queue) Print(job Job) error {
	return <-q.Submit(job)
}

// Cancel stops printing as soon as the protocol allows: an in-flight
// raster is aborted before its next stripe, every job that has not started
// is dropped, and then the device is reset. A stripe already on the wire is
// never interrupted; truncating it would leave the device in raster mode,
// so the reset is what makes the printer usable again.
func (q *Queue) Cancel() error {
	q.printer.Abort()
	for {
		select {
		case item := <-q.jobs:
			slog.Info("dropping pending print job")
			item.result <- ErrCanceled
		default:
			return q.Print(func(p *escpos.Printer) error { return p.Reset() })
		}
	}
}

// Close stops the worker once pending jobs have finished. Submitting after
// Close panics.
func (q *Queue) Close() {
	close(q.jobs)
	<-q.done
}
