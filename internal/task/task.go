// Package task runs one-shot background computations whose results are
// collected by polling.
package task

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/sourcegraph/conc/pool"
)

// Outcome is the value delivered when a job finishes.
type Outcome[T any] struct {
	Value T
	Err   error
}

// Handle tracks one submitted job.
type Handle[T any] struct {
	ID   uuid.UUID
	Name string
	// Seq increases with every submission on the same Runner.
	Seq  uint64
	done chan Outcome[T]
}

// Done delivers exactly one Outcome and is then never written again.
func (h *Handle[T]) Done() <-chan Outcome[T] { return h.done }

// Poll returns the outcome without blocking. ok is false while the job is
// still running or after the outcome has already been taken.
func (h *Handle[T]) Poll() (Outcome[T], bool) {
	select {
	case o := <-h.done:
		return o, true
	default:
		return Outcome[T]{}, false
	}
}

// Await blocks until the outcome arrives or ctx is done.
func (h *Handle[T]) Await(ctx context.Context) (Outcome[T], error) {
	select {
	case o := <-h.done:
		return o, nil
	case <-ctx.Done():
		return Outcome[T]{}, ctx.Err()
	}
}

// Runner is a bounded goroutine pool. Submit never blocks: jobs are queued
// and handed to the pool in submission order by a dispatcher goroutine.
type Runner[T any] struct {
	pool    *pool.Pool
	seq     atomic.Uint64
	notify  chan struct{}
	wake    chan struct{}
	stopped chan struct{}

	mu     sync.Mutex
	queue  []func()
	closed bool
}

// NewRunner returns a runner that executes at most workers jobs at once.
// workers <= 0 selects one worker.
func NewRunner[T any](workers int) *Runner[T] {
	if workers <= 0 {
		workers = 1
	}
	r := &Runner[T]{
		pool:    pool.New().WithMaxGoroutines(workers),
		notify:  make(chan struct{}, 1),
		wake:    make(chan struct{}, 1),
		stopped: make(chan struct{}),
	}
	go r.dispatch()
	return r
}

// Notify signals after any job has delivered its outcome. Signals coalesce,
// so a receiver must check every outstanding handle after waking.
func (r *Runner[T]) Notify() <-chan struct{} { return r.notify }

// Submit queues fn and returns its handle immediately. A panic in fn is
// reported as an error outcome.
func (r *Runner[T]) Submit(name string, fn func() (T, error)) (*Handle[T], error) {
	h := &Handle[T]{
		ID:   uuid.New(),
		Name: name,
		done: make(chan Outcome[T], 1),
	}
	job := func() {
		h.done <- run(name, fn)
		signal(r.notify)
	}

	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil, fmt.Errorf("task runner closed, cannot submit %q", name)
	}
	h.Seq = r.seq.Add(1)
	r.queue = append(r.queue, job)
	r.mu.Unlock()

	signal(r.wake)
	return h, nil
}

// dispatch moves queued jobs into the pool. pool.Go blocks while every
// worker is busy, which only ever stalls this goroutine.
func (r *Runner[T]) dispatch() {
	defer close(r.stopped)
	for {
		r.mu.Lock()
		jobs, closed := r.queue, r.closed
		r.queue = nil
		r.mu.Unlock()

		for _, job := range jobs {
			r.pool.Go(job)
		}
		if len(jobs) > 0 {
			continue
		}
		if closed {
			return
		}
		<-r.wake
	}
}

func signal(ch chan struct{}) {
	select {
	case ch <- struct{}{}:
	default:
	}
}

func run[T any](name string, fn func() (T, error)) (out Outcome[T]) {
	defer func() {
		if p := recover(); p != nil {
			out = Outcome[T]{Err: fmt.Errorf("task %q panicked: %v", name, p)}
		}
	}()
	v, err := fn()
	return Outcome[T]{Value: v, Err: err}
}

// Close rejects further submissions and waits until every queued and running
// job has finished.
func (r *Runner[T]) Close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		<-r.stopped
		return
	}
	r.closed = true
	r.mu.Unlock()

	signal(r.wake)
	<-r.stopped
	r.pool.Wait()
}
