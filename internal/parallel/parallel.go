// Package parallel provides the minimal concurrency primitive for launching
// independent units of work together and waiting for all of them to finish.
package parallel

import (
	"errors"
	"fmt"
	"sync"
)

// task pairs a queued unit of work with the name it reports failures under.
type task struct {
	name string
	fn   func() error
}

// Runner queues zero-argument units of work, launches them all concurrently,
// and waits for every one to finish. One goroutine runs per task with no
// concurrency cap: the caller is responsible for not over-subscribing. There
// is no ordering guarantee between tasks and no cancellation; once launched,
// every task runs to completion.
//
// A task's failure never halts or hides its siblings. Failures are collected
// and surfaced together from Wait once all tasks have finished.
type Runner struct {
	mu      sync.Mutex
	tasks   []task
	started bool

	wg   sync.WaitGroup
	errs []error
}

// Add queues a unit of work under the given name. It must be called before
// Run.
func (r *Runner) Add(name string, fn func() error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.started {
		panic("parallel: Add called after Run")
	}
	if name == "" {
		name = fmt.Sprintf("task-%d", len(r.tasks))
	}
	r.tasks = append(r.tasks, task{name: name, fn: fn})
}

// Run launches every queued task in its own goroutine and returns without
// blocking.
func (r *Runner) Run() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.started {
		panic("parallel: Run called twice")
	}
	r.started = true

	r.wg.Add(len(r.tasks))
	for _, t := range r.tasks {
		go func(t task) {
			defer r.wg.Done()
			if err := r.runOne(t); err != nil {
				r.mu.Lock()
				r.errs = append(r.errs, fmt.Errorf("task %s: %w", t.name, err))
				r.mu.Unlock()
			}
		}(t)
	}
}

// runOne executes a single task, converting a panic into an error so one
// misbehaving task cannot take down the process or its siblings.
func (r *Runner) runOne(t task) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic: %v", rec)
		}
	}()
	return t.fn()
}

// Wait blocks until every launched task has finished, then reports all
// collected failures joined into one error, or nil if every task succeeded.
func (r *Runner) Wait() error {
	r.wg.Wait()
	r.mu.Lock()
	defer r.mu.Unlock()
	return errors.Join(r.errs...)
}
