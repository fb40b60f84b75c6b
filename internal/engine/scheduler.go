package engine

import (
	"context"
	"sync"
	"time"
)

// Task is a periodic job that can also be triggered on demand.
// Runs of the same task never overlap: ticks and triggers that arrive while a
// run is in flight collapse into at most one pending run.
type Task struct {
	name     string
	interval time.Duration
	run      func(ctx context.Context)
	kick     chan struct{}
}

// Name returns the task name.
func (t *Task) Name() string {
	return t.name
}

// Trigger requests a run as soon as possible.
func (t *Task) Trigger() {
	select {
	case t.kick <- struct{}{}:
	default:
	}
}

// loop runs the task until ctx is canceled.
func (t *Task) loop(ctx context.Context) {
	var tick <-chan time.Time

	if t.interval > 0 {
		ticker := time.NewTicker(t.interval)
		defer ticker.Stop()

		tick = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-tick:
		case <-t.kick:
		}

		if ctx.Err() != nil {
			return
		}

		t.run(ctx)
	}
}

// Scheduler drives independent tasks, each in its own goroutine.
type Scheduler struct {
	mu      sync.Mutex
	tasks   []*Task
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	running bool
}

// NewScheduler creates an idle scheduler.
func NewScheduler() *Scheduler {
	return new(Scheduler)
}

// Add registers a task. A zero interval makes the task run only on Trigger.
// Tasks added after Start begin with the next Start.
func (s *Scheduler) Add(name string, interval time.Duration, run func(ctx context.Context)) *Task {
	task := &Task{
		name:     name,
		interval: interval,
		run:      run,
		kick:     make(chan struct{}, 1),
	}

	s.mu.Lock()
	s.tasks = append(s.tasks, task)
	s.mu.Unlock()

	return task
}

// Start launches every task. Starting a running scheduler is a no-op.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return
	}

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.running = true

	for _, task := range s.tasks {
		s.wg.Go(func() {
			task.loop(runCtx)
		})
	}
}

// Stop cancels all tasks and waits for in-flight runs to return.
func (s *Scheduler) Stop() {
	s.mu.Lock()

	if !s.running {
		s.mu.Unlock()
		return
	}

	s.running = false
	cancel := s.cancel
	s.cancel = nil

	s.mu.Unlock()

	cancel()
	s.wg.Wait()
}
