package loop

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/colonyops/touchgate/internal/core/logging"
)

// DefaultFrameInterval is the pause between scheduler passes in Run.
const DefaultFrameInterval = 16 * time.Millisecond

// ErrStopped is returned by Await when the scheduler runs out of tasks
// before the awaited source resolves.
var ErrStopped = errors.New("scheduler stopped before task resolved")

// Task is a unit of cooperative work. Step must not block; it returns true
// once the task is finished and should not be stepped again.
type Task interface {
	Step() bool
}

// TaskFunc adapts a function to a Task.
type TaskFunc func() bool

func (f TaskFunc) Step() bool {
	return f()
}

type entry struct {
	name string
	task Task
}

// Scheduler runs tasks cooperatively on the calling goroutine. Each pass
// steps every live task once in spawn order. It is not safe for concurrent
// use.
type Scheduler struct {
	clock    clockwork.Clock
	interval time.Duration
	log      zerolog.Logger

	tasks  []entry
	passes uint64
}

// SchedulerOption configures a Scheduler.
type SchedulerOption func(*Scheduler)

// WithSchedulerClock sets the clock used to pace Run.
func WithSchedulerClock(c clockwork.Clock) SchedulerOption {
	return func(s *Scheduler) {
		if c != nil {
			s.clock = c
		}
	}
}

// WithFrameInterval sets the pause between passes in Run.
func WithFrameInterval(d time.Duration) SchedulerOption {
	return func(s *Scheduler) {
		if d > 0 {
			s.interval = d
		}
	}
}

// NewScheduler creates an empty scheduler.
func NewScheduler(opts ...SchedulerOption) *Scheduler {
	s := &Scheduler{
		clock:    clockwork.NewRealClock(),
		interval: DefaultFrameInterval,
		log:      logging.Component("loop"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Spawn registers a task. It is stepped starting with the next pass.
func (s *Scheduler) Spawn(name string, t Task) {
	s.tasks = append(s.tasks, entry{name: name, task: t})
	s.log.Debug().Str("task", name).Msg("task spawned")
}

// Len returns the number of live tasks.
func (s *Scheduler) Len() int {
	return len(s.tasks)
}

// Passes returns the number of passes run so far.
func (s *Scheduler) Passes() uint64 {
	return s.passes
}

// Step runs one pass over the live tasks and drops the ones that finished.
// Tasks spawned during the pass wait for the next one.
func (s *Scheduler) Step() {
	s.passes++
	current := s.tasks
	s.tasks = nil

	live := current[:0]
	for _, e := range current {
		if e.task.Step() {
			s.log.Debug().Str("task", e.name).Uint64("pass", s.passes).Msg("task finished")
			continue
		}
		live = append(live, e)
	}
	clear(current[len(live):])
	s.tasks = append(live, s.tasks...)
}

// Run steps the scheduler once per frame interval until no tasks remain or
// the context is cancelled.
func (s *Scheduler) Run(ctx context.Context) error {
	return s.RunUntil(ctx, func() bool { return len(s.tasks) == 0 })
}

// RunUntil steps the scheduler once per frame interval until done reports
// true or the context is cancelled. done is checked after every pass.
func (s *Scheduler) RunUntil(ctx context.Context, done func() bool) error {
	ticker := s.clock.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		s.Step()
		if done() {
			return nil
		}
		if len(s.tasks) == 0 {
			return ErrStopped
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.Chan():
		}
	}
}

// Await spawns a task that polls src and runs the scheduler until the
// source produces a value. Other spawned tasks keep running alongside it.
func Await[T any](ctx context.Context, s *Scheduler, name string, src Source[T]) (T, error) {
	var (
		result T
		done   bool
	)
	s.Spawn(name, TaskFunc(func() bool {
		v, ok := src.Poll()
		if ok {
			result = v
			done = true
		}
		return ok
	}))

	if err := s.RunUntil(ctx, func() bool { return done }); err != nil {
		return result, fmt.Errorf("await %s: %w", name, err)
	}
	return result, nil
}
