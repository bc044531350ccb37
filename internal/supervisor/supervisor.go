// Package supervisor hosts the two independent restart loops spec.md §5
// describes: ingestion and HTTP serving, each wrapped in its own
// "while true { run(); sleep(restartDelay) }" shell so that either may die
// and respawn without affecting the other.
package supervisor

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Task is one independent long-running job. Run should block until ctx is
// cancelled or a fatal error occurs; either way, returning triggers a
// restart after restartDelay unless ctx is already done.
type Task func(ctx context.Context) error

// Supervisor restarts a fixed set of named tasks independently.
type Supervisor struct {
	RestartDelay time.Duration
	Log          zerolog.Logger
	tasks        map[string]Task
}

// New creates a Supervisor with the given restart delay (spec.md §6: 2s).
func New(restartDelay time.Duration, log zerolog.Logger) *Supervisor {
	return &Supervisor{RestartDelay: restartDelay, Log: log, tasks: map[string]Task{}}
}

// Add registers a named task to be run and restarted independently of every
// other registered task.
func (s *Supervisor) Add(name string, t Task) {
	s.tasks[name] = t
}

// Run blocks until ctx is cancelled, restarting each registered task
// whenever its Run call returns, until that happens. Each task's restart
// shell is its own goroutine; one task's repeated failure never starves or
// cancels another's.
func (s *Supervisor) Run(ctx context.Context) error {
	var g errgroup.Group
	for name, task := range s.tasks {
		name, task := name, task
		g.Go(func() error {
			s.runRestartShell(ctx, name, task)
			return nil
		})
	}
	<-ctx.Done()
	_ = g.Wait()
	return ctx.Err()
}

func (s *Supervisor) runRestartShell(ctx context.Context, name string, task Task) {
	for {
		if ctx.Err() != nil {
			return
		}
		err := runOnce(ctx, name, task)
		if ctx.Err() != nil {
			return
		}
		if err != nil {
			s.Log.Error().Err(err).Str("task", name).Dur("restart_in", s.RestartDelay).Msg("supervisor: task exited, restarting")
		} else {
			s.Log.Warn().Str("task", name).Dur("restart_in", s.RestartDelay).Msg("supervisor: task returned without error, restarting")
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(s.RestartDelay):
		}
	}
}

// runOnce recovers a panicking task the same way kill-by-return restart
// shells must: a panic is treated exactly like a returned error.
func runOnce(ctx context.Context, name string, task Task) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = panicError{name: name, value: r}
		}
	}()
	return task(ctx)
}

type panicError struct {
	name  string
	value any
}

func (p panicError) Error() string {
	return "panic in " + p.name + ": " + toString(p.value)
}

func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	if e, ok := v.(error); ok {
		return e.Error()
	}
	return "unknown panic value"
}
