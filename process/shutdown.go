package process

import (
	"context"
	"errors"
	"sync"

	"github.com/Zombie9904/flutter/logging"
)

// ShutdownHooks collects cleanup work to run once, just before the tool
// exits: releasing cache locks, deleting temp directories, flushing state.
type ShutdownHooks struct {
	mu    sync.Mutex
	hooks []func(ctx context.Context) error
	ran   bool
}

// NewShutdownHooks creates an empty hook set.
func NewShutdownHooks() *ShutdownHooks { return &ShutdownHooks{} }

// Add registers a hook. Adding after RunAll has run is a silent no-op; the
// process is already going away.
func (s *ShutdownHooks) Add(hook func(ctx context.Context) error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ran {
		return
	}
	s.hooks = append(s.hooks, hook)
}

// Len returns the number of registered hooks.
func (s *ShutdownHooks) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.hooks)
}

// RunAll runs every hook exactly once. A failing hook does not stop the
// rest; failures are logged and joined into the returned error.
func (s *ShutdownHooks) RunAll(ctx context.Context, logger logging.Logger) error {
	s.mu.Lock()
	if s.ran {
		s.mu.Unlock()
		return nil
	}
	s.ran = true
	hooks := s.hooks
	s.hooks = nil
	s.mu.Unlock()

	logger.Tracef("running %d shutdown hook(s)", len(hooks))
	var errs []error
	for _, hook := range hooks {
		if err := hook(ctx); err != nil {
			logger.Tracef("shutdown hook failed: %v", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
