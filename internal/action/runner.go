// Package action binds gestures to OS effects and runs those effects
// without blocking the frame loop.
package action

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ayusman/mudra/internal/metrics"
)

// DefaultTimeout bounds a single effect run.
const DefaultTimeout = 5 * time.Second

// Effect performs one OS action.
type Effect func(ctx context.Context) error

// Runner executes effects fire-and-forget, each on its own goroutine under
// a timeout. Results are only logged and counted.
type Runner struct {
	timeout time.Duration
	log     *slog.Logger
	metrics *metrics.Metrics
	wg      sync.WaitGroup
}

// NewRunner creates a Runner. A non-positive timeout means DefaultTimeout.
func NewRunner(timeout time.Duration, log *slog.Logger, m *metrics.Metrics) *Runner {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Runner{
		timeout: timeout,
		log:     log,
		metrics: m,
	}
}

// Go starts effect and returns immediately.
func (r *Runner) Go(name string, effect Effect) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()

		start := time.Now()
		err := r.run(effect)
		took := time.Since(start)

		r.metrics.EffectDone(name, took, err)
		if err != nil {
			r.log.Error("effect failed", "action", name, "took", took, "error", err)
			return
		}
		r.log.Debug("effect finished", "action", name, "took", took)
	}()
}

func (r *Runner) run(effect Effect) (err error) {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		defer func() {
			if p := recover(); p != nil {
				done <- fmt.Errorf("effect panicked: %v", p)
			}
		}()
		done <- effect(ctx)
	}()

	select {
	case err = <-done:
		return err
	case <-ctx.Done():
		return fmt.Errorf("effect timeout after %s", r.timeout)
	}
}

// Wait blocks until every started effect has returned or timed out.
func (r *Runner) Wait() {
	r.wg.Wait()
}
