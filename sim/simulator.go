// sim/simulator.go
package sim

import (
	"context"

	"github.com/sirupsen/logrus"
)

// Phase is the Queue's position in a simulation run.
type Phase string

const (
	PhaseIdle     Phase = "idle"     // no tick has run yet
	PhaseRunning  Phase = "running"  // at least one tick, horizon not reached
	PhaseFinished Phase = "finished" // clock >= horizon; only reads remain valid
)

// Clock returns the number of ticks simulated so far.
func (q *Queue) Clock() int64 {
	return q.clock
}

// Horizon returns the tick count at which the simulation finishes.
func (q *Queue) Horizon() int64 {
	return q.horizon
}

// Phase reports where the queue is in its lifecycle.
func (q *Queue) Phase() Phase {
	switch {
	case q.clock >= q.horizon:
		return PhaseFinished
	case q.clock == 0:
		return PhaseIdle
	default:
		return PhaseRunning
	}
}

// Run ticks the queue until the configured horizon elapses.
func (q *Queue) Run() {
	q.RunUntil(q.horizon)
}

// RunUntil ticks while the clock is below horizon. A horizon past the
// configured one is clamped to it.
func (q *Queue) RunUntil(horizon int64) {
	// Background is never cancelled.
	_ = q.RunContext(context.Background(), horizon)
}

// RunContext is RunUntil with cancellation checked between ticks, so a tick
// is never interrupted halfway. Returns ctx.Err() if cancelled.
func (q *Queue) RunContext(ctx context.Context, horizon int64) error {
	horizon = min(horizon, q.horizon)
	for q.clock < horizon {
		if err := ctx.Err(); err != nil {
			logrus.Infof("[tick %07d] Simulation cancelled: %v", q.clock, err)
			return err
		}
		if err := q.Tick(); err != nil {
			return err
		}
	}
	logrus.Infof("[tick %07d] Simulation reached tick %d", q.clock, horizon)
	return nil
}
