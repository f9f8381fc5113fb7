// Package sweep runs independent queue simulations concurrently.
//
// Each trial builds its own sim.Queue with its own seeded samplers; trials
// share no mutable state, so they run on as many goroutines as requested.
package sweep

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/inference-sim/queue-sim/sim"
)

// Trial is one simulation in a sweep.
type Trial struct {
	Name   string
	Index  int // trial number within its grid cell
	Config sim.QueueConfig
}

// Result is the outcome of one trial. Err is set when the trial could not be
// constructed; Snapshot and Metrics are then zero.
type Result struct {
	Trial    Trial
	RunID    uuid.UUID
	Snapshot sim.Snapshot
	Metrics  sim.Metrics
	Err      error
}

// Runner executes trials with bounded concurrency.
type Runner struct {
	Workers int          // max concurrent trials; <= 0 means one per trial
	OnDone  func(Result) // called once per finished trial, serialized
}

// Expand builds the servers × capacities grid with trials runs per cell.
// A negative capacity means unbounded. Trial n of every cell uses the same
// seed, derived from base.Seed, so cells are compared on common random
// numbers.
func Expand(base sim.QueueConfig, servers []int, capacities []int, trials int) []Trial {
	if len(servers) == 0 {
		servers = []int{base.Servers}
	}
	if len(capacities) == 0 {
		capacities = []int{-1}
		if base.Capacity != nil {
			capacities[0] = *base.Capacity
		}
	}
	trials = max(trials, 1)

	rng := sim.NewPartitionedRNG(sim.NewSimulationKey(base.Seed))
	seeds := make([]int64, trials)
	for t := range seeds {
		seeds[t] = rng.DeriveSeed(sim.SubsystemTrial(t))
	}

	out := make([]Trial, 0, len(servers)*len(capacities)*trials)
	for _, c := range servers {
		for _, capacity := range capacities {
			for t := range trials {
				cfg := base.WithCapacity(capacity)
				cfg.Servers = c
				cfg.Seed = seeds[t]
				out = append(out, Trial{
					Name:   fmt.Sprintf("servers=%d/capacity=%s/trial=%d", c, cfg.CapacityString(), t),
					Index:  t,
					Config: cfg,
				})
			}
		}
	}
	return out
}

// Run executes every trial and returns results in trial order.
// Cancelling ctx stops running trials between ticks; the returned error is
// then the context's error and unfinished results carry it in Err.
func (r *Runner) Run(ctx context.Context, trials []Trial) ([]Result, error) {
	results := make([]Result, len(trials))
	if len(trials) == 0 {
		return results, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	workers := r.Workers
	if workers <= 0 {
		workers = len(trials)
	}
	g.SetLimit(workers)

	var mu sync.Mutex
	for i, trial := range trials {
		g.Go(func() error {
			res := runTrial(ctx, trial)
			results[i] = res
			if r.OnDone != nil {
				mu.Lock()
				r.OnDone(res)
				mu.Unlock()
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

func runTrial(ctx context.Context, trial Trial) Result {
	res := Result{Trial: trial, RunID: uuid.New()}
	log := logrus.WithFields(logrus.Fields{"trial": trial.Name, "run_id": res.RunID})

	q, err := sim.NewQueue(trial.Config)
	if err != nil {
		log.Warnf("trial skipped: %v", err)
		res.Err = err
		return res
	}
	if err := q.RunContext(ctx, trial.Config.Horizon); err != nil {
		res.Err = err
	}
	res.Snapshot = q.Snapshot()
	res.Metrics = q.Metrics()
	log.Debugf("trial finished at tick %d: %s", q.Clock(), res.Snapshot)
	return res
}
