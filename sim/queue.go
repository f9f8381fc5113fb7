// sim/queue.go
package sim

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/queue-sim/sim/trace"
)

// Queue is the core object that holds simulation time, the server pool, the
// waiting list and the completed log.
//
// Every admitted job is in exactly one place at any instant: held by a
// Server, in the waiting list, or in the completed log. The Queue is mutated
// only by Tick and Enqueue.
type Queue struct {
	clock   int64
	horizon int64
	config  QueueConfig

	servers []*Server
	// jobs that arrived but have not been assigned a server yet
	waiting   *WaitQueue
	completed []*Job

	arrivals Sampler // arrivals per tick
	service  Sampler // service ticks per job
	trace    *trace.SimulationTrace

	nextJobID    int64
	admitted     int64
	rejected     int64
	depthHistory []int // waiting-list length at the end of each tick
	peakDepth    int
}

// Option customizes a Queue at construction.
type Option func(*Queue)

// WithArrivalSampler replaces the Poisson arrival source.
func WithArrivalSampler(s Sampler) Option {
	return func(q *Queue) { q.arrivals = s }
}

// WithServiceSampler replaces the Poisson service-duration source.
func WithServiceSampler(s Sampler) Option {
	return func(q *Queue) { q.service = s }
}

// WithTrace records admission and dispatch decisions into st.
func WithTrace(st *trace.SimulationTrace) Option {
	return func(q *Queue) { q.trace = st }
}

// NewQueue validates cfg and builds a Queue with cfg.Servers idle servers.
// Unless overridden by options, arrivals and service durations are drawn from
// Poisson sources seeded from cfg.Seed.
func NewQueue(cfg QueueConfig, opts ...Option) (*Queue, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	q := &Queue{
		horizon:   cfg.Horizon,
		config:    cfg,
		servers:   make([]*Server, cfg.Servers),
		waiting:   &WaitQueue{},
		completed: make([]*Job, 0),
	}
	for i := range q.servers {
		q.servers[i] = NewServer(i)
	}
	for _, opt := range opts {
		opt(q)
	}
	rng := NewPartitionedRNG(NewSimulationKey(cfg.Seed))
	if q.arrivals == nil {
		q.arrivals = NewPoissonSampler(cfg.ArrivalRate, rng.ForSubsystem(SubsystemArrivals))
	}
	if q.service == nil {
		q.service = NewPoissonSampler(cfg.ServiceTime, rng.ForSubsystem(SubsystemService))
	}
	return q, nil
}

// Config returns the configuration the queue was built with.
func (q *Queue) Config() QueueConfig {
	return q.config
}

// Enqueue offers an externally created job to the queue as an arrival at the
// current clock. The queue stamps the job's ID and ArrivalTick so IDs stay in
// creation order alongside generated arrivals.
//
// Enqueue fails with ErrFinished once the horizon has elapsed and with
// ErrJobNotFresh for a job that was already offered, served or aged. When a
// capacity is configured and the waiting list already holds that many jobs,
// the job is dropped, counted as a loss, and an error wrapping
// ErrCapacityExceeded is returned. Capacity 0 therefore rejects every job.
func (q *Queue) Enqueue(job *Job) error {
	if job == nil {
		return fmt.Errorf("%w: nil job", ErrJobNotFresh)
	}
	if q.clock >= q.horizon {
		return fmt.Errorf("job %d at tick %d: %w", job.ID, q.clock, ErrFinished)
	}
	if !job.fresh() {
		return fmt.Errorf("job %d (%s, age %d) at tick %d: %w", job.ID, job.State, job.Age, q.clock, ErrJobNotFresh)
	}
	return q.admit(job, q.clock)
}

// admit stamps job as the next arrival at tick now and applies the capacity
// bound.
func (q *Queue) admit(job *Job, now int64) error {
	job.ID = q.nextJobID
	job.ArrivalTick = now
	job.offered = true
	q.nextJobID++

	depth := q.waiting.Len()
	if q.config.Capacity != nil && depth >= *q.config.Capacity {
		q.rejected++
		reason := fmt.Sprintf("capacity %d reached", *q.config.Capacity)
		if q.trace.Enabled() {
			q.trace.RecordAdmission(trace.AdmissionRecord{
				JobID: job.ID, Clock: now, Admitted: false, QueueDepth: depth, Reason: reason,
			})
		}
		return fmt.Errorf("job %d at tick %d: %s: %w", job.ID, now, reason, ErrCapacityExceeded)
	}
	q.waiting.Enqueue(job)
	q.admitted++
	if q.trace.Enabled() {
		q.trace.RecordAdmission(trace.AdmissionRecord{
			JobID: job.ID, Clock: now, Admitted: true, QueueDepth: depth,
		})
	}
	return nil
}

// processArrivals draws this tick's arrival count and enqueues one job per
// arrival, each with an independently drawn service duration.
func (q *Queue) processArrivals(now int64) {
	n := q.arrivals.Sample()
	for range n {
		job := NewJob(0, int64(q.service.Sample()), now)
		if err := q.admit(job, now); err != nil {
			if errors.Is(err, ErrCapacityExceeded) {
				logrus.Debugf("[tick %07d] dropped: %v", now, err)
				continue
			}
			logrus.Errorf("[tick %07d] enqueue failed: %v", now, err)
		}
	}
}

// dispatch hands the head of the waiting list to each idle server, visiting
// servers in index order. Service order therefore equals arrival order.
func (q *Queue) dispatch(now int64) {
	for _, s := range q.servers {
		if !s.Idle() || q.waiting.Len() == 0 {
			continue
		}
		next := q.waiting.Dequeue()
		s.Assign(next, now)
		if q.trace.Enabled() {
			q.trace.RecordDispatch(trace.DispatchRecord{
				JobID: next.ID, Clock: now, ServerID: s.ID, WaitTicks: next.WaitTicks(),
			})
		}
	}
}

// Tick simulates one step: arrivals, dispatch, one tick of service on every
// server (archiving completions in server order), then the clock advances.
// Returns ErrFinished once the horizon has been reached.
func (q *Queue) Tick() error {
	if q.clock >= q.horizon {
		return ErrFinished
	}
	now := q.clock

	q.processArrivals(now)
	q.dispatch(now)

	for _, s := range q.servers {
		done := s.Tick()
		if done == nil {
			continue
		}
		done.State = StateCompleted
		done.CompletionTick = now + 1
		q.completed = append(q.completed, done)
		logrus.Debugf("[tick %07d] completed job %d on server %d (sojourn %d)", now, done.ID, s.ID, done.SojournTicks())
	}

	depth := q.waiting.Len()
	q.depthHistory = append(q.depthHistory, depth)
	q.peakDepth = max(q.peakDepth, depth)

	q.clock++
	return nil
}
