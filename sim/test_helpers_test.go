package sim

import "testing"

// scriptedQueue builds an unbounded queue whose arrivals and service
// durations replay the given sequences, then fall back to zero arrivals.
func scriptedQueue(t *testing.T, servers int, horizon int64, arrivals, durations []int) *Queue {
	t.Helper()
	cfg := DefaultQueueConfig()
	cfg.Servers = servers
	cfg.Horizon = horizon
	q, err := NewQueue(cfg,
		WithArrivalSampler(NewSequenceSampler(arrivals...)),
		WithServiceSampler(NewSequenceSampler(durations...)),
	)
	if err != nil {
		t.Fatalf("NewQueue: %v", err)
	}
	return q
}

// seededQueue builds a Poisson-driven queue from cfg.
func seededQueue(t *testing.T, cfg QueueConfig) *Queue {
	t.Helper()
	q, err := NewQueue(cfg)
	if err != nil {
		t.Fatalf("NewQueue: %v", err)
	}
	return q
}

// heldCount returns the number of servers currently holding a job.
func heldCount(q *Queue) int {
	n := 0
	for _, s := range q.servers {
		if !s.Idle() {
			n++
		}
	}
	return n
}
