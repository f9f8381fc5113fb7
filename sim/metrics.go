// Tracks queue-wide statistics: queue depth, completions, losses, and the
// duration, wait, and sojourn distributions of completed jobs.

package sim

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Snapshot is a read of aggregate queue state, suitable for periodic reporting.
type Snapshot struct {
	Clock           int64
	ServerCount     int
	TotalJobs       int // admitted jobs: waiting + running + completed
	QueuedCount     int
	RunningCount    int
	CompletedCount  int
	RejectedCount   int64
	AverageDuration float64 // valid only when HasAverage
	HasAverage      bool
}

func (s Snapshot) String() string {
	avg := "N/A"
	if s.HasAverage {
		avg = fmt.Sprintf("%.2f", s.AverageDuration)
	}
	return fmt.Sprintf("<Queue servers=%d jobs=%d in_queue=%d complete=%d avg_duration=%s>",
		s.ServerCount, s.TotalJobs, s.QueuedCount, s.CompletedCount, avg)
}

// Metrics aggregates statistics about the simulation for final reporting.
// Tick-denominated figures are zero before the first tick; job-denominated
// figures are zero when no job has completed.
type Metrics struct {
	CompletedJobs  int
	AdmittedJobs   int64
	RejectedJobs   int64
	AvgDuration    float64 // mean required duration of completed jobs
	AvgWait        float64 // mean ticks between arrival and assignment
	AvgSojourn     float64 // mean ticks between arrival and completion
	P50Sojourn     float64
	P95Sojourn     float64
	P99Sojourn     float64
	Throughput     float64 // completions per tick
	Utilization    float64 // busy server-ticks / available server-ticks
	LossRate       float64 // rejected / (admitted + rejected)
	MeanQueueDepth float64
	PeakQueueDepth int
}

// AverageCompletedDuration returns the mean required duration over completed
// jobs. ok is false when nothing has completed yet.
func (q *Queue) AverageCompletedDuration() (avg float64, ok bool) {
	if len(q.completed) == 0 {
		return 0, false
	}
	durations := make([]float64, len(q.completed))
	for i, j := range q.completed {
		durations[i] = float64(j.RequiredDuration)
	}
	return stat.Mean(durations, nil), true
}

// Snapshot reads the current aggregate state without mutating the queue.
func (q *Queue) Snapshot() Snapshot {
	running := 0
	for _, s := range q.servers {
		if !s.Idle() {
			running++
		}
	}
	avg, ok := q.AverageCompletedDuration()
	return Snapshot{
		Clock:           q.clock,
		ServerCount:     len(q.servers),
		TotalJobs:       q.waiting.Len() + running + len(q.completed),
		QueuedCount:     q.waiting.Len(),
		RunningCount:    running,
		CompletedCount:  len(q.completed),
		RejectedCount:   q.rejected,
		AverageDuration: avg,
		HasAverage:      ok,
	}
}

// Completed returns the completed jobs in completion order.
// The returned slice is a copy; the jobs themselves must not be mutated.
func (q *Queue) Completed() []*Job {
	out := make([]*Job, len(q.completed))
	copy(out, q.completed)
	return out
}

// Waiting returns the jobs waiting for a server, head first.
// The returned slice is a copy; the jobs themselves must not be mutated.
func (q *Queue) Waiting() []*Job {
	items := q.waiting.Items()
	out := make([]*Job, len(items))
	copy(out, items)
	return out
}

// Servers returns the server pool in dispatch order.
func (q *Queue) Servers() []*Server {
	out := make([]*Server, len(q.servers))
	copy(out, q.servers)
	return out
}

// Metrics computes the full statistics set. Like Snapshot it is a pure read.
func (q *Queue) Metrics() Metrics {
	m := Metrics{
		CompletedJobs:  len(q.completed),
		AdmittedJobs:   q.admitted,
		RejectedJobs:   q.rejected,
		PeakQueueDepth: q.peakDepth,
	}
	if offered := q.admitted + q.rejected; offered > 0 {
		m.LossRate = float64(q.rejected) / float64(offered)
	}
	if q.clock > 0 {
		m.Throughput = float64(len(q.completed)) / float64(q.clock)
		var busy int64
		for _, s := range q.servers {
			busy += s.BusyTicks
		}
		m.Utilization = float64(busy) / float64(q.clock*int64(len(q.servers)))
	}
	if len(q.depthHistory) > 0 {
		depths := make([]float64, len(q.depthHistory))
		for i, d := range q.depthHistory {
			depths[i] = float64(d)
		}
		m.MeanQueueDepth = stat.Mean(depths, nil)
	}
	if len(q.completed) == 0 {
		return m
	}

	durations := make([]float64, len(q.completed))
	waits := make([]float64, len(q.completed))
	sojourns := make([]float64, len(q.completed))
	for i, j := range q.completed {
		durations[i] = float64(j.RequiredDuration)
		waits[i] = float64(j.WaitTicks())
		sojourns[i] = float64(j.SojournTicks())
	}
	m.AvgDuration = stat.Mean(durations, nil)
	m.AvgWait = stat.Mean(waits, nil)
	m.AvgSojourn = stat.Mean(sojourns, nil)

	// stat.Quantile requires sorted input
	sort.Float64s(sojourns)
	m.P50Sojourn = stat.Quantile(0.50, stat.Empirical, sojourns, nil)
	m.P95Sojourn = stat.Quantile(0.95, stat.Empirical, sojourns, nil)
	m.P99Sojourn = stat.Quantile(0.99, stat.Empirical, sojourns, nil)
	return m
}
