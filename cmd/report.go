package cmd

import (
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"golang.org/x/time/rate"

	sim "github.com/inference-sim/queue-sim/sim"
	"github.com/inference-sim/queue-sim/sim/analysis"
	"github.com/inference-sim/queue-sim/sim/trace"
)

var (
	bold   = color.New(color.Bold)
	red    = color.New(color.FgRed)
	yellow = color.New(color.FgYellow)
)

// tickReporter prints a queue snapshot on the first observed tick and every
// `every` ticks after that. A zero or negative interval disables it.
type tickReporter struct {
	out     io.Writer
	limiter *rate.Sometimes
}

func newTickReporter(out io.Writer, every int) *tickReporter {
	if every <= 0 {
		return &tickReporter{out: out}
	}
	return &tickReporter{out: out, limiter: &rate.Sometimes{Every: every}}
}

// Observe is called once after every tick.
func (r *tickReporter) Observe(q *sim.Queue) {
	if r.limiter == nil {
		return
	}
	r.limiter.Do(func() {
		_, _ = fmt.Fprintf(r.out, "[tick %07d] %s\n", q.Clock(), q.Snapshot())
	})
}

func newSweepTable(w io.Writer) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.Header("Servers", "Capacity", "OK", "Completed", "Wait", "Sojourn", "Sojourn Std", "M/M/c Sojourn", "Loss", "Util")
	return table
}

// referenceModel is the closed-form M/M/c reference for cfg with the given
// server count, using the effective mean service time so the one-tick minimum
// of zero-duration jobs is reflected in the prediction.
func referenceModel(cfg sim.QueueConfig, servers int) analysis.MMC {
	return analysis.MMC{ArrivalRate: cfg.ArrivalRate, ServiceTime: cfg.EffectiveServiceTime(), Servers: servers}
}

func printSectionHeader(w io.Writer, title string) {
	_, _ = fmt.Fprintln(w)
	_, _ = bold.Fprintln(w, "=== "+title+" ===")
}

// formatFloat renders NaN as "N/A" and infinities as "inf".
func formatFloat(v float64) string {
	switch {
	case math.IsNaN(v):
		return "N/A"
	case math.IsInf(v, 0):
		return "inf"
	default:
		return fmt.Sprintf("%.3f", v)
	}
}

// renderRunReport writes the end-of-run report: final snapshot, measured
// metrics next to the M/M/c prediction, and the trace summary when present.
func renderRunReport(w io.Writer, q *sim.Queue, st *trace.SimulationTrace) {
	cfg := q.Config()
	snap := q.Snapshot()
	m := q.Metrics()

	printSectionHeader(w, "Simulation Summary")
	_, _ = fmt.Fprintln(w, snap.String())

	model := referenceModel(cfg, cfg.Servers)
	printSectionHeader(w, "Metrics vs "+model.String())
	if !model.Stable() {
		_, _ = yellow.Fprintln(w, "offered load exceeds capacity; the waiting list grows without bound")
	}

	table := tablewriter.NewWriter(w)
	table.Header("Metric", "Simulated", "M/M/c")
	rows := [][]string{
		{"completed jobs", fmt.Sprintf("%d", m.CompletedJobs), "-"},
		{"admitted jobs", fmt.Sprintf("%d", m.AdmittedJobs), "-"},
		{"rejected jobs", fmt.Sprintf("%d", m.RejectedJobs), "-"},
		{"loss rate", formatFloat(m.LossRate), "-"},
		{"utilization", formatFloat(m.Utilization), formatFloat(model.Utilization())},
		{"mean queue length", formatFloat(m.MeanQueueDepth), formatFloat(model.MeanQueueLength())},
		{"peak queue length", fmt.Sprintf("%d", m.PeakQueueDepth), "-"},
		{"mean wait (ticks)", formatFloat(m.AvgWait), formatFloat(model.MeanWait())},
		{"mean sojourn (ticks)", formatFloat(m.AvgSojourn), formatFloat(model.MeanSojourn())},
		{"p50 sojourn", formatFloat(m.P50Sojourn), "-"},
		{"p95 sojourn", formatFloat(m.P95Sojourn), "-"},
		{"p99 sojourn", formatFloat(m.P99Sojourn), "-"},
		{"throughput (jobs/tick)", formatFloat(m.Throughput), formatFloat(cfg.ArrivalRate)},
	}
	if err := table.Bulk(rows); err != nil {
		_, _ = red.Fprintln(w, "Error filling metrics table:", err)
	}
	if err := table.Render(); err != nil {
		_, _ = red.Fprintln(w, "Error rendering metrics table:", err)
	}

	if st.Enabled() {
		renderTraceSummary(w, trace.Summarize(st))
	}
}

func renderTraceSummary(w io.Writer, s *trace.TraceSummary) {
	printSectionHeader(w, "Trace Summary")
	_, _ = fmt.Fprintf(w, "admission decisions: %d (admitted %d, rejected %d)\n",
		s.TotalDecisions, s.AdmittedCount, s.RejectedCount)
	_, _ = fmt.Fprintf(w, "dispatches: %d across %d servers, mean wait %.3f, max wait %d\n",
		s.DispatchCount, s.UniqueServers, s.MeanWait, s.MaxWait)

	ids := make([]int, 0, len(s.ServerDistribution))
	for id := range s.ServerDistribution {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	table := tablewriter.NewWriter(w)
	table.Header("Server", "Dispatches")
	for _, id := range ids {
		_ = table.Append(fmt.Sprintf("server-%d", id), fmt.Sprintf("%d", s.ServerDistribution[id]))
	}
	if err := table.Render(); err != nil {
		_, _ = red.Fprintln(w, "Error rendering trace table:", err)
	}
}
