package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalDecisions     int
	AdmittedCount      int
	RejectedCount      int
	DispatchCount      int
	MeanWait           float64
	MaxWait            int64
	UniqueServers      int
	ServerDistribution map[int]int // server ID → count of jobs dispatched to it
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		ServerDistribution: make(map[int]int),
	}
	if st == nil {
		return summary
	}

	summary.TotalDecisions = len(st.Admissions)
	for _, a := range st.Admissions {
		if a.Admitted {
			summary.AdmittedCount++
		} else {
			summary.RejectedCount++
		}
	}

	summary.DispatchCount = len(st.Dispatches)
	if len(st.Dispatches) > 0 {
		var totalWait int64
		for _, d := range st.Dispatches {
			summary.ServerDistribution[d.ServerID]++
			totalWait += d.WaitTicks
			if d.WaitTicks > summary.MaxWait {
				summary.MaxWait = d.WaitTicks
			}
		}
		summary.MeanWait = float64(totalWait) / float64(len(st.Dispatches))
	}

	summary.UniqueServers = len(summary.ServerDistribution)

	return summary
}
