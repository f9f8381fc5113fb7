package trace

import "testing"

func TestSummarize_NilTrace_ZeroValues(t *testing.T) {
	summary := Summarize(nil)
	if summary.TotalDecisions != 0 || summary.DispatchCount != 0 {
		t.Error("expected zero counts for nil trace")
	}
	if summary.ServerDistribution == nil {
		t.Error("expected non-nil server distribution")
	}
}

func TestSummarize_EmptyTrace_ZeroValues(t *testing.T) {
	// GIVEN an empty trace
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelDecisions})

	// WHEN summarized
	summary := Summarize(st)

	// THEN all counts are zero
	if summary.TotalDecisions != 0 {
		t.Errorf("expected 0 total decisions, got %d", summary.TotalDecisions)
	}
	if summary.AdmittedCount != 0 || summary.RejectedCount != 0 {
		t.Error("expected 0 admitted and rejected")
	}
	if summary.UniqueServers != 0 {
		t.Errorf("expected 0 unique servers, got %d", summary.UniqueServers)
	}
	if summary.MeanWait != 0 || summary.MaxWait != 0 {
		t.Error("expected 0 wait values")
	}
}

func TestSummarize_PopulatedTrace_CorrectCounts(t *testing.T) {
	// GIVEN a trace with mixed admission and dispatch records
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelDecisions})
	st.RecordAdmission(AdmissionRecord{JobID: 1, Admitted: true})
	st.RecordAdmission(AdmissionRecord{JobID: 2, Admitted: false, Reason: "full"})
	st.RecordAdmission(AdmissionRecord{JobID: 3, Admitted: true})
	st.RecordDispatch(DispatchRecord{JobID: 1, ServerID: 0, WaitTicks: 0})
	st.RecordDispatch(DispatchRecord{JobID: 3, ServerID: 1, WaitTicks: 2})

	// WHEN summarized
	summary := Summarize(st)

	// THEN counts match
	if summary.TotalDecisions != 3 {
		t.Errorf("expected 3 total decisions, got %d", summary.TotalDecisions)
	}
	if summary.AdmittedCount != 2 {
		t.Errorf("expected 2 admitted, got %d", summary.AdmittedCount)
	}
	if summary.RejectedCount != 1 {
		t.Errorf("expected 1 rejected, got %d", summary.RejectedCount)
	}
	if summary.UniqueServers != 2 {
		t.Errorf("expected 2 unique servers, got %d", summary.UniqueServers)
	}
}

func TestSummarize_WaitStatistics_CorrectMeanAndMax(t *testing.T) {
	// GIVEN dispatch records with known waits
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelDecisions})
	st.RecordDispatch(DispatchRecord{JobID: 1, ServerID: 0, WaitTicks: 1})
	st.RecordDispatch(DispatchRecord{JobID: 2, ServerID: 0, WaitTicks: 5})
	st.RecordDispatch(DispatchRecord{JobID: 3, ServerID: 1, WaitTicks: 0})

	// WHEN summarized
	summary := Summarize(st)

	// THEN mean wait = (1 + 5 + 0) / 3 = 2
	if summary.MeanWait != 2.0 {
		t.Errorf("expected mean wait 2.0, got %.4f", summary.MeanWait)
	}
	// THEN max wait = 5
	if summary.MaxWait != 5 {
		t.Errorf("expected max wait 5, got %d", summary.MaxWait)
	}
	// THEN distribution reflects per-server counts
	if summary.ServerDistribution[0] != 2 || summary.ServerDistribution[1] != 1 {
		t.Errorf("unexpected server distribution %v", summary.ServerDistribution)
	}
}
