// Package trace provides decision-trace recording for queue admission and dispatch analysis.
// This package has no dependencies on sim/; it stores pure data types.
package trace

// AdmissionRecord captures a single arrival's admission outcome.
type AdmissionRecord struct {
	JobID      int64
	Clock      int64
	Admitted   bool
	QueueDepth int // waiting-list length seen by the arrival, before it was appended
	Reason     string
}

// DispatchRecord captures a waiting job being assigned to a server.
type DispatchRecord struct {
	JobID     int64
	Clock     int64
	ServerID  int
	WaitTicks int64 // ticks spent in the waiting list
}
