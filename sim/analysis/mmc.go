// Package analysis provides closed-form M/M/c queue figures (Erlang C) to
// compare against simulation output.
//
// The engine discretizes time into ticks and draws arrival counts per tick,
// so these figures are a reference point rather than an exact prediction.
package analysis

import (
	"fmt"
	"math"
)

// MMC describes an M/M/c queue with an unbounded waiting room.
type MMC struct {
	ArrivalRate float64 // λ, arrivals per tick
	ServiceTime float64 // 1/μ, mean ticks per job
	Servers     int     // c
}

// OfferedLoad returns a = λ/μ in Erlangs.
func (m MMC) OfferedLoad() float64 {
	return m.ArrivalRate * m.ServiceTime
}

// Utilization returns ρ = λ/(cμ).
func (m MMC) Utilization() float64 {
	if m.Servers <= 0 {
		return math.Inf(1)
	}
	return m.OfferedLoad() / float64(m.Servers)
}

// Stable reports whether the queue reaches a steady state (ρ < 1).
func (m MMC) Stable() bool {
	return m.Utilization() < 1
}

// ErlangC returns the probability that an arriving job has to wait.
// Returns 1 for an unstable queue.
func (m MMC) ErlangC() float64 {
	if !m.Stable() {
		return 1
	}
	a := m.OfferedLoad()
	if a == 0 {
		return 0
	}
	c := m.Servers
	rho := m.Utilization()

	// Σ_{k<c} a^k/k! accumulated term by term to avoid factorial overflow.
	term := 1.0
	sum := 0.0
	for k := 0; k < c; k++ {
		sum += term
		term *= a / float64(k+1)
	}
	// term is now a^c/c!
	tail := term / (1 - rho)
	return tail / (sum + tail)
}

// MeanQueueLength returns Lq, the mean number of jobs waiting.
func (m MMC) MeanQueueLength() float64 {
	if !m.Stable() {
		return math.Inf(1)
	}
	rho := m.Utilization()
	return m.ErlangC() * rho / (1 - rho)
}

// MeanWait returns Wq, the mean ticks spent waiting (Little's law: Lq/λ).
func (m MMC) MeanWait() float64 {
	if !m.Stable() {
		return math.Inf(1)
	}
	if m.ArrivalRate == 0 {
		return 0
	}
	return m.MeanQueueLength() / m.ArrivalRate
}

// MeanSojourn returns W = Wq + 1/μ.
func (m MMC) MeanSojourn() float64 {
	return m.MeanWait() + m.ServiceTime
}

func (m MMC) String() string {
	return fmt.Sprintf("M/M/%d(λ=%.2f, 1/μ=%.2f, ρ=%.3f)", m.Servers, m.ArrivalRate, m.ServiceTime, m.Utilization())
}
