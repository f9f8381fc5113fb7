package sim

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// Sampler produces non-negative integer draws. The Queue uses one Sampler for
// per-tick arrival counts and another for per-job service durations.
type Sampler interface {
	// Sample returns the next draw. Always >= 0.
	Sample() int
}

// PoissonSampler draws Poisson-distributed counts with mean Lambda.
type PoissonSampler struct {
	dist distuv.Poisson
}

// NewPoissonSampler creates a PoissonSampler over src. A zero lambda always
// yields zero.
func NewPoissonSampler(lambda float64, src rand.Source) *PoissonSampler {
	return &PoissonSampler{dist: distuv.Poisson{Lambda: lambda, Src: src}}
}

func (s *PoissonSampler) Sample() int {
	if s.dist.Lambda <= 0 {
		return 0
	}
	return int(s.dist.Rand())
}

// Lambda returns the distribution mean.
func (s *PoissonSampler) Lambda() float64 {
	return s.dist.Lambda
}

// SequenceSampler replays a fixed sequence of draws, then returns Fallback
// for every further call. Used for scripted scenarios and tests.
type SequenceSampler struct {
	Values   []int
	Fallback int
	next     int
}

// NewSequenceSampler creates a SequenceSampler with a zero fallback.
func NewSequenceSampler(values ...int) *SequenceSampler {
	return &SequenceSampler{Values: values}
}

func (s *SequenceSampler) Sample() int {
	if s.next >= len(s.Values) {
		return max(s.Fallback, 0)
	}
	v := s.Values[s.next]
	s.next++
	return max(v, 0)
}

// Remaining returns how many scripted values have not been drawn yet.
func (s *SequenceSampler) Remaining() int {
	return len(s.Values) - s.next
}

// ConstantSampler always returns N.
type ConstantSampler struct {
	N int
}

func (s ConstantSampler) Sample() int {
	return max(s.N, 0)
}
