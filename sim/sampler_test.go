package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSequenceSampler_ReplaysThenFallsBack(t *testing.T) {
	s := NewSequenceSampler(3, 0, 5)
	assert.Equal(t, 3, s.Remaining())
	assert.Equal(t, 3, s.Sample())
	assert.Equal(t, 0, s.Sample())
	assert.Equal(t, 5, s.Sample())
	assert.Equal(t, 0, s.Remaining())
	assert.Equal(t, 0, s.Sample())

	s.Fallback = 2
	assert.Equal(t, 2, s.Sample())
}

func TestSequenceSampler_NegativeValuesClampToZero(t *testing.T) {
	s := &SequenceSampler{Values: []int{-4}, Fallback: -1}
	assert.Equal(t, 0, s.Sample())
	assert.Equal(t, 0, s.Sample())
}

func TestConstantSampler(t *testing.T) {
	assert.Equal(t, 4, ConstantSampler{N: 4}.Sample())
	assert.Equal(t, 0, ConstantSampler{N: -4}.Sample())
}

func TestPoissonSampler_ZeroLambda_AlwaysZero(t *testing.T) {
	rng := NewPartitionedRNG(NewSimulationKey(1))
	s := NewPoissonSampler(0, rng.ForSubsystem(SubsystemArrivals))
	for range 100 {
		assert.Equal(t, 0, s.Sample())
	}
}

func TestPoissonSampler_MeanApproachesLambda(t *testing.T) {
	// GIVEN a Poisson(2) sampler
	rng := NewPartitionedRNG(NewSimulationKey(42))
	s := NewPoissonSampler(2, rng.ForSubsystem(SubsystemArrivals))
	assert.Equal(t, 2.0, s.Lambda())

	// WHEN 20000 draws are taken
	const n = 20000
	sum := 0
	for range n {
		v := s.Sample()
		assert.GreaterOrEqual(t, v, 0)
		sum += v
	}

	// THEN the sample mean is within a few standard errors of lambda
	// (stderr = sqrt(2/20000) = 0.01)
	assert.InDelta(t, 2.0, float64(sum)/n, 0.06)
}

func TestPoissonSampler_SameSeedSameSequence(t *testing.T) {
	a := NewPoissonSampler(3, NewPartitionedRNG(NewSimulationKey(9)).ForSubsystem(SubsystemService))
	b := NewPoissonSampler(3, NewPartitionedRNG(NewSimulationKey(9)).ForSubsystem(SubsystemService))
	for i := range 50 {
		assert.Equal(t, a.Sample(), b.Sample(), "draw %d", i)
	}
}
