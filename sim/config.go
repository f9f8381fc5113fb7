package sim

import (
	"fmt"
	"math"
)

// Defaults for a QueueConfig. They reproduce the M/M/4 scenario the engine
// was first built around.
const (
	DefaultServers     = 4
	DefaultArrivalRate = 2.0
	DefaultServiceTime = 2.0
	DefaultSeed        = 42
	DefaultHorizon     = 1000
)

// QueueConfig groups the construction parameters of a Queue.
type QueueConfig struct {
	Servers     int     `yaml:"servers"`            // parallel servers (must be > 0)
	Capacity    *int    `yaml:"capacity,omitempty"` // max waiting jobs; nil = unbounded
	ArrivalRate float64 `yaml:"arrival_rate"`       // Poisson mean of arrivals per tick
	ServiceTime float64 `yaml:"service_time"`       // Poisson mean of service ticks per job
	Seed        int64   `yaml:"seed"`               // master seed for the stochastic sources
	Horizon     int64   `yaml:"horizon"`            // tick count at which Run stops (must be > 0)
}

// DefaultQueueConfig returns an unbounded M/M/4 configuration.
func DefaultQueueConfig() QueueConfig {
	return QueueConfig{
		Servers:     DefaultServers,
		ArrivalRate: DefaultArrivalRate,
		ServiceTime: DefaultServiceTime,
		Seed:        DefaultSeed,
		Horizon:     DefaultHorizon,
	}
}

// WithCapacity returns a copy of c bounded to n waiting jobs.
// A negative n removes the bound.
func (c QueueConfig) WithCapacity(n int) QueueConfig {
	if n < 0 {
		c.Capacity = nil
		return c
	}
	c.Capacity = &n
	return c
}

// Bounded reports whether the waiting list has a capacity limit.
func (c QueueConfig) Bounded() bool {
	return c.Capacity != nil
}

// CapacityString renders the capacity for reports ("inf" when unbounded).
func (c QueueConfig) CapacityString() string {
	if c.Capacity == nil {
		return "inf"
	}
	return fmt.Sprintf("%d", *c.Capacity)
}

// EffectiveServiceTime is the mean number of ticks a job holds a server under
// the default Poisson service source. A zero-duration draw still occupies its
// server for one tick, so the mean is ServiceTime + P(duration = 0).
func (c QueueConfig) EffectiveServiceTime() float64 {
	return c.ServiceTime + math.Exp(-c.ServiceTime)
}

// Validate returns the first violation wrapped in ErrInvalidConfiguration.
func (c QueueConfig) Validate() error {
	if c.Servers <= 0 {
		return fmt.Errorf("%w: servers must be positive, got %d", ErrInvalidConfiguration, c.Servers)
	}
	if c.Capacity != nil && *c.Capacity < 0 {
		return fmt.Errorf("%w: capacity must be non-negative, got %d", ErrInvalidConfiguration, *c.Capacity)
	}
	if err := validateRate("arrival_rate", c.ArrivalRate); err != nil {
		return err
	}
	if err := validateRate("service_time", c.ServiceTime); err != nil {
		return err
	}
	if c.Horizon <= 0 {
		return fmt.Errorf("%w: horizon must be positive, got %d", ErrInvalidConfiguration, c.Horizon)
	}
	return nil
}

func validateRate(name string, val float64) error {
	if math.IsNaN(val) || math.IsInf(val, 0) {
		return fmt.Errorf("%w: %s must be a finite number, got %f", ErrInvalidConfiguration, name, val)
	}
	if val < 0 {
		return fmt.Errorf("%w: %s must be non-negative, got %f", ErrInvalidConfiguration, name, val)
	}
	return nil
}
