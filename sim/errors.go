package sim

import "errors"

var (
	// ErrInvalidConfiguration is returned by NewQueue when the QueueConfig
	// cannot describe a runnable simulation.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrCapacityExceeded is returned by Enqueue when the waiting list is full.
	// The rejected job is dropped and counted as a loss.
	ErrCapacityExceeded = errors.New("queue capacity exceeded")

	// ErrJobNotFresh is returned by Enqueue for a job that has already been
	// offered to a queue, assigned to a server, or aged.
	ErrJobNotFresh = errors.New("job is not fresh")

	// ErrFinished is returned when ticking or enqueueing into a queue whose
	// horizon has elapsed.
	ErrFinished = errors.New("simulation finished")
)
