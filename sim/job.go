// Defines the Job struct that models a single unit of work in the queue.
// Tracks required service duration, elapsed age, and the ticks at which the
// job arrived, started service, and completed.

package sim

import (
	"fmt"
)

// JobState represents the lifecycle state of a job.
type JobState string

const (
	StateQueued    JobState = "queued"
	StateRunning   JobState = "running"
	StateCompleted JobState = "completed"
)

// Job models a single job's lifecycle in the simulation.
// Age only moves while a Server holds the job; once the job completes it is
// archived by the Queue and never mutated again.
type Job struct {
	ID int64 // Creation order within the owning Queue

	RequiredDuration int64 // Ticks of service needed to finish
	Age              int64 // Ticks of service received so far

	State          JobState // queued, running, completed
	ArrivalTick    int64    // Clock value of the tick the job arrived in
	StartTick      int64    // Clock value of the tick the job was assigned (-1 until assigned)
	CompletionTick int64    // Clock value after the tick the job completed in (-1 until complete)

	offered bool // set once a Queue has stamped and admitted or rejected the job
}

// NewJob creates a queued job with zero age.
// A Queue that accepts the job through Enqueue overwrites id and arrivalTick.
func NewJob(id int64, requiredDuration int64, arrivalTick int64) *Job {
	return &Job{
		ID:               id,
		RequiredDuration: requiredDuration,
		State:            StateQueued,
		ArrivalTick:      arrivalTick,
		StartTick:        -1,
		CompletionTick:   -1,
	}
}

// fresh reports whether the job has never been offered to a queue nor served.
func (j *Job) fresh() bool {
	return !j.offered && j.State == StateQueued && j.Age == 0 && j.StartTick < 0 && j.CompletionTick < 0
}

// Advance ages the job by one tick of service.
// Calling Advance on a complete job is a caller error and is not guarded.
func (j *Job) Advance() {
	j.Age++
}

// IsComplete reports whether the job has received its required service.
func (j *Job) IsComplete() bool {
	return j.Age >= j.RequiredDuration
}

// WaitTicks returns the ticks spent in the waiting list before assignment.
// Returns -1 for a job that was never assigned.
func (j *Job) WaitTicks() int64 {
	if j.StartTick < 0 {
		return -1
	}
	return j.StartTick - j.ArrivalTick
}

// SojournTicks returns arrival-to-completion time.
// Returns -1 for a job that has not completed.
func (j *Job) SojournTicks() int64 {
	if j.CompletionTick < 0 {
		return -1
	}
	return j.CompletionTick - j.ArrivalTick
}

func (j Job) String() string {
	return fmt.Sprintf("Job: (ID: %d, State: %s, Age: %d/%d, ArrivalTick: %d)", j.ID, j.State, j.Age, j.RequiredDuration, j.ArrivalTick)
}
