// Package sim provides the tick-driven queue simulation engine.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - job.go: Job lifecycle (queued → running → completed)
//   - server.go: a single server holding at most one job
//   - queue.go: arrivals, FIFO dispatch, and the per-tick step
//   - simulator.go: the driver (Run, RunUntil, RunContext) and lifecycle phases
//   - metrics.go: Snapshot and the derived statistics
//
// # Architecture
//
// A Queue owns a fixed pool of Servers, a FIFO WaitQueue, and an append-only
// completed log. Each Tick draws an arrival count, enqueues one Job per
// arrival (dropping it if the waiting list is full), hands waiting jobs to
// idle servers in server order, advances every server by one tick, and
// archives the jobs servers report complete.
//
// Randomness enters only through the Sampler interface. By default arrivals
// and service durations are Poisson draws from streams derived from the
// configured seed by PartitionedRNG, so identically configured queues produce
// identical runs.
//
// Sub-packages:
//   - sim/trace/: admission and dispatch decision records
//   - sim/analysis/: closed-form M/M/c reference figures
//   - sim/sweep/: concurrent independent trials
package sim
