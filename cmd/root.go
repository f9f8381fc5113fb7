package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/inference-sim/queue-sim/sim"
	"github.com/inference-sim/queue-sim/sim/trace"
)

var (
	// CLI flags for the queue configuration
	numServers        int     // Number of parallel servers
	capacity          int     // Max waiting jobs (negative = unbounded)
	arrivalRate       float64 // Poisson mean of arrivals per tick
	serviceTime       float64 // Poisson mean of service ticks per job
	seed              int64   // Master seed for arrivals and service times
	simulationHorizon int64   // Total simulation time (in ticks)

	// CLI flags for inputs and outputs
	configPath   string // Scenario YAML file
	scenarioName string // Scenario to select from the YAML file
	reportEvery  int    // Print a snapshot every N ticks (0 = never)
	traceLevel   string // Decision trace level
	logLevel     string // Log verbosity level
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "queue-sim",
	Short: "Tick-driven M/M/c queue simulator",
}

// setupLogging parses --log and applies it to the global logrus logger.
func setupLogging() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
}

// runCmd executes one simulation using parameters from CLI flags or a scenario file
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a single queue simulation",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()

		if !trace.IsValidTraceLevel(traceLevel) {
			logrus.Fatalf("Unknown trace level %q. Valid: none, decisions", traceLevel)
		}
		cfg, err := resolveQueueConfig(cmd)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		logrus.Infof("Starting simulation: servers=%d capacity=%s arrival_rate=%.3f service_time=%.3f seed=%d horizon=%d",
			cfg.Servers, cfg.CapacityString(), cfg.ArrivalRate, cfg.ServiceTime, cfg.Seed, cfg.Horizon)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		start := time.Now()
		if err := runSimulation(ctx, cfg, cmd.OutOrStdout(), reportEvery, trace.TraceLevel(traceLevel)); err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}
		logrus.Infof("Simulation complete in %s", time.Since(start).Round(time.Millisecond))
	},
}

// runSimulation builds the queue, ticks it to its horizon while feeding the
// periodic reporter, and writes the final report to out. A cancelled ctx
// stops the run between ticks; the partial report is still written.
func runSimulation(ctx context.Context, cfg sim.QueueConfig, out io.Writer, every int, level trace.TraceLevel) error {
	st := trace.NewSimulationTrace(trace.TraceConfig{Level: level})
	q, err := sim.NewQueue(cfg, sim.WithTrace(st))
	if err != nil {
		return err
	}

	reporter := newTickReporter(out, every)
	var runErr error
	for {
		if err := ctx.Err(); err != nil {
			logrus.Warnf("[tick %07d] Simulation interrupted: %v", q.Clock(), err)
			runErr = err
			break
		}
		if err := q.Tick(); err != nil {
			if !errors.Is(err, sim.ErrFinished) {
				return fmt.Errorf("tick %d: %w", q.Clock(), err)
			}
			break
		}
		reporter.Observe(q)
	}

	renderRunReport(out, q, st)
	return runErr
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// registerQueueFlags adds the queue parameters shared by run and sweep.
func registerQueueFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&arrivalRate, "arrival-rate", sim.DefaultArrivalRate, "Mean arrivals per tick (Poisson)")
	cmd.Flags().Float64Var(&serviceTime, "service-time", sim.DefaultServiceTime, "Mean service ticks per job (Poisson)")
	cmd.Flags().Int64Var(&seed, "seed", sim.DefaultSeed, "Seed for arrivals and service times")
	cmd.Flags().Int64Var(&simulationHorizon, "horizon", sim.DefaultHorizon, "Total simulation horizon (in ticks)")
	cmd.Flags().StringVar(&configPath, "config", "", "Path to a scenarios YAML file; explicitly set flags override its values")
	cmd.Flags().StringVar(&scenarioName, "scenario", "", "Scenario name within --config (default: the file's default)")
	cmd.Flags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
}

// init sets up CLI flags and subcommands
func init() {
	registerQueueFlags(runCmd)
	runCmd.Flags().IntVar(&numServers, "servers", sim.DefaultServers, "Number of parallel servers")
	runCmd.Flags().IntVar(&capacity, "capacity", -1, "Max jobs in the waiting list (negative = unbounded)")
	runCmd.Flags().IntVar(&reportEvery, "report-every", 0, "Print a queue snapshot every N ticks (0 = never)")
	runCmd.Flags().StringVar(&traceLevel, "trace", string(trace.TraceLevelNone), "Decision trace level (none, decisions)")

	// Attach `run` as a subcommand to `root`
	rootCmd.AddCommand(runCmd)
}
