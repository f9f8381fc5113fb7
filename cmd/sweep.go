package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/inference-sim/queue-sim/sim"
	"github.com/inference-sim/queue-sim/sim/sweep"
)

var (
	// CLI flags for the sweep grid
	sweepServers    []int // Server counts to sweep
	sweepCapacities []int // Capacities to sweep (negative = unbounded)
	sweepTrials     int   // Trials per grid cell
	sweepWorkers    int   // Concurrent trials
	showProgress    bool  // Render a progress bar on stderr
)

// sweepCmd runs a servers × capacities grid of independent trials
var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Run a grid of queue simulations concurrently and compare the cells",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()

		base, err := resolveQueueConfig(cmd)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		if sweepTrials <= 0 {
			logrus.Fatalf("--trials must be positive, got %d", sweepTrials)
		}
		// Unset grid flags fall back to the base configuration's value.
		servers, capacities := sweepServers, sweepCapacities
		if !cmd.Flags().Changed("servers") {
			servers = nil
		}
		if !cmd.Flags().Changed("capacities") {
			capacities = nil
		}
		trials := sweep.Expand(base, servers, capacities, sweepTrials)
		for _, t := range trials {
			if err := t.Config.Validate(); err != nil {
				logrus.Fatalf("%s: %v", t.Name, err)
			}
		}
		logrus.Infof("Sweeping %d trials on %d workers", len(trials), sweepWorkers)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		runner := &sweep.Runner{Workers: sweepWorkers}
		if showProgress {
			bar := progressbar.NewOptions(len(trials),
				progressbar.OptionSetDescription("Simulating"),
				progressbar.OptionSetWriter(os.Stderr),
				progressbar.OptionSetWidth(50),
				progressbar.OptionShowCount(),
				progressbar.OptionShowIts(),
				progressbar.OptionClearOnFinish(),
			)
			runner.OnDone = func(r sweep.Result) {
				bar.Describe(r.Trial.Name)
				_ = bar.Add(1)
			}
			defer func() { _ = bar.Finish() }()
		}

		results, err := runner.Run(ctx, trials)
		if err != nil {
			logrus.Warnf("Sweep stopped early: %v", err)
		}
		renderSweepReport(cmd.OutOrStdout(), base, sweep.Aggregate(results))
	},
}

// renderSweepReport writes one row per grid cell, with the M/M/c prediction
// for the cell's server count (effective service mean) alongside the
// measured sojourn.
func renderSweepReport(w io.Writer, base sim.QueueConfig, cells []sweep.CellSummary) {
	printSectionHeader(w, fmt.Sprintf("Sweep (arrival_rate=%.2f, service_time=%.2f, horizon=%d)",
		base.ArrivalRate, base.ServiceTime, base.Horizon))

	table := newSweepTable(w)
	for _, c := range cells {
		model := referenceModel(base, c.Key.Servers)
		_ = table.Append(
			fmt.Sprintf("%d", c.Key.Servers),
			c.Key.Capacity,
			fmt.Sprintf("%d/%d", c.Trials-c.Failed, c.Trials),
			formatFloat(c.MeanCompleted),
			formatFloat(c.MeanWait),
			formatFloat(c.MeanSojourn),
			formatFloat(c.StdSojourn),
			formatFloat(model.MeanSojourn()),
			formatFloat(c.MeanLossRate),
			formatFloat(c.MeanUtil),
		)
	}
	if err := table.Render(); err != nil {
		_, _ = red.Fprintln(w, "Error rendering sweep table:", err)
	}
}

func init() {
	registerQueueFlags(sweepCmd)
	sweepCmd.Flags().IntSliceVar(&sweepServers, "servers", []int{sim.DefaultServers}, "Comma-separated server counts")
	sweepCmd.Flags().IntSliceVar(&sweepCapacities, "capacities", []int{-1}, "Comma-separated capacities (negative = unbounded)")
	sweepCmd.Flags().IntVar(&sweepTrials, "trials", 5, "Trials per grid cell")
	sweepCmd.Flags().IntVar(&sweepWorkers, "workers", 4, "Concurrent trials")
	sweepCmd.Flags().BoolVar(&showProgress, "progress", false, "Show a progress bar on stderr")

	rootCmd.AddCommand(sweepCmd)
}
