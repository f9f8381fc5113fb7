package sweep

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// CellKey identifies one grid cell of a sweep.
type CellKey struct {
	Servers  int
	Capacity string // "inf" when unbounded
}

// CellSummary aggregates the successful trials of one grid cell.
type CellSummary struct {
	Key           CellKey
	Trials        int
	Failed        int
	MeanSojourn   float64
	StdSojourn    float64
	MeanWait      float64
	MeanLossRate  float64
	MeanQueueLen  float64
	MeanUtil      float64
	MeanCompleted float64
}

// Aggregate groups results by grid cell, preserving first-seen cell order.
// Std figures are NaN for cells with fewer than two successful trials.
func Aggregate(results []Result) []CellSummary {
	order := make([]CellKey, 0)
	byCell := make(map[CellKey][]Result)
	for _, r := range results {
		key := CellKey{Servers: r.Trial.Config.Servers, Capacity: r.Trial.Config.CapacityString()}
		if _, ok := byCell[key]; !ok {
			order = append(order, key)
		}
		byCell[key] = append(byCell[key], r)
	}

	out := make([]CellSummary, 0, len(order))
	for _, key := range order {
		cell := CellSummary{Key: key, StdSojourn: math.NaN()}
		var sojourn, wait, loss, depth, util, completed []float64
		for _, r := range byCell[key] {
			cell.Trials++
			if r.Err != nil {
				cell.Failed++
				continue
			}
			sojourn = append(sojourn, r.Metrics.AvgSojourn)
			wait = append(wait, r.Metrics.AvgWait)
			loss = append(loss, r.Metrics.LossRate)
			depth = append(depth, r.Metrics.MeanQueueDepth)
			util = append(util, r.Metrics.Utilization)
			completed = append(completed, float64(r.Metrics.CompletedJobs))
		}
		if len(sojourn) > 0 {
			cell.MeanSojourn = stat.Mean(sojourn, nil)
			cell.MeanWait = stat.Mean(wait, nil)
			cell.MeanLossRate = stat.Mean(loss, nil)
			cell.MeanQueueLen = stat.Mean(depth, nil)
			cell.MeanUtil = stat.Mean(util, nil)
			cell.MeanCompleted = stat.Mean(completed, nil)
		}
		if len(sojourn) > 1 {
			cell.StdSojourn = stat.StdDev(sojourn, nil)
		}
		out = append(out, cell)
	}
	return out
}
