// Package testutil provides shared test infrastructure for the queue simulator.
// It holds the golden dataset types and assertion helpers used by long-run
// convergence tests.
package testutil

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// GoldenDataset represents the structure of testdata/goldendataset.json.
type GoldenDataset struct {
	Tests []GoldenTestCase `json:"tests"`
}

// GoldenTestCase is one long-run scenario and the steady-state figures it
// must converge to.
type GoldenTestCase struct {
	Name        string        `json:"name"`
	Servers     int           `json:"servers"`
	ArrivalRate float64       `json:"arrival_rate"`
	ServiceTime float64       `json:"service_time"`
	Seed        int64         `json:"seed"`
	Horizon     int64         `json:"horizon"`
	Metrics     GoldenMetrics `json:"metrics"`
}

// GoldenMetrics are expected long-run values. Utilization accounts for the
// one-tick minimum service: each job holds a server for
// service_time + P(duration = 0) ticks on average.
type GoldenMetrics struct {
	Throughput  float64 `json:"throughput"`   // completed jobs per tick
	Utilization float64 `json:"utilization"`  // busy server-ticks / total server-ticks
	AvgDuration float64 `json:"avg_duration"` // mean sampled service ticks
	LossRate    float64 `json:"loss_rate"`
}

// LoadGoldenDataset loads the golden dataset from the testdata directory.
// The path is resolved relative to this source file: sim/internal/testutil/ → testdata/.
func LoadGoldenDataset(t *testing.T) *GoldenDataset {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	path := filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "testdata", "goldendataset.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read golden dataset: %v", err)
	}

	var dataset GoldenDataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		t.Fatalf("Failed to parse golden dataset: %v", err)
	}
	return &dataset
}

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}
