package cmd

import (
	"bytes"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	sim "github.com/inference-sim/queue-sim/sim"
)

// ScenarioFile represents the full scenarios YAML structure.
// All top-level sections must be listed to satisfy KnownFields(true) strict parsing.
type ScenarioFile struct {
	Version   string              `yaml:"version"`
	Default   string              `yaml:"default"`
	Scenarios map[string]Scenario `yaml:"scenarios"`
}

// Scenario is one named queue configuration. Omitted fields keep their
// sim.DefaultQueueConfig value, except capacity which stays unbounded.
type Scenario struct {
	Servers     *int     `yaml:"servers"`
	Capacity    *int     `yaml:"capacity"`
	ArrivalRate *float64 `yaml:"arrival_rate"`
	ServiceTime *float64 `yaml:"service_time"`
	Seed        *int64   `yaml:"seed"`
	Horizon     *int64   `yaml:"horizon"`
}

// Apply overlays the fields set in s onto cfg.
func (s Scenario) Apply(cfg sim.QueueConfig) sim.QueueConfig {
	if s.Servers != nil {
		cfg.Servers = *s.Servers
	}
	if s.Capacity != nil {
		c := *s.Capacity
		cfg.Capacity = &c
	}
	if s.ArrivalRate != nil {
		cfg.ArrivalRate = *s.ArrivalRate
	}
	if s.ServiceTime != nil {
		cfg.ServiceTime = *s.ServiceTime
	}
	if s.Seed != nil {
		cfg.Seed = *s.Seed
	}
	if s.Horizon != nil {
		cfg.Horizon = *s.Horizon
	}
	return cfg
}

// loadScenarioFile parses a scenarios YAML file.
// Uses strict field checking: typos must cause errors.
func loadScenarioFile(path string) (*ScenarioFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario file: %w", err)
	}
	var f ScenarioFile
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&f); err != nil {
		return nil, fmt.Errorf("parsing scenario file %s: %w", path, err)
	}
	return &f, nil
}

// Lookup returns the named scenario, or the file's default when name is empty.
func (f *ScenarioFile) Lookup(name string) (sim.QueueConfig, error) {
	if name == "" {
		name = f.Default
	}
	if name == "" && len(f.Scenarios) == 1 {
		for only := range f.Scenarios {
			name = only
		}
	}
	sc, ok := f.Scenarios[name]
	if !ok {
		return sim.QueueConfig{}, fmt.Errorf("unknown scenario %q; available: %v", name, f.Names())
	}
	return sc.Apply(sim.DefaultQueueConfig()), nil
}

// Names lists the scenarios in the file, sorted.
func (f *ScenarioFile) Names() []string {
	names := make([]string, 0, len(f.Scenarios))
	for n := range f.Scenarios {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// resolveQueueConfig starts from the built-in defaults, applies the scenario
// selected by --config/--scenario, then applies every flag the user set
// explicitly. Flags left at their defaults never override a scenario value.
func resolveQueueConfig(cmd *cobra.Command) (sim.QueueConfig, error) {
	cfg := sim.DefaultQueueConfig()
	if configPath != "" {
		f, err := loadScenarioFile(configPath)
		if err != nil {
			return cfg, err
		}
		if cfg, err = f.Lookup(scenarioName); err != nil {
			return cfg, err
		}
	} else {
		cfg.Servers = numServers
		cfg.ArrivalRate = arrivalRate
		cfg.ServiceTime = serviceTime
		cfg.Seed = seed
		cfg.Horizon = simulationHorizon
		cfg = cfg.WithCapacity(capacity)
		return cfg, cfg.Validate()
	}

	flags := cmd.Flags()
	if flags.Changed("servers") {
		cfg.Servers = numServers
	}
	if flags.Changed("capacity") {
		cfg = cfg.WithCapacity(capacity)
	}
	if flags.Changed("arrival-rate") {
		cfg.ArrivalRate = arrivalRate
	}
	if flags.Changed("service-time") {
		cfg.ServiceTime = serviceTime
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("horizon") {
		cfg.Horizon = simulationHorizon
	}
	return cfg, cfg.Validate()
}
