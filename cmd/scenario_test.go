package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sim "github.com/inference-sim/queue-sim/sim"
)

const testScenarios = `version: "1"
default: small
scenarios:
  small:
    servers: 2
    capacity: 5
    arrival_rate: 0.5
    service_time: 3
    seed: 9
    horizon: 200
  partial:
    arrival_rate: 1.5
`

func writeScenarioFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenarios.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

// newTestRunCmd registers the run flags on a fresh command, which also resets
// the package-level flag variables to their defaults, then parses args.
func newTestRunCmd(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	c := &cobra.Command{Use: "run"}
	registerQueueFlags(c)
	c.Flags().IntVar(&numServers, "servers", sim.DefaultServers, "")
	c.Flags().IntVar(&capacity, "capacity", -1, "")
	require.NoError(t, c.ParseFlags(args))
	return c
}

func TestLoadScenarioFile_DefaultScenario(t *testing.T) {
	// GIVEN a scenario file whose default is "small"
	f, err := loadScenarioFile(writeScenarioFile(t, testScenarios))
	require.NoError(t, err)

	// WHEN no scenario name is given
	cfg, err := f.Lookup("")
	require.NoError(t, err)

	// THEN the default scenario is returned with every field applied
	assert.Equal(t, 2, cfg.Servers)
	require.NotNil(t, cfg.Capacity)
	assert.Equal(t, 5, *cfg.Capacity)
	assert.Equal(t, 0.5, cfg.ArrivalRate)
	assert.Equal(t, 3.0, cfg.ServiceTime)
	assert.Equal(t, int64(9), cfg.Seed)
	assert.Equal(t, int64(200), cfg.Horizon)
	assert.Equal(t, []string{"partial", "small"}, f.Names())
}

func TestLoadScenarioFile_OmittedFieldsKeepDefaults(t *testing.T) {
	f, err := loadScenarioFile(writeScenarioFile(t, testScenarios))
	require.NoError(t, err)

	cfg, err := f.Lookup("partial")
	require.NoError(t, err)

	want := sim.DefaultQueueConfig()
	want.ArrivalRate = 1.5
	assert.Equal(t, want, cfg)
	assert.False(t, cfg.Bounded())
}

func TestLoadScenarioFile_UnknownField_Errors(t *testing.T) {
	// GIVEN a typo in a scenario field name
	path := writeScenarioFile(t, "scenarios:\n  a:\n    server: 3\n")

	// WHEN the file is loaded
	_, err := loadScenarioFile(path)

	// THEN strict parsing rejects it
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server")
}

func TestLoadScenarioFile_MissingFile_Errors(t *testing.T) {
	_, err := loadScenarioFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestScenarioLookup_UnknownName_ListsAvailable(t *testing.T) {
	f, err := loadScenarioFile(writeScenarioFile(t, testScenarios))
	require.NoError(t, err)

	_, err = f.Lookup("huge")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "small")
}

func TestScenarioLookup_SingleScenarioWithoutDefault(t *testing.T) {
	f, err := loadScenarioFile(writeScenarioFile(t, "scenarios:\n  only:\n    servers: 7\n"))
	require.NoError(t, err)

	cfg, err := f.Lookup("")
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Servers)
}

func TestResolveQueueConfig_FlagsOnly(t *testing.T) {
	configPath, scenarioName = "", ""
	c := newTestRunCmd(t, "--servers", "3", "--capacity", "10", "--arrival-rate", "1.25")

	cfg, err := resolveQueueConfig(c)
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Servers)
	assert.Equal(t, "10", cfg.CapacityString())
	assert.Equal(t, 1.25, cfg.ArrivalRate)
	assert.Equal(t, sim.DefaultServiceTime, cfg.ServiceTime)
	assert.Equal(t, int64(sim.DefaultSeed), cfg.Seed)
}

func TestResolveQueueConfig_ExplicitFlagOverridesScenario(t *testing.T) {
	// GIVEN a scenario file with seed 9
	path := writeScenarioFile(t, testScenarios)

	// WHEN --seed is set explicitly alongside --config
	c := newTestRunCmd(t, "--config", path, "--seed", "100")
	cfg, err := resolveQueueConfig(c)
	require.NoError(t, err)

	// THEN the flag wins and the other scenario values are kept
	assert.Equal(t, int64(100), cfg.Seed)
	assert.Equal(t, 2, cfg.Servers)
	assert.Equal(t, "5", cfg.CapacityString())
}

func TestResolveQueueConfig_DefaultFlagsDoNotOverrideScenario(t *testing.T) {
	// GIVEN a scenario with 2 servers and the --servers flag left at its default of 4
	path := writeScenarioFile(t, testScenarios)
	c := newTestRunCmd(t, "--config", path)

	cfg, err := resolveQueueConfig(c)
	require.NoError(t, err)

	// THEN the scenario value is used
	assert.Equal(t, 2, cfg.Servers)
	assert.Equal(t, int64(9), cfg.Seed)
}

func TestResolveQueueConfig_NegativeCapacityFlagUnboundsScenario(t *testing.T) {
	path := writeScenarioFile(t, testScenarios)
	c := newTestRunCmd(t, "--config", path, "--capacity", "-1")

	cfg, err := resolveQueueConfig(c)
	require.NoError(t, err)
	assert.False(t, cfg.Bounded())
}

func TestResolveQueueConfig_InvalidValues_Rejected(t *testing.T) {
	configPath, scenarioName = "", ""
	c := newTestRunCmd(t, "--servers", "0")

	_, err := resolveQueueConfig(c)
	assert.ErrorIs(t, err, sim.ErrInvalidConfiguration)
}

func TestBundledScenarios_LoadAndMatchTheirLoad(t *testing.T) {
	// GIVEN the scenarios shipped with the repository
	f, err := loadScenarioFile(filepath.Join("..", "scenarios", "default.yaml"))
	require.NoError(t, err)

	// WHEN each scenario is resolved
	// THEN all validate, and the default and overload scenarios are unstable
	for _, name := range f.Names() {
		cfg, err := f.Lookup(name)
		require.NoError(t, err, name)
		require.NoError(t, cfg.Validate(), name)
	}
	for _, name := range []string{"mm4", "overload"} {
		cfg, err := f.Lookup(name)
		require.NoError(t, err)
		assert.False(t, referenceModel(cfg, cfg.Servers).Stable(), name)
	}
	def, err := f.Lookup("")
	require.NoError(t, err)
	assert.Equal(t, 4, def.Servers)
}
