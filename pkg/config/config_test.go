package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestStudyConfigManager_Defaults(t *testing.T) {
	m := NewStudyConfigManager()
	m.SetEnvFile("")

	cfg, err := m.LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, DefaultStudyName, cfg.Name)
	assert.Equal(t, DefaultBenchmark, cfg.Objective.Benchmark)
	assert.Equal(t, DefaultTrials, cfg.Run.Trials)
	assert.Nil(t, cfg.Seed)

	space, err := cfg.BuildSpace()
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, space.Names())
	assert.Equal(t, 2, space.Bounds().Dimension())
}

func TestStudyConfigManager_LoadFile(t *testing.T) {
	path := writeFile(t, "study.json", `{
		"name": "sphere-study",
		"seed": 42,
		"objective": {"benchmark": "sphere", "noise": 0.5, "noise_seed": 3},
		"params": [
			{"name": "x", "type": "int", "low": -10, "high": 10, "size": 3},
			{"name": "mode", "type": "categorical", "choices": ["a", "b"]}
		],
		"algorithm": {"population_size": 10, "mutation_rate": 0.3, "crossover_rate": 0.9, "mutation_span": 0.2},
		"run": {"trials": 500, "top_k": 3, "runs": 2, "maximize": false},
		"output": {"dir": "out", "formats": ["csv", "json"]}
	}`)

	m := NewStudyConfigManager()
	m.SetEnvFile("")
	cfg, err := m.LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "sphere-study", cfg.Name)
	require.NotNil(t, cfg.Seed)
	assert.Equal(t, uint64(42), *cfg.Seed)
	assert.Equal(t, 0.5, cfg.Objective.Noise)
	assert.Equal(t, 10, cfg.Options().PopulationSize)
	assert.Equal(t, 0.9, cfg.Options().CrossoverRate)
	assert.Equal(t, 3, cfg.Settings().TopK)
	assert.True(t, cfg.HasFormat("csv"))
	assert.False(t, cfg.HasFormat("xlsx"))

	space, err := cfg.BuildSpace()
	require.NoError(t, err)
	assert.Equal(t, 4, space.Bounds().Dimension())
}

func TestStudyConfigManager_MissingFile(t *testing.T) {
	m := NewStudyConfigManager()
	m.SetEnvFile("")
	_, err := m.LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	_, err = m.LoadConfig(writeFile(t, "broken.json", "{not json"))
	assert.Error(t, err)
}

func TestStudyConfigManager_EnvOverrides(t *testing.T) {
	t.Setenv("EVOBANDITS_TRIALS", "2500")
	t.Setenv("EVOBANDITS_SEED", "7")
	t.Setenv("EVOBANDITS_BENCHMARK", "sphere")
	t.Setenv("EVOBANDITS_FORMATS", "CSV, xlsx")
	t.Setenv("EVOBANDITS_MAXIMIZE", "true")
	t.Setenv("EVOBANDITS_METRICS_ADDR", ":9999")

	m := NewStudyConfigManager()
	m.SetEnvFile("")
	cfg, err := m.LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, 2500, cfg.Run.Trials)
	require.NotNil(t, cfg.Seed)
	assert.Equal(t, uint64(7), *cfg.Seed)
	assert.Equal(t, "sphere", cfg.Objective.Benchmark)
	assert.Equal(t, []string{"csv", "xlsx"}, cfg.Output.Formats)
	assert.True(t, cfg.Run.Maximize)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, ":9999", cfg.Metrics.Address)
}

func TestStudyConfigManager_InvalidEnvOverride(t *testing.T) {
	t.Setenv("EVOBANDITS_RUNS", "many")

	m := NewStudyConfigManager()
	m.SetEnvFile("")
	_, err := m.LoadConfig("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "EVOBANDITS_RUNS")
}

func TestStudyConfigManager_EnvFile(t *testing.T) {
	// restored after the test; godotenv only fills unset variables
	t.Setenv("EVOBANDITS_TOP_K", "")
	os.Unsetenv("EVOBANDITS_TOP_K")

	m := NewStudyConfigManager()
	m.SetEnvFile(writeFile(t, ".env", "EVOBANDITS_TOP_K=4\n"))
	cfg, err := m.LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Run.TopK)
}

func TestStudyConfigManager_SaveConfig(t *testing.T) {
	m := NewStudyConfigManager()
	m.SetEnvFile("")

	cfg := NewDefaultStudyConfig()
	seed := uint64(11)
	cfg.Seed = &seed
	cfg.Run.Trials = 321

	path := filepath.Join(t.TempDir(), "nested", BestConfigFile)
	require.NoError(t, m.SaveConfig(cfg, path))

	loaded, err := m.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 321, loaded.Run.Trials)
	assert.Equal(t, uint64(11), *loaded.Seed)
}

func TestStudyValidator_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*StudyConfig)
		wantErr string
	}{
		{"valid", func(*StudyConfig) {}, ""},
		{"empty name", func(c *StudyConfig) { c.Name = " " }, "name"},
		{"unknown benchmark", func(c *StudyConfig) { c.Objective.Benchmark = "ackley" }, "unknown benchmark"},
		{"negative noise", func(c *StudyConfig) { c.Objective.Noise = -1 }, "noise"},
		{"no params", func(c *StudyConfig) { c.Params = nil }, "parameter"},
		{"bad param", func(c *StudyConfig) { c.Params[0].High = c.Params[0].Low }, "high must be larger"},
		{"seed param", func(c *StudyConfig) { c.Params[0].Name = "seed" }, "seed"},
		{"unknown param type", func(c *StudyConfig) { c.Params[0].Type = "float" }, "unknown type"},
		{"tiny space", func(c *StudyConfig) {
			c.Params = []ParamConfig{{Name: "x", Type: ParamTypeInt, Low: 0, High: 3}}
		}, "search space"},
		{"bad mutation rate", func(c *StudyConfig) { c.Algorithm.MutationRate = 2 }, "mutation_rate"},
		{"trials too small", func(c *StudyConfig) { c.Run.Trials = 5 }, "trials"},
		{"zero runs", func(c *StudyConfig) { c.Run.Runs = 0 }, "runs"},
		{"zero top_k", func(c *StudyConfig) { c.Run.TopK = 0 }, "top_k"},
		{"bad format", func(c *StudyConfig) { c.Output.Formats = []string{"pdf"} }, "unsupported output format"},
		{"empty dir", func(c *StudyConfig) { c.Output.Dir = "" }, "output dir"},
	}

	v := NewStudyValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefaultStudyConfig()
			tt.mutate(cfg)

			err := v.Validate(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
