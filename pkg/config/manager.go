package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// StudyConfigManager implements ConfigManager for study configurations
type StudyConfigManager struct {
	validator Validator
	envFile   string
}

// NewStudyConfigManager creates a new study configuration manager
func NewStudyConfigManager() *StudyConfigManager {
	return &StudyConfigManager{
		validator: NewStudyValidator(),
		envFile:   DefaultEnvFile,
	}
}

// SetEnvFile sets the optional env file read before applying overrides
func (m *StudyConfigManager) SetEnvFile(path string) {
	m.envFile = path
}

// LoadConfig loads configuration from defaults, file and environment
func (m *StudyConfigManager) LoadConfig(configFile string) (*StudyConfig, error) {
	// Start with default configuration
	cfg := NewDefaultStudyConfig()

	// Load from config file if provided
	if configFile != "" {
		if err := m.loadFromFile(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	// Environment overrides the file
	if err := m.loadEnvFile(); err != nil {
		return nil, err
	}
	if err := applyEnvOverrides(cfg); err != nil {
		return nil, fmt.Errorf("invalid environment override: %w", err)
	}

	// Validate configuration
	if err := m.ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads configuration from a JSON file
func (m *StudyConfigManager) loadFromFile(configFile string, cfg *StudyConfig) error {
	data, err := os.ReadFile(configFile)
	if err != nil {
		return fmt.Errorf("could not read config file: %w", err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("could not parse config file: %w", err)
	}

	return nil
}

// loadEnvFile loads the env file if it exists, without overriding variables
// already set in the process environment
func (m *StudyConfigManager) loadEnvFile() error {
	if m.envFile == "" {
		return nil
	}
	if _, err := os.Stat(m.envFile); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(m.envFile); err != nil {
		return fmt.Errorf("could not load environment file %s: %w", m.envFile, err)
	}
	return nil
}

// applyEnvOverrides copies EVOBANDITS_* variables onto cfg
func applyEnvOverrides(cfg *StudyConfig) error {
	if v, ok := lookupEnv("NAME"); ok {
		cfg.Name = v
	}
	if v, ok := lookupEnv("BENCHMARK"); ok {
		cfg.Objective.Benchmark = v
	}
	if v, ok := lookupEnv("OUTPUT_DIR"); ok {
		cfg.Output.Dir = v
	}
	if v, ok := lookupEnv("FORMATS"); ok {
		cfg.Output.Formats = splitList(v)
	}
	if v, ok := lookupEnv("METRICS_ADDR"); ok {
		cfg.Metrics.Address = v
		cfg.Metrics.Enabled = true
	}

	if v, ok := lookupEnv("SEED"); ok {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%sSEED: %w", EnvPrefix, err)
		}
		cfg.Seed = &seed
	}
	if v, ok := lookupEnv("NOISE"); ok {
		noise, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%sNOISE: %w", EnvPrefix, err)
		}
		cfg.Objective.Noise = noise
	}
	if v, ok := lookupEnv("MAXIMIZE"); ok {
		maximize, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%sMAXIMIZE: %w", EnvPrefix, err)
		}
		cfg.Run.Maximize = maximize
	}

	ints := []struct {
		key    string
		target *int
	}{
		{"TRIALS", &cfg.Run.Trials},
		{"TOP_K", &cfg.Run.TopK},
		{"RUNS", &cfg.Run.Runs},
		{"POPULATION_SIZE", &cfg.Algorithm.PopulationSize},
	}
	for _, entry := range ints {
		v, ok := lookupEnv(entry.key)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, entry.key, err)
		}
		*entry.target = n
	}

	return nil
}

func lookupEnv(key string) (string, bool) {
	v, ok := os.LookupEnv(EnvPrefix + key)
	if !ok || strings.TrimSpace(v) == "" {
		return "", false
	}
	return strings.TrimSpace(v), true
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, strings.ToLower(part))
		}
	}
	return out
}

// ValidateConfig validates a configuration using the validator
func (m *StudyConfigManager) ValidateConfig(cfg *StudyConfig) error {
	return m.validator.Validate(cfg)
}

// SaveConfig saves configuration to file
func (m *StudyConfigManager) SaveConfig(cfg *StudyConfig, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Ensure directory exists
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	return os.WriteFile(path, data, 0644)
}
