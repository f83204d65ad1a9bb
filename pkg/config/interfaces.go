package config

// Package config provides configuration management for optimization studies

// ConfigManager handles loading, validation and saving of study configurations
type ConfigManager interface {
	// LoadConfig loads defaults, then the file, then environment overrides
	LoadConfig(configFile string) (*StudyConfig, error)

	// ValidateConfig validates a configuration
	ValidateConfig(cfg *StudyConfig) error

	// SaveConfig saves configuration to file
	SaveConfig(cfg *StudyConfig, path string) error
}

// Validator interface for configuration validation
type Validator interface {
	Validate(cfg *StudyConfig) error
}

// Common configuration constants
const (
	// Default run values
	DefaultTrials    = 1000
	DefaultTopK      = 1
	DefaultRuns      = 1
	DefaultBenchmark = "rosenbrock"
	DefaultStudyName = "evobandits"

	// Parameter types
	ParamTypeInt         = "int"
	ParamTypeCategorical = "categorical"

	// Environment
	EnvPrefix      = "EVOBANDITS_"
	DefaultEnvFile = ".env"

	// Display and formatting constants
	ReportLineLength = 50

	// File and directory constants
	ResultsDir      = "results"
	BestConfigFile  = "best.json"
	ResultsFile     = "results.xlsx"
	ResultsCSVFile  = "results.csv"
	ResultsJSONFile = "results.json"
	LogsDir         = "logs"

	// Metrics
	DefaultMetricsAddr = ":9090"
)
