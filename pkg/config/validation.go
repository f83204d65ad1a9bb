package config

import (
	"fmt"
	"strings"

	"github.com/evobandits/evobandits-go/pkg/benchmarks"
)

// supportedFormats lists the report formats the CLI can write
var supportedFormats = []string{"console", "csv", "xlsx", "json"}

// StudyValidator implements validation for study configurations
type StudyValidator struct{}

// NewStudyValidator creates a new study validator
func NewStudyValidator() *StudyValidator {
	return &StudyValidator{}
}

// Validate performs comprehensive validation on study configuration parameters
func (v *StudyValidator) Validate(cfg *StudyConfig) error {
	if cfg == nil {
		return fmt.Errorf("configuration is nil")
	}

	if strings.TrimSpace(cfg.Name) == "" {
		return fmt.Errorf("study name must not be empty")
	}

	if err := v.validateObjective(cfg.Objective); err != nil {
		return err
	}

	if err := v.validateParams(cfg); err != nil {
		return err
	}

	if err := cfg.Options().Validate(); err != nil {
		return err
	}

	if err := v.validateRun(cfg); err != nil {
		return err
	}

	return v.validateOutput(cfg.Output)
}

func (v *StudyValidator) validateObjective(obj ObjectiveConfig) error {
	if _, err := benchmarks.Lookup(obj.Benchmark); err != nil {
		return err
	}
	if obj.Noise < 0 {
		return fmt.Errorf("noise must be non-negative, got: %.4f", obj.Noise)
	}
	return nil
}

// validateParams builds the space once so every parameter error surfaces here
func (v *StudyValidator) validateParams(cfg *StudyConfig) error {
	if len(cfg.Params) == 0 {
		return fmt.Errorf("at least one parameter is required")
	}
	space, err := cfg.BuildSpace()
	if err != nil {
		return err
	}
	if size := space.Bounds().SolutionSize(); size < cfg.Algorithm.PopulationSize {
		return fmt.Errorf("search space has %d solutions, fewer than population_size %d", size, cfg.Algorithm.PopulationSize)
	}
	return nil
}

func (v *StudyValidator) validateRun(cfg *StudyConfig) error {
	if cfg.Run.Trials <= cfg.Algorithm.PopulationSize {
		return fmt.Errorf("trials must exceed population_size %d, got: %d", cfg.Algorithm.PopulationSize, cfg.Run.Trials)
	}
	return cfg.Settings().Validate()
}

func (v *StudyValidator) validateOutput(out OutputConfig) error {
	for _, format := range out.Formats {
		known := false
		for _, supported := range supportedFormats {
			if format == supported {
				known = true
				break
			}
		}
		if !known {
			return fmt.Errorf("unsupported output format %q (supported: %s)", format, strings.Join(supportedFormats, ", "))
		}
	}
	if len(out.Formats) > 0 && out.Dir == "" {
		return fmt.Errorf("output dir must not be empty")
	}
	return nil
}
