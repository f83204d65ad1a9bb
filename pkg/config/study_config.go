package config

import (
	"fmt"

	"github.com/evobandits/evobandits-go/pkg/optimization"
	"github.com/evobandits/evobandits-go/pkg/params"
	"github.com/evobandits/evobandits-go/pkg/study"
)

// StudyConfig describes a complete optimization study
type StudyConfig struct {
	Name      string          `json:"name"`
	Seed      *uint64         `json:"seed,omitempty"`
	Objective ObjectiveConfig `json:"objective"`
	Params    []ParamConfig   `json:"params"`
	Algorithm AlgorithmConfig `json:"algorithm"`
	Run       RunConfig       `json:"run"`
	Output    OutputConfig    `json:"output"`
	Metrics   MetricsConfig   `json:"metrics"`
}

// ObjectiveConfig selects a benchmark objective and optional sampling noise
type ObjectiveConfig struct {
	Benchmark string  `json:"benchmark"`
	Noise     float64 `json:"noise"`
	NoiseSeed uint64  `json:"noise_seed"`
}

// ParamConfig declares one named parameter of the search space
type ParamConfig struct {
	Name    string        `json:"name"`
	Type    string        `json:"type"`
	Low     int           `json:"low,omitempty"`
	High    int           `json:"high,omitempty"`
	Size    int           `json:"size,omitempty"`
	Step    int           `json:"step,omitempty"`
	Choices []interface{} `json:"choices,omitempty"`
}

// AlgorithmConfig holds the genetic algorithm settings
type AlgorithmConfig struct {
	PopulationSize int     `json:"population_size"`
	MutationRate   float64 `json:"mutation_rate"`
	CrossoverRate  float64 `json:"crossover_rate"`
	MutationSpan   float64 `json:"mutation_span"`
}

// RunConfig holds the budget and result settings
type RunConfig struct {
	Trials   int  `json:"trials"`
	TopK     int  `json:"top_k"`
	Runs     int  `json:"runs"`
	Maximize bool `json:"maximize"`
}

// OutputConfig controls where and how results are written
type OutputConfig struct {
	Dir     string   `json:"dir"`
	Formats []string `json:"formats"`
	RunLog  bool     `json:"run_log"`
}

// MetricsConfig controls the Prometheus endpoint
type MetricsConfig struct {
	Enabled bool   `json:"enabled"`
	Address string `json:"address"`
}

// NewDefaultStudyConfig creates a configuration that minimizes the
// two-dimensional Rosenbrock function
func NewDefaultStudyConfig() *StudyConfig {
	return &StudyConfig{
		Name:      DefaultStudyName,
		Objective: ObjectiveConfig{Benchmark: DefaultBenchmark},
		Params: []ParamConfig{
			{Name: "x", Type: ParamTypeInt, Low: -5, High: 10, Size: 2, Step: 1},
		},
		Algorithm: AlgorithmConfig{
			PopulationSize: optimization.PopulationSizeDefault,
			MutationRate:   optimization.MutationRateDefault,
			CrossoverRate:  optimization.CrossoverRateDefault,
			MutationSpan:   optimization.MutationSpanDefault,
		},
		Run: RunConfig{
			Trials: DefaultTrials,
			TopK:   DefaultTopK,
			Runs:   DefaultRuns,
		},
		Output: OutputConfig{
			Dir:     ResultsDir,
			Formats: []string{"console"},
		},
		Metrics: MetricsConfig{Address: DefaultMetricsAddr},
	}
}

// Options converts the algorithm section into optimizer options
func (c *StudyConfig) Options() optimization.Options {
	return optimization.DefaultOptions().
		WithPopulationSize(c.Algorithm.PopulationSize).
		WithMutationRate(c.Algorithm.MutationRate).
		WithCrossoverRate(c.Algorithm.CrossoverRate).
		WithMutationSpan(c.Algorithm.MutationSpan)
}

// Settings converts the run section into study settings
func (c *StudyConfig) Settings() study.Settings {
	return study.Settings{
		Maximize: c.Run.Maximize,
		TopK:     c.Run.TopK,
		Runs:     c.Run.Runs,
	}
}

// BuildSpace creates the search space declared by Params
func (c *StudyConfig) BuildSpace() (*params.Space, error) {
	space := params.NewSpace()
	for _, pc := range c.Params {
		p, err := pc.build()
		if err != nil {
			return nil, fmt.Errorf("parameter %q: %w", pc.Name, err)
		}
		if err := space.Add(pc.Name, p); err != nil {
			return nil, err
		}
	}
	return space, nil
}

func (pc ParamConfig) build() (params.Param, error) {
	switch pc.Type {
	case ParamTypeInt, "":
		size, step := pc.Size, pc.Step
		if size == 0 {
			size = 1
		}
		if step == 0 {
			step = 1
		}
		return params.SuggestInt(pc.Low, pc.High, size, step)
	case ParamTypeCategorical:
		return params.SuggestCategorical(pc.Choices...)
	default:
		return nil, fmt.Errorf("%w: unknown type %q", params.ErrInvalidParam, pc.Type)
	}
}

// HasFormat reports whether results should be written in format
func (c *StudyConfig) HasFormat(format string) bool {
	for _, f := range c.Output.Formats {
		if f == format {
			return true
		}
	}
	return false
}
