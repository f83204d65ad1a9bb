package reporting

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/evobandits/evobandits-go/pkg/study"
)

// StudyReport is everything written out after a study finishes
type StudyReport struct {
	Name      string         `json:"name"`
	Seed      uint64         `json:"seed"`
	Seeded    bool           `json:"seeded"`
	Benchmark string         `json:"benchmark,omitempty"`
	Maximize  bool           `json:"maximize"`
	Trials    int            `json:"trials"`
	Runs      int            `json:"runs"`
	TopK      int            `json:"top_k"`
	BestValue float64        `json:"best_value"`
	MeanValue float64        `json:"mean_value"`
	Duration  time.Duration  `json:"duration_ns"`
	Results   []study.Result `json:"results"`
}

// NewStudyReport collects the ranked results of a finished study
func NewStudyReport(name string, s *study.Study, trials int, settings study.Settings, duration time.Duration) (*StudyReport, error) {
	results, err := s.Results()
	if err != nil {
		return nil, err
	}
	mean, err := s.MeanValue()
	if err != nil {
		return nil, err
	}

	return &StudyReport{
		Name:      name,
		Seed:      s.Seed(),
		Seeded:    s.Seeded(),
		Maximize:  settings.Maximize,
		Trials:    trials,
		Runs:      settings.Runs,
		TopK:      settings.TopK,
		BestValue: results[0].Value,
		MeanValue: mean,
		Duration:  duration,
		Results:   results,
	}, nil
}

// Direction returns the optimization direction as text
func (r *StudyReport) Direction() string {
	if r.Maximize {
		return "maximize"
	}
	return "minimize"
}

// FormatParams renders decoded parameters as sorted key=value pairs
func FormatParams(values study.Values) string {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%v", k, values[k])
	}
	return strings.Join(parts, " ")
}

// FormatVector renders an action vector
func FormatVector(v []int) string {
	parts := make([]string, len(v))
	for i, x := range v {
		parts[i] = fmt.Sprint(x)
	}
	return "[" + strings.Join(parts, " ") + "]"
}
