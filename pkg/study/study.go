package study

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand/v2"

	"github.com/evobandits/evobandits-go/pkg/bandit"
	"github.com/evobandits/evobandits-go/pkg/optimization"
	"github.com/evobandits/evobandits-go/pkg/params"
	"github.com/google/uuid"
	"gonum.org/v1/gonum/stat"
)

var (
	// ErrNoResults is returned when results are requested before Optimize
	ErrNoResults = errors.New("study has no results, run Optimize first")
	// ErrInvalidSettings marks unusable run settings
	ErrInvalidSettings = errors.New("invalid study settings")
)

// Settings control one call to Study.Optimize
type Settings struct {
	Maximize bool
	TopK     int
	Runs     int
}

// DefaultSettings minimizes and keeps the single best arm of a single run
func DefaultSettings() Settings {
	return Settings{TopK: 1, Runs: 1}
}

// Validate checks the settings
func (s Settings) Validate() error {
	if s.Runs < 1 {
		return fmt.Errorf("%w: runs must be at least 1, got %d", ErrInvalidSettings, s.Runs)
	}
	if s.TopK < 1 {
		return fmt.Errorf("%w: top_k must be at least 1, got %d", ErrInvalidSettings, s.TopK)
	}
	return nil
}

// Study optimizes an objective over a named parameter space, possibly over
// several independent runs, and ranks everything it found.
type Study struct {
	seed     uint64
	seeded   bool
	opts     optimization.Options
	name     string
	progress optimization.ProgressFunc

	rng       *rand.Rand
	direction float64
	results   []Result
}

// New creates a study. A nil seed draws one from system entropy, which makes
// results irreproducible.
func New(seed *uint64, opts optimization.Options) *Study {
	s := &Study{opts: opts, name: "study", direction: 1}
	if seed == nil {
		log.Printf("⚠️ No seed provided. Results will not be reproducible.")
		s.seed = rand.Uint64()
	} else {
		s.seed = *seed
		s.seeded = true
	}
	s.rng = rand.New(rand.NewPCG(s.seed, s.seed))
	return s
}

// Seed returns the study seed
func (s *Study) Seed() uint64 {
	return s.seed
}

// Seeded reports whether the seed was supplied by the caller
func (s *Study) Seeded() bool {
	return s.seeded
}

// SetName labels the metrics and logs of the study
func (s *Study) SetName(name string) {
	s.name = name
}

// SetProgress installs a per-generation callback used by every run
func (s *Study) SetProgress(fn optimization.ProgressFunc) {
	s.progress = fn
}

// Optimize spends trials evaluations of objective per run and stores the
// TopK best arms of every run. Results of a previous call are replaced.
func (s *Study) Optimize(ctx context.Context, objective Objective, space *params.Space, trials int, settings Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	if objective == nil {
		return fmt.Errorf("%w: objective is nil", ErrInvalidSettings)
	}
	if space == nil || space.Len() == 0 {
		return fmt.Errorf("%w: parameter space is empty", params.ErrInvalidParam)
	}

	s.direction = 1
	if settings.Maximize {
		s.direction = -1
	}

	eval := s.evaluator(objective, space)
	var results []Result

	for run := 0; run < settings.Runs; run++ {
		opts := s.opts.WithSeed(s.nextSeed())
		optimizer, err := optimization.NewOptimizer(opts)
		if err != nil {
			return err
		}
		optimizer.SetName(s.name)
		optimizer.SetProgress(s.progress)

		best, err := optimizer.Optimize(ctx, eval, space.Bounds(), trials, settings.TopK)
		if err != nil {
			return fmt.Errorf("run %d: %w", run, err)
		}

		runID := uuid.New().String()
		for position, snap := range best {
			values, err := space.Decode(snap.ActionVector)
			if err != nil {
				return err
			}
			results = append(results, Result{
				RunID:        runID,
				Run:          run,
				Position:     position + 1,
				Value:        s.direction * snap.MeanReward,
				Evaluations:  snap.NumPulls,
				Variance:     snap.Variance,
				ActionVector: snap.ActionVector,
				Params:       values,
			})
		}

		if s.opts.Verbose && len(best) > 0 {
			log.Printf("🏁 Run %d/%d (%s): best %.4f after %d evaluations",
				run+1, settings.Runs, runID, s.direction*best[0].MeanReward, best[0].NumPulls)
		}
	}

	s.results = results
	return nil
}

// evaluator turns a study objective into a minimized bandit objective
func (s *Study) evaluator(objective Objective, space *params.Space) bandit.Objective {
	seeded, useSeed := objective.(SeededObjective)
	useSeed = useSeed && s.seeded

	return bandit.ObjectiveFunc(func(actionVector []int) (float64, error) {
		values, err := space.Decode(actionVector)
		if err != nil {
			return 0, err
		}

		var value float64
		if useSeed {
			value, err = seeded.EvaluateSeeded(values, s.rng.Uint64())
		} else {
			value, err = objective.Evaluate(values)
		}
		if err != nil {
			return 0, err
		}
		return s.direction * value, nil
	})
}

// nextSeed draws a non-zero run seed, zero meaning random to the optimizer
func (s *Study) nextSeed() uint64 {
	for {
		if seed := s.rng.Uint64(); seed != 0 {
			return seed
		}
	}
}

// Results returns all stored results ranked by UCB, best first
func (s *Study) Results() ([]Result, error) {
	if len(s.results) == 0 {
		return nil, ErrNoResults
	}
	return rankByUCB(s.results, s.direction), nil
}

// BestResult returns the result ranked first
func (s *Study) BestResult() (Result, error) {
	ranked, err := s.Results()
	if err != nil {
		return Result{}, err
	}
	return ranked[0], nil
}

// BestValue returns the value of the best ranked result
func (s *Study) BestValue() (float64, error) {
	best, err := s.BestResult()
	if err != nil {
		return 0, err
	}
	return best.Value, nil
}

// BestParams returns the parameters of the best ranked result
func (s *Study) BestParams() (Values, error) {
	best, err := s.BestResult()
	if err != nil {
		return nil, err
	}
	return best.Params, nil
}

// MeanValue averages the value of every stored result
func (s *Study) MeanValue() (float64, error) {
	if len(s.results) == 0 {
		return 0, ErrNoResults
	}
	values := make([]float64, len(s.results))
	for i, r := range s.results {
		values[i] = r.Value
	}
	return stat.Mean(values, nil), nil
}
