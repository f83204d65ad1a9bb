package optimization

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidOptions      = errors.New("invalid options")
	ErrInvalidBounds       = errors.New("invalid bounds")
	ErrBudgetTooSmall      = errors.New("budget too small")
	ErrInvalidTopK         = errors.New("invalid top k")
	ErrSearchSpaceTooSmall = errors.New("search space too small")
	ErrObjective           = errors.New("objective failed")
)

// Validate checks that all rates lie in [0, 1] and the population is positive
func (o Options) Validate() error {
	if o.PopulationSize <= 0 {
		return fmt.Errorf("%w: population_size must be positive, got %d", ErrInvalidOptions, o.PopulationSize)
	}
	if !inUnitInterval(o.MutationRate) {
		return fmt.Errorf("%w: mutation_rate must be between 0.0 and 1.0, got %v", ErrInvalidOptions, o.MutationRate)
	}
	if !inUnitInterval(o.CrossoverRate) {
		return fmt.Errorf("%w: crossover_rate must be between 0.0 and 1.0, got %v", ErrInvalidOptions, o.CrossoverRate)
	}
	if !inUnitInterval(o.MutationSpan) {
		return fmt.Errorf("%w: mutation_span must be between 0.0 and 1.0, got %v", ErrInvalidOptions, o.MutationSpan)
	}
	return nil
}

// NaN fails both comparisons
func inUnitInterval(v float64) bool {
	return v >= 0.0 && v <= 1.0
}
