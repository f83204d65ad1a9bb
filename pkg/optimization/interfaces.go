package optimization

import (
	"github.com/evobandits/evobandits-go/pkg/bandit"
)

// Package optimization provides the genetic multi-armed bandit optimizer for integer search spaces

// Evolver produces and transforms candidate populations.
// Every call derives its randomness from the seed it is given.
type Evolver interface {
	GeneratePopulation(seed uint64) []*bandit.Arm
	Crossover(seed uint64, population []*bandit.Arm) []*bandit.Arm
	Mutate(seed uint64, population []*bandit.Arm) []*bandit.Arm
}

// Ranker orders arms by their current mean reward, best first
type Ranker interface {
	Insert(arm *bandit.Arm)
	Update(arm *bandit.Arm, previousMean float64, previousPulls int)
	Best(n int) []*bandit.Arm
}

// Defaults of the genetic multi-armed bandit
const (
	PopulationSizeDefault = 20
	MutationRateDefault   = 0.25
	CrossoverRateDefault  = 1.0
	MutationSpanDefault   = 0.1

	ProgressReportInterval = 25 // generations between progress lines
)

// Options holds the configuration of the genetic algorithm
type Options struct {
	PopulationSize int
	MutationRate   float64
	CrossoverRate  float64
	MutationSpan   float64

	// Seed drives every random draw of a run. Zero picks a random seed.
	Seed uint64
	// Verbose enables progress logging
	Verbose bool
}

// DefaultOptions returns the default configuration
func DefaultOptions() Options {
	return Options{
		PopulationSize: PopulationSizeDefault,
		MutationRate:   MutationRateDefault,
		CrossoverRate:  CrossoverRateDefault,
		MutationSpan:   MutationSpanDefault,
	}
}

// WithPopulationSize returns a copy with the population size set
func (o Options) WithPopulationSize(size int) Options {
	o.PopulationSize = size
	return o
}

// WithMutationRate returns a copy with the mutation rate set
func (o Options) WithMutationRate(rate float64) Options {
	o.MutationRate = rate
	return o
}

// WithCrossoverRate returns a copy with the crossover rate set
func (o Options) WithCrossoverRate(rate float64) Options {
	o.CrossoverRate = rate
	return o
}

// WithMutationSpan returns a copy with the mutation span set
func (o Options) WithMutationSpan(span float64) Options {
	o.MutationSpan = span
	return o
}

// WithSeed returns a copy with the seed set
func (o Options) WithSeed(seed uint64) Options {
	o.Seed = seed
	return o
}
