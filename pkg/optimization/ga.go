package optimization

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/evobandits/evobandits-go/pkg/bandit"
)

// GeneticAlgorithm generates, recombines and mutates populations of arms
// inside fixed integer bounds. It holds no mutable state, so a single value
// may serve any number of calls.
type GeneticAlgorithm struct {
	populationSize int
	mutationRate   float64
	crossoverRate  float64
	mutationSpan   float64
	bounds         Bounds
}

var _ Evolver = (*GeneticAlgorithm)(nil)

// NewGeneticAlgorithm validates opts and bounds and builds the engine
func NewGeneticAlgorithm(opts Options, bounds Bounds) (*GeneticAlgorithm, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if err := bounds.Validate(); err != nil {
		return nil, err
	}

	b := make(Bounds, len(bounds))
	copy(b, bounds)

	return &GeneticAlgorithm{
		populationSize: opts.PopulationSize,
		mutationRate:   opts.MutationRate,
		crossoverRate:  opts.CrossoverRate,
		mutationSpan:   opts.MutationSpan,
		bounds:         b,
	}, nil
}

// PopulationSize returns the configured population size
func (ga *GeneticAlgorithm) PopulationSize() int {
	return ga.populationSize
}

// Dimension returns the number of coordinates per arm
func (ga *GeneticAlgorithm) Dimension() int {
	return len(ga.bounds)
}

// Bounds returns a copy of the search space bounds
func (ga *GeneticAlgorithm) Bounds() Bounds {
	b := make(Bounds, len(ga.bounds))
	copy(b, ga.bounds)
	return b
}

// String implements fmt.Stringer
func (ga *GeneticAlgorithm) String() string {
	return fmt.Sprintf("GeneticAlgorithm(population=%d, mutation=%.2f, crossover=%.2f, span=%.2f, dim=%d)",
		ga.populationSize, ga.mutationRate, ga.crossoverRate, ga.mutationSpan, len(ga.bounds))
}

// GeneratePopulation samples populationSize distinct arms uniformly from the bounds.
// Duplicates are rejected and resampled, so the call never returns if the
// search space holds fewer points than the population size.
func (ga *GeneticAlgorithm) GeneratePopulation(seed uint64) []*bandit.Arm {
	rng := newRand(seed)
	individuals := bandit.NewArmSet(ga.populationSize)

	for individuals.Len() < ga.populationSize {
		candidate := make([]int, len(ga.bounds))
		for j, bound := range ga.bounds {
			candidate[j] = uniformInclusive(rng, bound.Low, bound.High)
		}
		individuals.Add(bandit.NewArm(candidate))
	}

	return individuals.Arms()
}

// Crossover recombines consecutive pairs with single-point crossover.
// A pair is recombined with probability crossoverRate when the space has more
// than one dimension; otherwise both parents are cloned through. A trailing
// unpaired arm of an odd-sized population is cloned through unchanged.
func (ga *GeneticAlgorithm) Crossover(seed uint64, population []*bandit.Arm) []*bandit.Arm {
	rng := newRand(seed)
	dim := len(ga.bounds)
	offspring := make([]*bandit.Arm, 0, len(population))

	for i := 0; i+1 < len(population); i += 2 {
		p1, p2 := population[i], population[i+1]

		if rng.Float64() < ga.crossoverRate && dim > 1 {
			locus := 1 + rng.IntN(dim-1)

			v1, v2 := p1.Coordinates(), p2.Coordinates()
			// full slice expressions force append to copy the prefix
			child1 := append(v1[:locus:locus], v2[locus:]...)
			child2 := append(v2[:locus:locus], v1[locus:]...)

			offspring = append(offspring, bandit.NewArm(child1), bandit.NewArm(child2))
		} else {
			offspring = append(offspring, p1.Clone(), p2.Clone())
		}
	}

	if len(population)%2 == 1 {
		offspring = append(offspring, population[len(population)-1].Clone())
	}

	return offspring
}

// Mutate perturbs every coordinate with probability mutationRate by a
// Gaussian step of standard deviation mutationSpan*(high-low), clamps it to
// the bounds and truncates toward zero. Arms whose result duplicates an
// earlier one in the same call are dropped, so the output may be shorter.
func (ga *GeneticAlgorithm) Mutate(seed uint64, population []*bandit.Arm) []*bandit.Arm {
	rng := newRand(seed)
	seen := bandit.NewArmSet(len(population))

	for _, individual := range population {
		coords := individual.Coordinates()

		for i, bound := range ga.bounds {
			if rng.Float64() < ga.mutationRate {
				sigma := ga.mutationSpan * (float64(bound.High) - float64(bound.Low))
				adjustment := rng.NormFloat64() * sigma

				coords[i] = clampToBound(float64(coords[i])+adjustment, bound)
			}
		}

		seen.Add(bandit.NewArm(coords))
	}

	return seen.Arms()
}

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

// uniformInclusive draws from [low, high] without overflowing on wide ranges
func uniformInclusive(rng *rand.Rand, low, high int) int {
	width := uint64(high) - uint64(low)
	var offset uint64
	if width == math.MaxUint64 {
		offset = rng.Uint64()
	} else {
		offset = rng.Uint64N(width + 1)
	}
	return int(uint64(low) + offset)
}

// clampToBound truncates value toward zero inside bound. Comparisons stay in
// float64 but the bounds themselves are returned as ints, since float64(High)
// may round past the int range.
func clampToBound(value float64, bound Bound) int {
	switch {
	case math.IsNaN(value):
		return bound.Low
	case value >= float64(bound.High):
		return bound.High
	case value <= float64(bound.Low):
		return bound.Low
	default:
		return int(value)
	}
}
