package optimization

import (
	"context"
	"fmt"
	"log"
	"math/rand/v2"

	"github.com/evobandits/evobandits-go/internal/monitoring"
	"github.com/evobandits/evobandits-go/pkg/bandit"
	"github.com/evobandits/evobandits-go/pkg/ranking"
)

// GenerationReport summarizes the optimizer state after one generation
type GenerationReport struct {
	Generation  int
	Spent       int
	Budget      int
	Arms        int
	Best        bandit.Snapshot
	Worst       bandit.Snapshot // worst arm of the elite
	AverageMean float64
	ElitePulls  int
}

// ProgressFunc receives a report after every completed generation
type ProgressFunc func(GenerationReport)

// Optimizer runs the genetic multi-armed bandit: the genetic algorithm
// proposes arms, and every proposal that is already known is sampled again
// instead of being discarded, so promising arms accumulate evidence.
// Lower mean reward is better.
type Optimizer struct {
	opts     Options
	name     string
	progress ProgressFunc
}

// NewOptimizer validates opts and creates an optimizer
func NewOptimizer(opts Options) (*Optimizer, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Optimizer{opts: opts, name: "default"}, nil
}

// Options returns the optimizer configuration
func (o *Optimizer) Options() Options {
	return o.opts
}

// SetName sets the label used for metrics
func (o *Optimizer) SetName(name string) {
	o.name = name
}

// SetProgress installs a per-generation callback
func (o *Optimizer) SetProgress(fn ProgressFunc) {
	o.progress = fn
}

// Optimize spends exactly budget pulls of objective inside bounds and returns
// the topK arms with the lowest mean reward, best first.
func (o *Optimizer) Optimize(ctx context.Context, objective bandit.Objective, bounds Bounds, budget, topK int) ([]bandit.Snapshot, error) {
	ga, err := NewGeneticAlgorithm(o.opts, bounds)
	if err != nil {
		return nil, err
	}
	if budget <= o.opts.PopulationSize {
		return nil, fmt.Errorf("%w: budget %d must exceed population_size %d", ErrBudgetTooSmall, budget, o.opts.PopulationSize)
	}
	if topK < 1 {
		return nil, fmt.Errorf("%w: top_k must be at least 1, got %d", ErrInvalidTopK, topK)
	}
	if size := bounds.SolutionSize(); size < o.opts.PopulationSize {
		return nil, fmt.Errorf("%w: %d distinct solutions for population_size %d", ErrSearchSpaceTooSmall, size, o.opts.PopulationSize)
	}

	seed := o.opts.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}

	r := &run{
		name:      o.name,
		objective: objective,
		budget:    budget,
		arms:      bandit.NewArmSet(budget),
		ranking:   newArmRanking(),
		rng:       newRand(seed),
	}

	if o.opts.Verbose {
		log.Printf("🧬 Starting GMAB: %s, budget %d", ga, budget)
	}

	if err := r.initialize(ctx, ga); err != nil {
		return nil, err
	}

	generation := 0
	for r.spent < r.budget {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := r.evolve(ctx, ga, o.opts.PopulationSize); err != nil {
			return nil, err
		}
		generation++
		monitoring.RecordGeneration(o.name)

		report := r.report(generation, o.opts.PopulationSize)
		if o.progress != nil {
			o.progress(report)
		}
		if o.opts.Verbose && generation%ProgressReportInterval == 0 {
			log.Printf("📊 Gen %d: %d/%d pulls, %d arms, best %.4f (%d pulls), worst %.4f, avg %.4f, elite pulls %d",
				generation, report.Spent, report.Budget, report.Arms,
				report.Best.MeanReward, report.Best.NumPulls, report.Worst.MeanReward,
				report.AverageMean, report.ElitePulls)
		}
	}

	best := Population(r.ranking.Best(topK))
	if o.opts.Verbose && best.Size() > 0 {
		log.Printf("✅ GMAB → %.4f after %d generations", best[0].MeanReward(), generation)
	}
	return best.Snapshots(), nil
}

// run holds the mutable state of one Optimize call
type run struct {
	name      string
	objective bandit.Objective
	budget    int
	spent     int
	arms      *bandit.ArmSet
	ranking   *armRanking
	rng       *rand.Rand
}

func (r *run) initialize(ctx context.Context, ga *GeneticAlgorithm) error {
	for _, arm := range ga.GeneratePopulation(r.rng.Uint64()) {
		if err := ctx.Err(); err != nil {
			return err
		}
		r.register(arm)
		if err := r.pull(arm); err != nil {
			return err
		}
	}
	return nil
}

// evolve breeds the current elite and samples every offspring once
func (r *run) evolve(ctx context.Context, ga *GeneticAlgorithm, populationSize int) error {
	parents := r.ranking.Best(populationSize)

	crossoverSeed, mutationSeed := r.rng.Uint64(), r.rng.Uint64()
	children := ga.Crossover(crossoverSeed, parents)
	offspring := ga.Mutate(mutationSeed, children)
	monitoring.RecordDuplicatesDropped(r.name, len(children)-len(offspring))

	for _, child := range offspring {
		if r.spent >= r.budget {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		arm, known := r.arms.Get(child.Key())
		if !known {
			arm = child
			r.register(arm)
		}
		if err := r.pull(arm); err != nil {
			return err
		}
	}
	return nil
}

func (r *run) register(arm *bandit.Arm) {
	if r.arms.Add(arm) {
		monitoring.RecordArmCreated(r.name)
	}
}

// pull samples arm once and moves it to its new rank
func (r *run) pull(arm *bandit.Arm) error {
	previousMean, previousPulls := arm.MeanReward(), arm.Pulls()

	value, err := arm.Pull(r.objective)
	if err != nil {
		monitoring.RecordError("objective")
		return fmt.Errorf("%w for %v: %w", ErrObjective, arm.Coordinates(), err)
	}
	r.spent++

	r.ranking.Update(arm, previousMean, previousPulls)

	monitoring.RecordPull(r.name, value)
	monitoring.UpdateBudgetRemaining(r.name, r.budget-r.spent)
	if best := r.ranking.Best(1); len(best) > 0 {
		monitoring.UpdateBestMean(r.name, best[0].MeanReward())
	}
	return nil
}

func (r *run) report(generation, populationSize int) GenerationReport {
	elite := Population(r.ranking.Best(populationSize))
	report := GenerationReport{
		Generation:  generation,
		Spent:       r.spent,
		Budget:      r.budget,
		Arms:        r.arms.Len(),
		AverageMean: elite.AverageMean(),
		ElitePulls:  elite.TotalPulls(),
	}
	if elite.Size() > 0 {
		report.Best = elite.GetBest().Snapshot()
		report.Worst = elite.GetWorst().Snapshot()
	}
	return report
}

// armRanking keeps every pulled arm ordered by mean reward
type armRanking struct {
	m *ranking.SortedMultiMap[*bandit.Arm]
}

var _ Ranker = (*armRanking)(nil)

func newArmRanking() *armRanking {
	return &armRanking{m: ranking.NewSortedMultiMap[*bandit.Arm]()}
}

func (r *armRanking) Insert(arm *bandit.Arm) {
	r.m.Insert(ranking.FloatKey(arm.MeanReward()), arm)
}

// Update re-keys arm after a pull; arms that had no pulls are not ranked yet
func (r *armRanking) Update(arm *bandit.Arm, previousMean float64, previousPulls int) {
	if previousPulls > 0 {
		r.m.Delete(ranking.FloatKey(previousMean), arm)
	}
	r.Insert(arm)
}

func (r *armRanking) Best(n int) []*bandit.Arm {
	return r.m.Take(n)
}
