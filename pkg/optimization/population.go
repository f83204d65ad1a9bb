package optimization

import (
	"github.com/evobandits/evobandits-go/pkg/bandit"
	"github.com/evobandits/evobandits-go/pkg/ranking"
)

// Population is a collection of arms. Lower mean reward is better.
type Population []*bandit.Arm

// Size returns the number of arms in the population
func (p Population) Size() int {
	return len(p)
}

// GetBest returns the first arm with the lowest mean reward, NaN ranking lowest
func (p Population) GetBest() *bandit.Arm {
	if len(p) == 0 {
		return nil
	}

	best := p[0]
	for _, arm := range p[1:] {
		if meanKey(arm).Less(meanKey(best)) {
			best = arm
		}
	}
	return best
}

// GetWorst returns the last arm with the highest mean reward
func (p Population) GetWorst() *bandit.Arm {
	if len(p) == 0 {
		return nil
	}

	worst := p[0]
	for _, arm := range p[1:] {
		if !meanKey(arm).Less(meanKey(worst)) {
			worst = arm
		}
	}
	return worst
}

func meanKey(arm *bandit.Arm) ranking.FloatKey {
	return ranking.FloatKey(arm.MeanReward())
}

// AverageMean calculates the average mean reward of all arms
func (p Population) AverageMean() float64 {
	if len(p) == 0 {
		return 0.0
	}

	sum := 0.0
	for _, arm := range p {
		sum += arm.MeanReward()
	}
	return sum / float64(len(p))
}

// TotalPulls sums the pulls of every arm
func (p Population) TotalPulls() int {
	total := 0
	for _, arm := range p {
		total += arm.Pulls()
	}
	return total
}

// Snapshots captures the state of every arm in order
func (p Population) Snapshots() []bandit.Snapshot {
	out := make([]bandit.Snapshot, len(p))
	for i, arm := range p {
		out[i] = arm.Snapshot()
	}
	return out
}
