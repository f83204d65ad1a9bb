package bandit

import (
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Package bandit provides the per-candidate online statistics used by the optimizer

// Objective evaluates one noisy sample for an action vector.
// Implementations must not modify the slice they receive.
type Objective interface {
	Evaluate(actionVector []int) (float64, error)
}

// ObjectiveFunc adapts a plain function to the Objective interface
type ObjectiveFunc func(actionVector []int) (float64, error)

// Evaluate calls f(actionVector)
func (f ObjectiveFunc) Evaluate(actionVector []int) (float64, error) {
	return f(actionVector)
}

// ArmKey is the comparable identity of an arm, derived from its coordinates only
type ArmKey string

// KeyOf builds the ArmKey for a coordinate vector
func KeyOf(coords []int) ArmKey {
	var b strings.Builder
	buf := make([]byte, 0, 24)
	for i, c := range coords {
		if i > 0 {
			b.WriteByte(',')
		}
		buf = strconv.AppendInt(buf[:0], int64(c), 10)
		b.Write(buf)
	}
	return ArmKey(b.String())
}

// Arm is one point in the integer search space together with the running
// statistics of every sample drawn for it.
type Arm struct {
	coords  []int
	key     ArmKey
	pulls   int
	mean    float64
	corrSSQ float64
}

// NewArm creates an arm with zero statistics; coords are copied
func NewArm(coords []int) *Arm {
	c := make([]int, len(coords))
	copy(c, coords)
	return &Arm{
		coords: c,
		key:    KeyOf(c),
	}
}

// Pull evaluates the objective once and folds the sample into the statistics
// using Welford's recurrence. The raw sample is returned. If the objective
// fails, the arm is left untouched and the error is returned as is.
func (a *Arm) Pull(objective Objective) (float64, error) {
	g, err := objective.Evaluate(a.Coordinates())
	if err != nil {
		return 0, err
	}

	a.pulls++

	delta := g - a.mean
	a.mean += delta / float64(a.pulls)

	// second delta uses the updated mean
	delta2 := g - a.mean
	a.corrSSQ += delta * delta2

	return g, nil
}

// Evaluate runs the objective for this arm without recording the sample
func (a *Arm) Evaluate(objective Objective) (float64, error) {
	return objective.Evaluate(a.Coordinates())
}

// Pulls returns how many samples have been folded into the arm
func (a *Arm) Pulls() int {
	return a.pulls
}

// MeanReward returns the sample mean, or 0 for an arm that was never pulled
func (a *Arm) MeanReward() float64 {
	if a.pulls == 0 {
		return 0.0
	}
	return a.mean
}

// Variance returns the sample variance, or 0 with fewer than two samples
func (a *Arm) Variance() float64 {
	if a.pulls <= 1 {
		return 0.0
	}
	return a.corrSSQ / float64(a.pulls-1)
}

// Coordinates returns a copy of the action vector
func (a *Arm) Coordinates() []int {
	c := make([]int, len(a.coords))
	copy(c, a.coords)
	return c
}

// Dimension returns the length of the action vector
func (a *Arm) Dimension() int {
	return len(a.coords)
}

// Coordinate returns the i-th component of the action vector
func (a *Arm) Coordinate(i int) int {
	return a.coords[i]
}

// Key returns the identity of the arm
func (a *Arm) Key() ArmKey {
	return a.key
}

// Hash returns a 64-bit hash of the coordinates. Statistics do not contribute.
func (a *Arm) Hash() uint64 {
	return xxhash.Sum64String(string(a.key))
}

// Equal reports whether both arms share the same coordinates
func (a *Arm) Equal(other *Arm) bool {
	if a == nil || other == nil {
		return a == other
	}
	return a.key == other.key
}

// Clone returns a deep copy whose statistics evolve independently
func (a *Arm) Clone() *Arm {
	c := make([]int, len(a.coords))
	copy(c, a.coords)
	return &Arm{
		coords:  c,
		key:     a.key,
		pulls:   a.pulls,
		mean:    a.mean,
		corrSSQ: a.corrSSQ,
	}
}

// String implements fmt.Stringer
func (a *Arm) String() string {
	return "Arm[" + string(a.key) + "]"
}
