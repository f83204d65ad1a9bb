package optimization

import (
	"fmt"
	"math"
)

// Bound is an inclusive integer range for one coordinate
type Bound struct {
	Low  int `json:"low"`
	High int `json:"high"`
}

// Bounds holds one Bound per dimension of the search space
type Bounds []Bound

// NewBounds builds bounds from parallel lower and upper vectors
func NewBounds(lower, upper []int) (Bounds, error) {
	if len(lower) != len(upper) {
		return nil, fmt.Errorf("%w: %d lower bounds but %d upper bounds", ErrInvalidBounds, len(lower), len(upper))
	}
	b := make(Bounds, len(lower))
	for i := range lower {
		b[i] = Bound{Low: lower[i], High: upper[i]}
	}
	return b, b.Validate()
}

// Validate requires at least one dimension and Low <= High everywhere
func (b Bounds) Validate() error {
	if len(b) == 0 {
		return fmt.Errorf("%w: at least one dimension is required", ErrInvalidBounds)
	}
	for i, bound := range b {
		if bound.Low > bound.High {
			return fmt.Errorf("%w: dimension %d has lower bound %d above upper bound %d", ErrInvalidBounds, i, bound.Low, bound.High)
		}
	}
	return nil
}

// Dimension returns the number of coordinates
func (b Bounds) Dimension() int {
	return len(b)
}

// Lower returns the lower bound vector
func (b Bounds) Lower() []int {
	out := make([]int, len(b))
	for i, bound := range b {
		out[i] = bound.Low
	}
	return out
}

// Upper returns the upper bound vector
func (b Bounds) Upper() []int {
	out := make([]int, len(b))
	for i, bound := range b {
		out[i] = bound.High
	}
	return out
}

// SolutionSize returns the number of distinct points in the space,
// saturating at math.MaxInt.
func (b Bounds) SolutionSize() int {
	size := uint64(1)
	for _, bound := range b {
		width := uint64(bound.High) - uint64(bound.Low)
		if width >= math.MaxInt {
			return math.MaxInt
		}
		width++
		if size > math.MaxInt/width {
			return math.MaxInt
		}
		size *= width
	}
	return int(size)
}

// Contains reports whether coords lie inside the bounds
func (b Bounds) Contains(coords []int) bool {
	if len(coords) != len(b) {
		return false
	}
	for i, c := range coords {
		if c < b[i].Low || c > b[i].High {
			return false
		}
	}
	return true
}
