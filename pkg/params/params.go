package params

import (
	"errors"
	"fmt"

	"github.com/evobandits/evobandits-go/pkg/optimization"
)

// Package params maps named, typed parameters onto the integer search space

var ErrInvalidParam = errors.New("invalid parameter")

// Param describes how one named parameter is encoded in the action vector
type Param interface {
	// Bounds returns one bound per encoded coordinate
	Bounds() optimization.Bounds
	// Size returns the number of coordinates the parameter occupies
	Size() int
	// Decode turns the parameter's slice of the action vector into its value
	Decode(actions []int) interface{}
}

// IntParam is an integer (or vector of integers) in [Low, High] on a Step grid
type IntParam struct {
	Low  int
	High int
	Len  int
	Step int
}

// SuggestInt validates the arguments and creates an IntParam
func SuggestInt(low, high, size, step int) (*IntParam, error) {
	if high <= low {
		return nil, fmt.Errorf("%w: high must be larger than low, got low=%d high=%d", ErrInvalidParam, low, high)
	}
	if size < 1 {
		return nil, fmt.Errorf("%w: size must be positive, got %d", ErrInvalidParam, size)
	}
	if step < 1 {
		return nil, fmt.Errorf("%w: step must be positive, got %d", ErrInvalidParam, step)
	}
	return &IntParam{Low: low, High: high, Len: size, Step: step}, nil
}

// Bounds encodes the value directly when Step is 1, otherwise as a grid index
func (p *IntParam) Bounds() optimization.Bounds {
	bound := optimization.Bound{Low: p.Low, High: p.High}
	if p.Step > 1 {
		span := p.High - p.Low
		steps := span / p.Step
		if span%p.Step != 0 {
			steps++
		}
		bound = optimization.Bound{Low: 0, High: steps}
	}

	out := make(optimization.Bounds, p.Len)
	for i := range out {
		out[i] = bound
	}
	return out
}

func (p *IntParam) Size() int { return p.Len }

// Decode returns an int for scalar params and []int otherwise.
// Grid values past High are capped at High.
func (p *IntParam) Decode(actions []int) interface{} {
	values := make([]int, len(actions))
	for i, a := range actions {
		if p.Step > 1 {
			values[i] = min(p.Low+a*p.Step, p.High)
		} else {
			values[i] = a
		}
	}
	if p.Len == 1 {
		return values[0]
	}
	return values
}

func (p *IntParam) String() string {
	return fmt.Sprintf("IntParam(low=%d, high=%d, size=%d, step=%d)", p.Low, p.High, p.Len, p.Step)
}

// CategoricalParam picks one of a fixed list of choices
type CategoricalParam struct {
	Choices []interface{}
}

// SuggestCategorical creates a CategoricalParam; choices must not be empty
func SuggestCategorical(choices ...interface{}) (*CategoricalParam, error) {
	if len(choices) == 0 {
		return nil, fmt.Errorf("%w: categorical param needs at least one choice", ErrInvalidParam)
	}
	c := make([]interface{}, len(choices))
	copy(c, choices)
	return &CategoricalParam{Choices: c}, nil
}

func (p *CategoricalParam) Bounds() optimization.Bounds {
	return optimization.Bounds{{Low: 0, High: len(p.Choices) - 1}}
}

func (p *CategoricalParam) Size() int { return 1 }

func (p *CategoricalParam) Decode(actions []int) interface{} {
	return p.Choices[actions[0]]
}

func (p *CategoricalParam) String() string {
	return fmt.Sprintf("CategoricalParam(choices=%v)", p.Choices)
}
