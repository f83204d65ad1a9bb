package params

import (
	"fmt"

	"github.com/evobandits/evobandits-go/pkg/optimization"
)

// ReservedSeedName may not be used as a parameter name; seeded objectives
// receive their evaluation seed under this name.
const ReservedSeedName = "seed"

type namedParam struct {
	name  string
	param Param
}

// Space is an ordered set of named parameters
type Space struct {
	params []namedParam
	names  map[string]struct{}
}

// NewSpace creates an empty parameter space
func NewSpace() *Space {
	return &Space{names: make(map[string]struct{})}
}

// Add appends a parameter. Names must be unique, non-empty and not "seed".
func (s *Space) Add(name string, p Param) error {
	if name == "" {
		return fmt.Errorf("%w: parameter name must not be empty", ErrInvalidParam)
	}
	if name == ReservedSeedName {
		return fmt.Errorf("%w: a parameter named %q conflicts with the study seed, please rename it", ErrInvalidParam, name)
	}
	if _, exists := s.names[name]; exists {
		return fmt.Errorf("%w: duplicate parameter %q", ErrInvalidParam, name)
	}
	if p == nil {
		return fmt.Errorf("%w: parameter %q is nil", ErrInvalidParam, name)
	}
	s.names[name] = struct{}{}
	s.params = append(s.params, namedParam{name: name, param: p})
	return nil
}

// MustAdd is Add for statically known spaces; it panics on error
func (s *Space) MustAdd(name string, p Param) *Space {
	if err := s.Add(name, p); err != nil {
		panic(err)
	}
	return s
}

// Names returns the parameter names in order
func (s *Space) Names() []string {
	out := make([]string, len(s.params))
	for i, np := range s.params {
		out[i] = np.name
	}
	return out
}

// Len returns the number of parameters
func (s *Space) Len() int {
	return len(s.params)
}

// Bounds concatenates the bounds of all parameters
func (s *Space) Bounds() optimization.Bounds {
	var out optimization.Bounds
	for _, np := range s.params {
		out = append(out, np.param.Bounds()...)
	}
	return out
}

// Decode maps an action vector onto parameter values
func (s *Space) Decode(actionVector []int) (map[string]interface{}, error) {
	if want := s.Bounds().Dimension(); len(actionVector) != want {
		return nil, fmt.Errorf("%w: action vector has %d coordinates, space needs %d", ErrInvalidParam, len(actionVector), want)
	}

	out := make(map[string]interface{}, len(s.params))
	idx := 0
	for _, np := range s.params {
		size := np.param.Size()
		actions := actionVector[idx : idx+size]
		if bounds := np.param.Bounds(); !bounds.Contains(actions) {
			return nil, fmt.Errorf("%w: %q value %v outside %v", ErrInvalidParam, np.name, actions, bounds)
		}
		out[np.name] = np.param.Decode(actions)
		idx += size
	}
	return out, nil
}
