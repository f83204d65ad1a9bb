package bandit

// ArmSet is an insertion-ordered set of arms keyed by coordinates
type ArmSet struct {
	index map[ArmKey]int
	arms  []*Arm
}

// NewArmSet creates an empty set with room for capacity arms
func NewArmSet(capacity int) *ArmSet {
	return &ArmSet{
		index: make(map[ArmKey]int, capacity),
		arms:  make([]*Arm, 0, capacity),
	}
}

// Add inserts the arm unless an arm with the same coordinates is present.
// It reports whether the arm was added.
func (s *ArmSet) Add(arm *Arm) bool {
	if _, exists := s.index[arm.Key()]; exists {
		return false
	}
	s.index[arm.Key()] = len(s.arms)
	s.arms = append(s.arms, arm)
	return true
}

// Contains reports whether an arm with the given key is present
func (s *ArmSet) Contains(key ArmKey) bool {
	_, exists := s.index[key]
	return exists
}

// Get returns the stored arm for key
func (s *ArmSet) Get(key ArmKey) (*Arm, bool) {
	i, exists := s.index[key]
	if !exists {
		return nil, false
	}
	return s.arms[i], true
}

// Len returns the number of arms
func (s *ArmSet) Len() int {
	return len(s.arms)
}

// Arms returns the arms in insertion order. The slice must not be modified.
func (s *ArmSet) Arms() []*Arm {
	return s.arms
}
