package ranking

import "math"

// FloatKey wraps a float64 score with a total order.
// NaN sorts before every other value and all NaNs are equal to each other,
// so the order never fails on degenerate scores.
type FloatKey float64

// Compare returns -1, 0 or +1
func (k FloatKey) Compare(other FloatKey) int {
	a, b := float64(k), float64(other)
	aNaN, bNaN := math.IsNaN(a), math.IsNaN(b)
	switch {
	case aNaN && bNaN:
		return 0
	case aNaN:
		return -1
	case bNaN:
		return 1
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Less reports whether k orders strictly before other
func (k FloatKey) Less(other FloatKey) bool {
	return k.Compare(other) < 0
}

// Float64 returns the wrapped value
func (k FloatKey) Float64() float64 {
	return float64(k)
}
