package study

import "math/rand/v2"

// Values maps parameter names to decoded values
type Values = map[string]interface{}

// Objective scores one decoded parameter set. It may be stochastic.
type Objective interface {
	Evaluate(values Values) (float64, error)
}

// ObjectiveFunc adapts a plain function to Objective
type ObjectiveFunc func(values Values) (float64, error)

// Evaluate calls f
func (f ObjectiveFunc) Evaluate(values Values) (float64, error) {
	return f(values)
}

// SeededObjective is an objective that draws its noise from a caller-provided
// seed. A seeded Study passes a fresh seed from its own stream to every
// evaluation so whole studies are reproducible.
type SeededObjective interface {
	Objective
	EvaluateSeeded(values Values, seed uint64) (float64, error)
}

// SeededObjectiveFunc adapts a plain function to SeededObjective
type SeededObjectiveFunc func(values Values, seed uint64) (float64, error)

// Evaluate calls f with a random seed
func (f SeededObjectiveFunc) Evaluate(values Values) (float64, error) {
	return f(values, rand.Uint64())
}

// EvaluateSeeded calls f with seed
func (f SeededObjectiveFunc) EvaluateSeeded(values Values, seed uint64) (float64, error) {
	return f(values, seed)
}
