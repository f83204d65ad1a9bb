package benchmarks

import (
	"fmt"
	"math/rand/v2"
	"sort"
	"sync"

	"github.com/evobandits/evobandits-go/pkg/bandit"
)

// Rosenbrock evaluates the Rosenbrock function; its minimum 0 lies at (1, ..., 1)
func Rosenbrock(x []int) float64 {
	sum := 0.0
	for i := 0; i+1 < len(x); i++ {
		a := float64(x[i+1]) - float64(x[i])*float64(x[i])
		b := 1 - float64(x[i])
		sum += 100*a*a + b*b
	}
	return sum
}

// Sphere evaluates the sum of squares; its minimum 0 lies at the origin
func Sphere(x []int) float64 {
	sum := 0.0
	for _, v := range x {
		sum += float64(v) * float64(v)
	}
	return sum
}

// Deterministic adapts a plain function that cannot fail
func Deterministic(f func([]int) float64) bandit.Objective {
	return bandit.ObjectiveFunc(func(x []int) (float64, error) {
		return f(x), nil
	})
}

// Noisy adds zero-mean Gaussian noise with standard deviation sigma to every
// sample of objective. The noise stream is seeded and safe for concurrent use.
func Noisy(objective bandit.Objective, sigma float64, seed uint64) bandit.Objective {
	var mu sync.Mutex
	rng := rand.New(rand.NewPCG(seed, seed))

	return bandit.ObjectiveFunc(func(x []int) (float64, error) {
		v, err := objective.Evaluate(x)
		if err != nil {
			return 0, err
		}
		mu.Lock()
		noise := rng.NormFloat64() * sigma
		mu.Unlock()
		return v + noise, nil
	})
}

var registry = map[string]func([]int) float64{
	"rosenbrock": Rosenbrock,
	"sphere":     Sphere,
}

// Lookup returns the named benchmark function
func Lookup(name string) (func([]int) float64, error) {
	f, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown benchmark %q (available: %v)", name, Names())
	}
	return f, nil
}

// Names lists the registered benchmarks
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
