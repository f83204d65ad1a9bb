package benchmarks

import (
	"errors"
	"testing"

	"github.com/evobandits/evobandits-go/pkg/bandit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"
)

func TestRosenbrock(t *testing.T) {
	assert.Equal(t, 0.0, Rosenbrock([]int{1, 1, 1, 1}))
	assert.Equal(t, 1.0, Rosenbrock([]int{0, 0}))
	assert.Equal(t, 0.0, Rosenbrock([]int{5}))
	assert.Equal(t, 401.0, Rosenbrock([]int{2, 2}))
}

func TestSphere(t *testing.T) {
	assert.Equal(t, 0.0, Sphere([]int{0, 0}))
	assert.Equal(t, 14.0, Sphere([]int{1, -2, 3}))
}

func TestNoisy(t *testing.T) {
	obj := Noisy(Deterministic(Sphere), 2.0, 99)

	samples := make([]float64, 5000)
	for i := range samples {
		v, err := obj.Evaluate([]int{3})
		require.NoError(t, err)
		samples[i] = v
	}

	assert.InDelta(t, 9.0, stat.Mean(samples, nil), 0.15)
	assert.InDelta(t, 2.0, stat.StdDev(samples, nil), 0.15)

	again := Noisy(Deterministic(Sphere), 2.0, 99)
	v, err := again.Evaluate([]int{3})
	require.NoError(t, err)
	assert.Equal(t, samples[0], v, "same seed, same noise")
}

func TestNoisy_PropagatesErrors(t *testing.T) {
	boom := errors.New("boom")
	obj := Noisy(bandit.ObjectiveFunc(func([]int) (float64, error) { return 0, boom }), 1, 1)

	_, err := obj.Evaluate([]int{1})
	assert.ErrorIs(t, err, boom)
}

func TestLookup(t *testing.T) {
	f, err := Lookup("rosenbrock")
	require.NoError(t, err)
	assert.Equal(t, 0.0, f([]int{1, 1}))

	_, err = Lookup("himmelblau")
	assert.Error(t, err)
	assert.Equal(t, []string{"rosenbrock", "sphere"}, Names())
}
