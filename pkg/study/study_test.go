package study

import (
	"context"
	"errors"
	"testing"

	"github.com/evobandits/evobandits-go/pkg/benchmarks"
	"github.com/evobandits/evobandits-go/pkg/optimization"
	"github.com/evobandits/evobandits-go/pkg/params"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedPtr(v uint64) *uint64 { return &v }

func sphereSpace(t *testing.T) *params.Space {
	t.Helper()
	x, err := params.SuggestInt(-10, 10, 2, 1)
	require.NoError(t, err)
	space := params.NewSpace()
	require.NoError(t, space.Add("x", x))
	return space
}

func sphereObjective(sign float64) ObjectiveFunc {
	return func(values Values) (float64, error) {
		return sign * benchmarks.Sphere(values["x"].([]int)), nil
	}
}

func testOptions() optimization.Options {
	return optimization.DefaultOptions().WithPopulationSize(10)
}

func TestStudy_NewWithSeed(t *testing.T) {
	s := New(seedPtr(42), testOptions())
	assert.True(t, s.Seeded())
	assert.Equal(t, uint64(42), s.Seed())

	s = New(nil, testOptions())
	assert.False(t, s.Seeded())
}

func TestStudy_OptimizeMinimize(t *testing.T) {
	s := New(seedPtr(42), testOptions())
	require.NoError(t, s.Optimize(context.Background(), sphereObjective(1), sphereSpace(t), 1500, DefaultSettings()))

	best, err := s.BestValue()
	require.NoError(t, err)
	assert.LessOrEqual(t, best, 2.0)

	bestParams, err := s.BestParams()
	require.NoError(t, err)
	assert.Len(t, bestParams["x"], 2)
}

func TestStudy_OptimizeMaximize(t *testing.T) {
	s := New(seedPtr(7), testOptions())
	settings := DefaultSettings()
	settings.Maximize = true
	require.NoError(t, s.Optimize(context.Background(), sphereObjective(-1), sphereSpace(t), 1500, settings))

	best, err := s.BestValue()
	require.NoError(t, err)
	assert.LessOrEqual(t, best, 0.0, "values are reported in the objective's own sign")
	assert.GreaterOrEqual(t, best, -2.0)
}

func TestStudy_MultipleRuns(t *testing.T) {
	s := New(seedPtr(3), testOptions())
	settings := Settings{TopK: 2, Runs: 3}
	require.NoError(t, s.Optimize(context.Background(), sphereObjective(1), sphereSpace(t), 200, settings))

	results, err := s.Results()
	require.NoError(t, err)
	require.Len(t, results, 6)

	runIDs := map[string]int{}
	for i, r := range results {
		assert.Equal(t, i+1, r.UCBRank)
		assert.Contains(t, []int{1, 2}, r.Position)
		assert.Positive(t, r.Evaluations)
		assert.Len(t, r.ActionVector, 2)
		runIDs[r.RunID]++
	}
	assert.Len(t, runIDs, 3)
	for _, n := range runIDs {
		assert.Equal(t, 2, n)
	}
}

func TestStudy_Reproducible(t *testing.T) {
	runOnce := func() []Result {
		s := New(seedPtr(99), testOptions())
		noisy := benchmarks.Noisy(benchmarks.Deterministic(benchmarks.Sphere), 1.0, 5)
		objective := ObjectiveFunc(func(values Values) (float64, error) {
			return noisy.Evaluate(values["x"].([]int))
		})
		require.NoError(t, s.Optimize(context.Background(), objective, sphereSpace(t), 300, Settings{TopK: 3, Runs: 2}))
		results, err := s.Results()
		require.NoError(t, err)
		return results
	}

	a, b := runOnce(), runOnce()
	require.Equal(t, len(a), len(b))
	for i := range a {
		assert.Equal(t, a[i].ActionVector, b[i].ActionVector)
		assert.Equal(t, a[i].Value, b[i].Value)
		assert.Equal(t, a[i].Evaluations, b[i].Evaluations)
		assert.NotEqual(t, a[i].RunID, b[i].RunID)
	}
}

type recordingObjective struct {
	seeds    []uint64
	unseeded int
}

func (r *recordingObjective) Evaluate(values Values) (float64, error) {
	r.unseeded++
	return benchmarks.Sphere(values["x"].([]int)), nil
}

func (r *recordingObjective) EvaluateSeeded(values Values, seed uint64) (float64, error) {
	r.seeds = append(r.seeds, seed)
	return benchmarks.Sphere(values["x"].([]int)), nil
}

func TestStudy_SeededObjective(t *testing.T) {
	first := &recordingObjective{}
	require.NoError(t, New(seedPtr(11), testOptions()).Optimize(context.Background(), first, sphereSpace(t), 100, DefaultSettings()))
	assert.Len(t, first.seeds, 100)
	assert.Zero(t, first.unseeded)

	second := &recordingObjective{}
	require.NoError(t, New(seedPtr(11), testOptions()).Optimize(context.Background(), second, sphereSpace(t), 100, DefaultSettings()))
	assert.Equal(t, first.seeds, second.seeds)

	unseeded := &recordingObjective{}
	require.NoError(t, New(nil, testOptions()).Optimize(context.Background(), unseeded, sphereSpace(t), 100, DefaultSettings()))
	assert.Empty(t, unseeded.seeds)
	assert.Equal(t, 100, unseeded.unseeded)
}

func TestStudy_InvalidInput(t *testing.T) {
	ctx := context.Background()
	s := New(seedPtr(1), testOptions())

	err := s.Optimize(ctx, sphereObjective(1), sphereSpace(t), 100, Settings{TopK: 1, Runs: 0})
	assert.ErrorIs(t, err, ErrInvalidSettings)

	err = s.Optimize(ctx, sphereObjective(1), sphereSpace(t), 100, Settings{TopK: 0, Runs: 1})
	assert.ErrorIs(t, err, ErrInvalidSettings)

	err = s.Optimize(ctx, nil, sphereSpace(t), 100, DefaultSettings())
	assert.ErrorIs(t, err, ErrInvalidSettings)

	err = s.Optimize(ctx, sphereObjective(1), params.NewSpace(), 100, DefaultSettings())
	assert.ErrorIs(t, err, params.ErrInvalidParam)

	err = s.Optimize(ctx, sphereObjective(1), sphereSpace(t), 5, DefaultSettings())
	assert.ErrorIs(t, err, optimization.ErrBudgetTooSmall)

	_, err = s.Results()
	assert.ErrorIs(t, err, ErrNoResults)
	_, err = s.MeanValue()
	assert.ErrorIs(t, err, ErrNoResults)
}

func TestStudy_ObjectiveError(t *testing.T) {
	boom := errors.New("simulation crashed")
	objective := ObjectiveFunc(func(Values) (float64, error) { return 0, boom })

	err := New(seedPtr(1), testOptions()).Optimize(context.Background(), objective, sphereSpace(t), 100, DefaultSettings())
	assert.ErrorIs(t, err, boom)
}

func TestStudy_ResultProperties(t *testing.T) {
	results := []Result{
		{Value: 1.0, Evaluations: 10, Params: Values{"number": []int{1, 1}}},
		{Value: 2.0, Evaluations: 10, Params: Values{"number": []int{2, 2}}},
		{Value: 3.0, Evaluations: 10, Params: Values{"number": []int{3, 3}}},
	}

	tests := []struct {
		name       string
		direction  float64
		bestParams []int
		bestValue  float64
	}{
		{"minimize", 1, []int{1, 1}, 1.0},
		{"maximize", -1, []int{3, 3}, 3.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(seedPtr(42), testOptions())
			s.direction = tt.direction
			s.results = results

			bestParams, err := s.BestParams()
			require.NoError(t, err)
			assert.Equal(t, tt.bestParams, bestParams["number"])

			best, err := s.BestValue()
			require.NoError(t, err)
			assert.Equal(t, tt.bestValue, best)

			mean, err := s.MeanValue()
			require.NoError(t, err)
			assert.InDelta(t, 2.0, mean, 1e-12)
		})
	}
}

func TestRankByUCB_PenalizesFewEvaluations(t *testing.T) {
	results := []Result{
		{Value: 1.0, Evaluations: 1},
		{Value: 1.1, Evaluations: 100},
	}

	ranked := rankByUCB(results, 1)
	require.Len(t, ranked, 2)
	assert.Equal(t, 1.1, ranked[0].Value, "a barely sampled arm is not trusted")
	assert.Equal(t, 1, ranked[0].UCBRank)
	assert.Equal(t, 2, ranked[1].UCBRank)
	assert.Zero(t, results[0].UCBRank, "input is left untouched")
}

func TestRankByUCB_EqualValues(t *testing.T) {
	results := []Result{
		{Value: 5.0, Evaluations: 4, Run: 0},
		{Value: 5.0, Evaluations: 4, Run: 1},
	}

	ranked := rankByUCB(results, 1)
	assert.Equal(t, 0, ranked[0].Run)
	assert.Equal(t, 1, ranked[1].Run)
	assert.Nil(t, rankByUCB(nil, 1))
}
