package study

import (
	"cmp"
	"math"
	"slices"
)

// Result is one of the best arms of a single optimization run
type Result struct {
	RunID        string  `json:"run_id"`
	Run          int     `json:"run"`
	Position     int     `json:"position"`
	Value        float64 `json:"value"`
	Evaluations  int     `json:"n_evaluations"`
	Variance     float64 `json:"variance"`
	ActionVector []int   `json:"action_vector"`
	Params       Values  `json:"params"`
	UCBRank      int     `json:"ucb_rank"`
}

// zeroSpread replaces the normalization range when all values are equal
const zeroSpread = 1e-9

// rankByUCB orders results by an upper confidence bound on their value.
//
//	ucb = (value - min) / (max - min) + sqrt(2 ln(total) / n) * direction
//
// The exploration term penalizes results backed by few evaluations in both
// directions. Results are sorted ascending by direction*ucb and numbered from
// 1. The input slice is not modified.
func rankByUCB(results []Result, direction float64) []Result {
	if len(results) == 0 {
		return nil
	}

	total := 0
	low, high := math.Inf(1), math.Inf(-1)
	for _, r := range results {
		total += r.Evaluations
		low = math.Min(low, r.Value)
		high = math.Max(high, r.Value)
	}
	spread := high - low
	if spread == 0 {
		spread = zeroSpread
	}

	type scored struct {
		result Result
		ucb    float64
	}
	entries := make([]scored, len(results))
	for i, r := range results {
		penalty := math.Inf(1)
		if r.Evaluations > 0 {
			penalty = math.Sqrt(2 * math.Log(float64(total)) / float64(r.Evaluations))
		}
		entries[i] = scored{result: r, ucb: (r.Value-low)/spread + penalty*direction}
	}

	slices.SortStableFunc(entries, func(a, b scored) int {
		return cmp.Compare(direction*a.ucb, direction*b.ucb)
	})

	ranked := make([]Result, len(entries))
	for i, e := range entries {
		ranked[i] = e.result
		ranked[i].UCBRank = i + 1
	}
	return ranked
}
