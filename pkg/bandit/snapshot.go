package bandit

// Snapshot is a read-only view of an arm's state
type Snapshot struct {
	ActionVector []int   `json:"action_vector"`
	MeanReward   float64 `json:"mean_reward"`
	NumPulls     int     `json:"num_pulls"`
	Variance     float64 `json:"variance"`
}

// Snapshot captures the current state of the arm
func (a *Arm) Snapshot() Snapshot {
	return Snapshot{
		ActionVector: a.Coordinates(),
		MeanReward:   a.MeanReward(),
		NumPulls:     a.Pulls(),
		Variance:     a.Variance(),
	}
}

// ToMap converts the snapshot into a generic map, mirroring the JSON field names
func (s Snapshot) ToMap() map[string]interface{} {
	return map[string]interface{}{
		"action_vector": s.ActionVector,
		"mean_reward":   s.MeanReward,
		"num_pulls":     s.NumPulls,
		"variance":      s.Variance,
	}
}
