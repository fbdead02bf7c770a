package model

// Reward is what the winning player side earns from a battle.
type Reward struct {
	Experience int      `json:"experience"`
	Gold       int      `json:"gold"`
	Items      []string `json:"items,omitempty"`
}

// IsZero reports whether the reward carries nothing.
func (r Reward) IsZero() bool {
	return r.Experience == 0 && r.Gold == 0 && len(r.Items) == 0
}
