package config

import "fmt"

// Battle holds the tunable rules of the battle engine.
type Battle struct {
	GaugeFillRate       float64 `yaml:"gauge_fill_rate"`        // gauge gained per tick per point of attack speed
	MaxTurns            int     `yaml:"max_turns"`              // draw after this many turns
	MPRegenFraction     float64 `yaml:"mp_regen_fraction"`      // share of max MP restored at turn start
	ElementalOnCritOnly bool    `yaml:"elemental_on_crit_only"` // type chart applies to crits only
	SkillGrowthFactor   float64 `yaml:"skill_growth_factor"`
	NormalHealFraction  float64 `yaml:"normal_heal_fraction"` // share of target max HP restored by NORMAL_HEAL

	RewardExpPerRating  int `yaml:"reward_exp_per_rating"`
	RewardGoldPerRating int `yaml:"reward_gold_per_rating"`
}

// DefaultBattle returns the standard rule set.
func DefaultBattle() Battle {
	return Battle{
		GaugeFillRate:       0.07,
		MaxTurns:            5000,
		MPRegenFraction:     0.1,
		ElementalOnCritOnly: true,
		SkillGrowthFactor:   1.25,
		NormalHealFraction:  0.2,
		RewardExpPerRating:  100,
		RewardGoldPerRating: 250,
	}
}

// Validate rejects rule sets that would stall or break a battle.
func (b Battle) Validate() error {
	if b.GaugeFillRate <= 0 {
		return fmt.Errorf("gauge_fill_rate must be positive, got %v", b.GaugeFillRate)
	}
	if b.MaxTurns <= 0 {
		return fmt.Errorf("max_turns must be positive, got %d", b.MaxTurns)
	}
	if b.MPRegenFraction < 0 || b.MPRegenFraction > 1 {
		return fmt.Errorf("mp_regen_fraction must be in [0, 1], got %v", b.MPRegenFraction)
	}
	if b.SkillGrowthFactor < 1 {
		return fmt.Errorf("skill_growth_factor must be at least 1, got %v", b.SkillGrowthFactor)
	}
	if b.NormalHealFraction < 0 {
		return fmt.Errorf("normal_heal_fraction must not be negative, got %v", b.NormalHealFraction)
	}
	return nil
}
