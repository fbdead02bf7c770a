package combat

import (
	"github.com/udisondev/legendarena/internal/game/dice"
	"github.com/udisondev/legendarena/internal/model"
)

// Defense mitigation curve: factor = DefenseScale / (DefenseScale + DefenseWeight × defense).
const (
	DefenseScale  = 1e8
	DefenseWeight = 3.5
)

// Flags switch off parts of the mitigation pipeline.
type Flags struct {
	IgnoreDefense       bool
	IgnoreShield        bool
	IgnoreInvincibility bool
}

// Damage is the outcome of one damage calculation.
type Damage struct {
	Amount    float64
	Crit      bool
	Elemental float64 // multiplier that was applied, 1 if none
	Blocked   bool    // target could not receive damage
}

// Calculator computes damage between two creatures.
type Calculator struct {
	rng                 dice.Source
	elementalOnCritOnly bool
}

// NewCalculator creates a Calculator. With elementalOnCritOnly the type chart
// multiplier is applied to critical hits only.
func NewCalculator(rng dice.Source, elementalOnCritOnly bool) *Calculator {
	if rng == nil {
		rng = dice.Default
	}
	return &Calculator{rng: rng, elementalOnCritOnly: elementalOnCritOnly}
}

// BaseDamage is the weighted stat sum scaled by the HP-percent factors and the
// target's damage_received modifier. No mitigation, no crit.
func BaseDamage(user, target *model.Creature, m model.DamageMultiplier) float64 {
	sum := m.SelfMaxHP*user.MaxHP() +
		m.EnemyMaxHP*target.MaxHP() +
		m.SelfAttack*user.Attack() +
		m.EnemyAttack*target.Attack() +
		m.SelfDefense*user.Defense() +
		m.EnemyDefense*target.Defense() +
		m.SelfMaxMP*user.MaxMP() +
		m.EnemyMaxMP*target.MaxMP() +
		m.SelfAttackSpeed*user.AttackSpeed() +
		m.EnemyAttackSpeed*target.AttackSpeed()

	selfHP := user.HPPercent()
	sum *= 1 + selfHP*m.SelfCurrentHPPercent
	sum *= 1 + (1-selfHP)*m.SelfHPPercentLost
	sum *= 1 + target.HPPercent()*m.TargetCurrentHPPercent
	sum *= 1 + target.Stat(model.StatDamageReceived)/100

	return max(sum, 0)
}

// DamageReductionFactor returns the share of damage that passes defense,
// in (0, 1] for any non-negative defense.
func DamageReductionFactor(defense float64) float64 {
	if defense <= 0 {
		return 1
	}
	return DefenseScale / (DefenseScale + DefenseWeight*defense)
}

// CritChance is the user's crit rate minus the target's crit resist,
// floored at model.MinCritRate and capped at 1.
func CritChance(user, target *model.Creature) float64 {
	c := user.Stat(model.StatCritRate) - target.Stat(model.StatCritResist)
	return min(max(c, model.MinCritRate), model.MaxCritRate)
}

// CalculateRawDamage runs the full pipeline: base damage, defense, shield,
// invincibility, then the crit roll and elemental multiplier.
func (c *Calculator) CalculateRawDamage(user, target *model.Creature, m model.DamageMultiplier, f Flags) Damage {
	dmg := BaseDamage(user, target, m)

	if !f.IgnoreDefense {
		dmg *= DamageReductionFactor(target.Defense())
	}
	if shield := target.Stat(model.StatShield); shield > 0 && !f.IgnoreShield {
		dmg *= 1 - shield/100
	}
	if !target.Can(model.CapReceiveDamage) && !f.IgnoreInvincibility {
		return Damage{Elemental: model.NeutralMultiplier, Blocked: true}
	}

	elemental := model.ElementalMultiplier(user.Elements(), target.Elements())
	out := Damage{Elemental: model.NeutralMultiplier}
	if dice.Chance(c.rng, CritChance(user, target)) {
		out.Crit = true
		dmg *= user.Stat(model.StatCritDamage)
		dmg *= elemental
		out.Elemental = elemental
	} else if !c.elementalOnCritOnly {
		dmg *= elemental
		out.Elemental = elemental
	}
	out.Amount = dmg
	return out
}
