package combat

import (
	"fmt"
	"log/slog"

	"github.com/udisondev/legendarena/internal/game/dice"
	"github.com/udisondev/legendarena/internal/game/effect"
	"github.com/udisondev/legendarena/internal/model"
)

// MinResistChance is the floor of the effect resistance roll.
const MinResistChance = 0.15

// HitResult describes one resolved hit.
type HitResult struct {
	Damage    Damage
	Lost      float64 // HP the target actually lost
	Drained   float64 // HP the attacker recovered through life drain
	Reflected float64 // HP the attacker lost to reflect
	Killed    bool
}

// Resolver applies hits, effects and gauge shifts to creatures and reports
// every state change to its sink.
type Resolver struct {
	calc *Calculator
	rng  dice.Source
	sink Sink
}

// NewResolver creates a Resolver. sink may be nil.
func NewResolver(rng dice.Source, elementalOnCritOnly bool, sink Sink) *Resolver {
	if rng == nil {
		rng = dice.Default
	}
	if sink == nil {
		sink = func(Event) {}
	}
	return &Resolver{
		calc: NewCalculator(rng, elementalOnCritOnly),
		rng:  rng,
		sink: sink,
	}
}

// Emit forwards e to the sink.
func (r *Resolver) Emit(e Event) { r.sink(e) }

// Hit deals one hit from user to target: damage, death check, life drain
// and reflect. Life drain runs even when the hit was blocked.
func (r *Resolver) Hit(user, target *model.Creature, m model.DamageMultiplier, f Flags) HitResult {
	var res HitResult
	if !target.IsAlive() {
		return res
	}

	res.Damage = r.calc.CalculateRawDamage(user, target, m, f)
	wasAlive := target.IsAlive()
	res.Lost = target.TakeDamage(res.Damage.Amount)
	r.sink(Event{
		Kind:   EventDamage,
		Actor:  user.Name(),
		Target: target.Name(),
		Amount: res.Lost,
		Crit:   res.Damage.Crit,
	})
	if wasAlive && !target.IsAlive() {
		res.Killed = true
		r.sink(Event{Kind: EventDeath, Actor: user.Name(), Target: target.Name()})
	}

	if drain := user.Stat(model.StatLifeDrain); drain > 0 {
		res.Drained = user.Heal(res.Damage.Amount * drain)
		if res.Drained > 0 {
			r.sink(Event{Kind: EventLifeDrain, Actor: user.Name(), Target: target.Name(), Amount: res.Drained})
		}
	}

	if reflect := target.Stat(model.StatReflectedDamage); reflect > 0 && res.Damage.Amount > 0 &&
		user.IsAlive() && user.Can(model.CapReceiveDamage) {
		res.Reflected = user.TakeDamage(res.Damage.Amount * reflect)
		r.sink(Event{Kind: EventReflect, Actor: target.Name(), Target: user.Name(), Amount: res.Reflected})
		if !user.IsAlive() {
			r.sink(Event{Kind: EventDeath, Actor: target.Name(), Target: user.Name()})
		}
	}

	slog.Debug("attack resolved",
		"attacker", user.Name(),
		"target", target.Name(),
		"hit", res.Describe())
	return res
}

// ResistChance is the probability that target shrugs off a harmful effect from user.
func ResistChance(user, target *model.Creature) float64 {
	return max(target.Stat(model.StatResistance)-user.Stat(model.StatAccuracy), MinResistChance)
}

// Lands rolls the resistance check; the effect lands when the roll is at or
// above the resist chance.
func (r *Resolver) Lands(user, target *model.Creature) bool {
	return r.rng.Float64() >= ResistChance(user, target)
}

// ApplyHarmful rolls resistance and attaches the effect on success.
func (r *Resolver) ApplyHarmful(user, target *model.Creature, tpl model.EffectTemplate) bool {
	if !target.IsAlive() {
		return false
	}
	if !r.Lands(user, target) {
		r.sink(Event{Kind: EventEffectResist, Actor: user.Name(), Target: target.Name(), Message: string(tpl.Name)})
		return false
	}
	if effect.Apply(target, tpl) == nil {
		return false
	}
	r.sink(Event{Kind: EventEffectApplied, Actor: user.Name(), Target: target.Name(), Message: string(tpl.Name)})
	return true
}

// ApplyBeneficial attaches the effect to target. No roll.
func (r *Resolver) ApplyBeneficial(user, target *model.Creature, tpl model.EffectTemplate) bool {
	if effect.Apply(target, tpl) == nil {
		return false
	}
	r.sink(Event{Kind: EventEffectApplied, Actor: nameOf(user), Target: target.Name(), Message: string(tpl.Name)})
	return true
}

// GaugeUp raises an ally's attack gauge by amount, clamped.
func (r *Resolver) GaugeUp(user, target *model.Creature, amount float64) {
	if amount <= 0 || !target.IsAlive() {
		return
	}
	target.AdjustAttackGauge(amount)
	r.sink(Event{Kind: EventGaugeUp, Actor: nameOf(user), Target: target.Name(), Amount: amount})
}

// GaugeDown lowers an enemy's attack gauge by amount, gated by the resistance roll.
func (r *Resolver) GaugeDown(user, target *model.Creature, amount float64) bool {
	if amount <= 0 || !target.IsAlive() {
		return false
	}
	if !r.Lands(user, target) {
		r.sink(Event{Kind: EventEffectResist, Actor: user.Name(), Target: target.Name(), Message: "gauge down"})
		return false
	}
	target.AdjustAttackGauge(-amount)
	r.sink(Event{Kind: EventGaugeDown, Actor: user.Name(), Target: target.Name(), Amount: amount})
	return true
}

// Heal restores amount HP to target and reports what was actually healed.
func (r *Resolver) Heal(user, target *model.Creature, amount float64) float64 {
	healed := target.Heal(amount)
	r.sink(Event{Kind: EventHeal, Actor: nameOf(user), Target: target.Name(), Amount: healed})
	return healed
}

// PassiveCascade runs every passive skill user owns after it attacks:
// effects and gauge boosts to allies, effects and gauge cuts to the enemies hit.
func (r *Resolver) PassiveCascade(user *model.Creature, allies, enemies []*model.Creature) {
	if !user.Can(model.CapUsePassiveSkills) {
		return
	}
	for _, s := range user.SkillsOf(model.SkillPassive) {
		p := s.Passive
		for _, ally := range allies {
			if !ally.IsAlive() {
				continue
			}
			for _, tpl := range p.BeneficialEffectsToAllies {
				r.ApplyBeneficial(user, ally, tpl)
			}
			r.GaugeUp(user, ally, p.AllyAttackGaugeUp)
			if p.HealPercentToAllies > 0 {
				r.Heal(user, ally, ally.MaxHP()*p.HealPercentToAllies)
			}
		}
		for _, enemy := range enemies {
			if !enemy.IsAlive() {
				continue
			}
			for _, tpl := range p.HarmfulEffectsToEnemies {
				r.ApplyHarmful(user, enemy, tpl)
			}
			r.GaugeDown(user, enemy, p.EnemyAttackGaugeDown)
		}
	}
}

// Describe renders a hit for debug logs.
func (h HitResult) Describe() string {
	s := fmt.Sprintf("dmg=%.1f lost=%.1f", h.Damage.Amount, h.Lost)
	if h.Damage.Crit {
		s += " crit"
	}
	if h.Killed {
		s += " killed"
	}
	return s
}
