// Package ai holds automatic battle controllers.
package ai

import (
	"github.com/udisondev/legendarena/internal/game/battle"
	"github.com/udisondev/legendarena/internal/game/skill"
	"github.com/udisondev/legendarena/internal/model"
)

// Random picks normal attack, normal heal or a skill with equal odds.
// When no skill is ready it falls back to a normal attack.
type Random struct{}

var _ battle.Controller = Random{}

// Decide implements battle.Controller.
func (Random) Decide(b *battle.Battle, actor *model.Creature) battle.Decision {
	rng := b.Rand()
	allies := b.Allies(actor).Alive()
	enemies := b.Enemies(actor).Alive()

	switch rng.IntN(3) {
	case 1:
		return battle.Decision{Action: battle.ActionNormalHeal, Target: weakest(allies)}
	case 2:
		ready := skill.Ready(actor)
		if len(ready) == 0 {
			break
		}
		s := ready[rng.IntN(len(ready))]
		if skill.TargetsEnemies(s.Active.Type) {
			return battle.Decision{Action: battle.ActionUseSkill, Skill: s, Target: pick(rng.IntN, enemies)}
		}
		return battle.Decision{Action: battle.ActionUseSkill, Skill: s, Target: weakest(allies)}
	}
	return battle.Decision{Action: battle.ActionNormalAttack, Target: pick(rng.IntN, enemies)}
}

// Aggressive always uses the first ready attack skill on the weakest enemy,
// or a normal attack when none is ready.
type Aggressive struct{}

var _ battle.Controller = Aggressive{}

// Decide implements battle.Controller.
func (Aggressive) Decide(b *battle.Battle, actor *model.Creature) battle.Decision {
	target := weakest(b.Enemies(actor).Alive())
	if s := skill.FirstReadyAttack(actor); s != nil {
		return battle.Decision{Action: battle.ActionUseSkill, Skill: s, Target: target}
	}
	return battle.Decision{Action: battle.ActionNormalAttack, Target: target}
}

func pick(intN func(int) int, cs []*model.Creature) *model.Creature {
	if len(cs) == 0 {
		return nil
	}
	return cs[intN(len(cs))]
}

// weakest returns the creature with the lowest HP share, first one on ties.
func weakest(cs []*model.Creature) *model.Creature {
	var out *model.Creature
	for _, c := range cs {
		if out == nil || c.HPPercent() < out.HPPercent() {
			out = c
		}
	}
	return out
}
