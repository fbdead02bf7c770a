package battle

import (
	"context"
	"errors"
	"fmt"

	"github.com/udisondev/legendarena/internal/game/combat"
	"github.com/udisondev/legendarena/internal/game/skill"
	"github.com/udisondev/legendarena/internal/model"
)

// Action is what a creature does with its turn.
type Action string

const (
	ActionNormalAttack Action = "NORMAL_ATTACK"
	ActionNormalHeal   Action = "NORMAL_HEAL"
	ActionUseSkill     Action = "USE_SKILL"
)

var (
	ErrUnknownAction = errors.New("unknown action")
	ErrNotInBattle   = errors.New("creature is not in this battle")
	ErrActorCannot   = errors.New("actor cannot act")
	ErrNotReady      = errors.New("actor's attack gauge is not full")
	ErrBadTarget     = errors.New("invalid target")
	ErrBattleOver    = errors.New("battle is over")
)

// Decision is a controller's choice for one action.
type Decision struct {
	Action Action
	Target *model.Creature
	Skill  *model.Skill
}

// ExecuteAction performs action for actor, whose gauge must be full. It
// reports success; on failure nothing was changed and the error says why.
// A successful action consumes the actor's gauge, gives the creatures it hit
// their counterattack rolls and ends the battle if a side was wiped out.
func (b *Battle) ExecuteAction(actor, target *model.Creature, action Action, s *model.Skill) (bool, error) {
	if !b.InProgress() {
		return false, ErrBattleOver
	}
	if _, _, ok := b.sides(actor); !ok {
		return false, ErrNotInBattle
	}
	if !actor.IsReady() {
		return false, ErrNotReady
	}

	victims, err := b.execute(actor, Decision{Action: action, Target: target, Skill: s})
	if err != nil {
		return false, err
	}
	b.counterattacks(actor, victims)
	b.checkOutcome(context.Background(), actor)
	return true, nil
}

// execute returns the enemies the action hit, for counterattack rolls.
func (b *Battle) execute(actor *model.Creature, d Decision) ([]*model.Creature, error) {
	allies, enemies, ok := b.sides(actor)
	if !ok {
		return nil, ErrNotInBattle
	}
	if !actor.IsAlive() || !actor.Can(model.CapMove) {
		return nil, ErrActorCannot
	}

	var victims []*model.Creature
	switch d.Action {
	case ActionNormalAttack:
		if d.Target == nil || !enemies.Contains(d.Target) {
			return nil, fmt.Errorf("%w: normal attack needs an enemy", ErrBadTarget)
		}
		if !d.Target.IsAlive() {
			return nil, fmt.Errorf("%w: target is dead", ErrBadTarget)
		}
		b.res.Emit(combat.Event{Kind: combat.EventSkill, Actor: actor.Name(), Target: d.Target.Name(), Message: string(ActionNormalAttack)})
		b.res.Hit(actor, d.Target, model.NormalAttackMultiplier, combat.Flags{})
		b.res.PassiveCascade(actor, allies.Alive(), []*model.Creature{d.Target})
		victims = []*model.Creature{d.Target}

	case ActionNormalHeal:
		if d.Target == nil || !allies.Contains(d.Target) {
			return nil, fmt.Errorf("%w: normal heal needs an ally", ErrBadTarget)
		}
		if !d.Target.IsAlive() {
			return nil, fmt.Errorf("%w: target is dead", ErrBadTarget)
		}
		b.res.Emit(combat.Event{Kind: combat.EventSkill, Actor: actor.Name(), Target: d.Target.Name(), Message: string(ActionNormalHeal)})
		b.res.Heal(actor, d.Target, d.Target.MaxHP()*b.cfg.NormalHealFraction)

	case ActionUseSkill:
		res, err := b.caster.Use(actor, d.Target, d.Skill, allies, enemies)
		if err != nil {
			return nil, err
		}
		if skill.TargetsEnemies(d.Skill.Active.Type) {
			victims = res.Targets
		}

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, d.Action)
	}

	actor.ResetAttackGauge()
	return victims, nil
}
