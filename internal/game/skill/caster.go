package skill

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/udisondev/legendarena/internal/game/combat"
	"github.com/udisondev/legendarena/internal/model"
)

var (
	ErrNotActive     = errors.New("skill is not an active skill")
	ErrNotOwned      = errors.New("skill is not owned by the user")
	ErrUserCannotAct = errors.New("user cannot act")
	ErrSilenced      = errors.New("user cannot use skills")
	ErrOnCooldown    = errors.New("skill on cooldown")
	ErrNotEnoughMP   = errors.New("not enough MP")
	ErrInvalidTarget = errors.New("invalid target")
	ErrTargetDead    = errors.New("target is dead")
	ErrSameTeam      = errors.New("allies and enemies are the same team")
)

// Result lists who a cast touched and, for attacks, how each hit went.
type Result struct {
	Targets []*model.Creature
	Hits    []combat.HitResult
}

// Caster validates and executes active skills.
type Caster struct {
	res *combat.Resolver
}

// NewCaster creates a Caster resolving hits and effects through res.
func NewCaster(res *combat.Resolver) *Caster {
	return &Caster{res: res}
}

// Use casts s from user. allies is the user's team, enemies the opposing one.
// target may be nil for AOE skills. Nothing is mutated unless every check passes.
func (c *Caster) Use(user, target *model.Creature, s *model.Skill, allies, enemies *model.Team) (Result, error) {
	if err := Check(user, s); err != nil {
		return Result{}, err
	}
	targets, err := resolveTargets(user, target, s.Active, allies, enemies)
	if err != nil {
		return Result{}, err
	}

	a := s.Active
	user.SpendMP(a.MPCost)
	a.Cooldown = a.MaxCooldown

	c.res.Emit(combat.Event{
		Kind:    combat.EventSkill,
		Actor:   user.Name(),
		Target:  targetName(target, a.AOE),
		Message: s.Name,
	})

	var out Result
	switch a.Type {
	case model.ActiveAttack:
		out = c.attack(user, targets, a, allies)
	case model.ActiveHeal:
		out = c.heal(user, targets, a)
	case model.ActiveAlliesEffect:
		out = c.buff(user, targets, a)
	case model.ActiveEnemiesEffect:
		out = c.debuff(user, targets, a)
	}

	slog.Debug("skill used",
		"user", user.Name(),
		"skill", s.Name,
		"type", a.Type,
		"targets", len(out.Targets),
		"mp", user.CurrentMP())

	return out, nil
}

// Check reports whether user may cast s right now, ignoring targets.
func Check(user *model.Creature, s *model.Skill) error {
	if s == nil || s.Kind != model.SkillActive || s.Active == nil {
		return ErrNotActive
	}
	if !slices.Contains(user.Skills(), s) {
		return ErrNotOwned
	}
	if !user.IsAlive() || !user.Can(model.CapMove) {
		return ErrUserCannotAct
	}
	if !user.Can(model.CapUseSkills) {
		return ErrSilenced
	}
	if s.Active.Cooldown > 0 {
		return fmt.Errorf("%w: %d turns left", ErrOnCooldown, s.Active.Cooldown)
	}
	if user.CurrentMP() < s.Active.MPCost {
		return fmt.Errorf("%w: need %.0f, have %.0f", ErrNotEnoughMP, s.Active.MPCost, user.CurrentMP())
	}
	return nil
}

// Ready returns the active skills user could cast now, in ownership order.
func Ready(user *model.Creature) []*model.Skill {
	var out []*model.Skill
	for _, s := range user.SkillsOf(model.SkillActive) {
		if Check(user, s) == nil {
			out = append(out, s)
		}
	}
	return out
}

// FirstReadyAttack returns the first castable ATTACK skill, or nil.
func FirstReadyAttack(user *model.Creature) *model.Skill {
	for _, s := range Ready(user) {
		if s.Active.Type == model.ActiveAttack {
			return s
		}
	}
	return nil
}

// TargetsEnemies reports whether the skill type aims at the opposing team.
func TargetsEnemies(t model.ActiveSkillType) bool {
	return t == model.ActiveAttack || t == model.ActiveEnemiesEffect
}

// Cooling returns the active skills of c that are on cooldown right now.
// Taken at the start of a turn, it excludes whatever c uses during that turn.
func Cooling(c *model.Creature) []*model.Skill {
	var out []*model.Skill
	for _, s := range c.SkillsOf(model.SkillActive) {
		if s.Active.Cooldown > 0 {
			out = append(out, s)
		}
	}
	return out
}

// TickCooldowns counts skills one turn closer to ready. Called at the end of
// the owner's turn with the Cooling snapshot from its start, so a skill with
// max cooldown N stays unavailable for the owner's next N turns.
func TickCooldowns(skills []*model.Skill) {
	for _, s := range skills {
		if s.Kind == model.SkillActive && s.Active.Cooldown > 0 {
			s.Active.Cooldown--
		}
	}
}

func resolveTargets(user, target *model.Creature, a *model.ActiveSkill, allies, enemies *model.Team) ([]*model.Creature, error) {
	if allies == nil || enemies == nil || allies == enemies {
		return nil, ErrSameTeam
	}
	if !allies.Contains(user) {
		return nil, ErrInvalidTarget
	}

	side := allies
	if TargetsEnemies(a.Type) {
		side = enemies
	}

	if a.AOE {
		alive := side.Alive()
		if len(alive) == 0 {
			return nil, ErrTargetDead
		}
		return alive, nil
	}

	if target == nil || !side.Contains(target) {
		return nil, ErrInvalidTarget
	}
	if TargetsEnemies(a.Type) && target == user {
		return nil, ErrInvalidTarget
	}
	if !target.IsAlive() {
		return nil, ErrTargetDead
	}
	return []*model.Creature{target}, nil
}

func (c *Caster) attack(user *model.Creature, targets []*model.Creature, a *model.ActiveSkill, allies *model.Team) Result {
	flags := combat.Flags{
		IgnoreDefense:       a.IgnoreDefense,
		IgnoreShield:        a.IgnoreShield,
		IgnoreInvincibility: a.IgnoreInvincibility,
	}
	out := Result{Targets: targets}

	for _, tpl := range a.BeneficialEffects {
		c.res.ApplyBeneficial(user, user, tpl)
	}
	for _, t := range targets {
		hit := c.res.Hit(user, t, a.Multiplier, flags)
		out.Hits = append(out.Hits, hit)

		for _, tpl := range a.HarmfulEffects {
			c.res.ApplyHarmful(user, t, tpl)
		}
		c.res.GaugeDown(user, t, a.EnemyAttackGaugeDown)
		c.res.PassiveCascade(user, allies.Alive(), []*model.Creature{t})
	}
	for _, ally := range allies.Alive() {
		if ally != user {
			c.res.GaugeUp(user, ally, a.AllyAttackGaugeUp)
		}
	}
	return out
}

func (c *Caster) heal(user *model.Creature, targets []*model.Creature, a *model.ActiveSkill) Result {
	for _, t := range targets {
		c.res.Heal(user, t, a.HealAmountToAllies)
		for _, tpl := range a.BeneficialEffects {
			c.res.ApplyBeneficial(user, t, tpl)
		}
	}
	return Result{Targets: targets}
}

func (c *Caster) buff(user *model.Creature, targets []*model.Creature, a *model.ActiveSkill) Result {
	for _, t := range targets {
		for _, tpl := range a.BeneficialEffects {
			c.res.ApplyBeneficial(user, t, tpl)
		}
		if t != user {
			c.res.GaugeUp(user, t, a.AllyAttackGaugeUp)
		}
	}
	return Result{Targets: targets}
}

func (c *Caster) debuff(user *model.Creature, targets []*model.Creature, a *model.ActiveSkill) Result {
	for _, t := range targets {
		for _, tpl := range a.HarmfulEffects {
			c.res.ApplyHarmful(user, t, tpl)
		}
		c.res.GaugeDown(user, t, a.EnemyAttackGaugeDown)
	}
	return Result{Targets: targets}
}

func targetName(t *model.Creature, aoe bool) string {
	if aoe {
		return "all"
	}
	if t == nil {
		return ""
	}
	return t.Name()
}
