package effect

import (
	"fmt"
	"log/slog"

	"github.com/udisondev/legendarena/internal/model"
)

// AddBeneficial attaches a beneficial effect to c.
// Returns false without mutation if the effect is not beneficial, c is dead,
// c cannot receive beneficial effects, the list is full, or a non-stackable
// effect of the same name is already active.
func AddBeneficial(c *model.Creature, e *model.Effect) bool {
	return add(c, e, model.Beneficial)
}

// AddHarmful attaches a harmful effect to c. Same rules as AddBeneficial.
// OBLIVION also switches off c's passive auras.
func AddHarmful(c *model.Creature, e *model.Effect) bool {
	return add(c, e, model.Harmful)
}

// RemoveBeneficial detaches e from c. Returns false if e is not active on c.
func RemoveBeneficial(c *model.Creature, e *model.Effect) bool {
	return remove(c, e, model.Beneficial)
}

// RemoveHarmful detaches e from c. Removing the last OBLIVION brings passive
// auras back.
func RemoveHarmful(c *model.Creature, e *model.Effect) bool {
	return remove(c, e, model.Harmful)
}

// Remove detaches e through the path matching its kind.
func Remove(c *model.Creature, e *model.Effect) bool {
	return remove(c, e, e.Kind)
}

// Apply instantiates the template and attaches it to c. Returns the attached
// effect, or nil if it was refused.
func Apply(c *model.Creature, tpl model.EffectTemplate) *model.Effect {
	e, ok := New(tpl.Name, tpl.Turns)
	if !ok {
		slog.Warn("unknown effect template", "effect", tpl.Name)
		return nil
	}
	if !add(c, e, e.Kind) {
		return nil
	}
	return e
}

func add(c *model.Creature, e *model.Effect, kind model.EffectKind) bool {
	if c == nil || e == nil || e.Kind != kind || e.RemainingTurns <= 0 || !c.IsAlive() {
		return false
	}
	spec, ok := Lookup(e.Name)
	if !ok || spec.Kind != kind {
		return false
	}

	receive, limit := model.CapReceiveBeneficial, model.MaxBeneficialEffects
	if kind == model.Harmful {
		receive, limit = model.CapReceiveHarmful, model.MaxHarmfulEffects
	}
	if !c.Can(receive) {
		return false
	}
	if c.EffectCount(kind) >= limit {
		slog.Debug("effect limit reached",
			"creature", c.Name(),
			"kind", kind,
			"effect", e.Name)
		return false
	}
	if !spec.Stackable && c.HasEffect(e.Name) {
		return false
	}

	if !c.AttachEffect(e, spec.source()) {
		return false
	}
	if spec.Disables&model.CapUsePassiveSkills != 0 {
		DeactivatePassives(c)
	}
	slog.Debug("effect applied",
		"creature", c.Name(),
		"effect", e.Name,
		"turns", e.RemainingTurns)
	return true
}

func remove(c *model.Creature, e *model.Effect, kind model.EffectKind) bool {
	if c == nil || e == nil || e.Kind != kind {
		return false
	}
	if !c.DetachEffect(e) {
		return false
	}
	spec, _ := Lookup(e.Name)
	if spec.Disables&model.CapUsePassiveSkills != 0 && c.IsAlive() {
		ActivatePassives(c)
	}
	return true
}

// TickReport summarises what a Tick did to a creature.
type TickReport struct {
	Healed  float64
	Damaged float64
	Expired []model.EffectName
}

// Tick runs periodic effects once, then counts every active effect down by
// one turn. Effects reaching zero leave through the remove path.
func Tick(c *model.Creature) TickReport {
	var r TickReport

	active := append(c.Effects(model.Beneficial), c.Effects(model.Harmful)...)
	for _, e := range active {
		spec, _ := Lookup(e.Name)
		switch {
		case spec.Periodic > 0:
			r.Healed += c.Heal(c.MaxHP() * spec.Periodic)
		case spec.Periodic < 0 && c.Can(model.CapReceiveDamage):
			r.Damaged += c.TakeDamage(c.MaxHP() * -spec.Periodic)
		}
	}

	for _, e := range active {
		e.RemainingTurns--
		if e.RemainingTurns > 0 {
			continue
		}
		if Remove(c, e) {
			r.Expired = append(r.Expired, e.Name)
		}
	}
	return r
}

// ClearAll removes every active effect through the remove path.
func ClearAll(c *model.Creature) int {
	n := 0
	for _, e := range append(c.Effects(model.Beneficial), c.Effects(model.Harmful)...) {
		if Remove(c, e) {
			n++
		}
	}
	return n
}

func passiveSourceID(i int, s *model.Skill) string {
	return fmt.Sprintf("passive:%d:%s", i, s.ID)
}

// ActivatePassives applies the stat deltas of every passive skill c owns.
// Idempotent: returns false if passives are already active or c is under
// OBLIVION.
func ActivatePassives(c *model.Creature) bool {
	if c.PassivesActive() || !c.Can(model.CapUsePassiveSkills) {
		return false
	}
	for i, s := range c.SkillsOf(model.SkillPassive) {
		c.AddSource(model.ModifierSource{
			ID:        passiveSourceID(i, s),
			Kind:      model.SourcePassive,
			Modifiers: s.Passive.Modifiers,
		})
	}
	c.SetPassivesActive(true)
	return true
}

// DeactivatePassives removes exactly what ActivatePassives added.
// Returns false if passives were not active.
func DeactivatePassives(c *model.Creature) bool {
	if !c.PassivesActive() {
		return false
	}
	for i, s := range c.SkillsOf(model.SkillPassive) {
		c.RemoveSource(passiveSourceID(i, s))
	}
	c.SetPassivesActive(false)
	return true
}

// ActivateLeaderSkill applies the team leader's aura to every member that
// does not carry it yet. Returns the number of members affected.
func ActivateLeaderSkill(t *model.Team) int {
	leader := t.Leader()
	if leader == nil {
		return 0
	}
	skill := leader.LeaderSkill()
	if skill == nil {
		return 0
	}

	id := "leader:" + leader.ID() + ":" + skill.ID
	n := 0
	for _, c := range t.Members() {
		if c.LeaderAuraSource() != "" {
			continue
		}
		if c.AddSource(model.ModifierSource{ID: id, Kind: model.SourceLeader, Modifiers: skill.Leader.Modifiers}) {
			c.SetLeaderAuraSource(id)
			n++
		}
	}
	return n
}

// DeactivateLeaderSkill removes the leader aura from every member carrying it.
func DeactivateLeaderSkill(t *model.Team) int {
	n := 0
	for _, c := range t.Members() {
		id := c.LeaderAuraSource()
		if id == "" {
			continue
		}
		c.RemoveSource(id)
		c.SetLeaderAuraSource("")
		n++
	}
	return n
}
