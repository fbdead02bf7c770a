package model

import (
	"github.com/google/uuid"
)

// Attack gauge bounds.
const (
	MinAttackGauge  = 0.0
	FullAttackGauge = 1.0
)

// Creature — боевая единица команды.
// Хранит базовые статы, источники модификаторов, активные эффекты и скиллы.
//
// Not safe for concurrent use: a creature belongs to exactly one live battle.
type Creature struct {
	id       string
	name     string
	elements []Element
	rating   int
	level    int

	stats *StatBlock

	currentHP   float64
	currentMP   float64
	attackGauge float64

	beneficial []*Effect
	harmful    []*Effect

	skills []*Skill
	runes  map[int]*Rune

	passivesActive bool
	leaderSource   string // source ID of the leader aura currently applied, "" if none
}

// NewCreature создаёт существо с полными HP/MP и пустой шкалой атаки.
func NewCreature(name string, elements []Element, rating, level int, base BaseStats) *Creature {
	if len(elements) == 0 {
		elements = []Element{ElementNeutral}
	}
	c := &Creature{
		id:          uuid.NewString(),
		name:        name,
		elements:    append([]Element(nil), elements...),
		rating:      rating,
		level:       level,
		stats:       NewStatBlock(base),
		attackGauge: MinAttackGauge,
		runes:       make(map[int]*Rune, MaxRuneSlots),
	}
	c.currentHP = c.MaxHP()
	c.currentMP = c.MaxMP()
	return c
}

// ID возвращает уникальный идентификатор.
func (c *Creature) ID() string { return c.id }

// Name возвращает имя.
func (c *Creature) Name() string { return c.name }

// Elements returns the creature's elements; the first one is the defending element.
func (c *Creature) Elements() []Element { return c.elements }

// Rating returns the creature tier (1-6).
func (c *Creature) Rating() int { return c.rating }

// Level returns the creature level.
func (c *Creature) Level() int { return c.level }

// Stats exposes the stat block.
func (c *Creature) Stats() *StatBlock { return c.stats }

// Stat returns the effective value of stat.
func (c *Creature) Stat(stat Stat) float64 { return c.stats.Get(stat) }

func (c *Creature) MaxHP() float64       { return c.stats.Get(StatMaxHP) }
func (c *Creature) MaxMP() float64       { return c.stats.Get(StatMaxMP) }
func (c *Creature) Attack() float64      { return c.stats.Get(StatAttack) }
func (c *Creature) Defense() float64     { return c.stats.Get(StatDefense) }
func (c *Creature) AttackSpeed() float64 { return c.stats.Get(StatAttackSpeed) }

// Can reports whether the creature currently has capability.
func (c *Creature) Can(capability Capability) bool {
	return c.stats.Capabilities()&capability == capability
}

// CurrentHP возвращает текущее HP. Может быть отрицательным после смерти.
func (c *Creature) CurrentHP() float64 { return c.currentHP }

// SetCurrentHP sets HP, capped at max HP.
func (c *Creature) SetCurrentHP(hp float64) {
	c.currentHP = min(hp, c.MaxHP())
}

// IsAlive reports whether HP is above zero.
func (c *Creature) IsAlive() bool { return c.currentHP > 0 }

// HPPercent returns current HP as a fraction of max HP in [0, 1].
func (c *Creature) HPPercent() float64 {
	maxHP := c.MaxHP()
	if maxHP <= 0 || c.currentHP <= 0 {
		return 0
	}
	return min(c.currentHP/maxHP, 1)
}

// Heal restores up to amount HP, never above max HP. Returns the HP actually
// restored; 0 if the creature is dead or cannot be healed.
func (c *Creature) Heal(amount float64) float64 {
	if amount <= 0 || !c.IsAlive() || !c.Can(CapBeHealed) {
		return 0
	}
	before := c.currentHP
	c.currentHP = min(c.currentHP+amount, c.MaxHP())
	return c.currentHP - before
}

// TakeDamage subtracts amount from HP. HP may drop below zero unless the
// creature cannot die, in which case it floors at exactly 1.
// Returns the HP actually lost.
func (c *Creature) TakeDamage(amount float64) float64 {
	if amount <= 0 {
		return 0
	}
	before := c.currentHP
	c.currentHP -= amount
	if c.currentHP <= 0 && !c.Can(CapDie) && before > 0 {
		c.currentHP = 1
	}
	return before - c.currentHP
}

// CurrentMP возвращает текущее MP.
func (c *Creature) CurrentMP() float64 { return c.currentMP }

// SpendMP deducts cost. Returns false without mutation if MP is insufficient.
func (c *Creature) SpendMP(cost float64) bool {
	if cost <= 0 {
		return true
	}
	if c.currentMP < cost {
		return false
	}
	c.currentMP -= cost
	return true
}

// RestoreMP adds amount MP, capped at max MP.
func (c *Creature) RestoreMP(amount float64) {
	if amount <= 0 {
		return
	}
	c.currentMP = min(c.currentMP+amount, c.MaxMP())
}

// AttackGauge returns the gauge value. It may transiently exceed FullAttackGauge.
func (c *Creature) AttackGauge() float64 { return c.attackGauge }

// FillAttackGauge adds delta without clamping; used by the scheduler tick.
func (c *Creature) FillAttackGauge(delta float64) { c.attackGauge += delta }

// AdjustAttackGauge shifts the gauge by delta, never below MinAttackGauge.
// A gauge below FullAttackGauge is capped there; one that already overflowed
// keeps its surplus so it does not lose turn-order priority.
func (c *Creature) AdjustAttackGauge(delta float64) {
	g := c.attackGauge + delta
	if g < MinAttackGauge {
		g = MinAttackGauge
	}
	if g > FullAttackGauge && c.attackGauge < FullAttackGauge {
		g = FullAttackGauge
	}
	c.attackGauge = g
}

// ResetAttackGauge sets the gauge back to MinAttackGauge.
func (c *Creature) ResetAttackGauge() { c.attackGauge = MinAttackGauge }

// IsReady reports whether the gauge is full.
func (c *Creature) IsReady() bool { return c.attackGauge >= FullAttackGauge }

// Effects returns a copy of the active effects of kind.
func (c *Creature) Effects(kind EffectKind) []*Effect {
	list := c.beneficial
	if kind == Harmful {
		list = c.harmful
	}
	out := make([]*Effect, len(list))
	copy(out, list)
	return out
}

// EffectCount returns the number of active effects of kind.
func (c *Creature) EffectCount(kind EffectKind) int {
	if kind == Harmful {
		return len(c.harmful)
	}
	return len(c.beneficial)
}

// HasEffect reports whether an effect with name is active.
func (c *Creature) HasEffect(name EffectName) bool {
	return c.findEffect(name) != nil
}

func (c *Creature) findEffect(name EffectName) *Effect {
	for _, e := range c.beneficial {
		if e.Name == name {
			return e
		}
	}
	for _, e := range c.harmful {
		if e.Name == name {
			return e
		}
	}
	return nil
}

// AttachEffect records e as active and registers src under e.SourceID().
// Game rules (capacity, stacking, immunity) are enforced by the effect
// engine; this only keeps the list and the stat sources in step.
func (c *Creature) AttachEffect(e *Effect, src ModifierSource) bool {
	src.ID = e.SourceID()
	src.Kind = SourceEffect
	if !c.stats.AddSource(src) {
		return false
	}
	if e.Kind == Harmful {
		c.harmful = append(c.harmful, e)
	} else {
		c.beneficial = append(c.beneficial, e)
	}
	c.clampResources()
	return true
}

// DetachEffect removes e and its stat source. Returns false if e is not active.
func (c *Creature) DetachEffect(e *Effect) bool {
	list := &c.beneficial
	if e.Kind == Harmful {
		list = &c.harmful
	}
	for i, active := range *list {
		if active.ID != e.ID {
			continue
		}
		*list = append((*list)[:i], (*list)[i+1:]...)
		c.stats.RemoveSource(e.SourceID())
		c.clampResources()
		return true
	}
	return false
}

// Skills returns the owned skills.
func (c *Creature) Skills() []*Skill { return c.skills }

// AddSkill gives the creature a skill.
func (c *Creature) AddSkill(s *Skill) { c.skills = append(c.skills, s) }

// SkillsOf returns owned skills of kind, in ownership order.
func (c *Creature) SkillsOf(kind SkillKind) []*Skill {
	var out []*Skill
	for _, s := range c.skills {
		if s.Kind == kind {
			out = append(out, s)
		}
	}
	return out
}

// LeaderSkill returns the first leader skill, or nil.
func (c *Creature) LeaderSkill() *Skill {
	for _, s := range c.skills {
		if s.Kind == SkillLeader {
			return s
		}
	}
	return nil
}

// PassivesActive reports whether passive auras currently contribute.
func (c *Creature) PassivesActive() bool { return c.passivesActive }

// SetPassivesActive is toggled by the effect engine alongside the aura sources.
func (c *Creature) SetPassivesActive(active bool) { c.passivesActive = active }

// LeaderAuraSource returns the source ID of the applied leader aura, "" if none.
func (c *Creature) LeaderAuraSource() string { return c.leaderSource }

// SetLeaderAuraSource is toggled by the effect engine alongside the aura source.
func (c *Creature) SetLeaderAuraSource(id string) { c.leaderSource = id }

// AddSource registers a non-effect modifier source and re-clamps HP/MP.
func (c *Creature) AddSource(src ModifierSource) bool {
	if !c.stats.AddSource(src) {
		return false
	}
	c.clampResources()
	return true
}

// RemoveSource drops a modifier source and re-clamps HP/MP.
func (c *Creature) RemoveSource(id string) bool {
	if !c.stats.RemoveSource(id) {
		return false
	}
	c.clampResources()
	return true
}

// Runes returns the equipped runes keyed by slot.
func (c *Creature) Runes() map[int]*Rune {
	out := make(map[int]*Rune, len(c.runes))
	for k, v := range c.runes {
		out[k] = v
	}
	return out
}

// EquipRune puts r into its slot. Fails if the slot is invalid or occupied,
// or the rune carries an unknown stat.
func (c *Creature) EquipRune(r *Rune) bool {
	if r == nil || r.Slot < 1 || r.Slot > MaxRuneSlots {
		return false
	}
	if _, taken := c.runes[r.Slot]; taken {
		return false
	}
	src, err := r.Source()
	if err != nil {
		return false
	}
	if !c.AddSource(src) {
		return false
	}
	c.runes[r.Slot] = r
	return true
}

// UnequipRune removes the rune in slot. Fails if the slot is empty.
func (c *Creature) UnequipRune(slot int) (*Rune, bool) {
	r, ok := c.runes[slot]
	if !ok {
		return nil, false
	}
	c.RemoveSource(r.SourceID())
	delete(c.runes, slot)
	return r, true
}

// Restore resets the creature to its pre-battle state: full HP/MP, empty
// gauge, no effects, no auras, skills off cooldown. Runes stay equipped.
func (c *Creature) Restore() {
	c.stats.RemoveKind(SourceEffect)
	c.stats.RemoveKind(SourcePassive)
	c.stats.RemoveKind(SourceLeader)
	c.beneficial = nil
	c.harmful = nil
	c.passivesActive = false
	c.leaderSource = ""
	for _, s := range c.skills {
		if s.Kind == SkillActive {
			s.Active.Cooldown = 0
		}
	}
	c.currentHP = c.MaxHP()
	c.currentMP = c.MaxMP()
	c.attackGauge = MinAttackGauge
}

func (c *Creature) clampResources() {
	if maxHP := c.MaxHP(); c.currentHP > maxHP {
		c.currentHP = maxHP
	}
	if maxMP := c.MaxMP(); c.currentMP > maxMP {
		c.currentMP = maxMP
	}
}
