package model

import "fmt"

// SkillKind is the variant tag of a Skill.
type SkillKind int8

const (
	SkillActive SkillKind = iota
	SkillPassive
	SkillLeader
)

func (k SkillKind) String() string {
	switch k {
	case SkillActive:
		return "active"
	case SkillPassive:
		return "passive"
	case SkillLeader:
		return "leader"
	default:
		return fmt.Sprintf("SkillKind(%d)", int8(k))
	}
}

// ActiveSkillType selects how an active skill is dispatched.
type ActiveSkillType string

const (
	ActiveAttack        ActiveSkillType = "ATTACK"
	ActiveHeal          ActiveSkillType = "HEAL"
	ActiveAlliesEffect  ActiveSkillType = "ALLIES_EFFECT"
	ActiveEnemiesEffect ActiveSkillType = "ENEMIES_EFFECT"
)

// DefaultSkillGrowthFactor scales damage multipliers on every skill level-up.
const DefaultSkillGrowthFactor = 1.25

// DamageMultiplier holds the 13 coefficients of the damage formula.
// HP percentages are fractions in [0, 1].
type DamageMultiplier struct {
	SelfMaxHP              float64 `yaml:"self_max_hp" json:"self_max_hp"`
	EnemyMaxHP             float64 `yaml:"enemy_max_hp" json:"enemy_max_hp"`
	SelfAttack             float64 `yaml:"self_attack" json:"self_attack"`
	EnemyAttack            float64 `yaml:"enemy_attack" json:"enemy_attack"`
	SelfDefense            float64 `yaml:"self_defense" json:"self_defense"`
	EnemyDefense           float64 `yaml:"enemy_defense" json:"enemy_defense"`
	SelfMaxMP              float64 `yaml:"self_max_mp" json:"self_max_mp"`
	EnemyMaxMP             float64 `yaml:"enemy_max_mp" json:"enemy_max_mp"`
	SelfAttackSpeed        float64 `yaml:"self_attack_speed" json:"self_attack_speed"`
	EnemyAttackSpeed       float64 `yaml:"enemy_attack_speed" json:"enemy_attack_speed"`
	SelfCurrentHPPercent   float64 `yaml:"self_current_hp_percent" json:"self_current_hp_percent"`
	SelfHPPercentLost      float64 `yaml:"self_hp_percent_lost" json:"self_hp_percent_lost"`
	TargetCurrentHPPercent float64 `yaml:"target_current_hp_percent" json:"target_current_hp_percent"`
}

// NormalAttackMultiplier is used for the NORMAL_ATTACK action.
var NormalAttackMultiplier = DamageMultiplier{SelfAttack: 3.5}

// Scaled returns a copy with every coefficient multiplied by f.
func (m DamageMultiplier) Scaled(f float64) DamageMultiplier {
	return DamageMultiplier{
		SelfMaxHP:              m.SelfMaxHP * f,
		EnemyMaxHP:             m.EnemyMaxHP * f,
		SelfAttack:             m.SelfAttack * f,
		EnemyAttack:            m.EnemyAttack * f,
		SelfDefense:            m.SelfDefense * f,
		EnemyDefense:           m.EnemyDefense * f,
		SelfMaxMP:              m.SelfMaxMP * f,
		EnemyMaxMP:             m.EnemyMaxMP * f,
		SelfAttackSpeed:        m.SelfAttackSpeed * f,
		EnemyAttackSpeed:       m.EnemyAttackSpeed * f,
		SelfCurrentHPPercent:   m.SelfCurrentHPPercent * f,
		SelfHPPercentLost:      m.SelfHPPercentLost * f,
		TargetCurrentHPPercent: m.TargetCurrentHPPercent * f,
	}
}

// ActiveSkill is the payload of a SkillActive skill.
type ActiveSkill struct {
	Type                 ActiveSkillType  `yaml:"type"`
	AOE                  bool             `yaml:"aoe"`
	MPCost               float64          `yaml:"mp_cost"`
	MaxCooldown          int              `yaml:"max_cooldown"`
	Cooldown             int              `yaml:"-"`
	Multiplier           DamageMultiplier `yaml:"multiplier"`
	BeneficialEffects    []EffectTemplate `yaml:"beneficial_effects"`
	HarmfulEffects       []EffectTemplate `yaml:"harmful_effects"`
	IgnoreDefense        bool             `yaml:"ignore_defense"`
	IgnoreShield         bool             `yaml:"ignore_shield"`
	IgnoreInvincibility  bool             `yaml:"ignore_invincibility"`
	HealAmountToAllies   float64          `yaml:"heal_amount_to_allies"`
	AllyAttackGaugeUp    float64          `yaml:"ally_attack_gauge_up"`
	EnemyAttackGaugeDown float64          `yaml:"enemy_attack_gauge_down"`
}

// PassiveSkillEffect is applied continuously while passives are active and
// cascades on every attack of its owner.
type PassiveSkillEffect struct {
	Modifiers                 []Modifier       `yaml:"modifiers"`
	BeneficialEffectsToAllies []EffectTemplate `yaml:"beneficial_effects_to_allies"`
	HarmfulEffectsToEnemies   []EffectTemplate `yaml:"harmful_effects_to_enemies"`
	AllyAttackGaugeUp         float64          `yaml:"ally_attack_gauge_up"`
	EnemyAttackGaugeDown      float64          `yaml:"enemy_attack_gauge_down"`
	HealPercentToAllies       float64          `yaml:"heal_percent_to_allies"`
}

// LeaderSkillEffect is applied to all teammates while the owner leads.
type LeaderSkillEffect struct {
	Modifiers []Modifier `yaml:"modifiers"`
}

// Skill is a tagged union: exactly one of Active, Passive, Leader is set,
// matching Kind.
type Skill struct {
	ID       string
	Name     string
	Level    int
	MaxLevel int // 0 = uncapped
	Kind     SkillKind

	Active  *ActiveSkill
	Passive *PassiveSkillEffect
	Leader  *LeaderSkillEffect
}

// NewActiveSkill creates an active skill at level 1.
func NewActiveSkill(id, name string, a ActiveSkill) *Skill {
	return &Skill{ID: id, Name: name, Level: 1, Kind: SkillActive, Active: &a}
}

// NewPassiveSkill creates a passive skill at level 1.
func NewPassiveSkill(id, name string, p PassiveSkillEffect) *Skill {
	return &Skill{ID: id, Name: name, Level: 1, Kind: SkillPassive, Passive: &p}
}

// NewLeaderSkill creates a leader skill at level 1.
func NewLeaderSkill(id, name string, l LeaderSkillEffect) *Skill {
	return &Skill{ID: id, Name: name, Level: 1, Kind: SkillLeader, Leader: &l}
}

// Validate checks that the variant payload matches Kind.
func (s *Skill) Validate() error {
	switch s.Kind {
	case SkillActive:
		if s.Active == nil || s.Passive != nil || s.Leader != nil {
			return fmt.Errorf("skill %q: active skill must carry only the active payload", s.Name)
		}
		switch s.Active.Type {
		case ActiveAttack, ActiveHeal, ActiveAlliesEffect, ActiveEnemiesEffect:
		default:
			return fmt.Errorf("skill %q: unknown active type %q", s.Name, s.Active.Type)
		}
	case SkillPassive:
		if s.Passive == nil || s.Active != nil || s.Leader != nil {
			return fmt.Errorf("skill %q: passive skill must carry only the passive payload", s.Name)
		}
	case SkillLeader:
		if s.Leader == nil || s.Active != nil || s.Passive != nil {
			return fmt.Errorf("skill %q: leader skill must carry only the leader payload", s.Name)
		}
	default:
		return fmt.Errorf("skill %q: unknown kind %d", s.Name, s.Kind)
	}
	return nil
}

// IsReady reports whether an active skill is off cooldown.
func (s *Skill) IsReady() bool {
	return s.Kind == SkillActive && s.Active.Cooldown <= 0
}

// LevelUp raises the level and scales the damage multiplier by growth.
// Returns false at MaxLevel.
func (s *Skill) LevelUp(growth float64) bool {
	if s.MaxLevel > 0 && s.Level >= s.MaxLevel {
		return false
	}
	s.Level++
	if s.Kind == SkillActive {
		s.Active.Multiplier = s.Active.Multiplier.Scaled(growth)
	}
	return true
}

// Clone returns a deep copy so that templates are never shared between creatures.
func (s *Skill) Clone() *Skill {
	c := *s
	if s.Active != nil {
		a := *s.Active
		a.BeneficialEffects = append([]EffectTemplate(nil), s.Active.BeneficialEffects...)
		a.HarmfulEffects = append([]EffectTemplate(nil), s.Active.HarmfulEffects...)
		c.Active = &a
	}
	if s.Passive != nil {
		p := *s.Passive
		p.Modifiers = append([]Modifier(nil), s.Passive.Modifiers...)
		p.BeneficialEffectsToAllies = append([]EffectTemplate(nil), s.Passive.BeneficialEffectsToAllies...)
		p.HarmfulEffectsToEnemies = append([]EffectTemplate(nil), s.Passive.HarmfulEffectsToEnemies...)
		c.Passive = &p
	}
	if s.Leader != nil {
		l := *s.Leader
		l.Modifiers = append([]Modifier(nil), s.Leader.Modifiers...)
		c.Leader = &l
	}
	return &c
}
