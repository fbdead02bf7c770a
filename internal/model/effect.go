package model

import "github.com/google/uuid"

// EffectKind separates beneficial effects (buffs) from harmful ones (debuffs).
type EffectKind int8

const (
	Beneficial EffectKind = iota
	Harmful
)

func (k EffectKind) String() string {
	if k == Beneficial {
		return "beneficial"
	}
	return "harmful"
}

// EffectName is the closed set of status effect names.
type EffectName string

// Beneficial effect names.
const (
	EffectAttackUp      EffectName = "ATTACK_UP"
	EffectDefenseUp     EffectName = "DEFENSE_UP"
	EffectAttackSpeedUp EffectName = "ATTACK_SPEED_UP"
	EffectCritRateUp    EffectName = "CRIT_RATE_UP"
	EffectCritResistUp  EffectName = "CRIT_RESIST_UP"
	EffectImmunity      EffectName = "IMMUNITY"
	EffectInvincibility EffectName = "INVINCIBILITY"
	EffectEndure        EffectName = "ENDURE"
	EffectShield        EffectName = "SHIELD"
	EffectCounter       EffectName = "COUNTER"
	EffectReflect       EffectName = "REFLECT"
	EffectRecovery      EffectName = "RECOVERY"
)

// Harmful effect names.
const (
	EffectAttackDown             EffectName = "ATTACK_DOWN"
	EffectDefenseDown            EffectName = "DEFENSE_DOWN"
	EffectAttackSpeedDown        EffectName = "ATTACK_SPEED_DOWN"
	EffectGlancingHit            EffectName = "GLANCING_HIT"
	EffectBrand                  EffectName = "BRAND"
	EffectUnrecoverable          EffectName = "UNRECOVERABLE"
	EffectOblivion               EffectName = "OBLIVION"
	EffectSilence                EffectName = "SILENCE"
	EffectStun                   EffectName = "STUN"
	EffectFreeze                 EffectName = "FREEZE"
	EffectSleep                  EffectName = "SLEEP"
	EffectBlockBeneficialEffects EffectName = "BLOCK_BENEFICIAL_EFFECTS"
	EffectContinuousDamage       EffectName = "CONTINUOUS_DAMAGE"
)

// Effect capacity per creature.
const (
	MaxBeneficialEffects = 10
	MaxHarmfulEffects    = 10
)

// Effect is one active status effect instance on a creature.
type Effect struct {
	ID             string
	Name           EffectName
	Kind           EffectKind
	RemainingTurns int
}

// NewEffect creates an effect instance with a fresh ID.
func NewEffect(name EffectName, kind EffectKind, turns int) *Effect {
	return &Effect{
		ID:             uuid.NewString(),
		Name:           name,
		Kind:           kind,
		RemainingTurns: turns,
	}
}

// SourceID returns the modifier source ID the effect registers under.
func (e *Effect) SourceID() string { return "effect:" + e.ID }

// EffectTemplate describes an effect a skill applies: which one and for how long.
type EffectTemplate struct {
	Name  EffectName `yaml:"name" json:"name"`
	Turns int        `yaml:"turns" json:"turns"`
}
