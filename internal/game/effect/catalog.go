package effect

import (
	"slices"

	"github.com/udisondev/legendarena/internal/model"
)

// Periodic effect rates, as a fraction of the bearer's max HP per turn.
const (
	RecoveryRate         = 0.15
	ContinuousDamageRate = 0.05
)

// Spec is the fixed bundle an effect name carries: its stat deltas, the
// capabilities it takes away and how it behaves over time.
type Spec struct {
	Name      model.EffectName
	Kind      model.EffectKind
	Stackable bool
	Modifiers []model.Modifier
	Disables  model.Capability

	// Fraction of max HP healed (positive) or dealt (negative) on every tick.
	Periodic float64
}

var catalog = map[model.EffectName]Spec{
	// Beneficial
	model.EffectAttackUp:      {Kind: model.Beneficial, Modifiers: []model.Modifier{model.Up(model.StatAttack, 50)}},
	model.EffectDefenseUp:     {Kind: model.Beneficial, Modifiers: []model.Modifier{model.Up(model.StatDefense, 50)}},
	model.EffectAttackSpeedUp: {Kind: model.Beneficial, Modifiers: []model.Modifier{model.Up(model.StatAttackSpeed, 30)}},
	model.EffectCritRateUp:    {Kind: model.Beneficial, Modifiers: []model.Modifier{model.Flat(model.StatCritRate, 0.3)}},
	model.EffectCritResistUp:  {Kind: model.Beneficial, Modifiers: []model.Modifier{model.Flat(model.StatCritResist, 0.5)}},
	model.EffectImmunity:      {Kind: model.Beneficial, Disables: model.CapReceiveHarmful},
	model.EffectInvincibility: {Kind: model.Beneficial, Disables: model.CapReceiveDamage},
	model.EffectEndure:        {Kind: model.Beneficial, Disables: model.CapDie},
	model.EffectShield:        {Kind: model.Beneficial, Modifiers: []model.Modifier{model.Flat(model.StatShield, 15)}},
	model.EffectCounter:       {Kind: model.Beneficial, Modifiers: []model.Modifier{model.Flat(model.StatCounterattackChance, 0.5)}},
	model.EffectReflect:       {Kind: model.Beneficial, Modifiers: []model.Modifier{model.Flat(model.StatReflectedDamage, 0.3)}},
	model.EffectRecovery:      {Kind: model.Beneficial, Stackable: true, Periodic: RecoveryRate},

	// Harmful
	model.EffectAttackDown:             {Kind: model.Harmful, Modifiers: []model.Modifier{model.Down(model.StatAttack, 50)}},
	model.EffectDefenseDown:            {Kind: model.Harmful, Modifiers: []model.Modifier{model.Down(model.StatDefense, 70)}},
	model.EffectAttackSpeedDown:        {Kind: model.Harmful, Modifiers: []model.Modifier{model.Down(model.StatAttackSpeed, 30)}},
	model.EffectGlancingHit:            {Kind: model.Harmful, Modifiers: []model.Modifier{model.Flat(model.StatCritRate, -0.5)}},
	model.EffectBrand:                  {Kind: model.Harmful, Modifiers: []model.Modifier{model.Flat(model.StatDamageReceived, 25)}},
	model.EffectUnrecoverable:          {Kind: model.Harmful, Disables: model.CapBeHealed},
	model.EffectOblivion:               {Kind: model.Harmful, Disables: model.CapUsePassiveSkills},
	model.EffectSilence:                {Kind: model.Harmful, Disables: model.CapUseSkills},
	model.EffectStun:                   {Kind: model.Harmful, Disables: model.CapMove},
	model.EffectFreeze:                 {Kind: model.Harmful, Disables: model.CapMove},
	model.EffectSleep:                  {Kind: model.Harmful, Disables: model.CapMove},
	model.EffectBlockBeneficialEffects: {Kind: model.Harmful, Disables: model.CapReceiveBeneficial},
	model.EffectContinuousDamage:       {Kind: model.Harmful, Stackable: true, Periodic: -ContinuousDamageRate},
}

func init() {
	for name, spec := range catalog {
		spec.Name = name
		catalog[name] = spec
	}
}

// Lookup returns the spec for name.
func Lookup(name model.EffectName) (Spec, bool) {
	s, ok := catalog[name]
	return s, ok
}

// Names returns every known effect name of kind, sorted.
func Names(kind model.EffectKind) []model.EffectName {
	var out []model.EffectName
	for name, s := range catalog {
		if s.Kind == kind {
			out = append(out, name)
		}
	}
	slices.Sort(out)
	return out
}

// New instantiates the named effect for turns turns.
func New(name model.EffectName, turns int) (*model.Effect, bool) {
	s, ok := catalog[name]
	if !ok {
		return nil, false
	}
	return model.NewEffect(name, s.Kind, turns), true
}

func (s Spec) source() model.ModifierSource {
	return model.ModifierSource{Modifiers: s.Modifiers, Disables: s.Disables}
}
