package model

import (
	"fmt"
	"math"
)

// Stat identifies a creature stat that modifiers can target.
type Stat string

const (
	StatMaxHP               Stat = "max_hp"
	StatMaxMP               Stat = "max_mp"
	StatAttack              Stat = "attack"
	StatDefense             Stat = "defense"
	StatAttackSpeed         Stat = "attack_speed"
	StatCritRate            Stat = "crit_rate"
	StatCritDamage          Stat = "crit_damage"
	StatCritResist          Stat = "crit_resist"
	StatResistance          Stat = "resistance"
	StatAccuracy            Stat = "accuracy"
	StatExtraTurnChance     Stat = "extra_turn_chance"
	StatCounterattackChance Stat = "counterattack_chance"
	StatReflectedDamage     Stat = "reflected_damage"
	StatLifeDrain           Stat = "life_drain"
	StatDamageReceived      Stat = "damage_received" // percent points
	StatShield              Stat = "shield"          // percent points
)

// AllStats lists every stat in a stable order.
var AllStats = []Stat{
	StatMaxHP, StatMaxMP, StatAttack, StatDefense, StatAttackSpeed,
	StatCritRate, StatCritDamage, StatCritResist, StatResistance, StatAccuracy,
	StatExtraTurnChance, StatCounterattackChance, StatReflectedDamage,
	StatLifeDrain, StatDamageReceived, StatShield,
}

// Clamp bounds for derived stats.
const (
	MinCritRate        = 0.15
	MaxCritRate        = 1.0
	MinResistance      = 0.15
	MaxResistance      = 1.0
	MaxExtraTurnChance = 0.5
	MinCritDamage      = 1.0
	MaxShield          = 100.0
	MinDamageReceived  = -100.0
)

// statBounds maps a stat to its [min, max] range. Stats not listed are
// floored at 0 and unbounded above.
var statBounds = map[Stat][2]float64{
	StatCritRate:            {MinCritRate, MaxCritRate},
	StatCritResist:          {0, 1},
	StatResistance:          {MinResistance, MaxResistance},
	StatAccuracy:            {0, 1},
	StatExtraTurnChance:     {0, MaxExtraTurnChance},
	StatCounterattackChance: {0, 1},
	StatReflectedDamage:     {0, 1},
	StatLifeDrain:           {0, 1},
	StatShield:              {0, MaxShield},
	StatDamageReceived:      {MinDamageReceived, math.Inf(1)},
	StatCritDamage:          {MinCritDamage, math.Inf(1)},
}

// ClampStat saturates v into the documented range of stat.
func ClampStat(stat Stat, v float64) float64 {
	lo, hi := 0.0, math.Inf(1)
	if b, ok := statBounds[stat]; ok {
		lo, hi = b[0], b[1]
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ModOp defines how a modifier is applied.
type ModOp int8

const (
	ModPercentUp   ModOp = iota // +value% of (base + flat)
	ModPercentDown              // -value% of (base + flat)
	ModFlat                     // +value added to base
)

var modOpNames = [...]string{
	ModPercentUp:   "percent_up",
	ModPercentDown: "percent_down",
	ModFlat:        "flat",
}

func (o ModOp) String() string {
	if int(o) < len(modOpNames) && o >= 0 {
		return modOpNames[o]
	}
	return fmt.Sprintf("ModOp(%d)", int8(o))
}

// MarshalText implements encoding.TextMarshaler.
func (o ModOp) MarshalText() ([]byte, error) {
	if int(o) >= len(modOpNames) || o < 0 {
		return nil, fmt.Errorf("unknown modifier op %d", int8(o))
	}
	return []byte(modOpNames[o]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *ModOp) UnmarshalText(b []byte) error {
	for i, name := range modOpNames {
		if name == string(b) {
			*o = ModOp(i)
			return nil
		}
	}
	return fmt.Errorf("unknown modifier op %q", b)
}

// Modifier represents a single stat modification from a source.
type Modifier struct {
	Stat  Stat    `yaml:"stat" json:"stat"`
	Op    ModOp   `yaml:"op" json:"op"`
	Value float64 `yaml:"value" json:"value"`
}

// Up returns a percentage-up modifier.
func Up(stat Stat, pct float64) Modifier { return Modifier{Stat: stat, Op: ModPercentUp, Value: pct} }

// Down returns a percentage-down modifier.
func Down(stat Stat, pct float64) Modifier {
	return Modifier{Stat: stat, Op: ModPercentDown, Value: pct}
}

// Flat returns an additive modifier.
func Flat(stat Stat, v float64) Modifier { return Modifier{Stat: stat, Op: ModFlat, Value: v} }

// Capability is a bitset of things a creature is allowed to do or receive.
type Capability uint16

const (
	CapMove Capability = 1 << iota
	CapBeHealed
	CapReceiveDamage
	CapReceiveBeneficial
	CapReceiveHarmful
	CapDie
	CapUsePassiveSkills
	CapUseSkills

	CapAll = CapMove | CapBeHealed | CapReceiveDamage | CapReceiveBeneficial |
		CapReceiveHarmful | CapDie | CapUsePassiveSkills | CapUseSkills
)

// SourceKind tells where a modifier source came from.
type SourceKind int8

const (
	SourceEffect SourceKind = iota
	SourcePassive
	SourceLeader
	SourceRune
)

// ModifierSource groups the modifiers and disabled capabilities contributed
// by one effect, aura or rune. Sources are added and removed as a unit.
type ModifierSource struct {
	ID        string
	Kind      SourceKind
	Modifiers []Modifier
	Disables  Capability
}

// BaseStats are the unmodified stats a creature is created with.
type BaseStats struct {
	MaxHP               float64 `yaml:"max_hp"`
	MaxMP               float64 `yaml:"max_mp"`
	Attack              float64 `yaml:"attack"`
	Defense             float64 `yaml:"defense"`
	AttackSpeed         float64 `yaml:"attack_speed"`
	CritRate            float64 `yaml:"crit_rate"`
	CritDamage          float64 `yaml:"crit_damage"`
	CritResist          float64 `yaml:"crit_resist"`
	Resistance          float64 `yaml:"resistance"`
	Accuracy            float64 `yaml:"accuracy"`
	ExtraTurnChance     float64 `yaml:"extra_turn_chance"`
	CounterattackChance float64 `yaml:"counterattack_chance"`
	ReflectedDamage     float64 `yaml:"reflected_damage"`
	LifeDrain           float64 `yaml:"life_drain"`
}

// DefaultBaseStats returns genre-typical defaults for the probability stats.
func DefaultBaseStats() BaseStats {
	return BaseStats{
		CritRate:   MinCritRate,
		CritDamage: 1.5,
		Resistance: MinResistance,
	}
}

func (b BaseStats) get(stat Stat) float64 {
	switch stat {
	case StatMaxHP:
		return b.MaxHP
	case StatMaxMP:
		return b.MaxMP
	case StatAttack:
		return b.Attack
	case StatDefense:
		return b.Defense
	case StatAttackSpeed:
		return b.AttackSpeed
	case StatCritRate:
		return b.CritRate
	case StatCritDamage:
		return b.CritDamage
	case StatCritResist:
		return b.CritResist
	case StatResistance:
		return b.Resistance
	case StatAccuracy:
		return b.Accuracy
	case StatExtraTurnChance:
		return b.ExtraTurnChance
	case StatCounterattackChance:
		return b.CounterattackChance
	case StatReflectedDamage:
		return b.ReflectedDamage
	case StatLifeDrain:
		return b.LifeDrain
	default:
		return 0
	}
}

// StatBlock keeps base stats plus the ordered list of active modifier
// sources. Effective values are always recomputed from base + sources, so
// adding and then removing a source restores the previous values exactly.
type StatBlock struct {
	base    BaseStats
	sources []ModifierSource

	effective map[Stat]float64
	caps      Capability
}

// NewStatBlock creates a StatBlock with no modifiers.
func NewStatBlock(base BaseStats) *StatBlock {
	s := &StatBlock{base: base}
	s.rebuild()
	return s
}

// Base returns the unmodified stats.
func (s *StatBlock) Base() BaseStats { return s.base }

// Get returns the effective, clamped value of stat.
func (s *StatBlock) Get(stat Stat) float64 { return s.effective[stat] }

// PercentUp returns the summed percentage-up modifiers on stat.
func (s *StatBlock) PercentUp(stat Stat) float64 { return s.sum(stat, ModPercentUp) }

// PercentDown returns the summed percentage-down modifiers on stat.
func (s *StatBlock) PercentDown(stat Stat) float64 { return s.sum(stat, ModPercentDown) }

// FlatBonus returns the summed flat modifiers on stat.
func (s *StatBlock) FlatBonus(stat Stat) float64 { return s.sum(stat, ModFlat) }

// Capabilities returns the capability set left after all sources' disables.
func (s *StatBlock) Capabilities() Capability { return s.caps }

// HasSource reports whether a source with id is active.
func (s *StatBlock) HasSource(id string) bool {
	return s.indexOf(id) >= 0
}

// Sources returns a copy of the active sources.
func (s *StatBlock) Sources() []ModifierSource {
	out := make([]ModifierSource, len(s.sources))
	copy(out, s.sources)
	return out
}

// AddSource activates a source. Returns false if a source with the same ID
// is already active.
func (s *StatBlock) AddSource(src ModifierSource) bool {
	if s.indexOf(src.ID) >= 0 {
		return false
	}
	mods := make([]Modifier, len(src.Modifiers))
	copy(mods, src.Modifiers)
	src.Modifiers = mods
	s.sources = append(s.sources, src)
	s.rebuild()
	return true
}

// RemoveSource deactivates the source with id. Returns false if absent.
func (s *StatBlock) RemoveSource(id string) bool {
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.sources = append(s.sources[:i], s.sources[i+1:]...)
	s.rebuild()
	return true
}

// RemoveKind drops every source of the given kind and returns how many were removed.
func (s *StatBlock) RemoveKind(kind SourceKind) int {
	n := 0
	kept := s.sources[:0]
	for _, src := range s.sources {
		if src.Kind == kind {
			n++
			continue
		}
		kept = append(kept, src)
	}
	s.sources = kept
	if n > 0 {
		s.rebuild()
	}
	return n
}

func (s *StatBlock) indexOf(id string) int {
	for i := range s.sources {
		if s.sources[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *StatBlock) sum(stat Stat, op ModOp) float64 {
	total := 0.0
	for _, src := range s.sources {
		for _, m := range src.Modifiers {
			if m.Stat == stat && m.Op == op {
				total += m.Value
			}
		}
	}
	return total
}

// rebuild recalculates effective stats and capabilities from base + sources.
func (s *StatBlock) rebuild() {
	if s.effective == nil {
		s.effective = make(map[Stat]float64, len(AllStats))
	}
	for _, stat := range AllStats {
		flat := s.sum(stat, ModFlat)
		factor := 1 + s.sum(stat, ModPercentUp)/100 - s.sum(stat, ModPercentDown)/100
		if factor < 0 {
			factor = 0
		}
		s.effective[stat] = ClampStat(stat, (s.base.get(stat)+flat)*factor)
	}

	caps := CapAll
	for _, src := range s.sources {
		caps &^= src.Disables
	}
	s.caps = caps
}
