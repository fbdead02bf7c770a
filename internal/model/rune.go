package model

import "fmt"

// RuneStat names a stat line on a rune.
type RuneStat string

const (
	RuneAttackPercent  RuneStat = "ATK%"
	RuneDefensePercent RuneStat = "DEF%"
	RuneHPPercent      RuneStat = "HP%"
	RuneAttack         RuneStat = "ATK"
	RuneDefense        RuneStat = "DEF"
	RuneHP             RuneStat = "HP"
	RuneSpeed          RuneStat = "SPD"
	RuneCritRate       RuneStat = "CR"
	RuneCritDamage     RuneStat = "CD"
	RuneResistance     RuneStat = "RES"
	RuneAccuracy       RuneStat = "ACC"
)

// MaxRuneSlots is the number of rune slots per creature.
const MaxRuneSlots = 6

// RuneLine is one stat line of a rune. CR/CD/RES/ACC values are in percent.
type RuneLine struct {
	Stat  RuneStat `yaml:"stat" json:"stat"`
	Value float64  `yaml:"value" json:"value"`
}

// Modifier converts the line to the stat modifier vocabulary.
func (l RuneLine) Modifier() (Modifier, error) {
	switch l.Stat {
	case RuneAttackPercent:
		return Up(StatAttack, l.Value), nil
	case RuneDefensePercent:
		return Up(StatDefense, l.Value), nil
	case RuneHPPercent:
		return Up(StatMaxHP, l.Value), nil
	case RuneAttack:
		return Flat(StatAttack, l.Value), nil
	case RuneDefense:
		return Flat(StatDefense, l.Value), nil
	case RuneHP:
		return Flat(StatMaxHP, l.Value), nil
	case RuneSpeed:
		return Flat(StatAttackSpeed, l.Value), nil
	case RuneCritRate:
		return Flat(StatCritRate, l.Value/100), nil
	case RuneCritDamage:
		return Flat(StatCritDamage, l.Value/100), nil
	case RuneResistance:
		return Flat(StatResistance, l.Value/100), nil
	case RuneAccuracy:
		return Flat(StatAccuracy, l.Value/100), nil
	default:
		return Modifier{}, fmt.Errorf("unknown rune stat %q", l.Stat)
	}
}

// Rune is an equippable stat bonus bound to one slot.
type Rune struct {
	ID       string     `yaml:"id" json:"id"`
	Slot     int        `yaml:"slot" json:"slot"`
	Main     RuneLine   `yaml:"main" json:"main"`
	SubStats []RuneLine `yaml:"sub_stats" json:"sub_stats"`
}

// SourceID returns the modifier source ID the rune registers under.
func (r *Rune) SourceID() string { return "rune:" + r.ID }

// Source converts the rune to a modifier source.
func (r *Rune) Source() (ModifierSource, error) {
	mods := make([]Modifier, 0, 1+len(r.SubStats))
	m, err := r.Main.Modifier()
	if err != nil {
		return ModifierSource{}, fmt.Errorf("rune %s main stat: %w", r.ID, err)
	}
	mods = append(mods, m)
	for _, sub := range r.SubStats {
		m, err := sub.Modifier()
		if err != nil {
			return ModifierSource{}, fmt.Errorf("rune %s sub stat: %w", r.ID, err)
		}
		mods = append(mods, m)
	}
	return ModifierSource{ID: r.SourceID(), Kind: SourceRune, Modifiers: mods}, nil
}
