package model

// Element is an elemental type of a creature.
type Element string

const (
	ElementNeutral  Element = "NEUTRAL"
	ElementFire     Element = "FIRE"
	ElementWater    Element = "WATER"
	ElementWind     Element = "WIND"
	ElementTerra    Element = "TERRA"
	ElementIce      Element = "ICE"
	ElementMetal    Element = "METAL"
	ElementElectric Element = "ELECTRIC"
	ElementNature   Element = "NATURE"
	ElementLight    Element = "LIGHT"
	ElementDark     Element = "DARK"
	ElementMagic    Element = "MAGIC"
	ElementPrimal   Element = "PRIMAL"
	ElementLegend   Element = "LEGEND"
)

// Elements lists all 14 elements of the type chart.
var Elements = []Element{
	ElementNeutral, ElementFire, ElementWater, ElementWind, ElementTerra,
	ElementIce, ElementMetal, ElementElectric, ElementNature, ElementLight,
	ElementDark, ElementMagic, ElementPrimal, ElementLegend,
}

// Type chart multipliers.
const (
	StrongMultiplier  = 2.0
	WeakMultiplier    = 0.5
	NeutralMultiplier = 1.0
)

// Matchup lists what an attacking element is strong and weak against.
type Matchup struct {
	StrongAgainst []Element
	WeakAgainst   []Element
}

// TypeChart maps an attacking element to its matchups.
// TERRA lists ELECTRIC and DARK as two separate entries.
var TypeChart = map[Element]Matchup{
	ElementNeutral:  {},
	ElementFire:     {StrongAgainst: []Element{ElementNature, ElementIce}, WeakAgainst: []Element{ElementWater, ElementTerra}},
	ElementWater:    {StrongAgainst: []Element{ElementFire, ElementTerra}, WeakAgainst: []Element{ElementElectric, ElementNature}},
	ElementWind:     {StrongAgainst: []Element{ElementNature, ElementElectric}, WeakAgainst: []Element{ElementMetal, ElementIce}},
	ElementTerra:    {StrongAgainst: []Element{ElementElectric, ElementDark}, WeakAgainst: []Element{ElementWater, ElementWind}},
	ElementIce:      {StrongAgainst: []Element{ElementWind, ElementTerra}, WeakAgainst: []Element{ElementFire, ElementMetal}},
	ElementMetal:    {StrongAgainst: []Element{ElementIce, ElementWind}, WeakAgainst: []Element{ElementFire, ElementElectric}},
	ElementElectric: {StrongAgainst: []Element{ElementWater, ElementMetal}, WeakAgainst: []Element{ElementTerra, ElementNature}},
	ElementNature:   {StrongAgainst: []Element{ElementWater, ElementElectric}, WeakAgainst: []Element{ElementFire, ElementWind}},
	ElementLight:    {StrongAgainst: []Element{ElementDark, ElementMagic}, WeakAgainst: []Element{ElementLegend}},
	ElementDark:     {StrongAgainst: []Element{ElementLight, ElementMagic}, WeakAgainst: []Element{ElementTerra, ElementPrimal}},
	ElementMagic:    {StrongAgainst: []Element{ElementPrimal, ElementLegend}, WeakAgainst: []Element{ElementLight, ElementDark}},
	ElementPrimal:   {StrongAgainst: []Element{ElementDark, ElementMetal}, WeakAgainst: []Element{ElementMagic}},
	ElementLegend:   {StrongAgainst: []Element{ElementLight, ElementPrimal}, WeakAgainst: []Element{ElementMagic}},
}

// IsValid reports whether e is part of the type chart.
func (e Element) IsValid() bool {
	_, ok := TypeChart[e]
	return ok
}

// Multiplier returns the chart multiplier of attacker hitting defender.
func Multiplier(attacker, defender Element) float64 {
	m := TypeChart[attacker]
	for _, e := range m.StrongAgainst {
		if e == defender {
			return StrongMultiplier
		}
	}
	for _, e := range m.WeakAgainst {
		if e == defender {
			return WeakMultiplier
		}
	}
	return NeutralMultiplier
}

// ElementalMultiplier returns the best multiplier across the attacker's
// elements against the defender's first (defending) element.
func ElementalMultiplier(attacker, defender []Element) float64 {
	if len(attacker) == 0 || len(defender) == 0 {
		return NeutralMultiplier
	}
	best := 0.0
	for _, a := range attacker {
		if m := Multiplier(a, defender[0]); m > best {
			best = m
		}
	}
	return best
}
