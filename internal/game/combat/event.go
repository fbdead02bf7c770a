package combat

import (
	"fmt"

	"github.com/udisondev/legendarena/internal/model"
)

// EventKind classifies a battle log entry.
type EventKind string

const (
	EventDamage        EventKind = "damage"
	EventHeal          EventKind = "heal"
	EventLifeDrain     EventKind = "life_drain"
	EventReflect       EventKind = "reflect"
	EventDeath         EventKind = "death"
	EventEffectApplied EventKind = "effect_applied"
	EventEffectResist  EventKind = "effect_resisted"
	EventEffectExpired EventKind = "effect_expired"
	EventGaugeUp       EventKind = "gauge_up"
	EventGaugeDown     EventKind = "gauge_down"
	EventSkill         EventKind = "skill"
	EventTurn          EventKind = "turn"
	EventSkip          EventKind = "skip"
	EventExtraTurn     EventKind = "extra_turn"
	EventCounter       EventKind = "counterattack"
	EventActionFailed  EventKind = "action_failed"
	EventBattleEnd     EventKind = "battle_end"
)

// Event is one human-readable log entry. Turn is filled in by the battle.
type Event struct {
	Turn    int       `json:"turn"`
	Kind    EventKind `json:"kind"`
	Actor   string    `json:"actor,omitempty"`
	Target  string    `json:"target,omitempty"`
	Amount  float64   `json:"amount,omitempty"`
	Crit    bool      `json:"crit,omitempty"`
	Message string    `json:"message,omitempty"`
}

// String renders the event as one log line.
func (e Event) String() string {
	s := fmt.Sprintf("#%d %s", e.Turn, e.Kind)
	if e.Actor != "" {
		s += " " + e.Actor
	}
	if e.Target != "" {
		s += " -> " + e.Target
	}
	if e.Amount != 0 {
		s += fmt.Sprintf(" %.0f", e.Amount)
	}
	if e.Crit {
		s += " (crit)"
	}
	if e.Message != "" {
		s += ": " + e.Message
	}
	return s
}

// Sink receives events as they happen.
type Sink func(Event)

func nameOf(c *model.Creature) string {
	if c == nil {
		return ""
	}
	return c.Name()
}
