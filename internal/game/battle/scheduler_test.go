package battle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Scenario: equal speeds reach a full gauge on the same tick; team1 moves first.
func TestScheduler_EqualSpeedTieBreak(t *testing.T) {
	t1 := newTeam(t, "blue", unit{name: "Attacker", hp: 1, speed: 100})
	t2 := newTeam(t, "red", unit{name: "Target", hp: 1, speed: 100})
	s := NewScheduler(t1, t2, 0.07)

	// ⌈1 / (100 × 0.07)⌉ = 1
	c, ticks, err := s.Next()
	require.NoError(t, err)
	assert.Equal(t, 1, ticks)
	assert.Equal(t, t1.Members()[0], c)
	assert.InDelta(t, 7.0, t2.Members()[0].AttackGauge(), 1e-9)
}

func TestScheduler_TicksUntilFull(t *testing.T) {
	t1 := newTeam(t, "blue", unit{name: "Slow", hp: 1, speed: 3})
	t2 := newTeam(t, "red", unit{name: "Slower", hp: 1, speed: 2})
	s := NewScheduler(t1, t2, 0.07)

	c, ticks, err := s.Next()
	require.NoError(t, err)
	assert.Equal(t, t1.Members()[0], c)
	assert.Equal(t, 5, ticks) // ⌈1 / 0.21⌉
}

func TestScheduler_Ranking(t *testing.T) {
	t1 := newTeam(t, "blue",
		unit{name: "A", hp: 1, speed: 100},
		unit{name: "B", hp: 1, speed: 120},
	)
	t2 := newTeam(t, "red",
		unit{name: "C", hp: 1, speed: 120},
		unit{name: "D", hp: 1, speed: 90},
	)
	s := NewScheduler(t1, t2, 0.07)
	a, b := t1.Members()[0], t1.Members()[1]
	c, d := t2.Members()[0], t2.Members()[1]

	assert.Nil(t, s.Ready())

	a.FillAttackGauge(1)
	b.FillAttackGauge(1)
	c.FillAttackGauge(1)
	assert.Equal(t, b, s.Ready(), "same gauge: faster wins, team1 before team2")

	d.FillAttackGauge(1.01)
	assert.Equal(t, d, s.Ready(), "higher gauge wins regardless of speed")

	d.SetCurrentHP(0)
	assert.Equal(t, b, s.Ready(), "dead creatures never move")
}

func TestScheduler_Stalled(t *testing.T) {
	t1 := newTeam(t, "blue", unit{name: "A", hp: 1})
	t2 := newTeam(t, "red", unit{name: "B", hp: 1, speed: 100})
	t2.Members()[0].SetCurrentHP(0)
	s := NewScheduler(t1, t2, 0.07)

	_, _, err := s.Next()
	assert.ErrorIs(t, err, ErrStalled)
}
