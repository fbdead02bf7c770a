package model

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFullTeam(t *testing.T) *Team {
	t.Helper()
	team := NewTeam("blue")
	for i := range MaxTeamSize {
		require.True(t, team.AddCreature(newTestCreature(t, fmt.Sprintf("m%d", i))))
	}
	return team
}

func TestTeam_AddCreature(t *testing.T) {
	team := newFullTeam(t)

	assert.Equal(t, MaxTeamSize, team.Size())
	assert.False(t, team.AddCreature(newTestCreature(t, "extra")), "team full")
	assert.False(t, team.AddCreature(nil))
	assert.Equal(t, team.Members()[0], team.Leader(), "first added leads")
}

func TestTeam_Leader(t *testing.T) {
	team := newFullTeam(t)
	members := team.Members()

	require.True(t, team.SetLeader(members[2]))
	assert.Equal(t, members[2], team.Leader())
	assert.False(t, team.SetLeader(newTestCreature(t, "stranger")))

	require.True(t, team.RemoveCreature(members[2]))
	assert.Equal(t, members[0], team.Leader())
	assert.False(t, team.RemoveCreature(members[2]))
}

// Scenario: five creatures at 0 HP are all dead; one at 1 HP keeps the team alive.
func TestTeam_AllDied(t *testing.T) {
	team := newFullTeam(t)
	for _, c := range team.Members() {
		c.SetCurrentHP(0)
	}
	assert.True(t, team.AllDied())
	assert.Empty(t, team.Alive())

	team.Members()[3].SetCurrentHP(1)
	assert.False(t, team.AllDied())
	assert.Len(t, team.Alive(), 1)
}

func TestTeam_RecoverAll(t *testing.T) {
	team := newFullTeam(t)
	for _, c := range team.Members() {
		c.TakeDamage(50000)
	}

	team.RecoverAll()

	for _, c := range team.Members() {
		assert.Equal(t, c.MaxHP(), c.CurrentHP())
	}
	assert.False(t, team.AllDied())
}
