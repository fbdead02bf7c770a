package model

// MaxTeamSize is the maximum number of creatures in a team.
const MaxTeamSize = 5

// Team — упорядоченный набор существ с лидером.
// Leader is always a member or nil.
type Team struct {
	name      string
	creatures []*Creature
	leader    *Creature
}

// NewTeam создаёт пустую команду.
func NewTeam(name string) *Team {
	return &Team{name: name}
}

// Name returns the team name.
func (t *Team) Name() string { return t.name }

// Size returns the number of members.
func (t *Team) Size() int { return len(t.creatures) }

// Members returns the creatures in slot order.
func (t *Team) Members() []*Creature {
	out := make([]*Creature, len(t.creatures))
	copy(out, t.creatures)
	return out
}

// Contains reports whether c is a member.
func (t *Team) Contains(c *Creature) bool {
	return t.indexOf(c) >= 0
}

// AddCreature appends c. The first creature added becomes the leader.
// Fails if the team is full or c is nil or already a member.
func (t *Team) AddCreature(c *Creature) bool {
	if c == nil || len(t.creatures) >= MaxTeamSize || t.Contains(c) {
		return false
	}
	t.creatures = append(t.creatures, c)
	if t.leader == nil {
		t.leader = c
	}
	return true
}

// RemoveCreature drops c. If c was the leader, the next member in slot order leads.
func (t *Team) RemoveCreature(c *Creature) bool {
	i := t.indexOf(c)
	if i < 0 {
		return false
	}
	t.creatures = append(t.creatures[:i], t.creatures[i+1:]...)
	if t.leader == c {
		t.leader = nil
		if len(t.creatures) > 0 {
			t.leader = t.creatures[0]
		}
	}
	return true
}

// SetLeader makes c the leader. Fails if c is not a member.
func (t *Team) SetLeader(c *Creature) bool {
	if !t.Contains(c) {
		return false
	}
	t.leader = c
	return true
}

// Leader returns the leader, or nil for an empty team.
func (t *Team) Leader() *Creature { return t.leader }

// Alive returns the living members in slot order.
func (t *Team) Alive() []*Creature {
	out := make([]*Creature, 0, len(t.creatures))
	for _, c := range t.creatures {
		if c.IsAlive() {
			out = append(out, c)
		}
	}
	return out
}

// AllDied reports whether every member is at 0 HP or below.
// An empty team counts as defeated.
func (t *Team) AllDied() bool {
	for _, c := range t.creatures {
		if c.IsAlive() {
			return false
		}
	}
	return true
}

// RecoverAll restores every member to its pre-battle state.
func (t *Team) RecoverAll() {
	for _, c := range t.creatures {
		c.Restore()
	}
}

func (t *Team) indexOf(c *Creature) int {
	for i, m := range t.creatures {
		if m == c {
			return i
		}
	}
	return -1
}
