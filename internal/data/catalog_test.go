package data

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/legendarena/internal/model"
)

func TestDefaultCatalog(t *testing.T) {
	c, err := DefaultCatalog()
	require.NoError(t, err)

	assert.NotEmpty(t, c.Skills)
	assert.NotEmpty(t, c.Levels)

	names := make(map[string]CreatureDef, len(c.Creatures))
	for _, d := range c.Creatures {
		names[d.Name] = d
	}
	for _, want := range []string{"Salamander", "Undine", "Sylph", "Golem", "Wraith", "Seraph"} {
		assert.Contains(t, names, want)
	}

	// Omitted probability stats keep engine defaults.
	undine := names["Undine"]
	assert.Equal(t, model.MinCritRate, undine.Base.CritRate)
	assert.Equal(t, 1.5, undine.Base.CritDamage)
	assert.Equal(t, 11200.0, undine.Base.MaxHP)

	// Explicit values override them.
	assert.Equal(t, 0.3, names["Salamander"].Base.CritRate)
}

func TestParseCatalog_Defaults(t *testing.T) {
	c, err := ParseCatalog([]byte(`
creatures:
  - name: Blob
    base: {max_hp: 100, attack: 10, defense: 10, attack_speed: 100}
`))
	require.NoError(t, err)
	require.Len(t, c.Creatures, 1)

	d := c.Creatures[0]
	assert.Equal(t, 1, d.Rating)
	assert.Equal(t, 1, d.Level)
	assert.Equal(t, model.MinResistance, d.Base.Resistance)
}

func TestParseCatalog_ModifierOps(t *testing.T) {
	c, err := ParseCatalog([]byte(`
skills:
  - id: p
    name: P
    kind: passive
    passive:
      modifiers:
        - {stat: attack, op: percent_up, value: 10}
        - {stat: defense, op: percent_down, value: 5}
        - {stat: crit_rate, op: flat, value: 0.1}
`))
	require.NoError(t, err)

	mods := c.Skills[0].Passive.Modifiers
	require.Len(t, mods, 3)
	assert.Equal(t, model.Up(model.StatAttack, 10), mods[0])
	assert.Equal(t, model.Down(model.StatDefense, 5), mods[1])
	assert.Equal(t, model.Flat(model.StatCritRate, 0.1), mods[2])
}

func TestParseCatalog_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"malformed", "skills: [\n"},
		{"bad op", `
skills:
  - {id: p, name: P, kind: passive, passive: {modifiers: [{stat: attack, op: times, value: 2}]}}
`},
		{"unknown kind", "skills:\n  - {id: x, name: X, kind: ultimate}\n"},
		{"missing payload", "skills:\n  - {id: x, name: X, kind: active}\n"},
		{"unknown active type", "skills:\n  - {id: x, name: X, kind: active, active: {type: DANCE}}\n"},
		{"unknown effect", "skills:\n  - {id: x, name: X, kind: active, active: {type: ATTACK, harmful_effects: [{name: CONFUSION, turns: 2}]}}\n"},
		{"effect of wrong kind", "skills:\n  - {id: x, name: X, kind: active, active: {type: ATTACK, harmful_effects: [{name: ATTACK_UP, turns: 2}]}}\n"},
		{"zero turns", "skills:\n  - {id: x, name: X, kind: passive, passive: {beneficial_effects_to_allies: [{name: SHIELD, turns: 0}]}}\n"},
		{"one turn stun", "skills:\n  - {id: x, name: X, kind: active, active: {type: ATTACK, harmful_effects: [{name: STUN, turns: 1}]}}\n"},
		{"one turn sleep", "skills:\n  - {id: x, name: X, kind: passive, passive: {harmful_effects_to_enemies: [{name: SLEEP, turns: 1}]}}\n"},
		{"duplicate skill", `
skills:
  - {id: x, name: X, kind: leader, leader: {}}
  - {id: x, name: Y, kind: leader, leader: {}}
`},
		{"skill without id", "skills:\n  - {name: X, kind: leader, leader: {}}\n"},
		{"duplicate creature", "creatures:\n  - {name: A}\n  - {name: A}\n"},
		{"bad rating", "creatures:\n  - {name: A, rating: 7}\n"},
		{"bad level", "creatures:\n  - {name: A, level: 0}\n"},
		{"bad skill level", "creatures:\n  - {name: A, skill_level: 0}\n"},
		{"bad element", "creatures:\n  - {name: A, elements: [PLASMA]}\n"},
		{"unknown skill", "creatures:\n  - {name: A, skills: [nope]}\n"},
		{"bad rune", "creatures:\n  - {name: A, runes: [{id: r, slot: 1, main: {stat: LUCK, value: 1}}]}\n"},
		{"unknown enemy", "levels:\n  - {name: L, enemies: [Ghost]}\n"},
		{"too many enemies", `
creatures:
  - {name: A}
levels:
  - {name: L, enemies: [A, A, A, A, A, A]}
`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCatalog([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoadCatalog(t *testing.T) {
	t.Run("empty path uses embedded", func(t *testing.T) {
		c, err := LoadCatalog("")
		require.NoError(t, err)
		assert.NotEmpty(t, c.Creatures)
	})

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "catalog.yaml")
		require.NoError(t, os.WriteFile(path, []byte("creatures:\n  - {name: Solo}\n"), 0o600))

		c, err := LoadCatalog(path)
		require.NoError(t, err)
		require.Len(t, c.Creatures, 1)
		assert.Equal(t, "Solo", c.Creatures[0].Name)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadCatalog(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
}
