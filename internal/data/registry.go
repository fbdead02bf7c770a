package data

import (
	"fmt"
	"sync"

	"github.com/udisondev/legendarena/internal/model"
)

// Level is a numbered campaign stage.
type Level struct {
	Number  int
	Name    string
	Enemies []string
}

// Registry holds creature and skill templates and hands out fresh, unshared
// instances of them. It also numbers levels as they are added.
//
// Thread-safe: templates are read-only after NewRegistry, the level list is
// guarded by mu.
type Registry struct {
	skills    map[string]*model.Skill
	creatures map[string]CreatureDef
	order     []string

	growth float64

	mu        sync.Mutex
	levels    []Level
	nextLevel int
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithSkillGrowth sets the multiplier growth applied per skill level.
func WithSkillGrowth(f float64) RegistryOption {
	return func(r *Registry) { r.growth = f }
}

// NewRegistry builds a registry from a validated catalog and registers its levels.
func NewRegistry(c *Catalog, opts ...RegistryOption) (*Registry, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	r := &Registry{
		skills:    make(map[string]*model.Skill, len(c.Skills)),
		creatures: make(map[string]CreatureDef, len(c.Creatures)),
		growth:    model.DefaultSkillGrowthFactor,
		nextLevel: 1,
	}
	for _, opt := range opts {
		opt(r)
	}
	for _, d := range c.Skills {
		s, err := d.build()
		if err != nil {
			return nil, err
		}
		r.skills[d.ID] = s
	}
	for _, d := range c.Creatures {
		r.creatures[d.Name] = d
		r.order = append(r.order, d.Name)
	}
	for _, l := range c.Levels {
		if _, err := r.AddLevel(l.Name, l.Enemies); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// CreatureNames returns the template names in catalog order.
func (r *Registry) CreatureNames() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Skill returns a fresh copy of the skill template with id.
func (r *Registry) Skill(id string) (*model.Skill, bool) {
	s, ok := r.skills[id]
	if !ok {
		return nil, false
	}
	return s.Clone(), true
}

// NewCreature instantiates the named template with its skills and runes.
func (r *Registry) NewCreature(name string) (*model.Creature, error) {
	d, ok := r.creatures[name]
	if !ok {
		return nil, fmt.Errorf("unknown creature %q", name)
	}

	c := model.NewCreature(d.Name, d.Elements, d.Rating, d.Level, d.Base)
	for _, id := range d.Skills {
		s, _ := r.Skill(id)
		for s.Level < d.SkillLevel {
			if !s.LevelUp(r.growth) {
				break
			}
		}
		c.AddSkill(s)
	}
	for i := range d.Runes {
		rn := d.Runes[i]
		rn.SubStats = append([]model.RuneLine(nil), rn.SubStats...)
		if !c.EquipRune(&rn) {
			return nil, fmt.Errorf("creature %q: cannot equip rune %s in slot %d", name, rn.ID, rn.Slot)
		}
	}
	c.Restore()
	return c, nil
}

// BuildTeam instantiates a team from template names. The first creature leads.
func (r *Registry) BuildTeam(teamName string, names ...string) (*model.Team, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("team %q: no creatures", teamName)
	}
	if len(names) > model.MaxTeamSize {
		return nil, fmt.Errorf("team %q: %d creatures exceed team size %d", teamName, len(names), model.MaxTeamSize)
	}
	t := model.NewTeam(teamName)
	for _, n := range names {
		c, err := r.NewCreature(n)
		if err != nil {
			return nil, fmt.Errorf("team %q: %w", teamName, err)
		}
		t.AddCreature(c)
	}
	return t, nil
}

// AddLevel registers a stage and assigns it the next level number.
func (r *Registry) AddLevel(name string, enemies []string) (Level, error) {
	for _, e := range enemies {
		if _, ok := r.creatures[e]; !ok {
			return Level{}, fmt.Errorf("level %q: unknown creature %q", name, e)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	l := Level{Number: r.nextLevel, Name: name, Enemies: append([]string(nil), enemies...)}
	r.nextLevel++
	r.levels = append(r.levels, l)
	return l, nil
}

// Levels returns the registered levels in number order.
func (r *Registry) Levels() []Level {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Level, len(r.levels))
	copy(out, r.levels)
	return out
}

// LevelTeam builds the enemy team of level number n.
func (r *Registry) LevelTeam(n int) (*model.Team, error) {
	r.mu.Lock()
	var (
		l     Level
		found bool
	)
	for _, cand := range r.levels {
		if cand.Number == n {
			l, found = cand, true
			break
		}
	}
	r.mu.Unlock()

	if !found {
		return nil, fmt.Errorf("unknown level %d", n)
	}
	return r.BuildTeam(l.Name, l.Enemies...)
}
