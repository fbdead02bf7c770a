package data

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/legendarena/internal/game/effect"
	"github.com/udisondev/legendarena/internal/model"
)

// MinMoveBlockTurns is the shortest useful duration of an effect that stops
// its holder from moving. Effects count down at the start of the holder's
// turn, so a one-turn stun expires before it can block anything.
const MinMoveBlockTurns = 2

//go:embed catalog.yaml
var defaultCatalog []byte

// Catalog is the on-disk description of creatures, skills and levels.
type Catalog struct {
	Skills    []SkillDef    `yaml:"skills"`
	Creatures []CreatureDef `yaml:"creatures"`
	Levels    []LevelDef    `yaml:"levels"`
}

// SkillDef describes one skill template.
type SkillDef struct {
	ID       string                    `yaml:"id"`
	Name     string                    `yaml:"name"`
	Kind     string                    `yaml:"kind"` // active, passive, leader
	MaxLevel int                       `yaml:"max_level"`
	Active   *model.ActiveSkill        `yaml:"active"`
	Passive  *model.PassiveSkillEffect `yaml:"passive"`
	Leader   *model.LeaderSkillEffect  `yaml:"leader"`
}

// CreatureDef describes one creature template.
type CreatureDef struct {
	Name     string          `yaml:"name"`
	Elements []model.Element `yaml:"elements"`
	Rating   int             `yaml:"rating"`
	Level    int             `yaml:"level"`
	Base     model.BaseStats `yaml:"base"`
	Skills   []string        `yaml:"skills"`
	Runes    []model.Rune    `yaml:"runes"`

	// SkillLevel raises every skill to this level when instantiated, capped
	// by the skill's max level.
	SkillLevel int `yaml:"skill_level"`
}

// LevelDef describes a campaign stage: the enemy team the player faces.
type LevelDef struct {
	Name    string   `yaml:"name"`
	Enemies []string `yaml:"enemies"`
}

// DefaultCatalog parses the embedded catalog.
func DefaultCatalog() (*Catalog, error) {
	return ParseCatalog(defaultCatalog)
}

// LoadCatalog reads a catalog from a YAML file. An empty path loads the
// embedded catalog.
func LoadCatalog(path string) (*Catalog, error) {
	if path == "" {
		return DefaultCatalog()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog %s: %w", path, err)
	}
	c, err := ParseCatalog(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

// ParseCatalog decodes and validates a YAML catalog. Base stats start from
// model.DefaultBaseStats, so probability stats may be omitted.
func ParseCatalog(data []byte) (*Catalog, error) {
	var raw struct {
		Skills    []SkillDef  `yaml:"skills"`
		Creatures []yaml.Node `yaml:"creatures"`
		Levels    []LevelDef  `yaml:"levels"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}

	c := &Catalog{Skills: raw.Skills, Levels: raw.Levels}
	for i := range raw.Creatures {
		def := CreatureDef{Base: model.DefaultBaseStats(), Rating: 1, Level: 1, SkillLevel: 1}
		if err := raw.Creatures[i].Decode(&def); err != nil {
			return nil, fmt.Errorf("parsing creature #%d: %w", i, err)
		}
		c.Creatures = append(c.Creatures, def)
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks references and value ranges across the catalog.
func (c *Catalog) Validate() error {
	skills := make(map[string]bool, len(c.Skills))
	for _, d := range c.Skills {
		if d.ID == "" {
			return fmt.Errorf("skill %q has no id", d.Name)
		}
		if skills[d.ID] {
			return fmt.Errorf("duplicate skill id %q", d.ID)
		}
		if _, err := d.build(); err != nil {
			return err
		}
		if err := d.checkEffects(); err != nil {
			return err
		}
		skills[d.ID] = true
	}

	creatures := make(map[string]bool, len(c.Creatures))
	for _, d := range c.Creatures {
		if d.Name == "" {
			return fmt.Errorf("creature without name")
		}
		if creatures[d.Name] {
			return fmt.Errorf("duplicate creature %q", d.Name)
		}
		if d.Rating < 1 || d.Rating > 6 {
			return fmt.Errorf("creature %q: rating %d out of range 1-6", d.Name, d.Rating)
		}
		if d.Level < 1 {
			return fmt.Errorf("creature %q: level must be positive", d.Name)
		}
		if d.SkillLevel < 1 {
			return fmt.Errorf("creature %q: skill_level must be positive", d.Name)
		}
		for _, e := range d.Elements {
			if !e.IsValid() {
				return fmt.Errorf("creature %q: unknown element %q", d.Name, e)
			}
		}
		for _, id := range d.Skills {
			if !skills[id] {
				return fmt.Errorf("creature %q: unknown skill %q", d.Name, id)
			}
		}
		for i := range d.Runes {
			if _, err := d.Runes[i].Source(); err != nil {
				return fmt.Errorf("creature %q: %w", d.Name, err)
			}
		}
		creatures[d.Name] = true
	}

	for _, l := range c.Levels {
		for _, name := range l.Enemies {
			if !creatures[name] {
				return fmt.Errorf("level %q: unknown creature %q", l.Name, name)
			}
		}
		if len(l.Enemies) > model.MaxTeamSize {
			return fmt.Errorf("level %q: %d enemies exceed team size", l.Name, len(l.Enemies))
		}
	}
	return nil
}

func (d SkillDef) build() (*model.Skill, error) {
	var s *model.Skill
	switch d.Kind {
	case "active":
		if d.Active == nil {
			return nil, fmt.Errorf("skill %q: missing active section", d.ID)
		}
		s = model.NewActiveSkill(d.ID, d.Name, *d.Active)
	case "passive":
		if d.Passive == nil {
			return nil, fmt.Errorf("skill %q: missing passive section", d.ID)
		}
		s = model.NewPassiveSkill(d.ID, d.Name, *d.Passive)
	case "leader":
		if d.Leader == nil {
			return nil, fmt.Errorf("skill %q: missing leader section", d.ID)
		}
		s = model.NewLeaderSkill(d.ID, d.Name, *d.Leader)
	default:
		return nil, fmt.Errorf("skill %q: unknown kind %q", d.ID, d.Kind)
	}
	s.MaxLevel = d.MaxLevel
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s.Clone(), nil
}

func (d SkillDef) checkEffects() error {
	var beneficial, harmful []model.EffectTemplate
	switch {
	case d.Active != nil:
		beneficial, harmful = d.Active.BeneficialEffects, d.Active.HarmfulEffects
	case d.Passive != nil:
		beneficial, harmful = d.Passive.BeneficialEffectsToAllies, d.Passive.HarmfulEffectsToEnemies
	}
	for _, tpl := range beneficial {
		if err := checkTemplate(d.ID, tpl, model.Beneficial); err != nil {
			return err
		}
	}
	for _, tpl := range harmful {
		if err := checkTemplate(d.ID, tpl, model.Harmful); err != nil {
			return err
		}
	}
	return nil
}

func checkTemplate(skillID string, tpl model.EffectTemplate, kind model.EffectKind) error {
	spec, ok := effect.Lookup(tpl.Name)
	if !ok {
		return fmt.Errorf("skill %q: unknown effect %q", skillID, tpl.Name)
	}
	if spec.Kind != kind {
		return fmt.Errorf("skill %q: effect %s is not %s", skillID, tpl.Name, kind)
	}
	if tpl.Turns < 1 {
		return fmt.Errorf("skill %q: effect %s needs a positive duration", skillID, tpl.Name)
	}
	if spec.Disables&model.CapMove != 0 && tpl.Turns < MinMoveBlockTurns {
		return fmt.Errorf("skill %q: effect %s lasts %d turn, it needs at least %d to block a move",
			skillID, tpl.Name, tpl.Turns, MinMoveBlockTurns)
	}
	return nil
}
