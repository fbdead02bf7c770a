package battle

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/legendarena/internal/config"
	"github.com/udisondev/legendarena/internal/data"
	"github.com/udisondev/legendarena/internal/game/combat"
	"github.com/udisondev/legendarena/internal/game/dice"
	"github.com/udisondev/legendarena/internal/game/effect"
	"github.com/udisondev/legendarena/internal/model"
)

type controllerFunc func(b *Battle, actor *model.Creature) Decision

func (f controllerFunc) Decide(b *Battle, actor *model.Creature) Decision { return f(b, actor) }

// attackFirst always normal-attacks the first living enemy.
var attackFirst = controllerFunc(func(b *Battle, actor *model.Creature) Decision {
	alive := b.Enemies(actor).Alive()
	return Decision{Action: ActionNormalAttack, Target: alive[0]}
})

type unit struct {
	name    string
	hp      float64
	attack  float64
	speed   float64
	rating  int
	level   int
	element model.Element
}

func (u unit) build() *model.Creature {
	base := model.DefaultBaseStats()
	base.MaxHP = u.hp
	base.MaxMP = 100
	base.Attack = u.attack
	base.AttackSpeed = u.speed
	el := u.element
	if el == "" {
		el = model.ElementNeutral
	}
	rating, level := u.rating, u.level
	if rating == 0 {
		rating = 1
	}
	if level == 0 {
		level = 1
	}
	return model.NewCreature(u.name, []model.Element{el}, rating, level, base)
}

func newTeam(t *testing.T, name string, units ...unit) *model.Team {
	t.Helper()
	team := model.NewTeam(name)
	for _, u := range units {
		require.True(t, team.AddCreature(u.build()))
	}
	return team
}

// 0.5 never crits, always beats the minimum resist chance and never triggers
// chances below one half.
func newBattle(t *testing.T, t1, t2 *model.Team, cfg config.Battle, opts ...Option) *Battle {
	t.Helper()
	opts = append([]Option{
		WithRand(&dice.Fixed{Values: []float64{0.5}}),
		WithControllers(attackFirst, attackFirst),
	}, opts...)
	b, err := New(t1, t2, cfg, opts...)
	require.NoError(t, err)
	return b
}

func TestNew_Validation(t *testing.T) {
	a := newTeam(t, "a", unit{name: "x", hp: 10, speed: 1})
	b := newTeam(t, "b", unit{name: "y", hp: 10, speed: 1})
	cfg := config.DefaultBattle()
	ctrl := WithControllers(attackFirst, attackFirst)

	_, err := New(a, a, cfg, ctrl)
	assert.Error(t, err)

	_, err = New(a, model.NewTeam("empty"), cfg, ctrl)
	assert.Error(t, err)

	_, err = New(a, b, cfg)
	assert.Error(t, err, "controllers are required")

	bad := cfg
	bad.GaugeFillRate = 0
	_, err = New(a, b, bad, ctrl)
	assert.Error(t, err)

	shared := b.Members()[0]
	require.True(t, a.AddCreature(shared))
	_, err = New(a, b, cfg, ctrl)
	assert.Error(t, err, "creature on both teams")
}

func TestRun_Team1Wins(t *testing.T) {
	t1 := newTeam(t, "blue", unit{name: "Hero", hp: 10000, attack: 10000, speed: 200})
	t2 := newTeam(t, "red",
		unit{name: "Imp", hp: 1000, attack: 10, speed: 100, rating: 2, level: 5},
		unit{name: "Goblin", hp: 1000, attack: 10, speed: 90, rating: 3, level: 4},
	)
	var seen []combat.Event
	b := newBattle(t, t1, t2, config.DefaultBattle(), WithObserver(func(e combat.Event) { seen = append(seen, e) }))

	state, err := b.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, StateTeam1Won, state)
	assert.False(t, b.InProgress())
	assert.Equal(t, model.Reward{Experience: (10 + 12) * 100, Gold: (10 + 12) * 250}, b.Reward())
	assert.Equal(t, b.Events(), seen)
	assert.Equal(t, combat.EventBattleEnd, seen[len(seen)-1].Kind)

	for _, c := range append(t1.Members(), t2.Members()...) {
		assert.Equal(t, c.MaxHP(), c.CurrentHP(), "%s recovered", c.Name())
		assert.Zero(t, c.AttackGauge())
	}

	_, err = b.Run(context.Background())
	assert.ErrorIs(t, err, ErrBattleOver)
}

func TestRun_Team2WinsNoReward(t *testing.T) {
	t1 := newTeam(t, "blue", unit{name: "Weakling", hp: 1000, attack: 10, speed: 100})
	t2 := newTeam(t, "red", unit{name: "Brute", hp: 10000, attack: 10000, speed: 200, rating: 6, level: 40})
	b := newBattle(t, t1, t2, config.DefaultBattle())

	state, err := b.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StateTeam2Won, state)
	assert.True(t, b.Reward().IsZero())
}

func TestRun_DrawAfterMaxTurns(t *testing.T) {
	t1 := newTeam(t, "blue", unit{name: "Pacifist", hp: 1000, speed: 100})
	t2 := newTeam(t, "red", unit{name: "Monk", hp: 1000, speed: 100})
	cfg := config.DefaultBattle()
	cfg.MaxTurns = 10
	b := newBattle(t, t1, t2, cfg)

	state, err := b.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StateDraw, state)
	assert.Equal(t, 10, b.Turn())
	assert.True(t, b.Reward().IsZero())
}

func TestRun_DrawWhenStalled(t *testing.T) {
	t1 := newTeam(t, "blue", unit{name: "Statue", hp: 1000})
	t2 := newTeam(t, "red", unit{name: "Rock", hp: 1000})
	b := newBattle(t, t1, t2, config.DefaultBattle())

	state, err := b.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StateDraw, state)
	assert.Zero(t, b.Turn())
}

func TestRun_Canceled(t *testing.T) {
	t1 := newTeam(t, "blue", unit{name: "A", hp: 1000, speed: 100})
	t2 := newTeam(t, "red", unit{name: "B", hp: 1000, speed: 100})
	b := newBattle(t, t1, t2, config.DefaultBattle())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := b.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRun_SameSeedSameDigest(t *testing.T) {
	play := func() []byte {
		t1 := newTeam(t, "blue",
			unit{name: "Salamander", hp: 8000, attack: 900, speed: 110, element: model.ElementFire},
			unit{name: "Undine", hp: 9000, attack: 800, speed: 105, element: model.ElementWater},
		)
		t2 := newTeam(t, "red",
			unit{name: "Golem", hp: 12000, attack: 700, speed: 90, element: model.ElementTerra},
			unit{name: "Sylph", hp: 7000, attack: 1000, speed: 120, element: model.ElementWind},
		)
		b, err := New(t1, t2, config.DefaultBattle(),
			WithRand(dice.NewSeeded(2024)),
			WithControllers(attackFirst, attackFirst))
		require.NoError(t, err)
		_, err = b.Run(context.Background())
		require.NoError(t, err)
		assert.False(t, b.InProgress())
		return b.Digest()
	}

	first := play()
	assert.Len(t, first, 32)
	assert.Equal(t, first, play())
}

func TestTakeTurn_StunnedSkips(t *testing.T) {
	t1 := newTeam(t, "blue", unit{name: "Stunned", hp: 1000, attack: 1000, speed: 100})
	t2 := newTeam(t, "red", unit{name: "Dummy", hp: 1000, speed: 1})
	b := newBattle(t, t1, t2, config.DefaultBattle())
	actor := t1.Members()[0]
	require.NotNil(t, effect.Apply(actor, model.EffectTemplate{Name: model.EffectStun, Turns: 2}))
	actor.FillAttackGauge(1)

	b.takeTurn(context.Background(), actor)

	assert.Equal(t, 1000.0, t2.Members()[0].CurrentHP())
	assert.Zero(t, actor.AttackGauge())
	assert.True(t, actor.HasEffect(model.EffectStun), "one turn left")
	assert.Equal(t, combat.EventSkip, b.events[len(b.events)-1].Kind)
}

func TestTakeTurn_CatalogCrowdControlSkipsMove(t *testing.T) {
	cat, err := data.DefaultCatalog()
	require.NoError(t, err)
	reg, err := data.NewRegistry(cat)
	require.NoError(t, err)

	tests := []struct {
		name    string
		caster  string
		skillID string
		victim  string
		effect  model.EffectName
	}{
		{name: "rock smash stuns", caster: "Golem", skillID: "rock_smash", victim: "Frostling", effect: model.EffectStun},
		{name: "frost nova freezes", caster: "Frostling", skillID: "frost_nova", victim: "Golem", effect: model.EffectFreeze},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t1, err := reg.BuildTeam("blue", tt.caster)
			require.NoError(t, err)
			t2, err := reg.BuildTeam("red", tt.victim)
			require.NoError(t, err)
			b := newBattle(t, t1, t2, config.DefaultBattle())
			caster, victim := t1.Members()[0], t2.Members()[0]

			var s *model.Skill
			for _, owned := range caster.Skills() {
				if owned.ID == tt.skillID {
					s = owned
				}
			}
			require.NotNil(t, s)

			caster.FillAttackGauge(1)
			ok, err := b.ExecuteAction(caster, victim, ActionUseSkill, s)
			require.NoError(t, err)
			require.True(t, ok)
			require.True(t, victim.HasEffect(tt.effect))
			hp := caster.CurrentHP()

			victim.FillAttackGauge(1)
			b.takeTurn(context.Background(), victim)

			assert.Equal(t, combat.EventSkip, b.events[len(b.events)-1].Kind)
			assert.Equal(t, hp, caster.CurrentHP(), "the held creature did not attack")

			// The following turn the effect has run out and the victim acts.
			victim.FillAttackGauge(1)
			b.takeTurn(context.Background(), victim)
			assert.False(t, victim.HasEffect(tt.effect))
			assert.Less(t, caster.CurrentHP(), hp)
		})
	}
}

func TestTakeTurn_ExtraTurns(t *testing.T) {
	t1 := newTeam(t, "blue", unit{name: "Hasty", hp: 100000, attack: 100, speed: 100})
	t2 := newTeam(t, "red", unit{name: "Dummy", hp: 100000, speed: 1})
	// Per action: crit roll, then the extra-turn roll. 0.3 grants the extra
	// turn, 0.9 ends the chain.
	rolls := &dice.Fixed{Values: []float64{0.5, 0.3, 0.5, 0.3, 0.5, 0.9}}
	b := newBattle(t, t1, t2, config.DefaultBattle(), WithRand(rolls))
	hasty, dummy := t1.Members()[0], t2.Members()[0]
	require.True(t, hasty.AddSource(model.ModifierSource{
		ID:        "test:extra-turn",
		Kind:      model.SourceRune,
		Modifiers: []model.Modifier{model.Flat(model.StatExtraTurnChance, 0.5)},
	}))
	require.True(t, hasty.SpendMP(hasty.MaxMP()))
	hasty.FillAttackGauge(1)

	b.takeTurn(context.Background(), hasty)

	var extra, attacks int
	for _, e := range b.events {
		switch {
		case e.Kind == combat.EventExtraTurn:
			extra++
		case e.Kind == combat.EventDamage && e.Target == dummy.Name():
			attacks++
		}
	}
	assert.Equal(t, 2, extra)
	assert.Equal(t, 3, attacks)
	assert.InDelta(t, 3*hasty.MaxMP()*config.DefaultBattle().MPRegenFraction, hasty.CurrentMP(), 1e-9,
		"MP regenerates before every repeat")
	assert.Equal(t, 1, b.Turn(), "extra turns do not advance the turn counter")
}

func TestTakeTurn_ExtraTurnStopsWhenBattleEnds(t *testing.T) {
	t1 := newTeam(t, "blue", unit{name: "Hasty", hp: 100000, attack: 100000, speed: 100})
	t2 := newTeam(t, "red", unit{name: "Victim", hp: 100, speed: 1})
	b := newBattle(t, t1, t2, config.DefaultBattle(), WithRand(&dice.Fixed{Values: []float64{0}}))
	hasty := t1.Members()[0]
	require.True(t, hasty.AddSource(model.ModifierSource{
		ID:        "test:extra-turn",
		Kind:      model.SourceRune,
		Modifiers: []model.Modifier{model.Flat(model.StatExtraTurnChance, 0.5)},
	}))
	hasty.FillAttackGauge(1)

	b.takeTurn(context.Background(), hasty)

	assert.Equal(t, StateTeam1Won, b.State())
	for _, e := range b.events {
		assert.NotEqual(t, combat.EventExtraTurn, e.Kind)
	}
}

func TestTakeTurn_Counterattack(t *testing.T) {
	t1 := newTeam(t, "blue", unit{name: "Striker", hp: 100000, attack: 100, speed: 100})
	t2 := newTeam(t, "red", unit{name: "Porcupine", hp: 100000, attack: 100, speed: 1})
	// COUNTER gives a 0.5 chance; a roll of 0.4 lands it and still misses the crit.
	b := newBattle(t, t1, t2, config.DefaultBattle(), WithRand(&dice.Fixed{Values: []float64{0.4}}))
	striker, porcupine := t1.Members()[0], t2.Members()[0]
	require.NotNil(t, effect.Apply(porcupine, model.EffectTemplate{Name: model.EffectCounter, Turns: 2}))

	b.takeTurn(context.Background(), striker)

	assert.Less(t, striker.CurrentHP(), striker.MaxHP())
	assert.Less(t, porcupine.CurrentHP(), porcupine.MaxHP())
	var counters int
	for _, e := range b.events {
		if e.Kind == combat.EventCounter {
			counters++
		}
	}
	assert.Equal(t, 1, counters)
}

func TestExecuteAction(t *testing.T) {
	t1 := newTeam(t, "blue",
		unit{name: "Knight", hp: 10000, attack: 1000, speed: 100},
		unit{name: "Cleric", hp: 10000, attack: 100, speed: 100},
	)
	t2 := newTeam(t, "red", unit{name: "Orc", hp: 10000, speed: 100})
	b := newBattle(t, t1, t2, config.DefaultBattle())
	knight, cleric, orc := t1.Members()[0], t1.Members()[1], t2.Members()[0]

	tests := []struct {
		name    string
		actor   *model.Creature
		target  *model.Creature
		action  Action
		wantErr error
	}{
		{name: "attack ally", actor: knight, target: cleric, action: ActionNormalAttack, wantErr: ErrBadTarget},
		{name: "attack self", actor: knight, target: knight, action: ActionNormalAttack, wantErr: ErrBadTarget},
		{name: "attack nil", actor: knight, target: nil, action: ActionNormalAttack, wantErr: ErrBadTarget},
		{name: "heal enemy", actor: cleric, target: orc, action: ActionNormalHeal, wantErr: ErrBadTarget},
		{name: "unknown", actor: knight, target: orc, action: "DANCE", wantErr: ErrUnknownAction},
		{name: "stranger", actor: model.NewCreature("x", nil, 1, 1, model.DefaultBaseStats()), target: orc, action: ActionNormalAttack, wantErr: ErrNotInBattle},
		{name: "not ready", actor: knight, target: orc, action: ActionNormalAttack, wantErr: ErrNotReady},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.wantErr != ErrNotReady {
				tt.actor.FillAttackGauge(1)
			}
			ok, err := b.ExecuteAction(tt.actor, tt.target, tt.action, nil)
			assert.False(t, ok)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, 10000.0, orc.CurrentHP())
			assert.Equal(t, 10000.0, cleric.CurrentHP())
			tt.actor.ResetAttackGauge()
		})
	}

	knight.FillAttackGauge(1.2)
	ok, err := b.ExecuteAction(knight, orc, ActionNormalAttack, nil)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 10000.0-3500, orc.CurrentHP())
	assert.Zero(t, knight.AttackGauge())

	cleric.SetCurrentHP(5000)
	knight.FillAttackGauge(1)
	ok, err = b.ExecuteAction(knight, cleric, ActionNormalHeal, nil)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 7000.0, cleric.CurrentHP())
}

func TestExecuteAction_KillEndsBattle(t *testing.T) {
	t1 := newTeam(t, "blue", unit{name: "Knight", hp: 10000, attack: 100000, speed: 100})
	t2 := newTeam(t, "red", unit{name: "Orc", hp: 100, speed: 100, rating: 2, level: 3})
	b := newBattle(t, t1, t2, config.DefaultBattle())
	knight, orc := t1.Members()[0], t2.Members()[0]

	knight.FillAttackGauge(1)
	ok, err := b.ExecuteAction(knight, orc, ActionNormalAttack, nil)
	require.NoError(t, err)
	assert.True(t, ok)

	assert.Equal(t, StateTeam1Won, b.State())
	assert.Equal(t, model.Reward{Experience: 6 * 100, Gold: 6 * 250}, b.Reward())
	assert.Equal(t, combat.EventBattleEnd, b.events[len(b.events)-1].Kind)
	assert.Equal(t, orc.MaxHP(), orc.CurrentHP(), "teams recover when the battle ends")

	knight.FillAttackGauge(1)
	ok, err = b.ExecuteAction(knight, orc, ActionNormalAttack, nil)
	assert.False(t, ok)
	assert.ErrorIs(t, err, ErrBattleOver)
}

func TestExecuteAction_Counterattack(t *testing.T) {
	t1 := newTeam(t, "blue", unit{name: "Striker", hp: 100000, attack: 100, speed: 100})
	t2 := newTeam(t, "red", unit{name: "Porcupine", hp: 100000, attack: 100, speed: 1})
	b := newBattle(t, t1, t2, config.DefaultBattle(), WithRand(&dice.Fixed{Values: []float64{0.4}}))
	striker, porcupine := t1.Members()[0], t2.Members()[0]
	require.NotNil(t, effect.Apply(porcupine, model.EffectTemplate{Name: model.EffectCounter, Turns: 2}))

	striker.FillAttackGauge(1)
	ok, err := b.ExecuteAction(striker, porcupine, ActionNormalAttack, nil)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Less(t, striker.CurrentHP(), striker.MaxHP())
	assert.True(t, b.InProgress())
}

func TestComputeReward(t *testing.T) {
	team := newTeam(t, "red",
		unit{name: "a", hp: 1, rating: 1, level: 1},
		unit{name: "b", hp: 1, rating: 6, level: 40},
	)
	r := ComputeReward(team, config.DefaultBattle())
	assert.Equal(t, 241*100, r.Experience)
	assert.Equal(t, 241*250, r.Gold)
}
