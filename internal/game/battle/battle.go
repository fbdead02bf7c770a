// Package battle runs team-versus-team battles: turn order, action
// execution, counterattacks, extra turns and the terminal outcome.
package battle

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/looplab/fsm"

	"github.com/udisondev/legendarena/internal/config"
	"github.com/udisondev/legendarena/internal/game/combat"
	"github.com/udisondev/legendarena/internal/game/dice"
	"github.com/udisondev/legendarena/internal/game/effect"
	"github.com/udisondev/legendarena/internal/game/skill"
	"github.com/udisondev/legendarena/internal/model"
)

// Battle states.
const (
	StateInProgress = "in_progress"
	StateTeam1Won   = "team1_won"
	StateTeam2Won   = "team2_won"
	StateDraw       = "draw"
)

const (
	eventTeam1Wins = "team1_wins"
	eventTeam2Wins = "team2_wins"
	eventDraw      = "draw"
)

// Controller picks the action for a creature whose turn it is.
type Controller interface {
	Decide(b *Battle, actor *model.Creature) Decision
}

// Option configures a Battle.
type Option func(*Battle)

// WithRand sets the random source for every roll in the battle.
func WithRand(src dice.Source) Option {
	return func(b *Battle) { b.rng = src }
}

// WithControllers sets who decides for team1 and team2.
func WithControllers(team1, team2 Controller) Option {
	return func(b *Battle) { b.controllers = [2]Controller{team1, team2} }
}

// WithObserver receives every event as it happens.
func WithObserver(obs combat.Sink) Option {
	return func(b *Battle) { b.observer = obs }
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(b *Battle) { b.log = l }
}

// Battle pairs two teams. team1 is the player side: only its victory pays a reward.
//
// Not safe for concurrent use. Creatures must not take part in two live
// battles at once.
type Battle struct {
	id    string
	team1 *model.Team
	team2 *model.Team
	cfg   config.Battle

	rng         dice.Source
	res         *combat.Resolver
	caster      *skill.Caster
	sched       *Scheduler
	state       *fsm.FSM
	controllers [2]Controller
	observer    combat.Sink
	log         *slog.Logger

	turn       int
	events     []combat.Event
	reward     model.Reward
	survivors  map[string]bool
	startedAt  time.Time
	finishedAt time.Time
}

// New prepares a battle between two non-empty teams.
func New(team1, team2 *model.Team, cfg config.Battle, opts ...Option) (*Battle, error) {
	if team1 == nil || team2 == nil || team1 == team2 {
		return nil, fmt.Errorf("battle needs two distinct teams")
	}
	if team1.Size() == 0 || team2.Size() == 0 {
		return nil, fmt.Errorf("battle needs non-empty teams")
	}
	for _, c := range team1.Members() {
		if team2.Contains(c) {
			return nil, fmt.Errorf("creature %s is on both teams", c.Name())
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("battle rules: %w", err)
	}

	b := &Battle{
		id:    uuid.NewString(),
		team1: team1,
		team2: team2,
		cfg:   cfg,
		rng:   dice.Default,
		log:   slog.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}
	if b.controllers[0] == nil || b.controllers[1] == nil {
		return nil, fmt.Errorf("battle needs a controller for each team")
	}

	b.res = combat.NewResolver(b.rng, cfg.ElementalOnCritOnly, b.record)
	b.caster = skill.NewCaster(b.res)
	b.sched = NewScheduler(team1, team2, cfg.GaugeFillRate)
	b.state = fsm.NewFSM(
		StateInProgress,
		fsm.Events{
			{Name: eventTeam1Wins, Src: []string{StateInProgress}, Dst: StateTeam1Won},
			{Name: eventTeam2Wins, Src: []string{StateInProgress}, Dst: StateTeam2Won},
			{Name: eventDraw, Src: []string{StateInProgress}, Dst: StateDraw},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, e *fsm.Event) {
				b.log.Debug("battle state changed",
					"battle", b.id,
					"from", e.Src,
					"to", e.Dst,
					"turn", b.turn)
			},
		},
	)
	return b, nil
}

// ID returns the battle identifier.
func (b *Battle) ID() string { return b.id }

// Team1 returns the player side.
func (b *Battle) Team1() *model.Team { return b.team1 }

// Team2 returns the opposing side.
func (b *Battle) Team2() *model.Team { return b.team2 }

// State returns the current state name.
func (b *Battle) State() string { return b.state.Current() }

// InProgress reports whether the battle has not ended yet.
func (b *Battle) InProgress() bool { return b.state.Is(StateInProgress) }

// Turn returns the number of turns taken so far.
func (b *Battle) Turn() int { return b.turn }

// Reward returns the reward earned; zero unless team1 won.
func (b *Battle) Reward() model.Reward { return b.reward }

// Events returns a copy of the event log.
func (b *Battle) Events() []combat.Event {
	out := make([]combat.Event, len(b.events))
	copy(out, b.events)
	return out
}

// Allies returns the team actor belongs to, or nil.
func (b *Battle) Allies(actor *model.Creature) *model.Team {
	allies, _, _ := b.sides(actor)
	return allies
}

// Enemies returns the team opposing actor, or nil.
func (b *Battle) Enemies(actor *model.Creature) *model.Team {
	_, enemies, _ := b.sides(actor)
	return enemies
}

// Rand returns the battle's random source.
func (b *Battle) Rand() dice.Source { return b.rng }

func (b *Battle) sides(c *model.Creature) (allies, enemies *model.Team, ok bool) {
	switch {
	case c == nil:
		return nil, nil, false
	case b.team1.Contains(c):
		return b.team1, b.team2, true
	case b.team2.Contains(c):
		return b.team2, b.team1, true
	default:
		return nil, nil, false
	}
}

func (b *Battle) controllerFor(c *model.Creature) Controller {
	if b.team1.Contains(c) {
		return b.controllers[0]
	}
	return b.controllers[1]
}

func (b *Battle) record(e combat.Event) {
	e.Turn = b.turn
	b.events = append(b.events, e)
	if b.observer != nil {
		b.observer(e)
	}
}

// Run plays the battle to the end and returns the final state. The context
// is checked between turns.
func (b *Battle) Run(ctx context.Context) (string, error) {
	if !b.InProgress() {
		return b.State(), ErrBattleOver
	}
	b.start()

	for b.InProgress() {
		if err := ctx.Err(); err != nil {
			return b.State(), fmt.Errorf("battle %s interrupted at turn %d: %w", b.id, b.turn, err)
		}
		if b.turn >= b.cfg.MaxTurns {
			b.finish(ctx, eventDraw)
			break
		}

		actor, _, err := b.sched.Next()
		if err != nil {
			b.log.Warn("battle cannot progress", "battle", b.id, "turn", b.turn, "err", err)
			b.finish(ctx, eventDraw)
			break
		}
		b.takeTurn(ctx, actor)
	}

	return b.State(), nil
}

func (b *Battle) start() {
	b.startedAt = time.Now()
	effect.ActivateLeaderSkill(b.team1)
	effect.ActivateLeaderSkill(b.team2)
	for _, t := range []*model.Team{b.team1, b.team2} {
		for _, c := range t.Members() {
			effect.ActivatePassives(c)
		}
	}
	b.log.Info("battle started",
		"battle", b.id,
		"team1", b.team1.Name(),
		"team2", b.team2.Name())
}

func (b *Battle) takeTurn(ctx context.Context, actor *model.Creature) {
	b.turn++
	b.record(combat.Event{Kind: combat.EventTurn, Actor: actor.Name(), Amount: actor.AttackGauge()})

	tick := effect.Tick(actor)
	if tick.Healed > 0 {
		b.record(combat.Event{Kind: combat.EventHeal, Target: actor.Name(), Amount: tick.Healed, Message: "recovery"})
	}
	if tick.Damaged > 0 {
		b.record(combat.Event{Kind: combat.EventDamage, Target: actor.Name(), Amount: tick.Damaged, Message: "continuous damage"})
	}
	for _, name := range tick.Expired {
		b.record(combat.Event{Kind: combat.EventEffectExpired, Target: actor.Name(), Message: string(name)})
	}
	cooling := skill.Cooling(actor)
	defer skill.TickCooldowns(cooling)
	effect.ActivatePassives(actor)

	if !actor.IsAlive() {
		b.record(combat.Event{Kind: combat.EventDeath, Target: actor.Name(), Message: "continuous damage"})
		actor.ResetAttackGauge()
		b.checkOutcome(ctx, actor)
		return
	}

	for {
		actor.RestoreMP(actor.MaxMP() * b.cfg.MPRegenFraction)

		if !actor.Can(model.CapMove) {
			b.record(combat.Event{Kind: combat.EventSkip, Actor: actor.Name(), Message: "cannot move"})
			actor.ResetAttackGauge()
			return
		}

		victims := b.act(actor)
		b.counterattacks(actor, victims)
		if b.checkOutcome(ctx, actor) {
			return
		}

		if !actor.IsAlive() || !actor.Can(model.CapMove) ||
			!dice.Chance(b.rng, actor.Stat(model.StatExtraTurnChance)) {
			return
		}
		b.record(combat.Event{Kind: combat.EventExtraTurn, Actor: actor.Name()})
	}
}

// act asks the controller and executes its decision, falling back to a
// normal attack on the first living enemy if the decision is rejected.
func (b *Battle) act(actor *model.Creature) []*model.Creature {
	d := b.controllerFor(actor).Decide(b, actor)
	victims, err := b.execute(actor, d)
	if err == nil {
		return victims
	}

	b.record(combat.Event{Kind: combat.EventActionFailed, Actor: actor.Name(), Message: err.Error()})
	b.log.Debug("action rejected, falling back to normal attack",
		"battle", b.id,
		"actor", actor.Name(),
		"action", d.Action,
		"err", err)

	alive := b.Enemies(actor).Alive()
	if len(alive) == 0 {
		actor.ResetAttackGauge()
		return nil
	}
	victims, err = b.execute(actor, Decision{Action: ActionNormalAttack, Target: alive[0]})
	if err != nil {
		actor.ResetAttackGauge()
		return nil
	}
	return victims
}

// counterattacks gives every victim one chance to strike back at attacker.
// Counterattacks do not consume the victim's gauge and never chain.
func (b *Battle) counterattacks(attacker *model.Creature, victims []*model.Creature) {
	for _, v := range victims {
		if !attacker.IsAlive() {
			return
		}
		if v == attacker || !v.IsAlive() || !v.Can(model.CapMove) {
			continue
		}
		if !dice.Chance(b.rng, v.Stat(model.StatCounterattackChance)) {
			continue
		}

		b.record(combat.Event{Kind: combat.EventCounter, Actor: v.Name(), Target: attacker.Name()})
		allies, enemies, _ := b.sides(v)
		if s := skill.FirstReadyAttack(v); s != nil {
			if _, err := b.caster.Use(v, attacker, s, allies, enemies); err == nil {
				continue
			}
		}
		b.res.Hit(v, attacker, model.NormalAttackMultiplier, combat.Flags{})
	}
}

// checkOutcome ends the battle if a side is wiped out. When both sides fall
// in the same action, the actor's side wins.
func (b *Battle) checkOutcome(ctx context.Context, actor *model.Creature) bool {
	t1Dead, t2Dead := b.team1.AllDied(), b.team2.AllDied()
	switch {
	case t1Dead && t2Dead:
		if b.team1.Contains(actor) {
			b.finish(ctx, eventTeam1Wins)
		} else {
			b.finish(ctx, eventTeam2Wins)
		}
	case t2Dead:
		b.finish(ctx, eventTeam1Wins)
	case t1Dead:
		b.finish(ctx, eventTeam2Wins)
	default:
		return false
	}
	return true
}

func (b *Battle) finish(ctx context.Context, event string) {
	if err := b.state.Event(ctx, event); err != nil {
		b.log.Error("battle state transition failed", "battle", b.id, "event", event, "err", err)
		return
	}
	b.finishedAt = time.Now()

	if b.state.Is(StateTeam1Won) {
		b.reward = ComputeReward(b.team2, b.cfg)
	}

	b.survivors = make(map[string]bool)
	for _, t := range []*model.Team{b.team1, b.team2} {
		for _, c := range t.Members() {
			b.survivors[c.ID()] = c.IsAlive()
		}
	}

	b.record(combat.Event{Kind: combat.EventBattleEnd, Message: b.State()})
	effect.DeactivateLeaderSkill(b.team1)
	effect.DeactivateLeaderSkill(b.team2)
	b.team1.RecoverAll()
	b.team2.RecoverAll()

	b.log.Info("battle finished",
		"battle", b.id,
		"outcome", b.State(),
		"turns", b.turn,
		"exp", b.reward.Experience,
		"gold", b.reward.Gold)
}

// ComputeReward pays per rating × level of every creature in the defeated team.
func ComputeReward(defeated *model.Team, cfg config.Battle) model.Reward {
	weight := 0
	for _, c := range defeated.Members() {
		weight += c.Rating() * c.Level()
	}
	return model.Reward{
		Experience: weight * cfg.RewardExpPerRating,
		Gold:       weight * cfg.RewardGoldPerRating,
	}
}
