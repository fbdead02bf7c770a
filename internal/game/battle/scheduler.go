package battle

import (
	"errors"

	"github.com/udisondev/legendarena/internal/model"
)

// ErrStalled is returned when no living creature can ever fill its gauge.
var ErrStalled = errors.New("no living creature has attack speed")

// Scheduler decides who moves next by filling attack gauges.
type Scheduler struct {
	teams    [2]*model.Team
	fillRate float64
}

// NewScheduler creates a scheduler over both teams. fillRate is the gauge
// gained per tick per point of attack speed.
func NewScheduler(team1, team2 *model.Team, fillRate float64) *Scheduler {
	return &Scheduler{teams: [2]*model.Team{team1, team2}, fillRate: fillRate}
}

// Tick adds attackSpeed × fillRate to the gauge of every living creature.
func (s *Scheduler) Tick() {
	for _, t := range s.teams {
		for _, c := range t.Alive() {
			c.FillAttackGauge(c.AttackSpeed() * s.fillRate)
		}
	}
}

// Ready returns the creature that moves now, or nil if nobody's gauge is full.
// Among full gauges the highest wins, then the highest attack speed, then
// team1 slot order before team2 slot order.
func (s *Scheduler) Ready() *model.Creature {
	var best *model.Creature
	for _, t := range s.teams {
		for _, c := range t.Alive() {
			if !c.IsReady() {
				continue
			}
			if best == nil || outranks(c, best) {
				best = c
			}
		}
	}
	return best
}

func outranks(c, other *model.Creature) bool {
	if c.AttackGauge() != other.AttackGauge() {
		return c.AttackGauge() > other.AttackGauge()
	}
	return c.AttackSpeed() > other.AttackSpeed()
}

// Next ticks until someone is ready and returns them with the number of
// ticks it took. The winner's gauge is left untouched; the action executor
// resets it.
func (s *Scheduler) Next() (*model.Creature, int, error) {
	if c := s.Ready(); c != nil {
		return c, 0, nil
	}
	if !s.canProgress() {
		return nil, 0, ErrStalled
	}
	for ticks := 1; ; ticks++ {
		s.Tick()
		if c := s.Ready(); c != nil {
			return c, ticks, nil
		}
	}
}

func (s *Scheduler) canProgress() bool {
	for _, t := range s.teams {
		for _, c := range t.Alive() {
			if c.AttackSpeed() > 0 {
				return true
			}
		}
	}
	return false
}
