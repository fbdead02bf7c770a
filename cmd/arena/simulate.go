package main

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/legendarena/internal/ai"
	"github.com/udisondev/legendarena/internal/config"
	"github.com/udisondev/legendarena/internal/data"
	"github.com/udisondev/legendarena/internal/game/battle"
	"github.com/udisondev/legendarena/internal/game/dice"
	"github.com/udisondev/legendarena/internal/model"
)

// Recorder persists finished battles.
type Recorder interface {
	Save(ctx context.Context, rec battle.Record) error
}

// Summary aggregates a simulation run.
type Summary struct {
	Battles    int
	Outcomes   map[string]int
	TotalTurns int
	Reward     model.Reward
}

// AverageTurns returns the mean battle length.
func (s Summary) AverageTurns() float64 {
	if s.Battles == 0 {
		return 0
	}
	return float64(s.TotalTurns) / float64(s.Battles)
}

// Simulator runs a batch of independent battles concurrently.
// Each battle gets freshly built teams; with a non-zero seed battle i uses
// seed+i, so a run is reproducible regardless of scheduling.
type Simulator struct {
	Registry *data.Registry
	Rules    config.Battle
	Plan     config.Simulation
	Recorder Recorder // nil = no persistence
}

// Run plays Plan.Battles battles with at most Plan.Concurrency in flight.
func (s *Simulator) Run(ctx context.Context) (Summary, error) {
	var (
		mu  sync.Mutex
		sum = Summary{Outcomes: make(map[string]int)}
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(s.Plan.Concurrency, 1))

	for i := range s.Plan.Battles {
		g.Go(func() error {
			rec, err := s.play(gctx, i)
			if err != nil {
				return fmt.Errorf("battle #%d: %w", i, err)
			}
			if s.Recorder != nil {
				if err := s.Recorder.Save(gctx, rec); err != nil {
					return fmt.Errorf("battle #%d: saving record: %w", i, err)
				}
			}

			mu.Lock()
			sum.Battles++
			sum.Outcomes[rec.Outcome]++
			sum.TotalTurns += rec.Turns
			sum.Reward.Experience += rec.Reward.Experience
			sum.Reward.Gold += rec.Reward.Gold
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return sum, err
	}
	return sum, nil
}

func (s *Simulator) play(ctx context.Context, i int) (battle.Record, error) {
	team1, err := s.Registry.BuildTeam("team1", s.Plan.Team1...)
	if err != nil {
		return battle.Record{}, err
	}
	team2, err := s.opponents()
	if err != nil {
		return battle.Record{}, err
	}

	var rng dice.Source = dice.Default
	if s.Plan.Seed != 0 {
		rng = dice.NewSeeded(s.Plan.Seed + uint64(i))
	}

	b, err := battle.New(team1, team2, s.Rules,
		battle.WithRand(rng),
		battle.WithControllers(ai.Random{}, ai.Random{}),
	)
	if err != nil {
		return battle.Record{}, err
	}

	outcome, err := b.Run(ctx)
	if err != nil {
		return battle.Record{}, err
	}
	slog.Debug("battle done", "index", i, "battle", b.ID(), "outcome", outcome, "turns", b.Turn())
	return battle.NewRecord(b), nil
}

func (s *Simulator) opponents() (*model.Team, error) {
	if s.Plan.Level > 0 {
		return s.Registry.LevelTeam(s.Plan.Level)
	}
	return s.Registry.BuildTeam("team2", s.Plan.Team2...)
}
