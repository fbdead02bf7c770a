package db_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/legendarena/internal/db"
	"github.com/udisondev/legendarena/internal/game/battle"
	"github.com/udisondev/legendarena/internal/model"
	"github.com/udisondev/legendarena/internal/testutil"
)

func sampleRecord(outcome string, finished time.Time) battle.Record {
	return battle.Record{
		ID:         uuid.NewString(),
		StartedAt:  finished.Add(-time.Second),
		FinishedAt: finished,
		Outcome:    outcome,
		Turns:      17,
		Team1: []battle.CreatureSummary{
			{Name: "Salamander", Elements: []model.Element{model.ElementFire}, Rating: 3, Level: 10, Survived: true},
		},
		Team2: []battle.CreatureSummary{
			{Name: "Golem", Elements: []model.Element{model.ElementTerra}, Rating: 3, Level: 10},
		},
		Reward:    model.Reward{Experience: 3000, Gold: 7500},
		LogDigest: []byte{0xde, 0xad, 0xbe, 0xef},
	}
}

func TestBattleRepository(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	repo := db.NewBattleRepository(pool)
	ctx := context.Background()

	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	older := sampleRecord(battle.StateTeam1Won, base)
	newer := sampleRecord(battle.StateDraw, base.Add(time.Minute))

	require.NoError(t, repo.Save(ctx, older))
	require.NoError(t, repo.Save(ctx, newer))

	t.Run("get", func(t *testing.T) {
		got, err := repo.Get(ctx, older.ID)
		require.NoError(t, err)
		assert.Equal(t, older.Outcome, got.Outcome)
		assert.Equal(t, older.Turns, got.Turns)
		assert.Equal(t, older.Team1, got.Team1)
		assert.Equal(t, older.Team2, got.Team2)
		assert.Equal(t, older.Reward, got.Reward)
		assert.Equal(t, older.LogDigest, got.LogDigest)
		assert.True(t, older.FinishedAt.Equal(got.FinishedAt))
	})

	t.Run("not found", func(t *testing.T) {
		_, err := repo.Get(ctx, uuid.NewString())
		assert.ErrorIs(t, err, db.ErrRecordNotFound)
	})

	t.Run("list recent", func(t *testing.T) {
		recs, err := repo.ListRecent(ctx, 10)
		require.NoError(t, err)
		require.Len(t, recs, 2)
		assert.Equal(t, newer.ID, recs[0].ID)
		assert.Equal(t, older.ID, recs[1].ID)

		recs, err = repo.ListRecent(ctx, 1)
		require.NoError(t, err)
		assert.Len(t, recs, 1)
	})

	t.Run("upsert", func(t *testing.T) {
		changed := older
		changed.Turns = 99
		require.NoError(t, repo.Save(ctx, changed))

		got, err := repo.Get(ctx, older.ID)
		require.NoError(t, err)
		assert.Equal(t, 99, got.Turns)
	})

	t.Run("count by outcome", func(t *testing.T) {
		counts, err := repo.CountByOutcome(ctx)
		require.NoError(t, err)
		assert.Equal(t, map[string]int{battle.StateTeam1Won: 1, battle.StateDraw: 1}, counts)
	})
}
