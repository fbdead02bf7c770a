package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/legendarena/internal/game/battle"
)

// ErrRecordNotFound is returned by Get for an unknown battle ID.
var ErrRecordNotFound = errors.New("battle record not found")

// BattleRepository stores finished battle records in battle_records.
type BattleRepository struct {
	pool *pgxpool.Pool
}

// NewBattleRepository creates a new BattleRepository.
func NewBattleRepository(pool *pgxpool.Pool) *BattleRepository {
	return &BattleRepository{pool: pool}
}

// Save inserts a record. Saving the same battle twice overwrites it.
func (r *BattleRepository) Save(ctx context.Context, rec battle.Record) error {
	team1, err := json.Marshal(rec.Team1)
	if err != nil {
		return fmt.Errorf("marshal team1 of battle %s: %w", rec.ID, err)
	}
	team2, err := json.Marshal(rec.Team2)
	if err != nil {
		return fmt.Errorf("marshal team2 of battle %s: %w", rec.ID, err)
	}
	reward, err := json.Marshal(rec.Reward)
	if err != nil {
		return fmt.Errorf("marshal reward of battle %s: %w", rec.ID, err)
	}

	_, err = r.pool.Exec(ctx,
		`INSERT INTO battle_records
		   (id, started_at, finished_at, outcome, turns, team1, team2, reward, log_digest)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 ON CONFLICT (id) DO UPDATE SET
		   started_at  = EXCLUDED.started_at,
		   finished_at = EXCLUDED.finished_at,
		   outcome     = EXCLUDED.outcome,
		   turns       = EXCLUDED.turns,
		   team1       = EXCLUDED.team1,
		   team2       = EXCLUDED.team2,
		   reward      = EXCLUDED.reward,
		   log_digest  = EXCLUDED.log_digest`,
		rec.ID, rec.StartedAt, rec.FinishedAt, rec.Outcome, rec.Turns,
		team1, team2, reward, rec.LogDigest)
	if err != nil {
		return fmt.Errorf("insert battle record %s: %w", rec.ID, err)
	}
	return nil
}

// Get loads one record by battle ID.
func (r *BattleRepository) Get(ctx context.Context, id string) (battle.Record, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT id, started_at, finished_at, outcome, turns, team1, team2, reward, log_digest
		 FROM battle_records WHERE id = $1`, id)

	rec, err := scanRecord(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return battle.Record{}, fmt.Errorf("battle %s: %w", id, ErrRecordNotFound)
	}
	if err != nil {
		return battle.Record{}, fmt.Errorf("query battle record %s: %w", id, err)
	}
	return rec, nil
}

// ListRecent returns up to limit records, newest first.
func (r *BattleRepository) ListRecent(ctx context.Context, limit int) ([]battle.Record, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, started_at, finished_at, outcome, turns, team1, team2, reward, log_digest
		 FROM battle_records ORDER BY finished_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("query battle_records: %w", err)
	}
	defer rows.Close()

	var result []battle.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan battle_records: %w", err)
		}
		result = append(result, rec)
	}
	return result, rows.Err()
}

// CountByOutcome aggregates stored battles per outcome.
func (r *BattleRepository) CountByOutcome(ctx context.Context) (map[string]int, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT outcome, COUNT(*) FROM battle_records GROUP BY outcome`)
	if err != nil {
		return nil, fmt.Errorf("count battle_records: %w", err)
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var (
			outcome string
			n       int
		)
		if err := rows.Scan(&outcome, &n); err != nil {
			return nil, fmt.Errorf("scan outcome count: %w", err)
		}
		out[outcome] = n
	}
	return out, rows.Err()
}

func scanRecord(row pgx.Row) (battle.Record, error) {
	var (
		rec                 battle.Record
		team1, team2, award []byte
	)
	if err := row.Scan(&rec.ID, &rec.StartedAt, &rec.FinishedAt, &rec.Outcome, &rec.Turns,
		&team1, &team2, &award, &rec.LogDigest); err != nil {
		return battle.Record{}, err
	}
	if err := json.Unmarshal(team1, &rec.Team1); err != nil {
		return battle.Record{}, fmt.Errorf("decode team1: %w", err)
	}
	if err := json.Unmarshal(team2, &rec.Team2); err != nil {
		return battle.Record{}, fmt.Errorf("decode team2: %w", err)
	}
	if err := json.Unmarshal(award, &rec.Reward); err != nil {
		return battle.Record{}, fmt.Errorf("decode reward: %w", err)
	}
	return rec, nil
}
