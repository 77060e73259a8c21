// Package postgres keeps a history of accuracy results in Postgres.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/MizunoPK/FantasyFootballHelperScripts-sub005/internal/accuracy"
	"github.com/MizunoPK/FantasyFootballHelperScripts-sub005/internal/params"
)

// Store wraps a Postgres connection.
type Store struct {
	DB *sql.DB
}

// NewStore opens and pings a Postgres connection.
func NewStore(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return &Store{DB: db}, nil
}

func (s *Store) Close() error {
	return s.DB.Close()
}

// Migrate creates the tables if they do not exist.
func (s *Store) Migrate(ctx context.Context) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS accuracy_results (
		    id           UUID PRIMARY KEY,
		    horizon      TEXT             NOT NULL,
		    config_name  TEXT             NOT NULL,
		    mae          DOUBLE PRECISION NOT NULL,
		    player_count INT              NOT NULL,
		    total_error  DOUBLE PRECISION NOT NULL,
		    created_at   TIMESTAMPTZ      NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS accuracy_results_horizon_mae
		    ON accuracy_results (horizon, mae) WHERE player_count > 0;`,
	}
	for _, q := range queries {
		if _, err := s.DB.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("migrating: %w", err)
		}
	}
	return nil
}

// RecordResult inserts one horizon result. Re-recording the same id is a
// no-op.
func (s *Store) RecordResult(ctx context.Context, p *accuracy.AccuracyConfigPerformance) error {
	const q = `
    INSERT INTO accuracy_results (id, horizon, config_name, mae, player_count, total_error, created_at)
    VALUES ($1, $2, $3, $4, $5, $6, $7)
    ON CONFLICT (id) DO NOTHING
    `
	_, err := s.DB.ExecContext(ctx, q,
		p.ID, string(p.Horizon), p.Config.ConfigName,
		p.Result.MAE, p.Result.PlayerCount, p.Result.TotalError, p.EvaluatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting result %s: %w", p.ID, err)
	}
	return nil
}

// HistoryRow is one stored result.
type HistoryRow struct {
	ID          string
	Horizon     params.Horizon
	ConfigName  string
	MAE         float64
	PlayerCount int
	TotalError  float64
	CreatedAt   time.Time
}

// BestResults returns the lowest-MAE valid results for h, best first.
func (s *Store) BestResults(ctx context.Context, h params.Horizon, limit int) ([]HistoryRow, error) {
	const q = `
        SELECT id, horizon, config_name, mae, player_count, total_error, created_at
        FROM accuracy_results
        WHERE horizon = $1 AND player_count > 0
        ORDER BY mae, created_at
        LIMIT $2
    `
	rows, err := s.DB.QueryContext(ctx, q, string(h), limit)
	if err != nil {
		return nil, fmt.Errorf("querying results: %w", err)
	}
	defer rows.Close()

	var out []HistoryRow
	for rows.Next() {
		var r HistoryRow
		var horizon string
		if err := rows.Scan(&r.ID, &horizon, &r.ConfigName, &r.MAE, &r.PlayerCount, &r.TotalError, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning result row: %w", err)
		}
		r.Horizon = params.Horizon(horizon)
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating result rows: %w", err)
	}
	return out, nil
}

var _ accuracy.Recorder = (*Store)(nil)
