// Package repository records finished-match results in Postgres. It is
// optional plumbing outside the engine: when no DSN is configured the
// server simply never constructs it.
package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/sovereign-game/sovereign-server/internal/game"
)

// Schema for the match_results table:
//
//	CREATE TABLE IF NOT EXISTS match_results (
//	    id          BIGSERIAL PRIMARY KEY,
//	    game_id     TEXT        NOT NULL,
//	    winner      TEXT        NOT NULL,
//	    scores      JSONB       NOT NULL,
//	    finished_at TIMESTAMPTZ NOT NULL
//	);

// DB wraps the pgx connection pool.
type DB struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewDB connects to Postgres and verifies the connection.
func NewDB(ctx context.Context, dsn string, logger *zap.Logger) (*DB, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &DB{pool: pool, logger: logger}, nil
}

// Close releases the pool.
func (db *DB) Close() {
	db.pool.Close()
}

// MatchRepository persists finished-game results.
type MatchRepository struct {
	db *DB
}

// NewMatchRepository creates a match result store over db.
func NewMatchRepository(db *DB) *MatchRepository {
	return &MatchRepository{db: db}
}

// RecordResult inserts one finished game: its id, the winner's player id,
// and every player's score.
func (r *MatchRepository) RecordResult(ctx context.Context, gameID, winner string, scores []game.Score) error {
	payload, err := json.Marshal(scores)
	if err != nil {
		return fmt.Errorf("marshal scores: %w", err)
	}

	_, err = r.db.pool.Exec(ctx,
		`INSERT INTO match_results (game_id, winner, scores, finished_at) VALUES ($1, $2, $3, $4)`,
		gameID, winner, payload, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert match result: %w", err)
	}

	r.db.logger.Info("match result recorded",
		zap.String("game_id", gameID),
		zap.String("winner", winner),
	)
	return nil
}
