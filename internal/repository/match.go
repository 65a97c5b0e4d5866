package repository

import (
	"context"
	"database/sql"
	"fmt"

	"cricket-contest/internal/domain"

	"github.com/rs/zerolog"
)

type MatchRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewMatchRepository(sqlDB *sql.DB, logger zerolog.Logger) *MatchRepository {
	return &MatchRepository{db: sqlDB, logger: logger}
}

func (r *MatchRepository) Create(ctx context.Context, match *domain.Match) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO matches (match_id, name, venue, starts_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		match.MatchID, match.Name, match.Venue, match.StartsAt, match.CreatedAt, match.UpdatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("match_id", match.MatchID).Msg("failed to create match")
		return fmt.Errorf("failed to create match: %w", err)
	}
	return nil
}

func (r *MatchRepository) Get(ctx context.Context, matchID string) (*domain.Match, error) {
	var match domain.Match
	err := r.db.QueryRowContext(ctx, `
		SELECT match_id, name, venue, starts_at, created_at, updated_at
		FROM matches WHERE match_id = ?`, matchID,
	).Scan(&match.MatchID, &match.Name, &match.Venue, &match.StartsAt, &match.CreatedAt, &match.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &match, nil
}

func (r *MatchRepository) List(ctx context.Context) ([]domain.Match, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT match_id, name, venue, starts_at, created_at, updated_at
		FROM matches ORDER BY starts_at, match_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	defer rows.Close()

	var matches []domain.Match
	for rows.Next() {
		var match domain.Match
		if err := rows.Scan(&match.MatchID, &match.Name, &match.Venue,
			&match.StartsAt, &match.CreatedAt, &match.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan match: %w", err)
		}
		matches = append(matches, match)
	}
	return matches, rows.Err()
}

func (r *MatchRepository) Exists(ctx context.Context, matchID string) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM matches WHERE match_id = ?`, matchID,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check match existence: %w", err)
	}
	return count > 0, nil
}

func (r *MatchRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM matches`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count matches: %w", err)
	}
	return count, nil
}

// DeleteAll clears every contest table. Intended for test and operational
// resets, not normal operation.
func (r *MatchRepository) DeleteAll(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	tables := []string{
		"leaderboard", "match_scores", "audit_records",
		"admin_slot_configs", "player_stats", "team_submissions", "matches",
	}
	for _, table := range tables {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	r.logger.Info().Msg("all contest data cleared")
	return tx.Commit()
}
