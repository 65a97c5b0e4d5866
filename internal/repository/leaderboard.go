package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"cricket-contest/internal/domain"

	"github.com/rs/zerolog"
)

type LeaderboardRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewLeaderboardRepository(sqlDB *sql.DB, logger zerolog.Logger) *LeaderboardRepository {
	return &LeaderboardRepository{db: sqlDB, logger: logger}
}

// ApplyMatchScores upserts one match's per-participant scores and rebuilds
// the leaderboard aggregate in a single transaction, so a participant's
// read-modify-write is atomic relative to other writers and a repeated
// identical run is a no-op in effect.
func (r *LeaderboardRepository) ApplyMatchScores(ctx context.Context, scores []domain.MatchScore) error {
	if len(scores) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, score := range scores {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO match_scores (match_id, participant_id, rule_version, total, audit_id, updated_at)
			VALUES (?, ?, ?, ?, ?, ?)
			ON CONFLICT (match_id, participant_id) DO UPDATE SET
				rule_version = excluded.rule_version,
				total        = excluded.total,
				audit_id     = excluded.audit_id,
				updated_at   = excluded.updated_at`,
			score.MatchID, score.ParticipantID, score.RuleVersion,
			score.Total, score.AuditID, score.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to upsert match score for %s: %w", score.ParticipantID, err)
		}
	}

	if err := rebuildLeaderboard(ctx, tx, time.Now()); err != nil {
		return err
	}

	r.logger.Info().Int("scores", len(scores)).Msg("leaderboard updated")
	return tx.Commit()
}

// rebuildLeaderboard recomputes cumulative totals and ranks from the full
// match_scores set. Ordering: total descending, participant ID ascending as
// the documented tie-break.
func rebuildLeaderboard(ctx context.Context, tx *sql.Tx, now time.Time) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM leaderboard`); err != nil {
		return fmt.Errorf("failed to clear leaderboard: %w", err)
	}

	_, err := tx.ExecContext(ctx, `
		INSERT INTO leaderboard (participant_id, total_score, matches_scored, rank, updated_at)
		SELECT participant_id,
			SUM(total) AS total_score,
			COUNT(1)   AS matches_scored,
			RANK() OVER (ORDER BY SUM(total) DESC, participant_id ASC) AS rank,
			?
		FROM match_scores
		GROUP BY participant_id`, now)
	if err != nil {
		return fmt.Errorf("failed to rebuild leaderboard: %w", err)
	}
	return nil
}

// RuleVersions returns the distinct rule versions of match scores already
// merged for matches other than the one given. These are the versions
// governing the leaderboard: a new result whose stamp disagrees with any of
// them must not be merged until the older matches are rescored.
func (r *LeaderboardRepository) RuleVersions(ctx context.Context, excludeMatchID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT DISTINCT rule_version FROM match_scores
		WHERE match_id != ?
		ORDER BY rule_version`, excludeMatchID)
	if err != nil {
		return nil, fmt.Errorf("failed to read stored rule versions: %w", err)
	}
	defer rows.Close()

	var versions []string
	for rows.Next() {
		var version string
		if err := rows.Scan(&version); err != nil {
			return nil, fmt.Errorf("failed to scan rule version: %w", err)
		}
		versions = append(versions, version)
	}
	return versions, rows.Err()
}

func (r *LeaderboardRepository) GetLeaderboard(ctx context.Context) ([]domain.LeaderboardEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT participant_id, total_score, matches_scored, rank
		FROM leaderboard
		ORDER BY rank, participant_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to read leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []domain.LeaderboardEntry
	for rows.Next() {
		var entry domain.LeaderboardEntry
		if err := rows.Scan(&entry.ParticipantID, &entry.TotalScore,
			&entry.MatchesScored, &entry.Rank); err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard entry: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
