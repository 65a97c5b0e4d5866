package repository

import (
	"context"
	"database/sql"
	"fmt"

	"cricket-contest/internal/constants"
	"cricket-contest/internal/domain"

	"github.com/rs/zerolog"
)

type StatsRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewStatsRepository(sqlDB *sql.DB, logger zerolog.Logger) *StatsRepository {
	return &StatsRepository{db: sqlDB, logger: logger}
}

func (r *StatsRepository) UpsertBatch(ctx context.Context, matchID string, stats []domain.PlayerMatchStats) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for i := 0; i < len(stats); i += constants.DBBatchSize {
		end := i + constants.DBBatchSize
		if end > len(stats) {
			end = len(stats)
		}

		for _, s := range stats[i:end] {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO player_stats (
					match_id, player_id, runs_scored, balls_faced, fours, sixes,
					wickets_taken, overs_full, overs_balls, runs_conceded,
					catches, run_outs, stumpings, is_man_of_match,
					has_century, has_five_wicket_haul, has_hat_trick,
					created_at, updated_at
				) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
				ON CONFLICT (match_id, player_id) DO UPDATE SET
					runs_scored          = excluded.runs_scored,
					balls_faced          = excluded.balls_faced,
					fours                = excluded.fours,
					sixes                = excluded.sixes,
					wickets_taken        = excluded.wickets_taken,
					overs_full           = excluded.overs_full,
					overs_balls          = excluded.overs_balls,
					runs_conceded        = excluded.runs_conceded,
					catches              = excluded.catches,
					run_outs             = excluded.run_outs,
					stumpings            = excluded.stumpings,
					is_man_of_match      = excluded.is_man_of_match,
					has_century          = excluded.has_century,
					has_five_wicket_haul = excluded.has_five_wicket_haul,
					has_hat_trick        = excluded.has_hat_trick,
					updated_at           = excluded.updated_at`,
				matchID, s.PlayerID, s.RunsScored, s.BallsFaced, s.Fours, s.Sixes,
				s.WicketsTaken, s.OversFull, s.OversBalls, s.RunsConceded,
				s.Catches, s.RunOuts, s.Stumpings, s.IsManOfMatch,
				s.HasCentury, s.HasFiveWicketHaul, s.HasHatTrick,
				s.CreatedAt, s.UpdatedAt,
			)
			if err != nil {
				return fmt.Errorf("failed to upsert stats for player %s: %w", s.PlayerID, err)
			}
		}
	}

	return tx.Commit()
}

func (r *StatsRepository) GetByMatch(ctx context.Context, matchID string) (map[string]domain.PlayerMatchStats, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT player_id, runs_scored, balls_faced, fours, sixes,
			wickets_taken, overs_full, overs_balls, runs_conceded,
			catches, run_outs, stumpings, is_man_of_match,
			has_century, has_five_wicket_haul, has_hat_trick,
			created_at, updated_at
		FROM player_stats WHERE match_id = ?`, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list player stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]domain.PlayerMatchStats)
	for rows.Next() {
		var s domain.PlayerMatchStats
		if err := rows.Scan(&s.PlayerID, &s.RunsScored, &s.BallsFaced, &s.Fours, &s.Sixes,
			&s.WicketsTaken, &s.OversFull, &s.OversBalls, &s.RunsConceded,
			&s.Catches, &s.RunOuts, &s.Stumpings, &s.IsManOfMatch,
			&s.HasCentury, &s.HasFiveWicketHaul, &s.HasHatTrick,
			&s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan player stats: %w", err)
		}
		stats[s.PlayerID] = s
	}
	return stats, rows.Err()
}
