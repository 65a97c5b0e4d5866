package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"cricket-contest/internal/domain"

	"github.com/rs/zerolog"
)

type TeamRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewTeamRepository(sqlDB *sql.DB, logger zerolog.Logger) *TeamRepository {
	return &TeamRepository{db: sqlDB, logger: logger}
}

func (r *TeamRepository) Upsert(ctx context.Context, submission *domain.TeamSubmission) error {
	assignments, err := json.Marshal(submission.Assignments)
	if err != nil {
		return fmt.Errorf("failed to encode assignments: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO team_submissions (match_id, participant_id, assignments, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (match_id, participant_id) DO UPDATE SET
			assignments = excluded.assignments,
			updated_at  = excluded.updated_at`,
		submission.MatchID, submission.ParticipantID, string(assignments),
		submission.CreatedAt, submission.UpdatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).
			Str("match_id", submission.MatchID).
			Str("participant_id", submission.ParticipantID).
			Msg("failed to upsert team submission")
		return fmt.Errorf("failed to upsert team submission: %w", err)
	}
	return nil
}

func (r *TeamRepository) Get(ctx context.Context, matchID, participantID string) (*domain.TeamSubmission, error) {
	var submission domain.TeamSubmission
	var assignments string
	err := r.db.QueryRowContext(ctx, `
		SELECT match_id, participant_id, assignments, created_at, updated_at
		FROM team_submissions WHERE match_id = ? AND participant_id = ?`,
		matchID, participantID,
	).Scan(&submission.MatchID, &submission.ParticipantID, &assignments,
		&submission.CreatedAt, &submission.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(assignments), &submission.Assignments); err != nil {
		return nil, fmt.Errorf("failed to decode assignments: %w", err)
	}
	return &submission, nil
}

func (r *TeamRepository) GetByMatch(ctx context.Context, matchID string) ([]domain.TeamSubmission, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT match_id, participant_id, assignments, created_at, updated_at
		FROM team_submissions WHERE match_id = ?
		ORDER BY participant_id`, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list team submissions: %w", err)
	}
	defer rows.Close()

	var submissions []domain.TeamSubmission
	for rows.Next() {
		var submission domain.TeamSubmission
		var assignments string
		if err := rows.Scan(&submission.MatchID, &submission.ParticipantID, &assignments,
			&submission.CreatedAt, &submission.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan team submission: %w", err)
		}
		if err := json.Unmarshal([]byte(assignments), &submission.Assignments); err != nil {
			return nil, fmt.Errorf("failed to decode assignments: %w", err)
		}
		submissions = append(submissions, submission)
	}
	return submissions, rows.Err()
}
