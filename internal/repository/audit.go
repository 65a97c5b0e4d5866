package repository

import (
	"context"
	"database/sql"
	"fmt"

	"cricket-contest/internal/engine"

	"github.com/rs/zerolog"
)

// AuditRepository stores scoring audit records. The table is append-only:
// Insert is the only write path and there is no update or single-row delete.
type AuditRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewAuditRepository(sqlDB *sql.DB, logger zerolog.Logger) *AuditRepository {
	return &AuditRepository{db: sqlDB, logger: logger}
}

func (r *AuditRepository) Insert(ctx context.Context, rec engine.AuditRecord) error {
	payload, err := engine.SerializeAuditRecord(rec)
	if err != nil {
		return fmt.Errorf("failed to serialize audit record: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO audit_records (id, match_id, participant_id, rule_version, payload, content_hash, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.MatchID, rec.ParticipantID, rec.RuleVersion,
		string(payload), rec.ContentHash, rec.CreatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("audit_id", rec.ID).Msg("failed to insert audit record")
		return fmt.Errorf("failed to insert audit record: %w", err)
	}
	return nil
}

func (r *AuditRepository) Get(ctx context.Context, id string) (engine.AuditRecord, error) {
	var payload string
	err := r.db.QueryRowContext(ctx,
		`SELECT payload FROM audit_records WHERE id = ?`, id,
	).Scan(&payload)
	if err != nil {
		return engine.AuditRecord{}, err
	}
	return engine.DeserializeAuditRecord([]byte(payload))
}

func (r *AuditRepository) ListByMatch(ctx context.Context, matchID string) ([]engine.AuditRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT payload FROM audit_records
		WHERE match_id = ?
		ORDER BY created_at, id`, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit records: %w", err)
	}
	defer rows.Close()

	var records []engine.AuditRecord
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("failed to scan audit record: %w", err)
		}
		rec, err := engine.DeserializeAuditRecord([]byte(payload))
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *AuditRepository) CountByMatch(ctx context.Context, matchID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM audit_records WHERE match_id = ?`, matchID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count audit records: %w", err)
	}
	return count, nil
}
