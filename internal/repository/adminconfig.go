package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"cricket-contest/internal/domain"

	"github.com/rs/zerolog"
)

type AdminConfigRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewAdminConfigRepository(sqlDB *sql.DB, logger zerolog.Logger) *AdminConfigRepository {
	return &AdminConfigRepository{db: sqlDB, logger: logger}
}

func (r *AdminConfigRepository) Upsert(ctx context.Context, cfg *domain.AdminSlotConfig) error {
	multipliers, err := json.Marshal(cfg.Multipliers)
	if err != nil {
		return fmt.Errorf("failed to encode multipliers: %w", err)
	}
	disabled, err := json.Marshal(cfg.DisabledSlots)
	if err != nil {
		return fmt.Errorf("failed to encode disabled slots: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO admin_slot_configs (match_id, multipliers, disabled_slots, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (match_id) DO UPDATE SET
			multipliers    = excluded.multipliers,
			disabled_slots = excluded.disabled_slots,
			updated_at     = excluded.updated_at`,
		cfg.MatchID, string(multipliers), string(disabled), cfg.UpdatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("match_id", cfg.MatchID).Msg("failed to upsert admin config")
		return fmt.Errorf("failed to upsert admin config: %w", err)
	}
	return nil
}

func (r *AdminConfigRepository) Get(ctx context.Context, matchID string) (*domain.AdminSlotConfig, error) {
	var cfg domain.AdminSlotConfig
	var multipliers, disabled string
	err := r.db.QueryRowContext(ctx, `
		SELECT match_id, multipliers, disabled_slots, updated_at
		FROM admin_slot_configs WHERE match_id = ?`, matchID,
	).Scan(&cfg.MatchID, &multipliers, &disabled, &cfg.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(multipliers), &cfg.Multipliers); err != nil {
		return nil, fmt.Errorf("failed to decode multipliers: %w", err)
	}
	if err := json.Unmarshal([]byte(disabled), &cfg.DisabledSlots); err != nil {
		return nil, fmt.Errorf("failed to decode disabled slots: %w", err)
	}
	return &cfg, nil
}
