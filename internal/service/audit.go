package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"cricket-contest/internal/constants"
	"cricket-contest/internal/engine"
	"cricket-contest/internal/repository"

	"github.com/rs/zerolog"
)

// ErrAuditRecordNotFound reports a lookup for an unknown audit record.
var ErrAuditRecordNotFound = errors.New("audit record not found")

// AuditStatus pairs a stored record with its live replay verdict, for
// transparency and dispute requests. A replay mismatch is reported, never
// auto-corrected; resolution is an operational decision.
type AuditStatus struct {
	Record engine.AuditRecord  `json:"record"`
	Replay engine.ReplayResult `json:"replay"`
}

type AuditService struct {
	repo     *repository.AuditRepository
	registry *engine.Registry
	logger   zerolog.Logger
}

func NewAuditService(repo *repository.AuditRepository, registry *engine.Registry, logger zerolog.Logger) *AuditService {
	return &AuditService{repo: repo, registry: registry, logger: logger}
}

// GetAuditRecord serves a stored record along with a fresh deterministic
// replay of it. The replay re-executes the full pipeline from the stored
// inputs alone; any field that no longer reproduces is listed in the diff.
func (s *AuditService) GetAuditRecord(ctx context.Context, id string) (*AuditStatus, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	rec, err := s.repo.Get(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrAuditRecordNotFound, id)
	}
	if err != nil {
		return nil, err
	}

	// Replay a copy so a verification pass can never touch the stored
	// record.
	clone, err := engine.CloneAuditRecord(rec)
	if err != nil {
		return nil, err
	}
	replay, err := engine.Replay(clone, s.registry)
	if err != nil {
		return nil, err
	}

	if !replay.OK {
		s.logger.Error().
			Str("audit_id", id).
			Int("diffs", len(replay.Diffs)).
			Msg("audit replay mismatch, escalate")
	}

	return &AuditStatus{Record: rec, Replay: replay}, nil
}
