package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"cricket-contest/internal/constants"
	"cricket-contest/internal/domain"
	"cricket-contest/internal/engine"
	"cricket-contest/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ContestService handles match setup: creating matches, accepting team
// submissions, ingesting player statistics and the admin multiplier table.
type ContestService struct {
	matchRepo  *repository.MatchRepository
	teamRepo   *repository.TeamRepository
	statsRepo  *repository.StatsRepository
	configRepo *repository.AdminConfigRepository
	auditRepo  *repository.AuditRepository
	logger     zerolog.Logger
}

func NewContestService(
	matchRepo *repository.MatchRepository,
	teamRepo *repository.TeamRepository,
	statsRepo *repository.StatsRepository,
	configRepo *repository.AdminConfigRepository,
	auditRepo *repository.AuditRepository,
	logger zerolog.Logger,
) *ContestService {
	return &ContestService{
		matchRepo:  matchRepo,
		teamRepo:   teamRepo,
		statsRepo:  statsRepo,
		configRepo: configRepo,
		auditRepo:  auditRepo,
		logger:     logger,
	}
}

func (s *ContestService) CreateMatch(ctx context.Context, name, venue string, startsAt time.Time) (*domain.Match, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	now := time.Now()
	match := &domain.Match{
		MatchID:   uuid.New().String(),
		Name:      name,
		Venue:     venue,
		StartsAt:  startsAt,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.matchRepo.Create(ctx, match); err != nil {
		return nil, err
	}

	s.logger.Info().Str("match_id", match.MatchID).Str("name", name).Msg("match created")
	return match, nil
}

// SubmitTeam validates and persists a participant's sparse 11-slot pick. The
// pick is stored exactly as submitted; duplicate-player conflicts are not
// errors, they are detected here so the caller can warn the participant, and
// resolved deterministically at scoring time.
func (s *ContestService) SubmitTeam(ctx context.Context, matchID, participantID string, rawAssignments map[int]string) ([]engine.SlotConflict, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	if err := s.requireMatch(ctx, matchID); err != nil {
		return nil, err
	}

	sparse, err := engine.ParseAssignments(rawAssignments)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	submission := &domain.TeamSubmission{
		MatchID:       matchID,
		ParticipantID: participantID,
		Assignments:   rawAssignments,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.teamRepo.Upsert(ctx, submission); err != nil {
		return nil, err
	}

	conflicts := engine.DetectConflicts(engine.ResolveAssignments(sparse))
	s.logger.Info().
		Str("match_id", matchID).
		Str("participant_id", participantID).
		Int("filled_slots", len(sparse)).
		Int("conflicts", len(conflicts)).
		Msg("team submitted")
	return conflicts, nil
}

// IngestPlayerStats stores a batch of player statistics for a match. Once a
// match has been scored its stats are locked; re-entry requires an explicit
// rescore, which appends a fresh audit trail instead of silently rewriting
// history.
func (s *ContestService) IngestPlayerStats(ctx context.Context, matchID string, stats []domain.PlayerMatchStats, rescore bool) error {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	if err := s.requireMatch(ctx, matchID); err != nil {
		return err
	}

	scored, err := s.auditRepo.CountByMatch(ctx, matchID)
	if err != nil {
		return err
	}
	if scored > 0 && !rescore {
		s.logger.Warn().Str("match_id", matchID).Int("audit_records", scored).Msg("stats re-entry rejected")
		return ErrStatsLocked
	}

	now := time.Now()
	for i := range stats {
		if err := engine.ValidateStats(stats[i]); err != nil {
			return fmt.Errorf("stats entry %d rejected: %w", i, err)
		}
		stats[i].CreatedAt = now
		stats[i].UpdatedAt = now
	}

	if err := s.statsRepo.UpsertBatch(ctx, matchID, stats); err != nil {
		return err
	}

	s.logger.Info().
		Str("match_id", matchID).
		Int("players", len(stats)).
		Bool("rescore", rescore).
		Msg("player stats ingested")
	return nil
}

// SetAdminConfig validates and stores the per-match multiplier table.
// Invalid entries are rejected before storage; they are never coerced.
func (s *ContestService) SetAdminConfig(ctx context.Context, matchID string, multipliers map[int]float64, disabled []int) error {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	if err := s.requireMatch(ctx, matchID); err != nil {
		return err
	}

	if _, err := engine.ParseAdminConfig(multipliers, disabled); err != nil {
		return err
	}

	cfg := &domain.AdminSlotConfig{
		MatchID:       matchID,
		Multipliers:   multipliers,
		DisabledSlots: disabled,
		UpdatedAt:     time.Now(),
	}
	if err := s.configRepo.Upsert(ctx, cfg); err != nil {
		return err
	}

	s.logger.Info().
		Str("match_id", matchID).
		Int("configured_slots", len(multipliers)).
		Int("disabled_slots", len(disabled)).
		Msg("admin config set")
	return nil
}

func (s *ContestService) MatchExists(ctx context.Context, matchID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()
	return s.matchRepo.Exists(ctx, matchID)
}

func (s *ContestService) GetMatch(ctx context.Context, matchID string) (*domain.Match, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	match, err := s.matchRepo.Get(ctx, matchID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMatchNotFound
	}
	return match, err
}

func (s *ContestService) MatchCount(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()
	return s.matchRepo.Count(ctx)
}

func (s *ContestService) ClearAllMatches(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()
	return s.matchRepo.DeleteAll(ctx)
}

func (s *ContestService) requireMatch(ctx context.Context, matchID string) error {
	exists, err := s.matchRepo.Exists(ctx, matchID)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: %s", ErrMatchNotFound, matchID)
	}
	return nil
}
