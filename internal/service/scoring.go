package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"cricket-contest/internal/config"
	"cricket-contest/internal/constants"
	"cricket-contest/internal/domain"
	"cricket-contest/internal/engine"
	"cricket-contest/internal/repository"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// ParticipantScore summarizes one participant's outcome from a scoring run.
type ParticipantScore struct {
	ParticipantID string  `json:"participant_id"`
	AuditID       string  `json:"audit_id"`
	Total         float64 `json:"total"`
	Conflicts     int     `json:"conflicts"`
}

// ScoringSummary is the outcome of one full ComputeMatchScores run.
type ScoringSummary struct {
	MatchID     string             `json:"match_id"`
	RuleVersion string             `json:"rule_version"`
	Scores      []ParticipantScore `json:"scores"`
}

// ScoringService orchestrates the pure engine pipeline over the persistence
// collaborators: it loads a match's inputs, scores every participant, stamps
// and audits each result, and merges the totals into the leaderboard.
type ScoringService struct {
	matchRepo       *repository.MatchRepository
	teamRepo        *repository.TeamRepository
	statsRepo       *repository.StatsRepository
	configRepo      *repository.AdminConfigRepository
	auditRepo       *repository.AuditRepository
	leaderboardRepo *repository.LeaderboardRepository
	registry        *engine.Registry
	ruleVersion     string
	logger          zerolog.Logger
}

func NewScoringService(
	matchRepo *repository.MatchRepository,
	teamRepo *repository.TeamRepository,
	statsRepo *repository.StatsRepository,
	configRepo *repository.AdminConfigRepository,
	auditRepo *repository.AuditRepository,
	leaderboardRepo *repository.LeaderboardRepository,
	registry *engine.Registry,
	cfg *config.Config,
	logger zerolog.Logger,
) *ScoringService {
	return &ScoringService{
		matchRepo:       matchRepo,
		teamRepo:        teamRepo,
		statsRepo:       statsRepo,
		configRepo:      configRepo,
		auditRepo:       auditRepo,
		leaderboardRepo: leaderboardRepo,
		registry:        registry,
		ruleVersion:     cfg.RuleVersion,
		logger:          logger,
	}
}

// ComputeMatchScores runs the full pipeline for every participant of one
// match: resolve assignments, resolve conflicts, score, stamp, audit, and
// upsert the leaderboard. The engine is pure, so participants score in
// parallel; persistence happens after every computation succeeded. Results
// merge only when their stamps agree with every rule version already on the
// leaderboard. Rerunning with identical inputs recomputes identical scores,
// appends fresh audit records and leaves the leaderboard unchanged in
// effect.
func (s *ScoringService) ComputeMatchScores(ctx context.Context, matchID string) (*ScoringSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.ScoringTimeout)
	defer cancel()

	exists, err := s.matchRepo.Exists(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrMatchNotFound, matchID)
	}

	rules, err := s.registry.Get(s.ruleVersion)
	if err != nil {
		return nil, err
	}

	submissions, err := s.teamRepo.GetByMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if len(submissions) == 0 {
		return nil, fmt.Errorf("%w: match %s", ErrNothingToScore, matchID)
	}

	stats, err := s.statsRepo.GetByMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}

	multipliers, disabled, err := s.loadAdminConfig(ctx, matchID)
	if err != nil {
		return nil, err
	}
	adminConfig, err := engine.ParseAdminConfig(multipliers, disabled)
	if err != nil {
		return nil, fmt.Errorf("stored admin config is invalid: %w", err)
	}

	s.logger.Info().
		Str("match_id", matchID).
		Str("rule_version", rules.Version).
		Int("participants", len(submissions)).
		Int("players_with_stats", len(stats)).
		Msg("computing match scores")

	now := time.Now()
	records := make([]engine.AuditRecord, len(submissions))
	stamps := make([]engine.Stamped[engine.ParticipantResult], len(submissions))
	conflictCounts := make([]int, len(submissions))

	// Each goroutine writes its own index; no locking needed.
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(constants.ScoringConcurrency)

	for i, submission := range submissions {
		g.Go(func() error {
			sparse, err := engine.ParseAssignments(submission.Assignments)
			if err != nil {
				return fmt.Errorf("stored pick for %s is invalid: %w", submission.ParticipantID, err)
			}

			stamped := engine.ScoreParticipantStamped(sparse, adminConfig, stats, rules)

			auditID, err := gonanoid.New()
			if err != nil {
				return fmt.Errorf("failed to generate audit id: %w", err)
			}

			rec, err := engine.NewAuditRecord(auditID, matchID, submission.ParticipantID, rules,
				engine.AuditInputs{
					Stats:       stats,
					Assignments: submission.Assignments,
					Multipliers: multipliers,
					Disabled:    disabled,
				},
				stamped.Payload, now)
			if err != nil {
				return fmt.Errorf("failed to build audit record for %s: %w", submission.ParticipantID, err)
			}

			records[i] = rec
			stamps[i] = stamped
			conflictCounts[i] = len(engine.DetectConflicts(engine.ResolveAssignments(sparse)))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	// The leaderboard is governed by the rule versions of the match scores
	// it already aggregates. A stamp disagreeing with any of them blocks the
	// whole merge; the remedy is rescoring the older matches, never mixing
	// totals across versions.
	governing, err := s.leaderboardRepo.RuleVersions(ctx, matchID)
	if err != nil {
		return nil, err
	}
	for _, version := range governing {
		for i := range stamps {
			if err := stamps[i].AssertVersion(version); err != nil {
				s.logger.Error().
					Str("match_id", matchID).
					Str("stored_version", version).
					Str("computed_version", stamps[i].Version).
					Msg("refusing to merge scores across rule versions")
				return nil, fmt.Errorf("refusing to merge scores for match %s, rescore matches computed under %s first: %w",
					matchID, version, err)
			}
		}
	}

	summary := &ScoringSummary{MatchID: matchID, RuleVersion: rules.Version}
	scores := make([]domain.MatchScore, 0, len(records))
	for i, rec := range records {
		if err := s.auditRepo.Insert(ctx, rec); err != nil {
			return nil, err
		}
		scores = append(scores, domain.MatchScore{
			MatchID:       matchID,
			ParticipantID: rec.ParticipantID,
			RuleVersion:   rec.RuleVersion,
			Total:         rec.Result.Total,
			AuditID:       rec.ID,
			UpdatedAt:     now,
		})
		summary.Scores = append(summary.Scores, ParticipantScore{
			ParticipantID: rec.ParticipantID,
			AuditID:       rec.ID,
			Total:         rec.Result.Total,
			Conflicts:     conflictCounts[i],
		})
	}

	if err := s.leaderboardRepo.ApplyMatchScores(ctx, scores); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("match_id", matchID).
		Int("scored", len(scores)).
		Msg("match scores computed")
	return summary, nil
}

// loadAdminConfig returns the stored multiplier table, or an empty one when
// the admin never configured the match; every slot then resolves to the rule
// version's default.
func (s *ScoringService) loadAdminConfig(ctx context.Context, matchID string) (map[int]float64, []int, error) {
	cfg, err := s.configRepo.Get(ctx, matchID)
	if errors.Is(err, sql.ErrNoRows) {
		s.logger.Debug().Str("match_id", matchID).Msg("no admin config, using defaults")
		return map[int]float64{}, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}
	return cfg.Multipliers, cfg.DisabledSlots, nil
}
