package service

import (
	"context"

	"cricket-contest/internal/constants"
	"cricket-contest/internal/domain"
	"cricket-contest/internal/repository"

	"github.com/rs/zerolog"
)

// LeaderboardService serves the ranked standings. Ordering is total score
// descending with participant ID ascending as the documented tie-break.
type LeaderboardService struct {
	repo   *repository.LeaderboardRepository
	logger zerolog.Logger
}

func NewLeaderboardService(repo *repository.LeaderboardRepository, logger zerolog.Logger) *LeaderboardService {
	return &LeaderboardService{repo: repo, logger: logger}
}

func (s *LeaderboardService) GetLeaderboard(ctx context.Context) ([]domain.LeaderboardEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	entries, err := s.repo.GetLeaderboard(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to read leaderboard")
		return nil, err
	}

	s.logger.Debug().Int("entries", len(entries)).Msg("leaderboard read")
	return entries, nil
}
