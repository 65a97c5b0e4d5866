package fx

import (
	"cricket-contest/internal/config"
	"cricket-contest/internal/database"
	"cricket-contest/internal/engine"
	"cricket-contest/internal/logger"
	"cricket-contest/internal/repository"
	"cricket-contest/internal/server"
	"cricket-contest/internal/service"

	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(logger.New),
	fx.Provide(config.Load),
	fx.Provide(database.New),
	// rules
	fx.Provide(engine.LoadRegistry),
	// repos
	fx.Provide(repository.NewMatchRepository),
	fx.Provide(repository.NewTeamRepository),
	fx.Provide(repository.NewStatsRepository),
	fx.Provide(repository.NewAdminConfigRepository),
	fx.Provide(repository.NewAuditRepository),
	fx.Provide(repository.NewLeaderboardRepository),
	// svc
	fx.Provide(service.NewContestService),
	fx.Provide(service.NewScoringService),
	fx.Provide(service.NewLeaderboardService),
	fx.Provide(service.NewAuditService),
	// server
	fx.Provide(server.NewContestServer),
)
