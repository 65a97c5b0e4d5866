package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"cricket-contest/internal/domain"
	"cricket-contest/internal/engine"
	"cricket-contest/internal/service"

	"github.com/rs/zerolog"
)

// ContestServer is the HTTP orchestration surface: thin JSON handlers that
// delegate to the services and map engine errors to status codes.
type ContestServer struct {
	contestSvc     *service.ContestService
	scoringSvc     *service.ScoringService
	leaderboardSvc *service.LeaderboardService
	auditSvc       *service.AuditService
	logger         zerolog.Logger
}

func NewContestServer(
	contestSvc *service.ContestService,
	scoringSvc *service.ScoringService,
	leaderboardSvc *service.LeaderboardService,
	auditSvc *service.AuditService,
	logger zerolog.Logger,
) *ContestServer {
	return &ContestServer{
		contestSvc:     contestSvc,
		scoringSvc:     scoringSvc,
		leaderboardSvc: leaderboardSvc,
		auditSvc:       auditSvc,
		logger:         logger,
	}
}

// Routes registers every handler on the mux.
func (s *ContestServer) Routes(mux *http.ServeMux) {
	mux.HandleFunc("POST /v1/matches", s.handleCreateMatch)
	mux.HandleFunc("GET /v1/matches/count", s.handleMatchCount)
	mux.HandleFunc("GET /v1/matches/{id}", s.handleGetMatch)
	mux.HandleFunc("DELETE /v1/matches", s.handleClearMatches)
	mux.HandleFunc("POST /v1/matches/{id}/teams", s.handleSubmitTeam)
	mux.HandleFunc("POST /v1/matches/{id}/stats", s.handleIngestStats)
	mux.HandleFunc("PUT /v1/matches/{id}/config", s.handleSetConfig)
	mux.HandleFunc("POST /v1/matches/{id}/score", s.handleComputeScores)
	mux.HandleFunc("GET /v1/leaderboard", s.handleLeaderboard)
	mux.HandleFunc("GET /v1/audit/{id}", s.handleGetAudit)
}

type createMatchRequest struct {
	Name     string    `json:"name"`
	Venue    string    `json:"venue"`
	StartsAt time.Time `json:"starts_at"`
}

func (s *ContestServer) handleCreateMatch(w http.ResponseWriter, r *http.Request) {
	var req createMatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.Name == "" {
		s.writeError(w, http.StatusBadRequest, errors.New("match name is required"))
		return
	}

	match, err := s.contestSvc.CreateMatch(r.Context(), req.Name, req.Venue, req.StartsAt)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, map[string]string{"match_id": match.MatchID})
}

func (s *ContestServer) handleGetMatch(w http.ResponseWriter, r *http.Request) {
	match, err := s.contestSvc.GetMatch(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, match)
}

func (s *ContestServer) handleMatchCount(w http.ResponseWriter, r *http.Request) {
	count, err := s.contestSvc.MatchCount(r.Context())
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]int{"count": count})
}

func (s *ContestServer) handleClearMatches(w http.ResponseWriter, r *http.Request) {
	if err := s.contestSvc.ClearAllMatches(r.Context()); err != nil {
		s.writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type submitTeamRequest struct {
	ParticipantID string         `json:"participant_id"`
	Assignments   map[int]string `json:"assignments"`
}

type submitTeamResponse struct {
	Conflicts []engine.SlotConflict `json:"conflicts"`
}

func (s *ContestServer) handleSubmitTeam(w http.ResponseWriter, r *http.Request) {
	var req submitTeamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.ParticipantID == "" {
		s.writeError(w, http.StatusBadRequest, errors.New("participant_id is required"))
		return
	}

	conflicts, err := s.contestSvc.SubmitTeam(r.Context(), r.PathValue("id"), req.ParticipantID, req.Assignments)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, submitTeamResponse{Conflicts: conflicts})
}

type ingestStatsRequest struct {
	Players []domain.PlayerMatchStats `json:"players"`
	Rescore bool                      `json:"rescore"`
}

func (s *ContestServer) handleIngestStats(w http.ResponseWriter, r *http.Request) {
	var req ingestStatsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	err := s.contestSvc.IngestPlayerStats(r.Context(), r.PathValue("id"), req.Players, req.Rescore)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type setConfigRequest struct {
	Multipliers map[int]float64 `json:"multipliers"`
	Disabled    []int           `json:"disabled"`
}

func (s *ContestServer) handleSetConfig(w http.ResponseWriter, r *http.Request) {
	var req setConfigRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	err := s.contestSvc.SetAdminConfig(r.Context(), r.PathValue("id"), req.Multipliers, req.Disabled)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *ContestServer) handleComputeScores(w http.ResponseWriter, r *http.Request) {
	summary, err := s.scoringSvc.ComputeMatchScores(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, summary)
}

func (s *ContestServer) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	entries, err := s.leaderboardSvc.GetLeaderboard(r.Context())
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	if entries == nil {
		entries = []domain.LeaderboardEntry{}
	}
	s.writeJSON(w, http.StatusOK, entries)
}

func (s *ContestServer) handleGetAudit(w http.ResponseWriter, r *http.Request) {
	status, err := s.auditSvc.GetAuditRecord(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, status)
}

func (s *ContestServer) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrMatchNotFound),
		errors.Is(err, service.ErrAuditRecordNotFound):
		s.writeError(w, http.StatusNotFound, err)
	case errors.Is(err, service.ErrStatsLocked):
		s.writeError(w, http.StatusConflict, err)
	case errors.Is(err, engine.ErrInvalidSlotIndex),
		errors.Is(err, engine.ErrInvalidMultiplier),
		errors.Is(err, engine.ErrMissingConfig),
		errors.Is(err, service.ErrNothingToScore):
		s.writeError(w, http.StatusBadRequest, err)
	case errors.Is(err, engine.ErrVersionMismatch),
		errors.Is(err, engine.ErrUnknownRuleVersion):
		s.writeError(w, http.StatusConflict, err)
	default:
		s.writeError(w, http.StatusInternalServerError, err)
	}
}

func (s *ContestServer) writeError(w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		s.logger.Error().Err(err).Int("status", status).Msg("request failed")
	} else {
		s.logger.Debug().Err(err).Int("status", status).Msg("request rejected")
	}
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (s *ContestServer) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error().Err(err).Msg("failed to encode response")
	}
}
