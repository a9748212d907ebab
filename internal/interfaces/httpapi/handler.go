package httpapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/playrift/esports-ingest/internal/domain/league"
	"github.com/playrift/esports-ingest/internal/domain/match"
	"github.com/playrift/esports-ingest/internal/domain/team"
	"github.com/playrift/esports-ingest/internal/usecase"
)

type Handler struct {
	leagueService *usecase.LeagueService
	importService *usecase.ImportService
	logger        *slog.Logger
	validator     *validator.Validate
}

func NewHandler(
	leagueService *usecase.LeagueService,
	importService *usecase.ImportService,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		leagueService: leagueService,
		importService: importService,
		logger:        logger,
		validator:     validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) ListLeagues(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLeagues")
	defer span.End()

	leagues, err := h.leagueService.ListLeagues(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list leagues failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]leagueDTO, 0, len(leagues))
	for _, l := range leagues {
		items = append(items, leagueToDTO(l))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListTeamsByLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeamsByLeague")
	defer span.End()

	leagueID := r.PathValue("leagueID")
	teams, err := h.leagueService.ListTeamsByLeague(ctx, leagueID)
	if err != nil {
		h.logger.WarnContext(ctx, "list teams failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]teamDTO, 0, len(teams))
	for _, t := range teams {
		items = append(items, teamToDTO(t))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListMatchesByLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatchesByLeague")
	defer span.End()

	leagueID := r.PathValue("leagueID")
	matches, err := h.leagueService.ListMatchesByLeague(ctx, leagueID)
	if err != nil {
		h.logger.WarnContext(ctx, "list matches failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]matchDTO, 0, len(matches))
	for _, m := range matches {
		items = append(items, matchToDTO(m))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

type leagueDTO struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Region  string `json:"region"`
	LogoURL string `json:"logoUrl,omitempty"`
}

type teamDTO struct {
	ID       string  `json:"id"`
	LeagueID string  `json:"leagueId,omitempty"`
	Name     string  `json:"name"`
	LogoURL  string  `json:"logoUrl,omitempty"`
	WinRate  float64 `json:"winRate"`
}

type matchDTO struct {
	ID           string          `json:"id"`
	LeagueID     string          `json:"leagueId,omitempty"`
	TeamAID      string          `json:"teamAId"`
	TeamBID      string          `json:"teamBId"`
	ScheduledAt  string          `json:"scheduledAt"`
	OddsA        float64         `json:"oddsA"`
	OddsB        float64         `json:"oddsB"`
	Status       string          `json:"status"`
	WinnerTeamID string          `json:"winnerTeamId,omitempty"`
	Streams      []streamLinkDTO `json:"streams,omitempty"`
}

type streamLinkDTO struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
}

func leagueToDTO(v league.League) leagueDTO {
	return leagueDTO{
		ID:      v.ID,
		Name:    v.Name,
		Region:  v.Region,
		LogoURL: v.LogoURL,
	}
}

func teamToDTO(v team.Team) teamDTO {
	return teamDTO{
		ID:       v.ID,
		LeagueID: v.LeagueID,
		Name:     v.Name,
		LogoURL:  v.LogoURL,
		WinRate:  v.WinRate,
	}
}

func matchToDTO(v match.Match) matchDTO {
	streams := make([]streamLinkDTO, 0, len(v.StreamLinks))
	for _, s := range v.StreamLinks {
		streams = append(streams, streamLinkDTO{Platform: s.Platform, URL: s.URL})
	}

	return matchDTO{
		ID:           v.ID,
		LeagueID:     v.LeagueID,
		TeamAID:      v.TeamAID,
		TeamBID:      v.TeamBID,
		ScheduledAt:  v.ScheduledAt.UTC().Format(time.RFC3339),
		OddsA:        v.OddsA,
		OddsB:        v.OddsB,
		Status:       v.Status,
		WinnerTeamID: v.WinnerTeamID,
		Streams:      streams,
	}
}
