package leaderboardhandlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"os"

	leaderboardservice "github.com/Black-And-White-Club/wordle-bot/app/modules/leaderboard/application"
	resultsservice "github.com/Black-And-White-Club/wordle-bot/app/modules/results/application"
	resultstypes "github.com/Black-And-White-Club/wordle-bot/app/modules/results/domain/types"
	resultsexport "github.com/Black-And-White-Club/wordle-bot/app/modules/results/infrastructure/export"
	resultsdb "github.com/Black-And-White-Club/wordle-bot/app/modules/results/infrastructure/repositories"
	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// DatasetSource loads the dataset the dashboard summarizes.
type DatasetSource interface {
	Load(ctx context.Context) ([]resultstypes.FinalRow, error)
}

// FileSource reads the CSV dataset from disk on every call.
type FileSource struct {
	Path string
}

func (s FileSource) Load(context.Context) ([]resultstypes.FinalRow, error) {
	return resultsexport.ReadFile(s.Path)
}

// DatabaseSource reads the most recently persisted run.
type DatabaseSource struct {
	Service resultsservice.Service
}

func (s DatabaseSource) Load(ctx context.Context) ([]resultstypes.FinalRow, error) {
	stored, err := s.Service.LatestDataset(ctx)
	if err != nil {
		return nil, err
	}
	return stored.Rows, nil
}

// LeaderboardHandlers serves standings and charts over HTTP.
type LeaderboardHandlers struct {
	source  DatasetSource
	filter  leaderboardservice.Filter
	palette leaderboardservice.ChartPalette
	logger  *slog.Logger
	tracer  trace.Tracer
}

// NewLeaderboardHandlers creates a new LeaderboardHandlers instance.
func NewLeaderboardHandlers(
	source DatasetSource,
	filter leaderboardservice.Filter,
	logger *slog.Logger,
	tracer trace.Tracer,
) *LeaderboardHandlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &LeaderboardHandlers{
		source:  source,
		filter:  filter,
		palette: leaderboardservice.DefaultPalette,
		logger:  logger,
		tracer:  tracer,
	}
}

// Register mounts the dashboard routes on r.
func (h *LeaderboardHandlers) Register(r chi.Router) {
	r.Get("/api/standings", h.HandleStandings)
	r.Get("/api/players/{player}", h.HandlePlayer)
	r.Get("/charts/ranking.png", h.HandleRankingChart)
	r.Get("/charts/players/{player}/fails.png", h.HandlePlayerFailsChart)
}

func (h *LeaderboardHandlers) HandleStandings(w http.ResponseWriter, r *http.Request) {
	standings, ok := h.standings(w, r, "HandleStandings")
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, standings)
}

func (h *LeaderboardHandlers) HandlePlayer(w http.ResponseWriter, r *http.Request) {
	standings, ok := h.standings(w, r, "HandlePlayer")
	if !ok {
		return
	}
	stats, found := standings.Player(playerParam(r))
	if !found {
		http.Error(w, "player not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *LeaderboardHandlers) HandleRankingChart(w http.ResponseWriter, r *http.Request) {
	standings, ok := h.standings(w, r, "HandleRankingChart")
	if !ok {
		return
	}
	png, err := leaderboardservice.GenerateRankingChart(standings, h.palette)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to render ranking chart", slog.Any("error", err))
		http.Error(w, "failed to render chart", http.StatusInternalServerError)
		return
	}
	writePNG(w, png)
}

func (h *LeaderboardHandlers) HandlePlayerFailsChart(w http.ResponseWriter, r *http.Request) {
	standings, ok := h.standings(w, r, "HandlePlayerFailsChart")
	if !ok {
		return
	}
	stats, found := standings.Player(playerParam(r))
	if !found {
		http.Error(w, "player not found", http.StatusNotFound)
		return
	}
	png, err := leaderboardservice.GenerateFailsChart(stats, h.palette)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to render fails chart",
			slog.String("player", stats.Player),
			slog.Any("error", err),
		)
		http.Error(w, "failed to render chart", http.StatusInternalServerError)
		return
	}
	writePNG(w, png)
}

// standings loads the dataset and computes standings, writing the error
// response itself when that fails.
func (h *LeaderboardHandlers) standings(w http.ResponseWriter, r *http.Request, operation string) (leaderboardservice.Standings, bool) {
	ctx := r.Context()
	if h.tracer != nil {
		var span trace.Span
		ctx, span = h.tracer.Start(ctx, operation, trace.WithAttributes(
			attribute.String("http.route", r.URL.Path),
		))
		defer span.End()
	}

	rows, err := h.source.Load(ctx)
	if err != nil {
		status, msg := loadErrorStatus(err)
		h.logger.ErrorContext(ctx, "Failed to load dataset",
			slog.String("operation", operation),
			slog.Int("status", status),
			slog.Any("error", err),
		)
		http.Error(w, msg, status)
		return leaderboardservice.Standings{}, false
	}

	return leaderboardservice.Compute(rows, h.filter), true
}

func loadErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, os.ErrNotExist), errors.Is(err, resultsdb.ErrNotFound):
		return http.StatusServiceUnavailable, "dataset has not been built"
	case errors.Is(err, resultsexport.ErrSchemaMismatch):
		return http.StatusInternalServerError, "dataset schema mismatch"
	default:
		return http.StatusInternalServerError, "failed to load dataset"
	}
}

func playerParam(r *http.Request) string {
	raw := chi.URLParam(r, "player")
	if name, err := url.PathUnescape(raw); err == nil {
		return name
	}
	return raw
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writePNG(w http.ResponseWriter, png []byte) {
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}
