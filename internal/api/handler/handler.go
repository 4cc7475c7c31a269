// Package handler provides HTTP handlers for all API endpoints. The chat-bot
// frontend is the only intended client: it forwards user commands here and
// renders the JSON bodies into chat replies or images.
package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/rikka-bot/rikka-data/internal/aggregate"
	"github.com/rikka-bot/rikka-data/internal/api/respond"
	"github.com/rikka-bot/rikka-data/internal/binding"
	"github.com/rikka-bot/rikka-data/internal/cache"
	"github.com/rikka-bot/rikka-data/internal/config"
	"github.com/rikka-bot/rikka-data/internal/db"
	"github.com/rikka-bot/rikka-data/internal/mai"
	"github.com/rikka-bot/rikka-data/internal/provider"
	"github.com/rikka-bot/rikka-data/internal/provider/lxns"
	"github.com/rikka-bot/rikka-data/internal/song"
)

// Handler holds shared dependencies for all endpoint handlers.
type Handler struct {
	pool     *db.Pool
	cache    *cache.Cache
	cfg      *config.Config
	scores   *aggregate.Service
	bindings *binding.Store
	songs    *song.Store
	registry *provider.Registry
	lxns     *lxns.Provider
	logger   *slog.Logger
}

// New creates a Handler with shared dependencies.
func New(pool *db.Pool, c *cache.Cache, cfg *config.Config, scores *aggregate.Service,
	bindings *binding.Store, songs *song.Store, registry *provider.Registry,
	lxnsProvider *lxns.Provider, logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		pool:     pool,
		cache:    c,
		cfg:      cfg,
		scores:   scores,
		bindings: bindings,
		songs:    songs,
		registry: registry,
		lxns:     lxnsProvider,
		logger:   logger,
	}
}

// Root serves API info at /.
// @Summary API root info
// @Description Returns API name, version, status, and registered providers.
// @Tags meta
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"name":      "Rikka Data API",
		"version":   "1.0.0",
		"status":    "running",
		"docs":      "/docs",
		"providers": h.registry.Names(),
	})
}

// HealthCheck returns basic health status.
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckDB verifies database connectivity.
// @Summary Database health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health/db [get]
func (h *Handler) HealthCheckDB(w http.ResponseWriter, r *http.Request) {
	if err := h.pool.HealthCheck(r.Context()); err != nil {
		respond.WriteJSONObject(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status":    "unhealthy",
			"database":  "disconnected",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"database":  "connected",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckCache returns cache statistics.
// @Summary Cache health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health/cache [get]
func (h *Handler) HealthCheckCache(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"cache":     h.cache.Stats(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// writeDomainError maps the typed error taxonomy onto HTTP statuses and
// stable codes the bot frontend turns into user-facing hints.
func (h *Handler) writeDomainError(w http.ResponseWriter, err error) {
	var vErr *mai.ValidationError
	switch {
	case errors.Is(err, provider.ErrInvalidArgument):
		respond.WriteError(w, http.StatusBadRequest, "INVALID_ARGUMENT", err.Error())
	case errors.Is(err, provider.ErrUnbound):
		respond.WriteError(w, http.StatusNotFound, "UNBOUND_USER",
			"no score provider bound; bind one with the bind command first")
	case errors.Is(err, provider.ErrAuth):
		respond.WriteError(w, http.StatusUnauthorized, "AUTH_REJECTED",
			"credential rejected upstream; re-bind with a valid credential")
	case errors.Is(err, song.ErrSongNotFound), errors.Is(err, provider.ErrNotFound):
		respond.WriteError(w, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, provider.ErrRateLimited):
		respond.WriteError(w, http.StatusTooManyRequests, "RATE_LIMITED",
			"upstream is throttling requests; try again later")
	case errors.Is(err, provider.ErrCapability):
		respond.WriteError(w, http.StatusNotImplemented, "NOT_SUPPORTED",
			"this provider does not support this query")
	case errors.As(err, &vErr):
		// Upstream sent a value outside the normalization tables.
		h.logger.Error("provider response failed validation", "error", err)
		respond.WriteErrorDetail(w, http.StatusBadGateway, "UPSTREAM_ERROR",
			"upstream returned unrecognized data", vErr.Error())
	case errors.Is(err, provider.ErrUpstream):
		h.logger.Error("upstream request failed", "error", err)
		respond.WriteError(w, http.StatusBadGateway, "UPSTREAM_ERROR", "upstream request failed")
	default:
		h.logger.Error("internal error", "error", err)
		respond.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
	}
}
