package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/rikka-bot/rikka-data/internal/api/respond"
	"github.com/rikka-bot/rikka-data/internal/mai"
	"github.com/rikka-bot/rikka-data/internal/provider"
)

// GetPlayerInfo returns the player's profile from their resolved provider.
// @Summary Player profile
// @Tags player
// @Produce json
// @Param userID path string true "chat-platform user id"
// @Success 200 {object} mai.PlayerInfo
// @Failure 404 {object} respond.ErrorResponse
// @Router /player/{userID}/info [get]
func (h *Handler) GetPlayerInfo(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	info, err := h.scores.PlayerInfo(r.Context(), userID)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, info)
}

// GetBest50 returns the two-era best-scores view.
// @Summary Best 50
// @Tags player
// @Produce json
// @Param userID path string true "chat-platform user id"
// @Success 200 {object} mai.BestScores
// @Failure 404 {object} respond.ErrorResponse
// @Router /player/{userID}/b50 [get]
func (h *Handler) GetBest50(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	bests, err := h.scores.BestScores(r.Context(), userID)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, bests)
}

// GetAP50 returns the AP-only best-scores view, reconstructed when the
// provider lacks a native endpoint.
// @Summary AP 50
// @Tags player
// @Produce json
// @Param userID path string true "chat-platform user id"
// @Success 200 {object} mai.BestScores
// @Failure 404 {object} respond.ErrorResponse
// @Router /player/{userID}/ap50 [get]
func (h *Handler) GetAP50(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	bests, err := h.scores.AllPerfectScores(r.Context(), userID)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, bests)
}

// GetRecent returns the most recent play records.
// @Summary Recent plays
// @Tags player
// @Produce json
// @Param userID path string true "chat-platform user id"
// @Success 200 {array} mai.Score
// @Failure 501 {object} respond.ErrorResponse
// @Router /player/{userID}/recent [get]
func (h *Handler) GetRecent(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	scores, err := h.scores.RecentScores(r.Context(), userID)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, scores)
}

// GetSongScores returns all difficulty records for one song.
// @Summary Scores for one song
// @Tags player
// @Produce json
// @Param userID path string true "chat-platform user id"
// @Param songID path int true "song id"
// @Param type query string false "chart type (standard, dx)" default(dx)
// @Success 200 {array} mai.Score
// @Failure 400 {object} respond.ErrorResponse
// @Router /player/{userID}/song/{songID} [get]
func (h *Handler) GetSongScores(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	songID, err := strconv.Atoi(chi.URLParam(r, "songID"))
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_ARGUMENT", "songID must be an integer")
		return
	}

	chartParam := r.URL.Query().Get("type")
	if chartParam == "" {
		chartParam = string(mai.ChartDX)
	}
	chart, err := mai.ParseChartType(chartParam)
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_ARGUMENT", err.Error())
		return
	}

	scores, err := h.scores.SongScores(r.Context(), userID, songID, chart)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, scores)
}

// GetScoresFiltered returns the full score list narrowed by query filters.
// @Summary Filtered score list
// @Tags player
// @Produce json
// @Param userID path string true "chat-platform user id"
// @Param level query string false "display level filter, e.g. 13+"
// @Param min_achievement query number false "inclusive achievement lower bound"
// @Success 200 {array} mai.Score
// @Failure 400 {object} respond.ErrorResponse
// @Router /player/{userID}/scores [get]
func (h *Handler) GetScoresFiltered(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	filter := provider.ScoreFilter{Level: r.URL.Query().Get("level")}
	if raw := r.URL.Query().Get("min_achievement"); raw != "" {
		min, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			respond.WriteError(w, http.StatusBadRequest, "INVALID_ARGUMENT", "min_achievement must be a number")
			return
		}
		filter.MinAchievement = min
	}

	scores, err := h.scores.ScoresFiltered(r.Context(), userID, filter)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, scores)
}
