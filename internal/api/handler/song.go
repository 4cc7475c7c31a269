package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/rikka-bot/rikka-data/internal/api/respond"
	"github.com/rikka-bot/rikka-data/internal/cache"
)

// GetSong returns one catalog entry with its aliases.
// @Summary Song metadata
// @Tags song
// @Produce json
// @Param songID path int true "song id"
// @Success 200 {object} song.Song
// @Failure 404 {object} respond.ErrorResponse
// @Router /song/{songID} [get]
func (h *Handler) GetSong(w http.ResponseWriter, r *http.Request) {
	songID, err := strconv.Atoi(chi.URLParam(r, "songID"))
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_ARGUMENT", "songID must be an integer")
		return
	}

	cacheKey := "song:" + strconv.Itoa(songID)
	if data, etag, ok := h.cache.Get(cacheKey); ok {
		if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
			respond.WriteNotModified(w, etag)
			return
		}
		respond.WriteJSON(w, data, etag, cache.TTLSong, true)
		return
	}

	entry, err := h.songs.GetByID(r.Context(), songID)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	data, err := json.Marshal(entry)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	etag := h.cache.Set(cacheKey, data, cache.TTLSong)
	respond.WriteJSON(w, data, etag, cache.TTLSong, false)
}

// SearchSong resolves a query string to a song by title or alias.
// @Summary Song search
// @Tags song
// @Produce json
// @Param q query string true "title or alias"
// @Success 200 {object} song.Song
// @Failure 404 {object} respond.ErrorResponse
// @Router /song/search [get]
func (h *Handler) SearchSong(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_ARGUMENT", "q is required")
		return
	}

	cacheKey := "song-search:" + query
	if data, etag, ok := h.cache.Get(cacheKey); ok {
		if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
			respond.WriteNotModified(w, etag)
			return
		}
		respond.WriteJSON(w, data, etag, cache.TTLSong, true)
		return
	}

	entry, err := h.songs.Lookup(r.Context(), query)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	data, err := json.Marshal(entry)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	etag := h.cache.Set(cacheKey, data, cache.TTLSong)
	respond.WriteJSON(w, data, etag, cache.TTLSong, false)
}
