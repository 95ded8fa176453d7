package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/courtsight/statline/internal/api/respond"
	"github.com/courtsight/statline/internal/cache"
	"github.com/courtsight/statline/internal/engine"
	"github.com/courtsight/statline/internal/nlq"
)

// Query answers a free-text question with a formatted summary.
// @Summary Summarize a stat question
// @Description Parses the question, resolves the player, and returns a plain-text summary line or multi-stat block. Zero matching games returns a "No games found" sentence with status 200.
// @Tags query
// @Produce plain
// @Param text query string true "Free-text question, e.g. 'LeBron vs BOS last 10 games'"
// @Success 200 {string} string
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Failure 500 {object} respond.ErrorResponse
// @Router /query [get]
func (h *Handler) Query(w http.ResponseWriter, r *http.Request) {
	text := strings.TrimSpace(r.URL.Query().Get("text"))
	if text == "" {
		respond.WriteError(w, http.StatusBadRequest, "MISSING_TEXT", "text query parameter is required")
		return
	}

	cacheKey := "query:" + strings.ToLower(text)
	if data, etag, ok := h.cache.Get(cacheKey); ok {
		if cache.ETagMatch(r.Header.Get("If-None-Match"), etag) {
			respond.WriteNotModified(w, etag)
			return
		}
		respond.WriteText(w, data, etag, cache.TTLSummary, true)
		return
	}

	out, err := h.engine.Summarize(r.Context(), text)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	data := []byte(out)
	etag := h.cache.Set(cacheKey, data, cache.TTLSummary)
	respond.WriteText(w, data, etag, cache.TTLSummary, false)
}

// Games answers a free-text question with the per-game table.
// @Summary List matching games
// @Description Returns the resolved player, up to limit per-game rows ordered by date descending, and a career flag.
// @Tags query
// @Produce json
// @Param text query string true "Free-text question"
// @Param limit query int false "Row limit (default 25, max 400; an explicit 'last N' in the text wins)"
// @Success 200 {object} engine.GamesResult
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Failure 500 {object} respond.ErrorResponse
// @Router /games [get]
func (h *Handler) Games(w http.ResponseWriter, r *http.Request) {
	text := strings.TrimSpace(r.URL.Query().Get("text"))
	if text == "" {
		respond.WriteError(w, http.StatusBadRequest, "MISSING_TEXT", "text query parameter is required")
		return
	}

	limit := h.cfg.GamesDefaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			respond.WriteError(w, http.StatusBadRequest, "INVALID_LIMIT", "limit must be an integer")
			return
		}
		limit = n
	}
	if limit < 1 {
		limit = 1
	}
	if limit > nlq.MaxWindow {
		limit = nlq.MaxWindow
	}

	cacheKey := fmt.Sprintf("games:%s:%d", strings.ToLower(text), limit)
	if data, etag, ok := h.cache.Get(cacheKey); ok {
		if cache.ETagMatch(r.Header.Get("If-None-Match"), etag) {
			respond.WriteNotModified(w, etag)
			return
		}
		respond.WriteJSON(w, data, etag, cache.TTLSummary, true)
		return
	}

	result, err := h.engine.ListGames(r.Context(), text, limit)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	data, err := json.Marshal(result)
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "ENCODE_FAILED", "failed to encode response")
		return
	}
	etag := h.cache.Set(cacheKey, data, cache.TTLSummary)
	respond.WriteJSON(w, data, etag, cache.TTLSummary, false)
}

// Suggest returns player-name autocomplete plus example questions.
// @Summary Player autocomplete
// @Tags query
// @Produce json
// @Param player query string true "Name fragment"
// @Success 200 {object} engine.SuggestResult
// @Failure 500 {object} respond.ErrorResponse
// @Router /suggest [get]
func (h *Handler) Suggest(w http.ResponseWriter, r *http.Request) {
	fragment := strings.TrimSpace(r.URL.Query().Get("player"))

	cacheKey := "suggest:" + strings.ToLower(fragment)
	if data, etag, ok := h.cache.Get(cacheKey); ok {
		if cache.ETagMatch(r.Header.Get("If-None-Match"), etag) {
			respond.WriteNotModified(w, etag)
			return
		}
		respond.WriteJSON(w, data, etag, cache.TTLSuggest, true)
		return
	}

	result, err := h.engine.Suggest(r.Context(), fragment)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	data, err := json.Marshal(result)
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "ENCODE_FAILED", "failed to encode response")
		return
	}
	etag := h.cache.Set(cacheKey, data, cache.TTLSuggest)
	respond.WriteJSON(w, data, etag, cache.TTLSuggest, false)
}

// writeEngineError maps the engine's error taxonomy to HTTP statuses.
// Unresolvable or ambiguous player names are user-correctable (4xx); only
// store failures are 5xx.
func writeEngineError(w http.ResponseWriter, err error) {
	var notFound *engine.PlayerNotFoundError
	var ambiguous *engine.AmbiguousPlayerError
	switch {
	case errors.Is(err, engine.ErrEmptyInput):
		respond.WriteError(w, http.StatusBadRequest, "MISSING_TEXT", "query text is empty")
	case errors.As(err, &notFound):
		respond.WriteError(w, http.StatusNotFound, "PLAYER_NOT_FOUND", notFound.Error())
	case errors.As(err, &ambiguous):
		respond.WriteErrorDetail(w, http.StatusBadRequest, "AMBIGUOUS_PLAYER",
			ambiguous.Error(), strings.Join(ambiguous.Candidates, ", "))
	default:
		respond.WriteError(w, http.StatusInternalServerError, "QUERY_FAILED", err.Error())
	}
}
