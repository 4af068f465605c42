package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/DanieleFedeli/lyra"
	"github.com/DanieleFedeli/lyra/internal/querycache"
	apperrors "github.com/DanieleFedeli/lyra/pkg/errors"
	"github.com/DanieleFedeli/lyra/pkg/metrics"
)

// Handler serves the demo HTTP API over a single lyra.Engine.
type Handler struct {
	engine  *lyra.Engine
	cache   *querycache.QueryCache
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// New builds a Handler. cache may be nil, in which case Search always
// computes a fresh result.
func New(engine *lyra.Engine, cache *querycache.QueryCache, m *metrics.Metrics, logger *slog.Logger) *Handler {
	return &Handler{engine: engine, cache: cache, metrics: m, logger: logger.With("component", "httpapi")}
}

type insertRequest struct {
	Document map[string]any `json:"document"`
	Language string         `json:"language,omitempty"`
}

type insertResponse struct {
	ID string `json:"id"`
}

// PostDocument handles POST /documents.
func (h *Handler) PostDocument(w http.ResponseWriter, r *http.Request) {
	var req insertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	result, err := h.engine.Insert(req.Document, req.Language)
	if err != nil {
		h.writeEngineError(w, err)
		return
	}

	if h.cache != nil {
		if err := h.cache.Invalidate(r.Context()); err != nil {
			h.logger.Warn("cache invalidation failed after insert", "error", err)
		}
	}

	writeJSON(w, http.StatusCreated, insertResponse{ID: result.ID})
}

// DeleteDocument handles DELETE /documents/{id}.
func (h *Handler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if _, err := h.engine.Delete(id); err != nil {
		h.writeEngineError(w, err)
		return
	}

	if h.cache != nil {
		if err := h.cache.Invalidate(r.Context()); err != nil {
			h.logger.Warn("cache invalidation failed after delete", "error", err)
		}
	}

	w.WriteHeader(http.StatusNoContent)
}

type searchRequest struct {
	Term       string         `json:"term"`
	Properties []string       `json:"properties,omitempty"`
	Limit      int            `json:"limit,omitempty"`
	Offset     int            `json:"offset,omitempty"`
	Exact      bool           `json:"exact,omitempty"`
	Tolerance  int            `json:"tolerance,omitempty"`
	Where      map[string]any `json:"where,omitempty"`
	Language   string         `json:"language,omitempty"`
}

// PostSearch handles POST /search.
func (h *Handler) PostSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	params := lyra.SearchParams{
		Term:       req.Term,
		Properties: req.Properties,
		Limit:      req.Limit,
		Offset:     req.Offset,
		Exact:      req.Exact,
		Tolerance:  req.Tolerance,
		Where:      req.Where,
	}

	if h.cache == nil {
		result, err := h.engine.Search(params, req.Language)
		if err != nil {
			h.writeEngineError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, result)
		return
	}

	var result lyra.SearchResult
	hit, err := h.cache.GetOrCompute(r.Context(), req, &result, func() (any, error) {
		return h.engine.Search(params, req.Language)
	})
	if err != nil {
		h.writeEngineError(w, err)
		return
	}
	h.recordCacheOutcome(hit)
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) recordCacheOutcome(hit bool) {
	if hit {
		h.metrics.CacheHitsTotal.Inc()
		return
	}
	h.metrics.CacheMissesTotal.Inc()
}

func (h *Handler) writeEngineError(w http.ResponseWriter, err error) {
	status := apperrors.HTTPStatusCode(err)
	var appErr *apperrors.AppError
	message := err.Error()
	if errors.As(err, &appErr) {
		message = appErr.Message
	}
	writeError(w, status, message)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorBody struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorBody{Error: message})
}
