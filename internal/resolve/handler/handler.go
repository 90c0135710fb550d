// Package handler exposes ownership resolution over HTTP.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"ensowner/internal/owner"
	"ensowner/internal/resolve"
	"ensowner/pkg/platform/httputil"
	"ensowner/pkg/requestcontext"
)

// Service defines the resolution operation the handler depends on.
type Service interface {
	ResolveOwner(ctx context.Context, name string, opts resolve.Options) (owner.Owner, error)
}

// Handler wires the owner endpoint to the resolve service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs the handler.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the owner routes.
func (h *Handler) Register(r chi.Router) {
	r.Get("/v1/owner/{name}", h.HandleGetOwner)
}

type ownerResponse struct {
	Name  string      `json:"name"`
	Owner owner.Owner `json:"owner"`
}

type classifiedResponse struct {
	Error     string      `json:"error"`
	Kind      owner.Kind  `json:"kind"`
	Timestamp uint64      `json:"timestamp"`
	Data      owner.Owner `json:"data,omitempty"`
}

// HandleGetOwner handles GET /v1/owner/{name}. The index query parameter
// enables the cross-checked path; the default is the on-chain fast path.
func (h *Handler) HandleGetOwner(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	rawName := chi.URLParam(r, "name")
	if rawName == "" {
		httputil.WriteError(w, http.StatusBadRequest, "bad_request", "name is required")
		return
	}
	opts := resolve.Options{CrossCheck: r.URL.Query().Get("index") == "true"}

	result, err := h.service.ResolveOwner(ctx, rawName, opts)
	if err != nil {
		h.writeResolveError(w, r, rawName, requestID, err)
		return
	}
	if result == nil {
		httputil.WriteError(w, http.StatusNotFound, "not_found", "")
		return
	}

	h.logger.InfoContext(ctx, "owner resolved",
		"request_id", requestID,
		"name", rawName,
		"level", result.Level(),
		"cross_check", opts.CrossCheck,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, ownerResponse{Name: rawName, Owner: result})
}

func (h *Handler) writeResolveError(w http.ResponseWriter, r *http.Request, rawName, requestID string, err error) {
	ctx := r.Context()

	if ce, ok := owner.AsClassified(err); ok {
		h.logger.WarnContext(ctx, "classified resolution failure",
			"request_id", requestID,
			"name", rawName,
			"kind", ce.Kind,
			"error", err,
		)
		status := http.StatusInternalServerError
		if ce.Kind == owner.KindSubgraphIndexing {
			// Retryable: the index will catch up; data already carries the
			// trustworthy chain value.
			status = http.StatusServiceUnavailable
			w.Header().Set("Retry-After", "30")
		}
		httputil.WriteJSON(w, status, classifiedResponse{
			Error:     "index_mismatch",
			Kind:      ce.Kind,
			Timestamp: ce.Timestamp,
			Data:      ce.Data,
		})
		return
	}

	h.logger.ErrorContext(ctx, "resolution failed",
		"request_id", requestID,
		"name", rawName,
		"error", err,
	)
	httputil.WriteError(w, http.StatusBadGateway, "upstream_unavailable", "")
}
