// Package handler wires the engine's read endpoints to the engine service.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"noesis/internal/engine"
	"noesis/internal/integration"
	id "noesis/pkg/domain"
	"noesis/pkg/platform/httputil"
	"noesis/pkg/requestcontext"
)

// Service defines the interface for consciousness derivation operations.
type Service interface {
	Snapshot(ctx context.Context, userID id.UserID) (*engine.Snapshot, error)
	Summary(ctx context.Context, userID id.UserID) (*engine.Summary, error)
	Patterns(ctx context.Context, userID id.UserID) ([]engine.Pattern, error)
	Recommendations(ctx context.Context, userID id.UserID) ([]engine.Recommendation, error)
}

// Handler exposes derived consciousness state over HTTP.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs an engine handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts engine endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/api/users/{userID}/consciousness", h.HandleConsciousness)
	r.Get("/api/users/{userID}/dashboard", h.HandleDashboard)
	r.Get("/api/users/{userID}/patterns", h.HandlePatterns)
	r.Get("/api/users/{userID}/recommendations", h.HandleRecommendations)
	r.Get("/api/integrations", h.HandleIntegrations)
}

// HandleConsciousness handles GET /api/users/{userID}/consciousness requests.
func (h *Handler) HandleConsciousness(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := h.pathUserID(w, r)
	if !ok {
		return
	}

	snapshot, err := h.service.Snapshot(ctx, userID)
	if err != nil {
		h.logger.ErrorContext(ctx, "snapshot derivation failed",
			"request_id", requestcontext.RequestID(ctx),
			"user_id", userID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, snapshot)
}

// HandleDashboard handles GET /api/users/{userID}/dashboard requests.
func (h *Handler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.pathUserID(w, r)
	if !ok {
		return
	}

	summary, err := h.service.Summary(r.Context(), userID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, summary)
}

// HandlePatterns handles GET /api/users/{userID}/patterns requests.
func (h *Handler) HandlePatterns(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.pathUserID(w, r)
	if !ok {
		return
	}

	patterns, err := h.service.Patterns(r.Context(), userID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"patterns": patterns})
}

// HandleRecommendations handles GET /api/users/{userID}/recommendations
// requests.
func (h *Handler) HandleRecommendations(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.pathUserID(w, r)
	if !ok {
		return
	}

	recommendations, err := h.service.Recommendations(r.Context(), userID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"recommendations": recommendations})
}

// HandleIntegrations handles GET /api/integrations requests with the static
// source system catalog.
func (h *Handler) HandleIntegrations(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"integrations": integration.Catalog()})
}

func (h *Handler) pathUserID(w http.ResponseWriter, r *http.Request) (id.UserID, bool) {
	userID, err := id.ParseUserID(chi.URLParam(r, "userID"))
	if err != nil {
		httputil.WriteError(w, err)
		return id.UserID{}, false
	}
	return userID, true
}
