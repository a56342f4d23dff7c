// Package handler wires the profile endpoints to the profile service.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"noesis/internal/audit"
	"noesis/internal/integration"
	"noesis/internal/profile/models"
	id "noesis/pkg/domain"
	dErrors "noesis/pkg/domain-errors"
	"noesis/pkg/platform/httputil"
	"noesis/pkg/requestcontext"
)

// Service defines the interface for profile operations.
type Service interface {
	Create(ctx context.Context, userID id.UserID, email string) (*models.Profile, error)
	Get(ctx context.Context, userID id.UserID) (*models.Profile, error)
	Update(ctx context.Context, userID id.UserID, update models.ProfileUpdate) (*models.Profile, error)
	Delete(ctx context.Context, userID id.UserID) error
	Sync(ctx context.Context, userID id.UserID, event integration.Event) (*models.Profile, error)
	Activity(ctx context.Context, userID id.UserID) ([]audit.Event, error)
}

// Handler exposes profile CRUD and integration sync over HTTP.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a profile handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts profile endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/api/users", h.HandleCreate)
	r.Get("/api/users/{userID}", h.HandleGet)
	r.Patch("/api/users/{userID}", h.HandleUpdate)
	r.Delete("/api/users/{userID}", h.HandleDelete)
	r.Post("/api/users/{userID}/sync", h.HandleSync)
	r.Get("/api/users/{userID}/activity", h.HandleActivity)
}

type createRequest struct {
	ID    string `json:"id,omitempty"`
	Email string `json:"email"`
}

type syncRequest struct {
	SourceSystem string         `json:"sourceSystem"`
	DataType     string         `json:"dataType"`
	Payload      map[string]any `json:"payload"`
}

// HandleCreate handles POST /api/users requests.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req createRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}

	var userID id.UserID
	if req.ID != "" {
		parsed, err := id.ParseUserID(req.ID)
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		userID = parsed
	}

	p, err := h.service.Create(ctx, userID, req.Email)
	if err != nil {
		h.logger.ErrorContext(ctx, "profile creation failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, p)
}

// HandleGet handles GET /api/users/{userID} requests.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.pathUserID(w, r)
	if !ok {
		return
	}

	p, err := h.service.Get(r.Context(), userID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, p)
}

// HandleUpdate handles PATCH /api/users/{userID} requests with a partial
// profile document.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := h.pathUserID(w, r)
	if !ok {
		return
	}

	var update models.ProfileUpdate
	if err := httputil.DecodeJSON(r, &update); err != nil {
		httputil.WriteError(w, err)
		return
	}

	p, err := h.service.Update(ctx, userID, update)
	if err != nil {
		h.logger.ErrorContext(ctx, "profile update failed",
			"request_id", requestcontext.RequestID(ctx),
			"user_id", userID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, p)
}

// HandleDelete handles DELETE /api/users/{userID} requests.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.pathUserID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), userID); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleSync handles POST /api/users/{userID}/sync requests carrying one
// integration event.
func (h *Handler) HandleSync(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := h.pathUserID(w, r)
	if !ok {
		return
	}

	var req syncRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	if req.SourceSystem == "" || req.DataType == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "sourceSystem and dataType are required"))
		return
	}

	p, err := h.service.Sync(ctx, userID, integration.Event{
		SourceSystem: integration.SourceSystem(req.SourceSystem),
		DataType:     req.DataType,
		Payload:      req.Payload,
		UserID:       userID,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "sync failed",
			"request_id", requestcontext.RequestID(ctx),
			"user_id", userID,
			"source", req.SourceSystem,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, p)
}

// HandleActivity handles GET /api/users/{userID}/activity requests.
func (h *Handler) HandleActivity(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.pathUserID(w, r)
	if !ok {
		return
	}

	events, err := h.service.Activity(r.Context(), userID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"events": events})
}

func (h *Handler) pathUserID(w http.ResponseWriter, r *http.Request) (id.UserID, bool) {
	userID, err := id.ParseUserID(chi.URLParam(r, "userID"))
	if err != nil {
		httputil.WriteError(w, err)
		return id.UserID{}, false
	}
	return userID, true
}
