// internal/app/features/accessrequests/handler.go
package accessrequests

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	apierrors "github.com/forgefit/adminhub/internal/app/features/errors"
	"github.com/forgefit/adminhub/internal/app/store/accessrequests"
	"github.com/forgefit/adminhub/internal/app/system/normalize"
	"github.com/forgefit/adminhub/internal/app/system/timeouts"
	"github.com/forgefit/adminhub/internal/domain/models"
)

// Handler serves the access request admin endpoints.
type Handler struct {
	Store *accessrequests.Store
	Log   *zap.Logger
}

// NewHandler constructs an accessrequests Handler.
func NewHandler(store *accessrequests.Store, logger *zap.Logger) *Handler {
	return &Handler{Store: store, Log: logger}
}

// Submit handles POST /api/access-requests. The body is a JSON object
// with "email", an optional "status", and any further profile fields the
// admin form sends; unknown fields are stored verbatim. Resubmitting an
// email updates the existing request.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		apierrors.RenderBadRequest(w, "invalid JSON body")
		return
	}

	req := models.AccessRequest{Extra: map[string]any{}}
	for k, v := range body {
		switch k {
		case "email":
			req.Email, _ = v.(string)
		case "status":
			req.Status, _ = v.(string)
		default:
			req.Extra[k] = v
		}
	}

	saved, err := h.Store.Submit(ctx, req)
	if err != nil {
		if errors.Is(err, accessrequests.ErrEmptyEmail) || errors.Is(err, accessrequests.ErrBadStatus) {
			apierrors.RenderBadRequest(w, err.Error())
			return
		}
		h.Log.Error("submit access request failed", zap.Error(err))
		apierrors.RenderInternal(w)
		return
	}

	apierrors.RenderJSON(w, http.StatusOK, saved)
}

// List handles GET /api/access-requests?limit=N. Without a limit, all
// requests are returned, newest first.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	var limit int64
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n < 1 {
			apierrors.RenderBadRequest(w, "limit must be a positive integer")
			return
		}
		limit = n
	}

	items, err := h.Store.List(ctx, limit)
	if err != nil {
		h.Log.Error("list access requests failed", zap.Error(err))
		apierrors.RenderInternal(w)
		return
	}

	apierrors.RenderJSON(w, http.StatusOK, map[string]any{
		"requests": items,
	})
}

// statusRequest is the POST body for a status change.
type statusRequest struct {
	Status string `json:"status"`
	Actor  string `json:"actor"`
}

// SetStatus handles POST /api/access-requests/{id}/status.
func (h *Handler) SetStatus(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	var body statusRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		apierrors.RenderBadRequest(w, "invalid JSON body")
		return
	}

	id := chi.URLParam(r, "id")
	updated, err := h.Store.SetStatus(ctx, id, body.Status, body.Actor)
	if err != nil {
		switch {
		case errors.Is(err, accessrequests.ErrBadStatus):
			apierrors.RenderBadRequest(w, err.Error())
		case errors.Is(err, accessrequests.ErrNotFound):
			apierrors.RenderNotFound(w, "access request not found")
		default:
			h.Log.Error("set access request status failed",
				zap.String("id", id), zap.Error(err))
			apierrors.RenderInternal(w)
		}
		return
	}

	apierrors.RenderJSON(w, http.StatusOK, updated)
}

// checkResponse is the body for an access check.
type checkResponse struct {
	HasAccess bool                  `json:"has_access"`
	Request   *models.AccessRequest `json:"request,omitempty"`
}

// Check handles GET /api/access-requests/check?email=…; it reports
// whether the email currently has active access.
func (h *Handler) Check(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	email := normalize.Email(r.URL.Query().Get("email"))
	if email == "" {
		apierrors.RenderBadRequest(w, "email query parameter is required")
		return
	}

	req, err := h.Store.CheckAccess(ctx, email)
	if err != nil {
		h.Log.Error("access check failed", zap.Error(err))
		apierrors.RenderInternal(w)
		return
	}

	apierrors.RenderJSON(w, http.StatusOK, checkResponse{
		HasAccess: req != nil,
		Request:   req,
	})
}

// Delete handles DELETE /api/access-requests/{id}. Unknown IDs still
// return 204.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id := chi.URLParam(r, "id")
	if err := h.Store.Delete(ctx, id); err != nil {
		h.Log.Error("delete access request failed", zap.String("id", id), zap.Error(err))
		apierrors.RenderInternal(w)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
