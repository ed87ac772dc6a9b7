// internal/app/features/reflections/handler.go
package reflections

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	apierrors "github.com/forgefit/adminhub/internal/app/features/errors"
	"github.com/forgefit/adminhub/internal/app/store/reflections"
	"github.com/forgefit/adminhub/internal/app/system/reflectionid"
	"github.com/forgefit/adminhub/internal/app/system/timeouts"
	"github.com/forgefit/adminhub/internal/domain/models"
)

// Listing defaults. Callers can raise limit up to MaxListLimit.
const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// Handler serves the reflection admin endpoints.
type Handler struct {
	Store *reflections.Store
	Log   *zap.Logger
}

// NewHandler constructs a reflections Handler.
func NewHandler(store *reflections.Store, logger *zap.Logger) *Handler {
	return &Handler{Store: store, Log: logger}
}

// createRequest is the POST body for creating a reflection.
type createRequest struct {
	DateKey       string `json:"date_key"`
	Text          string `json:"text"`
	ExerciseID    string `json:"exercise_id"`
	ExerciseName  string `json:"exercise_name"`
	ChallengeID   string `json:"challenge_id"`
	ChallengeName string `json:"challenge_name"`
}

// Create handles POST /api/reflections. Writing to a date and context
// that already hold a reflection replaces it.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	var body createRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		apierrors.RenderBadRequest(w, "invalid JSON body")
		return
	}

	created, err := h.Store.Create(ctx, models.Reflection{
		DateKey:       body.DateKey,
		Text:          body.Text,
		ExerciseID:    body.ExerciseID,
		ExerciseName:  body.ExerciseName,
		ChallengeID:   body.ChallengeID,
		ChallengeName: body.ChallengeName,
	})
	if err != nil {
		if errors.Is(err, reflections.ErrEmptyText) || errors.Is(err, reflections.ErrBadDateKey) {
			apierrors.RenderBadRequest(w, err.Error())
			return
		}
		h.Log.Error("create reflection failed", zap.Error(err))
		apierrors.RenderInternal(w)
		return
	}

	apierrors.RenderJSON(w, http.StatusCreated, created)
}

// Replace handles PUT /api/reflections/{id}. The slot comes from the
// ID, not the body: date_key and challenge_id in the body are ignored
// so a replace can never move a reflection to a different slot.
func (h *Handler) Replace(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id := chi.URLParam(r, "id")
	dateKey, contextKey, err := reflectionid.DecodeID(id)
	if err != nil {
		apierrors.RenderNotFound(w, "reflection not found")
		return
	}

	var body createRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		apierrors.RenderBadRequest(w, "invalid JSON body")
		return
	}

	rec := models.Reflection{
		DateKey:       dateKey,
		Text:          body.Text,
		ExerciseID:    body.ExerciseID,
		ExerciseName:  body.ExerciseName,
		ChallengeName: body.ChallengeName,
	}
	if contextKey != reflectionid.ContextGeneral {
		rec.ChallengeID = contextKey
	}

	updated, err := h.Store.Create(ctx, rec)
	if err != nil {
		if errors.Is(err, reflections.ErrEmptyText) || errors.Is(err, reflections.ErrBadDateKey) {
			apierrors.RenderBadRequest(w, err.Error())
			return
		}
		h.Log.Error("replace reflection failed", zap.String("id", id), zap.Error(err))
		apierrors.RenderInternal(w)
		return
	}

	apierrors.RenderJSON(w, http.StatusOK, updated)
}

// List handles GET /api/reflections?limit=N.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	limit := int64(DefaultListLimit)
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n < 1 {
			apierrors.RenderBadRequest(w, "limit must be a positive integer")
			return
		}
		if n > MaxListLimit {
			n = MaxListLimit
		}
		limit = n
	}

	items, err := h.Store.List(ctx, limit)
	if err != nil {
		h.Log.Error("list reflections failed", zap.Error(err))
		apierrors.RenderInternal(w)
		return
	}

	apierrors.RenderJSON(w, http.StatusOK, map[string]any{
		"reflections": items,
	})
}

// Get handles GET /api/reflections/{id}. Malformed IDs look the same as
// missing reflections: 404.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id := chi.URLParam(r, "id")
	got, err := h.Store.Get(ctx, id)
	if err != nil {
		h.Log.Error("get reflection failed", zap.String("id", id), zap.Error(err))
		apierrors.RenderInternal(w)
		return
	}
	if got == nil {
		apierrors.RenderNotFound(w, "reflection not found")
		return
	}

	apierrors.RenderJSON(w, http.StatusOK, got)
}

// Delete handles DELETE /api/reflections/{id}. Deleting a malformed or
// unknown ID still returns 204.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id := chi.URLParam(r, "id")
	if err := h.Store.Delete(ctx, id); err != nil {
		h.Log.Error("delete reflection failed", zap.String("id", id), zap.Error(err))
		apierrors.RenderInternal(w)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
