// internal/app/features/challenges/handler.go
package challenges

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	apierrors "github.com/forgefit/adminhub/internal/app/features/errors"
	"github.com/forgefit/adminhub/internal/app/system/challengecache"
	"github.com/forgefit/adminhub/internal/app/system/normalize"
	"github.com/forgefit/adminhub/internal/app/system/timeouts"
	"github.com/forgefit/adminhub/internal/domain/models"
)

// Handler serves challenge search for the reflection admin form.
type Handler struct {
	Cache *challengecache.Cache
	Log   *zap.Logger
}

// NewHandler constructs a challenges Handler.
func NewHandler(cache *challengecache.Cache, logger *zap.Logger) *Handler {
	return &Handler{Cache: cache, Log: logger}
}

// searchResponse is the body for a challenge search.
type searchResponse struct {
	Challenges []models.ChallengeSummary `json:"challenges"`
	CacheReady bool                      `json:"cache_ready"`
}

// Search handles GET /api/challenges/search?q=…. Results come from the
// in-memory cache; while the cache is still warming the list is empty
// and cache_ready is false.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := normalize.QueryParam(r.URL.Query().Get("q"))

	items := h.Cache.Search(q)
	if items == nil {
		items = []models.ChallengeSummary{}
	}

	apierrors.RenderJSON(w, http.StatusOK, searchResponse{
		Challenges: items,
		CacheReady: h.Cache.Loaded(),
	})
}

// Refresh handles POST /api/challenges/refresh, forcing a fresh catalog
// fetch and snapshot rewrite.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	if err := h.Cache.ForceRefresh(ctx); err != nil {
		h.Log.Error("challenge cache refresh failed", zap.Error(err))
		apierrors.RenderError(w, http.StatusBadGateway, "challenge catalog refresh failed")
		return
	}

	apierrors.RenderJSON(w, http.StatusOK, map[string]any{"status": "refreshed"})
}
