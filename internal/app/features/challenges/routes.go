// internal/app/features/challenges/routes.go
package challenges

import "github.com/go-chi/chi/v5"

// Routes returns a subrouter that serves the challenge endpoints.
// Mounted under /api/challenges.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/search", h.Search)
	r.Post("/refresh", h.Refresh)
	return r
}
