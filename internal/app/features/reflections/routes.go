// internal/app/features/reflections/routes.go
package reflections

import "github.com/go-chi/chi/v5"

// Routes returns a subrouter that serves the reflection endpoints.
// Mounted under /api/reflections.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Replace)
	r.Delete("/{id}", h.Delete)
	return r
}
