// internal/app/features/accessrequests/routes.go
package accessrequests

import "github.com/go-chi/chi/v5"

// Routes returns a subrouter that serves the access request endpoints.
// Mounted under /api/access-requests.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Post("/", h.Submit)
	r.Get("/check", h.Check)
	r.Post("/{id}/status", h.SetStatus)
	r.Delete("/{id}", h.Delete)
	return r
}
