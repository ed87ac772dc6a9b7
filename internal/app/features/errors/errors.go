// internal/app/features/errors/errors.go
package errors

import (
	"encoding/json"
	"net/http"
)

// errorResponse is the uniform JSON error envelope for the admin API.
type errorResponse struct {
	Error string `json:"error"`
}

// RenderJSON writes v as the JSON response body with the given status.
func RenderJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// RenderError writes the uniform error envelope with the given status.
func RenderError(w http.ResponseWriter, status int, message string) {
	RenderJSON(w, status, errorResponse{Error: message})
}

// RenderBadRequest is shorthand for a 400 with the given message.
func RenderBadRequest(w http.ResponseWriter, message string) {
	RenderError(w, http.StatusBadRequest, message)
}

// RenderNotFound is shorthand for a 404 with the given message.
func RenderNotFound(w http.ResponseWriter, message string) {
	RenderError(w, http.StatusNotFound, message)
}

// RenderInternal writes a generic 500. Details belong in the log, not
// the response.
func RenderInternal(w http.ResponseWriter) {
	RenderError(w, http.StatusInternalServerError, "internal error")
}
