// internal/app/system/adminguard/adminguard.go

// Package adminguard defines the middleware seam protecting the admin
// API. The service itself does not authenticate callers; deployments sit
// it behind a trusted proxy or wire in their own Guard.
package adminguard

import "net/http"

// Guard wraps admin handlers with an access check.
type Guard interface {
	Require(next http.Handler) http.Handler
}

// AllowAll passes every request through. It is the default when no
// guard is configured.
type AllowAll struct{}

func (AllowAll) Require(next http.Handler) http.Handler {
	return next
}
