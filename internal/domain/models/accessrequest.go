// internal/domain/models/accessrequest.go
package models

import "time"

// Canonical access request statuses.
//
// These values are stored in the database in the AccessRequest.Status field.
// Any status can be set from any status; the lifecycle is a convention, not
// an enforced state machine.
const (
	AccessStatusRequested   = "requested"
	AccessStatusActive      = "active"
	AccessStatusDeactivated = "deactivated"
)

// AccessStatuses is the full set of allowed status values.
var AccessStatuses = []string{
	AccessStatusRequested,
	AccessStatusActive,
	AccessStatusDeactivated,
}

// IsValidAccessStatus checks if a value is a known access request status.
func IsValidAccessStatus(value string) bool {
	for _, s := range AccessStatuses {
		if s == value {
			return true
		}
	}
	return false
}

// AccessRequest is a third-party request for programming access.
//
// Email is the natural key: it is lower-cased on every write and the store
// derives the document key from it, so there is at most one request per
// normalized email and resubmission updates rather than duplicates.
type AccessRequest struct {
	ID     string `json:"id"`
	Email  string `json:"email"`
	Status string `json:"status"` // requested | active | deactivated

	CreatedAt  time.Time  `json:"created_at"` // immutable once set
	UpdatedAt  time.Time  `json:"updated_at"`
	ApprovedAt *time.Time `json:"approved_at,omitempty"` // stamped on transition to active
	ApprovedBy string     `json:"approved_by,omitempty"` // optional actor reference

	// Extra carries profile fields the admin form sends (role flags,
	// use-case flags, free text). They are stored and returned verbatim,
	// never interpreted.
	Extra map[string]any `json:"extra,omitempty"`
}
