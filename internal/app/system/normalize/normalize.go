// internal/app/system/normalize/normalize.go

// Package normalize holds the canonical input normalizations applied
// before values hit the store. Emails in particular must normalize the
// same way on every write and every lookup, since the access request key
// is derived from the email.
package normalize

import "strings"

// Email trims whitespace and lower-cases an email address.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Status trims and lower-cases a status value.
func Status(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// QueryParam trims a free-form query parameter, preserving case.
func QueryParam(s string) string {
	return strings.TrimSpace(s)
}
