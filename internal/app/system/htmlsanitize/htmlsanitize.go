// internal/app/system/htmlsanitize/htmlsanitize.go

// Package htmlsanitize strips unsafe HTML from admin-entered rich text.
// Reflection prompts allow basic formatting (emphasis, lists, links,
// tables); scripts, event handlers, and javascript: URLs are removed.
package htmlsanitize

import "github.com/microcosm-cc/bluemonday"

var policy = buildPolicy()

func buildPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class").OnElements("table", "thead", "tbody", "tr", "th", "td")
	p.AllowAttrs("colspan", "rowspan").OnElements("th", "td")
	return p
}

// Sanitize returns s with disallowed HTML removed. Plain text passes
// through unchanged.
func Sanitize(s string) string {
	return policy.Sanitize(s)
}
