// internal/app/system/reflectionid/reflectionid.go

// Package reflectionid maps a reflection identity (date key + context key)
// to and from its flat string ID and its storage path.
//
// The ID grammar "MM-DD-YYYY-{context}" is a stable contract: external
// callers construct these IDs directly. Context keys may themselves contain
// hyphens, so decoding takes the first three segments as the date key and
// rejoins the remainder.
package reflectionid

import (
	"errors"
	"strings"
	"time"
)

// Collection is the top-level container holding all reflections.
const Collection = "reflections"

// Sub-containers within a date partition.
const (
	BucketGeneral    = "general"
	BucketChallenges = "challenges"
)

// ContextGeneral is the context key for a date's single general reflection.
const ContextGeneral = "general"

// DateKeyLayout is the fixed-width, zero-padded date key format used for
// partition names and display dates.
const DateKeyLayout = "01-02-2006"

// ErrMalformedID reports an ID that does not decode to a date key and a
// non-empty context key.
var ErrMalformedID = errors.New("reflectionid: malformed reflection id")

// EncodeID returns the flat string ID for a reflection identity.
func EncodeID(dateKey, contextKey string) string {
	return dateKey + "-" + contextKey
}

// DecodeID splits an ID back into its date key and context key.
//
// The date key is always exactly three hyphen-separated groups, so the
// first three segments are reassembled as the date key and everything
// after them is rejoined as the context key. A fixed-arity split would
// corrupt context keys with embedded hyphens.
func DecodeID(id string) (dateKey, contextKey string, err error) {
	parts := strings.Split(id, "-")
	if len(parts) < 4 {
		return "", "", ErrMalformedID
	}
	dateKey = strings.Join(parts[:3], "-")
	contextKey = strings.Join(parts[3:], "-")
	if contextKey == "" {
		return "", "", ErrMalformedID
	}
	return dateKey, contextKey, nil
}

// StoragePath returns the document path for a reflection identity:
// reflections/{dateKey}/general/general for the general slot, or
// reflections/{dateKey}/challenges/{contextKey} for a challenge slot.
func StoragePath(dateKey, contextKey string) []string {
	if contextKey == ContextGeneral {
		return []string{Collection, dateKey, BucketGeneral, BucketGeneral}
	}
	return []string{Collection, dateKey, BucketChallenges, contextKey}
}

// ValidDateKey reports whether s is a canonical fixed-width MM-DD-YYYY
// date key.
func ValidDateKey(s string) bool {
	if len(s) != len(DateKeyLayout) {
		return false
	}
	_, err := time.Parse(DateKeyLayout, s)
	return err == nil
}
