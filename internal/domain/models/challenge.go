// internal/domain/models/challenge.go
package models

// ChallengeSummary is a read-only mirror of a challenge catalog entry,
// used for search and selection when linking reflections to a challenge.
// It is never written back to the catalog.
type ChallengeSummary struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Status string `json:"status"`
}
