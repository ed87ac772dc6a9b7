// internal/domain/models/reflection.go
package models

import "time"

// Reflection is a dated prompt shown to the community. Each calendar date
// holds at most one general reflection plus at most one reflection per
// linked challenge; the slot a record occupies is derived from DateKey and
// ContextKey, so writing to an occupied slot replaces the prior record.
type Reflection struct {
	// ID is synthesized from DateKey and ContextKey ("MM-DD-YYYY-{context}").
	// It is not stored; stores attach it when hydrating records.
	ID string `json:"id"`

	DateKey    string `json:"date_key"`    // fixed-width MM-DD-YYYY
	ContextKey string `json:"context_key"` // "general" or a challenge ID
	Text       string `json:"text"`

	// Optional cross-references to the exercise and challenge catalogs.
	// Referenced IDs are never validated against those catalogs.
	ExerciseID    string `json:"exercise_id,omitempty"`
	ExerciseName  string `json:"exercise_name,omitempty"`
	ChallengeID   string `json:"challenge_id,omitempty"`
	ChallengeName string `json:"challenge_name,omitempty"`

	CreatedAt time.Time `json:"created_at"` // immutable after first write
	UpdatedAt time.Time `json:"updated_at"` // refreshed on every write
}
