// internal/testutil/fixtures.go
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/forgefit/adminhub/internal/app/store/accessrequests"
	"github.com/forgefit/adminhub/internal/app/store/challenges"
	"github.com/forgefit/adminhub/internal/app/store/docstore"
	"github.com/forgefit/adminhub/internal/app/system/reflectionid"
	"github.com/forgefit/adminhub/internal/domain/models"
)

// Fixtures provides helper methods for seeding test data directly into
// a document store, bypassing the domain stores' validation.
type Fixtures struct {
	docs docstore.Store
	t    *testing.T
}

// NewFixtures creates a Fixtures instance over the given document store.
func NewFixtures(t *testing.T, docs docstore.Store) *Fixtures {
	t.Helper()
	return &Fixtures{docs: docs, t: t}
}

// Docs returns the underlying document store for direct access in tests.
func (f *Fixtures) Docs() docstore.Store {
	return f.docs
}

// CreateChallenge seeds a challenge with a generated ID.
func (f *Fixtures) CreateChallenge(ctx context.Context, title, status string) models.ChallengeSummary {
	f.t.Helper()

	ch := models.ChallengeSummary{
		ID:     "ch-" + uuid.NewString(),
		Title:  title,
		Status: status,
	}
	err := f.docs.Set(ctx, docstore.Path{challenges.Collection, ch.ID}, docstore.Doc{
		"title":  ch.Title,
		"status": ch.Status,
	})
	if err != nil {
		f.t.Fatalf("failed to seed challenge: %v", err)
	}
	return ch
}

// CreateReflection seeds a reflection in the slot for dateKey and
// contextKey. Pass reflectionid.ContextGeneral for the general slot.
func (f *Fixtures) CreateReflection(ctx context.Context, dateKey, contextKey, text string) models.Reflection {
	f.t.Helper()

	now := time.Now().UTC()
	r := models.Reflection{
		ID:         reflectionid.EncodeID(dateKey, contextKey),
		DateKey:    dateKey,
		ContextKey: contextKey,
		Text:       text,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	doc := docstore.Doc{
		"text":       r.Text,
		"created_at": r.CreatedAt,
		"updated_at": r.UpdatedAt,
	}
	if contextKey != reflectionid.ContextGeneral {
		r.ChallengeID = contextKey
		doc["challenge_id"] = contextKey
	}
	path := docstore.Path(reflectionid.StoragePath(dateKey, contextKey))
	if err := f.docs.Set(ctx, path, doc); err != nil {
		f.t.Fatalf("failed to seed reflection: %v", err)
	}
	return r
}

// CreateAccessRequest seeds an access request keyed by email.
func (f *Fixtures) CreateAccessRequest(ctx context.Context, email, status string) models.AccessRequest {
	f.t.Helper()

	now := time.Now().UTC()
	req := models.AccessRequest{
		ID:        email,
		Email:     email,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err := f.docs.Set(ctx, docstore.Path{accessrequests.Collection, email}, docstore.Doc{
		"email":      email,
		"status":     status,
		"created_at": now,
		"updated_at": now,
	})
	if err != nil {
		f.t.Fatalf("failed to seed access request: %v", err)
	}
	return req
}
