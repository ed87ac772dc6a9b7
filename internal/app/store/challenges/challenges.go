// internal/app/store/challenges/challenges.go

// Package challenges reads the challenge catalog. The catalog is owned
// by the main product; this service only lists it to feed the admin
// search cache.
package challenges

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/forgefit/adminhub/internal/app/store/docstore"
	"github.com/forgefit/adminhub/internal/domain/models"
)

// Collection is the container holding challenge documents.
const Collection = "challenges"

// Store reads challenge summaries through the document store.
type Store struct {
	docs   docstore.Store
	logger *zap.Logger
}

func New(docs docstore.Store, logger *zap.Logger) *Store {
	return &Store{docs: docs, logger: logger}
}

// ListAll returns every challenge in the catalog, ordered by ID. The
// catalog is small, so no paging.
func (s *Store) ListAll(ctx context.Context) ([]models.ChallengeSummary, error) {
	entries, err := s.docs.ListDocs(ctx, docstore.Path{Collection}, docstore.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("list challenges: %w", err)
	}

	out := make([]models.ChallengeSummary, 0, len(entries))
	for _, e := range entries {
		out = append(out, models.ChallengeSummary{
			ID:     e.Key,
			Title:  e.Doc.String("title"),
			Status: e.Doc.String("status"),
		})
	}
	return out, nil
}
