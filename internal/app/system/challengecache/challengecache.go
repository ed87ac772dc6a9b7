// internal/app/system/challengecache/challengecache.go

// Package challengecache keeps an in-memory copy of the challenge
// catalog for admin search. The catalog is small and changes rarely, so
// the whole thing is held in memory and snapshotted to a blob that
// survives restarts. While the initial load is in flight, Search
// returns no results rather than blocking.
package challengecache

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"

	"github.com/dalemusser/waffle/pantry/text"
	"go.uber.org/zap"

	"github.com/forgefit/adminhub/internal/app/system/blobstore"
	"github.com/forgefit/adminhub/internal/domain/models"
)

const (
	blobName = "challenges.json"

	// MaxResults caps Search output; the admin picker only shows a
	// short list.
	MaxResults = 10
)

// Lister is the upstream source of the challenge catalog.
type Lister interface {
	ListAll(ctx context.Context) ([]models.ChallengeSummary, error)
}

// Cache holds the challenge catalog in memory.
type Cache struct {
	source Lister
	blobs  *blobstore.Store
	logger *zap.Logger

	mu     sync.RWMutex
	items  []models.ChallengeSummary
	loaded bool
}

// New creates an empty cache. Call Load (typically in the background at
// startup) before expecting search results.
func New(source Lister, blobs *blobstore.Store, logger *zap.Logger) *Cache {
	return &Cache{source: source, blobs: blobs, logger: logger}
}

// Load populates the cache, preferring the persisted snapshot and
// falling back to a fresh fetch when the snapshot is missing or
// unreadable.
func (c *Cache) Load(ctx context.Context) error {
	data, err := c.blobs.Load(blobName)
	if err == nil {
		var items []models.ChallengeSummary
		uerr := json.Unmarshal(data, &items)
		if uerr == nil {
			c.mu.Lock()
			c.items = items
			c.loaded = true
			c.mu.Unlock()
			c.logger.Info("challenge cache loaded from snapshot",
				zap.Int("count", len(items)))
			return nil
		}
		c.logger.Warn("challenge cache snapshot unreadable, refreshing",
			zap.Error(uerr))
	} else if !errors.Is(err, blobstore.ErrNotFound) {
		c.logger.Warn("challenge cache snapshot load failed, refreshing",
			zap.Error(err))
	}

	return c.ForceRefresh(ctx)
}

// ForceRefresh fetches the catalog from the source, replaces the cached
// copy, and rewrites the snapshot. On fetch failure the existing cache
// contents are left untouched.
func (c *Cache) ForceRefresh(ctx context.Context) error {
	items, err := c.source.ListAll(ctx)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.items = items
	c.loaded = true
	c.mu.Unlock()

	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	if err := c.blobs.Save(blobName, data); err != nil {
		// The in-memory copy is already current; a failed snapshot only
		// costs a refetch on the next restart.
		c.logger.Warn("challenge cache snapshot save failed", zap.Error(err))
	}

	c.logger.Info("challenge cache refreshed", zap.Int("count", len(items)))
	return nil
}

// Loaded reports whether the cache has completed an initial load.
func (c *Cache) Loaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded
}

// Search returns up to MaxResults challenges whose ID, title, or status
// contains the query, case-insensitively. An empty query matches
// nothing. Before the initial load completes, Search returns no
// results.
func (c *Cache) Search(query string) []models.ChallengeSummary {
	q := text.Fold(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.loaded {
		return nil
	}

	var out []models.ChallengeSummary
	for _, item := range c.items {
		if strings.Contains(text.Fold(item.ID), q) ||
			strings.Contains(text.Fold(item.Title), q) ||
			strings.Contains(text.Fold(item.Status), q) {
			out = append(out, item)
			if len(out) == MaxResults {
				break
			}
		}
	}
	return out
}
