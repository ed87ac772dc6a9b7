// internal/app/store/docstore/memdoc/memdoc.go

// Package memdoc is an in-memory docstore.Store used by tests and by
// local development when no MongoDB is available. All state lives in a
// mutex-guarded map keyed by path string.
package memdoc

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/forgefit/adminhub/internal/app/store/docstore"
)

type Store struct {
	mu   sync.RWMutex
	docs map[string]docstore.Doc // full document path -> doc
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{docs: make(map[string]docstore.Doc)}
}

func (s *Store) Get(ctx context.Context, p docstore.Path) (docstore.Doc, error) {
	if !p.IsDoc() {
		return nil, docstore.ErrBadPath
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.docs[p.String()]
	if !ok {
		return nil, docstore.ErrNotFound
	}
	return d.Clone(), nil
}

func (s *Store) Set(ctx context.Context, p docstore.Path, d docstore.Doc) error {
	if !p.IsDoc() {
		return docstore.ErrBadPath
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.docs[p.String()] = d.Clone()
	return nil
}

func (s *Store) Merge(ctx context.Context, p docstore.Path, set docstore.Doc, insertOnly docstore.Doc) error {
	if !p.IsDoc() {
		return docstore.ErrBadPath
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	key := p.String()
	existing, ok := s.docs[key]
	if !ok {
		merged := insertOnly.Clone()
		for k, v := range set {
			merged[k] = v
		}
		s.docs[key] = merged
		return nil
	}

	merged := existing.Clone()
	for k, v := range set {
		merged[k] = v
	}
	s.docs[key] = merged
	return nil
}

func (s *Store) Delete(ctx context.Context, p docstore.Path) error {
	if !p.IsDoc() {
		return docstore.ErrBadPath
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.docs, p.String())
	return nil
}

func (s *Store) ListDocs(ctx context.Context, container docstore.Path, opts docstore.ListOptions) ([]docstore.Entry, error) {
	if !container.IsContainer() {
		return nil, docstore.ErrBadPath
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	prefix := container.String() + "/"
	var entries []docstore.Entry
	for key, d := range s.docs {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		rest := strings.TrimPrefix(key, prefix)
		if strings.Contains(rest, "/") {
			continue // document in a nested container
		}
		entries = append(entries, docstore.Entry{Key: rest, Doc: d.Clone()})
	}

	sortEntries(entries, opts)
	if opts.Limit > 0 && int64(len(entries)) > opts.Limit {
		entries = entries[:opts.Limit]
	}
	return entries, nil
}

func (s *Store) ListContainers(ctx context.Context, parent docstore.Path, limit int64, descending bool) ([]string, error) {
	if !parent.IsContainer() {
		return nil, docstore.ErrBadPath
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	prefix := parent.String() + "/"
	seen := make(map[string]bool)
	for key := range s.docs {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		rest := strings.TrimPrefix(key, prefix)
		segs := strings.Split(rest, "/")
		if len(segs) < 2 {
			continue // direct document of parent, not a partition
		}
		seen[segs[0]] = true
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	if descending {
		for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
			names[i], names[j] = names[j], names[i]
		}
	}
	if limit > 0 && int64(len(names)) > limit {
		names = names[:limit]
	}
	return names, nil
}

func (s *Store) Find(ctx context.Context, container docstore.Path, filter docstore.Doc) ([]docstore.Entry, error) {
	entries, err := s.ListDocs(ctx, container, docstore.ListOptions{})
	if err != nil {
		return nil, err
	}

	var matched []docstore.Entry
	for _, e := range entries {
		if docMatches(e.Doc, filter) {
			matched = append(matched, e)
		}
	}
	return matched, nil
}

func docMatches(d docstore.Doc, filter docstore.Doc) bool {
	for k, want := range filter {
		if d[k] != want {
			return false
		}
	}
	return true
}

func sortEntries(entries []docstore.Entry, opts docstore.ListOptions) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if opts.Descending {
			a, b = b, a
		}
		if opts.OrderBy == "" {
			return a.Key < b.Key
		}
		return lessValue(a.Doc[opts.OrderBy], b.Doc[opts.OrderBy])
	})
}

// lessValue compares the field types the service stores: timestamps,
// strings, and numbers. Mismatched or unknown types compare as equal.
func lessValue(a, b any) bool {
	switch av := a.(type) {
	case time.Time:
		if bv, ok := b.(time.Time); ok {
			return av.Before(bv)
		}
	case string:
		if bv, ok := b.(string); ok {
			return av < bv
		}
	case int:
		if bv, ok := b.(int); ok {
			return av < bv
		}
	case int64:
		if bv, ok := b.(int64); ok {
			return av < bv
		}
	case float64:
		if bv, ok := b.(float64); ok {
			return av < bv
		}
	}
	return false
}
