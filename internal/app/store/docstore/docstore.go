// internal/app/store/docstore/docstore.go

// Package docstore defines the document store contract the admin service
// is built against: a hierarchical, path-addressed store where documents
// live in named containers and containers nest under documents' parents.
//
// Paths alternate container and key segments; a path of even length
// addresses a document, a path of odd length addresses a container:
//
//	access_requests/jane@example.com            (document)
//	reflections/01-15-2025/challenges           (container)
//	reflections/01-15-2025/challenges/rd-42     (document)
//
// Two implementations exist: mongodoc (MongoDB) and memdoc (in-memory,
// used by tests and local development).
package docstore

import (
	"context"
	"errors"
	"strings"
	"time"
)

// ErrNotFound reports a Get on a path with no document.
var ErrNotFound = errors.New("docstore: document not found")

// ErrBadPath reports a path whose shape does not match the operation
// (e.g. a container path passed to Get).
var ErrBadPath = errors.New("docstore: invalid path for operation")

// Doc is a flat document: field name to store-serializable value.
// Fields are always omitted rather than stored as nulls.
type Doc map[string]any

// String returns the named field as a string, or "" when absent or not
// a string.
func (d Doc) String(key string) string {
	s, _ := d[key].(string)
	return s
}

// Time returns the named field as a time.Time, or the zero time when
// absent. Implementations normalize their native timestamp types to
// time.Time on read.
func (d Doc) Time(key string) time.Time {
	t, _ := d[key].(time.Time)
	return t
}

// Clone returns a shallow copy of the document.
func (d Doc) Clone() Doc {
	out := make(Doc, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// Path addresses a document or container, root-first.
type Path []string

// String joins the path segments with "/".
func (p Path) String() string { return strings.Join(p, "/") }

// IsDoc reports whether the path addresses a document.
func (p Path) IsDoc() bool { return len(p) > 0 && len(p)%2 == 0 }

// IsContainer reports whether the path addresses a container.
func (p Path) IsContainer() bool { return len(p)%2 == 1 }

// Key returns the final segment of the path.
func (p Path) Key() string {
	if len(p) == 0 {
		return ""
	}
	return p[len(p)-1]
}

// Parent returns the path with the final segment removed.
func (p Path) Parent() Path {
	if len(p) == 0 {
		return nil
	}
	return p[:len(p)-1]
}

// Child returns the path extended by one segment.
func (p Path) Child(segment string) Path {
	child := make(Path, 0, len(p)+1)
	child = append(child, p...)
	return append(child, segment)
}

// Entry is a document returned from a container listing, paired with its
// key within that container.
type Entry struct {
	Key string
	Doc Doc
}

// ListOptions orders and bounds a ListDocs call. A zero value lists every
// document in key order.
type ListOptions struct {
	OrderBy    string // document field to order by; "" orders by key
	Descending bool
	Limit      int64 // 0 means no limit
}

// Store is the document store collaborator. All operations are I/O bound
// and honor context cancellation; none of them retries.
type Store interface {
	// Get fetches the document at a document path. Returns ErrNotFound
	// when no document exists there.
	Get(ctx context.Context, p Path) (Doc, error)

	// Set writes the document at a document path, replacing any existing
	// occupant entirely.
	Set(ctx context.Context, p Path, d Doc) error

	// Merge upserts the document at a document path: fields in set are
	// written over whatever is stored, fields in insertOnly are written
	// only when the document is being created. The whole operation is a
	// single atomic write.
	Merge(ctx context.Context, p Path, set Doc, insertOnly Doc) error

	// Delete removes the document at a document path. Deleting an absent
	// document is not an error.
	Delete(ctx context.Context, p Path) error

	// ListDocs returns the documents directly inside a container path.
	ListDocs(ctx context.Context, container Path, opts ListOptions) ([]Entry, error)

	// ListContainers returns the keys one level below a container that
	// hold deeper documents (e.g. the date partitions under
	// "reflections"), ordered by key. A limit of 0 means no limit.
	ListContainers(ctx context.Context, parent Path, limit int64, descending bool) ([]string, error)

	// Find returns the documents in a container whose fields equal every
	// entry of filter.
	Find(ctx context.Context, container Path, filter Doc) ([]Entry, error)
}
