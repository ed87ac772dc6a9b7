// internal/app/store/accessrequests/accessrequests.go

// Package accessrequests stores third-party programming access requests
// keyed by normalized email. Resubmitting the same email updates the
// existing request in place.
package accessrequests

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/forgefit/adminhub/internal/app/store/docstore"
	"github.com/forgefit/adminhub/internal/app/system/normalize"
	"github.com/forgefit/adminhub/internal/domain/models"
)

// Collection is the container holding access request documents.
const Collection = "access_requests"

var (
	ErrEmptyEmail = errors.New("accessrequests: email is required")
	ErrBadStatus  = errors.New("accessrequests: unknown status")

	// ErrNotFound reports an operation on a request that does not exist.
	ErrNotFound = errors.New("accessrequests: request not found")
)

// Fields the store manages itself; everything else in a submitted
// request flows through to Extra.
var reservedFields = map[string]bool{
	"email":       true,
	"status":      true,
	"created_at":  true,
	"updated_at":  true,
	"approved_at": true,
	"approved_by": true,
}

// Store reads and writes access requests through the document store.
type Store struct {
	docs   docstore.Store
	logger *zap.Logger
}

func New(docs docstore.Store, logger *zap.Logger) *Store {
	return &Store{docs: docs, logger: logger}
}

// Submit upserts a request by its normalized email in one atomic write:
// profile fields and status are set, the creation timestamp is written
// only when the document is new. An omitted status defaults to
// requested.
func (s *Store) Submit(ctx context.Context, req models.AccessRequest) (*models.AccessRequest, error) {
	email := normalize.Email(req.Email)
	if email == "" {
		return nil, ErrEmptyEmail
	}

	status := normalize.Status(req.Status)
	if status == "" {
		status = models.AccessStatusRequested
	}
	if !models.IsValidAccessStatus(status) {
		return nil, fmt.Errorf("%w: %q", ErrBadStatus, req.Status)
	}

	now := time.Now().UTC()
	set := docstore.Doc{
		"email":      email,
		"status":     status,
		"updated_at": now,
	}
	for k, v := range req.Extra {
		if !reservedFields[k] {
			set[k] = v
		}
	}
	insertOnly := docstore.Doc{"created_at": now}

	path := docstore.Path{Collection, email}
	if err := s.docs.Merge(ctx, path, set, insertOnly); err != nil {
		return nil, fmt.Errorf("submit access request: %w", err)
	}

	// Read back so the caller sees the merged document, including the
	// original created_at on resubmission.
	return s.Get(ctx, email)
}

// Get fetches a request by its ID (the normalized email).
func (s *Store) Get(ctx context.Context, id string) (*models.AccessRequest, error) {
	email := normalize.Email(id)
	if email == "" {
		return nil, ErrNotFound
	}

	doc, err := s.docs.Get(ctx, docstore.Path{Collection, email})
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get access request: %w", err)
	}

	req := fromDoc(email, doc)
	return &req, nil
}

// List returns up to limit requests, newest first. A limit of 0 returns
// everything.
func (s *Store) List(ctx context.Context, limit int64) ([]models.AccessRequest, error) {
	entries, err := s.docs.ListDocs(ctx, docstore.Path{Collection}, docstore.ListOptions{
		OrderBy:    "created_at",
		Descending: true,
		Limit:      limit,
	})
	if err != nil {
		return nil, fmt.Errorf("list access requests: %w", err)
	}

	out := make([]models.AccessRequest, 0, len(entries))
	for _, e := range entries {
		out = append(out, fromDoc(e.Key, e.Doc))
	}
	return out, nil
}

// SetStatus moves a request to the given status. Any valid status can be
// set from any current status. Moving to active stamps approved_at and,
// when provided, approved_by; other statuses leave prior approval fields
// in place as history.
func (s *Store) SetStatus(ctx context.Context, id, status, actor string) (*models.AccessRequest, error) {
	status = normalize.Status(status)
	if !models.IsValidAccessStatus(status) {
		return nil, fmt.Errorf("%w: %q", ErrBadStatus, status)
	}

	// Get first so an unknown ID surfaces as ErrNotFound rather than a
	// silent insert.
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	set := docstore.Doc{
		"status":     status,
		"updated_at": now,
	}
	if status == models.AccessStatusActive {
		set["approved_at"] = now
		if actor != "" {
			set["approved_by"] = actor
		}
	}

	path := docstore.Path{Collection, current.ID}
	if err := s.docs.Merge(ctx, path, set, nil); err != nil {
		return nil, fmt.Errorf("set access request status: %w", err)
	}
	return s.Get(ctx, current.ID)
}

// Delete removes a request. Deleting an unknown ID is a no-op.
func (s *Store) Delete(ctx context.Context, id string) error {
	email := normalize.Email(id)
	if email == "" {
		return nil
	}
	if err := s.docs.Delete(ctx, docstore.Path{Collection, email}); err != nil {
		return fmt.Errorf("delete access request: %w", err)
	}
	return nil
}

// CheckAccess reports whether the email currently has active access.
// The request is returned when one exists in active status; otherwise
// (nil, nil) including for emails never seen.
func (s *Store) CheckAccess(ctx context.Context, email string) (*models.AccessRequest, error) {
	email = normalize.Email(email)
	if email == "" {
		return nil, nil
	}

	entries, err := s.docs.Find(ctx, docstore.Path{Collection}, docstore.Doc{
		"email":  email,
		"status": models.AccessStatusActive,
	})
	if err != nil {
		return nil, fmt.Errorf("check access: %w", err)
	}
	if len(entries) == 0 {
		return nil, nil
	}

	req := fromDoc(entries[0].Key, entries[0].Doc)
	return &req, nil
}

func fromDoc(key string, doc docstore.Doc) models.AccessRequest {
	req := models.AccessRequest{
		ID:         key,
		Email:      doc.String("email"),
		Status:     doc.String("status"),
		CreatedAt:  doc.Time("created_at"),
		UpdatedAt:  doc.Time("updated_at"),
		ApprovedBy: doc.String("approved_by"),
	}
	if t := doc.Time("approved_at"); !t.IsZero() {
		req.ApprovedAt = &t
	}
	for k, v := range doc {
		if !reservedFields[k] {
			if req.Extra == nil {
				req.Extra = map[string]any{}
			}
			req.Extra[k] = v
		}
	}
	return req
}
