// internal/app/store/reflections/reflections.go

// Package reflections stores the daily reflection prompts, partitioned
// by date. Each date holds at most one general reflection plus one
// reflection per challenge running that day.
package reflections

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/forgefit/adminhub/internal/app/store/docstore"
	"github.com/forgefit/adminhub/internal/app/system/htmlsanitize"
	"github.com/forgefit/adminhub/internal/app/system/reflectionid"
	"github.com/forgefit/adminhub/internal/domain/models"
)

var (
	ErrEmptyText  = errors.New("reflections: text is required")
	ErrBadDateKey = errors.New("reflections: date key must be MM-DD-YYYY")
)

// Store reads and writes reflections through the document store.
type Store struct {
	docs   docstore.Store
	logger *zap.Logger
}

func New(docs docstore.Store, logger *zap.Logger) *Store {
	return &Store{docs: docs, logger: logger}
}

// Create writes the reflection for its date and context, replacing any
// reflection already in that slot. The context key is the challenge ID
// when one is set, otherwise the date's general slot. Text is sanitized
// before storage.
func (s *Store) Create(ctx context.Context, r models.Reflection) (models.Reflection, error) {
	if !reflectionid.ValidDateKey(r.DateKey) {
		return models.Reflection{}, fmt.Errorf("%w: %q", ErrBadDateKey, r.DateKey)
	}

	r.Text = htmlsanitize.Sanitize(r.Text)
	if strings.TrimSpace(r.Text) == "" {
		return models.Reflection{}, ErrEmptyText
	}

	if r.ChallengeID != "" {
		r.ContextKey = r.ChallengeID
	} else {
		r.ContextKey = reflectionid.ContextGeneral
	}
	r.ID = reflectionid.EncodeID(r.DateKey, r.ContextKey)

	now := time.Now().UTC()
	if r.CreatedAt.IsZero() {
		r.CreatedAt = now
	}
	r.UpdatedAt = now

	path := docstore.Path(reflectionid.StoragePath(r.DateKey, r.ContextKey))
	if err := s.docs.Set(ctx, path, toDoc(r)); err != nil {
		return models.Reflection{}, fmt.Errorf("store reflection: %w", err)
	}
	return r, nil
}

// Get fetches a reflection by its flat ID. Malformed IDs and absent
// reflections both return (nil, nil); only infrastructure failures
// surface as errors.
func (s *Store) Get(ctx context.Context, id string) (*models.Reflection, error) {
	dateKey, contextKey, err := reflectionid.DecodeID(id)
	if err != nil {
		return nil, nil
	}

	path := docstore.Path(reflectionid.StoragePath(dateKey, contextKey))
	doc, err := s.docs.Get(ctx, path)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get reflection: %w", err)
	}

	r := fromDoc(dateKey, contextKey, doc)
	return &r, nil
}

// Delete removes a reflection by ID. Malformed IDs and reflections that
// do not exist are both silent no-ops.
func (s *Store) Delete(ctx context.Context, id string) error {
	dateKey, contextKey, err := reflectionid.DecodeID(id)
	if err != nil {
		return nil
	}

	path := docstore.Path(reflectionid.StoragePath(dateKey, contextKey))
	if err := s.docs.Delete(ctx, path); err != nil {
		return fmt.Errorf("delete reflection: %w", err)
	}
	return nil
}

// List returns the most recent limit reflections across all dates,
// newest date first. The newest limit date partitions are fanned out
// over; a partition that fails to read is logged and skipped so one bad
// partition cannot empty the whole listing.
func (s *Store) List(ctx context.Context, limit int64) ([]models.Reflection, error) {
	if limit <= 0 {
		return []models.Reflection{}, nil
	}

	dateKeys, err := s.docs.ListContainers(ctx,
		docstore.Path{reflectionid.Collection}, limit, true)
	if err != nil {
		return nil, fmt.Errorf("list reflection partitions: %w", err)
	}

	var all []models.Reflection
	for _, dateKey := range dateKeys {
		partition, err := s.readPartition(ctx, dateKey)
		if err != nil {
			s.logger.Warn("skipping unreadable reflection partition",
				zap.String("date_key", dateKey),
				zap.Error(err))
			continue
		}
		all = append(all, partition...)
	}

	return sortAndTruncate(all, int(limit)), nil
}

// readPartition collects every reflection stored under one date: the
// general slot, if present, plus all challenge slots.
func (s *Store) readPartition(ctx context.Context, dateKey string) ([]models.Reflection, error) {
	var out []models.Reflection

	generalPath := docstore.Path(reflectionid.StoragePath(dateKey, reflectionid.ContextGeneral))
	doc, err := s.docs.Get(ctx, generalPath)
	switch {
	case err == nil:
		out = append(out, fromDoc(dateKey, reflectionid.ContextGeneral, doc))
	case errors.Is(err, docstore.ErrNotFound):
		// no general reflection for this date
	default:
		return nil, err
	}

	challenges := docstore.Path{reflectionid.Collection, dateKey, reflectionid.BucketChallenges}
	entries, err := s.docs.ListDocs(ctx, challenges, docstore.ListOptions{})
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		out = append(out, fromDoc(dateKey, e.Key, e.Doc))
	}
	return out, nil
}

// sortAndTruncate orders reflections by parsed date, newest first, and
// keeps the first limit. Within a date, the general reflection sorts
// ahead of challenge reflections. Dates are compared as parsed times,
// not strings; the MM-DD-YYYY key format does not sort correctly as
// text across years.
func sortAndTruncate(items []models.Reflection, limit int) []models.Reflection {
	sort.SliceStable(items, func(i, j int) bool {
		ti, erri := time.Parse(reflectionid.DateKeyLayout, items[i].DateKey)
		tj, errj := time.Parse(reflectionid.DateKeyLayout, items[j].DateKey)
		if erri != nil || errj != nil {
			return items[i].DateKey > items[j].DateKey
		}
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		if (items[i].ContextKey == reflectionid.ContextGeneral) !=
			(items[j].ContextKey == reflectionid.ContextGeneral) {
			return items[i].ContextKey == reflectionid.ContextGeneral
		}
		return items[i].ContextKey < items[j].ContextKey
	})

	if len(items) > limit {
		items = items[:limit]
	}
	if items == nil {
		items = []models.Reflection{}
	}
	return items
}

func toDoc(r models.Reflection) docstore.Doc {
	doc := docstore.Doc{
		"text":       r.Text,
		"created_at": r.CreatedAt,
		"updated_at": r.UpdatedAt,
	}
	if r.ExerciseID != "" {
		doc["exercise_id"] = r.ExerciseID
	}
	if r.ExerciseName != "" {
		doc["exercise_name"] = r.ExerciseName
	}
	if r.ChallengeID != "" {
		doc["challenge_id"] = r.ChallengeID
	}
	if r.ChallengeName != "" {
		doc["challenge_name"] = r.ChallengeName
	}
	return doc
}

func fromDoc(dateKey, contextKey string, doc docstore.Doc) models.Reflection {
	return models.Reflection{
		ID:            reflectionid.EncodeID(dateKey, contextKey),
		DateKey:       dateKey,
		ContextKey:    contextKey,
		Text:          doc.String("text"),
		ExerciseID:    doc.String("exercise_id"),
		ExerciseName:  doc.String("exercise_name"),
		ChallengeID:   doc.String("challenge_id"),
		ChallengeName: doc.String("challenge_name"),
		CreatedAt:     doc.Time("created_at"),
		UpdatedAt:     doc.Time("updated_at"),
	}
}
