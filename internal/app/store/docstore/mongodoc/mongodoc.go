// internal/app/store/docstore/mongodoc/mongodoc.go

// Package mongodoc implements docstore.Store on MongoDB.
//
// Each top-level container maps to a Mongo collection. A document's full
// path string is its _id, the enclosing container path is stored in
// "parent", the raw path segments in "seg", and the document fields under
// "data". Partition listing groups on the segment one level below the
// parent, which is how the reflections date partitions are enumerated
// without any ad-hoc multi-partition query.
package mongodoc

import (
	"context"
	"fmt"
	"strconv"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/forgefit/adminhub/internal/app/store/docstore"
)

type Store struct {
	db  *mongo.Database
	log *zap.Logger
}

// New wraps a Mongo database as a docstore.Store.
func New(db *mongo.Database, logger *zap.Logger) *Store {
	return &Store{db: db, log: logger}
}

// record is the wire shape of every stored document.
type record struct {
	ID     string   `bson:"_id"`
	Parent string   `bson:"parent"`
	Seg    []string `bson:"seg"`
	Data   bson.M   `bson:"data"`
}

func (s *Store) collection(p docstore.Path) *mongo.Collection {
	return s.db.Collection(p[0])
}

func (s *Store) Get(ctx context.Context, p docstore.Path) (docstore.Doc, error) {
	if !p.IsDoc() {
		return nil, docstore.ErrBadPath
	}

	var rec record
	err := s.collection(p).FindOne(ctx, bson.M{"_id": p.String()}).Decode(&rec)
	if err == mongo.ErrNoDocuments {
		return nil, docstore.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("mongodoc: get %s: %w", p, err)
	}
	return normalizeDoc(rec.Data), nil
}

func (s *Store) Set(ctx context.Context, p docstore.Path, d docstore.Doc) error {
	if !p.IsDoc() {
		return docstore.ErrBadPath
	}

	rec := record{
		ID:     p.String(),
		Parent: p.Parent().String(),
		Seg:    []string(p),
		Data:   bson.M(d),
	}
	opts := options.Replace().SetUpsert(true)
	if _, err := s.collection(p).ReplaceOne(ctx, bson.M{"_id": rec.ID}, rec, opts); err != nil {
		return fmt.Errorf("mongodoc: set %s: %w", p, err)
	}
	return nil
}

func (s *Store) Merge(ctx context.Context, p docstore.Path, set docstore.Doc, insertOnly docstore.Doc) error {
	if !p.IsDoc() {
		return docstore.ErrBadPath
	}

	sets := bson.M{
		"parent": p.Parent().String(),
		"seg":    []string(p),
	}
	for k, v := range set {
		sets["data."+k] = v
	}
	setsOnInsert := bson.M{}
	for k, v := range insertOnly {
		setsOnInsert["data."+k] = v
	}

	update := bson.M{"$set": sets}
	if len(setsOnInsert) > 0 {
		update["$setOnInsert"] = setsOnInsert
	}

	opts := options.Update().SetUpsert(true)
	if _, err := s.collection(p).UpdateOne(ctx, bson.M{"_id": p.String()}, update, opts); err != nil {
		return fmt.Errorf("mongodoc: merge %s: %w", p, err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, p docstore.Path) error {
	if !p.IsDoc() {
		return docstore.ErrBadPath
	}
	if _, err := s.collection(p).DeleteOne(ctx, bson.M{"_id": p.String()}); err != nil {
		return fmt.Errorf("mongodoc: delete %s: %w", p, err)
	}
	return nil
}

func (s *Store) ListDocs(ctx context.Context, container docstore.Path, opts docstore.ListOptions) ([]docstore.Entry, error) {
	if !container.IsContainer() {
		return nil, docstore.ErrBadPath
	}

	findOpts := options.Find()
	if opts.OrderBy != "" {
		dir := 1
		if opts.Descending {
			dir = -1
		}
		findOpts.SetSort(bson.D{{Key: "data." + opts.OrderBy, Value: dir}})
	} else {
		dir := 1
		if opts.Descending {
			dir = -1
		}
		findOpts.SetSort(bson.D{{Key: "_id", Value: dir}})
	}
	if opts.Limit > 0 {
		findOpts.SetLimit(opts.Limit)
	}

	cur, err := s.collection(container).Find(ctx, bson.M{"parent": container.String()}, findOpts)
	if err != nil {
		return nil, fmt.Errorf("mongodoc: list %s: %w", container, err)
	}
	defer cur.Close(ctx)

	var entries []docstore.Entry
	for cur.Next(ctx) {
		var rec record
		if err := cur.Decode(&rec); err != nil {
			return nil, fmt.Errorf("mongodoc: decode in %s: %w", container, err)
		}
		entries = append(entries, docstore.Entry{
			Key: rec.Seg[len(rec.Seg)-1],
			Doc: normalizeDoc(rec.Data),
		})
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("mongodoc: list %s: %w", container, err)
	}
	return entries, nil
}

func (s *Store) ListContainers(ctx context.Context, parent docstore.Path, limit int64, descending bool) ([]string, error) {
	if !parent.IsContainer() {
		return nil, docstore.ErrBadPath
	}

	match := bson.M{}
	for i, seg := range parent {
		match["seg."+strconv.Itoa(i)] = seg
	}
	// Only documents strictly below parent/{key}/... have a partition key.
	match["seg."+strconv.Itoa(len(parent)+1)] = bson.M{"$exists": true}

	dir := 1
	if descending {
		dir = -1
	}
	pipeline := []bson.M{
		{"$match": match},
		{"$group": bson.M{"_id": bson.M{"$arrayElemAt": bson.A{"$seg", len(parent)}}}},
		{"$sort": bson.M{"_id": dir}},
	}
	if limit > 0 {
		pipeline = append(pipeline, bson.M{"$limit": limit})
	}

	cur, err := s.collection(parent).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("mongodoc: list partitions of %s: %w", parent, err)
	}
	defer cur.Close(ctx)

	var names []string
	for cur.Next(ctx) {
		var row struct {
			ID string `bson:"_id"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, fmt.Errorf("mongodoc: decode partition of %s: %w", parent, err)
		}
		names = append(names, row.ID)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("mongodoc: list partitions of %s: %w", parent, err)
	}
	return names, nil
}

func (s *Store) Find(ctx context.Context, container docstore.Path, filter docstore.Doc) ([]docstore.Entry, error) {
	if !container.IsContainer() {
		return nil, docstore.ErrBadPath
	}

	query := bson.M{"parent": container.String()}
	for k, v := range filter {
		query["data."+k] = v
	}

	cur, err := s.collection(container).Find(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("mongodoc: find in %s: %w", container, err)
	}
	defer cur.Close(ctx)

	var entries []docstore.Entry
	for cur.Next(ctx) {
		var rec record
		if err := cur.Decode(&rec); err != nil {
			return nil, fmt.Errorf("mongodoc: decode in %s: %w", container, err)
		}
		entries = append(entries, docstore.Entry{
			Key: rec.Seg[len(rec.Seg)-1],
			Doc: normalizeDoc(rec.Data),
		})
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("mongodoc: find in %s: %w", container, err)
	}
	return entries, nil
}

// normalizeDoc converts BSON decode types back to the plain Go values the
// stores put in: primitive.DateTime to time.Time, primitive.A to []any,
// nested bson.M to map[string]any.
func normalizeDoc(m bson.M) docstore.Doc {
	out := make(docstore.Doc, len(m))
	for k, v := range m {
		out[k] = normalizeValue(v)
	}
	return out
}

func normalizeValue(v any) any {
	switch tv := v.(type) {
	case primitive.DateTime:
		return tv.Time().UTC()
	case primitive.A:
		vals := make([]any, len(tv))
		for i, item := range tv {
			vals[i] = normalizeValue(item)
		}
		return vals
	case bson.M:
		return map[string]any(normalizeDoc(tv))
	case int32:
		return int(tv)
	default:
		return v
	}
}
