// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

/*
EnsureAll is called at startup. Each ensure* function is idempotent:
CreateMany with fixed names succeeds when the index already exists.
Errors are aggregated so every problem is visible and startup can fail
fast.
*/
func EnsureAll(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	var problems []string

	if err := ensureReflections(ctx, db); err != nil {
		problems = append(problems, "reflections: "+err.Error())
	}
	if err := ensureAccessRequests(ctx, db); err != nil {
		problems = append(problems, "access_requests: "+err.Error())
	}
	if err := ensureChallenges(ctx, db); err != nil {
		problems = append(problems, "challenges: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}

	logger.Info("indexes ensured",
		zap.Strings("collections", []string{"reflections", "access_requests", "challenges"}))
	return nil
}

func ensureReflections(ctx context.Context, db *mongo.Database) error {
	// parent supports container listings; seg supports partition grouping.
	return ensureIndexSet(ctx, db.Collection("reflections"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "parent", Value: 1}},
			Options: options.Index().SetName("idx_reflections_parent"),
		},
		{
			Keys:    bson.D{{Key: "seg", Value: 1}},
			Options: options.Index().SetName("idx_reflections_seg"),
		},
	})
}

func ensureAccessRequests(ctx context.Context, db *mongo.Database) error {
	// The document key is the normalized email, so email uniqueness rides
	// on _id. These cover the list ordering and the access gate query.
	return ensureIndexSet(ctx, db.Collection("access_requests"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "parent", Value: 1}, {Key: "data.created_at", Value: -1}},
			Options: options.Index().SetName("idx_access_requests_created"),
		},
		{
			Keys:    bson.D{{Key: "data.email", Value: 1}, {Key: "data.status", Value: 1}},
			Options: options.Index().SetName("idx_access_requests_email_status"),
		},
	})
}

func ensureChallenges(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("challenges"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "parent", Value: 1}},
			Options: options.Index().SetName("idx_challenges_parent"),
		},
	})
}

func ensureIndexSet(ctx context.Context, coll *mongo.Collection, models []mongo.IndexModel) error {
	_, err := coll.Indexes().CreateMany(ctx, models)
	return err
}
