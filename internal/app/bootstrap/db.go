// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"fmt"

	"github.com/dalemusser/waffle/config"
	"github.com/spf13/afero"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"github.com/forgefit/adminhub/internal/app/store/challenges"
	"github.com/forgefit/adminhub/internal/app/store/docstore"
	"github.com/forgefit/adminhub/internal/app/store/docstore/memdoc"
	"github.com/forgefit/adminhub/internal/app/store/docstore/mongodoc"
	"github.com/forgefit/adminhub/internal/app/system/blobstore"
	"github.com/forgefit/adminhub/internal/app/system/challengecache"
	"github.com/forgefit/adminhub/internal/app/system/indexes"
)

// ConnectDB establishes backend connections and assembles DBDeps.
//
// With memory_store set, the in-memory document store is used and no
// Mongo connection is made.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	var deps DBDeps

	var docs docstore.Store
	if appCfg.UseMemoryStore {
		docs = memdoc.New()
		logger.Info("using in-memory document store")
	} else {
		opts := options.Client().
			ApplyURI(appCfg.MongoURI).
			SetMaxPoolSize(appCfg.MongoMaxPoolSize).
			SetMinPoolSize(appCfg.MongoMinPoolSize)

		client, err := mongo.Connect(ctx, opts)
		if err != nil {
			return DBDeps{}, fmt.Errorf("mongo connect: %w", err)
		}
		if err := client.Ping(ctx, readpref.Primary()); err != nil {
			_ = client.Disconnect(ctx)
			return DBDeps{}, fmt.Errorf("mongo ping: %w", err)
		}

		deps.MongoClient = client
		deps.MongoDatabase = client.Database(appCfg.MongoDatabase)
		docs = mongodoc.New(deps.MongoDatabase, logger)
		logger.Info("connected to MongoDB",
			zap.String("database", appCfg.MongoDatabase))
	}

	deps.Docs = docs
	deps.Blobs = blobstore.New(afero.NewOsFs(), appCfg.CacheDir)
	deps.ChallengeCache = challengecache.New(
		challenges.New(docs, logger), deps.Blobs, logger)

	return deps, nil
}

// EnsureSchema creates the MongoDB indexes the document store queries
// rely on. The in-memory store needs none.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if deps.MongoDatabase == nil {
		return nil
	}
	return indexes.EnsureAll(ctx, deps.MongoDatabase, logger)
}
