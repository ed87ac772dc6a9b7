// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/forgefit/adminhub/internal/app/store/docstore"
	"github.com/forgefit/adminhub/internal/app/system/blobstore"
	"github.com/forgefit/adminhub/internal/app/system/challengecache"
)

// DBDeps holds database/back-end dependencies for the app.
// Extend this struct as your app evolves.
type DBDeps struct {
	// MongoClient and MongoDatabase are nil when memory_store is set.
	MongoClient   *mongo.Client
	MongoDatabase *mongo.Database

	// Docs is the document store every domain store is built on.
	Docs docstore.Store

	Blobs          *blobstore.Store
	ChallengeCache *challengecache.Cache
}
