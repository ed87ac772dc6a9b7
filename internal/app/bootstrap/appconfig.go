// internal/app/bootstrap/appconfig.go
package bootstrap

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration; WAFFLE's CoreConfig
// handles framework-level settings like ports, TLS, logging, and CORS.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connection pool size
	MongoMinPoolSize uint64 // Min connection pool size

	// UseMemoryStore swaps the Mongo-backed document store for the
	// in-memory one. Data does not survive a restart; local development
	// only.
	UseMemoryStore bool

	// CacheDir is where the challenge catalog snapshot is written.
	CacheDir string
}
