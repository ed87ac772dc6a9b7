// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	accessrequestsfeature "github.com/forgefit/adminhub/internal/app/features/accessrequests"
	challengesfeature "github.com/forgefit/adminhub/internal/app/features/challenges"
	healthfeature "github.com/forgefit/adminhub/internal/app/features/health"
	reflectionsfeature "github.com/forgefit/adminhub/internal/app/features/reflections"
	accessrequeststore "github.com/forgefit/adminhub/internal/app/store/accessrequests"
	reflectionstore "github.com/forgefit/adminhub/internal/app/store/reflections"
	"github.com/forgefit/adminhub/internal/app/system/adminguard"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. The admin API is mounted under /api
// behind the admin guard; the health endpoint stays open for load
// balancers and orchestrators.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	r := chi.NewRouter()

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, deps.ChallengeCache, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Admin API. The guard is a pass-through until a deployment wires in
	// its own access check.
	var guard adminguard.Guard = adminguard.AllowAll{}

	reflectionsHandler := reflectionsfeature.NewHandler(
		reflectionstore.New(deps.Docs, logger), logger)
	accessHandler := accessrequestsfeature.NewHandler(
		accessrequeststore.New(deps.Docs, logger), logger)
	challengesHandler := challengesfeature.NewHandler(deps.ChallengeCache, logger)

	r.Route("/api", func(api chi.Router) {
		api.Use(guard.Require)
		api.Mount("/reflections", reflectionsfeature.Routes(reflectionsHandler))
		api.Mount("/access-requests", accessrequestsfeature.Routes(accessHandler))
		api.Mount("/challenges", challengesfeature.Routes(challengesHandler))
	})

	return r, nil
}
