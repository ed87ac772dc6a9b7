// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"

	"github.com/forgefit/adminhub/internal/app/system/timeouts"
)

// Startup runs one-time application initialization after DB connections
// and schema setup are complete, but before the HTTP handler is built.
//
// The challenge cache is warmed in the background so a slow or
// unavailable catalog cannot block startup; search simply returns no
// results until the warm completes.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	go func() {
		warmCtx, cancel := context.WithTimeout(context.Background(), timeouts.Long())
		defer cancel()

		if err := deps.ChallengeCache.Load(warmCtx); err != nil {
			logger.Warn("challenge cache warm failed; search is empty until refresh",
				zap.Error(err))
		}
	}()
	return nil
}
