// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"github.com/driftline/beacon/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built.
//
// Beacon fetches the Tor exit-node list here. A fetch failure is logged and
// tolerated: the classifier simply runs without Tor detection until the
// list can be loaded on a later boot.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if appCfg.TorExitListURL == "" {
		logger.Info("tor exit list disabled")
		return nil
	}

	loadCtx, cancel := context.WithTimeout(ctx, timeouts.Long())
	defer cancel()

	if err := deps.Tor.Load(loadCtx); err != nil {
		logger.Warn("tor exit list load failed; continuing without tor detection", zap.Error(err))
	} else {
		logger.Info("tor exit list loaded", zap.Int("exit_nodes", deps.Tor.Size()))
	}

	deps.TorRefresh.Start()
	return nil
}
