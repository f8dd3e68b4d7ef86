// internal/app/system/workers/torrefresh.go
package workers

import (
	"context"
	"sync"
	"time"

	"github.com/driftline/beacon/internal/app/system/timeouts"
	"github.com/driftline/beacon/internal/app/system/vpn"
	"go.uber.org/zap"
)

// TorRefresh is a background worker that periodically reloads the Tor
// exit-node list so long-running processes do not classify against a
// stale snapshot. A failed refresh keeps the previous list.
type TorRefresh struct {
	tor      *vpn.TorSet
	log      *zap.Logger
	interval time.Duration
	stopCh   chan struct{}
	wg       sync.WaitGroup
}

// NewTorRefresh creates a new Tor list refresh worker.
func NewTorRefresh(tor *vpn.TorSet, logger *zap.Logger, interval time.Duration) *TorRefresh {
	return &TorRefresh{
		tor:      tor,
		log:      logger,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the background refresh loop.
func (w *TorRefresh) Start() {
	w.wg.Add(1)
	go w.run()
	w.log.Info("tor refresh worker started", zap.Duration("interval", w.interval))
}

// Stop signals the worker to stop and waits for it to finish.
func (w *TorRefresh) Stop() {
	close(w.stopCh)
	w.wg.Wait()
	w.log.Info("tor refresh worker stopped")
}

func (w *TorRefresh) run() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), timeouts.Long())
			if err := w.tor.Load(ctx); err != nil {
				w.log.Warn("tor exit list refresh failed; keeping previous list", zap.Error(err))
			} else {
				w.log.Debug("tor exit list refreshed", zap.Int("exit_nodes", w.tor.Size()))
			}
			cancel()
		case <-w.stopCh:
			return
		}
	}
}
