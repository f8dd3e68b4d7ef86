// internal/app/system/vpn/tor.go
package vpn

import (
	"bufio"
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gojektech/heimdall/v6/httpclient"
	"go.uber.org/zap"
)

// TorBulkExitURL is the public bulk exit-node list.
const TorBulkExitURL = "https://check.torproject.org/torbulkexitlist"

// TorSet holds the known Tor exit-node addresses. It is loaded at startup
// and replaced wholesale by the background refresh worker, so reads take
// the lock.
type TorSet struct {
	url  string
	http *httpclient.Client
	log  *zap.Logger

	mu    sync.RWMutex
	exits map[string]struct{}
}

// NewTorSet builds an empty set that fetches from url (TorBulkExitURL when
// blank). The set stays empty until Load succeeds.
func NewTorSet(url string, logger *zap.Logger) *TorSet {
	if url == "" {
		url = TorBulkExitURL
	}
	return &TorSet{
		url:   url,
		http:  httpclient.NewClient(httpclient.WithHTTPTimeout(10 * time.Second)),
		log:   logger,
		exits: map[string]struct{}{},
	}
}

// Load fetches and parses the exit list. On failure the set is left as-is
// (normally empty) and the error is logged by the caller's startup path;
// Tor detection then silently degrades.
func (t *TorSet) Load(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.url, nil)
	if err != nil {
		return err
	}
	resp, err := t.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.New("vpn: tor exit list returned " + resp.Status)
	}

	exits := make(map[string]struct{})
	sc := bufio.NewScanner(resp.Body)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		exits[line] = struct{}{}
	}
	if err := sc.Err(); err != nil {
		return err
	}

	t.mu.Lock()
	t.exits = exits
	t.mu.Unlock()
	t.log.Info("vpn: tor exit list loaded", zap.Int("exits", len(exits)))
	return nil
}

// Contains reports whether ip is a known exit node.
func (t *TorSet) Contains(ip string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.exits[ip]
	return ok
}

// Size returns the number of known exits (0 when the load failed).
func (t *TorSet) Size() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.exits)
}

// Add seeds entries without a network fetch. Intended for static
// supplements and tests.
func (t *TorSet) Add(ips ...string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, ip := range ips {
		t.exits[ip] = struct{}{}
	}
}
