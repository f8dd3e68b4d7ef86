// internal/app/system/vpn/reputation.go
package vpn

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/gojektech/heimdall/v6/httpclient"
	"go.uber.org/zap"
)

// ReputationClient queries a third-party IP reputation API for a proxy/VPN
// score in [0,1]. The integration is optional: a client with no API key is
// disabled and Score returns an error the classifier ignores.
type ReputationClient struct {
	baseURL string
	apiKey  string
	http    *httpclient.Client
	log     *zap.Logger
}

// ErrReputationDisabled marks a client constructed without an API key.
var ErrReputationDisabled = errors.New("vpn: reputation api not configured")

// NewReputationClient builds the client. baseURL is the endpoint queried as
// baseURL?ip=<addr>&key=<key>; timeout <= 0 defaults to 3s.
func NewReputationClient(baseURL, apiKey string, timeout time.Duration, logger *zap.Logger) *ReputationClient {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &ReputationClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    httpclient.NewClient(httpclient.WithHTTPTimeout(timeout)),
		log:     logger,
	}
}

// Enabled reports whether the client has credentials to query with.
func (c *ReputationClient) Enabled() bool {
	return c != nil && c.apiKey != "" && c.baseURL != ""
}

// Score fetches the reputation score for ip. No retries; any failure
// (timeout, rate limit, bad payload) is returned for the caller to degrade on.
func (c *ReputationClient) Score(ctx context.Context, ip string) (float64, error) {
	if !c.Enabled() {
		return 0, ErrReputationDisabled
	}

	q := url.Values{}
	q.Set("ip", ip)
	q.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return 0, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, errors.New("vpn: reputation api returned " + resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		return 0, err
	}
	var payload struct {
		Score float64 `json:"score"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return 0, err
	}
	if payload.Score < 0 || payload.Score > 1 {
		return 0, errors.New("vpn: reputation score out of range")
	}
	return payload.Score, nil
}
