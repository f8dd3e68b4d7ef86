// internal/app/system/echoip/echoip.go
// Package echoip asks external "what is my IP" services for this host's
// public address. It is the last resort of the client-IP resolver chain.
package echoip

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/driftline/beacon/internal/app/system/ipaddr"
	"github.com/gojektech/heimdall/v6/httpclient"
	"go.uber.org/zap"
)

// DefaultServices are tried in order. Each returns a bare IP in its body.
var DefaultServices = []string{
	"https://api.ipify.org",
	"https://icanhazip.com",
	"https://ifconfig.me/ip",
	"https://api.ip.sb/ip",
}

// DefaultTimeout bounds each individual service call. There are no retries;
// a failed service simply yields to the next one in the list.
const DefaultTimeout = 3 * time.Second

// ErrNoService is returned when every configured service failed or returned
// something that does not validate as a public address.
var ErrNoService = errors.New("echoip: no service returned a public address")

// Client queries the echo services sequentially.
type Client struct {
	services []string
	http     *httpclient.Client
	log      *zap.Logger
}

// New builds a Client over the given service URLs; an empty list uses
// DefaultServices. timeout <= 0 uses DefaultTimeout.
func New(services []string, timeout time.Duration, logger *zap.Logger) *Client {
	if len(services) == 0 {
		services = DefaultServices
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		services: services,
		http:     httpclient.NewClient(httpclient.WithHTTPTimeout(timeout)),
		log:      logger,
	}
}

// PublicIP returns the first validated public address any service reports.
func (c *Client) PublicIP(ctx context.Context) (string, error) {
	for _, svc := range c.services {
		ip, err := c.query(ctx, svc)
		if err != nil {
			c.log.Debug("echo service failed", zap.String("service", svc), zap.Error(err))
			continue
		}
		if ipaddr.IsPublic(ip) {
			return ipaddr.Strip(ip), nil
		}
		c.log.Debug("echo service returned non-public value",
			zap.String("service", svc), zap.String("value", ip))
	}
	return "", ErrNoService
}

func (c *Client) query(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", errors.New("echoip: unexpected status " + resp.Status)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 256))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(body)), nil
}
