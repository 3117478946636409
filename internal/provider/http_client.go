package provider

import (
	"context"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// HTTPClientConfig holds configuration for the provider HTTP client
type HTTPClientConfig struct {
	Timeout            time.Duration
	RateLimitPerMinute int
}

// RateLimitedHTTPClient wraps retryablehttp.Client with request-rate limiting
// tuned to the provider's per-minute quota. RetryMax is pinned to zero: the
// refresh contract is one attempt per league per cycle, and a failed cycle is
// absorbed by the stale-but-available cache.
type RateLimitedHTTPClient struct {
	client  *retryablehttp.Client
	limiter *rate.Limiter
	logger  *logrus.Logger
}

// NewRateLimitedHTTPClient creates a new rate-limited HTTP client
func NewRateLimitedHTTPClient(cfg HTTPClientConfig, logger *logrus.Logger) *RateLimitedHTTPClient {
	client := retryablehttp.NewClient()
	client.HTTPClient.Timeout = cfg.Timeout
	client.RetryMax = 0
	client.Logger = nil

	perMinute := cfg.RateLimitPerMinute
	if perMinute <= 0 {
		perMinute = 10
	}

	return &RateLimitedHTTPClient{
		client:  client,
		limiter: rate.NewLimiter(rate.Limit(float64(perMinute)/60.0), 1),
		logger:  logger,
	}
}

// Do executes an HTTP request after waiting for the rate limiter
func (c *RateLimitedHTTPClient) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	retryReq, err := retryablehttp.FromRequest(req.WithContext(ctx))
	if err != nil {
		return nil, err
	}

	return c.client.Do(retryReq)
}

// Get executes a GET request
func (c *RateLimitedHTTPClient) Get(ctx context.Context, url string, header http.Header) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	return c.Do(ctx, req)
}

// Close closes any resources held by the client
func (c *RateLimitedHTTPClient) Close() error {
	c.client.HTTPClient.CloseIdleConnections()
	return nil
}
