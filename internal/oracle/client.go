package oracle

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/ltrinh/afmorph/internal/af"
)

// clientSleepFunc is the sleep function used between retries (injectable for tests)
var clientSleepFunc = time.Sleep

// Client wraps a Provider with rate limiting, bounded retries for
// timeout-class failures, per-request timeouts and response caching.
type Client struct {
	provider   Provider
	model      string
	timeout    time.Duration
	maxRetries int
	retryDelay time.Duration
	limiter    *Limiter
	cache      *ResponseCache
}

// NewClient creates a client from the given provider and configuration.
// A nil cache disables response caching.
func NewClient(provider Provider, cfg Config, cache *ResponseCache) *Client {
	maxRetries := cfg.MaxRetries
	if maxRetries < 1 {
		maxRetries = 1
	}

	return &Client{
		provider:   provider,
		model:      cfg.Model,
		timeout:    time.Duration(cfg.Timeout) * time.Second,
		maxRetries: maxRetries,
		retryDelay: time.Duration(cfg.RetryDelaySeconds) * time.Second,
		limiter:    NewLimiter(cfg.RequestsPerSecond, cfg.Burst),
		cache:      cache,
	}
}

// Model returns the model identifier used for reporting.
func (c *Client) Model() string {
	if c.model != "" {
		return c.model
	}
	return c.provider.Name()
}

// Extensions queries the oracle for the extension family of the given
// framework. Timeout-class failures are retried up to the configured
// budget; exhausting the budget returns a *TimeoutError. Malformed
// responses return a *SchemaError.
func (c *Client) Extensions(ctx context.Context, fw *af.Framework) (af.ExtensionFamily, error) {
	raw, err := c.ask(ctx, fw.Describe())
	if err != nil {
		return nil, err
	}
	return ParseExtensions(raw)
}

// ask returns the raw oracle response for an AF description, consulting the
// cache first.
func (c *Client) ask(ctx context.Context, description string) (string, error) {
	key := Key(c.Model(), description)
	if c.cache != nil {
		if raw, found := c.cache.Get(key); found {
			return raw, nil
		}
	}

	var lastErr error
	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		if err := c.limiter.Wait(ctx, c.provider.Name()); err != nil {
			return "", err
		}

		raw, err := c.askOnce(ctx, description)
		if err == nil {
			if c.cache != nil {
				c.cache.Set(key, raw)
			}
			return raw, nil
		}

		if !isTimeoutErr(err) {
			return "", err
		}

		lastErr = err
		if attempt < c.maxRetries && c.retryDelay > 0 {
			clientSleepFunc(c.retryDelay)
		}
	}

	return "", &TimeoutError{Attempts: c.maxRetries, Last: lastErr}
}

func (c *Client) askOnce(ctx context.Context, description string) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	return c.provider.Ask(ctx, description)
}

// isTimeoutErr reports whether an error is timeout-class and worth retrying.
func isTimeoutErr(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
