package neows

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/couchcryptid/impactviz-service/internal/observability"
	"golang.org/x/time/rate"
)

const (
	initialBackoff = 200 * time.Millisecond
	maxBackoff     = 5 * time.Second
)

// Client implements domain.NEOCatalog using the NASA NeoWs API.
type Client struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
	limiter    *rate.Limiter
	maxRetries int
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithMaxRetries retries network errors, 429 and 5xx responses up to n
// times with exponential backoff. The default is no retry.
func WithMaxRetries(n int) Option {
	return func(c *Client) { c.maxRetries = n }
}

// WithRateLimit caps outbound requests per second. Zero disables the limit.
func WithRateLimit(perSecond float64) Option {
	return func(c *Client) {
		if perSecond > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
		}
	}
}

// NewClient creates a NeoWs client.
func NewClient(apiKey, baseURL string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger, opts ...Option) *Client {
	c := &Client{
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: baseURL,
		metrics: metrics,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Browse fetches one page of the NEO browse listing and returns the body unchanged.
func (c *Client) Browse(ctx context.Context, page int) (json.RawMessage, error) {
	params := url.Values{"api_key": {c.apiKey}}
	if page > 0 {
		params.Set("page", strconv.Itoa(page))
	}
	fullURL := c.baseURL + "/neo/browse?" + params.Encode()

	backoff := initialBackoff
	for attempt := 0; ; attempt++ {
		body, ferr := c.doRequest(ctx, fullURL)
		if ferr == nil {
			c.metrics.CatalogRequests.WithLabelValues("success").Inc()
			return body, nil
		}

		if attempt >= c.maxRetries || !ferr.retryable() || ctx.Err() != nil {
			c.metrics.CatalogRequests.WithLabelValues("error").Inc()
			c.logger.Warn("neo catalog fetch failed",
				"page", page,
				"status", ferr.StatusCode,
				"attempts", attempt+1,
				"error", ferr.Err,
			)
			return nil, ferr
		}

		c.logger.Debug("retrying neo catalog fetch", "attempt", attempt+1, "backoff", backoff, "error", ferr.Err)
		if !sleepWithContext(ctx, backoff) {
			c.metrics.CatalogRequests.WithLabelValues("error").Inc()
			return nil, networkError(ctx.Err())
		}
		backoff = nextBackoff(backoff, maxBackoff)
	}
}

func (c *Client) doRequest(ctx context.Context, fullURL string) (json.RawMessage, *FetchError) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, networkError(fmt.Errorf("rate limit wait: %w", err))
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, networkError(fmt.Errorf("create request: %w", err))
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.CatalogAPIDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, networkError(redactURL(err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, statusError(resp.StatusCode, body)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, networkError(fmt.Errorf("read response: %w", err))
	}
	if !json.Valid(body) {
		return nil, &FetchError{
			StatusCode: resp.StatusCode,
			Message:    "Failed to decode NASA NEO API response.",
			Err:        errors.New("response body is not valid JSON"),
		}
	}
	return body, nil
}

// redactURL strips the query string (and with it the API key) from transport errors.
func redactURL(err error) error {
	var uerr *url.Error
	if errors.As(err, &uerr) {
		if u, perr := url.Parse(uerr.URL); perr == nil {
			u.RawQuery = ""
			return &url.Error{Op: uerr.Op, URL: u.String(), Err: uerr.Err}
		}
	}
	return err
}

func nextBackoff(current, maxBackoff time.Duration) time.Duration {
	next := current * 2
	if next > maxBackoff {
		return maxBackoff
	}
	return next
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
