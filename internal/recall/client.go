package recall

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/arlerug/wesafe-assistant/internal/log"
)

// DefaultTimeout bounds one recall round trip. A slow store degrades to an
// empty result, it never stalls the turn past this.
const DefaultTimeout = 10 * time.Second

// Client queries the passage store.
type Client struct {
	baseURL string
	domain  string
	httpc   *http.Client
	limiter *rate.Limiter
	logger  log.Logger
}

// Option configures a Client using the functional options pattern.
type Option func(*Client)

// WithDomain restricts recalls to one collection domain.
func WithDomain(domain string) Option {
	return func(c *Client) {
		c.domain = domain
	}
}

// WithTimeout overrides the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpc.Timeout = d
	}
}

// WithHTTPClient replaces the underlying HTTP client. Test use mostly.
func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) {
		c.httpc = httpc
	}
}

// WithRateLimit throttles outbound recall requests.
func WithRateLimit(limiter *rate.Limiter) Option {
	return func(c *Client) {
		c.limiter = limiter
	}
}

// NewClient creates a recall client for the store at baseURL.
func NewClient(baseURL string, logger log.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: DefaultTimeout},
		limiter: rate.NewLimiter(rate.Inf, 1),
		logger:  logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Recall returns the top-k nearest passages for query. It never returns an
// error: any failure is logged and degrades to an empty slice. Every returned
// passage has non-empty text.
func (c *Client) Recall(ctx context.Context, query string, k int) []Passage {
	if strings.TrimSpace(query) == "" || k <= 0 {
		return nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		c.logger.Warn("recall aborted while rate limited", "error", err)
		return nil
	}

	items, err := c.fetch(ctx, query, k)
	if err != nil {
		c.logger.Warn("recall failed, continuing without context",
			"error", err, "k", k, "domain", c.domain)
		return nil
	}

	passages := make([]Passage, 0, len(items))
	for _, raw := range items {
		passages = append(passages, normalize(raw))
	}

	c.logger.Debug("recall done", "passages", len(passages))
	return passages
}

func (c *Client) fetch(ctx context.Context, query string, k int) ([]json.RawMessage, error) {
	params := url.Values{}
	params.Set("text", query)
	params.Set("k", strconv.Itoa(k))
	if c.domain != "" {
		params.Set("domain", c.domain)
	}

	endpoint := c.baseURL + "/memory/recall?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("building recall request: %w", err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("querying passage store: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("passage store returned %s", resp.Status)
	}

	var items []json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, fmt.Errorf("decoding recall response: %w", err)
	}
	return items, nil
}
