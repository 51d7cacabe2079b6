package fetch

import (
	"context"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/pricescope/backend/internal/domain"
	"golang.org/x/time/rate"
)

// userAgents is a fixed pool of plausible desktop browser identities.
// One is picked at random per request to reduce trivial bot-blocking.
var userAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36",
}

// Config holds tunables for an outbound fetch session.
type Config struct {
	Timeout         time.Duration
	MaxIdleConns    int
	MaxConnsPerHost int
	// Optional random pre-fetch delay bounds; zero disables the delay.
	DelayMin time.Duration
	DelayMax time.Duration
	// Outbound request budget shared by all fetches through this client.
	RequestsPerMinute int
	// Extra headers layered on top of the standard browser set (per-site quirks).
	ExtraHeaders map[string]string
}

// Client performs single HTTP GETs with a randomized browser identity,
// bounded timeout and a reusable pooled connection. One Client backs one
// adapter instance; the underlying session is created lazily on first use
// and released by Close.
type Client struct {
	cfg     Config
	limiter *rate.Limiter

	mu      sync.Mutex
	session *http.Client

	closeOnce sync.Once
}

// NewClient creates a fetch client with sane defaults filled in for any
// zero-valued configuration fields.
func NewClient(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.MaxIdleConns <= 0 {
		cfg.MaxIdleConns = 10
	}
	if cfg.MaxConnsPerHost <= 0 {
		cfg.MaxConnsPerHost = 5
	}
	rpm := cfg.RequestsPerMinute
	if rpm <= 0 {
		rpm = 30
	}

	return &Client{
		cfg:     cfg,
		limiter: rate.NewLimiter(rate.Limit(float64(rpm)/60.0), 5),
	}
}

// getSession lazily builds the pooled HTTP session, reused across calls
// within one request.
func (c *Client) getSession() *http.Client {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session == nil {
		c.session = &http.Client{
			Timeout: c.cfg.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:    c.cfg.MaxIdleConns,
				MaxConnsPerHost: c.cfg.MaxConnsPerHost,
			},
		}
	}
	return c.session
}

// headers builds the randomized browser-like header set for one request.
func (c *Client) headers() map[string]string {
	h := map[string]string{
		"User-Agent":                userAgents[rand.Intn(len(userAgents))],
		"Accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8",
		// Accept-Encoding is left to the transport so gzip responses are
		// decompressed transparently.
		"Accept-Language":           "en-US,en;q=0.5",
		"Connection":                "keep-alive",
		"Upgrade-Insecure-Requests": "1",
	}
	for k, v := range c.cfg.ExtraHeaders {
		h[k] = v
	}
	return h
}

// Fetch performs a single GET and returns the document body. A non-200
// status or any transport error yields ("", error); callers treat that
// as "no content", not as a request-level failure.
func (c *Client) Fetch(ctx context.Context, url string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter: %w", err)
	}

	if err := c.preFetchDelay(ctx); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	for k, v := range c.headers() {
		req.Header.Set(k, v)
	}

	resp, err := c.getSession().Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("[FETCH] HTTP %d for URL: %s", resp.StatusCode, url)
		return "", fmt.Errorf("%w: status %d", domain.ErrFetchFailed, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: reading body: %v", domain.ErrFetchFailed, err)
	}

	return string(body), nil
}

// preFetchDelay sleeps a random duration inside the configured bounds to
// reduce the chance of rate-limiting, honoring context cancellation.
func (c *Client) preFetchDelay(ctx context.Context) error {
	if c.cfg.DelayMax <= 0 || c.cfg.DelayMax < c.cfg.DelayMin {
		return nil
	}

	delay := c.cfg.DelayMin
	if span := c.cfg.DelayMax - c.cfg.DelayMin; span > 0 {
		delay += time.Duration(rand.Int63n(int64(span)))
	}
	if delay <= 0 {
		return nil
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Close releases idle connections held by the session. Safe to call more
// than once and on clients that never fetched.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.session != nil {
			c.session.CloseIdleConnections()
			c.session = nil
		}
	})
}
