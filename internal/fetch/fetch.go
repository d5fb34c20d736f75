// Package fetch retrieves venue pages over HTTP with retry, backoff and
// per-source rate limiting.
package fetch

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/cenkalti/backoff/v4"

	"github.com/copenmusic/concert-scraper/internal/logger"
)

const (
	UserAgent = "concert-scraper/1.0 (github.com/copenmusic/concert-scraper)"
	Timeout   = 30 * time.Second

	defaultMaxAttempts    = 3
	defaultInitialBackoff = time.Second
)

// PageFetcher is the transport capability a scrape job depends on: fetch a
// URL, get back a parsed document or an error. Implemented by Client and
// by test fakes.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) (*goquery.Document, error)
}

// Client fetches venue pages with a bounded retry budget and exponential
// backoff between attempts. After every successful fetch it pauses for
// 1/rate seconds to keep the request rate to the source below its
// configured ceiling.
type Client struct {
	// MaxAttempts bounds fetch attempts per URL, backoff doubling after
	// each failure starting at InitialBackoff.
	MaxAttempts    int
	InitialBackoff time.Duration

	httpClient *http.Client
	rate       float64
	log        *logger.Logger
}

// New creates a fetch client throttled to rate requests per second.
func New(rate float64, log *logger.Logger) *Client {
	return &Client{
		MaxAttempts:    defaultMaxAttempts,
		InitialBackoff: defaultInitialBackoff,
		httpClient:     &http.Client{Timeout: Timeout},
		rate:           rate,
		log:            log,
	}
}

// Fetch retrieves url and parses the body. All transport errors are
// treated as retryable; the retry budget is the only thing that
// distinguishes a transient failure from a permanent one.
func (c *Client) Fetch(ctx context.Context, url string) (*goquery.Document, error) {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = c.InitialBackoff
	policy.Multiplier = 2
	policy.RandomizationFactor = 0
	policy.MaxElapsedTime = 0 // the attempt budget is the only limit

	var doc *goquery.Document
	attempt := 0

	operation := func() error {
		attempt++
		c.log.Info("fetching page", logger.Fields{"url": url, "attempt": attempt})

		d, err := c.fetchOnce(ctx, url)
		if err != nil {
			c.log.Warn("request failed", logger.Fields{
				"url":     url,
				"attempt": attempt,
				"reason":  err.Error(),
			})
			return err
		}
		doc = d
		return nil
	}

	err := backoff.Retry(operation, backoff.WithContext(
		backoff.WithMaxRetries(policy, uint64(c.MaxAttempts-1)), ctx))
	if err != nil {
		c.log.Error("failed to fetch page", logger.Fields{
			"url":      url,
			"attempts": attempt,
		}, err)
		return nil, fmt.Errorf("fetching %s after %d attempts: %w", url, attempt, err)
	}

	// Pace requests to the source after each successful fetch.
	if c.rate > 0 {
		delay := time.Duration(float64(time.Second) / c.rate)
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	return doc, nil
}

func (c *Client) fetchOnce(ctx context.Context, url string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	return doc, nil
}
