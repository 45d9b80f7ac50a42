// Barkeep - Whisky Collection Analysis and Bottle Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

package barclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/tomtom215/barkeep/internal/metrics"
	"github.com/tomtom215/barkeep/internal/recommend"
)

const breakerName = "bar-api"

// maxResponseBytes bounds upstream responses.
const maxResponseBytes = 8 << 20

var (
	// ErrUserNotFound is returned when the upstream has no such user.
	ErrUserNotFound = errors.New("bar user not found")

	// ErrUnavailable is returned while the circuit breaker rejects calls.
	ErrUnavailable = errors.New("bar API unavailable")
)

// Config configures the client.
type Config struct {
	BaseURL   string
	APIKey    string
	Timeout   time.Duration
	RateLimit float64
	Burst     int
}

// UserBar is a user's collection as reported upstream.
type UserBar struct {
	Bottles  []recommend.OwnedEntry
	Wishlist []string
}

// Client is safe for concurrent use.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	limiter *rate.Limiter
	cb      *gobreaker.CircuitBreaker[*UserBar]
	logger  zerolog.Logger
}

// New creates a client.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func New(cfg Config, logger zerolog.Logger) *Client {
	logger = logger.With().Str("component", "barclient").Logger()

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}
	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}

	metrics.SetCircuitBreakerState(breakerName, 0)

	c := &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		http:    &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(limit, burst),
		logger:  logger,
	}

	c.cb = gobreaker.NewCircuitBreaker[*UserBar](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     2 * time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			if failureRatio >= 0.6 {
				logger.Warn().
					Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", failureRatio*100).
					Msg("opening circuit")
				return true
			}
			return false
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Info().Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state change")
			metrics.SetCircuitBreakerState(name, stateValue(to))
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrUserNotFound)
		},
	})

	return c
}

func stateValue(s gobreaker.State) int {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}

// FetchBar returns the user's bar.
func (c *Client) FetchBar(ctx context.Context, username string) (*UserBar, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	start := time.Now()
	bar, err := c.cb.Execute(func() (*UserBar, error) {
		return c.fetch(ctx, username)
	})

	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.RecordBarFetch("rejected", time.Since(start))
		c.logger.Warn().Err(err).Str("username", username).Msg("bar fetch rejected")
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	case errors.Is(err, ErrUserNotFound):
		metrics.RecordBarFetch("not_found", time.Since(start))
		return nil, err
	case err != nil:
		metrics.RecordBarFetch(metrics.OutcomeError, time.Since(start))
		c.logger.Warn().Err(err).Str("username", username).Msg("bar fetch failed")
		return nil, err
	}

	metrics.RecordBarFetch(metrics.OutcomeSuccess, time.Since(start))
	c.logger.Debug().
		Str("username", username).
		Int("bottles", len(bar.Bottles)).
		Int("wishlist", len(bar.Wishlist)).
		Dur("duration", time.Since(start)).
		Msg("bar fetched")
	return bar, nil
}

func (c *Client) fetch(ctx context.Context, username string) (*UserBar, error) {
	endpoint := c.baseURL + "/bar/user/" + url.PathEscape(username)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("bar API request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrUserNotFound, username)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("bar API returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read bar API response: %w", err)
	}
	return decodeBar(body)
}

// upstreamBottle keeps only the fields the bar needs; the upstream sends
// full bottle details alongside.
type upstreamBottle struct {
	BottleID string   `json:"bottle_id"`
	Rating   *float64 `json:"rating"`
}

type upstreamBar struct {
	Bottles  []upstreamBottle `json:"bottles"`
	Wishlist []upstreamBottle `json:"wishlist"`
}

func decodeBar(body []byte) (*UserBar, error) {
	var doc upstreamBar
	var list []upstreamBottle
	if err := json.Unmarshal(body, &list); err == nil {
		doc.Bottles = list
	} else if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("decode bar API response: %w", err)
	}

	bar := &UserBar{
		Bottles:  make([]recommend.OwnedEntry, 0, len(doc.Bottles)),
		Wishlist: make([]string, 0, len(doc.Wishlist)),
	}
	for _, b := range doc.Bottles {
		if b.BottleID == "" {
			continue
		}
		bar.Bottles = append(bar.Bottles, recommend.OwnedEntry{BottleID: b.BottleID, Rating: b.Rating})
	}
	for _, b := range doc.Wishlist {
		if b.BottleID != "" {
			bar.Wishlist = append(bar.Wishlist, b.BottleID)
		}
	}
	return bar, nil
}
