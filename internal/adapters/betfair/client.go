package betfair

// client.go — Betfair Exchange betting API client.
//
// REST transport over the shared Session, with two token-bucket limiters:
// data calls (catalogue, book) and order submission get separate budgets so
// concurrent monitors cannot starve each other's hedges or blow the
// exchange's per-session transaction limits.

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/rand"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultBettingURL = "https://api.betfair.com/exchange/betting/rest/v1.0"

	// Betfair allows ~5 data requests/s per app key; stay below.
	dataRatePerSec = 4
	// Order submission is serialized: 1/s, burst 1. Every monitor shares
	// the session, and hedges must never be throttled away by data calls.
	orderRatePerSec = 1

	maxRetries    = 3
	baseRetryWait = 500 * time.Millisecond
)

// Client is the Betfair betting API client used by every monitor.
type Client struct {
	http         *http.Client
	bettingURL   string
	session      *Session
	dataLimiter  *rate.Limiter
	orderLimiter *rate.Limiter
}

// NewClient creates a Client on top of an authenticated session.
// If bettingURL is empty the production endpoint is used.
func NewClient(bettingURL string, session *Session) *Client {
	if bettingURL == "" {
		bettingURL = defaultBettingURL
	}
	return &Client{
		http:         &http.Client{Timeout: 10 * time.Second},
		bettingURL:   bettingURL,
		session:      session,
		dataLimiter:  rate.NewLimiter(dataRatePerSec, 2),
		orderLimiter: rate.NewLimiter(orderRatePerSec, 1),
	}
}

// post sends one betting API call (method name appended to the base URL)
// with rate limiting and bounded retries on transient failures.
func (c *Client) post(ctx context.Context, limiter *rate.Limiter, method string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal body: %w", err)
	}

	url := c.bettingURL + "/" + method + "/"

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if err := limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
		if err != nil {
			return err
		}
		req.Header.Set("X-Application", c.session.AppKey())
		req.Header.Set("X-Authentication", c.session.Token())
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			if attempt == maxRetries {
				return fmt.Errorf("request failed after %d retries: %w", maxRetries, err)
			}
			c.sleep(ctx, attempt)
			continue
		}

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			resp.Body.Close()
			if attempt == maxRetries {
				return fmt.Errorf("exchange returned %d after %d retries", resp.StatusCode, maxRetries)
			}
			slog.Warn("exchange throttled or unavailable, backing off",
				"method", method,
				"status", resp.StatusCode,
				"attempt", attempt+1,
			)
			c.sleep(ctx, attempt)
			continue
		}

		if resp.StatusCode != http.StatusOK {
			b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			resp.Body.Close()
			return fmt.Errorf("exchange returned %d: %s", resp.StatusCode, string(b))
		}

		err = json.NewDecoder(resp.Body).Decode(out)
		resp.Body.Close()
		if err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
		return nil
	}
	return nil
}

func (c *Client) sleep(ctx context.Context, attempt int) {
	wait := time.Duration(float64(baseRetryWait) * math.Pow(2, float64(attempt)))
	wait += time.Duration(rand.Int63n(int64(wait / 2)))
	select {
	case <-ctx.Done():
	case <-time.After(wait):
	}
}
