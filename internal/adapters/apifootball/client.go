package apifootball

import (
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
	defaultBaseURL = "https://v3.football.api-sports.io"

	// El plan free de API-Football permite 10 req/min; nos quedamos
	// por debajo para dejar margen a los monitores concurrentes.
	feedRatePerMin = 8

	maxRetries    = 3
	baseRetryWait = 500 * time.Millisecond
)

// Client es el HTTP client de API-Football con rate limiting y retries.
type Client struct {
	http      *http.Client
	baseURL   string
	apiKey    string
	limiter   *rate.Limiter
	countries map[string]bool // allow-list; vacío = todos los países
}

// NewClient crea un Client con el base URL y la allow-list de países dados.
// Si baseURL está vacío usa el URL de producción.
func NewClient(baseURL, apiKey string, countries []string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	allowed := make(map[string]bool, len(countries))
	for _, c := range countries {
		allowed[c] = true
	}
	return &Client{
		http:      &http.Client{Timeout: 10 * time.Second},
		baseURL:   baseURL,
		apiKey:    apiKey,
		limiter:   rate.NewLimiter(rate.Limit(feedRatePerMin)/60, 2),
		countries: allowed,
	}
}

// get hace un GET con el header de auth, rate limiting y retries.
func (c *Client) get(ctx context.Context, url string, out any) error {
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}
		req.Header.Set("x-apisports-key", c.apiKey)
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
				return fmt.Errorf("feed returned %d after %d retries", resp.StatusCode, maxRetries)
			}
			slog.Warn("feed throttled or unavailable, backing off", "status", resp.StatusCode, "attempt", attempt+1)
			c.sleep(ctx, attempt)
			continue
		}

		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			resp.Body.Close()
			return fmt.Errorf("feed returned %d: %s", resp.StatusCode, string(body))
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

// sleep espera con backoff exponencial y jitter, respetando el contexto.
func (c *Client) sleep(ctx context.Context, attempt int) {
	wait := time.Duration(float64(baseRetryWait) * math.Pow(2, float64(attempt)))
	wait += time.Duration(rand.Int63n(int64(wait / 2)))
	select {
	case <-ctx.Done():
	case <-time.After(wait):
	}
}
