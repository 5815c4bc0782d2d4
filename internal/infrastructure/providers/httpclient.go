package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker"
)

// resilientClient is the shared transport for provider calls: per-host rate
// limiting in front of a circuit breaker in front of net/http.
type resilientClient struct {
	name    string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker
	limiter *HostLimiter
}

func newResilientClient(name string, timeout time.Duration, limiter *HostLimiter) *resilientClient {
	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: 3,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		// A missing ticker is an answer, not a provider failure.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrTickerNotFound)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().
				Str("provider", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("Provider circuit breaker state change")
		},
	}

	return &resilientClient{
		name:    name,
		http:    &http.Client{Timeout: timeout},
		breaker: gobreaker.NewCircuitBreaker(settings),
		limiter: limiter,
	}
}

// getJSON fetches rawURL and decodes the response body into out. Breaker
// rejections and transport failures surface as ErrProviderUnavailable; a
// 404 maps to ErrTickerNotFound so callers can skip missing symbols.
func (c *resilientClient) getJSON(ctx context.Context, rawURL string, out interface{}) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%s: parse url: %w", c.name, err)
	}

	if err := c.limiter.Wait(ctx, u.Host); err != nil {
		return fmt.Errorf("%s: rate limit wait: %w", c.name, err)
	}

	body, err := c.breaker.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusNotFound:
			return nil, ErrTickerNotFound
		case resp.StatusCode != http.StatusOK:
			return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
		}

		return io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	})
	if err != nil {
		if errors.Is(err, ErrTickerNotFound) {
			observeCall(c.name, "not_found")
			return fmt.Errorf("%s: %w", c.name, ErrTickerNotFound)
		}
		observeCall(c.name, "error")
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return fmt.Errorf("%s: circuit open: %w", c.name, ErrProviderUnavailable)
		}
		return fmt.Errorf("%s: %v: %w", c.name, err, ErrProviderUnavailable)
	}
	observeCall(c.name, "success")

	if err := json.Unmarshal(body.([]byte), out); err != nil {
		return fmt.Errorf("%s: decode response: %w", c.name, err)
	}
	return nil
}
