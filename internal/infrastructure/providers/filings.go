package providers

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"
)

// FilingsClient fetches insider data from the configured filings API and
// resolves tickers to filer CIKs.
type FilingsClient struct {
	baseURL string
	client  *resilientClient
}

// FilingsConfig configures the filings client.
type FilingsConfig struct {
	BaseURL string
	RPS     float64
	Burst   int
	Timeout time.Duration
}

// NewFilingsClient creates a filings client.
func NewFilingsClient(cfg FilingsConfig) *FilingsClient {
	limiter := NewHostLimiter(cfg.RPS, cfg.Burst)
	return &FilingsClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client:  newResilientClient("filings", cfg.Timeout, limiter),
	}
}

type insiderPayload struct {
	CIK             string   `json:"cik"`
	OwnershipPct    *float64 `json:"insider_ownership_pct"`
	NetBuying90d    *float64 `json:"net_buying_90d"`
	FounderShares   *float64 `json:"founder_shares"`
	LastTransaction string   `json:"last_transaction"`
}

type cikPayload struct {
	Ticker string `json:"ticker"`
	CIK    string `json:"cik"`
}

// Insider implements FilingsProvider. Ownership stays in percentage form:
// the data model documents insider ownership as 0-100.
func (c *FilingsClient) Insider(ctx context.Context, ticker string) (*InsiderProfile, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if ticker == "" {
		return nil, fmt.Errorf("insider: empty ticker")
	}

	endpoint := fmt.Sprintf("%s/insider/%s", c.baseURL, url.PathEscape(ticker))

	var payload insiderPayload
	if err := c.client.getJSON(ctx, endpoint, &payload); err != nil {
		return nil, fmt.Errorf("insider %s: %w", ticker, err)
	}

	return &InsiderProfile{
		CIK:              payload.CIK,
		InsiderOwnership: payload.OwnershipPct,
		InsiderBuying90d: payload.NetBuying90d,
		FounderShares:    payload.FounderShares,
	}, nil
}

// LookupCIK implements FilingsProvider. Used as the loader behind the
// identifier cache.
func (c *FilingsClient) LookupCIK(ctx context.Context, ticker string) (string, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if ticker == "" {
		return "", fmt.Errorf("lookup cik: empty ticker")
	}

	endpoint := fmt.Sprintf("%s/cik/%s", c.baseURL, url.PathEscape(ticker))

	var payload cikPayload
	if err := c.client.getJSON(ctx, endpoint, &payload); err != nil {
		return "", fmt.Errorf("lookup cik %s: %w", ticker, err)
	}
	if payload.CIK == "" {
		return "", fmt.Errorf("lookup cik %s: %w", ticker, ErrTickerNotFound)
	}
	return payload.CIK, nil
}
