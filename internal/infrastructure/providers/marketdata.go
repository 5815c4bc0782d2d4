package providers

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"
)

// MarketDataClient fetches quotes and fundamentals from the configured
// market-data API. Upstream growth/margin figures arrive as percentages and
// are converted to fractions here, at the ingestion boundary.
type MarketDataClient struct {
	baseURL string
	apiKey  string
	client  *resilientClient
}

// MarketDataConfig configures the market-data client.
type MarketDataConfig struct {
	BaseURL   string
	APIKeyEnv string
	RPS       float64
	Burst     int
	Timeout   time.Duration
}

// NewMarketDataClient creates a client. The API key is read from the
// configured environment variable.
func NewMarketDataClient(cfg MarketDataConfig) *MarketDataClient {
	limiter := NewHostLimiter(cfg.RPS, cfg.Burst)
	return &MarketDataClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  os.Getenv(cfg.APIKeyEnv),
		client:  newResilientClient("market_data", cfg.Timeout, limiter),
	}
}

// quotePayload mirrors the upstream quote response.
type quotePayload struct {
	Symbol           string   `json:"symbol"`
	Name             string   `json:"name"`
	Sector           string   `json:"sector"`
	Industry         string   `json:"industry"`
	MarketCap        *float64 `json:"market_cap"`
	Price            *float64 `json:"price"`
	ChangePct30d     *float64 `json:"change_pct_30d"`
	Volume           *float64 `json:"volume"`
	Revenue          *float64 `json:"revenue_ttm"`
	RevenueGrowthPct *float64 `json:"revenue_growth_pct"`
	GrossMarginPct   *float64 `json:"gross_margin_pct"`
	TotalCash        *float64 `json:"total_cash"`
	DebtToEquity     *float64 `json:"debt_to_equity"`
}

// Quote implements QuoteProvider.
func (c *MarketDataClient) Quote(ctx context.Context, ticker string) (*Quote, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if ticker == "" {
		return nil, fmt.Errorf("quote: empty ticker")
	}

	endpoint := fmt.Sprintf("%s/v2/quote/%s?apikey=%s",
		c.baseURL, url.PathEscape(ticker), url.QueryEscape(c.apiKey))

	var payload quotePayload
	if err := c.client.getJSON(ctx, endpoint, &payload); err != nil {
		return nil, fmt.Errorf("quote %s: %w", ticker, err)
	}

	return &Quote{
		Ticker:         ticker,
		Name:           payload.Name,
		Sector:         payload.Sector,
		Industry:       payload.Industry,
		MarketCap:      payload.MarketCap,
		Price:          payload.Price,
		PriceChange30d: payload.ChangePct30d,
		Volume:         payload.Volume,
		Revenue:        payload.Revenue,
		RevenueGrowth:  pctToFraction(payload.RevenueGrowthPct),
		GrossMargin:    pctToFraction(payload.GrossMarginPct),
		CashPosition:   payload.TotalCash,
		DebtToEquity:   payload.DebtToEquity,
	}, nil
}

// pctToFraction converts an upstream percentage (30.0) to the canonical
// fraction convention (0.30), preserving absence.
func pctToFraction(pct *float64) *float64 {
	if pct == nil {
		return nil
	}
	f := *pct / 100
	return &f
}
