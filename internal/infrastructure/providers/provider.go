// Package providers holds the external data-source clients. Each client is
// wrapped in a circuit breaker and a rate limiter; the scoring core never
// sees any of this, it receives already-merged CompanyRecord values.
package providers

import (
	"context"
	"errors"
)

// CallObserver receives the outcome of every outbound provider call.
// Results are "success", "not_found", or "error".
type CallObserver func(provider, result string)

var callObserver CallObserver

// SetCallObserver installs a process-wide observer for provider calls,
// typically backed by a prometheus counter. Set once at startup.
func SetCallObserver(fn CallObserver) {
	callObserver = fn
}

func observeCall(provider, result string) {
	if callObserver != nil {
		callObserver(provider, result)
	}
}

// ErrTickerNotFound is returned when a provider has no data for a ticker.
var ErrTickerNotFound = errors.New("ticker not found")

// ErrProviderUnavailable wraps transport, rate-limit, and breaker failures.
var ErrProviderUnavailable = errors.New("provider unavailable")

// Quote is a provider snapshot of market data and fundamentals for one
// ticker. Growth and margin are fractions (converted at this boundary when
// the upstream reports percentages); optional values are nil when the
// provider has no figure.
type Quote struct {
	Ticker         string
	Name           string
	Sector         string
	Industry       string
	MarketCap      *float64
	Price          *float64
	PriceChange30d *float64
	Volume         *float64
	Revenue        *float64
	RevenueGrowth  *float64
	GrossMargin    *float64
	CashPosition   *float64
	DebtToEquity   *float64
}

// InsiderProfile is the filings-derived insider picture for one company.
// Ownership is a percentage (0-100) as reported; buying is a signed
// trailing-90-day currency amount.
type InsiderProfile struct {
	CIK              string
	InsiderOwnership *float64
	InsiderBuying90d *float64
	FounderShares    *float64
}

// QuoteProvider fetches market data and fundamentals.
type QuoteProvider interface {
	Quote(ctx context.Context, ticker string) (*Quote, error)
}

// FilingsProvider fetches insider data and resolves tickers to filer CIKs.
type FilingsProvider interface {
	Insider(ctx context.Context, ticker string) (*InsiderProfile, error)
	LookupCIK(ctx context.Context, ticker string) (string, error)
}
