package providers

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/asymlab/tamscan/internal/domain"
)

// IdentifierResolver resolves tickers to CIKs, typically through a cache in
// front of the filings client.
type IdentifierResolver interface {
	Resolve(ctx context.Context, ticker string) (string, error)
}

// Aggregator merges provider payloads onto the curated thesis skeleton to
// produce fully-populated CompanyRecord values. A provider miss leaves the
// affected fields absent rather than failing the record: the scorers treat
// absence as a defined no-points branch.
type Aggregator struct {
	quotes  QuoteProvider
	filings FilingsProvider
	ids     IdentifierResolver
}

// NewAggregator creates an aggregator. ids may be nil, in which case CIKs
// stay as curated.
func NewAggregator(quotes QuoteProvider, filings FilingsProvider, ids IdentifierResolver) *Aggregator {
	return &Aggregator{quotes: quotes, filings: filings, ids: ids}
}

// Enrich merges live provider data into a copy of the thesis record.
func (a *Aggregator) Enrich(ctx context.Context, record domain.CompanyRecord) (domain.CompanyRecord, error) {
	if a.ids != nil && record.CIK == "" {
		cik, err := a.ids.Resolve(ctx, record.Ticker)
		switch {
		case err == nil:
			record.CIK = cik
		case errors.Is(err, ErrTickerNotFound):
			log.Debug().Str("ticker", record.Ticker).Msg("No CIK mapping for ticker")
		default:
			return record, err
		}
	}

	if a.quotes != nil {
		quote, err := a.quotes.Quote(ctx, record.Ticker)
		switch {
		case err == nil:
			mergeQuote(&record, quote)
		case errors.Is(err, ErrTickerNotFound):
			log.Warn().Str("ticker", record.Ticker).Msg("No quote for ticker, market data stays absent")
		default:
			return record, err
		}
	}

	if a.filings != nil {
		insider, err := a.filings.Insider(ctx, record.Ticker)
		switch {
		case err == nil:
			mergeInsider(&record, insider)
		case errors.Is(err, ErrTickerNotFound):
			log.Warn().Str("ticker", record.Ticker).Msg("No insider data for ticker")
		default:
			return record, err
		}
	}

	record.DataQuality = record.ComputeDataQuality()
	record.LastUpdated = time.Now().UTC()
	return record, nil
}

// EnrichAll enriches every record in order. Records that fail on provider
// transport errors are returned unenriched so a flaky provider degrades the
// refresh instead of aborting it.
func (a *Aggregator) EnrichAll(ctx context.Context, records []domain.CompanyRecord) []domain.CompanyRecord {
	out := make([]domain.CompanyRecord, 0, len(records))
	for _, r := range records {
		enriched, err := a.Enrich(ctx, r)
		if err != nil {
			log.Error().Err(err).Str("ticker", r.Ticker).Msg("Enrichment failed, keeping curated record")
			enriched = r
		}
		out = append(out, enriched)
	}
	return out
}

func mergeQuote(r *domain.CompanyRecord, q *Quote) {
	if q.Name != "" && r.Name == "" {
		r.Name = q.Name
	}
	r.Sector = q.Sector
	r.Industry = q.Industry
	r.MarketCap = q.MarketCap
	r.Price = q.Price
	r.PriceChange30d = q.PriceChange30d
	r.Volume = q.Volume
	r.Revenue = q.Revenue
	r.RevenueGrowth = q.RevenueGrowth
	r.GrossMargin = q.GrossMargin
	r.CashPosition = q.CashPosition
	r.DebtToEquity = q.DebtToEquity
}

func mergeInsider(r *domain.CompanyRecord, p *InsiderProfile) {
	if p.CIK != "" && r.CIK == "" {
		r.CIK = p.CIK
	}
	r.InsiderOwnership = p.InsiderOwnership
	r.InsiderBuying90d = p.InsiderBuying90d
	r.FounderShares = p.FounderShares
}
