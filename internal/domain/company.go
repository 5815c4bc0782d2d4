package domain

import (
	"time"
)

// CompanyRecord is one tracked security, merged from provider payloads and
// the curated thesis overlay. Optional numerics are pointers: nil means
// "unknown", which every scorer treats as a defined no-points branch rather
// than an error. Growth and margin fields are fractions (0.30 = 30%),
// converted at the ingestion boundary; insider ownership is a percentage
// (0-100) as reported in filings.
type CompanyRecord struct {
	// Identity
	Ticker string `json:"ticker" db:"ticker"`
	Name   string `json:"name" db:"name"`
	CIK    string `json:"cik,omitempty" db:"cik"`

	// Market data
	MarketCap      *float64 `json:"market_cap,omitempty"`
	Price          *float64 `json:"price,omitempty"`
	PriceChange30d *float64 `json:"price_change_30d,omitempty"`
	Volume         *float64 `json:"volume,omitempty"`

	// Classification
	Sector         string         `json:"sector,omitempty"`
	Industry       string         `json:"industry,omitempty"`
	FutureCategory FutureCategory `json:"future_category"`

	// Fundamentals (growth/margin as fractions)
	Revenue       *float64 `json:"revenue,omitempty"`
	RevenueGrowth *float64 `json:"revenue_growth,omitempty"`
	GrossMargin   *float64 `json:"gross_margin,omitempty"`
	CashPosition  *float64 `json:"cash_position,omitempty"`
	DebtToEquity  *float64 `json:"debt_to_equity,omitempty"`

	// Insider data
	InsiderOwnership *float64 `json:"insider_ownership,omitempty"`
	InsiderBuying90d *float64 `json:"insider_buying_90d,omitempty"`
	FounderShares    *float64 `json:"founder_shares,omitempty"`
	FounderActive    bool     `json:"founder_active"`

	// TAM estimates
	CurrentTAM   *float64 `json:"current_tam,omitempty"`
	FutureTAM    *float64 `json:"future_tam,omitempty"`
	TAMMultiple  *float64 `json:"tam_multiple,omitempty"`
	TAMRationale string   `json:"tam_rationale,omitempty"`

	// Derived
	Scores      *AsymmetryScore `json:"scores,omitempty"`
	DataQuality float64         `json:"data_quality"`
	LastUpdated time.Time       `json:"last_updated"`
}

// Float64 returns a pointer to v, for populating optional record fields.
func Float64(v float64) *float64 {
	return &v
}

// EffectiveTAMMultiple resolves the record's TAM expansion multiple. A
// precomputed value wins; otherwise the multiple is derived from the two TAM
// estimates. When the current TAM is unknown or zero the multiple defaults
// to 1, which awards no expansion points downstream.
func (r *CompanyRecord) EffectiveTAMMultiple() float64 {
	if r.TAMMultiple != nil {
		return *r.TAMMultiple
	}
	if r.CurrentTAM != nil && *r.CurrentTAM > 0 && r.FutureTAM != nil {
		return *r.FutureTAM / *r.CurrentTAM
	}
	return 1
}

// ComputeDataQuality derives a 0-100 confidence metric from field presence.
// Each populated field contributes its weight; the curated founder flag is
// always present so it carries no weight here.
func (r *CompanyRecord) ComputeDataQuality() float64 {
	type field struct {
		present bool
		weight  float64
	}
	fields := []field{
		{r.MarketCap != nil, 10},
		{r.Price != nil, 7},
		{r.PriceChange30d != nil, 4},
		{r.Volume != nil, 4},
		{r.Revenue != nil, 7},
		{r.RevenueGrowth != nil, 6},
		{r.GrossMargin != nil, 6},
		{r.CashPosition != nil, 6},
		{r.DebtToEquity != nil, 5},
		{r.InsiderOwnership != nil, 10},
		{r.InsiderBuying90d != nil, 8},
		{r.FounderShares != nil, 5},
		{r.CurrentTAM != nil, 11},
		{r.FutureTAM != nil, 11},
	}

	var total, have float64
	for _, f := range fields {
		total += f.weight
		if f.present {
			have += f.weight
		}
	}
	if total == 0 {
		return 0
	}
	return have / total * 100
}
