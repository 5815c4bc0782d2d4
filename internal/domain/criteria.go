package domain

// ScreeningCriteria is the filter and threshold bundle applied by the
// screener. Criteria are pure query input and never mutated by scoring.
// Zero-value semantics: an empty Categories list means no category
// restriction; an empty ExcludeTickers list excludes nothing.
type ScreeningCriteria struct {
	// MaxMarketCap is the hard upper bound filter. Records with unknown
	// market cap never auto-fail this bound.
	MaxMarketCap float64 `json:"max_market_cap" yaml:"max_market_cap"`

	// PreferredMarketCap is a UI highlight threshold only, never a filter.
	PreferredMarketCap float64 `json:"preferred_market_cap" yaml:"preferred_market_cap"`

	// MinInsiderOwnership is a percentage (0-100) lower bound.
	MinInsiderOwnership float64 `json:"min_insider_ownership" yaml:"min_insider_ownership"`

	// MinTAMMultiple is the minimum futureTAM/currentTAM expansion.
	MinTAMMultiple float64 `json:"min_tam_multiple" yaml:"min_tam_multiple"`

	// MinAsymmetryScore is the minimum composite total.
	MinAsymmetryScore float64 `json:"min_asymmetry_score" yaml:"min_asymmetry_score"`

	// Categories is the allow-list; empty means all categories pass.
	Categories []FutureCategory `json:"categories,omitempty" yaml:"categories"`

	// ExcludeTickers is the deny-list.
	ExcludeTickers []string `json:"exclude_tickers,omitempty" yaml:"exclude_tickers"`
}

// Asymmetric upside needs room to run: the default deny-list removes mega
// caps whose future TAM is already priced in.
var defaultExcludeTickers = []string{
	"AAPL", "MSFT", "GOOGL", "GOOG", "AMZN", "NVDA", "META", "TSLA",
	"BRK.A", "BRK.B", "AVGO", "JPM", "V", "WMT", "XOM",
}

// DefaultCriteria returns the documented screening defaults: market cap
// under $10B (preferred under $3B), at least 5% insider ownership, at least
// 10x TAM expansion, composite score of 6 or better, all seven categories,
// and the mega-cap deny-list.
func DefaultCriteria() ScreeningCriteria {
	return ScreeningCriteria{
		MaxMarketCap:        10_000_000_000,
		PreferredMarketCap:  3_000_000_000,
		MinInsiderOwnership: 5,
		MinTAMMultiple:      10,
		MinAsymmetryScore:   6,
		Categories:          AllCategories(),
		ExcludeTickers:      append([]string(nil), defaultExcludeTickers...),
	}
}

// AllowsCategory reports whether the criteria's allow-list admits c. An
// empty list admits every category.
func (c ScreeningCriteria) AllowsCategory(cat FutureCategory) bool {
	if len(c.Categories) == 0 {
		return true
	}
	for _, allowed := range c.Categories {
		if allowed == cat {
			return true
		}
	}
	return false
}

// Excludes reports whether ticker is on the deny-list.
func (c ScreeningCriteria) Excludes(ticker string) bool {
	for _, t := range c.ExcludeTickers {
		if t == ticker {
			return true
		}
	}
	return false
}
