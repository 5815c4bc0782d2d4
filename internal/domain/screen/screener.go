// Package screen filters and ranks scored company records against
// screening criteria.
package screen

import (
	"fmt"
	"sort"

	"github.com/asymlab/tamscan/internal/domain"
	"github.com/asymlab/tamscan/internal/domain/scoring"
)

// Screener scores a candidate universe, filters it against screening
// criteria, and ranks the survivors by composite score.
type Screener struct {
	weights scoring.Weights
}

// NewScreener creates a screener with the given factor weights.
func NewScreener(weights scoring.Weights) *Screener {
	return &Screener{weights: weights}
}

// Screen scores every record, drops those failing the criteria, and returns
// the rest ordered by total descending with ticker-ascending tie-break so
// identical inputs always produce identical output. The input slice is not
// mutated; the result is always a subset of the input.
func (s *Screener) Screen(records []domain.CompanyRecord, criteria domain.ScreeningCriteria) ([]domain.CompanyRecord, error) {
	ranked := make([]domain.CompanyRecord, 0, len(records))

	for _, r := range records {
		score, err := scoring.Score(&r, s.weights)
		if err != nil {
			return nil, fmt.Errorf("screen: %w", err)
		}
		r.Scores = score

		if passes(&r, criteria) {
			ranked = append(ranked, r)
		}
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Scores.Total != ranked[j].Scores.Total {
			return ranked[i].Scores.Total > ranked[j].Scores.Total
		}
		return ranked[i].Ticker < ranked[j].Ticker
	})

	return ranked, nil
}

// passes evaluates the conjunction of all criteria. An unknown market cap
// never auto-fails the cap bound; every other threshold treats absence as
// zero, which fails any positive minimum.
func passes(r *domain.CompanyRecord, c domain.ScreeningCriteria) bool {
	if c.MaxMarketCap > 0 && r.MarketCap != nil && *r.MarketCap > c.MaxMarketCap {
		return false
	}

	var ownership float64
	if r.InsiderOwnership != nil {
		ownership = *r.InsiderOwnership
	}
	if ownership < c.MinInsiderOwnership {
		return false
	}

	if r.EffectiveTAMMultiple() < c.MinTAMMultiple {
		return false
	}

	if !c.AllowsCategory(r.FutureCategory) {
		return false
	}

	if c.Excludes(r.Ticker) {
		return false
	}

	if r.Scores.Total < c.MinAsymmetryScore {
		return false
	}

	return true
}
