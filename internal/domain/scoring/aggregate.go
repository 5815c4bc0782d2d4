package scoring

import (
	"fmt"
	"time"

	"github.com/asymlab/tamscan/internal/domain"
)

// Weights controls the contribution of each factor to the composite total.
// All weights must be non-negative. The degenerate all-zero case is defined:
// the total is 0.
type Weights struct {
	FounderConviction float64 `yaml:"founder_conviction"`
	AIDisruption      float64 `yaml:"ai_disruption"`
	WhiteSpace        float64 `yaml:"white_space"`
	Asymmetry         float64 `yaml:"asymmetry"`
}

// DefaultWeights weighs the four factors equally.
func DefaultWeights() Weights {
	return Weights{
		FounderConviction: 1.0,
		AIDisruption:      1.0,
		WhiteSpace:        1.0,
		Asymmetry:         1.0,
	}
}

// Validate rejects negative weights. Negative weights would break the
// [0,10] bound on the composite total.
func (w Weights) Validate() error {
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"founder_conviction", w.FounderConviction},
		{"ai_disruption", w.AIDisruption},
		{"white_space", w.WhiteSpace},
		{"asymmetry", w.Asymmetry},
	} {
		if f.value < 0 {
			return fmt.Errorf("weight %s is negative: %v", f.name, f.value)
		}
	}
	return nil
}

// Score runs the four factor scorers over one record and combines them into
// an AsymmetryScore: a weighted arithmetic mean rounded to one decimal,
// guaranteed in [0,10]. The record's category is validated up front so an
// unrecognized value cannot index the lookup tables.
func Score(r *domain.CompanyRecord, w Weights) (*domain.AsymmetryScore, error) {
	if !r.FutureCategory.Valid() {
		return nil, fmt.Errorf("score %s: %w: %q", r.Ticker, domain.ErrInvalidCategory, r.FutureCategory)
	}
	if err := w.Validate(); err != nil {
		return nil, fmt.Errorf("score %s: %w", r.Ticker, err)
	}

	founder := FounderConviction(r)
	disruption := AIDisruption(r)
	whitespace := WhiteSpace(r)
	asymmetry := Asymmetry(r)

	weightSum := w.FounderConviction + w.AIDisruption + w.WhiteSpace + w.Asymmetry
	var total float64
	if weightSum > 0 {
		total = round1((founder.Score*w.FounderConviction +
			disruption.Score*w.AIDisruption +
			whitespace.Score*w.WhiteSpace +
			asymmetry.Score*w.Asymmetry) / weightSum)
	}

	return &domain.AsymmetryScore{
		FounderConviction: founder.Score,
		AIDisruption:      disruption.Score,
		WhiteSpace:        whitespace.Score,
		Asymmetry:         asymmetry.Score,
		Total:             total,
		Rationale: domain.ScoreRationale{
			FounderConviction: founder.Rationale,
			AIDisruption:      disruption.Rationale,
			WhiteSpace:        whitespace.Rationale,
			Asymmetry:         asymmetry.Rationale,
		},
		ComputedAt: time.Now().UTC(),
	}, nil
}
