package scoring

import "github.com/asymlab/tamscan/internal/domain"

// FounderRationaleNone is returned when no founder-conviction branch fires.
const FounderRationaleNone = "Insufficient data"

// FounderConviction scores skin-in-the-game: insider ownership tiers,
// trailing 90-day insider buying, and the curated founder-active flag.
// Net insider selling is flagged in the rationale but does not subtract.
func FounderConviction(r *domain.CompanyRecord) FactorScore {
	var points float64
	var b rationaleBuilder

	if r.InsiderOwnership != nil {
		switch own := *r.InsiderOwnership; {
		case own > 30:
			points += 4
			b.add("High insider ownership (>30%)")
		case own > 20:
			points += 3
			b.add("Strong insider ownership (>20%)")
		case own > 10:
			points += 2
			b.add("Meaningful insider ownership (>10%)")
		case own > 5:
			points += 1
			b.add("Some insider alignment (>5% ownership)")
		}
	}

	if r.InsiderBuying90d != nil {
		switch buying := *r.InsiderBuying90d; {
		case buying > 1_000_000:
			points += 3
			b.add("Significant insider buying (>$1M in 90 days)")
		case buying > 100_000:
			points += 2
			b.add("Notable insider buying (>$100K in 90 days)")
		case buying > 0:
			points += 1
			b.add("Net insider buying in last 90 days")
		case buying < -100_000:
			// No deduction: the signal is surfaced, not scored.
			b.add("Insider selling warning (net sales >$100K in 90 days)")
		}
	}

	if r.FounderActive {
		points += 3
		b.add("Founder-led company")
	}

	return FactorScore{
		Score:     clamp10(points),
		Rationale: b.build(FounderRationaleNone),
	}
}
