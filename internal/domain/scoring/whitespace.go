package scoring

import "github.com/asymlab/tamscan/internal/domain"

// WhiteSpaceRationaleNone is returned when no white-space branch fires.
const WhiteSpaceRationaleNone = "Market positioning unclear"

// WhiteSpace scores how much unclaimed market lies ahead: small or undefined
// current TAM, a tiny market cap relative to the future TAM, and a small-cap
// bonus. A known-zero current TAM is its own undefined/emerging branch, not
// a fallthrough of the size tiers; an unknown TAM awards nothing.
func WhiteSpace(r *domain.CompanyRecord) FactorScore {
	var points float64
	var b rationaleBuilder

	if r.CurrentTAM != nil {
		switch tam := *r.CurrentTAM; {
		case tam <= 0:
			points += 3
			b.add("Undefined/emerging market")
		case tam < 1_000_000_000:
			points += 4
			b.add("Tiny current market (<$1B TAM)")
		case tam < 5_000_000_000:
			points += 3
			b.add("Small current market (<$5B TAM)")
		case tam < 10_000_000_000:
			points += 2
			b.add("Mid-size current market (<$10B TAM)")
		default:
			points += 1
			b.add("Established market ($10B+ TAM)")
		}
	}

	if r.FutureTAM != nil && *r.FutureTAM > 0 && r.MarketCap != nil && *r.MarketCap > 0 {
		switch ratio := *r.MarketCap / *r.FutureTAM; {
		case ratio < 0.001:
			points += 3
			b.add("Market cap below 0.1% of future TAM")
		case ratio < 0.01:
			points += 2
			b.add("Market cap below 1% of future TAM")
		case ratio < 0.05:
			points += 1
			b.add("Market cap below 5% of future TAM")
		}
	}

	if r.MarketCap != nil {
		switch mc := *r.MarketCap; {
		case mc < 1_000_000_000:
			points += 2
			b.add("Small cap (<$1B)")
		case mc < 3_000_000_000:
			points += 1
			b.add("Modest cap (<$3B)")
		}
	}

	return FactorScore{
		Score:     clamp10(points),
		Rationale: b.build(WhiteSpaceRationaleNone),
	}
}
