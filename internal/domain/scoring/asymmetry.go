package scoring

import "github.com/asymlab/tamscan/internal/domain"

// AsymmetryRationaleNone is returned when no asymmetry branch fires.
const AsymmetryRationaleNone = "Risk/reward profile unclear"

// Asymmetry scores convexity of the bet: the potential multiple at an
// assumed 10% terminal capture of the future TAM, balance-sheet
// survivability, and quality of the underlying business. A high debt load is
// flagged in the rationale but does not subtract.
func Asymmetry(r *domain.CompanyRecord) FactorScore {
	var points float64
	var b rationaleBuilder

	if r.FutureTAM != nil && *r.FutureTAM > 0 && r.MarketCap != nil && *r.MarketCap > 0 {
		potential := (*r.FutureTAM * AssumedCaptureShare) / *r.MarketCap
		switch {
		case potential > 100:
			points += 4
			b.add("100x+ potential at 10% future market capture")
		case potential > 50:
			points += 3
			b.add("50x+ potential at 10% future market capture")
		case potential > 20:
			points += 2
			b.add("20x+ potential at 10% future market capture")
		case potential > 10:
			points += 1
			b.add("10x+ potential at 10% future market capture")
		}
	}

	if r.CashPosition != nil && r.MarketCap != nil {
		switch cash, mc := *r.CashPosition, *r.MarketCap; {
		case cash > mc*0.2:
			points += 2
			b.add("Strong cash position (>20% of market cap)")
		case cash > mc*0.1:
			points += 1
			b.add("Decent cash position (>10% of market cap)")
		}
	}

	if r.DebtToEquity != nil {
		switch de := *r.DebtToEquity; {
		case de < 0.3:
			points += 1
			b.add("Low debt (D/E <0.3)")
		case de > 1.5:
			// Surfaced, not deducted.
			b.add("High debt warning (D/E >1.5)")
		}
	}

	if r.GrossMargin != nil && *r.GrossMargin > 0.6 {
		points += 1
		b.add("High gross margin (>60%)")
	}

	if r.RevenueGrowth != nil {
		switch growth := *r.RevenueGrowth; {
		case growth > 0.30:
			points += 1
			b.add("Rapid revenue growth (>30%)")
		case growth > 0.15:
			points += 0.5
			b.add("Solid revenue growth (>15%)")
		}
	}

	return FactorScore{
		Score:     clamp10(points),
		Rationale: b.build(AsymmetryRationaleNone),
	}
}
