package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/asymlab/tamscan/internal/domain"
)

func TestAsymmetry_ConvexSetup(t *testing.T) {
	r := &domain.CompanyRecord{
		Ticker:         "TEST",
		FutureCategory: domain.CategoryOther,
		// (200B * 0.10) / 150M = 133x potential
		FutureTAM:     domain.Float64(200_000_000_000),
		MarketCap:     domain.Float64(150_000_000),
		CashPosition:  domain.Float64(40_000_000), // >20% of cap
		DebtToEquity:  domain.Float64(0.1),
		GrossMargin:   domain.Float64(0.7),
		RevenueGrowth: domain.Float64(0.5),
	}

	result := Asymmetry(r)

	// 4 + 2 + 1 + 1 + 1 = 9
	assert.Equal(t, 9.0, result.Score)
	assert.Contains(t, result.Rationale, "100x+ potential")
	assert.Contains(t, result.Rationale, "Strong cash position")
	assert.Contains(t, result.Rationale, "Low debt")
	assert.Contains(t, result.Rationale, "High gross margin")
	assert.Contains(t, result.Rationale, "Rapid revenue growth")
}

func TestAsymmetry_PotentialMultipleTiers(t *testing.T) {
	futureTAM := 100_000_000_000.0 // 10% capture = $10B outcome

	tests := []struct {
		name      string
		marketCap float64
		want      float64
	}{
		{"over 100x", 90_000_000, 4},
		{"over 50x", 150_000_000, 3},
		{"over 20x", 400_000_000, 2},
		{"over 10x", 900_000_000, 1},
		{"under 10x", 2_000_000_000, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &domain.CompanyRecord{
				Ticker:         "TEST",
				FutureCategory: domain.CategoryOther,
				FutureTAM:      domain.Float64(futureTAM),
				MarketCap:      domain.Float64(tt.marketCap),
			}
			assert.Equal(t, tt.want, Asymmetry(r).Score)
		})
	}
}

func TestAsymmetry_PotentialRequiresBothInputs(t *testing.T) {
	// Future TAM alone must not produce a potential multiple; the division
	// guard is a branch condition, never a NaN.
	r := &domain.CompanyRecord{
		Ticker:         "TEST",
		FutureCategory: domain.CategoryOther,
		FutureTAM:      domain.Float64(100_000_000_000),
	}

	result := Asymmetry(r)

	assert.Equal(t, 0.0, result.Score)
	assert.Equal(t, AsymmetryRationaleNone, result.Rationale)
}

func TestAsymmetry_HighDebtWarnsWithoutDeducting(t *testing.T) {
	r := &domain.CompanyRecord{
		Ticker:         "TEST",
		FutureCategory: domain.CategoryOther,
		DebtToEquity:   domain.Float64(2.0),
		GrossMargin:    domain.Float64(0.65),
	}

	result := Asymmetry(r)

	assert.Equal(t, 1.0, result.Score)
	assert.Contains(t, result.Rationale, "High debt warning")
}

func TestAsymmetry_ModerateGrowthHalfPoint(t *testing.T) {
	r := &domain.CompanyRecord{
		Ticker:         "TEST",
		FutureCategory: domain.CategoryOther,
		RevenueGrowth:  domain.Float64(0.20),
	}

	assert.Equal(t, 0.5, Asymmetry(r).Score)
}

func TestAsymmetry_AllFieldsAbsent(t *testing.T) {
	r := &domain.CompanyRecord{Ticker: "TEST", FutureCategory: domain.CategoryOther}

	result := Asymmetry(r)

	assert.Equal(t, 0.0, result.Score)
	assert.Equal(t, AsymmetryRationaleNone, result.Rationale)
}
