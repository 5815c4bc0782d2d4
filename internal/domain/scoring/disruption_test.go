package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/asymlab/tamscan/internal/domain"
)

func TestAIDisruption_IntelligenceInfraWithExtremeTAM(t *testing.T) {
	r := &domain.CompanyRecord{
		Ticker:         "TEST",
		FutureCategory: domain.CategoryIntelligenceInfra,
		CurrentTAM:     domain.Float64(0),
		TAMMultiple:    domain.Float64(120),
	}

	result := AIDisruption(r)

	// 3 base + 4 TAM tier (>100x) + 2 enablement = 9
	assert.Equal(t, 9.0, result.Score)
	assert.Contains(t, result.Rationale, "intelligence-infrastructure")
	assert.Contains(t, result.Rationale, "Extreme TAM expansion")
	assert.Contains(t, result.Rationale, "directly enabled")
}

func TestAIDisruption_CategoryBaseTable(t *testing.T) {
	// Base + enablement per category, with no TAM data (multiple defaults
	// to 1, no expansion points).
	tests := []struct {
		category domain.FutureCategory
		want     float64
	}{
		{domain.CategoryIntelligenceInfra, 5}, // 3 + 2
		{domain.CategoryRobotics, 5},          // 3 + 2
		{domain.CategoryMaterialsSim, 5},      // 3 + 2
		{domain.CategorySyntheticBio, 3},      // 2 + 1
		{domain.CategoryAdvancedEnergy, 3},    // 2 + 1
		{domain.CategoryNatSecSpace, 2},       // 2 + 0
		{domain.CategoryOther, 0},
	}

	for _, tt := range tests {
		t.Run(string(tt.category), func(t *testing.T) {
			r := &domain.CompanyRecord{Ticker: "TEST", FutureCategory: tt.category}
			assert.Equal(t, tt.want, AIDisruption(r).Score)
		})
	}
}

func TestAIDisruption_TAMMultipleDerivedFromEstimates(t *testing.T) {
	r := &domain.CompanyRecord{
		Ticker:         "TEST",
		FutureCategory: domain.CategoryNatSecSpace,
		CurrentTAM:     domain.Float64(1_000_000_000),
		FutureTAM:      domain.Float64(55_000_000_000),
	}

	// 2 base + 3 (derived 55x multiple, >50 tier) + 0 enablement
	assert.Equal(t, 5.0, AIDisruption(r).Score)
}

func TestAIDisruption_OtherCategoryNoSignals(t *testing.T) {
	r := &domain.CompanyRecord{Ticker: "TEST", FutureCategory: domain.CategoryOther}

	result := AIDisruption(r)

	assert.Equal(t, 0.0, result.Score)
	assert.Equal(t, DisruptionRationaleNone, result.Rationale)
}
