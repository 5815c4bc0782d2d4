package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asymlab/tamscan/internal/domain"
)

func TestScore_EqualWeightsIsArithmeticMean(t *testing.T) {
	r := &domain.CompanyRecord{
		Ticker:           "MEAN",
		FutureCategory:   domain.CategoryIntelligenceInfra,
		InsiderOwnership: domain.Float64(35),
		InsiderBuying90d: domain.Float64(2_000_000),
		FounderActive:    true,
	}

	score, err := Score(r, DefaultWeights())
	require.NoError(t, err)

	expected := round1((score.FounderConviction + score.AIDisruption +
		score.WhiteSpace + score.Asymmetry) / 4)
	assert.Equal(t, expected, score.Total)
	assert.GreaterOrEqual(t, score.Total, 0.0)
	assert.LessOrEqual(t, score.Total, 10.0)
}

func TestScore_AllFieldsAbsentScoresZero(t *testing.T) {
	r := &domain.CompanyRecord{Ticker: "EMPTY", FutureCategory: domain.CategoryOther}

	score, err := Score(r, DefaultWeights())
	require.NoError(t, err)

	assert.Equal(t, 0.0, score.Total)
	assert.Equal(t, FounderRationaleNone, score.Rationale.FounderConviction)
	assert.Equal(t, DisruptionRationaleNone, score.Rationale.AIDisruption)
	assert.Equal(t, WhiteSpaceRationaleNone, score.Rationale.WhiteSpace)
	assert.Equal(t, AsymmetryRationaleNone, score.Rationale.Asymmetry)
}

func TestScore_InvalidCategoryRejected(t *testing.T) {
	r := &domain.CompanyRecord{Ticker: "BAD", FutureCategory: "quantum-snacks"}

	_, err := Score(r, DefaultWeights())
	assert.ErrorIs(t, err, domain.ErrInvalidCategory)
}

func TestScore_NegativeWeightRejected(t *testing.T) {
	r := &domain.CompanyRecord{Ticker: "NEG", FutureCategory: domain.CategoryOther}

	w := DefaultWeights()
	w.WhiteSpace = -0.5

	_, err := Score(r, w)
	assert.Error(t, err)
}

func TestScore_AllZeroWeightsIsDefinedZero(t *testing.T) {
	r := &domain.CompanyRecord{
		Ticker:           "ZERO",
		FutureCategory:   domain.CategoryRobotics,
		InsiderOwnership: domain.Float64(35),
	}

	score, err := Score(r, Weights{})
	require.NoError(t, err)
	assert.Equal(t, 0.0, score.Total)
}

func TestScore_UnevenWeights(t *testing.T) {
	r := &domain.CompanyRecord{
		Ticker:           "LEAN",
		FutureCategory:   domain.CategoryOther,
		InsiderOwnership: domain.Float64(35), // founder factor = 4
	}

	score, err := Score(r, Weights{FounderConviction: 3, AIDisruption: 1})
	require.NoError(t, err)

	// (4*3 + 0*1) / 4 = 3.0
	assert.Equal(t, 3.0, score.Total)
}

func TestRound1_HalfAwayFromZeroAndIdempotent(t *testing.T) {
	assert.Equal(t, 6.3, round1(6.25))
	assert.Equal(t, 6.2, round1(6.24))
	assert.Equal(t, -6.3, round1(-6.25))
	assert.Equal(t, 7.0, round1(6.95))

	for _, v := range []float64{0, 1.05, 3.14159, 6.25, 9.99, 10} {
		once := round1(v)
		assert.Equal(t, once, round1(once), "re-rounding must be stable for %v", v)
	}
}

func TestClamp10_Bounds(t *testing.T) {
	assert.Equal(t, 0.0, clamp10(-1))
	assert.Equal(t, 10.0, clamp10(12))
	assert.Equal(t, 7.5, clamp10(7.5))
}
