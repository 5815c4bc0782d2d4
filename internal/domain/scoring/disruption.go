package scoring

import (
	"fmt"

	"github.com/asymlab/tamscan/internal/domain"
)

// DisruptionRationaleNone is returned when no AI-disruption branch fires.
const DisruptionRationaleNone = "Limited AI disruption potential"

// categoryBaseScore is the canonical category base table. The
// materials-simulation value is 3: simulation workloads are directly
// compute-bound, so the category sits with the directly-enabled tier.
var categoryBaseScore = map[domain.FutureCategory]float64{
	domain.CategoryIntelligenceInfra: 3,
	domain.CategoryRobotics:          3,
	domain.CategorySyntheticBio:      2,
	domain.CategoryMaterialsSim:      3,
	domain.CategoryAdvancedEnergy:    2,
	domain.CategoryNatSecSpace:       2,
	domain.CategoryOther:             0,
}

// categoryEnablementBonus scores how directly AI progress compounds the
// category's product: +2 directly enabled, +1 partially enabled.
var categoryEnablementBonus = map[domain.FutureCategory]float64{
	domain.CategoryIntelligenceInfra: 2,
	domain.CategoryRobotics:          2,
	domain.CategoryMaterialsSim:      2,
	domain.CategorySyntheticBio:      1,
	domain.CategoryAdvancedEnergy:    1,
	domain.CategoryNatSecSpace:       0,
	domain.CategoryOther:             0,
}

// AIDisruption scores how much AI acceleration expands the company's
// opportunity: category base score, TAM expansion tiers, and a
// technology-enablement bonus. The caller validates the category; an
// unrecognized value must not reach the lookup tables.
func AIDisruption(r *domain.CompanyRecord) FactorScore {
	var points float64
	var b rationaleBuilder

	if base := categoryBaseScore[r.FutureCategory]; base > 0 {
		points += base
		b.add(fmt.Sprintf("AI-leveraged category: %s", r.FutureCategory))
	}

	switch multiple := r.EffectiveTAMMultiple(); {
	case multiple > 100:
		points += 4
		b.add("Extreme TAM expansion (>100x)")
	case multiple > 50:
		points += 3
		b.add("Massive TAM expansion (>50x)")
	case multiple > 20:
		points += 2
		b.add("Large TAM expansion (>20x)")
	case multiple > 10:
		points += 1
		b.add("Meaningful TAM expansion (>10x)")
	}

	switch bonus := categoryEnablementBonus[r.FutureCategory]; bonus {
	case 2:
		points += 2
		b.add("Technology directly enabled by AI advances")
	case 1:
		points += 1
		b.add("Technology partially enabled by AI advances")
	}

	return FactorScore{
		Score:     clamp10(points),
		Rationale: b.build(DisruptionRationaleNone),
	}
}
