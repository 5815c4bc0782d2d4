package domain

import (
	"errors"
	"fmt"
)

// FutureCategory classifies which frontier-technology market a company
// addresses. The set is closed: scoring tables are keyed by category, so an
// unknown value is an error, never a silent default.
type FutureCategory string

const (
	CategoryIntelligenceInfra FutureCategory = "intelligence-infrastructure"
	CategoryRobotics          FutureCategory = "robotics-autonomous"
	CategorySyntheticBio      FutureCategory = "synthetic-biology"
	CategoryMaterialsSim      FutureCategory = "materials-simulation"
	CategoryAdvancedEnergy    FutureCategory = "advanced-energy"
	CategoryNatSecSpace       FutureCategory = "national-security-space"
	CategoryOther             FutureCategory = "other"
)

// ErrInvalidCategory is returned when a category value is outside the closed
// enumeration.
var ErrInvalidCategory = errors.New("invalid future category")

var allCategories = []FutureCategory{
	CategoryIntelligenceInfra,
	CategoryRobotics,
	CategorySyntheticBio,
	CategoryMaterialsSim,
	CategoryAdvancedEnergy,
	CategoryNatSecSpace,
	CategoryOther,
}

// AllCategories returns every recognized category in stable order.
func AllCategories() []FutureCategory {
	out := make([]FutureCategory, len(allCategories))
	copy(out, allCategories)
	return out
}

// Valid reports whether c is one of the seven recognized categories.
func (c FutureCategory) Valid() bool {
	for _, known := range allCategories {
		if c == known {
			return true
		}
	}
	return false
}

func (c FutureCategory) String() string {
	return string(c)
}

// ParseFutureCategory validates a raw category string from config, storage,
// or a provider payload.
func ParseFutureCategory(s string) (FutureCategory, error) {
	c := FutureCategory(s)
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidCategory, s)
	}
	return c, nil
}
