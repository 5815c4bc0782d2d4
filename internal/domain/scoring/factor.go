// Package scoring implements the four-factor asymmetry scoring engine.
// Every scorer is a pure function from a CompanyRecord to a (score,
// rationale) pair; absent fields award no points and never error.
package scoring

import (
	"math"
	"strings"
)

// FactorScore is one factor's result: a score in [0,10] and the ordered
// concatenation of the descriptions for each branch that fired.
type FactorScore struct {
	Score     float64
	Rationale string
}

// AssumedCaptureShare is the terminal market-share capture assumed when
// translating a future TAM into a potential outcome. Shared by the
// white-space capture ratio and the asymmetry potential multiple.
const AssumedCaptureShare = 0.10

// rationaleBuilder accumulates triggered-branch descriptions and falls back
// to a per-factor sentinel when nothing fired.
type rationaleBuilder struct {
	parts []string
}

func (b *rationaleBuilder) add(reason string) {
	b.parts = append(b.parts, reason)
}

func (b *rationaleBuilder) build(sentinel string) string {
	if len(b.parts) == 0 {
		return sentinel
	}
	return strings.Join(b.parts, "; ")
}

// clamp10 bounds a raw point sum to [0,10]. The point tables already top out
// at 10; the clamp is defensive.
func clamp10(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 10 {
		return 10
	}
	return v
}

// round1 rounds to one decimal place, half away from zero. Idempotent:
// round1(round1(x)) == round1(x).
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
