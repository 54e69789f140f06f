package portfolio

import "github.com/shopspring/decimal"

var (
	eligibilityThreshold = decimal.NewFromInt(70)
	premiumThreshold     = decimal.NewFromInt(85)

	standardMultiplier = decimal.RequireFromString("1.2")
	premiumMultiplier  = decimal.RequireFromString("1.4")
)

// EligibilityThreshold: scores at or below it are not eligible.
func EligibilityThreshold() decimal.Decimal { return eligibilityThreshold }

// PremiumThreshold: scores above it get the premium multiplier.
func PremiumThreshold() decimal.Decimal { return premiumThreshold }

// Eligible reports whether score clears the eligibility threshold.
func Eligible(score decimal.Decimal) bool { return score.GreaterThan(eligibilityThreshold) }

// Multiplier returns the advance multiplier for a score. Boundary scores fall in the lower tier.
func Multiplier(score decimal.Decimal) (decimal.Decimal, bool) {
	switch {
	case !Eligible(score):
		return decimal.Zero, false
	case score.LessThanOrEqual(premiumThreshold):
		return standardMultiplier, true
	default:
		return premiumMultiplier, true
	}
}

// Advance maps a score and average MRR to the maximum advance and eligibility.
func Advance(score, avgMRR decimal.Decimal) (decimal.Decimal, bool) {
	mult, eligible := Multiplier(score)
	if !eligible {
		return decimal.Zero, false
	}
	return avgMRR.Mul(mult).Round(2), true
}
