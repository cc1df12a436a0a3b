package economy

import (
	"math"

	"empire-builder/internal/domain"
)

const (
	// ClickCPSShare is the fraction of passive income added to every manual click.
	ClickCPSShare = 0.01
	// PrestigeDivisor scales lifetime earnings into prestige gain.
	PrestigeDivisor = 1_000_000
)

// CPS is Σ owned_i * baseIncome_i, scaled by the prestige multiplier.
// Holdings past the end of the catalog earn nothing.
func CPS(cat domain.Catalog, holdings []domain.AssetHolding, multiplier float64) float64 {
	var sum float64
	for i, h := range holdings {
		if i >= len(cat) {
			break
		}
		sum += float64(h.Owned) * cat[i].BaseIncome
	}
	return sum * multiplier
}

// ClickValue is the multiplier plus 1% of current CPS.
func ClickValue(cps, multiplier float64) float64 {
	return 1*multiplier + ClickCPSShare*cps
}

// PrestigeGain is sqrt(lifetimeEarned / 1e6). A reset only happens at >= 1.
func PrestigeGain(lifetimeEarned float64) float64 {
	if !(lifetimeEarned > 0) {
		return 0
	}
	return math.Sqrt(lifetimeEarned / PrestigeDivisor)
}

// Unlocked reports whether asset i is available: the first asset always is,
// every other one once its predecessor has been bought at least once.
func Unlocked(holdings []domain.AssetHolding, i int) bool {
	if i == 0 {
		return true
	}
	if i < 0 || i > len(holdings) {
		return false
	}
	return holdings[i-1].Owned > 0
}
