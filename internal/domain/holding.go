package domain

import "math"

// CostGrowth is the per-unit price growth applied to every asset.
const CostGrowth = 1.15

// AssetHolding is the ownership record for one catalog asset.
// JSON names follow the save format ("businesses" entries).
type AssetHolding struct {
	ID       int     `json:"id"`
	Owned    int     `json:"count"`
	NextCost float64 `json:"cost"`
}

// CostFor returns ceil(baseCost * 1.15^owned).
func CostFor(baseCost float64, owned int) float64 {
	return math.Ceil(baseCost * math.Pow(CostGrowth, float64(owned)))
}
