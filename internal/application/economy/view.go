package economy

import (
	"math"
	"strconv"
)

// AssetView is one catalog row as the presentation layer sees it.
type AssetView struct {
	ID              int     `json:"id"`
	Name            string  `json:"name"`
	Owned           int     `json:"owned"`
	NextCost        float64 `json:"next_cost"`
	IncomePerSecond float64 `json:"income_per_second"`
	Unlocked        bool    `json:"unlocked"`
	Affordable      bool    `json:"affordable"`
	CostDisplay     string  `json:"cost_display"`
	IncomeDisplay   string  `json:"income_display"`
}

// View is a read-only snapshot of the state plus everything derived from it.
type View struct {
	Wallet             float64     `json:"wallet"`
	LifetimeEarned     float64     `json:"lifetime_earned"`
	CPS                float64     `json:"cps"`
	ClickValue         float64     `json:"click_value"`
	ManualActions      int64       `json:"manual_actions"`
	PrestigeMultiplier float64     `json:"prestige_multiplier"`
	PrestigePreview    float64     `json:"prestige_preview"`
	PrestigeAvailable  bool        `json:"prestige_available"`
	WalletDisplay      string      `json:"wallet_display"`
	CPSDisplay         string      `json:"cps_display"`
	Assets             []AssetView `json:"assets"`
}

// View projects the current state. Unlock flags are recomputed every call.
func (e *Engine) View() View {
	e.mu.Lock()
	defer e.mu.Unlock()

	st := e.state
	cps := e.cpsLocked()
	preview := PrestigeGain(st.LifetimeEarned)
	v := View{
		Wallet:             st.Wallet,
		LifetimeEarned:     st.LifetimeEarned,
		CPS:                cps,
		ClickValue:         ClickValue(cps, st.PrestigeMultiplier),
		ManualActions:      st.ManualActions,
		PrestigeMultiplier: st.PrestigeMultiplier,
		PrestigePreview:    preview,
		PrestigeAvailable:  preview >= 1,
		WalletDisplay:      FormatMoney(st.Wallet),
		CPSDisplay:         FormatMoney(cps),
		Assets:             make([]AssetView, 0, len(e.catalog)),
	}
	for i, def := range e.catalog {
		h := st.Holdings[i]
		income := def.BaseIncome * st.PrestigeMultiplier
		v.Assets = append(v.Assets, AssetView{
			ID:              def.ID,
			Name:            def.Name,
			Owned:           h.Owned,
			NextCost:        h.NextCost,
			IncomePerSecond: income,
			Unlocked:        Unlocked(st.Holdings, i),
			Affordable:      st.Wallet >= h.NextCost,
			CostDisplay:     FormatMoney(h.NextCost),
			IncomeDisplay:   FormatMoney(income),
		})
	}
	return v
}

// FormatMoney renders amounts the way the game UI shows them: whole units
// below a thousand, then two decimals with a k/m/b/t suffix.
func FormatMoney(n float64) string {
	switch {
	case n < 1e3:
		return strconv.FormatFloat(math.Floor(n), 'f', 0, 64)
	case n < 1e6:
		return strconv.FormatFloat(n/1e3, 'f', 2, 64) + "k"
	case n < 1e9:
		return strconv.FormatFloat(n/1e6, 'f', 2, 64) + "m"
	case n < 1e12:
		return strconv.FormatFloat(n/1e9, 'f', 2, 64) + "b"
	default:
		return strconv.FormatFloat(n/1e12, 'f', 2, 64) + "t"
	}
}
