package domain

import "time"

// SimulationState is the whole mutable game state. The JSON shape is the
// save format and stays compatible with records written by the browser build.
type SimulationState struct {
	Wallet             float64        `json:"money"`
	LifetimeEarned     float64        `json:"totalMoneyEarned"`
	StartTime          int64          `json:"startTime"`
	ManualActions      int64          `json:"clickCount"`
	PrestigeMultiplier float64        `json:"prestigeMultiplier"`
	Holdings           []AssetHolding `json:"businesses"`
}

// NewState returns a first-run state for the catalog.
func NewState(c Catalog, now time.Time) *SimulationState {
	return &SimulationState{
		StartTime:          now.UnixMilli(),
		PrestigeMultiplier: 1,
		Holdings:           c.FreshHoldings(),
	}
}

// Clone returns a deep copy.
func (s *SimulationState) Clone() *SimulationState {
	cp := *s
	cp.Holdings = append([]AssetHolding(nil), s.Holdings...)
	return &cp
}

// Credit adds amount to both the wallet and the lifetime total. It is the only
// way currency enters the state.
func (s *SimulationState) Credit(amount float64) {
	s.Wallet += amount
	s.LifetimeEarned += amount
}
