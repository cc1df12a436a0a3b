package economy

import (
	"context"
	"math"
	"sync"

	"empire-builder/internal/domain"

	"github.com/rs/zerolog/log"
)

// Persister is the durable side the engine flushes to.
type Persister interface {
	Save(ctx context.Context, st *domain.SimulationState) error
	Wipe(ctx context.Context) (*domain.SimulationState, error)
}

// Engine owns the one SimulationState. Every operation holds mu for its whole
// run, so callers never observe a half-applied tick, purchase or reset.
type Engine struct {
	mu      sync.Mutex
	catalog domain.Catalog
	state   *domain.SimulationState
	store   Persister
}

func NewEngine(cat domain.Catalog, st *domain.SimulationState, store Persister) *Engine {
	cat.Reconcile(st)
	return &Engine{catalog: cat, state: st, store: store}
}

// Catalog returns the immutable asset catalog.
func (e *Engine) Catalog() domain.Catalog {
	return e.catalog
}

// State returns a copy of the current state.
func (e *Engine) State() *domain.SimulationState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Clone()
}

func (e *Engine) cpsLocked() float64 {
	return CPS(e.catalog, e.state.Holdings, e.state.PrestigeMultiplier)
}

// Tick accrues passive income for dt seconds and returns the amount credited.
// Zero, negative or NaN dt credits nothing.
func (e *Engine) Tick(dt float64) float64 {
	if !(dt > 0) {
		return 0
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	cps := e.cpsLocked()
	if cps <= 0 {
		return 0
	}
	income := cps * dt
	e.state.Credit(income)
	return income
}

// Click applies one manual action and returns its value.
func (e *Engine) Click() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	v := ClickValue(e.cpsLocked(), e.state.PrestigeMultiplier)
	e.state.Credit(v)
	e.state.ManualActions++
	return v
}

// Credit adds externally granted currency. Non-positive or non-finite amounts
// are refused and leave the state untouched.
func (e *Engine) Credit(amount float64) bool {
	if !(amount > 0) || math.IsInf(amount, 0) {
		return false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state.Credit(amount)
	return true
}

// Buy purchases one unit of asset id. It returns false without touching the
// state when the id is unknown or the wallet cannot cover the next cost.
func (e *Engine) Buy(id int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if id < 0 || id >= len(e.catalog) || id >= len(e.state.Holdings) {
		return false
	}
	h := &e.state.Holdings[id]
	if e.state.Wallet < h.NextCost {
		return false
	}
	paid := h.NextCost
	e.state.Wallet -= paid
	h.Owned++
	h.NextCost = domain.CostFor(e.catalog[id].BaseCost, h.Owned)
	log.Debug().
		Int("asset_id", id).
		Str("asset", e.catalog[id].Name).
		Float64("paid", paid).
		Int("owned", h.Owned).
		Float64("next_cost", h.NextCost).
		Msg("Asset purchased")
	return true
}

// PrestigePreview returns the multiplier gain a reset would grant right now.
func (e *Engine) PrestigePreview() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return PrestigeGain(e.state.LifetimeEarned)
}

// PrestigeResult describes one prestige attempt.
type PrestigeResult struct {
	Applied bool    `json:"applied"`
	Gain    float64 `json:"gain"`
	Saved   bool    `json:"saved"`
}

// Prestige trades the run for a permanent multiplier when the gain is at least 1.
// The new state is saved before the lock is released; a failed save is logged
// and reported but does not undo the reset.
func (e *Engine) Prestige(ctx context.Context) PrestigeResult {
	e.mu.Lock()
	defer e.mu.Unlock()
	gain := PrestigeGain(e.state.LifetimeEarned)
	if !(gain >= 1) {
		return PrestigeResult{Gain: gain}
	}
	e.state.PrestigeMultiplier += gain
	e.state.Wallet = 0
	e.state.LifetimeEarned = 0
	e.state.Holdings = e.catalog.FreshHoldings()

	res := PrestigeResult{Applied: true, Gain: gain, Saved: true}
	if err := e.store.Save(ctx, e.state); err != nil {
		res.Saved = false
		log.Error().Err(err).Float64("gain", gain).Msg("Prestige applied but save failed")
	} else {
		log.Info().Float64("gain", gain).Float64("multiplier", e.state.PrestigeMultiplier).Msg("Prestige applied")
	}
	return res
}

// Save flushes the current state.
func (e *Engine) Save(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store.Save(ctx, e.state)
}

// Wipe deletes the durable record and restarts from a first-run state. The
// lock is held across both steps so no autosave can resurrect the old record.
func (e *Engine) Wipe(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	fresh, err := e.store.Wipe(ctx)
	if err != nil {
		return err
	}
	e.catalog.Reconcile(fresh)
	e.state = fresh
	return nil
}
