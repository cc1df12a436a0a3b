package saves

import (
	"context"
	"errors"

	"empire-builder/internal/domain"
	"empire-builder/internal/infrastructure/store"
	"empire-builder/internal/pkg/clock"

	"github.com/rs/zerolog/log"
)

// Service is the persistence adapter between the engine state and a Store.
type Service struct {
	Store   store.Store
	Catalog domain.Catalog
	Clock   clock.Clock
}

// Load returns the saved state reconciled against the catalog. A missing,
// unreadable or corrupt record yields a first-run state; Load never fails.
func (s *Service) Load(ctx context.Context) *domain.SimulationState {
	now := s.Clock.Now()
	b, err := s.Store.Read(ctx)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Info().Msg("No save found, starting fresh")
		} else {
			log.Warn().Err(err).Msg("Save unreadable, starting fresh")
		}
		return domain.NewState(s.Catalog, now)
	}
	st, err := Decode(b, s.Catalog, now)
	if err != nil {
		log.Warn().Err(err).Int("bytes", len(b)).Msg("Save corrupt, starting fresh")
		return domain.NewState(s.Catalog, now)
	}
	log.Info().
		Float64("money", st.Wallet).
		Float64("prestige_multiplier", st.PrestigeMultiplier).
		Int("holdings", len(st.Holdings)).
		Msg("Save loaded")
	return st
}

// Save writes the full state as one record.
func (s *Service) Save(ctx context.Context, st *domain.SimulationState) error {
	b, err := Encode(st)
	if err != nil {
		return err
	}
	return s.Store.Write(ctx, b)
}

// Wipe deletes the record and returns the first-run state that replaces it.
func (s *Service) Wipe(ctx context.Context) (*domain.SimulationState, error) {
	if err := s.Store.Delete(ctx); err != nil {
		return nil, err
	}
	log.Info().Msg("Save wiped")
	return domain.NewState(s.Catalog, s.Clock.Now()), nil
}
