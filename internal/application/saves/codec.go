package saves

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"empire-builder/internal/domain"
)

// ErrEmptyPayload is returned by Decode for a zero-length record.
var ErrEmptyPayload = errors.New("empty save payload")

// Encode serializes the full state.
func Encode(st *domain.SimulationState) ([]byte, error) {
	b, err := json.Marshal(st)
	if err != nil {
		return nil, fmt.Errorf("encode save: %w", err)
	}
	return b, nil
}

// Decode parses a record over first-run defaults, so fields missing from older
// saves keep their default, then reconciles holdings against the catalog.
func Decode(b []byte, cat domain.Catalog, now time.Time) (*domain.SimulationState, error) {
	if len(b) == 0 {
		return nil, ErrEmptyPayload
	}
	st := domain.NewState(cat, now)
	st.Holdings = nil
	if err := json.Unmarshal(b, st); err != nil {
		return nil, fmt.Errorf("decode save: %w", err)
	}
	if !(st.PrestigeMultiplier >= 1) {
		st.PrestigeMultiplier = 1
	}
	cat.Reconcile(st)
	return st, nil
}
