package economy

import (
	"context"
	"time"

	"empire-builder/internal/pkg/clock"

	"github.com/rs/zerolog/log"
)

const finalSaveTimeout = 5 * time.Second

// Loop drives the engine: one goroutine, one select, so ticks and autosaves
// run back to back and never overlap.
type Loop struct {
	Engine           *Engine
	Clock            clock.Clock
	TickInterval     time.Duration
	AutosaveInterval time.Duration
	// Publish, when set, receives the view after every tick. It must not block.
	Publish func(View)
}

// Run ticks until ctx is cancelled, then saves one last time.
func (l *Loop) Run(ctx context.Context) {
	tick := time.NewTicker(l.TickInterval)
	defer tick.Stop()
	autosave := time.NewTicker(l.AutosaveInterval)
	defer autosave.Stop()

	log.Info().
		Dur("tick_interval", l.TickInterval).
		Dur("autosave_interval", l.AutosaveInterval).
		Msg("Game loop started")

	last := l.Clock.Now()
	for {
		select {
		case <-ctx.Done():
			saveCtx, cancel := context.WithTimeout(context.Background(), finalSaveTimeout)
			l.autosave(saveCtx)
			cancel()
			log.Info().Msg("Game loop stopped")
			return
		case <-tick.C:
			last = l.Step(last)
		case <-autosave.C:
			l.autosave(ctx)
		}
	}
}

// Step accrues income for the wall time since last and returns the new mark.
// A clock that moved backwards yields a zero-length tick.
func (l *Loop) Step(last time.Time) time.Time {
	now := l.Clock.Now()
	l.Engine.Tick(now.Sub(last).Seconds())
	if l.Publish != nil {
		l.Publish(l.Engine.View())
	}
	return now
}

func (l *Loop) autosave(ctx context.Context) {
	if err := l.Engine.Save(ctx); err != nil {
		log.Warn().Err(err).Msg("Autosave failed")
		return
	}
	log.Debug().Msg("Autosaved")
}
