package bonus

import (
	"context"
	"errors"
	"strconv"

	"github.com/rs/zerolog/log"
)

// GenericNotice is shown when the issuer gave no message of its own.
const GenericNotice = "Server error."

// Crediter is the engine's external-income entry point.
type Crediter interface {
	Credit(amount float64) bool
}

// Result is what the player sees after a claim.
type Result struct {
	Granted bool    `json:"granted"`
	Amount  float64 `json:"bonus"`
	Notice  string  `json:"notice"`
}

// Service claims a bonus and credits it. Failures never change state.
type Service struct {
	Gateway Gateway
	Engine  Crediter
}

// Claim performs one gateway request without holding the engine lock; only
// the credit itself is serialized with the tick loop.
func (s *Service) Claim(ctx context.Context) Result {
	amount, err := s.Gateway.Claim(ctx)
	if err != nil {
		var rejected *RejectedError
		notice := GenericNotice
		if errors.As(err, &rejected) && rejected.Message != "" {
			notice = rejected.Message
		}
		log.Warn().Err(err).Str("notice", notice).Msg("Bonus claim failed")
		return Result{Notice: notice}
	}
	if !s.Engine.Credit(amount) {
		log.Warn().Float64("bonus", amount).Msg("Bonus amount refused")
		return Result{Notice: GenericNotice}
	}
	log.Info().Float64("bonus", amount).Msg("Bonus credited")
	return Result{
		Granted: true,
		Amount:  amount,
		Notice:  "Server granted you $" + strconv.FormatFloat(amount, 'f', -1, 64) + "!",
	}
}
