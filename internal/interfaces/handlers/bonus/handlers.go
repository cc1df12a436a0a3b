package bonus

import (
	bonussvc "empire-builder/internal/application/bonus"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

type Handlers struct {
	Issuer *bonussvc.Issuer
}

// DailyBonus GET /api/daily-bonus. The body is the bare grant, not the
// response envelope; the bonus gateway reads "bonus" at the top level.
func (h *Handlers) DailyBonus(c *fiber.Ctx) error {
	if !h.Issuer.Allow(c.IP()) {
		return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
			"message": "Bonus already claimed, try again later",
		})
	}
	g := h.Issuer.Issue()
	log.Debug().Str("ip", c.IP()).Int("bonus", g.Bonus).Msg("Bonus issued")
	return c.JSON(g)
}
