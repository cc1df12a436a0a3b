package game

import (
	bonussvc "empire-builder/internal/application/bonus"
	"empire-builder/internal/application/economy"
	"empire-builder/internal/middleware"
	"empire-builder/internal/pkg/response"
	"empire-builder/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

type Handlers struct {
	Engine *economy.Engine
	Bonus  *bonussvc.Service
}

// GET /api/v1/game/state
func (h *Handlers) State(c *fiber.Ctx) error {
	return response.Success(c, "Game state fetched successfully", h.Engine.View(), nil)
}

// POST /api/v1/game/click
func (h *Handlers) Click(c *fiber.Ctx) error {
	v := h.Engine.Click()
	return response.Success(c, "Click applied", fiber.Map{
		"click_value": v,
		"view":        h.Engine.View(),
	}, nil)
}

// POST /api/v1/game/buy. Unaffordable or unknown assets are a no-op.
func (h *Handlers) Buy(c *fiber.Ctx) error {
	var body struct {
		AssetID interface{} `json:"asset_id"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body", nil)
	}
	id, ok := validation.IsValidAssetID(body.AssetID)
	if !ok {
		return response.BadRequest(c, "asset_id must be a non-negative integer", nil)
	}
	purchased := h.Engine.Buy(id)
	msg := "Asset purchased"
	if !purchased {
		msg = "Purchase not possible"
	}
	return response.Success(c, msg, fiber.Map{
		"purchased": purchased,
		"view":      h.Engine.View(),
	}, nil)
}

// GET /api/v1/game/prestige
func (h *Handlers) PrestigePreview(c *fiber.Ctx) error {
	gain := h.Engine.PrestigePreview()
	return response.Success(c, "Prestige preview", fiber.Map{
		"gain":      gain,
		"available": gain >= 1,
	}, nil)
}

// POST /api/v1/game/prestige
func (h *Handlers) Prestige(c *fiber.Ctx) error {
	res := h.Engine.Prestige(c.UserContext())
	msg := "Prestige applied"
	if !res.Applied {
		msg = "Not enough lifetime earnings to prestige"
	}
	return response.Success(c, msg, fiber.Map{
		"applied": res.Applied,
		"gain":    res.Gain,
		"saved":   res.Saved,
		"view":    h.Engine.View(),
	}, nil)
}

// POST /api/v1/game/bonus. A failed claim is still a 200 with a notice.
func (h *Handlers) ClaimBonus(c *fiber.Ctx) error {
	res := h.Bonus.Claim(c.UserContext())
	return response.Success(c, res.Notice, fiber.Map{
		"granted": res.Granted,
		"bonus":   res.Amount,
		"notice":  res.Notice,
		"view":    h.Engine.View(),
	}, nil)
}

// POST /api/v1/game/save
func (h *Handlers) Save(c *fiber.Ctx) error {
	if err := h.Engine.Save(c.UserContext()); err != nil {
		log.Error().Err(err).Str("trace_id", middleware.GetTraceID(c)).Msg("Manual save failed")
		return response.Error(c, "Failed to save game", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Game saved", fiber.Map{"saved": true}, nil)
}

// DELETE /api/v1/game/save
func (h *Handlers) Wipe(c *fiber.Ctx) error {
	if err := h.Engine.Wipe(c.UserContext()); err != nil {
		log.Error().Err(err).Str("trace_id", middleware.GetTraceID(c)).Msg("Wipe failed")
		return response.Error(c, "Failed to wipe save", fiber.StatusInternalServerError, nil)
	}
	log.Info().Str("trace_id", middleware.GetTraceID(c)).Msg("Save wiped")
	return response.Success(c, "Save wiped", h.Engine.View(), nil)
}
