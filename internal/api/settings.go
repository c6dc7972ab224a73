package api

import (
	"encoding/json"

	"carebook/internal/model"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) GetSettings(c *fiber.Ctx) error {
	appSettings, err := h.settings.Get(c.Context())
	if err != nil {
		return h.serviceError(c, err)
	}
	return c.JSON(appSettings)
}

func (h *Handler) PutSettings(c *fiber.Ctx) error {
	var appSettings model.AppSettings
	if err := c.BodyParser(&appSettings); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := h.settings.Put(c.Context(), appSettings); err != nil {
		return h.serviceError(c, err)
	}
	return c.JSON(appSettings)
}

// PatchSettingsSection merges a partial update into one settings section
// (wellness, billing or dashboard).
func (h *Handler) PatchSettingsSection(c *fiber.Ctx) error {
	section := c.Params("section")

	payload := json.RawMessage(c.Body())
	if !json.Valid(payload) {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	updated, err := h.settings.UpdateSection(c.Context(), section, payload)
	if err != nil {
		return h.serviceError(c, err)
	}
	return c.JSON(updated)
}

func (h *Handler) ResetSettings(c *fiber.Ctx) error {
	if err := h.settings.Reset(c.Context()); err != nil {
		return h.serviceError(c, err)
	}

	appSettings, err := h.settings.Get(c.Context())
	if err != nil {
		return h.serviceError(c, err)
	}
	return c.JSON(appSettings)
}
