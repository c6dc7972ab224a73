package api

import (
	"carebook/internal/model"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) ListWellnessEntries(c *fiber.Ctx) error {
	entries, err := h.wellness.ListEntries(c.Context())
	if err != nil {
		return h.serviceError(c, err)
	}
	return c.JSON(fiber.Map{"entries": entries})
}

func (h *Handler) TodayWellnessEntry(c *fiber.Ctx) error {
	entry, err := h.wellness.TodayEntry(c.Context())
	if err != nil {
		return h.serviceError(c, err)
	}
	return c.JSON(entry)
}

func (h *Handler) LogWellnessEntry(c *fiber.Ctx) error {
	var entry model.WellnessEntry
	if err := c.BodyParser(&entry); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	created, err := h.wellness.LogEntry(c.Context(), entry)
	if err != nil {
		return h.serviceError(c, err)
	}
	return c.Status(201).JSON(created)
}

// QuickLogWellness records a mood-only entry for the profile owner.
func (h *Handler) QuickLogWellness(c *fiber.Ctx) error {
	var req struct {
		Mood model.Mood `json:"mood"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Mood == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Mood is required"})
	}

	entry, err := h.wellness.QuickLog(c.Context(), req.Mood)
	if err != nil {
		return h.serviceError(c, err)
	}
	return c.Status(201).JSON(entry)
}

func (h *Handler) UpdateWellnessEntry(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid entry ID"})
	}

	var entry model.WellnessEntry
	if err := c.BodyParser(&entry); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	entry.ID = id

	updated, err := h.wellness.UpdateEntry(c.Context(), entry)
	if err != nil {
		return h.serviceError(c, err)
	}
	return c.JSON(updated)
}

func (h *Handler) DeleteWellnessEntry(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid entry ID"})
	}

	if err := h.wellness.DeleteEntry(c.Context(), id); err != nil {
		return h.serviceError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

// WellnessInsight asks the model to comment on recent entries against the
// user's wellness goals.
func (h *Handler) WellnessInsight(c *fiber.Ctx) error {
	if err := h.limiter.CheckAnalysis(c.Context(), c.IP()); err != nil {
		return h.serviceError(c, err)
	}

	entries, err := h.wellness.ListEntries(c.Context())
	if err != nil {
		return h.serviceError(c, err)
	}
	if len(entries) > 7 {
		entries = entries[:7]
	}

	appSettings, err := h.settings.Get(c.Context())
	if err != nil {
		return h.serviceError(c, err)
	}

	text, err := h.insight.WellnessInsight(c.Context(), entries, appSettings.Wellness)
	h.telemetry.RecordAnalysisRequest(c.Context(), "wellness", err == nil)
	if err != nil {
		return h.serviceError(c, err)
	}
	return c.JSON(fiber.Map{"insight": text})
}
