package api

import (
	"carebook/internal/model"

	"github.com/gofiber/fiber/v2"
)

// PregnancyTracker returns the full tracker: progress, milestones, log
// entries, upcoming appointments and kick sessions.
func (h *Handler) PregnancyTracker(c *fiber.Ctx) error {
	tracker, err := h.pregnancy.Tracker(c.Context())
	if err != nil {
		return h.serviceError(c, err)
	}
	return c.JSON(tracker)
}

func (h *Handler) SetPregnancy(c *fiber.Ctx) error {
	var data model.PregnancyData
	if err := c.BodyParser(&data); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	saved, err := h.pregnancy.SetPregnancy(c.Context(), data)
	if err != nil {
		return h.serviceError(c, err)
	}
	return c.JSON(saved)
}

func (h *Handler) AddPregnancyLogEntry(c *fiber.Ctx) error {
	var entry model.PregnancyLogEntry
	if err := c.BodyParser(&entry); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	created, err := h.pregnancy.AddLogEntry(c.Context(), entry)
	if err != nil {
		return h.serviceError(c, err)
	}
	return c.Status(201).JSON(created)
}

func (h *Handler) DeletePregnancyLogEntry(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid log entry ID"})
	}

	if err := h.pregnancy.DeleteLogEntry(c.Context(), id); err != nil {
		return h.serviceError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

func (h *Handler) StartKickSession(c *fiber.Ctx) error {
	session, err := h.pregnancy.StartKickSession(c.Context())
	if err != nil {
		return h.serviceError(c, err)
	}
	return c.Status(201).JSON(session)
}

func (h *Handler) RecordKick(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid session ID"})
	}

	session, err := h.pregnancy.RecordKick(c.Context(), id)
	if err != nil {
		return h.serviceError(c, err)
	}
	return c.JSON(session)
}

func (h *Handler) EndKickSession(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid session ID"})
	}

	session, err := h.pregnancy.EndKickSession(c.Context(), id)
	if err != nil {
		return h.serviceError(c, err)
	}
	return c.JSON(session)
}

// PregnancyInsight writes an encouraging note for the current week.
func (h *Handler) PregnancyInsight(c *fiber.Ctx) error {
	if err := h.limiter.CheckAnalysis(c.Context(), c.IP()); err != nil {
		return h.serviceError(c, err)
	}

	tracker, err := h.pregnancy.Tracker(c.Context())
	if err != nil {
		return h.serviceError(c, err)
	}

	week := tracker.Progress.CurrentWeek
	text, err := h.insight.WeeklyPregnancyInsight(c.Context(), week)
	h.telemetry.RecordAnalysisRequest(c.Context(), "pregnancy", err == nil)
	if err != nil {
		return h.serviceError(c, err)
	}
	return c.JSON(fiber.Map{"week": week, "insight": text})
}
