package api

import (
	"github.com/gofiber/fiber/v2"
)

func (h *Handler) DashboardOverview(c *fiber.Ctx) error {
	overview, err := h.dashboard.Overview(c.Context())
	if err != nil {
		return h.serviceError(c, err)
	}
	return c.JSON(overview)
}

func (h *Handler) ActionItems(c *fiber.Ctx) error {
	items, err := h.dashboard.ActionItems(c.Context())
	if err != nil {
		return h.serviceError(c, err)
	}
	return c.JSON(fiber.Map{"action_items": items})
}

func (h *Handler) UpcomingAppointments(c *fiber.Ctx) error {
	appointments, err := h.dashboard.UpcomingAppointments(c.Context())
	if err != nil {
		return h.serviceError(c, err)
	}
	return c.JSON(fiber.Map{"appointments": appointments})
}

func (h *Handler) RecentActivity(c *fiber.Ctx) error {
	activity, err := h.dashboard.RecentActivity(c.Context())
	if err != nil {
		return h.serviceError(c, err)
	}
	return c.JSON(fiber.Map{"activity": activity})
}

func (h *Handler) MemberTimeline(c *fiber.Ctx) error {
	memberID, ok := parseID(c)
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid member ID"})
	}

	events, err := h.timeline.MemberTimeline(c.Context(), memberID)
	if err != nil {
		return h.serviceError(c, err)
	}
	return c.JSON(fiber.Map{"events": events})
}

// Search matches members, documents, prescriptions and conditions against
// a free-text term.
func (h *Handler) Search(c *fiber.Ctx) error {
	results, err := h.search.Search(c.Context(), c.Query("q"))
	if err != nil {
		return h.serviceError(c, err)
	}
	return c.JSON(fiber.Map{"results": results})
}

// DueReminders scans for newly due reminders. Each key fires once per day.
func (h *Handler) DueReminders(c *fiber.Ctx) error {
	reminders, err := h.reminders.DueReminders(c.Context())
	if err != nil {
		return h.serviceError(c, err)
	}
	return c.JSON(fiber.Map{"reminders": reminders})
}

// RecentNotifications lists reminders the background scanner already
// delivered, newest first.
func (h *Handler) RecentNotifications(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"notifications": h.notifier.Recent()})
}
