package api

import (
	"carebook/internal/export"
	"carebook/internal/model"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) ListMembers(c *fiber.Ctx) error {
	members, err := h.family.ListMembers(c.Context())
	if err != nil {
		return h.serviceError(c, err)
	}
	return c.JSON(fiber.Map{"members": members})
}

func (h *Handler) GetMember(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid member ID"})
	}

	member, err := h.family.GetMember(c.Context(), id)
	if err != nil {
		return h.serviceError(c, err)
	}
	return c.JSON(member)
}

func (h *Handler) CreateMember(c *fiber.Ctx) error {
	var member model.FamilyMember
	if err := c.BodyParser(&member); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	created, err := h.family.CreateMember(c.Context(), member)
	if err != nil {
		return h.serviceError(c, err)
	}
	return c.Status(201).JSON(created)
}

func (h *Handler) UpdateMember(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid member ID"})
	}

	var member model.FamilyMember
	if err := c.BodyParser(&member); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	member.ID = id

	updated, err := h.family.UpdateMember(c.Context(), member)
	if err != nil {
		return h.serviceError(c, err)
	}
	return c.JSON(updated)
}

func (h *Handler) DeleteMember(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid member ID"})
	}

	if err := h.family.DeleteMember(c.Context(), id); err != nil {
		return h.serviceError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

// ExportFamily streams the family roster as a spreadsheet.
func (h *Handler) ExportFamily(c *fiber.Ctx) error {
	members, err := h.family.ListMembers(c.Context())
	if err != nil {
		return h.serviceError(c, err)
	}

	data, err := export.FamilyWorkbook(members)
	if err != nil {
		return h.serviceError(c, err)
	}

	c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set("Content-Disposition", `attachment; filename="family_members.xlsx"`)
	return c.Send(data)
}

// ExportMemberSummary streams one member's medical summary as a
// spreadsheet with conditions, prescriptions and notes.
func (h *Handler) ExportMemberSummary(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid member ID"})
	}

	member, err := h.family.GetMember(c.Context(), id)
	if err != nil {
		return h.serviceError(c, err)
	}

	conditions, err := h.records.ListConditionsByMember(c.Context(), id)
	if err != nil {
		return h.serviceError(c, err)
	}

	allPrescriptions, err := h.records.ListPrescriptions(c.Context())
	if err != nil {
		return h.serviceError(c, err)
	}
	var prescriptions []model.Prescription
	for _, rx := range allPrescriptions {
		if rx.FamilyMemberID == id {
			prescriptions = append(prescriptions, rx)
		}
	}

	allNotes, err := h.records.ListNotes(c.Context())
	if err != nil {
		return h.serviceError(c, err)
	}
	var notes []model.MedicalNote
	for _, note := range allNotes {
		if note.FamilyMemberID.IsSet && note.FamilyMemberID.Val == id {
			notes = append(notes, note)
		}
	}

	data, err := export.MemberSummaryWorkbook(member, conditions, prescriptions, notes)
	if err != nil {
		return h.serviceError(c, err)
	}

	c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set("Content-Disposition", `attachment; filename="member_summary.xlsx"`)
	return c.Send(data)
}

func (h *Handler) GetProfile(c *fiber.Ctx) error {
	profile, err := h.family.Profile(c.Context())
	if err != nil {
		return h.serviceError(c, err)
	}
	return c.JSON(profile)
}

func (h *Handler) UpdateProfile(c *fiber.Ctx) error {
	var profile model.UserProfile
	if err := c.BodyParser(&profile); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	updated, err := h.family.UpdateProfile(c.Context(), profile)
	if err != nil {
		return h.serviceError(c, err)
	}
	return c.JSON(updated)
}

func (h *Handler) ListContacts(c *fiber.Ctx) error {
	contacts, err := h.family.ListContacts(c.Context())
	if err != nil {
		return h.serviceError(c, err)
	}
	return c.JSON(fiber.Map{"contacts": contacts})
}

func (h *Handler) CreateContact(c *fiber.Ctx) error {
	var contact model.EmergencyContact
	if err := c.BodyParser(&contact); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	created, err := h.family.CreateContact(c.Context(), contact)
	if err != nil {
		return h.serviceError(c, err)
	}
	return c.Status(201).JSON(created)
}

func (h *Handler) UpdateContact(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid contact ID"})
	}

	var contact model.EmergencyContact
	if err := c.BodyParser(&contact); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	contact.ID = id

	updated, err := h.family.UpdateContact(c.Context(), contact)
	if err != nil {
		return h.serviceError(c, err)
	}
	return c.JSON(updated)
}

func (h *Handler) DeleteContact(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid contact ID"})
	}

	if err := h.family.DeleteContact(c.Context(), id); err != nil {
		return h.serviceError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}
