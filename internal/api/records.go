package api

import (
	"fmt"
	"io"

	"carebook/internal/model"
	"carebook/internal/util"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// maxUploadSize caps document uploads at 10MB.
const maxUploadSize = 10 * 1024 * 1024

func (h *Handler) ListDocuments(c *fiber.Ctx) error {
	documents, err := h.records.ListDocuments(c.Context())
	if err != nil {
		return h.serviceError(c, err)
	}
	return c.JSON(fiber.Map{"documents": documents})
}

func (h *Handler) GetDocument(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid document ID"})
	}

	doc, err := h.records.GetDocument(c.Context(), id)
	if err != nil {
		return h.serviceError(c, err)
	}
	return c.JSON(doc)
}

// UploadDocument accepts multipart form data: metadata fields plus an
// optional file part.
func (h *Handler) UploadDocument(c *fiber.Ctx) error {
	doc, err := documentFromForm(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	content, contentType, closeFn, err := openUpload(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	if closeFn != nil {
		defer closeFn()
	}

	created, err := h.records.UploadDocument(c.Context(), doc, content, contentType)
	h.telemetry.RecordDocumentUpload(c.Context(), doc.Category, err == nil)
	if err != nil {
		return h.serviceError(c, err)
	}
	return c.Status(201).JSON(created)
}

func (h *Handler) UpdateDocument(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid document ID"})
	}

	doc, err := documentFromForm(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	doc.ID = id

	content, contentType, closeFn, err := openUpload(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	if closeFn != nil {
		defer closeFn()
	}

	updated, err := h.records.UpdateDocument(c.Context(), doc, content, contentType)
	if err != nil {
		return h.serviceError(c, err)
	}
	return c.JSON(updated)
}

func (h *Handler) DeleteDocument(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid document ID"})
	}

	if err := h.records.DeleteDocument(c.Context(), id); err != nil {
		return h.serviceError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

func (h *Handler) DocumentURL(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid document ID"})
	}

	doc, err := h.records.GetDocument(c.Context(), id)
	if err != nil {
		return h.serviceError(c, err)
	}
	if !doc.StorageKey.IsSet {
		return c.Status(404).JSON(fiber.Map{"error": "No file associated with this document"})
	}

	url, err := h.records.DocumentURL(c.Context(), id)
	if err != nil {
		return h.serviceError(c, err)
	}
	return c.JSON(fiber.Map{"url": url})
}

func (h *Handler) DownloadDocument(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid document ID"})
	}

	doc, rc, err := h.records.OpenDocument(c.Context(), id)
	if err != nil {
		return h.serviceError(c, err)
	}
	defer rc.Close()

	c.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, doc.FileName))
	return c.SendStream(rc)
}

// AnalyzeDocument runs the AI lab-report analysis over a stored document.
func (h *Handler) AnalyzeDocument(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid document ID"})
	}

	if err := h.limiter.CheckAnalysis(c.Context(), c.IP()); err != nil {
		return h.serviceError(c, err)
	}

	doc, rc, err := h.records.OpenDocument(c.Context(), id)
	if err != nil {
		return h.serviceError(c, err)
	}
	defer rc.Close()

	mimeType := c.Query("mime_type", "application/pdf")
	result, err := h.insight.AnalyzeDocument(c.Context(), doc, rc, mimeType)
	h.telemetry.RecordAnalysisRequest(c.Context(), "document", err == nil)
	if err != nil {
		return h.serviceError(c, err)
	}
	return c.JSON(result)
}

func documentFromForm(c *fiber.Ctx) (model.DocumentItem, error) {
	doc := model.DocumentItem{
		Title:    c.FormValue("title"),
		Category: c.FormValue("category"),
		FileName: c.FormValue("file_name"),
	}

	if raw := c.FormValue("family_member_id"); raw != "" {
		memberID, err := uuid.Parse(raw)
		if err != nil {
			return model.DocumentItem{}, fmt.Errorf("invalid family member ID")
		}
		doc.FamilyMemberID = util.Some(memberID)
	}

	if raw := c.FormValue("upload_date"); raw != "" {
		date, err := model.ParseDate(raw)
		if err != nil {
			return model.DocumentItem{}, fmt.Errorf("invalid upload date")
		}
		doc.UploadDate = date
	}

	return doc, nil
}

// openUpload returns the uploaded file content, or a nil reader when the
// request carries no file part.
func openUpload(c *fiber.Ctx) (io.Reader, string, func() error, error) {
	file, err := c.FormFile("file")
	if err != nil {
		return nil, "", nil, nil
	}
	if file.Size > maxUploadSize {
		return nil, "", nil, fmt.Errorf("file too large (max 10MB)")
	}

	src, err := file.Open()
	if err != nil {
		return nil, "", nil, fmt.Errorf("failed to open uploaded file")
	}
	return src, file.Header.Get("Content-Type"), src.Close, nil
}

func (h *Handler) ListPrescriptions(c *fiber.Ctx) error {
	prescriptions, err := h.records.ListPrescriptions(c.Context())
	if err != nil {
		return h.serviceError(c, err)
	}
	return c.JSON(fiber.Map{"prescriptions": prescriptions})
}

func (h *Handler) GetPrescription(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid prescription ID"})
	}

	rx, err := h.records.GetPrescription(c.Context(), id)
	if err != nil {
		return h.serviceError(c, err)
	}
	return c.JSON(rx)
}

func (h *Handler) CreatePrescription(c *fiber.Ctx) error {
	var rx model.Prescription
	if err := c.BodyParser(&rx); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	created, err := h.records.CreatePrescription(c.Context(), rx)
	if err != nil {
		return h.serviceError(c, err)
	}
	return c.Status(201).JSON(created)
}

func (h *Handler) UpdatePrescription(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid prescription ID"})
	}

	var rx model.Prescription
	if err := c.BodyParser(&rx); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	rx.ID = id

	updated, err := h.records.UpdatePrescription(c.Context(), rx)
	if err != nil {
		return h.serviceError(c, err)
	}
	return c.JSON(updated)
}

func (h *Handler) DeletePrescription(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid prescription ID"})
	}

	if err := h.records.DeletePrescription(c.Context(), id); err != nil {
		return h.serviceError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

// ToggleAdherence flips the taken/skipped status for one calendar day.
func (h *Handler) ToggleAdherence(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid prescription ID"})
	}

	var req struct {
		Date   model.Date            `json:"date"`
		Status model.AdherenceStatus `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Status != model.AdherenceTaken && req.Status != model.AdherenceSkipped {
		return c.Status(400).JSON(fiber.Map{"error": "Status must be taken or skipped"})
	}

	rx, err := h.records.ToggleAdherence(c.Context(), id, req.Date, req.Status)
	if err != nil {
		return h.serviceError(c, err)
	}
	return c.JSON(rx)
}

func (h *Handler) ListAppointments(c *fiber.Ctx) error {
	appointments, err := h.records.ListAppointments(c.Context())
	if err != nil {
		return h.serviceError(c, err)
	}
	return c.JSON(fiber.Map{"appointments": appointments})
}

func (h *Handler) CreateAppointment(c *fiber.Ctx) error {
	var apt model.Appointment
	if err := c.BodyParser(&apt); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	created, err := h.records.CreateAppointment(c.Context(), apt)
	if err != nil {
		return h.serviceError(c, err)
	}
	return c.Status(201).JSON(created)
}

func (h *Handler) UpdateAppointment(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid appointment ID"})
	}

	var apt model.Appointment
	if err := c.BodyParser(&apt); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	apt.ID = id

	updated, err := h.records.UpdateAppointment(c.Context(), apt)
	if err != nil {
		return h.serviceError(c, err)
	}
	return c.JSON(updated)
}

func (h *Handler) DeleteAppointment(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid appointment ID"})
	}

	if err := h.records.DeleteAppointment(c.Context(), id); err != nil {
		return h.serviceError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

func (h *Handler) ListNotes(c *fiber.Ctx) error {
	notes, err := h.records.ListNotes(c.Context())
	if err != nil {
		return h.serviceError(c, err)
	}
	return c.JSON(fiber.Map{"notes": notes})
}

func (h *Handler) CreateNote(c *fiber.Ctx) error {
	var note model.MedicalNote
	if err := c.BodyParser(&note); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	created, err := h.records.CreateNote(c.Context(), note)
	if err != nil {
		return h.serviceError(c, err)
	}
	return c.Status(201).JSON(created)
}

func (h *Handler) UpdateNote(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid note ID"})
	}

	var note model.MedicalNote
	if err := c.BodyParser(&note); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	note.ID = id

	updated, err := h.records.UpdateNote(c.Context(), note)
	if err != nil {
		return h.serviceError(c, err)
	}
	return c.JSON(updated)
}

func (h *Handler) DeleteNote(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid note ID"})
	}

	if err := h.records.DeleteNote(c.Context(), id); err != nil {
		return h.serviceError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

func (h *Handler) ListVitals(c *fiber.Ctx) error {
	memberID, ok := parseID(c)
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid member ID"})
	}

	vitals, err := h.records.ListVitalsByMember(c.Context(), memberID)
	if err != nil {
		return h.serviceError(c, err)
	}
	return c.JSON(fiber.Map{"vitals": vitals})
}

func (h *Handler) CreateVital(c *fiber.Ctx) error {
	var vital model.VitalSign
	if err := c.BodyParser(&vital); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	created, err := h.records.CreateVital(c.Context(), vital)
	if err != nil {
		return h.serviceError(c, err)
	}
	return c.Status(201).JSON(created)
}

func (h *Handler) UpdateVital(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid vital sign ID"})
	}

	var vital model.VitalSign
	if err := c.BodyParser(&vital); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	vital.ID = id

	updated, err := h.records.UpdateVital(c.Context(), vital)
	if err != nil {
		return h.serviceError(c, err)
	}
	return c.JSON(updated)
}

func (h *Handler) DeleteVital(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid vital sign ID"})
	}

	if err := h.records.DeleteVital(c.Context(), id); err != nil {
		return h.serviceError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

func (h *Handler) ListVaccinations(c *fiber.Ctx) error {
	memberID, ok := parseID(c)
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid member ID"})
	}

	vaccinations, err := h.records.ListVaccinationsByMember(c.Context(), memberID)
	if err != nil {
		return h.serviceError(c, err)
	}
	return c.JSON(fiber.Map{"vaccinations": vaccinations})
}

func (h *Handler) CreateVaccination(c *fiber.Ctx) error {
	var rec model.VaccinationRecord
	if err := c.BodyParser(&rec); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	created, err := h.records.CreateVaccination(c.Context(), rec)
	if err != nil {
		return h.serviceError(c, err)
	}
	return c.Status(201).JSON(created)
}

func (h *Handler) UpdateVaccination(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid vaccination ID"})
	}

	var rec model.VaccinationRecord
	if err := c.BodyParser(&rec); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	rec.ID = id

	updated, err := h.records.UpdateVaccination(c.Context(), rec)
	if err != nil {
		return h.serviceError(c, err)
	}
	return c.JSON(updated)
}

func (h *Handler) DeleteVaccination(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid vaccination ID"})
	}

	if err := h.records.DeleteVaccination(c.Context(), id); err != nil {
		return h.serviceError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

func (h *Handler) ListConditions(c *fiber.Ctx) error {
	memberID, ok := parseID(c)
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid member ID"})
	}

	conditions, err := h.records.ListConditionsByMember(c.Context(), memberID)
	if err != nil {
		return h.serviceError(c, err)
	}
	return c.JSON(fiber.Map{"conditions": conditions})
}

func (h *Handler) CreateCondition(c *fiber.Ctx) error {
	var cond model.Condition
	if err := c.BodyParser(&cond); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	created, err := h.records.CreateCondition(c.Context(), cond)
	if err != nil {
		return h.serviceError(c, err)
	}
	return c.Status(201).JSON(created)
}

func (h *Handler) UpdateCondition(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid condition ID"})
	}

	var cond model.Condition
	if err := c.BodyParser(&cond); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	cond.ID = id

	updated, err := h.records.UpdateCondition(c.Context(), cond)
	if err != nil {
		return h.serviceError(c, err)
	}
	return c.JSON(updated)
}

func (h *Handler) DeleteCondition(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid condition ID"})
	}

	if err := h.records.DeleteCondition(c.Context(), id); err != nil {
		return h.serviceError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}
