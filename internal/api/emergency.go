package api

import (
	"io"

	"carebook/internal/export"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) EmergencySheet(c *fiber.Ctx) error {
	sheet, err := h.emergency.Sheet(c.Context())
	if err != nil {
		return h.serviceError(c, err)
	}
	return c.JSON(sheet)
}

// ExportEmergencySheet streams the emergency sheet as a printable
// workbook.
func (h *Handler) ExportEmergencySheet(c *fiber.Ctx) error {
	sheet, err := h.emergency.Sheet(c.Context())
	if err != nil {
		return h.serviceError(c, err)
	}

	data, err := export.EmergencySheetWorkbook(sheet)
	if err != nil {
		return h.serviceError(c, err)
	}

	c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set("Content-Disposition", `attachment; filename="emergency_sheet.xlsx"`)
	return c.Send(data)
}

// AnalyzeImage answers a free-text question about an uploaded image.
func (h *Handler) AnalyzeImage(c *fiber.Ctx) error {
	if err := h.limiter.CheckAnalysis(c.Context(), c.IP()); err != nil {
		return h.serviceError(c, err)
	}

	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "No file uploaded"})
	}
	if file.Size > maxUploadSize {
		return c.Status(400).JSON(fiber.Map{"error": "File too large (max 10MB)"})
	}

	src, err := file.Open()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to open uploaded file"})
	}
	defer src.Close()

	image, err := io.ReadAll(src)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to read uploaded file"})
	}

	reply, err := h.insight.AnalyzeImage(c.Context(), c.FormValue("prompt"), image, file.Header.Get("Content-Type"))
	h.telemetry.RecordAnalysisRequest(c.Context(), "image", err == nil)
	if err != nil {
		return h.serviceError(c, err)
	}
	return c.JSON(fiber.Map{"insight": reply})
}

// CancelAnalysis aborts whatever AI analysis is in flight.
func (h *Handler) CancelAnalysis(c *fiber.Ctx) error {
	h.insight.Cancel()
	return c.JSON(fiber.Map{"success": true})
}
