package api

import (
	"errors"
	"log/slog"
	"os"
	"time"

	"carebook/internal/insight"
	"carebook/internal/monitoring"
	"carebook/internal/notifications"
	"carebook/internal/repository"
	"carebook/internal/service"
	"carebook/internal/settings"

	playground "github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Handler exposes the application over a JSON API.
type Handler struct {
	family    *service.FamilyService
	records   *service.RecordService
	wellness  *service.WellnessService
	billing   *service.BillingService
	pregnancy *service.PregnancyService
	timeline  *service.TimelineService
	dashboard *service.DashboardService
	search    *service.SearchService
	emergency *service.EmergencyService
	reminders *service.ReminderService
	insight   *insight.Service
	settings  *settings.Store
	limiter   *service.RateLimiter
	notifier  *notifications.Notifier
	telemetry monitoring.Telemetry
	repo      repository.Repository
	logger    *slog.Logger
}

type HandlerParams struct {
	Family    *service.FamilyService
	Records   *service.RecordService
	Wellness  *service.WellnessService
	Billing   *service.BillingService
	Pregnancy *service.PregnancyService
	Timeline  *service.TimelineService
	Dashboard *service.DashboardService
	Search    *service.SearchService
	Emergency *service.EmergencyService
	Reminders *service.ReminderService
	Insight   *insight.Service
	Settings  *settings.Store
	Limiter   *service.RateLimiter
	Notifier  *notifications.Notifier
	Telemetry monitoring.Telemetry
	Repo      repository.Repository
	Logger    *slog.Logger
}

func NewHandler(p HandlerParams) *Handler {
	return &Handler{
		family:    p.Family,
		records:   p.Records,
		wellness:  p.Wellness,
		billing:   p.Billing,
		pregnancy: p.Pregnancy,
		timeline:  p.Timeline,
		dashboard: p.Dashboard,
		search:    p.Search,
		emergency: p.Emergency,
		reminders: p.Reminders,
		insight:   p.Insight,
		settings:  p.Settings,
		limiter:   p.Limiter,
		notifier:  p.Notifier,
		telemetry: p.Telemetry,
		repo:      p.Repo,
		logger:    p.Logger,
	}
}

// RegisterRoutes mounts every endpoint under /api.
func (h *Handler) RegisterRoutes(app *fiber.App) {
	api := app.Group("/api")

	api.Get("/health", h.Health)

	api.Get("/profile", h.GetProfile)
	api.Put("/profile", h.UpdateProfile)

	api.Get("/members", h.ListMembers)
	api.Post("/members", h.CreateMember)
	api.Get("/members/export", h.ExportFamily)
	api.Get("/members/:id", h.GetMember)
	api.Put("/members/:id", h.UpdateMember)
	api.Delete("/members/:id", h.DeleteMember)
	api.Get("/members/:id/export", h.ExportMemberSummary)
	api.Get("/members/:id/timeline", h.MemberTimeline)
	api.Get("/members/:id/vitals", h.ListVitals)
	api.Get("/members/:id/vaccinations", h.ListVaccinations)
	api.Get("/members/:id/conditions", h.ListConditions)

	api.Get("/contacts", h.ListContacts)
	api.Post("/contacts", h.CreateContact)
	api.Put("/contacts/:id", h.UpdateContact)
	api.Delete("/contacts/:id", h.DeleteContact)

	api.Get("/documents", h.ListDocuments)
	api.Post("/documents", h.UploadDocument)
	api.Get("/documents/:id", h.GetDocument)
	api.Put("/documents/:id", h.UpdateDocument)
	api.Delete("/documents/:id", h.DeleteDocument)
	api.Get("/documents/:id/url", h.DocumentURL)
	api.Get("/documents/:id/download", h.DownloadDocument)
	api.Post("/documents/:id/analyze", h.AnalyzeDocument)

	api.Get("/prescriptions", h.ListPrescriptions)
	api.Post("/prescriptions", h.CreatePrescription)
	api.Get("/prescriptions/:id", h.GetPrescription)
	api.Put("/prescriptions/:id", h.UpdatePrescription)
	api.Delete("/prescriptions/:id", h.DeletePrescription)
	api.Post("/prescriptions/:id/adherence", h.ToggleAdherence)

	api.Get("/appointments", h.ListAppointments)
	api.Post("/appointments", h.CreateAppointment)
	api.Put("/appointments/:id", h.UpdateAppointment)
	api.Delete("/appointments/:id", h.DeleteAppointment)

	api.Get("/notes", h.ListNotes)
	api.Post("/notes", h.CreateNote)
	api.Put("/notes/:id", h.UpdateNote)
	api.Delete("/notes/:id", h.DeleteNote)

	api.Post("/vitals", h.CreateVital)
	api.Put("/vitals/:id", h.UpdateVital)
	api.Delete("/vitals/:id", h.DeleteVital)

	api.Post("/vaccinations", h.CreateVaccination)
	api.Put("/vaccinations/:id", h.UpdateVaccination)
	api.Delete("/vaccinations/:id", h.DeleteVaccination)

	api.Post("/conditions", h.CreateCondition)
	api.Put("/conditions/:id", h.UpdateCondition)
	api.Delete("/conditions/:id", h.DeleteCondition)

	api.Get("/policies", h.ListPolicies)
	api.Post("/policies", h.CreatePolicy)
	api.Put("/policies/:id", h.UpdatePolicy)
	api.Delete("/policies/:id", h.DeletePolicy)

	api.Get("/bills", h.ListBills)
	api.Post("/bills", h.CreateBill)
	api.Get("/bills/:id", h.GetBill)
	api.Put("/bills/:id", h.UpdateBill)
	api.Delete("/bills/:id", h.DeleteBill)
	api.Post("/bills/:id/pay", h.PayBill)
	api.Post("/bills/:id/mark-paid", h.MarkBillPaid)

	api.Get("/claims", h.ListClaims)
	api.Post("/claims", h.SubmitClaim)
	api.Patch("/claims/:id/status", h.UpdateClaimStatus)

	api.Get("/wellness", h.ListWellnessEntries)
	api.Post("/wellness", h.LogWellnessEntry)
	api.Get("/wellness/today", h.TodayWellnessEntry)
	api.Post("/wellness/quick-log", h.QuickLogWellness)
	api.Post("/wellness/insight", h.WellnessInsight)
	api.Put("/wellness/:id", h.UpdateWellnessEntry)
	api.Delete("/wellness/:id", h.DeleteWellnessEntry)

	api.Get("/pregnancy", h.PregnancyTracker)
	api.Put("/pregnancy", h.SetPregnancy)
	api.Get("/pregnancy/insights", h.PregnancyInsight)
	api.Post("/pregnancy/log", h.AddPregnancyLogEntry)
	api.Delete("/pregnancy/log/:id", h.DeletePregnancyLogEntry)
	api.Post("/pregnancy/kicks", h.StartKickSession)
	api.Post("/pregnancy/kicks/:id/kick", h.RecordKick)
	api.Post("/pregnancy/kicks/:id/end", h.EndKickSession)

	api.Get("/dashboard", h.DashboardOverview)
	api.Get("/dashboard/action-items", h.ActionItems)
	api.Get("/dashboard/upcoming", h.UpcomingAppointments)
	api.Get("/dashboard/activity", h.RecentActivity)

	api.Get("/search", h.Search)
	api.Get("/reminders/due", h.DueReminders)
	api.Get("/notifications", h.RecentNotifications)

	api.Get("/settings", h.GetSettings)
	api.Put("/settings", h.PutSettings)
	api.Post("/settings/reset", h.ResetSettings)
	api.Patch("/settings/:section", h.PatchSettingsSection)

	api.Get("/emergency", h.EmergencySheet)
	api.Get("/emergency/export", h.ExportEmergencySheet)

	api.Post("/insight/analyze", h.AnalyzeImage)
	api.Post("/insight/cancel", h.CancelAnalysis)
}

// Health reports database connectivity.
func (h *Handler) Health(c *fiber.Ctx) error {
	if err := h.repo.HealthCheck(c.Context()); err != nil {
		return c.Status(503).JSON(fiber.Map{
			"status": "unhealthy",
			"error":  "database connection failed",
		})
	}

	return c.JSON(fiber.Map{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"version":   os.Getenv("VERSION"),
	})
}

// serviceError maps service failures onto HTTP statuses. Unrecognized
// errors surface as a generic 500 so internals stay out of responses.
func (h *Handler) serviceError(c *fiber.Ctx, err error) error {
	var validationErrs playground.ValidationErrors
	if errors.As(err, &validationErrs) {
		return c.Status(400).JSON(fiber.Map{"error": validationErrs.Error()})
	}

	switch {
	case isNotFound(err):
		return c.Status(404).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrAlreadyLoggedToday),
		errors.Is(err, service.ErrBillAlreadyPaid),
		errors.Is(err, insight.ErrAnalysisInFlight):
		return c.Status(409).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, insight.ErrNotLabReport),
		errors.Is(err, settings.ErrUnknownSection):
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrTooManyRequests):
		return c.Status(429).JSON(fiber.Map{"error": err.Error()})
	}

	h.logger.ErrorContext(c.Context(), "Request failed",
		"method", c.Method(), "path", c.Path(), "error", err)
	return c.Status(500).JSON(fiber.Map{"error": "Internal server error"})
}

func isNotFound(err error) bool {
	for _, target := range []error{
		repository.ErrMemberNotFound,
		repository.ErrDocumentNotFound,
		repository.ErrPrescriptionNotFound,
		repository.ErrAppointmentNotFound,
		repository.ErrContactNotFound,
		repository.ErrNoteNotFound,
		repository.ErrVitalNotFound,
		repository.ErrVaccinationNotFound,
		repository.ErrConditionNotFound,
		repository.ErrPolicyNotFound,
		repository.ErrBillNotFound,
		repository.ErrClaimNotFound,
		repository.ErrWellnessNotFound,
		repository.ErrPregnancyNotFound,
		repository.ErrPregnancyLogNotFound,
		repository.ErrKickSessionNotFound,
		repository.ErrProfileNotFound,
		service.ErrNoExpectantMother,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func parseID(c *fiber.Ctx) (uuid.UUID, bool) {
	parsed, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.UUID{}, false
	}
	return parsed, true
}
