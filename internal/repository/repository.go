package repository

import (
	"context"
	"errors"

	"carebook/internal/model"

	"github.com/google/uuid"
)

var (
	ErrMemberNotFound       = errors.New("family member not found")
	ErrDocumentNotFound     = errors.New("document not found")
	ErrPrescriptionNotFound = errors.New("prescription not found")
	ErrAppointmentNotFound  = errors.New("appointment not found")
	ErrContactNotFound      = errors.New("emergency contact not found")
	ErrNoteNotFound         = errors.New("medical note not found")
	ErrVitalNotFound        = errors.New("vital sign not found")
	ErrVaccinationNotFound  = errors.New("vaccination record not found")
	ErrConditionNotFound    = errors.New("condition not found")
	ErrPolicyNotFound       = errors.New("insurance policy not found")
	ErrBillNotFound         = errors.New("bill not found")
	ErrClaimNotFound        = errors.New("insurance claim not found")
	ErrWellnessNotFound     = errors.New("wellness entry not found")
	ErrPregnancyNotFound    = errors.New("pregnancy data not found")
	ErrPregnancyLogNotFound = errors.New("pregnancy log entry not found")
	ErrKickSessionNotFound  = errors.New("kick counter session not found")
	ErrProfileNotFound      = errors.New("user profile not found")
)

// Repository is the contract shared by the in-memory and Postgres
// implementations. List methods return copies sorted by creation time.
type Repository interface {
	// HealthCheck reports whether the backing store is reachable.
	HealthCheck(ctx context.Context) error

	// Family member operations
	CreateMember(ctx context.Context, member model.FamilyMember) error
	GetMember(ctx context.Context, id uuid.UUID) (model.FamilyMember, error)
	ListMembers(ctx context.Context) ([]model.FamilyMember, error)
	UpdateMember(ctx context.Context, member model.FamilyMember) error
	DeleteMember(ctx context.Context, id uuid.UUID) error

	// Document operations
	CreateDocument(ctx context.Context, doc model.DocumentItem) error
	GetDocument(ctx context.Context, id uuid.UUID) (model.DocumentItem, error)
	ListDocuments(ctx context.Context) ([]model.DocumentItem, error)
	UpdateDocument(ctx context.Context, doc model.DocumentItem) error
	DeleteDocument(ctx context.Context, id uuid.UUID) error

	// Prescription operations
	CreatePrescription(ctx context.Context, rx model.Prescription) error
	GetPrescription(ctx context.Context, id uuid.UUID) (model.Prescription, error)
	ListPrescriptions(ctx context.Context) ([]model.Prescription, error)
	UpdatePrescription(ctx context.Context, rx model.Prescription) error
	DeletePrescription(ctx context.Context, id uuid.UUID) error

	// Appointment operations
	CreateAppointment(ctx context.Context, apt model.Appointment) error
	GetAppointment(ctx context.Context, id uuid.UUID) (model.Appointment, error)
	ListAppointments(ctx context.Context) ([]model.Appointment, error)
	UpdateAppointment(ctx context.Context, apt model.Appointment) error
	DeleteAppointment(ctx context.Context, id uuid.UUID) error

	// Emergency contact operations
	CreateContact(ctx context.Context, contact model.EmergencyContact) error
	ListContacts(ctx context.Context) ([]model.EmergencyContact, error)
	UpdateContact(ctx context.Context, contact model.EmergencyContact) error
	DeleteContact(ctx context.Context, id uuid.UUID) error

	// Medical note operations
	CreateNote(ctx context.Context, note model.MedicalNote) error
	GetNote(ctx context.Context, id uuid.UUID) (model.MedicalNote, error)
	ListNotes(ctx context.Context) ([]model.MedicalNote, error)
	UpdateNote(ctx context.Context, note model.MedicalNote) error
	DeleteNote(ctx context.Context, id uuid.UUID) error

	// Vital sign operations
	CreateVital(ctx context.Context, vital model.VitalSign) error
	ListVitals(ctx context.Context) ([]model.VitalSign, error)
	ListVitalsByMember(ctx context.Context, memberID uuid.UUID) ([]model.VitalSign, error)
	UpdateVital(ctx context.Context, vital model.VitalSign) error
	DeleteVital(ctx context.Context, id uuid.UUID) error

	// Vaccination operations
	CreateVaccination(ctx context.Context, rec model.VaccinationRecord) error
	ListVaccinations(ctx context.Context) ([]model.VaccinationRecord, error)
	ListVaccinationsByMember(ctx context.Context, memberID uuid.UUID) ([]model.VaccinationRecord, error)
	UpdateVaccination(ctx context.Context, rec model.VaccinationRecord) error
	DeleteVaccination(ctx context.Context, id uuid.UUID) error

	// Condition operations
	CreateCondition(ctx context.Context, cond model.Condition) error
	GetCondition(ctx context.Context, id uuid.UUID) (model.Condition, error)
	ListConditions(ctx context.Context) ([]model.Condition, error)
	ListConditionsByMember(ctx context.Context, memberID uuid.UUID) ([]model.Condition, error)
	UpdateCondition(ctx context.Context, cond model.Condition) error
	DeleteCondition(ctx context.Context, id uuid.UUID) error

	// Insurance policy operations
	CreatePolicy(ctx context.Context, policy model.InsurancePolicy) error
	GetPolicy(ctx context.Context, id uuid.UUID) (model.InsurancePolicy, error)
	ListPolicies(ctx context.Context) ([]model.InsurancePolicy, error)
	UpdatePolicy(ctx context.Context, policy model.InsurancePolicy) error
	DeletePolicy(ctx context.Context, id uuid.UUID) error

	// Bill operations
	CreateBill(ctx context.Context, bill model.Bill) error
	GetBill(ctx context.Context, id uuid.UUID) (model.Bill, error)
	ListBills(ctx context.Context) ([]model.Bill, error)
	UpdateBill(ctx context.Context, bill model.Bill) error
	DeleteBill(ctx context.Context, id uuid.UUID) error

	// Insurance claim operations
	CreateClaim(ctx context.Context, claim model.InsuranceClaim) error
	GetClaim(ctx context.Context, id uuid.UUID) (model.InsuranceClaim, error)
	ListClaims(ctx context.Context) ([]model.InsuranceClaim, error)
	UpdateClaim(ctx context.Context, claim model.InsuranceClaim) error
	DeleteClaim(ctx context.Context, id uuid.UUID) error

	// Wellness operations
	CreateWellnessEntry(ctx context.Context, entry model.WellnessEntry) error
	GetWellnessEntryByDate(ctx context.Context, memberID uuid.UUID, date model.Date) (model.WellnessEntry, error)
	ListWellnessEntries(ctx context.Context) ([]model.WellnessEntry, error)
	UpdateWellnessEntry(ctx context.Context, entry model.WellnessEntry) error
	DeleteWellnessEntry(ctx context.Context, id uuid.UUID) error

	// Pregnancy operations
	UpsertPregnancy(ctx context.Context, data model.PregnancyData) error
	GetPregnancy(ctx context.Context, memberID uuid.UUID) (model.PregnancyData, error)
	CreatePregnancyLog(ctx context.Context, entry model.PregnancyLogEntry) error
	ListPregnancyLogs(ctx context.Context, memberID uuid.UUID) ([]model.PregnancyLogEntry, error)
	DeletePregnancyLog(ctx context.Context, id uuid.UUID) error
	CreateKickSession(ctx context.Context, session model.KickCounterSession) error
	GetKickSession(ctx context.Context, id uuid.UUID) (model.KickCounterSession, error)
	ListKickSessions(ctx context.Context, memberID uuid.UUID) ([]model.KickCounterSession, error)
	UpdateKickSession(ctx context.Context, session model.KickCounterSession) error

	// User profile operations
	GetProfile(ctx context.Context) (model.UserProfile, error)
	UpdateProfile(ctx context.Context, profile model.UserProfile) error
}
