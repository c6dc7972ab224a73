package model

import (
	"time"

	"carebook/internal/util"

	"github.com/google/uuid"
)

type Relationship string

const (
	RelationshipSelf    Relationship = "Self"
	RelationshipSpouse  Relationship = "Spouse"
	RelationshipChild   Relationship = "Child"
	RelationshipParent  Relationship = "Parent"
	RelationshipSibling Relationship = "Sibling"
	RelationshipOther   Relationship = "Other"
)

var Relationships = []Relationship{
	RelationshipSelf, RelationshipSpouse, RelationshipChild,
	RelationshipParent, RelationshipSibling, RelationshipOther,
}

// UserProfile identifies the account holder. The member with relationship
// Self is the profile owner; wellness nudges and reminders are scoped to it.
type UserProfile struct {
	ID        uuid.UUID             `json:"id"`
	Name      string                `json:"name"`
	Email     string                `json:"email"`
	AvatarURL util.Optional[string] `json:"avatar_url"`
}

type FamilyMember struct {
	ID                    uuid.UUID             `json:"id"`
	Name                  string                `json:"name" validate:"required"`
	DateOfBirth           Date                  `json:"date_of_birth"`
	Relationship          Relationship          `json:"relationship" validate:"required,relationship"`
	MedicalHistorySummary string                `json:"medical_history_summary"`
	BloodType             util.Optional[string] `json:"blood_type" validate:"omitempty,blood_type"`
	Allergies             []string              `json:"allergies"`
	ProfilePhotoURL       util.Optional[string] `json:"profile_photo_url"`
	CreatedAt             time.Time             `json:"created_at"`
	UpdatedAt             time.Time             `json:"updated_at"`
}

// DocumentCategories is the closed set of document categories.
var DocumentCategories = []string{
	"Lab Report", "Imaging Scan", "Prescription Slip", "Doctor's Note",
	"Insurance Card", "Surgical Report", "Other",
}

const CategoryLabReport = "Lab Report"

type DocumentItem struct {
	ID             uuid.UUID                `json:"id"`
	Title          string                   `json:"title" validate:"required"`
	Category       string                   `json:"category" validate:"required,document_category"`
	UploadDate     Date                     `json:"upload_date"`
	FileName       string                   `json:"file_name"`
	StorageKey     util.Optional[string]    `json:"-"`
	FamilyMemberID util.Optional[uuid.UUID] `json:"family_member_id"`
	// Version increments only when a re-upload carries a new file name.
	Version   int       `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type AdherenceStatus string

const (
	AdherenceTaken   AdherenceStatus = "taken"
	AdherenceSkipped AdherenceStatus = "skipped"
)

type Prescription struct {
	ID                uuid.UUID                `json:"id"`
	MedicationName    string                   `json:"medication_name" validate:"required"`
	Dosage            string                   `json:"dosage"`
	Frequency         string                   `json:"frequency"`
	PrescribingDoctor string                   `json:"prescribing_doctor"`
	Pharmacy          util.Optional[string]    `json:"pharmacy"`
	FamilyMemberID    uuid.UUID                `json:"family_member_id" validate:"required"`
	StartDate         Date                     `json:"start_date"`
	EndDate           util.Optional[Date]      `json:"end_date"`
	Notes             string                   `json:"notes"`
	SupplyDays        util.Optional[int]       `json:"supply_days"`
	RefillsRemaining  util.Optional[int]       `json:"refills_remaining"`
	ConditionID       util.Optional[uuid.UUID] `json:"condition_id"`
	// Adherence maps an ISO date string to taken or skipped. Exactly one
	// status per date; toggling the same status removes the entry.
	Adherence map[string]AdherenceStatus `json:"adherence"`
	CreatedAt time.Time                  `json:"created_at"`
	UpdatedAt time.Time                  `json:"updated_at"`
}

type ConditionStatus string

const (
	ConditionActive   ConditionStatus = "Active"
	ConditionResolved ConditionStatus = "Resolved"
)

type Condition struct {
	ID              uuid.UUID       `json:"id"`
	FamilyMemberID  uuid.UUID       `json:"family_member_id" validate:"required"`
	Name            string          `json:"name" validate:"required"`
	DateOfDiagnosis Date            `json:"date_of_diagnosis"`
	Status          ConditionStatus `json:"status" validate:"oneof=Active Resolved"`
	Notes           string          `json:"notes"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

type VitalSign struct {
	ID             uuid.UUID              `json:"id"`
	FamilyMemberID uuid.UUID              `json:"family_member_id" validate:"required"`
	Date           Date                   `json:"date"`
	HeightCm       util.Optional[float64] `json:"height_cm"`
	WeightKg       util.Optional[float64] `json:"weight_kg"`
	BloodPressure  util.Optional[string]  `json:"blood_pressure"`
	HeartRate      util.Optional[int]     `json:"heart_rate"`
	Notes          string                 `json:"notes"`
	CreatedAt      time.Time              `json:"created_at"`
	UpdatedAt      time.Time              `json:"updated_at"`
}

type VaccinationRecord struct {
	ID               uuid.UUID `json:"id"`
	FamilyMemberID   uuid.UUID `json:"family_member_id" validate:"required"`
	VaccineName      string    `json:"vaccine_name" validate:"required"`
	DateAdministered Date      `json:"date_administered"`
	Notes            string    `json:"notes"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type EmergencyContact struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name" validate:"required"`
	Phone        string    `json:"phone" validate:"required"`
	Relationship string    `json:"relationship"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type MedicalNote struct {
	ID             uuid.UUID                `json:"id"`
	Title          string                   `json:"title" validate:"required"`
	Content        string                   `json:"content"`
	Date           Date                     `json:"date"`
	IsCritical     bool                     `json:"is_critical"`
	FamilyMemberID util.Optional[uuid.UUID] `json:"family_member_id"`
	CreatedAt      time.Time                `json:"created_at"`
	UpdatedAt      time.Time                `json:"updated_at"`
}

type AppointmentType string

const (
	AppointmentCheckUp      AppointmentType = "Check-up"
	AppointmentUltrasound   AppointmentType = "Ultrasound"
	AppointmentLabTest      AppointmentType = "Lab Test"
	AppointmentConsultation AppointmentType = "Consultation"
	AppointmentDental       AppointmentType = "Dental"
	AppointmentSpecialist   AppointmentType = "Specialist"
)

var AppointmentTypes = []AppointmentType{
	AppointmentCheckUp, AppointmentUltrasound, AppointmentLabTest,
	AppointmentConsultation, AppointmentDental, AppointmentSpecialist,
}

type Appointment struct {
	ID             uuid.UUID       `json:"id"`
	Date           Date            `json:"date"`
	Time           string          `json:"time"`
	Doctor         string          `json:"doctor" validate:"required"`
	Type           AppointmentType `json:"type" validate:"required,appointment_type"`
	FamilyMemberID uuid.UUID       `json:"family_member_id" validate:"required"`
	Notes          string          `json:"notes"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}
