package model

import (
	"time"

	"carebook/internal/util"

	"github.com/google/uuid"
)

type InsurancePolicy struct {
	ID              uuid.UUID              `json:"id"`
	ProviderName    string                 `json:"provider_name" validate:"required"`
	PolicyNumber    string                 `json:"policy_number" validate:"required"`
	GroupNumber     util.Optional[string]  `json:"group_number"`
	MemberID        uuid.UUID              `json:"member_id" validate:"required"`
	CoverageDetails util.Optional[string]  `json:"coverage_details"`
	EffectiveDate   Date                   `json:"effective_date"`
	ExpirationDate  util.Optional[Date]    `json:"expiration_date"`
	PaymentMethod   util.Optional[string]  `json:"payment_method"`
	CopayAmount     util.Optional[float64] `json:"copay_amount"`
	CreatedAt       time.Time              `json:"created_at"`
	UpdatedAt       time.Time              `json:"updated_at"`
}

type Bill struct {
	ID              uuid.UUID           `json:"id"`
	ServiceProvider string              `json:"service_provider" validate:"required"`
	ServiceDate     Date                `json:"service_date"`
	AmountDue       float64             `json:"amount_due" validate:"gt=0"`
	DueDate         Date                `json:"due_date"`
	IsPaid          bool                `json:"is_paid"`
	Notes           string              `json:"notes"`
	PaymentDate     util.Optional[Date] `json:"payment_date"`
	// FamilyMemberID attributes the bill directly instead of inferring the
	// member from insurance policy records.
	FamilyMemberID util.Optional[uuid.UUID] `json:"family_member_id"`
	AppointmentID  util.Optional[uuid.UUID] `json:"appointment_id"`
	PaymentRef     util.Optional[string]    `json:"payment_ref"`
	CreatedAt      time.Time                `json:"created_at"`
	UpdatedAt      time.Time                `json:"updated_at"`
}

type ClaimStatus string

const (
	ClaimSubmitted  ClaimStatus = "Submitted"
	ClaimProcessing ClaimStatus = "Processing"
	ClaimApproved   ClaimStatus = "Approved"
	ClaimDenied     ClaimStatus = "Denied"
)

var ClaimStatuses = []ClaimStatus{
	ClaimSubmitted, ClaimProcessing, ClaimApproved, ClaimDenied,
}

type InsuranceClaim struct {
	ID             uuid.UUID              `json:"id"`
	BillID         uuid.UUID              `json:"bill_id" validate:"required"`
	PolicyID       uuid.UUID              `json:"policy_id" validate:"required"`
	ClaimNumber    string                 `json:"claim_number"`
	SubmissionDate Date                   `json:"submission_date"`
	Status         ClaimStatus            `json:"status" validate:"required,claim_status"`
	AmountCovered  util.Optional[float64] `json:"amount_covered"`
	Notes          string                 `json:"notes"`
	CreatedAt      time.Time              `json:"created_at"`
	UpdatedAt      time.Time              `json:"updated_at"`
}
