package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"carebook/internal/model"
	"carebook/internal/repository"
	"carebook/internal/util"
	"carebook/internal/validator"

	"github.com/google/uuid"
)

var ErrBillAlreadyPaid = errors.New("bill already paid")

// PaymentProcessor charges a bill amount and returns an external payment
// reference. Amounts are in cents.
type PaymentProcessor interface {
	Charge(ctx context.Context, amountCents int64, description string) (string, error)
}

type BillingService struct {
	repo      repository.Repository
	payments  PaymentProcessor
	validator *validator.Validator
	logger    *slog.Logger
	now       func() time.Time
}

func NewBillingService(repo repository.Repository, payments PaymentProcessor, v *validator.Validator, logger *slog.Logger) *BillingService {
	return &BillingService{
		repo:      repo,
		payments:  payments,
		validator: v,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *BillingService) CreatePolicy(ctx context.Context, policy model.InsurancePolicy) (model.InsurancePolicy, error) {
	if err := s.validator.Validate(policy); err != nil {
		return model.InsurancePolicy{}, fmt.Errorf("billing: validate policy: %w", err)
	}
	if _, err := s.repo.GetMember(ctx, policy.MemberID); err != nil {
		return model.InsurancePolicy{}, fmt.Errorf("billing: get member: %w", err)
	}

	now := s.now()
	policy.ID = uuid.New()
	policy.CreatedAt = now
	policy.UpdatedAt = now
	if err := s.repo.CreatePolicy(ctx, policy); err != nil {
		return model.InsurancePolicy{}, fmt.Errorf("billing: create policy: %w", err)
	}
	return policy, nil
}

func (s *BillingService) ListPolicies(ctx context.Context) ([]model.InsurancePolicy, error) {
	return s.repo.ListPolicies(ctx)
}

func (s *BillingService) UpdatePolicy(ctx context.Context, policy model.InsurancePolicy) (model.InsurancePolicy, error) {
	if err := s.validator.Validate(policy); err != nil {
		return model.InsurancePolicy{}, fmt.Errorf("billing: validate policy: %w", err)
	}
	policy.UpdatedAt = s.now()
	if err := s.repo.UpdatePolicy(ctx, policy); err != nil {
		return model.InsurancePolicy{}, fmt.Errorf("billing: update policy: %w", err)
	}
	return policy, nil
}

func (s *BillingService) DeletePolicy(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeletePolicy(ctx, id)
}

func (s *BillingService) CreateBill(ctx context.Context, bill model.Bill) (model.Bill, error) {
	if err := s.validator.Validate(bill); err != nil {
		return model.Bill{}, fmt.Errorf("billing: validate bill: %w", err)
	}

	now := s.now()
	bill.ID = uuid.New()
	bill.CreatedAt = now
	bill.UpdatedAt = now
	if err := s.repo.CreateBill(ctx, bill); err != nil {
		return model.Bill{}, fmt.Errorf("billing: create bill: %w", err)
	}
	return bill, nil
}

func (s *BillingService) GetBill(ctx context.Context, id uuid.UUID) (model.Bill, error) {
	return s.repo.GetBill(ctx, id)
}

func (s *BillingService) ListBills(ctx context.Context) ([]model.Bill, error) {
	return s.repo.ListBills(ctx)
}

func (s *BillingService) UpdateBill(ctx context.Context, bill model.Bill) (model.Bill, error) {
	if err := s.validator.Validate(bill); err != nil {
		return model.Bill{}, fmt.Errorf("billing: validate bill: %w", err)
	}
	bill.UpdatedAt = s.now()
	if err := s.repo.UpdateBill(ctx, bill); err != nil {
		return model.Bill{}, fmt.Errorf("billing: update bill: %w", err)
	}
	return bill, nil
}

func (s *BillingService) DeleteBill(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteBill(ctx, id)
}

// PayBill charges the full amount through the payment processor and marks
// the bill paid with today's date and the processor reference.
func (s *BillingService) PayBill(ctx context.Context, id uuid.UUID) (model.Bill, error) {
	bill, err := s.repo.GetBill(ctx, id)
	if err != nil {
		return model.Bill{}, fmt.Errorf("billing: get bill: %w", err)
	}
	if bill.IsPaid {
		return model.Bill{}, ErrBillAlreadyPaid
	}

	amountCents := int64(bill.AmountDue*100 + 0.5)
	ref, err := s.payments.Charge(ctx, amountCents, fmt.Sprintf("Bill from %s", bill.ServiceProvider))
	if err != nil {
		return model.Bill{}, fmt.Errorf("billing: charge: %w", err)
	}

	now := s.now()
	bill.IsPaid = true
	bill.PaymentDate = util.Some(model.DateOf(now))
	bill.PaymentRef = util.Some(ref)
	bill.UpdatedAt = now
	if err := s.repo.UpdateBill(ctx, bill); err != nil {
		return model.Bill{}, fmt.Errorf("billing: update bill: %w", err)
	}

	s.logger.InfoContext(ctx, "Bill paid",
		"bill_id", bill.ID,
		"amount_cents", amountCents,
		"payment_ref", ref)
	return bill, nil
}

// MarkBillPaid records an out-of-band payment without charging anything.
func (s *BillingService) MarkBillPaid(ctx context.Context, id uuid.UUID) (model.Bill, error) {
	bill, err := s.repo.GetBill(ctx, id)
	if err != nil {
		return model.Bill{}, fmt.Errorf("billing: get bill: %w", err)
	}
	if bill.IsPaid {
		return bill, nil
	}

	now := s.now()
	bill.IsPaid = true
	bill.PaymentDate = util.Some(model.DateOf(now))
	bill.UpdatedAt = now
	if err := s.repo.UpdateBill(ctx, bill); err != nil {
		return model.Bill{}, fmt.Errorf("billing: update bill: %w", err)
	}
	return bill, nil
}

// SubmitClaim opens a claim for a bill against a policy.
func (s *BillingService) SubmitClaim(ctx context.Context, billID, policyID uuid.UUID, notes string) (model.InsuranceClaim, error) {
	bill, err := s.repo.GetBill(ctx, billID)
	if err != nil {
		return model.InsuranceClaim{}, fmt.Errorf("billing: get bill: %w", err)
	}
	if _, err := s.repo.GetPolicy(ctx, policyID); err != nil {
		return model.InsuranceClaim{}, fmt.Errorf("billing: get policy: %w", err)
	}

	now := s.now()
	claim := model.InsuranceClaim{
		ID:             uuid.New(),
		BillID:         bill.ID,
		PolicyID:       policyID,
		ClaimNumber:    claimNumber(uuid.New()),
		SubmissionDate: model.DateOf(now),
		Status:         model.ClaimSubmitted,
		Notes:          notes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.repo.CreateClaim(ctx, claim); err != nil {
		return model.InsuranceClaim{}, fmt.Errorf("billing: create claim: %w", err)
	}

	s.logger.InfoContext(ctx, "Claim submitted",
		"claim_id", claim.ID,
		"claim_number", claim.ClaimNumber,
		"bill_id", billID)
	return claim, nil
}

func (s *BillingService) ListClaims(ctx context.Context) ([]model.InsuranceClaim, error) {
	return s.repo.ListClaims(ctx)
}

// UpdateClaimStatus advances a claim and optionally records the covered
// amount.
func (s *BillingService) UpdateClaimStatus(ctx context.Context, id uuid.UUID, status model.ClaimStatus, amountCovered util.Optional[float64]) (model.InsuranceClaim, error) {
	claim, err := s.repo.GetClaim(ctx, id)
	if err != nil {
		return model.InsuranceClaim{}, fmt.Errorf("billing: get claim: %w", err)
	}

	claim.Status = status
	if amountCovered.IsSet {
		claim.AmountCovered = amountCovered
	}
	claim.UpdatedAt = s.now()
	if err := s.validator.Validate(claim); err != nil {
		return model.InsuranceClaim{}, fmt.Errorf("billing: validate claim: %w", err)
	}
	if err := s.repo.UpdateClaim(ctx, claim); err != nil {
		return model.InsuranceClaim{}, fmt.Errorf("billing: update claim: %w", err)
	}
	return claim, nil
}

func claimNumber(id uuid.UUID) string {
	return "CLM-" + strings.ToUpper(id.String()[:8])
}
