package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"carebook/internal/model"
	"carebook/internal/repository"
	"carebook/internal/validator"

	"github.com/google/uuid"
)

type FamilyService struct {
	repo      repository.Repository
	validator *validator.Validator
	logger    *slog.Logger
	now       func() time.Time
}

func NewFamilyService(repo repository.Repository, v *validator.Validator, logger *slog.Logger) *FamilyService {
	return &FamilyService{
		repo:      repo,
		validator: v,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *FamilyService) CreateMember(ctx context.Context, member model.FamilyMember) (model.FamilyMember, error) {
	if err := s.validator.Validate(member); err != nil {
		return model.FamilyMember{}, fmt.Errorf("family: validate member: %w", err)
	}

	now := s.now()
	member.ID = uuid.New()
	if member.Allergies == nil {
		member.Allergies = []string{}
	}
	member.CreatedAt = now
	member.UpdatedAt = now

	if err := s.repo.CreateMember(ctx, member); err != nil {
		return model.FamilyMember{}, fmt.Errorf("family: create member: %w", err)
	}

	s.logger.InfoContext(ctx, "Family member created",
		"member_id", member.ID,
		"relationship", member.Relationship)
	return member, nil
}

func (s *FamilyService) GetMember(ctx context.Context, id uuid.UUID) (model.FamilyMember, error) {
	return s.repo.GetMember(ctx, id)
}

func (s *FamilyService) ListMembers(ctx context.Context) ([]model.FamilyMember, error) {
	return s.repo.ListMembers(ctx)
}

func (s *FamilyService) UpdateMember(ctx context.Context, member model.FamilyMember) (model.FamilyMember, error) {
	if err := s.validator.Validate(member); err != nil {
		return model.FamilyMember{}, fmt.Errorf("family: validate member: %w", err)
	}

	current, err := s.repo.GetMember(ctx, member.ID)
	if err != nil {
		return model.FamilyMember{}, fmt.Errorf("family: get member: %w", err)
	}

	member.CreatedAt = current.CreatedAt
	member.UpdatedAt = s.now()
	if member.Allergies == nil {
		member.Allergies = []string{}
	}
	if err := s.repo.UpdateMember(ctx, member); err != nil {
		return model.FamilyMember{}, fmt.Errorf("family: update member: %w", err)
	}
	return member, nil
}

// DeleteMember removes a member and their owned records. The repository
// handles the cascade so both backends behave the same.
func (s *FamilyService) DeleteMember(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteMember(ctx, id); err != nil {
		return fmt.Errorf("family: delete member: %w", err)
	}
	s.logger.InfoContext(ctx, "Family member deleted", "member_id", id)
	return nil
}

// MemberName resolves a display name, falling back to "General" for
// unscoped records and "Unknown Member" for dangling references.
func (s *FamilyService) MemberName(ctx context.Context, id *uuid.UUID) (string, error) {
	if id == nil {
		return "General", nil
	}
	member, err := s.repo.GetMember(ctx, *id)
	if err != nil {
		return "Unknown Member", nil
	}
	return member.Name, nil
}

func (s *FamilyService) Profile(ctx context.Context) (model.UserProfile, error) {
	return s.repo.GetProfile(ctx)
}

func (s *FamilyService) UpdateProfile(ctx context.Context, profile model.UserProfile) (model.UserProfile, error) {
	if err := s.repo.UpdateProfile(ctx, profile); err != nil {
		return model.UserProfile{}, fmt.Errorf("family: update profile: %w", err)
	}
	return profile, nil
}

func (s *FamilyService) CreateContact(ctx context.Context, contact model.EmergencyContact) (model.EmergencyContact, error) {
	if err := s.validator.Validate(contact); err != nil {
		return model.EmergencyContact{}, fmt.Errorf("family: validate contact: %w", err)
	}

	now := s.now()
	contact.ID = uuid.New()
	contact.CreatedAt = now
	contact.UpdatedAt = now
	if err := s.repo.CreateContact(ctx, contact); err != nil {
		return model.EmergencyContact{}, fmt.Errorf("family: create contact: %w", err)
	}
	return contact, nil
}

func (s *FamilyService) ListContacts(ctx context.Context) ([]model.EmergencyContact, error) {
	return s.repo.ListContacts(ctx)
}

func (s *FamilyService) UpdateContact(ctx context.Context, contact model.EmergencyContact) (model.EmergencyContact, error) {
	if err := s.validator.Validate(contact); err != nil {
		return model.EmergencyContact{}, fmt.Errorf("family: validate contact: %w", err)
	}
	contact.UpdatedAt = s.now()
	if err := s.repo.UpdateContact(ctx, contact); err != nil {
		return model.EmergencyContact{}, fmt.Errorf("family: update contact: %w", err)
	}
	return contact, nil
}

func (s *FamilyService) DeleteContact(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteContact(ctx, id)
}
