package service

import (
	"context"
	"fmt"
	"log/slog"

	"carebook/internal/model"
	"carebook/internal/repository"

	"github.com/google/uuid"
)

// EmergencySheet holds everything a first responder should see at a
// glance.
type EmergencySheet struct {
	Contacts        []model.EmergencyContact `json:"contacts"`
	CriticalNotes   []model.MedicalNote      `json:"critical_notes"`
	AffectedMembers []model.FamilyMember     `json:"affected_members"`
}

type EmergencyService struct {
	repo   repository.Repository
	logger *slog.Logger
}

func NewEmergencyService(repo repository.Repository, logger *slog.Logger) *EmergencyService {
	return &EmergencyService{
		repo:   repo,
		logger: logger,
	}
}

// Sheet collects emergency contacts, critical notes and the members those
// notes reference.
func (s *EmergencyService) Sheet(ctx context.Context) (EmergencySheet, error) {
	contacts, err := s.repo.ListContacts(ctx)
	if err != nil {
		return EmergencySheet{}, fmt.Errorf("emergency: list contacts: %w", err)
	}

	notes, err := s.repo.ListNotes(ctx)
	if err != nil {
		return EmergencySheet{}, fmt.Errorf("emergency: list notes: %w", err)
	}
	critical := []model.MedicalNote{}
	affectedIDs := map[uuid.UUID]bool{}
	for _, n := range notes {
		if !n.IsCritical {
			continue
		}
		critical = append(critical, n)
		if n.FamilyMemberID.IsSet {
			affectedIDs[n.FamilyMemberID.Val] = true
		}
	}

	members, err := s.repo.ListMembers(ctx)
	if err != nil {
		return EmergencySheet{}, fmt.Errorf("emergency: list members: %w", err)
	}
	affected := []model.FamilyMember{}
	for _, m := range members {
		if affectedIDs[m.ID] {
			affected = append(affected, m)
		}
	}

	return EmergencySheet{
		Contacts:        contacts,
		CriticalNotes:   critical,
		AffectedMembers: affected,
	}, nil
}
