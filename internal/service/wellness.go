package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"carebook/internal/model"
	"carebook/internal/repository"
	"carebook/internal/util"
	"carebook/internal/validator"

	"github.com/google/uuid"
)

var ErrAlreadyLoggedToday = errors.New("wellness already logged for today")

type WellnessService struct {
	repo      repository.Repository
	validator *validator.Validator
	logger    *slog.Logger
	now       func() time.Time
}

func NewWellnessService(repo repository.Repository, v *validator.Validator, logger *slog.Logger) *WellnessService {
	return &WellnessService{
		repo:      repo,
		validator: v,
		logger:    logger,
		now:       time.Now,
	}
}

// LogEntry records one day of wellness data. A member gets at most one
// entry per date.
func (s *WellnessService) LogEntry(ctx context.Context, entry model.WellnessEntry) (model.WellnessEntry, error) {
	if err := s.validator.Validate(entry); err != nil {
		return model.WellnessEntry{}, fmt.Errorf("wellness: validate entry: %w", err)
	}
	if _, err := s.repo.GetMember(ctx, entry.FamilyMemberID); err != nil {
		return model.WellnessEntry{}, fmt.Errorf("wellness: get member: %w", err)
	}

	now := s.now()
	if entry.Date.IsZero() {
		entry.Date = model.DateOf(now)
	}

	_, err := s.repo.GetWellnessEntryByDate(ctx, entry.FamilyMemberID, entry.Date)
	if err == nil {
		return model.WellnessEntry{}, ErrAlreadyLoggedToday
	}
	if !errors.Is(err, repository.ErrWellnessNotFound) {
		return model.WellnessEntry{}, fmt.Errorf("wellness: get entry by date: %w", err)
	}

	entry.ID = uuid.New()
	entry.CreatedAt = now
	entry.UpdatedAt = now
	if err := s.repo.CreateWellnessEntry(ctx, entry); err != nil {
		return model.WellnessEntry{}, fmt.Errorf("wellness: create entry: %w", err)
	}
	return entry, nil
}

// QuickLog records just a mood for the profile owner for today. It refuses
// when today already has an entry rather than overwriting it.
func (s *WellnessService) QuickLog(ctx context.Context, mood model.Mood) (model.WellnessEntry, error) {
	profile, err := s.repo.GetProfile(ctx)
	if err != nil {
		return model.WellnessEntry{}, fmt.Errorf("wellness: get profile: %w", err)
	}

	entry, err := s.LogEntry(ctx, model.WellnessEntry{
		FamilyMemberID: profile.ID,
		Mood:           util.Some(mood),
	})
	if err != nil {
		return model.WellnessEntry{}, err
	}

	s.logger.InfoContext(ctx, "Quick wellness log", "mood", mood)
	return entry, nil
}

func (s *WellnessService) ListEntries(ctx context.Context) ([]model.WellnessEntry, error) {
	return s.repo.ListWellnessEntries(ctx)
}

// TodayEntry returns the profile owner's entry for today, if any.
func (s *WellnessService) TodayEntry(ctx context.Context) (model.WellnessEntry, error) {
	profile, err := s.repo.GetProfile(ctx)
	if err != nil {
		return model.WellnessEntry{}, fmt.Errorf("wellness: get profile: %w", err)
	}
	return s.repo.GetWellnessEntryByDate(ctx, profile.ID, model.DateOf(s.now()))
}

func (s *WellnessService) UpdateEntry(ctx context.Context, entry model.WellnessEntry) (model.WellnessEntry, error) {
	if err := s.validator.Validate(entry); err != nil {
		return model.WellnessEntry{}, fmt.Errorf("wellness: validate entry: %w", err)
	}
	entry.UpdatedAt = s.now()
	if err := s.repo.UpdateWellnessEntry(ctx, entry); err != nil {
		return model.WellnessEntry{}, fmt.Errorf("wellness: update entry: %w", err)
	}
	return entry, nil
}

func (s *WellnessService) DeleteEntry(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteWellnessEntry(ctx, id)
}
