package service

import (
	"context"
	"testing"
	"time"

	"carebook/internal/model"
	"carebook/internal/repository"
	"carebook/internal/util"
	"carebook/internal/validator"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wellnessFixture(t *testing.T) (*WellnessService, model.FamilyMember) {
	t.Helper()
	ctx := context.Background()
	repo := repository.NewMemoryRepository()

	alex := model.FamilyMember{ID: uuid.New(), Name: "Alex", Relationship: model.RelationshipSelf, CreatedAt: time.Now()}
	require.NoError(t, repo.CreateMember(ctx, alex))
	require.NoError(t, repo.UpdateProfile(ctx, model.UserProfile{ID: alex.ID, Name: "Alex"}))

	return NewWellnessService(repo, validator.New(), testLogger()), alex
}

func TestWellnessService_LogEntry(t *testing.T) {
	ctx := context.Background()
	svc, alex := wellnessFixture(t)
	now := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	entry, err := svc.LogEntry(ctx, model.WellnessEntry{
		FamilyMemberID: alex.ID,
		Mood:           util.Some(model.MoodHappy),
		SleepHours:     util.Some(7.5),
	})
	require.NoError(t, err)
	assert.Equal(t, model.DateOf(now), entry.Date)

	t.Run("second_entry_same_day_is_rejected", func(t *testing.T) {
		_, err := svc.LogEntry(ctx, model.WellnessEntry{
			FamilyMemberID: alex.ID,
			Mood:           util.Some(model.MoodSad),
		})
		assert.ErrorIs(t, err, ErrAlreadyLoggedToday)
	})

	t.Run("different_day_is_fine", func(t *testing.T) {
		_, err := svc.LogEntry(ctx, model.WellnessEntry{
			FamilyMemberID: alex.ID,
			Date:           model.DateOf(now).AddDays(1),
			Mood:           util.Some(model.MoodNeutral),
		})
		assert.NoError(t, err)
	})
}

func TestWellnessService_QuickLog(t *testing.T) {
	ctx := context.Background()
	svc, alex := wellnessFixture(t)
	now := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	entry, err := svc.QuickLog(ctx, model.MoodEnergetic)
	require.NoError(t, err)
	assert.Equal(t, alex.ID, entry.FamilyMemberID)
	assert.Equal(t, util.Some(model.MoodEnergetic), entry.Mood)
	assert.Equal(t, model.DateOf(now), entry.Date)

	_, err = svc.QuickLog(ctx, model.MoodSad)
	assert.ErrorIs(t, err, ErrAlreadyLoggedToday)

	today, err := svc.TodayEntry(ctx)
	require.NoError(t, err)
	assert.Equal(t, entry.ID, today.ID)
}

func TestWellnessService_UnknownMember(t *testing.T) {
	ctx := context.Background()
	svc, _ := wellnessFixture(t)

	_, err := svc.LogEntry(ctx, model.WellnessEntry{FamilyMemberID: uuid.New()})
	assert.ErrorIs(t, err, repository.ErrMemberNotFound)
}
