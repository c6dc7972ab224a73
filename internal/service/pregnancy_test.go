package service

import (
	"context"
	"io"
	"log/slog"
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

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestComputeProgress(t *testing.T) {
	t.Run("sixty_days_before_due_date", func(t *testing.T) {
		due := model.NewDate(2025, 2, 15)
		asOf := model.NewDate(2024, 12, 17)

		progress := ComputeProgress(due, asOf)

		assert.Equal(t, 31, progress.CurrentWeek)
		assert.Equal(t, 3, progress.DaysIntoWeek)
		assert.Equal(t, 3, progress.Trimester)
		assert.InDelta(t, 78.6, progress.ProgressPercent, 0.05)
		assert.Equal(t, 60, progress.DaysRemaining)
	})

	t.Run("before_term_start_clamps_to_zero_state", func(t *testing.T) {
		due := model.NewDate(2025, 2, 15)
		asOf := model.NewDate(2024, 1, 1)

		progress := ComputeProgress(due, asOf)

		assert.Equal(t, 0, progress.CurrentWeek)
		assert.Equal(t, 0, progress.DaysIntoWeek)
		assert.Equal(t, 1, progress.Trimester)
		assert.Zero(t, progress.ProgressPercent)
		assert.Equal(t, 280, progress.DaysRemaining)
	})

	t.Run("first_day_of_term", func(t *testing.T) {
		due := model.NewDate(2025, 2, 15)
		asOf := due.AddDays(-280)

		progress := ComputeProgress(due, asOf)

		assert.Equal(t, 0, progress.CurrentWeek)
		assert.Equal(t, 0, progress.DaysIntoWeek)
		assert.Equal(t, 1, progress.Trimester)
		assert.Zero(t, progress.ProgressPercent)
		assert.Equal(t, 280, progress.DaysRemaining)
	})

	t.Run("trimester_boundaries", func(t *testing.T) {
		due := model.NewDate(2025, 2, 15)
		start := due.AddDays(-280)

		// Week 13 is still trimester 1, week 14 is trimester 2.
		assert.Equal(t, 1, ComputeProgress(due, start.AddDays(13*7)).Trimester)
		assert.Equal(t, 2, ComputeProgress(due, start.AddDays(14*7)).Trimester)
		// Week 27 is still trimester 2, week 28 is trimester 3.
		assert.Equal(t, 2, ComputeProgress(due, start.AddDays(27*7)).Trimester)
		assert.Equal(t, 3, ComputeProgress(due, start.AddDays(28*7)).Trimester)
	})

	t.Run("past_due_date_clamps", func(t *testing.T) {
		due := model.NewDate(2025, 2, 15)
		asOf := due.AddDays(14)

		progress := ComputeProgress(due, asOf)

		assert.Equal(t, 42, progress.CurrentWeek)
		assert.Equal(t, float64(100), progress.ProgressPercent)
		assert.Equal(t, 0, progress.DaysRemaining)
	})

	t.Run("progress_is_monotonic", func(t *testing.T) {
		due := model.NewDate(2025, 2, 15)
		start := due.AddDays(-280)

		prev := float64(-1)
		for d := 0; d <= 300; d += 10 {
			p := ComputeProgress(due, start.AddDays(d))
			assert.GreaterOrEqual(t, p.ProgressPercent, prev)
			assert.LessOrEqual(t, p.ProgressPercent, float64(100))
			prev = p.ProgressPercent
		}
	})
}

func TestMilestones(t *testing.T) {
	progress := PregnancyProgress{CurrentWeek: 21}

	milestones := Milestones(progress)

	require.Len(t, milestones, 5)
	assert.Equal(t, "First prenatal visit", milestones[0].Description)
	assert.True(t, milestones[0].Completed)
	assert.True(t, milestones[1].Completed)
	assert.True(t, milestones[2].Completed)
	assert.False(t, milestones[3].Completed)
	assert.False(t, milestones[4].Completed)
}

func TestPregnancyService_Mother(t *testing.T) {
	ctx := context.Background()

	t.Run("prefers_spouse_over_self", func(t *testing.T) {
		repo := repository.NewMemoryRepository()
		self := model.FamilyMember{ID: uuid.New(), Name: "Alex", Relationship: model.RelationshipSelf, CreatedAt: time.Now()}
		spouse := model.FamilyMember{ID: uuid.New(), Name: "Brenda", Relationship: model.RelationshipSpouse, CreatedAt: time.Now().Add(time.Second)}
		require.NoError(t, repo.CreateMember(ctx, self))
		require.NoError(t, repo.CreateMember(ctx, spouse))

		svc := NewPregnancyService(repo, validator.New(), testLogger())
		mother, err := svc.Mother(ctx)

		require.NoError(t, err)
		assert.Equal(t, spouse.ID, mother.ID)
	})

	t.Run("falls_back_to_self", func(t *testing.T) {
		repo := repository.NewMemoryRepository()
		self := model.FamilyMember{ID: uuid.New(), Name: "Alex", Relationship: model.RelationshipSelf, CreatedAt: time.Now()}
		child := model.FamilyMember{ID: uuid.New(), Name: "Charlie", Relationship: model.RelationshipChild, CreatedAt: time.Now().Add(time.Second)}
		require.NoError(t, repo.CreateMember(ctx, self))
		require.NoError(t, repo.CreateMember(ctx, child))

		svc := NewPregnancyService(repo, validator.New(), testLogger())
		mother, err := svc.Mother(ctx)

		require.NoError(t, err)
		assert.Equal(t, self.ID, mother.ID)
	})

	t.Run("no_candidate", func(t *testing.T) {
		repo := repository.NewMemoryRepository()
		svc := NewPregnancyService(repo, validator.New(), testLogger())

		_, err := svc.Mother(ctx)

		assert.ErrorIs(t, err, ErrNoExpectantMother)
	})
}

func TestPregnancyService_Tracker(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryRepository()
	now := time.Date(2024, 12, 17, 10, 0, 0, 0, time.UTC)

	mother := model.FamilyMember{ID: uuid.New(), Name: "Brenda", Relationship: model.RelationshipSpouse, CreatedAt: now}
	require.NoError(t, repo.CreateMember(ctx, mother))
	require.NoError(t, repo.UpsertPregnancy(ctx, model.PregnancyData{
		FamilyMemberID: mother.ID,
		DueDate:        model.NewDate(2025, 2, 15),
		BabyName:       util.Some("Junie"),
	}))

	// Only pregnancy-related appointments for the mother belong on the
	// tracker; past visits stay in the log, newest first.
	appointments := []model.Appointment{
		{ID: uuid.New(), FamilyMemberID: mother.ID, Date: model.NewDate(2025, 1, 10), Doctor: "Dr. Patel", Type: model.AppointmentUltrasound, CreatedAt: now},
		{ID: uuid.New(), FamilyMemberID: mother.ID, Date: model.NewDate(2024, 11, 1), Doctor: "Dr. Patel", Type: model.AppointmentCheckUp, CreatedAt: now},
		{ID: uuid.New(), FamilyMemberID: mother.ID, Date: model.NewDate(2025, 1, 5), Doctor: "Dr. Lee", Type: model.AppointmentDental, CreatedAt: now},
	}
	for _, apt := range appointments {
		require.NoError(t, repo.CreateAppointment(ctx, apt))
	}

	require.NoError(t, repo.CreatePregnancyLog(ctx, model.PregnancyLogEntry{
		ID: uuid.New(), FamilyMemberID: mother.ID, Date: model.NewDate(2024, 12, 1),
		Mood: model.PregnancyMoodTired, CreatedAt: now,
	}))
	require.NoError(t, repo.CreatePregnancyLog(ctx, model.PregnancyLogEntry{
		ID: uuid.New(), FamilyMemberID: mother.ID, Date: model.NewDate(2024, 12, 15),
		Mood: model.PregnancyMoodExcited, CreatedAt: now.Add(time.Second),
	}))

	svc := NewPregnancyService(repo, validator.New(), testLogger())
	svc.now = func() time.Time { return now }

	tracker, err := svc.Tracker(ctx)
	require.NoError(t, err)

	assert.Equal(t, mother.ID, tracker.Mother.ID)
	assert.Equal(t, 31, tracker.Progress.CurrentWeek)
	require.Len(t, tracker.Appointments, 2)
	assert.Equal(t, model.AppointmentUltrasound, tracker.Appointments[0].Type)
	assert.Equal(t, model.AppointmentCheckUp, tracker.Appointments[1].Type)
	require.Len(t, tracker.Log, 2)
	assert.Equal(t, model.NewDate(2024, 12, 15), tracker.Log[0].Date)
	assert.Equal(t, model.NewDate(2024, 12, 1), tracker.Log[1].Date)
	assert.Len(t, tracker.Milestones, 5)
}

func TestPregnancyService_AddLogEntry(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryRepository()
	mother := model.FamilyMember{ID: uuid.New(), Name: "Brenda", Relationship: model.RelationshipSpouse, CreatedAt: time.Now()}
	require.NoError(t, repo.CreateMember(ctx, mother))

	svc := NewPregnancyService(repo, validator.New(), testLogger())
	now := time.Date(2024, 12, 17, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	// Date and mood fall back to today and Neutral.
	entry, err := svc.AddLogEntry(ctx, model.PregnancyLogEntry{Notes: "Feeling fine"})
	require.NoError(t, err)
	assert.Equal(t, mother.ID, entry.FamilyMemberID)
	assert.Equal(t, model.PregnancyMoodNeutral, entry.Mood)
	assert.Equal(t, model.DateOf(now), entry.Date)

	_, err = svc.AddLogEntry(ctx, model.PregnancyLogEntry{Mood: "Sleepy"})
	assert.Error(t, err)
}

func TestPregnancyService_KickSessions(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryRepository()
	mother := model.FamilyMember{ID: uuid.New(), Name: "Brenda", Relationship: model.RelationshipSpouse, CreatedAt: time.Now()}
	require.NoError(t, repo.CreateMember(ctx, mother))

	svc := NewPregnancyService(repo, validator.New(), testLogger())
	current := time.Date(2024, 12, 17, 20, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return current }

	session, err := svc.StartKickSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, mother.ID, session.FamilyMemberID)
	assert.False(t, session.EndedAt.IsSet)

	current = current.Add(30 * time.Second)
	session, err = svc.RecordKick(ctx, session.ID)
	require.NoError(t, err)
	current = current.Add(45 * time.Second)
	session, err = svc.RecordKick(ctx, session.ID)
	require.NoError(t, err)
	assert.Len(t, session.Kicks, 2)

	current = current.Add(45 * time.Second)
	session, err = svc.EndKickSession(ctx, session.ID)
	require.NoError(t, err)
	assert.True(t, session.EndedAt.IsSet)
	assert.Equal(t, 120, session.DurationSeconds)

	// Kicks after the session ends are rejected.
	_, err = svc.RecordKick(ctx, session.ID)
	assert.Error(t, err)

	// Ending twice is a no-op.
	again, err := svc.EndKickSession(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, session.DurationSeconds, again.DurationSeconds)
}
