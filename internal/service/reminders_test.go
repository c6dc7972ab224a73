package service

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"carebook/internal/model"
	"carebook/internal/repository"
	"carebook/internal/settings"
	"carebook/internal/util"
	"carebook/internal/validator"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reminderFixture(t *testing.T, fired FiredStore) (*ReminderService, *repository.MemoryRepository, *settings.Store, model.FamilyMember) {
	t.Helper()
	ctx := context.Background()
	repo := repository.NewMemoryRepository()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	settingsStore := settings.NewStore(client, validator.New())

	alex := model.FamilyMember{ID: uuid.New(), Name: "Alex", Relationship: model.RelationshipSelf, CreatedAt: time.Now()}
	require.NoError(t, repo.CreateMember(ctx, alex))
	require.NoError(t, repo.UpdateProfile(ctx, model.UserProfile{ID: alex.ID, Name: "Alex"}))

	if fired == nil {
		fired = NewMemoryFiredStore()
	}
	return NewReminderService(repo, settingsStore, fired, testLogger()), repo, settingsStore, alex
}

func TestReminderService_DueReminders(t *testing.T) {
	ctx := context.Background()
	svc, repo, _, alex := reminderFixture(t, nil)

	now := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC) // past the 09:00 default
	today := model.DateOf(now)
	svc.now = func() time.Time { return now }

	apt := model.Appointment{
		ID: uuid.New(), FamilyMemberID: alex.ID, Date: today.AddDays(1),
		Doctor: "Dr. Smith", Type: model.AppointmentCheckUp, CreatedAt: now,
	}
	require.NoError(t, repo.CreateAppointment(ctx, apt))

	// Outside the 2-day appointment window.
	require.NoError(t, repo.CreateAppointment(ctx, model.Appointment{
		ID: uuid.New(), FamilyMemberID: alex.ID, Date: today.AddDays(5),
		Doctor: "Dr. Far", Type: model.AppointmentCheckUp, CreatedAt: now,
	}))

	bill := model.Bill{
		ID: uuid.New(), ServiceProvider: "Quest Diagnostics", ServiceDate: today.AddDays(-3),
		AmountDue: 75.5, DueDate: today.AddDays(2), FamilyMemberID: util.Some(alex.ID), CreatedAt: now,
	}
	require.NoError(t, repo.CreateBill(ctx, bill))

	// Paid bills never remind.
	require.NoError(t, repo.CreateBill(ctx, model.Bill{
		ID: uuid.New(), ServiceProvider: "City General", ServiceDate: today.AddDays(-3),
		AmountDue: 200, DueDate: today.AddDays(1), IsPaid: true, CreatedAt: now,
	}))

	due, err := svc.DueReminders(ctx)
	require.NoError(t, err)

	require.Len(t, due, 3)
	assert.Equal(t, fmt.Sprintf("apt-%s", apt.ID), due[0].Key)
	assert.Equal(t, fmt.Sprintf("Reminder: Appointment with Dr. Smith is on %s.", apt.Date), due[0].Message)
	assert.Equal(t, fmt.Sprintf("bill-%s", bill.ID), due[1].Key)
	assert.Equal(t, "Bill due soon: $75.5 to Quest Diagnostics.", due[1].Message)
	assert.Equal(t, ReminderWarning, due[1].Level)
	assert.Equal(t, fmt.Sprintf("wellness-%s", today), due[2].Key)

	t.Run("second_scan_is_silent", func(t *testing.T) {
		due, err := svc.DueReminders(ctx)
		require.NoError(t, err)
		assert.Empty(t, due)
	})
}

func TestReminderService_WellnessGating(t *testing.T) {
	ctx := context.Background()

	t.Run("before_reminder_time", func(t *testing.T) {
		svc, _, _, _ := reminderFixture(t, nil)
		svc.now = func() time.Time { return time.Date(2024, 6, 1, 8, 30, 0, 0, time.UTC) }

		due, err := svc.DueReminders(ctx)
		require.NoError(t, err)
		assert.Empty(t, due)
	})

	t.Run("already_logged_today", func(t *testing.T) {
		svc, repo, _, alex := reminderFixture(t, nil)
		now := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
		svc.now = func() time.Time { return now }

		require.NoError(t, repo.CreateWellnessEntry(ctx, model.WellnessEntry{
			ID: uuid.New(), FamilyMemberID: alex.ID, Date: model.DateOf(now), CreatedAt: now,
		}))

		due, err := svc.DueReminders(ctx)
		require.NoError(t, err)
		assert.Empty(t, due)
	})

	t.Run("reminders_disabled", func(t *testing.T) {
		svc, _, settingsStore, _ := reminderFixture(t, nil)
		svc.now = func() time.Time { return time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC) }

		_, err := settingsStore.UpdateSection(ctx, "wellness", json.RawMessage(`{"reminders_enabled": false}`))
		require.NoError(t, err)

		due, err := svc.DueReminders(ctx)
		require.NoError(t, err)
		assert.Empty(t, due)
	})
}

func TestReminderService_BillingRemindersDisabled(t *testing.T) {
	ctx := context.Background()
	svc, repo, settingsStore, alex := reminderFixture(t, nil)
	now := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC) // before wellness time
	today := model.DateOf(now)
	svc.now = func() time.Time { return now }

	require.NoError(t, repo.CreateAppointment(ctx, model.Appointment{
		ID: uuid.New(), FamilyMemberID: alex.ID, Date: today.AddDays(1),
		Doctor: "Dr. Smith", Type: model.AppointmentCheckUp, CreatedAt: now,
	}))

	_, err := settingsStore.UpdateSection(ctx, "billing", json.RawMessage(`{"due_date_reminders_enabled": false}`))
	require.NoError(t, err)

	due, err := svc.DueReminders(ctx)
	require.NoError(t, err)
	assert.Empty(t, due)
}

func TestRedisFiredStore_MarkFired(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewRedisFiredStore(client)
	ctx := context.Background()

	first, err := store.MarkFired(ctx, "apt-123")
	require.NoError(t, err)
	assert.True(t, first)

	second, err := store.MarkFired(ctx, "apt-123")
	require.NoError(t, err)
	assert.False(t, second)

	other, err := store.MarkFired(ctx, "bill-456")
	require.NoError(t, err)
	assert.True(t, other)
}

func TestReminderTimeReached(t *testing.T) {
	at := func(h, m int) time.Time { return time.Date(2024, 6, 1, h, m, 0, 0, time.UTC) }

	assert.False(t, reminderTimeReached("09:00", at(8, 59)))
	assert.True(t, reminderTimeReached("09:00", at(9, 0)))
	assert.True(t, reminderTimeReached("09:00", at(14, 30)))

	// Malformed preferences never fire.
	for _, pref := range []string{"garbage", "", "9", "aa:00", "09:bb"} {
		assert.False(t, reminderTimeReached(pref, at(23, 59)), pref)
	}
}
