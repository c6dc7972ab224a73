package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"carebook/internal/model"
	"carebook/internal/repository"
	"carebook/internal/util"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardService_ActionItems_GoldenOrder(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryRepository()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	today := model.DateOf(now)

	alex := model.FamilyMember{ID: uuid.New(), Name: "Alex", Relationship: model.RelationshipSelf, CreatedAt: now}
	charlie := model.FamilyMember{ID: uuid.New(), Name: "Charlie", Relationship: model.RelationshipChild, CreatedAt: now.Add(time.Second)}
	require.NoError(t, repo.CreateMember(ctx, alex))
	require.NoError(t, repo.CreateMember(ctx, charlie))
	require.NoError(t, repo.UpdateProfile(ctx, model.UserProfile{ID: alex.ID, Name: "Alex"}))

	require.NoError(t, repo.CreateNote(ctx, model.MedicalNote{
		ID: uuid.New(), Title: "Penicillin Allergy", IsCritical: true,
		Date: model.NewDate(2020, 3, 10), FamilyMemberID: util.Some(charlie.ID), CreatedAt: now,
	}))

	// Expiring in 5 days, also down to 1 refill: contributes two items.
	rx := model.Prescription{
		ID: uuid.New(), MedicationName: "Metformin", FamilyMemberID: charlie.ID,
		StartDate: today.AddDays(-25), EndDate: util.Some(today.AddDays(5)),
		RefillsRemaining: util.Some(1), Adherence: map[string]model.AdherenceStatus{}, CreatedAt: now,
	}
	require.NoError(t, repo.CreatePrescription(ctx, rx))

	bill := model.Bill{
		ID: uuid.New(), ServiceProvider: "Quest Diagnostics", ServiceDate: today.AddDays(-5),
		AmountDue: 120.5, DueDate: today.AddDays(10), FamilyMemberID: util.Some(alex.ID), CreatedAt: now,
	}
	require.NoError(t, repo.CreateBill(ctx, bill))

	svc := NewDashboardService(repo, testLogger())
	svc.now = func() time.Time { return now }

	items, err := svc.ActionItems(ctx)
	require.NoError(t, err)

	require.Len(t, items, 5)
	assert.Equal(t, "Critical Note: Charlie", items[0].Title)
	assert.Equal(t, "Penicillin Allergy", items[0].Description)
	assert.Equal(t, "Refill Needed: Metformin", items[1].Title)
	assert.Equal(t, rx.ID.String(), items[1].ID)
	assert.Equal(t, "Low Refills: Metformin", items[2].Title)
	assert.Equal(t, rx.ID.String()+"-refill", items[2].ID)
	assert.Equal(t, "1 refill(s) left for Charlie.", items[2].Description)
	assert.Equal(t, fmt.Sprintf("Bill Due: %s", bill.DueDate), items[3].Title)
	assert.Equal(t, "$120.50 to Quest Diagnostics", items[3].Description)
	assert.Equal(t, "wellness", items[4].ID)
	assert.Equal(t, "Daily Wellness Reminder", items[4].Title)
}

func TestDashboardService_ActionItems_WellnessNudge(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryRepository()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	alex := model.FamilyMember{ID: uuid.New(), Name: "Alex", Relationship: model.RelationshipSelf, CreatedAt: now}
	require.NoError(t, repo.CreateMember(ctx, alex))
	require.NoError(t, repo.UpdateProfile(ctx, model.UserProfile{ID: alex.ID, Name: "Alex"}))

	svc := NewDashboardService(repo, testLogger())
	svc.now = func() time.Time { return now }

	items, err := svc.ActionItems(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "wellness", items[0].ID)
	assert.Equal(t, "Daily Wellness Reminder", items[0].Title)

	// Logging today's entry clears the nudge.
	require.NoError(t, repo.CreateWellnessEntry(ctx, model.WellnessEntry{
		ID: uuid.New(), FamilyMemberID: alex.ID, Date: model.DateOf(now),
		Mood: util.Some(model.MoodHappy), CreatedAt: now,
	}))

	items, err = svc.ActionItems(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestDashboardService_ActionItems_BillWindows(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryRepository()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	today := model.DateOf(now)

	alex := model.FamilyMember{ID: uuid.New(), Name: "Alex", Relationship: model.RelationshipSelf, CreatedAt: now}
	require.NoError(t, repo.CreateMember(ctx, alex))
	require.NoError(t, repo.UpdateProfile(ctx, model.UserProfile{ID: alex.ID, Name: "Alex"}))
	require.NoError(t, repo.CreateWellnessEntry(ctx, model.WellnessEntry{
		ID: uuid.New(), FamilyMemberID: alex.ID, Date: today, CreatedAt: now,
	}))

	cases := []struct {
		name    string
		dueDate model.Date
		isPaid  bool
		want    bool
	}{
		{"due_in_ten_days", today.AddDays(10), false, true},
		{"due_today", today, false, true},
		{"due_at_window_edge", today.AddDays(14), false, true},
		{"past_window", today.AddDays(15), false, false},
		{"overdue", today.AddDays(-1), false, false},
		{"paid_bill_never_appears", today.AddDays(10), true, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			bill := model.Bill{
				ID: uuid.New(), ServiceProvider: "Clinic", ServiceDate: today,
				AmountDue: 50, DueDate: tc.dueDate, IsPaid: tc.isPaid, CreatedAt: now,
			}
			require.NoError(t, repo.CreateBill(ctx, bill))
			defer repo.DeleteBill(ctx, bill.ID)

			svc := NewDashboardService(repo, testLogger())
			svc.now = func() time.Time { return now }

			items, err := svc.ActionItems(ctx)
			require.NoError(t, err)
			assert.Equal(t, tc.want, len(items) == 1)
		})
	}
}

func TestDashboardService_ActionItems_LowRefillIndependentOfEndDate(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryRepository()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	alex := model.FamilyMember{ID: uuid.New(), Name: "Alex", Relationship: model.RelationshipSelf, CreatedAt: now}
	require.NoError(t, repo.CreateMember(ctx, alex))
	require.NoError(t, repo.UpdateProfile(ctx, model.UserProfile{ID: alex.ID, Name: "Alex"}))
	require.NoError(t, repo.CreateWellnessEntry(ctx, model.WellnessEntry{
		ID: uuid.New(), FamilyMemberID: alex.ID, Date: model.DateOf(now), CreatedAt: now,
	}))

	// No end date at all, but only one refill left.
	require.NoError(t, repo.CreatePrescription(ctx, model.Prescription{
		ID: uuid.New(), MedicationName: "Lisinopril", FamilyMemberID: alex.ID,
		StartDate: model.NewDate(2022, 1, 15), RefillsRemaining: util.Some(1),
		Adherence: map[string]model.AdherenceStatus{}, CreatedAt: now,
	}))

	svc := NewDashboardService(repo, testLogger())
	svc.now = func() time.Time { return now }

	items, err := svc.ActionItems(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Low Refills: Lisinopril", items[0].Title)
}

func TestDashboardService_UpcomingAppointments(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryRepository()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	today := model.DateOf(now)

	alex := model.FamilyMember{ID: uuid.New(), Name: "Alex", Relationship: model.RelationshipSelf, CreatedAt: now}
	require.NoError(t, repo.CreateMember(ctx, alex))

	offsets := []int{-3, 20, 5, 1, 12} // one past, four future
	for i, off := range offsets {
		require.NoError(t, repo.CreateAppointment(ctx, model.Appointment{
			ID: uuid.New(), FamilyMemberID: alex.ID, Date: today.AddDays(off),
			Doctor: fmt.Sprintf("Dr. %d", i), Type: model.AppointmentCheckUp,
			CreatedAt: now.Add(time.Duration(i) * time.Second),
		}))
	}

	svc := NewDashboardService(repo, testLogger())
	svc.now = func() time.Time { return now }

	upcoming, err := svc.UpcomingAppointments(ctx)
	require.NoError(t, err)

	// Capped at three, soonest first, the past one excluded.
	require.Len(t, upcoming, 3)
	assert.Equal(t, today.AddDays(1), upcoming[0].Date)
	assert.Equal(t, today.AddDays(5), upcoming[1].Date)
	assert.Equal(t, today.AddDays(12), upcoming[2].Date)
}

func TestDashboardService_RecentActivity(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryRepository()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	alex := model.FamilyMember{ID: uuid.New(), Name: "Alex", Relationship: model.RelationshipSelf, CreatedAt: now}
	require.NoError(t, repo.CreateMember(ctx, alex))

	for i := 0; i < 4; i++ {
		require.NoError(t, repo.CreateDocument(ctx, model.DocumentItem{
			ID: uuid.New(), Title: fmt.Sprintf("Doc %d", i), Category: "Other",
			UploadDate: model.NewDate(2024, 5, 1+i), FamilyMemberID: util.Some(alex.ID),
			Version: 1, CreatedAt: now.Add(time.Duration(i) * time.Second),
		}))
	}
	require.NoError(t, repo.CreatePrescription(ctx, model.Prescription{
		ID: uuid.New(), MedicationName: "Lisinopril", FamilyMemberID: alex.ID,
		StartDate: model.NewDate(2024, 5, 20), Adherence: map[string]model.AdherenceStatus{}, CreatedAt: now,
	}))
	require.NoError(t, repo.CreateWellnessEntry(ctx, model.WellnessEntry{
		ID: uuid.New(), FamilyMemberID: alex.ID, Date: model.NewDate(2024, 5, 25), CreatedAt: now,
	}))

	svc := NewDashboardService(repo, testLogger())
	svc.now = func() time.Time { return now }

	activity, err := svc.RecentActivity(ctx)
	require.NoError(t, err)

	require.Len(t, activity, 5)
	assert.Equal(t, `Wellness entry for Alex logged`, activity[0].Text)
	assert.Equal(t, `Prescription "Lisinopril" started for Alex`, activity[1].Text)
	assert.Equal(t, `Document "Doc 3" added for Alex`, activity[2].Text)
}

func TestDashboardService_Overview(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryRepository()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, repository.Seed(ctx, repo, now))

	svc := NewDashboardService(repo, testLogger())
	svc.now = func() time.Time { return now }

	overview, err := svc.Overview(ctx)
	require.NoError(t, err)

	assert.Equal(t, 3, overview.Stats.FamilyMembers)
	assert.Equal(t, 3, overview.Stats.Documents)
	assert.Equal(t, len(overview.ActionItems), overview.Stats.UrgentActions)
	assert.Equal(t, len(overview.Appointments), overview.Stats.UpcomingAppointments)
	assert.NotEmpty(t, overview.RecentActivity)
}
