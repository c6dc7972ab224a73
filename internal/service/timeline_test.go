package service

import (
	"context"
	"testing"
	"time"

	"carebook/internal/model"
	"carebook/internal/repository"
	"carebook/internal/util"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimelineService_MemberTimeline(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryRepository()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	member := model.FamilyMember{ID: uuid.New(), Name: "Alex", Relationship: model.RelationshipSelf, CreatedAt: now}
	other := model.FamilyMember{ID: uuid.New(), Name: "Brenda", Relationship: model.RelationshipSpouse, CreatedAt: now.Add(time.Second)}
	require.NoError(t, repo.CreateMember(ctx, member))
	require.NoError(t, repo.CreateMember(ctx, other))

	require.NoError(t, repo.CreateDocument(ctx, model.DocumentItem{
		ID: uuid.New(), Title: "Blood Panel", Category: "Lab Report",
		UploadDate: model.NewDate(2024, 5, 10), FamilyMemberID: util.Some(member.ID),
		Version: 1, CreatedAt: now,
	}))
	require.NoError(t, repo.CreateDocument(ctx, model.DocumentItem{
		ID: uuid.New(), Title: "X-Ray", Category: "Imaging Scan",
		UploadDate: model.NewDate(2024, 5, 12), FamilyMemberID: util.Some(other.ID),
		Version: 1, CreatedAt: now,
	}))

	require.NoError(t, repo.CreatePrescription(ctx, model.Prescription{
		ID: uuid.New(), MedicationName: "Lisinopril", FamilyMemberID: member.ID,
		StartDate: model.NewDate(2024, 5, 10), Adherence: map[string]model.AdherenceStatus{}, CreatedAt: now,
	}))

	require.NoError(t, repo.CreateNote(ctx, model.MedicalNote{
		ID: uuid.New(), Title: "Allergy Note", Date: model.NewDate(2024, 5, 20),
		IsCritical: true, FamilyMemberID: util.Some(member.ID), CreatedAt: now,
	}))

	require.NoError(t, repo.CreateBill(ctx, model.Bill{
		ID: uuid.New(), ServiceProvider: "Quest Diagnostics", ServiceDate: model.NewDate(2024, 5, 15),
		AmountDue: 120, DueDate: model.NewDate(2024, 6, 15), FamilyMemberID: util.Some(member.ID), CreatedAt: now,
	}))

	require.NoError(t, repo.CreateVital(ctx, model.VitalSign{
		ID: uuid.New(), FamilyMemberID: member.ID, Date: model.NewDate(2024, 5, 18),
		WeightKg: util.Some(82.5), BloodPressure: util.Some("120/80"), HeartRate: util.Some(64), CreatedAt: now,
	}))

	require.NoError(t, repo.CreateVaccination(ctx, model.VaccinationRecord{
		ID: uuid.New(), FamilyMemberID: member.ID, VaccineName: "Tdap Booster",
		DateAdministered: model.NewDate(2024, 4, 1), CreatedAt: now,
	}))

	require.NoError(t, repo.CreateAppointment(ctx, model.Appointment{
		ID: uuid.New(), FamilyMemberID: member.ID, Date: model.NewDate(2024, 5, 25),
		Doctor: "Dr. Smith", Type: model.AppointmentCheckUp, CreatedAt: now,
	}))

	require.NoError(t, repo.CreateWellnessEntry(ctx, model.WellnessEntry{
		ID: uuid.New(), FamilyMemberID: member.ID, Date: model.NewDate(2024, 5, 30),
		Mood: util.Some(model.MoodHappy), SleepHours: util.Some(7.5),
		WaterIntakeLiters: util.Some(2.0), Activity: util.Some("Run"), CreatedAt: now,
	}))

	require.NoError(t, repo.CreateCondition(ctx, model.Condition{
		ID: uuid.New(), FamilyMemberID: member.ID, Name: "Hypertension",
		DateOfDiagnosis: model.NewDate(2024, 3, 1), Status: model.ConditionActive, CreatedAt: now,
	}))

	svc := NewTimelineService(repo, testLogger())
	events, err := svc.MemberTimeline(ctx, member.ID)
	require.NoError(t, err)

	require.Len(t, events, 9)

	// Newest first.
	for i := 1; i < len(events); i++ {
		assert.False(t, events[i-1].Date.Before(events[i].Date))
	}

	titles := make(map[TimelineEventType]string)
	for _, e := range events {
		titles[e.Type] = e.Title
	}
	assert.Equal(t, "Blood Panel", titles[EventDocument])
	assert.Equal(t, "Lisinopril", titles[EventPrescription])
	assert.Equal(t, "Allergy Note", titles[EventNote])
	assert.Equal(t, "Bill from Quest Diagnostics", titles[EventBill])
	assert.Equal(t, "Vitals Logged: 82.5kg, 120/80 BP, 64bpm", titles[EventVital])
	assert.Equal(t, "Tdap Booster", titles[EventVaccination])
	assert.Equal(t, "Check-up with Dr. Smith", titles[EventAppointment])
	assert.Equal(t, "Wellness: Happy • 7.5h sleep • 2L water • Run", titles[EventWellness])
	assert.Equal(t, "Diagnosis: Hypertension (Active)", titles[EventCondition])

	for _, e := range events {
		if e.Type == EventNote {
			assert.True(t, e.IsCritical)
		}
	}

	// The other member's document stays out.
	for _, e := range events {
		assert.NotEqual(t, "X-Ray", e.Title)
	}
}

func TestTimelineService_UnattributedBillFallsBackToPolicy(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryRepository()
	now := time.Now()

	insured := model.FamilyMember{ID: uuid.New(), Name: "Alex", Relationship: model.RelationshipSelf, CreatedAt: now}
	uninsured := model.FamilyMember{ID: uuid.New(), Name: "Brenda", Relationship: model.RelationshipSpouse, CreatedAt: now.Add(time.Second)}
	require.NoError(t, repo.CreateMember(ctx, insured))
	require.NoError(t, repo.CreateMember(ctx, uninsured))

	require.NoError(t, repo.CreatePolicy(ctx, model.InsurancePolicy{
		ID: uuid.New(), ProviderName: "Blue Shield", PolicyNumber: "BS-100",
		MemberID: insured.ID, EffectiveDate: model.NewDate(2024, 1, 1), CreatedAt: now,
	}))
	// No member link on this bill.
	require.NoError(t, repo.CreateBill(ctx, model.Bill{
		ID: uuid.New(), ServiceProvider: "City Hospital", ServiceDate: model.NewDate(2024, 5, 15),
		AmountDue: 300, DueDate: model.NewDate(2024, 6, 15), CreatedAt: now,
	}))

	svc := NewTimelineService(repo, testLogger())

	events, err := svc.MemberTimeline(ctx, insured.ID)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, EventBill, events[0].Type)
	assert.Equal(t, "Bill from City Hospital", events[0].Title)

	// Members without a policy don't pick up unattributed bills.
	events, err = svc.MemberTimeline(ctx, uninsured.ID)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestTimelineService_EmptyMember(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryRepository()
	member := model.FamilyMember{ID: uuid.New(), Name: "Alex", Relationship: model.RelationshipSelf, CreatedAt: time.Now()}
	require.NoError(t, repo.CreateMember(ctx, member))

	svc := NewTimelineService(repo, testLogger())
	events, err := svc.MemberTimeline(ctx, member.ID)

	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestTimelineService_UnknownMember(t *testing.T) {
	svc := NewTimelineService(repository.NewMemoryRepository(), testLogger())

	_, err := svc.MemberTimeline(context.Background(), uuid.New())

	assert.ErrorIs(t, err, repository.ErrMemberNotFound)
}

func TestVitalTitle_Fallback(t *testing.T) {
	title := vitalTitle(model.VitalSign{})
	assert.Equal(t, "Vitals Logged: Entry created", title)
}

func TestWellnessTitle_Fallback(t *testing.T) {
	title := wellnessTitle(model.WellnessEntry{})
	assert.Equal(t, "Wellness: Entry Logged", title)
}

func TestTimeline_SameDayOrderIsStable(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryRepository()
	now := time.Now()
	member := model.FamilyMember{ID: uuid.New(), Name: "Alex", Relationship: model.RelationshipSelf, CreatedAt: now}
	require.NoError(t, repo.CreateMember(ctx, member))

	day := model.NewDate(2024, 5, 10)
	require.NoError(t, repo.CreateDocument(ctx, model.DocumentItem{
		ID: uuid.New(), Title: "Doc", Category: "Other", UploadDate: day,
		FamilyMemberID: util.Some(member.ID), Version: 1, CreatedAt: now,
	}))
	require.NoError(t, repo.CreatePrescription(ctx, model.Prescription{
		ID: uuid.New(), MedicationName: "Rx", FamilyMemberID: member.ID,
		StartDate: day, Adherence: map[string]model.AdherenceStatus{}, CreatedAt: now,
	}))

	svc := NewTimelineService(repo, testLogger())
	events, err := svc.MemberTimeline(ctx, member.ID)
	require.NoError(t, err)

	// Same-day events keep concatenation order: documents before
	// prescriptions.
	require.Len(t, events, 2)
	assert.Equal(t, EventDocument, events[0].Type)
	assert.Equal(t, EventPrescription, events[1].Type)
}
