package service

import (
	"context"
	"testing"
	"time"

	"carebook/internal/model"
	"carebook/internal/repository"
	"carebook/internal/validator"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func familyFixture(t *testing.T) (*FamilyService, repository.Repository) {
	t.Helper()
	repo := repository.NewMemoryRepository()
	return NewFamilyService(repo, validator.New(), testLogger()), repo
}

func TestFamilyService_CreateMember(t *testing.T) {
	ctx := context.Background()
	svc, _ := familyFixture(t)
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	created, err := svc.CreateMember(ctx, model.FamilyMember{
		Name:         "Alex Johnson",
		DateOfBirth:  model.NewDate(1988, 4, 12),
		Relationship: model.RelationshipSelf,
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, now, created.CreatedAt)
	assert.NotNil(t, created.Allergies)

	t.Run("missing_name_is_rejected", func(t *testing.T) {
		_, err := svc.CreateMember(ctx, model.FamilyMember{
			Relationship: model.RelationshipChild,
		})
		assert.Error(t, err)
	})
}

func TestFamilyService_UpdateMemberKeepsCreatedAt(t *testing.T) {
	ctx := context.Background()
	svc, _ := familyFixture(t)
	createdTime := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return createdTime }

	member, err := svc.CreateMember(ctx, model.FamilyMember{
		Name:         "Jamie Johnson",
		DateOfBirth:  model.NewDate(1990, 9, 3),
		Relationship: model.RelationshipSpouse,
	})
	require.NoError(t, err)

	later := createdTime.AddDate(0, 1, 0)
	svc.now = func() time.Time { return later }

	member.Name = "Jamie Johnson-Smith"
	updated, err := svc.UpdateMember(ctx, member)
	require.NoError(t, err)
	assert.Equal(t, "Jamie Johnson-Smith", updated.Name)
	assert.Equal(t, createdTime, updated.CreatedAt)
	assert.Equal(t, later, updated.UpdatedAt)
}

func TestFamilyService_DeleteMemberCascades(t *testing.T) {
	ctx := context.Background()
	svc, repo := familyFixture(t)

	member, err := svc.CreateMember(ctx, model.FamilyMember{
		Name:         "Charlie Johnson",
		DateOfBirth:  model.NewDate(2015, 2, 20),
		Relationship: model.RelationshipChild,
	})
	require.NoError(t, err)

	require.NoError(t, repo.CreateVaccination(ctx, model.VaccinationRecord{
		ID:             uuid.New(),
		FamilyMemberID: member.ID,
		VaccineName:    "MMR",
	}))

	require.NoError(t, svc.DeleteMember(ctx, member.ID))

	_, err = svc.GetMember(ctx, member.ID)
	assert.ErrorIs(t, err, repository.ErrMemberNotFound)

	vaccinations, err := repo.ListVaccinationsByMember(ctx, member.ID)
	require.NoError(t, err)
	assert.Empty(t, vaccinations)

	t.Run("deleting_again_reports_not_found", func(t *testing.T) {
		err := svc.DeleteMember(ctx, member.ID)
		assert.ErrorIs(t, err, repository.ErrMemberNotFound)
	})
}

func TestFamilyService_MemberName(t *testing.T) {
	ctx := context.Background()
	svc, _ := familyFixture(t)

	member, err := svc.CreateMember(ctx, model.FamilyMember{
		Name:         "Alex Johnson",
		DateOfBirth:  model.NewDate(1988, 4, 12),
		Relationship: model.RelationshipSelf,
	})
	require.NoError(t, err)

	name, err := svc.MemberName(ctx, &member.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alex Johnson", name)

	name, err = svc.MemberName(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, "General", name)

	dangling := uuid.New()
	name, err = svc.MemberName(ctx, &dangling)
	require.NoError(t, err)
	assert.Equal(t, "Unknown Member", name)
}

func TestFamilyService_Contacts(t *testing.T) {
	ctx := context.Background()
	svc, _ := familyFixture(t)

	contact, err := svc.CreateContact(ctx, model.EmergencyContact{
		Name:         "Dr. Smith",
		Phone:        "555-0100",
		Relationship: "Family Doctor",
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, contact.ID)

	contact.Phone = "555-0199"
	updated, err := svc.UpdateContact(ctx, contact)
	require.NoError(t, err)
	assert.Equal(t, "555-0199", updated.Phone)

	require.NoError(t, svc.DeleteContact(ctx, contact.ID))

	contacts, err := svc.ListContacts(ctx)
	require.NoError(t, err)
	assert.Empty(t, contacts)
}
