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

func searchFixture(t *testing.T) (*SearchService, model.FamilyMember) {
	t.Helper()
	ctx := context.Background()
	repo := repository.NewMemoryRepository()
	now := time.Now()

	alex := model.FamilyMember{ID: uuid.New(), Name: "Alex Johnson", Relationship: model.RelationshipSelf, CreatedAt: now}
	require.NoError(t, repo.CreateMember(ctx, alex))

	require.NoError(t, repo.CreateDocument(ctx, model.DocumentItem{
		ID: uuid.New(), Title: "Annual Blood Panel", Category: "Lab Report",
		UploadDate: model.NewDate(2024, 5, 1), FamilyMemberID: util.Some(alex.ID),
		Version: 1, CreatedAt: now,
	}))
	require.NoError(t, repo.CreatePrescription(ctx, model.Prescription{
		ID: uuid.New(), MedicationName: "Amoxicillin", FamilyMemberID: alex.ID,
		StartDate: model.NewDate(2024, 4, 1), Adherence: map[string]model.AdherenceStatus{}, CreatedAt: now,
	}))
	require.NoError(t, repo.CreateCondition(ctx, model.Condition{
		ID: uuid.New(), FamilyMemberID: alex.ID, Name: "Asthma",
		DateOfDiagnosis: model.NewDate(2020, 1, 1), Status: model.ConditionActive, CreatedAt: now,
	}))

	return NewSearchService(repo, testLogger()), alex
}

func TestSearchService_Search(t *testing.T) {
	ctx := context.Background()
	svc, alex := searchFixture(t)

	t.Run("term_too_short_returns_empty", func(t *testing.T) {
		// Length counts runes, so a single multi-byte character is
		// still one character.
		for _, term := range []string{"", "a", "é", "山"} {
			results, err := svc.Search(ctx, term)
			require.NoError(t, err)
			assert.Empty(t, results)
		}
	})

	t.Run("two_rune_term_searches", func(t *testing.T) {
		results, err := svc.Search(ctx, "al")
		require.NoError(t, err)
		assert.NotEmpty(t, results)
	})

	t.Run("case_insensitive_substring", func(t *testing.T) {
		results, err := svc.Search(ctx, "BLOOD")
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, ResultDocument, results[0].Type)
		assert.Equal(t, "Category: Lab Report", results[0].Description)
	})

	t.Run("source_order_members_documents_prescriptions_conditions", func(t *testing.T) {
		// "al" hits both the member and the document title.
		results, err := svc.Search(ctx, "al")
		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, ResultFamilyMember, results[0].Type)
		assert.Equal(t, "Relationship: Self", results[0].Description)
		assert.Equal(t, ResultDocument, results[1].Type)
	})

	t.Run("prescription_description_names_member", func(t *testing.T) {
		results, err := svc.Search(ctx, "amox")
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, ResultPrescription, results[0].Type)
		assert.Equal(t, "For: Alex Johnson", results[0].Description)
	})

	t.Run("condition_links_to_member", func(t *testing.T) {
		results, err := svc.Search(ctx, "asthma")
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, ResultCondition, results[0].Type)
		assert.Equal(t, "Member: Alex Johnson", results[0].Description)
		assert.Contains(t, results[0].Link, alex.ID.String())
	})

	t.Run("no_matches", func(t *testing.T) {
		results, err := svc.Search(ctx, "zzz")
		require.NoError(t, err)
		assert.Empty(t, results)
	})
}

func TestSearchService_DanglingMemberReference(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryRepository()
	now := time.Now()

	alex := model.FamilyMember{ID: uuid.New(), Name: "Alex", Relationship: model.RelationshipSelf, CreatedAt: now}
	require.NoError(t, repo.CreateMember(ctx, alex))
	require.NoError(t, repo.CreatePrescription(ctx, model.Prescription{
		ID: uuid.New(), MedicationName: "Metformin", FamilyMemberID: uuid.New(),
		StartDate: model.NewDate(2024, 4, 1), Adherence: map[string]model.AdherenceStatus{}, CreatedAt: now,
	}))

	svc := NewSearchService(repo, testLogger())
	results, err := svc.Search(ctx, "metformin")

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "For: Unknown", results[0].Description)
}
