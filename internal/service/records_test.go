package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"carebook/internal/model"
	"carebook/internal/repository"
	"carebook/internal/storage"
	"carebook/internal/util"
	"carebook/internal/validator"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recordFixture(t *testing.T) (*RecordService, *repository.MemoryRepository, model.FamilyMember) {
	t.Helper()
	ctx := context.Background()
	repo := repository.NewMemoryRepository()

	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	alex := model.FamilyMember{ID: uuid.New(), Name: "Alex", Relationship: model.RelationshipSelf, CreatedAt: time.Now()}
	require.NoError(t, repo.CreateMember(ctx, alex))

	return NewRecordService(repo, store, validator.New(), testLogger()), repo, alex
}

func TestRecordService_DocumentVersioning(t *testing.T) {
	ctx := context.Background()
	svc, _, alex := recordFixture(t)

	doc, err := svc.UploadDocument(ctx, model.DocumentItem{
		Title:          "Blood Panel",
		Category:       "Lab Report",
		FileName:       "panel_v1.pdf",
		FamilyMemberID: util.Some(alex.ID),
	}, strings.NewReader("original content"), "application/pdf")
	require.NoError(t, err)
	assert.Equal(t, 1, doc.Version)
	assert.True(t, doc.StorageKey.IsSet)

	t.Run("metadata_edit_keeps_version", func(t *testing.T) {
		doc.Title = "Blood Panel (March)"
		updated, err := svc.UpdateDocument(ctx, doc, nil, "")
		require.NoError(t, err)
		assert.Equal(t, 1, updated.Version)
		doc = updated
	})

	t.Run("reupload_same_filename_keeps_version", func(t *testing.T) {
		updated, err := svc.UpdateDocument(ctx, doc, strings.NewReader("corrected scan"), "application/pdf")
		require.NoError(t, err)
		assert.Equal(t, 1, updated.Version)
		doc = updated
	})

	t.Run("new_filename_bumps_version", func(t *testing.T) {
		doc.FileName = "panel_v2.pdf"
		updated, err := svc.UpdateDocument(ctx, doc, strings.NewReader("new content"), "application/pdf")
		require.NoError(t, err)
		assert.Equal(t, 2, updated.Version)

		// The stored file follows the new upload.
		_, rc, err := svc.OpenDocument(ctx, updated.ID)
		require.NoError(t, err)
		defer rc.Close()
	})
}

func TestRecordService_UploadWithoutFile(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := recordFixture(t)

	doc, err := svc.UploadDocument(ctx, model.DocumentItem{
		Title:    "Insurance Card Photo",
		Category: "Insurance Card",
	}, nil, "")
	require.NoError(t, err)
	assert.False(t, doc.StorageKey.IsSet)

	_, err = svc.DocumentURL(ctx, doc.ID)
	assert.Error(t, err)
}

func TestRecordService_ToggleAdherence(t *testing.T) {
	ctx := context.Background()
	svc, _, alex := recordFixture(t)

	rx, err := svc.CreatePrescription(ctx, model.Prescription{
		MedicationName: "Lisinopril",
		FamilyMemberID: alex.ID,
		StartDate:      model.NewDate(2024, 1, 1),
	})
	require.NoError(t, err)

	day := model.NewDate(2024, 6, 1)

	rx, err = svc.ToggleAdherence(ctx, rx.ID, day, model.AdherenceTaken)
	require.NoError(t, err)
	assert.Equal(t, model.AdherenceTaken, rx.Adherence[day.String()])

	t.Run("different_status_overwrites", func(t *testing.T) {
		rx, err = svc.ToggleAdherence(ctx, rx.ID, day, model.AdherenceSkipped)
		require.NoError(t, err)
		require.Len(t, rx.Adherence, 1)
		assert.Equal(t, model.AdherenceSkipped, rx.Adherence[day.String()])
	})

	t.Run("same_status_removes_the_mark", func(t *testing.T) {
		rx, err = svc.ToggleAdherence(ctx, rx.ID, day, model.AdherenceSkipped)
		require.NoError(t, err)
		assert.Empty(t, rx.Adherence)
	})

	t.Run("round_trip_is_idempotent", func(t *testing.T) {
		before := len(rx.Adherence)
		rx, err = svc.ToggleAdherence(ctx, rx.ID, day, model.AdherenceTaken)
		require.NoError(t, err)
		rx, err = svc.ToggleAdherence(ctx, rx.ID, day, model.AdherenceTaken)
		require.NoError(t, err)
		assert.Len(t, rx.Adherence, before)
	})
}

func TestRecordService_UpdatePrescriptionKeepsAdherence(t *testing.T) {
	ctx := context.Background()
	svc, _, alex := recordFixture(t)

	rx, err := svc.CreatePrescription(ctx, model.Prescription{
		MedicationName: "Lisinopril",
		FamilyMemberID: alex.ID,
		StartDate:      model.NewDate(2024, 1, 1),
	})
	require.NoError(t, err)

	day := model.NewDate(2024, 6, 1)
	_, err = svc.ToggleAdherence(ctx, rx.ID, day, model.AdherenceTaken)
	require.NoError(t, err)

	rx.Dosage = "20mg"
	rx.Adherence = nil // callers cannot clobber the map through an edit
	updated, err := svc.UpdatePrescription(ctx, rx)
	require.NoError(t, err)
	assert.Equal(t, model.AdherenceTaken, updated.Adherence[day.String()])
}

func TestRecordService_CreateRequiresKnownMember(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := recordFixture(t)

	_, err := svc.CreatePrescription(ctx, model.Prescription{
		MedicationName: "Lisinopril",
		FamilyMemberID: uuid.New(),
		StartDate:      model.NewDate(2024, 1, 1),
	})
	assert.ErrorIs(t, err, repository.ErrMemberNotFound)

	_, err = svc.CreateVital(ctx, model.VitalSign{FamilyMemberID: uuid.New()})
	assert.ErrorIs(t, err, repository.ErrMemberNotFound)
}

func TestRecordService_ConditionDefaultsToActive(t *testing.T) {
	ctx := context.Background()
	svc, _, alex := recordFixture(t)

	cond, err := svc.CreateCondition(ctx, model.Condition{
		FamilyMemberID:  alex.ID,
		Name:            "Asthma",
		DateOfDiagnosis: model.NewDate(2020, 1, 1),
	})
	require.NoError(t, err)
	assert.Equal(t, model.ConditionActive, cond.Status)
}

func TestRecordService_DeleteDocumentRemovesFile(t *testing.T) {
	ctx := context.Background()
	svc, _, alex := recordFixture(t)

	doc, err := svc.UploadDocument(ctx, model.DocumentItem{
		Title:          "Scan",
		Category:       "Imaging Scan",
		FileName:       "scan.png",
		FamilyMemberID: util.Some(alex.ID),
	}, strings.NewReader("image bytes"), "image/png")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteDocument(ctx, doc.ID))

	_, err = svc.GetDocument(ctx, doc.ID)
	assert.ErrorIs(t, err, repository.ErrDocumentNotFound)
}
