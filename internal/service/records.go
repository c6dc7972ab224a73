package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"carebook/internal/model"
	"carebook/internal/repository"
	"carebook/internal/storage"
	"carebook/internal/util"
	"carebook/internal/validator"

	"github.com/google/uuid"
)

// documentURLTTL bounds how long a generated download link stays valid.
const documentURLTTL = 15 * time.Minute

type RecordService struct {
	repo      repository.Repository
	storage   storage.Storage
	validator *validator.Validator
	logger    *slog.Logger
	now       func() time.Time
}

func NewRecordService(repo repository.Repository, store storage.Storage, v *validator.Validator, logger *slog.Logger) *RecordService {
	return &RecordService{
		repo:      repo,
		storage:   store,
		validator: v,
		logger:    logger,
		now:       time.Now,
	}
}

// UploadDocument stores the file content (when given) and records the
// document at version 1.
func (s *RecordService) UploadDocument(ctx context.Context, doc model.DocumentItem, content io.Reader, contentType string) (model.DocumentItem, error) {
	if err := s.validator.Validate(doc); err != nil {
		return model.DocumentItem{}, fmt.Errorf("records: validate document: %w", err)
	}

	now := s.now()
	doc.ID = uuid.New()
	doc.Version = 1
	if doc.UploadDate.IsZero() {
		doc.UploadDate = model.DateOf(now)
	}
	doc.CreatedAt = now
	doc.UpdatedAt = now

	if content != nil {
		ownerID := doc.FamilyMemberID.UnwrapOr(uuid.Nil)
		key, err := s.storage.Store(ctx, ownerID, doc.FileName, content, contentType)
		if err != nil {
			return model.DocumentItem{}, fmt.Errorf("records: store file: %w", err)
		}
		doc.StorageKey = util.Some(key)
	}

	if err := s.repo.CreateDocument(ctx, doc); err != nil {
		return model.DocumentItem{}, fmt.Errorf("records: create document: %w", err)
	}

	s.logger.InfoContext(ctx, "Document uploaded",
		"document_id", doc.ID,
		"category", doc.Category,
		"version", doc.Version)
	return doc, nil
}

// UpdateDocument applies metadata edits and, when new content arrives under
// a different file name, stores it and bumps the version. A re-upload with
// the same file name replaces content without a version change.
func (s *RecordService) UpdateDocument(ctx context.Context, doc model.DocumentItem, content io.Reader, contentType string) (model.DocumentItem, error) {
	if err := s.validator.Validate(doc); err != nil {
		return model.DocumentItem{}, fmt.Errorf("records: validate document: %w", err)
	}

	current, err := s.repo.GetDocument(ctx, doc.ID)
	if err != nil {
		return model.DocumentItem{}, fmt.Errorf("records: get document: %w", err)
	}

	doc.Version = current.Version
	doc.StorageKey = current.StorageKey
	doc.CreatedAt = current.CreatedAt
	doc.UpdatedAt = s.now()

	if content != nil {
		if doc.FileName != current.FileName {
			doc.Version = current.Version + 1
		}
		ownerID := doc.FamilyMemberID.UnwrapOr(uuid.Nil)
		key, err := s.storage.Store(ctx, ownerID, doc.FileName, content, contentType)
		if err != nil {
			return model.DocumentItem{}, fmt.Errorf("records: store file: %w", err)
		}
		if current.StorageKey.IsSet {
			if err := s.storage.Delete(ctx, current.StorageKey.Val); err != nil {
				s.logger.WarnContext(ctx, "Failed to delete replaced file", "key", current.StorageKey.Val, "error", err)
			}
		}
		doc.StorageKey = util.Some(key)
	}

	if err := s.repo.UpdateDocument(ctx, doc); err != nil {
		return model.DocumentItem{}, fmt.Errorf("records: update document: %w", err)
	}
	return doc, nil
}

func (s *RecordService) GetDocument(ctx context.Context, id uuid.UUID) (model.DocumentItem, error) {
	return s.repo.GetDocument(ctx, id)
}

func (s *RecordService) ListDocuments(ctx context.Context) ([]model.DocumentItem, error) {
	return s.repo.ListDocuments(ctx)
}

// DocumentURL returns a short-lived download link for a stored file.
func (s *RecordService) DocumentURL(ctx context.Context, id uuid.UUID) (string, error) {
	doc, err := s.repo.GetDocument(ctx, id)
	if err != nil {
		return "", fmt.Errorf("records: get document: %w", err)
	}
	if !doc.StorageKey.IsSet {
		return "", fmt.Errorf("records: document %s has no stored file", id)
	}
	url, err := s.storage.GetURL(ctx, doc.StorageKey.Val, documentURLTTL)
	if err != nil {
		return "", fmt.Errorf("records: get url: %w", err)
	}
	return url, nil
}

// OpenDocument streams a stored file for AI analysis or download.
func (s *RecordService) OpenDocument(ctx context.Context, id uuid.UUID) (model.DocumentItem, io.ReadCloser, error) {
	doc, err := s.repo.GetDocument(ctx, id)
	if err != nil {
		return model.DocumentItem{}, nil, fmt.Errorf("records: get document: %w", err)
	}
	if !doc.StorageKey.IsSet {
		return model.DocumentItem{}, nil, fmt.Errorf("records: document %s has no stored file", id)
	}
	rc, err := s.storage.Retrieve(ctx, doc.StorageKey.Val)
	if err != nil {
		return model.DocumentItem{}, nil, fmt.Errorf("records: retrieve file: %w", err)
	}
	return doc, rc, nil
}

func (s *RecordService) DeleteDocument(ctx context.Context, id uuid.UUID) error {
	doc, err := s.repo.GetDocument(ctx, id)
	if err != nil {
		return fmt.Errorf("records: get document: %w", err)
	}
	if err := s.repo.DeleteDocument(ctx, id); err != nil {
		return fmt.Errorf("records: delete document: %w", err)
	}
	if doc.StorageKey.IsSet {
		if err := s.storage.Delete(ctx, doc.StorageKey.Val); err != nil {
			s.logger.WarnContext(ctx, "Failed to delete stored file", "key", doc.StorageKey.Val, "error", err)
		}
	}
	return nil
}

func (s *RecordService) CreatePrescription(ctx context.Context, rx model.Prescription) (model.Prescription, error) {
	if err := s.validator.Validate(rx); err != nil {
		return model.Prescription{}, fmt.Errorf("records: validate prescription: %w", err)
	}
	if _, err := s.repo.GetMember(ctx, rx.FamilyMemberID); err != nil {
		return model.Prescription{}, fmt.Errorf("records: get member: %w", err)
	}

	now := s.now()
	rx.ID = uuid.New()
	if rx.Adherence == nil {
		rx.Adherence = map[string]model.AdherenceStatus{}
	}
	rx.CreatedAt = now
	rx.UpdatedAt = now
	if err := s.repo.CreatePrescription(ctx, rx); err != nil {
		return model.Prescription{}, fmt.Errorf("records: create prescription: %w", err)
	}
	return rx, nil
}

func (s *RecordService) GetPrescription(ctx context.Context, id uuid.UUID) (model.Prescription, error) {
	return s.repo.GetPrescription(ctx, id)
}

func (s *RecordService) ListPrescriptions(ctx context.Context) ([]model.Prescription, error) {
	return s.repo.ListPrescriptions(ctx)
}

func (s *RecordService) UpdatePrescription(ctx context.Context, rx model.Prescription) (model.Prescription, error) {
	if err := s.validator.Validate(rx); err != nil {
		return model.Prescription{}, fmt.Errorf("records: validate prescription: %w", err)
	}

	current, err := s.repo.GetPrescription(ctx, rx.ID)
	if err != nil {
		return model.Prescription{}, fmt.Errorf("records: get prescription: %w", err)
	}

	// Adherence is only changed through ToggleAdherence.
	rx.Adherence = current.Adherence
	rx.CreatedAt = current.CreatedAt
	rx.UpdatedAt = s.now()
	if err := s.repo.UpdatePrescription(ctx, rx); err != nil {
		return model.Prescription{}, fmt.Errorf("records: update prescription: %w", err)
	}
	return rx, nil
}

func (s *RecordService) DeletePrescription(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeletePrescription(ctx, id)
}

// ToggleAdherence marks one date taken or skipped. Toggling the date's
// current status removes the mark; a different status overwrites it. At
// most one status is kept per date.
func (s *RecordService) ToggleAdherence(ctx context.Context, id uuid.UUID, date model.Date, status model.AdherenceStatus) (model.Prescription, error) {
	rx, err := s.repo.GetPrescription(ctx, id)
	if err != nil {
		return model.Prescription{}, fmt.Errorf("records: get prescription: %w", err)
	}

	if rx.Adherence == nil {
		rx.Adherence = map[string]model.AdherenceStatus{}
	}
	key := date.String()
	if rx.Adherence[key] == status {
		delete(rx.Adherence, key)
	} else {
		rx.Adherence[key] = status
	}

	rx.UpdatedAt = s.now()
	if err := s.repo.UpdatePrescription(ctx, rx); err != nil {
		return model.Prescription{}, fmt.Errorf("records: update prescription: %w", err)
	}
	return rx, nil
}

func (s *RecordService) CreateAppointment(ctx context.Context, apt model.Appointment) (model.Appointment, error) {
	if err := s.validator.Validate(apt); err != nil {
		return model.Appointment{}, fmt.Errorf("records: validate appointment: %w", err)
	}
	if _, err := s.repo.GetMember(ctx, apt.FamilyMemberID); err != nil {
		return model.Appointment{}, fmt.Errorf("records: get member: %w", err)
	}

	now := s.now()
	apt.ID = uuid.New()
	apt.CreatedAt = now
	apt.UpdatedAt = now
	if err := s.repo.CreateAppointment(ctx, apt); err != nil {
		return model.Appointment{}, fmt.Errorf("records: create appointment: %w", err)
	}
	return apt, nil
}

func (s *RecordService) ListAppointments(ctx context.Context) ([]model.Appointment, error) {
	return s.repo.ListAppointments(ctx)
}

func (s *RecordService) UpdateAppointment(ctx context.Context, apt model.Appointment) (model.Appointment, error) {
	if err := s.validator.Validate(apt); err != nil {
		return model.Appointment{}, fmt.Errorf("records: validate appointment: %w", err)
	}
	apt.UpdatedAt = s.now()
	if err := s.repo.UpdateAppointment(ctx, apt); err != nil {
		return model.Appointment{}, fmt.Errorf("records: update appointment: %w", err)
	}
	return apt, nil
}

func (s *RecordService) DeleteAppointment(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteAppointment(ctx, id)
}

func (s *RecordService) CreateNote(ctx context.Context, note model.MedicalNote) (model.MedicalNote, error) {
	if err := s.validator.Validate(note); err != nil {
		return model.MedicalNote{}, fmt.Errorf("records: validate note: %w", err)
	}

	now := s.now()
	note.ID = uuid.New()
	if note.Date.IsZero() {
		note.Date = model.DateOf(now)
	}
	note.CreatedAt = now
	note.UpdatedAt = now
	if err := s.repo.CreateNote(ctx, note); err != nil {
		return model.MedicalNote{}, fmt.Errorf("records: create note: %w", err)
	}
	return note, nil
}

func (s *RecordService) ListNotes(ctx context.Context) ([]model.MedicalNote, error) {
	return s.repo.ListNotes(ctx)
}

func (s *RecordService) UpdateNote(ctx context.Context, note model.MedicalNote) (model.MedicalNote, error) {
	if err := s.validator.Validate(note); err != nil {
		return model.MedicalNote{}, fmt.Errorf("records: validate note: %w", err)
	}
	note.UpdatedAt = s.now()
	if err := s.repo.UpdateNote(ctx, note); err != nil {
		return model.MedicalNote{}, fmt.Errorf("records: update note: %w", err)
	}
	return note, nil
}

func (s *RecordService) DeleteNote(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteNote(ctx, id)
}

func (s *RecordService) CreateVital(ctx context.Context, vital model.VitalSign) (model.VitalSign, error) {
	if err := s.validator.Validate(vital); err != nil {
		return model.VitalSign{}, fmt.Errorf("records: validate vital: %w", err)
	}
	if _, err := s.repo.GetMember(ctx, vital.FamilyMemberID); err != nil {
		return model.VitalSign{}, fmt.Errorf("records: get member: %w", err)
	}

	now := s.now()
	vital.ID = uuid.New()
	if vital.Date.IsZero() {
		vital.Date = model.DateOf(now)
	}
	vital.CreatedAt = now
	vital.UpdatedAt = now
	if err := s.repo.CreateVital(ctx, vital); err != nil {
		return model.VitalSign{}, fmt.Errorf("records: create vital: %w", err)
	}
	return vital, nil
}

func (s *RecordService) ListVitalsByMember(ctx context.Context, memberID uuid.UUID) ([]model.VitalSign, error) {
	return s.repo.ListVitalsByMember(ctx, memberID)
}

func (s *RecordService) UpdateVital(ctx context.Context, vital model.VitalSign) (model.VitalSign, error) {
	vital.UpdatedAt = s.now()
	if err := s.repo.UpdateVital(ctx, vital); err != nil {
		return model.VitalSign{}, fmt.Errorf("records: update vital: %w", err)
	}
	return vital, nil
}

func (s *RecordService) DeleteVital(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteVital(ctx, id)
}

func (s *RecordService) CreateVaccination(ctx context.Context, rec model.VaccinationRecord) (model.VaccinationRecord, error) {
	if err := s.validator.Validate(rec); err != nil {
		return model.VaccinationRecord{}, fmt.Errorf("records: validate vaccination: %w", err)
	}
	if _, err := s.repo.GetMember(ctx, rec.FamilyMemberID); err != nil {
		return model.VaccinationRecord{}, fmt.Errorf("records: get member: %w", err)
	}

	now := s.now()
	rec.ID = uuid.New()
	rec.CreatedAt = now
	rec.UpdatedAt = now
	if err := s.repo.CreateVaccination(ctx, rec); err != nil {
		return model.VaccinationRecord{}, fmt.Errorf("records: create vaccination: %w", err)
	}
	return rec, nil
}

func (s *RecordService) ListVaccinationsByMember(ctx context.Context, memberID uuid.UUID) ([]model.VaccinationRecord, error) {
	return s.repo.ListVaccinationsByMember(ctx, memberID)
}

func (s *RecordService) UpdateVaccination(ctx context.Context, rec model.VaccinationRecord) (model.VaccinationRecord, error) {
	rec.UpdatedAt = s.now()
	if err := s.repo.UpdateVaccination(ctx, rec); err != nil {
		return model.VaccinationRecord{}, fmt.Errorf("records: update vaccination: %w", err)
	}
	return rec, nil
}

func (s *RecordService) DeleteVaccination(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteVaccination(ctx, id)
}

func (s *RecordService) CreateCondition(ctx context.Context, cond model.Condition) (model.Condition, error) {
	if cond.Status == "" {
		cond.Status = model.ConditionActive
	}
	if err := s.validator.Validate(cond); err != nil {
		return model.Condition{}, fmt.Errorf("records: validate condition: %w", err)
	}
	if _, err := s.repo.GetMember(ctx, cond.FamilyMemberID); err != nil {
		return model.Condition{}, fmt.Errorf("records: get member: %w", err)
	}

	now := s.now()
	cond.ID = uuid.New()
	cond.CreatedAt = now
	cond.UpdatedAt = now
	if err := s.repo.CreateCondition(ctx, cond); err != nil {
		return model.Condition{}, fmt.Errorf("records: create condition: %w", err)
	}
	return cond, nil
}

func (s *RecordService) ListConditionsByMember(ctx context.Context, memberID uuid.UUID) ([]model.Condition, error) {
	return s.repo.ListConditionsByMember(ctx, memberID)
}

func (s *RecordService) UpdateCondition(ctx context.Context, cond model.Condition) (model.Condition, error) {
	if err := s.validator.Validate(cond); err != nil {
		return model.Condition{}, fmt.Errorf("records: validate condition: %w", err)
	}
	cond.UpdatedAt = s.now()
	if err := s.repo.UpdateCondition(ctx, cond); err != nil {
		return model.Condition{}, fmt.Errorf("records: update condition: %w", err)
	}
	return cond, nil
}

func (s *RecordService) DeleteCondition(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteCondition(ctx, id)
}
