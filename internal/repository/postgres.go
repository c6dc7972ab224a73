package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"carebook/internal/model"
	"carebook/internal/util"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository persists records in Postgres through a pgx pool.
// Collection-valued fields (allergies, adherence, symptoms) are stored as
// jsonb so reads round-trip without a join.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (r *PostgresRepository) HealthCheck(ctx context.Context) error {
	if err := r.pool.Ping(ctx); err != nil {
		return fmt.Errorf("database: ping: %w", err)
	}
	return nil
}

func Connect(ctx context.Context, connString string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("database: parse config: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("database: create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("database: ping: %w", err)
	}
	return pool, nil
}

func optPtr[T any](o util.Optional[T]) *T {
	if !o.IsSet {
		return nil
	}
	v := o.Val
	return &v
}

func ptrOpt[T any](p *T) util.Optional[T] {
	if p == nil {
		return util.None[T]()
	}
	return util.Some(*p)
}

func toJSON(v any) ([]byte, error) {
	if v == nil {
		return []byte("null"), nil
	}
	return json.Marshal(v)
}

// Family members

func (r *PostgresRepository) CreateMember(ctx context.Context, member model.FamilyMember) error {
	allergies, err := toJSON(member.Allergies)
	if err != nil {
		return fmt.Errorf("database: encode allergies: %w", err)
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO tbl_family_member (id, name, date_of_birth, relationship, medical_history_summary, blood_type, allergies, profile_photo_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		member.ID, member.Name, member.DateOfBirth, member.Relationship, member.MedicalHistorySummary,
		optPtr(member.BloodType), allergies, optPtr(member.ProfilePhotoURL), member.CreatedAt, member.UpdatedAt)
	if err != nil {
		return fmt.Errorf("database: insert family member: %w", err)
	}
	return nil
}

func scanMember(row pgx.Row) (model.FamilyMember, error) {
	var m model.FamilyMember
	var bloodType, photoURL *string
	var allergies []byte
	err := row.Scan(&m.ID, &m.Name, &m.DateOfBirth, &m.Relationship, &m.MedicalHistorySummary,
		&bloodType, &allergies, &photoURL, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return model.FamilyMember{}, err
	}
	m.BloodType = ptrOpt(bloodType)
	m.ProfilePhotoURL = ptrOpt(photoURL)
	if len(allergies) > 0 {
		if err := json.Unmarshal(allergies, &m.Allergies); err != nil {
			return model.FamilyMember{}, fmt.Errorf("decode allergies: %w", err)
		}
	}
	return m, nil
}

const memberColumns = "id, name, date_of_birth, relationship, medical_history_summary, blood_type, allergies, profile_photo_url, created_at, updated_at"

func (r *PostgresRepository) GetMember(ctx context.Context, id uuid.UUID) (model.FamilyMember, error) {
	row := r.pool.QueryRow(ctx, "SELECT "+memberColumns+" FROM tbl_family_member WHERE id = $1", id)
	member, err := scanMember(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.FamilyMember{}, ErrMemberNotFound
	}
	if err != nil {
		return model.FamilyMember{}, fmt.Errorf("database: get family member: %w", err)
	}
	return member, nil
}

func (r *PostgresRepository) ListMembers(ctx context.Context) ([]model.FamilyMember, error) {
	rows, err := r.pool.Query(ctx, "SELECT "+memberColumns+" FROM tbl_family_member ORDER BY created_at")
	if err != nil {
		return nil, fmt.Errorf("database: list family members: %w", err)
	}
	defer rows.Close()

	var members []model.FamilyMember
	for rows.Next() {
		member, err := scanMember(rows)
		if err != nil {
			return nil, fmt.Errorf("database: scan family member: %w", err)
		}
		members = append(members, member)
	}
	return members, rows.Err()
}

func (r *PostgresRepository) UpdateMember(ctx context.Context, member model.FamilyMember) error {
	allergies, err := toJSON(member.Allergies)
	if err != nil {
		return fmt.Errorf("database: encode allergies: %w", err)
	}
	tag, err := r.pool.Exec(ctx, `
		UPDATE tbl_family_member
		SET name = $2, date_of_birth = $3, relationship = $4, medical_history_summary = $5,
			blood_type = $6, allergies = $7, profile_photo_url = $8, updated_at = $9
		WHERE id = $1`,
		member.ID, member.Name, member.DateOfBirth, member.Relationship, member.MedicalHistorySummary,
		optPtr(member.BloodType), allergies, optPtr(member.ProfilePhotoURL), member.UpdatedAt)
	if err != nil {
		return fmt.Errorf("database: update family member: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrMemberNotFound
	}
	return nil
}

func (r *PostgresRepository) DeleteMember(ctx context.Context, id uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("database: begin delete member: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "UPDATE tbl_document SET family_member_id = NULL WHERE family_member_id = $1", id); err != nil {
		return fmt.Errorf("database: detach documents: %w", err)
	}
	if _, err := tx.Exec(ctx, "UPDATE tbl_medical_note SET family_member_id = NULL WHERE family_member_id = $1", id); err != nil {
		return fmt.Errorf("database: detach medical notes: %w", err)
	}
	if _, err := tx.Exec(ctx, "UPDATE tbl_bill SET family_member_id = NULL WHERE family_member_id = $1", id); err != nil {
		return fmt.Errorf("database: detach bills: %w", err)
	}
	if _, err := tx.Exec(ctx, `
		UPDATE tbl_bill SET appointment_id = NULL
		WHERE appointment_id IN (SELECT id FROM tbl_appointment WHERE family_member_id = $1)`, id); err != nil {
		return fmt.Errorf("database: detach bills from appointments: %w", err)
	}
	if _, err := tx.Exec(ctx, `
		DELETE FROM tbl_insurance_claim
		WHERE policy_id IN (SELECT id FROM tbl_insurance_policy WHERE member_id = $1)`, id); err != nil {
		return fmt.Errorf("database: delete claims: %w", err)
	}
	if _, err := tx.Exec(ctx, "DELETE FROM tbl_insurance_policy WHERE member_id = $1", id); err != nil {
		return fmt.Errorf("database: delete insurance policies: %w", err)
	}
	for _, table := range []string{
		"tbl_prescription", "tbl_appointment", "tbl_vital_sign",
		"tbl_vaccination", "tbl_condition", "tbl_wellness_entry",
		"tbl_pregnancy_log", "tbl_kick_session",
	} {
		if _, err := tx.Exec(ctx, "DELETE FROM "+table+" WHERE family_member_id = $1", id); err != nil {
			return fmt.Errorf("database: delete member records from %s: %w", table, err)
		}
	}
	if _, err := tx.Exec(ctx, "DELETE FROM tbl_pregnancy WHERE family_member_id = $1", id); err != nil {
		return fmt.Errorf("database: delete pregnancy data: %w", err)
	}
	tag, err := tx.Exec(ctx, "DELETE FROM tbl_family_member WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("database: delete family member: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrMemberNotFound
	}
	return tx.Commit(ctx)
}

// Documents

const documentColumns = "id, title, category, upload_date, file_name, storage_key, family_member_id, version, created_at, updated_at"

func (r *PostgresRepository) CreateDocument(ctx context.Context, doc model.DocumentItem) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO tbl_document (`+documentColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		doc.ID, doc.Title, doc.Category, doc.UploadDate, doc.FileName,
		optPtr(doc.StorageKey), optPtr(doc.FamilyMemberID), doc.Version, doc.CreatedAt, doc.UpdatedAt)
	if err != nil {
		return fmt.Errorf("database: insert document: %w", err)
	}
	return nil
}

func scanDocument(row pgx.Row) (model.DocumentItem, error) {
	var d model.DocumentItem
	var storageKey *string
	var memberID *uuid.UUID
	err := row.Scan(&d.ID, &d.Title, &d.Category, &d.UploadDate, &d.FileName,
		&storageKey, &memberID, &d.Version, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return model.DocumentItem{}, err
	}
	d.StorageKey = ptrOpt(storageKey)
	d.FamilyMemberID = ptrOpt(memberID)
	return d, nil
}

func (r *PostgresRepository) GetDocument(ctx context.Context, id uuid.UUID) (model.DocumentItem, error) {
	row := r.pool.QueryRow(ctx, "SELECT "+documentColumns+" FROM tbl_document WHERE id = $1", id)
	doc, err := scanDocument(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.DocumentItem{}, ErrDocumentNotFound
	}
	if err != nil {
		return model.DocumentItem{}, fmt.Errorf("database: get document: %w", err)
	}
	return doc, nil
}

func (r *PostgresRepository) ListDocuments(ctx context.Context) ([]model.DocumentItem, error) {
	rows, err := r.pool.Query(ctx, "SELECT "+documentColumns+" FROM tbl_document ORDER BY created_at")
	if err != nil {
		return nil, fmt.Errorf("database: list documents: %w", err)
	}
	defer rows.Close()

	var docs []model.DocumentItem
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("database: scan document: %w", err)
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

func (r *PostgresRepository) UpdateDocument(ctx context.Context, doc model.DocumentItem) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE tbl_document
		SET title = $2, category = $3, upload_date = $4, file_name = $5,
			storage_key = $6, family_member_id = $7, version = $8, updated_at = $9
		WHERE id = $1`,
		doc.ID, doc.Title, doc.Category, doc.UploadDate, doc.FileName,
		optPtr(doc.StorageKey), optPtr(doc.FamilyMemberID), doc.Version, doc.UpdatedAt)
	if err != nil {
		return fmt.Errorf("database: update document: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrDocumentNotFound
	}
	return nil
}

func (r *PostgresRepository) DeleteDocument(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM tbl_document WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("database: delete document: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrDocumentNotFound
	}
	return nil
}

// Prescriptions

const prescriptionColumns = "id, medication_name, dosage, frequency, prescribing_doctor, pharmacy, family_member_id, start_date, end_date, notes, supply_days, refills_remaining, condition_id, adherence, created_at, updated_at"

func (r *PostgresRepository) CreatePrescription(ctx context.Context, rx model.Prescription) error {
	adherence, err := toJSON(rx.Adherence)
	if err != nil {
		return fmt.Errorf("database: encode adherence: %w", err)
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO tbl_prescription (`+prescriptionColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
		rx.ID, rx.MedicationName, rx.Dosage, rx.Frequency, rx.PrescribingDoctor,
		optPtr(rx.Pharmacy), rx.FamilyMemberID, rx.StartDate, optPtr(rx.EndDate), rx.Notes,
		optPtr(rx.SupplyDays), optPtr(rx.RefillsRemaining), optPtr(rx.ConditionID), adherence,
		rx.CreatedAt, rx.UpdatedAt)
	if err != nil {
		return fmt.Errorf("database: insert prescription: %w", err)
	}
	return nil
}

func scanPrescription(row pgx.Row) (model.Prescription, error) {
	var rx model.Prescription
	var pharmacy *string
	var endDate *model.Date
	var supplyDays, refills *int
	var conditionID *uuid.UUID
	var adherence []byte
	err := row.Scan(&rx.ID, &rx.MedicationName, &rx.Dosage, &rx.Frequency, &rx.PrescribingDoctor,
		&pharmacy, &rx.FamilyMemberID, &rx.StartDate, &endDate, &rx.Notes,
		&supplyDays, &refills, &conditionID, &adherence, &rx.CreatedAt, &rx.UpdatedAt)
	if err != nil {
		return model.Prescription{}, err
	}
	rx.Pharmacy = ptrOpt(pharmacy)
	rx.EndDate = ptrOpt(endDate)
	rx.SupplyDays = ptrOpt(supplyDays)
	rx.RefillsRemaining = ptrOpt(refills)
	rx.ConditionID = ptrOpt(conditionID)
	rx.Adherence = map[string]model.AdherenceStatus{}
	if len(adherence) > 0 {
		if err := json.Unmarshal(adherence, &rx.Adherence); err != nil {
			return model.Prescription{}, fmt.Errorf("decode adherence: %w", err)
		}
	}
	return rx, nil
}

func (r *PostgresRepository) GetPrescription(ctx context.Context, id uuid.UUID) (model.Prescription, error) {
	row := r.pool.QueryRow(ctx, "SELECT "+prescriptionColumns+" FROM tbl_prescription WHERE id = $1", id)
	rx, err := scanPrescription(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Prescription{}, ErrPrescriptionNotFound
	}
	if err != nil {
		return model.Prescription{}, fmt.Errorf("database: get prescription: %w", err)
	}
	return rx, nil
}

func (r *PostgresRepository) ListPrescriptions(ctx context.Context) ([]model.Prescription, error) {
	rows, err := r.pool.Query(ctx, "SELECT "+prescriptionColumns+" FROM tbl_prescription ORDER BY created_at")
	if err != nil {
		return nil, fmt.Errorf("database: list prescriptions: %w", err)
	}
	defer rows.Close()

	var rxs []model.Prescription
	for rows.Next() {
		rx, err := scanPrescription(rows)
		if err != nil {
			return nil, fmt.Errorf("database: scan prescription: %w", err)
		}
		rxs = append(rxs, rx)
	}
	return rxs, rows.Err()
}

func (r *PostgresRepository) UpdatePrescription(ctx context.Context, rx model.Prescription) error {
	adherence, err := toJSON(rx.Adherence)
	if err != nil {
		return fmt.Errorf("database: encode adherence: %w", err)
	}
	tag, err := r.pool.Exec(ctx, `
		UPDATE tbl_prescription
		SET medication_name = $2, dosage = $3, frequency = $4, prescribing_doctor = $5,
			pharmacy = $6, family_member_id = $7, start_date = $8, end_date = $9, notes = $10,
			supply_days = $11, refills_remaining = $12, condition_id = $13, adherence = $14, updated_at = $15
		WHERE id = $1`,
		rx.ID, rx.MedicationName, rx.Dosage, rx.Frequency, rx.PrescribingDoctor,
		optPtr(rx.Pharmacy), rx.FamilyMemberID, rx.StartDate, optPtr(rx.EndDate), rx.Notes,
		optPtr(rx.SupplyDays), optPtr(rx.RefillsRemaining), optPtr(rx.ConditionID), adherence, rx.UpdatedAt)
	if err != nil {
		return fmt.Errorf("database: update prescription: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrPrescriptionNotFound
	}
	return nil
}

func (r *PostgresRepository) DeletePrescription(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM tbl_prescription WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("database: delete prescription: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrPrescriptionNotFound
	}
	return nil
}

// Appointments

const appointmentColumns = "id, date, time, doctor, type, family_member_id, notes, created_at, updated_at"

func (r *PostgresRepository) CreateAppointment(ctx context.Context, apt model.Appointment) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO tbl_appointment (`+appointmentColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		apt.ID, apt.Date, apt.Time, apt.Doctor, apt.Type, apt.FamilyMemberID, apt.Notes,
		apt.CreatedAt, apt.UpdatedAt)
	if err != nil {
		return fmt.Errorf("database: insert appointment: %w", err)
	}
	return nil
}

func scanAppointment(row pgx.Row) (model.Appointment, error) {
	var a model.Appointment
	err := row.Scan(&a.ID, &a.Date, &a.Time, &a.Doctor, &a.Type, &a.FamilyMemberID, &a.Notes,
		&a.CreatedAt, &a.UpdatedAt)
	return a, err
}

func (r *PostgresRepository) GetAppointment(ctx context.Context, id uuid.UUID) (model.Appointment, error) {
	row := r.pool.QueryRow(ctx, "SELECT "+appointmentColumns+" FROM tbl_appointment WHERE id = $1", id)
	apt, err := scanAppointment(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Appointment{}, ErrAppointmentNotFound
	}
	if err != nil {
		return model.Appointment{}, fmt.Errorf("database: get appointment: %w", err)
	}
	return apt, nil
}

func (r *PostgresRepository) ListAppointments(ctx context.Context) ([]model.Appointment, error) {
	rows, err := r.pool.Query(ctx, "SELECT "+appointmentColumns+" FROM tbl_appointment ORDER BY created_at")
	if err != nil {
		return nil, fmt.Errorf("database: list appointments: %w", err)
	}
	defer rows.Close()

	var apts []model.Appointment
	for rows.Next() {
		apt, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("database: scan appointment: %w", err)
		}
		apts = append(apts, apt)
	}
	return apts, rows.Err()
}

func (r *PostgresRepository) UpdateAppointment(ctx context.Context, apt model.Appointment) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE tbl_appointment
		SET date = $2, time = $3, doctor = $4, type = $5, family_member_id = $6, notes = $7, updated_at = $8
		WHERE id = $1`,
		apt.ID, apt.Date, apt.Time, apt.Doctor, apt.Type, apt.FamilyMemberID, apt.Notes, apt.UpdatedAt)
	if err != nil {
		return fmt.Errorf("database: update appointment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrAppointmentNotFound
	}
	return nil
}

func (r *PostgresRepository) DeleteAppointment(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM tbl_appointment WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("database: delete appointment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrAppointmentNotFound
	}
	return nil
}

// Emergency contacts

func (r *PostgresRepository) CreateContact(ctx context.Context, contact model.EmergencyContact) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO tbl_emergency_contact (id, name, phone, relationship, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		contact.ID, contact.Name, contact.Phone, contact.Relationship, contact.CreatedAt, contact.UpdatedAt)
	if err != nil {
		return fmt.Errorf("database: insert emergency contact: %w", err)
	}
	return nil
}

func (r *PostgresRepository) ListContacts(ctx context.Context) ([]model.EmergencyContact, error) {
	rows, err := r.pool.Query(ctx, "SELECT id, name, phone, relationship, created_at, updated_at FROM tbl_emergency_contact ORDER BY created_at")
	if err != nil {
		return nil, fmt.Errorf("database: list emergency contacts: %w", err)
	}
	defer rows.Close()

	var contacts []model.EmergencyContact
	for rows.Next() {
		var c model.EmergencyContact
		if err := rows.Scan(&c.ID, &c.Name, &c.Phone, &c.Relationship, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("database: scan emergency contact: %w", err)
		}
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}

func (r *PostgresRepository) UpdateContact(ctx context.Context, contact model.EmergencyContact) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE tbl_emergency_contact SET name = $2, phone = $3, relationship = $4, updated_at = $5 WHERE id = $1`,
		contact.ID, contact.Name, contact.Phone, contact.Relationship, contact.UpdatedAt)
	if err != nil {
		return fmt.Errorf("database: update emergency contact: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrContactNotFound
	}
	return nil
}

func (r *PostgresRepository) DeleteContact(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM tbl_emergency_contact WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("database: delete emergency contact: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrContactNotFound
	}
	return nil
}

// Medical notes

const noteColumns = "id, title, content, date, is_critical, family_member_id, created_at, updated_at"

func (r *PostgresRepository) CreateNote(ctx context.Context, note model.MedicalNote) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO tbl_medical_note (`+noteColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		note.ID, note.Title, note.Content, note.Date, note.IsCritical, optPtr(note.FamilyMemberID),
		note.CreatedAt, note.UpdatedAt)
	if err != nil {
		return fmt.Errorf("database: insert medical note: %w", err)
	}
	return nil
}

func scanNote(row pgx.Row) (model.MedicalNote, error) {
	var n model.MedicalNote
	var memberID *uuid.UUID
	err := row.Scan(&n.ID, &n.Title, &n.Content, &n.Date, &n.IsCritical, &memberID, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		return model.MedicalNote{}, err
	}
	n.FamilyMemberID = ptrOpt(memberID)
	return n, nil
}

func (r *PostgresRepository) GetNote(ctx context.Context, id uuid.UUID) (model.MedicalNote, error) {
	row := r.pool.QueryRow(ctx, "SELECT "+noteColumns+" FROM tbl_medical_note WHERE id = $1", id)
	note, err := scanNote(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.MedicalNote{}, ErrNoteNotFound
	}
	if err != nil {
		return model.MedicalNote{}, fmt.Errorf("database: get medical note: %w", err)
	}
	return note, nil
}

func (r *PostgresRepository) ListNotes(ctx context.Context) ([]model.MedicalNote, error) {
	rows, err := r.pool.Query(ctx, "SELECT "+noteColumns+" FROM tbl_medical_note ORDER BY created_at")
	if err != nil {
		return nil, fmt.Errorf("database: list medical notes: %w", err)
	}
	defer rows.Close()

	var notes []model.MedicalNote
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("database: scan medical note: %w", err)
		}
		notes = append(notes, note)
	}
	return notes, rows.Err()
}

func (r *PostgresRepository) UpdateNote(ctx context.Context, note model.MedicalNote) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE tbl_medical_note
		SET title = $2, content = $3, date = $4, is_critical = $5, family_member_id = $6, updated_at = $7
		WHERE id = $1`,
		note.ID, note.Title, note.Content, note.Date, note.IsCritical, optPtr(note.FamilyMemberID), note.UpdatedAt)
	if err != nil {
		return fmt.Errorf("database: update medical note: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNoteNotFound
	}
	return nil
}

func (r *PostgresRepository) DeleteNote(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM tbl_medical_note WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("database: delete medical note: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNoteNotFound
	}
	return nil
}

// Vital signs

const vitalColumns = "id, family_member_id, date, height_cm, weight_kg, blood_pressure, heart_rate, notes, created_at, updated_at"

func (r *PostgresRepository) CreateVital(ctx context.Context, vital model.VitalSign) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO tbl_vital_sign (`+vitalColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		vital.ID, vital.FamilyMemberID, vital.Date, optPtr(vital.HeightCm), optPtr(vital.WeightKg),
		optPtr(vital.BloodPressure), optPtr(vital.HeartRate), vital.Notes, vital.CreatedAt, vital.UpdatedAt)
	if err != nil {
		return fmt.Errorf("database: insert vital sign: %w", err)
	}
	return nil
}

func scanVital(row pgx.Row) (model.VitalSign, error) {
	var v model.VitalSign
	var height, weight *float64
	var bp *string
	var hr *int
	err := row.Scan(&v.ID, &v.FamilyMemberID, &v.Date, &height, &weight, &bp, &hr, &v.Notes,
		&v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return model.VitalSign{}, err
	}
	v.HeightCm = ptrOpt(height)
	v.WeightKg = ptrOpt(weight)
	v.BloodPressure = ptrOpt(bp)
	v.HeartRate = ptrOpt(hr)
	return v, nil
}

func (r *PostgresRepository) ListVitals(ctx context.Context) ([]model.VitalSign, error) {
	return r.listVitals(ctx, "SELECT "+vitalColumns+" FROM tbl_vital_sign ORDER BY created_at")
}

func (r *PostgresRepository) ListVitalsByMember(ctx context.Context, memberID uuid.UUID) ([]model.VitalSign, error) {
	return r.listVitals(ctx, "SELECT "+vitalColumns+" FROM tbl_vital_sign WHERE family_member_id = $1 ORDER BY created_at", memberID)
}

func (r *PostgresRepository) listVitals(ctx context.Context, query string, args ...any) ([]model.VitalSign, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("database: list vital signs: %w", err)
	}
	defer rows.Close()

	var vitals []model.VitalSign
	for rows.Next() {
		vital, err := scanVital(rows)
		if err != nil {
			return nil, fmt.Errorf("database: scan vital sign: %w", err)
		}
		vitals = append(vitals, vital)
	}
	return vitals, rows.Err()
}

func (r *PostgresRepository) UpdateVital(ctx context.Context, vital model.VitalSign) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE tbl_vital_sign
		SET family_member_id = $2, date = $3, height_cm = $4, weight_kg = $5,
			blood_pressure = $6, heart_rate = $7, notes = $8, updated_at = $9
		WHERE id = $1`,
		vital.ID, vital.FamilyMemberID, vital.Date, optPtr(vital.HeightCm), optPtr(vital.WeightKg),
		optPtr(vital.BloodPressure), optPtr(vital.HeartRate), vital.Notes, vital.UpdatedAt)
	if err != nil {
		return fmt.Errorf("database: update vital sign: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrVitalNotFound
	}
	return nil
}

func (r *PostgresRepository) DeleteVital(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM tbl_vital_sign WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("database: delete vital sign: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrVitalNotFound
	}
	return nil
}

// Vaccinations

const vaccinationColumns = "id, family_member_id, vaccine_name, date_administered, notes, created_at, updated_at"

func (r *PostgresRepository) CreateVaccination(ctx context.Context, rec model.VaccinationRecord) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO tbl_vaccination (`+vaccinationColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		rec.ID, rec.FamilyMemberID, rec.VaccineName, rec.DateAdministered, rec.Notes,
		rec.CreatedAt, rec.UpdatedAt)
	if err != nil {
		return fmt.Errorf("database: insert vaccination: %w", err)
	}
	return nil
}

func (r *PostgresRepository) ListVaccinations(ctx context.Context) ([]model.VaccinationRecord, error) {
	return r.listVaccinations(ctx, "SELECT "+vaccinationColumns+" FROM tbl_vaccination ORDER BY created_at")
}

func (r *PostgresRepository) ListVaccinationsByMember(ctx context.Context, memberID uuid.UUID) ([]model.VaccinationRecord, error) {
	return r.listVaccinations(ctx, "SELECT "+vaccinationColumns+" FROM tbl_vaccination WHERE family_member_id = $1 ORDER BY created_at", memberID)
}

func (r *PostgresRepository) listVaccinations(ctx context.Context, query string, args ...any) ([]model.VaccinationRecord, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("database: list vaccinations: %w", err)
	}
	defer rows.Close()

	var recs []model.VaccinationRecord
	for rows.Next() {
		var rec model.VaccinationRecord
		if err := rows.Scan(&rec.ID, &rec.FamilyMemberID, &rec.VaccineName, &rec.DateAdministered,
			&rec.Notes, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, fmt.Errorf("database: scan vaccination: %w", err)
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

func (r *PostgresRepository) UpdateVaccination(ctx context.Context, rec model.VaccinationRecord) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE tbl_vaccination
		SET family_member_id = $2, vaccine_name = $3, date_administered = $4, notes = $5, updated_at = $6
		WHERE id = $1`,
		rec.ID, rec.FamilyMemberID, rec.VaccineName, rec.DateAdministered, rec.Notes, rec.UpdatedAt)
	if err != nil {
		return fmt.Errorf("database: update vaccination: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrVaccinationNotFound
	}
	return nil
}

func (r *PostgresRepository) DeleteVaccination(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM tbl_vaccination WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("database: delete vaccination: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrVaccinationNotFound
	}
	return nil
}

// Conditions

const conditionColumns = "id, family_member_id, name, date_of_diagnosis, status, notes, created_at, updated_at"

func (r *PostgresRepository) CreateCondition(ctx context.Context, cond model.Condition) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO tbl_condition (`+conditionColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		cond.ID, cond.FamilyMemberID, cond.Name, cond.DateOfDiagnosis, cond.Status, cond.Notes,
		cond.CreatedAt, cond.UpdatedAt)
	if err != nil {
		return fmt.Errorf("database: insert condition: %w", err)
	}
	return nil
}

func (r *PostgresRepository) GetCondition(ctx context.Context, id uuid.UUID) (model.Condition, error) {
	var c model.Condition
	err := r.pool.QueryRow(ctx, "SELECT "+conditionColumns+" FROM tbl_condition WHERE id = $1", id).
		Scan(&c.ID, &c.FamilyMemberID, &c.Name, &c.DateOfDiagnosis, &c.Status, &c.Notes, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Condition{}, ErrConditionNotFound
	}
	if err != nil {
		return model.Condition{}, fmt.Errorf("database: get condition: %w", err)
	}
	return c, nil
}

func (r *PostgresRepository) ListConditions(ctx context.Context) ([]model.Condition, error) {
	return r.listConditions(ctx, "SELECT "+conditionColumns+" FROM tbl_condition ORDER BY created_at")
}

func (r *PostgresRepository) ListConditionsByMember(ctx context.Context, memberID uuid.UUID) ([]model.Condition, error) {
	return r.listConditions(ctx, "SELECT "+conditionColumns+" FROM tbl_condition WHERE family_member_id = $1 ORDER BY created_at", memberID)
}

func (r *PostgresRepository) listConditions(ctx context.Context, query string, args ...any) ([]model.Condition, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("database: list conditions: %w", err)
	}
	defer rows.Close()

	var conds []model.Condition
	for rows.Next() {
		var c model.Condition
		if err := rows.Scan(&c.ID, &c.FamilyMemberID, &c.Name, &c.DateOfDiagnosis, &c.Status,
			&c.Notes, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("database: scan condition: %w", err)
		}
		conds = append(conds, c)
	}
	return conds, rows.Err()
}

func (r *PostgresRepository) UpdateCondition(ctx context.Context, cond model.Condition) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE tbl_condition
		SET family_member_id = $2, name = $3, date_of_diagnosis = $4, status = $5, notes = $6, updated_at = $7
		WHERE id = $1`,
		cond.ID, cond.FamilyMemberID, cond.Name, cond.DateOfDiagnosis, cond.Status, cond.Notes, cond.UpdatedAt)
	if err != nil {
		return fmt.Errorf("database: update condition: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrConditionNotFound
	}
	return nil
}

func (r *PostgresRepository) DeleteCondition(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM tbl_condition WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("database: delete condition: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrConditionNotFound
	}
	return nil
}

// Insurance policies

const policyColumns = "id, provider_name, policy_number, group_number, member_id, coverage_details, effective_date, expiration_date, payment_method, copay_amount, created_at, updated_at"

func (r *PostgresRepository) CreatePolicy(ctx context.Context, policy model.InsurancePolicy) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO tbl_insurance_policy (`+policyColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		policy.ID, policy.ProviderName, policy.PolicyNumber, optPtr(policy.GroupNumber), policy.MemberID,
		optPtr(policy.CoverageDetails), policy.EffectiveDate, optPtr(policy.ExpirationDate),
		optPtr(policy.PaymentMethod), optPtr(policy.CopayAmount), policy.CreatedAt, policy.UpdatedAt)
	if err != nil {
		return fmt.Errorf("database: insert insurance policy: %w", err)
	}
	return nil
}

func scanPolicy(row pgx.Row) (model.InsurancePolicy, error) {
	var p model.InsurancePolicy
	var groupNumber, coverageDetails, paymentMethod *string
	var expirationDate *model.Date
	var copayAmount *float64
	err := row.Scan(&p.ID, &p.ProviderName, &p.PolicyNumber, &groupNumber, &p.MemberID,
		&coverageDetails, &p.EffectiveDate, &expirationDate, &paymentMethod, &copayAmount,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return model.InsurancePolicy{}, err
	}
	p.GroupNumber = ptrOpt(groupNumber)
	p.CoverageDetails = ptrOpt(coverageDetails)
	p.ExpirationDate = ptrOpt(expirationDate)
	p.PaymentMethod = ptrOpt(paymentMethod)
	p.CopayAmount = ptrOpt(copayAmount)
	return p, nil
}

func (r *PostgresRepository) GetPolicy(ctx context.Context, id uuid.UUID) (model.InsurancePolicy, error) {
	row := r.pool.QueryRow(ctx, "SELECT "+policyColumns+" FROM tbl_insurance_policy WHERE id = $1", id)
	policy, err := scanPolicy(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.InsurancePolicy{}, ErrPolicyNotFound
	}
	if err != nil {
		return model.InsurancePolicy{}, fmt.Errorf("database: get insurance policy: %w", err)
	}
	return policy, nil
}

func (r *PostgresRepository) ListPolicies(ctx context.Context) ([]model.InsurancePolicy, error) {
	rows, err := r.pool.Query(ctx, "SELECT "+policyColumns+" FROM tbl_insurance_policy ORDER BY created_at")
	if err != nil {
		return nil, fmt.Errorf("database: list insurance policies: %w", err)
	}
	defer rows.Close()

	var policies []model.InsurancePolicy
	for rows.Next() {
		policy, err := scanPolicy(rows)
		if err != nil {
			return nil, fmt.Errorf("database: scan insurance policy: %w", err)
		}
		policies = append(policies, policy)
	}
	return policies, rows.Err()
}

func (r *PostgresRepository) UpdatePolicy(ctx context.Context, policy model.InsurancePolicy) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE tbl_insurance_policy
		SET provider_name = $2, policy_number = $3, group_number = $4, member_id = $5,
			coverage_details = $6, effective_date = $7, expiration_date = $8,
			payment_method = $9, copay_amount = $10, updated_at = $11
		WHERE id = $1`,
		policy.ID, policy.ProviderName, policy.PolicyNumber, optPtr(policy.GroupNumber), policy.MemberID,
		optPtr(policy.CoverageDetails), policy.EffectiveDate, optPtr(policy.ExpirationDate),
		optPtr(policy.PaymentMethod), optPtr(policy.CopayAmount), policy.UpdatedAt)
	if err != nil {
		return fmt.Errorf("database: update insurance policy: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrPolicyNotFound
	}
	return nil
}

func (r *PostgresRepository) DeletePolicy(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM tbl_insurance_policy WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("database: delete insurance policy: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrPolicyNotFound
	}
	return nil
}

// Bills

const billColumns = "id, service_provider, service_date, amount_due, due_date, is_paid, notes, payment_date, family_member_id, appointment_id, payment_ref, created_at, updated_at"

func (r *PostgresRepository) CreateBill(ctx context.Context, bill model.Bill) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO tbl_bill (`+billColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		bill.ID, bill.ServiceProvider, bill.ServiceDate, bill.AmountDue, bill.DueDate, bill.IsPaid, bill.Notes,
		optPtr(bill.PaymentDate), optPtr(bill.FamilyMemberID), optPtr(bill.AppointmentID),
		optPtr(bill.PaymentRef), bill.CreatedAt, bill.UpdatedAt)
	if err != nil {
		return fmt.Errorf("database: insert bill: %w", err)
	}
	return nil
}

func scanBill(row pgx.Row) (model.Bill, error) {
	var b model.Bill
	var paymentDate *model.Date
	var memberID, appointmentID *uuid.UUID
	var paymentRef *string
	err := row.Scan(&b.ID, &b.ServiceProvider, &b.ServiceDate, &b.AmountDue, &b.DueDate, &b.IsPaid, &b.Notes,
		&paymentDate, &memberID, &appointmentID, &paymentRef, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return model.Bill{}, err
	}
	b.PaymentDate = ptrOpt(paymentDate)
	b.FamilyMemberID = ptrOpt(memberID)
	b.AppointmentID = ptrOpt(appointmentID)
	b.PaymentRef = ptrOpt(paymentRef)
	return b, nil
}

func (r *PostgresRepository) GetBill(ctx context.Context, id uuid.UUID) (model.Bill, error) {
	row := r.pool.QueryRow(ctx, "SELECT "+billColumns+" FROM tbl_bill WHERE id = $1", id)
	bill, err := scanBill(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Bill{}, ErrBillNotFound
	}
	if err != nil {
		return model.Bill{}, fmt.Errorf("database: get bill: %w", err)
	}
	return bill, nil
}

func (r *PostgresRepository) ListBills(ctx context.Context) ([]model.Bill, error) {
	rows, err := r.pool.Query(ctx, "SELECT "+billColumns+" FROM tbl_bill ORDER BY created_at")
	if err != nil {
		return nil, fmt.Errorf("database: list bills: %w", err)
	}
	defer rows.Close()

	var bills []model.Bill
	for rows.Next() {
		bill, err := scanBill(rows)
		if err != nil {
			return nil, fmt.Errorf("database: scan bill: %w", err)
		}
		bills = append(bills, bill)
	}
	return bills, rows.Err()
}

func (r *PostgresRepository) UpdateBill(ctx context.Context, bill model.Bill) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE tbl_bill
		SET service_provider = $2, service_date = $3, amount_due = $4, due_date = $5, is_paid = $6, notes = $7,
			payment_date = $8, family_member_id = $9, appointment_id = $10, payment_ref = $11, updated_at = $12
		WHERE id = $1`,
		bill.ID, bill.ServiceProvider, bill.ServiceDate, bill.AmountDue, bill.DueDate, bill.IsPaid, bill.Notes,
		optPtr(bill.PaymentDate), optPtr(bill.FamilyMemberID), optPtr(bill.AppointmentID),
		optPtr(bill.PaymentRef), bill.UpdatedAt)
	if err != nil {
		return fmt.Errorf("database: update bill: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrBillNotFound
	}
	return nil
}

func (r *PostgresRepository) DeleteBill(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM tbl_bill WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("database: delete bill: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrBillNotFound
	}
	return nil
}

// Insurance claims

const claimColumns = "id, bill_id, policy_id, claim_number, submission_date, status, amount_covered, notes, created_at, updated_at"

func (r *PostgresRepository) CreateClaim(ctx context.Context, claim model.InsuranceClaim) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO tbl_insurance_claim (`+claimColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		claim.ID, claim.BillID, claim.PolicyID, claim.ClaimNumber, claim.SubmissionDate,
		claim.Status, optPtr(claim.AmountCovered), claim.Notes, claim.CreatedAt, claim.UpdatedAt)
	if err != nil {
		return fmt.Errorf("database: insert insurance claim: %w", err)
	}
	return nil
}

func scanClaim(row pgx.Row) (model.InsuranceClaim, error) {
	var c model.InsuranceClaim
	var amountCovered *float64
	err := row.Scan(&c.ID, &c.BillID, &c.PolicyID, &c.ClaimNumber, &c.SubmissionDate,
		&c.Status, &amountCovered, &c.Notes, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return model.InsuranceClaim{}, err
	}
	c.AmountCovered = ptrOpt(amountCovered)
	return c, nil
}

func (r *PostgresRepository) GetClaim(ctx context.Context, id uuid.UUID) (model.InsuranceClaim, error) {
	row := r.pool.QueryRow(ctx, "SELECT "+claimColumns+" FROM tbl_insurance_claim WHERE id = $1", id)
	claim, err := scanClaim(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.InsuranceClaim{}, ErrClaimNotFound
	}
	if err != nil {
		return model.InsuranceClaim{}, fmt.Errorf("database: get insurance claim: %w", err)
	}
	return claim, nil
}

func (r *PostgresRepository) ListClaims(ctx context.Context) ([]model.InsuranceClaim, error) {
	rows, err := r.pool.Query(ctx, "SELECT "+claimColumns+" FROM tbl_insurance_claim ORDER BY created_at")
	if err != nil {
		return nil, fmt.Errorf("database: list insurance claims: %w", err)
	}
	defer rows.Close()

	var claims []model.InsuranceClaim
	for rows.Next() {
		claim, err := scanClaim(rows)
		if err != nil {
			return nil, fmt.Errorf("database: scan insurance claim: %w", err)
		}
		claims = append(claims, claim)
	}
	return claims, rows.Err()
}

func (r *PostgresRepository) UpdateClaim(ctx context.Context, claim model.InsuranceClaim) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE tbl_insurance_claim
		SET bill_id = $2, policy_id = $3, claim_number = $4, submission_date = $5,
			status = $6, amount_covered = $7, notes = $8, updated_at = $9
		WHERE id = $1`,
		claim.ID, claim.BillID, claim.PolicyID, claim.ClaimNumber, claim.SubmissionDate,
		claim.Status, optPtr(claim.AmountCovered), claim.Notes, claim.UpdatedAt)
	if err != nil {
		return fmt.Errorf("database: update insurance claim: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrClaimNotFound
	}
	return nil
}

func (r *PostgresRepository) DeleteClaim(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM tbl_insurance_claim WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("database: delete insurance claim: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrClaimNotFound
	}
	return nil
}

// Wellness entries

const wellnessColumns = "id, family_member_id, date, mood, sleep_hours, activity, water_intake_liters, calories, meal_notes, notes, created_at, updated_at"

func (r *PostgresRepository) CreateWellnessEntry(ctx context.Context, entry model.WellnessEntry) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO tbl_wellness_entry (`+wellnessColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		entry.ID, entry.FamilyMemberID, entry.Date, optPtr(entry.Mood), optPtr(entry.SleepHours),
		optPtr(entry.Activity), optPtr(entry.WaterIntakeLiters), optPtr(entry.Calories),
		entry.MealNotes, entry.Notes, entry.CreatedAt, entry.UpdatedAt)
	if err != nil {
		return fmt.Errorf("database: insert wellness entry: %w", err)
	}
	return nil
}

func scanWellness(row pgx.Row) (model.WellnessEntry, error) {
	var e model.WellnessEntry
	var mood *model.Mood
	var sleep, water *float64
	var activity *string
	var calories *int
	err := row.Scan(&e.ID, &e.FamilyMemberID, &e.Date, &mood, &sleep, &activity, &water, &calories,
		&e.MealNotes, &e.Notes, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return model.WellnessEntry{}, err
	}
	e.Mood = ptrOpt(mood)
	e.SleepHours = ptrOpt(sleep)
	e.Activity = ptrOpt(activity)
	e.WaterIntakeLiters = ptrOpt(water)
	e.Calories = ptrOpt(calories)
	return e, nil
}

func (r *PostgresRepository) GetWellnessEntryByDate(ctx context.Context, memberID uuid.UUID, date model.Date) (model.WellnessEntry, error) {
	row := r.pool.QueryRow(ctx,
		"SELECT "+wellnessColumns+" FROM tbl_wellness_entry WHERE family_member_id = $1 AND date = $2",
		memberID, date)
	entry, err := scanWellness(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.WellnessEntry{}, ErrWellnessNotFound
	}
	if err != nil {
		return model.WellnessEntry{}, fmt.Errorf("database: get wellness entry: %w", err)
	}
	return entry, nil
}

func (r *PostgresRepository) ListWellnessEntries(ctx context.Context) ([]model.WellnessEntry, error) {
	rows, err := r.pool.Query(ctx, "SELECT "+wellnessColumns+" FROM tbl_wellness_entry ORDER BY created_at")
	if err != nil {
		return nil, fmt.Errorf("database: list wellness entries: %w", err)
	}
	defer rows.Close()

	var entries []model.WellnessEntry
	for rows.Next() {
		entry, err := scanWellness(rows)
		if err != nil {
			return nil, fmt.Errorf("database: scan wellness entry: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (r *PostgresRepository) UpdateWellnessEntry(ctx context.Context, entry model.WellnessEntry) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE tbl_wellness_entry
		SET family_member_id = $2, date = $3, mood = $4, sleep_hours = $5, activity = $6,
			water_intake_liters = $7, calories = $8, meal_notes = $9, notes = $10, updated_at = $11
		WHERE id = $1`,
		entry.ID, entry.FamilyMemberID, entry.Date, optPtr(entry.Mood), optPtr(entry.SleepHours),
		optPtr(entry.Activity), optPtr(entry.WaterIntakeLiters), optPtr(entry.Calories),
		entry.MealNotes, entry.Notes, entry.UpdatedAt)
	if err != nil {
		return fmt.Errorf("database: update wellness entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrWellnessNotFound
	}
	return nil
}

func (r *PostgresRepository) DeleteWellnessEntry(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM tbl_wellness_entry WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("database: delete wellness entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrWellnessNotFound
	}
	return nil
}

// Pregnancy

func (r *PostgresRepository) UpsertPregnancy(ctx context.Context, data model.PregnancyData) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO tbl_pregnancy (family_member_id, due_date, baby_name, doctor_name, hospital_name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (family_member_id) DO UPDATE
		SET due_date = $2, baby_name = $3, doctor_name = $4, hospital_name = $5, updated_at = $7`,
		data.FamilyMemberID, data.DueDate, optPtr(data.BabyName),
		optPtr(data.DoctorName), optPtr(data.HospitalName), data.CreatedAt, data.UpdatedAt)
	if err != nil {
		return fmt.Errorf("database: upsert pregnancy: %w", err)
	}
	return nil
}

func (r *PostgresRepository) GetPregnancy(ctx context.Context, memberID uuid.UUID) (model.PregnancyData, error) {
	var data model.PregnancyData
	var babyName, doctorName, hospitalName *string
	err := r.pool.QueryRow(ctx, `
		SELECT family_member_id, due_date, baby_name, doctor_name, hospital_name, created_at, updated_at
		FROM tbl_pregnancy WHERE family_member_id = $1`, memberID).
		Scan(&data.FamilyMemberID, &data.DueDate, &babyName, &doctorName, &hospitalName,
			&data.CreatedAt, &data.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.PregnancyData{}, ErrPregnancyNotFound
	}
	if err != nil {
		return model.PregnancyData{}, fmt.Errorf("database: get pregnancy: %w", err)
	}
	data.BabyName = ptrOpt(babyName)
	data.DoctorName = ptrOpt(doctorName)
	data.HospitalName = ptrOpt(hospitalName)
	return data, nil
}

func (r *PostgresRepository) CreatePregnancyLog(ctx context.Context, entry model.PregnancyLogEntry) error {
	symptoms, err := toJSON(entry.Symptoms)
	if err != nil {
		return fmt.Errorf("database: encode symptoms: %w", err)
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO tbl_pregnancy_log (id, family_member_id, date, mood, symptoms, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		entry.ID, entry.FamilyMemberID, entry.Date, entry.Mood, symptoms,
		entry.Notes, entry.CreatedAt, entry.UpdatedAt)
	if err != nil {
		return fmt.Errorf("database: insert pregnancy log: %w", err)
	}
	return nil
}

func (r *PostgresRepository) ListPregnancyLogs(ctx context.Context, memberID uuid.UUID) ([]model.PregnancyLogEntry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, family_member_id, date, mood, symptoms, notes, created_at, updated_at
		FROM tbl_pregnancy_log WHERE family_member_id = $1 ORDER BY date DESC, created_at DESC`, memberID)
	if err != nil {
		return nil, fmt.Errorf("database: list pregnancy logs: %w", err)
	}
	defer rows.Close()

	var entries []model.PregnancyLogEntry
	for rows.Next() {
		var e model.PregnancyLogEntry
		var symptoms []byte
		if err := rows.Scan(&e.ID, &e.FamilyMemberID, &e.Date, &e.Mood, &symptoms,
			&e.Notes, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("database: scan pregnancy log: %w", err)
		}
		if len(symptoms) > 0 {
			if err := json.Unmarshal(symptoms, &e.Symptoms); err != nil {
				return nil, fmt.Errorf("database: decode symptoms: %w", err)
			}
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *PostgresRepository) DeletePregnancyLog(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM tbl_pregnancy_log WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("database: delete pregnancy log: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrPregnancyLogNotFound
	}
	return nil
}

func (r *PostgresRepository) CreateKickSession(ctx context.Context, session model.KickCounterSession) error {
	kicks, err := toJSON(session.Kicks)
	if err != nil {
		return fmt.Errorf("database: encode kicks: %w", err)
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO tbl_kick_session (id, family_member_id, date, started_at, ended_at, kicks, duration_seconds, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		session.ID, session.FamilyMemberID, session.Date, session.StartedAt, optPtr(session.EndedAt),
		kicks, session.DurationSeconds, session.CreatedAt, session.UpdatedAt)
	if err != nil {
		return fmt.Errorf("database: insert kick session: %w", err)
	}
	return nil
}

func scanKickSession(row pgx.Row) (model.KickCounterSession, error) {
	var s model.KickCounterSession
	var endedAt *time.Time
	var kicks []byte
	err := row.Scan(&s.ID, &s.FamilyMemberID, &s.Date, &s.StartedAt, &endedAt, &kicks,
		&s.DurationSeconds, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return model.KickCounterSession{}, err
	}
	s.EndedAt = ptrOpt(endedAt)
	if len(kicks) > 0 {
		if err := json.Unmarshal(kicks, &s.Kicks); err != nil {
			return model.KickCounterSession{}, fmt.Errorf("decode kicks: %w", err)
		}
	}
	return s, nil
}

const kickSessionColumns = "id, family_member_id, date, started_at, ended_at, kicks, duration_seconds, created_at, updated_at"

func (r *PostgresRepository) GetKickSession(ctx context.Context, id uuid.UUID) (model.KickCounterSession, error) {
	row := r.pool.QueryRow(ctx, "SELECT "+kickSessionColumns+" FROM tbl_kick_session WHERE id = $1", id)
	session, err := scanKickSession(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.KickCounterSession{}, ErrKickSessionNotFound
	}
	if err != nil {
		return model.KickCounterSession{}, fmt.Errorf("database: get kick session: %w", err)
	}
	return session, nil
}

func (r *PostgresRepository) ListKickSessions(ctx context.Context, memberID uuid.UUID) ([]model.KickCounterSession, error) {
	rows, err := r.pool.Query(ctx,
		"SELECT "+kickSessionColumns+" FROM tbl_kick_session WHERE family_member_id = $1 ORDER BY created_at", memberID)
	if err != nil {
		return nil, fmt.Errorf("database: list kick sessions: %w", err)
	}
	defer rows.Close()

	var sessions []model.KickCounterSession
	for rows.Next() {
		session, err := scanKickSession(rows)
		if err != nil {
			return nil, fmt.Errorf("database: scan kick session: %w", err)
		}
		sessions = append(sessions, session)
	}
	return sessions, rows.Err()
}

func (r *PostgresRepository) UpdateKickSession(ctx context.Context, session model.KickCounterSession) error {
	kicks, err := toJSON(session.Kicks)
	if err != nil {
		return fmt.Errorf("database: encode kicks: %w", err)
	}
	tag, err := r.pool.Exec(ctx, `
		UPDATE tbl_kick_session
		SET date = $2, started_at = $3, ended_at = $4, kicks = $5, duration_seconds = $6, updated_at = $7
		WHERE id = $1`,
		session.ID, session.Date, session.StartedAt, optPtr(session.EndedAt), kicks,
		session.DurationSeconds, session.UpdatedAt)
	if err != nil {
		return fmt.Errorf("database: update kick session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrKickSessionNotFound
	}
	return nil
}

// User profile

func (r *PostgresRepository) GetProfile(ctx context.Context) (model.UserProfile, error) {
	var p model.UserProfile
	var avatarURL *string
	err := r.pool.QueryRow(ctx, "SELECT id, name, email, avatar_url FROM tbl_user_profile LIMIT 1").
		Scan(&p.ID, &p.Name, &p.Email, &avatarURL)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.UserProfile{}, ErrProfileNotFound
	}
	if err != nil {
		return model.UserProfile{}, fmt.Errorf("database: get user profile: %w", err)
	}
	p.AvatarURL = ptrOpt(avatarURL)
	return p, nil
}

func (r *PostgresRepository) UpdateProfile(ctx context.Context, profile model.UserProfile) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO tbl_user_profile (id, name, email, avatar_url) VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET name = $2, email = $3, avatar_url = $4`,
		profile.ID, profile.Name, profile.Email, optPtr(profile.AvatarURL))
	if err != nil {
		return fmt.Errorf("database: update user profile: %w", err)
	}
	return nil
}
