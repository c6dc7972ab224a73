package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"carebook/internal/model"
	"carebook/internal/util"

	"github.com/google/uuid"
)

// MemoryRepository keeps all records in process memory. It backs the
// service when no database is configured and the service tests.
type MemoryRepository struct {
	mu sync.RWMutex

	members       map[uuid.UUID]model.FamilyMember
	documents     map[uuid.UUID]model.DocumentItem
	prescriptions map[uuid.UUID]model.Prescription
	appointments  map[uuid.UUID]model.Appointment
	contacts      map[uuid.UUID]model.EmergencyContact
	notes         map[uuid.UUID]model.MedicalNote
	vitals        map[uuid.UUID]model.VitalSign
	vaccinations  map[uuid.UUID]model.VaccinationRecord
	conditions    map[uuid.UUID]model.Condition
	policies      map[uuid.UUID]model.InsurancePolicy
	bills         map[uuid.UUID]model.Bill
	claims        map[uuid.UUID]model.InsuranceClaim
	wellness      map[uuid.UUID]model.WellnessEntry
	pregnancies   map[uuid.UUID]model.PregnancyData
	pregnancyLogs map[uuid.UUID]model.PregnancyLogEntry
	kickSessions  map[uuid.UUID]model.KickCounterSession
	profile       *model.UserProfile
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		members:       make(map[uuid.UUID]model.FamilyMember),
		documents:     make(map[uuid.UUID]model.DocumentItem),
		prescriptions: make(map[uuid.UUID]model.Prescription),
		appointments:  make(map[uuid.UUID]model.Appointment),
		contacts:      make(map[uuid.UUID]model.EmergencyContact),
		notes:         make(map[uuid.UUID]model.MedicalNote),
		vitals:        make(map[uuid.UUID]model.VitalSign),
		vaccinations:  make(map[uuid.UUID]model.VaccinationRecord),
		conditions:    make(map[uuid.UUID]model.Condition),
		policies:      make(map[uuid.UUID]model.InsurancePolicy),
		bills:         make(map[uuid.UUID]model.Bill),
		claims:        make(map[uuid.UUID]model.InsuranceClaim),
		wellness:      make(map[uuid.UUID]model.WellnessEntry),
		pregnancies:   make(map[uuid.UUID]model.PregnancyData),
		pregnancyLogs: make(map[uuid.UUID]model.PregnancyLogEntry),
		kickSessions:  make(map[uuid.UUID]model.KickCounterSession),
	}
}

func (r *MemoryRepository) HealthCheck(ctx context.Context) error {
	return nil
}

func sortByCreated[T any](items []T, createdAt func(T) time.Time) {
	sort.SliceStable(items, func(i, j int) bool {
		return createdAt(items[i]).Before(createdAt(items[j]))
	})
}

// Family members

func (r *MemoryRepository) CreateMember(ctx context.Context, member model.FamilyMember) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.members[member.ID] = member
	return nil
}

func (r *MemoryRepository) GetMember(ctx context.Context, id uuid.UUID) (model.FamilyMember, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	member, ok := r.members[id]
	if !ok {
		return model.FamilyMember{}, ErrMemberNotFound
	}
	return member, nil
}

func (r *MemoryRepository) ListMembers(ctx context.Context) ([]model.FamilyMember, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	members := make([]model.FamilyMember, 0, len(r.members))
	for _, m := range r.members {
		members = append(members, m)
	}
	sortByCreated(members, func(m model.FamilyMember) time.Time { return m.CreatedAt })
	return members, nil
}

func (r *MemoryRepository) UpdateMember(ctx context.Context, member model.FamilyMember) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.members[member.ID]; !ok {
		return ErrMemberNotFound
	}
	r.members[member.ID] = member
	return nil
}

// DeleteMember also detaches the member's records so no orphaned
// references survive the removal.
func (r *MemoryRepository) DeleteMember(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.members[id]; !ok {
		return ErrMemberNotFound
	}
	delete(r.members, id)
	for docID, doc := range r.documents {
		if doc.FamilyMemberID.IsSet && doc.FamilyMemberID.Val == id {
			doc.FamilyMemberID = util.None[uuid.UUID]()
			r.documents[docID] = doc
		}
	}
	for rxID, rx := range r.prescriptions {
		if rx.FamilyMemberID == id {
			delete(r.prescriptions, rxID)
		}
	}
	memberAppointments := map[uuid.UUID]bool{}
	for aptID, apt := range r.appointments {
		if apt.FamilyMemberID == id {
			memberAppointments[aptID] = true
			delete(r.appointments, aptID)
		}
	}
	for noteID, note := range r.notes {
		if note.FamilyMemberID.IsSet && note.FamilyMemberID.Val == id {
			note.FamilyMemberID = util.None[uuid.UUID]()
			r.notes[noteID] = note
		}
	}
	for billID, bill := range r.bills {
		changed := false
		if bill.FamilyMemberID.IsSet && bill.FamilyMemberID.Val == id {
			bill.FamilyMemberID = util.None[uuid.UUID]()
			changed = true
		}
		if bill.AppointmentID.IsSet && memberAppointments[bill.AppointmentID.Val] {
			bill.AppointmentID = util.None[uuid.UUID]()
			changed = true
		}
		if changed {
			r.bills[billID] = bill
		}
	}
	for policyID, policy := range r.policies {
		if policy.MemberID != id {
			continue
		}
		for claimID, claim := range r.claims {
			if claim.PolicyID == policyID {
				delete(r.claims, claimID)
			}
		}
		delete(r.policies, policyID)
	}
	for vitalID, vital := range r.vitals {
		if vital.FamilyMemberID == id {
			delete(r.vitals, vitalID)
		}
	}
	for vacID, vac := range r.vaccinations {
		if vac.FamilyMemberID == id {
			delete(r.vaccinations, vacID)
		}
	}
	for condID, cond := range r.conditions {
		if cond.FamilyMemberID == id {
			delete(r.conditions, condID)
		}
	}
	for entryID, entry := range r.wellness {
		if entry.FamilyMemberID == id {
			delete(r.wellness, entryID)
		}
	}
	for logID, entry := range r.pregnancyLogs {
		if entry.FamilyMemberID == id {
			delete(r.pregnancyLogs, logID)
		}
	}
	for sessionID, session := range r.kickSessions {
		if session.FamilyMemberID == id {
			delete(r.kickSessions, sessionID)
		}
	}
	delete(r.pregnancies, id)
	return nil
}

// Documents

func (r *MemoryRepository) CreateDocument(ctx context.Context, doc model.DocumentItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.documents[doc.ID] = doc
	return nil
}

func (r *MemoryRepository) GetDocument(ctx context.Context, id uuid.UUID) (model.DocumentItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	doc, ok := r.documents[id]
	if !ok {
		return model.DocumentItem{}, ErrDocumentNotFound
	}
	return doc, nil
}

func (r *MemoryRepository) ListDocuments(ctx context.Context) ([]model.DocumentItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	docs := make([]model.DocumentItem, 0, len(r.documents))
	for _, d := range r.documents {
		docs = append(docs, d)
	}
	sortByCreated(docs, func(d model.DocumentItem) time.Time { return d.CreatedAt })
	return docs, nil
}

func (r *MemoryRepository) UpdateDocument(ctx context.Context, doc model.DocumentItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.documents[doc.ID]; !ok {
		return ErrDocumentNotFound
	}
	r.documents[doc.ID] = doc
	return nil
}

func (r *MemoryRepository) DeleteDocument(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.documents[id]; !ok {
		return ErrDocumentNotFound
	}
	delete(r.documents, id)
	return nil
}

// Prescriptions

func (r *MemoryRepository) CreatePrescription(ctx context.Context, rx model.Prescription) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.prescriptions[rx.ID] = rx
	return nil
}

func (r *MemoryRepository) GetPrescription(ctx context.Context, id uuid.UUID) (model.Prescription, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rx, ok := r.prescriptions[id]
	if !ok {
		return model.Prescription{}, ErrPrescriptionNotFound
	}
	return rx, nil
}

func (r *MemoryRepository) ListPrescriptions(ctx context.Context) ([]model.Prescription, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rxs := make([]model.Prescription, 0, len(r.prescriptions))
	for _, rx := range r.prescriptions {
		rxs = append(rxs, rx)
	}
	sortByCreated(rxs, func(rx model.Prescription) time.Time { return rx.CreatedAt })
	return rxs, nil
}

func (r *MemoryRepository) UpdatePrescription(ctx context.Context, rx model.Prescription) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.prescriptions[rx.ID]; !ok {
		return ErrPrescriptionNotFound
	}
	r.prescriptions[rx.ID] = rx
	return nil
}

func (r *MemoryRepository) DeletePrescription(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.prescriptions[id]; !ok {
		return ErrPrescriptionNotFound
	}
	delete(r.prescriptions, id)
	return nil
}

// Appointments

func (r *MemoryRepository) CreateAppointment(ctx context.Context, apt model.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.appointments[apt.ID] = apt
	return nil
}

func (r *MemoryRepository) GetAppointment(ctx context.Context, id uuid.UUID) (model.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	apt, ok := r.appointments[id]
	if !ok {
		return model.Appointment{}, ErrAppointmentNotFound
	}
	return apt, nil
}

func (r *MemoryRepository) ListAppointments(ctx context.Context) ([]model.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	apts := make([]model.Appointment, 0, len(r.appointments))
	for _, a := range r.appointments {
		apts = append(apts, a)
	}
	sortByCreated(apts, func(a model.Appointment) time.Time { return a.CreatedAt })
	return apts, nil
}

func (r *MemoryRepository) UpdateAppointment(ctx context.Context, apt model.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.appointments[apt.ID]; !ok {
		return ErrAppointmentNotFound
	}
	r.appointments[apt.ID] = apt
	return nil
}

func (r *MemoryRepository) DeleteAppointment(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.appointments[id]; !ok {
		return ErrAppointmentNotFound
	}
	delete(r.appointments, id)
	return nil
}

// Emergency contacts

func (r *MemoryRepository) CreateContact(ctx context.Context, contact model.EmergencyContact) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.contacts[contact.ID] = contact
	return nil
}

func (r *MemoryRepository) ListContacts(ctx context.Context) ([]model.EmergencyContact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	contacts := make([]model.EmergencyContact, 0, len(r.contacts))
	for _, c := range r.contacts {
		contacts = append(contacts, c)
	}
	sortByCreated(contacts, func(c model.EmergencyContact) time.Time { return c.CreatedAt })
	return contacts, nil
}

func (r *MemoryRepository) UpdateContact(ctx context.Context, contact model.EmergencyContact) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.contacts[contact.ID]; !ok {
		return ErrContactNotFound
	}
	r.contacts[contact.ID] = contact
	return nil
}

func (r *MemoryRepository) DeleteContact(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.contacts[id]; !ok {
		return ErrContactNotFound
	}
	delete(r.contacts, id)
	return nil
}

// Medical notes

func (r *MemoryRepository) CreateNote(ctx context.Context, note model.MedicalNote) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notes[note.ID] = note
	return nil
}

func (r *MemoryRepository) GetNote(ctx context.Context, id uuid.UUID) (model.MedicalNote, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	note, ok := r.notes[id]
	if !ok {
		return model.MedicalNote{}, ErrNoteNotFound
	}
	return note, nil
}

func (r *MemoryRepository) ListNotes(ctx context.Context) ([]model.MedicalNote, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	notes := make([]model.MedicalNote, 0, len(r.notes))
	for _, n := range r.notes {
		notes = append(notes, n)
	}
	sortByCreated(notes, func(n model.MedicalNote) time.Time { return n.CreatedAt })
	return notes, nil
}

func (r *MemoryRepository) UpdateNote(ctx context.Context, note model.MedicalNote) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.notes[note.ID]; !ok {
		return ErrNoteNotFound
	}
	r.notes[note.ID] = note
	return nil
}

func (r *MemoryRepository) DeleteNote(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.notes[id]; !ok {
		return ErrNoteNotFound
	}
	delete(r.notes, id)
	return nil
}

// Vital signs

func (r *MemoryRepository) CreateVital(ctx context.Context, vital model.VitalSign) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.vitals[vital.ID] = vital
	return nil
}

func (r *MemoryRepository) ListVitals(ctx context.Context) ([]model.VitalSign, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	vitals := make([]model.VitalSign, 0, len(r.vitals))
	for _, v := range r.vitals {
		vitals = append(vitals, v)
	}
	sortByCreated(vitals, func(v model.VitalSign) time.Time { return v.CreatedAt })
	return vitals, nil
}

func (r *MemoryRepository) ListVitalsByMember(ctx context.Context, memberID uuid.UUID) ([]model.VitalSign, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var vitals []model.VitalSign
	for _, v := range r.vitals {
		if v.FamilyMemberID == memberID {
			vitals = append(vitals, v)
		}
	}
	sortByCreated(vitals, func(v model.VitalSign) time.Time { return v.CreatedAt })
	return vitals, nil
}

func (r *MemoryRepository) UpdateVital(ctx context.Context, vital model.VitalSign) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.vitals[vital.ID]; !ok {
		return ErrVitalNotFound
	}
	r.vitals[vital.ID] = vital
	return nil
}

func (r *MemoryRepository) DeleteVital(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.vitals[id]; !ok {
		return ErrVitalNotFound
	}
	delete(r.vitals, id)
	return nil
}

// Vaccinations

func (r *MemoryRepository) CreateVaccination(ctx context.Context, rec model.VaccinationRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.vaccinations[rec.ID] = rec
	return nil
}

func (r *MemoryRepository) ListVaccinations(ctx context.Context) ([]model.VaccinationRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	recs := make([]model.VaccinationRecord, 0, len(r.vaccinations))
	for _, rec := range r.vaccinations {
		recs = append(recs, rec)
	}
	sortByCreated(recs, func(rec model.VaccinationRecord) time.Time { return rec.CreatedAt })
	return recs, nil
}

func (r *MemoryRepository) ListVaccinationsByMember(ctx context.Context, memberID uuid.UUID) ([]model.VaccinationRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var recs []model.VaccinationRecord
	for _, rec := range r.vaccinations {
		if rec.FamilyMemberID == memberID {
			recs = append(recs, rec)
		}
	}
	sortByCreated(recs, func(rec model.VaccinationRecord) time.Time { return rec.CreatedAt })
	return recs, nil
}

func (r *MemoryRepository) UpdateVaccination(ctx context.Context, rec model.VaccinationRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.vaccinations[rec.ID]; !ok {
		return ErrVaccinationNotFound
	}
	r.vaccinations[rec.ID] = rec
	return nil
}

func (r *MemoryRepository) DeleteVaccination(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.vaccinations[id]; !ok {
		return ErrVaccinationNotFound
	}
	delete(r.vaccinations, id)
	return nil
}

// Conditions

func (r *MemoryRepository) CreateCondition(ctx context.Context, cond model.Condition) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conditions[cond.ID] = cond
	return nil
}

func (r *MemoryRepository) GetCondition(ctx context.Context, id uuid.UUID) (model.Condition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cond, ok := r.conditions[id]
	if !ok {
		return model.Condition{}, ErrConditionNotFound
	}
	return cond, nil
}

func (r *MemoryRepository) ListConditions(ctx context.Context) ([]model.Condition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	conds := make([]model.Condition, 0, len(r.conditions))
	for _, c := range r.conditions {
		conds = append(conds, c)
	}
	sortByCreated(conds, func(c model.Condition) time.Time { return c.CreatedAt })
	return conds, nil
}

func (r *MemoryRepository) ListConditionsByMember(ctx context.Context, memberID uuid.UUID) ([]model.Condition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var conds []model.Condition
	for _, c := range r.conditions {
		if c.FamilyMemberID == memberID {
			conds = append(conds, c)
		}
	}
	sortByCreated(conds, func(c model.Condition) time.Time { return c.CreatedAt })
	return conds, nil
}

func (r *MemoryRepository) UpdateCondition(ctx context.Context, cond model.Condition) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.conditions[cond.ID]; !ok {
		return ErrConditionNotFound
	}
	r.conditions[cond.ID] = cond
	return nil
}

func (r *MemoryRepository) DeleteCondition(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.conditions[id]; !ok {
		return ErrConditionNotFound
	}
	delete(r.conditions, id)
	return nil
}

// Insurance policies

func (r *MemoryRepository) CreatePolicy(ctx context.Context, policy model.InsurancePolicy) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.policies[policy.ID] = policy
	return nil
}

func (r *MemoryRepository) GetPolicy(ctx context.Context, id uuid.UUID) (model.InsurancePolicy, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	policy, ok := r.policies[id]
	if !ok {
		return model.InsurancePolicy{}, ErrPolicyNotFound
	}
	return policy, nil
}

func (r *MemoryRepository) ListPolicies(ctx context.Context) ([]model.InsurancePolicy, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	policies := make([]model.InsurancePolicy, 0, len(r.policies))
	for _, p := range r.policies {
		policies = append(policies, p)
	}
	sortByCreated(policies, func(p model.InsurancePolicy) time.Time { return p.CreatedAt })
	return policies, nil
}

func (r *MemoryRepository) UpdatePolicy(ctx context.Context, policy model.InsurancePolicy) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.policies[policy.ID]; !ok {
		return ErrPolicyNotFound
	}
	r.policies[policy.ID] = policy
	return nil
}

func (r *MemoryRepository) DeletePolicy(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.policies[id]; !ok {
		return ErrPolicyNotFound
	}
	delete(r.policies, id)
	return nil
}

// Bills

func (r *MemoryRepository) CreateBill(ctx context.Context, bill model.Bill) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bills[bill.ID] = bill
	return nil
}

func (r *MemoryRepository) GetBill(ctx context.Context, id uuid.UUID) (model.Bill, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	bill, ok := r.bills[id]
	if !ok {
		return model.Bill{}, ErrBillNotFound
	}
	return bill, nil
}

func (r *MemoryRepository) ListBills(ctx context.Context) ([]model.Bill, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	bills := make([]model.Bill, 0, len(r.bills))
	for _, b := range r.bills {
		bills = append(bills, b)
	}
	sortByCreated(bills, func(b model.Bill) time.Time { return b.CreatedAt })
	return bills, nil
}

func (r *MemoryRepository) UpdateBill(ctx context.Context, bill model.Bill) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bills[bill.ID]; !ok {
		return ErrBillNotFound
	}
	r.bills[bill.ID] = bill
	return nil
}

func (r *MemoryRepository) DeleteBill(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bills[id]; !ok {
		return ErrBillNotFound
	}
	delete(r.bills, id)
	return nil
}

// Insurance claims

func (r *MemoryRepository) CreateClaim(ctx context.Context, claim model.InsuranceClaim) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.claims[claim.ID] = claim
	return nil
}

func (r *MemoryRepository) GetClaim(ctx context.Context, id uuid.UUID) (model.InsuranceClaim, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	claim, ok := r.claims[id]
	if !ok {
		return model.InsuranceClaim{}, ErrClaimNotFound
	}
	return claim, nil
}

func (r *MemoryRepository) ListClaims(ctx context.Context) ([]model.InsuranceClaim, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	claims := make([]model.InsuranceClaim, 0, len(r.claims))
	for _, c := range r.claims {
		claims = append(claims, c)
	}
	sortByCreated(claims, func(c model.InsuranceClaim) time.Time { return c.CreatedAt })
	return claims, nil
}

func (r *MemoryRepository) UpdateClaim(ctx context.Context, claim model.InsuranceClaim) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.claims[claim.ID]; !ok {
		return ErrClaimNotFound
	}
	r.claims[claim.ID] = claim
	return nil
}

func (r *MemoryRepository) DeleteClaim(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.claims[id]; !ok {
		return ErrClaimNotFound
	}
	delete(r.claims, id)
	return nil
}

// Wellness entries

func (r *MemoryRepository) CreateWellnessEntry(ctx context.Context, entry model.WellnessEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.wellness[entry.ID] = entry
	return nil
}

func (r *MemoryRepository) GetWellnessEntryByDate(ctx context.Context, memberID uuid.UUID, date model.Date) (model.WellnessEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, entry := range r.wellness {
		if entry.FamilyMemberID == memberID && entry.Date.Equal(date) {
			return entry, nil
		}
	}
	return model.WellnessEntry{}, ErrWellnessNotFound
}

func (r *MemoryRepository) ListWellnessEntries(ctx context.Context) ([]model.WellnessEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entries := make([]model.WellnessEntry, 0, len(r.wellness))
	for _, e := range r.wellness {
		entries = append(entries, e)
	}
	sortByCreated(entries, func(e model.WellnessEntry) time.Time { return e.CreatedAt })
	return entries, nil
}

func (r *MemoryRepository) UpdateWellnessEntry(ctx context.Context, entry model.WellnessEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.wellness[entry.ID]; !ok {
		return ErrWellnessNotFound
	}
	r.wellness[entry.ID] = entry
	return nil
}

func (r *MemoryRepository) DeleteWellnessEntry(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.wellness[id]; !ok {
		return ErrWellnessNotFound
	}
	delete(r.wellness, id)
	return nil
}

// Pregnancy

func (r *MemoryRepository) UpsertPregnancy(ctx context.Context, data model.PregnancyData) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pregnancies[data.FamilyMemberID] = data
	return nil
}

func (r *MemoryRepository) GetPregnancy(ctx context.Context, memberID uuid.UUID) (model.PregnancyData, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	data, ok := r.pregnancies[memberID]
	if !ok {
		return model.PregnancyData{}, ErrPregnancyNotFound
	}
	return data, nil
}

func (r *MemoryRepository) CreatePregnancyLog(ctx context.Context, entry model.PregnancyLogEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pregnancyLogs[entry.ID] = entry
	return nil
}

func (r *MemoryRepository) ListPregnancyLogs(ctx context.Context, memberID uuid.UUID) ([]model.PregnancyLogEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var entries []model.PregnancyLogEntry
	for _, e := range r.pregnancyLogs {
		if e.FamilyMemberID == memberID {
			entries = append(entries, e)
		}
	}
	// Newest log first, with creation time breaking ties within a day.
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Date.Equal(entries[j].Date) {
			return entries[j].CreatedAt.Before(entries[i].CreatedAt)
		}
		return entries[j].Date.Before(entries[i].Date)
	})
	return entries, nil
}

func (r *MemoryRepository) DeletePregnancyLog(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.pregnancyLogs[id]; !ok {
		return ErrPregnancyLogNotFound
	}
	delete(r.pregnancyLogs, id)
	return nil
}

func (r *MemoryRepository) CreateKickSession(ctx context.Context, session model.KickCounterSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.kickSessions[session.ID] = session
	return nil
}

func (r *MemoryRepository) GetKickSession(ctx context.Context, id uuid.UUID) (model.KickCounterSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	session, ok := r.kickSessions[id]
	if !ok {
		return model.KickCounterSession{}, ErrKickSessionNotFound
	}
	return session, nil
}

func (r *MemoryRepository) ListKickSessions(ctx context.Context, memberID uuid.UUID) ([]model.KickCounterSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var sessions []model.KickCounterSession
	for _, s := range r.kickSessions {
		if s.FamilyMemberID == memberID {
			sessions = append(sessions, s)
		}
	}
	sortByCreated(sessions, func(s model.KickCounterSession) time.Time { return s.CreatedAt })
	return sessions, nil
}

func (r *MemoryRepository) UpdateKickSession(ctx context.Context, session model.KickCounterSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.kickSessions[session.ID]; !ok {
		return ErrKickSessionNotFound
	}
	r.kickSessions[session.ID] = session
	return nil
}

// User profile

func (r *MemoryRepository) GetProfile(ctx context.Context) (model.UserProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.profile == nil {
		return model.UserProfile{}, ErrProfileNotFound
	}
	return *r.profile, nil
}

func (r *MemoryRepository) UpdateProfile(ctx context.Context, profile model.UserProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profile = &profile
	return nil
}
