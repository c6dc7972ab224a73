package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"carebook/internal/model"
	"carebook/internal/repository"

	"github.com/google/uuid"
)

type TimelineEventType string

const (
	EventDocument     TimelineEventType = "document"
	EventPrescription TimelineEventType = "prescription"
	EventNote         TimelineEventType = "note"
	EventBill         TimelineEventType = "bill"
	EventVital        TimelineEventType = "vital"
	EventVaccination  TimelineEventType = "vaccination"
	EventAppointment  TimelineEventType = "appointment"
	EventWellness     TimelineEventType = "wellness"
	EventCondition    TimelineEventType = "condition"
)

type TimelineEvent struct {
	ID         uuid.UUID         `json:"id"`
	Type       TimelineEventType `json:"type"`
	Title      string            `json:"title"`
	Date       model.Date        `json:"date"`
	IsCritical bool              `json:"is_critical,omitempty"`
}

type TimelineService struct {
	repo   repository.Repository
	logger *slog.Logger
}

func NewTimelineService(repo repository.Repository, logger *slog.Logger) *TimelineService {
	return &TimelineService{
		repo:   repo,
		logger: logger,
	}
}

// MemberTimeline merges every record type for one member into a single
// date-descending event list. Each source contributes in a fixed order and
// the sort is stable, so same-day events keep that order.
func (s *TimelineService) MemberTimeline(ctx context.Context, memberID uuid.UUID) ([]TimelineEvent, error) {
	if _, err := s.repo.GetMember(ctx, memberID); err != nil {
		return nil, fmt.Errorf("timeline: get member: %w", err)
	}

	events := []TimelineEvent{}

	documents, err := s.repo.ListDocuments(ctx)
	if err != nil {
		return nil, fmt.Errorf("timeline: list documents: %w", err)
	}
	for _, d := range documents {
		if d.FamilyMemberID.IsSet && d.FamilyMemberID.Val == memberID {
			events = append(events, TimelineEvent{ID: d.ID, Type: EventDocument, Title: d.Title, Date: d.UploadDate})
		}
	}

	prescriptions, err := s.repo.ListPrescriptions(ctx)
	if err != nil {
		return nil, fmt.Errorf("timeline: list prescriptions: %w", err)
	}
	for _, p := range prescriptions {
		if p.FamilyMemberID == memberID {
			events = append(events, TimelineEvent{ID: p.ID, Type: EventPrescription, Title: p.MedicationName, Date: p.StartDate})
		}
	}

	notes, err := s.repo.ListNotes(ctx)
	if err != nil {
		return nil, fmt.Errorf("timeline: list notes: %w", err)
	}
	for _, n := range notes {
		if n.FamilyMemberID.IsSet && n.FamilyMemberID.Val == memberID {
			events = append(events, TimelineEvent{ID: n.ID, Type: EventNote, Title: n.Title, Date: n.Date, IsCritical: n.IsCritical})
		}
	}

	bills, err := s.repo.ListBills(ctx)
	if err != nil {
		return nil, fmt.Errorf("timeline: list bills: %w", err)
	}
	policies, err := s.repo.ListPolicies(ctx)
	if err != nil {
		return nil, fmt.Errorf("timeline: list policies: %w", err)
	}
	memberHasPolicy := false
	for _, p := range policies {
		if p.MemberID == memberID {
			memberHasPolicy = true
			break
		}
	}
	for _, b := range bills {
		// Bills without a direct member link fall back to insurance
		// policy matching: an unattributed bill shows up on the timeline
		// of any member who holds a policy.
		attributed := b.FamilyMemberID.IsSet && b.FamilyMemberID.Val == memberID
		if attributed || (!b.FamilyMemberID.IsSet && memberHasPolicy) {
			events = append(events, TimelineEvent{
				ID:    b.ID,
				Type:  EventBill,
				Title: fmt.Sprintf("Bill from %s", b.ServiceProvider),
				Date:  b.ServiceDate,
			})
		}
	}

	vitals, err := s.repo.ListVitalsByMember(ctx, memberID)
	if err != nil {
		return nil, fmt.Errorf("timeline: list vitals: %w", err)
	}
	for _, v := range vitals {
		events = append(events, TimelineEvent{ID: v.ID, Type: EventVital, Title: vitalTitle(v), Date: v.Date})
	}

	vaccinations, err := s.repo.ListVaccinationsByMember(ctx, memberID)
	if err != nil {
		return nil, fmt.Errorf("timeline: list vaccinations: %w", err)
	}
	for _, v := range vaccinations {
		events = append(events, TimelineEvent{ID: v.ID, Type: EventVaccination, Title: v.VaccineName, Date: v.DateAdministered})
	}

	appointments, err := s.repo.ListAppointments(ctx)
	if err != nil {
		return nil, fmt.Errorf("timeline: list appointments: %w", err)
	}
	for _, a := range appointments {
		if a.FamilyMemberID == memberID {
			events = append(events, TimelineEvent{
				ID:    a.ID,
				Type:  EventAppointment,
				Title: fmt.Sprintf("%s with %s", a.Type, a.Doctor),
				Date:  a.Date,
			})
		}
	}

	wellness, err := s.repo.ListWellnessEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("timeline: list wellness entries: %w", err)
	}
	for _, w := range wellness {
		if w.FamilyMemberID == memberID {
			events = append(events, TimelineEvent{ID: w.ID, Type: EventWellness, Title: wellnessTitle(w), Date: w.Date})
		}
	}

	conditions, err := s.repo.ListConditionsByMember(ctx, memberID)
	if err != nil {
		return nil, fmt.Errorf("timeline: list conditions: %w", err)
	}
	for _, c := range conditions {
		events = append(events, TimelineEvent{
			ID:    c.ID,
			Type:  EventCondition,
			Title: fmt.Sprintf("Diagnosis: %s (%s)", c.Name, c.Status),
			Date:  c.DateOfDiagnosis,
		})
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[j].Date.Before(events[i].Date)
	})
	return events, nil
}

func vitalTitle(v model.VitalSign) string {
	var parts []string
	if v.WeightKg.IsSet {
		parts = append(parts, formatFloat(v.WeightKg.Val)+"kg")
	}
	if v.BloodPressure.IsSet {
		parts = append(parts, v.BloodPressure.Val+" BP")
	}
	if v.HeartRate.IsSet {
		parts = append(parts, strconv.Itoa(v.HeartRate.Val)+"bpm")
	}
	details := strings.Join(parts, ", ")
	if details == "" {
		details = "Entry created"
	}
	return "Vitals Logged: " + details
}

func wellnessTitle(w model.WellnessEntry) string {
	var parts []string
	if w.Mood.IsSet {
		parts = append(parts, string(w.Mood.Val))
	}
	if w.SleepHours.IsSet {
		parts = append(parts, formatFloat(w.SleepHours.Val)+"h sleep")
	}
	if w.WaterIntakeLiters.IsSet {
		parts = append(parts, formatFloat(w.WaterIntakeLiters.Val)+"L water")
	}
	if w.Activity.IsSet && w.Activity.Val != "" {
		parts = append(parts, w.Activity.Val)
	}
	details := strings.Join(parts, " • ")
	if details == "" {
		details = "Entry Logged"
	}
	return "Wellness: " + details
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
