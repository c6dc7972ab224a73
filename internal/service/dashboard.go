package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"carebook/internal/model"
	"carebook/internal/repository"
	"carebook/internal/util"
)

const (
	refillWindowDays  = 7
	billDueWindowDays = 14
	lowRefillCount    = 1

	upcomingAppointmentLimit = 3
	recentActivityLimit      = 5
)

type ActionItemType string

const (
	ActionNote         ActionItemType = "note"
	ActionPrescription ActionItemType = "prescription"
	ActionBill         ActionItemType = "bill"
	ActionWellness     ActionItemType = "wellness"
)

// ActionItem is one entry on the dashboard urgent-actions list. ID is a
// string because one prescription can contribute two items, the second
// suffixed with "-refill", and the wellness nudge has the fixed id
// "wellness".
type ActionItem struct {
	ID          string         `json:"id"`
	Type        ActionItemType `json:"type"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Link        string         `json:"link"`
}

type Activity struct {
	Date model.Date `json:"date"`
	Text string     `json:"text"`
	Link string     `json:"link"`
}

type DashboardStats struct {
	UrgentActions        int `json:"urgent_actions"`
	UpcomingAppointments int `json:"upcoming_appointments"`
	FamilyMembers        int `json:"family_members"`
	Documents            int `json:"documents"`
}

type DashboardOverview struct {
	Stats          DashboardStats      `json:"stats"`
	ActionItems    []ActionItem        `json:"action_items"`
	Appointments   []model.Appointment `json:"appointments"`
	RecentActivity []Activity          `json:"recent_activity"`
}

type DashboardService struct {
	repo   repository.Repository
	logger *slog.Logger
	now    func() time.Time
}

func NewDashboardService(repo repository.Repository, logger *slog.Logger) *DashboardService {
	return &DashboardService{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

// ActionItems scans all records for items needing attention. The list order
// is fixed: critical notes, expiring prescriptions, low-refill
// prescriptions, unpaid bills due soon, then the daily wellness nudge. A
// prescription that is both expiring and low on refills appears twice.
func (s *DashboardService) ActionItems(ctx context.Context) ([]ActionItem, error) {
	members, err := s.repo.ListMembers(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: list members: %w", err)
	}
	nameOf := memberNames(members)

	today := model.DateOf(s.now())
	items := []ActionItem{}

	notes, err := s.repo.ListNotes(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: list notes: %w", err)
	}
	for _, n := range notes {
		if !n.IsCritical {
			continue
		}
		items = append(items, ActionItem{
			ID:          n.ID.String(),
			Type:        ActionNote,
			Title:       fmt.Sprintf("Critical Note: %s", nameOf(n.FamilyMemberID)),
			Description: n.Title,
			Link:        "/emergency",
		})
	}

	prescriptions, err := s.repo.ListPrescriptions(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: list prescriptions: %w", err)
	}
	refillCutoff := today.AddDays(refillWindowDays)
	for _, p := range prescriptions {
		if !p.EndDate.IsSet {
			continue
		}
		end := p.EndDate.Val
		if end.Before(today) || end.After(refillCutoff) {
			continue
		}
		items = append(items, ActionItem{
			ID:          p.ID.String(),
			Type:        ActionPrescription,
			Title:       fmt.Sprintf("Refill Needed: %s", p.MedicationName),
			Description: fmt.Sprintf("For %s. Expires on %s.", nameOf(util.Some(p.FamilyMemberID)), end),
			Link:        "/prescriptions",
		})
	}
	for _, p := range prescriptions {
		if !p.RefillsRemaining.IsSet || p.RefillsRemaining.Val > lowRefillCount {
			continue
		}
		items = append(items, ActionItem{
			ID:          p.ID.String() + "-refill",
			Type:        ActionPrescription,
			Title:       fmt.Sprintf("Low Refills: %s", p.MedicationName),
			Description: fmt.Sprintf("%d refill(s) left for %s.", p.RefillsRemaining.Val, nameOf(util.Some(p.FamilyMemberID))),
			Link:        "/prescriptions",
		})
	}

	bills, err := s.repo.ListBills(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: list bills: %w", err)
	}
	dueCutoff := today.AddDays(billDueWindowDays)
	for _, b := range bills {
		if b.IsPaid || b.DueDate.Before(today) || b.DueDate.After(dueCutoff) {
			continue
		}
		items = append(items, ActionItem{
			ID:          b.ID.String(),
			Type:        ActionBill,
			Title:       fmt.Sprintf("Bill Due: %s", b.DueDate),
			Description: fmt.Sprintf("$%.2f to %s", b.AmountDue, b.ServiceProvider),
			Link:        "/insurance",
		})
	}

	logged, err := s.userLoggedWellnessToday(ctx, today)
	if err != nil {
		return nil, err
	}
	if !logged {
		items = append(items, ActionItem{
			ID:          "wellness",
			Type:        ActionWellness,
			Title:       "Daily Wellness Reminder",
			Description: "Log your mood and health for today.",
			Link:        "/wellness",
		})
	}

	return items, nil
}

// UpcomingAppointments returns the next few appointments from today on,
// soonest first.
func (s *DashboardService) UpcomingAppointments(ctx context.Context) ([]model.Appointment, error) {
	appointments, err := s.repo.ListAppointments(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: list appointments: %w", err)
	}

	today := model.DateOf(s.now())
	upcoming := []model.Appointment{}
	for _, apt := range appointments {
		if !apt.Date.Before(today) {
			upcoming = append(upcoming, apt)
		}
	}
	sortAppointmentsAscending(upcoming)
	if len(upcoming) > upcomingAppointmentLimit {
		upcoming = upcoming[:upcomingAppointmentLimit]
	}
	return upcoming, nil
}

// RecentActivity merges document uploads, prescription starts and wellness
// entries into one feed, newest first, capped at a handful of rows.
func (s *DashboardService) RecentActivity(ctx context.Context) ([]Activity, error) {
	members, err := s.repo.ListMembers(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: list members: %w", err)
	}
	nameOf := memberNames(members)

	activities := []Activity{}

	documents, err := s.repo.ListDocuments(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: list documents: %w", err)
	}
	for _, d := range documents {
		activities = append(activities, Activity{
			Date: d.UploadDate,
			Text: fmt.Sprintf("Document %q added for %s", d.Title, nameOf(d.FamilyMemberID)),
			Link: "/documents",
		})
	}

	prescriptions, err := s.repo.ListPrescriptions(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: list prescriptions: %w", err)
	}
	for _, p := range prescriptions {
		activities = append(activities, Activity{
			Date: p.StartDate,
			Text: fmt.Sprintf("Prescription %q started for %s", p.MedicationName, nameOf(util.Some(p.FamilyMemberID))),
			Link: "/prescriptions",
		})
	}

	wellness, err := s.repo.ListWellnessEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: list wellness entries: %w", err)
	}
	for _, w := range wellness {
		activities = append(activities, Activity{
			Date: w.Date,
			Text: fmt.Sprintf("Wellness entry for %s logged", nameOf(util.Some(w.FamilyMemberID))),
			Link: "/wellness",
		})
	}

	sort.SliceStable(activities, func(i, j int) bool {
		return activities[j].Date.Before(activities[i].Date)
	})
	if len(activities) > recentActivityLimit {
		activities = activities[:recentActivityLimit]
	}
	return activities, nil
}

// Overview assembles everything the dashboard shows in one call.
func (s *DashboardService) Overview(ctx context.Context) (DashboardOverview, error) {
	items, err := s.ActionItems(ctx)
	if err != nil {
		return DashboardOverview{}, err
	}

	appointments, err := s.UpcomingAppointments(ctx)
	if err != nil {
		return DashboardOverview{}, err
	}

	activity, err := s.RecentActivity(ctx)
	if err != nil {
		return DashboardOverview{}, err
	}

	members, err := s.repo.ListMembers(ctx)
	if err != nil {
		return DashboardOverview{}, fmt.Errorf("dashboard: list members: %w", err)
	}

	documents, err := s.repo.ListDocuments(ctx)
	if err != nil {
		return DashboardOverview{}, fmt.Errorf("dashboard: list documents: %w", err)
	}

	return DashboardOverview{
		Stats: DashboardStats{
			UrgentActions:        len(items),
			UpcomingAppointments: len(appointments),
			FamilyMembers:        len(members),
			Documents:            len(documents),
		},
		ActionItems:    items,
		Appointments:   appointments,
		RecentActivity: activity,
	}, nil
}

// userLoggedWellnessToday reports whether the profile owner has a wellness
// entry for today. A missing profile counts as not logged.
func (s *DashboardService) userLoggedWellnessToday(ctx context.Context, today model.Date) (bool, error) {
	profile, err := s.repo.GetProfile(ctx)
	if errors.Is(err, repository.ErrProfileNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("dashboard: get profile: %w", err)
	}

	_, err = s.repo.GetWellnessEntryByDate(ctx, profile.ID, today)
	if errors.Is(err, repository.ErrWellnessNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("dashboard: get wellness entry: %w", err)
	}
	return true, nil
}
