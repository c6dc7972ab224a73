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
	"carebook/internal/validator"

	"github.com/google/uuid"
)

// termDays is the length of a full pregnancy term.
const termDays = 280

var ErrNoExpectantMother = errors.New("no expectant mother on file")

// PregnancyProgress is derived from the due date and an as-of date, never
// stored.
type PregnancyProgress struct {
	CurrentWeek     int     `json:"current_week"`
	DaysIntoWeek    int     `json:"days_into_week"`
	Trimester       int     `json:"trimester"`
	ProgressPercent float64 `json:"progress_percent"`
	DaysRemaining   int     `json:"days_remaining"`
}

// ComputeProgress derives the week, trimester and completion percentage for
// a pregnancy with the given due date as of asOf. Dates before the start of
// the term clamp to a zero state rather than going negative.
func ComputeProgress(dueDate, asOf model.Date) PregnancyProgress {
	startDate := dueDate.AddDays(-termDays)
	daysPassed := startDate.DaysUntil(asOf)
	if daysPassed < 0 {
		return PregnancyProgress{Trimester: 1, DaysRemaining: termDays}
	}

	week := daysPassed / 7
	trimester := 3
	switch {
	case week <= 13:
		trimester = 1
	case week <= 27:
		trimester = 2
	}

	percent := float64(daysPassed) / termDays * 100
	if percent > 100 {
		percent = 100
	}

	remaining := termDays - daysPassed
	if remaining < 0 {
		remaining = 0
	}

	return PregnancyProgress{
		CurrentWeek:     week,
		DaysIntoWeek:    daysPassed % 7,
		Trimester:       trimester,
		ProgressPercent: percent,
		DaysRemaining:   remaining,
	}
}

type PregnancyMilestone struct {
	Week        int    `json:"week"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

var pregnancyMilestones = []PregnancyMilestone{
	{Week: 8, Description: "First prenatal visit"},
	{Week: 12, Description: "Hear baby's heartbeat"},
	{Week: 20, Description: "Anatomy scan (ultrasound)"},
	{Week: 28, Description: "Glucose screening test"},
	{Week: 36, Description: "Group B Strep test"},
}

// Milestones returns the standard milestone schedule with completion derived
// from the current week.
func Milestones(progress PregnancyProgress) []PregnancyMilestone {
	out := make([]PregnancyMilestone, len(pregnancyMilestones))
	copy(out, pregnancyMilestones)
	for i := range out {
		out[i].Completed = progress.CurrentWeek >= out[i].Week
	}
	return out
}

// pregnancyAppointmentTypes are the appointment types shown on the tracker.
var pregnancyAppointmentTypes = map[model.AppointmentType]bool{
	model.AppointmentCheckUp:      true,
	model.AppointmentUltrasound:   true,
	model.AppointmentLabTest:      true,
	model.AppointmentConsultation: true,
}

type PregnancyTracker struct {
	Mother       model.FamilyMember         `json:"mother"`
	Data         model.PregnancyData        `json:"data"`
	Progress     PregnancyProgress          `json:"progress"`
	Milestones   []PregnancyMilestone       `json:"milestones"`
	Appointments []model.Appointment        `json:"appointments"`
	Log          []model.PregnancyLogEntry  `json:"log"`
	KickSessions []model.KickCounterSession `json:"kick_sessions"`
}

type PregnancyService struct {
	repo      repository.Repository
	validator *validator.Validator
	logger    *slog.Logger
	now       func() time.Time
}

func NewPregnancyService(repo repository.Repository, v *validator.Validator, logger *slog.Logger) *PregnancyService {
	return &PregnancyService{
		repo:      repo,
		validator: v,
		logger:    logger,
		now:       time.Now,
	}
}

// Mother picks the tracked expectant mother: the first spouse on file,
// falling back to the profile owner.
func (s *PregnancyService) Mother(ctx context.Context) (model.FamilyMember, error) {
	members, err := s.repo.ListMembers(ctx)
	if err != nil {
		return model.FamilyMember{}, fmt.Errorf("pregnancy: list members: %w", err)
	}
	for _, m := range members {
		if m.Relationship == model.RelationshipSpouse {
			return m, nil
		}
	}
	for _, m := range members {
		if m.Relationship == model.RelationshipSelf {
			return m, nil
		}
	}
	return model.FamilyMember{}, ErrNoExpectantMother
}

// Tracker assembles the full tracker view for the expectant mother.
func (s *PregnancyService) Tracker(ctx context.Context) (PregnancyTracker, error) {
	mother, err := s.Mother(ctx)
	if err != nil {
		return PregnancyTracker{}, err
	}

	data, err := s.repo.GetPregnancy(ctx, mother.ID)
	if err != nil {
		return PregnancyTracker{}, fmt.Errorf("pregnancy: get data: %w", err)
	}

	progress := ComputeProgress(data.DueDate, model.DateOf(s.now()))

	logEntries, err := s.repo.ListPregnancyLogs(ctx, mother.ID)
	if err != nil {
		return PregnancyTracker{}, fmt.Errorf("pregnancy: list log: %w", err)
	}

	sessions, err := s.repo.ListKickSessions(ctx, mother.ID)
	if err != nil {
		return PregnancyTracker{}, fmt.Errorf("pregnancy: list kick sessions: %w", err)
	}

	appointments, err := s.repo.ListAppointments(ctx)
	if err != nil {
		return PregnancyTracker{}, fmt.Errorf("pregnancy: list appointments: %w", err)
	}
	// The appointment log keeps past visits visible, newest first.
	var log []model.Appointment
	for _, apt := range appointments {
		if apt.FamilyMemberID == mother.ID && pregnancyAppointmentTypes[apt.Type] {
			log = append(log, apt)
		}
	}
	sort.SliceStable(log, func(i, j int) bool {
		return log[j].Date.Before(log[i].Date)
	})

	return PregnancyTracker{
		Mother:       mother,
		Data:         data,
		Progress:     progress,
		Milestones:   Milestones(progress),
		Appointments: log,
		Log:          logEntries,
		KickSessions: sessions,
	}, nil
}

// SetPregnancy creates or replaces the tracker state for the expectant
// mother.
func (s *PregnancyService) SetPregnancy(ctx context.Context, data model.PregnancyData) (model.PregnancyData, error) {
	if data.FamilyMemberID == uuid.Nil {
		mother, err := s.Mother(ctx)
		if err != nil {
			return model.PregnancyData{}, err
		}
		data.FamilyMemberID = mother.ID
	} else if _, err := s.repo.GetMember(ctx, data.FamilyMemberID); err != nil {
		return model.PregnancyData{}, fmt.Errorf("pregnancy: get member: %w", err)
	}

	now := s.now()
	data.CreatedAt = now
	data.UpdatedAt = now
	if err := s.repo.UpsertPregnancy(ctx, data); err != nil {
		return model.PregnancyData{}, fmt.Errorf("pregnancy: upsert: %w", err)
	}

	s.logger.InfoContext(ctx, "Pregnancy tracker updated",
		"family_member_id", data.FamilyMemberID,
		"due_date", data.DueDate.String())
	return data, nil
}

// AddLogEntry records one journal entry for the tracked pregnancy.
func (s *PregnancyService) AddLogEntry(ctx context.Context, entry model.PregnancyLogEntry) (model.PregnancyLogEntry, error) {
	mother, err := s.Mother(ctx)
	if err != nil {
		return model.PregnancyLogEntry{}, err
	}

	now := s.now()
	entry.ID = uuid.New()
	entry.FamilyMemberID = mother.ID
	if entry.Date.IsZero() {
		entry.Date = model.DateOf(now)
	}
	if entry.Mood == "" {
		entry.Mood = model.PregnancyMoodNeutral
	}
	entry.CreatedAt = now
	entry.UpdatedAt = now

	if err := s.validator.Validate(entry); err != nil {
		return model.PregnancyLogEntry{}, fmt.Errorf("pregnancy: validate log entry: %w", err)
	}
	if err := s.repo.CreatePregnancyLog(ctx, entry); err != nil {
		return model.PregnancyLogEntry{}, fmt.Errorf("pregnancy: create log entry: %w", err)
	}
	return entry, nil
}

func (s *PregnancyService) DeleteLogEntry(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeletePregnancyLog(ctx, id)
}

// StartKickSession opens a new counting session.
func (s *PregnancyService) StartKickSession(ctx context.Context) (model.KickCounterSession, error) {
	mother, err := s.Mother(ctx)
	if err != nil {
		return model.KickCounterSession{}, err
	}

	now := s.now()
	session := model.KickCounterSession{
		ID:             uuid.New(),
		FamilyMemberID: mother.ID,
		Date:           model.DateOf(now),
		StartedAt:      now,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.repo.CreateKickSession(ctx, session); err != nil {
		return model.KickCounterSession{}, fmt.Errorf("pregnancy: create kick session: %w", err)
	}
	return session, nil
}

// RecordKick appends one kick to an open session.
func (s *PregnancyService) RecordKick(ctx context.Context, sessionID uuid.UUID) (model.KickCounterSession, error) {
	session, err := s.repo.GetKickSession(ctx, sessionID)
	if err != nil {
		return model.KickCounterSession{}, fmt.Errorf("pregnancy: get kick session: %w", err)
	}
	if session.EndedAt.IsSet {
		return model.KickCounterSession{}, errors.New("pregnancy: kick session already ended")
	}

	now := s.now()
	session.Kicks = append(session.Kicks, now)
	session.UpdatedAt = now
	if err := s.repo.UpdateKickSession(ctx, session); err != nil {
		return model.KickCounterSession{}, fmt.Errorf("pregnancy: update kick session: %w", err)
	}
	return session, nil
}

// EndKickSession closes a session and fixes its duration.
func (s *PregnancyService) EndKickSession(ctx context.Context, sessionID uuid.UUID) (model.KickCounterSession, error) {
	session, err := s.repo.GetKickSession(ctx, sessionID)
	if err != nil {
		return model.KickCounterSession{}, fmt.Errorf("pregnancy: get kick session: %w", err)
	}
	if session.EndedAt.IsSet {
		return session, nil
	}

	now := s.now()
	session.EndedAt = util.Some(now)
	session.DurationSeconds = int(now.Sub(session.StartedAt).Seconds())
	session.UpdatedAt = now
	if err := s.repo.UpdateKickSession(ctx, session); err != nil {
		return model.KickCounterSession{}, fmt.Errorf("pregnancy: update kick session: %w", err)
	}

	s.logger.InfoContext(ctx, "Kick session closed",
		"session_id", session.ID,
		"kicks", len(session.Kicks),
		"duration_seconds", session.DurationSeconds)
	return session, nil
}
