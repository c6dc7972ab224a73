package model

import (
	"time"

	"carebook/internal/util"

	"github.com/google/uuid"
)

type PregnancyMood string

const (
	PregnancyMoodHappy    PregnancyMood = "Happy"
	PregnancyMoodExcited  PregnancyMood = "Excited"
	PregnancyMoodNeutral  PregnancyMood = "Neutral"
	PregnancyMoodAnxious  PregnancyMood = "Anxious"
	PregnancyMoodTired    PregnancyMood = "Tired"
	PregnancyMoodNauseous PregnancyMood = "Nauseous"
)

var PregnancyMoods = []PregnancyMood{
	PregnancyMoodHappy, PregnancyMoodExcited, PregnancyMoodNeutral,
	PregnancyMoodAnxious, PregnancyMoodTired, PregnancyMoodNauseous,
}

// PregnancyData holds the tracker state for one member. Progress values
// (week, trimester, days remaining) are derived from the due date and are
// never stored.
type PregnancyData struct {
	FamilyMemberID uuid.UUID             `json:"family_member_id" validate:"required"`
	DueDate        Date                  `json:"due_date"`
	BabyName       util.Optional[string] `json:"baby_name"`
	DoctorName     util.Optional[string] `json:"doctor_name"`
	HospitalName   util.Optional[string] `json:"hospital_name"`
	CreatedAt      time.Time             `json:"created_at"`
	UpdatedAt      time.Time             `json:"updated_at"`
}

type PregnancyLogEntry struct {
	ID             uuid.UUID     `json:"id"`
	FamilyMemberID uuid.UUID     `json:"family_member_id" validate:"required"`
	Date           Date          `json:"date"`
	Mood           PregnancyMood `json:"mood" validate:"required,pregnancy_mood"`
	Symptoms       []string      `json:"symptoms"`
	Notes          string        `json:"notes"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

// KickCounterSession records one counting session. Kicks holds the
// timestamp of each recorded kick; a session closes when the caller ends
// it and DurationSeconds is fixed at that point.
type KickCounterSession struct {
	ID              uuid.UUID                `json:"id"`
	FamilyMemberID  uuid.UUID                `json:"family_member_id" validate:"required"`
	Date            Date                     `json:"date"`
	StartedAt       time.Time                `json:"started_at"`
	EndedAt         util.Optional[time.Time] `json:"ended_at"`
	Kicks           []time.Time              `json:"kicks"`
	DurationSeconds int                      `json:"duration_seconds"`
	CreatedAt       time.Time                `json:"created_at"`
	UpdatedAt       time.Time                `json:"updated_at"`
}
