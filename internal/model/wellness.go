package model

import (
	"time"

	"carebook/internal/util"

	"github.com/google/uuid"
)

type Mood string

const (
	MoodHappy     Mood = "Happy"
	MoodNeutral   Mood = "Neutral"
	MoodSad       Mood = "Sad"
	MoodAnxious   Mood = "Anxious"
	MoodEnergetic Mood = "Energetic"
)

var Moods = []Mood{MoodHappy, MoodNeutral, MoodSad, MoodAnxious, MoodEnergetic}

// WellnessEntry is one day of wellness logging for one member. At most one
// entry exists per member per date.
type WellnessEntry struct {
	ID                uuid.UUID              `json:"id"`
	FamilyMemberID    uuid.UUID              `json:"family_member_id" validate:"required"`
	Date              Date                   `json:"date"`
	Mood              util.Optional[Mood]    `json:"mood" validate:"omitempty,mood"`
	SleepHours        util.Optional[float64] `json:"sleep_hours"`
	Activity          util.Optional[string]  `json:"activity"`
	WaterIntakeLiters util.Optional[float64] `json:"water_intake_liters"`
	Calories          util.Optional[int]     `json:"calories"`
	MealNotes         string                 `json:"meal_notes"`
	Notes             string                 `json:"notes"`
	CreatedAt         time.Time              `json:"created_at"`
	UpdatedAt         time.Time              `json:"updated_at"`
}
