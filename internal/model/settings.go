package model

// AppSettings is stored as a single JSON blob. Stored fields are merged
// over DefaultSettings on read, so a blob written by an older build never
// loses newly added preferences.
type AppSettings struct {
	Wellness  WellnessSettings  `json:"wellness"`
	Billing   BillingSettings   `json:"billing"`
	Dashboard DashboardSettings `json:"dashboard"`
}

type WellnessSettings struct {
	DefaultMood           Mood    `json:"default_mood" validate:"mood"`
	WaterIntakeGoalLiters float64 `json:"water_intake_goal_liters"`
	SleepGoalHours        float64 `json:"sleep_goal_hours"`
	RemindersEnabled      bool    `json:"reminders_enabled"`
	ReminderTime          string  `json:"reminder_time" validate:"time_of_day"`
}

type BillingSettings struct {
	DefaultPaymentMethod    string          `json:"default_payment_method"`
	DueDateRemindersEnabled bool            `json:"due_date_reminders_enabled"`
	PolicyVisibility        map[string]bool `json:"policy_visibility"`
}

type DashboardSettings struct {
	WidgetVisibility map[string]bool `json:"widget_visibility"`
}

// DashboardWidgets is the full widget set in display order.
var DashboardWidgets = []string{
	"stats", "actions", "appointments", "activity", "family", "wellness", "explore",
}

func DefaultSettings() AppSettings {
	visibility := make(map[string]bool, len(DashboardWidgets))
	for _, id := range DashboardWidgets {
		visibility[id] = true
	}
	return AppSettings{
		Wellness: WellnessSettings{
			DefaultMood:           MoodNeutral,
			WaterIntakeGoalLiters: 2.5,
			SleepGoalHours:        8,
			RemindersEnabled:      true,
			ReminderTime:          "09:00",
		},
		Billing: BillingSettings{
			DefaultPaymentMethod:    "HSA Card",
			DueDateRemindersEnabled: true,
			PolicyVisibility:        map[string]bool{},
		},
		Dashboard: DashboardSettings{
			WidgetVisibility: visibility,
		},
	}
}
