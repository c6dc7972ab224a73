package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"carebook/internal/model"
	"carebook/internal/repository"
	"carebook/internal/settings"

	"github.com/redis/go-redis/v9"
)

const (
	appointmentReminderDays = 2
	billReminderDays        = 3
)

type ReminderLevel string

const (
	ReminderInfo    ReminderLevel = "info"
	ReminderWarning ReminderLevel = "warning"
)

// Reminder is one notification due right now. Key dedupes firings: each key
// fires at most once per day.
type Reminder struct {
	Key     string        `json:"key"`
	Level   ReminderLevel `json:"level"`
	Message string        `json:"message"`
}

// FiredStore remembers which reminder keys already fired so a rescan does
// not repeat them.
type FiredStore interface {
	MarkFired(ctx context.Context, key string) (bool, error)
}

// RedisFiredStore keeps fired keys in a per-day Redis set that expires on
// its own.
type RedisFiredStore struct {
	redis *redis.Client
}

func NewRedisFiredStore(client *redis.Client) *RedisFiredStore {
	return &RedisFiredStore{redis: client}
}

func (r *RedisFiredStore) MarkFired(ctx context.Context, key string) (bool, error) {
	setKey := fmt.Sprintf("reminders_fired:%s", time.Now().Format("2006-01-02"))

	added, err := r.redis.SAdd(ctx, setKey, key).Result()
	if err != nil {
		return false, fmt.Errorf("reminders: mark fired: %w", err)
	}
	r.redis.Expire(ctx, setKey, 48*time.Hour)

	return added == 1, nil
}

// MemoryFiredStore backs the Redis-less mode.
type MemoryFiredStore struct {
	mu    sync.Mutex
	fired map[string]struct{}
}

func NewMemoryFiredStore() *MemoryFiredStore {
	return &MemoryFiredStore{fired: map[string]struct{}{}}
}

func (m *MemoryFiredStore) MarkFired(ctx context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.fired[key]; ok {
		return false, nil
	}
	m.fired[key] = struct{}{}
	return true, nil
}

type ReminderService struct {
	repo     repository.Repository
	settings *settings.Store
	fired    FiredStore
	logger   *slog.Logger
	now      func() time.Time
}

func NewReminderService(repo repository.Repository, settingsStore *settings.Store, fired FiredStore, logger *slog.Logger) *ReminderService {
	return &ReminderService{
		repo:     repo,
		settings: settingsStore,
		fired:    fired,
		logger:   logger,
		now:      time.Now,
	}
}

// DueReminders scans appointments, bills and the wellness log for
// notifications due right now, honoring the reminder settings. Each
// returned reminder is marked fired so the next scan skips it.
func (s *ReminderService) DueReminders(ctx context.Context) ([]Reminder, error) {
	cfg, err := s.settings.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("reminders: get settings: %w", err)
	}

	now := s.now()
	today := model.DateOf(now)
	due := []Reminder{}

	if cfg.Billing.DueDateRemindersEnabled {
		appointments, err := s.repo.ListAppointments(ctx)
		if err != nil {
			return nil, fmt.Errorf("reminders: list appointments: %w", err)
		}
		aptCutoff := today.AddDays(appointmentReminderDays)
		for _, apt := range appointments {
			if apt.Date.Before(today) || apt.Date.After(aptCutoff) {
				continue
			}
			due = append(due, Reminder{
				Key:     fmt.Sprintf("apt-%s", apt.ID),
				Level:   ReminderInfo,
				Message: fmt.Sprintf("Reminder: Appointment with %s is on %s.", apt.Doctor, apt.Date),
			})
		}

		bills, err := s.repo.ListBills(ctx)
		if err != nil {
			return nil, fmt.Errorf("reminders: list bills: %w", err)
		}
		billCutoff := today.AddDays(billReminderDays)
		for _, bill := range bills {
			if bill.IsPaid || bill.DueDate.Before(today) || bill.DueDate.After(billCutoff) {
				continue
			}
			due = append(due, Reminder{
				Key:     fmt.Sprintf("bill-%s", bill.ID),
				Level:   ReminderWarning,
				Message: fmt.Sprintf("Bill due soon: $%s to %s.", formatFloat(bill.AmountDue), bill.ServiceProvider),
			})
		}
	}

	if cfg.Wellness.RemindersEnabled && reminderTimeReached(cfg.Wellness.ReminderTime, now) {
		logged, err := s.userLoggedWellnessToday(ctx, today)
		if err != nil {
			return nil, err
		}
		if !logged {
			due = append(due, Reminder{
				Key:     fmt.Sprintf("wellness-%s", today),
				Level:   ReminderInfo,
				Message: "Don't forget to log your wellness for today!",
			})
		}
	}

	fresh := due[:0]
	for _, r := range due {
		first, err := s.fired.MarkFired(ctx, r.Key)
		if err != nil {
			return nil, err
		}
		if first {
			fresh = append(fresh, r)
		}
	}

	if len(fresh) > 0 {
		s.logger.InfoContext(ctx, "Reminders due", "count", len(fresh))
	}
	return fresh, nil
}

func (s *ReminderService) userLoggedWellnessToday(ctx context.Context, today model.Date) (bool, error) {
	profile, err := s.repo.GetProfile(ctx)
	if errors.Is(err, repository.ErrProfileNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("reminders: get profile: %w", err)
	}

	_, err = s.repo.GetWellnessEntryByDate(ctx, profile.ID, today)
	if errors.Is(err, repository.ErrWellnessNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("reminders: get wellness entry: %w", err)
	}
	return true, nil
}

// reminderTimeReached parses an "HH:MM" preference and reports whether now
// is at or past it. Malformed times never fire.
func reminderTimeReached(pref string, now time.Time) bool {
	parts := strings.SplitN(pref, ":", 2)
	if len(parts) != 2 {
		return false
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return false
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return false
	}
	return now.Hour() > hour || (now.Hour() == hour && now.Minute() >= minute)
}
