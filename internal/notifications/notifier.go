package notifications

import (
	"log/slog"
	"sync"
	"time"

	"carebook/internal/service"
)

const maxRecent = 100

// Notification is a reminder that has been delivered to the family.
type Notification struct {
	Key       string                `json:"key"`
	Level     service.ReminderLevel `json:"level"`
	Message   string                `json:"message"`
	CreatedAt time.Time             `json:"created_at"`
}

// Notifier delivers reminders and keeps a short history of what was sent.
// Delivery is a structured log line; the history backs the notifications
// endpoint so the app can show what fired while it was closed.
type Notifier struct {
	logger *slog.Logger

	mu     sync.Mutex
	recent []Notification
}

func NewNotifier(logger *slog.Logger) *Notifier {
	return &Notifier{logger: logger}
}

// Notify delivers a single reminder.
func (n *Notifier) Notify(reminder service.Reminder) {
	n.logger.Info("Reminder fired",
		"key", reminder.Key,
		"level", string(reminder.Level),
		"message", reminder.Message,
	)

	n.mu.Lock()
	defer n.mu.Unlock()

	n.recent = append(n.recent, Notification{
		Key:       reminder.Key,
		Level:     reminder.Level,
		Message:   reminder.Message,
		CreatedAt: time.Now(),
	})
	if len(n.recent) > maxRecent {
		n.recent = n.recent[len(n.recent)-maxRecent:]
	}
}

// Recent returns delivered notifications, newest first.
func (n *Notifier) Recent() []Notification {
	n.mu.Lock()
	defer n.mu.Unlock()

	out := make([]Notification, 0, len(n.recent))
	for i := len(n.recent) - 1; i >= 0; i-- {
		out = append(out, n.recent[i])
	}
	return out
}
