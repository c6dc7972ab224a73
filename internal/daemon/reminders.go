package daemon

import (
	"context"
	"log/slog"
	"time"

	"carebook/internal/monitoring"
	"carebook/internal/notifications"
	"carebook/internal/service"
)

// ReminderScanTask periodically scans for due reminders and hands them to
// the notifier. The scan itself dedupes firings, so ticking every minute
// is safe.
func ReminderScanTask(reminders *service.ReminderService, notifier *notifications.Notifier, telemetry monitoring.Telemetry, logger *slog.Logger) DaemonFunc {
	return func(ctx context.Context, name string) error {
		scan := func() {
			due, err := reminders.DueReminders(ctx)
			if err != nil {
				logger.ErrorContext(ctx, "Reminder scan failed", "daemon", name, "error", err)
				return
			}
			for _, reminder := range due {
				notifier.Notify(reminder)
				telemetry.RecordReminderFired(ctx, string(reminder.Level))
			}
		}

		scan()

		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				logger.InfoContext(ctx, "Reminder scanner shutting down", "daemon", name)
				return nil
			case <-ticker.C:
				scan()
			}
		}
	}
}
