package workers

import (
	"context"
	"sync"
	"time"

	"gigflow_backend/internal/logger"
	"gigflow_backend/internal/services"
)

const retentionWorkerName = "notification_retention"

// NotificationRetentionWorker periodically deletes read notifications older
// than the retention window. Unread notifications are never touched.
type NotificationRetentionWorker struct {
	notifications services.NotificationService
	retention     time.Duration
	interval      time.Duration
	now           services.Clock

	wg sync.WaitGroup
}

func NewNotificationRetentionWorker(notifications services.NotificationService, retentionDays int, interval time.Duration, now services.Clock) *NotificationRetentionWorker {
	if now == nil {
		now = services.SystemClock
	}
	if interval <= 0 {
		interval = time.Hour
	}
	return &NotificationRetentionWorker{
		notifications: notifications,
		retention:     time.Duration(retentionDays) * 24 * time.Hour,
		interval:      interval,
		now:           now,
	}
}

// Enabled reports whether a retention window is configured.
func (w *NotificationRetentionWorker) Enabled() bool {
	return w.retention > 0
}

// Start runs the cleanup loop until ctx is cancelled. It is a no-op when
// retention is disabled.
func (w *NotificationRetentionWorker) Start(ctx context.Context) {
	if !w.Enabled() {
		logger.Info("Notification retention disabled, keeping all notifications")
		return
	}

	w.wg.Add(1)
	go w.loop(ctx)
}

// Wait blocks until the loop started by Start has returned.
func (w *NotificationRetentionWorker) Wait() {
	w.wg.Wait()
}

func (w *NotificationRetentionWorker) loop(ctx context.Context) {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.WorkerLog(retentionWorkerName, "stop", nil)
			return
		case <-ticker.C:
			w.RunOnce(ctx)
		}
	}
}

// RunOnce deletes read notifications created before now - retention.
func (w *NotificationRetentionWorker) RunOnce(ctx context.Context) (int64, error) {
	if !w.Enabled() {
		return 0, nil
	}

	cutoff := w.now().Add(-w.retention)
	deleted, err := w.notifications.DeleteReadOlderThan(ctx, cutoff)
	logger.WorkerLog(retentionWorkerName, "cleanup", err, "deleted", deleted, "cutoff", cutoff)
	return deleted, err
}
