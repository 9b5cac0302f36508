package tasks

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"
)

const (
	defaultAuditRetentionDays = 30

	// TriggerSchedule marks cleanups enqueued by the cron scheduler.
	TriggerSchedule = "schedule"
	// TriggerAdmin marks cleanups requested through the admin endpoint.
	TriggerAdmin = "admin"
)

const auditCleanupAction = "audit_cleanup"

var errNoAuditCleaner = errors.New("audit cleaner not configured")

// AuditCleaner deletes expired audit events and records that it did so.
type AuditCleaner interface {
	DeleteOldEvents(ctx context.Context, retention time.Duration) (int64, error)
	LogSystem(action, description string, err error)
}

// CleanupAuditEventsTask prunes the audit trail down to RetentionDays.
// Trigger says who asked for the run and ends up in the resulting system event.
type CleanupAuditEventsTask struct {
	RetentionDays int    `json:"retention_days"`
	Trigger       string `json:"trigger,omitempty"`
}

func (t CleanupAuditEventsTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "cleanup_audit_events",
		MaxAttempts: 3,
		Backoff:     5 * time.Minute,
		Timeout:     2 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

func (t CleanupAuditEventsTask) retention() (int, time.Duration) {
	days := t.RetentionDays
	if days <= 0 {
		days = defaultAuditRetentionDays
	}
	return days, time.Duration(days) * 24 * time.Hour
}

func (t CleanupAuditEventsTask) describe(deleted int64, days int) string {
	trigger := t.Trigger
	if trigger == "" {
		trigger = "unknown"
	}
	return fmt.Sprintf("Removed %d audit events older than %d days (trigger: %s)", deleted, days, trigger)
}

// CleanupAuditEventsProcessor deletes expired events and leaves a system
// event behind, on success as well as on failure.
func CleanupAuditEventsProcessor(cleaner AuditCleaner) backlite.QueueProcessor[CleanupAuditEventsTask] {
	return func(ctx context.Context, task CleanupAuditEventsTask) error {
		if cleaner == nil {
			return errNoAuditCleaner
		}

		days, retention := task.retention()
		deleted, err := cleaner.DeleteOldEvents(ctx, retention)
		if err != nil {
			cleaner.LogSystem(auditCleanupAction, fmt.Sprintf("Audit cleanup (trigger: %s) failed", task.Trigger), err)
			return fmt.Errorf("cleanup audit events: %w", err)
		}

		description := task.describe(deleted, days)
		cleaner.LogSystem(auditCleanupAction, description, nil)
		log.Printf("[TASK] %s", description)
		return nil
	}
}

// NewCleanupAuditEventsQueue creates a backlite queue for audit cleanup tasks.
func NewCleanupAuditEventsQueue(cleaner AuditCleaner) backlite.Queue {
	return backlite.NewQueue(CleanupAuditEventsProcessor(cleaner))
}
