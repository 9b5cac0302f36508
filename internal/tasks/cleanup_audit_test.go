package tasks

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCleaner struct {
	deleted int64
	err     error
	done    chan time.Duration

	retention    time.Duration
	actions      []string
	descriptions []string
	failures     []error
}

func (f *fakeCleaner) DeleteOldEvents(_ context.Context, retention time.Duration) (int64, error) {
	f.retention = retention
	if f.done != nil {
		f.done <- retention
	}
	return f.deleted, f.err
}

func (f *fakeCleaner) LogSystem(action, description string, err error) {
	f.actions = append(f.actions, action)
	f.descriptions = append(f.descriptions, description)
	f.failures = append(f.failures, err)
}

func TestCleanupAuditEventsTaskConfig(t *testing.T) {
	cfg := CleanupAuditEventsTask{RetentionDays: 7}.Config()

	assert.Equal(t, "cleanup_audit_events", cfg.Name)
	assert.Equal(t, 3, cfg.MaxAttempts)
	require.NotNil(t, cfg.Retention)
}

func TestCleanupAuditEventsProcessor(t *testing.T) {
	t.Run("uses task retention", func(t *testing.T) {
		cleaner := &fakeCleaner{deleted: 4}
		task := CleanupAuditEventsTask{RetentionDays: 7, Trigger: TriggerSchedule}
		err := CleanupAuditEventsProcessor(cleaner)(context.Background(), task)

		require.NoError(t, err)
		assert.Equal(t, 7*24*time.Hour, cleaner.retention)
		assert.Equal(t, []string{"audit_cleanup"}, cleaner.actions)
		assert.Equal(t, []string{"Removed 4 audit events older than 7 days (trigger: schedule)"}, cleaner.descriptions)
		assert.Nil(t, cleaner.failures[0])
	})

	t.Run("falls back to default retention", func(t *testing.T) {
		cleaner := &fakeCleaner{}
		err := CleanupAuditEventsProcessor(cleaner)(context.Background(), CleanupAuditEventsTask{})

		require.NoError(t, err)
		assert.Equal(t, 30*24*time.Hour, cleaner.retention)
	})

	t.Run("records failures", func(t *testing.T) {
		cleaner := &fakeCleaner{err: errors.New("database is locked")}
		err := CleanupAuditEventsProcessor(cleaner)(context.Background(), CleanupAuditEventsTask{RetentionDays: 1})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "database is locked")
		require.Len(t, cleaner.failures, 1)
		assert.Error(t, cleaner.failures[0])
	})

	t.Run("nil cleaner", func(t *testing.T) {
		err := CleanupAuditEventsProcessor(nil)(context.Background(), CleanupAuditEventsTask{})
		assert.ErrorIs(t, err, errNoAuditCleaner)
	})
}
