package audit

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/bookstore/internal/database"
	auditRepo "github.com/mrlokans/bookstore/internal/database/audit"
	"github.com/mrlokans/bookstore/internal/entities"
)

func setupTestService(t *testing.T) (*Service, *gorm.DB) {
	dsn := filepath.Join(t.TempDir(), "audit.db")
	db, err := database.NewDatabase(database.Options{DSN: dsn, LogLevel: logger.Silent})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.Migrate()
	require.NoError(t, err)

	svc := NewService(auditRepo.NewRepository(db.DB))
	return svc, db.DB
}

func TestService_Log(t *testing.T) {
	svc, db := setupTestService(t)

	event := &entities.AuditEvent{
		EventType:   entities.AuditEventSystem,
		Action:      "test_action",
		Description: "Test event",
		Status:      entities.AuditStatusSuccess,
	}

	err := svc.Log(event)
	require.NoError(t, err)

	var saved entities.AuditEvent
	err = db.First(&saved, event.ID).Error
	require.NoError(t, err)
	assert.Equal(t, "test_action", saved.Action)
}

func TestService_LogCreate(t *testing.T) {
	svc, db := setupTestService(t)

	svc.LogCreate("req-1", entities.EntityBook, 12, "Dune")
	svc.Wait()

	var event entities.AuditEvent
	err := db.Where("action = ?", "book_create").First(&event).Error
	require.NoError(t, err)
	assert.Equal(t, entities.AuditEventCreate, event.EventType)
	assert.Equal(t, "Created book: Dune", event.Description)
	assert.Equal(t, "req-1", event.RequestID)
	require.NotNil(t, event.EntityID)
	assert.Equal(t, uint(12), *event.EntityID)
}

func TestService_LogUpdate(t *testing.T) {
	svc, db := setupTestService(t)

	svc.LogUpdate("", entities.EntityBook, 3, "Dune", []string{"price", "quantity"})
	svc.Wait()

	var event entities.AuditEvent
	err := db.Where("action = ?", "book_update").First(&event).Error
	require.NoError(t, err)
	assert.JSONEq(t, `{"fields":["price","quantity"]}`, event.Metadata)
}

func TestService_LogDelete(t *testing.T) {
	svc, db := setupTestService(t)

	svc.LogDelete("req-9", entities.EntityBook, 5, "Old Book")
	svc.Wait()

	var event entities.AuditEvent
	err := db.Where("action = ?", "book_delete").First(&event).Error
	require.NoError(t, err)
	assert.Equal(t, entities.AuditEventDelete, event.EventType)
	assert.Equal(t, "Deleted book: Old Book", event.Description)
}

func TestService_LogSystem(t *testing.T) {
	svc, db := setupTestService(t)

	t.Run("success", func(t *testing.T) {
		svc.LogSystem("audit_cleanup", "Removed 3 events", nil)
		svc.Wait()

		var event entities.AuditEvent
		err := db.Where("action = ?", "audit_cleanup").First(&event).Error
		require.NoError(t, err)
		assert.Equal(t, entities.AuditStatusSuccess, event.Status)
	})

	t.Run("failure", func(t *testing.T) {
		svc.LogSystem("audit_cleanup_failed", "Cleanup failed", errors.New("database is locked"))
		svc.Wait()

		var event entities.AuditEvent
		err := db.Where("action = ?", "audit_cleanup_failed").First(&event).Error
		require.NoError(t, err)
		assert.Equal(t, entities.AuditStatusFailed, event.Status)
		assert.Contains(t, event.ErrorMsg, "database is locked")
	})
}

func TestService_GetEvents(t *testing.T) {
	svc, _ := setupTestService(t)

	svc.LogCreate("", entities.EntityGenre, 1, "Poetry")
	svc.LogCreate("", entities.EntityShelf, 1, "1")
	svc.Wait()

	events, total, err := svc.GetEvents(context.Background(), entities.EntityGenre, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, events, 1)
}

func TestService_DeleteOldEvents(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.Log(&entities.AuditEvent{
		EventType: entities.AuditEventSystem,
		Action:    "stale",
		CreatedAt: time.Now().AddDate(0, 0, -40),
	}))
	require.NoError(t, svc.Log(&entities.AuditEvent{
		EventType: entities.AuditEventSystem,
		Action:    "fresh",
	}))

	deleted, err := svc.DeleteOldEvents(ctx, 30*24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	long := strings.Repeat("x", 20)
	assert.Equal(t, "xxxxxxx...", truncate(long, 10))
}
