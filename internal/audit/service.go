package audit

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/mrlokans/bookstore/internal/entities"
)

// Store persists and queries audit events.
type Store interface {
	LogEvent(event *entities.AuditEvent) error
	GetEvents(ctx context.Context, entityType string, limit, offset int) ([]entities.AuditEvent, int64, error)
	GetEventsForEntity(ctx context.Context, entityType string, entityID uint) ([]entities.AuditEvent, error)
	DeleteOldEvents(ctx context.Context, olderThan time.Time) (int64, error)
}

// Service provides high-level audit logging functionality.
type Service struct {
	repo    Store
	pending sync.WaitGroup
}

// NewService creates a new audit service.
func NewService(repo Store) *Service {
	return &Service{repo: repo}
}

// Log records a generic audit event.
func (s *Service) Log(event *entities.AuditEvent) error {
	return s.repo.LogEvent(event)
}

// LogAsync records an audit event in the background (non-blocking).
// The timestamp is taken here so events keep the order they happened in.
func (s *Service) LogAsync(event *entities.AuditEvent) {
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		if err := s.Log(event); err != nil {
			log.Printf("Failed to log audit event: %v", err)
		}
	}()
}

// Wait blocks until every event queued with LogAsync has been written.
func (s *Service) Wait() {
	s.pending.Wait()
}

// LogCreate records that an inventory record was created.
func (s *Service) LogCreate(requestID, entityType string, entityID uint, name string) {
	s.LogAsync(&entities.AuditEvent{
		EventType:   entities.AuditEventCreate,
		Action:      entityType + "_create",
		Description: "Created " + entityType + ": " + name,
		EntityType:  entityType,
		EntityID:    &entityID,
		RequestID:   requestID,
		Status:      entities.AuditStatusSuccess,
	})
}

// LogUpdate records an update along with the names of the fields that changed.
func (s *Service) LogUpdate(requestID, entityType string, entityID uint, name string, fields []string) {
	event := &entities.AuditEvent{
		EventType:   entities.AuditEventUpdate,
		Action:      entityType + "_update",
		Description: "Updated " + entityType + ": " + name,
		EntityType:  entityType,
		EntityID:    &entityID,
		RequestID:   requestID,
		Status:      entities.AuditStatusSuccess,
	}

	if len(fields) > 0 {
		if mdBytes, err := json.Marshal(map[string]any{"fields": fields}); err == nil {
			event.Metadata = string(mdBytes)
		}
	}

	s.LogAsync(event)
}

// LogDelete records a deletion event.
func (s *Service) LogDelete(requestID, entityType string, entityID uint, name string) {
	s.LogAsync(&entities.AuditEvent{
		EventType:   entities.AuditEventDelete,
		Action:      entityType + "_delete",
		Description: "Deleted " + entityType + ": " + name,
		EntityType:  entityType,
		EntityID:    &entityID,
		RequestID:   requestID,
		Status:      entities.AuditStatusSuccess,
	})
}

// LogSystem records a maintenance event such as a cleanup run.
func (s *Service) LogSystem(action, description string, err error) {
	event := &entities.AuditEvent{
		EventType:   entities.AuditEventSystem,
		Action:      action,
		Description: description,
		Status:      entities.AuditStatusSuccess,
	}

	if err != nil {
		event.Status = entities.AuditStatusFailed
		event.ErrorMsg = truncate(err.Error(), 500)
	}

	s.LogAsync(event)
}

// GetEvents retrieves paginated audit events.
func (s *Service) GetEvents(ctx context.Context, entityType string, limit, offset int) ([]entities.AuditEvent, int64, error) {
	return s.repo.GetEvents(ctx, entityType, limit, offset)
}

// GetHistory returns the events recorded for one record, oldest first.
func (s *Service) GetHistory(ctx context.Context, entityType string, entityID uint) ([]entities.AuditEvent, error) {
	return s.repo.GetEventsForEntity(ctx, entityType, entityID)
}

// DeleteOldEvents removes events older than the specified duration.
func (s *Service) DeleteOldEvents(ctx context.Context, retention time.Duration) (int64, error) {
	cutoff := time.Now().Add(-retention)
	return s.repo.DeleteOldEvents(ctx, cutoff)
}

// truncate shortens a string to max length.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
