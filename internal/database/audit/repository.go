// Package audit stores the audit trail of inventory changes.
package audit

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/bookstore/internal/database"
	"github.com/mrlokans/bookstore/internal/entities"
)

const (
	resource     = "audit_event"
	defaultLimit = 50
	maxLimit     = 500
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// LogEvent saves an audit event to the database.
func (r *Repository) LogEvent(event *entities.AuditEvent) error {
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}
	return database.Translate(r.db.Create(event).Error, resource)
}

// GetEvents retrieves paginated audit events, most recent first.
// An empty entityType returns events for every entity.
func (r *Repository) GetEvents(ctx context.Context, entityType string, limit, offset int) ([]entities.AuditEvent, int64, error) {
	var events []entities.AuditEvent
	var total int64

	query := r.db.WithContext(ctx).Model(&entities.AuditEvent{})
	if entityType != "" {
		query = query.Where("entity_type = ?", entityType)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, database.Translate(err, resource)
	}

	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if offset < 0 {
		offset = 0
	}

	err := query.Order("created_at DESC").Order("id DESC").Limit(limit).Offset(offset).Find(&events).Error
	if err != nil {
		return nil, 0, database.Translate(err, resource)
	}
	return events, total, nil
}

// GetEventsForEntity returns the history of a single record, oldest first.
func (r *Repository) GetEventsForEntity(ctx context.Context, entityType string, entityID uint) ([]entities.AuditEvent, error) {
	var events []entities.AuditEvent
	err := r.db.WithContext(ctx).
		Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Order("created_at ASC").Order("id ASC").
		Find(&events).Error
	return events, database.Translate(err, resource)
}

// DeleteOldEvents removes audit events older than the specified time.
// Returns the number of deleted events.
func (r *Repository) DeleteOldEvents(ctx context.Context, olderThan time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Where("created_at < ?", olderThan).Delete(&entities.AuditEvent{})
	return result.RowsAffected, database.Translate(result.Error, resource)
}
