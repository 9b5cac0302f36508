package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookstore/internal/entities"
	"github.com/mrlokans/bookstore/internal/tasks"
)

const (
	defaultAuditPageSize = 25
	maxAuditPageSize     = 100
)

type AuditController struct {
	reader           AuditReader
	cleanup          AuditCleanupEnqueuer
	defaultRetention int
}

// NewAuditController creates the audit endpoints. cleanup may be nil when the
// task queue is disabled.
func NewAuditController(reader AuditReader, cleanup AuditCleanupEnqueuer, defaultRetention int) *AuditController {
	return &AuditController{
		reader:           reader,
		cleanup:          cleanup,
		defaultRetention: defaultRetention,
	}
}

// GetAuditEvents returns paginated audit events as JSON
// GET /api/audit?limit=&offset=&entity_type=
func (ac *AuditController) GetAuditEvents(c *gin.Context) {
	limit, offset := parsePagination(c, defaultAuditPageSize, maxAuditPageSize)

	entityType := c.Query("entity_type")
	if entityType != "" && !isAuditedEntity(entityType) {
		respondBadRequest(c, "invalid entity_type")
		return
	}

	events, total, err := ac.reader.GetEvents(c.Request.Context(), entityType, limit, offset)
	if err != nil {
		respondStoreError(c, err, "get audit events")
		return
	}

	c.JSON(http.StatusOK, newPaginatedResponse(nonNil(events), total, limit, offset))
}

// GetEntityHistory returns every event for one record, oldest first.
// Deleted records keep their history.
// GET /api/audit/:entity_type/:id
func (ac *AuditController) GetEntityHistory(c *gin.Context) {
	entityType := c.Param("entity_type")
	if !isAuditedEntity(entityType) {
		respondBadRequest(c, "invalid entity_type")
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	events, err := ac.reader.GetHistory(c.Request.Context(), entityType, id)
	if err != nil {
		respondStoreError(c, err, "get entity history")
		return
	}
	c.JSON(http.StatusOK, nonNil(events))
}

func isAuditedEntity(entityType string) bool {
	switch entityType {
	case entities.EntityBook, entities.EntityGenre, entities.EntityShelf:
		return true
	}
	return false
}

// CleanupAuditEvents enqueues a retention cleanup
// POST /api/admin/audit/cleanup?retention_days=
func (ac *AuditController) CleanupAuditEvents(c *gin.Context) {
	if ac.cleanup == nil {
		respondError(c, http.StatusServiceUnavailable, CodeUnavailable, "task queue is disabled")
		return
	}

	retentionDays := ac.defaultRetention
	if raw := c.Query("retention_days"); raw != "" {
		days, err := strconv.Atoi(raw)
		if err != nil || days < 1 {
			respondBadRequest(c, "invalid retention_days")
			return
		}
		retentionDays = days
	}

	taskID, err := ac.cleanup.EnqueueAuditCleanup(retentionDays, tasks.TriggerAdmin)
	if err != nil {
		respondInternalError(c, err, "enqueue audit cleanup")
		return
	}

	respondAccepted(c, "audit cleanup enqueued", gin.H{
		"task_id":        taskID,
		"retention_days": retentionDays,
	})
}
