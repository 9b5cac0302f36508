package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookstore/internal/database"
)

// HealthChecker reports whether the store is reachable and fully migrated.
type HealthChecker interface {
	Ping(ctx context.Context) error
	PendingMigrations() ([]database.Migration, error)
}

type HealthResponse struct {
	Status  string            `json:"status"`
	Time    string            `json:"time"`
	Version string            `json:"version,omitempty"`
	Checks  map[string]string `json:"checks"`
}

type HealthController struct {
	db      HealthChecker
	version string
}

func NewHealthController(db HealthChecker, version string) *HealthController {
	return &HealthController{
		db:      db,
		version: version,
	}
}

func (h *HealthController) Status(c *gin.Context) {
	checks := make(map[string]string)
	status := "healthy"

	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := h.db.Ping(ctx); err != nil {
			checks["database"] = "error: " + err.Error()
			status = "unhealthy"
		} else {
			checks["database"] = "ok"

			pending, err := h.db.PendingMigrations()
			switch {
			case err != nil:
				checks["migrations"] = "error: " + err.Error()
				status = "unhealthy"
			case len(pending) > 0:
				checks["migrations"] = fmt.Sprintf("%d pending", len(pending))
				status = "unhealthy"
			default:
				checks["migrations"] = "ok"
			}
		}
	} else {
		checks["database"] = "not configured"
	}

	health := HealthResponse{
		Status:  status,
		Time:    time.Now().Format(time.RFC3339),
		Version: h.version,
		Checks:  checks,
	}

	statusCode := http.StatusOK
	if status != "healthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.IndentedJSON(statusCode, health)
}
