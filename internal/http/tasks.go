package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/bookstore/internal/tasks"
)

const taskLookupTimeout = 5 * time.Second

// TaskStatusResponse is the body of GET /api/tasks/:id. Finished is true once
// the task succeeded or ran out of attempts, so callers can stop polling.
type TaskStatusResponse struct {
	ID       string `json:"id"`
	Status   string `json:"status"`
	Finished bool   `json:"finished"`
}

// TaskStatusReader looks up a background task by id.
type TaskStatusReader interface {
	Status(ctx context.Context, taskID string) (backlite.TaskStatus, error)
}

// TasksController exposes background task status.
type TasksController struct {
	client TaskStatusReader
}

// NewTasksController creates a new TasksController.
func NewTasksController(client TaskStatusReader) *TasksController {
	return &TasksController{client: client}
}

// GetTaskStatus handles GET /api/tasks/:id
func (tc *TasksController) GetTaskStatus(c *gin.Context) {
	taskID := c.Param("id")
	if taskID == "" {
		respondBadRequest(c, "task ID is required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), taskLookupTimeout)
	defer cancel()

	status, err := tc.client.Status(ctx, taskID)
	if err != nil {
		respondInternalError(c, err, "get task status")
		return
	}

	if status == backlite.TaskStatusNotFound {
		respondNotFound(c, "task")
		return
	}

	c.JSON(http.StatusOK, TaskStatusResponse{
		ID:       taskID,
		Status:   tasks.StatusName(status),
		Finished: status == backlite.TaskStatusSuccess || status == backlite.TaskStatusFailure,
	})
}
