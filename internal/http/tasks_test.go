package http

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/mikestefanello/backlite"
	"github.com/stretchr/testify/assert"
)

type stubTaskStatus map[string]backlite.TaskStatus

func (s stubTaskStatus) Status(_ context.Context, taskID string) (backlite.TaskStatus, error) {
	if taskID == "broken" {
		return backlite.TaskStatusNotFound, errors.New("db locked")
	}
	status, ok := s[taskID]
	if !ok {
		return backlite.TaskStatusNotFound, nil
	}
	return status, nil
}

func TestTasksController_GetTaskStatus(t *testing.T) {
	statuses := stubTaskStatus{
		"abc": backlite.TaskStatusSuccess,
		"def": backlite.TaskStatusPending,
	}
	env := setupTestEnv(t, func(cfg *RouterConfig) { cfg.TaskStatus = statuses })

	t.Run("known task", func(t *testing.T) {
		w := env.do("GET", "/api/tasks/abc", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"id":"abc","status":"success","finished":true}`, w.Body.String())
	})

	t.Run("pending task", func(t *testing.T) {
		w := env.do("GET", "/api/tasks/def", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"id":"def","status":"pending","finished":false}`, w.Body.String())
	})

	t.Run("unknown task", func(t *testing.T) {
		w := env.do("GET", "/api/tasks/zzz", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("lookup failure", func(t *testing.T) {
		w := env.do("GET", "/api/tasks/broken", "")
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestTasksRoute_DisabledWithoutReader(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do("GET", "/api/tasks/abc", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, CodeNotFound, decodeError(t, w.Body.Bytes()).Code)
}
