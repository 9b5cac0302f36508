package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookstore/internal/entities"
)

func TestGenresController(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do("GET", "/genres", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = env.do("POST", "/genres", `{"name":"Poetry"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var created entities.Genre
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.NotZero(t, created.ID)
	assert.Equal(t, "Poetry", created.Name)

	t.Run("duplicate name conflicts", func(t *testing.T) {
		w := env.do("POST", "/genres", `{"name":"Poetry"}`)
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, CodeConflict, decodeError(t, w.Body.Bytes()).Code)
	})

	t.Run("missing name", func(t *testing.T) {
		w := env.do("POST", "/genres", `{}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, CodeValidation, decodeError(t, w.Body.Bytes()).Code)
	})

	t.Run("blank name", func(t *testing.T) {
		w := env.do("POST", "/genres", `{"name":"   "}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("get by id", func(t *testing.T) {
		w := env.do("GET", fmt.Sprintf("/genres/%d", created.ID), "")
		require.Equal(t, http.StatusOK, w.Code)
		var got entities.Genre
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, created.ID, got.ID)
		assert.Equal(t, "Poetry", got.Name)
	})

	t.Run("unknown id", func(t *testing.T) {
		w := env.do("GET", "/genres/404", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "genre not found", decodeError(t, w.Body.Bytes()).Error)
	})

	w = env.do("GET", "/genres", "")
	var list []entities.Genre
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "Poetry", list[0].Name)
}

func TestShelvesController(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do("POST", "/shelves", `{"number":0,"location":"Basement"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created entities.Shelf
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, 0, created.Number)
	assert.Equal(t, "Basement", created.Location)

	t.Run("duplicate number conflicts", func(t *testing.T) {
		w := env.do("POST", "/shelves", `{"number":0,"location":"Attic"}`)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("missing number", func(t *testing.T) {
		w := env.do("POST", "/shelves", `{"location":"Attic"}`)
		require.Equal(t, http.StatusBadRequest, w.Code)
		details, ok := decodeError(t, w.Body.Bytes()).Details.(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "is required", details["number"])
	})

	t.Run("missing location", func(t *testing.T) {
		w := env.do("POST", "/shelves", `{"number":4}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("get by id", func(t *testing.T) {
		w := env.do("GET", fmt.Sprintf("/shelves/%d", created.ID), "")
		require.Equal(t, http.StatusOK, w.Code)
		var got entities.Shelf
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, 0, got.Number)
		assert.Equal(t, "Basement", got.Location)
	})

	t.Run("malformed id", func(t *testing.T) {
		w := env.do("GET", "/shelves/abc", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	w = env.do("GET", "/shelves", "")
	require.Equal(t, http.StatusOK, w.Code)
	var list []entities.Shelf
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list, 1)
}
