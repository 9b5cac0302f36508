package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookstore/internal/entities"
)

type GenresController struct {
	store GenreStore
	audit AuditLogger
}

func NewGenresController(store GenreStore, audit AuditLogger) *GenresController {
	return &GenresController{store: store, audit: audit}
}

// GetAllGenres returns every genre
// GET /genres
func (gc *GenresController) GetAllGenres(c *gin.Context) {
	genres, err := gc.store.GetAllGenres(c.Request.Context())
	if err != nil {
		respondStoreError(c, err, "get all genres")
		return
	}
	c.JSON(http.StatusOK, nonNil(genres))
}

// GetGenre returns a single genre
// GET /genres/:id
func (gc *GenresController) GetGenre(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	genre, err := gc.store.GetGenreByID(c.Request.Context(), id)
	if err != nil {
		respondStoreError(c, err, "get genre")
		return
	}
	c.JSON(http.StatusOK, genre)
}

// CreateGenre creates a new genre; names are unique
// POST /genres
func (gc *GenresController) CreateGenre(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	genre, err := gc.store.CreateGenre(c.Request.Context(), req.Name)
	if err != nil {
		respondStoreError(c, err, "create genre")
		return
	}

	if gc.audit != nil {
		gc.audit.LogCreate(GetRequestID(c), entities.EntityGenre, genre.ID, genre.Name)
	}
	respondCreated(c, genre)
}
