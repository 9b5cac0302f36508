package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookstore/internal/entities"
)

type ShelvesController struct {
	store ShelfStore
	audit AuditLogger
}

func NewShelvesController(store ShelfStore, audit AuditLogger) *ShelvesController {
	return &ShelvesController{store: store, audit: audit}
}

// GetAllShelves returns every shelf
// GET /shelves
func (sc *ShelvesController) GetAllShelves(c *gin.Context) {
	shelves, err := sc.store.GetAllShelves(c.Request.Context())
	if err != nil {
		respondStoreError(c, err, "get all shelves")
		return
	}
	c.JSON(http.StatusOK, nonNil(shelves))
}

// GetShelf returns a single shelf
// GET /shelves/:id
func (sc *ShelvesController) GetShelf(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	shelf, err := sc.store.GetShelfByID(c.Request.Context(), id)
	if err != nil {
		respondStoreError(c, err, "get shelf")
		return
	}
	c.JSON(http.StatusOK, shelf)
}

// CreateShelf creates a new shelf; numbers are unique
// POST /shelves
func (sc *ShelvesController) CreateShelf(c *gin.Context) {
	var req struct {
		Number   *int   `json:"number" binding:"required"`
		Location string `json:"location" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	shelf, err := sc.store.CreateShelf(c.Request.Context(), *req.Number, req.Location)
	if err != nil {
		respondStoreError(c, err, "create shelf")
		return
	}

	if sc.audit != nil {
		sc.audit.LogCreate(GetRequestID(c), entities.EntityShelf, shelf.ID, strconv.Itoa(shelf.Number))
	}
	respondCreated(c, shelf)
}
