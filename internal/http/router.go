package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(RequestIDMiddleware())

	if cfg.RateLimiter != nil {
		router.Use(cfg.RateLimiter.Middleware())
	}

	health := NewHealthController(cfg.Health, cfg.Version)
	booksController := NewBooksController(cfg.BookStore, cfg.AuditLogger)
	genresController := NewGenresController(cfg.GenreStore, cfg.AuditLogger)
	shelvesController := NewShelvesController(cfg.ShelfStore, cfg.AuditLogger)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	// Inventory endpoints
	router.GET("/books", booksController.GetAllBooks)
	router.GET("/books/:id", booksController.GetBook)
	router.POST("/books", booksController.CreateBook)
	router.PUT("/books/:id", booksController.UpdateBook)
	router.DELETE("/books/:id", booksController.DeleteBook)
	router.GET("/search/books", booksController.SearchBooks)

	router.GET("/genres", genresController.GetAllGenres)
	router.GET("/genres/:id", genresController.GetGenre)
	router.POST("/genres", genresController.CreateGenre)

	router.GET("/shelves", shelvesController.GetAllShelves)
	router.GET("/shelves/:id", shelvesController.GetShelf)
	router.POST("/shelves", shelvesController.CreateShelf)

	// Audit endpoints
	if cfg.AuditReader != nil {
		auditController := NewAuditController(cfg.AuditReader, cfg.AuditCleanup, cfg.AuditRetentionDays)
		router.GET("/api/audit", auditController.GetAuditEvents)
		router.GET("/api/audit/:entity_type/:id", auditController.GetEntityHistory)
		router.POST("/api/admin/audit/cleanup", auditController.CleanupAuditEvents)
	}

	// Task status endpoint
	if cfg.TaskStatus != nil {
		tasksController := NewTasksController(cfg.TaskStatus)
		router.GET("/api/tasks/:id", tasksController.GetTaskStatus)
	}

	router.NoRoute(func(c *gin.Context) {
		respondError(c, http.StatusNotFound, CodeNotFound, "route not found")
	})

	return router
}
