package http

import (
	"context"

	"github.com/mrlokans/bookstore/internal/database/books"
	"github.com/mrlokans/bookstore/internal/entities"
)

// This file consolidates the store interfaces used by HTTP controllers.
// Each controller depends only on the methods it calls.

// BookStore provides book CRUD and search.
type BookStore interface {
	GetAllBooks(ctx context.Context) ([]entities.Book, error)
	GetBookByID(ctx context.Context, id uint) (*entities.Book, error)
	CreateBook(ctx context.Context, book *entities.Book) error
	UpdateBook(ctx context.Context, id uint, changes books.Changes) (*entities.Book, error)
	DeleteBook(ctx context.Context, id uint) error
	SearchBooks(ctx context.Context, criteria books.Criteria) ([]entities.Book, error)
}

// GenreStore lists and creates genres.
type GenreStore interface {
	GetAllGenres(ctx context.Context) ([]entities.Genre, error)
	GetGenreByID(ctx context.Context, id uint) (*entities.Genre, error)
	CreateGenre(ctx context.Context, name string) (*entities.Genre, error)
}

// ShelfStore lists and creates shelves.
type ShelfStore interface {
	GetAllShelves(ctx context.Context) ([]entities.Shelf, error)
	GetShelfByID(ctx context.Context, id uint) (*entities.Shelf, error)
	CreateShelf(ctx context.Context, number int, location string) (*entities.Shelf, error)
}

// AuditLogger records successful inventory changes. A nil AuditLogger disables auditing.
type AuditLogger interface {
	LogCreate(requestID, entityType string, entityID uint, name string)
	LogUpdate(requestID, entityType string, entityID uint, name string, fields []string)
	LogDelete(requestID, entityType string, entityID uint, name string)
}

// AuditReader lists recorded audit events.
type AuditReader interface {
	GetEvents(ctx context.Context, entityType string, limit, offset int) ([]entities.AuditEvent, int64, error)
	GetHistory(ctx context.Context, entityType string, entityID uint) ([]entities.AuditEvent, error)
}

// AuditCleanupEnqueuer schedules an audit retention cleanup on the task queue.
type AuditCleanupEnqueuer interface {
	EnqueueAuditCleanup(retentionDays int, trigger string) (string, error)
}
