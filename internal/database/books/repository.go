// Package books provides database operations for the book inventory.
//
// This package implements the BookStore interface defined in internal/http/books.go.
//
// # Interface Implementation
//
//	var _ http.BookStore = (*Repository)(nil)
//
// # Usage
//
//	repo := books.NewRepository(db)
//	found, err := repo.SearchBooks(ctx, books.Criteria{Genre: "Sci"})
package books

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/mrlokans/bookstore/internal/database"
	"github.com/mrlokans/bookstore/internal/entities"
)

const resource = entities.EntityBook

// Repository handles all book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Changes holds the fields of a partial update. Nil fields are left untouched.
type Changes struct {
	Title     *string
	Author    *string
	Publisher *string
	Year      *int
	Price     *entities.Price
	Quantity  *int
	GenreID   *uint
	ShelfID   *uint
}

// IsEmpty reports whether no field is set.
func (c Changes) IsEmpty() bool {
	return len(c.columns()) == 0
}

func (c Changes) columns() map[string]any {
	cols := make(map[string]any)
	if c.Title != nil {
		cols["title"] = *c.Title
	}
	if c.Author != nil {
		cols["author"] = *c.Author
	}
	if c.Publisher != nil {
		cols["publisher"] = *c.Publisher
	}
	if c.Year != nil {
		cols["year"] = *c.Year
	}
	if c.Price != nil {
		cols["price"] = *c.Price
	}
	if c.Quantity != nil {
		cols["quantity"] = *c.Quantity
	}
	if c.GenreID != nil {
		cols["genre_id"] = *c.GenreID
	}
	if c.ShelfID != nil {
		cols["shelf_id"] = *c.ShelfID
	}
	return cols
}

func (c Changes) validate() error {
	for field, value := range map[string]*string{"title": c.Title, "author": c.Author, "publisher": c.Publisher} {
		if value != nil && strings.TrimSpace(*value) == "" {
			return database.Validation(resource, field+" must not be empty")
		}
	}
	if c.Price != nil && c.Price.IsNegative() {
		return database.Validation(resource, "price must not be negative")
	}
	if c.Quantity != nil && *c.Quantity < 0 {
		return database.Validation(resource, "quantity must not be negative")
	}
	return nil
}

func validateNewBook(book *entities.Book) error {
	switch {
	case strings.TrimSpace(book.Title) == "":
		return database.Validation(resource, "title is required")
	case strings.TrimSpace(book.Author) == "":
		return database.Validation(resource, "author is required")
	case strings.TrimSpace(book.Publisher) == "":
		return database.Validation(resource, "publisher is required")
	case book.Price.IsNegative():
		return database.Validation(resource, "price must not be negative")
	case book.Quantity < 0:
		return database.Validation(resource, "quantity must not be negative")
	}
	return nil
}

func withRelations(db *gorm.DB) *gorm.DB {
	return db.Preload("Genre").Preload("Shelf")
}

// GetAllBooks retrieves all books with their genre and shelf.
func (r *Repository) GetAllBooks(ctx context.Context) ([]entities.Book, error) {
	var books []entities.Book
	err := withRelations(r.db.WithContext(ctx)).Order("books.id ASC").Find(&books).Error
	if err != nil {
		return nil, database.Translate(err, resource)
	}
	return books, nil
}

// GetBookByID retrieves a book by ID with its genre and shelf.
func (r *Repository) GetBookByID(ctx context.Context, id uint) (*entities.Book, error) {
	return r.getBook(r.db.WithContext(ctx), id)
}

func (r *Repository) getBook(db *gorm.DB, id uint) (*entities.Book, error) {
	var book entities.Book
	if err := withRelations(db).First(&book, id).Error; err != nil {
		return nil, database.Translate(err, resource)
	}
	return &book, nil
}

// CreateBook inserts a new book. Quantity defaults to entities.DefaultQuantity
// when the caller leaves it unset via the HTTP layer; a zero here is stored as zero.
func (r *Repository) CreateBook(ctx context.Context, book *entities.Book) error {
	if err := validateNewBook(book); err != nil {
		return err
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureReferences(tx, book.GenreID, book.ShelfID); err != nil {
			return err
		}
		if err := tx.Omit("Genre", "Shelf").Create(book).Error; err != nil {
			return err
		}
		created, err := r.getBook(tx, book.ID)
		if err != nil {
			return err
		}
		*book = *created
		return nil
	})
	return database.Translate(err, resource)
}

// UpdateBook applies a partial update and returns the stored record.
func (r *Repository) UpdateBook(ctx context.Context, id uint, changes Changes) (*entities.Book, error) {
	if err := changes.validate(); err != nil {
		return nil, err
	}

	var updated *entities.Book
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing entities.Book
		if err := tx.First(&existing, id).Error; err != nil {
			return err
		}

		if err := ensureReferences(tx, changes.GenreID, changes.ShelfID); err != nil {
			return err
		}

		if cols := changes.columns(); len(cols) > 0 {
			if err := tx.Model(&existing).Updates(cols).Error; err != nil {
				return err
			}
		}

		var err error
		updated, err = r.getBook(tx, id)
		return err
	})
	if err != nil {
		return nil, database.Translate(err, resource)
	}
	return updated, nil
}

// DeleteBook removes a book. Returns a not-found error when no row matched.
func (r *Repository) DeleteBook(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&entities.Book{}, id)
	if result.Error != nil {
		return database.Translate(result.Error, resource)
	}
	if result.RowsAffected == 0 {
		return database.NotFound(resource)
	}
	return nil
}

// SearchBooks returns books matching every non-empty criterion.
func (r *Repository) SearchBooks(ctx context.Context, criteria Criteria) ([]entities.Book, error) {
	query := withRelations(r.db.WithContext(ctx)).Order("books.id ASC")

	if !criteria.IsEmpty() {
		where, args, err := criteria.Sqlizer().ToSql()
		if err != nil {
			return nil, fmt.Errorf("failed to build search filter: %w", err)
		}
		query = query.Where(where, args...)
	}

	var books []entities.Book
	if err := query.Find(&books).Error; err != nil {
		return nil, database.Translate(err, resource)
	}
	return books, nil
}

func ensureReferences(tx *gorm.DB, genreID, shelfID *uint) error {
	if genreID != nil {
		if err := ensureExists(tx, &entities.Genre{}, *genreID, entities.EntityGenre); err != nil {
			return err
		}
	}
	if shelfID != nil {
		if err := ensureExists(tx, &entities.Shelf{}, *shelfID, entities.EntityShelf); err != nil {
			return err
		}
	}
	return nil
}

func ensureExists(tx *gorm.DB, model any, id uint, name string) error {
	var count int64
	if err := tx.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return database.Validation(resource, fmt.Sprintf("%s %d does not exist", name, id))
	}
	return nil
}
