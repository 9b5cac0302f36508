// Package shelves provides database operations for storage shelves.
//
// Shelves are append-only: they can be listed and created but not changed.
package shelves

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/mrlokans/bookstore/internal/database"
	"github.com/mrlokans/bookstore/internal/entities"
)

const resource = entities.EntityShelf

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetAllShelves returns every shelf ordered by id.
func (r *Repository) GetAllShelves(ctx context.Context) ([]entities.Shelf, error) {
	var shelves []entities.Shelf
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&shelves).Error; err != nil {
		return nil, database.Translate(err, resource)
	}
	return shelves, nil
}

func (r *Repository) GetShelfByID(ctx context.Context, id uint) (*entities.Shelf, error) {
	var shelf entities.Shelf
	if err := r.db.WithContext(ctx).First(&shelf, id).Error; err != nil {
		return nil, database.Translate(err, resource)
	}
	return &shelf, nil
}

// CreateShelf inserts a shelf. A number already in use returns a conflict error.
func (r *Repository) CreateShelf(ctx context.Context, number int, location string) (*entities.Shelf, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, database.Validation(resource, "location is required")
	}

	shelf := &entities.Shelf{Number: number, Location: location}
	if err := r.db.WithContext(ctx).Create(shelf).Error; err != nil {
		return nil, database.Translate(err, resource)
	}
	return shelf, nil
}
