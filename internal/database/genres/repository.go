// Package genres provides database operations for book genres.
//
// Genres are append-only: they can be listed and created but not changed.
package genres

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/mrlokans/bookstore/internal/database"
	"github.com/mrlokans/bookstore/internal/entities"
)

const resource = entities.EntityGenre

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetAllGenres returns every genre ordered by id.
func (r *Repository) GetAllGenres(ctx context.Context) ([]entities.Genre, error) {
	var genres []entities.Genre
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&genres).Error; err != nil {
		return nil, database.Translate(err, resource)
	}
	return genres, nil
}

func (r *Repository) GetGenreByID(ctx context.Context, id uint) (*entities.Genre, error) {
	var genre entities.Genre
	if err := r.db.WithContext(ctx).First(&genre, id).Error; err != nil {
		return nil, database.Translate(err, resource)
	}
	return &genre, nil
}

// CreateGenre inserts a genre. Duplicate names return a conflict error.
func (r *Repository) CreateGenre(ctx context.Context, name string) (*entities.Genre, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, database.Validation(resource, "name is required")
	}

	genre := &entities.Genre{Name: name}
	if err := r.db.WithContext(ctx).Create(genre).Error; err != nil {
		return nil, database.Translate(err, resource)
	}
	return genre, nil
}
