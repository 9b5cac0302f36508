package books

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/bookstore/internal/database"
	"github.com/mrlokans/bookstore/internal/entities"
)

func setupTestDB(t *testing.T) (*Repository, *gorm.DB) {
	dsn := filepath.Join(t.TempDir(), "books.db") + "?_foreign_keys=on"

	db, err := database.NewDatabase(database.Options{
		Driver:   database.DriverSQLite,
		DSN:      dsn,
		LogLevel: logger.Silent,
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.Migrate()
	require.NoError(t, err)

	return NewRepository(db.DB), db.DB
}

func seedGenre(t *testing.T, db *gorm.DB, name string) *entities.Genre {
	genre := &entities.Genre{Name: name}
	require.NoError(t, db.Create(genre).Error)
	return genre
}

func seedShelf(t *testing.T, db *gorm.DB, number int, location string) *entities.Shelf {
	shelf := &entities.Shelf{Number: number, Location: location}
	require.NoError(t, db.Create(shelf).Error)
	return shelf
}

func newBook(title, author, publisher string, genreID, shelfID *uint) *entities.Book {
	return &entities.Book{
		Title:     title,
		Author:    author,
		Publisher: publisher,
		Price:     entities.MustPrice("10.00"),
		Quantity:  entities.DefaultQuantity,
		GenreID:   genreID,
		ShelfID:   shelfID,
	}
}

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func TestRepository_CreateBook(t *testing.T) {
	repo, db := setupTestDB(t)
	ctx := context.Background()

	genre := seedGenre(t, db, "Sci-Fi")
	shelf := seedShelf(t, db, 3, "Back wall")

	book := &entities.Book{
		Title:     "Dune",
		Author:    "Frank Herbert",
		Publisher: "Chilton",
		Year:      intPtr(1965),
		Price:     entities.MustPrice("12.99"),
		Quantity:  1,
		GenreID:   &genre.ID,
		ShelfID:   &shelf.ID,
	}

	require.NoError(t, repo.CreateBook(ctx, book))
	assert.NotZero(t, book.ID)

	found, err := repo.GetBookByID(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dune", found.Title)
	assert.Equal(t, "12.99", found.Price.String())
	assert.Equal(t, 1965, *found.Year)
	require.NotNil(t, found.Genre)
	assert.Equal(t, "Sci-Fi", found.Genre.Name)
	require.NotNil(t, found.Shelf)
	assert.Equal(t, 3, found.Shelf.Number)
}

func TestRepository_CreateBook_Validation(t *testing.T) {
	repo, _ := setupTestDB(t)
	ctx := context.Background()
	missingID := uint(999)

	tests := []struct {
		name string
		book *entities.Book
	}{
		{"missing title", newBook("", "Author", "Pub", nil, nil)},
		{"missing author", newBook("Title", " ", "Pub", nil, nil)},
		{"missing publisher", newBook("Title", "Author", "", nil, nil)},
		{"unknown genre", newBook("Title", "Author", "Pub", &missingID, nil)},
		{"unknown shelf", newBook("Title", "Author", "Pub", nil, &missingID)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := repo.CreateBook(ctx, tt.book)
			require.Error(t, err)
			assert.ErrorIs(t, err, database.ErrValidation)
		})
	}

	stored, err := repo.GetAllBooks(ctx)
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestRepository_CreateBook_KeepsZeroQuantity(t *testing.T) {
	repo, _ := setupTestDB(t)
	ctx := context.Background()

	book := newBook("Out of stock", "Someone", "Pub", nil, nil)
	book.Quantity = 0
	require.NoError(t, repo.CreateBook(ctx, book))

	found, err := repo.GetBookByID(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, found.Quantity)
}

func TestRepository_GetBookByID_NotFound(t *testing.T) {
	repo, _ := setupTestDB(t)

	_, err := repo.GetBookByID(context.Background(), 42)
	assert.ErrorIs(t, err, database.ErrNotFound)
	assert.Equal(t, database.KindNotFound, database.KindOf(err))
}

func TestRepository_GetAllBooks(t *testing.T) {
	repo, db := setupTestDB(t)
	ctx := context.Background()

	genre := seedGenre(t, db, "Fantasy")
	require.NoError(t, repo.CreateBook(ctx, newBook("A", "X", "P", &genre.ID, nil)))
	require.NoError(t, repo.CreateBook(ctx, newBook("B", "Y", "P", nil, nil)))

	books, err := repo.GetAllBooks(ctx)
	require.NoError(t, err)
	require.Len(t, books, 2)
	assert.Equal(t, "A", books[0].Title)
	require.NotNil(t, books[0].Genre)
	assert.Equal(t, "Fantasy", books[0].Genre.Name)
	assert.Nil(t, books[1].Genre)
	assert.Nil(t, books[1].Shelf)
}

func TestRepository_UpdateBook(t *testing.T) {
	repo, db := setupTestDB(t)
	ctx := context.Background()

	shelf := seedShelf(t, db, 1, "Front")
	book := newBook("Dune", "Frank Herbert", "Chilton", nil, nil)
	require.NoError(t, repo.CreateBook(ctx, book))

	t.Run("changes only the given fields", func(t *testing.T) {
		price := entities.MustPrice("15.50")
		updated, err := repo.UpdateBook(ctx, book.ID, Changes{
			Price:    &price,
			Quantity: intPtr(4),
			ShelfID:  &shelf.ID,
		})
		require.NoError(t, err)
		assert.Equal(t, "Dune", updated.Title)
		assert.Equal(t, "Frank Herbert", updated.Author)
		assert.Equal(t, "15.50", updated.Price.String())
		assert.Equal(t, 4, updated.Quantity)
		require.NotNil(t, updated.Shelf)
		assert.Equal(t, "Front", updated.Shelf.Location)
	})

	t.Run("empty changes return the stored record", func(t *testing.T) {
		updated, err := repo.UpdateBook(ctx, book.ID, Changes{})
		require.NoError(t, err)
		assert.Equal(t, 4, updated.Quantity)
	})

	t.Run("rejects blank title", func(t *testing.T) {
		_, err := repo.UpdateBook(ctx, book.ID, Changes{Title: strPtr("")})
		assert.ErrorIs(t, err, database.ErrValidation)
	})

	t.Run("rejects unknown genre", func(t *testing.T) {
		missing := uint(77)
		_, err := repo.UpdateBook(ctx, book.ID, Changes{GenreID: &missing})
		assert.ErrorIs(t, err, database.ErrValidation)
	})

	t.Run("unknown book", func(t *testing.T) {
		_, err := repo.UpdateBook(ctx, 9999, Changes{Title: strPtr("X")})
		assert.ErrorIs(t, err, database.ErrNotFound)
	})
}

func TestRepository_DeleteBook(t *testing.T) {
	repo, _ := setupTestDB(t)
	ctx := context.Background()

	book := newBook("Dune", "Frank Herbert", "Chilton", nil, nil)
	require.NoError(t, repo.CreateBook(ctx, book))

	require.NoError(t, repo.DeleteBook(ctx, book.ID))

	_, err := repo.GetBookByID(ctx, book.ID)
	assert.ErrorIs(t, err, database.ErrNotFound)

	err = repo.DeleteBook(ctx, book.ID)
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestRepository_SearchBooks(t *testing.T) {
	repo, db := setupTestDB(t)
	ctx := context.Background()

	scifi := seedGenre(t, db, "Science Fiction")
	fantasy := seedGenre(t, db, "Fantasy")

	require.NoError(t, repo.CreateBook(ctx, newBook("Dune", "Frank Herbert", "Chilton", &scifi.ID, nil)))
	require.NoError(t, repo.CreateBook(ctx, newBook("Dune Messiah", "Frank Herbert", "Putnam", &scifi.ID, nil)))
	require.NoError(t, repo.CreateBook(ctx, newBook("The Hobbit", "J. R. R. Tolkien", "Allen & Unwin", &fantasy.ID, nil)))
	require.NoError(t, repo.CreateBook(ctx, newBook("Untitled", "Anonymous", "Self", nil, nil)))

	tests := []struct {
		name     string
		criteria Criteria
		expected []string
	}{
		{"no criteria matches everything", Criteria{}, []string{"Dune", "Dune Messiah", "The Hobbit", "Untitled"}},
		{"title substring", Criteria{Title: "Dune"}, []string{"Dune", "Dune Messiah"}},
		{"author substring", Criteria{Author: "Tolkien"}, []string{"The Hobbit"}},
		{"publisher substring", Criteria{Publisher: "Put"}, []string{"Dune Messiah"}},
		{"genre name substring", Criteria{Genre: "Science"}, []string{"Dune", "Dune Messiah"}},
		{"criteria combine with AND", Criteria{Title: "Dune", Publisher: "Chilton"}, []string{"Dune"}},
		{"no match", Criteria{Title: "Foundation"}, nil},
		{"genre filter excludes books without a genre", Criteria{Genre: "n"}, []string{"Dune", "Dune Messiah", "The Hobbit"}},
		{"trailing space is part of the text", Criteria{Title: "Dune "}, []string{"Dune Messiah"}},
		{"whitespace only is a constraint", Criteria{Title: "  "}, nil},
		{"single space", Criteria{Title: " "}, []string{"Dune Messiah", "The Hobbit"}},
		{"ascii case is ignored on sqlite", Criteria{Title: "DUNE"}, []string{"Dune", "Dune Messiah"}},
		{"underscore is a wildcard", Criteria{Title: "_"}, []string{"Dune", "Dune Messiah", "The Hobbit", "Untitled"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			books, err := repo.SearchBooks(ctx, tt.criteria)
			require.NoError(t, err)

			var titles []string
			for _, b := range books {
				titles = append(titles, b.Title)
			}
			assert.Equal(t, tt.expected, titles)
		})
	}
}

func TestCriteria_Sqlizer(t *testing.T) {
	assert.True(t, Criteria{}.IsEmpty())
	assert.False(t, Criteria{Genre: "x"}.IsEmpty())

	sql, args, err := Criteria{Title: "Dune", Genre: "Sci"}.Sqlizer().ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "books.title LIKE ?")
	assert.Contains(t, sql, "genres.name LIKE ?")
	assert.Equal(t, []interface{}{"%Dune%", "%Sci%"}, args)

	_, args, err = Criteria{Author: " Herbert ", Publisher: "  "}.Sqlizer().ToSql()
	require.NoError(t, err)
	assert.Equal(t, []interface{}{"% Herbert %", "%  %"}, args)
}
