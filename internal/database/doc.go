// Package database provides the data access layer for the inventory.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup for sqlite, mysql and postgres
//	├── migrations.go    # Versioned schema migrations
//	├── errors.go        # Typed store errors and driver error translation
//	├── books/           # Book CRUD and search
//	├── genres/          # Genre listing and creation
//	├── shelves/         # Shelf listing and creation
//	└── audit/           # Audit event storage
//
// # Using Sub-packages
//
// Each sub-package provides a Repository type with domain-specific operations:
//
//	db, err := database.NewDatabase(database.Options{Driver: "sqlite", DSN: "./bookstore.db"})
//	if _, err := db.Migrate(); err != nil { ... }
//
//	booksRepo := books.NewRepository(db.DB)
//	genresRepo := genres.NewRepository(db.DB)
//
//	book, err := booksRepo.GetBookByID(ctx, 123)
//
// # Errors
//
// Repositories return *Error values classified by Kind. Use errors.Is with
// ErrNotFound, ErrValidation, ErrConflict or ErrUnavailable, or KindOf, to
// branch on the failure without inspecting driver messages.
//
// # Interface Implementations
//
//   - books.Repository: implements http.BookStore
//   - genres.Repository: implements http.GenreStore
//   - shelves.Repository: implements http.ShelfStore
//   - audit.Repository: implements audit.Store
//
// # Adding a New Domain
//
//  1. Create a new sub-package under internal/database/
//  2. Define a Repository struct with a *gorm.DB field
//  3. Add NewRepository(db *gorm.DB) constructor
//  4. Append a Migration creating its tables
//  5. Add compile-time interface check in internal/interfaces
package database
