package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookstore/internal/database/books"
	"github.com/mrlokans/bookstore/internal/entities"
)

// CreateBookRequest is the body of POST /books.
type CreateBookRequest struct {
	Title     string          `json:"title" binding:"required"`
	Author    string          `json:"author" binding:"required"`
	Publisher string          `json:"publisher" binding:"required"`
	Year      *int            `json:"year"`
	Price     *entities.Price `json:"price" binding:"required"`
	Quantity  *int            `json:"quantity" binding:"omitempty,gte=0"`
	GenreID   *uint           `json:"GenreId"`
	ShelfID   *uint           `json:"ShelfId"`
}

func (r CreateBookRequest) toBook() *entities.Book {
	quantity := entities.DefaultQuantity
	if r.Quantity != nil {
		quantity = *r.Quantity
	}
	return &entities.Book{
		Title:     r.Title,
		Author:    r.Author,
		Publisher: r.Publisher,
		Year:      r.Year,
		Price:     *r.Price,
		Quantity:  quantity,
		GenreID:   r.GenreID,
		ShelfID:   r.ShelfID,
	}
}

// UpdateBookRequest is the body of PUT /books/:id. Omitted fields keep their
// stored value; JSON null is treated the same as omission.
type UpdateBookRequest struct {
	Title     *string         `json:"title"`
	Author    *string         `json:"author"`
	Publisher *string         `json:"publisher"`
	Year      *int            `json:"year"`
	Price     *entities.Price `json:"price"`
	Quantity  *int            `json:"quantity" binding:"omitempty,gte=0"`
	GenreID   *uint           `json:"GenreId"`
	ShelfID   *uint           `json:"ShelfId"`
}

func (r UpdateBookRequest) toChanges() books.Changes {
	return books.Changes{
		Title:     r.Title,
		Author:    r.Author,
		Publisher: r.Publisher,
		Year:      r.Year,
		Price:     r.Price,
		Quantity:  r.Quantity,
		GenreID:   r.GenreID,
		ShelfID:   r.ShelfID,
	}
}

// fields lists the JSON names of the fields present in the request.
func (r UpdateBookRequest) fields() []string {
	present := []struct {
		name string
		set  bool
	}{
		{"title", r.Title != nil},
		{"author", r.Author != nil},
		{"publisher", r.Publisher != nil},
		{"year", r.Year != nil},
		{"price", r.Price != nil},
		{"quantity", r.Quantity != nil},
		{"GenreId", r.GenreID != nil},
		{"ShelfId", r.ShelfID != nil},
	}
	var names []string
	for _, f := range present {
		if f.set {
			names = append(names, f.name)
		}
	}
	return names
}

type BooksController struct {
	store BookStore
	audit AuditLogger
}

func NewBooksController(store BookStore, audit AuditLogger) *BooksController {
	return &BooksController{store: store, audit: audit}
}

// GetAllBooks returns every book with its genre and shelf
// GET /books
func (bc *BooksController) GetAllBooks(c *gin.Context) {
	list, err := bc.store.GetAllBooks(c.Request.Context())
	if err != nil {
		respondStoreError(c, err, "get all books")
		return
	}
	c.JSON(http.StatusOK, nonNil(list))
}

// GetBook returns a single book
// GET /books/:id
func (bc *BooksController) GetBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	book, err := bc.store.GetBookByID(c.Request.Context(), id)
	if err != nil {
		respondStoreError(c, err, "get book")
		return
	}
	c.JSON(http.StatusOK, book)
}

// CreateBook adds a book to the inventory
// POST /books
func (bc *BooksController) CreateBook(c *gin.Context) {
	var req CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	book := req.toBook()
	if err := bc.store.CreateBook(c.Request.Context(), book); err != nil {
		respondStoreError(c, err, "create book")
		return
	}

	if bc.audit != nil {
		bc.audit.LogCreate(GetRequestID(c), entities.EntityBook, book.ID, book.Title)
	}
	respondCreated(c, book)
}

// UpdateBook applies a partial update
// PUT /books/:id
func (bc *BooksController) UpdateBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	book, err := bc.store.UpdateBook(c.Request.Context(), id, req.toChanges())
	if err != nil {
		respondStoreError(c, err, "update book")
		return
	}

	if bc.audit != nil {
		bc.audit.LogUpdate(GetRequestID(c), entities.EntityBook, book.ID, book.Title, req.fields())
	}
	c.JSON(http.StatusOK, book)
}

// DeleteBook removes a book
// DELETE /books/:id
func (bc *BooksController) DeleteBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	book, err := bc.store.GetBookByID(ctx, id)
	if err != nil {
		respondStoreError(c, err, "delete book")
		return
	}

	if err := bc.store.DeleteBook(ctx, id); err != nil {
		respondStoreError(c, err, "delete book")
		return
	}

	if bc.audit != nil {
		bc.audit.LogDelete(GetRequestID(c), entities.EntityBook, id, book.Title)
	}
	c.Status(http.StatusNoContent)
}

// SearchBooks filters books by substring criteria; empty parameters match everything
// GET /search/books?title=&author=&genre=&publisher=
func (bc *BooksController) SearchBooks(c *gin.Context) {
	criteria := books.Criteria{
		Title:     c.Query("title"),
		Author:    c.Query("author"),
		Genre:     c.Query("genre"),
		Publisher: c.Query("publisher"),
	}

	list, err := bc.store.SearchBooks(c.Request.Context(), criteria)
	if err != nil {
		respondStoreError(c, err, "search books")
		return
	}
	c.JSON(http.StatusOK, nonNil(list))
}

// nonNil makes empty results encode as [] rather than null.
func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
