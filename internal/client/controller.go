package client

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/mrlokans/bookstore/internal/entities"
)

// Backend is the subset of the inventory API the controller calls.
type Backend interface {
	ListBooks(ctx context.Context) ([]entities.Book, error)
	SearchBooks(ctx context.Context, criteria Criteria) ([]entities.Book, error)
	CreateBook(ctx context.Context, payload BookPayload) (*entities.Book, error)
	UpdateBook(ctx context.Context, id uint, payload BookPayload) (*entities.Book, error)
	DeleteBook(ctx context.Context, id uint) error
	ListGenres(ctx context.Context) ([]entities.Genre, error)
	CreateGenre(ctx context.Context, name string) (*entities.Genre, error)
	ListShelves(ctx context.Context) ([]entities.Shelf, error)
	CreateShelf(ctx context.Context, number int, location string) (*entities.Shelf, error)
}

// Controller owns the client State and runs API calls that change it.
// Every transition goes through Reduce. Failed calls are logged, surface as
// an error Notice and are returned to the caller; nothing is retried.
type Controller struct {
	backend Backend

	mu    sync.Mutex
	state State
}

func NewController(backend Backend) *Controller {
	return &Controller{backend: backend}
}

// State returns a snapshot of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) dispatch(action Action) {
	c.mu.Lock()
	c.state = Reduce(c.state, action)
	c.mu.Unlock()
}

func (c *Controller) fail(operation string, err error) error {
	log.Printf("Client: failed to %s: %v", operation, err)
	c.dispatch(RequestFailed{Operation: operation, Err: err})
	return fmt.Errorf("failed to %s: %w", operation, err)
}

// Start loads books, genres and shelves concurrently and returns once all
// three requests have finished. Each list that loads is kept even if
// another fails.
func (c *Controller) Start(ctx context.Context) error {
	var g errgroup.Group

	g.Go(func() error {
		books, err := c.backend.ListBooks(ctx)
		if err != nil {
			return c.fail("load books", err)
		}
		c.dispatch(BooksLoaded{Books: books})
		return nil
	})
	g.Go(func() error {
		genres, err := c.backend.ListGenres(ctx)
		if err != nil {
			return c.fail("load genres", err)
		}
		c.dispatch(GenresLoaded{Genres: genres})
		return nil
	})
	g.Go(func() error {
		shelves, err := c.backend.ListShelves(ctx)
		if err != nil {
			return c.fail("load shelves", err)
		}
		c.dispatch(ShelvesLoaded{Shelves: shelves})
		return nil
	})

	return g.Wait()
}

// Search stores the criteria and replaces the book list with the matches.
func (c *Controller) Search(ctx context.Context, criteria Criteria) error {
	c.dispatch(CriteriaChanged{Criteria: criteria})
	return c.refreshBooks(ctx)
}

// ResetSearch clears the criteria and reloads every book.
func (c *Controller) ResetSearch(ctx context.Context) error {
	c.dispatch(SearchReset{})
	return c.refreshBooks(ctx)
}

// refreshBooks reloads the book list, honouring the active criteria.
func (c *Controller) refreshBooks(ctx context.Context) error {
	criteria := c.State().Criteria

	var (
		books []entities.Book
		err   error
	)
	if criteria.IsEmpty() {
		books, err = c.backend.ListBooks(ctx)
	} else {
		books, err = c.backend.SearchBooks(ctx, criteria)
	}
	if err != nil {
		return c.fail("load books", err)
	}

	c.dispatch(BooksLoaded{Books: books})
	return nil
}

// OpenAdd opens the dialog with a draft for a new book.
func (c *Controller) OpenAdd() {
	c.dispatch(AddDialogOpened{})
}

// OpenEdit opens the dialog with a draft copied from a loaded book.
func (c *Controller) OpenEdit(id uint) error {
	book, ok := lo.Find(c.State().Books, func(b entities.Book) bool { return b.ID == id })
	if !ok {
		return fmt.Errorf("book %d: %w", id, ErrBookNotLoaded)
	}
	c.dispatch(EditDialogOpened{Book: book})
	return nil
}

// EditDraft applies edit to a copy of the open draft.
func (c *Controller) EditDraft(edit func(*Draft)) error {
	state := c.State()
	if state.Draft == nil {
		return ErrNoDraft
	}
	draft := *state.Draft
	edit(&draft)
	c.dispatch(DraftEdited{Draft: draft})
	return nil
}

// CloseDialog discards the draft.
func (c *Controller) CloseDialog() {
	c.dispatch(DialogClosed{})
}

// Save creates or updates the draft's book, then closes the dialog and
// reloads the list. On failure the dialog stays open.
func (c *Controller) Save(ctx context.Context) (*entities.Book, error) {
	state := c.State()
	if state.Draft == nil {
		return nil, ErrNoDraft
	}
	draft := *state.Draft

	var (
		book      *entities.Book
		err       error
		operation = "create book"
	)
	if draft.IsNew() {
		book, err = c.backend.CreateBook(ctx, draft.Payload())
	} else {
		operation = "update book"
		book, err = c.backend.UpdateBook(ctx, *draft.ID, draft.Payload())
	}
	if err != nil {
		return nil, c.fail(operation, err)
	}

	c.dispatch(BookSaved{Book: *book})
	return book, c.refreshBooks(ctx)
}

// Delete removes a book and reloads the list.
func (c *Controller) Delete(ctx context.Context, id uint) error {
	if err := c.backend.DeleteBook(ctx, id); err != nil {
		return c.fail("delete book", err)
	}
	c.dispatch(BookDeleted{ID: id})
	return c.refreshBooks(ctx)
}

// AddGenre creates a genre and appends it to the loaded list.
func (c *Controller) AddGenre(ctx context.Context, name string) (*entities.Genre, error) {
	genre, err := c.backend.CreateGenre(ctx, name)
	if err != nil {
		return nil, c.fail("create genre", err)
	}
	c.dispatch(GenreAdded{Genre: *genre})
	return genre, nil
}

// AddShelf creates a shelf and appends it to the loaded list.
func (c *Controller) AddShelf(ctx context.Context, number int, location string) (*entities.Shelf, error) {
	shelf, err := c.backend.CreateShelf(ctx, number, location)
	if err != nil {
		return nil, c.fail("create shelf", err)
	}
	c.dispatch(ShelfAdded{Shelf: *shelf})
	return shelf, nil
}

// DismissNotice clears the current notice.
func (c *Controller) DismissNotice() {
	c.dispatch(NoticeDismissed{})
}
