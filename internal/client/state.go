package client

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/samber/lo"

	"github.com/mrlokans/bookstore/internal/entities"
)

// Criteria is the search form. Empty fields do not filter.
type Criteria struct {
	Title     string
	Author    string
	Genre     string
	Publisher string
}

func (c Criteria) IsEmpty() bool {
	return c.Title == "" && c.Author == "" && c.Genre == "" && c.Publisher == ""
}

// Draft is the book being edited in the add/edit dialog. ID is nil for a new book.
type Draft struct {
	ID        *uint
	Title     string
	Author    string
	Publisher string
	Year      *int
	Price     entities.Price
	Quantity  int
	GenreID   *uint
	ShelfID   *uint
}

func (d Draft) IsNew() bool {
	return d.ID == nil
}

// Payload converts the draft into a request body.
func (d Draft) Payload() BookPayload {
	return BookPayload{
		Title:     strings.TrimSpace(d.Title),
		Author:    strings.TrimSpace(d.Author),
		Publisher: strings.TrimSpace(d.Publisher),
		Year:      d.Year,
		Price:     d.Price,
		Quantity:  d.Quantity,
		GenreID:   d.GenreID,
		ShelfID:   d.ShelfID,
	}
}

// newDraft seeds an add dialog with the first loaded genre and shelf.
func newDraft(genres []entities.Genre, shelves []entities.Shelf) Draft {
	draft := Draft{Quantity: entities.DefaultQuantity}
	if genre, ok := lo.First(genres); ok {
		draft.GenreID = lo.ToPtr(genre.ID)
	}
	if shelf, ok := lo.First(shelves); ok {
		draft.ShelfID = lo.ToPtr(shelf.ID)
	}
	return draft
}

func draftFromBook(book entities.Book) Draft {
	return Draft{
		ID:        lo.ToPtr(book.ID),
		Title:     book.Title,
		Author:    book.Author,
		Publisher: book.Publisher,
		Year:      book.Year,
		Price:     book.Price,
		Quantity:  book.Quantity,
		GenreID:   book.GenreID,
		ShelfID:   book.ShelfID,
	}
}

type NoticeLevel string

const (
	NoticeInfo  NoticeLevel = "info"
	NoticeError NoticeLevel = "error"
)

// Notice is the message a front end shows after an operation.
type Notice struct {
	Level   NoticeLevel
	Message string
}

// State is everything the inventory view renders.
type State struct {
	Books    []entities.Book
	Genres   []entities.Genre
	Shelves  []entities.Shelf
	Criteria Criteria
	Draft    *Draft
	Notice   *Notice
}

// Action is a state transition handled by Reduce.
type Action interface {
	isAction()
}

type (
	BooksLoaded      struct{ Books []entities.Book }
	GenresLoaded     struct{ Genres []entities.Genre }
	ShelvesLoaded    struct{ Shelves []entities.Shelf }
	GenreAdded       struct{ Genre entities.Genre }
	ShelfAdded       struct{ Shelf entities.Shelf }
	CriteriaChanged  struct{ Criteria Criteria }
	SearchReset      struct{}
	AddDialogOpened  struct{}
	EditDialogOpened struct{ Book entities.Book }
	DraftEdited      struct{ Draft Draft }
	DialogClosed     struct{}
	BookSaved        struct{ Book entities.Book }
	BookDeleted      struct{ ID uint }
	RequestFailed    struct {
		Operation string
		Err       error
	}
	NoticeDismissed struct{}
)

func (BooksLoaded) isAction()      {}
func (GenresLoaded) isAction()     {}
func (ShelvesLoaded) isAction()    {}
func (GenreAdded) isAction()       {}
func (ShelfAdded) isAction()       {}
func (CriteriaChanged) isAction()  {}
func (SearchReset) isAction()      {}
func (AddDialogOpened) isAction()  {}
func (EditDialogOpened) isAction() {}
func (DraftEdited) isAction()      {}
func (DialogClosed) isAction()     {}
func (BookSaved) isAction()        {}
func (BookDeleted) isAction()      {}
func (RequestFailed) isAction()    {}
func (NoticeDismissed) isAction()  {}

// Reduce returns the state after applying action. It never modifies the
// slices or draft held by s.
func Reduce(s State, action Action) State {
	switch a := action.(type) {
	case BooksLoaded:
		s.Books = a.Books
	case GenresLoaded:
		s.Genres = a.Genres
	case ShelvesLoaded:
		s.Shelves = a.Shelves
	case GenreAdded:
		s.Genres = append(append([]entities.Genre{}, s.Genres...), a.Genre)
	case ShelfAdded:
		s.Shelves = append(append([]entities.Shelf{}, s.Shelves...), a.Shelf)
	case CriteriaChanged:
		s.Criteria = a.Criteria
	case SearchReset:
		s.Criteria = Criteria{}
	case AddDialogOpened:
		draft := newDraft(s.Genres, s.Shelves)
		s.Draft = &draft
	case EditDialogOpened:
		draft := draftFromBook(a.Book)
		s.Draft = &draft
	case DraftEdited:
		if s.Draft != nil {
			draft := a.Draft
			draft.ID = s.Draft.ID
			s.Draft = &draft
		}
	case DialogClosed:
		s.Draft = nil
	case BookSaved:
		s.Draft = nil
		s.Notice = &Notice{Level: NoticeInfo, Message: fmt.Sprintf("Saved %q", a.Book.Title)}
	case BookDeleted:
		s.Books = lo.Reject(s.Books, func(b entities.Book, _ int) bool { return b.ID == a.ID })
		s.Notice = &Notice{Level: NoticeInfo, Message: "Book deleted"}
	case RequestFailed:
		s.Notice = &Notice{Level: NoticeError, Message: describeFailure(a.Operation, a.Err)}
	case NoticeDismissed:
		s.Notice = nil
	}
	return s
}

// describeFailure turns a request error into a message keyed on the HTTP status.
func describeFailure(operation string, err error) string {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return fmt.Sprintf("Could not %s: the server is unreachable", operation)
	}

	switch apiErr.StatusCode {
	case http.StatusBadRequest:
		return fmt.Sprintf("Could not %s: %s", operation, lo.CoalesceOrEmpty(apiErr.Message, "invalid input"))
	case http.StatusNotFound:
		return fmt.Sprintf("Could not %s: it no longer exists", operation)
	case http.StatusConflict:
		return fmt.Sprintf("Could not %s: %s", operation, lo.CoalesceOrEmpty(apiErr.Message, "it already exists"))
	case http.StatusTooManyRequests:
		return fmt.Sprintf("Could not %s: too many requests, try again shortly", operation)
	case http.StatusServiceUnavailable:
		return fmt.Sprintf("Could not %s: the service is unavailable", operation)
	default:
		return fmt.Sprintf("Could not %s: server error (HTTP %d)", operation, apiErr.StatusCode)
	}
}
