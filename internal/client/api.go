// Package client talks to the inventory API and keeps the view state a
// front end renders: the loaded lists, the search criteria, the edit dialog
// draft and the last notice.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mrlokans/bookstore/internal/entities"
)

const defaultTimeout = 10 * time.Second

// BookPayload is the body sent to POST /books and PUT /books/:id.
type BookPayload struct {
	Title     string         `json:"title"`
	Author    string         `json:"author"`
	Publisher string         `json:"publisher"`
	Year      *int           `json:"year,omitempty"`
	Price     entities.Price `json:"price"`
	Quantity  int            `json:"quantity"`
	GenreID   *uint          `json:"GenreId,omitempty"`
	ShelfID   *uint          `json:"ShelfId,omitempty"`
}

// API is an HTTP client for the inventory API.
type API struct {
	baseURL    string
	httpClient *http.Client
}

// NewAPI creates a client for the API at baseURL. A zero timeout uses the default.
func NewAPI(baseURL string, timeout time.Duration) *API {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &API{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (a *API) ListBooks(ctx context.Context) ([]entities.Book, error) {
	var books []entities.Book
	err := a.do(ctx, http.MethodGet, "/books", nil, &books)
	return books, err
}

// SearchBooks queries /search/books. Empty criteria fields are not sent.
func (a *API) SearchBooks(ctx context.Context, criteria Criteria) ([]entities.Book, error) {
	path := "/search/books"
	if q := criteria.query(); len(q) > 0 {
		path += "?" + q.Encode()
	}
	var books []entities.Book
	err := a.do(ctx, http.MethodGet, path, nil, &books)
	return books, err
}

func (a *API) GetBook(ctx context.Context, id uint) (*entities.Book, error) {
	var book entities.Book
	if err := a.do(ctx, http.MethodGet, bookPath(id), nil, &book); err != nil {
		return nil, err
	}
	return &book, nil
}

func (a *API) CreateBook(ctx context.Context, payload BookPayload) (*entities.Book, error) {
	var book entities.Book
	if err := a.do(ctx, http.MethodPost, "/books", payload, &book); err != nil {
		return nil, err
	}
	return &book, nil
}

func (a *API) UpdateBook(ctx context.Context, id uint, payload BookPayload) (*entities.Book, error) {
	var book entities.Book
	if err := a.do(ctx, http.MethodPut, bookPath(id), payload, &book); err != nil {
		return nil, err
	}
	return &book, nil
}

func (a *API) DeleteBook(ctx context.Context, id uint) error {
	return a.do(ctx, http.MethodDelete, bookPath(id), nil, nil)
}

func (a *API) ListGenres(ctx context.Context) ([]entities.Genre, error) {
	var genres []entities.Genre
	err := a.do(ctx, http.MethodGet, "/genres", nil, &genres)
	return genres, err
}

func (a *API) CreateGenre(ctx context.Context, name string) (*entities.Genre, error) {
	var genre entities.Genre
	if err := a.do(ctx, http.MethodPost, "/genres", map[string]string{"name": name}, &genre); err != nil {
		return nil, err
	}
	return &genre, nil
}

func (a *API) ListShelves(ctx context.Context) ([]entities.Shelf, error) {
	var shelves []entities.Shelf
	err := a.do(ctx, http.MethodGet, "/shelves", nil, &shelves)
	return shelves, err
}

func (a *API) CreateShelf(ctx context.Context, number int, location string) (*entities.Shelf, error) {
	body := map[string]any{"number": number, "location": location}
	var shelf entities.Shelf
	if err := a.do(ctx, http.MethodPost, "/shelves", body, &shelf); err != nil {
		return nil, err
	}
	return &shelf, nil
}

func bookPath(id uint) string {
	return "/books/" + strconv.FormatUint(uint64(id), 10)
}

// do sends a JSON request and decodes a JSON response into out when out is non-nil.
func (a *API) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	var body struct {
		Error   string `json:"error"`
		Code    string `json:"code"`
		Details any    `json:"details"`
	}
	if err := json.Unmarshal(data, &body); err == nil {
		apiErr.Message = body.Error
		apiErr.Code = body.Code
		apiErr.Details = body.Details
	} else {
		apiErr.Message = strings.TrimSpace(string(data))
	}
	return apiErr
}

func (c Criteria) query() url.Values {
	q := url.Values{}
	for key, value := range map[string]string{
		"title":     c.Title,
		"author":    c.Author,
		"genre":     c.Genre,
		"publisher": c.Publisher,
	} {
		if value != "" {
			q.Set(key, value)
		}
	}
	return q
}
