package database

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"strings"

	"gorm.io/gorm"
)

// Kind classifies a store failure so callers can react without inspecting
// driver-specific errors.
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindValidation
	KindConflict
	KindUnavailable
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindUnavailable:
		return "unavailable"
	default:
		return "internal"
	}
}

// Error is the typed error returned by repositories.
type Error struct {
	Kind     Kind
	Resource string
	Message  string
	Err      error
}

func (e *Error) Error() string {
	if e.Err != nil && e.Kind == KindInternal {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error with the same Kind, so sentinels below work with errors.Is.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Kind == t.Kind && (t.Resource == "" || t.Resource == e.Resource)
	}
	return false
}

// Sentinels for errors.Is checks.
var (
	ErrNotFound    = &Error{Kind: KindNotFound, Message: "not found"}
	ErrValidation  = &Error{Kind: KindValidation, Message: "validation failed"}
	ErrConflict    = &Error{Kind: KindConflict, Message: "conflict"}
	ErrUnavailable = &Error{Kind: KindUnavailable, Message: "store unavailable"}
)

// NotFound reports that no row of the given resource matched.
func NotFound(resource string) *Error {
	return &Error{Kind: KindNotFound, Resource: resource, Message: resource + " not found"}
}

// Validation reports input the store cannot accept.
func Validation(resource, message string) *Error {
	return &Error{Kind: KindValidation, Resource: resource, Message: message}
}

// Conflict reports a uniqueness violation.
func Conflict(resource, message string, err error) *Error {
	return &Error{Kind: KindConflict, Resource: resource, Message: message, Err: err}
}

// KindOf returns the Kind of err, or KindInternal for untyped errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Translate converts gorm and driver errors into typed store errors.
// Errors that are already typed pass through unchanged.
func Translate(err error, resource string) error {
	if err == nil {
		return nil
	}

	var typed *Error
	if errors.As(err, &typed) {
		return err
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return NotFound(resource)
	case errors.Is(err, gorm.ErrDuplicatedKey) || isUniqueViolation(err):
		return Conflict(resource, resource+" already exists", err)
	case errors.Is(err, gorm.ErrForeignKeyViolated) || isForeignKeyViolation(err):
		return &Error{Kind: KindValidation, Resource: resource, Message: resource + " references a missing record", Err: err}
	case isUnavailable(err):
		return &Error{Kind: KindUnavailable, Resource: resource, Message: "store unavailable", Err: err}
	}

	return &Error{Kind: KindInternal, Resource: resource, Message: resource + " query failed", Err: err}
}

// Driver messages for the engines we support, used when the dialector does
// not translate errors itself.
var (
	uniqueMarkers = []string{
		"UNIQUE constraint failed", // sqlite
		"Duplicate entry",          // mysql
		"duplicate key value",      // postgres
	}
	foreignKeyMarkers = []string{
		"FOREIGN KEY constraint failed",   // sqlite
		"a foreign key constraint fails",  // mysql
		"violates foreign key constraint", // postgres
	}
	unavailableMarkers = []string{
		"connection refused",
		"database is closed",
		"bad connection",
		"no such host",
	}
)

func isUniqueViolation(err error) bool {
	return containsAny(err.Error(), uniqueMarkers)
}

func isForeignKeyViolation(err error) bool {
	return containsAny(err.Error(), foreignKeyMarkers)
}

func isUnavailable(err error) bool {
	if errors.Is(err, driver.ErrBadConn) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	return containsAny(err.Error(), unavailableMarkers)
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}
