package errors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrLanguageNotSupported = errors.New("language not supported")
	ErrInvalidSchemaType    = errors.New("invalid schema type")
	ErrInvalidDocSchema     = errors.New("document violates schema")
	ErrInvalidProperty      = errors.New("invalid property")
	ErrInvalidQueryParams   = errors.New("invalid query params")
	ErrDocIdDoesNotExist    = errors.New("document id does not exist")
	ErrIndexRemovalFailure  = errors.New("index removal failure")
)

// AppError wraps one of the sentinels above with a caller-facing message and
// the HTTP status the demo server should answer with.
type AppError struct {
	Err        error
	Message    string
	StatusCode int
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Err.Error(), e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(sentinel error, statusCode int, message string) *AppError {
	return &AppError{
		Err:        sentinel,
		Message:    message,
		StatusCode: statusCode,
	}
}

func Newf(sentinel error, statusCode int, format string, args ...any) *AppError {
	return &AppError{
		Err:        sentinel,
		Message:    fmt.Sprintf(format, args...),
		StatusCode: statusCode,
	}
}

// LanguageNotSupported reports that a caller asked for a language outside
// the enumerated set.
func LanguageNotSupported(requested string) *AppError {
	return Newf(ErrLanguageNotSupported, http.StatusBadRequest, "language %q is not supported", requested)
}

// InvalidSchemaType reports that a schema builder saw a non-leaf,
// non-object value while constructing indices.
func InvalidSchemaType(foundType string) *AppError {
	return Newf(ErrInvalidSchemaType, http.StatusBadRequest, "invalid schema type: %s", foundType)
}

// InvalidDocSchema reports that an inserted document violates the schema it
// was declared against.
func InvalidDocSchema(reason string) *AppError {
	return Newf(ErrInvalidDocSchema, http.StatusBadRequest, "%s", reason)
}

// InvalidProperty reports a search property that names no known text field
// of the schema.
func InvalidProperty(path string) *AppError {
	return Newf(ErrInvalidProperty, http.StatusBadRequest, "invalid property: %s", path)
}

// InvalidQueryParams reports a malformed `where` clause: a field not in the
// schema or not filterable, an unknown operator, more than one comparison
// per numeric field, a non-numeric target, and the like.
func InvalidQueryParams(reason string) *AppError {
	return Newf(ErrInvalidQueryParams, http.StatusBadRequest, "%s", reason)
}

// DocIdDoesNotExist reports a delete (or other by-id lookup) against an id
// the document table has never seen.
func DocIdDoesNotExist(id string) *AppError {
	return Newf(ErrDocIdDoesNotExist, http.StatusNotFound, "document id does not exist: %s", id)
}

// IndexRemovalFailure reports structural corruption found while deleting a
// document: the document table believes an id exists but none of its
// schema-declared indices has it.
func IndexRemovalFailure(reason string) *AppError {
	return Newf(ErrIndexRemovalFailure, http.StatusInternalServerError, "%s", reason)
}

// HTTPStatusCode maps any error produced by this package (or a plain
// sentinel) to the HTTP status the demo server should answer with.
func HTTPStatusCode(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}

	switch {
	case errors.Is(err, ErrDocIdDoesNotExist):
		return http.StatusNotFound
	case errors.Is(err, ErrLanguageNotSupported),
		errors.Is(err, ErrInvalidSchemaType),
		errors.Is(err, ErrInvalidDocSchema),
		errors.Is(err, ErrInvalidProperty),
		errors.Is(err, ErrInvalidQueryParams):
		return http.StatusBadRequest
	case errors.Is(err, ErrIndexRemovalFailure):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
