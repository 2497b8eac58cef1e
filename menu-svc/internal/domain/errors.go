package domain

import (
	"errors"
	"strings"
)

var (
	ErrNoSnapshot     = errors.New("no menu snapshot persisted")
	ErrRemoteNotFound = errors.New("remote menu file not found")
	ErrTransport      = errors.New("remote transport error")
	ErrUnauthorized   = errors.New("remote write credential missing or rejected")
	ErrConflict       = errors.New("remote menu changed since last read")

	ErrCategoryNotFound   = errors.New("category not found")
	ErrCategoryExists     = errors.New("category already exists")
	ErrItemNotFound       = errors.New("item not found")
	ErrItemExists         = errors.New("item already exists in category")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrCredentialRejected = errors.New("write credential rejected by the remote menu")
)

// ValidationError reports bad admin input; it is returned before any state
// is touched.
type ValidationError struct {
	Fields []string
	Reason string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed: " + e.Reason
	}
	return "validation failed on " + strings.Join(e.Fields, ", ") + ": " + e.Reason
}

func NewValidationError(reason string, fields ...string) *ValidationError {
	return &ValidationError{Fields: fields, Reason: reason}
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
