package application

import (
	"errors"

	"github.com/yamdb/yamdb/internal/domain/entity"
)

var (
	// ErrNotFound covers a missing resource, including missing parents of
	// nested resources (title of a review, review of a comment).
	ErrNotFound = errors.New("not found")
	// ErrInvalidCredentials is the single token-exchange failure; it does
	// not distinguish unknown user, wrong code, or inactive account.
	ErrInvalidCredentials = errors.New("user does not exist, is blocked, or the confirmation code is incorrect")
	// ErrEmailTaken rejects registration with a known email.
	ErrEmailTaken = errors.New("a user with that email already exists")
	// ErrDuplicateReview rejects a second review for the same (author,
	// title) pair, whether caught by the pre-check or by the store
	// constraint under concurrency.
	ErrDuplicateReview = errors.New("you have already left a review about this title")
	// ErrStorageUnavailable is returned when an optional backing service
	// (GCS, Elasticsearch) is not configured.
	ErrStorageUnavailable = errors.New("storage not configured")
)

// ValidationError carries field-scoped messages the client can act on.
type ValidationError struct {
	Fields entity.FieldErrors
}

func (e *ValidationError) Error() string { return e.Fields.Error() }

func validationErr(fields entity.FieldErrors) error {
	return &ValidationError{Fields: fields}
}

// AsValidation extracts a ValidationError if err is one.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
