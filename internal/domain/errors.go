package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrInvalidQuery signals a query that cannot be searched.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrCombinationRequired signals a search without a combination identifier.
	ErrCombinationRequired = errors.New("combination id is required")
	// ErrQueryTooLong signals a raw query string over the configured limit.
	ErrQueryTooLong = errors.New("query too long")
	// ErrInvalidArgument signals a malformed maintenance or paging argument.
	ErrInvalidArgument = errors.New("invalid argument")
)

// QueryTooLongError wraps ErrQueryTooLong with the configured limit.
type QueryTooLongError struct {
	MaxLength int
}

func (e *QueryTooLongError) Error() string {
	return fmt.Sprintf("%s: max %d chars", ErrQueryTooLong.Error(), e.MaxLength)
}

func (e *QueryTooLongError) Unwrap() error { return ErrQueryTooLong }

// NewQueryTooLong creates a query length error.
func NewQueryTooLong(maxLength int) error {
	return &QueryTooLongError{MaxLength: maxLength}
}
