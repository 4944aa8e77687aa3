package content

import "errors"

// Domain-specific errors for the content package.
var (
	ErrNotFound      = errors.New("content item not found")
	ErrInvalidItem   = errors.New("invalid content item")
	ErrNoMatch       = errors.New("no matching content item")
	ErrEmptyCatalog  = errors.New("content catalog is empty")
	ErrInvalidUpdate = errors.New("no fields to update")
)
