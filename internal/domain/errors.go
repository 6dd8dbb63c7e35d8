package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrUnknownItem indicates a list selection referenced an id absent from the catalog.
	ErrUnknownItem = errors.New("unknown catalog item")
	// ErrEmptyCart indicates an operation that needs cart lines found none.
	ErrEmptyCart = errors.New("cart is empty")
)
