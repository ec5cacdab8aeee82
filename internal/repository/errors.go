package repository

import "errors"

var (
	// ErrInvalidID means the supplied id is not a well-formed ObjectID hex.
	ErrInvalidID = errors.New("invalid id")
	// ErrNotFound means no document matched a well-formed id.
	ErrNotFound = errors.New("not found")
	// ErrInsufficientStock means the conditional decrement matched nothing:
	// either the product is absent or availableQty < requested quantity.
	ErrInsufficientStock = errors.New("insufficient stock")
)
