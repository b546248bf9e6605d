package store

import "errors"

var (
	ErrCardNotFound  = errors.New("card not found")
	ErrOrderNotFound = errors.New("order not found")
	ErrEmailTaken    = errors.New("email already registered")

	// ErrInsufficientStock aborts a checkout when any line cannot claim
	// enough physical copies. The whole order rolls back.
	ErrInsufficientStock = errors.New("insufficient stock")
)
