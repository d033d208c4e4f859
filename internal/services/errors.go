// internal/services/errors.go
package services

import "errors"

// Domain errors, matched with errors.Is at the handler boundary and
// mapped to HTTP statuses there.
var (
	ErrProductNotFound = errors.New("product not found")
	ErrOrderNotFound   = errors.New("order not found")

	// ErrOrderAlreadyPaid guards the pending->paid transition: a repeated
	// mark-paid must not decrement stock a second time.
	ErrOrderAlreadyPaid = errors.New("order already paid")

	ErrInvalidOption     = errors.New("a product option must be selected")
	ErrInsufficientStock = errors.New("insufficient stock")

	// One error for both unknown email and wrong password, so responses
	// do not leak which one failed.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
)
