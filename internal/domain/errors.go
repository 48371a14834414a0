package domain

import "errors"

// Error taxonomy shared by the store and the HTTP layer. Handlers branch on
// these with errors.Is and expose only a generic message to clients.
var (
	ErrNotFound = errors.New("product not found")
	ErrInvalid  = errors.New("invalid data")
)
