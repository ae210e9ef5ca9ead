package order_sync

import "errors"

var (
	ErrNoSession      = errors.New("no active session")
	ErrAlreadyStarted = errors.New("order sync already started")
	ErrEmptyCart      = errors.New("cart is empty")
)
