package order

import "errors"

var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrOrderAlreadyExists = errors.New("order already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidEmail       = errors.New("invalid email")
	ErrEmptyCart          = errors.New("order must contain at least one item")
	ErrInvalidLineItem    = errors.New("invalid line item")
	ErrInvalidStatus      = errors.New("invalid order status")
	ErrStatusConflict     = errors.New("order status does not allow transition")
)
