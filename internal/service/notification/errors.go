package notification

import "errors"

var (
	ErrInvalidEvent  = errors.New("invalid order status event")
	ErrDeliverFailed = errors.New("notification delivery failed")
)
