package canteen

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrOrderNotFound     = errors.New("order not found")
	ErrInvalidRequest    = errors.New("invalid request")
	ErrRateLimited       = errors.New("rate limited")
	ErrUnavailable       = errors.New("api unavailable")
	ErrUnexpectedStatus  = errors.New("unexpected response status")
)

// StatusError - ответ API с кодом не из 2xx. Message - текст из тела
// {"message": "..."}, пользователю его не показываем.
type StatusError struct {
	Code    int
	Message string
	kind    error
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: %d %q", e.kind, e.Code, e.Message)
}

func (e *StatusError) Unwrap() error {
	return e.kind
}

func newStatusError(code int, message string) *StatusError {
	return &StatusError{Code: code, Message: message, kind: classify(code, message)}
}

func classify(code int, message string) error {
	switch {
	case code == http.StatusNotFound && message == "Order not found":
		return ErrOrderNotFound
	case code == http.StatusNotFound:
		return ErrUserNotFound
	case code == http.StatusBadRequest && message == "User already exists":
		return ErrUserAlreadyExists
	case code == http.StatusBadRequest:
		return ErrInvalidRequest
	case code == http.StatusTooManyRequests:
		return ErrRateLimited
	case code == http.StatusBadGateway,
		code == http.StatusServiceUnavailable,
		code == http.StatusGatewayTimeout:
		return ErrUnavailable
	default:
		return ErrUnexpectedStatus
	}
}
