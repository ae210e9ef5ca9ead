package retrier

import (
	"context"
	"time"
)

type Retrier interface {
	ExecuteWithContext(ctx context.Context, fn func(context.Context) error) error
}

type (
	ShouldRetryFunc func(error) bool

	// NotifyFunc вызывается после каждой неудачной попытки перед паузой.
	NotifyFunc func(err error, next time.Duration)
)

type Config struct {
	InitialInterval time.Duration
	MaxInterval     time.Duration
	MaxElapsedTime  time.Duration
	Randomization   float64
	Multiplier      float64

	// nil - ретраим все ошибки
	ShouldRetry ShouldRetryFunc
	Notify      NotifyFunc
}
