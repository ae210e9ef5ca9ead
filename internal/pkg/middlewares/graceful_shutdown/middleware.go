package graceful_shutdown

import (
	"context"
	"net/http"
	"sync/atomic"

	"canteen/internal/pkg/httpjson"
)

// Middleware отвечает 503, когда сервис уже останавливается и ongoingCtx отменен.
func Middleware(isShuttingDown *atomic.Bool, ongoingCtx context.Context) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-ongoingCtx.Done():
				if isShuttingDown.Load() {
					w.Header().Set("Connection", "close")
					_ = httpjson.Message(w, http.StatusServiceUnavailable, "Service is shutting down")
					return
				}
			default:
			}
			next.ServeHTTP(w, r)
		})
	}
}
