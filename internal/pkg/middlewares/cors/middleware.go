package cors

import (
	"net/http"

	"github.com/gorilla/handlers"
)

const maxAgeSeconds = 600

var (
	allowedMethods = []string{
		http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodHead, http.MethodOptions,
	}
	allowedHeaders = []string{"Content-Type", "Authorization"}
)

// Middleware разрешает запросы из одного origin фронтенда. Пустой
// allowedOrigin выключает CORS, "*" разрешает любой origin.
// Preflight отвечает 204 и дальше по цепочке не идет.
func Middleware(allowedOrigin string) func(http.Handler) http.Handler {
	if allowedOrigin == "" {
		return func(next http.Handler) http.Handler { return next }
	}

	return handlers.CORS(
		handlers.AllowedOrigins([]string{allowedOrigin}),
		handlers.AllowedMethods(allowedMethods),
		handlers.AllowedHeaders(allowedHeaders),
		handlers.OptionStatusCode(http.StatusNoContent),
		handlers.MaxAge(maxAgeSeconds),
	)
}
