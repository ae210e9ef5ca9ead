package rate_limiter

import (
	"net"
	"net/http"
	"net/netip"
	"strconv"
	"strings"

	"canteen/internal/pkg/httpjson"
	"canteen/pkg/logger"

	"github.com/gorilla/mux"
)

const exceededMessage = "Rate limit exceeded. Try again later."

// Middleware ограничивает запросы по IP клиента. rateLimiterQPS уходит
// только в заголовок X-RateLimit-Limit. X-Forwarded-For учитывается только
// от адресов из trustedProxies.
func Middleware(
	log handlerLogger,
	rateLimiterQPS int,
	limiter Limiter,
	trustedProxies []netip.Prefix,
) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			clientIP := ClientIP(r, trustedProxies)
			if limiter.Allow(clientIP) {
				next.ServeHTTP(w, r)
				return
			}

			handlerPath := r.URL.Path
			route := mux.CurrentRoute(r)
			if route != nil {
				if template, err := route.GetPathTemplate(); err == nil {
					handlerPath = template
				}
			}

			log.With(
				logger.NewField("method", r.Method),
				logger.NewField("path", r.URL.Path),
				logger.NewField("route", handlerPath),
				logger.NewField("client_ip", clientIP),
			).Warn("rate limit exceeded")

			RejectedTotal.WithLabelValues(r.Method, handlerPath).Inc()

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(rateLimiterQPS))
			w.Header().Set("Retry-After", "1")

			err := httpjson.Message(w, http.StatusTooManyRequests, exceededMessage)
			if err != nil {
				log.With(
					logger.NewField("error", err),
					logger.NewField("path", r.URL.Path),
				).Error("failed to write rate limit response")
			}
		})
	}
}

// ClientIP возвращает адрес клиента. Если соединение пришло не от
// доверенного прокси, это RemoteAddr. Иначе X-Forwarded-For читается справа
// налево до первого адреса, который сам не является доверенным прокси.
func ClientIP(r *http.Request, trustedProxies []netip.Prefix) string {
	peer := remoteHost(r.RemoteAddr)

	addr, err := netip.ParseAddr(peer)
	if err != nil || !trusted(addr, trustedProxies) {
		return peer
	}

	client := addr
	hops := strings.Split(r.Header.Get("X-Forwarded-For"), ",")
	for i := len(hops) - 1; i >= 0; i-- {
		hop, err := netip.ParseAddr(strings.TrimSpace(hops[i]))
		if err != nil {
			break
		}
		client = hop.Unmap()
		if !trusted(client, trustedProxies) {
			break
		}
	}
	return client.String()
}

func remoteHost(remoteAddr string) string {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return remoteAddr
	}
	return host
}

func trusted(addr netip.Addr, trustedProxies []netip.Prefix) bool {
	addr = addr.Unmap()
	for _, p := range trustedProxies {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}
