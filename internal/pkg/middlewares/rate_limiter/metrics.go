package rate_limiter

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RejectedTotal считает ответы 429 по шаблону маршрута, не по сырому пути.
var RejectedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "canteen",
		Subsystem: "http",
		Name:      "rate_limited_requests_total",
		Help:      "Requests rejected by the per-client rate limiter",
	},
	[]string{"method", "route"},
)
