package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	ResultApplied  = "applied"
	ResultSkipped  = "skipped"
	ResultNotFound = "not_found"
	ResultFailed   = "failed"
)

var (
	OrdersPlacedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "canteen_orders_placed_total",
			Help: "Total number of successfully placed orders",
		},
	)

	OrderStatusTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "canteen_order_status_transitions_total",
			Help: "Order status writes by source (timer, staff), target status and result",
		},
		[]string{"source", "status", "result"},
	)

	OrderStatusTerminalOverwritesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "canteen_order_status_terminal_overwrites_total",
			Help: "Automatic status writes that replaced an already terminal status",
		},
		[]string{"previous_status", "status"},
	)

	OrdersByStatus = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "canteen_orders",
			Help: "Number of stored orders per status",
		},
		[]string{"status"},
	)

	OrderEventsPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "canteen_order_events_published_total",
			Help: "Order status events sent to Kafka by result",
		},
		[]string{"result"},
	)
)

var NotificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "canteen_notifications_total",
		Help: "Notifications produced from order status events by kind and result",
	},
	[]string{"kind", "result"},
)
