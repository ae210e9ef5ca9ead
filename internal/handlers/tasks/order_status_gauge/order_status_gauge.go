package order_status_gauge

import (
	"context"
	"time"

	"canteen/internal/entities"
	"canteen/pkg/logger"

	"github.com/prometheus/client_golang/prometheus"
)

var allStatuses = []entities.OrderStatus{
	entities.OrderPlaced,
	entities.OrderPreparing,
	entities.OrderReady,
	entities.OrderCompleted,
	entities.OrderCancelled,
}

// OrderStatusGauge периодически пересчитывает заказы по статусам и
// выставляет gauge canteen_orders{status}.
type OrderStatusGauge struct {
	log      taskLogger
	service  Service
	gauge    *prometheus.GaugeVec
	interval time.Duration
}

func NewOrderStatusGauge(log taskLogger, service Service, gauge *prometheus.GaugeVec, interval time.Duration) *OrderStatusGauge {
	return &OrderStatusGauge{
		log:      log,
		service:  service,
		gauge:    gauge,
		interval: interval,
	}
}

func (g *OrderStatusGauge) TTL() time.Duration {
	return g.interval
}

// Do ставит каждому статусу актуальное значение. Статусы, которых нет в
// выборке, обнуляются, иначе gauge держал бы прошлое значение.
func (g *OrderStatusGauge) Do(ctx context.Context) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, g.interval)
	defer cancel()

	counts, err := g.service.CountByStatus(ctxWithTimeout)
	if err != nil {
		return err
	}

	var total int64
	for _, status := range allStatuses {
		g.gauge.WithLabelValues(status.String()).Set(float64(counts[status]))
		total += counts[status]
	}

	g.log.With(
		logger.NewField("orders", total),
		logger.NewField("active", counts[entities.OrderPlaced]+counts[entities.OrderPreparing]+counts[entities.OrderReady]),
	).Debug("orders by status refreshed")

	return nil
}

func (g *OrderStatusGauge) Info() string {
	return "order status gauge"
}
