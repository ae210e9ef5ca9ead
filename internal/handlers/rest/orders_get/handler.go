package orders_get

import (
	"errors"
	"net/http"
	"strings"

	"canteen/internal/dto"
	"canteen/internal/entities"
	"canteen/internal/pkg/httpjson"
	"canteen/internal/service/order"
	"canteen/pkg/logger"
)

type Handler struct {
	log     handlerLogger
	service Service
}

func New(log handlerLogger, service Service) *Handler {
	handlerLog := log.With(logger.NewField("handler", "orders_get"))

	return &Handler{
		log:     handlerLog,
		service: service,
	}
}

// ServeHTTP - дашборд персонала. Статусы принимаются повтором параметра
// (?status=PLACED&status=READY) или через запятую. Без фильтра сервис
// отдает активные заказы, старые первыми.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.GetOrders(r.Context(), entities.OrderFilter{
		Statuses: parseStatuses(r.URL.Query()["status"]),
	})
	if err != nil {
		if errors.Is(err, order.ErrInvalidStatus) {
			h.reply(w, http.StatusBadRequest, "Invalid status filter")
			return
		}
		h.log.With(logger.NewField("error", err)).Error("get orders failed")
		h.reply(w, http.StatusInternalServerError, "Server error")
		return
	}

	if err := httpjson.Write(w, http.StatusOK, dto.FromOrders(orders)); err != nil {
		h.log.With(logger.NewField("error", err)).Error("encode JSON response")
	}
}

func (h *Handler) reply(w http.ResponseWriter, status int, message string) {
	if err := httpjson.Message(w, status, message); err != nil {
		h.log.With(logger.NewField("error", err)).Error("encode JSON response")
	}
}

func parseStatuses(values []string) []entities.OrderStatus {
	var statuses []entities.OrderStatus
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			part = strings.ToUpper(strings.TrimSpace(part))
			if part == "" {
				continue
			}
			statuses = append(statuses, entities.OrderStatus(part))
		}
	}
	return statuses
}
