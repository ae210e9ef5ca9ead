package orders_by_email_get

import (
	"net/http"

	"canteen/internal/dto"
	"canteen/internal/pkg/httpjson"
	"canteen/pkg/logger"

	"github.com/gorilla/mux"
)

type Handler struct {
	log     handlerLogger
	service Service
}

func New(log handlerLogger, service Service) *Handler {
	handlerLog := log.With(logger.NewField("handler", "orders_by_email_get"))

	return &Handler{
		log:     handlerLog,
		service: service,
	}
}

// ServeHTTP отдает заказы пользователя массивом, новые первыми. Неизвестная
// почта дает пустой массив, а не 404.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	email := mux.Vars(r)["email"]

	orders, err := h.service.GetUserOrders(r.Context(), email)
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
			logger.NewField("user_email", email),
		).Error("get user orders failed")
		if err := httpjson.Message(w, http.StatusInternalServerError, "Server error"); err != nil {
			h.log.With(logger.NewField("error", err)).Error("encode JSON response")
		}
		return
	}

	if err := httpjson.Write(w, http.StatusOK, dto.FromOrders(orders)); err != nil {
		h.log.With(logger.NewField("error", err)).Error("encode JSON response")
	}
}
