package order_status_patch

import (
	"errors"
	"net/http"
	"strings"

	"canteen/internal/dto"
	"canteen/internal/entities"
	"canteen/internal/pkg/httpjson"
	"canteen/internal/service/order"
	"canteen/pkg/logger"

	"github.com/gorilla/mux"
)

const (
	msgStatusUpdated  = "Order status updated"
	msgOrderNotFound  = "Order not found"
	msgInvalidStatus  = "Invalid order status"
	msgInvalidRequest = "Invalid status update request"
	msgServerError    = "Server error"
)

type Handler struct {
	log       handlerLogger
	service   Service
	validator Validator
}

func New(log handlerLogger, service Service, validator Validator) *Handler {
	handlerLog := log.With(logger.NewField("handler", "order_status_patch"))

	return &Handler{
		log:       handlerLog,
		service:   service,
		validator: validator,
	}
}

// ServeHTTP - ручная смена статуса персоналом. Финальный статус можно
// перезаписать, последняя запись побеждает.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	orderID := mux.Vars(r)["id"]

	var req dto.OrderStatusUpdateRequest
	if err := httpjson.Decode(r, &req); err != nil {
		h.reply(w, http.StatusBadRequest, msgInvalidRequest)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		h.log.With(logger.NewField("error", err)).Debug("status update request rejected")
		h.reply(w, http.StatusBadRequest, msgInvalidRequest)
		return
	}

	status := entities.OrderStatus(strings.ToUpper(strings.TrimSpace(req.Status)))
	updated, err := h.service.UpdateStatus(r.Context(), orderID, status)
	if err != nil {
		switch {
		case errors.Is(err, order.ErrOrderNotFound):
			h.reply(w, http.StatusNotFound, msgOrderNotFound)
		case errors.Is(err, order.ErrInvalidStatus):
			h.reply(w, http.StatusBadRequest, msgInvalidStatus)
		default:
			h.log.With(
				logger.NewField("error", err),
				logger.NewField("order", orderID),
			).Error("update order status failed")
			h.reply(w, http.StatusInternalServerError, msgServerError)
		}
		return
	}

	h.log.With(
		logger.NewField("order", updated.ID),
		logger.NewField("status", updated.Status.String()),
	).Info("order status set by staff")

	err = httpjson.Write(w, http.StatusOK, dto.OrderStatusUpdateResponse{
		Message: msgStatusUpdated,
		Order:   dto.FromOrder(updated),
	})
	if err != nil {
		h.log.With(logger.NewField("error", err)).Error("encode JSON response")
	}
}

func (h *Handler) reply(w http.ResponseWriter, status int, message string) {
	if err := httpjson.Message(w, status, message); err != nil {
		h.log.With(logger.NewField("error", err)).Error("encode JSON response")
	}
}
