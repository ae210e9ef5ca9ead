package order_post

import (
	"errors"
	"net/http"

	"canteen/internal/dto"
	"canteen/internal/entities"
	"canteen/internal/pkg/httpjson"
	"canteen/internal/service/order"
	"canteen/pkg/logger"

	"github.com/shopspring/decimal"
)

const (
	msgOrderPlaced    = "Order placed successfully"
	msgInvalidRequest = "Invalid order request"
	msgUserNotFound   = "User not found"
	msgServerError    = "Server error"
)

type Handler struct {
	log       handlerLogger
	service   Service
	validator Validator
}

func New(log handlerLogger, service Service, validator Validator) *Handler {
	handlerLog := log.With(logger.NewField("handler", "order_post"))

	return &Handler{
		log:       handlerLog,
		service:   service,
		validator: validator,
	}
}

// ServeHTTP оформляет заказ. Присланный totalAmount не отклоняет запрос:
// расхождение с суммой позиций только пишется в лог, а в заказ попадает
// сумма, посчитанная сервисом.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req dto.OrderCreateRequest
	if err := httpjson.Decode(r, &req); err != nil {
		h.reply(w, http.StatusBadRequest, msgInvalidRequest)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		h.log.With(logger.NewField("error", err)).Debug("order request rejected")
		h.reply(w, http.StatusBadRequest, msgInvalidRequest)
		return
	}

	items := dto.ToLineItems(req.Items)
	if req.TotalAmount != nil {
		claimed := decimal.NewFromFloat(*req.TotalAmount).Round(2)
		computed := entities.OrderTotal(items).Round(2)
		if !claimed.Equal(computed) {
			h.log.With(
				logger.NewField("user_email", req.UserEmail),
				logger.NewField("client_total", claimed.StringFixed(2)),
				logger.NewField("items_total", computed.StringFixed(2)),
			).Warn("client order total differs from items")
		}
	}

	placed, err := h.service.PlaceOrder(r.Context(), entities.OrderPlacement{
		UserEmail: req.UserEmail,
		Items:     items,
	})
	if err != nil {
		switch {
		case errors.Is(err, order.ErrUserNotFound):
			h.reply(w, http.StatusNotFound, msgUserNotFound)
		case errors.Is(err, order.ErrInvalidEmail),
			errors.Is(err, order.ErrEmptyCart),
			errors.Is(err, order.ErrInvalidLineItem):
			h.reply(w, http.StatusBadRequest, msgInvalidRequest)
		default:
			h.log.With(
				logger.NewField("error", err),
				logger.NewField("user_email", req.UserEmail),
			).Error("place order failed")
			h.reply(w, http.StatusInternalServerError, msgServerError)
		}
		return
	}

	err = httpjson.Write(w, http.StatusCreated, dto.OrderCreateResponse{
		Message:  msgOrderPlaced,
		NewOrder: dto.FromOrder(placed),
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
