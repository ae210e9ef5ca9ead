package user_login_post

import (
	"errors"
	"net/http"

	"canteen/internal/dto"
	"canteen/internal/pkg/httpjson"
	"canteen/internal/service/user"
	"canteen/pkg/logger"
)

const (
	msgLoginSuccessful = "Login successful"
	msgUserNotFound    = "User not found"
	msgInvalidRequest  = "Invalid login request"
	msgServerError     = "Server error"
)

// Handler выдает пользователя по почте. Пароль не запрашивается и не
// проверяется, так что знание чужой почты дает вход под этим пользователем.
type Handler struct {
	log       handlerLogger
	service   Service
	validator Validator
}

func New(log handlerLogger, service Service, validator Validator) *Handler {
	handlerLog := log.With(logger.NewField("handler", "user_login_post"))

	return &Handler{
		log:       handlerLog,
		service:   service,
		validator: validator,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req dto.UserLoginRequest
	if err := httpjson.Decode(r, &req); err != nil {
		h.reply(w, http.StatusBadRequest, msgInvalidRequest)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		h.log.With(logger.NewField("error", err)).Debug("login request rejected")
		h.reply(w, http.StatusBadRequest, msgInvalidRequest)
		return
	}

	found, err := h.service.Login(r.Context(), req.Email)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrUserNotFound):
			h.reply(w, http.StatusNotFound, msgUserNotFound)
		case errors.Is(err, user.ErrInvalidEmail):
			h.reply(w, http.StatusBadRequest, msgInvalidRequest)
		default:
			h.log.With(logger.NewField("error", err)).Error("login failed")
			h.reply(w, http.StatusInternalServerError, msgServerError)
		}
		return
	}

	err = httpjson.Write(w, http.StatusOK, dto.UserResponse{
		Message: msgLoginSuccessful,
		User:    dto.FromUser(found),
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
