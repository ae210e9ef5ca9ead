package user_signup_post

import (
	"errors"
	"net/http"

	"canteen/internal/dto"
	"canteen/internal/entities"
	"canteen/internal/pkg/httpjson"
	"canteen/internal/service/user"
	"canteen/pkg/logger"
)

const (
	msgSignupSuccessful = "Signup successful"
	msgUserExists       = "User already exists"
	msgInvalidRequest   = "Invalid signup request"
	msgServerError      = "Server error"
)

type Handler struct {
	log       handlerLogger
	service   Service
	validator Validator
}

func New(log handlerLogger, service Service, validator Validator) *Handler {
	handlerLog := log.With(logger.NewField("handler", "user_signup_post"))

	return &Handler{
		log:       handlerLog,
		service:   service,
		validator: validator,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req dto.UserSignupRequest
	if err := httpjson.Decode(r, &req); err != nil {
		h.reply(w, http.StatusBadRequest, msgInvalidRequest)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		h.log.With(logger.NewField("error", err)).Debug("signup request rejected")
		h.reply(w, http.StatusBadRequest, msgInvalidRequest)
		return
	}

	role := entities.UserStudent
	created, err := h.service.Signup(r.Context(), entities.UserModify{
		Name:     &req.Name,
		Email:    &req.Email,
		Password: &req.Password,
		Role:     &role,
	})
	if err != nil {
		switch {
		case errors.Is(err, user.ErrUserAlreadyExists):
			h.reply(w, http.StatusBadRequest, msgUserExists)
		case errors.Is(err, user.ErrMissingRequiredFields),
			errors.Is(err, user.ErrInvalidName),
			errors.Is(err, user.ErrInvalidEmail),
			errors.Is(err, user.ErrInvalidPassword):
			h.reply(w, http.StatusBadRequest, msgInvalidRequest)
		default:
			h.log.With(logger.NewField("error", err)).Error("signup failed")
			h.reply(w, http.StatusInternalServerError, msgServerError)
		}
		return
	}

	err = httpjson.Write(w, http.StatusCreated, dto.UserResponse{
		Message: msgSignupSuccessful,
		User:    dto.FromUser(created),
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
