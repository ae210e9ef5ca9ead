package ping_get

import (
	"net/http"

	"canteen/internal/dto"
	"canteen/internal/pkg/httpjson"
	"canteen/pkg/logger"
)

type Handler struct {
	log handlerLogger
}

func New(log handlerLogger) *Handler {
	return &Handler{
		log: log.With(logger.NewField("handler", "ping_get")),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	message := "pong"
	if err := httpjson.Write(w, http.StatusOK, dto.PingResponse{Message: &message}); err != nil {
		h.log.With(logger.NewField("error", err)).Error("encode JSON response")
	}
}
