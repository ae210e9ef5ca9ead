package httpjson

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"canteen/internal/dto"
)

const maxBodyBytes = 1 << 20

var ErrBadJSON = errors.New("malformed JSON body")

// Write пишет тело в JSON с указанным кодом ответа.
func Write(w http.ResponseWriter, status int, body any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(body)
}

// Message отвечает {"message": "..."}.
func Message(w http.ResponseWriter, status int, message string) error {
	return Write(w, status, dto.MessageResponse{Message: message})
}

// Decode читает тело запроса не больше 1MB и запрещает лишние данные после JSON.
func Decode(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: %w", ErrBadJSON, err)
	}
	if dec.More() {
		return fmt.Errorf("%w: unexpected data after JSON object", ErrBadJSON)
	}
	return nil
}
