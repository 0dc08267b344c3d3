package apiutil

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"
)

// FieldError reports an invalid query or body field.
type FieldError struct {
	Field  string
	Reason string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

type HandlerError struct {
	Status  int
	Message string
	Err     error
}

func (e HandlerError) Error() string {
	return e.Message
}

func (e HandlerError) Unwrap() error {
	return e.Err
}

// ErrorResponse is the JSON body of every failed API request.
type ErrorResponse struct {
	Error     string `json:"error"`
	Field     string `json:"field,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, payload any) error {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	if err := encoder.Encode(payload); err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err := w.Write(buf.Bytes())
	return err
}

// WriteError maps err to a status and writes it as an ErrorResponse. Field
// errors are 400, HandlerErrors carry their own status, anything else is a
// logged 500 whose details stay out of the response.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	logger := log.Ctx(r.Context())
	resp := ErrorResponse{RequestID: w.Header().Get("X-Request-ID")}
	status := http.StatusInternalServerError

	var fieldErr FieldError
	var herr HandlerError
	switch {
	case errors.As(err, &fieldErr):
		status = http.StatusBadRequest
		resp.Error = fieldErr.Error()
		resp.Field = fieldErr.Field
	case errors.As(err, &herr):
		status = herr.Status
		resp.Error = herr.Message
		if status >= http.StatusInternalServerError {
			logger.Error().Err(herr.Err).Str("path", r.URL.Path).Msg(herr.Message)
		}
	default:
		resp.Error = http.StatusText(status)
		logger.Error().Err(err).Str("path", r.URL.Path).Msg("Request failed")
	}

	if writeErr := WriteJSON(w, status, resp); writeErr != nil {
		logger.Error().Err(writeErr).Msg("Failed to write error response")
	}
}
