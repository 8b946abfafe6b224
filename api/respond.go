package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/arcvista/backend/errs"
	"github.com/rs/zerolog"
)

// envelope is the uniform response shape of every endpoint. Error carries
// debug detail only; callers make no control decisions from it.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

type Responder struct {
	logger zerolog.Logger
}

func NewResponder(logger zerolog.Logger) Responder {
	return Responder{logger}
}

func (r Responder) write(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")

	jsonData, err := json.Marshal(body)
	if err != nil {
		r.logger.Error().Err(err).Msg("error marshaling response data")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(status)
	if _, err := w.Write(jsonData); err != nil {
		r.logger.Error().Err(err).Msg("error writing response")
	}
}

// WriteData writes a success envelope carrying a data payload.
func (r Responder) WriteData(w http.ResponseWriter, status int, data any) {
	r.write(w, status, envelope{Success: true, Data: data})
}

// WriteMessage writes a success envelope carrying only a message.
func (r Responder) WriteMessage(w http.ResponseWriter, status int, message string) {
	r.write(w, status, envelope{Success: true, Message: message})
}

// WriteCreated writes a success envelope with both message and data.
func (r Responder) WriteCreated(w http.ResponseWriter, message string, data any) {
	r.write(w, http.StatusCreated, envelope{Success: true, Message: message, Data: data})
}

// WriteError maps an error onto the failure envelope. Expected errors carry
// their own status code; anything else is a generic 500 with the cause kept
// out of the user-facing message.
func (r Responder) WriteError(w http.ResponseWriter, err error) {
	var apiErr *errs.ApiErr
	if !errors.As(err, &apiErr) {
		r.logger.Error().Msg(err.Error())
		r.write(w, http.StatusInternalServerError, envelope{
			Success: false,
			Message: "An unexpected error occurred",
			Error:   err.Error(),
		})
		return
	}

	body := envelope{
		Success: false,
		Message: apiErr.Error(),
	}
	if apiErr.Cause != nil {
		body.Error = apiErr.GetFullError()
	}

	r.write(w, apiErr.StatusCode, body)
}
