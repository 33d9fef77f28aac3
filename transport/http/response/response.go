package response

import (
	"encoding/json"
	"net/http"

	"hotelledger/shared/constant"
	"hotelledger/shared/failure"

	"github.com/rs/zerolog/log"
)

// Data wraps every successful payload.
type Data[T any] struct {
	Data *T `json:"data,omitempty"`
}

// Error is the body of every failed request. Kind lets clients branch without parsing text.
type Error struct {
	Error *string      `json:"error,omitempty"`
	Kind  failure.Kind `json:"kind,omitempty"`
}

type Message struct {
	Message *string `json:"message,omitempty"`
}

func WithMessage(writer http.ResponseWriter, code int, message string) {
	write(writer, code, Message{Message: &message})
}

func WithJSON(writer http.ResponseWriter, code int, payload any) {
	write(writer, code, Data[any]{Data: &payload})
}

// WithError derives the status from the failure carried by err; plain errors become 500.
func WithError(writer http.ResponseWriter, err error) {
	text := err.Error()

	write(writer, failure.GetCode(err), Error{Error: &text, Kind: failure.GetKind(err)})
}

func WithRequestLimitExceeded(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusTooManyRequests, constant.ResponseErrorRequestLimitExceeded)
}

func WithPreparingShutdown(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorPrepareShutdown)
}

func WithUnhealthy(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorUnhealthy)
}

// write marshals before touching the writer so an encoding failure can still become a 500.
func write(writer http.ResponseWriter, code int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		log.Error().Err(err).Int("status", code).Msg("failed to encode response")

		code = http.StatusInternalServerError
		body = []byte(`{"error":"failed to encode response","kind":"internal"}`)
	}

	writer.Header().Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	writer.WriteHeader(code)

	if _, err := writer.Write(body); err != nil {
		log.Warn().Err(err).Msg("failed to write response")
	}
}
