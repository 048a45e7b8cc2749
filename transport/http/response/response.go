package response

import (
	"encoding/json"
	"net/http"

	"taskpad/shared/constant"
	gDto "taskpad/shared/dto"
	"taskpad/shared/failure"
	"taskpad/shared/logger"
)

// Success is the envelope for every successful response. Data is omitted for
// message-only results; Meta is only present on paginated listings.
type Success struct {
	StatusCode int       `json:"statusCode"`
	Message    string    `json:"message"`
	Data       any       `json:"data,omitempty"`
	Meta       *gDto.Meta `json:"meta,omitempty"`
}

// Error is the envelope for every failed response. Data is always null.
type Error struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Error      string `json:"error"`
	Data       any    `json:"data"`
}

// WithMessage sends a success envelope carrying only a message
func WithMessage(writer http.ResponseWriter, code int, message string) {
	write(writer, code, Success{
		StatusCode: code,
		Message:    message,
	})
}

// WithJSON sends a success envelope wrapping the handler result
func WithJSON(writer http.ResponseWriter, code int, jsonPayload interface{}) {
	write(writer, code, Success{
		StatusCode: code,
		Message:    constant.ResponseMessageSuccess,
		Data:       jsonPayload,
	})
}

// WithPaginatedJSON sends a success envelope with a pagination meta block
func WithPaginatedJSON(writer http.ResponseWriter, code int, jsonPayload interface{}, meta gDto.Meta) {
	write(writer, code, Success{
		StatusCode: code,
		Message:    constant.ResponseMessageSuccess,
		Data:       jsonPayload,
		Meta:       &meta,
	})
}

// WithError translates a failure into the error envelope. This is the single
// point where internal failures become the wire-visible error taxonomy;
// untyped errors surface as a generic internal error.
func WithError(writer http.ResponseWriter, err error) {
	code := failure.GetCode(err)

	message := failure.GetMessage(err)
	if message == "" {
		message = constant.ResponseMessageInternalError
	}

	write(writer, code, Error{
		StatusCode: code,
		Message:    message,
		Error:      failure.GetKind(err),
		Data:       nil,
	})
}

// WithPreparingShutdown sends a default response for when the server is preparing to shut down
func WithPreparingShutdown(writer http.ResponseWriter) {
	WithError(writer, &failure.Failure{
		Code:    http.StatusServiceUnavailable,
		Kind:    http.StatusText(http.StatusServiceUnavailable),
		Message: "Server preparing to shut down",
	})
}

// WithUnhealthy sends a default response for when the server is unhealthy
func WithUnhealthy(writer http.ResponseWriter) {
	WithError(writer, &failure.Failure{
		Code:    http.StatusServiceUnavailable,
		Kind:    http.StatusText(http.StatusServiceUnavailable),
		Message: "Server unhealthy",
	})
}

func write(writer http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		logger.ErrorWithStack(err)

		return
	}

	writer.Header().Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	writer.WriteHeader(code)
	_, err = writer.Write(response)

	if err != nil {
		logger.ErrorWithStack(err)
	}
}
