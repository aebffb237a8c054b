package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/eventbuzzer/tripplanner/internal/domain"
)

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries a machine-readable code and a message fit for a toast.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// statusFor maps a domain sentinel in err's chain to an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrAlreadyPlanned), errors.Is(err, domain.ErrDayNotEmpty):
		return http.StatusConflict
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrDayOutOfRange),
		errors.Is(err, domain.ErrNotEnoughLocated):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrExternalService):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// errorBody builds the ErrorResponse for a service error. Validation errors
// carry their own detail; everything else uses the notice text.
func errorBody(err error) ErrorResponse {
	n := domain.NoticeFor(err)
	msg := n.Message
	if errors.Is(err, domain.ErrValidation) {
		if detail := unwrapMessage(err); detail != "" {
			msg = detail
		}
	}
	return ErrorResponse{Error: ErrorDetail{Code: n.Code, Message: msg}}
}

// requestBody returns an ErrorResponse for a bad request rejected before
// reaching the service layer (e.g. missing or malformed body).
func requestBody(message string) ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{Code: "validation_error", Message: message}}
}

// unwrapMessage extracts the human-readable part of a wrapped validation error.
// e.g. "service.PlannerService.UpdateEntry: validation error: start time must be HH:MM"
// → "start time must be HH:MM"
func unwrapMessage(err error) string {
	marker := domain.ErrValidation.Error() + ": "
	msg := err.Error()
	if i := strings.LastIndex(msg, marker); i >= 0 {
		return msg[i+len(marker):]
	}
	return ""
}
