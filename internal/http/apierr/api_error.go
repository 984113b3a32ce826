// Package apierr maps application errors onto the HTTP error envelope.
package apierr

import (
	"errors"
	"net/http"
	"sort"

	"github.com/stocklight/stocklight/internal/form"
	"github.com/stocklight/stocklight/pkg/ptr"
	"github.com/stocklight/stocklight/pkg/zerror"
)

// FieldError is one per-field validation message.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ErrorResponse is the error envelope for the API.
type ErrorResponse struct {
	Code    string        `json:"code"`
	Message string        `json:"message"`
	Details *[]FieldError `json:"details,omitempty"`

	// StatusCode is the status code for the error response.
	StatusCode int `json:"-"`
}

var InternalServerErr = ErrorResponse{
	Code:       "internalServerError",
	Message:    "an unknown error occurred",
	StatusCode: http.StatusInternalServerError,
}

func New(err error) ErrorResponse {
	var fieldErrs form.FieldErrors
	if errors.As(err, &fieldErrs) {
		details := make([]FieldError, 0, len(fieldErrs))
		for field, msg := range fieldErrs {
			details = append(details, FieldError{Field: field, Message: msg})
		}
		sort.Slice(details, func(i, j int) bool { return details[i].Field < details[j].Field })

		return ErrorResponse{
			Code:       "validationError",
			Message:    "validation error",
			Details:    ptr.New(details),
			StatusCode: http.StatusBadRequest,
		}
	}

	var zErr zerror.ZError
	if errors.As(err, &zErr) {
		return ErrorResponse{
			Code:       zErr.Code(),
			Message:    zErr.Msg(),
			StatusCode: statusToHTTPStatus(zErr.Status()),
		}
	}

	return InternalServerErr
}

func statusToHTTPStatus(status zerror.Status) int {
	switch status {
	case zerror.StatusNotFound:
		return http.StatusNotFound
	case zerror.StatusUnprocessableEntity:
		return http.StatusUnprocessableEntity
	case zerror.StatusConflict:
		return http.StatusConflict
	case zerror.StatusBadRequest, zerror.StatusValidationFailed:
		return http.StatusBadRequest
	case zerror.StatusServiceUnavailable:
		return http.StatusServiceUnavailable
	case zerror.StatusUnknown, zerror.StatusInternalServerError:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
