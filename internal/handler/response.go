package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/tbraaten/idun/internal/domain"
)

// JSON writes v as a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// ErrorCodeToHTTPStatus maps domain error codes to HTTP status codes.
func ErrorCodeToHTTPStatus(code string) int {
	switch code {
	case domain.EINVALID:
		return http.StatusBadRequest
	case domain.EUNAUTHORIZED:
		return http.StatusUnauthorized
	case domain.ENOTFOUND:
		return http.StatusNotFound
	case domain.EUNPROCESSABLE, domain.EPAYMENT:
		return http.StatusUnprocessableEntity
	case domain.EINTERNAL:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

type errorBody struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

// ErrorResponse writes a domain error as a JSON error envelope. Internal
// error details are logged but never sent to the client.
func ErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	code := domain.ErrorCode(err)
	status := ErrorCodeToHTTPStatus(code)

	if status >= http.StatusInternalServerError {
		slog.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
	}

	JSON(w, status, errorEnvelope{
		Error: errorBody{
			Code:    code,
			Message: domain.ErrorMessage(err),
		},
	})
}

// ValidationErrorResponse writes a field-level validation error. Falls
// back to ErrorResponse when err is not a ValidationError.
func ValidationErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	fields := domain.GetValidationFields(err)
	if fields == nil {
		ErrorResponse(w, r, err)
		return
	}

	JSON(w, http.StatusBadRequest, errorEnvelope{
		Error: errorBody{
			Code:    domain.EINVALID,
			Message: "Validation failed",
			Fields:  fields,
		},
	})
}

// NotFoundResponse writes a generic 404 error.
func NotFoundResponse(w http.ResponseWriter, r *http.Request) {
	ErrorResponse(w, r, &domain.Error{Code: domain.ENOTFOUND, Message: "Resource not found"})
}

// MethodNotAllowedResponse writes a 405 error.
func MethodNotAllowedResponse(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusMethodNotAllowed, errorEnvelope{
		Error: errorBody{
			Code:    domain.EINVALID,
			Message: "Method not allowed",
		},
	})
}

// InternalErrorResponse writes a generic 500 error.
func InternalErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	ErrorResponse(w, r, domain.Internal(err, "", "internal error"))
}
