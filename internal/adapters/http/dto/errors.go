// Package dto holds the request and response shapes of the dashboard HTTP API.
package dto

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/wine-dashboard/internal/domain"
	"github.com/jsamuelsen/wine-dashboard/internal/platform/logging"
)

// ErrorResponse is the JSON envelope of every failed API call.
type ErrorResponse struct {
	Error   ErrorDetail `json:"error"`
	TraceID string      `json:"traceId,omitempty"`
}

// ErrorDetail carries a machine-readable code, a message safe to show
// and, for rejected widgets, one message per field.
type ErrorDetail struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

const (
	ErrorCodeNotFound    = "NOT_FOUND"
	ErrorCodeValidation  = "VALIDATION_ERROR"
	ErrorCodeUnavailable = "SERVICE_UNAVAILABLE"
	ErrorCodeTimeout     = "TIMEOUT"
	ErrorCodeInternal    = "INTERNAL_ERROR"
)

var statusByCode = map[string]int{
	ErrorCodeNotFound:    http.StatusNotFound,
	ErrorCodeValidation:  http.StatusBadRequest,
	ErrorCodeUnavailable: http.StatusServiceUnavailable,
	ErrorCodeTimeout:     http.StatusGatewayTimeout,
	ErrorCodeInternal:    http.StatusInternalServerError,
}

// Store paths and driver errors stay in the logs.
const (
	messageUnavailable = "wine data is temporarily unavailable"
	messageTimeout     = "request timeout exceeded"
	messageInternal    = "an internal error occurred"
)

// NewErrorResponse builds an envelope without details.
func NewErrorResponse(code, message string) *ErrorResponse {
	return &ErrorResponse{Error: ErrorDetail{Code: code, Message: message}}
}

// WithTraceID stamps the envelope and returns it.
func (e *ErrorResponse) WithTraceID(traceID string) *ErrorResponse {
	e.TraceID = traceID
	return e
}

// Status is the HTTP status for the envelope's code.
func (e *ErrorResponse) Status() int {
	if s, ok := statusByCode[e.Error.Code]; ok {
		return s
	}

	return http.StatusInternalServerError
}

// FromDomainError classifies err into a status and envelope. A nil err is 200.
func FromDomainError(err error) (int, *ErrorResponse) {
	if err == nil {
		return http.StatusOK, nil
	}

	resp := classify(err)

	return resp.Status(), resp
}

func classify(err error) *ErrorResponse {
	if IsBindingError(err) {
		resp := NewErrorResponse(ErrorCodeValidation, "request validation failed")
		if details := ValidationErrors(err); len(details) > 0 {
			resp.Error.Details = details
			return resp
		}
	}

	switch domain.KindOf(err) {
	case domain.KindNotFound:
		return NewErrorResponse(ErrorCodeNotFound, err.Error())

	case domain.KindValidation:
		resp := NewErrorResponse(ErrorCodeValidation, err.Error())

		var derr *domain.Error
		if errors.As(err, &derr) && derr.Subject != "" {
			resp.Error.Details = map[string]string{derr.Subject: derr.Detail}
		}

		return resp

	case domain.KindUnavailable:
		return NewErrorResponse(ErrorCodeUnavailable, messageUnavailable)
	}

	switch {
	case IsBindingError(err):
		return NewErrorResponse(ErrorCodeValidation, "request validation failed")
	case errors.Is(err, context.DeadlineExceeded):
		return NewErrorResponse(ErrorCodeTimeout, messageTimeout)
	default:
		return NewErrorResponse(ErrorCodeInternal, messageInternal)
	}
}

// GetTraceID returns the active span's trace ID, falling back to the
// request ID header.
func GetTraceID(c *gin.Context) string {
	if c.Request == nil {
		return ""
	}

	if sc := trace.SpanFromContext(c.Request.Context()).SpanContext(); sc.HasTraceID() {
		return sc.TraceID().String()
	}

	return c.GetHeader("X-Request-ID")
}

// HandleError writes the envelope for err. Server-side failures are logged
// with the full error first.
func HandleError(c *gin.Context, err error) {
	status, resp := FromDomainError(err)
	resp.WithTraceID(GetTraceID(c))

	if status >= http.StatusInternalServerError {
		logging.FromContext(c.Request.Context()).Error("request failed",
			slog.Int("status", status),
			slog.String("error", err.Error()),
			slog.String("trace_id", resp.TraceID),
		)
	}

	c.JSON(status, resp)
}
