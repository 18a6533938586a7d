package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"charity-lottery-backend/internal/common/errors"
)

const (
	requestIDKey    = "request_id"
	RequestIDHeader = "X-Request-ID"
)

// Recovery turns panics into INTERNAL_ERROR responses
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		requestID := getRequestID(c)

		log.Error().
			Str("request_id", requestID).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Interface("panic", recovered).
			Str("stack", string(debug.Stack())).
			Msg("Panic recovered")

		appErr := errors.New(errors.ErrCodeInternal, "Internal server error").
			WithDetail("panic", fmt.Sprintf("%v", recovered))

		SendError(c, appErr)
		c.Abort()
	})
}

// RequestID propagates or assigns X-Request-ID
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		c.Set(requestIDKey, requestID)
		c.Header(RequestIDHeader, requestID)
		c.Next()
	}
}

// ErrorResponse is the body of every failed API call
type ErrorResponse struct {
	Success   bool             `json:"success"`
	Error     *errors.AppError `json:"error"`
	Timestamp time.Time        `json:"timestamp"`
	RequestID string           `json:"request_id"`
	Path      string           `json:"path,omitempty"`
	Method    string           `json:"method,omitempty"`
}

// SendError writes appErr as JSON with the matching status code
func SendError(c *gin.Context, appErr *errors.AppError) {
	requestID := getRequestID(c)

	appErr.WithRequestID(requestID).
		WithContext("path", c.Request.URL.Path).
		WithContext("method", c.Request.Method)
	if caller, ok := CallerFrom(c); ok {
		appErr.WithCaller(caller.Hex())
	}

	response := ErrorResponse{
		Success:   false,
		Error:     appErr,
		Timestamp: time.Now(),
		RequestID: requestID,
		Path:      c.Request.URL.Path,
		Method:    c.Request.Method,
	}

	logError(appErr, c)
	c.JSON(HTTPStatus(appErr), response)
}

// HTTPStatus maps an error code to its HTTP status
func HTTPStatus(appErr *errors.AppError) int {
	switch appErr.Code {
	case errors.ErrCodeValidation, errors.ErrCodeBadRequest:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeLotteryNotFound:
		return http.StatusNotFound
	case errors.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case errors.ErrCodeForbidden, errors.ErrCodeNotAuthorized:
		return http.StatusForbidden
	case errors.ErrCodeConflict, errors.ErrCodeLotteryPhase, errors.ErrCodeLotteryState, errors.ErrCodeStorageConflict:
		return http.StatusConflict
	case errors.ErrCodeConnectionFailed:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func logError(appErr *errors.AppError, c *gin.Context) {
	var event *zerolog.Event
	switch {
	case appErr.IsInternal():
		event = log.Error()
	case appErr.IsUnauthorized():
		event = log.Warn()
	default:
		event = log.Info()
	}

	event = event.
		Str("request_id", getRequestID(c)).
		Str("method", c.Request.Method).
		Str("path", c.Request.URL.Path).
		Str("error_code", string(appErr.Code)).
		Str("error_message", appErr.Message)

	if appErr.Caller != "" {
		event = event.Str("caller", appErr.Caller)
	}
	if len(appErr.Details) > 0 {
		event = event.Interface("details", appErr.Details)
	}
	if appErr.Cause != nil {
		event = event.Err(appErr.Cause)
	}

	switch {
	case appErr.IsInternal():
		event.Msg("Internal error occurred")
	case appErr.IsUnauthorized():
		event.Msg("Unauthorized call")
	case appErr.IsRejection():
		event.Msg("Lottery call rejected")
	case appErr.IsNotFound():
		event.Msg("Resource not found")
	default:
		event.Msg("Request failed")
	}
}

func getRequestID(c *gin.Context) string {
	if requestID, exists := c.Get(requestIDKey); exists {
		if id, ok := requestID.(string); ok {
			return id
		}
	}
	return "unknown"
}

// Errors renders the last error a handler attached with c.Error
func Errors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		if appErr, ok := errors.AsAppError(err); ok {
			SendError(c, appErr)
			return
		}

		SendError(c, errors.Wrap(err, errors.ErrCodeInternal, "Handler error occurred"))
	}
}
