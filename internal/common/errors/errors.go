package errors

import (
	"fmt"
	"runtime"
	"strings"
	"time"
)

// ErrorCode is a stable, machine readable error identifier
type ErrorCode string

const (
	// General
	ErrCodeInternal     ErrorCode = "INTERNAL_ERROR"
	ErrCodeValidation   ErrorCode = "VALIDATION_ERROR"
	ErrCodeNotFound     ErrorCode = "NOT_FOUND"
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrCodeForbidden    ErrorCode = "FORBIDDEN"
	ErrCodeConflict     ErrorCode = "CONFLICT"
	ErrCodeBadRequest   ErrorCode = "BAD_REQUEST"

	// Lottery
	ErrCodeLotteryNotFound ErrorCode = "LOTTERY_NOT_FOUND"
	ErrCodeLotteryPhase    ErrorCode = "LOTTERY_PHASE"
	ErrCodeLotteryState    ErrorCode = "LOTTERY_STATE"
	ErrCodeNotAuthorized   ErrorCode = "NOT_AUTHORIZED"

	// Storage
	ErrCodeStorageError     ErrorCode = "STORAGE_ERROR"
	ErrCodeStorageConflict  ErrorCode = "STORAGE_CONFLICT"
	ErrCodeConnectionFailed ErrorCode = "CONNECTION_FAILED"
)

// AppError is a typed application error rendered to API clients
type AppError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   map[string]interface{} `json:"details,omitempty"`
	Context   map[string]string      `json:"context,omitempty"`
	Stack     []string               `json:"-"`
	Timestamp time.Time              `json:"timestamp"`
	RequestID string                 `json:"request_id,omitempty"`
	Caller    string                 `json:"caller,omitempty"`
	Cause     error                  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// IsNotFound reports a missing resource
func (e *AppError) IsNotFound() bool {
	return e.Code == ErrCodeNotFound || e.Code == ErrCodeLotteryNotFound
}

// IsUnauthorized reports an identity or permission failure
func (e *AppError) IsUnauthorized() bool {
	return e.Code == ErrCodeUnauthorized || e.Code == ErrCodeForbidden || e.Code == ErrCodeNotAuthorized
}

// IsRejection reports a lottery rule rejecting the call
func (e *AppError) IsRejection() bool {
	return e.Code == ErrCodeLotteryPhase || e.Code == ErrCodeLotteryState
}

// IsInternal reports a server side failure
func (e *AppError) IsInternal() bool {
	return e.Code == ErrCodeInternal ||
		e.Code == ErrCodeStorageError ||
		e.Code == ErrCodeConnectionFailed
}

func (e *AppError) WithContext(key, value string) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]string)
	}
	e.Context[key] = value
	return e
}

func (e *AppError) WithDetail(key string, value interface{}) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

func (e *AppError) WithRequestID(requestID string) *AppError {
	e.RequestID = requestID
	return e
}

func (e *AppError) WithCaller(caller string) *AppError {
	e.Caller = caller
	return e
}

func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:      code,
		Message:   message,
		Timestamp: time.Now(),
		Stack:     getStackTrace(),
	}
}

func Wrap(err error, code ErrorCode, message string) *AppError {
	appErr := New(code, message)
	appErr.Cause = err
	return appErr
}

func getStackTrace() []string {
	var stack []string
	for i := 2; ; i++ {
		pc, file, line, ok := runtime.Caller(i)
		if !ok {
			break
		}
		fn := runtime.FuncForPC(pc)
		if fn == nil {
			continue
		}
		if strings.Contains(fn.Name(), "internal/common/errors") {
			continue
		}
		stack = append(stack, fmt.Sprintf("%s:%d %s", file, line, fn.Name()))
		if len(stack) >= 10 {
			break
		}
	}
	return stack
}

func NewValidationError(field, reason string) *AppError {
	return New(ErrCodeValidation, fmt.Sprintf("Validation failed for field '%s': %s", field, reason)).
		WithDetail("field", field).
		WithDetail("reason", reason)
}

func NewLotteryNotFoundError(lotteryID string) *AppError {
	return New(ErrCodeLotteryNotFound, fmt.Sprintf("Lottery not found: %s", lotteryID)).
		WithDetail("lottery_id", lotteryID)
}

func NewUnauthorizedError(reason string) *AppError {
	return New(ErrCodeUnauthorized, fmt.Sprintf("Unauthorized: %s", reason)).
		WithDetail("reason", reason)
}

func NewForbiddenError(reason string) *AppError {
	return New(ErrCodeForbidden, fmt.Sprintf("Forbidden: %s", reason)).
		WithDetail("reason", reason)
}

// NewRejectionError wraps a lottery rule violation; the message is the
// rule's own text so callers see the rejection verbatim.
func NewRejectionError(code ErrorCode, kind string, err error) *AppError {
	appErr := New(code, err.Error()).WithDetail("kind", kind)
	appErr.Cause = err
	return appErr
}

func NewStorageError(operation string, err error) *AppError {
	return Wrap(err, ErrCodeStorageError, fmt.Sprintf("Storage operation failed: %s", operation)).
		WithDetail("operation", operation)
}

// AsAppError finds an AppError anywhere in err's chain
func AsAppError(err error) (*AppError, bool) {
	for err != nil {
		if appErr, ok := err.(*AppError); ok {
			return appErr, true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return nil, false
		}
		err = u.Unwrap()
	}
	return nil, false
}
