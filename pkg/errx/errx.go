package errx

import (
	"fmt"
	"net/http"
)

// Type categorizes an error for logging and HTTP mapping purposes
type Type string

const (
	TypeValidation    Type = "VALIDATION"
	TypeNotFound      Type = "NOT_FOUND"
	TypeConflict      Type = "CONFLICT"
	TypeAuthorization Type = "AUTHORIZATION"
	TypeBusiness      Type = "BUSINESS"
	TypeInternal      Type = "INTERNAL"
)

// Code identifies a registered error kind, e.g. "JOB_NOT_FOUND"
type Code string

// Error is the error value returned across service boundaries. It carries a
// stable code, an HTTP status and optional structured details.
type Error struct {
	Code       Code           `json:"code"`
	Type       Type           `json:"type"`
	Message    string         `json:"message"`
	HTTPStatus int            `json:"-"`
	Details    map[string]any `json:"details,omitempty"`
	Cause      error          `json:"-"`
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// WithDetail attaches a structured detail and returns the error for chaining
func (e *Error) WithDetail(key string, value any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// WithCause records the underlying error
func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}

// ToHTTPResponse returns the JSON-serializable body for this error
func (e *Error) ToHTTPResponse() map[string]any {
	body := map[string]any{
		"error":   e.Message,
		"type":    e.Type,
		"code":    e.Code,
		"message": e.Message,
	}
	if len(e.Details) > 0 {
		body["details"] = e.Details
	}
	return body
}

// ============================================================================
// Registry
// ============================================================================

type registration struct {
	errType    Type
	httpStatus int
	message    string
}

// Registry namespaces error codes per domain ("JOB", "USER", ...)
type Registry struct {
	prefix string
	codes  map[Code]registration
}

// NewRegistry creates a registry whose codes are prefixed with the given namespace
func NewRegistry(prefix string) *Registry {
	return &Registry{
		prefix: prefix,
		codes:  make(map[Code]registration),
	}
}

// Register declares an error kind and returns its code handle
func (r *Registry) Register(code string, errType Type, httpStatus int, message string) Code {
	full := Code(r.prefix + "_" + code)
	r.codes[full] = registration{
		errType:    errType,
		httpStatus: httpStatus,
		message:    message,
	}
	return full
}

// New instantiates a fresh error for a registered code
func (r *Registry) New(code Code) *Error {
	reg, ok := r.codes[code]
	if !ok {
		return &Error{
			Code:       code,
			Type:       TypeInternal,
			Message:    "Unknown error",
			HTTPStatus: http.StatusInternalServerError,
		}
	}
	return &Error{
		Code:       code,
		Type:       reg.errType,
		Message:    reg.message,
		HTTPStatus: reg.httpStatus,
	}
}

// Wrap converts an arbitrary error into an *Error of the given type
func Wrap(err error, message string, errType Type) *Error {
	if err == nil {
		return nil
	}
	status := http.StatusInternalServerError
	switch errType {
	case TypeValidation:
		status = http.StatusBadRequest
	case TypeNotFound:
		status = http.StatusNotFound
	case TypeConflict:
		status = http.StatusConflict
	case TypeAuthorization:
		status = http.StatusForbidden
	}
	return &Error{
		Code:       Code("WRAPPED_" + string(errType)),
		Type:       errType,
		Message:    message,
		HTTPStatus: status,
		Cause:      err,
	}
}

// IsType reports whether err is an *Error of the given type
func IsType(err error, errType Type) bool {
	e, ok := err.(*Error)
	return ok && e.Type == errType
}
