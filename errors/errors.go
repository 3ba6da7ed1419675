package errors

import (
	stderrors "errors"
	"fmt"
)

// AppError is the unified application error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// Is matches any *AppError carrying the same code, so that
// errors.Is(err, &AppError{Code: ErrCodeUnsupportedRole}) works on wrapped chains.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetails merges the provided details into the error and returns the receiver.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// CodeOf returns the code of the first *AppError in err's chain, or "" if there is none.
func CodeOf(err error) ErrorCode {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// IsCode reports whether err's chain contains an *AppError with the given code.
func IsCode(err error, code ErrorCode) bool {
	return err != nil && CodeOf(err) == code
}

// --- Common Error Constructors ---

// UnsupportedRole creates an error for a role that cannot be rendered.
// family may be empty when the role is rejected before a family is known.
func UnsupportedRole(role, family string) *AppError {
	details := map[string]any{"role": role}
	msg := fmt.Sprintf("the role %q is not supported; supported roles are [system, user, assistant]", role)
	if family != "" {
		details["family"] = family
		msg = fmt.Sprintf("the role %q is not supported by the %s template", role, family)
	}
	return &AppError{Code: ErrCodeUnsupportedRole, Message: msg, Details: details}
}

// InvariantViolation creates an error for a failed rendering post-condition.
func InvariantViolation(check, reason string) *AppError {
	return &AppError{
		Code: ErrCodeInvariantViolation, Message: reason,
		Details: map[string]any{"check": check},
	}
}

// InvalidConversation creates an error for a message sequence that cannot be rendered.
func InvalidConversation(reason string) *AppError {
	return &AppError{Code: ErrCodeInvalidConversation, Message: reason}
}

// InvalidTemplate creates an error for a family definition that fails validation.
func InvalidTemplate(family, reason string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidTemplate, Message: fmt.Sprintf("invalid template %q: %s", family, reason),
		Details: map[string]any{"family": family},
	}
}

// MalformedInput creates an error for an input record that cannot be scored.
func MalformedInput(reason string) *AppError {
	return &AppError{Code: ErrCodeMalformedInput, Message: reason}
}

// NotFound creates a new AppError for a resource that was not found.
func NotFound(resource, id string) *AppError {
	details := map[string]any{"resource": resource}
	if id != "" {
		details["id"] = id
	}
	return &AppError{
		Code: ErrCodeNotFound, Message: fmt.Sprintf("unknown %s %q", resource, id),
		Details: details,
	}
}

// Internal creates a new AppError for an unexpected failure.
func Internal(cause error) *AppError {
	return &AppError{Code: ErrCodeInternal, Message: "an unexpected error occurred", Cause: cause}
}
