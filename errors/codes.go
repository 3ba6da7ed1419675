package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Rendering errors
const (
	// ErrCodeUnsupportedRole indicates a message role the target family cannot render.
	ErrCodeUnsupportedRole ErrorCode = "UNSUPPORTED_ROLE"
	// ErrCodeInvariantViolation indicates a broken rendering post-condition.
	// It always points at a defective template set, never at bad input.
	ErrCodeInvariantViolation ErrorCode = "INVARIANT_VIOLATION"
	// ErrCodeInvalidConversation indicates a message sequence the family cannot accept.
	ErrCodeInvalidConversation ErrorCode = "INVALID_CONVERSATION"
	// ErrCodeInvalidTemplate indicates a family definition that fails validation.
	ErrCodeInvalidTemplate ErrorCode = "INVALID_TEMPLATE"
)

// Input errors
const (
	// ErrCodeMalformedInput indicates an input record that is missing fields or inconsistent.
	ErrCodeMalformedInput ErrorCode = "MALFORMED_INPUT"
	// ErrCodeNotFound indicates the requested resource was not found.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
)

// Internal errors
const (
	// ErrCodeInternal indicates an unexpected failure.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// fatalCodes are programming errors rather than input errors.
var fatalCodes = map[ErrorCode]bool{
	ErrCodeInvariantViolation: true,
	ErrCodeInternal:           true,
}

// IsFatalCode reports whether the code signals a defect in the program or its
// configuration rather than in the caller's input.
func IsFatalCode(code ErrorCode) bool {
	return fatalCodes[code]
}
