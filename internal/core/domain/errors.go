// Package domain defines the error taxonomy shared by the RESP core.
package domain

import (
	"errors"
	"fmt"
)

// Kind identifies one member of the closed error taxonomy.
type Kind string

// Decode kinds.
const (
	KindUnsupportedType   Kind = "unsupported_type"
	KindUnterminatedFrame Kind = "unterminated_frame"
	KindMalformedPayload  Kind = "malformed_payload"
	KindTruncated         Kind = "truncated"
	KindLimitExceeded     Kind = "limit_exceeded"
)

// Interpret kinds.
const (
	KindUnsupportedValue Kind = "unsupported_value"
	KindUnknownCommand   Kind = "unknown_command"
	KindBadArguments     Kind = "bad_arguments"
	KindStoreUnavailable Kind = "store_unavailable"
)

// IsDecode reports whether k belongs to the decoder's taxonomy.
func (k Kind) IsDecode() bool {
	switch k {
	case KindUnsupportedType, KindUnterminatedFrame, KindMalformedPayload, KindTruncated, KindLimitExceeded:
		return true
	}
	return false
}

// DomainError is an error tagged with a Kind from the closed taxonomy.
type DomainError struct {
	Kind    Kind   // Taxonomy member, used for errors.Is comparison
	Message string // Human-readable message
	Details string // Optional additional details
	Cause   error  // Underlying error (if any)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Kind, e.Message, e.Details)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap() support.
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is matches any DomainError of the same Kind.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// NewDomainError creates a new DomainError with the given kind and message.
func NewDomainError(kind Kind, message string) *DomainError {
	return &DomainError{
		Kind:    kind,
		Message: message,
	}
}

// WithDetails returns a copy of the error with additional details.
func (e *DomainError) WithDetails(details string) *DomainError {
	return &DomainError{
		Kind:    e.Kind,
		Message: e.Message,
		Details: details,
		Cause:   e.Cause,
	}
}

// WithCause returns a copy of the error wrapping the given cause.
func (e *DomainError) WithCause(cause error) *DomainError {
	return &DomainError{
		Kind:    e.Kind,
		Message: e.Message,
		Details: e.Details,
		Cause:   cause,
	}
}

// Detailf is WithDetails with fmt.Sprintf formatting.
func (e *DomainError) Detailf(format string, args ...any) *DomainError {
	return e.WithDetails(fmt.Sprintf(format, args...))
}

// KindOf extracts the Kind from err, or "" when err is not a DomainError.
func KindOf(err error) Kind {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}

// IsKind reports whether err is a DomainError of the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// IsIncomplete reports whether err means the buffer ended before the frame
// did, so the caller may read more bytes and decode again.
func IsIncomplete(err error) bool {
	switch KindOf(err) {
	case KindUnterminatedFrame, KindTruncated:
		return true
	}
	return false
}

// ============================================================================
// Decode Errors
// ============================================================================

var (
	// ErrUnsupportedType indicates an empty buffer or an unknown type tag.
	ErrUnsupportedType = NewDomainError(KindUnsupportedType, "unsupported resp type")

	// ErrUnterminatedFrame indicates no '\r' terminator was found.
	ErrUnterminatedFrame = NewDomainError(KindUnterminatedFrame, "unterminated frame")

	// ErrMalformedPayload indicates the payload is not valid text or number.
	ErrMalformedPayload = NewDomainError(KindMalformedPayload, "malformed payload")

	// ErrTruncated indicates the buffer is shorter than the frame it declares.
	ErrTruncated = NewDomainError(KindTruncated, "truncated frame")

	// ErrLimitExceeded indicates a declared length or nesting depth over the protocol limits.
	ErrLimitExceeded = NewDomainError(KindLimitExceeded, "protocol limit exceeded")
)

// ============================================================================
// Interpret Errors
// ============================================================================

var (
	// ErrUnsupportedValue indicates a top-level value that is not a command.
	ErrUnsupportedValue = NewDomainError(KindUnsupportedValue, "unsupported value")

	// ErrUnknownCommand indicates a command name outside PING/ECHO/GET/SET.
	ErrUnknownCommand = NewDomainError(KindUnknownCommand, "unknown command")

	// ErrBadArguments indicates wrong arity or argument types.
	ErrBadArguments = NewDomainError(KindBadArguments, "bad arguments")

	// ErrStoreUnavailable indicates the store can no longer serve requests.
	ErrStoreUnavailable = NewDomainError(KindStoreUnavailable, "store unavailable")
)
