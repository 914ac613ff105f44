package ber

import (
	"errors"
	"fmt"

	pkgerrors "github.com/pkg/errors"
)

// Sentinel decoder errors. Use errors.Is against these; DecodeError and
// TagMismatchError both support Unwrap/Is so a caller never needs to know
// which wrapper produced the failure.
var (
	// ErrUnexpectedEOF is returned when the decoder encounters truncated data.
	ErrUnexpectedEOF = errors.New("ber: unexpected end of data")

	// ErrInvalidLength is returned when a length value is malformed, including
	// long-form lengths using 5 or more length-length octets (lengths are
	// bounded to 31 bits by this codec).
	ErrInvalidLength = errors.New("ber: invalid length encoding")

	// ErrIndefiniteLength is returned when indefinite length encoding is
	// encountered; LDAP BER never uses it.
	ErrIndefiniteLength = errors.New("ber: indefinite length not supported")

	// ErrLengthOverrun is returned when a nested TLV consumes more bytes than
	// its enclosing frame declared.
	ErrLengthOverrun = errors.New("ber: length overrun")

	// ErrReservedTag is returned when a tag's class/constructed bits are
	// inconsistent with what the calling production expects.
	ErrReservedTag = errors.New("ber: reserved or unexpected tag form")

	// ErrInvalidBoolean is returned when a boolean value has invalid length.
	ErrInvalidBoolean = errors.New("ber: invalid boolean encoding")

	// ErrInvalidInteger is returned when an integer value is malformed.
	ErrInvalidInteger = errors.New("ber: invalid integer encoding")

	// ErrIntegerOutOfRange is returned when a decoded integer does not fit
	// the caller's expected domain (e.g. a negative message ID).
	ErrIntegerOutOfRange = errors.New("ber: integer out of range")

	// ErrInvalidNull is returned when a null value has non-zero length.
	ErrInvalidNull = errors.New("ber: invalid null encoding")

	// ErrStringNotUTF8 is returned when an OCTET STRING declared to carry
	// UTF-8 text (LDAPString, LDAPDN, AttributeDescription) is not valid UTF-8.
	ErrStringNotUTF8 = errors.New("ber: string is not valid UTF-8")

	// ErrTagMismatch is returned when the expected tag does not match the actual tag.
	ErrTagMismatch = errors.New("ber: tag mismatch")
)

// DecodeError provides detailed information about a decoding failure,
// including the byte offset at which it was detected.
type DecodeError struct {
	Offset  int    // Byte offset where the error occurred
	Message string // Human-readable error description
	Err     error  // Underlying error
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("ber: decode error at offset %d: %s: %v", e.Offset, e.Message, e.Err)
	}
	return fmt.Sprintf("ber: decode error at offset %d: %s", e.Offset, e.Message)
}

// Unwrap returns the underlying error.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// NewDecodeError creates a new DecodeError, attaching a stack trace to the
// wrapped error so logs can point at the call site that detected the fault,
// not just the final Error() string.
func NewDecodeError(offset int, message string, err error) *DecodeError {
	if err != nil {
		err = pkgerrors.WithStack(err)
	}
	return &DecodeError{
		Offset:  offset,
		Message: message,
		Err:     err,
	}
}

// TagMismatchError provides detailed information about a tag mismatch.
type TagMismatchError struct {
	Offset            int
	ExpectedClass     int
	ExpectedNumber    int
	ActualClass       int
	ActualNumber      int
	ActualConstructed int
}

// Error implements the error interface.
func (e *TagMismatchError) Error() string {
	return fmt.Sprintf("ber: tag mismatch at offset %d: expected class=%d number=%d, got class=%d number=%d constructed=%d",
		e.Offset, e.ExpectedClass, e.ExpectedNumber, e.ActualClass, e.ActualNumber, e.ActualConstructed)
}

// Is allows TagMismatchError to match ErrTagMismatch with errors.Is.
func (e *TagMismatchError) Is(target error) bool {
	return target == ErrTagMismatch
}
