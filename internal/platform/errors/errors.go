// Package errors provides a structured error type with wrapping and metadata
package errors

// Always import the project errors package as perr (platform/errors)

import (
	stderrs "errors"
	"fmt"
)

// ErrorCode defines supported error codes used across the search engine and
// its collaborators. Values are stable for wire compatibility; add sparingly
type ErrorCode uint16

const (
	// ErrorCodeUnknown is for unclassified errors
	ErrorCodeUnknown ErrorCode = iota

	// ErrorCodeInvalidDictionary covers an empty dictionary or an empty pattern
	ErrorCodeInvalidDictionary

	// ErrorCodeDuplicateNode covers two pattern entries colliding after case folding
	ErrorCodeDuplicateNode

	// ErrorCodeInvalidNodeID covers a node identifier outside the automaton's node vector.
	// Internal; indicates a builder or scanner bug
	ErrorCodeInvalidNodeID

	// ErrorCodeMissingLink covers an expected failure or dictionary-suffix link that is
	// absent. Internal; indicates an incomplete automaton
	ErrorCodeMissingLink

	// ErrorCodeIO covers dictionary/text file reads and result writes performed by
	// external collaborators (CLI, bindings)
	ErrorCodeIO
)

func (c ErrorCode) String() string {
	switch c {
	case ErrorCodeInvalidDictionary:
		return "invalid_dictionary"
	case ErrorCodeDuplicateNode:
		return "duplicate_node"
	case ErrorCodeInvalidNodeID:
		return "invalid_node_id"
	case ErrorCodeMissingLink:
		return "missing_link"
	case ErrorCodeIO:
		return "io"
	default:
		return "unknown"
	}
}

// Error is the structured error type with wrapping and metadata
// msg is human/developer facing; code is machine facing
// field is optional (for validation); op is optional operation tag
// orig is the wrapped cause
type Error struct {
	orig  error
	msg   string
	code  ErrorCode
	field string
	op    string
}

// Wire is the JSON-serializable form returned across a binding boundary
type Wire struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.orig != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.orig)
	}
	return e.msg
}

// Unwrap returns the wrapped error, if any
func (e *Error) Unwrap() error { return e.orig }

// Code returns the error code
func (e *Error) Code() ErrorCode { return e.code }

// Field returns the offending field, if any
func (e *Error) Field() string { return e.field }

// Op returns the operation label, if set
func (e *Error) Op() string { return e.op }

// ToWire converts an *Error to a Wire payload
func (e *Error) ToWire() Wire { return Wire{Code: e.code.String(), Message: e.msg, Field: e.field} }

// WireFrom converts any error into a Wire payload with best-effort mapping.
// If err is nil, returns the zero-value Wire (no error)
func WireFrom(err error) Wire {
	if err == nil {
		return Wire{}
	}
	if e, ok := As(err); ok {
		return e.ToWire()
	}
	return Wire{Code: ErrorCodeUnknown.String(), Message: err.Error()}
}

// Root returns the deepest wrapped cause
func Root(err error) error {
	for err != nil {
		u := stderrs.Unwrap(err)
		if u == nil {
			return err
		}
		err = u
	}
	return nil
}

// CodeOf extracts an ErrorCode from any error, defaulting to Unknown
func CodeOf(err error) ErrorCode {
	if e, ok := As(err); ok {
		return e.code
	}
	return ErrorCodeUnknown
}

// IsCode reports whether err has the given code
func IsCode(err error, code ErrorCode) bool { return CodeOf(err) == code }

// As unwraps and returns (*Error, true) if err is one of ours
func As(err error) (*Error, bool) {
	var e *Error
	if stderrs.As(err, &e) {
		return e, true
	}
	return nil, false
}

// Mutators (copy-on-write)

// WithField attaches a field to an *Error (copy-on-write). If err isn't *Error, returns err unchanged
func WithField(err error, field string) error {
	if e, ok := As(err); ok {
		c := *e
		c.field = field
		return &c
	}
	return err
}

// WithOp attaches an operation label to an *Error (copy-on-write). If err isn't *Error, returns err unchanged
func WithOp(err error, op string) error {
	if e, ok := As(err); ok {
		c := *e
		c.op = op
		return &c
	}
	return err
}

// Constructors

// New returns a new *Error with the given code and message
func New(code ErrorCode, msg string) error { return &Error{code: code, msg: msg} }

// Newf returns a new *Error with code and formatted message
func Newf(code ErrorCode, format string, a ...any) error {
	return &Error{code: code, msg: fmt.Sprintf(format, a...)}
}

// Wrap returns a new *Error that wraps orig with code and message
func Wrap(orig error, code ErrorCode, msg string) error {
	return &Error{code: code, msg: msg, orig: orig}
}

// Wrapf returns a new *Error that wraps orig with code and formatted message
func Wrapf(orig error, code ErrorCode, format string, a ...any) error {
	return &Error{code: code, msg: fmt.Sprintf(format, a...), orig: orig}
}

// WrapIf wraps only when err != nil (helper for 1-liners)
func WrapIf(err error, code ErrorCode, msg string) error {
	if err == nil {
		return nil
	}
	return Wrap(err, code, msg)
}

// Sugar

// InvalidDictionaryf returns an invalid-dictionary error
func InvalidDictionaryf(format string, a ...any) error {
	return Newf(ErrorCodeInvalidDictionary, format, a...)
}

// DuplicateNodef returns a duplicate-node error
func DuplicateNodef(format string, a ...any) error {
	return Newf(ErrorCodeDuplicateNode, format, a...)
}

// InvalidNodeIDf returns an invalid-node-id error
func InvalidNodeIDf(format string, a ...any) error {
	return Newf(ErrorCodeInvalidNodeID, format, a...)
}

// MissingLinkf returns a missing-link error
func MissingLinkf(format string, a ...any) error {
	return Newf(ErrorCodeMissingLink, format, a...)
}

// IOf returns a general I/O error
func IOf(format string, a ...any) error { return Newf(ErrorCodeIO, format, a...) }
