package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// Error is the single failure type of the harness generator.
// Generation never returns partial source together with an Error.
type Error struct {
	Kind       Kind                   // Failure class
	Message    string                 // Overrides the kind's default message if set
	Violations []string               // Every schema violation, in discovery order
	Details    map[string]interface{} // Additional context data
	Err        error                  // Underlying error (for wrapping)
}

// HarnessGenerationError is the name callers outside the generator know the error by
type HarnessGenerationError = Error

// Sentinels for errors.Is matching on kind only
var (
	ErrSchemaValidation  = &Error{Kind: SchemaValidation}
	ErrInputArity        = &Error{Kind: InputArity}
	ErrInputParse        = &Error{Kind: InputParse}
	ErrUnsupportedType   = &Error{Kind: UnsupportedType}
	ErrTemplateIntegrity = &Error{Kind: TemplateIntegrity}
)

// Error implements the error interface
func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Kind.Message()
	}
	msg = e.Kind.String() + ": " + msg
	if len(e.Violations) > 0 {
		msg += ": " + strings.Join(e.Violations, "; ")
	}
	return msg
}

// Unwrap returns the underlying error (for errors.Is and errors.As)
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same kind
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// New creates an Error of the given kind with its default message
func New(kind Kind) *Error {
	return &Error{
		Kind:    kind,
		Message: kind.Message(),
		Details: make(map[string]interface{}),
	}
}

// Newf creates an Error with a formatted message
func Newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrapf wraps err with a kind and a formatted message
func Wrapf(err error, kind Kind, format string, args ...interface{}) *Error {
	if err == nil {
		return nil
	}
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
		Details: make(map[string]interface{}),
	}
}

// Validation creates a SchemaValidationError listing every violation
func Validation(violations []string) *Error {
	e := New(SchemaValidation)
	e.Violations = append([]string(nil), violations...)
	return e
}

// WithDetail adds a key-value detail to the error
func (e *Error) WithDetail(key string, value interface{}) *Error {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// KindOf extracts the kind from any error in the chain, Unknown otherwise
func KindOf(err error) Kind {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return Unknown
}

// IsKind checks whether err carries the given kind
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
