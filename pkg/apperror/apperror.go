package apperror

import (
	"errors"
	"maps"
)

// Code is a machine-checkable error code. The zero value means "no code".
type Code string

// CodeNone is the code carried by errors created without one.
const CodeNone Code = ""

// Error is the uniform error shape shared by the resolver, the compositor and
// every component that wants coded errors.
//
// An Error carries a human readable message, the name of the error variant
// that produced it (for example "GraphError" or "AppError"), an optional code
// and a bag of extra attributes. When built from another error with Wrap the
// original error is kept as the cause and its attributes are carried over.
type Error struct {
	name    string
	code    Code
	message string
	attrs   map[string]any
	cause   error
}

// New creates an Error for the given variant with a plain message.
//
// Args:
//   - variant: identifier of the concrete error family, used as Name()
//   - message: human readable message
//   - code: machine readable code, CodeNone when not applicable
//
// Returns:
//   - *Error: the new error
func New(variant, message string, code Code) *Error {
	return &Error{
		name:    variant,
		code:    code,
		message: message,
	}
}

// Wrap creates an Error for the given variant from an existing error.
// The message is taken from err and, when err is or wraps an *Error, all of
// its attributes are copied onto the new error. The code is never inherited:
// the caller decides it.
func Wrap(variant string, err error, code Code) *Error {
	if err == nil {
		return New(variant, "", code)
	}
	e := &Error{
		name:    variant,
		code:    code,
		message: err.Error(),
		cause:   err,
	}
	var src *Error
	if errors.As(err, &src) && len(src.attrs) > 0 {
		e.attrs = maps.Clone(src.attrs)
	}
	return e
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.message
}

// Message returns the human readable message.
func (e *Error) Message() string {
	return e.message
}

// Name returns the variant identifier.
func (e *Error) Name() string {
	return e.name
}

// Code returns the error code, CodeNone if none was set.
func (e *Error) Code() Code {
	return e.code
}

// Unwrap returns the cause, if any.
func (e *Error) Unwrap() error {
	return e.cause
}

// WithAttr sets an extra attribute and returns the receiver for chaining.
func (e *Error) WithAttr(key string, value any) *Error {
	if e.attrs == nil {
		e.attrs = make(map[string]any)
	}
	e.attrs[key] = value
	return e
}

// Attr returns a single attribute.
func (e *Error) Attr(key string) (any, bool) {
	v, ok := e.attrs[key]
	return v, ok
}

// Attrs returns a copy of all attributes.
func (e *Error) Attrs() map[string]any {
	return maps.Clone(e.attrs)
}

// Is reports whether target is an *Error with the same non-empty code.
// It lets callers write errors.Is(err, apperror.New("", "", SomeCode)), but
// HasCode is usually more convenient.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t.code == CodeNone {
		return false
	}
	return e.code == t.code
}

// CodeOf returns the code of the first *Error in err's chain that carries a
// code, or CodeNone.
func CodeOf(err error) Code {
	for err != nil {
		if c, ok := err.(interface{ Code() Code }); ok && c.Code() != CodeNone {
			return c.Code()
		}
		err = errors.Unwrap(err)
	}
	return CodeNone
}

// HasCode reports whether err carries the given code anywhere in its chain.
func HasCode(err error, code Code) bool {
	if code == CodeNone {
		return false
	}
	for err != nil {
		if c, ok := err.(interface{ Code() Code }); ok && c.Code() == code {
			return true
		}
		err = errors.Unwrap(err)
	}
	return false
}
