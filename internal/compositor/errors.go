package compositor

import (
	"fmt"

	"appi/pkg/apperror"
)

// ErrorVariant is the apperror variant name of every compositor error.
const ErrorVariant = "AppError"

// ErrorKind enumerates the compositor failure families.
type ErrorKind int

const (
	// KindValidation is a malformed graph declaration.
	KindValidation ErrorKind = iota
	// KindInitialization is a component failing to make.
	KindInitialization
	// KindStart is a component failing to start.
	KindStart
	// KindStop is a component failing to stop.
	KindStop
	// KindPrecondition is a lifecycle call on an app that was not composed.
	KindPrecondition
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "Validation"
	case KindInitialization:
		return "Initialization"
	case KindStart:
		return "Start"
	case KindStop:
		return "Stop"
	case KindPrecondition:
		return "Precondition"
	default:
		return "Unknown"
	}
}

// Error codes carried by AppError.
const (
	CodeInvalidGraph         apperror.Code = "INVALID_GRAPH"
	CodeInitializationFailed apperror.Code = "COMPONENT_INITIALIZATION_FAILED"
	CodeStartFailed          apperror.Code = "COMPONENT_START_FAILED"
	CodeStopFailed           apperror.Code = "COMPONENT_STOP_FAILED"
)

// AppError reports graph validation, lifecycle and precondition failures.
type AppError struct {
	Kind ErrorKind
	// Component is the name of the failing component, empty when the error
	// is not about a single component.
	Component string

	base *apperror.Error
}

func newAppError(kind ErrorKind, code apperror.Code, format string, args ...any) *AppError {
	return &AppError{
		Kind: kind,
		base: apperror.New(ErrorVariant, fmt.Sprintf(format, args...), code).WithAttr("kind", kind.String()),
	}
}

func validationError(format string, args ...any) *AppError {
	return newAppError(KindValidation, CodeInvalidGraph, format, args...)
}

// lifecycleError wraps the cause of a failed make, start or stop. The
// message quotes the cause; the cause itself stays reachable through Unwrap.
func lifecycleError(kind ErrorKind, component string, cause error) *AppError {
	var code apperror.Code
	var phase string
	switch kind {
	case KindInitialization:
		code, phase = CodeInitializationFailed, "initializing"
	case KindStart:
		code, phase = CodeStartFailed, "start attempt"
	default:
		code, phase = CodeStopFailed, "stop attempt"
	}

	wrapped := &causeError{
		msg:   fmt.Sprintf("Component \"%s\" failed while %s with error: \"%s\"", component, phase, cause.Error()),
		cause: cause,
	}
	return &AppError{
		Kind:      kind,
		Component: component,
		base: apperror.Wrap(ErrorVariant, wrapped, code).
			WithAttr("kind", kind.String()).
			WithAttr("component", component),
	}
}

// causeError carries a rewritten message while keeping the original error
// in the chain.
type causeError struct {
	msg   string
	cause error
}

func (e *causeError) Error() string { return e.msg }

func (e *causeError) Unwrap() error { return e.cause }

func (e *AppError) Error() string {
	return e.base.Error()
}

// Code returns the machine readable code, CodeNone for a failed start
// precondition.
func (e *AppError) Code() apperror.Code {
	return e.base.Code()
}

// Unwrap exposes the structured error.
func (e *AppError) Unwrap() error {
	return e.base
}
