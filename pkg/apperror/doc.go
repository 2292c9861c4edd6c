// Package apperror provides the structured error shared by every layer of
// appi.
//
// An Error carries a message, the name of the error family that produced it,
// an optional machine readable Code and a set of extra attributes. Families
// (the resolver's GraphError, the compositor's AppError, component specific
// errors) keep an explicit kind enum of their own and expose the underlying
// *Error through errors.As, so callers can always do:
//
//	if apperror.HasCode(err, compositor.CodeStartFailed) {
//	    // ...
//	}
//
// or, for the full shape:
//
//	var e *apperror.Error
//	if errors.As(err, &e) {
//	    fmt.Println(e.Name(), e.Code(), e.Attrs())
//	}
package apperror
