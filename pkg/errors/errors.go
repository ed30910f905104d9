// Package errors provides structured error types for the structurizer.
//
// Error codes follow the three-tier taxonomy of the structurizer: internal
// invariant violations (bugs), unsupported input (expected rejections of
// pathological CFGs), and soft diagnostics (logged, non-fatal).
//
//	err := errors.New(errors.ErrCodeMultipleBackEdges, "header %s already has a back edge", h.Name)
//	if errors.Is(err, errors.ErrCodeMultipleBackEdges) {
//	    // ...
//	}
package errors

import (
	"errors"
	"fmt"
)

// Code is a machine-readable error code.
type Code string

const (
	// Invariant violations - bugs, fatal to the compilation.
	ErrCodeInvariant          Code = "INVARIANT_VIOLATION"
	ErrCodeHeaderChainBroken  Code = "HEADER_CHAIN_BROKEN"
	ErrCodeUnmergedHeaders    Code = "UNMERGED_HEADERS"
	ErrCodeMissingMergeBlock  Code = "MISSING_MERGE_BLOCK"
	ErrCodePhiOutOfPreds      Code = "PHI_OUT_OF_PREDS"

	// Unsupported input - fails loudly, no recovery attempted.
	ErrCodeIrreducibleCFG      Code = "IRREDUCIBLE_CFG"
	ErrCodeMultipleBackEdges   Code = "MULTIPLE_BACK_EDGES"
	ErrCodeUnsupportedCFG      Code = "UNSUPPORTED_CFG"

	// Soft diagnostics - logged, structurization continues.
	ErrCodeNoMergeTarget  Code = "NO_MERGE_TARGET"
	ErrCodeNoCommonMerge  Code = "NO_COMMON_MERGE"
	ErrCodeHeaderMismatch Code = "HEADER_MISMATCH"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error { return e.Cause }

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Is reports whether err is an *Error carrying the given code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// Fatal panics with a structured Error. Used for invariant violations that
// the structurizer cannot recover from; the top-level Run recovers this
// panic and turns it into a returned error.
func Fatal(code Code, format string, args ...any) {
	panic(New(code, format, args...))
}

// Recover turns a panic raised by Fatal into an error, assigning it to *errp.
// Any other panic value is re-raised. Intended for use as a deferred call at
// a package entry point:
//
//	func Run(...) (err error) {
//	    defer errors.Recover(&err)
//	    ...
//	}
func Recover(errp *error) {
	r := recover()
	if r == nil {
		return
	}
	if e, ok := r.(*Error); ok {
		*errp = e
		return
	}
	panic(r)
}
