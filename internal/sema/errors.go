package sema

import (
	"errors"
	"fmt"

	"fern/internal/diag"
	"fern/internal/source"
)

// semaError carries the diagnostic code and location of a checking failure.
// Unification failures are created without a span; the inference call site
// that knows the offending expression fills it in with withSpan.
type semaError struct {
	code diag.Code
	span source.Span
	msg  string
}

func (e *semaError) Error() string { return e.msg }

func errAt(code diag.Code, span source.Span, format string, args ...any) *semaError {
	return &semaError{code: code, span: span, msg: fmt.Sprintf(format, args...)}
}

// withSpan fills the error location when the failure site did not know it.
func withSpan(err error, sp source.Span) error {
	var se *semaError
	if errors.As(err, &se) && se.span == (source.Span{}) {
		se.span = sp
	}
	return err
}
