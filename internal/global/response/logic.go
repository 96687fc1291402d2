package response

import (
	"errors"
	"fmt"

	pkgerrors "github.com/pkg/errors"
)

// Error is a transport-level failure: a stable code, an HTTP status, a
// headline message and the list of user-displayable problems.
type Error struct {
	Code    int32    `json:"code"`
	Status  int      `json:"-"`
	Message string   `json:"message"`
	Errors  []string `json:"errors"`
	Origin  string   `json:"origin,omitempty"`
	// cause keeps the wrapped error for Unwrap and stack extraction
	cause error
	stack pkgerrors.StackTrace
}

func newError(code int32, status int, msg string, errs ...string) *Error {
	return &Error{
		Code:    code,
		Status:  status,
		Message: msg,
		Errors:  errs,
	}
}

func (e *Error) Error() string {
	return fmt.Sprintf("code:%d, msg:%s, errors:%v", e.Code, e.Message, e.Errors)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// StackTrace implements the pkg/errors stackTracer interface.
func (e *Error) StackTrace() pkgerrors.StackTrace {
	if e.stack != nil {
		return e.stack
	}
	if st, ok := e.cause.(stackTracer); ok {
		return st.StackTrace()
	}
	return nil
}

func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

func (e *Error) clone() *Error {
	c := *e
	c.Errors = append([]string(nil), e.Errors...)
	return &c
}

// WithOrigin attaches the underlying error. Its text is only sent to clients in debug mode.
func (e *Error) WithOrigin(err error) *Error {
	if err == nil {
		return e
	}
	wrapped := ensureStack(err)

	c := e.clone()
	c.Origin = fmt.Sprintf("%+v", wrapped)
	c.cause = wrapped
	if st, ok := wrapped.(stackTracer); ok {
		c.stack = st.StackTrace()
	}
	return c
}

// WithMessage replaces the headline message.
func (e *Error) WithMessage(msg string) *Error {
	c := e.clone()
	c.Message = msg
	return c
}

// WithErrors replaces the problem list.
func (e *Error) WithErrors(errs ...string) *Error {
	c := e.clone()
	c.Errors = append([]string(nil), errs...)
	return c
}

type stackTracer interface {
	StackTrace() pkgerrors.StackTrace
}

func ensureStack(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := err.(stackTracer); ok {
		return err
	}
	return pkgerrors.WithStack(err)
}
