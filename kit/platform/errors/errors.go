package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Error codes shared by every package in the module.
const (
	EInternal   = "internal error"
	ENotFound   = "not found"
	EInvalid    = "invalid" // validation failed
	EEmptyValue = "empty value"
)

// Error is the coded error returned by samplers, spec parsing and the CLI.
//
// The Code targets automated handlers, Msg is meant for the person running
// the tool, and Op and Err chain errors together in a logical stack trace.
//
// To report a bad parameter,
//
//	&Error{
//	    Code: EInvalid,
//	    Op:   "distribution.Normal",
//	    Msg:  "std must be greater than zero",
//	}
//
// To wrap a lower level failure,
//
//	&Error{
//	    Code: EInternal,
//	    Err:  err,
//	}
type Error struct {
	Code string
	Msg  string
	Op   string
	Err  error
}

// NewError returns an instance of an error.
func NewError(options ...func(*Error)) *Error {
	err := &Error{}
	for _, o := range options {
		o(err)
	}

	return err
}

// WithErrorErr sets the err on the error.
func WithErrorErr(err error) func(*Error) {
	return func(e *Error) {
		e.Err = err
	}
}

// WithErrorCode sets the code on the error.
func WithErrorCode(code string) func(*Error) {
	return func(e *Error) {
		e.Code = code
	}
}

// WithErrorMsg sets the message on the error.
func WithErrorMsg(msg string) func(*Error) {
	return func(e *Error) {
		e.Msg = msg
	}
}

// WithErrorOp sets the operation on the error.
func WithErrorOp(op string) func(*Error) {
	return func(e *Error) {
		e.Op = op
	}
}

// Invalidf returns an EInvalid error for op with a formatted message.
func Invalidf(op, format string, args ...interface{}) *Error {
	return NewError(
		WithErrorCode(EInvalid),
		WithErrorOp(op),
		WithErrorMsg(fmt.Sprintf(format, args...)),
	)
}

// Error implements the error interface by writing out the recursive messages.
func (e *Error) Error() string {
	if e.Msg != "" && e.Err != nil {
		var b strings.Builder
		b.WriteString(e.Msg)
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
		return b.String()
	} else if e.Msg != "" {
		return e.Msg
	} else if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("<%s>", e.Code)
}

// Unwrap returns the wrapped error, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// ErrorCode returns the code of the root error, if available; otherwise returns EInternal.
// Errors wrapped with fmt.Errorf("...: %w") are searched as well.
func ErrorCode(err error) string {
	if err == nil {
		return ""
	}

	var e *Error
	if !errors.As(err, &e) {
		return EInternal
	}

	if e == nil {
		return ""
	}

	if e.Code != "" {
		return e.Code
	}

	if e.Err != nil {
		return ErrorCode(e.Err)
	}

	return EInternal
}

// ErrorOp returns the op of the error, if available; otherwise return empty string.
func ErrorOp(err error) string {
	if err == nil {
		return ""
	}

	var e *Error
	if !errors.As(err, &e) {
		return ""
	}

	if e == nil {
		return ""
	}

	if e.Op != "" {
		return e.Op
	}

	if e.Err != nil {
		return ErrorOp(e.Err)
	}

	return ""
}
