package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Error codes of the boundary. Hosts switch on these values, so they are
// part of the wire contract and must not change.
const (
	EInternal = "internal error"
	EInvalid  = "invalid" // the host request itself is unusable

	// EDecode means a boundary-encoded input does not match its schema.
	EDecode = "decode error"
	// EPrint means a decoded tree could not be rendered as source text.
	EPrint = "print error"
	// EEncode means an internal value could not be represented on the wire.
	EEncode = "encode error"
)

// Error is the error value handed back across the boundary.
//
// The Code targets automated handlers on the host side.
// Msg is a human-readable description of the failure.
// Op and Err chain errors together in a logical stack trace:
//
//	&Error{
//	    Code: EDecode,
//	    Op:   "wire/DecodeFile",
//	    Msg:  "tree envelope is missing \"schema\"",
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

// WithErrorOp sets the op on the error.
func WithErrorOp(op string) func(*Error) {
	return func(e *Error) {
		e.Op = op
	}
}

// Errorf builds a coded error for op with a formatted message.
func Errorf(code, op, format string, args ...interface{}) *Error {
	return &Error{
		Code: code,
		Op:   op,
		Msg:  fmt.Sprintf(format, args...),
	}
}

// Wrap attaches code and op to err. A nil err stays nil.
func Wrap(err error, code, op string) error {
	if err == nil {
		return nil
	}
	return &Error{
		Code: code,
		Op:   op,
		Err:  err,
	}
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

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	return e.Err
}

// ErrorCode returns the code of the root error, if available; otherwise returns EInternal.
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
	if !errors.As(err, &e) || e == nil {
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

// ErrorMessage returns the human-readable message of the error, if available.
// Otherwise returns a generic error message.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}

	var e *Error
	if !errors.As(err, &e) {
		return "An internal error has occurred."
	}
	if e == nil {
		return ""
	}
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return ErrorMessage(e.Err)
	}
	return "An internal error has occurred."
}

// errEncode is the JSON shape of an Error as seen by the host.
type errEncode struct {
	Code string      `json:"code"`              // Code is the machine-readable error code.
	Msg  string      `json:"message,omitempty"` // Msg is a human-readable message.
	Op   string      `json:"op,omitempty"`      // Op describes the logical code operation during error.
	Err  interface{} `json:"error,omitempty"`   // Err is a stack of additional errors.
}

// MarshalJSON recursively marshals the stack of Err.
func (e *Error) MarshalJSON() ([]byte, error) {
	ee := errEncode{
		Code: e.Code,
		Msg:  e.Msg,
		Op:   e.Op,
	}
	if e.Err != nil {
		if inner, ok := e.Err.(*Error); ok {
			ee.Err = inner
		} else {
			ee.Err = e.Err.Error()
		}
	}
	return json.Marshal(ee)
}

// UnmarshalJSON recursively unmarshals the error stack.
func (e *Error) UnmarshalJSON(b []byte) error {
	ee := new(errEncode)
	err := json.Unmarshal(b, ee)
	e.Code = ee.Code
	e.Msg = ee.Msg
	e.Op = ee.Op
	e.Err = decodeInternalError(ee.Err)
	return err
}

func decodeInternalError(target interface{}) error {
	switch v := target.(type) {
	case string:
		return errors.New(v)
	case map[string]interface{}:
		internalErr := new(Error)
		if code, ok := v["code"].(string); ok {
			internalErr.Code = code
		}
		if msg, ok := v["message"].(string); ok {
			internalErr.Msg = msg
		}
		if op, ok := v["op"].(string); ok {
			internalErr.Op = op
		}
		internalErr.Err = decodeInternalError(v["error"])
		return internalErr
	}
	return nil
}
