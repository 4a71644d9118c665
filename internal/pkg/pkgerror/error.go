package pkgerror

import "errors"

type Code int

const (
	CodeInternal Code = iota
	CodeInvalidInput
	CodeNotFound
	CodeFetchFailed
	CodeRemoteRejected
)

func (c Code) String() string {
	switch c {
	case CodeInvalidInput:
		return "INVALID_INPUT"
	case CodeNotFound:
		return "NOT_FOUND"
	case CodeFetchFailed:
		return "FETCH_FAILED"
	case CodeRemoteRejected:
		return "REMOTE_REJECTED"
	default:
		return "INTERNAL"
	}
}

// Error is the error type every layer above the transport returns to its
// caller. Field is set for field-level validation messages.
type Error struct {
	msg   string
	code  Code
	field string
	cause error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.msg + ": " + e.cause.Error()
	}
	return e.msg
}

func (e *Error) Unwrap() error { return e.cause }

func (e *Error) Message() string { return e.msg }

func (e *Error) Code() Code { return e.code }

func (e *Error) Field() string { return e.field }

func NewBusiness(msg string, code Code) *Error {
	return &Error{msg: msg, code: code}
}

func NewValidation(field, msg string) *Error {
	return &Error{msg: msg, code: CodeInvalidInput, field: field}
}

func NewNotFound(msg string) *Error {
	return &Error{msg: msg, code: CodeNotFound}
}

// NewFetch marks a network or provider failure. The cause stays reachable
// through errors.Is / errors.As but is not shown to users.
func NewFetch(msg string, cause error) *Error {
	return &Error{msg: msg, code: CodeFetchFailed, cause: cause}
}

// NewRemote carries a message returned by a remote service verbatim.
func NewRemote(msg string) *Error {
	return &Error{msg: msg, code: CodeRemoteRejected}
}

// As returns the *Error in err's chain, if any.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// CodeOf returns CodeInternal for errors that are not *Error.
func CodeOf(err error) Code {
	if e, ok := As(err); ok {
		return e.code
	}
	return CodeInternal
}
