package util

import (
	"errors"
	"fmt"
)

type ErrorCode uint

const (
	ErrUnknown ErrorCode = iota
	ErrInternal
	ErrBadInput
	ErrNotFound
	ErrConfig
)

func (c ErrorCode) String() string {
	switch c {
	case ErrInternal:
		return "internal"
	case ErrBadInput:
		return "bad input"
	case ErrNotFound:
		return "not found"
	case ErrConfig:
		return "config"
	default:
		return "unknown"
	}
}

var (
	ErrInvalidOrder   = errors.New("invalid contraction order")
	ErrNegativeCost   = errors.New("negative arc cost")
	ErrNodeOutOfRange = errors.New("node id out of range")
	ErrInvalidConfig  = errors.New("invalid config")
	ErrOrderNotFound  = errors.New("contraction order not found")
)

// Error carries an ErrorCode next to the wrapped cause.
type Error struct {
	orig error
	msg  string
	code ErrorCode
}

func (e *Error) Error() string {
	if e.orig != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.orig)
	}
	return e.msg
}

func (e *Error) Unwrap() error {
	return e.orig
}

func (e *Error) Code() ErrorCode {
	return e.code
}

func WrapErrorf(orig error, code ErrorCode, format string, a ...interface{}) error {
	return &Error{
		code: code,
		orig: orig,
		msg:  fmt.Sprintf(format, a...),
	}
}

func NewErrorf(code ErrorCode, format string, a ...interface{}) error {
	return WrapErrorf(nil, code, format, a...)
}

// CodeOf returns the code of the outermost *Error in err's chain.
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.code
	}
	return ErrUnknown
}
