package util

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// error

type Error struct {
	orig error
	msg  string
	code error
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

// Is. errors.Is(err, ErrMalformedInput) matches on the category code as well as on the wrapped error.
func (e *Error) Is(target error) bool {
	return e.code != nil && errors.Is(e.code, target)
}

func WrapErrorf(orig error, code error, format string, a ...interface{}) error {
	return &Error{
		code: code,
		orig: orig,
		msg:  fmt.Sprintf(format, a...),
	}
}

func NewErrorf(code error, format string, a ...interface{}) error {
	return WrapErrorf(nil, code, format, a...)
}

func (e *Error) Code() error {
	return e.code
}

var (
	ErrInternalServerError = errors.New("internal Server Error")
	ErrBadParamInput       = errors.New("given Param is not valid")
	ErrMalformedInput      = errors.New("malformed input")
	ErrConfig              = errors.New("configuration error")
	ErrInvariant           = errors.New("internal invariant violated")
)

var MessageInternalServerError string = "internal server error"

func StopConcurrentOperation(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}

// ReadLine. read one line without the trailing newline. the last line of a file without newline is returned with a nil error.
func ReadLine(br *bufio.Reader) (string, error) {
	line, err := br.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && len(line) > 0) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func Fields(s string) []string {
	return strings.Fields(s)
}
