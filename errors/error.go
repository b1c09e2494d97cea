package errors

import (
	goerrors "errors"
	"fmt"
	"strings"
)

// Error is the pipeline error type. Every stage returns a copy of one of
// the predefined kinds refined with a label, a log message and an inner error.
type Error struct {
	inner    error  // details
	kinds    []string
	label    string
	message  string // log message
	synopsis string // short message
	status   int
}

// GoError exposes the detailed log representation next to the synopsis.
type GoError interface {
	error
	LogError() string
	Unwrap() error
}

var _ GoError = &Error{}

func (e *Error) Label(lbl string) *Error {
	err := *e
	err.label = lbl
	return &err
}

func (e *Error) Message(msg string) *Error {
	err := *e
	err.message = msg
	return &err
}

func (e *Error) Messagef(msg string, args ...interface{}) *Error {
	return e.Message(fmt.Sprintf(msg, args...))
}

func (e *Error) With(inner error) *Error {
	if inner == nil {
		return e
	}
	err := *e
	err.inner = inner
	return &err
}

// Kind appends the given kind to the error kinds. The most specific
// kind is expected to be the first one.
func (e *Error) Kind(name string) *Error {
	err := *e
	err.kinds = append([]string{name}, e.kinds...)
	return &err
}

func (e *Error) Kinds() []string {
	kinds := make([]string, len(e.kinds))
	copy(kinds, e.kinds)
	return kinds
}

func (e *Error) WithStatus(status int) *Error {
	err := *e
	err.status = status
	return &err
}

// Status returns the http status which should be used when this error
// reaches the preview server.
func (e *Error) Status() int {
	return e.status
}

func (e *Error) Error() string {
	var msg []string
	if e.label != "" {
		msg = append(msg, e.label)
	}
	msg = append(msg, e.synopsis)
	if e.message != "" {
		msg = append(msg, e.message)
	}
	return strings.Join(msg, ": ")
}

// LogError contains additional context which should be used for logging purposes only.
func (e *Error) LogError() string {
	msg := e.Error()
	if e.inner != nil {
		if inner, ok := e.inner.(GoError); ok {
			return appendMsg(msg, inner.LogError())
		}
		return appendMsg(msg, e.inner.Error())
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.inner
}

// Is reports kind equality so that errors.Is(err, errors.Content) matches
// any refinement of the Content kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || len(t.kinds) == 0 || len(e.kinds) == 0 {
		return false
	}
	return e.kinds[len(e.kinds)-1] == t.kinds[len(t.kinds)-1]
}

func appendMsg(target string, msg ...string) string {
	var result string
	if target != "" {
		result = target
	}

	for _, m := range msg {
		if m == "" || strings.Contains(result, m) {
			continue
		}
		if result != "" {
			result += ": "
		}
		result += m
	}
	return result
}

// AppendMsg is the exported variant used by the logging hooks.
func AppendMsg(target string, msg ...string) string {
	return appendMsg(target, msg...)
}

// Is and As forward to the standard library so callers only import this package.
func Is(err, target error) bool {
	return goerrors.Is(err, target)
}

func As(err error, target interface{}) bool {
	return goerrors.As(err, target)
}
