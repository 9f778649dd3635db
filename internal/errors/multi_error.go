package errors

import (
	"errors"
	"strings"
)

type MultiError struct {
	msg    string
	Errors []error
}

func NewMultiError(msg string) *MultiError {
	return &MultiError{msg: msg}
}

// Append ignores nil errors
func (m *MultiError) Append(err error) {
	if err == nil {
		return
	}

	var me *MultiError
	if errors.As(err, &me) {
		m.Errors = append(m.Errors, me.Errors...)
		return
	}

	m.Errors = append(m.Errors, err)
}

func (m *MultiError) Error() string {
	msgs := make([]string, len(m.Errors))
	for i, err := range m.Errors {
		msgs[i] = err.Error()
	}

	return m.msg + ":\n " + strings.Join(msgs, "\n ")
}

// ToErr returns nil when no error was collected, and the single error as is
func (m *MultiError) ToErr() error {
	switch len(m.Errors) {
	case 0:
		return nil
	case 1:
		return m.Errors[0]
	default:
		return m
	}
}

func MultiToError(e error) error {
	var me *MultiError
	if errors.As(e, &me) {
		return me.ToErr()
	}
	return e
}
