package errors

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	ErrFailedPrecond   ErrorType = "Failed Precondition"
	ErrAlreadyExists   ErrorType = "Resource Already Exists"
	ErrInvalidArgument ErrorType = "Invalid Argument"
	ErrInvalidState    ErrorType = "Invalid State"
	ErrNotFound        ErrorType = "Not Found"
	ErrInternalError   ErrorType = "Internal Error"
	ErrForbidden       ErrorType = "Forbidden Action"
)

type ErrorType string

func (e ErrorType) String() string {
	return string(e)
}

type DomainError struct {
	ErrorType  ErrorType
	Entity     string
	Message    string
	WrappedErr error
}

func (e *DomainError) Error() string {
	if e.WrappedErr != nil {
		return fmt.Sprintf("%s: %s", e.Message, e.WrappedErr.Error())
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.WrappedErr
}

// DebugString includes the entity and the error type, meant for logs only
func (e *DomainError) DebugString() string {
	wrappedError := ""
	if e.WrappedErr != nil {
		var de *DomainError
		if errors.As(e.WrappedErr, &de) {
			wrappedError = de.DebugString()
		} else {
			wrappedError = e.WrappedErr.Error()
		}
	}

	return fmt.Sprintf("%v for entity %v: %v, %v", e.ErrorType, e.Entity, e.Message, wrappedError)
}

func NewError(errType ErrorType, entity, msg string) *DomainError {
	return &DomainError{
		ErrorType: errType,
		Entity:    entity,
		Message:   msg,
	}
}

func InvalidArgument(entity, msg string) *DomainError {
	return NewError(ErrInvalidArgument, entity, msg)
}

func NotFound(entity, msg string) *DomainError {
	return NewError(ErrNotFound, entity, msg)
}

func AlreadyExists(entity, msg string) *DomainError {
	return NewError(ErrAlreadyExists, entity, msg)
}

func FailedPrecondition(entity, msg string) *DomainError {
	return NewError(ErrFailedPrecond, entity, msg)
}

func Forbidden(entity, msg string) *DomainError {
	return NewError(ErrForbidden, entity, msg)
}

func InternalError(entity, msg string, err error) *DomainError {
	return &DomainError{
		ErrorType:  ErrInternalError,
		Entity:     entity,
		Message:    msg,
		WrappedErr: err,
	}
}

// Wrap keeps the error type of a wrapped DomainError, other errors become internal
func Wrap(entity, msg string, err error) *DomainError {
	var de *DomainError
	if errors.As(err, &de) {
		return &DomainError{
			ErrorType:  de.ErrorType,
			Entity:     entity,
			Message:    msg,
			WrappedErr: err,
		}
	}

	return InternalError(entity, msg, err)
}

func WrapIfErr(entity, msg string, err error) error {
	if err == nil {
		return nil
	}
	return Wrap(entity, msg, err)
}

func AddErrContext(err error, entity, msg string) error {
	if err == nil {
		return nil
	}
	return Wrap(entity, msg, err)
}

func IsErrorType(err error, errType ErrorType) bool {
	var de *DomainError
	if errors.As(err, &de) {
		return de.ErrorType == errType
	}
	return false
}

// TypeOf returns the error type of a domain error, internal for any other error
func TypeOf(err error) ErrorType {
	var de *DomainError
	if errors.As(err, &de) {
		return de.ErrorType
	}
	return ErrInternalError
}

// HTTPStatus maps the error type of err to a response status code
func HTTPStatus(err error) int {
	switch TypeOf(err) {
	case ErrInvalidArgument:
		return http.StatusBadRequest
	case ErrNotFound:
		return http.StatusNotFound
	case ErrAlreadyExists:
		return http.StatusConflict
	case ErrFailedPrecond, ErrInvalidState:
		return http.StatusPreconditionFailed
	case ErrForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func Is(err, target error) bool {
	return errors.Is(err, target)
}

func As(err error, target any) bool {
	return errors.As(err, target)
}

func New(msg string) error {
	return errors.New(msg)
}

func Join(errs ...error) error {
	return errors.Join(errs...)
}
