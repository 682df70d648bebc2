package types

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorCode string

const (
	InternalServiceError ErrorCode = "INTERNAL_SERVICE_ERROR"
	ValidationError      ErrorCode = "VALIDATION_ERROR"
	NotFound             ErrorCode = "NOT_FOUND"
	BadRequest           ErrorCode = "BAD_REQUEST"
	Forbidden            ErrorCode = "FORBIDDEN"
	Unauthorized         ErrorCode = "UNAUTHORIZED"
	InsufficientFunds    ErrorCode = "INSUFFICIENT_FUNDS"
	AllowanceExceeded    ErrorCode = "ALLOWANCE_EXCEEDED"
	LockActive           ErrorCode = "LOCK_ACTIVE"
	NothingToClaim       ErrorCode = "NOTHING_TO_CLAIM"
	TransferFailed       ErrorCode = "TRANSFER_FAILED"
	StateNotPersisted    ErrorCode = "STATE_NOT_PERSISTED"
)

func (e ErrorCode) String() string {
	return string(e)
}

// Error is the error carried through the transport layers. It keeps the http
// status and a stable code next to the wrapped error.
type Error struct {
	Err        error
	StatusCode int
	ErrorCode  ErrorCode
}

func (e *Error) Error() string {
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NewError(statusCode int, errorCode ErrorCode, err error) *Error {
	return &Error{
		Err:        err,
		StatusCode: statusCode,
		ErrorCode:  errorCode,
	}
}

func NewErrorWithMsg(statusCode int, errorCode ErrorCode, msg string) *Error {
	return NewError(statusCode, errorCode, errors.New(msg))
}

func NewInternalServiceError(err error) *Error {
	return NewError(http.StatusInternalServerError, InternalServiceError, err)
}

// NewNotPersistedError reports a call that took effect in memory but whose
// rows or events could not be written. It must not be read as a rollback.
func NewNotPersistedError(err error) *Error {
	return NewError(http.StatusInternalServerError, StateNotPersisted, err)
}

func NewValidationFailedError(err error) *Error {
	return NewError(http.StatusBadRequest, ValidationError, err)
}

// FromDomainError maps ledger and staking failures onto transport errors.
// Anything it does not recognise is reported as an internal error.
func FromDomainError(err error) *Error {
	if err == nil {
		return nil
	}

	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}

	switch {
	// transfer failures wrap the ledger cause, so they are matched first
	case errors.Is(err, ErrTransferFailed):
		return NewError(http.StatusUnprocessableEntity, TransferFailed, err)
	case errors.Is(err, ErrInvalidAddress), errors.Is(err, ErrInvalidAmount):
		return NewError(http.StatusBadRequest, BadRequest, err)
	case errors.Is(err, ErrUnauthorized):
		return NewError(http.StatusForbidden, Forbidden, err)
	case errors.Is(err, ErrInsufficientBalance), errors.Is(err, ErrInsufficientStaked):
		return NewError(http.StatusUnprocessableEntity, InsufficientFunds, err)
	case errors.Is(err, ErrAllowanceExceeded):
		return NewError(http.StatusUnprocessableEntity, AllowanceExceeded, err)
	case errors.Is(err, ErrLockActive):
		return NewError(http.StatusConflict, LockActive, err)
	case errors.Is(err, ErrNothingToClaim):
		return NewError(http.StatusUnprocessableEntity, NothingToClaim, err)
	}

	return NewInternalServiceError(fmt.Errorf("unexpected failure: %w", err))
}
