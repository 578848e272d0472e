package utils

import (
	stderrors "errors"

	"github.com/pkg/errors"
)

// Error kinds surfaced by the scheduling services. Handlers map them to
// HTTP status codes; everything else is treated as an internal error.
var (
	ErrNotFound     = stderrors.New("not found")
	ErrConflict     = stderrors.New("conflict")
	ErrValidation   = stderrors.New("validation failed")
	ErrIllegalState = stderrors.New("illegal state")
)

// NotFoundf builds a NotFound error with a formatted message.
func NotFoundf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrNotFound, format, args...)
}

// Conflictf builds a Conflict error with a formatted message.
func Conflictf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrConflict, format, args...)
}

// Validationf builds a ValidationError with a formatted message.
func Validationf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrValidation, format, args...)
}

// IllegalStatef builds an IllegalState error with a formatted message.
func IllegalStatef(format string, args ...interface{}) error {
	return errors.Wrapf(ErrIllegalState, format, args...)
}

func IsNotFound(err error) bool     { return stderrors.Is(err, ErrNotFound) }
func IsConflict(err error) bool     { return stderrors.Is(err, ErrConflict) }
func IsValidation(err error) bool   { return stderrors.Is(err, ErrValidation) }
func IsIllegalState(err error) bool { return stderrors.Is(err, ErrIllegalState) }
