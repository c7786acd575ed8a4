package domain

import "errors"

var (
	ErrValidation              = errors.New("validation failed")
	ErrNotFound                = errors.New("not found")
	ErrInUse                   = errors.New("record is referenced elsewhere")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
	ErrInsufficientStock       = errors.New("insufficient stock")
	ErrUnauthorized            = errors.New("unauthorized")
	ErrForbidden               = errors.New("forbidden")
)

// ShortageError carries the ingredients that do not cover a cart.
type ShortageError struct {
	Shortages []Shortage
}

func (e *ShortageError) Error() string {
	return ErrInsufficientStock.Error()
}

func (e *ShortageError) Unwrap() error {
	return ErrInsufficientStock
}
