package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Argument errors
	ErrInvalidArgument = errors.New("invalid argument")
	ErrEmptySample     = fmt.Errorf("%w: empty sample", ErrInvalidArgument)
	ErrDivisionByZero  = errors.New("division by zero")
	ErrOverflow        = fmt.Errorf("%w: integer overflow", ErrInvalidArgument)

	// Not found errors
	ErrNotFound            = errors.New("resource not found")
	ErrComputationNotFound = fmt.Errorf("%w: computation", ErrNotFound)
)

// Error constructors with context
func NewInvalidArgumentError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

func NewOverflowError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrOverflow, fmt.Sprintf(format, args...))
}

func NewComputationNotFoundError(id ID) error {
	return fmt.Errorf("%w with id %s", ErrComputationNotFound, id)
}

// Error checking helpers
func IsInvalidArgument(err error) bool {
	return errors.Is(err, ErrInvalidArgument)
}

func IsDivisionByZero(err error) bool {
	return errors.Is(err, ErrDivisionByZero)
}

func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}
