// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Store errors.
	ErrIO    = errors.New("store unreadable or unwritable")
	ErrParse = errors.New("store content malformed")

	// Input errors.
	ErrValidation    = errors.New("invalid input")
	ErrInvalidOption = errors.New("invalid option")

	// Ledger state errors.
	ErrEmptyCatalog = errors.New("catalog is empty")
	ErrNoRecords    = errors.New("no records")
	ErrNoMatch      = errors.New("no records in this period")

	// Configuration errors.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}

// Validationf returns an ErrValidation carrying a message for the user.
func Validationf(format string, args ...any) error {
	return NewUserError(fmt.Sprintf(format, args...), ErrValidation)
}

// UserMessage returns the text to show the user for err.
func UserMessage(err error) string {
	var userErr *UserError
	if errors.As(err, &userErr) {
		return userErr.UserMessage
	}

	switch {
	case errors.Is(err, ErrEmptyCatalog):
		return "Add items first"
	case errors.Is(err, ErrNoRecords):
		return "No records"
	case errors.Is(err, ErrNoMatch):
		return "No records in this period"
	case errors.Is(err, ErrInvalidOption):
		return "Invalid option"
	}
	return err.Error()
}
