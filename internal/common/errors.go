// Package common defines shared constants and sentinel errors used across
// client layers. Callers should use errors.Is / errors.As to match these values.
package common

import (
	"errors"
	"strings"
)

var (
	// Repository-level errors.
	ErrorNotFound     = errors.New("user not found")
	ErrDuplicateLogin = errors.New("login already in use")
	ErrDuplicateEmail = errors.New("email already in use")

	// Auth errors.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
)

// ValidationError is a business-rule rejection carrying one or more
// user-facing messages. It is produced both by local input validation and
// by the remote API when its response envelope lists errors.
type ValidationError struct {
	Messages []string
}

func NewValidationError(messages ...string) *ValidationError {
	return &ValidationError{Messages: messages}
}

func (e *ValidationError) Error() string {
	if len(e.Messages) == 0 {
		return "validation error"
	}
	return strings.Join(e.Messages, ", ")
}
