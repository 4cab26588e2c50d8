package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors, used with errors.Is.
var (
	// ErrInsufficientBalance is returned when a redemption batch exceeds the
	// package's remaining balance. The whole batch is rejected.
	ErrInsufficientBalance = errors.New("insufficient package balance")
)

// ValidationError reports malformed or missing input. It is always raised
// before any mutation happens.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func Invalid(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// NotFoundError reports an unknown package, staff, template or similar.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

func NotFound(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// ConflictError reports a state conflict such as insufficient balance or an
// already redeemed voucher. Orchestrated operations roll back fully on it.
type ConflictError struct {
	Message string
	Err     error
}

func (e *ConflictError) Error() string { return e.Message }
func (e *ConflictError) Unwrap() error { return e.Err }

func Conflict(message string, err error) *ConflictError {
	return &ConflictError{Message: message, Err: err}
}

// AuthorizationError reports a role-gated action attempted without the role.
type AuthorizationError struct {
	Message string
}

func (e *AuthorizationError) Error() string { return e.Message }
