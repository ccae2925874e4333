package application

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	ErrUnknownProgram    = errors.New("unknown program")
	ErrUnknownMessage    = errors.New("unknown message")
	ErrUnknownEmail      = errors.New("unknown email")
	ErrInvalidTransition = errors.New("invalid transition")
	ErrInvalidSpeed      = errors.New("invalid speed")
	ErrInvalidMode       = errors.New("invalid behavior mode")
)

// ValidationError represents a validation failure with details
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// UnknownProgramError is returned when switching to a key missing from the catalog
type UnknownProgramError struct {
	Key string
}

func (e *UnknownProgramError) Error() string {
	return fmt.Sprintf("unknown program %q", e.Key)
}

func (e *UnknownProgramError) Is(target error) bool {
	return target == ErrUnknownProgram
}

// UnknownMessageError is returned when engagement targets an instance id
// that is not in the inbox
type UnknownMessageError struct {
	InstanceID string
}

func (e *UnknownMessageError) Error() string {
	return fmt.Sprintf("no message with instance id %q in the inbox", e.InstanceID)
}

func (e *UnknownMessageError) Is(target error) bool {
	return target == ErrUnknownMessage
}

// UnknownEmailError is returned when scheduling an id the program does not define
type UnknownEmailError struct {
	Program string
	EmailID string
}

func (e *UnknownEmailError) Error() string {
	return fmt.Sprintf("program %s has no email %s", e.Program, e.EmailID)
}

func (e *UnknownEmailError) Is(target error) bool {
	return target == ErrUnknownEmail
}

// InvalidTransitionError represents a refused engagement change
type InvalidTransitionError struct {
	InstanceID string
	Reason     string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot update %s: %s", e.InstanceID, e.Reason)
}

func (e *InvalidTransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}
