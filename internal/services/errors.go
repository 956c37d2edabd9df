package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"gorm.io/gorm"
)

var (
	ErrMissingCredentials   = errors.New("username and password are required")
	ErrInvalidCredentials   = errors.New("invalid username or password")
	ErrAccountDisabled      = errors.New("account is disabled")
	ErrUnauthenticated      = errors.New("authentication required")
	ErrNotFound             = errors.New("not found")
	ErrUsernameTaken        = errors.New("username already exists")
	ErrPasswordTooShort     = errors.New("password too short")
	ErrUserNotFound         = errors.New("user not found")
	ErrFailedToHashPassword = errors.New("failed to hash password")
)

// Field error messages
const (
	msgRequired      = "This field is required."
	msgNull          = "This field may not be null."
	msgBlank         = "This field may not be blank."
	msgInvalidEmail  = "Enter a valid email address."
	msgInvalidDate   = "Date has wrong format. Use one of these formats instead: YYYY-MM-DD."
	msgInvalidBlocks = "Must be a list of blocks, each an object with a \"type\"."
	msgInvalidString = "Not a valid string."
)

// ValidationError collects field level problems of a payload.
type ValidationError struct {
	Fields map[string][]string
}

// NewValidationError creates an empty ValidationError
func NewValidationError() *ValidationError {
	return &ValidationError{Fields: map[string][]string{}}
}

// Add records a message for field
func (e *ValidationError) Add(field, message string) {
	e.Fields[field] = append(e.Fields[field], message)
}

// Has reports whether field already has a message
func (e *ValidationError) Has(field string) bool {
	return len(e.Fields[field]) > 0
}

// Err returns e, or nil when no field failed.
func (e *ValidationError) Err() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, len(fields))
	for i, field := range fields {
		parts[i] = fmt.Sprintf("%s: %s", field, strings.Join(e.Fields[field], " "))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func invalidChoice(value string) string {
	return fmt.Sprintf("%q is not a valid choice.", value)
}

func invalidPK(id any) string {
	return fmt.Sprintf("Invalid pk \"%v\" - object does not exist.", id)
}

func incorrectPKType(kind string) string {
	return fmt.Sprintf("Incorrect type. Expected pk value, received %s.", kind)
}

func tooLong(max int) string {
	return fmt.Sprintf("Ensure this field has no more than %d characters.", max)
}

// notFound maps a missing row to ErrNotFound and wraps anything else.
func notFound(err error, action string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return fmt.Errorf("failed to %s: %w", action, err)
}
