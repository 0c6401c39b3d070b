package errors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Error kinds surfaced by the console. Every error returned by the session, leads,
// users and transport packages matches exactly one of these with errors.Is.
var (
	// Client-side checks, raised before any network call
	ErrValidation = errors.New("validation failed")

	// Login rejected or bearer token refused by the server
	ErrAuthentication = errors.New("authentication failed")

	// Call failed or the server could not be reached
	ErrNetwork = errors.New("network error")

	// Referenced entity absent
	ErrNotFound = errors.New("not found")
)

// Workflow errors
var (
	ErrInvalidStatus      = fmt.Errorf("%w: invalid lead status", ErrValidation)
	ErrTransitionInFlight = fmt.Errorf("%w: status transition already in progress for this lead", ErrValidation)
	ErrNoSession          = fmt.Errorf("%w: no active session", ErrAuthentication)
)

// ValidationError carries per-field messages for a rejected form or request.
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError builds a ValidationError from field/message pairs.
func NewValidationError(fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrValidation.Error()
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return ErrValidation.Error() + ": " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// APIError is a failed call to the CRM API. Message holds the human-readable text
// the server put in its error payload, when it sent one.
type APIError struct {
	Kind       error
	StatusCode int
	Message    string
	Op         string
	Cause      error // transport or decode failure, if any
}

func (e *APIError) Error() string {
	var b strings.Builder
	b.WriteString(e.Op)
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, ": status %d", e.StatusCode)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	if e.Kind != nil {
		b.WriteString(" (")
		b.WriteString(e.Kind.Error())
		b.WriteString(")")
	}
	return b.String()
}

func (e *APIError) Unwrap() []error {
	var errs []error
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Cause != nil {
		errs = append(errs, e.Cause)
	}
	return errs
}

// UserMessage returns the server-supplied message carried by err, or fallback when
// the server gave none. Validation errors report their first field message.
func UserMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) && strings.TrimSpace(apiErr.Message) != "" {
		return apiErr.Message
	}
	var vErr *ValidationError
	if errors.As(err, &vErr) && len(vErr.Fields) > 0 {
		keys := make([]string, 0, len(vErr.Fields))
		for k := range vErr.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return vErr.Fields[keys[0]]
	}
	return fallback
}

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
