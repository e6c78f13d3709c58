// Package domain contains the report types, filters and errors of the dashboard.
// Errors here describe report-level failures; adapters decide how they surface.
package domain

import (
	"errors"
	"fmt"
)

// Sentinels matched with errors.Is.
var (
	ErrNotFound    = errors.New("not found")
	ErrValidation  = errors.New("validation failed")
	ErrUnavailable = errors.New("unavailable")
)

// ErrorKind classifies an Error.
type ErrorKind uint8

const (
	KindNotFound ErrorKind = iota + 1
	KindValidation
	KindUnavailable
)

func (k ErrorKind) sentinel() error {
	switch k {
	case KindNotFound:
		return ErrNotFound
	case KindValidation:
		return ErrValidation
	case KindUnavailable:
		return ErrUnavailable
	default:
		return nil
	}
}

// Error is a classified report failure.
//
// Subject is the missing entity, the rejected field or the failed
// dependency, depending on Kind. Detail is the entity ID, the rule that
// was broken or the reason the dependency failed.
type Error struct {
	Kind    ErrorKind
	Subject string
	Detail  string
	Value   any
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindNotFound:
		if e.Detail == "" {
			return e.Subject + " not found"
		}

		return fmt.Sprintf("%s %q not found", e.Subject, e.Detail)

	case KindValidation:
		if e.Subject == "" {
			return "validation failed: " + e.Detail
		}

		return fmt.Sprintf("validation failed for %s: %s", e.Subject, e.Detail)

	case KindUnavailable:
		if e.Detail == "" {
			return e.Subject + " unavailable"
		}

		return fmt.Sprintf("%s unavailable: %s", e.Subject, e.Detail)

	default:
		return e.Subject + ": " + e.Detail
	}
}

func (e *Error) Unwrap() error {
	return e.Kind.sentinel()
}

// NewNotFoundError reports a missing report, image or route.
func NewNotFoundError(entity, id string) error {
	return &Error{Kind: KindNotFound, Subject: entity, Detail: id}
}

// NewValidationError reports a rejected report selection or widget value.
func NewValidationError(field, message string) error {
	return &Error{Kind: KindValidation, Subject: field, Detail: message}
}

// NewValidationErrorWithValue is NewValidationError carrying the rejected value.
func NewValidationErrorWithValue(field, message string, value any) error {
	return &Error{Kind: KindValidation, Subject: field, Detail: message, Value: value}
}

// NewUnavailableError reports a dependency that cannot serve queries.
func NewUnavailableError(dependency, reason string) error {
	return &Error{Kind: KindUnavailable, Subject: dependency, Detail: reason}
}

// KindOf returns the kind of the first Error in err's chain, or zero.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}

	return 0
}

func IsNotFound(err error) bool    { return errors.Is(err, ErrNotFound) }
func IsValidation(err error) bool  { return errors.Is(err, ErrValidation) }
func IsUnavailable(err error) bool { return errors.Is(err, ErrUnavailable) }
