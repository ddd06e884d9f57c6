package domain

import (
	"errors"
	"fmt"
)

type ErrKind string

const (
	KindNotFound            ErrKind = "not_found"
	KindConflict            ErrKind = "conflict"
	KindIncorrectParameters ErrKind = "incorrect_parameters"
	KindTemporal            ErrKind = "temporal_violation"
	KindInfra               ErrKind = "infra"
)

// AppError is the single error type crossing layer boundaries. Message is the
// user-facing summary, Reason a secondary diagnostic string.
type AppError struct {
	Kind    ErrKind
	Message string
	Reason  string
}

func (e *AppError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s (%s)", e.Kind, e.Message, e.Reason)
}

func ErrNotFound(msg, reason string) error {
	return &AppError{Kind: KindNotFound, Message: msg, Reason: reason}
}

func ErrConflict(msg, reason string) error {
	return &AppError{Kind: KindConflict, Message: msg, Reason: reason}
}

func ErrIncorrectParameters(msg, reason string) error {
	return &AppError{Kind: KindIncorrectParameters, Message: msg, Reason: reason}
}

func ErrTemporal(msg, reason string) error {
	return &AppError{Kind: KindTemporal, Message: msg, Reason: reason}
}

// KindOf reports the kind of err, or KindInfra for anything that is not an
// *AppError.
func KindOf(err error) ErrKind {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindInfra
}

// IsKind reports whether err is an *AppError of the given kind.
func IsKind(err error, kind ErrKind) bool {
	return KindOf(err) == kind
}
