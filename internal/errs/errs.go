// Package errs defines the error kinds returned by the progress engine.
//
// Every command validates its input before touching state, so a returned
// error always means nothing was applied.
package errs

import (
	"errors"
	"fmt"
	"strings"
)

// NotFoundError indicates a command referenced an unknown item, path,
// module, or badge.
type NotFoundError struct {
	Kind string // "item", "path", "module", "badge", "user"
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %q", e.Kind, e.ID)
}

// PrerequisiteNotMetError indicates an attempt to master a locked item.
type PrerequisiteNotMetError struct {
	ItemID  string
	Missing []string
}

func (e *PrerequisiteNotMetError) Error() string {
	if len(e.Missing) == 0 {
		return fmt.Sprintf("item %q is locked", e.ItemID)
	}
	return fmt.Sprintf("item %q is locked: prerequisites not mastered: %s",
		e.ItemID, strings.Join(e.Missing, ", "))
}

// InvalidArgumentError indicates a malformed command argument, such as a
// negative delta or an unknown selection.
type InvalidArgumentError struct {
	Field  string
	Reason string
	Err    error
}

func (e *InvalidArgumentError) Error() string {
	if e.Field == "" {
		return "invalid argument: " + e.Reason
	}
	return fmt.Sprintf("invalid argument %s: %s", e.Field, e.Reason)
}

func (e *InvalidArgumentError) Unwrap() error { return e.Err }

// NotFound builds a NotFoundError.
func NotFound(kind, id string) error {
	return &NotFoundError{Kind: kind, ID: id}
}

// Invalid builds an InvalidArgumentError.
func Invalid(field, format string, args ...any) error {
	return &InvalidArgumentError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// IsNotFound reports whether err is or wraps a NotFoundError.
func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

// IsPrerequisiteNotMet reports whether err is or wraps a PrerequisiteNotMetError.
func IsPrerequisiteNotMet(err error) bool {
	var target *PrerequisiteNotMetError
	return errors.As(err, &target)
}

// IsInvalidArgument reports whether err is or wraps an InvalidArgumentError.
func IsInvalidArgument(err error) bool {
	var target *InvalidArgumentError
	return errors.As(err, &target)
}
