package argshape

import (
	"github.com/argshape/argshape/internal/errors"
)

// Declaration errors, reported by New. Each more specific error also
// satisfies errors.Is against ErrInvalidParser.
var (
	// ErrInvalidParser indicates a broken shape declaration as a whole.
	ErrInvalidParser = errors.ErrInvalidParser

	// ErrInvalidArgument indicates an inconsistent argument descriptor.
	ErrInvalidArgument = errors.ErrInvalidArgument

	// ErrInvalidTypehint indicates a field type that cannot back its
	// declared argument kind.
	ErrInvalidTypehint = errors.ErrInvalidTypehint

	// ErrMissingConverter indicates a field type with no inferrable
	// token conversion and none supplied.
	ErrMissingConverter = errors.ErrMissingConverter
)

// Parse-time errors, reported by Parse.
var (
	// ErrParse wraps user-input errors: unknown flags, missing required
	// arguments, rejected choices, stray words.
	ErrParse = errors.ErrParse

	// ErrValidation wraps presence-constraint and validation-tag
	// failures.
	ErrValidation = errors.ErrValidation

	// ErrUnknownField indicates a dynamic default naming a field the
	// shape does not have.
	ErrUnknownField = errors.ErrUnknownField
)
