package errors

import (
	"errors"
	"fmt"
)

// Declaration errors. They are raised while a shape is resolved into a
// parser, never at parse time: each one means the declaration itself is
// broken and must be fixed in code. The chain below mirrors the intended
// hierarchy: every more specific error also satisfies
// errors.Is(err, ErrInvalidParser).
var (
	// ErrInvalidParser indicates a broken shape declaration as a whole
	// (duplicate descriptors, several subcommand dispatches, unknown
	// constraint targets, non-struct shape types).
	ErrInvalidParser = errors.New("invalid parser declaration")

	// ErrInvalidArgument indicates an inconsistent argument descriptor
	// (bad short spelling, required member of a mutually exclusive group,
	// append combined with at-least-one).
	ErrInvalidArgument = fmt.Errorf("%w: invalid argument", ErrInvalidParser)

	// ErrInvalidTypehint indicates a field type that cannot back the
	// declared argument kind (value argument over bool, doubly wrapped
	// types, dispatch over a non-interface field).
	ErrInvalidTypehint = fmt.Errorf("%w: invalid type", ErrInvalidArgument)

	// ErrMissingConverter indicates a field type for which no conversion
	// from a command-line token can be inferred and none was supplied.
	ErrMissingConverter = fmt.Errorf("%w: missing converter", ErrInvalidArgument)

	// ErrUnknownField indicates a dynamic default naming a field that
	// does not exist on the shape.
	ErrUnknownField = errors.New("unknown shape field")
)

// Parse-time errors.
var (
	// ErrParse wraps any user-input error reported by the token engine:
	// unknown flags, arity violations, failed choice membership, missing
	// required arguments or commands.
	ErrParse = errors.New("parse error")

	// ErrValidation wraps presence-constraint and field-validation
	// failures. These are business rule violations, distinct from the
	// engine's syntax errors.
	ErrValidation = errors.New("validation failed")
)
