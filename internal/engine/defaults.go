package engine

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/argshape/argshape/internal/errors"
	"github.com/argshape/argshape/internal/parser"
	"github.com/argshape/argshape/internal/typeinfo"
)

// CheckDefaults validates a dynamic defaults patch against the shape
// before anything is parsed: every key must name a known field, and every
// value must fit the field it patches. The entry under a dispatch key is a
// nested patch map keyed by branch name, validated against each named
// branch in turn.
func CheckDefaults(shape *parser.Shape, patch map[string]any) error {
	for key, val := range patch {
		if shape.Dispatch != nil && shape.Dispatch.Key == key {
			if err := checkBranchDefaults(shape.Dispatch, val); err != nil {
				return err
			}

			continue
		}

		arg := shape.Lookup(key)
		if arg == nil {
			return fmt.Errorf("%w: no argument for default %q", errors.ErrUnknownField, key)
		}

		if err := checkDefaultValue(arg, val); err != nil {
			return err
		}
	}

	return nil
}

func checkBranchDefaults(dispatch *parser.Dispatch, val any) error {
	nested, ok := val.(map[string]any)
	if !ok {
		return fmt.Errorf("%w: defaults for %s must map branch names to nested defaults",
			errors.ErrInvalidArgument, dispatch.Key)
	}

	for name, sub := range nested {
		branch := dispatch.Branch(name)
		if branch == nil {
			return fmt.Errorf("%w: no subcommand %q under %s",
				errors.ErrUnknownField, name, dispatch.Key)
		}

		branchPatch, ok := sub.(map[string]any)
		if !ok {
			return fmt.Errorf("%w: defaults for subcommand %q must be a nested map",
				errors.ErrInvalidArgument, name)
		}

		if err := CheckDefaults(branch, branchPatch); err != nil {
			return fmt.Errorf("subcommand %q: %w", name, err)
		}
	}

	return nil
}

func checkDefaultValue(arg *parser.Argument, val any) error {
	switch arg.Kind {
	case parser.KindFlag, parser.KindNoFlag:
		if _, err := coerceBool(val); err != nil {
			return fmt.Errorf("%w: default for %s: %s",
				errors.ErrInvalidArgument, arg.Key, err)
		}

		return nil

	case parser.KindTriFlag:
		switch val.(type) {
		case nil, bool, *bool:
			return nil
		}
		if _, err := coerceBool(val); err != nil {
			return fmt.Errorf("%w: default for %s: %s",
				errors.ErrInvalidArgument, arg.Key, err)
		}

		return nil
	}

	if val == nil {
		if _, optional := typeinfo.Optional(arg.FieldType); optional {
			return nil
		}

		return fmt.Errorf("%w: default for %s: nil needs an optional field",
			errors.ErrInvalidArgument, arg.Key)
	}

	// A raw string default is converted at reconstruction, exactly like a
	// command-line token. Anything else must fit the field type.
	if _, ok := val.(string); ok {
		return nil
	}

	given := reflect.TypeOf(val)
	target := arg.FieldType
	if elem, optional := typeinfo.Optional(target); optional && given.AssignableTo(elem) {
		return nil
	}
	if given.AssignableTo(target) || given.ConvertibleTo(target) {
		return nil
	}

	return fmt.Errorf("%w: default for %s: %s does not fit %s",
		errors.ErrInvalidArgument, arg.Key, given, target)
}

func coerceBool(val any) (bool, error) {
	switch v := val.(type) {
	case bool:
		return v, nil
	case *bool:
		if v == nil {
			return false, nil
		}

		return *v, nil
	case string:
		return strconv.ParseBool(v)
	default:
		return false, fmt.Errorf("%T is not a boolean", val)
	}
}
