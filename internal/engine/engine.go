package engine

import (
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/argshape/argshape/internal/errors"
	"github.com/argshape/argshape/internal/parser"
	"github.com/argshape/argshape/internal/typeinfo"
	"github.com/argshape/argshape/internal/validation"
)

// Options carries the per-parser settings the engine honors on every run.
type Options struct {
	// Name is the root command spelling used in messages and help.
	Name string

	// Output receives usage and error output instead of the standard
	// streams when non-nil.
	Output io.Writer

	// Validate, when non-nil, is run over every argument carrying a
	// validation tag after reconstruction.
	Validate *validator.Validate
}

// Run performs one full parse: build a fresh command tree, execute it over
// argv, check presence constraints, reconstruct the shape struct and
// validate it. The returned value is a pointer to the populated shape.
func Run(shape *parser.Shape, argv []string, patch map[string]any, opts Options) (reflect.Value, error) {
	if patch != nil {
		if err := CheckDefaults(shape, patch); err != nil {
			return reflect.Value{}, err
		}
	}

	cmd, rec := Build(shape, opts.Name)
	if opts.Output != nil {
		cmd.SetOut(opts.Output)
		cmd.SetErr(opts.Output)
	}
	cmd.SetArgs(argv)

	if _, err := cmd.ExecuteC(); err != nil {
		return reflect.Value{}, fmt.Errorf("%w: %w", errors.ErrParse, err)
	}

	if err := checkDispatch(rec); err != nil {
		return reflect.Value{}, fmt.Errorf("%w: %w", errors.ErrParse, err)
	}

	if err := checkConstraints(rec); err != nil {
		return reflect.Value{}, err
	}

	out, err := Reconstruct(shape, rec, patch)
	if err != nil {
		return reflect.Value{}, fmt.Errorf("%w: %w", errors.ErrParse, err)
	}

	if opts.Validate != nil {
		if err := validateFields(opts.Validate, rec, out); err != nil {
			return reflect.Value{}, err
		}
	}

	return out, nil
}

// checkDispatch verifies that every required dispatch along the chosen
// path actually received a subcommand.
func checkDispatch(rec *Record) error {
	for ; rec != nil; rec = rec.branch {
		dispatch := rec.shape.Dispatch
		if dispatch == nil {
			continue
		}
		if rec.chosen == "" && dispatch.Required {
			return fmt.Errorf("a subcommand is required (one of: %s)",
				strings.Join(dispatch.Names, ", "))
		}
	}

	return nil
}

// checkConstraints evaluates the presence constraints of every shape along
// the chosen path, against what was actually typed at that level.
func checkConstraints(rec *Record) error {
	for ; rec != nil; rec = rec.branch {
		if err := validation.Check(rec.shape.Constraints, rec.Provided); err != nil {
			return err
		}
	}

	return nil
}

// validateFields runs the declared validation tags over the reconstructed
// field values, level by level along the chosen path. Nil optional fields
// are skipped: absence is governed by requiredness, not validation.
func validateFields(validate *validator.Validate, rec *Record, val reflect.Value) error {
	elem := val.Elem()

	for _, arg := range rec.shape.All() {
		if arg.ValidateTag == "" {
			continue
		}

		field := elem.FieldByIndex(arg.FieldIndex)
		if _, optional := typeinfo.Optional(field.Type()); optional {
			if field.IsNil() {
				continue
			}
			field = field.Elem()
		}

		if err := validation.Field(validate, arg.DisplayName(), field.Interface(), arg.ValidateTag); err != nil {
			return err
		}
	}

	if rec.branch != nil {
		branch := elem.FieldByIndex(rec.shape.Dispatch.FieldIndex).Elem()

		return validateFields(validate, rec.branch, branch)
	}

	return nil
}
