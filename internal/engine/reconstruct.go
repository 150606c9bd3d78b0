package engine

import (
	"fmt"
	"reflect"

	"github.com/argshape/argshape/internal/parser"
	"github.com/argshape/argshape/internal/typeinfo"
	"github.com/argshape/argshape/internal/values"
)

// Reconstruct builds the populated shape struct from the parse record.
// The returned value is a pointer to a fresh instance of the shape type:
// nothing is shared between runs. Absent arguments fall back through
// dynamic defaults, declared defaults, and finally their resting value.
func Reconstruct(shape *parser.Shape, rec *Record, patch map[string]any) (reflect.Value, error) {
	out := reflect.New(shape.Type)
	elem := out.Elem()

	for _, arg := range shape.All() {
		st := rec.states[arg.Key]
		field := elem.FieldByIndex(arg.FieldIndex)

		dyn, hasDyn := patch[arg.Key]
		if err := fill(field, arg, st, dyn, hasDyn); err != nil {
			return reflect.Value{}, err
		}
	}

	if shape.Dispatch != nil && rec.chosen != "" {
		branch, err := Reconstruct(rec.branch.shape, rec.branch, branchPatch(shape, patch, rec.chosen))
		if err != nil {
			return reflect.Value{}, err
		}
		elem.FieldByIndex(shape.Dispatch.FieldIndex).Set(branch)
	}

	return out, nil
}

func branchPatch(shape *parser.Shape, patch map[string]any, chosen string) map[string]any {
	nested, ok := patch[shape.Dispatch.Key].(map[string]any)
	if !ok {
		return nil
	}

	sub, _ := nested[chosen].(map[string]any)

	return sub
}

func fill(field reflect.Value, arg *parser.Argument, st *state, dyn any, hasDyn bool) error {
	switch arg.Kind {
	case parser.KindFlag, parser.KindNoFlag:
		on := st.on
		if !st.provided && hasDyn {
			on, _ = coerceBool(dyn)
		}
		field.SetBool(on)

		return nil

	case parser.KindTriFlag:
		switch {
		case st.provided:
			field.Set(reflect.ValueOf(st.tri))
		case hasDyn && !isAbsent(dyn):
			on, _ := coerceBool(dyn)
			field.Set(reflect.ValueOf(&on))
		}

		return nil
	}

	if st.provided {
		return assignTokens(field, arg, st.raw)
	}
	if hasDyn {
		return assignDefault(field, arg, dyn)
	}
	if arg.HasDefault {
		return assignDefault(field, arg, arg.Default)
	}

	// Absent without a default: optional stays nil, collections stay
	// empty, and anything else was required, hence always provided.
	return nil
}

// isAbsent reports whether a dynamic default stands for absence: either an
// untyped nil or a typed nil pointer like (*bool)(nil).
func isAbsent(val any) bool {
	if val == nil {
		return true
	}

	rval := reflect.ValueOf(val)

	return rval.Kind() == reflect.Ptr && rval.IsNil()
}

// assignTokens converts the collected raw tokens into the field. With an
// itemwise or inferred converter each token becomes one element; a
// whole-value converter receives its single token untouched.
func assignTokens(field reflect.Value, arg *parser.Argument, raw []string) error {
	conv := arg.Converter
	if conv != nil && !conv.Itemwise {
		val, err := conv.Convert(raw[len(raw)-1])
		if err != nil {
			return err
		}

		return assignBare(field, arg, val)
	}

	if arg.Multiple() {
		slice := reflect.MakeSlice(field.Type(), len(raw), len(raw))
		for i, token := range raw {
			val, err := conv.Convert(token)
			if err != nil {
				return err
			}
			if err := values.Assign(slice.Index(i), val); err != nil {
				return err
			}
		}
		field.Set(slice)

		return nil
	}

	val, err := conv.Convert(raw[len(raw)-1])
	if err != nil {
		return err
	}

	return assignBare(field, arg, val)
}

// assignDefault places a declared or dynamic default. A raw string default
// is routed through the same conversion pipeline as command-line tokens.
func assignDefault(field reflect.Value, arg *parser.Argument, def any) error {
	if def == nil {
		return nil
	}

	if s, ok := def.(string); ok && field.Kind() != reflect.String {
		if arg.Multiple() {
			return assignTokens(field, arg, []string{s})
		}
		val, err := arg.Converter.Convert(s)
		if err != nil {
			return fmt.Errorf("default for %s: %w", arg.Key, err)
		}

		return assignBare(field, arg, val)
	}

	return assignBare(field, arg, def)
}

// assignBare stores a bare value into a possibly pointer-wrapped field.
func assignBare(field reflect.Value, arg *parser.Argument, val any) error {
	elem, optional := typeinfo.Optional(field.Type())
	if !optional {
		return values.Assign(field, val)
	}

	given := reflect.TypeOf(val)
	if given != nil && given == field.Type() {
		field.Set(reflect.ValueOf(val))

		return nil
	}

	ptr := reflect.New(elem)
	if err := values.Assign(ptr.Elem(), val); err != nil {
		return err
	}
	field.Set(ptr)

	return nil
}
