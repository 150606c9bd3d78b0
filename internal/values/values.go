// Package values converts command-line tokens into typed Go values. It is
// the reconstruction half of the argument pipeline: the engine collects raw
// strings, and this package turns them into the declared field types, either
// through a user-supplied converter or through inference on the type itself.
package values

import (
	"fmt"
	"reflect"
	"regexp"

	"github.com/argshape/argshape/internal/errors"
	"github.com/argshape/argshape/internal/typeinfo"
)

// ConvertFunc converts a single command-line token into a target value.
type ConvertFunc func(token string) (any, error)

// Converter is a resolved conversion strategy for one argument. A nil
// Converter means identity: tokens are stored as strings.
type Converter struct {
	// Fn converts one token. For itemwise converters it is applied once
	// per token; otherwise once per argument.
	Fn ConvertFunc

	// Itemwise marks the converter as per-element: on a collection-typed
	// argument each token is converted independently and the results are
	// gathered into the slice.
	Itemwise bool
}

var (
	regexpType          = reflect.TypeOf((*regexp.Regexp)(nil))
	textUnmarshalerType = reflect.TypeOf((*textUnmarshaler)(nil)).Elem()
)

type textUnmarshaler interface {
	UnmarshalText(text []byte) error
}

// Infer derives a converter for an argument whose user supplied none. The
// bare type drives the decision; collection arguments get the resulting
// converter marked itemwise by the caller.
//
// String kinds need no conversion and return a nil converter. Boolean and
// interface-only bare types cannot be converted without user intent and
// return ErrMissingConverter.
func Infer(bare reflect.Type) (*Converter, error) {
	switch {
	case bare.Kind() == reflect.Bool:
		return nil, fmt.Errorf("%w: nothing converts a token to bool", errors.ErrMissingConverter)
	case typeinfo.IsInterface(bare):
		return nil, fmt.Errorf("%w: interface type %s is not instantiable", errors.ErrMissingConverter, bare)
	case typeinfo.IsString(bare):
		// Identity, including named string types.
		if bare == reflect.TypeOf("") {
			return nil, nil
		}

		return &Converter{Fn: kindConverter(bare)}, nil
	case bare == regexpType.Elem():
		return &Converter{Fn: func(token string) (any, error) {
			pattern, err := regexp.Compile(token)
			if err != nil {
				return nil, err
			}

			return *pattern, nil
		}}, nil
	case implementsTextUnmarshaler(bare):
		return &Converter{Fn: textConverter(bare)}, nil
	case convertibleKind(bare.Kind()):
		return &Converter{Fn: kindConverter(bare)}, nil
	}

	return nil, fmt.Errorf("%w: no conversion known for %s", errors.ErrMissingConverter, bare)
}

func implementsTextUnmarshaler(typ reflect.Type) bool {
	return typ.Implements(textUnmarshalerType) ||
		reflect.PtrTo(typ).Implements(textUnmarshalerType)
}

// textConverter builds a fresh value of typ and fills it through its
// UnmarshalText implementation.
func textConverter(typ reflect.Type) ConvertFunc {
	return func(token string) (any, error) {
		ptr := reflect.New(typ)

		um, ok := ptr.Interface().(textUnmarshaler)
		if !ok {
			return nil, fmt.Errorf("%w: %s does not unmarshal text", errors.ErrMissingConverter, typ)
		}

		if err := um.UnmarshalText([]byte(token)); err != nil {
			return nil, err
		}

		return ptr.Elem().Interface(), nil
	}
}

// kindConverter parses a token into a fresh value of typ based on its
// reflect Kind, covering the primitive types, named types over them, and
// time.Duration.
func kindConverter(typ reflect.Type) ConvertFunc {
	return func(token string) (any, error) {
		elem := reflect.New(typ).Elem()
		if err := SetFromString(elem, token); err != nil {
			return nil, err
		}

		return elem.Interface(), nil
	}
}

// Convert applies the converter to a single token. A nil converter returns
// the token unchanged.
func (c *Converter) Convert(token string) (any, error) {
	if c == nil || c.Fn == nil {
		return token, nil
	}

	return c.Fn(token)
}

// Assign stores val into dst, converting between compatible named types
// when needed. It is used when placing converted values and typed dynamic
// defaults onto the shape's fields.
func Assign(dst reflect.Value, val any) error {
	if val == nil {
		dst.Set(reflect.Zero(dst.Type()))

		return nil
	}

	rval := reflect.ValueOf(val)

	switch {
	case rval.Type().AssignableTo(dst.Type()):
		dst.Set(rval)
	case rval.Type().ConvertibleTo(dst.Type()):
		dst.Set(rval.Convert(dst.Type()))
	default:
		return fmt.Errorf("%w: cannot use %T as %s", errors.ErrInvalidArgument, val, dst.Type())
	}

	return nil
}
