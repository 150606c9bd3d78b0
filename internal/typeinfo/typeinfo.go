// Package typeinfo decomposes a declared field type into the facts the
// resolution engine needs: optionality, multiplicity, choice sets and the
// innermost "bare" type used for converter inference. All functions are pure
// and never fail; contradictions are reported by the resolution engine.
package typeinfo

import (
	"reflect"

	"github.com/argshape/argshape/internal/interfaces"
)

var choicerType = reflect.TypeOf((*interfaces.Choicer)(nil)).Elem()

// Optional reports whether typ is an optional wrapper (a pointer) and
// returns the wrapped type if so.
func Optional(typ reflect.Type) (reflect.Type, bool) {
	if typ.Kind() == reflect.Ptr {
		return typ.Elem(), true
	}

	return nil, false
}

// Collection reports whether typ is a repeated wrapper (a slice) and returns
// the element type if so.
func Collection(typ reflect.Type) (reflect.Type, bool) {
	if typ.Kind() == reflect.Slice {
		return typ.Elem(), true
	}

	return nil, false
}

// Bare unwraps at most one optional or collection layer and returns the
// innermost type used for converter inference.
func Bare(typ reflect.Type) reflect.Type {
	if elem, ok := Optional(typ); ok {
		return elem
	}
	if elem, ok := Collection(typ); ok {
		return elem
	}

	return typ
}

// DoublyWrapped reports whether typ stacks more than one wrapper layer
// (pointer-to-pointer, pointer-to-slice, slice-of-pointer, slice-of-slice).
// Only a single layer is unwrapped before resolving the bare type, so these
// cannot back an argument.
func DoublyWrapped(typ reflect.Type) bool {
	inner, wrapped := Optional(typ)
	if !wrapped {
		inner, wrapped = Collection(typ)
	}
	if !wrapped {
		return false
	}

	return inner.Kind() == reflect.Ptr || inner.Kind() == reflect.Slice
}

// IsBool reports whether typ is a plain boolean.
func IsBool(typ reflect.Type) bool {
	return typ.Kind() == reflect.Bool && typ == reflect.TypeOf(false)
}

// IsTernaryBool reports whether typ is *bool, the only type a tri-state
// flag pair may resolve to.
func IsTernaryBool(typ reflect.Type) bool {
	elem, ok := Optional(typ)

	return ok && elem == reflect.TypeOf(false)
}

// IsString reports whether typ has string as its underlying kind, in which
// case tokens are stored without conversion.
func IsString(typ reflect.Type) bool {
	return typ.Kind() == reflect.String
}

// Choices returns the closed spelling set of a bare type implementing
// Choicer, or nil. The method is looked up on both the value and its
// pointer, matching the usual method-set rules.
func Choices(typ reflect.Type) []string {
	switch {
	case typ.Implements(choicerType):
		return reflect.New(typ).Elem().Interface().(interfaces.Choicer).Choices()
	case reflect.PtrTo(typ).Implements(choicerType):
		return reflect.New(typ).Interface().(interfaces.Choicer).Choices()
	}

	return nil
}

// IsInterface reports whether the bare type is interface-only, meaning it
// cannot be instantiated from a token without an explicit converter.
func IsInterface(typ reflect.Type) bool {
	return typ.Kind() == reflect.Interface
}

// IsShape reports whether typ can act as a subcommand branch shape: a struct
// type with at least one exported field or none at all.
func IsShape(typ reflect.Type) bool {
	return typ.Kind() == reflect.Struct
}
