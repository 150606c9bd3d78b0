// Package parser resolves shape declarations into fully specified argument
// sets. It walks a struct's fields, classifies their types, merges them with
// partially specified descriptors, and produces the immutable Shape tree the
// engine registers onto the token engine.
package parser

import (
	"reflect"

	"github.com/argshape/argshape/internal/validation"
	"github.com/argshape/argshape/internal/values"
)

// Kind enumerates the argument variants a descriptor may resolve to.
type Kind int

const (
	// KindOption is a value argument identified by a flag spelling.
	KindOption Kind = iota

	// KindPositional is a value argument identified by position.
	KindPositional

	// KindFlag is a boolean switch, true when present.
	KindFlag

	// KindNoFlag is an inverted boolean switch, at rest true, driven to
	// false by its "no-" spelling.
	KindNoFlag

	// KindTriFlag is a ternary switch: a mutually exclusive assert-on /
	// assert-off flag pair collapsed to *bool.
	KindTriFlag
)

func (k Kind) String() string {
	switch k {
	case KindOption:
		return "option"
	case KindPositional:
		return "positional"
	case KindFlag:
		return "flag"
	case KindNoFlag:
		return "no-flag"
	case KindTriFlag:
		return "tri-flag"
	}

	return "unknown"
}

// Group identifies one mutually exclusive group. Its pointer identity ties
// member descriptors together; the zero value is an optional group.
type Group struct {
	Required bool
}

// FieldSpec is the partial descriptor for one shape field: it carries only
// what the user explicitly set, either through helper constructors or
// struct tags. Set-bits distinguish "unset" from legitimate zero values
// (nil is a valid default). A FieldSpec is consumed exactly once by
// resolution and never mutated by it.
type FieldSpec struct {
	// Field is the Go field name the descriptor attaches to. Empty for
	// specs synthesized from struct tags, where the field is implied.
	Field string

	Kind    Kind
	KindSet bool

	Short     string // single rune, without the dash
	ShortSet  bool
	ShortOnly bool

	NameOverride    string
	NameOverrideSet bool

	Help    string
	HelpSet bool

	// Default may be a typed value or a raw string to be converted the
	// same way command-line tokens are.
	Default    any
	DefaultSet bool

	Choices    []string
	ChoicesSet bool

	Converter *values.Converter

	Append     bool
	AtLeastOne bool

	Group *Group

	ValidateTag string

	// Err records a construction-time mistake (bad short spelling,
	// append combined with at-least-one). It is surfaced when the field
	// is resolved, so that all declaration errors come out of New.
	Err error
}

// merge layers an explicit builder spec over a tag-derived one. Builder
// settings win wherever both are set; tag settings survive otherwise.
func merge(tags, explicit *FieldSpec) *FieldSpec {
	if explicit == nil {
		return tags
	}

	out := *explicit

	if !out.KindSet && tags.KindSet {
		out.Kind, out.KindSet = tags.Kind, true
	}
	if !out.ShortSet && tags.ShortSet {
		out.Short, out.ShortSet = tags.Short, true
	}
	if !out.NameOverrideSet && tags.NameOverrideSet {
		out.NameOverride, out.NameOverrideSet = tags.NameOverride, true
	}
	if !out.HelpSet && tags.HelpSet {
		out.Help, out.HelpSet = tags.Help, true
	}
	if !out.DefaultSet && tags.DefaultSet {
		out.Default, out.DefaultSet = tags.Default, true
	}
	if !out.ChoicesSet && tags.ChoicesSet {
		out.Choices, out.ChoicesSet = tags.Choices, true
	}
	if out.ValidateTag == "" {
		out.ValidateTag = tags.ValidateTag
	}

	return &out
}

// ShapeSpec aggregates everything needed to resolve one shape: the explicit
// field descriptors, at most one subcommand dispatch, and the ordered
// presence constraints.
type ShapeSpec struct {
	Specs       []*FieldSpec
	Dispatch    *DispatchSpec
	Constraints []validation.Constraint
}

// DispatchSpec declares a subcommand dispatch before resolution: the
// interface-typed field it populates, the branch names in declaration
// order, and each branch's shape type with its own nested ShapeSpec.
type DispatchSpec struct {
	Field    string
	Optional bool
	Names    []string
	Types    []reflect.Type
	Branches []*ShapeSpec

	// Err carries a construction-time mistake from the builder.
	Err error
}
