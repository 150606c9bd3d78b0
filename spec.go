package argshape

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/argshape/argshape/internal/errors"
	"github.com/argshape/argshape/internal/parser"
	"github.com/argshape/argshape/internal/values"
)

// FieldOption refines one argument descriptor.
type FieldOption func(*parser.FieldSpec)

type fieldSpec struct {
	spec *parser.FieldSpec
}

func (s fieldSpec) apply(b *build) {
	b.spec.Specs = append(b.spec.Specs, s.spec)
}

func newFieldSpec(field string, kind parser.Kind, kindSet bool, opts []FieldOption) Spec {
	spec := &parser.FieldSpec{Field: field, Kind: kind, KindSet: kindSet}
	for _, opt := range opts {
		opt(spec)
	}

	return fieldSpec{spec: spec}
}

// Arg attaches options to a field without changing its implicit kind:
// bool fields stay flags, everything else stays an option.
func Arg(field string, opts ...FieldOption) Spec {
	return newFieldSpec(field, parser.KindOption, false, opts)
}

// Positional declares the field as a positional argument. A slice field
// consumes every remaining word; a pointer field may be omitted.
func Positional(field string, opts ...FieldOption) Spec {
	return newFieldSpec(field, parser.KindPositional, true, opts)
}

// Option declares the field as a value option, which it would be by
// default for non-bool fields. The explicit form is needed to make a
// value option out of a bool-typed field, paired with Convert.
func Option(field string, opts ...FieldOption) Spec {
	return newFieldSpec(field, parser.KindOption, true, opts)
}

// Flag declares the field as a boolean flag, false at rest.
func Flag(field string, opts ...FieldOption) Spec {
	return newFieldSpec(field, parser.KindFlag, true, opts)
}

// NoFlag declares the field as an inverted flag: true at rest, driven to
// false by its "--no-" spelling.
func NoFlag(field string, opts ...FieldOption) Spec {
	return newFieldSpec(field, parser.KindNoFlag, true, opts)
}

// TriFlag declares a three-state flag over a *bool field: nil when
// neither spelling was supplied, true for the plain one, false for the
// "--no-" one.
func TriFlag(field string, opts ...FieldOption) Spec {
	return newFieldSpec(field, parser.KindTriFlag, true, opts)
}

// Short gives the argument a one-letter spelling, written with its dash:
// Short("-v").
func Short(spelling string) FieldOption {
	return func(s *parser.FieldSpec) {
		trimmed, ok := strings.CutPrefix(spelling, "-")
		if !ok || trimmed == "" || strings.HasPrefix(trimmed, "-") {
			s.Err = fmt.Errorf("%w: short name %q must be spelled like -x",
				errors.ErrInvalidArgument, spelling)

			return
		}
		s.Short, s.ShortSet = trimmed, true
	}
}

// ShortOnly hides the long spelling, leaving only the short one visible.
func ShortOnly() FieldOption {
	return func(s *parser.FieldSpec) {
		s.ShortOnly = true
	}
}

// Named overrides the long spelling derived from the field name. The
// field name stays the key for defaults and constraints.
func Named(long string) FieldOption {
	return func(s *parser.FieldSpec) {
		s.NameOverride, s.NameOverrideSet = long, true
	}
}

// Help sets the usage line shown for the argument.
func Help(text string) FieldOption {
	return func(s *parser.FieldSpec) {
		s.Help, s.HelpSet = text, true
	}
}

// Default declares the value used when the argument is absent, making it
// optional. A string default for a non-string field is converted exactly
// like a command-line token.
func Default(val any) FieldOption {
	return func(s *parser.FieldSpec) {
		s.Default, s.DefaultSet = val, true
	}
}

// Choices closes the set of accepted spellings. Tokens outside the set
// are rejected before conversion, and the set drives shell completion.
func Choices(choices ...string) FieldOption {
	return func(s *parser.FieldSpec) {
		s.Choices, s.ChoicesSet = choices, true
	}
}

// Convert supplies the token conversion for the whole field value. On a
// slice field the converter receives the single token and must produce
// the entire slice.
func Convert(fn func(token string) (any, error)) FieldOption {
	return func(s *parser.FieldSpec) {
		s.Converter = &values.Converter{Fn: fn}
	}
}

// ConvertEach supplies a per-element token conversion for a slice field.
func ConvertEach(fn func(token string) (any, error)) FieldOption {
	return func(s *parser.FieldSpec) {
		s.Converter = &values.Converter{Fn: fn, Itemwise: true}
	}
}

// Append makes a slice option accumulate across occurrences.
func Append() FieldOption {
	return func(s *parser.FieldSpec) {
		s.Append = true
	}
}

// AtLeastOne makes a slice argument required: parsing fails unless it
// received at least one value.
func AtLeastOne() FieldOption {
	return func(s *parser.FieldSpec) {
		s.AtLeastOne = true
	}
}

// Validate attaches a go-playground/validator tag checked against the
// reconstructed field value when validation is enabled on the parser.
func Validate(tag string) FieldOption {
	return func(s *parser.FieldSpec) {
		s.ValidateTag = tag
	}
}

// MxGroup is a handle shared by mutually exclusive flags. Identity is
// what groups arguments: every field tagged with the same handle joins
// the same exclusion.
type MxGroup struct {
	group *parser.Group
}

// NewMxGroup creates a mutual exclusion group.
func NewMxGroup() *MxGroup {
	return &MxGroup{group: &parser.Group{}}
}

// NewRequiredMxGroup creates a group of which exactly one member must be
// supplied.
func NewRequiredMxGroup() *MxGroup {
	return &MxGroup{group: &parser.Group{Required: true}}
}

// InGroup places the argument into a mutual exclusion group. Members must
// be optional, since the group may settle on any one of them.
func InGroup(g *MxGroup) FieldOption {
	return func(s *parser.FieldSpec) {
		s.Group = g.group
	}
}

// BranchSpec declares one subcommand branch: a command name bound to its
// own shape type. Built by Branch.
type BranchSpec struct {
	name string
	typ  reflect.Type
	spec *parser.ShapeSpec
	err  error
}

// Branch binds a command name to the branch shape type B, with its own
// nested declaration. Branches nest arbitrarily: a branch shape may
// itself declare subcommands.
func Branch[B any](name string, specs ...Spec) BranchSpec {
	nested := &build{}
	for _, spec := range specs {
		spec.apply(nested)
	}

	if nested.optApplied && nested.err == nil {
		nested.err = fmt.Errorf("%w: parser options are only accepted at the root",
			errors.ErrInvalidParser)
	}

	return BranchSpec{
		name: name,
		typ:  reflect.TypeOf((*B)(nil)).Elem(),
		spec: &nested.spec,
		err:  nested.err,
	}
}

type dispatchSpec struct {
	field    string
	optional bool
	branches []BranchSpec
}

func (d dispatchSpec) apply(b *build) {
	if b.spec.Dispatch != nil {
		b.fail(fmt.Errorf("%w: only one subcommand dispatch per shape",
			errors.ErrInvalidParser))

		return
	}

	spec := &parser.DispatchSpec{Field: d.field, Optional: d.optional}

	for _, branch := range d.branches {
		if branch.err != nil {
			b.fail(fmt.Errorf("subcommand %q: %w", branch.name, branch.err))

			return
		}
		if branch.name == "" || strings.HasPrefix(branch.name, "-") {
			b.fail(fmt.Errorf("%w: bad subcommand name %q",
				errors.ErrInvalidParser, branch.name))

			return
		}

		spec.Names = append(spec.Names, branch.name)
		spec.Types = append(spec.Types, branch.typ)
		spec.Branches = append(spec.Branches, branch.spec)
	}

	b.spec.Dispatch = spec
}

// Subcommands turns the interface-typed field into a required subcommand
// dispatch: exactly one branch must be invoked, and the field ends up
// holding a pointer to that branch's populated shape.
func Subcommands(field string, branches ...BranchSpec) Spec {
	return dispatchSpec{field: field, branches: branches}
}

// OptionalSubcommands is Subcommands without the requirement: when no
// branch is invoked the field stays nil.
func OptionalSubcommands(field string, branches ...BranchSpec) Spec {
	return dispatchSpec{field: field, optional: true, branches: branches}
}
