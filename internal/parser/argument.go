package parser

import (
	"reflect"

	"github.com/argshape/argshape/internal/validation"
	"github.com/argshape/argshape/internal/values"
)

// Arity describes how many tokens a value argument consumes.
type Arity int

const (
	// ExactlyOne consumes a single token; absence is a parse failure.
	ExactlyOne Arity = iota

	// ZeroOrOne consumes a single token when present.
	ZeroOrOne

	// ZeroOrMore consumes any number of tokens, possibly none.
	ZeroOrMore

	// OneOrMore consumes at least one token.
	OneOrMore
)

// Argument is the fully resolved form of one shape field. It is immutable
// after resolution: parse-time state lives in the engine's per-call
// collectors, never here, so a Shape is safe for repeated and concurrent
// parsing.
type Argument struct {
	// Key is the Go field name, the stable internal lookup key used by
	// the flat parse mapping, dynamic defaults and presence constraints.
	Key string

	Kind Kind

	// Long is the derived or overridden long spelling, without dashes.
	// NegLong holds the "no-" spelling registered for NoFlag and TriFlag.
	Long    string
	NegLong string
	Short   string

	// HideLong hides the long spelling from help and completions when
	// the descriptor was declared short-only. The engine still registers
	// it, since its flag set cannot hold a nameless flag.
	HideLong bool

	Help        string
	Arity       Arity
	Append      bool
	Required    bool
	Default     any
	HasDefault  bool
	Converter   *values.Converter
	Choices     []string
	ValidateTag string
	Group       *Group

	// FieldIndex and FieldType locate the destination field on the shape
	// struct for reconstruction, including embedded paths.
	FieldIndex []int
	FieldType  reflect.Type
}

// Multiple reports whether the argument gathers more than one token.
func (a *Argument) Multiple() bool {
	return a.Arity == ZeroOrMore || a.Arity == OneOrMore
}

// IsValue reports whether the argument yields a converted token value, as
// opposed to the boolean switch kinds.
func (a *Argument) IsValue() bool {
	return a.Kind == KindOption || a.Kind == KindPositional
}

// AtRest returns the value a boolean switch holds when never supplied.
func (a *Argument) AtRest() bool {
	return a.Kind == KindNoFlag
}

// DisplayName is the user-facing spelling used in error messages:
// positionals go by their bare name, everything else by its long flag.
func (a *Argument) DisplayName() string {
	switch a.Kind {
	case KindPositional:
		return a.Long
	case KindNoFlag:
		return "--" + a.NegLong
	default:
		return "--" + a.Long
	}
}

// Shape is a resolved parser for one declared struct type: its ungrouped
// arguments in declaration order, its mutually exclusive groups, an
// optional subcommand dispatch, and the ordered presence constraints.
type Shape struct {
	Type        reflect.Type
	Args        []*Argument
	Groups      []*MxGroup
	Dispatch    *Dispatch
	Constraints []validation.Constraint

	byKey map[string]*Argument
	order []*Argument
}

// Lookup returns the argument for a field key, grouped or not.
func (s *Shape) Lookup(key string) *Argument {
	return s.byKey[key]
}

// All returns every argument in declaration order, including group members.
func (s *Shape) All() []*Argument {
	return s.order
}

// Positionals returns the positional arguments in declaration order.
func (s *Shape) Positionals() []*Argument {
	var args []*Argument
	for _, arg := range s.order {
		if arg.Kind == KindPositional {
			args = append(args, arg)
		}
	}

	return args
}

// MxGroup is one resolved mutually exclusive group: its members in
// first-seen order. The token engine registers the whole group as a single
// exclusion unit.
type MxGroup struct {
	Group   *Group
	Members []*Argument
}

// Dispatch is a resolved subcommand dispatch: branch names mapped 1:1 onto
// recursively resolved branch shapes, in declaration order.
type Dispatch struct {
	Key        string
	FieldIndex []int
	FieldType  reflect.Type
	Required   bool
	Names      []string
	Branches   []*Shape
}

// Branch returns the nested shape for a command name, or nil.
func (d *Dispatch) Branch(name string) *Shape {
	for i, candidate := range d.Names {
		if candidate == name {
			return d.Branches[i]
		}
	}

	return nil
}
