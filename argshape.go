// Package argshape builds command-line parsers from struct declarations.
//
// A struct type is the shape of a command line: each exported field
// becomes one argument, its Go type deciding requiredness and
// multiplicity. A plain field is a required option, a pointer field an
// optional one, a slice field a repeatable one, a bool field a flag.
// Struct tags and descriptor constructors refine the defaults; both
// layers are optional for the common cases.
//
//	type Args struct {
//		Name    string   `arg:"positional"`
//		Count   int      `short:"c" default:"1"`
//		Verbose bool     `help:"print more"`
//		Tags    []string
//	}
//
//	parser, err := argshape.New[Args]()
//	args, err := parser.Parse(nil)
//
// The heavy lifting under the hood is done by cobra and pflag: every
// Parse builds a fresh command tree, so a Parser is immutable and safe
// for concurrent use. Shell completions for choice-constrained arguments
// are generated through carapace.
package argshape

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"

	"github.com/argshape/argshape/internal/engine"
	"github.com/argshape/argshape/internal/errors"
	"github.com/argshape/argshape/internal/parser"
)

// Spec is one declaration element accepted by New: an argument
// descriptor, a subcommand dispatch, a presence constraint, or a parser
// option.
type Spec interface {
	apply(b *build)
}

// build accumulates the declaration while New walks its specs.
type build struct {
	spec parser.ShapeSpec
	opts engine.Options

	// optApplied records that a parser option was seen, which is only
	// legal at the root declaration, never inside a Branch.
	optApplied bool

	err error
}

func (b *build) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

// Parser is an immutable, resolved parser for the shape type T. All
// declaration errors surface from New; a Parser that exists can only fail
// on user input.
type Parser[T any] struct {
	shape *parser.Shape
	opts  engine.Options
}

// New resolves the shape type T together with its explicit descriptors
// into a Parser. The field set is closed: every descriptor must name an
// exported field of T, and at most once.
func New[T any](specs ...Spec) (*Parser[T], error) {
	typ := reflect.TypeOf((*T)(nil)).Elem()
	if typ.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: shape type %s is not a struct", errors.ErrInvalidParser, typ)
	}

	b := &build{opts: engine.Options{Name: filepath.Base(os.Args[0])}}
	for _, spec := range specs {
		spec.apply(b)
	}
	if b.err != nil {
		return nil, b.err
	}

	shape, err := parser.Resolve(typ, &b.spec)
	if err != nil {
		return nil, err
	}

	return &Parser[T]{shape: shape, opts: b.opts}, nil
}

// MustParse is the fire-and-forget entry point: it resolves the shape,
// parses the process arguments, and exits with the parse error on bad
// input. A broken declaration panics, since that is a programming error.
func MustParse[T any](specs ...Spec) *T {
	p, err := New[T](specs...)
	if err != nil {
		panic(err)
	}

	args, err := p.Parse(nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	return args
}
