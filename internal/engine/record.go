// Package engine projects a resolved shape onto a cobra command tree, runs
// it over an argv slice, and reconstructs the populated shape struct from
// the outcome. Every run builds a fresh command, so a shape can be parsed
// repeatedly and concurrently.
package engine

import (
	"github.com/argshape/argshape/internal/parser"
)

// state is the mutable per-run outcome for one argument. The registered
// flag values write into it while the command tree parses.
type state struct {
	arg *parser.Argument

	// raw holds the tokens exactly as typed, before any conversion.
	// Presence constraints and reconstruction both read from here.
	raw []string

	provided bool

	// on is the resting or parsed state of a boolean switch.
	on bool

	// tri is the three-state flag outcome, nil when never supplied.
	tri *bool
}

// Record is the flat outcome of one run over a shape: one state per
// argument keyed by field name, plus the chosen subcommand branch.
type Record struct {
	shape  *parser.Shape
	states map[string]*state

	chosen string
	branch *Record
}

func newRecord(shape *parser.Shape) *Record {
	rec := &Record{shape: shape, states: map[string]*state{}}
	for _, arg := range shape.All() {
		rec.states[arg.Key] = &state{arg: arg, on: arg.AtRest()}
	}

	return rec
}

// Provided reports whether the argument for a field key was supplied on
// the command line. It is the presence predicate fed to constraints.
func (r *Record) Provided(key string) bool {
	st, ok := r.states[key]

	return ok && st.provided
}
