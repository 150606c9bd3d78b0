package engine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
	"golang.org/x/exp/slices"

	"github.com/argshape/argshape/internal/parser"
)

// rawValue collects the textual occurrences of a value option. Tokens are
// kept as typed: conversion happens once, at reconstruction, so a failed
// conversion never leaves a half-written flag behind. Membership in a
// closed choice set is the only thing checked here.
type rawValue struct {
	st *state
}

var _ pflag.Value = (*rawValue)(nil)

func (v *rawValue) Set(token string) error {
	if err := checkChoice(v.st.arg, token); err != nil {
		return err
	}

	if v.st.arg.Multiple() {
		v.st.raw = append(v.st.raw, token)
	} else {
		// Last occurrence wins for single-valued options.
		v.st.raw = []string{token}
	}
	v.st.provided = true

	return nil
}

func (v *rawValue) Type() string { return "string" }

func (v *rawValue) String() string { return strings.Join(v.st.raw, ",") }

// switchValue is the boolean flag value. The inverted form backs the
// negative spelling of a no-flag, where supplying the flag stores false.
type switchValue struct {
	st     *state
	invert bool
}

var _ pflag.Value = (*switchValue)(nil)

func (v *switchValue) Set(token string) error {
	on, err := strconv.ParseBool(token)
	if err != nil {
		return err
	}

	if v.invert {
		on = !on
	}
	v.st.on = on
	// Presence follows the spelling being given, not the resulting value:
	// an explicit --flag=false counts as provided even though it matches
	// the at-rest default.
	v.st.provided = true

	return nil
}

func (v *switchValue) Type() string { return "bool" }

func (v *switchValue) String() string { return strconv.FormatBool(v.st.arg.AtRest()) }

// triValue backs one spelling of a three-state flag pair. Both spellings
// share the state; whichever is supplied decides through a non-nil bool,
// and silence leaves the state nil.
type triValue struct {
	st  *state
	neg bool
}

var _ pflag.Value = (*triValue)(nil)

func (v *triValue) Set(token string) error {
	on, err := strconv.ParseBool(token)
	if err != nil {
		return err
	}

	if v.neg {
		on = !on
	}
	v.st.tri = &on
	v.st.provided = true

	return nil
}

func (v *triValue) Type() string { return "bool" }

func (v *triValue) String() string { return "" }

func checkChoice(arg *parser.Argument, token string) error {
	if len(arg.Choices) == 0 || slices.Contains(arg.Choices, token) {
		return nil
	}

	return fmt.Errorf("invalid choice %q for %s (choose from %s)",
		token, arg.DisplayName(), strings.Join(arg.Choices, ", "))
}
