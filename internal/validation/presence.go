// Package validation implements the post-parse rule passes: the ordered
// presence constraints a shape declares, and optional field validation
// through go-playground/validator.
package validation

import (
	"fmt"
	"strings"

	"github.com/argshape/argshape/internal/errors"
)

// Provided reports whether the named attribute was explicitly supplied on
// the command line. It is evaluated against the raw, pre-conversion parse
// state: an argument counts as provided when the engine recorded an
// occurrence, or a flag was driven away from its at-rest value.
type Provided func(key string) bool

// Ref points a constraint at one shape attribute. Key is the stable Go
// field name; Display is the user-facing spelling, filled during
// resolution so that name overrides stay consistent in error messages.
type Ref struct {
	Key     string
	Display string
}

// Constraint is one ordered presence rule. Evaluate returns whether the
// constraint matched; the first matching constraint short-circuits the
// rest, whether or not it raised.
type Constraint interface {
	// Refs exposes every attribute the constraint touches, for
	// declaration-time checking and display-name resolution.
	Refs() []*Ref

	Evaluate(provided Provided) (matched bool, err error)
}

// Imply requires and disallows co-arguments when its trigger was supplied.
// When the trigger is absent the constraint does not match and evaluation
// moves on to the next rule.
type Imply struct {
	Trigger    Ref
	Required   []Ref
	Disallowed []Ref
}

// Refs implements Constraint.
func (c *Imply) Refs() []*Ref {
	refs := []*Ref{&c.Trigger}
	for i := range c.Required {
		refs = append(refs, &c.Required[i])
	}
	for i := range c.Disallowed {
		refs = append(refs, &c.Disallowed[i])
	}

	return refs
}

// Evaluate implements Constraint.
func (c *Imply) Evaluate(provided Provided) (bool, error) {
	if !provided(c.Trigger.Key) {
		return false, nil
	}

	for _, ref := range c.Required {
		if !provided(ref.Key) {
			return true, fmt.Errorf("%w: argument %q is required when %q is passed",
				errors.ErrValidation, ref.Display, c.Trigger.Display)
		}
	}

	for _, ref := range c.Disallowed {
		if provided(ref.Key) {
			return true, fmt.Errorf("%w: argument %q is incompatible with %q",
				errors.ErrValidation, ref.Display, c.Trigger.Display)
		}
	}

	return true, nil
}

// Require demands that all of its arguments were supplied together. It is
// typically declared last, as the fallback rule reached when no earlier
// trigger fired.
type Require struct {
	Args []Ref
}

// Refs implements Constraint.
func (c *Require) Refs() []*Ref {
	refs := make([]*Ref, len(c.Args))
	for i := range c.Args {
		refs[i] = &c.Args[i]
	}

	return refs
}

// Evaluate implements Constraint.
func (c *Require) Evaluate(provided Provided) (bool, error) {
	var missing int
	for _, ref := range c.Args {
		if !provided(ref.Key) {
			missing++
		}
	}

	if missing == 0 {
		return true, nil
	}

	quantity := "only some"
	if missing == len(c.Args) {
		quantity = "none"
	}

	return true, fmt.Errorf("%w: arguments %s are required together, but %s were provided",
		errors.ErrValidation, andJoin(c.Args), quantity)
}

// Check runs the constraints in declaration order, stopping at the first
// one that matches. A matching constraint may itself return a validation
// error; a non-matching one is skipped.
func Check(constraints []Constraint, provided Provided) error {
	for _, constraint := range constraints {
		matched, err := constraint.Evaluate(provided)
		if err != nil {
			return err
		}
		if matched {
			break
		}
	}

	return nil
}

func andJoin(refs []Ref) string {
	names := make([]string, len(refs))
	for i, ref := range refs {
		names[i] = fmt.Sprintf("%q", ref.Display)
	}

	if len(names) == 1 {
		return names[0]
	}

	return strings.Join(names[:len(names)-1], ", ") + " and " + names[len(names)-1]
}
