package argshape

import (
	"github.com/argshape/argshape/internal/validation"
)

type constraintSpec struct {
	constraint validation.Constraint
}

func (s constraintSpec) apply(b *build) {
	b.spec.Constraints = append(b.spec.Constraints, s.constraint)
}

// ImplyEffect is one consequence of an Imply trigger, built by Requires
// or Disallows.
type ImplyEffect struct {
	required   []string
	disallowed []string
}

// Requires names co-arguments that must be supplied alongside the
// trigger.
func Requires(fields ...string) ImplyEffect {
	return ImplyEffect{required: fields}
}

// Disallows names arguments that must not be supplied alongside the
// trigger.
func Disallows(fields ...string) ImplyEffect {
	return ImplyEffect{disallowed: fields}
}

// Imply declares a presence rule that fires when the trigger field was
// supplied on the command line. Constraints are checked in declaration
// order and the first whose trigger fires settles the outcome: later
// rules are not evaluated, whether or not this one fails.
func Imply(trigger string, effects ...ImplyEffect) Spec {
	constraint := &validation.Imply{Trigger: validation.Ref{Key: trigger}}
	for _, effect := range effects {
		for _, field := range effect.required {
			constraint.Required = append(constraint.Required, validation.Ref{Key: field})
		}
		for _, field := range effect.disallowed {
			constraint.Disallowed = append(constraint.Disallowed, validation.Ref{Key: field})
		}
	}

	return constraintSpec{constraint: constraint}
}

// Require declares that the named fields must all be supplied together.
// Declared last, it acts as the fallback rule reached when no earlier
// Imply trigger fired.
func Require(fields ...string) Spec {
	constraint := &validation.Require{}
	for _, field := range fields {
		constraint.Args = append(constraint.Args, validation.Ref{Key: field})
	}

	return constraintSpec{constraint: constraint}
}
