// Package interfaces holds the small capability interfaces that shape field
// types may implement to influence how they are resolved into arguments.
package interfaces

import (
	"github.com/rsteube/carapace"
)

// Choicer constrains a field type to a closed set of spellings. A bare field
// type implementing Choicer resolves with those spellings as its choice set,
// and invalid values are rejected by the token engine before conversion.
type Choicer interface {
	Choices() []string
}

// Completer is the interface for types that can provide their own shell
// completion suggestions, overriding the default choice-based completions.
type Completer interface {
	Complete(ctx carapace.Context) carapace.Action
}
