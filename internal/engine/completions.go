package engine

import (
	"reflect"

	"github.com/rsteube/carapace"
	"github.com/spf13/cobra"

	"github.com/argshape/argshape/internal/interfaces"
	"github.com/argshape/argshape/internal/parser"
	"github.com/argshape/argshape/internal/typeinfo"
)

// attachCompletions registers shell completion actions for one command
// level: flag completions for options with a closed choice set or a
// self-completing field type, and positional completions in slot order.
func attachCompletions(cmd *cobra.Command, shape *parser.Shape) {
	gen := carapace.Gen(cmd)

	flagActions := carapace.ActionMap{}
	var slotActions []carapace.Action
	greedy := false

	for _, arg := range shape.All() {
		action, ok := actionFor(arg)

		if arg.Kind == parser.KindPositional {
			if !ok {
				action = carapace.ActionValues()
			}
			slotActions = append(slotActions, action)
			greedy = greedy || arg.Multiple()

			continue
		}

		if ok && arg.Kind == parser.KindOption {
			flagActions[arg.Long] = action
		}
	}

	if len(flagActions) > 0 {
		gen.FlagCompletion(flagActions)
	}

	switch {
	case greedy && len(slotActions) == 1:
		gen.PositionalAnyCompletion(slotActions[0])
	case len(slotActions) > 0:
		gen.PositionalCompletion(slotActions...)
	}
}

// actionFor derives the completion action for one argument: a custom
// completer on the bare field type wins over the choice set.
func actionFor(arg *parser.Argument) (carapace.Action, bool) {
	bare := typeinfo.Bare(arg.FieldType)

	if completer, ok := completerFor(bare); ok {
		return carapace.ActionCallback(completer.Complete), true
	}

	if len(arg.Choices) > 0 {
		return carapace.ActionValues(arg.Choices...), true
	}

	return carapace.Action{}, false
}

func completerFor(bare reflect.Type) (interfaces.Completer, bool) {
	if bare.Kind() == reflect.Ptr || bare.Kind() == reflect.Interface {
		return nil, false
	}

	if completer, ok := reflect.New(bare).Elem().Interface().(interfaces.Completer); ok {
		return completer, true
	}
	if completer, ok := reflect.New(bare).Interface().(interfaces.Completer); ok {
		return completer, true
	}

	return nil, false
}
