package engine

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/argshape/argshape/internal/parser"
)

// consumePositionals distributes the command words over the positional
// slots in declaration order. Each slot takes as many words as it may,
// while leaving enough behind to satisfy the minimum needs of every slot
// after it.
func consumePositionals(shape *parser.Shape, rec *Record) cobra.PositionalArgs {
	slots := shape.Positionals()

	return func(cmd *cobra.Command, words []string) error {
		return distribute(slots, rec, words)
	}
}

func distribute(slots []*parser.Argument, rec *Record, words []string) error {
	// Suffix sums of the minimum word count still needed from slot i on.
	needed := make([]int, len(slots)+1)
	for i := len(slots) - 1; i >= 0; i-- {
		needed[i] = needed[i+1] + slotMin(slots[i])
	}

	if len(words) < needed[0] {
		return fmt.Errorf("the following arguments are required: %s",
			strings.Join(missingSlots(slots, len(words)), ", "))
	}

	next := 0

	for i, slot := range slots {
		take := len(words) - next - needed[i+1]
		if max := slotMax(slot); take > max {
			take = max
		}

		st := rec.states[slot.Key]
		for _, word := range words[next : next+take] {
			if err := checkChoice(slot, word); err != nil {
				return err
			}
			st.raw = append(st.raw, word)
		}
		st.provided = take > 0
		next += take
	}

	if next < len(words) {
		return fmt.Errorf("unrecognized arguments: %s", strings.Join(words[next:], " "))
	}

	return nil
}

// missingSlots names the required slots whose minimum cannot be met,
// handing out the available words to earlier minimums first.
func missingSlots(slots []*parser.Argument, available int) []string {
	var missing []string
	for _, slot := range slots {
		if wanted := slotMin(slot); available >= wanted {
			available -= wanted
		} else {
			missing = append(missing, slot.Long)
		}
	}

	return missing
}

func slotMin(arg *parser.Argument) int {
	if arg.Arity == parser.ExactlyOne || arg.Arity == parser.OneOrMore {
		return 1
	}

	return 0
}

func slotMax(arg *parser.Argument) int {
	if arg.Multiple() {
		return int(^uint(0) >> 1)
	}

	return 1
}
