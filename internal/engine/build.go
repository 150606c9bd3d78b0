package engine

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/argshape/argshape/internal/parser"
)

// Build assembles a fresh cobra command tree for a resolved shape, with a
// new Record wired into every registered flag and positional slot.
func Build(shape *parser.Shape, name string) (*cobra.Command, *Record) {
	rec := newRecord(shape)
	cmd := newCommand(shape, rec, name, func() {})

	return cmd, rec
}

// newCommand builds the command for one shape level. mark is the chain of
// record links to set when this command ends up being the one executed,
// so that nested dispatches record every level of the chosen path.
func newCommand(shape *parser.Shape, rec *Record, name string, mark func()) *cobra.Command {
	cmd := &cobra.Command{
		Use:              name,
		TraverseChildren: true,
		SilenceUsage:     true,
		SilenceErrors:    true,
		RunE: func(*cobra.Command, []string) error {
			mark()

			return nil
		},
	}

	registerFlags(cmd, shape, rec)
	registerGroups(cmd, shape)

	if shape.Dispatch != nil {
		attachBranches(cmd, rec, shape.Dispatch, mark)
		cmd.Args = rejectStray(shape.Dispatch)
	} else {
		cmd.Args = consumePositionals(shape, rec)
	}

	attachCompletions(cmd, shape)

	return cmd
}

// registerFlags projects every non-positional argument onto pflag. Shapes
// with a dispatch register on the persistent set, so that the flags stay
// reachable (and their required marks enforced) when a branch command is
// the one executed.
func registerFlags(cmd *cobra.Command, shape *parser.Shape, rec *Record) {
	flags := cmd.Flags()
	if shape.Dispatch != nil {
		flags = cmd.PersistentFlags()
	}

	for _, arg := range shape.All() {
		st := rec.states[arg.Key]

		switch arg.Kind {
		case parser.KindPositional:

		case parser.KindFlag:
			flag := flags.VarPF(&switchValue{st: st}, arg.Long, arg.Short, arg.Help)
			flag.NoOptDefVal = "true"
			flag.Hidden = arg.HideLong

		case parser.KindNoFlag:
			flag := flags.VarPF(&switchValue{st: st, invert: true}, arg.NegLong, arg.Short, arg.Help)
			flag.NoOptDefVal = "true"

		case parser.KindTriFlag:
			pos := flags.VarPF(&triValue{st: st}, arg.Long, "", arg.Help)
			pos.NoOptDefVal = "true"

			neg := flags.VarPF(&triValue{st: st, neg: true}, arg.NegLong, "", "negates --"+arg.Long)
			neg.NoOptDefVal = "true"
			neg.Hidden = true

			cmd.MarkFlagsMutuallyExclusive(arg.Long, arg.NegLong)

		default:
			flag := flags.VarPF(&rawValue{st: st}, arg.Long, arg.Short, optionUsage(arg))
			flag.Hidden = arg.HideLong
			if arg.Required {
				markRequired(cmd, flags, arg.Long)
			}
		}
	}
}

func markRequired(cmd *cobra.Command, flags *pflag.FlagSet, name string) {
	if flags == cmd.PersistentFlags() {
		cmd.MarkPersistentFlagRequired(name)
	} else {
		cmd.MarkFlagRequired(name)
	}
}

func optionUsage(arg *parser.Argument) string {
	usage := arg.Help
	if len(arg.Choices) > 0 {
		set := "{" + strings.Join(arg.Choices, ",") + "}"
		if usage == "" {
			usage = set
		} else {
			usage += " " + set
		}
	}

	return usage
}

// registerGroups marks each mutually exclusive group on the command. A
// three-state member contributes both its spellings to the exclusion.
func registerGroups(cmd *cobra.Command, shape *parser.Shape) {
	for _, group := range shape.Groups {
		var names []string
		for _, member := range group.Members {
			switch member.Kind {
			case parser.KindNoFlag:
				names = append(names, member.NegLong)
			case parser.KindTriFlag:
				names = append(names, member.Long, member.NegLong)
			default:
				names = append(names, member.Long)
			}
		}

		cmd.MarkFlagsMutuallyExclusive(names...)
		if group.Group.Required {
			cmd.MarkFlagsOneRequired(names...)
		}
	}
}

// attachBranches adds one child command per dispatch branch. The executed
// leaf records the chosen branch at every level of its ancestry.
func attachBranches(cmd *cobra.Command, rec *Record, dispatch *parser.Dispatch, mark func()) {
	for i, name := range dispatch.Names {
		branch := dispatch.Branches[i]
		branchRec := newRecord(branch)

		link := func() {
			mark()
			rec.chosen = name
			rec.branch = branchRec
		}

		cmd.AddCommand(newCommand(branch, branchRec, name, link))
	}
}

// rejectStray refuses positional words on a dispatching command: the first
// word was expected to be one of the subcommand names.
func rejectStray(dispatch *parser.Dispatch) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return nil
		}

		return fmt.Errorf("unknown command %q (expected one of: %s)",
			args[0], strings.Join(dispatch.Names, ", "))
	}
}
