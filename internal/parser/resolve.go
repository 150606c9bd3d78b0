package parser

import (
	"fmt"
	"reflect"
	"unicode/utf8"

	"github.com/argshape/argshape/internal/errors"
	"github.com/argshape/argshape/internal/typeinfo"
	"github.com/argshape/argshape/internal/values"
)

// Resolve turns a shape struct type and its partial descriptors into an
// immutable Shape. All declaration errors come out of here, synchronously:
// a Shape that resolved once will never fail for declaration reasons at
// parse time. Resolution is idempotent and never mutates its inputs.
func Resolve(typ reflect.Type, spec *ShapeSpec) (*Shape, error) {
	fields, err := scanFields(typ)
	if err != nil {
		return nil, err
	}

	explicit, err := indexSpecs(fields, spec)
	if err != nil {
		return nil, err
	}

	shape := &Shape{
		Type:        typ,
		Constraints: spec.Constraints,
		byKey:       map[string]*Argument{},
	}

	for _, field := range fields {
		if spec.Dispatch != nil && spec.Dispatch.Field == field.Name {
			continue
		}

		tagSpec, err := specFromTags(field)
		if err != nil {
			return nil, err
		}

		merged := merge(tagSpec, explicit[field.Name])
		if merged.Err != nil {
			return nil, fmt.Errorf("field %s: %w", field.Name, merged.Err)
		}

		arg, err := resolveField(field, merged)
		if err != nil {
			return nil, err
		}

		shape.order = append(shape.order, arg)
		shape.byKey[arg.Key] = arg
	}

	if err := assembleGroups(shape); err != nil {
		return nil, err
	}

	if err := resolveConstraints(shape); err != nil {
		return nil, err
	}

	if spec.Dispatch != nil {
		dispatch, err := resolveDispatch(fields, spec.Dispatch, len(shape.Positionals()) > 0)
		if err != nil {
			return nil, err
		}
		shape.Dispatch = dispatch
	}

	return shape, nil
}

// indexSpecs maps the explicit descriptors by field name, enforcing the
// closed attribute set: every descriptor must name an existing exported
// field, at most once, and never the dispatch field.
func indexSpecs(fields []fieldInfo, spec *ShapeSpec) (map[string]*FieldSpec, error) {
	known := map[string]bool{}
	for _, field := range fields {
		known[field.Name] = true
	}

	if d := spec.Dispatch; d != nil {
		if d.Err != nil {
			return nil, d.Err
		}
		if !known[d.Field] {
			return nil, fmt.Errorf("%w: subcommands declared for unknown field %q",
				errors.ErrInvalidParser, d.Field)
		}
	}

	explicit := map[string]*FieldSpec{}
	for _, fieldSpec := range spec.Specs {
		if fieldSpec.Err != nil {
			return nil, fmt.Errorf("field %s: %w", fieldSpec.Field, fieldSpec.Err)
		}
		if !known[fieldSpec.Field] {
			return nil, fmt.Errorf("%w: descriptor for unknown field %q",
				errors.ErrInvalidParser, fieldSpec.Field)
		}
		if _, dup := explicit[fieldSpec.Field]; dup {
			return nil, fmt.Errorf("%w: field %q described more than once",
				errors.ErrInvalidParser, fieldSpec.Field)
		}
		if spec.Dispatch != nil && spec.Dispatch.Field == fieldSpec.Field {
			return nil, fmt.Errorf("%w: field %q is both an argument and a subcommand dispatch",
				errors.ErrInvalidParser, fieldSpec.Field)
		}
		explicit[fieldSpec.Field] = fieldSpec
	}

	return explicit, nil
}

// resolveField reconciles one field's declared type with its merged partial
// descriptor into a resolved Argument.
func resolveField(field fieldInfo, spec *FieldSpec) (*Argument, error) {
	if typeinfo.DoublyWrapped(field.Type) {
		return nil, fmt.Errorf("%w: field %s: only one optional or collection layer is supported",
			errors.ErrInvalidTypehint, field.Name)
	}

	arg := &Argument{
		Key:         field.Name,
		Help:        spec.Help,
		ValidateTag: spec.ValidateTag,
		Group:       spec.Group,
		FieldIndex:  field.Index,
		FieldType:   field.Type,
	}

	kind := spec.Kind
	if !spec.KindSet {
		kind = implicitKind(field.Type)
	}
	arg.Kind = kind

	var err error
	switch kind {
	case KindFlag, KindNoFlag:
		err = resolveSwitch(arg, field, spec)
	case KindTriFlag:
		err = resolveTriFlag(arg, field, spec)
	default:
		err = resolveValue(arg, field, spec)
	}
	if err != nil {
		return nil, err
	}

	if err := resolveNaming(arg, field, spec); err != nil {
		return nil, err
	}

	return arg, nil
}

// implicitKind picks the argument kind for a field with no explicit
// constructor: booleans become flags, everything else an option. Bare
// fields are options by default, never positionals.
func implicitKind(typ reflect.Type) Kind {
	if typeinfo.IsBool(typ) {
		return KindFlag
	}

	return KindOption
}

func resolveSwitch(arg *Argument, field fieldInfo, spec *FieldSpec) error {
	if !typeinfo.IsBool(field.Type) {
		return fmt.Errorf("%w: field %s: a %s needs a bool field",
			errors.ErrInvalidTypehint, field.Name, arg.Kind)
	}
	if spec.DefaultSet {
		return fmt.Errorf("%w: field %s: defaults don't make sense for flags",
			errors.ErrInvalidArgument, field.Name)
	}
	if spec.ChoicesSet || spec.Converter != nil {
		return fmt.Errorf("%w: field %s: a %s takes no value",
			errors.ErrInvalidArgument, field.Name, arg.Kind)
	}
	if spec.Append || spec.AtLeastOne {
		return fmt.Errorf("%w: field %s: a %s occurs at most once",
			errors.ErrInvalidArgument, field.Name, arg.Kind)
	}

	return nil
}

func resolveTriFlag(arg *Argument, field fieldInfo, spec *FieldSpec) error {
	if !typeinfo.IsTernaryBool(field.Type) {
		return fmt.Errorf("%w: field %s: a tri-flag needs a *bool field",
			errors.ErrInvalidTypehint, field.Name)
	}
	if spec.DefaultSet {
		return fmt.Errorf("%w: field %s: defaults don't make sense for flags",
			errors.ErrInvalidArgument, field.Name)
	}
	if spec.ShortSet || spec.ShortOnly {
		return fmt.Errorf("%w: field %s: a tri-flag has no short form",
			errors.ErrInvalidArgument, field.Name)
	}

	return nil
}

// resolveValue handles the two value-yielding kinds: converter inference,
// multiplicity and requiredness, per the field's type signature.
func resolveValue(arg *Argument, field fieldInfo, spec *FieldSpec) error {
	bare := typeinfo.Bare(field.Type)
	_, optional := typeinfo.Optional(field.Type)
	_, collection := typeinfo.Collection(field.Type)

	if bare.Kind() == reflect.Bool && spec.Converter == nil {
		if spec.KindSet {
			return fmt.Errorf("%w: field %s: an argument yielding a value cannot be typed bool",
				errors.ErrInvalidTypehint, field.Name)
		}

		// An unadorned *bool or []bool field: nothing meaningfully
		// converts a token to bool without user intent.
		return fmt.Errorf("%w: field %s: inner type is bool",
			errors.ErrMissingConverter, field.Name)
	}

	arg.Default, arg.HasDefault = spec.Default, spec.DefaultSet

	if spec.ChoicesSet {
		arg.Choices = spec.Choices
	} else {
		arg.Choices = typeinfo.Choices(bare)
	}

	conv := spec.Converter
	if conv == nil {
		inferred, err := values.Infer(bare)
		if err != nil {
			return fmt.Errorf("field %s: %w", field.Name, err)
		}
		if collection && inferred != nil {
			inferred.Itemwise = true
		}
		conv = inferred
	}
	arg.Converter = conv

	multiple := collection && (spec.Converter == nil || spec.Converter.Itemwise)

	if spec.Append {
		if arg.Kind == KindPositional {
			return fmt.Errorf("%w: field %s: append mode is only available on options",
				errors.ErrInvalidArgument, field.Name)
		}
		if spec.AtLeastOne {
			return fmt.Errorf("%w: field %s: append is incompatible with at-least-one",
				errors.ErrInvalidArgument, field.Name)
		}
		if !multiple {
			return fmt.Errorf("%w: field %s: append mode needs a collection field",
				errors.ErrInvalidTypehint, field.Name)
		}
		arg.Append = true
	}

	switch {
	case multiple && spec.AtLeastOne:
		arg.Arity = OneOrMore
	case multiple:
		arg.Arity = ZeroOrMore
	case arg.Kind == KindPositional && (optional || collection || spec.DefaultSet):
		arg.Arity = ZeroOrOne
	default:
		arg.Arity = ExactlyOne
	}

	switch arg.Kind {
	case KindPositional:
		if spec.Group != nil {
			return fmt.Errorf("%w: field %s: positionals cannot join a mutually exclusive group",
				errors.ErrInvalidArgument, field.Name)
		}
		arg.Required = arg.Arity == ExactlyOne || arg.Arity == OneOrMore
	default:
		arg.Required = (!optional && !collection && !spec.DefaultSet) || spec.AtLeastOne
		if arg.Required && spec.Group != nil {
			return fmt.Errorf("%w: field %s: members of a mutually exclusive group must have a default",
				errors.ErrInvalidArgument, field.Name)
		}
	}

	return nil
}

// resolveNaming derives the long and short spellings. The long form comes
// from the field name unless overridden; the override becomes the visible
// spelling while the field name stays the internal key.
func resolveNaming(arg *Argument, field fieldInfo, spec *FieldSpec) error {
	arg.Long = CamelToFlag(field.Name, "-")
	if spec.NameOverrideSet {
		arg.Long = spec.NameOverride
	}

	if spec.ShortSet {
		if utf8.RuneCountInString(spec.Short) > 1 {
			return fmt.Errorf("%w: field %s: short name %q is too long",
				errors.ErrInvalidArgument, field.Name, spec.Short)
		}
		arg.Short = spec.Short
	}

	if spec.ShortOnly {
		if spec.NameOverrideSet {
			return fmt.Errorf("%w: field %s: short-only conflicts with a name override",
				errors.ErrInvalidArgument, field.Name)
		}
		if arg.Short == "" {
			if utf8.RuneCountInString(field.Name) != 1 {
				return fmt.Errorf("%w: field %s: short-only needs an explicit short name",
					errors.ErrInvalidArgument, field.Name)
			}
			arg.Short = arg.Long
		}
		arg.HideLong = true
	}

	switch arg.Kind {
	case KindNoFlag, KindTriFlag:
		arg.NegLong = "no-" + arg.Long
	}

	return nil
}

// assembleGroups collects group-tagged arguments into one MxGroup per
// distinct group value, preserving first-seen member order, and removes
// them from the directly registered argument list.
func assembleGroups(shape *Shape) error {
	index := map[*Group]*MxGroup{}

	for _, arg := range shape.order {
		if arg.Group == nil {
			shape.Args = append(shape.Args, arg)

			continue
		}

		grp, ok := index[arg.Group]
		if !ok {
			grp = &MxGroup{Group: arg.Group}
			index[arg.Group] = grp
			shape.Groups = append(shape.Groups, grp)
		}
		grp.Members = append(grp.Members, arg)
	}

	return nil
}

// resolveConstraints binds presence constraints to resolved arguments,
// checking the targets exist and filling in their display spellings.
func resolveConstraints(shape *Shape) error {
	for _, constraint := range shape.Constraints {
		for _, ref := range constraint.Refs() {
			arg := shape.Lookup(ref.Key)
			if arg == nil {
				return fmt.Errorf("%w: presence constraint targets unknown field %q",
					errors.ErrInvalidParser, ref.Key)
			}
			ref.Display = arg.DisplayName()
		}
	}

	return nil
}

// resolveDispatch validates the dispatch declaration and recursively
// resolves every branch shape into its own nested parser.
func resolveDispatch(fields []fieldInfo, spec *DispatchSpec, hasPositionals bool) (*Dispatch, error) {
	var field *fieldInfo
	for i := range fields {
		if fields[i].Name == spec.Field {
			field = &fields[i]

			break
		}
	}
	if field == nil {
		return nil, fmt.Errorf("%w: subcommands declared for unknown field %q",
			errors.ErrInvalidParser, spec.Field)
	}

	if field.Type.Kind() != reflect.Interface {
		return nil, fmt.Errorf("%w: field %s: a subcommand dispatch needs an interface field",
			errors.ErrInvalidTypehint, spec.Field)
	}

	if len(spec.Names) == 0 {
		return nil, fmt.Errorf("%w: subcommand dispatch on %s declares no branches",
			errors.ErrInvalidParser, spec.Field)
	}

	if hasPositionals {
		// The token engine reads the first positional token as the
		// command word, so the two cannot coexist on one shape.
		return nil, fmt.Errorf("%w: shape cannot declare both positionals and subcommands",
			errors.ErrInvalidParser)
	}

	dispatch := &Dispatch{
		Key:        spec.Field,
		FieldIndex: field.Index,
		FieldType:  field.Type,
		Required:   !spec.Optional,
		Names:      spec.Names,
	}

	seen := map[string]bool{}
	for i, name := range spec.Names {
		if seen[name] {
			return nil, fmt.Errorf("%w: duplicate subcommand name %q",
				errors.ErrInvalidParser, name)
		}
		seen[name] = true

		branchType := spec.Types[i]
		if !typeinfo.IsShape(branchType) {
			return nil, fmt.Errorf("%w: subcommand %q: branch type %s is not a struct shape",
				errors.ErrInvalidTypehint, name, branchType)
		}
		if !reflect.PtrTo(branchType).AssignableTo(field.Type) {
			return nil, fmt.Errorf("%w: subcommand %q: *%s is not assignable to field %s",
				errors.ErrInvalidTypehint, name, branchType, spec.Field)
		}

		branch, err := Resolve(branchType, spec.Branches[i])
		if err != nil {
			return nil, fmt.Errorf("subcommand %q: %w", name, err)
		}
		dispatch.Branches = append(dispatch.Branches, branch)
	}

	return dispatch, nil
}
