package parser

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/argshape/argshape/internal/errors"
)

// specFromTags builds the tag-derived half of a field's partial descriptor.
// Tags cover the string-representable metadata only; converters, groups and
// the flag kinds beyond `arg:"positional"` need the builder constructors.
func specFromTags(field fieldInfo) (*FieldSpec, error) {
	spec := &FieldSpec{Field: field.Name}

	if kind, ok := field.Tag.Lookup("arg"); ok {
		if kind != "positional" {
			return nil, fmt.Errorf("%w: field %s: unknown arg tag %q",
				errors.ErrInvalidParser, field.Name, kind)
		}
		spec.Kind, spec.KindSet = KindPositional, true
	}

	if long, ok := field.Tag.Lookup("long"); ok {
		spec.NameOverride, spec.NameOverrideSet = long, true
	}

	if short, ok := field.Tag.Lookup("short"); ok {
		if utf8.RuneCountInString(short) != 1 || short == "-" {
			return nil, fmt.Errorf("%w: field %s: short tag %q must be a single character",
				errors.ErrInvalidArgument, field.Name, short)
		}
		spec.Short, spec.ShortSet = short, true
	}

	// "desc" is accepted as an alias for "help".
	if help, ok := field.Tag.Lookup("help"); ok {
		spec.Help, spec.HelpSet = help, true
	} else if help, ok := field.Tag.Lookup("desc"); ok {
		spec.Help, spec.HelpSet = help, true
	}

	if def, ok := field.Tag.Lookup("default"); ok {
		spec.Default, spec.DefaultSet = def, true
	}

	if choices, ok := field.Tag.Lookup("choices"); ok {
		spec.Choices, spec.ChoicesSet = splitChoices(choices), true
	}

	spec.ValidateTag = field.Tag.Get("validate")

	return spec, nil
}

func splitChoices(raw string) []string {
	parts := strings.Split(raw, ",")
	choices := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			choices = append(choices, trimmed)
		}
	}

	return choices
}
