package argshape

import (
	"fmt"
	"reflect"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/argshape/argshape/internal/errors"
	"github.com/argshape/argshape/internal/parser"
	"github.com/argshape/argshape/internal/values"
)

// DictPositional declares a positional whose accepted spellings are the
// keys of mapping, sorted, and whose parsed value is the mapped V. A
// default must be one of the mapped values.
func DictPositional[V any](field string, mapping map[string]V, opts ...FieldOption) Spec {
	return dictSpec(field, parser.KindPositional, mapping, opts)
}

// DictOption is DictPositional for an option.
func DictOption[V any](field string, mapping map[string]V, opts ...FieldOption) Spec {
	return dictSpec(field, parser.KindOption, mapping, opts)
}

func dictSpec[V any](field string, kind parser.Kind, mapping map[string]V, opts []FieldOption) Spec {
	keys := maps.Keys(mapping)
	slices.Sort(keys)

	spec := &parser.FieldSpec{Field: field, Kind: kind, KindSet: true}
	for _, opt := range opts {
		opt(spec)
	}

	spec.Choices, spec.ChoicesSet = keys, true
	spec.Converter = &values.Converter{
		Itemwise: true,
		Fn: func(token string) (any, error) {
			val, ok := mapping[token]
			if !ok {
				return nil, fmt.Errorf("invalid choice %q (choose from %s)",
					token, strings.Join(keys, ", "))
			}

			return val, nil
		},
	}

	if spec.DefaultSet && spec.Err == nil {
		spec.Err = checkDictDefault(field, mapping, spec.Default)
	}

	return fieldSpec{spec: spec}
}

// checkDictDefault enforces that a declared default is one of the mapped
// values, never a key: the default bypasses token conversion.
func checkDictDefault[V any](field string, mapping map[string]V, def any) error {
	typed, ok := def.(V)
	if ok {
		for _, val := range mapping {
			if reflect.DeepEqual(val, typed) {
				return nil
			}
		}
	}

	return fmt.Errorf("%w: default for %s must be one of the mapped values",
		errors.ErrInvalidArgument, field)
}
