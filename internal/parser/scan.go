package parser

import (
	"fmt"
	"reflect"

	"github.com/argshape/argshape/internal/errors"
)

// fieldInfo is one scanned shape attribute: its Go name, declared type,
// index path into the (possibly embedded) struct, and raw tags.
type fieldInfo struct {
	Name  string
	Type  reflect.Type
	Index []int
	Tag   reflect.StructTag
}

// scanFields walks a shape struct and returns its argument surface in
// declaration order. Anonymous embedded structs are flattened into the
// parent, which is how shape inheritance is expressed; everything else is
// one attribute per exported field.
func scanFields(typ reflect.Type) ([]fieldInfo, error) {
	if typ.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: shape %s is not a struct", errors.ErrInvalidParser, typ)
	}

	var fields []fieldInfo
	seen := map[string]bool{}

	var walk func(typ reflect.Type, base []int) error
	walk = func(typ reflect.Type, base []int) error {
		for i := 0; i < typ.NumField(); i++ {
			field := typ.Field(i)
			index := append(append([]int{}, base...), i)

			if field.Anonymous {
				embedded := field.Type
				if embedded.Kind() == reflect.Ptr {
					return fmt.Errorf("%w: embedded shape %s must not be a pointer",
						errors.ErrInvalidTypehint, embedded)
				}
				if embedded.Kind() == reflect.Struct {
					if err := walk(embedded, index); err != nil {
						return err
					}

					continue
				}
			}

			if !field.IsExported() {
				if err := checkUnexportedTags(field); err != nil {
					return err
				}

				continue
			}

			if seen[field.Name] {
				return fmt.Errorf("%w: field %s declared more than once",
					errors.ErrInvalidParser, field.Name)
			}
			seen[field.Name] = true

			fields = append(fields, fieldInfo{
				Name:  field.Name,
				Type:  field.Type,
				Index: index,
				Tag:   field.Tag,
			})
		}

		return nil
	}

	if err := walk(typ, nil); err != nil {
		return nil, err
	}

	return fields, nil
}

var descriptorTags = []string{"arg", "long", "short", "help", "desc", "default", "choices"}

// checkUnexportedTags rejects unexported fields carrying descriptor tags:
// the field would be silently ignored otherwise, which hides a mistake.
func checkUnexportedTags(field reflect.StructField) error {
	for _, name := range descriptorTags {
		if _, ok := field.Tag.Lookup(name); ok {
			return fmt.Errorf("%w: field %s is not exported but carries a %q tag",
				errors.ErrInvalidParser, field.Name, name)
		}
	}

	return nil
}
