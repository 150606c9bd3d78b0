package typeinfo

import (
	"reflect"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

type level string

func (level) Choices() []string { return []string{"debug", "info", "warn"} }

type format string

func (*format) Choices() []string { return []string{"json", "text"} }

func TestWrapping(t *testing.T) {
	t.Parallel()

	tt := []struct {
		name       string
		typ        reflect.Type
		optional   bool
		collection bool
		double     bool
		bare       reflect.Type
	}{
		{
			name: "plain string",
			typ:  reflect.TypeOf(""),
			bare: reflect.TypeOf(""),
		},
		{
			name:     "optional int",
			typ:      reflect.TypeOf((*int)(nil)),
			optional: true,
			bare:     reflect.TypeOf(0),
		},
		{
			name:       "collection of strings",
			typ:        reflect.TypeOf([]string(nil)),
			collection: true,
			bare:       reflect.TypeOf(""),
		},
		{
			name:   "double pointer",
			typ:    reflect.TypeOf((**int)(nil)),
			double: true,
			bare:   reflect.TypeOf((*int)(nil)),
		},
		{
			name:   "pointer to slice",
			typ:    reflect.TypeOf((*[]string)(nil)),
			double: true,
			bare:   reflect.TypeOf([]string(nil)),
		},
		{
			name:   "slice of pointers",
			typ:    reflect.TypeOf([]*string(nil)),
			double: true,
			bare:   reflect.TypeOf((*string)(nil)),
		},
		{
			name:   "slice of slices",
			typ:    reflect.TypeOf([][]int(nil)),
			double: true,
			bare:   reflect.TypeOf([]int(nil)),
		},
	}

	for _, tc := range tt {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, optional := Optional(tc.typ)
			assert.Equal(t, tc.optional, optional)

			_, collection := Collection(tc.typ)
			assert.Equal(t, tc.collection, collection)

			assert.Equal(t, tc.double, DoublyWrapped(tc.typ))
			assert.Equal(t, tc.bare, Bare(tc.typ))
		})
	}
}

func TestBoolClassification(t *testing.T) {
	t.Parallel()

	type namedBool bool

	assert.True(t, IsBool(reflect.TypeOf(false)))
	assert.False(t, IsBool(reflect.TypeOf(namedBool(false))))
	assert.False(t, IsBool(reflect.TypeOf("")))

	assert.True(t, IsTernaryBool(reflect.TypeOf((*bool)(nil))))
	assert.False(t, IsTernaryBool(reflect.TypeOf(false)))
	assert.False(t, IsTernaryBool(reflect.TypeOf((*namedBool)(nil))))
}

func TestChoices(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"debug", "info", "warn"}, Choices(reflect.TypeOf(level(""))))
	assert.Equal(t, []string{"json", "text"}, Choices(reflect.TypeOf(format(""))))
	assert.Nil(t, Choices(reflect.TypeOf("")))
	assert.Nil(t, Choices(reflect.TypeOf(regexp.Regexp{})))
}
