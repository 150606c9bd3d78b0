package argshape

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// kvArgs models a small key-value store CLI: list everything, unset a
// key, or set a key to a value. Which arguments may travel together is
// expressed by ordered presence rules.
type kvArgs struct {
	List  bool
	Unset bool
	Key   *string `arg:"positional"`
	Value *string
}

func newKVParser(t *testing.T) *Parser[kvArgs] {
	t.Helper()

	p, err := New[kvArgs](
		Imply("List", Disallows("Key", "Value", "Unset")),
		Imply("Unset", Requires("Key"), Disallows("Value")),
		Require("Key", "Value"),
	)
	require.NoError(t, err)

	return p
}

func TestPresenceConstraints(t *testing.T) {
	t.Parallel()

	tt := []struct {
		name   string
		argv   []string
		expMsg string
	}{
		{
			name: "list alone",
			argv: []string{"--list"},
		},
		{
			name:   "list with key",
			argv:   []string{"--list", "color"},
			expMsg: "incompatible",
		},
		{
			name:   "list with unset",
			argv:   []string{"--list", "--unset"},
			expMsg: "incompatible",
		},
		{
			name: "unset with key",
			argv: []string{"--unset", "color"},
		},
		{
			name:   "unset without key",
			argv:   []string{"--unset"},
			expMsg: "required when",
		},
		{
			name:   "unset with value",
			argv:   []string{"--unset", "color", "--value", "red"},
			expMsg: "incompatible",
		},
		{
			name: "set key value",
			argv: []string{"color", "--value", "red"},
		},
		{
			name:   "key without value",
			argv:   []string{"color"},
			expMsg: "required together",
		},
		{
			name:   "nothing at all",
			argv:   []string{},
			expMsg: "none were provided",
		},
	}

	for _, tc := range tt {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			p := newKVParser(t)

			args, err := p.Parse(tc.argv)

			if tc.expMsg != "" {
				require.ErrorIs(t, err, ErrValidation)
				assert.ErrorContains(t, err, tc.expMsg)

				return
			}

			require.NoError(t, err)
			assert.NotNil(t, args)
		})
	}
}

// TestConstraintDisplayNames checks that rule violations name arguments
// the way the user spells them, not by their Go field names.
func TestConstraintDisplayNames(t *testing.T) {
	t.Parallel()

	p := newKVParser(t)

	_, err := p.Parse([]string{"--unset"})
	require.Error(t, err)
	assert.ErrorContains(t, err, `"key"`)
	assert.ErrorContains(t, err, `"--unset"`)
}

func TestConstraintUnknownTarget(t *testing.T) {
	t.Parallel()

	type args struct {
		On bool
	}

	_, err := New[args](Imply("On", Requires("Missing")))
	require.ErrorIs(t, err, ErrInvalidParser)
}
