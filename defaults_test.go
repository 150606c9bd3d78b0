package argshape

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDynamicDefaults(t *testing.T) {
	t.Parallel()

	p := newBasicParser(t)

	args, err := p.ParseWithDefaults([]string{"target"}, Defaults{
		"Level":   "warn",
		"Count":   7,
		"Verbose": true,
		"Color":   "false",
	})
	require.NoError(t, err)

	assert.Equal(t, "warn", args.Level)
	assert.Equal(t, 7, args.Count)
	assert.True(t, args.Verbose)
	assert.False(t, args.Color)
}

func TestDynamicDefaultsYieldToArgv(t *testing.T) {
	t.Parallel()

	p := newBasicParser(t)

	args, err := p.ParseWithDefaults(
		[]string{"target", "--level", "debug"},
		Defaults{"Level": "warn"},
	)
	require.NoError(t, err)
	assert.Equal(t, "debug", args.Level)
}

func TestDynamicDefaultsStringConversion(t *testing.T) {
	t.Parallel()

	p := newBasicParser(t)

	// A string default for a non-string field converts like a token.
	args, err := p.ParseWithDefaults([]string{"target"}, Defaults{"Count": "12"})
	require.NoError(t, err)
	assert.Equal(t, 12, args.Count)
}

func TestDynamicDefaultsErrors(t *testing.T) {
	t.Parallel()

	p := newBasicParser(t)

	_, err := p.ParseWithDefaults([]string{"target"}, Defaults{"Bogus": 1})
	require.ErrorIs(t, err, ErrUnknownField)

	_, err = p.ParseWithDefaults([]string{"target"}, Defaults{"Count": []int{1}})
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = p.ParseWithDefaults([]string{"target"}, Defaults{"Verbose": "maybe"})
	require.ErrorIs(t, err, ErrInvalidArgument)

	// The patch is checked in full before any token is parsed: even a
	// bad argv reports the patch error first.
	_, err = p.ParseWithDefaults([]string{}, Defaults{"Bogus": 1})
	require.ErrorIs(t, err, ErrUnknownField)
}

func TestDynamicDefaultsOptional(t *testing.T) {
	t.Parallel()

	p := newBasicParser(t)

	args, err := p.ParseWithDefaults([]string{"target"}, Defaults{"Rate": 2.5})
	require.NoError(t, err)
	require.NotNil(t, args.Rate)
	assert.Equal(t, 2.5, *args.Rate)

	args, err = p.ParseWithDefaults([]string{"target"}, Defaults{"Rate": nil})
	require.NoError(t, err)
	assert.Nil(t, args.Rate)
}

func TestDynamicDefaultsTriFlag(t *testing.T) {
	t.Parallel()

	type args struct {
		Cache *bool
	}

	p, err := New[args](TriFlag("Cache"))
	require.NoError(t, err)

	parsed, err := p.ParseWithDefaults([]string{}, Defaults{"Cache": true})
	require.NoError(t, err)
	require.NotNil(t, parsed.Cache)
	assert.True(t, *parsed.Cache)

	// A typed nil pointer stands for absence, same as an untyped nil.
	parsed, err = p.ParseWithDefaults([]string{}, Defaults{"Cache": (*bool)(nil)})
	require.NoError(t, err)
	assert.Nil(t, parsed.Cache)

	parsed, err = p.ParseWithDefaults([]string{"--no-cache"}, Defaults{"Cache": true})
	require.NoError(t, err)
	require.NotNil(t, parsed.Cache)
	assert.False(t, *parsed.Cache)
}

func TestBranchDefaults(t *testing.T) {
	t.Parallel()

	p := newCLIParser(t)

	patch := Defaults{"Command": Defaults{
		"serve": Defaults{"Port": 9999},
		"fetch": Defaults{"Retries": 5},
	}}

	args, err := p.ParseWithDefaults([]string{"serve"}, patch)
	require.NoError(t, err)
	serve, ok := args.Command.(*serveCmd)
	require.True(t, ok)
	assert.Equal(t, 9999, serve.Port)

	// The same patch routes by whichever branch is chosen.
	args, err = p.ParseWithDefaults([]string{"fetch", "u"}, patch)
	require.NoError(t, err)
	fetch, ok := args.Command.(*fetchCmd)
	require.True(t, ok)
	assert.Equal(t, 5, fetch.Retries)

	_, err = p.ParseWithDefaults([]string{"serve"}, Defaults{"Command": Defaults{
		"push": Defaults{},
	}})
	require.ErrorIs(t, err, ErrUnknownField)

	_, err = p.ParseWithDefaults([]string{"serve"}, Defaults{"Command": Defaults{
		"serve": Defaults{"Bogus": 1},
	}})
	require.ErrorIs(t, err, ErrUnknownField)
}
