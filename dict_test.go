package argshape

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var verbosity = map[string]int{
	"quiet":  0,
	"normal": 1,
	"loud":   2,
}

func TestDictOption(t *testing.T) {
	t.Parallel()

	type args struct {
		Level int
	}

	p, err := New[args](DictOption("Level", verbosity, Default(1)))
	require.NoError(t, err)

	parsed, err := p.Parse([]string{"--level", "loud"})
	require.NoError(t, err)
	assert.Equal(t, 2, parsed.Level)

	parsed, err = p.Parse([]string{})
	require.NoError(t, err)
	assert.Equal(t, 1, parsed.Level)

	_, err = p.Parse([]string{"--level", "deafening"})
	require.ErrorIs(t, err, ErrParse)
	assert.ErrorContains(t, err, "invalid choice")
}

func TestDictPositional(t *testing.T) {
	t.Parallel()

	type args struct {
		Level *int
	}

	p, err := New[args](DictPositional("Level", verbosity))
	require.NoError(t, err)

	parsed, err := p.Parse([]string{"quiet"})
	require.NoError(t, err)
	require.NotNil(t, parsed.Level)
	assert.Equal(t, 0, *parsed.Level)

	parsed, err = p.Parse([]string{})
	require.NoError(t, err)
	assert.Nil(t, parsed.Level)
}

func TestDictCollection(t *testing.T) {
	t.Parallel()

	type args struct {
		Levels []int
	}

	p, err := New[args](DictOption("Levels", verbosity))
	require.NoError(t, err)

	parsed, err := p.Parse([]string{"--levels", "quiet", "--levels", "loud"})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2}, parsed.Levels)
}

func TestDictDefaultMustBeMappedValue(t *testing.T) {
	t.Parallel()

	type args struct {
		Level int
	}

	_, err := New[args](DictOption("Level", verbosity, Default(99)))
	require.ErrorIs(t, err, ErrInvalidArgument)

	// Keys are not values: the default bypasses token conversion.
	_, err = New[args](DictOption("Level", verbosity, Default("loud")))
	require.ErrorIs(t, err, ErrInvalidArgument)
}
