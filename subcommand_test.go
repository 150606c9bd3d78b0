package argshape

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fetchCmd struct {
	URL     string `arg:"positional"`
	Retries int    `default:"0"`
}

type serveCmd struct {
	Port int `default:"8080"`
}

type cliArgs struct {
	Verbose bool
	Command any
}

func newCLIParser(t *testing.T) *Parser[cliArgs] {
	t.Helper()

	p, err := New[cliArgs](Subcommands("Command",
		Branch[fetchCmd]("fetch"),
		Branch[serveCmd]("serve"),
	))
	require.NoError(t, err)

	return p
}

func TestSubcommands(t *testing.T) {
	t.Parallel()

	p := newCLIParser(t)

	args, err := p.Parse([]string{"--verbose", "serve", "--port", "9090"})
	require.NoError(t, err)
	assert.True(t, args.Verbose)

	serve, ok := args.Command.(*serveCmd)
	require.True(t, ok)
	assert.Equal(t, 9090, serve.Port)

	args, err = p.Parse([]string{"fetch", "https://example.com", "--retries", "2"})
	require.NoError(t, err)
	assert.False(t, args.Verbose)

	fetch, ok := args.Command.(*fetchCmd)
	require.True(t, ok)
	assert.Equal(t, "https://example.com", fetch.URL)
	assert.Equal(t, 2, fetch.Retries)
}

func TestSubcommandDefaults(t *testing.T) {
	t.Parallel()

	p := newCLIParser(t)

	args, err := p.Parse([]string{"serve"})
	require.NoError(t, err)

	serve, ok := args.Command.(*serveCmd)
	require.True(t, ok)
	assert.Equal(t, 8080, serve.Port)
}

func TestSubcommandRequired(t *testing.T) {
	t.Parallel()

	p := newCLIParser(t)

	_, err := p.Parse([]string{})
	require.ErrorIs(t, err, ErrParse)
	assert.ErrorContains(t, err, "subcommand is required")

	_, err = p.Parse([]string{"--verbose"})
	require.ErrorIs(t, err, ErrParse)
}

func TestSubcommandUnknown(t *testing.T) {
	t.Parallel()

	p := newCLIParser(t)

	_, err := p.Parse([]string{"push"})
	require.ErrorIs(t, err, ErrParse)
}

func TestOptionalSubcommands(t *testing.T) {
	t.Parallel()

	p, err := New[cliArgs](OptionalSubcommands("Command",
		Branch[serveCmd]("serve"),
	))
	require.NoError(t, err)

	args, err := p.Parse([]string{"--verbose"})
	require.NoError(t, err)
	assert.True(t, args.Verbose)
	assert.Nil(t, args.Command)

	args, err = p.Parse([]string{"serve"})
	require.NoError(t, err)
	assert.NotNil(t, args.Command)
}

func TestNestedSubcommands(t *testing.T) {
	t.Parallel()

	type leafCmd struct {
		Name string `arg:"positional"`
	}
	type midCmd struct {
		All bool
		Sub any
	}
	type rootArgs struct {
		Command any
	}

	p, err := New[rootArgs](Subcommands("Command",
		Branch[midCmd]("remote",
			Subcommands("Sub", Branch[leafCmd]("add")),
		),
	))
	require.NoError(t, err)

	args, err := p.Parse([]string{"remote", "--all", "add", "origin"})
	require.NoError(t, err)

	mid, ok := args.Command.(*midCmd)
	require.True(t, ok)
	assert.True(t, mid.All)

	leaf, ok := mid.Sub.(*leafCmd)
	require.True(t, ok)
	assert.Equal(t, "origin", leaf.Name)

	// Stopping at the middle level leaves its required dispatch unmet.
	_, err = p.Parse([]string{"remote"})
	require.ErrorIs(t, err, ErrParse)
}

func TestSubcommandDeclarationErrors(t *testing.T) {
	t.Parallel()

	type twoDispatch struct {
		A any
		B any
	}

	_, err := New[twoDispatch](
		Subcommands("A", Branch[serveCmd]("serve")),
		Subcommands("B", Branch[serveCmd]("serve")),
	)
	require.ErrorIs(t, err, ErrInvalidParser)

	type withPositional struct {
		Path    string `arg:"positional"`
		Command any
	}

	_, err = New[withPositional](Subcommands("Command", Branch[serveCmd]("serve")))
	require.ErrorIs(t, err, ErrInvalidParser)

	// Parser options are rejected below the root.
	type root struct {
		Command any
	}

	_, err = New[root](Subcommands("Command",
		Branch[serveCmd]("serve", WithName("nope")),
	))
	require.ErrorIs(t, err, ErrInvalidParser)
}
