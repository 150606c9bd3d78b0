package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/argshape/argshape/internal/errors"
)

func providedSet(keys ...string) Provided {
	set := map[string]bool{}
	for _, key := range keys {
		set[key] = true
	}

	return func(key string) bool { return set[key] }
}

func TestImply(t *testing.T) {
	t.Parallel()

	constraint := &Imply{
		Trigger:    Ref{Key: "List", Display: "--list"},
		Disallowed: []Ref{{Key: "Key", Display: "key"}, {Key: "Value", Display: "--value"}},
	}

	tt := []struct {
		name     string
		provided Provided
		matched  bool
		expErr   string
	}{
		{
			name:     "trigger absent does not match",
			provided: providedSet("Key"),
		},
		{
			name:     "trigger alone passes",
			provided: providedSet("List"),
			matched:  true,
		},
		{
			name:     "disallowed companion",
			provided: providedSet("List", "Key"),
			matched:  true,
			expErr:   `argument "key" is incompatible with "--list"`,
		},
	}

	for _, tc := range tt {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			matched, err := constraint.Evaluate(tc.provided)
			assert.Equal(t, tc.matched, matched)

			if tc.expErr == "" {
				assert.NoError(t, err)
			} else {
				require.ErrorIs(t, err, errors.ErrValidation)
				assert.ErrorContains(t, err, tc.expErr)
			}
		})
	}
}

func TestImplyRequired(t *testing.T) {
	t.Parallel()

	constraint := &Imply{
		Trigger:  Ref{Key: "Unset", Display: "--unset"},
		Required: []Ref{{Key: "Key", Display: "key"}},
	}

	matched, err := constraint.Evaluate(providedSet("Unset"))
	assert.True(t, matched)
	require.ErrorIs(t, err, errors.ErrValidation)
	assert.ErrorContains(t, err, `argument "key" is required when "--unset" is passed`)

	matched, err = constraint.Evaluate(providedSet("Unset", "Key"))
	assert.True(t, matched)
	assert.NoError(t, err)
}

func TestRequire(t *testing.T) {
	t.Parallel()

	constraint := &Require{Args: []Ref{
		{Key: "Key", Display: "key"},
		{Key: "Value", Display: "--value"},
	}}

	matched, err := constraint.Evaluate(providedSet("Key", "Value"))
	assert.True(t, matched)
	assert.NoError(t, err)

	_, err = constraint.Evaluate(providedSet("Key"))
	require.ErrorIs(t, err, errors.ErrValidation)
	assert.ErrorContains(t, err, `"key" and "--value" are required together, but only some were provided`)

	_, err = constraint.Evaluate(providedSet())
	require.ErrorIs(t, err, errors.ErrValidation)
	assert.ErrorContains(t, err, "none were provided")
}

// TestCheckFirstMatchWins exercises the ordered short-circuit: once a
// constraint matches, later ones are never evaluated, even if they would
// have failed.
func TestCheckFirstMatchWins(t *testing.T) {
	t.Parallel()

	constraints := []Constraint{
		&Imply{
			Trigger:    Ref{Key: "List", Display: "--list"},
			Disallowed: []Ref{{Key: "Key", Display: "key"}},
		},
		&Imply{
			Trigger:  Ref{Key: "Unset", Display: "--unset"},
			Required: []Ref{{Key: "Key", Display: "key"}},
		},
		&Require{Args: []Ref{
			{Key: "Key", Display: "key"},
			{Key: "Value", Display: "--value"},
		}},
	}

	// First rule matches cleanly; the fallback Require never runs.
	assert.NoError(t, Check(constraints, providedSet("List")))

	// No trigger fires, so the fallback demands both.
	err := Check(constraints, providedSet("Key"))
	require.ErrorIs(t, err, errors.ErrValidation)
	assert.ErrorContains(t, err, "required together")

	// Second rule matches and fails; evaluation stops there.
	err = Check(constraints, providedSet("Unset"))
	require.ErrorIs(t, err, errors.ErrValidation)
	assert.ErrorContains(t, err, "required when")

	// A matching rule that raises hides later rules entirely.
	err = Check(constraints, providedSet("List", "Key"))
	assert.ErrorContains(t, err, "incompatible")
}
