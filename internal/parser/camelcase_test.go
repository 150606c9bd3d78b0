package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCamelToFlag(t *testing.T) {
	t.Parallel()

	tt := []struct {
		in  string
		exp string
	}{
		{"Name", "name"},
		{"NumThreads", "num-threads"},
		{"HTTPAddr", "http-addr"},
		{"ServeHTTP", "serve-http"},
		{"A", "a"},
		{"APIKeyID", "api-key-id"},
		{"Value2", "value2"},
	}

	for _, tc := range tt {
		tc := tc

		t.Run(tc.in, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.exp, CamelToFlag(tc.in, "-"))
		})
	}
}
