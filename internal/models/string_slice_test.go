package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringSliceRoundTripPreservesOrder(t *testing.T) {
	in := StringSlice{"go", "redis", "mysql"}

	raw, err := in.Value()
	require.NoError(t, err)

	var out StringSlice
	require.NoError(t, out.Scan(raw))
	assert.Equal(t, []string{"go", "redis", "mysql"}, []string(out))
}

func TestStringSliceNilValueIsEmptyArray(t *testing.T) {
	var in StringSlice
	raw, err := in.Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", raw)
}

func TestStringSliceScanTolerance(t *testing.T) {
	cases := map[string]struct {
		input interface{}
		want  []string
	}{
		"nil":            {nil, []string{}},
		"empty string":   {"", []string{}},
		"null literal":   {"null", []string{}},
		"json array":     {`["a","b"]`, []string{"a", "b"}},
		"bytes":          {[]byte(`["x"]`), []string{"x"}},
		"legacy string":  {`"solo"`, []string{"solo"}},
		"plain fallback": {"not-json", []string{"not-json"}},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			var s StringSlice
			require.NoError(t, s.Scan(tc.input))
			assert.Equal(t, tc.want, []string(s))
		})
	}
}
