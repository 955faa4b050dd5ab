package regions

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCanonicalize(t *testing.T) {
	cases := []struct {
		source string
		expect string
	}{
		{source: "01", expect: "BLG"},
		{source: "16", expect: "PDV"},
		{source: "22", expect: "SOF"},
		{source: " 28 ", expect: "JAM"},
	}
	for _, test := range cases {
		code, err := Canonicalize(test.source)
		require.NoError(t, err)
		require.Equal(t, test.expect, code)
	}
}

func TestCanonicalizeUnknown(t *testing.T) {
	_, err := Canonicalize("99")
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown district code")

	_, err = Canonicalize("")
	require.Error(t, err)
}

func TestLookup(t *testing.T) {
	region, ok := Lookup("sof")
	require.True(t, ok)
	require.Equal(t, "Sofia (city)", region.Name)

	_, ok = Lookup("XXX")
	require.False(t, ok)
}

func TestCount(t *testing.T) {
	require.Equal(t, 28, Count())
}
