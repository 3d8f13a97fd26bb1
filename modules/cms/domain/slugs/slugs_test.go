package slugs

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Hello World":           "hello-world",
		"  Leading & Trailing ": "leading-trailing",
		"Already-Slugged":       "already-slugged",
		"Ünïcode Näme":          "ünïcode-näme",
		"a--b":                  "a-b",
		"!!!":                   "",
	}
	for in, want := range cases {
		require.Equal(t, want, Slugify(in), in)
	}
}

func TestValid(t *testing.T) {
	require.True(t, Valid("hello-world"))
	require.False(t, Valid("Hello World"))
	require.False(t, Valid(""))
	require.False(t, Valid("trailing-"))
}
