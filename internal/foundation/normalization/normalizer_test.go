package normalization

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type format string

func TestNormalizer(t *testing.T) {
	n := NewNormalizer(map[string]format{"text": "text", "JSON": "json"}, "text")

	require.Equal(t, format("json"), n.Normalize("  Json "))
	require.Equal(t, format("text"), n.Normalize("yaml"))
	require.Equal(t, []string{"json", "text"}, n.ValidKeys())

	v, err := n.NormalizeWithError("")
	require.NoError(t, err)
	require.Equal(t, format("text"), v)

	_, err = n.NormalizeWithError("xml")
	require.ErrorContains(t, err, "valid options: [json text]")
}
