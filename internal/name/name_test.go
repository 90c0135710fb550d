package name

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("top-level name has two labels", func(t *testing.T) {
		n := Parse("example.eth")
		require.Equal(t, []string{"example", "eth"}, n.Labels)
		assert.True(t, n.IsTopLevel(Suffix))
		assert.Equal(t, "example", n.Label())
	})

	t.Run("subname is not top-level", func(t *testing.T) {
		n := Parse("sub.example.eth")
		assert.Equal(t, 3, n.LabelCount())
		assert.False(t, n.IsTopLevel(Suffix))
	})

	t.Run("bare suffix is not top-level", func(t *testing.T) {
		assert.False(t, Parse("eth").IsTopLevel(Suffix))
	})

	t.Run("two labels under a different suffix are not registrable", func(t *testing.T) {
		assert.False(t, Parse("example.xyz").IsTopLevel(Suffix))
	})

	t.Run("empty string yields zero labels", func(t *testing.T) {
		n := Parse("")
		assert.Equal(t, 0, n.LabelCount())
		assert.Equal(t, "", n.Label())
	})

	t.Run("input is lower-cased and trimmed", func(t *testing.T) {
		n := Parse("  Example.ETH ")
		assert.Equal(t, "example.eth", n.String())
		assert.True(t, n.IsTopLevel(Suffix))
	})
}

func TestNamehash(t *testing.T) {
	// Reference vectors from EIP-137.
	cases := []struct {
		name string
		want string
	}{
		{"", "0x0000000000000000000000000000000000000000000000000000000000000000"},
		{"eth", "0x93cdeb708b7545dc668eb9280176169d1c33cfd8ed6f04690a0bcc88a93fc4ae"},
		{"foo.eth", "0xde9b09fd7c5f901e23a3f19fecc54828e9c848539801e86591bd9801b019f84f"},
	}
	for _, tc := range cases {
		got := Parse(tc.name).Namehash()
		assert.Equal(t, common.HexToHash(tc.want), got, "namehash(%q)", tc.name)
	}
}

func TestLabelHash(t *testing.T) {
	assert.Equal(t,
		common.HexToHash("0x4f5b812789fc606be1b3b16908db13fc7a9adf7ca72641f84d75b47069d3d7f0"),
		LabelHash("eth"))
	// TokenID is the same digest as an integer.
	assert.Equal(t, LabelHash("eth").Big(), TokenID("eth"))
}

func TestWrappedTokenID(t *testing.T) {
	n := Parse("foo.eth")
	assert.Equal(t, n.Namehash().Big(), n.WrappedTokenID())
}
