package owner

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	holder = common.HexToAddress("0xb6E040C9ECAaE172a89bD561c5F73e1C48d28cd9")
	other  = common.HexToAddress("0x8FaDE66B79cC9f707aB26799354482EB93a5B7dD")
)

func TestVariants(t *testing.T) {
	t.Run("registry carries no expiry", func(t *testing.T) {
		o := Registry{Owner: holder}
		assert.Equal(t, LevelRegistry, o.Level())
		assert.Equal(t, holder, o.Addr())

		b, err := json.Marshal(o)
		require.NoError(t, err)
		assert.NotContains(t, string(b), "expired")
		assert.NotContains(t, string(b), "registrant")
	})

	t.Run("registrar exposes registrant verbatim", func(t *testing.T) {
		o := Registrar{Owner: holder, Registrant: holder.Hex(), Expired: false}
		assert.Equal(t, LevelRegistrar, o.Level())

		b, err := json.Marshal(o)
		require.NoError(t, err)
		assert.Contains(t, string(b), fmt.Sprintf("%q", holder.Hex()))
		assert.Contains(t, string(b), `"expired":false`)
	})

	t.Run("wrapper omits expired when the record has none", func(t *testing.T) {
		b, err := json.Marshal(Wrapper{Owner: holder})
		require.NoError(t, err)
		assert.NotContains(t, string(b), "expired")

		b, err = json.Marshal(Wrapper{Owner: holder, Expired: Flag(true)})
		require.NoError(t, err)
		assert.Contains(t, string(b), `"expired":true`)
	})
}

func TestEqual(t *testing.T) {
	assert.True(t, Equal(nil, nil))
	assert.False(t, Equal(Registry{Owner: holder}, nil))
	assert.True(t, Equal(Registry{Owner: holder}, Registry{Owner: holder}))
	assert.False(t, Equal(Registry{Owner: holder}, Registry{Owner: other}))
	assert.False(t, Equal(Registry{Owner: holder}, Wrapper{Owner: holder}))

	// Registrant casing is part of the value.
	lower := Registrar{Owner: holder, Registrant: "0xb6e040c9ecaae172a89bd561c5f73e1c48d28cd9"}
	checksummed := Registrar{Owner: holder, Registrant: holder.Hex()}
	assert.False(t, Equal(lower, checksummed))

	assert.True(t, Equal(Wrapper{Owner: holder, Expired: Flag(false)}, Wrapper{Owner: holder, Expired: Flag(false)}))
	assert.False(t, Equal(Wrapper{Owner: holder, Expired: Flag(false)}, Wrapper{Owner: holder}))
}

func TestClassifiedError(t *testing.T) {
	data := Registrar{Owner: holder, Registrant: holder.Hex(), Expired: true}
	err := NewIndexingError("index still reports not-expired", data, 1700000000)

	assert.Contains(t, err.Error(), "SubgraphIndexingError")
	assert.Contains(t, err.Error(), "1700000000")

	ce, ok := AsClassified(fmt.Errorf("resolving: %w", err))
	require.True(t, ok)
	assert.Equal(t, KindSubgraphIndexing, ce.Kind)
	assert.True(t, Equal(data, ce.Data))
	assert.True(t, IsIndexingLag(err))

	unknown := NewUnknownError("owner mismatch", nil, 42)
	assert.False(t, IsIndexingLag(unknown))
	assert.Nil(t, unknown.Data)
}
