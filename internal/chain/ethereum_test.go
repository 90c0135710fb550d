package chain

import (
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestABISelectors(t *testing.T) {
	// Guard the hand-written ABI fragments against drift from the deployed
	// contracts by checking their well-known 4-byte selectors.
	node := common.HexToHash("0x93cdeb708b7545dc668eb9280176169d1c33cfd8ed6f04690a0bcc88a93fc4ae")

	data, err := registryABI.Pack("owner", node)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x02, 0x57, 0x1b, 0xe3}, data[:4], "ENS.owner(bytes32)")
	assert.Equal(t, node.Bytes(), data[4:36])

	data, err = registrarABI.Pack("ownerOf", node.Big())
	require.NoError(t, err)
	assert.Equal(t, []byte{0x63, 0x52, 0x21, 0x1e}, data[:4], "ERC721.ownerOf(uint256)")

	data, err = registrarABI.Pack("nameExpires", node.Big())
	require.NoError(t, err)
	assert.Equal(t, []byte{0xd6, 0xe4, 0xfa, 0x86}, data[:4], "BaseRegistrar.nameExpires(uint256)")
}

func TestIsRevert(t *testing.T) {
	assert.True(t, isRevert(errors.New("execution reverted")))
	assert.True(t, isRevert(errors.New("execution reverted: ERC721: invalid token ID")))
	assert.False(t, isRevert(errors.New("connection refused")))
	assert.False(t, isRevert(nil))
}

func TestNewEthReader(t *testing.T) {
	_, err := NewEthReader(nil, MainnetRegistry, MainnetWrapper, MainnetRegistrar)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "eth client is required")
}
