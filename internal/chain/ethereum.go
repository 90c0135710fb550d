package chain

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
)

// Well-known mainnet deployments.
var (
	MainnetRegistry  = common.HexToAddress("0x00000000000C2E074eC69A0dBFc2f8565a927D0A")
	MainnetRegistrar = common.HexToAddress("0x57f1887a8BF19b14fC0dF6Fd9B2acc9Af147eA85")
	MainnetWrapper   = common.HexToAddress("0xD4416b13d2b3a9aBae7AcD5D6C2BbDBE25686401")
)

const (
	registryABIJSON = `[{"inputs":[{"name":"node","type":"bytes32"}],"name":"owner","outputs":[{"name":"","type":"address"}],"stateMutability":"view","type":"function"}]`

	wrapperABIJSON = `[{"inputs":[{"name":"id","type":"uint256"}],"name":"getData","outputs":[{"name":"owner","type":"address"},{"name":"fuses","type":"uint32"},{"name":"expiry","type":"uint64"}],"stateMutability":"view","type":"function"}]`

	registrarABIJSON = `[{"inputs":[{"name":"tokenId","type":"uint256"}],"name":"ownerOf","outputs":[{"name":"","type":"address"}],"stateMutability":"view","type":"function"},{"inputs":[{"name":"id","type":"uint256"}],"name":"nameExpires","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"}]`
)

var (
	registryABI  = mustABI(registryABIJSON)
	wrapperABI   = mustABI(wrapperABIJSON)
	registrarABI = mustABI(registrarABIJSON)
)

func mustABI(raw string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(raw))
	if err != nil {
		panic(err)
	}
	return parsed
}

// EthReader reads the ENS contract layers over a JSON-RPC backend.
type EthReader struct {
	client    *ethclient.Client
	registry  common.Address
	wrapper   common.Address
	registrar common.Address
}

// NewEthReader builds a reader against the given contract deployments.
func NewEthReader(client *ethclient.Client, registry, wrapper, registrar common.Address) (*EthReader, error) {
	if client == nil {
		return nil, fmt.Errorf("eth client is required")
	}
	return &EthReader{
		client:    client,
		registry:  registry,
		wrapper:   wrapper,
		registrar: registrar,
	}, nil
}

// WrapperAddress returns the wrapper contract's own address. The resolver
// compares registry owners against it to detect delegation to the wrapper.
func (r *EthReader) WrapperAddress() common.Address { return r.wrapper }

// Pin fetches the latest header once and returns a view locked to it.
func (r *EthReader) Pin(ctx context.Context) (View, error) {
	header, err := r.client.HeaderByNumber(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("pinning block: %w", err)
	}
	return &ethView{reader: r, number: header.Number, timestamp: header.Time}, nil
}

type ethView struct {
	reader    *EthReader
	number    *big.Int
	timestamp uint64
}

func (v *ethView) BlockNumber() uint64 { return v.number.Uint64() }
func (v *ethView) Timestamp() uint64   { return v.timestamp }

func (v *ethView) RegistryOwner(ctx context.Context, node common.Hash) (common.Address, error) {
	out, err := v.call(ctx, v.reader.registry, registryABI, "owner", node)
	if err != nil {
		return common.Address{}, fmt.Errorf("registry owner: %w", err)
	}
	if len(out) == 0 {
		return common.Address{}, nil
	}
	return out[0].(common.Address), nil
}

func (v *ethView) WrapperRecord(ctx context.Context, node common.Hash) (WrapperRecord, error) {
	id := new(big.Int).SetBytes(node.Bytes())
	out, err := v.call(ctx, v.reader.wrapper, wrapperABI, "getData", id)
	if err != nil {
		return WrapperRecord{}, fmt.Errorf("wrapper getData: %w", err)
	}
	if len(out) == 0 {
		return WrapperRecord{}, nil
	}
	return WrapperRecord{
		Owner:  out[0].(common.Address),
		Expiry: out[2].(uint64),
	}, nil
}

func (v *ethView) RegistrarRecord(ctx context.Context, labelHash common.Hash) (RegistrarRecord, error) {
	id := new(big.Int).SetBytes(labelHash.Bytes())

	var rec RegistrarRecord
	out, err := v.call(ctx, v.reader.registrar, registrarABI, "ownerOf", id)
	switch {
	case isRevert(err):
		// ownerOf reverts for released or never-registered leases; that is
		// "no registrant", not a transport failure.
	case err != nil:
		return RegistrarRecord{}, fmt.Errorf("registrar ownerOf: %w", err)
	case len(out) > 0:
		rec.Registrant = out[0].(common.Address)
	}

	out, err = v.call(ctx, v.reader.registrar, registrarABI, "nameExpires", id)
	if err != nil {
		return RegistrarRecord{}, fmt.Errorf("registrar nameExpires: %w", err)
	}
	if len(out) > 0 {
		rec.Expiry = out[0].(*big.Int).Uint64()
	}
	return rec, nil
}

func (v *ethView) call(ctx context.Context, to common.Address, contract abi.ABI, method string, args ...any) ([]any, error) {
	data, err := contract.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("packing %s: %w", method, err)
	}
	res, err := v.reader.client.CallContract(ctx, ethereum.CallMsg{To: &to, Data: data}, v.number)
	if err != nil {
		return nil, err
	}
	if len(res) == 0 {
		return nil, nil
	}
	out, err := contract.Unpack(method, res)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", method, err)
	}
	return out, nil
}

func isRevert(err error) bool {
	return err != nil && strings.Contains(err.Error(), "revert")
}
