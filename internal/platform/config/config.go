package config

import (
	"os"
	"strconv"

	"github.com/ethereum/go-ethereum/common"

	"ensowner/internal/chain"
)

// Server captures process-level configuration.
type Server struct {
	Addr        string
	RPCURL      string
	SubgraphURL string

	Registry  common.Address
	Wrapper   common.Address
	Registrar common.Address

	// RegistrarGrace overrides the registrar's post-expiry grace window in
	// seconds; zero means use the built-in default.
	RegistrarGrace uint64

	// ForceError names a classified error kind every cross-checked
	// resolution should raise. Debug only; empty disables injection.
	ForceError string
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	return Server{
		Addr:           envOr("ENSOWNER_ADDR", ":8080"),
		RPCURL:         envOr("ETH_RPC_URL", "http://localhost:8545"),
		SubgraphURL:    os.Getenv("ENS_SUBGRAPH_URL"),
		Registry:       addrOr("ENS_REGISTRY_ADDR", chain.MainnetRegistry),
		Wrapper:        addrOr("ENS_WRAPPER_ADDR", chain.MainnetWrapper),
		Registrar:      addrOr("ENS_REGISTRAR_ADDR", chain.MainnetRegistrar),
		RegistrarGrace: uintEnv("ENS_REGISTRAR_GRACE_SECONDS"),
		ForceError:     os.Getenv("ENSOWNER_FORCE_ERROR"),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func addrOr(key string, fallback common.Address) common.Address {
	if v := os.Getenv(key); v != "" {
		return common.HexToAddress(v)
	}
	return fallback
}

func uintEnv(key string) uint64 {
	v := os.Getenv(key)
	if v == "" {
		return 0
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
