// Package chain reads ownership facts from the three ENS contract layers at a
// pinned block, so every expiry judgment within one resolution compares
// against a single reference timestamp.
package chain

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
)

// WrapperRecord is the NameWrapper's view of a node: the token holder and the
// recorded expiry in seconds. Owner is zero when the name is not wrapped.
type WrapperRecord struct {
	Owner  common.Address
	Expiry uint64
}

// RegistrarRecord is the registrar's lease record for a top-level label.
// Registrant is zero when no live lease exists (released or never registered).
type RegistrarRecord struct {
	Registrant common.Address
	Expiry     uint64
}

// Reader opens pinned views of chain state.
type Reader interface {
	// Pin captures the latest block once; all reads through the returned View
	// target that block.
	Pin(ctx context.Context) (View, error)
}

// View reads contract state at one fixed block. Reads are independent and safe
// to issue concurrently.
type View interface {
	// BlockNumber is the pinned height.
	BlockNumber() uint64

	// Timestamp is the pinned block's timestamp in seconds, the reference
	// timestamp for every expiry comparison in the resolution.
	Timestamp() uint64

	// RegistryOwner returns the registry-recorded owner for a node, or the
	// zero address when unset.
	RegistryOwner(ctx context.Context, node common.Hash) (common.Address, error)

	// WrapperRecord returns the wrapper token holder and expiry for a node.
	WrapperRecord(ctx context.Context, node common.Hash) (WrapperRecord, error)

	// RegistrarRecord returns the lease record for a top-level label hash.
	RegistrarRecord(ctx context.Context, labelHash common.Hash) (RegistrarRecord, error)
}
