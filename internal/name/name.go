// Package name classifies ENS name shapes and derives the node hashes used to
// address registry, wrapper, and registrar records on chain.
package name

import (
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Suffix is the managed top-level suffix.
const Suffix = "eth"

// Name is a parsed dotted name, leaf label first.
type Name struct {
	Raw    string
	Labels []string
}

// Parse splits a dotted name into labels. Pure and total; an empty string
// yields zero labels.
func Parse(raw string) Name {
	trimmed := strings.ToLower(strings.TrimSpace(raw))
	if trimmed == "" {
		return Name{Raw: raw}
	}
	return Name{Raw: raw, Labels: strings.Split(trimmed, ".")}
}

// LabelCount returns the number of labels in the name.
func (n Name) LabelCount() int { return len(n.Labels) }

// IsTopLevel reports whether the name is a top-level registrable name under
// suffix: exactly two labels with the second equal to the suffix.
func (n Name) IsTopLevel(suffix string) bool {
	return len(n.Labels) == 2 && n.Labels[1] == suffix
}

// Label returns the leaf label, or "" for an empty name.
func (n Name) Label() string {
	if len(n.Labels) == 0 {
		return ""
	}
	return n.Labels[0]
}

// String returns the normalized dotted form.
func (n Name) String() string { return strings.Join(n.Labels, ".") }

// Namehash computes the EIP-137 node hash for the name: keccak over the
// parent node and each label hash, leaf last.
func (n Name) Namehash() common.Hash {
	var node common.Hash
	for i := len(n.Labels) - 1; i >= 0; i-- {
		label := crypto.Keccak256([]byte(n.Labels[i]))
		node = common.BytesToHash(crypto.Keccak256(node.Bytes(), label))
	}
	return node
}

// LabelHash returns keccak256 of a single label. The registrar addresses
// leases by label hash, not by node.
func LabelHash(label string) common.Hash {
	return common.BytesToHash(crypto.Keccak256([]byte(strings.ToLower(label))))
}

// TokenID returns the label hash as the uint256 token identifier used by the
// registrar's ERC-721 surface.
func TokenID(label string) *big.Int {
	h := LabelHash(label)
	return new(big.Int).SetBytes(h.Bytes())
}

// WrappedTokenID returns the namehash as the uint256 token identifier used by
// the NameWrapper's ERC-1155 surface.
func (n Name) WrappedTokenID() *big.Int {
	h := n.Namehash()
	return new(big.Int).SetBytes(h.Bytes())
}
