// Package owner defines the ownership result variants and the classified error
// taxonomy raised when the indexed store disagrees with chain truth.
package owner

import (
	"encoding/json"

	"github.com/ethereum/go-ethereum/common"
)

// Level identifies which contract layer holds the effective ownership record.
type Level string

const (
	// LevelRegistry is generic registry ownership with no expiry concept.
	LevelRegistry Level = "registry"

	// LevelRegistrar is an unwrapped top-level lease with a registrant.
	LevelRegistrar Level = "registrar"

	// LevelNameWrapper is tokenized ownership; the effective owner is the
	// wrapper token holder, never the wrapper contract itself.
	LevelNameWrapper Level = "nameWrapper"
)

// Owner is the resolved ownership record. It is a closed set: exactly one of
// Registry, Registrar, or Wrapper. Addr always returns the address with
// practical control of the name.
type Owner interface {
	Level() Level
	Addr() common.Address

	sealed()
}

// Registry is plain registry ownership. Subnames that were never wrapped, and
// top-level names with no registrar or wrapper record, resolve here.
type Registry struct {
	Owner common.Address
}

func (Registry) Level() Level { return LevelRegistry }

func (r Registry) Addr() common.Address { return r.Owner }

func (Registry) sealed() {}

// Registrar is an unwrapped top-level lease. Owner is the registry-recorded
// controller; Registrant is the lease holder from the registrar contract or
// the indexed store, kept verbatim in the source's casing.
type Registrar struct {
	Owner      common.Address
	Registrant string
	Expired    bool
}

func (Registrar) Level() Level { return LevelRegistrar }

func (r Registrar) Addr() common.Address { return r.Owner }

func (Registrar) sealed() {}

// Wrapper is tokenized ownership. Expired is nil when the wrapper record
// carries no expiry (subnames never report one).
type Wrapper struct {
	Owner   common.Address
	Expired *bool
}

func (Wrapper) Level() Level { return LevelNameWrapper }

func (w Wrapper) Addr() common.Address { return w.Owner }

func (Wrapper) sealed() {}

// Expiry returns the recorded expired flag, or false when none is carried.
func (w Wrapper) Expiry() bool {
	return w.Expired != nil && *w.Expired
}

// Flag boxes an expired value for the Wrapper variant.
func Flag(expired bool) *bool { return &expired }

// MarshalJSON tags each variant with its level so HTTP callers see the shape
// the level implies and nothing more.

func (r Registry) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Level Level  `json:"ownershipLevel"`
		Owner string `json:"owner"`
	}{r.Level(), r.Owner.Hex()})
}

func (r Registrar) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Level      Level  `json:"ownershipLevel"`
		Owner      string `json:"owner"`
		Registrant string `json:"registrant,omitempty"`
		Expired    bool   `json:"expired"`
	}{r.Level(), r.Owner.Hex(), r.Registrant, r.Expired})
}

func (w Wrapper) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Level   Level  `json:"ownershipLevel"`
		Owner   string `json:"owner"`
		Expired *bool  `json:"expired,omitempty"`
	}{w.Level(), w.Owner.Hex(), w.Expired})
}

// Equal reports whether two results are the same variant with equal fields.
// Registrant strings compare byte-for-byte; casing is part of the value.
func Equal(a, b Owner) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch av := a.(type) {
	case Registry:
		bv, ok := b.(Registry)
		return ok && av == bv
	case Registrar:
		bv, ok := b.(Registrar)
		return ok && av == bv
	case Wrapper:
		bv, ok := b.(Wrapper)
		if !ok || av.Owner != bv.Owner {
			return false
		}
		if (av.Expired == nil) != (bv.Expired == nil) {
			return false
		}
		return av.Expired == nil || *av.Expired == *bv.Expired
	}
	return false
}
