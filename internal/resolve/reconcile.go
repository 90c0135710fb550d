package resolve

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"ensowner/internal/owner"
	"ensowner/internal/subgraph"
)

// reconcile merges the on-chain answer with the indexed view. Chain data is
// always authoritative for the returned value; the index only contributes the
// denormalized registrant or triggers a classified error. Disagreements
// explainable by indexing lag (a state transition the index has not seen:
// expiry, release, re-registration) classify as indexing errors; anything else
// classifies as unknown. Both carry the on-chain value and the reference
// timestamp.
func (s *Service) reconcile(onchain owner.Owner, indexed *subgraph.Record, ts uint64) (owner.Owner, error) {
	if onchain == nil && indexed == nil {
		// Both layers agree the name is unregistered.
		return nil, nil
	}
	if onchain == nil || indexed == nil {
		return nil, owner.NewIndexingError(
			"index and chain disagree on whether the name is registered", onchain, ts)
	}
	if indexed.Level() != onchain.Level() {
		return nil, owner.NewUnknownError(
			fmt.Sprintf("index reports level %s, chain reports %s", indexed.Level(), onchain.Level()),
			onchain, ts)
	}

	switch oc := onchain.(type) {
	case owner.Registry:
		if !sameAddress(indexed.Owner, oc.Owner) {
			return nil, owner.NewUnknownError("owner addresses disagree", onchain, ts)
		}
		return oc, nil

	case owner.Registrar:
		indexExpired := expiredAt(ts, indexed.ExpiryDate, s.registrarGrace)
		if !sameAddress(indexed.Owner, oc.Owner) {
			if indexExpired == oc.Expired {
				return nil, owner.NewUnknownError("owner addresses disagree with matching expiry state", onchain, ts)
			}
			// Owner and expiry state both moved: a release or re-registration
			// the index has not caught up with.
			return nil, owner.NewIndexingError("index has not caught up with a lease transition", onchain, ts)
		}
		if indexExpired != oc.Expired {
			return nil, owner.NewIndexingError("index and chain disagree on expiry state", onchain, ts)
		}
		if oc.Registrant != "" && indexed.Registrant != "" &&
			!sameAddress(indexed.Registrant, common.HexToAddress(oc.Registrant)) {
			return nil, owner.NewUnknownError("registrants disagree", onchain, ts)
		}
		out := oc
		if out.Registrant == "" && indexed.Registrant != "" {
			// Denormalization benefit: take the indexed registrant verbatim,
			// casing included.
			out.Registrant = indexed.Registrant
		}
		return out, nil

	case owner.Wrapper:
		indexExpired := expiredAt(ts, indexed.ExpiryDate, s.wrapperGrace)
		if !sameAddress(indexed.WrappedOwner, oc.Owner) {
			if oc.Expired != nil && *oc.Expired != indexExpired {
				return nil, owner.NewIndexingError("index has not caught up with a wrapper transition", onchain, ts)
			}
			return nil, owner.NewUnknownError("wrapper token holders disagree", onchain, ts)
		}
		if oc.Expired != nil && *oc.Expired != indexExpired {
			return nil, owner.NewIndexingError("index and chain disagree on expiry state", onchain, ts)
		}
		return oc, nil
	}

	return nil, owner.NewUnknownError("unrecognized ownership shape", onchain, ts)
}

// sameAddress compares an index-sourced hex string against a chain address.
// The comparison parses both sides, so the index's lower-casing never causes a
// spurious mismatch; the strings themselves are left untouched.
func sameAddress(indexed string, addr common.Address) bool {
	if indexed == "" {
		return addr == (common.Address{})
	}
	return common.HexToAddress(indexed) == addr
}
