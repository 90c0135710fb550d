// Package subgraph queries the off-chain ENS index for its view of a name.
// The index is eventually consistent; callers treat it as a cross-check, never
// as an override of chain truth.
package subgraph

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	graphql "github.com/hasura/go-graphql-client"

	"ensowner/internal/owner"
)

// Record is the indexed view of one name. Address strings are kept exactly as
// the index returns them (lower-cased hex); they are never re-checksummed.
type Record struct {
	Owner        string
	Registrant   string
	WrappedOwner string
	ExpiryDate   uint64
}

// Level derives the ownership level the index implies for the record.
func (r *Record) Level() owner.Level {
	switch {
	case r.WrappedOwner != "":
		return owner.LevelNameWrapper
	case r.Registrant != "":
		return owner.LevelRegistrar
	default:
		return owner.LevelRegistry
	}
}

// Client fetches the indexed record for a name. A nil record with a nil error
// means the index has no entry; errors are transport-level failures.
type Client interface {
	Domain(ctx context.Context, name string) (*Record, error)
}

// GraphClient is the GraphQL-backed Client. One query per call, no retries.
type GraphClient struct {
	gql *graphql.Client
}

// NewGraphClient builds a client for the subgraph endpoint.
func NewGraphClient(endpoint string, httpClient *http.Client) *GraphClient {
	return &GraphClient{gql: graphql.NewClient(endpoint, httpClient)}
}

type addressRef struct {
	ID string `graphql:"id"`
}

func (a *addressRef) hex() string {
	if a == nil {
		return ""
	}
	return a.ID
}

// Domain queries the index for one name.
func (c *GraphClient) Domain(ctx context.Context, name string) (*Record, error) {
	var q struct {
		Domains []struct {
			Owner        *addressRef `graphql:"owner"`
			Registrant   *addressRef `graphql:"registrant"`
			WrappedOwner *addressRef `graphql:"wrappedOwner"`
			ExpiryDate   *string     `graphql:"expiryDate"`
		} `graphql:"domains(where: {name: $name})"`
	}
	if err := c.gql.Query(ctx, &q, map[string]any{"name": name}); err != nil {
		return nil, fmt.Errorf("subgraph query for %q: %w", name, err)
	}
	if len(q.Domains) == 0 {
		return nil, nil
	}

	d := q.Domains[0]
	rec := &Record{
		Owner:        d.Owner.hex(),
		Registrant:   d.Registrant.hex(),
		WrappedOwner: d.WrappedOwner.hex(),
	}
	if d.ExpiryDate != nil {
		expiry, err := strconv.ParseUint(*d.ExpiryDate, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("subgraph expiryDate %q for %q: %w", *d.ExpiryDate, name, err)
		}
		rec.ExpiryDate = expiry
	}
	return rec, nil
}
