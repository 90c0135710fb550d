package subgraph

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ensowner/internal/owner"
)

func serveGraphQL(t *testing.T, respond func(query string) any) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Query string `json:"query"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(map[string]any{"data": respond(req.Query)}))
	}))
}

func TestDomain(t *testing.T) {
	ctx := context.Background()

	t.Run("registered wrapped name", func(t *testing.T) {
		srv := serveGraphQL(t, func(query string) any {
			assert.Contains(t, query, "domains(where:")
			return map[string]any{"domains": []any{map[string]any{
				"owner":        map[string]string{"id": "0xd4416b13d2b3a9abae7acd5d6c2bbdbe25686401"},
				"registrant":   nil,
				"wrappedOwner": map[string]string{"id": "0xb6e040c9ecaae172a89bd561c5f73e1c48d28cd9"},
				"expiryDate":   "1986431823",
			}}}
		})
		defer srv.Close()

		rec, err := NewGraphClient(srv.URL, srv.Client()).Domain(ctx, "wrapped.eth")
		require.NoError(t, err)
		require.NotNil(t, rec)
		assert.Equal(t, owner.LevelNameWrapper, rec.Level())
		assert.Equal(t, "0xb6e040c9ecaae172a89bd561c5f73e1c48d28cd9", rec.WrappedOwner)
		assert.Equal(t, uint64(1986431823), rec.ExpiryDate)
	})

	t.Run("unwrapped name keeps indexed registrant casing", func(t *testing.T) {
		srv := serveGraphQL(t, func(string) any {
			return map[string]any{"domains": []any{map[string]any{
				"owner":      map[string]string{"id": "0x8fade66b79cc9f707ab26799354482eb93a5b7dd"},
				"registrant": map[string]string{"id": "0x8fade66b79cc9f707ab26799354482eb93a5b7dd"},
				"expiryDate": "1986431823",
			}}}
		})
		defer srv.Close()

		rec, err := NewGraphClient(srv.URL, srv.Client()).Domain(ctx, "registered.eth")
		require.NoError(t, err)
		assert.Equal(t, owner.LevelRegistrar, rec.Level())
		assert.Equal(t, "0x8fade66b79cc9f707ab26799354482eb93a5b7dd", rec.Registrant)
	})

	t.Run("missing name is nil record, not an error", func(t *testing.T) {
		srv := serveGraphQL(t, func(string) any {
			return map[string]any{"domains": []any{}}
		})
		defer srv.Close()

		rec, err := NewGraphClient(srv.URL, srv.Client()).Domain(ctx, "unregistered.eth")
		require.NoError(t, err)
		assert.Nil(t, rec)
	})

	t.Run("transport failure is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		_, err := NewGraphClient(srv.URL, srv.Client()).Domain(ctx, "any.eth")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "subgraph query")
	})

	t.Run("malformed expiry is an error", func(t *testing.T) {
		srv := serveGraphQL(t, func(string) any {
			return map[string]any{"domains": []any{map[string]any{
				"owner":      map[string]string{"id": "0x8fade66b79cc9f707ab26799354482eb93a5b7dd"},
				"expiryDate": "not-a-number",
			}}}
		})
		defer srv.Close()

		_, err := NewGraphClient(srv.URL, srv.Client()).Domain(ctx, "weird.eth")
		require.Error(t, err)
	})
}
