// Package requestid assigns each request a correlation ID, honoring one
// supplied by the caller.
package requestid

import (
	"net/http"

	"github.com/google/uuid"

	"ensowner/pkg/requestcontext"
)

// Header carries the request ID in and out.
const Header = "X-Request-Id"

// RequestID middleware reads the incoming request ID or mints a new one, puts
// it on the context, and echoes it in the response.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(Header)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(Header, id)
		ctx := requestcontext.WithRequestID(r.Context(), id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
