package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/minhvuongle/yenvang-backend/pkg/logger"
)

const sessionIDHeader = "X-Session-Id"

type sessionIDKey struct{}

// Session attaches a session id to every request. Clients carry the id in
// the X-Session-Id header; a request without one gets a fresh id minted and
// echoed back, which the storefront stores for subsequent calls.
func Session(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := r.Header.Get(sessionIDHeader)
			if sessionID == "" {
				sessionID = uuid.NewString()
			}

			w.Header().Set(sessionIDHeader, sessionID)

			ctx := context.WithValue(r.Context(), sessionIDKey{}, sessionID)
			if logg != nil {
				ctx = logg.WithSessionID(ctx, sessionID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionIDFromContext returns the request's session id, empty when the
// middleware did not run.
func SessionIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(sessionIDKey{}).(string); ok {
		return id
	}
	return ""
}
