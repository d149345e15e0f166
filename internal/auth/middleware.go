package auth

import (
	"log/slog"
	"net/http"

	"github.com/gatehouse-api/gatehouse/internal/platform/httpx"
	"github.com/gatehouse-api/gatehouse/internal/shared"
)

// Middleware resolves the request's session cookie pair and stores the
// owning user, if any, in the request context. A store failure ends
// the request; an unresolved session does not.
func (m *SessionManager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID, token := SessionFromRequest(r)
		user, err := m.Resolve(r.Context(), sessionID, token)
		if err != nil {
			m.logger.Error("resolve session", slog.Any("error", err))
			httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
			return
		}
		ctx := shared.ContextWithUser(r.Context(), user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireUser rejects requests that did not resolve to a user. Only
// the login page bypasses this gate.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if shared.UserFromContext(r.Context()) == nil {
			httpx.Problem(w, http.StatusForbidden, "Forbidden", "authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}
