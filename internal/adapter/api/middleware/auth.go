package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/rickymcpower/hrSfera/internal/domain"
	"github.com/rickymcpower/hrSfera/internal/pkg/token"
)

type contextKey string

const (
	principalKey contextKey = "principal"
	claimsKey    contextKey = "claims"
)

// ContextWithPrincipal attaches an authenticated principal to a context.
func ContextWithPrincipal(ctx context.Context, p domain.Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// ContextWithClaims attaches token claims to a context.
func ContextWithClaims(ctx context.Context, c *token.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, c)
}

// PrincipalFromContext returns the authenticated principal stored by Auth.
func PrincipalFromContext(ctx context.Context) (domain.Principal, bool) {
	p, ok := ctx.Value(principalKey).(domain.Principal)
	return p, ok
}

// ClaimsFromContext returns the token claims stored by Auth. Logout needs
// them to revoke the presented token.
func ClaimsFromContext(ctx context.Context) (*token.Claims, bool) {
	c, ok := ctx.Value(claimsKey).(*token.Claims)
	return c, ok
}

// Auth is a middleware factory that returns a new authentication middleware.
// It validates the bearer token, rejects revoked tokens, and attaches the
// resulting Principal to the request context.
func Auth(secret string, tokens domain.TokenRepository, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			raw, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || raw == "" {
				http.Error(w, "Unauthorized: bearer token required", http.StatusUnauthorized)
				return
			}

			claims, err := token.Validate(raw, secret)
			if err != nil {
				logger.Warn("invalid token", "remote_addr", r.RemoteAddr, "error", err)
				http.Error(w, "Unauthorized: invalid token", http.StatusUnauthorized)
				return
			}

			revoked, err := tokens.IsRevoked(r.Context(), claims.ID)
			if err != nil {
				logger.Error("failed to check token revocation", "error", err)
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				return
			}
			if revoked {
				http.Error(w, "Unauthorized: token revoked", http.StatusUnauthorized)
				return
			}

			ctx := ContextWithPrincipal(r.Context(), claims.Principal())
			ctx = ContextWithClaims(ctx, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole rejects authenticated requests whose principal lacks the given
// role. It must be mounted inside Auth.
func RequireRole(role domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := PrincipalFromContext(r.Context())
			if !ok {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			if p.Role != role {
				http.Error(w, "Forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
