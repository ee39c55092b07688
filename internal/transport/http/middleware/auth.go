package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/planventure-api/internal/domain"
	jwtinfra "github.com/planventure-api/internal/infrastructure/jwt"
)

type contextKey string

const identityKey contextKey = "identity"

type tokenVerifier interface {
	Verify(tokenStr string) (*jwtinfra.Claims, error)
}

type userResolver interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
}

// Auth returns middleware that admits a request only when it carries a valid,
// unexpired access token whose subject still exists, and injects the resolved
// user into the request context. It never mutates anything: the same token
// yields the same decision until it expires.
//
// Every rejection is a uniform 401; the specific reason is only logged.
func Auth(tokens tokenVerifier, users userResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				reject(w, r, "missing token")
				return
			}
			scheme, tokenStr, found := strings.Cut(header, " ")
			if !found || scheme != "Bearer" || tokenStr == "" {
				reject(w, r, "malformed authorization header")
				return
			}
			claims, err := tokens.Verify(tokenStr)
			if err != nil {
				reject(w, r, err.Error())
				return
			}
			// A refresh (or verification) token must never act as a bearer credential.
			if claims.Kind != jwtinfra.KindAccess {
				reject(w, r, "wrong token type")
				return
			}
			u, err := users.Get(r.Context(), claims.UserID)
			if err != nil {
				reject(w, r, "unknown token subject")
				return
			}
			ctx := context.WithValue(r.Context(), identityKey, u)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func reject(w http.ResponseWriter, r *http.Request, reason string) {
	slog.Debug("request rejected", "path", r.URL.Path, "reason", reason)
	writeJSONError(w, http.StatusUnauthorized, "unauthorized")
}

// UserFromContext extracts the authenticated user from the request context.
func UserFromContext(ctx context.Context) (*domain.User, bool) {
	u, ok := ctx.Value(identityKey).(*domain.User)
	return u, ok
}
