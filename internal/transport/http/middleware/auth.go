package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/baechuer/real-time-ressys/services/bootcamp-service/internal/domain"
)

// SessionVerifier resolves a raw session token to the account it names.
type SessionVerifier interface {
	VerifySessionToken(ctx context.Context, raw string) (domain.User, error)
}

// RoleAuthorizer decides whether an account's role is among the allowed ones.
type RoleAuthorizer interface {
	Authorize(u domain.User, roles ...string) error
}

type WriteErrFunc func(http.ResponseWriter, *http.Request, error)

// Authenticate verifies Authorization: Bearer <token> and injects the
// account into the request context.
func Authenticate(verifier SessionVerifier, writeErr WriteErrFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, err := bearerToken(r)
			if err != nil {
				writeErr(w, r, err)
				return
			}

			u, err := verifier.VerifySessionToken(r.Context(), raw)
			if err != nil {
				writeErr(w, r, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), u, raw)))
		})
	}
}

// Authorize must run after Authenticate.
func Authorize(authz RoleAuthorizer, writeErr WriteErrFunc, roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := UserFromContext(r.Context())
			if !ok {
				// Authenticate not applied
				writeErr(w, r, domain.ErrTokenMissing())
				return
			}
			if err := authz.Authorize(u, roles...); err != nil {
				writeErr(w, r, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) (string, error) {
	h := r.Header.Get("Authorization")
	if h == "" {
		return "", domain.ErrTokenMissing()
	}

	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", domain.ErrTokenMissing()
	}

	raw := strings.TrimSpace(parts[1])
	if raw == "" {
		return "", domain.ErrTokenMissing()
	}
	return raw, nil
}
