package middleware

import (
	"context"
	"net/http"

	"github.com/baharkarakas/legion/internal/api/httpx"
)

const msgForbidden = "You do not have permission to perform this action"

type userKey struct{}

type UserCtx struct {
	UserID string
	Role   string
}

func WithUser(ctx context.Context, u UserCtx) context.Context {
	return context.WithValue(ctx, userKey{}, u)
}

func FromCtx(ctx context.Context) (UserCtx, bool) {
	u, ok := ctx.Value(userKey{}).(UserCtx)
	return u, ok
}

// RequireRole lets the request through only when the authenticated caller
// has one of roles. It must run after Auth.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := FromCtx(r.Context())
			if !ok || u.Role == "" {
				httpx.WriteFailed(w, http.StatusForbidden, msgForbidden)
				return
			}
			if _, ok := allowed[u.Role]; len(allowed) > 0 && !ok {
				httpx.WriteFailed(w, http.StatusForbidden, msgForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
