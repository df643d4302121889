package middleware

import (
	"context"
	"net/http"

	"github.com/DanielDerefaka/InvestmentPlatform/internal/auth"
)

const adminIDKey contextKey = "admin_id"

// AdminIDFromContext returns the administrator account id set by AdminSession.
func AdminIDFromContext(ctx context.Context) (string, bool) {
	adminID, ok := ctx.Value(adminIDKey).(string)
	return adminID, ok
}

// AdminSession guards administrator routes with the HTTP-only session cookie
// issued by the login endpoint.
func AdminSession(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie("token")
			if err != nil || cookie.Value == "" {
				http.Error(w, "missing session", http.StatusUnauthorized)
				return
			}
			claims, err := auth.ParseAdminToken(secret, cookie.Value)
			if err != nil {
				http.Error(w, "invalid session", http.StatusUnauthorized)
				return
			}
			ctx := context.WithValue(r.Context(), adminIDKey, claims.AdminID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
