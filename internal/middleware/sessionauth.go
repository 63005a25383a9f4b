package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/iskcon-mangaluru/seva-coupon-system/internal/logger"
	"github.com/iskcon-mangaluru/seva-coupon-system/internal/session"
)

type contextKey string

// ClaimsContextKey holds the validated session claims for downstream
// handlers.
const ClaimsContextKey contextKey = "session_claims"

// SessionAuth guards the staff API with the signed session token issued at
// login. The token is taken from the Authorization header or, for browser
// navigation, the session_token cookie.
type SessionAuth struct {
	sessions *session.Manager
	log      logger.Logger
}

func NewSessionAuth(sessions *session.Manager, log logger.Logger) *SessionAuth {
	return &SessionAuth{
		sessions: sessions,
		log:      log,
	}
}

func (sa *SessionAuth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			cookie, err := r.Cookie("session_token")
			if err != nil {
				http.Error(w, "authentication required", http.StatusUnauthorized)
				return
			}
			authHeader = "Bearer " + cookie.Value
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			http.Error(w, "invalid token format", http.StatusUnauthorized)
			return
		}

		claims, err := sa.sessions.ValidateToken(parts[1])
		if err != nil {
			if errors.Is(err, session.ErrExpiredToken) {
				http.Error(w, "session has expired", http.StatusUnauthorized)
			} else {
				http.Error(w, "invalid token", http.StatusUnauthorized)
			}
			return
		}

		ctx := context.WithValue(r.Context(), ClaimsContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ClaimsFromContext returns the claims stored by the middleware.
func ClaimsFromContext(ctx context.Context) (*session.Claims, bool) {
	claims, ok := ctx.Value(ClaimsContextKey).(*session.Claims)
	return claims, ok
}
