package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/iskcon-mangaluru/seva-coupon-system/internal/cache"
	"github.com/iskcon-mangaluru/seva-coupon-system/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockLogger implements the logger interface for tests
type mockLogger struct{}

func (m *mockLogger) Info(msg string)                   {}
func (m *mockLogger) Infof(format string, args ...any)  {}
func (m *mockLogger) Error(msg string)                  {}
func (m *mockLogger) Errorf(format string, args ...any) {}
func (m *mockLogger) Warn(msg string)                   {}
func (m *mockLogger) Warnf(format string, args ...any)  {}
func (m *mockLogger) Debug(msg string)                  {}
func (m *mockLogger) Debugf(format string, args ...any) {}

func newAuthFixture(t *testing.T) (*SessionAuth, *session.JWTManager) {
	jm := session.NewJWTManager("test-secret")
	sessions := session.NewManager(jm, nil, session.NewCredentialManager(t.TempDir()), "admin", cache.NewMemcache(), &mockLogger{})
	return NewSessionAuth(sessions, &mockLogger{}), jm
}

func okHandler() (http.Handler, *bool) {
	called := false
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		claims, ok := ClaimsFromContext(r.Context())
		if !ok || claims.Username == "" {
			http.Error(w, "claims missing", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}), &called
}

func TestSessionAuth(t *testing.T) {
	sa, jm := newAuthFixture(t)

	token, err := jm.GenerateToken("admin", uuid.New().String(), time.Now())
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		cookie     string
		wantStatus int
	}{
		{
			name:       "ValidBearerToken",
			header:     "Bearer " + token,
			wantStatus: http.StatusOK,
		},
		{
			name:       "ValidCookie",
			cookie:     token,
			wantStatus: http.StatusOK,
		},
		{
			name:       "MissingCredentials",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "MalformedHeader",
			header:     "Token " + token,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "GarbageToken",
			header:     "Bearer garbage",
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			next, called := okHandler()
			handler := sa.Middleware(next)

			req := httptest.NewRequest(http.MethodGet, "/api/coupons", nil)
			if test.header != "" {
				req.Header.Set("Authorization", test.header)
			}
			if test.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "session_token", Value: test.cookie})
			}

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, test.wantStatus, rec.Code)
			assert.Equal(t, test.wantStatus == http.StatusOK, *called)
		})
	}
}

func TestSessionAuth_ExpiredToken(t *testing.T) {
	sa, jm := newAuthFixture(t)

	token, err := jm.GenerateToken("admin", uuid.New().String(), time.Now().Add(-25*time.Hour))
	require.NoError(t, err)

	next, called := okHandler()
	handler := sa.Middleware(next)

	req := httptest.NewRequest(http.MethodGet, "/api/coupons", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "expired")
	assert.False(t, *called)
}
