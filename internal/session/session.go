package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/iskcon-mangaluru/seva-coupon-system/internal/cache"
	"github.com/iskcon-mangaluru/seva-coupon-system/internal/gateway"
	"github.com/iskcon-mangaluru/seva-coupon-system/internal/logger"
	"github.com/iskcon-mangaluru/seva-coupon-system/internal/models"
)

var (
	ErrNoSession      = errors.New("no active session")
	ErrSessionExpired = errors.New("session has expired")
	ErrBadCredentials = errors.New("invalid username or password")
)

// LoginChecker is the slice of the gateway the session manager needs.
type LoginChecker interface {
	LoginCheck(ctx context.Context, username, password string) error
}

// Manager owns the login flow and the cached session blob. Credentials are
// checked against the remote store first; when that call fails (not when it
// rejects), the local bcrypt fallback takes over so staff can still log in
// offline.
type Manager struct {
	jwt     *JWTManager
	checker LoginChecker
	creds   *CredentialManager
	local   string // username accepted by the local fallback
	cache   cache.Cache
	log     logger.Logger
}

func NewManager(jwt *JWTManager, checker LoginChecker, creds *CredentialManager, localUsername string, c cache.Cache, log logger.Logger) *Manager {
	return &Manager{
		jwt:     jwt,
		checker: checker,
		creds:   creds,
		local:   localUsername,
		cache:   c,
		log:     log,
	}
}

// Login authenticates the staff member, persists the session blob and
// returns a signed token.
func (m *Manager) Login(ctx context.Context, username, password string) (string, models.Session, error) {
	if err := m.authenticate(ctx, username, password); err != nil {
		return "", models.Session{}, err
	}

	now := time.Now()
	sess := models.Session{
		Id:        uuid.New(),
		Username:  username,
		Issued:    now,
		ExpiresAt: now.Add(sessionTTL),
	}

	if err := m.saveSession(sess); err != nil {
		return "", models.Session{}, err
	}

	token, err := m.jwt.GenerateToken(username, sess.Id.String(), now)
	if err != nil {
		return "", models.Session{}, err
	}
	return token, sess, nil
}

func (m *Manager) authenticate(ctx context.Context, username, password string) error {
	err := m.checker.LoginCheck(ctx, username, password)
	if err == nil {
		return nil
	}
	if errors.Is(err, gateway.ErrAuthenticationFailed) {
		return ErrBadCredentials
	}

	// Remote unreachable: degrade to the local credential check.
	m.log.Warnf("remote login check failed, using local credentials: %v", err)
	if username != m.local {
		return ErrBadCredentials
	}
	if err := m.creds.VerifyPassword(password); err != nil {
		if errors.Is(err, ErrInvalidPassword) || errors.Is(err, ErrPasswordNotSet) {
			return ErrBadCredentials
		}
		return err
	}
	return nil
}

// Current returns the cached session. Expiry is checked lazily here; an
// expired blob is dropped and reported as ErrSessionExpired.
func (m *Manager) Current() (models.Session, error) {
	data, err := m.cache.Load(cache.SessionKey)
	if err != nil {
		if errors.Is(err, cache.ErrNotFound) {
			return models.Session{}, ErrNoSession
		}
		return models.Session{}, fmt.Errorf("failed to load session: %w", err)
	}

	var sess models.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		m.log.Warnf("session blob corrupt, dropping: %v", err)
		_ = m.cache.Delete(cache.SessionKey)
		return models.Session{}, ErrNoSession
	}

	if sess.Expired(time.Now()) {
		_ = m.cache.Delete(cache.SessionKey)
		return models.Session{}, ErrSessionExpired
	}
	return sess, nil
}

// Logout drops the cached session blob.
func (m *Manager) Logout() error {
	return m.cache.Delete(cache.SessionKey)
}

// ValidateToken verifies a bearer token from a request.
func (m *Manager) ValidateToken(token string) (*Claims, error) {
	return m.jwt.ValidateToken(token)
}

func (m *Manager) saveSession(sess models.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	if err := m.cache.Store(cache.SessionKey, data); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}
	return nil
}
