package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/crypto/bcrypt"
)

const (
	bcryptCost = 12
	// File holding the bcrypt hash for the local-credential fallback
	credentialsFileName = "staff_password.hash"
)

var (
	ErrPasswordTooShort = errors.New("password too short (minimum 8 characters)")
	ErrInvalidPassword  = errors.New("invalid password")
	ErrPasswordNotSet   = errors.New("staff password is not set")
)

// CredentialManager stores the bcrypt hash used when the remote login check
// is unreachable.
type CredentialManager struct {
	credentialsPath string
}

// NewCredentialManager uses dataDir to locate the hash file.
func NewCredentialManager(dataDir string) *CredentialManager {
	return &CredentialManager{
		credentialsPath: filepath.Join(dataDir, credentialsFileName),
	}
}

// IsPasswordSet reports whether a hash file exists.
func (cm *CredentialManager) IsPasswordSet() bool {
	_, err := os.Stat(cm.credentialsPath)
	return err == nil
}

// SetPassword hashes and stores a new staff password.
func (cm *CredentialManager) SetPassword(password string) error {
	if len(password) < 8 {
		return ErrPasswordTooShort
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := os.WriteFile(cm.credentialsPath, hashedPassword, 0600); err != nil {
		return fmt.Errorf("failed to write password hash: %w", err)
	}
	return nil
}

// VerifyPassword checks the password against the stored hash.
func (cm *CredentialManager) VerifyPassword(password string) error {
	if !cm.IsPasswordSet() {
		return ErrPasswordNotSet
	}

	hashedPassword, err := os.ReadFile(cm.credentialsPath)
	if err != nil {
		return fmt.Errorf("failed to read password hash: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword(hashedPassword, []byte(password)); err != nil {
		return ErrInvalidPassword
	}
	return nil
}
