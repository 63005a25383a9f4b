package cache

import "errors"

// Cache keys used by the application. The whole coupon collection lives
// under a single key as one serialized blob; there is no delta persistence.
const (
	CouponsKey = "coupons"
	SessionKey = "session"
)

// ErrNotFound is returned when a key has no stored blob.
var ErrNotFound = errors.New("cache key not found")

// Cache is a durable blob-per-key store on the local device. Implementations
// must tolerate concurrent access from HTTP handlers.
type Cache interface {
	// Load returns the blob stored under key, or ErrNotFound.
	Load(key string) ([]byte, error)
	// Store replaces the blob under key.
	Store(key string, data []byte) error
	// Delete removes the key. Absent keys are not an error.
	Delete(key string) error
	Close() error
}
