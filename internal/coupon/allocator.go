package coupon

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
	"strconv"
	"sync"

	"github.com/iskcon-mangaluru/seva-coupon-system/internal/models"
)

// Coupon codes are 12 decimal digits, drawn uniformly so the first digit is
// never zero.
const (
	codeMin = int64(100_000_000_000)
	codeMax = int64(999_999_999_999)
)

// Allocator mints coupon codes that do not collide with any code already
// visible to the client.
type Allocator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewAllocator seeds the allocator from the OS entropy source. A seeding
// failure is fatal for the caller.
func NewAllocator() (*Allocator, error) {
	var seed [8]byte
	if _, err := crand.Read(seed[:]); err != nil {
		return nil, fmt.Errorf("failed to seed code allocator: %w", err)
	}
	return &Allocator{
		rng: rand.New(rand.NewSource(int64(binary.LittleEndian.Uint64(seed[:])))),
	}, nil
}

// Allocate draws a fresh 12-digit code, redrawing until the candidate is
// absent from existing. With thousands of coupons against a space of
// 9*10^11 the loop terminates almost immediately, but the collision check
// is still mandatory.
func (a *Allocator) Allocate(existing []models.Coupon) string {
	a.mu.Lock()
	defer a.mu.Unlock()

	for {
		code := strconv.FormatInt(codeMin+a.rng.Int63n(codeMax-codeMin+1), 10)
		if !CodeExists(code, existing) {
			return code
		}
	}
}

// CodeExists reports whether code is already present in the collection.
func CodeExists(code string, coupons []models.Coupon) bool {
	for _, c := range coupons {
		if c.Code == code {
			return true
		}
	}
	return false
}
