package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/iskcon-mangaluru/seva-coupon-system/internal/cache"
	"github.com/iskcon-mangaluru/seva-coupon-system/internal/logger"
	"github.com/iskcon-mangaluru/seva-coupon-system/internal/models"
)

// CouponStore holds the coupon collection for the current session in
// insertion order and mirrors every mutation to the local durable cache as
// one JSON blob. The store is scoped to the logged-in session; the cache
// blob outlives it.
type CouponStore struct {
	mu      sync.Mutex
	cache   cache.Cache
	log     logger.Logger
	coupons []models.Coupon
}

// NewCouponStore loads the cached collection. A corrupt or absent blob is
// non-fatal: the store falls back to the seed dataset at seedPath, or to an
// empty collection when no seed is configured.
func NewCouponStore(c cache.Cache, seedPath string, log logger.Logger) *CouponStore {
	s := &CouponStore{cache: c, log: log}

	data, err := c.Load(cache.CouponsKey)
	if err != nil {
		if !errors.Is(err, cache.ErrNotFound) {
			log.Warnf("coupon cache unreadable, starting fresh: %v", err)
		}
		s.coupons = loadSeed(seedPath, log)
		return s
	}

	if err := json.Unmarshal(data, &s.coupons); err != nil {
		log.Warnf("coupon cache corrupt, starting fresh: %v", err)
		s.coupons = loadSeed(seedPath, log)
	}
	return s
}

func loadSeed(seedPath string, log logger.Logger) []models.Coupon {
	if seedPath == "" {
		return nil
	}
	data, err := os.ReadFile(seedPath)
	if err != nil {
		log.Warnf("seed dataset unreadable: %v", err)
		return nil
	}
	var coupons []models.Coupon
	if err := json.Unmarshal(data, &coupons); err != nil {
		log.Warnf("seed dataset corrupt: %v", err)
		return nil
	}
	log.Infof("loaded %d coupons from seed dataset", len(coupons))
	return coupons
}

// List returns a copy of the collection in its current order.
func (s *CouponStore) List() []models.Coupon {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Coupon, len(s.coupons))
	copy(out, s.coupons)
	return out
}

// Find returns the coupon with the given code.
func (s *CouponStore) Find(code string) (models.Coupon, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.coupons {
		if c.Code == code {
			return c, true
		}
	}
	return models.Coupon{}, false
}

// Add appends the coupon and persists the full collection. The caller must
// have run the admission and allocation checks against the same snapshot.
func (s *CouponStore) Add(c models.Coupon) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.coupons = append(s.coupons, c)
	return s.persist()
}

// Remove deletes the coupon with the given code and persists. Removing an
// absent code is a no-op, not an error.
func (s *CouponStore) Remove(code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, c := range s.coupons {
		if c.Code == code {
			s.coupons = append(s.coupons[:i], s.coupons[i+1:]...)
			return s.persist()
		}
	}
	return nil
}

// SetActive flips the redemption flag in place and persists. No-op when the
// code is absent.
func (s *CouponStore) SetActive(code string, active bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.coupons {
		if s.coupons[i].Code == code {
			s.coupons[i].IsActive = active
			return s.persist()
		}
	}
	return nil
}

// Refresh replaces the collection wholesale with the remote snapshot and
// persists it. Local additions not yet mirrored to the remote store are
// discarded; the caller owns that trade-off.
func (s *CouponStore) Refresh(snapshot []models.Coupon) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.coupons = make([]models.Coupon, len(snapshot))
	copy(s.coupons, snapshot)
	return s.persist()
}

// persist writes the whole collection under one cache key. Callers hold the
// lock.
func (s *CouponStore) persist() error {
	data, err := json.Marshal(s.coupons)
	if err != nil {
		return fmt.Errorf("failed to marshal coupons: %w", err)
	}
	if err := s.cache.Store(cache.CouponsKey, data); err != nil {
		return fmt.Errorf("failed to persist coupons: %w", err)
	}
	return nil
}
