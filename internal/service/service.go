package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/iskcon-mangaluru/seva-coupon-system/internal/coupon"
	"github.com/iskcon-mangaluru/seva-coupon-system/internal/logger"
	"github.com/iskcon-mangaluru/seva-coupon-system/internal/models"
	"github.com/iskcon-mangaluru/seva-coupon-system/internal/store"
)

var (
	ErrCouponNotFound = errors.New("coupon not found")
	ErrUnknownSeva    = errors.New("unknown seva category")
	// ErrRemoteDelete wraps a failed remote delete; the local record is
	// kept unless the caller explicitly forces a local-only removal.
	ErrRemoteDelete = errors.New("remote delete failed")
)

// Gateway is the remote-store surface the service depends on.
type Gateway interface {
	GetCoupons(ctx context.Context) ([]models.Coupon, error)
	AddCoupon(ctx context.Context, c models.Coupon) error
	DelCoupon(ctx context.Context, code, name string) error
	ToggleIsActive(ctx context.Context, code string) error
}

// ValidationError is a locally-recoverable admission failure. It never
// reaches the network layer.
type ValidationError struct {
	Reason  coupon.RejectReason
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// MirrorOutcome reports the two phases of a best-effort dual write: the
// synchronous local commit and the remote mirror. RemoteErr being non-nil
// means the device has diverged from the remote store; it never undoes the
// local commit.
type MirrorOutcome struct {
	LocalCommitted bool
	RemoteErr      error
}

// Diverged reports whether the local copy now differs from the remote one.
func (m MirrorOutcome) Diverged() bool {
	return m.LocalCommitted && m.RemoteErr != nil
}

// IssueResult is what the generate screen renders: the minted coupon plus
// the mirror outcome for the divergence warning.
type IssueResult struct {
	Coupon  models.Coupon
	Outcome MirrorOutcome
}

// CouponService orchestrates admission, allocation, the local store and the
// remote mirror.
type CouponService struct {
	store        *store.CouponStore
	gateway      Gateway
	allocator    *coupon.Allocator
	legacyNaming bool
	log          logger.Logger
}

func NewCouponService(s *store.CouponStore, g Gateway, a *coupon.Allocator, legacyNaming bool, log logger.Logger) *CouponService {
	return &CouponService{
		store:        s,
		gateway:      g,
		allocator:    a,
		legacyNaming: legacyNaming,
		log:          log,
	}
}

// Issue validates the submission, mints a coupon, commits it locally and
// mirrors it to the remote store. The local commit is authoritative for
// this device; a mirror failure is reported, never rolled back.
func (cs *CouponService) Issue(ctx context.Context, name string, seva models.Seva) (IssueResult, error) {
	if !seva.Valid() {
		return IssueResult{}, ErrUnknownSeva
	}

	existing := cs.store.List()

	admission := coupon.Admit(name, seva, existing)
	if !admission.Accepted {
		return IssueResult{}, &ValidationError{
			Reason:  admission.Reason,
			Message: admission.Message,
		}
	}

	displayName := admission.NormalizedName
	if cs.legacyNaming {
		// Superseded initials-based disambiguation, kept for deployments
		// carrying historical coupons issued under it.
		displayName = coupon.NormalizeName(coupon.LegacyUniqueName(name, existing))
	}

	minted := models.Coupon{
		Code:     cs.allocator.Allocate(existing),
		Name:     displayName,
		Seva:     seva,
		IssuedAt: models.Today(),
		IsActive: true,
	}

	if err := cs.store.Add(minted); err != nil {
		return IssueResult{}, fmt.Errorf("local commit failed: %w", err)
	}

	outcome := MirrorOutcome{LocalCommitted: true}
	if err := cs.gateway.AddCoupon(ctx, minted); err != nil {
		cs.log.Warnf("coupon %s not mirrored to remote store: %v", minted.Code, err)
		outcome.RemoteErr = err
	}

	return IssueResult{Coupon: minted, Outcome: outcome}, nil
}

// Redeem marks the coupon inactive. The local flip happens only after the
// remote toggle succeeds. Redeeming an already-redeemed coupon is an
// idempotent success.
func (cs *CouponService) Redeem(ctx context.Context, code string) (models.Coupon, error) {
	c, ok := cs.store.Find(code)
	if !ok {
		return models.Coupon{}, ErrCouponNotFound
	}
	if !c.IsActive {
		return c, nil
	}

	if err := cs.gateway.ToggleIsActive(ctx, code); err != nil {
		return models.Coupon{}, fmt.Errorf("remote redemption failed: %w", err)
	}

	if err := cs.store.SetActive(code, false); err != nil {
		return models.Coupon{}, err
	}
	c.IsActive = false
	return c, nil
}

// Delete removes the coupon remotely then locally. On remote failure the
// local record stays unless forceLocal is set (the user's explicit
// confirmation of a divergent local-only delete). The returned outcome
// tells the caller whether the device has diverged.
func (cs *CouponService) Delete(ctx context.Context, code string, forceLocal bool) (MirrorOutcome, error) {
	c, ok := cs.store.Find(code)
	if !ok {
		return MirrorOutcome{}, ErrCouponNotFound
	}

	remoteErr := cs.gateway.DelCoupon(ctx, c.Code, c.Name)
	if remoteErr != nil && !forceLocal {
		return MirrorOutcome{RemoteErr: remoteErr}, fmt.Errorf("%w: %v", ErrRemoteDelete, remoteErr)
	}
	if remoteErr != nil {
		cs.log.Warnf("coupon %s deleted locally only, remote store diverged: %v", code, remoteErr)
	}

	if err := cs.store.Remove(code); err != nil {
		return MirrorOutcome{RemoteErr: remoteErr}, err
	}
	return MirrorOutcome{LocalCommitted: true, RemoteErr: remoteErr}, nil
}

// RefreshFromRemote replaces the local collection with the remote snapshot.
// On a network error the cached collection stands (degraded read path) and
// the error is reported so the caller can flag staleness.
func (cs *CouponService) RefreshFromRemote(ctx context.Context) ([]models.Coupon, error) {
	snapshot, err := cs.gateway.GetCoupons(ctx)
	if err != nil {
		cs.log.Warnf("remote fetch failed, serving cached coupons: %v", err)
		return cs.store.List(), fmt.Errorf("remote fetch failed: %w", err)
	}

	if err := cs.store.Refresh(snapshot); err != nil {
		return nil, err
	}
	return cs.store.List(), nil
}

// List returns the current in-memory collection.
func (cs *CouponService) List() []models.Coupon {
	return cs.store.List()
}

// Find looks up a single coupon by code.
func (cs *CouponService) Find(code string) (models.Coupon, bool) {
	return cs.store.Find(code)
}
