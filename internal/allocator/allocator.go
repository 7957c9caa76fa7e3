// Package allocator implements asset-tag allocation: bulk pre-reservation of
// tags, transactional assignment of tags to items, and voiding of tags whose
// items are deleted. The ledger is append-only; a tag string issued once is
// never reissued.
package allocator

import (
	"context"
	"errors"
	"fmt"

	"github.com/cenkalti/backoff/v4"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/partvault/assettag/internal/adapter"
	"github.com/partvault/assettag/internal/domain"
	"github.com/partvault/assettag/internal/logger"
	"github.com/partvault/assettag/internal/messaging"
	"github.com/partvault/assettag/internal/store"
	"github.com/partvault/assettag/internal/store/schema"
	"github.com/partvault/assettag/internal/tag"
)

const (
	// DefaultReserveQuota is the hard cap on reserved, unassigned tags per user
	DefaultReserveQuota = 1000
	// DefaultBatchCap is the maximum reservations honored by a single bulk call
	DefaultBatchCap = 250
	// conflictRetries bounds whole-operation retries on serialization failures
	conflictRetries = 3
)

// Config holds allocator limits
type Config struct {
	// ReserveQuota caps reserved, unassigned tags per user (0 = default)
	ReserveQuota int
	// BatchCap caps a single bulk-reserve request (0 = default)
	BatchCap int
}

// BatchResult reports the outcome of a bulk reservation. Quota exhaustion is
// a partial result, not a failure: reservations made before the cap was hit
// stand.
type BatchResult struct {
	Requested      int
	Reserved       int
	Tags           []string
	QuotaExhausted bool
}

// Allocator issues, assigns and voids asset tags against the ledger
type Allocator struct {
	store     store.Store
	publisher messaging.Publisher // nil disables event publishing
	clock     adapter.Clock
	quota     int64
	batchCap  int
}

// New creates a new allocator
func New(st store.Store, pub messaging.Publisher, clock adapter.Clock, cfg Config) *Allocator {
	quota := cfg.ReserveQuota
	if quota <= 0 {
		quota = DefaultReserveQuota
	}
	batchCap := cfg.BatchCap
	if batchCap <= 0 {
		batchCap = DefaultBatchCap
	}

	return &Allocator{
		store:     st,
		publisher: pub,
		clock:     clock,
		quota:     int64(quota),
		batchCap:  batchCap,
	}
}

// Reserve mints one new reserved tag for user. The quota check and the
// insert run in the same transaction, so racing callers cannot jointly
// exceed the cap. Returns domain.ErrQuotaExceeded at the cap; any other
// failure is a storage error.
func (a *Allocator) Reserve(ctx context.Context, user string) (*schema.AssetTag, error) {
	var rec *schema.AssetTag

	err := a.retryOnConflict(ctx, func() error {
		return a.store.Transaction(ctx, func(tx store.Store) error {
			var err error
			rec, err = a.mintReserved(ctx, tx, user)
			return err
		})
	})
	if err != nil {
		return nil, err
	}

	a.publish(ctx, domain.TagEventReserved, rec, nil)
	return rec, nil
}

// ReserveBatch mints up to n reserved tags for user, stopping at the first
// quota failure and reporting how many succeeded. n is capped at the bulk
// batch limit.
func (a *Allocator) ReserveBatch(ctx context.Context, user string, n int) (*BatchResult, error) {
	if n < 1 {
		n = 1
	}
	if n > a.batchCap {
		n = a.batchCap
	}

	result := &BatchResult{Requested: n, Tags: make([]string, 0, n)}
	for i := 0; i < n; i++ {
		rec, err := a.Reserve(ctx, user)
		if err != nil {
			if errors.Is(err, domain.ErrQuotaExceeded) {
				result.QuotaExhausted = true
				return result, nil
			}
			return nil, err
		}
		result.Reserved++
		result.Tags = append(result.Tags, rec.TagString())
	}

	return result, nil
}

// Assign binds a tag to itemID for user. In one transaction it claims the
// user's oldest reserved tag under a skip-locked row lock, minting a fresh
// one when no unlocked reservation exists, and marks it assigned. Concurrent
// callers for the same user never block on each other and never receive the
// same record.
func (a *Allocator) Assign(ctx context.Context, user string, itemID int64) (*schema.AssetTag, error) {
	var rec *schema.AssetTag

	err := a.retryOnConflict(ctx, func() error {
		return a.store.Transaction(ctx, func(tx store.Store) error {
			var err error
			rec, err = a.assignInTx(ctx, tx, user, itemID)
			return err
		})
	})
	if err != nil {
		return nil, err
	}

	a.publish(ctx, domain.TagEventAssigned, rec, &itemID)
	return rec, nil
}

// CreateItemWithTag creates an item and assigns it a tag in a single
// transaction, so a quota failure leaves no orphaned item behind.
func (a *Allocator) CreateItemWithTag(ctx context.Context, user, name string) (*schema.Item, *schema.AssetTag, error) {
	var (
		item *schema.Item
		rec  *schema.AssetTag
	)

	err := a.retryOnConflict(ctx, func() error {
		return a.store.Transaction(ctx, func(tx store.Store) error {
			var err error
			item, err = tx.CreateItem(ctx, user, name)
			if err != nil {
				return err
			}

			rec, err = a.assignInTx(ctx, tx, user, item.ID)
			return err
		})
	})
	if err != nil {
		return nil, nil, err
	}

	item.AssetTag = rec
	a.publish(ctx, domain.TagEventAssigned, rec, &item.ID)
	return item, rec, nil
}

// Release voids the tag bound to itemID and deletes the item, in one
// transaction. Items without a tag, and items already gone, are a no-op:
// the void path must never fail for expected, harmless conditions.
func (a *Allocator) Release(ctx context.Context, itemID int64) error {
	var voided *schema.AssetTag

	err := a.retryOnConflict(ctx, func() error {
		voided = nil
		return a.store.Transaction(ctx, func(tx store.Store) error {
			item, err := tx.GetItemByID(ctx, itemID)
			if err != nil {
				return err
			}
			if item == nil {
				return nil
			}

			if item.AssetTag != nil && item.AssetTag.Tag != nil {
				if err := tx.MarkVoidByTag(ctx, *item.AssetTag.Tag); err != nil {
					return err
				}
				voided = item.AssetTag
			}

			return tx.DeleteItem(ctx, itemID)
		})
	})
	if err != nil {
		return err
	}

	if voided != nil {
		a.publish(ctx, domain.TagEventVoided, voided, nil)
	}
	return nil
}

// Summary compresses user's reserved tags into contiguous display ranges
func (a *Allocator) Summary(ctx context.Context, user string) ([]tag.Range, error) {
	tags, err := a.store.ListReservedTagsBy(ctx, user)
	if err != nil {
		return nil, err
	}

	return tag.Summarize(tags)
}

// assignInTx claims or mints a reserved tag and marks it assigned. Must run
// inside a transaction: the claim's row lock is only meaningful there.
func (a *Allocator) assignInTx(ctx context.Context, tx store.Store, user string, itemID int64) (*schema.AssetTag, error) {
	rec, err := tx.ClaimOldestReserved(ctx, user)
	if err != nil {
		return nil, err
	}

	if rec == nil {
		// No unlocked reservation available, mint a fresh one on demand
		rec, err = a.mintReserved(ctx, tx, user)
		if err != nil {
			return nil, err
		}
	}

	if err := tx.MarkAssigned(ctx, rec, itemID, a.clock.Now().UTC()); err != nil {
		return nil, err
	}

	return rec, nil
}

// mintReserved checks the quota and inserts a reserved row, both under the
// caller's transaction
func (a *Allocator) mintReserved(ctx context.Context, tx store.Store, user string) (*schema.AssetTag, error) {
	count, err := tx.CountReservedBy(ctx, user)
	if err != nil {
		return nil, err
	}
	if count >= a.quota {
		return nil, fmt.Errorf("user %s holds %d reserved tags: %w", user, count, domain.ErrQuotaExceeded)
	}

	return tx.CreateReserved(ctx, user, a.clock.Now().UTC())
}

// retryOnConflict retries op with exponential backoff while it fails with a
// transient storage conflict; every other error is permanent
func (a *Allocator) retryOnConflict(ctx context.Context, op func() error) error {
	bo := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), conflictRetries), ctx)

	return backoff.Retry(func() error {
		err := op()
		if err == nil {
			return nil
		}
		if errors.Is(err, domain.ErrStorageConflict) {
			logger.WarnCtx(ctx, "Retrying after storage conflict", zap.Error(err))
			return err
		}
		return backoff.Permanent(err)
	}, bo)
}

// publish emits a tag lifecycle event best-effort; a broker failure is
// logged and never fails the ledger operation that already committed
func (a *Allocator) publish(ctx context.Context, eventType domain.TagEventType, rec *schema.AssetTag, itemID *int64) {
	if a.publisher == nil {
		return
	}

	event := &domain.TagEvent{
		EventID:   ulid.Make().String(),
		EventType: eventType,
		Tag:       rec.TagString(),
		User:      rec.ReservedBy,
		ItemID:    itemID,
		Timestamp: a.clock.Now().UTC(),
	}

	if err := a.publisher.PublishEvent(ctx, event); err != nil {
		logger.ErrorCtx(ctx, err,
			zap.String("tag", event.Tag),
			zap.String("event_type", string(eventType)),
		)
	}
}
