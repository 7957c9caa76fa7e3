package store

import (
	"context"
	"time"

	"github.com/partvault/assettag/internal/store/schema"
)

// Store defines the interface for tag-ledger database operations
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore
type Store interface {
	// CreateReserved inserts a new reserved ledger row for user. The id is
	// assigned by the database and the tag string derived from it is persisted
	// as part of the same logical creation.
	CreateReserved(ctx context.Context, user string, now time.Time) (*schema.AssetTag, error)
	// CountReservedBy returns the number of reserved, unassigned tags held by user
	CountReservedBy(ctx context.Context, user string) (int64, error)
	// ClaimOldestReserved locks and returns the user's oldest reserved,
	// unassigned tag, skipping rows locked by concurrent transactions.
	// Returns nil when no unlocked candidate exists. Call inside Transaction.
	ClaimOldestReserved(ctx context.Context, user string) (*schema.AssetTag, error)
	// MarkAssigned transitions a reserved tag to assigned, binding it to itemID
	MarkAssigned(ctx context.Context, rec *schema.AssetTag, itemID int64, now time.Time) error
	// MarkVoidByTag transitions the tag matching the given string to void.
	// Absent tags are a no-op, not an error.
	MarkVoidByTag(ctx context.Context, tagStr string) error
	// ListReservedTagsBy returns the tag strings of user's reserved tags
	ListReservedTagsBy(ctx context.Context, user string) ([]string, error)
	// GetTagByString retrieves a ledger row by its tag string; nil when absent
	GetTagByString(ctx context.Context, tagStr string) (*schema.AssetTag, error)

	// CreateItem inserts a new item row
	CreateItem(ctx context.Context, owner, name string) (*schema.Item, error)
	// GetItemByID retrieves an item with its bound tag; nil when absent
	GetItemByID(ctx context.Context, id int64) (*schema.Item, error)
	// DeleteItem removes an item row; absent items are a no-op
	DeleteItem(ctx context.Context, id int64) error

	// Transaction runs fn against a Store bound to a single database
	// transaction; fn returning an error rolls everything back
	Transaction(ctx context.Context, fn func(Store) error) error
}
