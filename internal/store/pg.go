package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/partvault/assettag/internal/domain"
	"github.com/partvault/assettag/internal/store/schema"
	"github.com/partvault/assettag/internal/tag"
)

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// ConfigureConnectionPool configures the connection pool settings for a GORM
// database connection. Zero values fall back to defaults:
//   - MaxOpenConns: 20
//   - MaxIdleConns: 5
//   - ConnMaxLifetime: 5 minutes
//   - ConnMaxIdleTime: 10 minutes
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if maxOpenConns == 0 {
		maxOpenConns = 20
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}
	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// IsSerializationFailure reports whether err is a PostgreSQL serialization
// failure or deadlock, i.e. a conflict the caller should retry as a whole.
func IsSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// 40001 serialization_failure, 40P01 deadlock_detected
		return pgErr.Code == "40001" || pgErr.Code == "40P01"
	}
	return false
}

// CreateReserved inserts a new reserved ledger row and derives its tag string
// from the database-assigned id. The derivation is two-phase on purpose: the
// tag depends on an id that does not exist before the insert, and both steps
// commit or roll back together.
func (s *pgStore) CreateReserved(ctx context.Context, user string, now time.Time) (*schema.AssetTag, error) {
	var rec *schema.AssetTag

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rec = &schema.AssetTag{
			Status:     schema.TagStatusReserved,
			ReservedBy: user,
			ReservedAt: now,
		}
		if err := tx.Create(rec).Error; err != nil {
			return fmt.Errorf("failed to create reserved tag: %w", err)
		}

		rendered, err := tag.Render(rec.ID)
		if err != nil {
			return fmt.Errorf("failed to render tag for id %d: %w", rec.ID, err)
		}
		rec.Tag = &rendered

		if err := tx.Model(rec).Update("tag", rendered).Error; err != nil {
			return fmt.Errorf("failed to set tag string: %w", err)
		}

		return s.journal(tx, rec.ID, schema.TagChangeReserved, schema.TagChangeMeta{
			Tag:  rendered,
			User: user,
		})
	})
	if err != nil {
		return nil, err
	}

	return rec, nil
}

// CountReservedBy returns the number of reserved, unassigned tags held by user
func (s *pgStore) CountReservedBy(ctx context.Context, user string) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&schema.AssetTag{}).
		Where("reserved_by = ? AND status = ?", user, schema.TagStatusReserved).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count reserved tags: %w", err)
	}

	return count, nil
}

// ClaimOldestReserved locks and returns the user's oldest reserved,
// unassigned tag. Rows already locked by concurrent transactions are skipped
// rather than waited on, so racing callers diverge onto different rows.
func (s *pgStore) ClaimOldestReserved(ctx context.Context, user string) (*schema.AssetTag, error) {
	var rec schema.AssetTag
	err := s.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
		Where("reserved_by = ? AND status = ? AND assigned_item_id IS NULL", user, schema.TagStatusReserved).
		Order("reserved_at ASC, id ASC").
		First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to claim reserved tag: %w", err)
	}

	return &rec, nil
}

// MarkAssigned transitions a reserved tag to assigned. Only the transition
// fields are persisted; tag, owner and reservation timestamp stay untouched.
func (s *pgStore) MarkAssigned(ctx context.Context, rec *schema.AssetTag, itemID int64, now time.Time) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"status":           schema.TagStatusAssigned,
			"assigned_item_id": itemID,
			"assigned_at":      now,
		}
		if err := tx.Model(&schema.AssetTag{}).Where("id = ?", rec.ID).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to mark tag assigned: %w", err)
		}

		rec.Status = schema.TagStatusAssigned
		rec.AssignedItemID = &itemID
		rec.AssignedAt = &now

		return s.journal(tx, rec.ID, schema.TagChangeAssigned, schema.TagChangeMeta{
			Tag:    rec.TagString(),
			User:   rec.ReservedBy,
			ItemID: &itemID,
		})
	})
}

// MarkVoidByTag transitions the tag matching the given string to void. The
// row is retained as a tombstone; a missing row is an expected no-op.
func (s *pgStore) MarkVoidByTag(ctx context.Context, tagStr string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rec schema.AssetTag
		err := tx.Where("tag = ?", tagStr).First(&rec).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return fmt.Errorf("failed to look up tag for voiding: %w", err)
		}

		if rec.Status == schema.TagStatusVoid {
			return nil
		}

		if err := tx.Model(&rec).Update("status", schema.TagStatusVoid).Error; err != nil {
			return fmt.Errorf("failed to mark tag void: %w", err)
		}

		return s.journal(tx, rec.ID, schema.TagChangeVoided, schema.TagChangeMeta{
			Tag:  rec.TagString(),
			User: rec.ReservedBy,
		})
	})
}

// ListReservedTagsBy returns the tag strings of user's reserved tags
func (s *pgStore) ListReservedTagsBy(ctx context.Context, user string) ([]string, error) {
	var tags []string
	err := s.db.WithContext(ctx).
		Model(&schema.AssetTag{}).
		Where("reserved_by = ? AND status = ? AND tag IS NOT NULL", user, schema.TagStatusReserved).
		Order("id ASC").
		Pluck("tag", &tags).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list reserved tags: %w", err)
	}

	return tags, nil
}

// GetTagByString retrieves a ledger row by its tag string
func (s *pgStore) GetTagByString(ctx context.Context, tagStr string) (*schema.AssetTag, error) {
	var rec schema.AssetTag
	err := s.db.WithContext(ctx).Where("tag = ?", tagStr).First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get tag: %w", err)
	}

	return &rec, nil
}

// CreateItem inserts a new item row
func (s *pgStore) CreateItem(ctx context.Context, owner, name string) (*schema.Item, error) {
	item := &schema.Item{
		Owner: owner,
		Name:  name,
	}
	if err := s.db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, fmt.Errorf("failed to create item: %w", err)
	}

	return item, nil
}

// GetItemByID retrieves an item with its bound tag
func (s *pgStore) GetItemByID(ctx context.Context, id int64) (*schema.Item, error) {
	var item schema.Item
	err := s.db.WithContext(ctx).Preload("AssetTag").Where("id = ?", id).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get item: %w", err)
	}

	return &item, nil
}

// DeleteItem removes an item row
func (s *pgStore) DeleteItem(ctx context.Context, id int64) error {
	err := s.db.WithContext(ctx).Delete(&schema.Item{}, id).Error
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}

	return nil
}

// Transaction runs fn against a Store bound to a single database transaction
func (s *pgStore) Transaction(ctx context.Context, fn func(Store) error) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&pgStore{db: tx})
	})
	if err != nil && IsSerializationFailure(err) {
		return fmt.Errorf("%w: %v", domain.ErrStorageConflict, err)
	}

	return err
}

// journal appends an audit row for a ledger transition inside tx
func (s *pgStore) journal(tx *gorm.DB, tagID int64, changeType schema.TagChangeType, meta schema.TagChangeMeta) error {
	metaJSON, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("failed to marshal tag change meta: %w", err)
	}

	change := schema.TagChange{
		TagID:      tagID,
		ChangeType: changeType,
		Meta:       metaJSON,
	}
	if err := tx.Create(&change).Error; err != nil {
		return fmt.Errorf("failed to create tag change: %w", err)
	}

	return nil
}
