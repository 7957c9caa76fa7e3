package schema

import (
	"time"
)

// TagStatus represents the lifecycle state of an asset tag
type TagStatus string

const (
	// TagStatusReserved indicates a tag minted but not yet bound to an item
	TagStatusReserved TagStatus = "reserved"
	// TagStatusAssigned indicates a tag bound to exactly one item
	TagStatusAssigned TagStatus = "assigned"
	// TagStatusVoid indicates a tag whose item was deleted; retained permanently, never reissued
	TagStatusVoid TagStatus = "void"
)

// AssetTag represents the asset_tags table - the append-only ledger of every
// tag ever issued. Rows are never deleted and tag strings are never reused:
// a void row is kept as a permanent tombstone.
type AssetTag struct {
	// ID is the monotonic ledger id assigned by the database; never reused
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// Tag is the fixed-width base-36 rendering of ID, set during creation and immutable afterwards.
	// Nullable only transiently between the insert (which yields the id) and the tag update.
	Tag *string `gorm:"column:tag;uniqueIndex;type:varchar(16)"`
	// Status is the lifecycle state; it only moves forward (reserved -> assigned -> void, or reserved -> void)
	Status TagStatus `gorm:"column:status;not null;type:text;index:idx_asset_tags_owner_status,priority:2"`
	// ReservedBy is the opaque identifier of the owning user
	ReservedBy string `gorm:"column:reserved_by;not null;type:text;index:idx_asset_tags_owner_status,priority:1"`
	// ReservedAt is the creation timestamp; claim order is oldest-first on this column
	ReservedAt time.Time `gorm:"column:reserved_at;not null;type:timestamptz"`
	// AssignedItemID references the bound item; non-nil iff Status is assigned-or-later
	AssignedItemID *int64 `gorm:"column:assigned_item_id;uniqueIndex"`
	// AssignedAt is the timestamp of the reserved -> assigned transition
	AssignedAt *time.Time `gorm:"column:assigned_at;type:timestamptz"`

	// Associations
	AssignedItem *Item `gorm:"foreignKey:AssignedItemID"`
}

// TableName specifies the table name for the AssetTag model
func (AssetTag) TableName() string {
	return "asset_tags"
}

// TagString returns the rendered tag, or "" while creation is still in flight
func (t *AssetTag) TagString() string {
	if t.Tag == nil {
		return ""
	}
	return *t.Tag
}
