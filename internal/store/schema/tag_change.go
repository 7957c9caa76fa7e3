package schema

import (
	"time"

	"gorm.io/datatypes"
)

// TagChangeType identifies the ledger transition recorded by a journal row
type TagChangeType string

const (
	TagChangeReserved TagChangeType = "reserved"
	TagChangeAssigned TagChangeType = "assigned"
	TagChangeVoided   TagChangeType = "voided"
)

// TagChange represents the tag_changes table - a sequential audit journal of
// every ledger transition, written in the same transaction as the transition
// itself.
type TagChange struct {
	// ID is the internal database primary key and the audit ordering anchor
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// TagID references the asset tag this change relates to
	TagID int64 `gorm:"column:tag_id;not null;index"`
	// ChangeType identifies the transition (reserved, assigned, voided)
	ChangeType TagChangeType `gorm:"column:change_type;not null;type:text"`
	// Meta contains transition details as JSON (user, item, tag string)
	Meta datatypes.JSON `gorm:"column:meta;type:jsonb"`
	// CreatedAt is the timestamp when this change was recorded
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`

	// Associations
	AssetTag AssetTag `gorm:"foreignKey:TagID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the TagChange model
func (TagChange) TableName() string {
	return "tag_changes"
}

// TagChangeMeta is the JSON payload stored in TagChange.Meta
type TagChangeMeta struct {
	Tag    string `json:"tag"`
	User   string `json:"user,omitempty"`
	ItemID *int64 `json:"item_id,omitempty"`
}
