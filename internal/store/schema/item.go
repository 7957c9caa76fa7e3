package schema

import "time"

// Item represents the items table. Only the slice of the inventory item the
// tag binding needs lives here; the rest of the item record belongs to the
// surrounding application.
type Item struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// Owner is the opaque identifier of the owning user
	Owner string `gorm:"column:owner;not null;type:text;index"`
	// Name is the item's display name
	Name string `gorm:"column:name;not null;type:text"`
	// CreatedAt is the timestamp when this record was created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`

	// AssetTag is the at-most-one tag bound to this item
	AssetTag *AssetTag `gorm:"foreignKey:AssignedItemID"`
}

// TableName specifies the table name for the Item model
func (Item) TableName() string {
	return "items"
}
