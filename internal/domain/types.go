package domain

import "time"

// TagEventType represents the type of tag lifecycle event
type TagEventType string

const (
	// TagEventReserved indicates a tag was minted into the reserved pool
	TagEventReserved TagEventType = "reserved"
	// TagEventAssigned indicates a tag was bound to an item
	TagEventAssigned TagEventType = "assigned"
	// TagEventVoided indicates a tag's item was deleted; the tag is retained as a tombstone
	TagEventVoided TagEventType = "voided"
)

// TagEvent represents a normalized tag lifecycle event.
// This is the standard format published to NATS.
type TagEvent struct {
	EventID   string       `json:"event_id"`          // ULID, unique per event
	EventType TagEventType `json:"event_type"`        // reserved, assigned, voided
	Tag       string       `json:"tag"`               // fixed-width base-36 tag string
	User      string       `json:"user"`              // owning user identifier (empty for voided)
	ItemID    *int64       `json:"item_id,omitempty"` // bound item, assigned events only
	Timestamp time.Time    `json:"timestamp"`
}
