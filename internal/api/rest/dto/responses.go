package dto

import (
	"time"

	"github.com/partvault/assettag/internal/store/schema"
	"github.com/partvault/assettag/internal/tag"
)

// TagResponse represents a single ledger record
type TagResponse struct {
	Tag            string     `json:"tag"`
	Status         string     `json:"status"`
	ReservedBy     string     `json:"reserved_by"`
	ReservedAt     time.Time  `json:"reserved_at"`
	AssignedItemID *int64     `json:"assigned_item_id,omitempty"`
	AssignedAt     *time.Time `json:"assigned_at,omitempty"`
}

// NewTagResponse converts a ledger record into its API representation
func NewTagResponse(rec *schema.AssetTag) *TagResponse {
	return &TagResponse{
		Tag:            rec.TagString(),
		Status:         string(rec.Status),
		ReservedBy:     rec.ReservedBy,
		ReservedAt:     rec.ReservedAt,
		AssignedItemID: rec.AssignedItemID,
		AssignedAt:     rec.AssignedAt,
	}
}

// ReserveTagsResponse represents the outcome of a bulk reservation. A
// quota-exhausted batch is a partial success, not an error.
type ReserveTagsResponse struct {
	Requested      int      `json:"requested"`
	Reserved       int      `json:"reserved"`
	QuotaExhausted bool     `json:"quota_exhausted"`
	Tags           []string `json:"tags"`
}

// ReservationsResponse represents a user's reserved tags compressed into
// contiguous display ranges
type ReservationsResponse struct {
	User   string      `json:"user"`
	Total  int         `json:"total"`
	Ranges []tag.Range `json:"ranges"`
}

// ItemResponse represents an item together with its bound tag
type ItemResponse struct {
	ID        int64        `json:"id"`
	Owner     string       `json:"owner"`
	Name      string       `json:"name"`
	CreatedAt time.Time    `json:"created_at"`
	Tag       *TagResponse `json:"tag,omitempty"`
}

// NewItemResponse converts an item record into its API representation
func NewItemResponse(item *schema.Item) *ItemResponse {
	resp := &ItemResponse{
		ID:        item.ID,
		Owner:     item.Owner,
		Name:      item.Name,
		CreatedAt: item.CreatedAt,
	}
	if item.AssetTag != nil {
		resp.Tag = NewTagResponse(item.AssetTag)
	}
	return resp
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status string `json:"status"`
}
