package dto

import (
	"fmt"

	"github.com/partvault/assettag/internal/api/apierrors"
)

const (
	// MaxTagsPerRequest caps a single bulk-reserve request
	MaxTagsPerRequest = 250
	// MaxItemNameLength caps the item display name
	MaxItemNameLength = 250
)

// ReserveTagsRequest represents the request body for bulk tag reservation
type ReserveTagsRequest struct {
	// Count is the number of tags to reserve; defaults to 1
	Count int `json:"count"`
	// User identifies the owner for API-key callers; JWT callers are
	// identified by the token subject and must leave this empty
	User string `json:"user,omitempty"`
}

// Validate validates the request body
func (r *ReserveTagsRequest) Validate() error {
	if r.Count < 0 {
		return apierrors.NewValidationError("count must not be negative")
	}
	if r.Count > MaxTagsPerRequest {
		return apierrors.NewValidationError(fmt.Sprintf("maximum %d tags allowed per request", MaxTagsPerRequest))
	}
	return nil
}

// CreateItemRequest represents the request body for creating an item with a
// tag assigned in the same transaction
type CreateItemRequest struct {
	Name string `json:"name"`
	// User identifies the owner for API-key callers
	User string `json:"user,omitempty"`
}

// Validate validates the request body
func (r *CreateItemRequest) Validate() error {
	if r.Name == "" {
		return apierrors.NewValidationError("name is required")
	}
	if len(r.Name) > MaxItemNameLength {
		return apierrors.NewValidationError(fmt.Sprintf("name must not exceed %d characters", MaxItemNameLength))
	}
	return nil
}
