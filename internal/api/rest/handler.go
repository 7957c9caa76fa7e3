package rest

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/partvault/assettag/internal/allocator"
	"github.com/partvault/assettag/internal/api/middleware"
	"github.com/partvault/assettag/internal/api/rest/dto"
	"github.com/partvault/assettag/internal/domain"
	"github.com/partvault/assettag/internal/store"
	"github.com/partvault/assettag/internal/tag"
)

// Handler defines the interface for REST API handlers
// This interface allows for easy mocking and testing
//
//go:generate mockgen -source=handler.go -destination=../../mocks/api_handler.go -package=mocks -mock_names=Handler=MockAPIHandler
type Handler interface {
	// ReserveTags reserves up to `count` tags for the caller (requires authentication)
	// POST /api/v1/tags/reserve
	ReserveTags(c *gin.Context)

	// GetReservations returns the caller's reserved tags compressed into ranges (requires authentication)
	// GET /api/v1/tags/reservations?user=<user>
	GetReservations(c *gin.Context)

	// GetTag retrieves a single ledger record by its tag string
	// GET /api/v1/tags/:tag
	GetTag(c *gin.Context)

	// CreateItem creates an item and assigns it a tag in one transaction (requires authentication)
	// POST /api/v1/items
	CreateItem(c *gin.Context)

	// DeleteItem deletes an item and voids its tag (requires authentication)
	// DELETE /api/v1/items/:id
	DeleteItem(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	allocator *allocator.Allocator
	store     store.Store
}

// NewHandler creates a new REST API handler
func NewHandler(alloc *allocator.Allocator, st store.Store) Handler {
	return &handler{
		allocator: alloc,
		store:     st,
	}
}

// callerUser resolves the user identity for the request: the JWT subject
// when present, otherwise the explicit user passed by an API-key caller
func callerUser(c *gin.Context, explicit string) string {
	if subject := c.GetString(middleware.AuthSubjectKey); subject != "" {
		return subject
	}
	return explicit
}

// ReserveTags reserves up to `count` tags for the caller, stopping at the
// per-user quota and reporting partial success
func (h *handler) ReserveTags(c *gin.Context) {
	var req dto.ReserveTagsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}

	if err := req.Validate(); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	user := callerUser(c, req.User)
	if user == "" {
		respondBadRequest(c, "User identity is required")
		return
	}

	count := req.Count
	if count == 0 {
		count = 1
	}

	result, err := h.allocator.ReserveBatch(c.Request.Context(), user, count)
	if err != nil {
		respondInternalError(c, err, "Failed to reserve tags")
		return
	}

	c.JSON(http.StatusOK, dto.ReserveTagsResponse{
		Requested:      result.Requested,
		Reserved:       result.Reserved,
		QuotaExhausted: result.QuotaExhausted,
		Tags:           result.Tags,
	})
}

// GetReservations returns the caller's reserved tags compressed into
// contiguous display ranges
func (h *handler) GetReservations(c *gin.Context) {
	user := callerUser(c, c.Query("user"))
	if user == "" {
		respondBadRequest(c, "User identity is required")
		return
	}

	ranges, err := h.allocator.Summary(c.Request.Context(), user)
	if err != nil {
		respondInternalError(c, err, "Failed to summarize reservations")
		return
	}

	total := 0
	for _, r := range ranges {
		total += r.Count
	}

	c.JSON(http.StatusOK, dto.ReservationsResponse{
		User:   user,
		Total:  total,
		Ranges: ranges,
	})
}

// GetTag retrieves a single ledger record by its tag string
func (h *handler) GetTag(c *gin.Context) {
	tagStr := c.Param("tag")
	if tagStr == "" {
		respondBadRequest(c, "Tag is required")
		return
	}

	if _, err := tag.Parse(tagStr); err != nil {
		respondBadRequest(c, "Invalid tag", err.Error())
		return
	}

	rec, err := h.store.GetTagByString(c.Request.Context(), tagStr)
	if err != nil {
		respondInternalError(c, err, "Failed to get tag")
		return
	}
	if rec == nil {
		respondNotFound(c, "Tag not found")
		return
	}

	c.JSON(http.StatusOK, dto.NewTagResponse(rec))
}

// CreateItem creates an item and assigns it a tag in a single transaction
func (h *handler) CreateItem(c *gin.Context) {
	var req dto.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}

	if err := req.Validate(); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	user := callerUser(c, req.User)
	if user == "" {
		respondBadRequest(c, "User identity is required")
		return
	}

	item, _, err := h.allocator.CreateItemWithTag(c.Request.Context(), user, req.Name)
	if err != nil {
		if errors.Is(err, domain.ErrQuotaExceeded) {
			respondQuotaExceeded(c, "Reservation quota exceeded", err.Error())
			return
		}
		respondInternalError(c, err, "Failed to create item")
		return
	}

	c.JSON(http.StatusCreated, dto.NewItemResponse(item))
}

// DeleteItem deletes an item and voids its tag. Deleting an absent item is
// a no-op so the operation stays idempotent.
func (h *handler) DeleteItem(c *gin.Context) {
	itemID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondBadRequest(c, "Invalid item id", err.Error())
		return
	}

	if err := h.allocator.Release(c.Request.Context(), itemID); err != nil {
		respondInternalError(c, err, "Failed to delete item")
		return
	}

	c.Status(http.StatusNoContent)
}

// HealthCheck returns the health status of the API
func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, dto.HealthResponse{Status: "ok"})
}
