package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/partvault/assettag/internal/api/apierrors"
	"github.com/partvault/assettag/internal/logger"
)

// respondBadRequest responds with a bad request error
func respondBadRequest(c *gin.Context, message string, details ...string) {
	c.JSON(http.StatusBadRequest, apierrors.NewBadRequestError(message, details...))
}

// respondNotFound responds with a not found error
func respondNotFound(c *gin.Context, message string, details ...string) {
	c.JSON(http.StatusNotFound, apierrors.NewNotFoundError(message, details...))
}

// respondValidationError responds with a validation error
func respondValidationError(c *gin.Context, message string) {
	c.JSON(http.StatusUnprocessableEntity, apierrors.NewValidationError(message))
}

// respondQuotaExceeded responds with a conflict for requests that cannot mint
// even a single tag without breaching the per-user reservation cap
func respondQuotaExceeded(c *gin.Context, message string, details ...string) {
	c.JSON(http.StatusConflict, apierrors.NewQuotaError(message, details...))
}

// respondInternalError responds with an internal server error and logs it
func respondInternalError(c *gin.Context, err error, message string) {
	logger.ErrorCtx(c.Request.Context(), err)
	c.JSON(http.StatusInternalServerError, apierrors.NewInternalError(message))
}
