package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/At1ass/Bakery/internal/domain"
)

// writeError translates domain errors into HTTP responses. Unknown
// errors surface as a bare 500 so internals never leak to clients.
func writeError(c *gin.Context, err error) {
	var unavailable *domain.UnavailableItemsError
	if errors.As(err, &unavailable) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":      unavailable.Error(),
			"productIds": unavailable.ProductIDs,
		})
		return
	}

	switch {
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrInvalidTransition):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or missing credentials"})
	case errors.Is(err, domain.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "not allowed"})
	case errors.Is(err, domain.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
	case errors.Is(err, domain.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "order was updated concurrently, retry"})
	case errors.Is(err, domain.ErrDependencyUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "a dependent service is unavailable, retry later"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
