package httputil

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
)

// MaxLimit caps the page size accepted from clients.
const MaxLimit = 100

// ParsePagination safely parses and validates offset and limit query parameters.
// It uses a default value of 0 for offset; the limit default is supplied by the
// caller since collection endpoints differ (recent comments and user listings
// default to small windows, blog listings to larger ones).
func ParsePagination(c *gin.Context, defaultLimit int) (offset, limit int, err error) {
	// Parse offset query parameter (default: 0)
	offsetStr := c.DefaultQuery("offset", "0")
	offset, err = strconv.Atoi(offsetStr)
	if err != nil || offset < 0 {
		return 0, 0, fmt.Errorf("invalid offset parameter: must be a non-negative integer")
	}

	// Parse limit query parameter
	limitStr := c.DefaultQuery("limit", strconv.Itoa(defaultLimit))
	limit, err = strconv.Atoi(limitStr)
	if err != nil || limit < 1 || limit > MaxLimit {
		return 0, 0, fmt.Errorf("invalid limit parameter: must be between 1 and %d", MaxLimit)
	}

	return offset, limit, nil
}
