package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/eslkits/drillbox/internal/entity"
	"github.com/eslkits/drillbox/internal/repository"
)

const userIDHeader = "X-User-ID"

// currentUserID reads the caller's identity from the X-User-ID header.
// There is no real authentication; the header scopes progress data the
// same way the original product's superficial user checks did.
func currentUserID(c *gin.Context) (int64, bool) {
	raw := c.GetHeader(userIDHeader)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": entity.ErrInvalidUserID.Error()})
		return 0, false
	}
	return id, true
}

// pathID parses the :id route parameter.
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

// pagination reads page_no/page_size query parameters with defaults.
func pagination(c *gin.Context) repository.Pagination {
	pageNo := queryInt32(c, "page_no", 1)
	if pageNo < 1 {
		pageNo = 1
	}
	pageSize := queryInt32(c, "page_size", 20)
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 200 {
		pageSize = 200
	}
	return repository.Pagination{PageNo: pageNo, PageSize: pageSize}
}

func filterOrder(c *gin.Context) repository.FilterOrder {
	return repository.FilterOrder{
		Filter:  c.Query("filter"),
		OrderBy: c.Query("order_by"),
	}
}

func queryInt32(c *gin.Context, name string, fallback int32) int32 {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return fallback
	}
	return int32(v)
}
