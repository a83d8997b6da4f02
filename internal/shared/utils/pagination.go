package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/systech-labs/deskflow/internal/shared/constants"
)

// Pagination holds parsed pagination parameters.
type Pagination struct {
	Page     int
	PageSize int
}

// ParsePagination reads page and page_size from the query string. Missing or
// invalid values fall back to the defaults and page_size is capped at
// MaxPageSize.
func ParsePagination(c *gin.Context) Pagination {
	page := parseQueryInt(c, "page", constants.DefaultPage)
	pageSize := min(parseQueryInt(c, "page_size", constants.DefaultPageSize), constants.MaxPageSize)
	return Pagination{Page: page, PageSize: pageSize}
}

func parseQueryInt(c *gin.Context, key string, defaultVal int) int {
	if val := c.Query(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil && n >= 1 {
			return n
		}
	}
	return defaultVal
}

// ApplyPagination returns the slice bounds of one page: items[start:end].
// Pages past the end yield an empty range.
func ApplyPagination(total, page, pageSize int) (start, end int) {
	start = min((page-1)*pageSize, total)
	end = min(start+pageSize, total)
	return start, end
}

// TotalPages is never below one so an empty list still reports a page.
func TotalPages(total int64, pageSize int) int {
	if total == 0 || pageSize == 0 {
		return 1
	}
	return int((total + int64(pageSize) - 1) / int64(pageSize))
}
