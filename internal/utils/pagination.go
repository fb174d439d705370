package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/printflow/internal/constants"
)

// PaginationParams holds the pagination parameters. A zero Limit means no paging.
type PaginationParams struct {
	Page   int
	Limit  int
	Offset int
}

// PaginationResponse represents the pagination metadata in API responses
type PaginationResponse struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// GetPaginationParams extracts and validates pagination parameters from the request.
// Without ?limit= the whole collection is returned.
func GetPaginationParams(c *gin.Context) PaginationParams {
	limitStr, ok := c.GetQuery("limit")
	if !ok {
		return PaginationParams{Page: constants.MinPageSize}
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(constants.MinPageSize)))
	limit, _ := strconv.Atoi(limitStr)

	if page < constants.MinPageSize {
		page = constants.MinPageSize
	}
	if limit < constants.MinPageSize || limit > constants.MaxPageSize {
		limit = constants.DefaultPageSize
	}

	return PaginationParams{
		Page:   page,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
}

// Paginate returns the page of items selected by p.
func Paginate[T any](items []T, p PaginationParams) []T {
	if p.Limit == 0 {
		return items
	}
	if p.Offset >= len(items) {
		return []T{}
	}
	end := min(p.Offset+p.Limit, len(items))
	return items[p.Offset:end]
}
