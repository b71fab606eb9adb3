package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

type pagination struct {
	Page     int
	PageSize int
}

// paginationFromRequest reads page/page_size query params. Page size defaults
// to 10 and is capped at 100; nonsense values fall back to the defaults.
func paginationFromRequest(ctx *gin.Context) pagination {
	page, err := strconv.Atoi(ctx.DefaultQuery("page", "1"))

	if err != nil || page < 1 {
		page = 1
	}

	pageSize, err := strconv.Atoi(ctx.DefaultQuery("page_size", strconv.Itoa(defaultPageSize)))

	if err != nil || pageSize < 1 {
		pageSize = defaultPageSize
	}

	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	return pagination{Page: page, PageSize: pageSize}
}

func (p pagination) offset() int {
	return (p.Page - 1) * p.PageSize
}

// paginatedData wraps a result page with count and next/previous page
// numbers (null at either end).
func paginatedData(count int64, p pagination, results any) gin.H {
	var next, previous any

	if int64(p.Page*p.PageSize) < count {
		next = p.Page + 1
	}

	if p.Page > 1 {
		previous = p.Page - 1
	}

	return gin.H{
		"count":    count,
		"next":     next,
		"previous": previous,
		"results":  results,
	}
}
