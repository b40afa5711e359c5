package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/photo-feed/internal/apperr"
)

const maxPageSize = 100

// listParams parses page and limit query parameters. Page is 1-based;
// out-of-range values fall back to sane defaults rather than failing.
func listParams(c echo.Context, defaultLimit int) (page, limit int) {
	page, _ = strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.Atoi(c.QueryParam("limit"))
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return page, limit
}

// totalPages computes ceil(total / limit) for pagination metadata.
func totalPages(total int64, limit int) int64 {
	if limit < 1 {
		return 0
	}
	return (total + int64(limit) - 1) / int64(limit)
}

// pathID parses a numeric path parameter, answering BadRequest with the
// given message when it is missing or not a number.
func pathID(c echo.Context, name, required string) (uint64, error) {
	raw := c.Param(name)
	if raw == "" {
		return 0, apperr.BadRequest(required)
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, apperr.BadRequest(required)
	}
	return id, nil
}
