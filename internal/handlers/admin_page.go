package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	adminDefaultPageSize = 25
	adminMaxPageSize     = 100
)

// adminPage is one page of the admin listing: limit/offset plus an optional
// case-insensitive search applied to usernames, emails, courses, project
// titles and descriptions.
type adminPage struct {
	Limit   int
	Offset  int
	Search  string
	Pattern string
}

func adminPageFromQuery(c *gin.Context) adminPage {
	page := adminPage{Limit: adminDefaultPageSize}

	if limit, err := strconv.Atoi(strings.TrimSpace(c.Query("limit"))); err == nil && limit > 0 {
		page.Limit = limit
	}
	if page.Limit > adminMaxPageSize {
		page.Limit = adminMaxPageSize
	}

	if offset, err := strconv.Atoi(strings.TrimSpace(c.Query("offset"))); err == nil && offset >= 0 {
		page.Offset = offset
	}

	page.Search = strings.TrimSpace(c.Query("search"))
	if page.Search != "" {
		page.Pattern = "%" + strings.ToLower(page.Search) + "%"
	}

	return page
}
