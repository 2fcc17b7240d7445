package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func adminPageFor(t *testing.T, rawQuery string) adminPage {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/admin?"+rawQuery, nil)
	return adminPageFromQuery(c)
}

func TestAdminPageFromQuery(t *testing.T) {
	tests := []struct {
		name        string
		rawQuery    string
		wantLimit   int
		wantOffset  int
		wantPattern string
	}{
		{"defaults", "", 25, 0, ""},
		{"explicit values", "limit=10&offset=40", 10, 40, ""},
		{"limit capped at max", "limit=9999", 100, 0, ""},
		{"garbage falls back", "limit=abc&offset=-3", 25, 0, ""},
		{"search lowercased and wrapped", "limit=10&search=%20Bridge%20", 10, 0, "%bridge%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := adminPageFor(t, tt.rawQuery)
			if page.Limit != tt.wantLimit {
				t.Fatalf("limit = %d, want %d", page.Limit, tt.wantLimit)
			}
			if page.Offset != tt.wantOffset {
				t.Fatalf("offset = %d, want %d", page.Offset, tt.wantOffset)
			}
			if page.Pattern != tt.wantPattern {
				t.Fatalf("pattern = %q, want %q", page.Pattern, tt.wantPattern)
			}
		})
	}
}
