package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
)

func TestPublicPortfolio(t *testing.T) {
	gin.SetMode(gin.TestMode)
	_, mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.
		ExpectQuery(regexp.QuoteMeta(selectUserByUsernameQuery)).
		WithArgs("alice").
		WillReturnRows(newUserRow(101, "alice", "a@x.com", "hash", false))
	mock.
		ExpectQuery(regexp.QuoteMeta(selectProjectsByOwnerQuery)).
		WithArgs(101).
		WillReturnRows(newProjectRows().
			AddRow(1, "Bridge", "A bridge model", nil, timeNow(), 101))

	router := gin.New()
	router.GET("/portfolio/:username", PublicPortfolio)

	// No Authorization header: the public portfolio needs none.
	req := httptest.NewRequest(http.MethodGet, "/portfolio/alice", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	expectHTTP200(t, resp.Code)

	var out struct {
		User     map[string]any   `json:"user"`
		Projects []map[string]any `json:"projects"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("json.Unmarshal: %v", err)
	}
	if out.User["username"] != "alice" {
		t.Fatalf("expected user alice, got %v", out.User["username"])
	}
	if _, leaked := out.User["email"]; leaked {
		t.Fatalf("public portfolio must not expose the email address")
	}
	if len(out.Projects) != 1 || out.Projects[0]["title"] != "Bridge" {
		t.Fatalf("expected project Bridge, got %v", out.Projects)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestPublicPortfolioUnknownUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	_, mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.
		ExpectQuery(regexp.QuoteMeta(selectUserByUsernameQuery)).
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows(userColumnNames)) // no rows

	router := gin.New()
	router.GET("/portfolio/:username", PublicPortfolio)

	req := httptest.NewRequest(http.MethodGet, "/portfolio/ghost", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	mustStatus(t, resp.Code, http.StatusNotFound)
}

func TestDownloadPortfolio(t *testing.T) {
	gin.SetMode(gin.TestMode)
	_, mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.
		ExpectQuery(regexp.QuoteMeta(selectUserByUsernameQuery)).
		WithArgs("alice").
		WillReturnRows(newUserRow(101, "alice", "a@x.com", "hash", false))
	mock.
		ExpectQuery(regexp.QuoteMeta(selectProjectsByOwnerQuery)).
		WithArgs(101).
		WillReturnRows(newProjectRows().
			AddRow(1, "Bridge", "A bridge model", nil, timeNow(), 101).
			AddRow(2, "Tower", nil, nil, timeNow(), 101))

	router := gin.New()
	router.GET("/download_portfolio/:username", DownloadPortfolio)

	req := httptest.NewRequest(http.MethodGet, "/download_portfolio/alice", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	expectHTTP200(t, resp.Code)

	if contentType := resp.Header().Get("Content-Type"); contentType != "application/pdf" {
		t.Fatalf("expected application/pdf, got %s", contentType)
	}
	if disposition := resp.Header().Get("Content-Disposition"); !strings.Contains(disposition, "alice_portfolio.pdf") {
		t.Fatalf("unexpected Content-Disposition: %s", disposition)
	}
	if !bytes.HasPrefix(resp.Body.Bytes(), []byte("%PDF")) {
		t.Fatalf("body does not look like a PDF")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestDownloadPortfolioUnknownUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	_, mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.
		ExpectQuery(regexp.QuoteMeta(selectUserByUsernameQuery)).
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows(userColumnNames)) // no rows

	router := gin.New()
	router.GET("/download_portfolio/:username", DownloadPortfolio)

	req := httptest.NewRequest(http.MethodGet, "/download_portfolio/ghost", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	mustStatus(t, resp.Code, http.StatusNotFound)
}
