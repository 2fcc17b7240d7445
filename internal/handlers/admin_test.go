package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
)

func TestAdminDashboardDeniedForNonAdmin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	_, mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.
		ExpectQuery(regexp.QuoteMeta(selectUserByIDQuery)).
		WithArgs(101).
		WillReturnRows(newUserRow(101, "alice", "a@x.com", "hash", false))

	router := gin.New()
	router.GET("/admin", withTestUserID(101), AdminDashboard)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	mustStatus(t, resp.Code, http.StatusForbidden)

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestAdminDashboardListsUsersAndProjects(t *testing.T) {
	gin.SetMode(gin.TestMode)
	_, mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.
		ExpectQuery(regexp.QuoteMeta(selectUserByIDQuery)).
		WithArgs(303).
		WillReturnRows(newUserRow(303, "root", "root@x.com", "hash", true))
	mock.
		ExpectQuery(`SELECT COUNT\(\*\)\s+FROM users`).
		WithArgs("").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.
		ExpectQuery(`SELECT id, username, email,[\s\S]+FROM users[\s\S]+ORDER BY id ASC`).
		WithArgs("", 25, 0).
		WillReturnRows(newUserRow(101, "alice", "a@x.com", "hash", false).
			AddRow(303, "root", "root@x.com", "hash", nil, nil, nil, nil, nil, nil, nil, nil, true, timeNow(), timeNow()))
	mock.
		ExpectQuery(`SELECT COUNT\(\*\)\s+FROM projects p`).
		WithArgs("").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.
		ExpectQuery(`SELECT p\.id, p\.title,[\s\S]+FROM projects p[\s\S]+ORDER BY p\.id ASC`).
		WithArgs("", 25, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "description", "image_file", "date_posted", "user_id", "username"}).
			AddRow(1, "Bridge", "A bridge model", nil, timeNow(), 101, "alice"))

	router := gin.New()
	router.GET("/admin", withTestUserID(303), AdminDashboard)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	expectHTTP200(t, resp.Code)

	var out struct {
		Users         []map[string]any `json:"users"`
		UsersTotal    int              `json:"users_total"`
		Projects      []map[string]any `json:"projects"`
		ProjectsTotal int              `json:"projects_total"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("json.Unmarshal: %v", err)
	}
	if len(out.Users) != 2 || out.UsersTotal != 2 {
		t.Fatalf("expected 2 users, got len=%d total=%d", len(out.Users), out.UsersTotal)
	}
	if len(out.Projects) != 1 || out.ProjectsTotal != 1 {
		t.Fatalf("expected 1 project, got len=%d total=%d", len(out.Projects), out.ProjectsTotal)
	}
	if out.Projects[0]["owner_username"] != "alice" {
		t.Fatalf("expected owner alice, got %v", out.Projects[0]["owner_username"])
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}
