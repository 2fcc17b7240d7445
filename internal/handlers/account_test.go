package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
)

func TestDeleteProfileCascadesProjects(t *testing.T) {
	gin.SetMode(gin.TestMode)
	_, mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.
		ExpectQuery(`SELECT profile_picture FROM users WHERE id = \$1`).
		WithArgs(101).
		WillReturnRows(sqlmock.NewRows([]string{"profile_picture"}).AddRow(nil))
	mock.
		ExpectQuery(`SELECT DISTINCT image_file\s+FROM projects`).
		WithArgs(101).
		WillReturnRows(sqlmock.NewRows([]string{"image_file"}))
	mock.
		ExpectQuery(`SELECT COUNT\(\*\) FROM projects WHERE user_id = \$1`).
		WithArgs(101).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.
		ExpectExec(`DELETE FROM users WHERE id = \$1`).
		WithArgs(101).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	router := gin.New()
	router.DELETE("/profile", withTestUserID(101), DeleteProfile)

	req := httptest.NewRequest(http.MethodDelete, "/profile", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	expectHTTP200(t, resp.Code)

	var out struct {
		Summary struct {
			UserID          int   `json:"user_id"`
			DeletedProjects int64 `json:"deleted_projects"`
		} `json:"summary"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("json.Unmarshal: %v", err)
	}
	if out.Summary.UserID != 101 || out.Summary.DeletedProjects != 2 {
		t.Fatalf("unexpected summary: %+v", out.Summary)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestDeleteProfileUnknownUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	_, mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.
		ExpectQuery(`SELECT profile_picture FROM users WHERE id = \$1`).
		WithArgs(404).
		WillReturnRows(sqlmock.NewRows([]string{"profile_picture"}))
	mock.ExpectRollback()

	router := gin.New()
	router.DELETE("/profile", withTestUserID(404), DeleteProfile)

	req := httptest.NewRequest(http.MethodDelete, "/profile", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	mustStatus(t, resp.Code, http.StatusNotFound)
}
