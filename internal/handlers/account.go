package handlers

import (
	"database/sql"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/Joules-bit-spec/student-portfolio/internal/database"
	"github.com/Joules-bit-spec/student-portfolio/internal/media"
	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
)

type deleteUserSummary struct {
	UserID           int   `json:"user_id"`
	DeletedProjects  int64 `json:"deleted_projects"`
	CandidateFiles   int   `json:"candidate_files"`
	DeletedFiles     int   `json:"deleted_files"`
	FileDeleteErrors int   `json:"file_delete_errors"`
}

func collectOwnedImageFiles(tx *sql.Tx, userID int) ([]string, error) {
	rows, err := tx.Query(
		`SELECT DISTINCT image_file
		 FROM projects
		 WHERE user_id = $1 AND image_file IS NOT NULL AND image_file <> ''`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var files []string
	for rows.Next() {
		var file string
		if scanErr := rows.Scan(&file); scanErr != nil {
			return nil, scanErr
		}
		files = append(files, file)
	}

	return files, rows.Err()
}

// stillReferencedImageFiles returns the subset of candidates some surviving
// project still points at. Image files are content-addressed and can be shared.
func stillReferencedImageFiles(tx *sql.Tx, candidates []string) (map[string]struct{}, error) {
	referenced := make(map[string]struct{})
	if len(candidates) == 0 {
		return referenced, nil
	}

	rows, err := tx.Query(
		`SELECT DISTINCT image_file FROM projects WHERE image_file = ANY($1)`,
		pq.Array(candidates),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var file string
		if scanErr := rows.Scan(&file); scanErr != nil {
			return nil, scanErr
		}
		referenced[file] = struct{}{}
	}

	return referenced, rows.Err()
}

func removeStoredFiles(paths []string) (deletedFiles int, deleteErrors int) {
	for _, filePath := range paths {
		if err := media.RemoveStoredFile(filePath); err != nil {
			deleteErrors++
			log.Printf("Error deleting file %s: %v", filePath, err)
			continue
		}
		deletedFiles++
	}
	return deletedFiles, deleteErrors
}

// deleteUserAndRelatedData removes a user, their projects (FK cascade) and any
// image files no surviving project references. The cascade is a deliberate
// policy: no orphaned project rows are left behind.
func deleteUserAndRelatedData(db *sql.DB, userID int) (deleteUserSummary, error) {
	summary := deleteUserSummary{UserID: userID}

	tx, err := db.Begin()
	if err != nil {
		return summary, err
	}
	defer tx.Rollback()

	var profilePicture sql.NullString
	if err := tx.QueryRow(`SELECT profile_picture FROM users WHERE id = $1`, userID).Scan(&profilePicture); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return summary, sql.ErrNoRows
		}
		return summary, err
	}

	candidateFiles, err := collectOwnedImageFiles(tx, userID)
	if err != nil {
		return summary, err
	}
	summary.CandidateFiles = len(candidateFiles)

	if err := tx.QueryRow(`SELECT COUNT(*) FROM projects WHERE user_id = $1`, userID).Scan(&summary.DeletedProjects); err != nil {
		return summary, err
	}

	result, err := tx.Exec(`DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		return summary, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return summary, err
	}
	if rowsAffected == 0 {
		return summary, sql.ErrNoRows
	}

	referenced, err := stillReferencedImageFiles(tx, candidateFiles)
	if err != nil {
		return summary, err
	}

	if err := tx.Commit(); err != nil {
		return summary, err
	}

	var filesToDelete []string
	for _, file := range candidateFiles {
		if _, stillUsed := referenced[file]; !stillUsed {
			filesToDelete = append(filesToDelete, file)
		}
	}
	// Profile pictures carry the owner id in their name and are never shared.
	if profilePicture.Valid && strings.TrimSpace(profilePicture.String) != "" {
		filesToDelete = append(filesToDelete, profilePicture.String)
	}

	summary.DeletedFiles, summary.FileDeleteErrors = removeStoredFiles(filesToDelete)
	return summary, nil
}

// DeleteProfile removes the authenticated user's account, projects and files.
func DeleteProfile(c *gin.Context) {
	userIDInterface, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	userID, ok := userIDInterface.(int)
	if !ok || userID <= 0 {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid user ID"})
		return
	}

	summary, err := deleteUserAndRelatedData(database.DB, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		log.Printf("Error deleting profile for user_id=%d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile deleted successfully",
		"summary": summary,
	})
}
