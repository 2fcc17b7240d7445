package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/Joules-bit-spec/student-portfolio/internal/database"
	"github.com/Joules-bit-spec/student-portfolio/internal/pdf"
	"github.com/Joules-bit-spec/student-portfolio/internal/store"
	"github.com/gin-gonic/gin"
)

// PublicPortfolio returns one user's public profile and project list. No
// authentication required.
func PublicPortfolio(c *gin.Context) {
	username := strings.TrimSpace(c.Param("username"))
	if username == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username is required"})
		return
	}

	db := database.DB
	user, err := store.GetUserByUsername(db, username)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		log.Printf("Error loading portfolio user: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error loading portfolio"})
		return
	}

	projects, err := store.ListProjectsByOwner(db, user.ID)
	if err != nil {
		log.Printf("Error loading portfolio projects: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error loading portfolio"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":     publicUserView(user),
		"projects": projectViews(projects),
	})
}

// DownloadPortfolio exports one user's portfolio as a PDF attachment. An
// unknown username is a clean 404.
func DownloadPortfolio(c *gin.Context) {
	username := strings.TrimSpace(c.Param("username"))
	if username == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username is required"})
		return
	}

	db := database.DB
	user, err := store.GetUserByUsername(db, username)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		log.Printf("Error loading portfolio user for export: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error exporting portfolio"})
		return
	}

	projects, err := store.ListProjectsByOwner(db, user.ID)
	if err != nil {
		log.Printf("Error loading portfolio projects for export: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error exporting portfolio"})
		return
	}

	document := pdf.BuildDocument(user, projects)
	output, err := document.Render()
	if err != nil {
		log.Printf("Error rendering portfolio PDF for %s: %v", user.Username, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error rendering portfolio PDF"})
		return
	}

	c.Header("X-Content-Type-Options", "nosniff")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, pdf.Filename(user.Username)))
	c.Data(http.StatusOK, "application/pdf", output)
}
