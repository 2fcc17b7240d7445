package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/Joules-bit-spec/student-portfolio/internal/authz"
	"github.com/Joules-bit-spec/student-portfolio/internal/database"
	"github.com/Joules-bit-spec/student-portfolio/internal/media"
	"github.com/Joules-bit-spec/student-portfolio/internal/middleware"
	"github.com/Joules-bit-spec/student-portfolio/internal/monitoring"
	"github.com/Joules-bit-spec/student-portfolio/internal/store"
	"github.com/gin-gonic/gin"
)

// ListOwnProjects returns the authenticated user's projects in insertion order.
func ListOwnProjects(c *gin.Context) {
	userIDInterface, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	userID, ok := userIDInterface.(int)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid user ID"})
		return
	}

	projects, err := store.ListProjectsByOwner(database.DB, userID)
	if err != nil {
		log.Printf("Error listing projects: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error listing projects"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"projects": projectViews(projects),
		"count":    len(projects),
	})
}

// CreateProject adds a project owned by the authenticated user. The form
// carries title, optional description and an optional image part; a rejected
// image upload stores the project without an image reference.
func CreateProject(c *gin.Context) {
	userIDInterface, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	userID, ok := userIDInterface.(int)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid user ID"})
		return
	}

	title := c.PostForm("title")
	if title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title is required"})
		return
	}

	var description *string
	if value, present := c.GetPostForm("description"); present {
		description = &value
	}

	var imageFile *string
	file, header, err := c.Request.FormFile("image")
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Request body too large"})
		return
	}
	if err == nil {
		defer file.Close()

		filename, saveErr := media.SaveProjectImage(file, header.Filename)
		switch {
		case saveErr == nil:
			imageFile = &filename
			monitoring.RecordImageUpload(header.Size, true)
		case errors.Is(saveErr, media.ErrFileTooLarge):
			monitoring.RecordImageUpload(0, false)
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Uploaded file too large"})
			return
		case errors.Is(saveErr, media.ErrUploadRejected):
			monitoring.RecordImageUpload(0, false)
			log.Printf("Rejected project image upload request_id=%s user_id=%d filename=%q",
				middleware.RequestID(c), userID, header.Filename)
		default:
			log.Printf("Error storing project image: %v", saveErr)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error storing project image"})
			return
		}
	}

	db := database.DB
	projectID, err := store.CreateProject(db, userID, title, description, imageFile)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		log.Printf("Error inserting project: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating project"})
		return
	}

	project, err := store.GetProjectByID(db, projectID)
	if err != nil {
		log.Printf("Error reloading project: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error loading project"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Project added",
		"project": projectView(*project),
	})
}

func resolveProjectForModify(c *gin.Context) (*authz.Identity, int, bool) {
	userIDInterface, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return nil, 0, false
	}

	userID, ok := userIDInterface.(int)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid user ID"})
		return nil, 0, false
	}

	projectID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project ID"})
		return nil, 0, false
	}

	identity, _, err := loadIdentity(database.DB, userID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return nil, 0, false
		}
		log.Printf("Error loading acting identity: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error loading user"})
		return nil, 0, false
	}

	return &identity, projectID, true
}

// GetProjectForEdit returns a project for its edit form, policy-gated.
func GetProjectForEdit(c *gin.Context) {
	identity, projectID, ok := resolveProjectForModify(c)
	if !ok {
		return
	}

	project, err := store.GetProjectByID(database.DB, projectID)
	if err != nil {
		if errors.Is(err, store.ErrProjectNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
			return
		}
		log.Printf("Error loading project: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error loading project"})
		return
	}

	if !authz.CanModifyProject(*identity, project.UserID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"project": projectView(*project)})
}

// EditProject updates a project's title and description. Only the owner or an
// admin may; ownership never changes.
func EditProject(c *gin.Context) {
	identity, projectID, ok := resolveProjectForModify(c)
	if !ok {
		return
	}

	db := database.DB
	project, err := store.GetProjectByID(db, projectID)
	if err != nil {
		if errors.Is(err, store.ErrProjectNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
			return
		}
		log.Printf("Error loading project: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error loading project"})
		return
	}

	if !authz.CanModifyProject(*identity, project.UserID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	title := c.PostForm("title")
	if title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title is required"})
		return
	}

	description := project.Description
	if value, present := c.GetPostForm("description"); present {
		description = &value
	}

	if err := store.UpdateProject(db, projectID, title, description); err != nil {
		if errors.Is(err, store.ErrProjectNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
			return
		}
		log.Printf("Error updating project: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating project"})
		return
	}

	updated, err := store.GetProjectByID(db, projectID)
	if err != nil {
		log.Printf("Error reloading project: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error loading project"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Project updated",
		"project": projectView(*updated),
	})
}

// DeleteProject removes a project, policy-gated, and cleans up its image file
// once nothing references it.
func DeleteProject(c *gin.Context) {
	identity, projectID, ok := resolveProjectForModify(c)
	if !ok {
		return
	}

	db := database.DB
	project, err := store.GetProjectByID(db, projectID)
	if err != nil {
		if errors.Is(err, store.ErrProjectNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
			return
		}
		log.Printf("Error loading project: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error loading project"})
		return
	}

	if !authz.CanModifyProject(*identity, project.UserID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	imageFile, stillReferenced, err := store.DeleteProject(db, projectID)
	if err != nil {
		if errors.Is(err, store.ErrProjectNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
			return
		}
		log.Printf("Error deleting project: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting project"})
		return
	}

	if imageFile != "" && !stillReferenced {
		if removeErr := media.RemoveStoredFile(imageFile); removeErr != nil {
			log.Printf("Error deleting project image %s: %v", imageFile, removeErr)
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Project deleted"})
}
