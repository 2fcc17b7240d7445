package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/Joules-bit-spec/student-portfolio/internal/authz"
	"github.com/Joules-bit-spec/student-portfolio/internal/database"
	"github.com/Joules-bit-spec/student-portfolio/internal/models"
	"github.com/Joules-bit-spec/student-portfolio/internal/store"
	"github.com/gin-gonic/gin"
)

func adminUserView(user models.User) gin.H {
	return gin.H{
		"id":              user.ID,
		"username":        user.Username,
		"email":           user.Email,
		"course":          user.Course,
		"profile_picture": user.ProfilePicture,
		"is_admin":        user.IsAdmin,
		"created_at":      user.CreatedAt,
	}
}

// AdminDashboard lists all users and all projects. Admins only.
func AdminDashboard(c *gin.Context) {
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

	db := database.DB
	identity, _, err := loadIdentity(db, userID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		log.Printf("Error loading acting identity: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error loading user"})
		return
	}

	if !authz.CanViewAdmin(identity) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	page := adminPageFromQuery(c)

	users, usersTotal, err := store.ListUsers(db, page.Limit, page.Offset, page.Pattern)
	if err != nil {
		log.Printf("Error listing users: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error listing users"})
		return
	}

	projects, owners, projectsTotal, err := store.ListProjects(db, page.Limit, page.Offset, page.Pattern)
	if err != nil {
		log.Printf("Error listing projects: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error listing projects"})
		return
	}

	userViews := make([]gin.H, 0, len(users))
	for _, user := range users {
		userViews = append(userViews, adminUserView(user))
	}

	projectEntries := make([]gin.H, 0, len(projects))
	for _, project := range projects {
		view := projectView(project)
		view["owner_username"] = owners[project.UserID]
		projectEntries = append(projectEntries, view)
	}

	c.JSON(http.StatusOK, gin.H{
		"users":          userViews,
		"users_total":    usersTotal,
		"projects":       projectEntries,
		"projects_total": projectsTotal,
		"limit":          page.Limit,
		"offset":         page.Offset,
		"search":         page.Search,
	})
}
