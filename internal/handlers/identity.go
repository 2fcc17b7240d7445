package handlers

import (
	"database/sql"

	"github.com/Joules-bit-spec/student-portfolio/internal/authz"
	"github.com/Joules-bit-spec/student-portfolio/internal/models"
	"github.com/Joules-bit-spec/student-portfolio/internal/store"
	"github.com/gin-gonic/gin"
)

// loadIdentity resolves the acting identity for policy decisions. The admin
// flag always comes from the users row, never from the token.
func loadIdentity(db *sql.DB, userID int) (authz.Identity, *models.User, error) {
	user, err := store.GetUserByID(db, userID)
	if err != nil {
		return authz.Identity{}, nil, err
	}

	return authz.Identity{UserID: user.ID, IsAdmin: user.IsAdmin}, user, nil
}

// publicUserView is the profile subset shown on a public portfolio.
func publicUserView(user *models.User) gin.H {
	return gin.H{
		"id":              user.ID,
		"username":        user.Username,
		"course":          user.Course,
		"bio":             user.Bio,
		"skills":          user.Skills,
		"experience":      user.Experience,
		"education":       user.Education,
		"profile_picture": user.ProfilePicture,
	}
}

func projectView(project models.Project) gin.H {
	return gin.H{
		"id":          project.ID,
		"title":       project.Title,
		"description": project.Description,
		"image_file":  project.ImageFile,
		"date_posted": project.DatePosted,
		"user_id":     project.UserID,
	}
}

func projectViews(projects []models.Project) []gin.H {
	views := make([]gin.H, 0, len(projects))
	for _, project := range projects {
		views = append(views, projectView(project))
	}
	return views
}
