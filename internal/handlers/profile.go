package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/Joules-bit-spec/student-portfolio/internal/database"
	"github.com/Joules-bit-spec/student-portfolio/internal/media"
	"github.com/Joules-bit-spec/student-portfolio/internal/middleware"
	"github.com/Joules-bit-spec/student-portfolio/internal/models"
	"github.com/Joules-bit-spec/student-portfolio/internal/monitoring"
	"github.com/Joules-bit-spec/student-portfolio/internal/store"
	"github.com/gin-gonic/gin"
)

func ownUserView(user *models.User) gin.H {
	view := publicUserView(user)
	view["email"] = user.Email
	view["phone"] = user.Phone
	view["address"] = user.Address
	view["is_admin"] = user.IsAdmin
	view["created_at"] = user.CreatedAt
	return view
}

// GetProfile returns the authenticated user's own profile.
func GetProfile(c *gin.Context) {
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

	user, err := store.GetUserByID(database.DB, userID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		log.Printf("Error loading profile: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error loading profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": ownUserView(user)})
}

// UpdateProfile applies a partial profile update from a form post or a JSON
// body. Only fields present in the request change. An optional
// profile_picture file part goes through the media handler; a rejected upload
// leaves the picture reference unchanged while the field updates still apply.
func UpdateProfile(c *gin.Context) {
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

	var fields store.ProfileFields
	if c.ContentType() == "application/json" {
		var req struct {
			Username   *string `json:"username"`
			Course     *string `json:"course"`
			Bio        *string `json:"bio"`
			Phone      *string `json:"phone"`
			Address    *string `json:"address"`
			Skills     *string `json:"skills"`
			Experience *string `json:"experience"`
			Education  *string `json:"education"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
		fields = store.ProfileFields{
			Username:   req.Username,
			Course:     req.Course,
			Bio:        req.Bio,
			Phone:      req.Phone,
			Address:    req.Address,
			Skills:     req.Skills,
			Experience: req.Experience,
			Education:  req.Education,
		}
	} else {
		bind := func(target **string, name string) {
			if value, present := c.GetPostForm(name); present {
				copied := value
				*target = &copied
			}
		}
		bind(&fields.Username, "username")
		bind(&fields.Course, "course")
		bind(&fields.Bio, "bio")
		bind(&fields.Phone, "phone")
		bind(&fields.Address, "address")
		bind(&fields.Skills, "skills")
		bind(&fields.Experience, "experience")
		bind(&fields.Education, "education")
	}

	if fields.Username != nil && *fields.Username == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username cannot be empty"})
		return
	}

	db := database.DB
	if err := store.UpdateUserProfile(db, userID, fields); err != nil {
		if errors.Is(err, store.ErrDuplicateIdentity) {
			c.JSON(http.StatusConflict, gin.H{"error": "Username already taken"})
			return
		}
		if errors.Is(err, store.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		log.Printf("Error updating profile: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating profile"})
		return
	}

	pictureUpdated := false
	file, header, fileErr := c.Request.FormFile("profile_picture")
	var tooLarge *http.MaxBytesError
	if errors.As(fileErr, &tooLarge) {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Request body too large"})
		return
	}
	if fileErr == nil {
		defer file.Close()

		filename, saveErr := media.SaveProfilePicture(userID, file, header.Filename)
		switch {
		case saveErr == nil:
			if err := store.SetProfilePicture(db, userID, filename); err != nil {
				log.Printf("Error saving profile picture reference: %v", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Error saving profile picture"})
				return
			}
			monitoring.RecordImageUpload(header.Size, true)
			pictureUpdated = true
		case errors.Is(saveErr, media.ErrFileTooLarge):
			monitoring.RecordImageUpload(0, false)
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Uploaded file too large"})
			return
		case errors.Is(saveErr, media.ErrUploadRejected):
			// Disallowed upload: skip silently, the stored reference stays as it was.
			monitoring.RecordImageUpload(0, false)
			log.Printf("Rejected profile picture upload request_id=%s user_id=%d filename=%q",
				middleware.RequestID(c), userID, header.Filename)
		default:
			log.Printf("Error storing profile picture: %v", saveErr)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error storing profile picture"})
			return
		}
	}

	user, err := store.GetUserByID(db, userID)
	if err != nil {
		log.Printf("Error reloading profile: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error loading profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":         "Profile updated",
		"picture_updated": pictureUpdated,
		"user":            ownUserView(user),
	})
}
