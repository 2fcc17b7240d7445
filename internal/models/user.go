package models

import (
	"time"
)

// User represents a registered student account.
type User struct {
	ID             int       `json:"id" db:"id"`
	Username       string    `json:"username" db:"username" validate:"required,min=3,max=150"`
	Email          string    `json:"email" db:"email" validate:"required,email"`
	Password       string    `json:"-" db:"password"`
	Course         *string   `json:"course,omitempty" db:"course"`
	Bio            *string   `json:"bio,omitempty" db:"bio"`
	Phone          *string   `json:"phone,omitempty" db:"phone"`
	Address        *string   `json:"address,omitempty" db:"address"`
	Skills         *string   `json:"skills,omitempty" db:"skills"`
	Experience     *string   `json:"experience,omitempty" db:"experience"`
	Education      *string   `json:"education,omitempty" db:"education"`
	ProfilePicture *string   `json:"profile_picture,omitempty" db:"profile_picture"`
	IsAdmin        bool      `json:"is_admin" db:"is_admin"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}
