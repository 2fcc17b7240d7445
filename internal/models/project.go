package models

import (
	"time"
)

type Project struct {
	ID          int       `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description *string   `json:"description,omitempty" db:"description"`
	ImageFile   *string   `json:"image_file,omitempty" db:"image_file"`
	DatePosted  time.Time `json:"date_posted" db:"date_posted"`
	UserID      int       `json:"user_id" db:"user_id"`
}
