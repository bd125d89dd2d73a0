package models

import "time"

// Image is an image URL owned by an account.
type Image struct {
	ID          int64     `json:"id"`
	URL         string    `json:"url"`
	UserID      int64     `json:"user_id"`
	DateCreated time.Time `json:"date_created"`
}
