package models

import "time"

// DefaultFeatureLanguage is stored when a feature arrives without a language code.
const DefaultFeatureLanguage = "Language not found"

// Feature is a label detected on an image.
type Feature struct {
	ID          int64     `json:"id"`
	Label       string    `json:"label"`
	Language    string    `json:"language"`
	ImageID     int64     `json:"image_id"`
	UserID      int64     `json:"user_id"`
	DateCreated time.Time `json:"date_created"`
}
