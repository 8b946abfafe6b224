package models

import (
	"time"

	"github.com/google/uuid"
)

// Recognized category types. The set is closed; "project" is the only member
// today but the column stays text so new types are an enum addition, not a
// migration.
const CategoryTypeProject = "project"

// ValidCategoryType reports whether t (already lowercased) is a recognized
// category type.
func ValidCategoryType(t string) bool {
	return t == CategoryTypeProject
}

// Category groups projects for the public site. (name, type) is unique
// case-insensitively; the slug is derived from both at creation time.
type Category struct {
	ID        uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Name      string    `json:"name" db:"name" gorm:"type:text;not null"`
	Slug      string    `json:"slug" db:"slug" gorm:"type:text;not null"`
	Type      string    `json:"type" db:"type" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"createdAt" db:"created_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
}
