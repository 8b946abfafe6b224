package models

import (
	"time"

	"github.com/google/uuid"
)

// Team is a single team member profile.
type Team struct {
	ID          uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Name        string    `json:"name" db:"name" gorm:"type:text;not null"`
	Role        string    `json:"role" db:"role" gorm:"type:text;not null"`
	Description string    `json:"description,omitempty" db:"description" gorm:"type:text"`
	Image       string    `json:"image,omitempty" db:"image" gorm:"type:text"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
}
