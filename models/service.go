package models

import (
	"time"

	"github.com/google/uuid"
)

// Service is an offering shown on the public site. Icon is a symbolic
// identifier resolved by the frontend; Image is optional, unlike Project's.
type Service struct {
	ID           uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Title        string    `json:"title" db:"title" gorm:"type:text;not null"`
	Icon         string    `json:"icon" db:"icon" gorm:"type:text;not null"`
	Description  string    `json:"description" db:"description" gorm:"type:text;not null"`
	Image        string    `json:"image,omitempty" db:"image" gorm:"type:text"`
	ProcessSteps []string  `json:"processSteps" db:"process_steps" gorm:"type:jsonb;serializer:json;not null;default:'[]'"`
	IsActive     bool      `json:"isActive" db:"is_active" gorm:"type:boolean;not null;default:true"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
}
