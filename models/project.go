package models

import (
	"time"

	"github.com/google/uuid"
)

// Project represents a portfolio project with its category reference and
// attached images. Image and Gallery hold blob names owned exclusively by
// this project; Category is a non-owning reference.
type Project struct {
	ID              uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Title           string    `json:"title" db:"title" gorm:"type:text;not null"`
	Slug            string    `json:"slug" db:"slug" gorm:"type:text;not null;unique"`
	CategoryID      uuid.UUID `json:"categoryId" db:"category_id" gorm:"type:uuid;not null"`
	Category        *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID;references:ID"`
	Location        string    `json:"location" db:"location" gorm:"type:text;not null"`
	Year            *int      `json:"year,omitempty" db:"year" gorm:"type:integer"`
	Area            float64   `json:"area" db:"area" gorm:"type:numeric;not null"`
	Client          string    `json:"client,omitempty" db:"client" gorm:"type:text"`
	Description     string    `json:"description" db:"description" gorm:"type:text;not null"`
	Overview        string    `json:"overview" db:"overview" gorm:"type:text;not null"`
	LongDescription string    `json:"longDescription" db:"long_description" gorm:"type:text;not null"`
	Approach        string    `json:"approach,omitempty" db:"approach" gorm:"type:text"`
	Features        []string  `json:"features" db:"features" gorm:"type:jsonb;serializer:json;not null;default:'[]'"`
	Image           string    `json:"image" db:"image" gorm:"type:text;not null"`
	Gallery         []string  `json:"gallery" db:"gallery" gorm:"type:jsonb;serializer:json;not null;default:'[]'"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt       time.Time `json:"updatedAt" db:"updated_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
}

// Blobs returns every blob name the project owns: the main image followed by
// the gallery in stored order.
func (p *Project) Blobs() []string {
	blobs := make([]string, 0, len(p.Gallery)+1)
	if p.Image != "" {
		blobs = append(blobs, p.Image)
	}
	return append(blobs, p.Gallery...)
}
