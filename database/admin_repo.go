package database

import (
	"errors"

	"github.com/arcvista/backend/models"
	"gorm.io/gorm"
)

type AdminRepo struct {
	db *gorm.DB
}

func NewAdminRepo(db *gorm.DB) *AdminRepo {
	return &AdminRepo{db}
}

// FindByEmail returns an admin by email, or (nil, nil) when no record matches.
func (r *AdminRepo) FindByEmail(email string) (*models.Admin, error) {
	var admin models.Admin
	err := r.db.First(&admin, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

// Add inserts a new admin. The unique constraint on email is the final
// arbiter against concurrent registrations.
func (r *AdminRepo) Add(admin *models.Admin) error {
	return r.db.Create(admin).Error
}
