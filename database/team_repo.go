package database

import (
	"errors"
	"time"

	"github.com/arcvista/backend/errs"
	"github.com/arcvista/backend/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TeamRepo struct {
	db *gorm.DB
}

func NewTeamRepo(db *gorm.DB) *TeamRepo {
	return &TeamRepo{db}
}

// FindAll returns all team members newest-first.
func (r *TeamRepo) FindAll() ([]*models.Team, error) {
	var members []*models.Team
	err := r.db.Order("created_at DESC").Find(&members).Error
	return members, err
}

// FindByID returns a team member by its ID, or (nil, nil) when no record matches.
func (r *TeamRepo) FindByID(id uuid.UUID) (*models.Team, error) {
	var member models.Team
	err := r.db.First(&member, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &member, nil
}

// Add inserts a new team member into the database
func (r *TeamRepo) Add(member *models.Team) error {
	return r.db.Create(member).Error
}

// Update writes the full field set conditionally on the updated_at value
// read earlier. Zero rows affected means another request got there first.
func (r *TeamRepo) Update(member *models.Team, expectedUpdatedAt time.Time) error {
	result := r.db.Model(&models.Team{}).
		Where("id = ? AND updated_at = ?", member.ID, expectedUpdatedAt).
		Select("*").Omit("id", "created_at").
		Updates(member)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewStaleRecordError("team member")
	}
	return nil
}

// Delete removes a team member from the database by id
func (r *TeamRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Team{}, "id = ?", id).Error
}
