package database

import (
	"errors"
	"time"

	"github.com/arcvista/backend/errs"
	"github.com/arcvista/backend/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProjectRepo struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) *ProjectRepo {
	return &ProjectRepo{db}
}

// FindAll returns all projects with their category reference populated.
func (r *ProjectRepo) FindAll() ([]*models.Project, error) {
	var projects []*models.Project
	err := r.db.Preload("Category").Order("created_at DESC").Find(&projects).Error
	return projects, err
}

// FindByID returns a project by its ID, or (nil, nil) when no record matches.
func (r *ProjectRepo) FindByID(id uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := r.db.Preload("Category").First(&project, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// FindBySlug returns a project by its slug, or (nil, nil) when no record matches.
func (r *ProjectRepo) FindBySlug(slug string) (*models.Project, error) {
	var project models.Project
	err := r.db.Preload("Category").First(&project, "slug = ?", slug).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// Add inserts a new project into the database
func (r *ProjectRepo) Add(project *models.Project) error {
	return r.db.Create(project).Error
}

// Update writes the full field set conditionally on the updated_at value
// read earlier. Zero rows affected means another request got there first.
func (r *ProjectRepo) Update(project *models.Project, expectedUpdatedAt time.Time) error {
	result := r.db.Model(&models.Project{}).
		Where("id = ? AND updated_at = ?", project.ID, expectedUpdatedAt).
		Select("*").Omit("id", "created_at").
		Updates(project)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewStaleRecordError("project")
	}
	return nil
}

// Delete removes a project from the database by id
func (r *ProjectRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Project{}, "id = ?", id).Error
}

// CountByCategory returns how many projects reference the given category.
func (r *ProjectRepo) CountByCategory(categoryID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.Project{}).Where("category_id = ?", categoryID).Count(&count).Error
	return count, err
}
