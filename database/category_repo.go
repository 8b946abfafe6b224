package database

import (
	"errors"

	"github.com/arcvista/backend/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CategoryRepo struct {
	db *gorm.DB
}

func NewCategoryRepo(db *gorm.DB) *CategoryRepo {
	return &CategoryRepo{db}
}

// FindAll returns categories newest-first, optionally filtered by type.
func (r *CategoryRepo) FindAll(categoryType string) ([]*models.Category, error) {
	query := r.db.Order("created_at DESC")
	if categoryType != "" {
		query = query.Where("type = ?", categoryType)
	}

	var categories []*models.Category
	err := query.Find(&categories).Error
	return categories, err
}

// FindByID returns a category by its ID, or (nil, nil) when no record matches.
func (r *CategoryRepo) FindByID(id uuid.UUID) (*models.Category, error) {
	var category models.Category
	err := r.db.First(&category, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// FindByNameAndType matches (name, type) case-insensitively on name,
// skipping excludeID so a record can keep its own name on update. Returns
// (nil, nil) when no record matches.
func (r *CategoryRepo) FindByNameAndType(name, categoryType string, excludeID uuid.UUID) (*models.Category, error) {
	query := r.db.Where("LOWER(name) = LOWER(?) AND type = ?", name, categoryType)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}

	var category models.Category
	err := query.First(&category).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// Add inserts a new category into the database
func (r *CategoryRepo) Add(category *models.Category) error {
	return r.db.Create(category).Error
}

// Update updates an existing category in the database
func (r *CategoryRepo) Update(category *models.Category) error {
	return r.db.Save(category).Error
}

// Delete removes a category from the database by id
func (r *CategoryRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Category{}, "id = ?", id).Error
}
