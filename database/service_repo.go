package database

import (
	"errors"
	"time"

	"github.com/arcvista/backend/errs"
	"github.com/arcvista/backend/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ServiceRepo struct {
	db *gorm.DB
}

func NewServiceRepo(db *gorm.DB) *ServiceRepo {
	return &ServiceRepo{db}
}

// FindAll returns all services from the database
func (r *ServiceRepo) FindAll() ([]*models.Service, error) {
	var services []*models.Service
	err := r.db.Order("created_at DESC").Find(&services).Error
	return services, err
}

// FindByID returns a service by its ID, or (nil, nil) when no record matches.
func (r *ServiceRepo) FindByID(id uuid.UUID) (*models.Service, error) {
	var service models.Service
	err := r.db.First(&service, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &service, nil
}

// Add inserts a new service into the database
func (r *ServiceRepo) Add(service *models.Service) error {
	return r.db.Create(service).Error
}

// Update writes the full field set conditionally on the updated_at value
// read earlier. Zero rows affected means another request got there first.
func (r *ServiceRepo) Update(service *models.Service, expectedUpdatedAt time.Time) error {
	result := r.db.Model(&models.Service{}).
		Where("id = ? AND updated_at = ?", service.ID, expectedUpdatedAt).
		Select("*").Omit("id", "created_at").
		Updates(service)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewStaleRecordError("service")
	}
	return nil
}

// Delete removes a service from the database by id
func (r *ServiceRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Service{}, "id = ?", id).Error
}
