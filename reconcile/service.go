package reconcile

import (
	"context"
	"strings"
	"time"

	"github.com/arcvista/backend/errs"
	"github.com/arcvista/backend/models"
	"github.com/arcvista/backend/storage"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ServiceStore is the slice of the service repository the engine needs.
// FindByID returns (nil, nil) when no record matches.
type ServiceStore interface {
	FindByID(id uuid.UUID) (*models.Service, error)
	Add(service *models.Service) error
	Update(service *models.Service, expectedUpdatedAt time.Time) error
	Delete(id uuid.UUID) error
}

// ServiceInput carries the raw multipart form fields of a service mutation.
type ServiceInput struct {
	Title        string
	Icon         string
	Description  string
	ProcessSteps string
	IsActive     string
}

// ServiceEngine reconciles service records and their optional single image.
type ServiceEngine struct {
	logger   zerolog.Logger
	services ServiceStore
	blobs    storage.BlobStore
}

func NewServiceEngine(services ServiceStore, blobs storage.BlobStore) *ServiceEngine {
	return &ServiceEngine{
		logger:   log.With().Str("component", "serviceEngine").Logger(),
		services: services,
		blobs:    blobs,
	}
}

// Create validates and writes a service. The image (when present) was
// already accepted by the transport layer, so every failure path deletes it
// before returning.
func (e *ServiceEngine) Create(ctx context.Context, input ServiceInput, uploads Uploads) (*models.Service, error) {
	steps := ParseListLenient(input.ProcessSteps)

	var missing []string
	for _, f := range []struct{ name, value string }{
		{"title", input.Title},
		{"icon", input.Icon},
		{"description", input.Description},
	} {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	if len(steps) == 0 {
		missing = append(missing, "processSteps")
	}
	if len(missing) > 0 {
		discardBlobs(ctx, e.blobs, e.logger, uploads.All())
		return nil, errs.NewBadRequestError("Missing required fields: " + strings.Join(missing, ", "))
	}

	service := &models.Service{
		Title:        input.Title,
		Icon:         input.Icon,
		Description:  input.Description,
		Image:        uploads.Main,
		ProcessSteps: steps,
		IsActive:     input.IsActive != "false",
	}

	if err := e.services.Add(service); err != nil {
		discardBlobs(ctx, e.blobs, e.logger, uploads.All())
		return nil, errs.NewDatabaseError("create", "service", err)
	}
	return service, nil
}

// Update applies a partial field set; a replacement image supersedes the old
// one, which is deleted only after the entity write succeeds.
func (e *ServiceEngine) Update(ctx context.Context, id uuid.UUID, input ServiceInput, uploads Uploads) (*models.Service, error) {
	existing, err := e.services.FindByID(id)
	if err != nil {
		discardBlobs(ctx, e.blobs, e.logger, uploads.All())
		return nil, errs.NewDatabaseError("find", "service", err)
	}
	if existing == nil {
		discardBlobs(ctx, e.blobs, e.logger, uploads.All())
		return nil, errs.NewNotFoundError("service not found")
	}

	merged := *existing
	merged.Title = fallback(input.Title, existing.Title)
	merged.Icon = fallback(input.Icon, existing.Icon)
	merged.Description = fallback(input.Description, existing.Description)
	if input.ProcessSteps != "" {
		merged.ProcessSteps = ParseListLenient(input.ProcessSteps)
	}
	if input.IsActive != "" {
		merged.IsActive = input.IsActive != "false"
	}

	oldImage := existing.Image
	if uploads.Main != "" {
		merged.Image = uploads.Main
	}

	if err := e.services.Update(&merged, existing.UpdatedAt); err != nil {
		discardBlobs(ctx, e.blobs, e.logger, uploads.All())
		return nil, err
	}

	if uploads.Main != "" && oldImage != "" && oldImage != uploads.Main {
		discardBlobs(ctx, e.blobs, e.logger, []string{oldImage})
	}
	return &merged, nil
}

// SetActive flips the visibility flag without touching any blobs.
func (e *ServiceEngine) SetActive(ctx context.Context, id uuid.UUID, active bool) (*models.Service, error) {
	existing, err := e.services.FindByID(id)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "service", err)
	}
	if existing == nil {
		return nil, errs.NewNotFoundError("service not found")
	}

	merged := *existing
	merged.IsActive = active
	if err := e.services.Update(&merged, existing.UpdatedAt); err != nil {
		return nil, err
	}
	return &merged, nil
}

// Delete removes the record first, then its image blob.
func (e *ServiceEngine) Delete(ctx context.Context, id uuid.UUID) error {
	existing, err := e.services.FindByID(id)
	if err != nil {
		return errs.NewDatabaseError("find", "service", err)
	}
	if existing == nil {
		return errs.NewNotFoundError("service not found")
	}

	if err := e.services.Delete(id); err != nil {
		return errs.NewDatabaseError("delete", "service", err)
	}

	if existing.Image != "" {
		discardBlobs(ctx, e.blobs, e.logger, []string{existing.Image})
	}
	return nil
}
