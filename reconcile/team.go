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

// TeamStore is the slice of the team repository the engine needs. FindByID
// returns (nil, nil) when no record matches.
type TeamStore interface {
	FindByID(id uuid.UUID) (*models.Team, error)
	Add(member *models.Team) error
	Update(member *models.Team, expectedUpdatedAt time.Time) error
	Delete(id uuid.UUID) error
}

// TeamInput carries the raw multipart form fields of a team mutation.
// DeleteOldImage is the "deleteOldImage" form flag: "true" drops the stored
// image without uploading a replacement.
type TeamInput struct {
	Name           string
	Role           string
	Description    string
	DeleteOldImage string
}

// TeamEngine reconciles team member records and their optional single image.
type TeamEngine struct {
	logger zerolog.Logger
	team   TeamStore
	blobs  storage.BlobStore
}

func NewTeamEngine(team TeamStore, blobs storage.BlobStore) *TeamEngine {
	return &TeamEngine{
		logger: log.With().Str("component", "teamEngine").Logger(),
		team:   team,
		blobs:  blobs,
	}
}

// Create validates and writes a team member. Name, role and image are
// required; any accepted blob is deleted on a failure path.
func (e *TeamEngine) Create(ctx context.Context, input TeamInput, uploads Uploads) (*models.Team, error) {
	var missing []string
	for _, f := range []struct{ name, value string }{
		{"name", input.Name},
		{"role", input.Role},
		{"image", uploads.Main},
	} {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		discardBlobs(ctx, e.blobs, e.logger, uploads.All())
		return nil, errs.NewBadRequestError("Missing required fields: " + strings.Join(missing, ", "))
	}

	member := &models.Team{
		Name:        input.Name,
		Role:        input.Role,
		Description: input.Description,
		Image:       uploads.Main,
	}

	if err := e.team.Add(member); err != nil {
		discardBlobs(ctx, e.blobs, e.logger, uploads.All())
		return nil, errs.NewDatabaseError("create", "team member", err)
	}
	return member, nil
}

// Update applies a partial field set. A new upload replaces the stored image;
// the deleteOldImage flag drops it entirely. The superseded blob is deleted
// only after the entity write succeeds.
func (e *TeamEngine) Update(ctx context.Context, id uuid.UUID, input TeamInput, uploads Uploads) (*models.Team, error) {
	existing, err := e.team.FindByID(id)
	if err != nil {
		discardBlobs(ctx, e.blobs, e.logger, uploads.All())
		return nil, errs.NewDatabaseError("find", "team member", err)
	}
	if existing == nil {
		discardBlobs(ctx, e.blobs, e.logger, uploads.All())
		return nil, errs.NewNotFoundError("team member not found")
	}

	merged := *existing
	merged.Name = fallback(input.Name, existing.Name)
	merged.Role = fallback(input.Role, existing.Role)
	merged.Description = fallback(input.Description, existing.Description)

	oldImage := existing.Image
	dropImage := input.DeleteOldImage == "true"
	switch {
	case uploads.Main != "":
		merged.Image = uploads.Main
	case dropImage:
		merged.Image = ""
	}

	if err := e.team.Update(&merged, existing.UpdatedAt); err != nil {
		discardBlobs(ctx, e.blobs, e.logger, uploads.All())
		return nil, err
	}

	if oldImage != "" && oldImage != merged.Image && (uploads.Main != "" || dropImage) {
		discardBlobs(ctx, e.blobs, e.logger, []string{oldImage})
	}
	return &merged, nil
}

// Delete removes the record first, then its image blob.
func (e *TeamEngine) Delete(ctx context.Context, id uuid.UUID) error {
	existing, err := e.team.FindByID(id)
	if err != nil {
		return errs.NewDatabaseError("find", "team member", err)
	}
	if existing == nil {
		return errs.NewNotFoundError("team member not found")
	}

	if err := e.team.Delete(id); err != nil {
		return errs.NewDatabaseError("delete", "team member", err)
	}

	if existing.Image != "" {
		discardBlobs(ctx, e.blobs, e.logger, []string{existing.Image})
	}
	return nil
}
