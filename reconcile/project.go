package reconcile

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/arcvista/backend/errs"
	"github.com/arcvista/backend/models"
	"github.com/arcvista/backend/storage"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ProjectStore is the slice of the project repository the engine needs.
// FindByID and FindBySlug return (nil, nil) when no record matches.
type ProjectStore interface {
	FindByID(id uuid.UUID) (*models.Project, error)
	FindBySlug(slug string) (*models.Project, error)
	Add(project *models.Project) error
	Update(project *models.Project, expectedUpdatedAt time.Time) error
	Delete(id uuid.UUID) error
}

// CategoryResolver resolves category references during project mutations.
// FindByID returns (nil, nil) when no record matches.
type CategoryResolver interface {
	FindByID(id uuid.UUID) (*models.Category, error)
}

// ProjectInput carries the raw multipart form fields of a project mutation.
// Everything is a string at this point; the engine owns parsing. On update an
// empty field means "keep the existing value".
type ProjectInput struct {
	Title           string
	Category        string
	Location        string
	Year            string
	Area            string
	Client          string
	Description     string
	Overview        string
	LongDescription string
	Approach        string
	Features        string
}

// ProjectEngine reconciles project records against the blob store.
type ProjectEngine struct {
	logger     zerolog.Logger
	projects   ProjectStore
	categories CategoryResolver
	blobs      storage.BlobStore
}

func NewProjectEngine(projects ProjectStore, categories CategoryResolver, blobs storage.BlobStore) *ProjectEngine {
	return &ProjectEngine{
		logger:     log.With().Str("component", "projectEngine").Logger(),
		projects:   projects,
		categories: categories,
		blobs:      blobs,
	}
}

// Create validates the input, derives a unique slug and writes the project.
// On any failure after the transport layer accepted blobs, every blob in
// uploads is deleted before the error is returned.
func (e *ProjectEngine) Create(ctx context.Context, input ProjectInput, uploads Uploads) (*models.Project, error) {
	required := []struct{ name, value string }{
		{"title", input.Title},
		{"category", input.Category},
		{"location", input.Location},
		{"year", input.Year},
		{"area", input.Area},
		{"client", input.Client},
		{"description", input.Description},
		{"overview", input.Overview},
		{"longDescription", input.LongDescription},
		{"approach", input.Approach},
		{"image", uploads.Main},
	}

	var missing []string
	for _, f := range required {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		discardBlobs(ctx, e.blobs, e.logger, uploads.All())
		return nil, errs.NewBadRequestError("Missing required fields: " + strings.Join(missing, ", "))
	}

	categoryID, err := e.resolveCategory(input.Category)
	if err != nil {
		discardBlobs(ctx, e.blobs, e.logger, uploads.All())
		return nil, err
	}

	year, err := strconv.Atoi(input.Year)
	if err != nil {
		discardBlobs(ctx, e.blobs, e.logger, uploads.All())
		return nil, errs.NewInvalidFieldError("year", "must be a number")
	}

	area, err := strconv.ParseFloat(input.Area, 64)
	if err != nil {
		discardBlobs(ctx, e.blobs, e.logger, uploads.All())
		return nil, errs.NewInvalidFieldError("area", "must be a number")
	}

	slug, err := e.uniqueSlug(input.Title, uuid.Nil)
	if err != nil {
		discardBlobs(ctx, e.blobs, e.logger, uploads.All())
		return nil, errs.NewDatabaseError("derive slug for", "project", err)
	}

	project := &models.Project{
		Title:           input.Title,
		Slug:            slug,
		CategoryID:      categoryID,
		Location:        input.Location,
		Year:            &year,
		Area:            area,
		Client:          input.Client,
		Description:     input.Description,
		Overview:        input.Overview,
		LongDescription: input.LongDescription,
		Approach:        input.Approach,
		Features:        ParseListLenient(input.Features),
		Image:           uploads.Main,
		Gallery:         append([]string{}, uploads.Gallery...),
	}

	if err := e.projects.Add(project); err != nil {
		discardBlobs(ctx, e.blobs, e.logger, uploads.All())
		return nil, errs.NewDatabaseError("create", "project", err)
	}

	// Reload so the response carries the populated category reference.
	created, err := e.projects.FindByID(project.ID)
	if err != nil || created == nil {
		return project, nil
	}
	return created, nil
}

// Update applies a partial field set, reconciles the gallery against the
// client-declared deletion list and merges in newly uploaded blobs. The old
// main image is deleted only after the entity write succeeds; on failure the
// newly uploaded blobs are deleted and the persisted state is untouched.
func (e *ProjectEngine) Update(ctx context.Context, id uuid.UUID, input ProjectInput, uploads Uploads, deletedGallery string) (*models.Project, error) {
	existing, err := e.projects.FindByID(id)
	if err != nil {
		discardBlobs(ctx, e.blobs, e.logger, uploads.All())
		return nil, errs.NewDatabaseError("find", "project", err)
	}
	if existing == nil {
		discardBlobs(ctx, e.blobs, e.logger, uploads.All())
		return nil, errs.NewNotFoundError("project not found")
	}

	deleted, err := ParseListStrict(deletedGallery)
	if err != nil {
		discardBlobs(ctx, e.blobs, e.logger, uploads.All())
		return nil, errs.NewInvalidFieldError("deletedGallery", err.Error())
	}

	// Client-declared gallery removals come off disk first, best-effort. A
	// deletion failure must not block the entity update.
	discardBlobs(ctx, e.blobs, e.logger, deleted)

	deletedSet := make(map[string]bool, len(deleted))
	for _, name := range deleted {
		deletedSet[name] = true
	}

	// Survivors keep their original order, new uploads append in upload order.
	gallery := make([]string, 0, len(existing.Gallery)+len(uploads.Gallery))
	for _, name := range existing.Gallery {
		if !deletedSet[name] {
			gallery = append(gallery, name)
		}
	}
	gallery = append(gallery, uploads.Gallery...)

	merged := *existing
	merged.Category = nil
	merged.Gallery = gallery
	merged.Location = fallback(input.Location, existing.Location)
	merged.Client = fallback(input.Client, existing.Client)
	merged.Description = fallback(input.Description, existing.Description)
	merged.Overview = fallback(input.Overview, existing.Overview)
	merged.LongDescription = fallback(input.LongDescription, existing.LongDescription)
	merged.Approach = fallback(input.Approach, existing.Approach)

	if input.Category != "" {
		categoryID, err := e.resolveCategory(input.Category)
		if err != nil {
			discardBlobs(ctx, e.blobs, e.logger, uploads.All())
			return nil, err
		}
		merged.CategoryID = categoryID
	}

	if input.Year != "" {
		year, err := strconv.Atoi(input.Year)
		if err != nil {
			discardBlobs(ctx, e.blobs, e.logger, uploads.All())
			return nil, errs.NewInvalidFieldError("year", "must be a number")
		}
		merged.Year = &year
	}

	if input.Area != "" {
		area, err := strconv.ParseFloat(input.Area, 64)
		if err != nil {
			discardBlobs(ctx, e.blobs, e.logger, uploads.All())
			return nil, errs.NewInvalidFieldError("area", "must be a number")
		}
		merged.Area = area
	}

	if input.Features != "" {
		merged.Features = ParseListLenient(input.Features)
	}

	// The slug is regenerated only when the title actually changes.
	if input.Title != "" && input.Title != existing.Title {
		merged.Title = input.Title
		slug, err := e.uniqueSlug(input.Title, existing.ID)
		if err != nil {
			discardBlobs(ctx, e.blobs, e.logger, uploads.All())
			return nil, errs.NewDatabaseError("derive slug for", "project", err)
		}
		merged.Slug = slug
	}

	oldImage := existing.Image
	if uploads.Main != "" {
		merged.Image = uploads.Main
	}

	if err := e.projects.Update(&merged, existing.UpdatedAt); err != nil {
		discardBlobs(ctx, e.blobs, e.logger, uploads.All())
		return nil, err
	}

	// The superseded main image goes away only now that the write stuck.
	if uploads.Main != "" && oldImage != "" && oldImage != uploads.Main {
		discardBlobs(ctx, e.blobs, e.logger, []string{oldImage})
	}

	updated, err := e.projects.FindByID(id)
	if err != nil || updated == nil {
		return &merged, nil
	}
	return updated, nil
}

// Delete removes the project record first and then its blobs. A crash in
// between leaves orphaned files, never a dangling entity reference.
func (e *ProjectEngine) Delete(ctx context.Context, id uuid.UUID) error {
	existing, err := e.projects.FindByID(id)
	if err != nil {
		return errs.NewDatabaseError("find", "project", err)
	}
	if existing == nil {
		return errs.NewNotFoundError("project not found")
	}

	if err := e.projects.Delete(id); err != nil {
		return errs.NewDatabaseError("delete", "project", err)
	}

	discardBlobs(ctx, e.blobs, e.logger, existing.Blobs())
	return nil
}

// resolveCategory validates that the raw category reference is a well-formed
// id pointing at an existing category.
func (e *ProjectEngine) resolveCategory(raw string) (uuid.UUID, error) {
	categoryID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errs.NewInvalidFieldError("category", "not a valid category ID")
	}

	category, err := e.categories.FindByID(categoryID)
	if err != nil {
		return uuid.Nil, errs.NewDatabaseError("find", "category", err)
	}
	if category == nil {
		return uuid.Nil, errs.NewInvalidFieldError("category", "referenced category does not exist")
	}
	return categoryID, nil
}

// uniqueSlug derives a slug from the title and disambiguates collisions with
// a numeric suffix, skipping the record identified by excludeID.
func (e *ProjectEngine) uniqueSlug(title string, excludeID uuid.UUID) (string, error) {
	base := Slugify(title)
	candidate := base
	for n := 2; ; n++ {
		taken, err := e.projects.FindBySlug(candidate)
		if err != nil {
			return "", err
		}
		if taken == nil || taken.ID == excludeID {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, n)
	}
}

func fallback(value, existing string) string {
	if value != "" {
		return value
	}
	return existing
}
