package reconcile

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/arcvista/backend/errs"
	"github.com/arcvista/backend/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validProjectInput(categoryID uuid.UUID) ProjectInput {
	return ProjectInput{
		Title:           "Lake View Villa",
		Category:        categoryID.String(),
		Location:        "Lake Como",
		Year:            "2023",
		Area:            "420.5",
		Client:          "Private",
		Description:     "A villa by the lake",
		Overview:        "Overview text",
		LongDescription: "Long description text",
		Approach:        "Approach text",
		Features:        `["pool","garden"]`,
	}
}

func seedProject(store *fakeProjectStore, title, slug, image string, gallery []string) *models.Project {
	year := 2020
	return store.put(&models.Project{
		Title:           title,
		Slug:            slug,
		CategoryID:      uuid.New(),
		Location:        "Milan",
		Year:            &year,
		Area:            100,
		Description:     "desc",
		Overview:        "overview",
		LongDescription: "long",
		Image:           image,
		Gallery:         gallery,
		UpdatedAt:       time.Now().Add(-time.Hour),
	})
}

func TestProjectCreate(t *testing.T) {
	categoryID := uuid.New()
	store := newFakeProjectStore()
	blobs := newFakeBlobStore()
	engine := NewProjectEngine(store, newFakeCategoryResolver(categoryID), blobs)

	created, err := engine.Create(context.Background(), validProjectInput(categoryID), Uploads{
		Main:    "main.jpg",
		Gallery: []string{"g1.jpg", "g2.jpg"},
	})
	require.NoError(t, err)

	assert.Equal(t, "lake-view-villa", created.Slug)
	assert.Equal(t, categoryID, created.CategoryID)
	assert.Equal(t, "main.jpg", created.Image)
	assert.Equal(t, []string{"g1.jpg", "g2.jpg"}, created.Gallery)
	assert.Equal(t, []string{"pool", "garden"}, created.Features)
	require.NotNil(t, created.Year)
	assert.Equal(t, 2023, *created.Year)
	assert.Empty(t, blobs.deleted)
}

func TestProjectCreateMissingFieldsDiscardsUploads(t *testing.T) {
	categoryID := uuid.New()
	store := newFakeProjectStore()
	blobs := newFakeBlobStore()
	engine := NewProjectEngine(store, newFakeCategoryResolver(categoryID), blobs)

	input := validProjectInput(categoryID)
	input.Description = ""
	input.Overview = ""

	_, err := engine.Create(context.Background(), input, Uploads{
		Main:    "main.jpg",
		Gallery: []string{"g1.jpg"},
	})
	require.Error(t, err)

	var apiErr *errs.ApiErr
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 400, apiErr.StatusCode)
	assert.Contains(t, apiErr.Error(), "description")
	assert.Contains(t, apiErr.Error(), "overview")

	assert.ElementsMatch(t, []string{"main.jpg", "g1.jpg"}, blobs.deleted)
	assert.Empty(t, store.records)
}

func TestProjectCreateRequiresMainImage(t *testing.T) {
	categoryID := uuid.New()
	engine := NewProjectEngine(newFakeProjectStore(), newFakeCategoryResolver(categoryID), newFakeBlobStore())

	_, err := engine.Create(context.Background(), validProjectInput(categoryID), Uploads{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "image")
}

func TestProjectCreateRollsBackUploadsOnStoreFailure(t *testing.T) {
	categoryID := uuid.New()
	store := newFakeProjectStore()
	store.addErr = errors.New("connection refused")
	blobs := newFakeBlobStore()
	engine := NewProjectEngine(store, newFakeCategoryResolver(categoryID), blobs)

	_, err := engine.Create(context.Background(), validProjectInput(categoryID), Uploads{
		Main:    "main.jpg",
		Gallery: []string{"g1.jpg", "g2.jpg"},
	})
	require.Error(t, err)
	assert.ElementsMatch(t, []string{"main.jpg", "g1.jpg", "g2.jpg"}, blobs.deleted)
}

func TestProjectCreateSlugCollision(t *testing.T) {
	categoryID := uuid.New()
	store := newFakeProjectStore()
	seedProject(store, "Lake View Villa", "lake-view-villa", "old.jpg", nil)
	engine := NewProjectEngine(store, newFakeCategoryResolver(categoryID), newFakeBlobStore())

	created, err := engine.Create(context.Background(), validProjectInput(categoryID), Uploads{Main: "main.jpg"})
	require.NoError(t, err)
	assert.Equal(t, "lake-view-villa-2", created.Slug)
}

func TestProjectUpdateGalleryMerge(t *testing.T) {
	store := newFakeProjectStore()
	blobs := newFakeBlobStore()
	existing := seedProject(store, "Villa", "villa", "main.jpg", []string{"a.jpg", "b.jpg", "c.jpg"})
	engine := NewProjectEngine(store, newFakeCategoryResolver(), blobs)

	updated, err := engine.Update(context.Background(), existing.ID, ProjectInput{},
		Uploads{Gallery: []string{"d.jpg"}}, `["b.jpg"]`)
	require.NoError(t, err)

	assert.Equal(t, []string{"a.jpg", "c.jpg", "d.jpg"}, updated.Gallery)
	assert.Contains(t, blobs.deleted, "b.jpg")
	assert.NotContains(t, blobs.deleted, "a.jpg")
	assert.NotContains(t, blobs.deleted, "d.jpg")
}

func TestProjectUpdateRejectsMalformedDeletedGallery(t *testing.T) {
	store := newFakeProjectStore()
	blobs := newFakeBlobStore()
	existing := seedProject(store, "Villa", "villa", "main.jpg", []string{"a.jpg"})
	engine := NewProjectEngine(store, newFakeCategoryResolver(), blobs)

	_, err := engine.Update(context.Background(), existing.ID, ProjectInput{},
		Uploads{Gallery: []string{"d.jpg"}}, "not json")
	require.Error(t, err)

	var apiErr *errs.ApiErr
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 400, apiErr.StatusCode)

	// The new upload is discarded; the stored gallery is untouched.
	assert.Equal(t, []string{"d.jpg"}, blobs.deleted)
	kept, _ := store.FindByID(existing.ID)
	assert.Equal(t, []string{"a.jpg"}, kept.Gallery)
}

func TestProjectUpdateReplacesMainImageAfterWrite(t *testing.T) {
	store := newFakeProjectStore()
	blobs := newFakeBlobStore()
	existing := seedProject(store, "Villa", "villa", "old-main.jpg", nil)
	engine := NewProjectEngine(store, newFakeCategoryResolver(), blobs)

	updated, err := engine.Update(context.Background(), existing.ID, ProjectInput{},
		Uploads{Main: "new-main.jpg"}, "")
	require.NoError(t, err)

	assert.Equal(t, "new-main.jpg", updated.Image)
	assert.Equal(t, []string{"old-main.jpg"}, blobs.deleted)
}

func TestProjectUpdateKeepsOldImageOnWriteFailure(t *testing.T) {
	store := newFakeProjectStore()
	blobs := newFakeBlobStore()
	existing := seedProject(store, "Villa", "villa", "old-main.jpg", nil)
	store.updateErr = errors.New("connection refused")
	engine := NewProjectEngine(store, newFakeCategoryResolver(), blobs)

	_, err := engine.Update(context.Background(), existing.ID, ProjectInput{},
		Uploads{Main: "new-main.jpg"}, "")
	require.Error(t, err)

	// Only the freshly uploaded blob is cleaned up; the record keeps its image.
	assert.Equal(t, []string{"new-main.jpg"}, blobs.deleted)
	kept, _ := store.FindByID(existing.ID)
	assert.Equal(t, "old-main.jpg", kept.Image)
}

func TestProjectUpdatePartialFields(t *testing.T) {
	store := newFakeProjectStore()
	existing := seedProject(store, "Villa", "villa", "main.jpg", nil)
	engine := NewProjectEngine(store, newFakeCategoryResolver(), newFakeBlobStore())

	updated, err := engine.Update(context.Background(), existing.ID,
		ProjectInput{Location: "Turin"}, Uploads{}, "")
	require.NoError(t, err)

	assert.Equal(t, "Turin", updated.Location)
	assert.Equal(t, existing.Title, updated.Title)
	assert.Equal(t, existing.Slug, updated.Slug)
	assert.Equal(t, existing.Description, updated.Description)
}

func TestProjectUpdateRegeneratesSlugOnTitleChange(t *testing.T) {
	store := newFakeProjectStore()
	existing := seedProject(store, "Villa", "villa", "main.jpg", nil)
	engine := NewProjectEngine(store, newFakeCategoryResolver(), newFakeBlobStore())

	updated, err := engine.Update(context.Background(), existing.ID,
		ProjectInput{Title: "Harbor House"}, Uploads{}, "")
	require.NoError(t, err)
	assert.Equal(t, "harbor-house", updated.Slug)
}

func TestProjectUpdateNotFoundDiscardsUploads(t *testing.T) {
	store := newFakeProjectStore()
	blobs := newFakeBlobStore()
	engine := NewProjectEngine(store, newFakeCategoryResolver(), blobs)

	_, err := engine.Update(context.Background(), uuid.New(), ProjectInput{},
		Uploads{Main: "main.jpg", Gallery: []string{"g1.jpg"}}, "")
	require.Error(t, err)

	var apiErr *errs.ApiErr
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 404, apiErr.StatusCode)
	assert.ElementsMatch(t, []string{"main.jpg", "g1.jpg"}, blobs.deleted)
}

func TestProjectDeleteRemovesRecordThenBlobs(t *testing.T) {
	store := newFakeProjectStore()
	blobs := newFakeBlobStore()
	existing := seedProject(store, "Villa", "villa", "main.jpg", []string{"g1.jpg", "g2.jpg"})
	engine := NewProjectEngine(store, newFakeCategoryResolver(), blobs)

	require.NoError(t, engine.Delete(context.Background(), existing.ID))

	assert.Empty(t, store.records)
	assert.Equal(t, []string{"main.jpg", "g1.jpg", "g2.jpg"}, blobs.deleted)
}

func TestProjectDeleteSurvivesBlobFailure(t *testing.T) {
	store := newFakeProjectStore()
	blobs := newFakeBlobStore()
	blobs.deleteErr["g1.jpg"] = errors.New("permission denied")
	existing := seedProject(store, "Villa", "villa", "main.jpg", []string{"g1.jpg", "g2.jpg"})
	engine := NewProjectEngine(store, newFakeCategoryResolver(), blobs)

	// A blob cleanup failure leaks the file but never resurrects the record.
	require.NoError(t, engine.Delete(context.Background(), existing.ID))
	assert.Empty(t, store.records)
	assert.Equal(t, []string{"main.jpg", "g2.jpg"}, blobs.deleted)
}

func TestProjectDeleteNotFound(t *testing.T) {
	engine := NewProjectEngine(newFakeProjectStore(), newFakeCategoryResolver(), newFakeBlobStore())

	err := engine.Delete(context.Background(), uuid.New())
	var apiErr *errs.ApiErr
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 404, apiErr.StatusCode)
}

func TestProjectCreateRejectsUnknownCategory(t *testing.T) {
	store := newFakeProjectStore()
	blobs := newFakeBlobStore()
	engine := NewProjectEngine(store, newFakeCategoryResolver(), blobs)

	input := validProjectInput(uuid.New())
	_, err := engine.Create(context.Background(), input, Uploads{Main: "main.jpg"})
	require.Error(t, err)
	assert.True(t, errs.IsInvalidFieldError(err))
	assert.Equal(t, []string{"main.jpg"}, blobs.deleted)
}

func TestProjectCreateRejectsNonNumericYear(t *testing.T) {
	categoryID := uuid.New()
	blobs := newFakeBlobStore()
	engine := NewProjectEngine(newFakeProjectStore(), newFakeCategoryResolver(categoryID), blobs)

	input := validProjectInput(categoryID)
	input.Year = "twenty-three"
	_, err := engine.Create(context.Background(), input, Uploads{Main: "main.jpg"})
	require.Error(t, err)
	assert.True(t, errs.IsInvalidFieldError(err))
	assert.Equal(t, []string{"main.jpg"}, blobs.deleted)
}
