package reconcile

import (
	"strings"

	"github.com/arcvista/backend/errs"
	"github.com/arcvista/backend/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// CategoryStore is the slice of the category repository the guard needs.
// Find methods return (nil, nil) when no record matches.
type CategoryStore interface {
	FindAll(categoryType string) ([]*models.Category, error)
	FindByID(id uuid.UUID) (*models.Category, error)
	FindByNameAndType(name, categoryType string, excludeID uuid.UUID) (*models.Category, error)
	Add(category *models.Category) error
	Update(category *models.Category) error
	Delete(id uuid.UUID) error
}

// ProjectRefCounter reports how many projects reference a category.
type ProjectRefCounter interface {
	CountByCategory(categoryID uuid.UUID) (int64, error)
}

// CategoryGuard validates category mutations: the type belongs to a closed
// set, (name, type) is unique case-insensitively, and a category still
// referenced by projects cannot be deleted.
type CategoryGuard struct {
	logger     zerolog.Logger
	categories CategoryStore
	projects   ProjectRefCounter
}

func NewCategoryGuard(categories CategoryStore, projects ProjectRefCounter) *CategoryGuard {
	return &CategoryGuard{
		logger:     log.With().Str("component", "categoryGuard").Logger(),
		categories: categories,
		projects:   projects,
	}
}

// List returns categories, optionally filtered by type. An unrecognized type
// filter is rejected before any store access.
func (g *CategoryGuard) List(categoryType string) ([]*models.Category, error) {
	categoryType = strings.ToLower(categoryType)
	if categoryType != "" && !models.ValidCategoryType(categoryType) {
		return nil, errs.NewInvalidFieldError("type", "unrecognized category type")
	}

	categories, err := g.categories.FindAll(categoryType)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "categories", err)
	}
	return categories, nil
}

// Get returns a category by id.
func (g *CategoryGuard) Get(id uuid.UUID) (*models.Category, error) {
	category, err := g.categories.FindByID(id)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "category", err)
	}
	if category == nil {
		return nil, errs.NewNotFoundError("category not found")
	}
	return category, nil
}

// Create validates and writes a new category. A conflict on the
// case-insensitive (name, type) pair is reported before any store write.
func (g *CategoryGuard) Create(name, categoryType string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	categoryType = strings.ToLower(categoryType)

	if err := g.validate(name, categoryType, uuid.Nil); err != nil {
		return nil, err
	}

	category := &models.Category{
		Name: name,
		Type: categoryType,
		Slug: Slugify(name + "-" + categoryType),
	}

	if err := g.categories.Add(category); err != nil {
		return nil, errs.NewDatabaseError("create", "category", err)
	}
	return category, nil
}

// Update renames a category, re-validating uniqueness while excluding the
// record itself so a self-rename to the current name succeeds.
func (g *CategoryGuard) Update(id uuid.UUID, name, categoryType string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	categoryType = strings.ToLower(categoryType)

	// Resolve the record before validating so a missing category is a 404
	// even when the new name would collide with another record.
	category, err := g.categories.FindByID(id)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "category", err)
	}
	if category == nil {
		return nil, errs.NewNotFoundError("category not found")
	}

	if err := g.validate(name, categoryType, id); err != nil {
		return nil, err
	}

	category.Name = name
	category.Type = categoryType

	if err := g.categories.Update(category); err != nil {
		return nil, errs.NewDatabaseError("update", "category", err)
	}
	return category, nil
}

// Delete removes a category unless projects still reference it.
func (g *CategoryGuard) Delete(id uuid.UUID) error {
	category, err := g.categories.FindByID(id)
	if err != nil {
		return errs.NewDatabaseError("find", "category", err)
	}
	if category == nil {
		return errs.NewNotFoundError("category not found")
	}

	refs, err := g.projects.CountByCategory(id)
	if err != nil {
		return errs.NewDatabaseError("count projects for", "category", err)
	}
	if refs > 0 {
		return errs.NewConflictError("category is still referenced by projects")
	}

	if err := g.categories.Delete(id); err != nil {
		return errs.NewDatabaseError("delete", "category", err)
	}
	return nil
}

func (g *CategoryGuard) validate(name, categoryType string, excludeID uuid.UUID) error {
	var missing []string
	if name == "" {
		missing = append(missing, "name")
	}
	if categoryType == "" {
		missing = append(missing, "type")
	}
	if len(missing) > 0 {
		return errs.NewBadRequestError("Missing required fields: " + strings.Join(missing, ", "))
	}

	if !models.ValidCategoryType(categoryType) {
		return errs.NewInvalidFieldError("type", "unrecognized category type")
	}

	existing, err := g.categories.FindByNameAndType(name, categoryType, excludeID)
	if err != nil {
		return errs.NewDatabaseError("find", "category", err)
	}
	if existing != nil {
		return errs.NewConflictError("category with this name and type already exists")
	}
	return nil
}
