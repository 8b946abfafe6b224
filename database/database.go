package database

import (
	"context"
	"fmt"

	"github.com/arcvista/backend/models"
	"gorm.io/gorm"
)

// Database bundles the repositories around a shared GORM instance and owns
// the connection lifecycle: built once at process start and injected, never
// read as ambient global state.
type Database struct {
	db           *gorm.DB
	projectRepo  *ProjectRepo
	categoryRepo *CategoryRepo
	serviceRepo  *ServiceRepo
	teamRepo     *TeamRepo
	adminRepo    *AdminRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		db:           db,
		projectRepo:  NewProjectRepo(db),
		categoryRepo: NewCategoryRepo(db),
		serviceRepo:  NewServiceRepo(db),
		teamRepo:     NewTeamRepo(db),
		adminRepo:    NewAdminRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

func (d Database) CategoryRepo() *CategoryRepo {
	return d.categoryRepo
}

func (d Database) ServiceRepo() *ServiceRepo {
	return d.serviceRepo
}

func (d Database) TeamRepo() *TeamRepo {
	return d.teamRepo
}

func (d Database) AdminRepo() *AdminRepo {
	return d.adminRepo
}

// Ready pings the underlying connection pool.
func (d Database) Ready(ctx context.Context) error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return fmt.Errorf("getting sql.DB: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the underlying connection pool.
func (d Database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return fmt.Errorf("getting sql.DB: %w", err)
	}
	return sqlDB.Close()
}

// Migrate creates or updates the schema for every entity, plus the
// case-insensitive uniqueness index the category guard relies on as the
// final arbiter when two concurrent creates race past the app-level check.
func (d Database) Migrate() error {
	if err := d.db.AutoMigrate(
		&models.Category{},
		&models.Project{},
		&models.Service{},
		&models.Team{},
		&models.Admin{},
	); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	if err := d.db.Exec(
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_categories_name_type ON categories (LOWER(name), type)",
	).Error; err != nil {
		return fmt.Errorf("creating category uniqueness index: %w", err)
	}

	return nil
}
