package api

import (
	"github.com/arcvista/backend/database"
	"github.com/arcvista/backend/services"
	"github.com/arcvista/backend/storage"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(database database.Database, blobs storage.BlobStore, mailer *services.Mailer, jwtSecret string) *routeHandlers {
	return &routeHandlers{
		projectHandler:  newProjectHandler(database.ProjectRepo(), database.CategoryRepo(), blobs),
		categoryHandler: newCategoryHandler(database.CategoryRepo(), database.ProjectRepo()),
		serviceHandler:  newServiceHandler(database.ServiceRepo(), blobs),
		teamHandler:     newTeamHandler(database.TeamRepo(), blobs),
		adminHandler:    newAdminHandler(database.AdminRepo(), jwtSecret),
		contactHandler:  newContactHandler(mailer),
	}
}
