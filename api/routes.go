package api

import (
	"github.com/go-chi/chi/v5"
)

// setupRoutes mounts every endpoint under /api. Reads are public; project and
// team writes require a bearer token, matching the admin panel's usage.
func setupRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	r.Route("/api", func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		r.Route("/projects", func(r chi.Router) {
			r.Get("/", handlers.projectHandler.getAllProjects())
			r.Get("/{projectID}", handlers.projectHandler.getProject())
			r.Get("/slug/{slug}", handlers.projectHandler.getProjectBySlug())

			r.Group(func(r chi.Router) {
				r.Use(authMiddleware.authenticate)
				r.Post("/create", handlers.projectHandler.createProject())
				r.Put("/{projectID}", handlers.projectHandler.updateProject())
				r.Delete("/{projectID}", handlers.projectHandler.deleteProject())
			})
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", handlers.categoryHandler.getCategories())
			r.Get("/{categoryID}", handlers.categoryHandler.getCategory())
			r.Post("/", handlers.categoryHandler.createCategory())
			r.Put("/{categoryID}", handlers.categoryHandler.updateCategory())
			r.Delete("/{categoryID}", handlers.categoryHandler.deleteCategory())
		})

		r.Route("/services", func(r chi.Router) {
			r.Get("/", handlers.serviceHandler.getAllServices())
			r.Get("/{serviceID}", handlers.serviceHandler.getService())
			r.Post("/", handlers.serviceHandler.createService())
			r.Put("/{serviceID}", handlers.serviceHandler.updateService())
			r.Patch("/{serviceID}/active", handlers.serviceHandler.toggleServiceActive())
			r.Delete("/{serviceID}", handlers.serviceHandler.deleteService())
		})

		r.Route("/team", func(r chi.Router) {
			r.Get("/", handlers.teamHandler.getAllTeam())
			r.Get("/{teamID}", handlers.teamHandler.getTeamMember())

			r.Group(func(r chi.Router) {
				r.Use(authMiddleware.authenticate)
				r.Post("/", handlers.teamHandler.createTeamMember())
				r.Put("/{teamID}", handlers.teamHandler.updateTeamMember())
				r.Delete("/{teamID}", handlers.teamHandler.deleteTeamMember())
			})
		})

		r.Route("/admin", func(r chi.Router) {
			r.Post("/login", handlers.adminHandler.login())
			r.Post("/register", handlers.adminHandler.register())
		})

		r.Route("/contact", func(r chi.Router) {
			r.Post("/", handlers.contactHandler.sendContact())
			r.Post("/enquiry", handlers.contactHandler.sendEnquiry())
		})
	})
}
