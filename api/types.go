package api

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	projectHandler  projectHandler
	categoryHandler categoryHandler
	serviceHandler  serviceHandler
	teamHandler     teamHandler
	adminHandler    adminHandler
	contactHandler  contactHandler
}
