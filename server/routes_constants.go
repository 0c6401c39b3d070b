package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	// Auth Routes - Login & Logout
	RouteLogin      = "/login"
	RouteAuthLogin  = "/auth/login"
	RouteAuthLogout = "/auth/logout"

	// Console pages
	RouteRoot             = "/{$}"
	RouteDashboard        = "/dashboard"
	RouteLeads            = "/leads"
	RouteLeadDetail       = "/leads/{id}"
	RouteLeadStatus       = "/leads/{id}/estado"
	RouteUsers            = "/users"
	RouteUserUpdate       = "/users/{id}"
	RouteUserDelete       = "/users/{id}/delete"
	RouteAPISession       = "/api/session"
	RouteStatic           = "/static/"
	RouteNotFoundFallback = "/"
)
