package server

import (
	"net/http"

	"github.com/softnova/crm-console/internal/i18n"
)

func (s *Server) initRoutes() {
	s.RegisterRouteHandler("GET "+RouteRoot, ChainMiddleware(s.IndexHandler(), s.HTMLMiddleWare()...))

	// LOGIN
	s.RegisterRouteHandler("GET "+RouteLogin, ChainMiddleware(s.LoginPageUIHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("POST "+RouteAuthLogin, ChainMiddleware(s.LoginSubmissionHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("GET "+RouteAuthLogout, ChainMiddleware(s.LogoutHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("POST "+RouteAuthLogout, ChainMiddleware(s.LogoutHandler(), s.HTMLMiddleWare()...))

	// Console pages (require a session)
	s.RegisterRouteHandler("GET "+RouteDashboard, ChainMiddleware(s.DashboardHandler(), s.HTMLMiddleWare(s.RequireSession())...))
	s.RegisterRouteHandler("GET "+RouteLeads, ChainMiddleware(s.LeadsListHandler(), s.HTMLMiddleWare(s.RequireSession())...))
	s.RegisterRouteHandler("GET "+RouteLeadDetail, ChainMiddleware(s.LeadDetailHandler(), s.HTMLMiddleWare(s.RequireSession())...))
	s.RegisterRouteHandler("POST "+RouteLeadStatus, ChainMiddleware(s.LeadStatusHandler(), s.HTMLMiddleWare(s.RequireSession())...))
	s.RegisterRouteHandler("GET "+RouteUsers, ChainMiddleware(s.UsersListHandler(), s.HTMLMiddleWare(s.RequireSession())...))
	s.RegisterRouteHandler("POST "+RouteUsers, ChainMiddleware(s.UserCreateHandler(), s.HTMLMiddleWare(s.RequireSession())...))
	s.RegisterRouteHandler("POST "+RouteUserUpdate, ChainMiddleware(s.UserUpdateHandler(), s.HTMLMiddleWare(s.RequireSession())...))
	s.RegisterRouteHandler("POST "+RouteUserDelete, ChainMiddleware(s.UserDeleteHandler(), s.HTMLMiddleWare(s.RequireSession())...))

	// API routes
	s.RegisterRouteHandler("GET "+RouteAPISession, ChainMiddleware(s.SessionStateHandler(), s.HTMLMiddleWare()...))

	s.RegisterRouteHandler("GET "+RouteStatic, ChainMiddleware(s.fileServer.ServeHTTP, s.StaticMiddleware()...))
	s.RegisterRouteHandler(RouteNotFoundFallback, ChainMiddleware(s.NotFoundHandler(), s.HTMLMiddleWare()...))
}

// NotFoundHandler renders the 404 page for every unknown path
func (s *Server) NotFoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := s.newPageData(r, "", i18n.MsgPageNotFound)
		s.render(w, http.StatusNotFound, "not_found.html", data)
	}
}
