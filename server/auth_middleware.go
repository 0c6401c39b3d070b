package server

import (
	"context"
	"net/http"

	"github.com/softnova/crm-console/gate"
	"github.com/softnova/crm-console/internal/i18n"
	"github.com/softnova/crm-console/users"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	// ContextKeyUser stores the logged in operator
	ContextKeyUser ContextKey = "user"
	// ContextKeyRequestID stores the id assigned by LoggingMiddleware
	ContextKeyRequestID ContextKey = "request_id"
)

func userFromContext(ctx context.Context) *users.User {
	u, _ := ctx.Value(ContextKeyUser).(*users.User)
	return u
}

// RequireSession guards the console pages. While the session is still being
// restored or a login is pending it shows the "checking session" placeholder and
// nothing else; without a session it redirects to the login page with 303, so the
// protected URL does not stay in the history.
func (s *Server) RequireSession() func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			snap := s.session.Snapshot()
			switch gate.Decide(snap) {
			case gate.ShowLoading:
				w.Header().Set("Cache-Control", "no-store")
				w.Header().Set("Refresh", "1")
				data := s.newPageData(r, "", i18n.MsgCheckingSession)
				s.render(w, http.StatusOK, "loading.html", data)
			case gate.RedirectToLogin:
				redirectSuccess(w, r, RouteLogin)
			default:
				w.Header().Set("Cache-Control", "no-store")
				ctx := context.WithValue(r.Context(), ContextKeyUser, snap.User)
				next(w, r.WithContext(ctx))
			}
		}
	}
}
