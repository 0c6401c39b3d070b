package server

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog/log"
	apperrors "github.com/softnova/crm-console/internal/errors"
	"github.com/softnova/crm-console/internal/i18n"
	"github.com/softnova/crm-console/session"
)

// LoginPageData contains data for rendering the login page
type LoginPageData struct {
	Email       string            // Preserve email on error
	FieldErrors map[string]string // Per-field messages from client-side validation
}

// LoginPageUIHandler displays the login page (GET /login). An operator who already
// has a session goes straight to the dashboard.
func (s *Server) LoginPageUIHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.session.IsAuthenticated() {
			http.Redirect(w, r, RouteDashboard, http.StatusSeeOther)
			return
		}
		data := s.newPageData(r, "", i18n.LabelLogin)
		data.Data = LoginPageData{Email: r.URL.Query().Get("email")}
		s.render(w, http.StatusOK, "login.html", data)
	}
}

// LoginSubmissionHandler processes the login form submission (POST /auth/login)
func (s *Server) LoginSubmissionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}
		creds := session.Credentials{
			Email:    strings.TrimSpace(r.FormValue("email")),
			Password: r.FormValue("password"),
		}

		_, err := s.session.Login(r.Context(), creds)
		if err == nil {
			s.resetBoard()
			redirectSuccess(w, r, RouteDashboard)
			return
		}

		var vErr *apperrors.ValidationError
		if apperrors.As(err, &vErr) {
			data := s.newPageData(r, "", i18n.LabelLogin)
			data.Data = LoginPageData{Email: creds.Email, FieldErrors: vErr.Fields}
			s.render(w, http.StatusUnprocessableEntity, "login.html", data)
			return
		}

		p := i18n.Printer(s.languageFor(r))
		fallback := p.Sprintf(i18n.MsgInvalidCredentials)
		if !apperrors.Is(err, apperrors.ErrAuthentication) {
			log.Err(err).Str("email", creds.Email).Msg("Login failed")
			fallback = p.Sprintf(i18n.MsgLoginFailed)
		}
		redirectWithError(w, r, RouteLogin, url.Values{"email": {creds.Email}}, apperrors.UserMessage(err, fallback))
	}
}

// LogoutHandler empties the session and returns to the login page. It never calls the CRM.
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.session.Logout(r.Context()); err != nil {
			log.Err(err).Msg("Logout: failed to clear persisted session")
		}
		s.resetBoard()
		p := i18n.Printer(s.languageFor(r))
		redirectWithNotice(w, r, RouteLogin, nil, p.Sprintf(i18n.MsgLoggedOut), "info")
	}
}

type sessionStateResponse struct {
	State         string `json:"state"`
	Authenticated bool   `json:"authenticated"`
	Loading       bool   `json:"loading"`
	User          any    `json:"user"`
}

// SessionStateHandler reports the session state as JSON (GET /api/session). The
// loading placeholder polls it; the token itself is never exposed.
func (s *Server) SessionStateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap := s.session.Snapshot()
		resp := sessionStateResponse{
			State:         snap.State().String(),
			Authenticated: snap.IsAuthenticated(),
			Loading:       snap.Loading || !snap.Initialized,
		}
		if snap.User != nil {
			resp.User = snap.User
		}
		writeJSON(w, http.StatusOK, resp)
	}
}
