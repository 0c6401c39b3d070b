package server

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
	apperrors "github.com/softnova/crm-console/internal/errors"
	"github.com/softnova/crm-console/internal/i18n"
	"github.com/softnova/crm-console/internal/utils"
	"github.com/softnova/crm-console/users"
)

type usersPageData struct {
	Users []users.User
	Error string
}

// UsersListHandler renders the account list with the create and edit forms
func (s *Server) UsersListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := s.newPageData(r, "users", i18n.LabelUsersTitle)
		content := usersPageData{}

		list, err := s.users.List(r.Context())
		if err != nil {
			log.Err(err).Msg("Failed to load users")
			content.Error = apperrors.UserMessage(err, data.T(i18n.MsgUsersLoadFailed))
		}
		content.Users = list

		data.Data = content
		s.render(w, http.StatusOK, "users.html", data)
	}
}

// UserCreateHandler handles the new-user form (POST /users)
func (s *Server) UserCreateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}
		p := i18n.Printer(s.languageFor(r))
		req := users.CreateRequest{
			Nombre:   strings.TrimSpace(r.FormValue("nombre")),
			Email:    strings.TrimSpace(r.FormValue("email")),
			Password: r.FormValue("password"),
			Rol:      r.FormValue("rol"),
		}
		if _, err := s.users.Create(r.Context(), req); err != nil {
			log.Err(err).Str("email", req.Email).Msg("Failed to create user")
			redirectWithError(w, r, RouteUsers, nil, apperrors.UserMessage(err, p.Sprintf(i18n.MsgRequestFailed)))
			return
		}
		redirectWithNotice(w, r, RouteUsers, nil, p.Sprintf(i18n.MsgUserCreated), "success")
	}
}

// UserUpdateHandler handles the edit form (POST /users/{id}). A blank password
// keeps the current one.
func (s *Server) UserUpdateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			s.NotFoundHandler()(w, r)
			return
		}
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}
		p := i18n.Printer(s.languageFor(r))
		req := users.UpdateRequest{
			Nombre:   utils.PtrIf(r.Form.Has("nombre"), strings.TrimSpace(r.FormValue("nombre"))),
			Email:    utils.PtrIf(r.Form.Has("email"), strings.TrimSpace(r.FormValue("email"))),
			Password: utils.PtrIf(r.FormValue("password") != "", r.FormValue("password")),
			Rol:      utils.PtrIf(r.Form.Has("rol"), r.FormValue("rol")),
		}
		if _, err := s.users.Update(r.Context(), id, req); err != nil {
			log.Err(err).Int64("user", id).Msg("Failed to update user")
			fallback := p.Sprintf(i18n.MsgRequestFailed)
			if apperrors.Is(err, apperrors.ErrNotFound) {
				fallback = p.Sprintf(i18n.MsgUserNotFound)
			}
			redirectWithError(w, r, RouteUsers, nil, apperrors.UserMessage(err, fallback))
			return
		}
		redirectWithNotice(w, r, RouteUsers, nil, p.Sprintf(i18n.MsgUserUpdated), "success")
	}
}

// UserDeleteHandler removes an account (POST /users/{id}/delete). The page asks for
// confirmation before submitting.
func (s *Server) UserDeleteHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			s.NotFoundHandler()(w, r)
			return
		}
		p := i18n.Printer(s.languageFor(r))
		if err := s.users.Delete(r.Context(), id); err != nil {
			log.Err(err).Int64("user", id).Msg("Failed to delete user")
			redirectWithError(w, r, RouteUsers, nil, p.Sprintf(i18n.MsgUserDeleteFailed))
			return
		}
		redirectWithNotice(w, r, RouteUsers, nil, p.Sprintf(i18n.MsgUserDeleted), "success")
	}
}
