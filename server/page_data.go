package server

import (
	"net/http"
	"strings"

	"github.com/softnova/crm-console/internal/i18n"
	"github.com/softnova/crm-console/leads"
	"github.com/softnova/crm-console/users"
	"golang.org/x/text/message"
)

// pageData is handed to every template. Page specific values travel in Data.
type pageData struct {
	AppName     string
	Title       string
	ActivePage  string
	Lang        string
	User        *users.User
	Notice      string
	NoticeLevel string
	Data        any

	printer *message.Printer
}

func (s *Server) newPageData(r *http.Request, activePage, titleKey string) pageData {
	tag := s.languageFor(r)
	p := i18n.Printer(tag)
	base, _ := tag.Base()
	data := pageData{
		AppName:    s.appName,
		ActivePage: activePage,
		Lang:       base.String(),
		User:       userFromContext(r.Context()),
		printer:    p,
	}
	if titleKey != "" {
		data.Title = p.Sprintf(titleKey)
	}
	data.Notice, data.NoticeLevel = noticeFromQuery(r)
	return data
}

// T translates a catalog key
func (d pageData) T(key string, args ...any) string {
	return d.printer.Sprintf(key, args...)
}

func (d pageData) StatusLabel(st leads.Status) string {
	return st.Label(d.printer)
}

func (d pageData) RoleLabel(rol string) string {
	switch users.RoleType(rol) {
	case users.RoleAdmin:
		return d.printer.Sprintf(i18n.LabelRoleAdmin)
	case users.RoleUser:
		return d.printer.Sprintf(i18n.LabelRoleUser)
	}
	return rol
}

func (d pageData) Statuses() []leads.Status {
	return leads.Statuses()
}

func (d pageData) Roles() []string {
	return []string{string(users.RoleUser), string(users.RoleAdmin)}
}

func noticeFromQuery(r *http.Request) (string, string) {
	q := r.URL.Query()
	notice := strings.TrimSpace(q.Get("notice"))
	if notice == "" {
		notice = strings.TrimSpace(q.Get("error"))
		if notice != "" {
			return notice, "error"
		}
		return "", ""
	}
	switch level := q.Get("level"); level {
	case "success", "error", "info":
		return notice, level
	}
	return notice, "info"
}
