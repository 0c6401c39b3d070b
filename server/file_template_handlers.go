package server

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
)

//go:embed templates/*
var templateFiles embed.FS

const contentTypeHTML = "text/html; charset=utf-8"

func TemplateFilesFS() fs.FS {
	subFS, err := fs.Sub(templateFiles, "templates")
	if err != nil {
		panic("Failed to create templates sub filesystem: " + err.Error())
	}
	return subFS
}

// Page templates and the layout each one is rendered inside
var pageLayouts = map[string]string{
	"login.html":     "auth_layout.html",
	"loading.html":   "auth_layout.html",
	"not_found.html": "auth_layout.html",
	"dashboard.html": "layout.html",
	"leads.html":     "layout.html",
	"lead.html":      "layout.html",
	"users.html":     "layout.html",
}

var templateFuncs = template.FuncMap{
	"truncate":   truncate,
	"formatDate": formatDate,
}

type pageSet struct {
	pages map[string]*template.Template
}

func parsePages() (*pageSet, error) {
	set := &pageSet{pages: make(map[string]*template.Template, len(pageLayouts))}
	for page, layout := range pageLayouts {
		tmpl, err := ParseTemplate(layout, page)
		if err != nil {
			return nil, err
		}
		set.pages[page] = tmpl
	}
	return set, nil
}

// ParseTemplate parses a layout and the page that fills its "content" block from the
// embedded filesystem. The returned template executes the layout.
func ParseTemplate(layout, page string) (*template.Template, error) {
	tmpl, err := template.New(layout).Funcs(templateFuncs).ParseFS(TemplateFilesFS(), layout, page)
	if err != nil {
		return nil, fmt.Errorf("parse %s with %s: %w", page, layout, err)
	}
	return tmpl, nil
}

// render executes a page into a buffer first so a template failure never leaves a
// half-written response
func (s *Server) render(w http.ResponseWriter, status int, page string, data pageData) {
	tmpl, ok := s.pages.pages[page]
	if !ok {
		log.Error().Str("page", page).Msg("Unknown page template")
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		log.Err(err).Str("page", page).Msg("Failed to render template")
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", contentTypeHTML)
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return strings.TrimSpace(string([]rune(s)[:n])) + "..."
}

// formatDate shows CRM timestamps as day/month/year hour:minute
func formatDate(raw string) string {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			if layout == "2006-01-02" {
				return t.Format("02/01/2006")
			}
			return t.Format("02/01/2006 15:04")
		}
	}
	return raw
}
