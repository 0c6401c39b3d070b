// Package server is the operator's HTML console. It renders server-side pages over
// the process's single Session and the CRM API.
package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/softnova/crm-console/internal/config"
	"github.com/softnova/crm-console/internal/i18n"
	"github.com/softnova/crm-console/leads"
	"github.com/softnova/crm-console/session"
	"github.com/softnova/crm-console/users"
	"golang.org/x/text/language"
)

type Server struct {
	env        string // Environment (e.g., "DEV", "PROD")
	appName    string
	language   string
	pageSize   int
	mux        *http.ServeMux
	routes     []string
	fileServer http.Handler
	pages      *pageSet

	session  *session.Store
	workflow *leads.Workflow
	users    *users.Service

	board     *leads.Board
	boardLock sync.Mutex
}

func New(cfg config.Config, store *session.Store, workflow *leads.Workflow, userService *users.Service) (*Server, error) {
	if store == nil || workflow == nil || userService == nil {
		return nil, errors.New("[server.New] session store, lead workflow and user service are required")
	}
	pages, err := parsePages()
	if err != nil {
		return nil, fmt.Errorf("[server.New] failed to parse templates: %w", err)
	}

	s := &Server{
		env:        cfg.GetEnv(),
		appName:    cfg.GetAppName(),
		language:   cfg.GetLanguage(),
		pageSize:   cfg.GetLeadsPageSize(),
		mux:        http.NewServeMux(),
		fileServer: FileServerHandler(),
		pages:      pages,
		session:    store,
		workflow:   workflow,
		users:      userService,
		board:      leads.NewBoard(),
	}

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

// currentBoard returns the lead board shown to the logged in operator
func (s *Server) currentBoard() *leads.Board {
	s.boardLock.Lock()
	defer s.boardLock.Unlock()
	return s.board
}

// resetBoard drops the cached leads so the next operator starts from a fresh fetch
func (s *Server) resetBoard() {
	s.boardLock.Lock()
	defer s.boardLock.Unlock()
	s.board = leads.NewBoard()
}

// languageFor picks the configured language, falling back to the browser's
func (s *Server) languageFor(r *http.Request) language.Tag {
	return i18n.Match(s.language, r.Header.Get("Accept-Language"))
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	displayMethod := methodColor(method) + fmt.Sprintf(" %-7s", method) + colorReset
	log.Debug().Msgf("[%-19s] %s", displayMethod, path)
}
