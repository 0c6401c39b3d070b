package server

import (
	"net/http"

	"github.com/rs/zerolog/log"
	apperrors "github.com/softnova/crm-console/internal/errors"
	"github.com/softnova/crm-console/internal/i18n"
	"github.com/softnova/crm-console/leads"
)

const recentLeadsOnDashboard = 5

// IndexHandler sends the root path to the dashboard
func (s *Server) IndexHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, RouteDashboard, http.StatusSeeOther)
	}
}

type dashboardData struct {
	Stats  leads.Stats
	Recent []leads.Lead
	Error  string
}

// DashboardHandler shows the lead counters and the most recent leads
func (s *Server) DashboardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := s.newPageData(r, "dashboard", i18n.LabelDashboard)
		board, err := s.loadedBoard(r, r.URL.Query().Get("refresh") == "1")

		content := dashboardData{}
		if err != nil {
			content.Error = apperrors.UserMessage(err, data.T(i18n.MsgLeadsLoadFailed))
		} else {
			all := board.Leads()
			content.Stats = leads.Summarize(all)
			content.Recent = leads.Recent(all, recentLeadsOnDashboard)
		}
		data.Data = content
		s.render(w, http.StatusOK, "dashboard.html", data)
	}
}

// loadedBoard returns the operator's board, fetching the first page of leads when it
// has not been loaded yet or when refresh is asked for
func (s *Server) loadedBoard(r *http.Request, refresh bool) (*leads.Board, error) {
	board := s.currentBoard()
	if board.Loaded() && !refresh {
		return board, nil
	}
	if err := s.workflow.Load(r.Context(), board, 1, s.pageSize); err != nil {
		log.Err(err).Msg("Failed to load leads")
		return board, err
	}
	return board, nil
}
