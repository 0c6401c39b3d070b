package server

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	apperrors "github.com/softnova/crm-console/internal/errors"
	"github.com/softnova/crm-console/internal/i18n"
	"github.com/softnova/crm-console/leads"
)

type leadRow struct {
	leads.Lead
	InFlight bool
}

type leadsPageData struct {
	Query  string
	Rows   []leadRow
	Counts leads.Stats
	Error  string
}

// LeadsListHandler renders the lead board, filtered by ?q= and reloaded with ?refresh=1.
// The counters cover the filtered rows.
func (s *Server) LeadsListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := s.newPageData(r, "leads", i18n.LabelLeads)
		query := strings.TrimSpace(r.URL.Query().Get("q"))
		content := leadsPageData{Query: query}

		board, err := s.loadedBoard(r, r.URL.Query().Get("refresh") == "1")
		if err != nil {
			content.Error = apperrors.UserMessage(err, data.T(i18n.MsgLeadsLoadFailed))
		}
		filtered := board.Filter(query)
		for _, l := range filtered {
			content.Rows = append(content.Rows, leadRow{Lead: l, InFlight: board.InFlight(l.ID)})
		}
		content.Counts = leads.Summarize(filtered)

		data.Data = content
		s.render(w, http.StatusOK, "leads.html", data)
	}
}

// LeadDetailHandler shows one lead as the CRM currently has it
func (s *Server) LeadDetailHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			s.NotFoundHandler()(w, r)
			return
		}
		lead, err := s.workflow.Get(r.Context(), id)
		if err != nil {
			p := i18n.Printer(s.languageFor(r))
			fallback := p.Sprintf(i18n.MsgRequestFailed)
			if apperrors.Is(err, apperrors.ErrNotFound) {
				fallback = p.Sprintf(i18n.MsgLeadNotFound)
			}
			redirectWithError(w, r, RouteLeads, nil, apperrors.UserMessage(err, fallback))
			return
		}

		data := s.newPageData(r, "leads", i18n.LabelDetails)
		data.Data = lead
		s.render(w, http.StatusOK, "lead.html", data)
	}
}

// LeadStatusHandler applies a status change from the board (POST /leads/{id}/estado).
// A change to the status the lead already has redirects back without a notice.
func (s *Server) LeadStatusHandler() http.HandlerFunc {
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
		back := url.Values{"q": {strings.TrimSpace(r.FormValue("q"))}}
		p := i18n.Printer(s.languageFor(r))

		board, err := s.loadedBoard(r, false)
		if err != nil {
			redirectWithError(w, r, RouteLeads, back, apperrors.UserMessage(err, p.Sprintf(i18n.MsgLeadsLoadFailed)))
			return
		}

		outcome, err := s.workflow.Transition(r.Context(), board, id, r.FormValue("estado"))
		switch {
		case err == nil && !outcome.Changed:
			redirectWithNotice(w, r, RouteLeads, back, "", "")
		case err == nil:
			label := strings.ToLower(outcome.To.Label(p))
			redirectWithNotice(w, r, RouteLeads, back, p.Sprintf(i18n.MsgStatusUpdated, label), "success")
		case apperrors.Is(err, apperrors.ErrTransitionInFlight):
			redirectWithNotice(w, r, RouteLeads, back, p.Sprintf(i18n.MsgStatusBusy), "info")
		case apperrors.Is(err, apperrors.ErrNotFound):
			redirectWithError(w, r, RouteLeads, back, p.Sprintf(i18n.MsgLeadNotFound))
		default:
			log.Err(err).Int64("lead", id).Msg("Lead status change failed")
			redirectWithError(w, r, RouteLeads, back, p.Sprintf(i18n.MsgStatusFailed))
		}
	}
}

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
