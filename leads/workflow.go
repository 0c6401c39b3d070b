package leads

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"
	apperrors "github.com/softnova/crm-console/internal/errors"
)

// Outcome reports what a transition did. Changed is false for a no-op.
type Outcome struct {
	LeadID  int64
	From    Status
	To      Status
	Changed bool
}

// Workflow owns the one mutation the console performs on a lead: changing its status.
type Workflow struct {
	repo Repo
}

func NewWorkflow(repo Repo) (*Workflow, error) {
	if repo == nil {
		return nil, errors.New("[leads.NewWorkflow] repo is required")
	}
	return &Workflow{repo: repo}, nil
}

// Load fetches a page of leads and replaces the board with it. The board is left as
// it was when the fetch fails.
func (w *Workflow) Load(ctx context.Context, board *Board, page, limit int) error {
	list, err := w.repo.List(ctx, page, limit)
	if err != nil {
		return apperrors.Wrapf(err, "load leads page %d", page)
	}
	board.Replace(list)
	return nil
}

// Get fetches a single lead from the CRM
func (w *Workflow) Get(ctx context.Context, id int64) (Lead, error) {
	l, err := w.repo.Get(ctx, id)
	if err != nil {
		return Lead{}, apperrors.Wrapf(err, "get lead %d", id)
	}
	return l, nil
}

// Transition moves lead id on board to newStatus.
//
// An unknown status or a lead missing from the board fails before any call to the
// CRM. Asking for the status the lead already has succeeds without a call. While a
// change for the same lead is waiting on the CRM, further changes to it fail with
// ErrTransitionInFlight. A failed update leaves the board untouched and is not retried.
func (w *Workflow) Transition(ctx context.Context, board *Board, id int64, newStatus string) (Outcome, error) {
	status, err := ParseStatus(newStatus)
	if err != nil {
		return Outcome{}, err
	}

	current, _ := board.Get(id)
	unchanged, err := board.claim(id, status)
	if err != nil {
		return Outcome{}, err
	}
	outcome := Outcome{LeadID: id, From: current.Estado, To: status}
	if unchanged {
		return outcome, nil
	}

	err = w.repo.UpdateStatus(ctx, id, status)
	board.release(id, status, err == nil)
	if err != nil {
		log.Warn().Err(err).Int64("lead", id).Str("estado", string(status)).Msg("lead status update rejected")
		return Outcome{}, apperrors.Wrapf(err, "update lead %d status", id)
	}

	outcome.Changed = true
	log.Info().Int64("lead", id).Str("from", string(outcome.From)).Str("to", string(status)).Msg("lead status updated")
	return outcome, nil
}
