package fakeleadrepo

import (
	"context"
	"fmt"
	"sync"

	apperrors "github.com/softnova/crm-console/internal/errors"
	"github.com/softnova/crm-console/leads"
)

var _ leads.Repo = (*FakeLeadRepo)(nil)

// FakeLeadRepo is an in-memory stand-in for the /leads resource. Leads keep the order
// they were seeded in.
type FakeLeadRepo struct {
	leads []leads.Lead
	lock  sync.Mutex

	// Err, when set, is returned by every call
	Err error
	// UpdateCalls counts the status updates that reached the repo
	UpdateCalls int
	// BeforeUpdate, when set, runs inside UpdateStatus before the change is applied
	BeforeUpdate func(id int64, status leads.Status)
}

func NewFakeLeadRepo(seed ...leads.Lead) *FakeLeadRepo {
	lr := &FakeLeadRepo{}
	lr.leads = append(lr.leads, seed...)
	return lr
}

func (lr *FakeLeadRepo) List(_ context.Context, page, limit int) ([]leads.Lead, error) {
	lr.lock.Lock()
	defer lr.lock.Unlock()
	if lr.Err != nil {
		return nil, lr.Err
	}
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = len(lr.leads)
	}
	start := (page - 1) * limit
	if start >= len(lr.leads) {
		return []leads.Lead{}, nil
	}
	end := min(start+limit, len(lr.leads))
	out := make([]leads.Lead, end-start)
	copy(out, lr.leads[start:end])
	return out, nil
}

func (lr *FakeLeadRepo) Get(_ context.Context, id int64) (leads.Lead, error) {
	lr.lock.Lock()
	defer lr.lock.Unlock()
	if lr.Err != nil {
		return leads.Lead{}, lr.Err
	}
	for _, l := range lr.leads {
		if l.ID == id {
			return l, nil
		}
	}
	return leads.Lead{}, fmt.Errorf("lead %d: %w", id, apperrors.ErrNotFound)
}

func (lr *FakeLeadRepo) UpdateStatus(_ context.Context, id int64, status leads.Status) error {
	lr.lock.Lock()
	lr.UpdateCalls++
	hook, err := lr.BeforeUpdate, lr.Err
	lr.lock.Unlock()

	if hook != nil {
		hook(id, status)
	}
	if err != nil {
		return err
	}

	lr.lock.Lock()
	defer lr.lock.Unlock()
	for i := range lr.leads {
		if lr.leads[i].ID == id {
			lr.leads[i].Estado = status
			return nil
		}
	}
	return fmt.Errorf("lead %d: %w", id, apperrors.ErrNotFound)
}

// Calls returns the number of status updates made so far
func (lr *FakeLeadRepo) Calls() int {
	lr.lock.Lock()
	defer lr.lock.Unlock()
	return lr.UpdateCalls
}
