package leads

import (
	"fmt"
	"strings"
	"sync"

	apperrors "github.com/softnova/crm-console/internal/errors"
)

// Board is the locally held copy of the leads a page displays. The CRM keeps the
// authoritative copy; the board is replaced on every load and otherwise only changes
// through Workflow.Transition.
type Board struct {
	leads    []Lead
	inFlight map[int64]struct{}
	loaded   bool
	lock     sync.RWMutex
}

func NewBoard() *Board {
	return &Board{inFlight: make(map[int64]struct{})}
}

// Replace swaps the board contents. Rows with a transition in flight stay marked.
func (b *Board) Replace(list []Lead) {
	copied := make([]Lead, len(list))
	copy(copied, list)

	b.lock.Lock()
	defer b.lock.Unlock()
	b.leads = copied
	b.loaded = true
}

func (b *Board) Loaded() bool {
	b.lock.RLock()
	defer b.lock.RUnlock()
	return b.loaded
}

// Leads returns a copy of the board in display order
func (b *Board) Leads() []Lead {
	b.lock.RLock()
	defer b.lock.RUnlock()
	out := make([]Lead, len(b.leads))
	copy(out, b.leads)
	return out
}

func (b *Board) Get(id int64) (Lead, bool) {
	b.lock.RLock()
	defer b.lock.RUnlock()
	if i := b.indexOf(id); i >= 0 {
		return b.leads[i], true
	}
	return Lead{}, false
}

// InFlight reports whether a status change for id is waiting on the CRM
func (b *Board) InFlight(id int64) bool {
	b.lock.RLock()
	defer b.lock.RUnlock()
	_, busy := b.inFlight[id]
	return busy
}

// Filter returns the leads whose name, email, status or service contains query,
// ignoring case. A blank query returns every lead.
func (b *Board) Filter(query string) []Lead {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return b.Leads()
	}

	b.lock.RLock()
	defer b.lock.RUnlock()
	var out []Lead
	for _, l := range b.leads {
		if l.matches(query) {
			out = append(out, l)
		}
	}
	return out
}

func (b *Board) Counts() Stats {
	b.lock.RLock()
	defer b.lock.RUnlock()
	return Summarize(b.leads)
}

func (b *Board) indexOf(id int64) int {
	for i := range b.leads {
		if b.leads[i].ID == id {
			return i
		}
	}
	return -1
}

// claim marks the row busy unless the change is a no-op. It returns unchanged=true
// when the lead already has status.
func (b *Board) claim(id int64, status Status) (unchanged bool, err error) {
	b.lock.Lock()
	defer b.lock.Unlock()

	i := b.indexOf(id)
	if i < 0 {
		return false, fmt.Errorf("lead %d: %w", id, apperrors.ErrNotFound)
	}
	if b.leads[i].Estado == status {
		return true, nil
	}
	if _, busy := b.inFlight[id]; busy {
		return false, fmt.Errorf("lead %d: %w", id, apperrors.ErrTransitionInFlight)
	}
	b.inFlight[id] = struct{}{}
	return false, nil
}

// release clears the busy mark and, when the CRM accepted the change, applies the
// new status to that row only.
func (b *Board) release(id int64, status Status, applied bool) {
	b.lock.Lock()
	defer b.lock.Unlock()

	delete(b.inFlight, id)
	if !applied {
		return
	}
	if i := b.indexOf(id); i >= 0 {
		b.leads[i].Estado = status
	}
}
