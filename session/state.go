package session

import "github.com/softnova/crm-console/users"

type State int

const (
	Uninitialized State = iota
	Loading
	Authenticated
	Unauthenticated
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Loading:
		return "loading"
	case Authenticated:
		return "authenticated"
	case Unauthenticated:
		return "unauthenticated"
	}
	return "unknown"
}

// Snapshot is a copy of the Session at one instant. Loading is true while a restore
// or a login is pending; Initialized turns true once the first restore has finished.
type Snapshot struct {
	User        *users.User
	Token       string
	Loading     bool
	Initialized bool
}

// IsAuthenticated is true iff both the user and the token are present
func (s Snapshot) IsAuthenticated() bool {
	return s.User != nil && s.Token != ""
}

func (s Snapshot) State() State {
	switch {
	case !s.Initialized && !s.Loading:
		return Uninitialized
	case s.Loading:
		return Loading
	case s.IsAuthenticated():
		return Authenticated
	}
	return Unauthenticated
}
