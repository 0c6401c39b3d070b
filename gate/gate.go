// Package gate decides what a protected view shows for a given Session snapshot.
package gate

import "github.com/softnova/crm-console/session"

type Decision int

const (
	// ShowLoading renders the "checking session" placeholder and nothing else
	ShowLoading Decision = iota
	// RedirectToLogin replaces the protected location with the login view
	RedirectToLogin
	// Render shows the protected content
	Render
)

func (d Decision) String() string {
	switch d {
	case ShowLoading:
		return "show-loading"
	case RedirectToLogin:
		return "redirect-to-login"
	case Render:
		return "render"
	}
	return "unknown"
}

// Decide is pure: it reads the snapshot and nothing else. A store that has not
// finished its first restore counts as loading.
func Decide(snap session.Snapshot) Decision {
	switch {
	case snap.Loading || !snap.Initialized:
		return ShowLoading
	case !snap.IsAuthenticated():
		return RedirectToLogin
	default:
		return Render
	}
}
