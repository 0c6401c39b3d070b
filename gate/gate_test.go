package gate_test

import (
	"context"
	"testing"

	"github.com/softnova/crm-console/credstore"
	"github.com/softnova/crm-console/gate"
	"github.com/softnova/crm-console/session"
	"github.com/softnova/crm-console/users"
	"github.com/stretchr/testify/require"
)

func TestDecide(t *testing.T) {
	user := &users.User{ID: 1, Email: "a@b.com"}

	tests := []struct {
		name string
		snap session.Snapshot
		want gate.Decision
	}{
		{"before restore", session.Snapshot{}, gate.ShowLoading},
		{"restoring", session.Snapshot{Loading: true}, gate.ShowLoading},
		{"login in flight with a session", session.Snapshot{User: user, Token: "t", Loading: true, Initialized: true}, gate.ShowLoading},
		{"no session", session.Snapshot{Initialized: true}, gate.RedirectToLogin},
		{"token without user", session.Snapshot{Token: "t", Initialized: true}, gate.RedirectToLogin},
		{"user without token", session.Snapshot{User: user, Initialized: true}, gate.RedirectToLogin},
		{"authenticated", session.Snapshot{User: user, Token: "t", Initialized: true}, gate.Render},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, gate.Decide(tt.snap))
		})
	}
}

type staticAuthenticator struct{ resp session.LoginResponse }

func (a staticAuthenticator) Login(context.Context, session.Credentials) (session.LoginResponse, error) {
	return a.resp, nil
}

func TestDecide_LoginWithoutInitialize(t *testing.T) {
	auth := staticAuthenticator{resp: session.LoginResponse{Token: "t1", User: &users.User{ID: 1, Email: "ana@softnova.com"}}}
	store, err := session.NewStore(credstore.NewInMemoryRepo(), auth)
	require.NoError(t, err)
	require.Equal(t, gate.ShowLoading, gate.Decide(store.Snapshot()))

	_, err = store.Login(context.Background(), session.Credentials{Email: "ana@softnova.com", Password: "secret1"})
	require.NoError(t, err)
	require.Equal(t, gate.Render, gate.Decide(store.Snapshot()))
}

func TestDecision_String(t *testing.T) {
	require.Equal(t, "render", gate.Render.String())
	require.Equal(t, "unknown", gate.Decision(42).String())
}
