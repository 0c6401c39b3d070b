package session_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/softnova/crm-console/credstore"
	apperrors "github.com/softnova/crm-console/internal/errors"
	"github.com/softnova/crm-console/session"
	"github.com/softnova/crm-console/users"
	"github.com/stretchr/testify/require"
)

type fakeAuthenticator struct {
	resp  session.LoginResponse
	err   error
	calls int
	// during, when set, runs while the login call is in flight
	during func()
}

func (f *fakeAuthenticator) Login(_ context.Context, _ session.Credentials) (session.LoginResponse, error) {
	f.calls++
	if f.during != nil {
		f.during()
	}
	return f.resp, f.err
}

// failingRepo fails writes for the listed keys
type failingRepo struct {
	*credstore.InMemoryRepo
	failSet    map[string]bool
	failDelete bool
}

func (r *failingRepo) Set(ctx context.Context, key, value string) error {
	if r.failSet[key] {
		return errors.New("disk full")
	}
	return r.InMemoryRepo.Set(ctx, key, value)
}

func (r *failingRepo) Delete(ctx context.Context, key string) error {
	if r.failDelete {
		return errors.New("read-only")
	}
	return r.InMemoryRepo.Delete(ctx, key)
}

func ana() *users.User {
	return &users.User{ID: 1, Nombre: "Ana", Email: "a@b.com", Rol: "administrador"}
}

func validCreds() session.Credentials {
	return session.Credentials{Email: "a@b.com", Password: "secret1"}
}

func setupStore(t *testing.T, repo credstore.Repo, auth *fakeAuthenticator, opts ...session.Option) *session.Store {
	t.Helper()
	store, err := session.NewStore(repo, auth, opts...)
	require.NoError(t, err)
	return store
}

func persist(t *testing.T, repo credstore.Repo, token, user string) {
	t.Helper()
	ctx := context.Background()
	if token != "" {
		require.NoError(t, repo.Set(ctx, credstore.KeyToken, token))
	}
	if user != "" {
		require.NoError(t, repo.Set(ctx, credstore.KeyUser, user))
	}
}

func TestInitialize_RestoresWithoutNetwork(t *testing.T) {
	repo := credstore.NewInMemoryRepo()
	persist(t, repo, "abc", `{"id":1,"nombre":"Ana","email":"a@b.com","rol":"usuario"}`)
	auth := &fakeAuthenticator{}
	store := setupStore(t, repo, auth)

	require.Equal(t, session.Uninitialized, store.State())
	store.Initialize(context.Background())

	require.True(t, store.IsAuthenticated())
	require.Equal(t, session.Authenticated, store.State())
	require.Equal(t, "a@b.com", store.CurrentUser().Email)
	require.False(t, store.Loading())
	require.Zero(t, auth.calls)

	tok, err := store.Token()
	require.NoError(t, err)
	require.Equal(t, "abc", tok.AccessToken)
}

func TestInitialize_MalformedOrMissing(t *testing.T) {
	tests := []struct {
		name, token, user string
	}{
		{"nothing stored", "", ""},
		{"token only", "abc", ""},
		{"user only", "", `{"id":1,"email":"a@b.com"}`},
		{"user not json", "abc", "{nope"},
		{"user without id", "abc", `{"email":"a@b.com"}`},
		{"user null", "abc", "null"},
		{"blank token", "   ", `{"id":1,"email":"a@b.com"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := credstore.NewInMemoryRepo()
			persist(t, repo, tt.token, tt.user)
			store := setupStore(t, repo, &fakeAuthenticator{})

			store.Initialize(context.Background())
			snap := store.Snapshot()
			require.False(t, snap.IsAuthenticated())
			require.True(t, snap.Initialized)
			require.False(t, snap.Loading)
			require.Equal(t, session.Unauthenticated, snap.State())

			_, err := store.Token()
			require.ErrorIs(t, err, apperrors.ErrNoSession)
		})
	}
}

func TestInitialize_ExpiredJWTIsStillTrusted(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "1",
		"exp": now.Add(-time.Hour).Unix(),
	}).SignedString([]byte("irrelevant"))
	require.NoError(t, err)

	repo := credstore.NewInMemoryRepo()
	persist(t, repo, signed, `{"id":1,"email":"a@b.com"}`)
	store := setupStore(t, repo, &fakeAuthenticator{}, session.WithClock(func() time.Time { return now }))

	store.Initialize(context.Background())
	require.True(t, store.IsAuthenticated())
}

func TestInitialize_OnlyOnce(t *testing.T) {
	repo := credstore.NewInMemoryRepo()
	store := setupStore(t, repo, &fakeAuthenticator{})
	store.Initialize(context.Background())

	persist(t, repo, "abc", `{"id":1,"email":"a@b.com"}`)
	store.Initialize(context.Background())
	require.False(t, store.IsAuthenticated())
}

func TestLogin_Success(t *testing.T) {
	repo := credstore.NewInMemoryRepo()
	auth := &fakeAuthenticator{resp: session.LoginResponse{Token: "t1", User: ana()}}
	store := setupStore(t, repo, auth)
	store.Initialize(context.Background())

	var loadingDuring bool
	auth.during = func() { loadingDuring = store.Loading() }

	user, err := store.Login(context.Background(), validCreds())
	require.NoError(t, err)
	require.Equal(t, ana(), user)
	require.True(t, loadingDuring)
	require.False(t, store.Loading())

	snap := store.Snapshot()
	require.True(t, snap.IsAuthenticated())
	require.Equal(t, "t1", snap.Token)

	stored, ok, err := repo.Get(context.Background(), credstore.KeyToken)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "t1", stored)

	rawUser, _, err := repo.Get(context.Background(), credstore.KeyUser)
	require.NoError(t, err)
	var persisted users.User
	require.NoError(t, json.Unmarshal([]byte(rawUser), &persisted))
	require.Equal(t, *ana(), persisted)
}

func TestLogin_FailureLeavesSessionUnchanged(t *testing.T) {
	ctx := context.Background()

	t.Run("rejected by the server", func(t *testing.T) {
		repo := credstore.NewInMemoryRepo()
		persist(t, repo, "old", `{"id":9,"email":"old@b.com"}`)
		rejection := &apperrors.APIError{Kind: apperrors.ErrAuthentication, StatusCode: 401, Message: "Usuario no encontrado"}
		store := setupStore(t, repo, &fakeAuthenticator{err: rejection})
		store.Initialize(ctx)
		before := store.Snapshot()

		_, err := store.Login(ctx, validCreds())
		require.ErrorIs(t, err, apperrors.ErrAuthentication)
		require.Equal(t, "Usuario no encontrado", apperrors.UserMessage(err, "Credenciales inválidas"))
		require.Equal(t, before, store.Snapshot())
		require.False(t, store.Loading())
	})

	t.Run("invalid credentials never reach the server", func(t *testing.T) {
		auth := &fakeAuthenticator{}
		store := setupStore(t, credstore.NewInMemoryRepo(), auth)
		store.Initialize(ctx)

		_, err := store.Login(ctx, session.Credentials{Email: "nope", Password: "123"})
		require.ErrorIs(t, err, apperrors.ErrValidation)
		require.Zero(t, auth.calls)
		require.False(t, store.IsAuthenticated())
	})

	t.Run("incomplete response", func(t *testing.T) {
		store := setupStore(t, credstore.NewInMemoryRepo(), &fakeAuthenticator{resp: session.LoginResponse{Token: "t1"}})
		_, err := store.Login(ctx, validCreds())
		require.ErrorIs(t, err, apperrors.ErrAuthentication)
		require.False(t, store.IsAuthenticated())
	})

	t.Run("persist failure rolls back", func(t *testing.T) {
		repo := &failingRepo{InMemoryRepo: credstore.NewInMemoryRepo(), failSet: map[string]bool{credstore.KeyUser: true}}
		store := setupStore(t, repo, &fakeAuthenticator{resp: session.LoginResponse{Token: "t1", User: ana()}})
		store.Initialize(ctx)

		_, err := store.Login(ctx, validCreds())
		require.Error(t, err)
		require.False(t, store.IsAuthenticated())
		_, ok, _ := repo.Get(ctx, credstore.KeyToken)
		require.False(t, ok)
	})
}

func TestLogin_WithoutInitialize(t *testing.T) {
	ctx := context.Background()
	repo := credstore.NewInMemoryRepo()
	store := setupStore(t, repo, &fakeAuthenticator{resp: session.LoginResponse{Token: "t1", User: ana()}})
	require.Equal(t, session.Uninitialized, store.State())

	_, err := store.Login(ctx, validCreds())
	require.NoError(t, err)
	require.True(t, store.Snapshot().Initialized)
	require.Equal(t, session.Authenticated, store.State())

	// a late Initialize must not reload over the new session
	persist(t, repo, "other", `{"id":9,"email":"other@b.com"}`)
	store.Initialize(ctx)
	require.Equal(t, "t1", store.Snapshot().Token)
}

func TestLogout(t *testing.T) {
	ctx := context.Background()
	repo := credstore.NewInMemoryRepo()
	store := setupStore(t, repo, &fakeAuthenticator{resp: session.LoginResponse{Token: "t1", User: ana()}})
	store.Initialize(ctx)
	_, err := store.Login(ctx, validCreds())
	require.NoError(t, err)

	require.NoError(t, store.Logout(ctx))
	require.NoError(t, store.Logout(ctx))

	snap := store.Snapshot()
	require.Nil(t, snap.User)
	require.Empty(t, snap.Token)
	require.Equal(t, session.Unauthenticated, snap.State())
	_, ok, _ := repo.Get(ctx, credstore.KeyToken)
	require.False(t, ok)
	_, ok, _ = repo.Get(ctx, credstore.KeyUser)
	require.False(t, ok)
}

func TestLogout_PersistFailureStillEmptiesSession(t *testing.T) {
	ctx := context.Background()
	repo := &failingRepo{InMemoryRepo: credstore.NewInMemoryRepo()}
	store := setupStore(t, repo, &fakeAuthenticator{resp: session.LoginResponse{Token: "t1", User: ana()}})
	_, err := store.Login(ctx, validCreds())
	require.NoError(t, err)

	repo.failDelete = true
	require.Error(t, store.Logout(ctx))
	require.False(t, store.IsAuthenticated())
}

func TestSnapshot_IsACopy(t *testing.T) {
	ctx := context.Background()
	store := setupStore(t, credstore.NewInMemoryRepo(), &fakeAuthenticator{resp: session.LoginResponse{Token: "t1", User: ana()}})
	_, err := store.Login(ctx, validCreds())
	require.NoError(t, err)

	store.CurrentUser().Nombre = "Mallory"
	require.Equal(t, "Ana", store.CurrentUser().Nombre)
}

func TestCredentials_Validate(t *testing.T) {
	require.NoError(t, validCreds().Validate())

	err := session.Credentials{}.Validate()
	var vErr *apperrors.ValidationError
	require.ErrorAs(t, err, &vErr)
	require.Equal(t, "El email es requerido", vErr.Fields["email"])
	require.Equal(t, "La contraseña es requerida", vErr.Fields["password"])

	err = session.Credentials{Email: "a@b", Password: "12345"}.Validate()
	require.ErrorAs(t, err, &vErr)
	require.Equal(t, "Email inválido", vErr.Fields["email"])
	require.Equal(t, "La contraseña debe tener al menos 6 caracteres", vErr.Fields["password"])

	// five characters, ten bytes
	err = session.Credentials{Email: "ana@softnova.com", Password: "ñáéíó"}.Validate()
	require.ErrorAs(t, err, &vErr)
	require.Equal(t, "La contraseña debe tener al menos 6 caracteres", vErr.Fields["password"])
	require.NoError(t, session.Credentials{Email: "ana@softnova.com", Password: "ñáéíóú"}.Validate())
}

func TestNewStore_RequiresDependencies(t *testing.T) {
	_, err := session.NewStore(nil, &fakeAuthenticator{})
	require.Error(t, err)
	_, err = session.NewStore(credstore.NewInMemoryRepo(), nil)
	require.Error(t, err)
}
