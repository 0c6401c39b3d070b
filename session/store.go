// Package session owns the console's single Session: who is logged in and with which
// bearer token. All changes go through Store.Initialize, Store.Login and Store.Logout.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
	"github.com/softnova/crm-console/credstore"
	apperrors "github.com/softnova/crm-console/internal/errors"
	"github.com/softnova/crm-console/users"
	"golang.org/x/oauth2"
)

var _ oauth2.TokenSource = (*Store)(nil)

// Authenticator exchanges credentials for a token and user record
type Authenticator interface {
	Login(ctx context.Context, creds Credentials) (LoginResponse, error)
}

type Option func(*Store)

// WithClock replaces time.Now, used when checking restored token expiry
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// Store is the single writer of the Session. Reads are safe from any goroutine.
type Store struct {
	repo credstore.Repo
	auth Authenticator
	now  func() time.Time

	mu          sync.RWMutex
	user        *users.User
	token       string
	pending     int
	initialized bool
	initOnce    sync.Once
}

// NewStore returns an uninitialized Store. Call Initialize once at startup to restore
// a persisted session; a successful Login also marks the Store initialized and makes
// any later Initialize a no-op.
func NewStore(repo credstore.Repo, auth Authenticator, opts ...Option) (*Store, error) {
	if repo == nil {
		return nil, errors.New("[session.NewStore] credential repo is required")
	}
	if auth == nil {
		return nil, errors.New("[session.NewStore] authenticator is required")
	}
	s := &Store{repo: repo, auth: auth, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Initialize restores a persisted session without calling the CRM. The token is
// trusted as stored; an expired JWT is only reported in the log. Missing, malformed
// or unreadable entries leave the Session unauthenticated. Only the first call does
// any work.
func (s *Store) Initialize(ctx context.Context) {
	s.initOnce.Do(func() {
		s.beginLoading()
		defer s.endLoading(true)

		token, user, ok := s.restore(ctx)
		if !ok {
			return
		}
		s.warnIfExpired(token)

		s.mu.Lock()
		s.token, s.user = token, user
		s.mu.Unlock()
		log.Info().Str("email", user.Email).Msg("session restored")
	})
}

func (s *Store) restore(ctx context.Context) (string, *users.User, bool) {
	token, ok, err := s.repo.Get(ctx, credstore.KeyToken)
	if err != nil {
		log.Warn().Err(err).Msg("reading persisted token")
		return "", nil, false
	}
	token = strings.TrimSpace(token)
	if !ok || token == "" {
		return "", nil, false
	}

	raw, ok, err := s.repo.Get(ctx, credstore.KeyUser)
	if err != nil {
		log.Warn().Err(err).Msg("reading persisted user")
		return "", nil, false
	}
	if !ok {
		return "", nil, false
	}
	var user users.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		log.Warn().Err(err).Msg("persisted user is malformed, ignoring it")
		return "", nil, false
	}
	if !user.Valid() {
		log.Warn().Msg("persisted user is incomplete, ignoring it")
		return "", nil, false
	}
	return token, &user, true
}

// warnIfExpired logs when a JWT-shaped token carries an exp in the past. Opaque
// tokens and tokens without exp are not checked.
func (s *Store) warnIfExpired(token string) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return
	}
	if exp.Before(s.now()) {
		log.Warn().Time("expired_at", exp.Time).Msg("restored token has expired; the CRM will reject it until the next login")
	}
}

// Login validates creds, asks the CRM for a token, persists token and user, then
// swaps the Session and marks the Store initialized. On any failure the Session is
// left as it was and the error is returned to the caller.
func (s *Store) Login(ctx context.Context, creds Credentials) (*users.User, error) {
	creds.Email = strings.TrimSpace(creds.Email)
	if err := creds.Validate(); err != nil {
		return nil, err
	}

	s.beginLoading()
	defer s.endLoading(false)

	resp, err := s.auth.Login(ctx, creds)
	if err != nil {
		log.Info().Err(err).Str("email", creds.Email).Msg("login rejected")
		return nil, err
	}
	if strings.TrimSpace(resp.Token) == "" || !resp.User.Valid() {
		return nil, fmt.Errorf("login response without token or user: %w", apperrors.ErrAuthentication)
	}

	if err := s.persist(ctx, resp.Token, resp.User); err != nil {
		return nil, err
	}

	// later Initialize calls are no-ops
	s.initOnce.Do(func() {})

	user := *resp.User
	s.mu.Lock()
	s.token, s.user = resp.Token, &user
	s.initialized = true
	s.mu.Unlock()

	log.Info().Str("email", user.Email).Str("rol", user.Rol).Msg("logged in")
	out := user
	return &out, nil
}

// persist writes both entries; if either write fails the previous entries are put back
func (s *Store) persist(ctx context.Context, token string, user *users.User) error {
	encoded, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode session user: %w", err)
	}

	prev := s.Snapshot()
	if err := s.repo.Set(ctx, credstore.KeyToken, token); err != nil {
		s.rollback(ctx, prev)
		return fmt.Errorf("persist session token: %w", err)
	}
	if err := s.repo.Set(ctx, credstore.KeyUser, string(encoded)); err != nil {
		s.rollback(ctx, prev)
		return fmt.Errorf("persist session user: %w", err)
	}
	return nil
}

func (s *Store) rollback(ctx context.Context, prev Snapshot) {
	if !prev.IsAuthenticated() {
		_ = s.repo.Delete(ctx, credstore.KeyToken)
		_ = s.repo.Delete(ctx, credstore.KeyUser)
		return
	}
	encoded, err := json.Marshal(prev.User)
	if err != nil {
		return
	}
	if err := s.repo.Set(ctx, credstore.KeyToken, prev.Token); err != nil {
		log.Err(err).Msg("restoring previous session token")
	}
	if err := s.repo.Set(ctx, credstore.KeyUser, string(encoded)); err != nil {
		log.Err(err).Msg("restoring previous session user")
	}
}

// Logout empties the Session and removes both persisted entries. It never calls the
// CRM and is idempotent. The Session is empty on return even when removing the
// persisted entries fails; that failure is returned.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	email := ""
	if s.user != nil {
		email = s.user.Email
	}
	s.token, s.user = "", nil
	s.mu.Unlock()

	tokenErr := s.repo.Delete(ctx, credstore.KeyToken)
	userErr := s.repo.Delete(ctx, credstore.KeyUser)
	if email != "" {
		log.Info().Str("email", email).Msg("logged out")
	}
	if err := errors.Join(tokenErr, userErr); err != nil {
		return fmt.Errorf("clear persisted session: %w", err)
	}
	return nil
}

func (s *Store) beginLoading() {
	s.mu.Lock()
	s.pending++
	s.mu.Unlock()
}

func (s *Store) endLoading(markInitialized bool) {
	s.mu.Lock()
	s.pending--
	if markInitialized {
		s.initialized = true
	}
	s.mu.Unlock()
}

// Snapshot returns a copy of the Session
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := Snapshot{Token: s.token, Loading: s.pending > 0, Initialized: s.initialized}
	if s.user != nil {
		u := *s.user
		snap.User = &u
	}
	return snap
}

func (s *Store) State() State {
	return s.Snapshot().State()
}

func (s *Store) IsAuthenticated() bool {
	return s.Snapshot().IsAuthenticated()
}

func (s *Store) Loading() bool {
	return s.Snapshot().Loading
}

// CurrentUser returns a copy of the logged in user, or nil
func (s *Store) CurrentUser() *users.User {
	return s.Snapshot().User
}

// Token hands the current bearer token to an oauth2.Transport
func (s *Store) Token() (*oauth2.Token, error) {
	snap := s.Snapshot()
	if !snap.IsAuthenticated() {
		return nil, apperrors.ErrNoSession
	}
	return &oauth2.Token{AccessToken: snap.Token, TokenType: "Bearer"}, nil
}
