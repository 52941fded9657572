// Package session owns the authentication state of the banking client.
//
// The Manager is the single writer of the session: it persists the
// credential returned by the backend, clears it on logout or when the
// backend rejects it, and publishes every resulting State to subscribers.
// Whether a session is authenticated is always derived from the stored
// credential, never cached separately.
package session

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"

	"github.com/dmitrijs2005/bankclient/internal/client/models"
	"github.com/dmitrijs2005/bankclient/internal/client/routing"
	"github.com/dmitrijs2005/bankclient/internal/logging"
	"github.com/dmitrijs2005/bankclient/internal/validation"
)

var (
	// ErrInvalidInput is returned before any network call when a login or
	// registration request fails validation.
	ErrInvalidInput = validation.ErrInvalid

	// ErrSessionSuperseded is returned by a login or registration that
	// completed after the session was terminated in the meantime.
	ErrSessionSuperseded = errors.New("session superseded")

	ErrNoCredential = errors.New("response carries no credential")
	ErrNoNavigator  = errors.New("no navigator configured")
)

// State is what subscribers observe. Identity is set only when
// Authenticated is true.
type State struct {
	Authenticated bool
	Identity      *models.Identity
}

// AuthAPI exchanges credentials with the backend.
type AuthAPI interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.Identity, error)
	Register(ctx context.Context, req models.RegisterRequest) (*models.Identity, error)
}

// Store persists the session.
type Store interface {
	Save(ctx context.Context, id models.Identity) error
	Get(ctx context.Context) *models.Identity
	Remove(ctx context.Context) error
}

// Evaluator judges the stored credential.
type Evaluator interface {
	IsValid(ctx context.Context) bool
	Role(ctx context.Context) models.Role
}

// Navigator moves the presentation layer to another screen.
type Navigator interface {
	Navigate(ctx context.Context, path string, query url.Values) error
}

// TransitionRecorder is told about every published state.
type TransitionRecorder interface {
	SessionTransition(cause string, authenticated bool)
}

type Manager struct {
	api   AuthAPI
	store Store
	eval  Evaluator
	log   logging.Logger
	rec   TransitionRecorder

	// mu serializes transitions; epoch counts terminations so that a login
	// racing a logout cannot resurrect the session.
	mu    sync.Mutex
	epoch uint64
	state *Subject[State]

	navMu sync.RWMutex
	nav   Navigator
}

type Option func(*Manager)

func WithNavigator(n Navigator) Option {
	return func(m *Manager) { m.nav = n }
}

func WithTransitionRecorder(r TransitionRecorder) Option {
	return func(m *Manager) { m.rec = r }
}

// NewManager derives the initial state from whatever is already stored.
func NewManager(api AuthAPI, store Store, eval Evaluator, log logging.Logger, opts ...Option) *Manager {
	m := &Manager{
		api:   api,
		store: store,
		eval:  eval,
		log:   log.With("component", "session"),
	}
	for _, o := range opts {
		o(m)
	}
	m.state = NewSubject(m.derive(context.Background()))
	return m
}

// SetNavigator installs the navigator after construction, for wiring where
// the navigator itself depends on the Manager.
func (m *Manager) SetNavigator(n Navigator) {
	m.navMu.Lock()
	defer m.navMu.Unlock()
	m.nav = n
}

func (m *Manager) navigator() Navigator {
	m.navMu.RLock()
	defer m.navMu.RUnlock()
	return m.nav
}

// Login validates req, authenticates against the backend and persists the
// result. On any failure the current session is left as it was.
func (m *Manager) Login(ctx context.Context, req models.LoginRequest) (*models.Identity, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	return m.authenticate(ctx, "login", func(ctx context.Context) (*models.Identity, error) {
		return m.api.Login(ctx, req)
	})
}

func (m *Manager) Register(ctx context.Context, req models.RegisterRequest) (*models.Identity, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	return m.authenticate(ctx, "register", func(ctx context.Context) (*models.Identity, error) {
		return m.api.Register(ctx, req)
	})
}

// authenticate runs call without holding mu, so a rejection observed by the
// request pipeline can terminate the session while the call is in flight.
func (m *Manager) authenticate(ctx context.Context, cause string,
	call func(context.Context) (*models.Identity, error)) (*models.Identity, error) {

	m.mu.Lock()
	started := m.epoch
	m.mu.Unlock()

	id, err := call(ctx)
	if err != nil {
		m.log.Warn(ctx, cause+" failed", "err", err)
		return nil, err
	}
	if id == nil || id.Token == "" {
		return nil, fmt.Errorf("%s: %w", cause, ErrNoCredential)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.epoch != started {
		m.log.Warn(ctx, "discarding "+cause+" result, session was terminated meanwhile", "email", id.Email)
		return nil, ErrSessionSuperseded
	}
	if err := m.store.Save(ctx, *id); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}
	m.publish(ctx, cause)
	return id, nil
}

// Logout clears the session and sends the user to the login screen.
// It always succeeds from the caller's point of view.
func (m *Manager) Logout(ctx context.Context) {
	m.terminate(ctx, "logout")
	if nav := m.navigator(); nav != nil {
		if err := nav.Navigate(ctx, routing.PathLogin, nil); err != nil {
			m.log.Error(ctx, "navigate to login", "err", err)
		}
	}
}

// Terminate clears the session without navigating. The request pipeline
// calls it when the backend rejects the credential.
func (m *Manager) Terminate(ctx context.Context) {
	m.terminate(ctx, "terminate")
}

func (m *Manager) terminate(ctx context.Context, cause string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.epoch++
	if err := m.store.Remove(ctx); err != nil {
		m.log.Error(ctx, "remove stored session", "err", err)
	}
	m.publish(ctx, cause)
}

// Refresh republishes the state derived from storage.
func (m *Manager) Refresh(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.publish(ctx, "refresh")
}

// IsAuthenticated reports whether a non-expired credential is stored.
func (m *Manager) IsAuthenticated(ctx context.Context) bool {
	return m.eval.IsValid(ctx)
}

// CurrentRole prefers the stored identity and falls back to the credential
// claims.
func (m *Manager) CurrentRole(ctx context.Context) models.Role {
	if id := m.store.Get(ctx); id != nil && id.Role != models.RoleNone {
		return id.Role
	}
	return m.eval.Role(ctx)
}

func (m *Manager) CurrentIdentity() *models.Identity {
	return m.state.Value().Identity
}

func (m *Manager) State() State {
	return m.state.Value()
}

// Subscribe delivers the current state to fn at once and every later state
// as it is published. Callbacks run while the transition is in progress and
// must not call Login, Register, Logout, Terminate or Refresh.
func (m *Manager) Subscribe(fn func(State)) (unsubscribe func()) {
	return m.state.Subscribe(fn)
}

// RedirectForRole navigates to the home screen of the current role, or to
// login when there is no authenticated session.
func (m *Manager) RedirectForRole(ctx context.Context) error {
	nav := m.navigator()
	if nav == nil {
		return ErrNoNavigator
	}
	role := models.RoleNone
	if m.IsAuthenticated(ctx) {
		role = m.CurrentRole(ctx)
	}
	return nav.Navigate(ctx, routing.HomeFor(role), nil)
}

func (m *Manager) derive(ctx context.Context) State {
	if !m.eval.IsValid(ctx) {
		return State{}
	}
	return State{Authenticated: true, Identity: m.store.Get(ctx)}
}

func (m *Manager) publish(ctx context.Context, cause string) {
	st := m.derive(ctx)
	m.state.Publish(st)
	if m.rec != nil {
		m.rec.SessionTransition(cause, st.Authenticated)
	}
	m.log.Info(ctx, "session state published", "cause", cause, "authenticated", st.Authenticated)
}
