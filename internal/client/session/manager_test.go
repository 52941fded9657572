package session

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/bankclient/internal/client/models"
	"github.com/dmitrijs2005/bankclient/internal/client/token"
	"github.com/dmitrijs2005/bankclient/internal/logging"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Unix(1_700_000_000, 0)

// memStore is an in-memory Store that also feeds the evaluator.
type memStore struct {
	mu      sync.Mutex
	id      *models.Identity
	token   string
	saves   int
	removes int
}

func (s *memStore) Save(_ context.Context, id models.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saves++
	s.id = &id
	s.token = id.Token
	return nil
}

func (s *memStore) Get(context.Context) *models.Identity {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.id == nil {
		return nil
	}
	cp := *s.id
	return &cp
}

func (s *memStore) Remove(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removes++
	s.id, s.token = nil, ""
	return nil
}

func (s *memStore) Token(context.Context) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

type fakeAPI struct {
	identity *models.Identity
	err      error
	calls    int
	gate     chan struct{} // when set, calls block until closed
	entered  chan struct{}
}

func (f *fakeAPI) do() (*models.Identity, error) {
	f.calls++
	if f.entered != nil {
		close(f.entered)
	}
	if f.gate != nil {
		<-f.gate
	}
	return f.identity, f.err
}

func (f *fakeAPI) Login(context.Context, models.LoginRequest) (*models.Identity, error) {
	return f.do()
}

func (f *fakeAPI) Register(context.Context, models.RegisterRequest) (*models.Identity, error) {
	return f.do()
}

type fakeNav struct{ paths []string }

func (f *fakeNav) Navigate(_ context.Context, path string, _ url.Values) error {
	f.paths = append(f.paths, path)
	return nil
}

type transitions struct{ got []string }

func (r *transitions) SessionTransition(cause string, authenticated bool) {
	state := "anonymous"
	if authenticated {
		state = "authenticated"
	}
	r.got = append(r.got, cause+"/"+state)
}

func mint(t *testing.T, role string, exp time.Time) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "user@bank.ma",
		"role": role,
		"iat":  now.Unix(),
		"exp":  exp.Unix(),
	}).SignedString([]byte("k"))
	require.NoError(t, err)
	return s
}

func identity(t *testing.T, role models.Role) *models.Identity {
	return &models.Identity{
		ID:       3,
		Email:    "user@bank.ma",
		FullName: "Test User",
		Role:     role,
		Token:    mint(t, role.String(), now.Add(time.Hour)),
	}
}

type fixture struct {
	store *memStore
	api   *fakeAPI
	nav   *fakeNav
	rec   *transitions
	m     *Manager
}

func newFixture(t *testing.T, st *memStore) *fixture {
	t.Helper()
	if st == nil {
		st = &memStore{}
	}
	f := &fixture{store: st, api: &fakeAPI{}, nav: &fakeNav{}, rec: &transitions{}}
	eval := token.NewEvaluator(st, logging.Nop(), token.WithClock(func() time.Time { return now }))
	f.m = NewManager(f.api, st, eval, logging.Nop(), WithNavigator(f.nav), WithTransitionRecorder(f.rec))
	return f
}

var validLogin = models.LoginRequest{Email: "user@bank.ma", Password: "secret1"}

func TestNewManager_DerivesInitialState(t *testing.T) {
	t.Run("valid stored credential", func(t *testing.T) {
		id := identity(t, models.RoleAgent)
		f := newFixture(t, &memStore{id: id, token: id.Token})

		st := f.m.State()
		assert.True(t, st.Authenticated)
		require.NotNil(t, st.Identity)
		assert.Equal(t, models.RoleAgent, st.Identity.Role)
	})

	t.Run("expired stored credential", func(t *testing.T) {
		id := identity(t, models.RoleAgent)
		id.Token = mint(t, "AGENT_BANCAIRE", now.Add(-time.Second))
		f := newFixture(t, &memStore{id: id, token: id.Token})

		assert.Equal(t, State{}, f.m.State())
		assert.False(t, f.m.IsAuthenticated(context.Background()))
	})

	t.Run("empty store", func(t *testing.T) {
		f := newFixture(t, nil)
		assert.Equal(t, State{}, f.m.State())
		assert.Nil(t, f.m.CurrentIdentity())
	})
}

func TestLogin_AuthenticatedBeforeSubscribersReact(t *testing.T) {
	f := newFixture(t, nil)
	f.api.identity = identity(t, models.RoleCustomer)
	ctx := context.Background()

	var observed []State
	var authAtPublish bool
	var roleAtPublish models.Role
	f.m.Subscribe(func(s State) {
		observed = append(observed, s)
		if s.Authenticated {
			authAtPublish = f.m.IsAuthenticated(ctx)
			roleAtPublish = f.m.CurrentRole(ctx)
		}
	})

	got, err := f.m.Login(ctx, validLogin)
	require.NoError(t, err)

	assert.Empty(t, cmp.Diff(f.api.identity, got))
	assert.True(t, f.m.IsAuthenticated(ctx))
	assert.Equal(t, models.RoleCustomer, f.m.CurrentRole(ctx))
	assert.True(t, authAtPublish)
	assert.Equal(t, models.RoleCustomer, roleAtPublish)

	require.Len(t, observed, 2)
	assert.Equal(t, State{}, observed[0])
	assert.True(t, observed[1].Authenticated)
	assert.Empty(t, cmp.Diff(f.api.identity, observed[1].Identity))
	assert.Equal(t, []string{"login/authenticated"}, f.rec.got)
}

func TestLogin_InvalidInputSkipsNetwork(t *testing.T) {
	f := newFixture(t, nil)

	tests := []models.LoginRequest{
		{Email: "", Password: "secret1"},
		{Email: "not-an-email", Password: "secret1"},
		{Email: "user@bank.ma", Password: "12345"},
	}
	for _, req := range tests {
		_, err := f.m.Login(context.Background(), req)
		require.ErrorIs(t, err, ErrInvalidInput)
	}
	assert.Zero(t, f.api.calls)
	assert.Zero(t, f.store.saves)
}

func TestLogin_FailureLeavesStateUnchanged(t *testing.T) {
	f := newFixture(t, nil)
	boom := errors.New("bad credentials")
	f.api.err = boom

	got, err := f.m.Login(context.Background(), validLogin)

	require.ErrorIs(t, err, boom)
	assert.Nil(t, got)
	assert.Equal(t, State{}, f.m.State())
	assert.Zero(t, f.store.saves)
	assert.Empty(t, f.rec.got)
}

func TestLogin_ResponseWithoutCredential(t *testing.T) {
	f := newFixture(t, nil)
	f.api.identity = &models.Identity{Email: "user@bank.ma", Role: models.RoleCustomer}

	_, err := f.m.Login(context.Background(), validLogin)

	require.ErrorIs(t, err, ErrNoCredential)
	assert.Zero(t, f.store.saves)
}

func TestRegister(t *testing.T) {
	f := newFixture(t, nil)
	f.api.identity = identity(t, models.RoleCustomer)
	f.api.identity.AccountNumber = "MA-77"

	_, err := f.m.Register(context.Background(), models.RegisterRequest{FullName: "Al", Email: "user@bank.ma", Password: "secret1"})
	require.ErrorIs(t, err, ErrInvalidInput)

	got, err := f.m.Register(context.Background(), models.RegisterRequest{FullName: "Ali Test", Email: "user@bank.ma", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "MA-77", got.AccountNumber)
	assert.True(t, f.m.State().Authenticated)
	assert.Equal(t, []string{"register/authenticated"}, f.rec.got)
}

func TestLogout_ClearsStoreAndNavigates(t *testing.T) {
	f := newFixture(t, nil)
	f.api.identity = identity(t, models.RoleAdmin)
	ctx := context.Background()
	_, err := f.m.Login(ctx, validLogin)
	require.NoError(t, err)

	f.m.Logout(ctx)

	assert.Nil(t, f.store.Get(ctx))
	assert.Equal(t, "", f.store.Token(ctx))
	assert.False(t, f.m.IsAuthenticated(ctx))
	assert.Equal(t, models.RoleNone, f.m.CurrentRole(ctx))
	assert.Equal(t, State{}, f.m.State())
	assert.Equal(t, []string{"/auth/login"}, f.nav.paths)
}

func TestLogout_Twice(t *testing.T) {
	f := newFixture(t, nil)
	f.api.identity = identity(t, models.RoleAdmin)
	ctx := context.Background()
	_, err := f.m.Login(ctx, validLogin)
	require.NoError(t, err)

	f.m.Logout(ctx)
	first := f.m.State()
	f.m.Logout(ctx)

	assert.Equal(t, first, f.m.State())
	assert.Equal(t, State{}, f.m.State())
	assert.Equal(t, []string{"/auth/login", "/auth/login"}, f.nav.paths)
	assert.Equal(t, []string{"login/authenticated", "logout/anonymous", "logout/anonymous"}, f.rec.got)
}

func TestTerminate_DoesNotNavigate(t *testing.T) {
	f := newFixture(t, nil)
	f.api.identity = identity(t, models.RoleCustomer)
	ctx := context.Background()
	_, err := f.m.Login(ctx, validLogin)
	require.NoError(t, err)

	f.m.Terminate(ctx)

	assert.False(t, f.m.IsAuthenticated(ctx))
	assert.Empty(t, f.nav.paths)
	assert.Equal(t, 1, f.store.removes)
}

func TestLogin_SupersededByTermination(t *testing.T) {
	f := newFixture(t, nil)
	f.api.identity = identity(t, models.RoleCustomer)
	f.api.gate = make(chan struct{})
	f.api.entered = make(chan struct{})
	ctx := context.Background()

	done := make(chan error, 1)
	go func() {
		_, err := f.m.Login(ctx, validLogin)
		done <- err
	}()

	<-f.api.entered
	f.m.Terminate(ctx)
	close(f.api.gate)

	require.ErrorIs(t, <-done, ErrSessionSuperseded)
	assert.False(t, f.m.IsAuthenticated(ctx))
	assert.Zero(t, f.store.saves)
	assert.Equal(t, State{}, f.m.State())
}

func TestCurrentRole_FallsBackToClaims(t *testing.T) {
	st := &memStore{token: mint(t, "ADMIN", now.Add(time.Hour))}
	f := newFixture(t, st)

	assert.Equal(t, models.RoleAdmin, f.m.CurrentRole(context.Background()))
	assert.True(t, f.m.State().Authenticated)
	assert.Nil(t, f.m.State().Identity)
}

func TestRedirectForRole(t *testing.T) {
	tests := []struct {
		role models.Role
		want string
	}{
		{role: models.RoleCustomer, want: "/client/dashboard"},
		{role: models.RoleAgent, want: "/agent/dashboard"},
		{role: models.RoleAdmin, want: "/admin/dashboard"},
	}
	for _, tt := range tests {
		t.Run(tt.role.String(), func(t *testing.T) {
			id := identity(t, tt.role)
			f := newFixture(t, &memStore{id: id, token: id.Token})

			require.NoError(t, f.m.RedirectForRole(context.Background()))
			assert.Equal(t, []string{tt.want}, f.nav.paths)
		})
	}

	t.Run("anonymous", func(t *testing.T) {
		f := newFixture(t, nil)
		require.NoError(t, f.m.RedirectForRole(context.Background()))
		assert.Equal(t, []string{"/auth/login"}, f.nav.paths)
	})

	t.Run("no navigator", func(t *testing.T) {
		st := &memStore{}
		eval := token.NewEvaluator(st, logging.Nop())
		m := NewManager(&fakeAPI{}, st, eval, logging.Nop())
		require.ErrorIs(t, m.RedirectForRole(context.Background()), ErrNoNavigator)

		nav := &fakeNav{}
		m.SetNavigator(nav)
		require.NoError(t, m.RedirectForRole(context.Background()))
		assert.Equal(t, []string{"/auth/login"}, nav.paths)
	})
}

func TestRefresh_RepublishesFromStore(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	var states []State
	f.m.Subscribe(func(s State) { states = append(states, s) })

	id := identity(t, models.RoleAgent)
	require.NoError(t, f.store.Save(ctx, *id))
	f.m.Refresh(ctx)

	require.Len(t, states, 2)
	assert.True(t, states[1].Authenticated)
	assert.Equal(t, "refresh/authenticated", f.rec.got[0])
}
