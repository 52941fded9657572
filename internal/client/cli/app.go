package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"

	"github.com/dmitrijs2005/bankclient/internal/client/client"
	"github.com/dmitrijs2005/bankclient/internal/client/config"
	"github.com/dmitrijs2005/bankclient/internal/client/routing"
	"github.com/dmitrijs2005/bankclient/internal/client/services"
	"github.com/dmitrijs2005/bankclient/internal/client/session"
	"github.com/dmitrijs2005/bankclient/internal/client/store"
	"github.com/dmitrijs2005/bankclient/internal/client/token"
	"github.com/dmitrijs2005/bankclient/internal/logging"
	"github.com/dmitrijs2005/bankclient/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

type App struct {
	cfg *config.Config
	log logging.Logger

	store   *store.CredentialStore
	eval    *token.Evaluator
	session *session.Manager
	router  *routing.Router

	accounts   services.AccountService
	operations services.OperationService
	agent      services.AgentService
	admin      services.AdminService

	reader *bufio.Reader
	out    io.Writer

	unsubscribe func()
	closeRepo   func() error
	closeOnce   sync.Once
	closeErr    error
}

type Option func(*App)

// WithIO replaces stdin and stdout.
func WithIO(in io.Reader, out io.Writer) Option {
	return func(a *App) {
		a.reader = bufio.NewReader(in)
		a.out = out
	}
}

// NewApp wires storage, the request pipeline, the session and the router.
// Metrics are registered on reg.
func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger, reg prometheus.Registerer, opts ...Option) (*App, error) {
	a := &App{
		cfg:    cfg,
		log:    log,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}
	for _, o := range opts {
		o(a)
	}

	repo, closeRepo, err := openRepository(ctx, cfg)
	if err != nil {
		return nil, err
	}
	a.closeRepo = closeRepo

	m := metrics.New(reg)
	a.store = store.New(repo, log, store.WithKeys(cfg.TokenKey, cfg.UserKey))
	a.eval = token.NewEvaluator(a.store, log)

	// The pipeline reacts through the session and the router, which are
	// built from the pipeline's own services below.
	reactions := client.Reactions{
		Unauthorized: func(ctx context.Context) { a.session.Terminate(ctx) },
		Forbidden: func(ctx context.Context) {
			if err := a.router.Navigate(ctx, routing.PathLogin, nil); err != nil {
				a.log.Error(ctx, "navigate after 403", "err", err)
			}
		},
	}
	hc := &http.Client{Timeout: cfg.RequestTimeout}
	invoke := client.Pipeline(hc, a.store, cfg.AuthPathPrefix, reactions, log, m)
	api, err := client.NewAPIClient(cfg.APIBaseURL, invoke, log)
	if err != nil {
		_ = closeRepo()
		return nil, err
	}

	a.accounts = services.NewAccountService(api)
	a.operations = services.NewOperationService(api)
	a.agent = services.NewAgentService(api)
	a.admin = services.NewAdminService(api)

	a.session = session.NewManager(services.NewAuthService(api), a.store, a.eval, log,
		session.WithTransitionRecorder(m))
	a.router = routing.NewRouter(a.session, log,
		routing.WithDenialRecorder(m),
		routing.OnVisit(a.onVisit))
	a.session.SetNavigator(a.router)

	a.unsubscribe = a.session.Subscribe(a.onSession())
	return a, nil
}

// Close releases local storage. Later calls return the first result.
func (a *App) Close() error {
	a.closeOnce.Do(func() {
		if a.unsubscribe != nil {
			a.unsubscribe()
		}
		if a.closeRepo != nil {
			a.closeErr = a.closeRepo()
		}
	})
	return a.closeErr
}

// Run lands on the screen matching the stored session and serves commands
// until EOF or exit.
func (a *App) Run(ctx context.Context) error {
	a.printf("Banking client, API %s (type 'help' for commands)\n", a.cfg.APIBaseURL)
	if err := a.session.RedirectForRole(ctx); err != nil {
		return err
	}
	return runREPL(ctx, a)
}

// onSession prints sign-in and sign-out transitions. The first call is the
// replay of the initial state and stays silent.
func (a *App) onSession() func(session.State) {
	first := true
	last := false
	return func(s session.State) {
		if first {
			first, last = false, s.Authenticated
			return
		}
		switch {
		case s.Authenticated && !last:
			if s.Identity != nil {
				a.printf("Signed in as %s (%s)\n", s.Identity.FullName, s.Identity.Role)
			} else {
				a.printf("Signed in\n")
			}
		case !s.Authenticated && last:
			a.printf("Signed out\n")
		}
		last = s.Authenticated
	}
}

func (a *App) onVisit(m routing.Match) {
	a.printf("-> %s\n", m.Location.String())
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

// report prints err in the form the user should see it.
func (a *App) report(err error) {
	var apiErr *client.APIError
	switch {
	case errors.As(err, &apiErr):
		a.printf("Error: %s\n", apiErr.Message)
	case errors.Is(err, errDenied):
		// the router already showed where we landed
	default:
		a.printf("Error: %s\n", err)
	}
}
