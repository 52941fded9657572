package routing

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"

	"github.com/dmitrijs2005/bankclient/internal/logging"
)

// MaxRedirects bounds the redirect chain of a single navigation.
const MaxRedirects = 8

var ErrTooManyRedirects = errors.New("too many redirects")

// DenialRecorder is notified of every guard denial.
type DenialRecorder interface {
	GuardDenied(guard, route string)
}

// Match is a location resolved against the screen table.
type Match struct {
	Route    Route
	Location Location
	Params   map[string]string
}

// Param returns a path placeholder value of the matched route.
func (m Match) Param(name string) string {
	return m.Params[name]
}

type Router struct {
	sess    SessionReader
	routes  []Route
	log     logging.Logger
	denials DenialRecorder

	mu      sync.RWMutex
	current Match
	visits  []func(Match)
}

type Option func(*Router)

func WithRoutes(routes []Route) Option {
	return func(r *Router) { r.routes = routes }
}

func WithDenialRecorder(d DenialRecorder) Option {
	return func(r *Router) { r.denials = d }
}

// OnVisit registers fn to be called after every completed navigation.
func OnVisit(fn func(Match)) Option {
	return func(r *Router) { r.visits = append(r.visits, fn) }
}

func NewRouter(sess SessionReader, log logging.Logger, opts ...Option) *Router {
	r := &Router{
		sess:   sess,
		routes: Routes,
		log:    log.With("component", "router"),
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Navigate resolves path against the screen table, running guards and
// following redirects until a screen admits the session.
func (r *Router) Navigate(ctx context.Context, path string, query url.Values) error {
	loc := ParseLocation(path)
	if len(query) > 0 {
		loc.Query = query
	}

	for hop := 0; hop <= MaxRedirects; hop++ {
		m, next := r.resolve(ctx, loc)
		if next == nil {
			r.land(m)
			return nil
		}
		loc = *next
	}
	r.log.Error(ctx, "navigation aborted", "path", path, "err", ErrTooManyRedirects)
	return fmt.Errorf("navigate %s: %w", path, ErrTooManyRedirects)
}

// resolve returns either the landed match or the next location to try.
func (r *Router) resolve(ctx context.Context, loc Location) (Match, *Location) {
	route, params, ok := lookup(r.routes, loc.Path)
	if !ok {
		r.log.Debug(ctx, "unknown path", "path", loc.Path)
		return Match{}, &Location{Path: PathLogin}
	}
	if route.RedirectTo != "" {
		return Match{}, &Location{Path: route.RedirectTo, Query: loc.Query}
	}
	if route.Guarded {
		if d := AuthGuard(ctx, r.sess, loc); !d.Allow {
			r.denied(ctx, "auth", route, d)
			return Match{}, d.Redirect
		}
		if d := RoleGuard(ctx, r.sess, route); !d.Allow {
			r.denied(ctx, "role", route, d)
			return Match{}, d.Redirect
		}
	}
	return Match{Route: route, Location: loc, Params: params}, nil
}

func (r *Router) denied(ctx context.Context, guard string, route Route, d Decision) {
	r.log.Warn(ctx, "navigation denied",
		"guard", guard,
		"route", route.Pattern,
		"role", r.sess.CurrentRole(ctx).String(),
		"redirect", d.Redirect.String(),
	)
	if r.denials != nil {
		r.denials.GuardDenied(guard, route.Pattern)
	}
}

func (r *Router) land(m Match) {
	r.mu.Lock()
	r.current = m
	visits := r.visits
	r.mu.Unlock()

	for _, fn := range visits {
		fn(m)
	}
}

// Current returns the last screen the router landed on.
func (r *Router) Current() Match {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current
}
