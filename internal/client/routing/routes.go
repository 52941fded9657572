// Package routing holds the screen table of the banking client and the
// guards that decide whether the current session may enter a screen.
//
// Guards are pure: they read the session and return a Decision. The Router
// is the only place where a denied navigation turns into a redirect.
package routing

import (
	"strings"

	"github.com/dmitrijs2005/bankclient/internal/client/models"
)

const (
	PathRoot     = "/"
	PathLogin    = "/auth/login"
	PathRegister = "/auth/register"

	PathClientDashboard    = "/client/dashboard"
	PathClientNewOperation = "/client/new-operation"
	PathClientOperation    = "/client/operation-details/:id"

	PathAgentDashboard = "/agent/dashboard"
	PathAgentOperation = "/agent/operation/:id"

	PathAdminDashboard = "/admin/dashboard"
	PathAdminUsers     = "/admin/user-management"
)

// QueryReturnURL carries the location a visitor tried to reach before being
// sent to the login screen.
const QueryReturnURL = "returnUrl"

// Route is one entry of the screen table.
type Route struct {
	Pattern string

	// Guarded routes require an authenticated session. Roles narrows them
	// further; an empty list admits every role.
	Guarded bool
	Roles   []models.Role

	// RedirectTo makes the route an alias.
	RedirectTo string
}

// Routes is the static screen table. Unknown paths are sent to login.
var Routes = []Route{
	{Pattern: PathRoot, RedirectTo: PathLogin},
	{Pattern: "/auth", RedirectTo: PathLogin},
	{Pattern: PathLogin},
	{Pattern: PathRegister},

	{Pattern: "/client", RedirectTo: PathClientDashboard},
	{Pattern: PathClientDashboard, Guarded: true, Roles: []models.Role{models.RoleCustomer}},
	{Pattern: PathClientNewOperation, Guarded: true, Roles: []models.Role{models.RoleCustomer}},
	{Pattern: PathClientOperation, Guarded: true, Roles: []models.Role{models.RoleCustomer}},

	{Pattern: "/agent", RedirectTo: PathAgentDashboard},
	{Pattern: PathAgentDashboard, Guarded: true, Roles: []models.Role{models.RoleAgent}},
	{Pattern: PathAgentOperation, Guarded: true, Roles: []models.Role{models.RoleAgent}},

	{Pattern: "/admin", RedirectTo: PathAdminDashboard},
	{Pattern: PathAdminDashboard, Guarded: true, Roles: []models.Role{models.RoleAdmin}},
	{Pattern: PathAdminUsers, Guarded: true, Roles: []models.Role{models.RoleAdmin}},
}

// HomeFor returns the landing screen of role. RoleNone lands on login.
func HomeFor(role models.Role) string {
	switch role {
	case models.RoleCustomer:
		return PathClientDashboard
	case models.RoleAgent:
		return PathAgentDashboard
	case models.RoleAdmin:
		return PathAdminDashboard
	default:
		return PathLogin
	}
}

// Expand fills the :name placeholders of pattern.
func Expand(pattern string, params map[string]string) string {
	segs := strings.Split(pattern, "/")
	for i, s := range segs {
		if strings.HasPrefix(s, ":") {
			segs[i] = params[s[1:]]
		}
	}
	return strings.Join(segs, "/")
}

// match reports whether path fits pattern and collects the placeholders.
func match(pattern, path string) (map[string]string, bool) {
	ps := strings.Split(pattern, "/")
	xs := strings.Split(path, "/")
	if len(ps) != len(xs) {
		return nil, false
	}
	var params map[string]string
	for i, p := range ps {
		if strings.HasPrefix(p, ":") {
			if xs[i] == "" {
				return nil, false
			}
			if params == nil {
				params = make(map[string]string)
			}
			params[p[1:]] = xs[i]
			continue
		}
		if p != xs[i] {
			return nil, false
		}
	}
	return params, true
}

func lookup(routes []Route, path string) (Route, map[string]string, bool) {
	for _, r := range routes {
		if params, ok := match(r.Pattern, path); ok {
			return r, params, true
		}
	}
	return Route{}, nil, false
}
