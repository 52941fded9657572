package routing

import (
	"context"
	"net/url"
	"path"
	"strings"

	"github.com/dmitrijs2005/bankclient/internal/client/models"
)

// SessionReader is the view of the session the guards need.
type SessionReader interface {
	IsAuthenticated(ctx context.Context) bool
	CurrentRole(ctx context.Context) models.Role
}

// Location is a navigation target.
type Location struct {
	Path  string
	Query url.Values
}

// ParseLocation splits raw into a cleaned path and its query.
func ParseLocation(raw string) Location {
	u, err := url.Parse(raw)
	if err != nil {
		return Location{Path: cleanPath(raw)}
	}
	loc := Location{Path: cleanPath(u.Path)}
	if q := u.Query(); len(q) > 0 {
		loc.Query = q
	}
	return loc
}

func (l Location) String() string {
	if len(l.Query) == 0 {
		return l.Path
	}
	return l.Path + "?" + l.Query.Encode()
}

func cleanPath(p string) string {
	if p == "" {
		return PathRoot
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return path.Clean(p)
}

// Decision is the outcome of a guard. Redirect is set only when Allow is false.
type Decision struct {
	Allow    bool
	Redirect *Location
}

func allow() Decision { return Decision{Allow: true} }

func redirect(to Location) Decision { return Decision{Redirect: &to} }

// AuthGuard admits authenticated sessions and sends everyone else to login,
// remembering where they wanted to go.
func AuthGuard(ctx context.Context, sess SessionReader, attempted Location) Decision {
	if sess.IsAuthenticated(ctx) {
		return allow()
	}
	return redirect(Location{
		Path:  PathLogin,
		Query: url.Values{QueryReturnURL: {attempted.String()}},
	})
}

// RoleGuard admits authenticated sessions whose role is listed on route.
// A session with the wrong role is sent to its own home screen.
func RoleGuard(ctx context.Context, sess SessionReader, route Route) Decision {
	if !sess.IsAuthenticated(ctx) {
		return redirect(Location{Path: PathLogin})
	}
	if len(route.Roles) == 0 {
		return allow()
	}
	role := sess.CurrentRole(ctx)
	if role != models.RoleNone && role.In(route.Roles) {
		return allow()
	}
	return redirect(Location{Path: HomeFor(role)})
}
