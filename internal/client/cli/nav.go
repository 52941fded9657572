package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/bankclient/internal/client/routing"
)

// errDenied means a command's screen refused the session and the router
// landed somewhere else.
var errDenied = errors.New("screen not available")

// navigate goes to path. Authenticated sessions that land on the login or
// register screen are sent on to their home screen.
func (a *App) navigate(ctx context.Context, path string) error {
	if err := a.router.Navigate(ctx, path, nil); err != nil {
		return err
	}
	switch a.router.Current().Route.Pattern {
	case routing.PathLogin, routing.PathRegister:
		if a.session.IsAuthenticated(ctx) {
			return a.session.RedirectForRole(ctx)
		}
	}
	return nil
}

// enter navigates to the screen of pattern and fails with errDenied when a
// guard redirected elsewhere.
func (a *App) enter(ctx context.Context, pattern string, params map[string]string) error {
	if err := a.router.Navigate(ctx, routing.Expand(pattern, params), nil); err != nil {
		return err
	}
	if a.router.Current().Route.Pattern != pattern {
		return fmt.Errorf("%s: %w", pattern, errDenied)
	}
	return nil
}

func (a *App) goCmd(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	return a.navigate(ctx, args[0])
}

func (a *App) where(context.Context, []string) error {
	cur := a.router.Current()
	a.printf("%s\n", cur.Location.String())
	return nil
}
