package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/bankclient/internal/client/models"
	"github.com/dmitrijs2005/bankclient/internal/client/routing"
)

var errPasswordMismatch = errors.New("passwords do not match")

// login signs in from the login screen and continues to the screen that
// sent the user there, or to the role's home.
func (a *App) login(ctx context.Context, _ []string) error {
	if a.session.IsAuthenticated(ctx) {
		a.printf("Already signed in\n")
		return a.session.RedirectForRole(ctx)
	}

	returnURL := ""
	if cur := a.router.Current(); cur.Route.Pattern == routing.PathLogin {
		returnURL = cur.Location.Query.Get(routing.QueryReturnURL)
	} else if err := a.navigate(ctx, routing.PathLogin); err != nil {
		return err
	}

	email, err := getSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, "Password", a.out)
	if err != nil {
		return err
	}

	if _, err := a.session.Login(ctx, models.LoginRequest{Email: email, Password: password}); err != nil {
		return err
	}

	if returnURL != "" && returnURL != routing.PathRoot {
		return a.navigate(ctx, returnURL)
	}
	return a.session.RedirectForRole(ctx)
}

func (a *App) register(ctx context.Context, _ []string) error {
	if a.session.IsAuthenticated(ctx) {
		a.printf("Already signed in\n")
		return a.session.RedirectForRole(ctx)
	}
	if err := a.navigate(ctx, routing.PathRegister); err != nil {
		return err
	}

	name, err := getSimpleText(a.reader, "Full name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, "Password", a.out)
	if err != nil {
		return err
	}
	confirm, err := getPassword(a.reader, "Confirm password", a.out)
	if err != nil {
		return err
	}
	if password != confirm {
		return errPasswordMismatch
	}

	id, err := a.session.Register(ctx, models.RegisterRequest{FullName: name, Email: email, Password: password})
	if err != nil {
		return err
	}
	if id.AccountNumber != "" {
		a.printf("Account number: %s\n", id.AccountNumber)
	}
	return a.session.RedirectForRole(ctx)
}

func (a *App) logout(ctx context.Context, _ []string) error {
	a.session.Logout(ctx)
	return nil
}

func (a *App) whoami(ctx context.Context, _ []string) error {
	if !a.session.IsAuthenticated(ctx) {
		a.printf("Not signed in\n")
		return nil
	}
	id := a.session.CurrentIdentity()
	if id == nil {
		a.printf("%s (%s)\n", a.eval.Email(ctx), a.session.CurrentRole(ctx))
	} else {
		a.printf("%s <%s> %s\n", id.FullName, id.Email, id.Role)
		if id.AccountNumber != "" {
			a.printf("Account: %s\n", id.AccountNumber)
		}
	}
	a.printf("Session expires in %s\n", a.eval.TimeRemaining(ctx))
	return nil
}
