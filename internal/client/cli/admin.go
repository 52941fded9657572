package cli

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/bankclient/internal/client/models"
	"github.com/dmitrijs2005/bankclient/internal/client/routing"
)

func (a *App) users(ctx context.Context, args []string) error {
	if len(args) > 1 {
		return errUsage
	}
	if err := a.enter(ctx, routing.PathAdminUsers, nil); err != nil {
		return err
	}

	var (
		list []models.User
		err  error
	)
	if len(args) == 1 {
		role, perr := models.ParseRole(strings.ToUpper(args[0]))
		if perr != nil {
			return perr
		}
		list, err = a.admin.UsersByRole(ctx, role)
	} else {
		list, err = a.admin.Users(ctx)
	}
	if err != nil {
		return err
	}

	if len(list) == 0 {
		a.printf("No users\n")
		return nil
	}
	for _, u := range list {
		status := "active"
		if !u.Active {
			status = "disabled"
		}
		a.printf("%6d  %-30s %-15s %s\n", u.ID, u.Email, u.Role, status)
	}
	return nil
}

func (a *App) addUser(ctx context.Context, _ []string) error {
	if err := a.enter(ctx, routing.PathAdminUsers, nil); err != nil {
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
	rawRole, err := getSimpleText(a.reader, "Role (CLIENT, AGENT_BANCAIRE, ADMIN)", a.out)
	if err != nil {
		return err
	}
	role, err := models.ParseRole(strings.ToUpper(rawRole))
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, "Initial password", a.out)
	if err != nil {
		return err
	}

	u, err := a.admin.Create(ctx, models.UserRequest{Email: email, Password: password, FullName: name, Role: role})
	if err != nil {
		return err
	}
	a.printf("User %d created\n", u.ID)
	return nil
}

func (a *App) toggle(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	if err := a.enter(ctx, routing.PathAdminUsers, nil); err != nil {
		return err
	}
	u, err := a.admin.ToggleStatus(ctx, id)
	if err != nil {
		return err
	}
	a.printf("User %d active: %t\n", u.ID, u.Active)
	return nil
}
